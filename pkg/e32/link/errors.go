package link

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNonPositivePayload indicates the packet payload size is zero or negative.
	ErrNonPositivePayload = errors.New("packet payload must be positive")
)

// InvalidEnumValueError indicates an option is not one of its documented members.
type InvalidEnumValueError struct {
	Field string
	Value int
}

// Error implements error.
func (e *InvalidEnumValueError) Error() string {
	return fmt.Sprintf("invalid %s: %d", e.Field, e.Value)
}

// DuplicatePinAssignmentError indicates two signals are mapped to one pin.
type DuplicatePinAssignmentError struct {
	SignalA Signal
	SignalB Signal
	Pin     Pin
}

// Error implements error.
func (e *DuplicatePinAssignmentError) Error() string {
	return fmt.Sprintf("pin %d assigned to both %s and %s", e.Pin, e.SignalA, e.SignalB)
}

// PayloadExceedsCapacityError indicates payload plus framing overflows the module buffer.
type PayloadExceedsCapacityError struct {
	Requested int
	Limit     int
}

// Error implements error.
func (e *PayloadExceedsCapacityError) Error() string {
	return fmt.Sprintf("packet payload %d bytes exceeds capacity %d bytes", e.Requested, e.Limit)
}

// ChannelOutOfRangeError indicates the channel is outside the variant's range.
type ChannelOutOfRangeError struct {
	Channel int
	Min     int
	Max     int
}

// Error implements error.
func (e *ChannelOutOfRangeError) Error() string {
	return fmt.Sprintf("channel %d out of range [%d, %d]", e.Channel, e.Min, e.Max)
}

// ViolationsError aggregates every rule an option set violates.
type ViolationsError struct {
	Errors []error
}

// Error implements error.
func (e *ViolationsError) Error() string {
	if len(e.Errors) == 0 {
		return ""
	}
	msg := make([]string, len(e.Errors)+1)
	msg[0] = fmt.Sprintf("%d violations:", len(e.Errors))
	for n, err := range e.Errors {
		msg[n+1] = "  " + err.Error()
	}
	return strings.Join(msg, "\n")
}

// Unwrap exposes the violations to errors.Is and errors.As.
func (e *ViolationsError) Unwrap() []error {
	return e.Errors
}

// add appends violations, nil is skipped.
func (e *ViolationsError) add(errs ...error) {
	for _, err := range errs {
		if err != nil {
			e.Errors = append(e.Errors, err)
		}
	}
}

// aggregate returns e if anything was collected.
func (e *ViolationsError) aggregate() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}
