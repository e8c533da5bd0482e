package link

import "fmt"

// Signal is a logical line between the controller and the module.
type Signal uint8

// Signals, in the order they are checked for conflicts.
const (
	ModeSelect0 Signal = iota
	ModeSelect1
	SerialRx
	SerialTx
	AuxStatus

	numSignals
)

var signalNames = [numSignals]string{"m0", "m1", "rx", "tx", "aux"}

func (s Signal) String() string {
	if s >= numSignals {
		return fmt.Sprintf("Signal(%d)", uint8(s))
	}
	return signalNames[s]
}

// Signals lists all signals.
func Signals() []Signal {
	out := make([]Signal, numSignals)
	for n := range out {
		out[n] = Signal(n)
	}
	return out
}

// Pin identifies a controller pin.
type Pin int

// PinMap assigns a controller pin to every signal.
// SerialRx is the module's RX line, driven by the controller's serial TX,
// and SerialTx is the module's TX line.
type PinMap struct {
	ModeSelect0 Pin `yaml:"m0" json:"m0"`
	ModeSelect1 Pin `yaml:"m1" json:"m1"`
	SerialRx    Pin `yaml:"rx" json:"rx"`
	SerialTx    Pin `yaml:"tx" json:"tx"`
	AuxStatus   Pin `yaml:"aux" json:"aux"`
}

// Pin returns the pin assigned to a signal.
func (m PinMap) Pin(s Signal) (Pin, bool) {
	switch s {
	case ModeSelect0:
		return m.ModeSelect0, true
	case ModeSelect1:
		return m.ModeSelect1, true
	case SerialRx:
		return m.SerialRx, true
	case SerialTx:
		return m.SerialTx, true
	case AuxStatus:
		return m.AuxStatus, true
	}
	return 0, false
}

// conflicts returns every signal sharing a pin with an earlier one.
func (m PinMap) conflicts() (errs []error) {
	owners := make(map[Pin]Signal, numSignals)
	for _, s := range Signals() {
		pin, _ := m.Pin(s)
		if prev, ok := owners[pin]; ok {
			errs = append(errs, &DuplicatePinAssignmentError{SignalA: prev, SignalB: s, Pin: pin})
			continue
		}
		owners[pin] = s
	}
	return
}
