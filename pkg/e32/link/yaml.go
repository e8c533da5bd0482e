package link

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

// UnknownEnumNameError indicates a name in a configuration file matches no member.
type UnknownEnumNameError struct {
	Field string
	Name  string
}

// Error implements error.
func (e *UnknownEnumNameError) Error() string {
	return fmt.Sprintf("unknown %s: %q", e.Field, e.Name)
}

// ParseOptions decodes YAML onto base. Fields absent from data keep the
// values from base. Unknown keys are rejected.
func ParseOptions(data []byte, base Options) (Options, error) {
	opts := base
	if err := yaml.UnmarshalStrict(data, &opts); err != nil {
		return base, err
	}
	return opts, nil
}

// LoadOptions reads a YAML file onto base.
func LoadOptions(filename string, base Options) (Options, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return base, err
	}
	opts, err := ParseOptions(data, base)
	if err != nil {
		return base, fmt.Errorf("%s: %w", filename, err)
	}
	return opts, nil
}

// NonScalarValueError indicates a value given to With is not a single YAML scalar.
type NonScalarValueError struct {
	Field string
	Value string
}

// Error implements error.
func (e *NonScalarValueError) Error() string {
	return fmt.Sprintf("%s: %q is not a single value", e.Field, e.Value)
}

// With returns a copy of o with one field replaced. field is the YAML key,
// pin fields are addressed as "pins.<signal>", e.g. "pins.aux".
func (o Options) With(field, value string) (Options, error) {
	parts := strings.Split(field, ".")
	if len(parts) > 2 {
		return o, fmt.Errorf("unknown field %q", field)
	}
	for _, part := range parts {
		if !isKey(part) {
			return o, fmt.Errorf("unknown field %q", field)
		}
	}
	if err := checkScalar(field, value); err != nil {
		return o, err
	}
	doc := fmt.Sprintf("%s: %s\n", field, value)
	if len(parts) == 2 {
		doc = fmt.Sprintf("%s:\n  %s: %s\n", parts[0], parts[1], value)
	}
	return ParseOptions([]byte(doc), o)
}

func isKey(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}

// checkScalar accepts a single-line value decoding to a YAML scalar.
func checkScalar(field, value string) error {
	if strings.TrimSpace(value) == "" || strings.ContainsAny(value, "\r\n") {
		return &NonScalarValueError{Field: field, Value: value}
	}
	var v interface{}
	if err := yaml.Unmarshal([]byte(value), &v); err != nil {
		return &NonScalarValueError{Field: field, Value: value}
	}
	switch v.(type) {
	case nil, map[interface{}]interface{}, []interface{}:
		return &NonScalarValueError{Field: field, Value: value}
	}
	return nil
}

// Marshal encodes the options as YAML using member names.
func (o Options) Marshal() ([]byte, error) {
	return yaml.Marshal(&o)
}

// parseEnum resolves a member by name first, then by numeric code.
func parseEnum(field, s string, name func(uint8) (string, bool)) (uint8, error) {
	s = strings.TrimSpace(s)
	for c := 0; c <= math.MaxUint8; c++ {
		if n, ok := name(uint8(c)); ok && strings.EqualFold(n, s) {
			return uint8(c), nil
		}
	}
	code, err := strconv.Atoi(s)
	if err != nil {
		return 0, &UnknownEnumNameError{Field: field, Name: s}
	}
	if code < 0 || code > math.MaxUint8 {
		return 0, &InvalidEnumValueError{Field: field, Value: code}
	}
	// out-of-set codes are rejected by Build
	return uint8(code), nil
}

func unmarshalEnum(unmarshal func(interface{}) error, field string, name func(uint8) (string, bool)) (uint8, error) {
	var s string
	if err := unmarshal(&s); err != nil {
		return 0, err
	}
	return parseEnum(field, s, name)
}

func marshalEnum(valid bool, s fmt.Stringer, code uint8) (interface{}, error) {
	if !valid {
		return int(code), nil
	}
	return s.String(), nil
}

func roleName(c uint8) (string, bool) {
	switch Role(c) {
	case Transmitter:
		return "tx", true
	case Receiver:
		return "rx", true
	}
	return "", false
}

// ParseRole parses "transmitter", "receiver", "tx", "rx" or a numeric code.
func ParseRole(s string) (Role, error) {
	if c, err := parseEnum("role", s, roleName); err == nil {
		return Role(c), nil
	}
	c, err := parseEnum("role", s, func(c uint8) (string, bool) {
		return Role(c).String(), Role(c).IsValid()
	})
	return Role(c), err
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (r *Role) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	v, err := ParseRole(s)
	*r = v
	return err
}

// MarshalYAML implements yaml.Marshaler.
func (r Role) MarshalYAML() (interface{}, error) {
	return marshalEnum(r.IsValid(), r, uint8(r))
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *Parity) UnmarshalYAML(unmarshal func(interface{}) error) error {
	v, err := unmarshalEnum(unmarshal, "uartParity", func(c uint8) (string, bool) {
		return Parity(c).String(), Parity(c).IsValid()
	})
	*p = Parity(v)
	return err
}

// MarshalYAML implements yaml.Marshaler.
func (p Parity) MarshalYAML() (interface{}, error) {
	return marshalEnum(p.IsValid(), p, uint8(p))
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (b *BaudRate) UnmarshalYAML(unmarshal func(interface{}) error) error {
	v, err := unmarshalEnum(unmarshal, "uartBaud", func(c uint8) (string, bool) {
		return BaudRate(c).String(), BaudRate(c).IsValid()
	})
	*b = BaudRate(v)
	return err
}

// MarshalYAML implements yaml.Marshaler.
func (b BaudRate) MarshalYAML() (interface{}, error) {
	return marshalEnum(b.IsValid(), b, uint8(b))
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (r *AirDataRate) UnmarshalYAML(unmarshal func(interface{}) error) error {
	v, err := unmarshalEnum(unmarshal, "airDataRate", func(c uint8) (string, bool) {
		return AirDataRate(c).String(), AirDataRate(c).IsValid()
	})
	*r = AirDataRate(v)
	return err
}

// MarshalYAML implements yaml.Marshaler.
func (r AirDataRate) MarshalYAML() (interface{}, error) {
	return marshalEnum(r.IsValid(), r, uint8(r))
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (m *TransmissionMode) UnmarshalYAML(unmarshal func(interface{}) error) error {
	v, err := unmarshalEnum(unmarshal, "transmissionMode", func(c uint8) (string, bool) {
		return TransmissionMode(c).String(), TransmissionMode(c).IsValid()
	})
	*m = TransmissionMode(v)
	return err
}

// MarshalYAML implements yaml.Marshaler.
func (m TransmissionMode) MarshalYAML() (interface{}, error) {
	return marshalEnum(m.IsValid(), m, uint8(m))
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (m *IODriveMode) UnmarshalYAML(unmarshal func(interface{}) error) error {
	v, err := unmarshalEnum(unmarshal, "ioDriveMode", func(c uint8) (string, bool) {
		return IODriveMode(c).String(), IODriveMode(c).IsValid()
	})
	*m = IODriveMode(v)
	return err
}

// MarshalYAML implements yaml.Marshaler.
func (m IODriveMode) MarshalYAML() (interface{}, error) {
	return marshalEnum(m.IsValid(), m, uint8(m))
}

// ParseWakeUpInterval parses a duration such as "250ms", "1.5s" or
// "2000ms", or a numeric code.
func ParseWakeUpInterval(s string) (WakeUpInterval, error) {
	s = strings.TrimSpace(s)
	if d, err := time.ParseDuration(s); err == nil && d != 0 {
		for w := WakeUp250ms; w.IsValid(); w++ {
			if w.Duration() == d {
				return w, nil
			}
		}
		return 0, &UnknownEnumNameError{Field: "wakeUpInterval", Name: s}
	}
	c, err := parseEnum("wakeUpInterval", s, func(c uint8) (string, bool) {
		return WakeUpInterval(c).String(), WakeUpInterval(c).IsValid()
	})
	return WakeUpInterval(c), err
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (w *WakeUpInterval) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	v, err := ParseWakeUpInterval(s)
	*w = v
	return err
}

// MarshalYAML implements yaml.Marshaler.
func (w WakeUpInterval) MarshalYAML() (interface{}, error) {
	return marshalEnum(w.IsValid(), w, uint8(w))
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *TxPower) UnmarshalYAML(unmarshal func(interface{}) error) error {
	v, err := unmarshalEnum(unmarshal, "txPower", func(c uint8) (string, bool) {
		return TxPower(c).String(), TxPower(c).IsValid()
	})
	*p = TxPower(v)
	return err
}

// MarshalYAML implements yaml.Marshaler.
func (p TxPower) MarshalYAML() (interface{}, error) {
	return marshalEnum(p.IsValid(), p, uint8(p))
}
