package link

import "fmt"

// Buffer and framing sizes of the module.
const (
	// BufferSize is the module's packet buffer, larger packets overflow.
	BufferSize = 64
	// FixedFramingOverhead is the address-high, address-low and channel
	// prefix carried by each packet in fixed transmission mode.
	FixedFramingOverhead = 3
)

// FramingOverhead returns the bytes reserved ahead of the payload.
func FramingOverhead(mode TransmissionMode) int {
	if mode == Fixed {
		return FixedFramingOverhead
	}
	return 0
}

// Options are the inputs of Build.
type Options struct {
	Role                   Role             `yaml:"role"`
	Pins                   PinMap           `yaml:"pins"`
	DeviceAddress          uint16           `yaml:"deviceAddress"`
	DeviceID               uint8            `yaml:"deviceId"`
	UARTParity             Parity           `yaml:"uartParity"`
	UARTBaud               BaudRate         `yaml:"uartBaud"`
	AirDataRate            AirDataRate      `yaml:"airDataRate"`
	TransmissionMode       TransmissionMode `yaml:"transmissionMode"`
	IODriveMode            IODriveMode      `yaml:"ioDriveMode"`
	WakeUpInterval         WakeUpInterval   `yaml:"wakeUpInterval"`
	ForwardErrorCorrection bool             `yaml:"forwardErrorCorrection"`
	TxPower                TxPower          `yaml:"txPower"`
	Channel                int              `yaml:"channel"`
	PacketPayloadBytes     int              `yaml:"packetPayloadBytes"`
}

// violations evaluates every rule in Build order.
func (o Options) violations() []error {
	var errs []error
	enum := func(field string, valid bool, value uint8) {
		if !valid {
			errs = append(errs, &InvalidEnumValueError{Field: field, Value: int(value)})
		}
	}
	enum("role", o.Role.IsValid(), uint8(o.Role))
	enum("uartParity", o.UARTParity.IsValid(), uint8(o.UARTParity))
	enum("uartBaud", o.UARTBaud.IsValid(), uint8(o.UARTBaud))
	enum("airDataRate", o.AirDataRate.IsValid(), uint8(o.AirDataRate))
	enum("transmissionMode", o.TransmissionMode.IsValid(), uint8(o.TransmissionMode))
	enum("ioDriveMode", o.IODriveMode.IsValid(), uint8(o.IODriveMode))
	enum("wakeUpInterval", o.WakeUpInterval.IsValid(), uint8(o.WakeUpInterval))
	enum("txPower", o.TxPower.IsValid(), uint8(o.TxPower))

	errs = append(errs, o.Pins.conflicts()...)

	if o.PacketPayloadBytes <= 0 {
		errs = append(errs, ErrNonPositivePayload)
	} else if limit := BufferSize - FramingOverhead(o.TransmissionMode); o.PacketPayloadBytes > limit {
		errs = append(errs, &PayloadExceedsCapacityError{Requested: o.PacketPayloadBytes, Limit: limit})
	}

	if !E32900T.ValidChannel(o.Channel) {
		errs = append(errs, &ChannelOutOfRangeError{
			Channel: o.Channel,
			Min:     E32900T.MinChannel,
			Max:     E32900T.MaxChannel,
		})
	}
	return errs
}

// RadioLinkConfig is a validated, immutable link configuration.
// Values are only produced by Build; the zero value is not a valid config.
// RadioLinkConfig is comparable and safe to share between goroutines.
type RadioLinkConfig struct {
	opts Options
}

// Build validates opts and returns the configuration, or the first violated
// rule: enum members, distinct pins, positive payload, buffer capacity and
// channel range, in that order.
func Build(opts Options) (RadioLinkConfig, error) {
	if errs := opts.violations(); len(errs) > 0 {
		return RadioLinkConfig{}, errs[0]
	}
	return RadioLinkConfig{opts: opts}, nil
}

// MustBuild is Build that panics on error, for static configurations.
func MustBuild(opts Options) RadioLinkConfig {
	cfg, err := Build(opts)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Check evaluates every rule and returns a *ViolationsError listing all of
// them, or nil if opts would build.
func Check(opts Options) error {
	var errs ViolationsError
	errs.add(opts.violations()...)
	return errs.aggregate()
}

// Options returns a copy of the inputs, a starting point to build a
// reconfigured link.
func (c RadioLinkConfig) Options() Options { return c.opts }

// Role returns the half-duplex role.
func (c RadioLinkConfig) Role() Role { return c.opts.Role }

// Pins returns the pin assignments.
func (c RadioLinkConfig) Pins() PinMap { return c.opts.Pins }

// DeviceAddress returns the group address shared by cooperating nodes.
func (c RadioLinkConfig) DeviceAddress() uint16 { return c.opts.DeviceAddress }

// DeviceID returns the per-device id. It is not checked for uniqueness
// within the group; see package registry for that.
func (c RadioLinkConfig) DeviceID() uint8 { return c.opts.DeviceID }

// UARTParity returns the UART parity mode.
func (c RadioLinkConfig) UARTParity() Parity { return c.opts.UARTParity }

// UARTBaud returns the UART baud rate.
func (c RadioLinkConfig) UARTBaud() BaudRate { return c.opts.UARTBaud }

// AirDataRate returns the over-the-air data rate.
func (c RadioLinkConfig) AirDataRate() AirDataRate { return c.opts.AirDataRate }

// TransmissionMode returns the framing mode.
func (c RadioLinkConfig) TransmissionMode() TransmissionMode { return c.opts.TransmissionMode }

// IODriveMode returns the IO drive mode.
func (c RadioLinkConfig) IODriveMode() IODriveMode { return c.opts.IODriveMode }

// WakeUpInterval returns the wireless wake-up interval.
func (c RadioLinkConfig) WakeUpInterval() WakeUpInterval { return c.opts.WakeUpInterval }

// ForwardErrorCorrection tells whether FEC is enabled.
func (c RadioLinkConfig) ForwardErrorCorrection() bool { return c.opts.ForwardErrorCorrection }

// TxPower returns the transmit power.
func (c RadioLinkConfig) TxPower() TxPower { return c.opts.TxPower }

// Channel returns the channel offset from the variant's base frequency.
func (c RadioLinkConfig) Channel() int { return c.opts.Channel }

// PacketPayloadBytes returns the payload size of each packet.
func (c RadioLinkConfig) PacketPayloadBytes() int { return c.opts.PacketPayloadBytes }

// Variant returns the module family.
func (c RadioLinkConfig) Variant() Variant { return E32900T }

// FramingOverhead returns the bytes reserved ahead of each payload.
func (c RadioLinkConfig) FramingOverhead() int {
	return FramingOverhead(c.opts.TransmissionMode)
}

// EffectivePayloadCapacity returns the largest payload one packet can carry.
func (c RadioLinkConfig) EffectivePayloadCapacity() int {
	return BufferSize - c.FramingOverhead()
}

// FrequencyMHz returns the carrier frequency.
func (c RadioLinkConfig) FrequencyMHz() int {
	return E32900T.BaseFrequencyMHz + c.opts.Channel
}

func (c RadioLinkConfig) String() string {
	return fmt.Sprintf("%s %d/%d ch%d(%dMHz) %s payload=%d/%d",
		c.opts.Role, c.opts.DeviceAddress, c.opts.DeviceID,
		c.opts.Channel, c.FrequencyMHz(), c.opts.TransmissionMode,
		c.opts.PacketPayloadBytes, c.EffectivePayloadCapacity())
}
