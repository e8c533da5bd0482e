package link

// Build-time values of the reference end node.
const (
	DefaultDeviceAddress uint16 = 58427
	DefaultDeviceID      uint8  = 175
	// DefaultChannel is 868MHz on the E32-900T.
	DefaultChannel            = 6
	DefaultPacketPayloadBytes = 4
)

// DefaultPins is the reference wiring. Pin 7 of the module, next to the
// antenna, is GND and pin 6 is VCC.
var DefaultPins = PinMap{
	ModeSelect0: 2,
	ModeSelect1: 3,
	SerialRx:    5,
	SerialTx:    4,
	AuxStatus:   6,
}

// DefaultOptions returns the reference end node with the module's
// suggested UART and RF settings.
func DefaultOptions() Options {
	return Options{
		Role:                   Transmitter,
		Pins:                   DefaultPins,
		DeviceAddress:          DefaultDeviceAddress,
		DeviceID:               DefaultDeviceID,
		UARTParity:             Parity8N1,
		UARTBaud:               Baud9600,
		AirDataRate:            AirRate2400,
		TransmissionMode:       Fixed,
		IODriveMode:            Active,
		WakeUpInterval:         WakeUp250ms,
		ForwardErrorCorrection: true,
		TxPower:                Power20dBm,
		Channel:                DefaultChannel,
		PacketPayloadBytes:     DefaultPacketPayloadBytes,
	}
}
