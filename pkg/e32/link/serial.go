package link

import "go.bug.st/serial"

// SerialMode returns the controller-side UART settings matching the module.
// It only describes the port, opening it is left to the driver.
func (c RadioLinkConfig) SerialMode() *serial.Mode {
	mode := &serial.Mode{
		BaudRate: c.opts.UARTBaud.Bps(),
		DataBits: 8,
		StopBits: serial.OneStopBit,
	}
	switch c.opts.UARTParity {
	case Parity8O1:
		mode.Parity = serial.OddParity
	case Parity8E1:
		mode.Parity = serial.EvenParity
	default:
		mode.Parity = serial.NoParity
	}
	return mode
}
