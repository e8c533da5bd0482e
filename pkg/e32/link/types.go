package link

import (
	"fmt"
	"time"
)

// Role is the half-duplex role of a module.
type Role uint8

// Roles.
const (
	Transmitter Role = 1
	Receiver    Role = 2
)

// IsValid checks the role is a known member.
func (r Role) IsValid() bool {
	return r == Transmitter || r == Receiver
}

func (r Role) String() string {
	switch r {
	case Transmitter:
		return "transmitter"
	case Receiver:
		return "receiver"
	}
	return fmt.Sprintf("Role(%d)", uint8(r))
}

// Parity is the UART parity mode.
type Parity uint8

// Parity modes.
const (
	Parity8O1 Parity = 1
	Parity8E1 Parity = 2
	Parity8N1 Parity = 3
)

// IsValid checks the parity is a known member.
func (p Parity) IsValid() bool {
	return p >= Parity8O1 && p <= Parity8N1
}

func (p Parity) String() string {
	switch p {
	case Parity8O1:
		return "8O1"
	case Parity8E1:
		return "8E1"
	case Parity8N1:
		return "8N1"
	}
	return fmt.Sprintf("Parity(%d)", uint8(p))
}

// BaudRate is the UART baud rate code.
type BaudRate uint8

// Baud rates.
const (
	Baud1200 BaudRate = iota
	Baud2400
	Baud4800
	Baud9600
	Baud19200
	Baud38400
	Baud57600
	Baud115200
)

var baudRates = [...]int{1200, 2400, 4800, 9600, 19200, 38400, 57600, 115200}

// IsValid checks the baud rate is a known member.
func (b BaudRate) IsValid() bool {
	return int(b) < len(baudRates)
}

// Bps returns the rate in bits per second, 0 if invalid.
func (b BaudRate) Bps() int {
	if !b.IsValid() {
		return 0
	}
	return baudRates[b]
}

func (b BaudRate) String() string {
	if !b.IsValid() {
		return fmt.Sprintf("BaudRate(%d)", uint8(b))
	}
	return fmt.Sprintf("%d", baudRates[b])
}

// AirDataRate is the over-the-air data rate code.
// Codes 0-2 all run at 2400 bps and codes 5-7 all run at 19200 bps on this
// module family, but each code is kept as its own member.
type AirDataRate uint8

// Air data rates.
const (
	AirRate2400Alt0 AirDataRate = iota
	AirRate2400Alt1
	AirRate2400
	AirRate4800
	AirRate9600
	AirRate19200
	AirRate19200Alt6
	AirRate19200Alt7
)

var airDataRates = [...]int{2400, 2400, 2400, 4800, 9600, 19200, 19200, 19200}

var airDataRateNames = [...]string{
	"2400/0", "2400/1", "2400", "4800", "9600", "19200", "19200/6", "19200/7",
}

// IsValid checks the air data rate is a known member.
func (r AirDataRate) IsValid() bool {
	return int(r) < len(airDataRates)
}

// Bps returns the effective rate in bits per second, 0 if invalid.
func (r AirDataRate) Bps() int {
	if !r.IsValid() {
		return 0
	}
	return airDataRates[r]
}

func (r AirDataRate) String() string {
	if !r.IsValid() {
		return fmt.Sprintf("AirDataRate(%d)", uint8(r))
	}
	return airDataRateNames[r]
}

// TransmissionMode selects how packets are framed by the module.
type TransmissionMode uint8

// Transmission modes.
const (
	Transparent TransmissionMode = 0
	Fixed       TransmissionMode = 1
)

// IsValid checks the mode is a known member.
func (m TransmissionMode) IsValid() bool {
	return m == Transparent || m == Fixed
}

func (m TransmissionMode) String() string {
	switch m {
	case Transparent:
		return "transparent"
	case Fixed:
		return "fixed"
	}
	return fmt.Sprintf("TransmissionMode(%d)", uint8(m))
}

// IODriveMode is the drive mode of the module's TXD, RXD and AUX lines.
type IODriveMode uint8

// IO drive modes.
const (
	// OpenDrain uses no internal pull-up or pull-down.
	OpenDrain IODriveMode = 0
	// Active pulls the lines up and down with internal resistors.
	Active IODriveMode = 1
)

// IsValid checks the drive mode is a known member.
func (m IODriveMode) IsValid() bool {
	return m == OpenDrain || m == Active
}

func (m IODriveMode) String() string {
	switch m {
	case OpenDrain:
		return "open-drain"
	case Active:
		return "active"
	}
	return fmt.Sprintf("IODriveMode(%d)", uint8(m))
}

// WakeUpInterval is the wireless wake-up time code, 250ms per step.
type WakeUpInterval uint8

// Wake-up intervals.
const (
	WakeUp250ms WakeUpInterval = iota
	WakeUp500ms
	WakeUp750ms
	WakeUp1000ms
	WakeUp1250ms
	WakeUp1500ms
	WakeUp1750ms
	WakeUp2000ms
)

// IsValid checks the interval is a known member.
func (w WakeUpInterval) IsValid() bool {
	return w <= WakeUp2000ms
}

// Duration returns the interval, 0 if invalid.
func (w WakeUpInterval) Duration() time.Duration {
	if !w.IsValid() {
		return 0
	}
	return time.Duration(w+1) * 250 * time.Millisecond
}

func (w WakeUpInterval) String() string {
	if !w.IsValid() {
		return fmt.Sprintf("WakeUpInterval(%d)", uint8(w))
	}
	return w.Duration().String()
}

// TxPower is the transmit power code.
type TxPower uint8

// Transmit power levels.
const (
	Power20dBm TxPower = iota
	Power17dBm
	Power14dBm
	Power10dBm
)

var txPowerDBm = [...]int{20, 17, 14, 10}

// IsValid checks the power level is a known member.
func (p TxPower) IsValid() bool {
	return int(p) < len(txPowerDBm)
}

// DBm returns the output power, 0 if invalid.
func (p TxPower) DBm() int {
	if !p.IsValid() {
		return 0
	}
	return txPowerDBm[p]
}

func (p TxPower) String() string {
	if !p.IsValid() {
		return fmt.Sprintf("TxPower(%d)", uint8(p))
	}
	return fmt.Sprintf("%ddBm", txPowerDBm[p])
}

// Variant describes an E32 module family.
type Variant struct {
	Name             string
	BaseFrequencyMHz int
	MinChannel       int
	MaxChannel       int
}

// E32900T is the 868/915MHz module, frequency = 862MHz + channel.
var E32900T = Variant{
	Name:             "E32-900T",
	BaseFrequencyMHz: 862,
	MinChannel:       0,
	MaxChannel:       31,
}

// ValidChannel checks the channel is within the variant's range.
func (v Variant) ValidChannel(ch int) bool {
	return ch >= v.MinChannel && ch <= v.MaxChannel
}
