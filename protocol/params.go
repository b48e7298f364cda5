package protocol

import "fmt"

// BufferID selects one of the sensor's two character buffers.
type BufferID byte

const (
	// Buffer1 is the first character buffer
	Buffer1 BufferID = 0x01

	// Buffer2 is the second character buffer
	Buffer2 BufferID = 0x02
)

// Valid reports whether b names an existing character buffer.
func (b BufferID) Valid() bool {
	return b == Buffer1 || b == Buffer2
}

// ParameterID names a writable system parameter register.
type ParameterID byte

const (
	// ParamBaudrate selects the UART baudrate register
	ParamBaudrate ParameterID = 0x04

	// ParamSecurityLevel selects the matching security level register
	ParamSecurityLevel ParameterID = 0x05

	// ParamPacketSize selects the bulk transfer packet size register
	ParamPacketSize ParameterID = 0x06
)

// Valid reports whether p names a known parameter register.
func (p ParameterID) Valid() bool {
	switch p {
	case ParamBaudrate, ParamSecurityLevel, ParamPacketSize:
		return true
	}
	return false
}

// Baudrate is the sensor's coded UART speed: code N means N*9600 bps.
type Baudrate byte

const (
	// Baudrate9600 is 9600 bps
	Baudrate9600 Baudrate = 0x01

	// Baudrate19200 is 19200 bps
	Baudrate19200 Baudrate = 0x02

	// Baudrate38400 is 38400 bps
	Baudrate38400 Baudrate = 0x04

	// Baudrate57600 is 57600 bps, the sensor's factory default
	Baudrate57600 Baudrate = 0x06

	// Baudrate115200 is 115200 bps
	Baudrate115200 Baudrate = 0x0C
)

// Valid reports whether b is within the sensor's supported code range.
// Every multiple of 9600 from 9600 to 115200 is accepted by the hardware.
func (b Baudrate) Valid() bool {
	return b >= 0x01 && b <= 0x0C
}

// BPS converts the baudrate code to bits per second.
func (b Baudrate) BPS() int {
	return int(b) * 9600
}

// BaudrateFromBPS converts a bits-per-second value to the sensor's code.
func BaudrateFromBPS(bps int) (Baudrate, error) {
	if bps%9600 != 0 {
		return 0, fmt.Errorf("baudrate %d is not a multiple of 9600", bps)
	}
	b := Baudrate(bps / 9600)
	if !b.Valid() {
		return 0, fmt.Errorf("baudrate %d is outside the supported 9600-115200 range", bps)
	}
	return b, nil
}

// SecurityLevel is the sensor's matching strictness, 1 (loosest, lowest
// false rejection) through 5 (strictest, lowest false acceptance).
type SecurityLevel byte

const (
	// SecurityLevel1 is the loosest matching level
	SecurityLevel1 SecurityLevel = 0x01

	// SecurityLevel2 favors low false rejection
	SecurityLevel2 SecurityLevel = 0x02

	// SecurityLevel3 is the balanced default
	SecurityLevel3 SecurityLevel = 0x03

	// SecurityLevel4 favors low false acceptance
	SecurityLevel4 SecurityLevel = 0x04

	// SecurityLevel5 is the strictest matching level
	SecurityLevel5 SecurityLevel = 0x05
)

// Valid reports whether s is a defined security level.
func (s SecurityLevel) Valid() bool {
	return s >= SecurityLevel1 && s <= SecurityLevel5
}

// PacketSize is the sensor's coded bulk transfer chunk size:
// code N means 32<<N bytes.
type PacketSize byte

const (
	// PacketSize32 is 32 bytes per data packet
	PacketSize32 PacketSize = 0x00

	// PacketSize64 is 64 bytes per data packet
	PacketSize64 PacketSize = 0x01

	// PacketSize128 is 128 bytes per data packet, the factory default
	PacketSize128 PacketSize = 0x02

	// PacketSize256 is 256 bytes per data packet
	PacketSize256 PacketSize = 0x03
)

// Valid reports whether p is a defined packet size code.
func (p PacketSize) Valid() bool {
	return p <= PacketSize256
}

// Bytes converts the packet size code to a byte count.
func (p PacketSize) Bytes() int {
	return 32 << p
}

// PacketSizeFromBytes converts a byte count to the sensor's code.
func PacketSizeFromBytes(n int) (PacketSize, error) {
	for p := PacketSize32; p <= PacketSize256; p++ {
		if p.Bytes() == n {
			return p, nil
		}
	}
	return 0, fmt.Errorf("packet size %d is not one of 32, 64, 128, 256", n)
}
