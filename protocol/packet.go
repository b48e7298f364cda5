package protocol

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Kind identifies the role of a packet on the wire.
type Kind byte

// Packet kinds understood by the sensor.
const (
	// KindCommand marks a host-to-sensor command packet
	KindCommand Kind = 0x01

	// KindData marks an intermediate bulk data packet (more data follows)
	KindData Kind = 0x02

	// KindAck marks a sensor acknowledgement packet
	KindAck Kind = 0x07

	// KindEndOfData marks the terminal bulk data packet
	KindEndOfData Kind = 0x08
)

// Valid reports whether k is a packet kind the protocol defines.
func (k Kind) Valid() bool {
	switch k {
	case KindCommand, KindData, KindAck, KindEndOfData:
		return true
	}
	return false
}

func (k Kind) String() string {
	switch k {
	case KindCommand:
		return "command"
	case KindData:
		return "data"
	case KindAck:
		return "acknowledge"
	case KindEndOfData:
		return "end-of-data"
	default:
		return fmt.Sprintf("kind(0x%02X)", byte(k))
	}
}

// Packet is one logical frame exchanged with the sensor.
// The length and checksum fields are derived during encoding and validated
// during decoding; they are never carried separately.
type Packet struct {
	// Address identifies the target sensor (4 bytes on the wire)
	Address uint32

	// Kind is the packet role
	Kind Kind

	// Payload is the packet body, at most MaxPayloadSize bytes
	Payload []byte
}

// ErrIncomplete signals that the byte window passed to Decode does not yet
// contain a full candidate frame. It is not an error condition: the caller
// should buffer more input and retry.
var ErrIncomplete = errors.New("protocol: incomplete frame")

// CorruptError signals that the byte window starts with data that cannot be
// a valid frame. Discard reports how many leading bytes must be dropped
// before resynchronization can be attempted; it is always at least 1 so the
// caller makes forward progress.
type CorruptError struct {
	// Reason describes the structural violation
	Reason string

	// Discard is the number of leading bytes to drop before retrying
	Discard int
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("corrupt frame: %s (discard %d bytes)", e.Reason, e.Discard)
}

// Encode serializes a packet into its exact wire representation:
//
//	[MARKER(2)][ADDRESS(4)][KIND(1)][LEN(2)][PAYLOAD][CHECKSUM(2)]
//
// All multi-byte fields are big-endian. LEN counts payload bytes only.
// The checksum covers every byte from ADDRESS through PAYLOAD.
//
// Encode panics if the payload exceeds MaxPayloadSize; builders in this
// package never produce such a payload, and the transfer engine slices
// bulk data to the negotiated packet size before encoding.
func Encode(p Packet) []byte {
	if len(p.Payload) > MaxPayloadSize {
		panic(fmt.Sprintf("protocol: payload of %d bytes exceeds maximum %d", len(p.Payload), MaxPayloadSize))
	}

	frame := make([]byte, 0, MinFrameSize+len(p.Payload))
	frame = append(frame, MarkerHigh, MarkerLow)
	frame = binary.BigEndian.AppendUint32(frame, p.Address)
	frame = append(frame, byte(p.Kind))
	frame = binary.BigEndian.AppendUint16(frame, uint16(len(p.Payload)))
	frame = append(frame, p.Payload...)
	frame = binary.BigEndian.AppendUint16(frame, Checksum(frame[2:]))

	return frame
}

// Decode attempts to extract one packet from the front of buf.
//
// On success it returns the packet and the number of bytes consumed.
// If buf holds fewer bytes than a complete candidate frame, it returns
// ErrIncomplete. If the front of buf cannot be a valid frame (bad marker,
// impossible length, unknown kind, checksum mismatch), it returns a
// *CorruptError whose Discard field tells the caller how far to skip.
//
// A length field implying a frame beyond MaxFrameSize is rejected as
// corrupt immediately, without waiting for bytes that will never arrive.
func Decode(buf []byte) (*Packet, int, error) {
	if len(buf) == 0 {
		return nil, 0, ErrIncomplete
	}
	if buf[0] != MarkerHigh {
		return nil, 0, &CorruptError{Reason: fmt.Sprintf("bad start marker 0x%02X", buf[0]), Discard: 1}
	}
	if len(buf) < 2 {
		return nil, 0, ErrIncomplete
	}
	if buf[1] != MarkerLow {
		return nil, 0, &CorruptError{Reason: fmt.Sprintf("bad start marker 0x%02X%02X", buf[0], buf[1]), Discard: 1}
	}
	if len(buf) < HeaderSize {
		return nil, 0, ErrIncomplete
	}

	kind := Kind(buf[6])
	length := int(binary.BigEndian.Uint16(buf[7:9]))

	// Reject impossible frames before waiting on their payload.
	if length > MaxPayloadSize {
		return nil, 0, &CorruptError{Reason: fmt.Sprintf("length %d exceeds maximum payload %d", length, MaxPayloadSize), Discard: 2}
	}
	if !kind.Valid() {
		return nil, 0, &CorruptError{Reason: fmt.Sprintf("unknown packet kind 0x%02X", buf[6]), Discard: 2}
	}

	total := MinFrameSize + length
	if len(buf) < total {
		return nil, 0, ErrIncomplete
	}

	want := binary.BigEndian.Uint16(buf[total-ChecksumSize : total])
	got := Checksum(buf[2 : total-ChecksumSize])
	if want != got {
		return nil, 0, &CorruptError{Reason: fmt.Sprintf("checksum mismatch: got 0x%04X, expected 0x%04X", got, want), Discard: 2}
	}

	p := &Packet{
		Address: binary.BigEndian.Uint32(buf[2:6]),
		Kind:    kind,
		Payload: append([]byte(nil), buf[HeaderSize:HeaderSize+length]...),
	}

	return p, total, nil
}
