// Package protocol implements the wire protocol of ZhianTec-style optical
// fingerprint sensor modules.
//
// This package provides the frame codec, the command builders, and the typed
// response parsers. It performs no I/O; the fpsensor package drives it
// against a transport.
//
// # Protocol Overview
//
// Every frame on the wire has the same layout:
//
//	[MARKER(2)=0xEF01][ADDRESS(4)][KIND(1)][LEN(2)][PAYLOAD...][CHECKSUM(2)]
//
// All multi-byte fields are big-endian. LEN counts payload bytes only.
// CHECKSUM is the modulo-65536 sum of every byte from ADDRESS through
// PAYLOAD. Four packet kinds exist: command (0x01), data (0x02),
// acknowledge (0x07) and end-of-data (0x08).
//
// Commands carry an opcode byte followed by fixed-width arguments.
// Acknowledgements carry a status byte followed by command-specific data.
// Bulk payloads (images, templates) travel as runs of data packets closed
// by a single end-of-data packet.
//
// # Command Builders
//
// Use the Build* functions to create command packets:
//
//	cmd := protocol.BuildVerifyPasswordCmd(0x00000000)
//	cmd := protocol.BuildStoreTemplateCmd(3)
//	// ... etc
//
// Builders leave the packet address zero; stamp it before encoding:
//
//	cmd.Address = protocol.DefaultAddress
//	wire := protocol.Encode(cmd)
//
// # Frame Decoding
//
// Decode is partial-input-safe. Feed it a growing byte window:
//
//	pkt, n, err := protocol.Decode(window)
//	switch {
//	case err == nil:
//	    // pkt is valid, n bytes consumed
//	case errors.Is(err, protocol.ErrIncomplete):
//	    // read more bytes and retry
//	default:
//	    var corrupt *protocol.CorruptError
//	    if errors.As(err, &corrupt) {
//	        // drop corrupt.Discard bytes and resynchronize
//	    }
//	}
//
// # Status Codes
//
// Acknowledgement status bytes map to the closed StatusCode set. Use
// SensorError for structured sensor-side failures:
//
//	status, data, err := protocol.ParseAck(pkt)
//	if status != protocol.StatusSuccess {
//	    return &protocol.SensorError{Operation: "capture image", Status: status}
//	}
package protocol
