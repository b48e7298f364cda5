package protocol

import (
	"encoding/binary"
	"fmt"
)

// Command builders. Each supported sensor operation maps to exactly one
// builder returning a KindCommand packet with the opcode and its fixed
// argument layout as payload. The packet address is stamped by the caller
// before encoding. Adding an operation means adding a builder here; the
// codec, stream reader and transfer engine never change.

// command assembles a command packet from an opcode and raw argument bytes.
func command(opcode byte, args ...byte) Packet {
	payload := make([]byte, 0, 1+len(args))
	payload = append(payload, opcode)
	payload = append(payload, args...)
	return Packet{Kind: KindCommand, Payload: payload}
}

// u32 appends a big-endian 32-bit value.
func u32(v uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, v)
	return b
}

// BuildSetAddressCmd constructs a Set Address command.
//
// Payload: [CMD][ADDRESS(4)]
func BuildSetAddressCmd(address uint32) Packet {
	return command(CmdSetAddress, u32(address)...)
}

// BuildSetPasswordCmd constructs a Set Password command.
//
// Payload: [CMD][PASSWORD(4)]
func BuildSetPasswordCmd(password uint32) Packet {
	return command(CmdSetPassword, u32(password)...)
}

// BuildVerifyPasswordCmd constructs a Verify Password command.
//
// Payload: [CMD][PASSWORD(4)]
func BuildVerifyPasswordCmd(password uint32) Packet {
	return command(CmdVerifyPassword, u32(password)...)
}

// BuildSetParameterCmd constructs a Set Parameter command for one of the
// writable system registers.
//
// Payload: [CMD][PARAM][VALUE]
func BuildSetParameterCmd(param ParameterID, value byte) (Packet, error) {
	if !param.Valid() {
		return Packet{}, fmt.Errorf("unknown parameter register 0x%02X", byte(param))
	}
	return command(CmdSetParameter, byte(param), value), nil
}

// BuildReadParametersCmd constructs a Read Parameters command.
// The acknowledgement carries the 16-byte system parameter block.
func BuildReadParametersCmd() Packet {
	return command(CmdReadParameters)
}

// BuildHandshakeCmd constructs a Handshake command. A live sensor answers
// with StatusHandshakeOK instead of StatusSuccess.
func BuildHandshakeCmd() Packet {
	return command(CmdHandshake)
}

// BuildCaptureImageCmd constructs a Capture Image command.
func BuildCaptureImageCmd() Packet {
	return command(CmdCaptureImage)
}

// BuildCaptureImageFreeCmd constructs a Capture Image command that leaves
// the backlight untouched.
func BuildCaptureImageFreeCmd() Packet {
	return command(CmdCaptureImageFree)
}

// BuildConvertImageCmd constructs a Convert Image command that turns the
// image buffer into a character file in the given buffer.
//
// Payload: [CMD][BUFFER]
func BuildConvertImageCmd(buffer BufferID) (Packet, error) {
	if !buffer.Valid() {
		return Packet{}, fmt.Errorf("invalid character buffer 0x%02X", byte(buffer))
	}
	return command(CmdConvertImage, byte(buffer)), nil
}

// BuildDownloadImageCmd constructs a Download Image command. A successful
// acknowledgement is followed by the raw image as a bulk data stream.
func BuildDownloadImageCmd() Packet {
	return command(CmdDownloadImage)
}

// BuildUploadImageCmd constructs an Upload Image command. After a successful
// acknowledgement the host streams the raw image to the sensor.
func BuildUploadImageCmd() Packet {
	return command(CmdUploadImage)
}

// BuildMatchCmd constructs a Match command comparing character buffers
// 1 and 2. The acknowledgement carries the matching score.
func BuildMatchCmd() Packet {
	return command(CmdMatch)
}

// BuildSearchCmd constructs a Search command looking up the given character
// buffer in the library slots [start, start+count).
//
// Payload: [CMD][BUFFER][START][COUNT]
func BuildSearchCmd(buffer BufferID, start, count byte) (Packet, error) {
	if !buffer.Valid() {
		return Packet{}, fmt.Errorf("invalid character buffer 0x%02X", byte(buffer))
	}
	if count == 0 {
		return Packet{}, fmt.Errorf("search range cannot be empty")
	}
	return command(CmdSearch, byte(buffer), start, count), nil
}

// BuildSearchFastCmd constructs the accelerated Search variant.
//
// Payload: [CMD][BUFFER][START][COUNT]
func BuildSearchFastCmd(buffer BufferID, start, count byte) (Packet, error) {
	if !buffer.Valid() {
		return Packet{}, fmt.Errorf("invalid character buffer 0x%02X", byte(buffer))
	}
	if count == 0 {
		return Packet{}, fmt.Errorf("search range cannot be empty")
	}
	return command(CmdSearchFast, byte(buffer), start, count), nil
}

// BuildCreateTemplateCmd constructs a Create Template command merging both
// character buffers into a template model.
func BuildCreateTemplateCmd() Packet {
	return command(CmdCreateTemplate)
}

// BuildStoreTemplateCmd constructs a Store Template command saving the
// template model at the given library slot.
//
// Payload: [CMD][INDEX]
func BuildStoreTemplateCmd(index byte) Packet {
	return command(CmdStoreTemplate, index)
}

// BuildLoadTemplateCmd constructs a Load Template command reading a library
// slot into a character buffer.
//
// Payload: [CMD][BUFFER][INDEX]
func BuildLoadTemplateCmd(buffer BufferID, index byte) (Packet, error) {
	if !buffer.Valid() {
		return Packet{}, fmt.Errorf("invalid character buffer 0x%02X", byte(buffer))
	}
	return command(CmdLoadTemplate, byte(buffer), index), nil
}

// BuildDownloadTemplateCmd constructs a Download Template command. A
// successful acknowledgement is followed by the character buffer contents
// as a bulk data stream.
//
// Payload: [CMD][BUFFER]
func BuildDownloadTemplateCmd(buffer BufferID) (Packet, error) {
	if !buffer.Valid() {
		return Packet{}, fmt.Errorf("invalid character buffer 0x%02X", byte(buffer))
	}
	return command(CmdDownloadTemplate, byte(buffer)), nil
}

// BuildUploadTemplateCmd constructs an Upload Template command. After a
// successful acknowledgement the host streams the character data.
//
// Payload: [CMD][BUFFER]
func BuildUploadTemplateCmd(buffer BufferID) (Packet, error) {
	if !buffer.Valid() {
		return Packet{}, fmt.Errorf("invalid character buffer 0x%02X", byte(buffer))
	}
	return command(CmdUploadTemplate, byte(buffer)), nil
}

// BuildDeleteTemplateCmd constructs a Delete Template command removing one
// library slot.
//
// Payload: [CMD][INDEX]
func BuildDeleteTemplateCmd(index byte) Packet {
	return command(CmdDeleteTemplate, index)
}

// BuildEmptyDatabaseCmd constructs an Empty Database command clearing the
// whole template library.
func BuildEmptyDatabaseCmd() Packet {
	return command(CmdEmptyDatabase)
}

// BuildTemplateCountCmd constructs a Template Count command.
func BuildTemplateCountCmd() Packet {
	return command(CmdTemplateCount)
}

// BuildTemplateIndexTableCmd constructs a Template Index Table command
// reading one 32-byte page of the slot occupancy bitmap.
//
// Payload: [CMD][PAGE]
func BuildTemplateIndexTableCmd(page byte) Packet {
	return command(CmdTemplateIndexTable, page)
}

// BuildWriteNotepadCmd constructs a Write Notepad command. The data must be
// exactly one notepad page.
//
// Payload: [CMD][PAGE][DATA(32)]
func BuildWriteNotepadCmd(page byte, data []byte) (Packet, error) {
	if int(page) >= NotepadPageCount {
		return Packet{}, fmt.Errorf("notepad page %d out of range, sensor has %d pages", page, NotepadPageCount)
	}
	if len(data) != NotepadPageSize {
		return Packet{}, fmt.Errorf("notepad data must be exactly %d bytes, got %d", NotepadPageSize, len(data))
	}
	args := make([]byte, 0, 1+NotepadPageSize)
	args = append(args, page)
	args = append(args, data...)
	return command(CmdWriteNotepad, args...), nil
}

// BuildReadNotepadCmd constructs a Read Notepad command.
//
// Payload: [CMD][PAGE]
func BuildReadNotepadCmd(page byte) (Packet, error) {
	if int(page) >= NotepadPageCount {
		return Packet{}, fmt.Errorf("notepad page %d out of range, sensor has %d pages", page, NotepadPageCount)
	}
	return command(CmdReadNotepad, page), nil
}

// BuildRandomNumberCmd constructs a Generate Random Number command.
func BuildRandomNumberCmd() Packet {
	return command(CmdRandomNumber)
}

// BuildBacklightCmd constructs a backlight control command.
func BuildBacklightCmd(on bool) Packet {
	if on {
		return command(CmdBacklightOn)
	}
	return command(CmdBacklightOff)
}
