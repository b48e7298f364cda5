package protocol

import (
	"encoding/binary"
	"fmt"
)

// ParseAck extracts the status code and remaining data from an
// acknowledgement packet. It validates the packet kind and the presence of
// the status byte; status interpretation is up to the caller.
func ParseAck(p *Packet) (StatusCode, []byte, error) {
	if p.Kind != KindAck {
		return 0, nil, fmt.Errorf("expected acknowledge packet, got %s", p.Kind)
	}
	if len(p.Payload) == 0 {
		return 0, nil, fmt.Errorf("acknowledge packet carries no status byte")
	}
	return StatusCode(p.Payload[0]), p.Payload[1:], nil
}

// SystemParameters is the sensor's 16-byte system parameter block.
//
// Data format (big-endian):
//
//	[STATUS(2)][ID(2)][CAPACITY(2)][SECURITY(2)][ADDRESS(4)][PACKET(2)][BAUD(2)]
type SystemParameters struct {
	// StatusRegister is the low nibble of the sensor status register
	StatusRegister uint16

	// SystemID is the sensor system identifier
	SystemID uint16

	// Capacity is the number of template library slots
	Capacity uint16

	// Security is the configured matching security level
	Security SecurityLevel

	// Address is the configured sensor address
	Address uint32

	// PacketSize is the configured bulk transfer packet size code
	PacketSize PacketSize

	// Baudrate is the configured UART baudrate code
	Baudrate Baudrate
}

// ParseSystemParameters parses the Read Parameters response block.
func ParseSystemParameters(data []byte) (*SystemParameters, error) {
	if len(data) != SystemParametersSize {
		return nil, fmt.Errorf("invalid data length for system parameters: got %d bytes, expected %d", len(data), SystemParametersSize)
	}

	security := SecurityLevel(binary.BigEndian.Uint16(data[6:8]))
	if !security.Valid() {
		return nil, fmt.Errorf("invalid security level 0x%04X in parameter block", binary.BigEndian.Uint16(data[6:8]))
	}
	packet := PacketSize(binary.BigEndian.Uint16(data[12:14]))
	if !packet.Valid() {
		return nil, fmt.Errorf("invalid packet size code 0x%04X in parameter block", binary.BigEndian.Uint16(data[12:14]))
	}
	baud := Baudrate(binary.BigEndian.Uint16(data[14:16]))
	if !baud.Valid() {
		return nil, fmt.Errorf("invalid baudrate code 0x%04X in parameter block", binary.BigEndian.Uint16(data[14:16]))
	}

	return &SystemParameters{
		StatusRegister: binary.BigEndian.Uint16(data[0:2]) & 0x0F,
		SystemID:       binary.BigEndian.Uint16(data[2:4]),
		Capacity:       binary.BigEndian.Uint16(data[4:6]),
		Security:       security,
		Address:        binary.BigEndian.Uint32(data[8:12]),
		PacketSize:     packet,
		Baudrate:       baud,
	}, nil
}

// SearchResult is a successful library search outcome.
type SearchResult struct {
	// Index is the matching library slot
	Index byte

	// Score is the matching accuracy score
	Score uint16
}

// ParseSearchResult parses the Search command response data.
//
// Data format: [INDEX(1)][SCORE(2)]
func ParseSearchResult(data []byte) (*SearchResult, error) {
	if len(data) != SearchResultSize {
		return nil, fmt.Errorf("invalid data length for search result: got %d bytes, expected %d", len(data), SearchResultSize)
	}
	return &SearchResult{
		Index: data[0],
		Score: binary.BigEndian.Uint16(data[1:3]),
	}, nil
}

// ParseMatchScore parses the Match command response data.
//
// Data format: [SCORE(2)]
func ParseMatchScore(data []byte) (uint16, error) {
	if len(data) != MatchResultSize {
		return 0, fmt.Errorf("invalid data length for match score: got %d bytes, expected %d", len(data), MatchResultSize)
	}
	return binary.BigEndian.Uint16(data), nil
}

// ParseTemplateCount parses the Template Count command response data.
//
// Data format: [COUNT(2)]
func ParseTemplateCount(data []byte) (uint16, error) {
	if len(data) != TemplateCountSize {
		return 0, fmt.Errorf("invalid data length for template count: got %d bytes, expected %d", len(data), TemplateCountSize)
	}
	return binary.BigEndian.Uint16(data), nil
}

// ParseRandomNumber parses the Generate Random Number response data.
//
// Data format: [VALUE(4)]
func ParseRandomNumber(data []byte) (uint32, error) {
	if len(data) != RandomNumberSize {
		return 0, fmt.Errorf("invalid data length for random number: got %d bytes, expected %d", len(data), RandomNumberSize)
	}
	return binary.BigEndian.Uint32(data), nil
}

// ParseIndexTable parses one slot occupancy bitmap page into a slice of
// 256 booleans, one per slot, LSB first within each byte.
func ParseIndexTable(data []byte) ([]bool, error) {
	if len(data) != IndexTablePageSize {
		return nil, fmt.Errorf("invalid data length for index table page: got %d bytes, expected %d", len(data), IndexTablePageSize)
	}
	slots := make([]bool, IndexTablePageSize*8)
	for i, b := range data {
		for bit := 0; bit < 8; bit++ {
			slots[i*8+bit] = b&(1<<bit) != 0
		}
	}
	return slots, nil
}

// ParseNotepadPage parses the Read Notepad response data.
func ParseNotepadPage(data []byte) ([]byte, error) {
	if len(data) != NotepadPageSize {
		return nil, fmt.Errorf("invalid data length for notepad page: got %d bytes, expected %d", len(data), NotepadPageSize)
	}
	return append([]byte(nil), data...), nil
}
