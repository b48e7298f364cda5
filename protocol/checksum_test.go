package protocol

import "testing"

func TestChecksum(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want uint16
	}{
		{
			name: "empty input",
			data: nil,
			want: 0x0000,
		},
		{
			name: "single byte",
			data: []byte{0x07},
			want: 0x0007,
		},
		{
			name: "store template header and payload",
			data: []byte{0xFF, 0xFF, 0xFF, 0xFF, 0x01, 0x00, 0x02, 0x06, 0x03},
			want: 0x0408,
		},
		{
			name: "sum wraps modulo 65536",
			data: make256(0xFF),
			want: 0xFF00, // 256 * 255 = 65280
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Checksum(tt.data); got != tt.want {
				t.Errorf("Checksum() = 0x%04X, want 0x%04X", got, tt.want)
			}
		})
	}
}

func TestChecksumWrapsAround(t *testing.T) {
	// 258 * 0xFF = 65790 = 65536 + 254
	data := append(make256(0xFF), 0xFF, 0xFF)
	if got := Checksum(data); got != 0x00FE {
		t.Errorf("Checksum() = 0x%04X, want 0x00FE", got)
	}
}

func make256(b byte) []byte {
	data := make([]byte, 256)
	for i := range data {
		data[i] = b
	}
	return data
}
