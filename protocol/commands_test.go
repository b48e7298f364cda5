package protocol

import (
	"bytes"
	"testing"
)

func TestCommandPayloads(t *testing.T) {
	tests := []struct {
		name    string
		packet  Packet
		payload []byte
	}{
		{
			name:    "capture image",
			packet:  BuildCaptureImageCmd(),
			payload: []byte{0x01},
		},
		{
			name:    "capture image free",
			packet:  BuildCaptureImageFreeCmd(),
			payload: []byte{0x52},
		},
		{
			name:    "verify password",
			packet:  BuildVerifyPasswordCmd(0x01020304),
			payload: []byte{0x13, 0x01, 0x02, 0x03, 0x04},
		},
		{
			name:    "set password",
			packet:  BuildSetPasswordCmd(0xAABBCCDD),
			payload: []byte{0x12, 0xAA, 0xBB, 0xCC, 0xDD},
		},
		{
			name:    "set address",
			packet:  BuildSetAddressCmd(0x00000001),
			payload: []byte{0x15, 0x00, 0x00, 0x00, 0x01},
		},
		{
			name:    "read parameters",
			packet:  BuildReadParametersCmd(),
			payload: []byte{0x0F},
		},
		{
			name:    "handshake",
			packet:  BuildHandshakeCmd(),
			payload: []byte{0x53},
		},
		{
			name:    "match",
			packet:  BuildMatchCmd(),
			payload: []byte{0x03},
		},
		{
			name:    "create template",
			packet:  BuildCreateTemplateCmd(),
			payload: []byte{0x05},
		},
		{
			name:    "store template",
			packet:  BuildStoreTemplateCmd(0x03),
			payload: []byte{0x06, 0x03},
		},
		{
			name:    "delete template",
			packet:  BuildDeleteTemplateCmd(0x2A),
			payload: []byte{0x0C, 0x2A},
		},
		{
			name:    "empty database",
			packet:  BuildEmptyDatabaseCmd(),
			payload: []byte{0x0D},
		},
		{
			name:    "template count",
			packet:  BuildTemplateCountCmd(),
			payload: []byte{0x1D},
		},
		{
			name:    "template index table",
			packet:  BuildTemplateIndexTableCmd(0x01),
			payload: []byte{0x1F, 0x01},
		},
		{
			name:    "download image",
			packet:  BuildDownloadImageCmd(),
			payload: []byte{0x0A},
		},
		{
			name:    "upload image",
			packet:  BuildUploadImageCmd(),
			payload: []byte{0x0B},
		},
		{
			name:    "random number",
			packet:  BuildRandomNumberCmd(),
			payload: []byte{0x14},
		},
		{
			name:    "backlight on",
			packet:  BuildBacklightCmd(true),
			payload: []byte{0x50},
		},
		{
			name:    "backlight off",
			packet:  BuildBacklightCmd(false),
			payload: []byte{0x51},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.packet.Kind != KindCommand {
				t.Errorf("Kind = %v, want %v", tt.packet.Kind, KindCommand)
			}
			if !bytes.Equal(tt.packet.Payload, tt.payload) {
				t.Errorf("Payload = % X, want % X", tt.packet.Payload, tt.payload)
			}
		})
	}
}

func TestValidatedCommandPayloads(t *testing.T) {
	tests := []struct {
		name    string
		build   func() (Packet, error)
		payload []byte
		wantErr bool
	}{
		{
			name:    "convert image buffer 1",
			build:   func() (Packet, error) { return BuildConvertImageCmd(Buffer1) },
			payload: []byte{0x02, 0x01},
		},
		{
			name:    "convert image invalid buffer",
			build:   func() (Packet, error) { return BuildConvertImageCmd(BufferID(0x03)) },
			wantErr: true,
		},
		{
			name:    "search",
			build:   func() (Packet, error) { return BuildSearchCmd(Buffer1, 0, 200) },
			payload: []byte{0x04, 0x01, 0x00, 0xC8},
		},
		{
			name:    "search empty range",
			build:   func() (Packet, error) { return BuildSearchCmd(Buffer1, 0, 0) },
			wantErr: true,
		},
		{
			name:    "fast search",
			build:   func() (Packet, error) { return BuildSearchFastCmd(Buffer2, 10, 50) },
			payload: []byte{0x1B, 0x02, 0x0A, 0x32},
		},
		{
			name:    "load template",
			build:   func() (Packet, error) { return BuildLoadTemplateCmd(Buffer2, 0x07) },
			payload: []byte{0x07, 0x02, 0x07},
		},
		{
			name:    "download template",
			build:   func() (Packet, error) { return BuildDownloadTemplateCmd(Buffer1) },
			payload: []byte{0x08, 0x01},
		},
		{
			name:    "upload template",
			build:   func() (Packet, error) { return BuildUploadTemplateCmd(Buffer2) },
			payload: []byte{0x09, 0x02},
		},
		{
			name:    "set parameter",
			build:   func() (Packet, error) { return BuildSetParameterCmd(ParamPacketSize, byte(PacketSize256)) },
			payload: []byte{0x0E, 0x06, 0x03},
		},
		{
			name:    "set parameter unknown register",
			build:   func() (Packet, error) { return BuildSetParameterCmd(ParameterID(0x99), 0x00) },
			wantErr: true,
		},
		{
			name:    "read notepad",
			build:   func() (Packet, error) { return BuildReadNotepadCmd(0x0F) },
			payload: []byte{0x19, 0x0F},
		},
		{
			name:    "read notepad page out of range",
			build:   func() (Packet, error) { return BuildReadNotepadCmd(0x10) },
			wantErr: true,
		},
		{
			name: "write notepad",
			build: func() (Packet, error) {
				return BuildWriteNotepadCmd(0x02, bytes.Repeat([]byte{0xAB}, NotepadPageSize))
			},
			payload: append([]byte{0x18, 0x02}, bytes.Repeat([]byte{0xAB}, NotepadPageSize)...),
		},
		{
			name: "write notepad short data",
			build: func() (Packet, error) {
				return BuildWriteNotepadCmd(0x02, []byte{0x01, 0x02})
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			packet, err := tt.build()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if packet.Kind != KindCommand {
				t.Errorf("Kind = %v, want %v", packet.Kind, KindCommand)
			}
			if !bytes.Equal(packet.Payload, tt.payload) {
				t.Errorf("Payload = % X, want % X", packet.Payload, tt.payload)
			}
		})
	}
}
