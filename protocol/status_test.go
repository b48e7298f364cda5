package protocol

import (
	"strings"
	"testing"
)

// definedStatuses is the full closed set of named status codes.
var definedStatuses = []StatusCode{
	StatusSuccess,
	StatusHandshakeOK,
	StatusPacketTransmission,
	StatusNoFinger,
	StatusEnrollFailed,
	StatusImageMessy,
	StatusFewFeaturePoints,
	StatusNoMatch,
	StatusNotFound,
	StatusCharacteristicsMismatch,
	StatusInvalidIndex,
	StatusTemplateLoadFailed,
	StatusTemplateDownloadFailed,
	StatusPacketReception,
	StatusImageDownloadFailed,
	StatusTemplateDeleteFailed,
	StatusTemplateEmptyFailed,
	StatusBadPassword,
	StatusInvalidImage,
	StatusFlashError,
	StatusUndefined,
	StatusInvalidRegister,
	StatusInvalidConfiguration,
	StatusInvalidNotepadPage,
	StatusCommPort,
	StatusBadAddress,
	StatusPasswordRequired,
	StatusTemplateUploadFailed,
	StatusDatabaseFull,
	StatusTimeout,
}

func TestStatusCodeNames(t *testing.T) {
	seen := make(map[StatusCode]bool)
	for _, status := range definedStatuses {
		if seen[status] {
			t.Errorf("status 0x%02X appears twice in the defined set", byte(status))
		}
		seen[status] = true

		name := status.String()
		if name == "" {
			t.Errorf("status 0x%02X has empty name", byte(status))
		}
		if strings.HasPrefix(name, "unknown status") {
			t.Errorf("defined status 0x%02X maps to %q", byte(status), name)
		}
	}
}

func TestStatusCodeUnknown(t *testing.T) {
	defined := make(map[StatusCode]bool)
	for _, status := range definedStatuses {
		defined[status] = true
	}

	// Every undefined byte must map to the unknown-status name without
	// panicking the decoder.
	for b := 0; b < 256; b++ {
		status := StatusCode(b)
		if defined[status] {
			continue
		}
		if got := status.String(); !strings.HasPrefix(got, "unknown status") {
			t.Errorf("undefined status 0x%02X maps to %q, want unknown", b, got)
		}
	}
}

func TestSensorError(t *testing.T) {
	err := &SensorError{Operation: "capture image", Status: StatusNoFinger}

	want := "capture image failed: no finger on sensor (0x02)"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	if !IsSensorError(err) {
		t.Error("IsSensorError() = false for *SensorError")
	}
	if IsSensorError(nil) {
		t.Error("IsSensorError(nil) = true")
	}
}
