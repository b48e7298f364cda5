package protocol

import "fmt"

// StatusCode is the sensor-reported outcome byte carried in every
// acknowledgement. The set below is closed and append-only; bytes outside
// it decode to a formatted "unknown status" name rather than a panic.
type StatusCode byte

// Status codes reported by the sensor.
const (
	// StatusSuccess indicates the command was received and executed
	StatusSuccess StatusCode = 0x00

	// StatusHandshakeOK is the dedicated success byte of the handshake command
	StatusHandshakeOK StatusCode = 0x55

	// StatusPacketTransmission indicates a packet receive error on the sensor
	StatusPacketTransmission StatusCode = 0x01

	// StatusNoFinger indicates no finger was present on the sensor window
	StatusNoFinger StatusCode = 0x02

	// StatusEnrollFailed indicates the finger image could not be enrolled
	StatusEnrollFailed StatusCode = 0x03

	// StatusImageMessy indicates the captured image is too disordered to use
	StatusImageMessy StatusCode = 0x06

	// StatusFewFeaturePoints indicates too few feature points in the image
	StatusFewFeaturePoints StatusCode = 0x07

	// StatusNoMatch indicates the compared character buffers do not match
	StatusNoMatch StatusCode = 0x08

	// StatusNotFound indicates no matching template in the searched range
	StatusNotFound StatusCode = 0x09

	// StatusCharacteristicsMismatch indicates the buffers cannot be merged
	StatusCharacteristicsMismatch StatusCode = 0x0A

	// StatusInvalidIndex indicates the template slot is out of range
	StatusInvalidIndex StatusCode = 0x0B

	// StatusTemplateLoadFailed indicates a template could not be loaded
	StatusTemplateLoadFailed StatusCode = 0x0C

	// StatusTemplateDownloadFailed indicates a template stream failed
	StatusTemplateDownloadFailed StatusCode = 0x0D

	// StatusPacketReception indicates the sensor rejected a received packet
	StatusPacketReception StatusCode = 0x0E

	// StatusImageDownloadFailed indicates an image stream failed
	StatusImageDownloadFailed StatusCode = 0x0F

	// StatusTemplateDeleteFailed indicates a template could not be deleted
	StatusTemplateDeleteFailed StatusCode = 0x10

	// StatusTemplateEmptyFailed indicates the library could not be cleared
	StatusTemplateEmptyFailed StatusCode = 0x11

	// StatusBadPassword indicates the supplied password is wrong
	StatusBadPassword StatusCode = 0x13

	// StatusInvalidImage indicates the image buffer holds no valid image
	StatusInvalidImage StatusCode = 0x15

	// StatusFlashError indicates a sensor-internal flash write failure
	StatusFlashError StatusCode = 0x18

	// StatusUndefined is the sensor's own catch-all failure byte
	StatusUndefined StatusCode = 0x19

	// StatusInvalidRegister indicates an unknown parameter register
	StatusInvalidRegister StatusCode = 0x1A

	// StatusInvalidConfiguration indicates an out-of-range parameter value
	StatusInvalidConfiguration StatusCode = 0x1B

	// StatusInvalidNotepadPage indicates the notepad page is out of range
	StatusInvalidNotepadPage StatusCode = 0x1C

	// StatusCommPort indicates a sensor-side communication port failure
	StatusCommPort StatusCode = 0x1D

	// StatusBadAddress indicates the packet address did not match the sensor
	StatusBadAddress StatusCode = 0x20

	// StatusPasswordRequired indicates the password must be verified first
	StatusPasswordRequired StatusCode = 0x21

	// StatusTemplateUploadFailed indicates a host-to-sensor template
	// stream failed
	StatusTemplateUploadFailed StatusCode = 0xFD

	// StatusDatabaseFull indicates the template library has no free slot
	StatusDatabaseFull StatusCode = 0xFE

	// StatusTimeout indicates the sensor gave up waiting for the finger
	StatusTimeout StatusCode = 0xFF
)

func (s StatusCode) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusHandshakeOK:
		return "handshake ok"
	case StatusPacketTransmission:
		return "packet transmission error"
	case StatusNoFinger:
		return "no finger on sensor"
	case StatusEnrollFailed:
		return "enroll failed"
	case StatusImageMessy:
		return "image too messy"
	case StatusFewFeaturePoints:
		return "too few feature points"
	case StatusNoMatch:
		return "fingers do not match"
	case StatusNotFound:
		return "no matching template found"
	case StatusCharacteristicsMismatch:
		return "characteristics mismatch"
	case StatusInvalidIndex:
		return "invalid template index"
	case StatusTemplateLoadFailed:
		return "template load failed"
	case StatusTemplateDownloadFailed:
		return "template download failed"
	case StatusPacketReception:
		return "packet reception error"
	case StatusImageDownloadFailed:
		return "image download failed"
	case StatusTemplateDeleteFailed:
		return "template delete failed"
	case StatusTemplateEmptyFailed:
		return "template library clear failed"
	case StatusBadPassword:
		return "wrong password"
	case StatusInvalidImage:
		return "invalid image"
	case StatusFlashError:
		return "flash write error"
	case StatusUndefined:
		return "undefined sensor error"
	case StatusInvalidRegister:
		return "invalid parameter register"
	case StatusInvalidConfiguration:
		return "invalid parameter value"
	case StatusInvalidNotepadPage:
		return "invalid notepad page"
	case StatusCommPort:
		return "communication port failure"
	case StatusBadAddress:
		return "address mismatch"
	case StatusPasswordRequired:
		return "password verification required"
	case StatusTemplateUploadFailed:
		return "template upload failed"
	case StatusDatabaseFull:
		return "template library full"
	case StatusTimeout:
		return "sensor timeout"
	default:
		return fmt.Sprintf("unknown status 0x%02X", byte(s))
	}
}

// SensorError represents an operation the sensor explicitly rejected.
// It carries the specific named outcome so callers can branch on it
// (re-place finger vs. library full) rather than a generic failure.
type SensorError struct {
	// Operation is the command that failed
	Operation string

	// Status is the outcome byte from the acknowledgement
	Status StatusCode
}

func (e *SensorError) Error() string {
	return fmt.Sprintf("%s failed: %s (0x%02X)", e.Operation, e.Status, byte(e.Status))
}

// IsSensorError returns true if the error is a SensorError.
func IsSensorError(err error) bool {
	_, ok := err.(*SensorError)
	return ok
}
