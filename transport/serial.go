package transport

import (
	"io"
	"time"

	"github.com/tarm/serial"
)

// pollInterval is the read granularity of the underlying serial port.
// Reads against the port return after this long with no data, letting
// Serial.Read honor an arbitrary caller deadline without busy-waiting.
const pollInterval = 50 * time.Millisecond

// Serial is a Transport over a UART serial port.
type Serial struct {
	port *serial.Port
}

// OpenSerial opens the named serial port (e.g. "/dev/ttyUSB0", "COM15")
// at the given baudrate. The sensor's factory default is 57600 bps.
func OpenSerial(name string, baud int) (*Serial, error) {
	port, err := serial.OpenPort(&serial.Config{
		Name:        name,
		Baud:        baud,
		Parity:      serial.ParityNone,
		ReadTimeout: pollInterval,
	})
	if err != nil {
		return nil, &LinkError{Op: "open", Err: err}
	}
	return &Serial{port: port}, nil
}

// Read fills p with available bytes, waiting up to timeout for the first
// byte to arrive. The port is polled on a short interval; an expired poll
// with no data is not an error until the overall deadline passes.
func (s *Serial) Read(p []byte, timeout time.Duration) (int, error) {
	deadline := time.Now().Add(timeout)
	for {
		n, err := s.port.Read(p)
		if n > 0 {
			return n, nil
		}
		// An empty poll surfaces as io.EOF on some platforms.
		if err != nil && err != io.EOF {
			return 0, &LinkError{Op: "read", Err: err}
		}
		if !time.Now().Before(deadline) {
			return 0, ErrTimeout
		}
	}
}

// Write sends p in full.
func (s *Serial) Write(p []byte) error {
	n, err := s.port.Write(p)
	if err != nil {
		return &LinkError{Op: "write", Err: err}
	}
	if n != len(p) {
		return &LinkError{Op: "write", Err: io.ErrShortWrite}
	}
	return nil
}

// Close releases the serial port.
func (s *Serial) Close() error {
	return s.port.Close()
}
