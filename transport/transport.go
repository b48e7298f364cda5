// Package transport defines the byte-stream boundary between the fpsensor
// core and the physical link, plus a concrete serial port implementation.
//
// The core assumes nothing about the medium beyond an ordered, possibly
// lossy byte stream with caller-specified read timeouts. Any transport
// (UART, USB-serial bridge, an in-memory pipe for tests) can be plugged in
// by implementing the Transport interface.
package transport

import (
	"errors"
	"fmt"
	"time"
)

// Transport is an ordered, possibly corrupting byte stream to the sensor.
type Transport interface {
	// Read fills p with available bytes, possibly fewer than len(p).
	// It blocks until at least one byte arrives or the timeout elapses,
	// returning ErrTimeout in the latter case and a *LinkError on medium
	// failure.
	Read(p []byte, timeout time.Duration) (int, error)

	// Write sends p in full, returning a *LinkError on medium failure.
	Write(p []byte) error

	// Close releases the underlying medium.
	Close() error
}

// ErrTimeout signals that no bytes arrived within the read budget.
var ErrTimeout = errors.New("transport: read timed out")

// LinkError wraps a failure of the underlying medium.
type LinkError struct {
	// Op is the operation that failed ("read", "write", "open")
	Op string

	// Err is the underlying medium error
	Err error
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("link %s failed: %v", e.Op, e.Err)
}

func (e *LinkError) Unwrap() error {
	return e.Err
}
