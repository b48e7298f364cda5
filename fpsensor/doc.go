// Package fpsensor provides a high-level client for ZhianTec-style optical
// fingerprint sensor modules over a serial link.
//
// # Overview
//
// The package drives the sensor's command/acknowledge protocol and its
// multi-packet bulk transfers:
//   - Capturing finger images and converting them to character files
//   - Creating, storing, loading, searching and deleting templates
//   - Streaming raw images and templates between host and sensor
//   - Managing the sensor's address, password and system parameters
//
// # Basic Usage
//
//	link, err := transport.OpenSerial("/dev/ttyUSB0", 57600)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer link.Close()
//
//	sensor := fpsensor.New(link)
//
//	ctx := context.Background()
//	if err := sensor.VerifyPassword(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	if err := sensor.CaptureImage(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// # Error Handling
//
// Every operation returns a discriminated error, never an undifferentiated
// failure:
//   - *protocol.SensorError: the sensor rejected the operation, carrying
//     the specific named outcome (no finger, library full, no match, ...)
//   - transport.ErrTimeout / *transport.LinkError: communication failure
//   - *TransferError: a bulk stream failed; accumulated data was discarded
//   - *ResponseError: a structurally valid packet that does not fit the
//     transaction
//
// Callers commonly branch on the sensor outcome:
//
//	err := sensor.CaptureImage(ctx)
//	var serr *protocol.SensorError
//	if errors.As(err, &serr) && serr.Status == protocol.StatusNoFinger {
//	    // prompt the user to place a finger and retry
//	}
//
// # Concurrency
//
// The link is a single shared stateful resource with no transaction
// identifiers: one command at a time, strictly half-duplex. The handle is
// not safe for concurrent use; callers sharing one sensor across
// goroutines must serialize externally, and issuing a command while
// another is in flight may panic. No retry is ever performed by the
// handle itself, because re-issuing a command mid-protocol without a
// transaction identifier is unsafe. Re-issue the whole operation at the
// caller level after a timeout.
//
// # Hardware Independence
//
// The package does not open serial ports itself. Any implementation of
// transport.Transport works: the shipped UART transport, an in-memory
// pipe for tests, or a custom bridge.
package fpsensor
