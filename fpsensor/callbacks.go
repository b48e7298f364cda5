package fpsensor

// TransferProgress describes the state of an in-flight bulk transfer.
// Passed to TransferCallback after every data packet.
type TransferProgress struct {
	// Operation is the command that started the transfer
	Operation string

	// Direction is "download" or "upload"
	Direction string

	// Packets is the number of data packets processed so far
	Packets int

	// Bytes is the number of payload bytes processed so far
	Bytes int

	// Done is true once the terminal end-of-data packet is processed
	Done bool
}

// TransferCallback is called during bulk transfers to report progress.
// Implementations must return quickly and must not touch the sensor handle;
// the transaction that triggered the callback is still in flight.
type TransferCallback func(TransferProgress)

// Logger is an optional logging interface that can be provided to the
// sensor handle. This allows integration with any logging framework.
//
// Example with the standard log package:
//
//	type StdLogger struct{}
//	func (l *StdLogger) Debug(msg string, kv ...interface{}) { log.Println(msg, kv) }
//	func (l *StdLogger) Info(msg string, kv ...interface{})  { log.Println(msg, kv) }
//	func (l *StdLogger) Error(msg string, kv ...interface{}) { log.Println(msg, kv) }
//
//	sensor := fpsensor.New(link, fpsensor.WithLogger(&StdLogger{}))
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...interface{})

	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...interface{})

	// Error logs an error message with optional key-value pairs
	Error(msg string, keysAndValues ...interface{})
}
