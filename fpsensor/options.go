package fpsensor

import (
	"time"

	"github.com/cwichel/fpsensor/protocol"
)

// Config holds the sensor handle configuration.
type Config struct {
	// Address is the sensor address stamped on every outbound packet
	Address uint32

	// Password is the credential used by VerifyPassword
	Password uint32

	// ReadTimeout is the budget for receiving one packet
	ReadTimeout time.Duration

	// CaptureTimeout is the budget for capture acknowledgements, which
	// arrive only after the sensor has scanned a finger
	CaptureTimeout time.Duration

	// PacketSize is the bulk transfer chunk size in bytes. Updated
	// automatically when ReadParameters observes the negotiated value.
	PacketSize int

	// Logger is used for logging operations (optional)
	Logger Logger

	// TransferCallback is called during bulk transfers (optional)
	TransferCallback TransferCallback
}

// defaultConfig returns the default configuration: factory credentials,
// the sensor's default 128-byte packet size, and timeouts sized for a
// 57600 bps link.
func defaultConfig() Config {
	return Config{
		Address:        protocol.DefaultAddress,
		Password:       protocol.DefaultPassword,
		ReadTimeout:    2 * time.Second,
		CaptureTimeout: 10 * time.Second,
		PacketSize:     protocol.PacketSize128.Bytes(),
	}
}

// Option is a functional option for configuring the sensor handle.
type Option func(*Config)

// WithAddress sets the sensor address used on every outbound packet.
//
// Example:
//
//	sensor := fpsensor.New(link, fpsensor.WithAddress(0x00000001))
func WithAddress(address uint32) Option {
	return func(c *Config) {
		c.Address = address
	}
}

// WithPassword sets the password used by VerifyPassword.
func WithPassword(password uint32) Option {
	return func(c *Config) {
		c.Password = password
	}
}

// WithReadTimeout sets the budget for receiving one packet.
//
// Example:
//
//	sensor := fpsensor.New(link, fpsensor.WithReadTimeout(5*time.Second))
func WithReadTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		if timeout > 0 {
			c.ReadTimeout = timeout
		}
	}
}

// WithCaptureTimeout sets the budget for capture acknowledgements.
// Captures block until a finger touches the window, so this is usually
// much longer than the plain read timeout.
func WithCaptureTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		if timeout > 0 {
			c.CaptureTimeout = timeout
		}
	}
}

// WithPacketSize sets the bulk transfer chunk size in bytes. The value
// must be one of the sensor's negotiable sizes (32, 64, 128, 256);
// anything else keeps the default.
func WithPacketSize(size int) Option {
	return func(c *Config) {
		if _, err := protocol.PacketSizeFromBytes(size); err == nil {
			c.PacketSize = size
		}
	}
}

// WithLogger sets a logger for sensor operations.
//
// Example:
//
//	sensor := fpsensor.New(link, fpsensor.WithLogger(myLogger))
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithTransferCallback sets a callback reporting bulk transfer progress.
//
// Example:
//
//	sensor := fpsensor.New(link,
//	    fpsensor.WithTransferCallback(func(p fpsensor.TransferProgress) {
//	        fmt.Printf("%s: %d bytes\n", p.Operation, p.Bytes)
//	    }),
//	)
func WithTransferCallback(callback TransferCallback) Option {
	return func(c *Config) {
		c.TransferCallback = callback
	}
}
