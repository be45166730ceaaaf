package link

import (
	"time"

	"github.com/moffa90/go-brping/protocol"
)

// Config holds the receiver and client configuration.
type Config struct {
	// Capacity is the parser receive buffer size in bytes
	Capacity int

	// ChecksumType is the frame checksum algorithm used on the link
	ChecksumType protocol.ChecksumType

	// ReadBufferSize is the number of bytes requested per Read call
	ReadBufferSize int

	// FrameCallback is called for every verified frame (optional)
	FrameCallback FrameCallback

	// ChecksumErrorCallback is called for every frame that fails verification (optional)
	ChecksumErrorCallback ChecksumErrorCallback

	// Logger is used for logging operations (optional)
	Logger Logger

	// ReadTimeout bounds each request when the transport supports read deadlines
	ReadTimeout time.Duration

	// Retries is the number of times a request is resent when no reply arrives
	Retries int

	// SourceID is the device ID this end of the link sends from
	SourceID byte

	// DeviceID is the device ID requests are addressed to
	DeviceID byte
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Capacity:       protocol.DefaultCapacity,
		ChecksumType:   protocol.ChecksumSum,
		ReadBufferSize: 256,
		ReadTimeout:    time.Second,
		Retries:        2,
		SourceID:       0,
		DeviceID:       protocol.BroadcastID,
	}
}

// Option is a functional option for configuring a Receiver or Client.
type Option func(*Config)

// WithCapacity sets the parser receive buffer size.
// Values outside protocol.MinCapacity-protocol.MaxCapacity are ignored.
//
// Example:
//
//	recv, err := link.NewReceiver(port, link.WithCapacity(1024))
func WithCapacity(capacity int) Option {
	return func(c *Config) {
		if capacity >= protocol.MinCapacity && capacity <= protocol.MaxCapacity {
			c.Capacity = capacity
		}
	}
}

// WithChecksumType sets the frame checksum algorithm.
func WithChecksumType(t protocol.ChecksumType) Option {
	return func(c *Config) {
		c.ChecksumType = t
	}
}

// WithReadBufferSize sets how many bytes are requested per Read call.
// Use 1 for transports that must not be over-read.
func WithReadBufferSize(size int) Option {
	return func(c *Config) {
		if size > 0 {
			c.ReadBufferSize = size
		}
	}
}

// WithFrameCallback sets a callback invoked for every verified frame.
//
// Example:
//
//	recv, err := link.NewReceiver(port,
//	    link.WithFrameCallback(func(f *protocol.Frame) {
//	        fmt.Printf("id=%d from=%d\n", f.MessageID, f.SourceID)
//	    }),
//	)
func WithFrameCallback(callback FrameCallback) Option {
	return func(c *Config) {
		c.FrameCallback = callback
	}
}

// WithChecksumErrorCallback sets a callback invoked for every frame that
// fails checksum verification.
func WithChecksumErrorCallback(callback ChecksumErrorCallback) Option {
	return func(c *Config) {
		c.ChecksumErrorCallback = callback
	}
}

// WithLogger sets a logger for link operations.
//
// Example:
//
//	recv, err := link.NewReceiver(port, link.WithLogger(myLogger))
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithReadTimeout sets the per-request read deadline.
// It only takes effect on transports with a SetReadDeadline method.
func WithReadTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.ReadTimeout = timeout
	}
}

// WithRetries sets the number of times a request is resent.
//
// Example:
//
//	client, err := link.NewClient(port, link.WithRetries(5))
func WithRetries(retries int) Option {
	return func(c *Config) {
		if retries >= 0 {
			c.Retries = retries
		}
	}
}

// WithSourceID sets the device ID outgoing frames are sent from.
func WithSourceID(id byte) Option {
	return func(c *Config) {
		c.SourceID = id
	}
}

// WithDeviceID sets the device ID requests are addressed to.
func WithDeviceID(id byte) Option {
	return func(c *Config) {
		c.DeviceID = id
	}
}
