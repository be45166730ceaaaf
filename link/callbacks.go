package link

import "github.com/moffa90/go-brping/protocol"

// Stats reports lifetime counters for a Receiver.
type Stats struct {
	// Parsed is the number of frames that passed checksum verification
	Parsed uint64

	// Errors is the number of complete frames that failed checksum verification
	Errors uint64

	// Resyncs is the number of partial frames dropped as noise
	Resyncs uint64

	// BytesRead is the number of bytes read from the transport
	BytesRead uint64
}

// ChecksumError describes a frame that arrived complete but failed verification.
// Passed to ChecksumErrorCallback.
type ChecksumError struct {
	// MessageID is the ID field of the rejected frame
	MessageID uint16

	// PayloadLength is the declared payload length of the rejected frame
	PayloadLength uint16

	// Stored is the checksum carried by the frame
	Stored uint16

	// Calculated is the checksum computed over the received bytes
	Calculated uint16
}

// FrameCallback is called for every verified frame.
// Implementations should return quickly to avoid stalling the read loop.
type FrameCallback func(*protocol.Frame)

// ChecksumErrorCallback is called for every frame that fails verification.
type ChecksumErrorCallback func(ChecksumError)

// Logger is an optional logging interface that can be provided to a
// Receiver or Client. This allows integration with any logging framework.
//
// internal/logging provides a logrus-backed implementation.
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...interface{})

	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...interface{})

	// Error logs an error message with optional key-value pairs
	Error(msg string, keysAndValues ...interface{})
}
