package protocol

import (
	"errors"
	"fmt"
)

var (
	ErrBufferFull       = errors.New("protocol: message buffer full")
	ErrInvalidCapacity  = errors.New("protocol: invalid buffer capacity")
	ErrFrameTooShort    = errors.New("protocol: frame too short")
	ErrInvalidMagic     = errors.New("protocol: invalid magic")
	ErrLengthMismatch   = errors.New("protocol: frame length mismatch")
	ErrChecksumMismatch = errors.New("protocol: checksum mismatch")
	ErrPayloadTooLarge  = errors.New("protocol: payload too large")
)

// PayloadError represents a payload that doesn't match its message layout.
type PayloadError struct {
	// Message is the name of the message being decoded
	Message string

	// MessageID is the ID of the frame that carried the payload
	MessageID uint16

	// Got is the payload size received
	Got int

	// Want is the payload size the message layout requires
	Want int
}

func (e *PayloadError) Error() string {
	return fmt.Sprintf("invalid %s payload (id %d): got %d bytes, expected %d",
		e.Message, e.MessageID, e.Got, e.Want)
}

// IsPayloadError returns true if the error is a PayloadError.
func IsPayloadError(err error) bool {
	var pe *PayloadError
	return errors.As(err, &pe)
}
