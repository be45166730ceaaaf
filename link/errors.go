package link

import (
	"errors"
	"fmt"
)

var (
	ErrNilTransport = errors.New("link: transport cannot be nil")
	ErrNoReply      = errors.New("link: no reply")
)

// NackError indicates that the device rejected a request.
type NackError struct {
	// RequestID is the message ID that was requested or sent
	RequestID uint16

	// NackedID is the message ID the device reported as rejected
	NackedID uint16

	// Reason is the device's explanation (may be empty)
	Reason string
}

func (e *NackError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("device rejected message %d", e.NackedID)
	}
	return fmt.Sprintf("device rejected message %d: %s", e.NackedID, e.Reason)
}

// UnexpectedReplyError indicates that the device answered with a different
// message than the one requested.
type UnexpectedReplyError struct {
	Expected uint16
	Actual   uint16
}

func (e *UnexpectedReplyError) Error() string {
	return fmt.Sprintf("unexpected reply: expected message %d, got %d", e.Expected, e.Actual)
}
