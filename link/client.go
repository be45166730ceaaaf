package link

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/moffa90/go-brping/protocol"
)

// deadliner is implemented by transports that support read deadlines,
// such as net.Conn and most serial port libraries.
type deadliner interface {
	SetReadDeadline(t time.Time) error
}

// Client exchanges frames with a single device over a bidirectional transport.
//
// Client is not safe for concurrent use.
type Client struct {
	rw     io.ReadWriter
	recv   *Receiver
	config Config
}

// NewClient creates a Client for the given transport and options.
// The transport must implement io.ReadWriter.
//
// Example:
//
//	client, err := link.NewClient(port,
//	    link.WithDeviceID(1),
//	    link.WithRetries(3),
//	)
//	f, err := client.Request(ctx, protocol.IDProtocolVersion)
func NewClient(rw io.ReadWriter, opts ...Option) (*Client, error) {
	if rw == nil {
		return nil, ErrNilTransport
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	recv, err := newReceiver(rw, cfg)
	if err != nil {
		return nil, err
	}

	return &Client{
		rw:     rw,
		recv:   recv,
		config: cfg,
	}, nil
}

// Send encodes f and writes it to the transport. Source and destination
// IDs are taken from f as given.
func (c *Client) Send(ctx context.Context, f protocol.Frame) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	frame, err := protocol.EncodeFrame(f, c.config.ChecksumType)
	if err != nil {
		return err
	}

	return c.write(frame)
}

// Receiver returns the receiver reading the transport, for unsolicited frames.
func (c *Client) Receiver() *Receiver {
	return c.recv
}

// Request asks the device for the message with the given ID and waits for it.
//
// The request is resent up to Retries times if the stream ends before a
// reply arrives. A Nack for the request yields a *NackError.
//
// Example:
//
//	f, err := client.Request(ctx, protocol.IDDeviceInformation)
//	info, err := protocol.ParseDeviceInformation(f.Payload)
func (c *Client) Request(ctx context.Context, messageID uint16) (*protocol.Frame, error) {
	cmd, err := protocol.BuildGeneralRequest(c.config.SourceID, c.config.DeviceID, messageID, c.config.ChecksumType)
	if err != nil {
		return nil, err
	}

	return c.exchange(ctx, cmd, "request", func(f *protocol.Frame) (bool, error) {
		if f.MessageID == messageID {
			return true, nil
		}
		return c.checkNack(f, messageID, protocol.IDGeneralRequest)
	})
}

// SetDeviceID assigns newID to the configured device and waits for its Ack.
// Subsequent requests from this client are addressed to newID.
func (c *Client) SetDeviceID(ctx context.Context, newID byte) error {
	cmd, err := protocol.BuildSetDeviceID(c.config.SourceID, c.config.DeviceID, newID, c.config.ChecksumType)
	if err != nil {
		return err
	}

	_, err = c.exchange(ctx, cmd, "set device id", func(f *protocol.Frame) (bool, error) {
		if f.MessageID == protocol.IDAck {
			acked, err := protocol.ParseAck(f.Payload)
			if err != nil {
				return false, err
			}
			if acked != protocol.IDSetDeviceID {
				return false, &UnexpectedReplyError{Expected: protocol.IDSetDeviceID, Actual: acked}
			}
			return true, nil
		}
		return c.checkNack(f, protocol.IDSetDeviceID)
	})
	if err != nil {
		return err
	}

	c.logInfo("device id changed", "old", c.config.DeviceID, "new", newID)
	c.config.DeviceID = newID
	return nil
}

// exchange writes cmd and reads frames until match accepts one, retrying
// when the transport runs dry or times out.
func (c *Client) exchange(ctx context.Context, cmd []byte, op string, match func(*protocol.Frame) (bool, error)) (*protocol.Frame, error) {
	attempts := c.config.Retries + 1
	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%s cancelled: %w", op, err)
		}

		if attempt > 1 {
			c.logDebug("retrying", "op", op, "attempt", attempt)
		}

		// Stale input and a previous end-of-stream belong to the last exchange
		c.recv.Reset()

		if err := c.write(cmd); err != nil {
			return nil, fmt.Errorf("%s: write: %w", op, err)
		}
		c.armDeadline()

		f, err := c.await(ctx, match)
		if err == nil {
			return f, nil
		}
		if !retryable(err) {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		lastErr = err
	}

	c.logError("no reply", "op", op, "attempts", attempts, "error", lastErr)
	return nil, fmt.Errorf("%s: %w after %d attempts: %v", op, ErrNoReply, attempts, lastErr)
}

// await reads frames until match accepts one or returns an error.
// Frames match ignores are logged and dropped.
func (c *Client) await(ctx context.Context, match func(*protocol.Frame) (bool, error)) (*protocol.Frame, error) {
	for {
		f, err := c.recv.Next(ctx)
		if err != nil {
			return nil, err
		}

		ok, err := match(f)
		if err != nil {
			return nil, err
		}
		if ok {
			return f, nil
		}

		c.logDebug("ignoring frame", "id", f.MessageID, "src", f.SourceID)
	}
}

// checkNack converts a Nack for any of the given IDs into a *NackError.
// The first ID is reported as the request.
func (c *Client) checkNack(f *protocol.Frame, ids ...uint16) (bool, error) {
	if f.MessageID != protocol.IDNack {
		return false, nil
	}

	nack, err := protocol.ParseNack(f.Payload)
	if err != nil {
		return false, err
	}

	for _, id := range ids {
		if nack.NackedID == id {
			return false, &NackError{
				RequestID: ids[0],
				NackedID:  nack.NackedID,
				Reason:    nack.Reason,
			}
		}
	}
	return false, nil
}

func (c *Client) write(frame []byte) error {
	if _, err := c.rw.Write(frame); err != nil {
		return err
	}
	c.logDebug("frame sent", "len", len(frame))
	return nil
}

// armDeadline sets a read deadline when the transport supports one.
func (c *Client) armDeadline() {
	d, ok := c.rw.(deadliner)
	if !ok || c.config.ReadTimeout <= 0 {
		return
	}
	if err := d.SetReadDeadline(time.Now().Add(c.config.ReadTimeout)); err != nil {
		c.logDebug("set read deadline failed", "error", err)
	}
}

// retryable reports whether err means no reply arrived in time.
func retryable(err error) bool {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	var timeout interface{ Timeout() bool }
	return errors.As(err, &timeout) && timeout.Timeout()
}

// logDebug logs a debug message if a logger is configured.
func (c *Client) logDebug(msg string, keysAndValues ...interface{}) {
	if c.config.Logger != nil {
		c.config.Logger.Debug(msg, keysAndValues...)
	}
}

// logInfo logs an info message if a logger is configured.
func (c *Client) logInfo(msg string, keysAndValues ...interface{}) {
	if c.config.Logger != nil {
		c.config.Logger.Info(msg, keysAndValues...)
	}
}

// logError logs an error message if a logger is configured.
func (c *Client) logError(msg string, keysAndValues ...interface{}) {
	if c.config.Logger != nil {
		c.config.Logger.Error(msg, keysAndValues...)
	}
}
