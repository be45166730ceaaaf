package link

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/moffa90/go-brping/parser"
	"github.com/moffa90/go-brping/protocol"
)

// Receiver turns a byte stream into verified frames.
//
// Bytes are read from the transport in chunks and fed one at a time to a
// parser.Parser. Bytes left over after a frame completes are kept for the
// next call to Next.
//
// Receiver is not safe for concurrent use.
type Receiver struct {
	src    io.Reader
	parser *parser.Parser
	config Config

	buf     []byte
	pending []byte
	readErr error

	bytesRead uint64
}

// NewReceiver creates a Receiver reading from src with the given options.
//
// Example:
//
//	port := openSerialPort("/dev/ttyUSB0")
//	recv, err := link.NewReceiver(port,
//	    link.WithCapacity(1024),
//	    link.WithLogger(logger),
//	)
func NewReceiver(src io.Reader, opts ...Option) (*Receiver, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return newReceiver(src, cfg)
}

func newReceiver(src io.Reader, cfg Config) (*Receiver, error) {
	if src == nil {
		return nil, ErrNilTransport
	}

	p, err := parser.New(cfg.Capacity, parser.WithChecksumType(cfg.ChecksumType))
	if err != nil {
		return nil, fmt.Errorf("create parser: %w", err)
	}

	return &Receiver{
		src:    src,
		parser: p,
		config: cfg,
		buf:    make([]byte, cfg.ReadBufferSize),
	}, nil
}

// Next returns the next verified frame from the stream.
//
// Frames that fail checksum verification are counted, logged and passed to
// the ChecksumErrorCallback; reading then continues. Next returns io.EOF
// once the transport is exhausted, or the context error if ctx is done
// before a frame completes. Cancellation is checked between reads.
func (r *Receiver) Next(ctx context.Context) (*protocol.Frame, error) {
	for {
		if f := r.drain(); f != nil {
			return f, nil
		}

		if r.readErr != nil {
			return nil, r.readErr
		}

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		n, err := r.src.Read(r.buf)
		if n > 0 {
			r.bytesRead += uint64(n)
			r.pending = r.buf[:n]
		}
		if err != nil {
			r.readErr = err
			if !errors.Is(err, io.EOF) {
				r.logError("read failed", "error", err)
			}
		}
	}
}

// Run calls fn for every verified frame until the stream ends, ctx is done
// or fn returns an error. Reaching the end of the stream is not an error.
func (r *Receiver) Run(ctx context.Context, fn func(*protocol.Frame) error) error {
	for {
		f, err := r.Next(ctx)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(f); err != nil {
			return err
		}
	}
}

// Reset abandons any partial frame and discards buffered, unparsed bytes.
// A previous read error, including io.EOF, is cleared so that reading can
// resume on transports that produce more data later.
func (r *Receiver) Reset() {
	r.parser.Reset()
	r.pending = nil
	r.readErr = nil
}

// Stats returns the lifetime counters.
func (r *Receiver) Stats() Stats {
	return Stats{
		Parsed:    r.parser.Parsed(),
		Errors:    r.parser.Errors(),
		Resyncs:   r.parser.Resyncs(),
		BytesRead: r.bytesRead,
	}
}

// drain parses buffered bytes until a frame completes or the buffer is empty.
func (r *Receiver) drain() *protocol.Frame {
	for len(r.pending) > 0 {
		b := r.pending[0]
		r.pending = r.pending[1:]

		switch r.parser.ParseByte(b) {
		case parser.StateNewMessage:
			f := r.parser.Message().Frame()
			r.logDebug("frame received",
				"id", f.MessageID,
				"src", f.SourceID,
				"dst", f.DestinationID,
				"len", len(f.Payload),
			)
			if r.config.FrameCallback != nil {
				r.config.FrameCallback(f)
			}
			return f

		case parser.StateError:
			msg := r.parser.Buffer()
			cerr := ChecksumError{
				MessageID:     msg.MessageID(),
				PayloadLength: msg.PayloadLength(),
				Stored:        msg.Checksum(),
				Calculated:    msg.CalculateChecksum(),
			}
			r.logError("checksum mismatch",
				"id", cerr.MessageID,
				"stored", fmt.Sprintf("0x%04X", cerr.Stored),
				"calculated", fmt.Sprintf("0x%04X", cerr.Calculated),
			)
			if r.config.ChecksumErrorCallback != nil {
				r.config.ChecksumErrorCallback(cerr)
			}
		}
	}
	return nil
}

// logDebug logs a debug message if a logger is configured.
func (r *Receiver) logDebug(msg string, keysAndValues ...interface{}) {
	if r.config.Logger != nil {
		r.config.Logger.Debug(msg, keysAndValues...)
	}
}

// logError logs an error message if a logger is configured.
func (r *Receiver) logError(msg string, keysAndValues ...interface{}) {
	if r.config.Logger != nil {
		r.config.Logger.Error(msg, keysAndValues...)
	}
}
