package parser

import (
	"fmt"

	"github.com/moffa90/go-brping/protocol"
)

// Parser reassembles frames from a byte stream, one byte at a time.
//
// A Parser owns a single protocol.Message buffer. Each accepted byte is
// written into it; when the last checksum byte arrives the buffer verifies
// itself and ParseByte reports StateNewMessage or StateError.
//
// A Parser is not safe for concurrent use. Use one Parser per stream.
type Parser struct {
	msg   *protocol.Message
	state State

	payloadLength uint16
	remaining     uint16

	// ready is set while the buffer holds a verified frame that no later
	// byte has overwritten.
	ready bool

	parsed  uint64
	errors  uint64
	resyncs uint64
}

// Option is a functional option for configuring a Parser.
type Option func(*options)

type options struct {
	checksumType protocol.ChecksumType
}

// WithChecksumType selects the checksum algorithm the buffer verifies with.
// Default is protocol.ChecksumSum.
func WithChecksumType(t protocol.ChecksumType) Option {
	return func(o *options) {
		o.checksumType = t
	}
}

// New creates a Parser with a receive buffer of capacity bytes.
// Frames whose payload exceeds capacity-protocol.FrameOverhead are dropped.
//
// Example:
//
//	p, err := parser.New(protocol.DefaultCapacity)
//	for _, b := range chunk {
//	    if p.ParseByte(b) == parser.StateNewMessage {
//	        handle(p.Message())
//	    }
//	}
func New(capacity int, opts ...Option) (*Parser, error) {
	o := options{checksumType: protocol.ChecksumSum}
	for _, opt := range opts {
		opt(&o)
	}

	msg, err := protocol.NewMessage(capacity, protocol.WithChecksumType(o.checksumType))
	if err != nil {
		return nil, fmt.Errorf("parser: %w", err)
	}

	return &Parser{
		msg:   msg,
		state: StateWaitStart,
	}, nil
}

// MustNew is like New but panics if the parser cannot be created.
func MustNew(capacity int, opts ...Option) *Parser {
	p, err := New(capacity, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// Reset abandons any partial frame and waits for the next start byte.
// The lifetime counters are not modified.
func (p *Parser) Reset() {
	p.state = StateWaitStart
	p.ready = false
}

// ParseByte consumes one byte and returns the resulting state.
//
// The return value is StateNewMessage when b completed a frame whose
// checksum verified, StateError when it completed a frame whose checksum
// did not, and otherwise the state the parser is now waiting in.
//
// Malformed magic bytes and payload lengths that don't fit the buffer
// silently return the parser to StateWaitStart. They are not errors.
func (p *Parser) ParseByte(b byte) State {
	switch p.state {
	case StateWaitStart:
		p.start(b)

	case StateWaitHeader:
		if b != protocol.Magic2 {
			// Not a frame after all; b may itself be the next start byte
			p.resync()
			p.start(b)
			break
		}
		p.advance(b, StateWaitLengthL)

	case StateWaitLengthL:
		p.payloadLength = uint16(b)
		p.advance(b, StateWaitLengthH)

	case StateWaitLengthH:
		p.payloadLength |= uint16(b) << 8
		if !p.write(b) {
			break
		}
		if int(p.payloadLength) > p.msg.MaxPayloadLength() {
			p.resync()
			break
		}
		p.state = StateWaitMsgIDL

	case StateWaitMsgIDL:
		p.advance(b, StateWaitMsgIDH)

	case StateWaitMsgIDH:
		p.advance(b, StateWaitSrcID)

	case StateWaitSrcID:
		p.advance(b, StateWaitDstID)

	case StateWaitDstID:
		p.remaining = p.payloadLength
		if p.payloadLength == 0 {
			p.advance(b, StateWaitChecksumL)
		} else {
			p.advance(b, StateWaitPayload)
		}

	case StateWaitPayload:
		if !p.write(b) {
			break
		}
		p.remaining--
		if p.remaining == 0 {
			p.state = StateWaitChecksumL
		}

	case StateWaitChecksumL:
		p.advance(b, StateWaitChecksumH)

	case StateWaitChecksumH:
		if !p.write(b) {
			break
		}
		p.state = StateWaitStart
		if p.msg.VerifyChecksum() {
			p.parsed++
			p.ready = true
			return StateNewMessage
		}
		p.errors++
		return StateError

	default:
		// Terminal report values are never stored; treat anything else as a
		// fresh search for the start byte.
		p.state = StateWaitStart
		p.start(b)
	}

	return p.state
}

// start handles a byte while searching for the first magic byte.
func (p *Parser) start(b byte) {
	if b != protocol.Magic1 {
		return
	}
	p.msg.Clear()
	p.advance(b, StateWaitHeader)
}

// advance stores b and moves to next.
func (p *Parser) advance(b byte, next State) {
	if p.write(b) {
		p.state = next
	}
}

// write stores b at the cursor. A full buffer abandons the frame.
func (p *Parser) write(b byte) bool {
	p.ready = false
	if err := p.msg.WriteByte(b); err != nil {
		p.resync()
		return false
	}
	return true
}

func (p *Parser) resync() {
	p.resyncs++
	p.state = StateWaitStart
}

// State returns the state the parser is waiting in.
func (p *Parser) State() State {
	return p.state
}

// Parsed returns the number of frames that passed checksum verification.
func (p *Parser) Parsed() uint64 {
	return p.parsed
}

// Errors returns the number of complete frames that failed checksum verification.
func (p *Parser) Errors() uint64 {
	return p.errors
}

// Resyncs returns the number of partial frames abandoned because of a bad
// magic byte or an oversized length. Resyncs are not errors.
func (p *Parser) Resyncs() uint64 {
	return p.resyncs
}

// Buffer returns the receive buffer regardless of its state. Its contents
// are unvalidated unless the last ParseByte returned StateNewMessage; use
// it for diagnostics such as inspecting a frame that failed verification.
func (p *Parser) Buffer() *protocol.Message {
	return p.msg
}

// Capacity returns the receive buffer size.
func (p *Parser) Capacity() int {
	return p.msg.Capacity()
}

// Message returns the receive buffer while it holds the most recently
// verified frame. It returns nil once any byte of a following frame has
// been stored, after Reset, and before the first frame completes.
//
// The returned Message is reused; call Frame on it to keep a copy.
func (p *Parser) Message() *protocol.Message {
	if !p.ready {
		return nil
	}
	return p.msg
}
