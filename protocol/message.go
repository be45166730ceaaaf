package protocol

import (
	"encoding/binary"
	"fmt"
)

// Message is a fixed-capacity frame buffer.
//
// Bytes are appended one at a time with WriteByte. The buffer never grows
// and never accepts a byte past its capacity. Once a complete frame is
// stored, the field accessors and VerifyChecksum operate on it in place.
type Message struct {
	buf          []byte
	n            int
	checksumType ChecksumType
}

// MessageOption is a functional option for configuring a Message.
type MessageOption func(*Message)

// WithChecksumType sets the algorithm used by VerifyChecksum and CalculateChecksum.
//
// Example:
//
//	msg, err := protocol.NewMessage(512, protocol.WithChecksumType(protocol.ChecksumCRC16))
func WithChecksumType(t ChecksumType) MessageOption {
	return func(m *Message) {
		m.checksumType = t
	}
}

// NewMessage allocates a message buffer holding up to capacity bytes.
// The capacity must be between MinCapacity and MaxCapacity.
func NewMessage(capacity int, opts ...MessageOption) (*Message, error) {
	if capacity < MinCapacity || capacity > MaxCapacity {
		return nil, fmt.Errorf("%w: %d (must be %d-%d)", ErrInvalidCapacity, capacity, MinCapacity, MaxCapacity)
	}

	m := &Message{
		buf:          make([]byte, capacity),
		checksumType: ChecksumSum,
	}
	for _, opt := range opts {
		opt(m)
	}

	if !m.checksumType.Valid() {
		return nil, fmt.Errorf("unsupported checksum type: %s", m.checksumType)
	}

	return m, nil
}

// Capacity returns the fixed buffer size.
func (m *Message) Capacity() int {
	return len(m.buf)
}

// Len returns the number of bytes written since the last Clear.
func (m *Message) Len() int {
	return m.n
}

// MaxPayloadLength returns the largest payload length this buffer can hold.
func (m *Message) MaxPayloadLength() int {
	return len(m.buf) - FrameOverhead
}

// ChecksumType returns the configured checksum algorithm.
func (m *Message) ChecksumType() ChecksumType {
	return m.checksumType
}

// Bytes returns the written portion of the buffer.
// The slice aliases the buffer and is only valid until the next write.
func (m *Message) Bytes() []byte {
	return m.buf[:m.n]
}

// WriteByte appends b at the write cursor.
// Returns ErrBufferFull without writing when the buffer is at capacity.
func (m *Message) WriteByte(b byte) error {
	if m.n >= len(m.buf) {
		return ErrBufferFull
	}
	m.buf[m.n] = b
	m.n++
	return nil
}

// Clear moves the write cursor back to offset 0.
func (m *Message) Clear() {
	m.n = 0
}

// PayloadLength returns the declared payload length, or 0 if the length field
// has not been written yet.
func (m *Message) PayloadLength() uint16 {
	if m.n < OffsetLength+2 {
		return 0
	}
	return binary.LittleEndian.Uint16(m.buf[OffsetLength:])
}

// MessageID returns the message ID field, or 0 if it has not been written yet.
func (m *Message) MessageID() uint16 {
	if m.n < OffsetMessageID+2 {
		return 0
	}
	return binary.LittleEndian.Uint16(m.buf[OffsetMessageID:])
}

// SourceID returns the source device ID, or 0 if it has not been written yet.
func (m *Message) SourceID() byte {
	if m.n <= OffsetSourceID {
		return 0
	}
	return m.buf[OffsetSourceID]
}

// DestinationID returns the destination device ID, or 0 if it has not been written yet.
func (m *Message) DestinationID() byte {
	if m.n <= OffsetDestinationID {
		return 0
	}
	return m.buf[OffsetDestinationID]
}

// Payload returns the stored payload bytes.
// The slice aliases the buffer; use Frame for a detached copy.
func (m *Message) Payload() []byte {
	end := OffsetPayload + int(m.PayloadLength())
	if end > m.n {
		end = m.n
	}
	if end <= OffsetPayload {
		return nil
	}
	return m.buf[OffsetPayload:end]
}

// Checksum returns the stored checksum field, or 0 if the frame is incomplete.
func (m *Message) Checksum() uint16 {
	if !m.complete() {
		return 0
	}
	off := OffsetPayload + int(m.PayloadLength())
	return binary.LittleEndian.Uint16(m.buf[off:])
}

// CalculateChecksum computes the checksum over the header and payload bytes
// currently stored.
func (m *Message) CalculateChecksum() uint16 {
	end := OffsetPayload + int(m.PayloadLength())
	if end > m.n {
		end = m.n
	}
	return Checksum(m.checksumType, m.buf[:end])
}

// VerifyChecksum reports whether the buffer holds exactly one complete frame
// with intact magic bytes and a checksum matching its contents.
func (m *Message) VerifyChecksum() bool {
	if !m.complete() {
		return false
	}
	if m.buf[0] != Magic1 || m.buf[1] != Magic2 {
		return false
	}
	return m.Checksum() == m.CalculateChecksum()
}

// Frame returns a detached copy of the stored frame.
// Returns nil if the buffer doesn't hold a complete frame.
func (m *Message) Frame() *Frame {
	if !m.complete() {
		return nil
	}

	payload := make([]byte, m.PayloadLength())
	copy(payload, m.Payload())

	return &Frame{
		MessageID:     m.MessageID(),
		SourceID:      m.SourceID(),
		DestinationID: m.DestinationID(),
		Payload:       payload,
	}
}

func (m *Message) complete() bool {
	if m.n < FrameOverhead {
		return false
	}
	return m.n == FrameOverhead+int(m.PayloadLength())
}
