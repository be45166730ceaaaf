package protocol

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeAll(t *testing.T, m *Message, data []byte) {
	t.Helper()
	for _, b := range data {
		require.NoError(t, m.WriteByte(b))
	}
}

func TestNewMessage(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		opts     []MessageOption
		wantErr  bool
	}{
		{name: "default capacity", capacity: DefaultCapacity},
		{name: "minimum capacity", capacity: MinCapacity},
		{name: "maximum capacity", capacity: MaxCapacity},
		{name: "too small", capacity: MinCapacity - 1, wantErr: true},
		{name: "too large", capacity: MaxCapacity + 1, wantErr: true},
		{name: "crc16", capacity: 64, opts: []MessageOption{WithChecksumType(ChecksumCRC16)}},
		{name: "unknown checksum", capacity: 64, opts: []MessageOption{WithChecksumType(9)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMessage(tt.capacity, tt.opts...)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.capacity, m.Capacity())
			assert.Equal(t, tt.capacity-FrameOverhead, m.MaxPayloadLength())
			assert.Zero(t, m.Len())
		})
	}

	_, err := NewMessage(1)
	assert.True(t, errors.Is(err, ErrInvalidCapacity))
}

func TestMessageWriteByteBounds(t *testing.T) {
	m, err := NewMessage(MinCapacity)
	require.NoError(t, err)

	for i := 0; i < MinCapacity; i++ {
		require.NoError(t, m.WriteByte(byte(i)))
	}

	err = m.WriteByte(0xAA)
	require.ErrorIs(t, err, ErrBufferFull)
	assert.Equal(t, MinCapacity, m.Len())
	assert.Equal(t, byte(MinCapacity-1), m.Bytes()[MinCapacity-1])

	m.Clear()
	assert.Zero(t, m.Len())
	require.NoError(t, m.WriteByte(0xAA))
	assert.Equal(t, []byte{0xAA}, m.Bytes())
}

func TestMessageFields(t *testing.T) {
	frame, err := EncodeFrame(Frame{
		MessageID:     0x1234,
		SourceID:      7,
		DestinationID: 9,
		Payload:       []byte{0xDE, 0xAD, 0xBE, 0xEF},
	}, ChecksumSum)
	require.NoError(t, err)

	m, err := NewMessage(DefaultCapacity)
	require.NoError(t, err)
	writeAll(t, m, frame)

	assert.Equal(t, uint16(4), m.PayloadLength())
	assert.Equal(t, uint16(0x1234), m.MessageID())
	assert.Equal(t, byte(7), m.SourceID())
	assert.Equal(t, byte(9), m.DestinationID())
	assert.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, m.Payload())
	assert.Equal(t, m.CalculateChecksum(), m.Checksum())
	assert.True(t, m.VerifyChecksum())

	f := m.Frame()
	require.NotNil(t, f)
	assert.Equal(t, uint16(0x1234), f.MessageID)
	assert.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, f.Payload)

	// The frame copy survives the buffer being reused
	m.Clear()
	writeAll(t, m, []byte{'B', 'R', 0xFF, 0xFF})
	assert.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, f.Payload)
}

func TestMessageVerifyChecksum(t *testing.T) {
	valid, err := EncodeFrame(Frame{MessageID: 5, SourceID: 1, DestinationID: 2}, ChecksumSum)
	require.NoError(t, err)
	require.Equal(t, []byte{'B', 'R', 0x00, 0x00, 0x05, 0x00, 0x01, 0x02, 0x9C, 0x00}, valid)

	tests := []struct {
		name  string
		bytes []byte
		want  bool
	}{
		{name: "valid frame", bytes: valid, want: true},
		{name: "incomplete frame", bytes: valid[:len(valid)-1], want: false},
		{name: "header only", bytes: valid[:HeaderSize], want: false},
		{name: "bad checksum", bytes: flip(valid, len(valid)-2, 0x01), want: false},
		{name: "bad magic", bytes: withChecksum(flip(valid, 1, 0x01)), want: false},
		{name: "trailing byte", bytes: append(append([]byte{}, valid...), 0x00), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMessage(DefaultCapacity)
			require.NoError(t, err)
			writeAll(t, m, tt.bytes)
			assert.Equal(t, tt.want, m.VerifyChecksum())
		})
	}
}

func TestMessageIncompleteAccessors(t *testing.T) {
	m, err := NewMessage(DefaultCapacity)
	require.NoError(t, err)

	assert.Zero(t, m.PayloadLength())
	assert.Zero(t, m.MessageID())
	assert.Zero(t, m.SourceID())
	assert.Zero(t, m.DestinationID())
	assert.Nil(t, m.Payload())
	assert.Zero(t, m.Checksum())
	assert.Nil(t, m.Frame())

	writeAll(t, m, []byte{'B', 'R', 0x03, 0x00, 0x01, 0x00, 0x01, 0x02, 0xAA})
	assert.Equal(t, uint16(3), m.PayloadLength())
	assert.Equal(t, []byte{0xAA}, m.Payload())
	assert.Nil(t, m.Frame())
}

func TestMessageCRC16(t *testing.T) {
	frame, err := EncodeFrame(Frame{MessageID: 3, Payload: []byte("hi")}, ChecksumCRC16)
	require.NoError(t, err)

	crc, err := NewMessage(DefaultCapacity, WithChecksumType(ChecksumCRC16))
	require.NoError(t, err)
	writeAll(t, crc, frame)
	assert.True(t, crc.VerifyChecksum())
	assert.Equal(t, ChecksumCRC16, crc.ChecksumType())

	sum, err := NewMessage(DefaultCapacity)
	require.NoError(t, err)
	writeAll(t, sum, frame)
	assert.False(t, sum.VerifyChecksum())
}

// flip returns a copy of data with bit mask xored into data[i].
func flip(data []byte, i int, mask byte) []byte {
	out := append([]byte{}, data...)
	out[i] ^= mask
	return out
}

// withChecksum recomputes the sum checksum of a complete frame.
func withChecksum(frame []byte) []byte {
	end := len(frame) - ChecksumSize
	sum := Checksum(ChecksumSum, frame[:end])
	frame[end] = byte(sum)
	frame[end+1] = byte(sum >> 8)
	return frame
}
