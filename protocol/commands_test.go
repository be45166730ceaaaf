package protocol

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeFrame(t *testing.T) {
	tests := []struct {
		name    string
		frame   Frame
		want    []byte
		wantErr bool
	}{
		{
			name:  "empty payload",
			frame: Frame{MessageID: 5, SourceID: 1, DestinationID: 2},
			want:  []byte{'B', 'R', 0x00, 0x00, 0x05, 0x00, 0x01, 0x02, 0x9C, 0x00},
		},
		{
			name:  "with payload",
			frame: Frame{MessageID: 0x0102, SourceID: 0, DestinationID: 0, Payload: []byte{0x10, 0x20}},
			// 0x42+0x52+0x02+0x02+0x01+0x10+0x20 = 0xC9
			want: []byte{'B', 'R', 0x02, 0x00, 0x02, 0x01, 0x00, 0x00, 0x10, 0x20, 0xC9, 0x00},
		},
		{
			name:    "payload too large",
			frame:   Frame{Payload: make([]byte, MaxPayloadSize+1)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeFrame(tt.frame, ChecksumSum)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrPayloadTooLarge)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeFrameUnknownChecksum(t *testing.T) {
	_, err := EncodeFrame(Frame{MessageID: 1}, ChecksumType(0x42))
	require.Error(t, err)
}

func TestBuildGeneralRequest(t *testing.T) {
	frame, err := BuildGeneralRequest(0, 1, IDProtocolVersion, ChecksumSum)
	require.NoError(t, err)

	f, err := DecodeFrame(frame, ChecksumSum)
	require.NoError(t, err)
	assert.Equal(t, uint16(IDGeneralRequest), f.MessageID)
	assert.Equal(t, byte(0), f.SourceID)
	assert.Equal(t, byte(1), f.DestinationID)

	requested, err := ParseGeneralRequest(f.Payload)
	require.NoError(t, err)
	assert.Equal(t, uint16(IDProtocolVersion), requested)
}

func TestBuildSetDeviceID(t *testing.T) {
	frame, err := BuildSetDeviceID(0, 1, 42, ChecksumCRC16)
	require.NoError(t, err)

	f, err := DecodeFrame(frame, ChecksumCRC16)
	require.NoError(t, err)
	assert.Equal(t, uint16(IDSetDeviceID), f.MessageID)
	assert.Equal(t, []byte{42}, f.Payload)
}

func TestBuildASCIIText(t *testing.T) {
	frame, err := BuildASCIIText(1, 0, "hello", ChecksumSum)
	require.NoError(t, err)

	assert.Equal(t, uint16(6), binary.LittleEndian.Uint16(frame[OffsetLength:]))
	assert.True(t, bytes.HasSuffix(frame[:len(frame)-ChecksumSize], []byte("hello\x00")))

	f, err := DecodeFrame(frame, ChecksumSum)
	require.NoError(t, err)
	assert.Equal(t, "hello", ParseASCIIText(f.Payload))
}
