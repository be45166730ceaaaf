package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to build a valid frame for testing
func buildTestFrame(t *testing.T, id uint16, payload []byte) []byte {
	t.Helper()
	frame, err := EncodeFrame(Frame{MessageID: id, SourceID: 1, DestinationID: 0, Payload: payload}, ChecksumSum)
	require.NoError(t, err)
	return frame
}

func TestDecodeFrame(t *testing.T) {
	valid := buildTestFrame(t, IDASCIIText, []byte("ok\x00"))

	tests := []struct {
		name    string
		frame   []byte
		wantID  uint16
		wantLen int
		wantErr error
	}{
		{
			name:    "valid frame with no payload",
			frame:   buildTestFrame(t, IDAck, nil),
			wantID:  IDAck,
			wantLen: 0,
		},
		{
			name:    "valid frame with payload",
			frame:   valid,
			wantID:  IDASCIIText,
			wantLen: 3,
		},
		{
			name:    "frame too short",
			frame:   []byte{'B', 'R', 0x00},
			wantErr: ErrFrameTooShort,
		},
		{
			name:    "invalid magic",
			frame:   []byte{'B', 'X', 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00},
			wantErr: ErrInvalidMagic,
		},
		{
			name:    "length mismatch",
			frame:   valid[:len(valid)-1],
			wantErr: ErrLengthMismatch,
		},
		{
			name:    "checksum mismatch",
			frame:   flip(valid, len(valid)-1, 0x80),
			wantErr: ErrChecksumMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := DecodeFrame(tt.frame, ChecksumSum)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, f.MessageID)
			assert.Len(t, f.Payload, tt.wantLen)
		})
	}
}

func TestParseAck(t *testing.T) {
	id, err := ParseAck([]byte{0x06, 0x00})
	require.NoError(t, err)
	assert.Equal(t, uint16(IDGeneralRequest), id)

	_, err = ParseAck([]byte{0x06})
	assert.True(t, IsPayloadError(err))
}

func TestParseNack(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		want    *Nack
		wantErr bool
	}{
		{
			name: "with reason",
			data: []byte{0x64, 0x00, 'b', 'a', 'd', 0x00},
			want: &Nack{NackedID: IDSetDeviceID, Reason: "bad"},
		},
		{
			name: "without terminator",
			data: []byte{0x64, 0x00, 'b', 'a', 'd'},
			want: &Nack{NackedID: IDSetDeviceID, Reason: "bad"},
		},
		{
			name: "no reason",
			data: []byte{0x05, 0x00},
			want: &Nack{NackedID: IDProtocolVersion},
		},
		{
			name:    "too short",
			data:    []byte{0x05},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseNack(tt.data)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsPayloadError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDeviceInformation(t *testing.T) {
	info, err := ParseDeviceInformation([]byte{0x01, 0x02, 0x03, 0x02, 0x07, 0x00})
	require.NoError(t, err)
	assert.Equal(t, &DeviceInformation{
		DeviceType:      0x01,
		DeviceRevision:  0x02,
		FirmwareVersion: [3]byte{3, 2, 7},
	}, info)

	_, err = ParseDeviceInformation([]byte{0x01})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "device information")
	assert.Contains(t, err.Error(), "got 1 bytes, expected 6")
}

func TestParseProtocolVersion(t *testing.T) {
	v, err := ParseProtocolVersion([]byte{1, 0, 3, 0})
	require.NoError(t, err)
	assert.Equal(t, &ProtocolVersionInfo{Major: 1, Minor: 0, Patch: 3}, v)

	_, err = ParseProtocolVersion(nil)
	assert.True(t, IsPayloadError(err))
}

func TestParseGeneralRequest(t *testing.T) {
	_, err := ParseGeneralRequest([]byte{1, 2, 3})
	assert.True(t, IsPayloadError(err))
}

func TestParseASCIIText(t *testing.T) {
	assert.Equal(t, "", ParseASCIIText(nil))
	assert.Equal(t, "abc", ParseASCIIText([]byte("abc")))
	assert.Equal(t, "abc", ParseASCIIText([]byte("abc\x00junk")))
}
