package protocol

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// DecodeFrame validates a complete wire frame and extracts its fields.
// Validates magic, declared length and checksum.
//
// Use this for frames that arrive whole (datagrams, test vectors). Byte
// streams should go through the parser package instead.
func DecodeFrame(frame []byte, t ChecksumType) (*Frame, error) {
	if len(frame) < FrameOverhead {
		return nil, fmt.Errorf("%w: got %d bytes, minimum is %d", ErrFrameTooShort, len(frame), FrameOverhead)
	}

	if frame[0] != Magic1 || frame[1] != Magic2 {
		return nil, fmt.Errorf("%w: got 0x%02X 0x%02X", ErrInvalidMagic, frame[0], frame[1])
	}

	payloadLen := binary.LittleEndian.Uint16(frame[OffsetLength:])
	expectedLen := FrameOverhead + int(payloadLen)
	if len(frame) != expectedLen {
		return nil, fmt.Errorf("%w: got %d bytes, expected %d (overhead=%d + payload=%d)",
			ErrLengthMismatch, len(frame), expectedLen, FrameOverhead, payloadLen)
	}

	end := OffsetPayload + int(payloadLen)
	checksumExpected := binary.LittleEndian.Uint16(frame[end:])
	checksumActual := Checksum(t, frame[:end])
	if checksumExpected != checksumActual {
		return nil, fmt.Errorf("%w: got 0x%04X, expected 0x%04X",
			ErrChecksumMismatch, checksumActual, checksumExpected)
	}

	payload := make([]byte, payloadLen)
	copy(payload, frame[OffsetPayload:end])

	return &Frame{
		MessageID:     binary.LittleEndian.Uint16(frame[OffsetMessageID:]),
		SourceID:      frame[OffsetSourceID],
		DestinationID: frame[OffsetDestinationID],
		Payload:       payload,
	}, nil
}

// ParseAck parses an Ack payload.
// Returns the ID of the acknowledged message.
//
// Data format (2 bytes):
//
//	[ACKED_ID_L][ACKED_ID_H]
func ParseAck(data []byte) (uint16, error) {
	if len(data) != AckPayloadSize {
		return 0, &PayloadError{Message: "ack", MessageID: IDAck, Got: len(data), Want: AckPayloadSize}
	}
	return binary.LittleEndian.Uint16(data), nil
}

// ParseNack parses a Nack payload.
//
// Data format (2+ bytes):
//
//	[NACKED_ID_L][NACKED_ID_H][REASON...][0x00]
func ParseNack(data []byte) (*Nack, error) {
	if len(data) < NackMinPayloadSize {
		return nil, &PayloadError{Message: "nack", MessageID: IDNack, Got: len(data), Want: NackMinPayloadSize}
	}

	return &Nack{
		NackedID: binary.LittleEndian.Uint16(data),
		Reason:   cString(data[NackMinPayloadSize:]),
	}, nil
}

// ParseASCIIText parses an ASCII Text payload.
// A trailing null terminator is optional.
func ParseASCIIText(data []byte) string {
	return cString(data)
}

// ParseDeviceInformation parses a Device Information payload.
//
// Data format (6 bytes):
//
//	[DEVICE_TYPE][DEVICE_REV][FW_MAJOR][FW_MINOR][FW_PATCH][RESERVED]
func ParseDeviceInformation(data []byte) (*DeviceInformation, error) {
	if len(data) != DeviceInformationPayloadSize {
		return nil, &PayloadError{
			Message:   "device information",
			MessageID: IDDeviceInformation,
			Got:       len(data),
			Want:      DeviceInformationPayloadSize,
		}
	}

	return &DeviceInformation{
		DeviceType:      data[0],
		DeviceRevision:  data[1],
		FirmwareVersion: [3]byte{data[2], data[3], data[4]},
	}, nil
}

// ParseProtocolVersion parses a Protocol Version payload.
//
// Data format (4 bytes):
//
//	[MAJOR][MINOR][PATCH][RESERVED]
func ParseProtocolVersion(data []byte) (*ProtocolVersionInfo, error) {
	if len(data) != ProtocolVersionPayloadSize {
		return nil, &PayloadError{
			Message:   "protocol version",
			MessageID: IDProtocolVersion,
			Got:       len(data),
			Want:      ProtocolVersionPayloadSize,
		}
	}

	return &ProtocolVersionInfo{
		Major: data[0],
		Minor: data[1],
		Patch: data[2],
	}, nil
}

// ParseGeneralRequest parses a General Request payload.
// Returns the requested message ID.
func ParseGeneralRequest(data []byte) (uint16, error) {
	if len(data) != GeneralRequestPayloadSize {
		return 0, &PayloadError{
			Message:   "general request",
			MessageID: IDGeneralRequest,
			Got:       len(data),
			Want:      GeneralRequestPayloadSize,
		}
	}
	return binary.LittleEndian.Uint16(data), nil
}

// cString returns data up to the first null byte.
func cString(data []byte) string {
	if i := bytes.IndexByte(data, 0); i >= 0 {
		data = data[:i]
	}
	return string(data)
}
