package protocol

import (
	"encoding/binary"
	"fmt"
)

// EncodeFrame serializes f into a complete wire frame.
//
// Frame structure:
//
//	['B']['R'][LEN_L][LEN_H][ID_L][ID_H][SRC][DST][PAYLOAD...][CHECKSUM_L][CHECKSUM_H]
//
// Returns the complete frame ready to send, or an error if validation fails.
func EncodeFrame(f Frame, t ChecksumType) ([]byte, error) {
	if len(f.Payload) > MaxPayloadSize {
		return nil, fmt.Errorf("%w: %d bytes exceeds maximum %d", ErrPayloadTooLarge, len(f.Payload), MaxPayloadSize)
	}
	if !t.Valid() {
		return nil, fmt.Errorf("unsupported checksum type: %s", t)
	}

	frame := make([]byte, HeaderSize, FrameOverhead+len(f.Payload))
	frame[0] = Magic1
	frame[1] = Magic2
	binary.LittleEndian.PutUint16(frame[OffsetLength:], uint16(len(f.Payload)))
	binary.LittleEndian.PutUint16(frame[OffsetMessageID:], f.MessageID)
	frame[OffsetSourceID] = f.SourceID
	frame[OffsetDestinationID] = f.DestinationID

	frame = append(frame, f.Payload...)

	// Checksum covers everything from the magic through the payload
	frame = binary.LittleEndian.AppendUint16(frame, Checksum(t, frame))

	return frame, nil
}

// BuildGeneralRequest constructs a General Request frame asking the device
// at dst to send the message with the given ID.
//
// Payload structure:
//
//	[REQUESTED_ID_L][REQUESTED_ID_H]
func BuildGeneralRequest(src, dst byte, requestedID uint16, t ChecksumType) ([]byte, error) {
	payload := make([]byte, GeneralRequestPayloadSize)
	binary.LittleEndian.PutUint16(payload, requestedID)

	return EncodeFrame(Frame{
		MessageID:     IDGeneralRequest,
		SourceID:      src,
		DestinationID: dst,
		Payload:       payload,
	}, t)
}

// BuildSetDeviceID constructs a Set Device ID frame assigning newID to the device at dst.
func BuildSetDeviceID(src, dst, newID byte, t ChecksumType) ([]byte, error) {
	return EncodeFrame(Frame{
		MessageID:     IDSetDeviceID,
		SourceID:      src,
		DestinationID: dst,
		Payload:       []byte{newID},
	}, t)
}

// BuildASCIIText constructs an ASCII Text frame carrying text.
// The text is sent null-terminated.
func BuildASCIIText(src, dst byte, text string, t ChecksumType) ([]byte, error) {
	payload := make([]byte, 0, len(text)+1)
	payload = append(payload, text...)
	payload = append(payload, 0)

	return EncodeFrame(Frame{
		MessageID:     IDASCIIText,
		SourceID:      src,
		DestinationID: dst,
		Payload:       payload,
	}, t)
}
