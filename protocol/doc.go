// Package protocol implements the framing layer of the BR device protocol.
//
// This package provides the message buffer used by stream parsers, the frame
// checksum algorithms, frame builders and whole-frame decoders.
//
// # Protocol Overview
//
// Every message travels in a frame with a fixed 8-byte header and a 2-byte
// trailing checksum:
//
//	['B']['R'][LEN_L][LEN_H][ID_L][ID_H][SRC][DST][PAYLOAD...][CHECKSUM_L][CHECKSUM_H]
//
// Where:
//   - 'B','R' = start-of-frame magic
//   - LEN = 16-bit payload length (little-endian)
//   - ID = 16-bit message ID (little-endian)
//   - SRC, DST = source and destination device IDs
//   - CHECKSUM = 16-bit checksum over every preceding byte (little-endian)
//
// # Message Buffer
//
// Message is the fixed-capacity buffer a stream parser writes into. It knows
// how to locate its own fields and verify its own checksum:
//
//	msg, err := protocol.NewMessage(protocol.DefaultCapacity)
//	for _, b := range frameBytes {
//	    if err := msg.WriteByte(b); err != nil {
//	        return err // protocol.ErrBufferFull
//	    }
//	}
//	if msg.VerifyChecksum() {
//	    fmt.Printf("id=%d payload=% X\n", msg.MessageID(), msg.Payload())
//	}
//
// # Checksums
//
// The default algorithm (ChecksumSum) is a wrapping 16-bit sum of all bytes.
// Links that need stronger detection can select ChecksumCRC16 on both ends.
//
// # Frame Builders
//
// Use EncodeFrame or the Build* helpers to create outgoing frames:
//
//	frame, err := protocol.BuildGeneralRequest(src, dst, protocol.IDProtocolVersion, protocol.ChecksumSum)
//
// # Payload Decoders
//
// Use the Parse* functions for the common message payloads:
//
//	info, err := protocol.ParseDeviceInformation(f.Payload)
//	nack, err := protocol.ParseNack(f.Payload)
package protocol
