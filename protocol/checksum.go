package protocol

import (
	"fmt"
	"strings"

	"github.com/sigurn/crc16"
)

// ChecksumType selects the algorithm used for the trailing frame checksum.
type ChecksumType byte

// Checksum types.
const (
	// ChecksumSum adds every byte into a wrapping 16-bit sum
	ChecksumSum ChecksumType = 0x00

	// ChecksumCRC16 uses CRC-16/CCITT-FALSE (poly 0x1021, init 0xFFFF, no final XOR)
	ChecksumCRC16 ChecksumType = 0x01
)

var crcTable = crc16.MakeTable(crc16.CRC16_CCITT_FALSE)

// String returns the configuration name of the checksum type.
func (t ChecksumType) String() string {
	switch t {
	case ChecksumSum:
		return "sum"
	case ChecksumCRC16:
		return "crc16"
	default:
		return fmt.Sprintf("checksum(0x%02X)", byte(t))
	}
}

// Valid reports whether t names a supported algorithm.
func (t ChecksumType) Valid() bool {
	return t == ChecksumSum || t == ChecksumCRC16
}

// ParseChecksumType maps a configuration name ("sum", "crc16") to a ChecksumType.
func ParseChecksumType(name string) (ChecksumType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "sum":
		return ChecksumSum, nil
	case "crc16", "crc-16", "ccitt":
		return ChecksumCRC16, nil
	default:
		return 0, fmt.Errorf("unknown checksum type %q (must be sum or crc16)", name)
	}
}

// Checksum computes the 16-bit checksum of data with the given algorithm.
//
// The data covers every frame byte from the first magic byte through the
// last payload byte.
func Checksum(t ChecksumType, data []byte) uint16 {
	switch t {
	case ChecksumCRC16:
		return crc16.Checksum(data, crcTable)
	default:
		return sumChecksum(data)
	}
}

func sumChecksum(data []byte) uint16 {
	var sum uint16
	for _, b := range data {
		sum += uint16(b)
	}
	return sum
}
