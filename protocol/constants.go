package protocol

// ProtocolVersion is the BR wire protocol version implemented by this library.
const ProtocolVersion = "1.0"

// Frame structure constants.
const (
	// Magic1 is the first start-of-frame byte ('B')
	Magic1 = 'B'

	// Magic2 is the second start-of-frame byte ('R')
	Magic2 = 'R'

	// HeaderSize is the size of the fixed header:
	// MAGIC(2) + LEN(2) + MSG_ID(2) + SRC_ID(1) + DST_ID(1)
	HeaderSize = 8

	// ChecksumSize is the size of the trailing checksum field
	ChecksumSize = 2

	// FrameOverhead is the number of non-payload bytes in every frame
	FrameOverhead = HeaderSize + ChecksumSize

	// MaxPayloadSize is the largest payload the u16 length field can describe
	MaxPayloadSize = 0xFFFF
)

// Field offsets within a frame.
const (
	OffsetLength        = 2
	OffsetMessageID     = 4
	OffsetSourceID      = 6
	OffsetDestinationID = 7
	OffsetPayload       = HeaderSize
)

// Buffer capacity limits for a Message.
const (
	// DefaultCapacity is the default receive buffer size (512 bytes)
	DefaultCapacity = 512

	// MinCapacity holds a frame with an empty payload
	MinCapacity = FrameOverhead

	// MaxCapacity holds a frame with the largest possible payload
	MaxCapacity = MaxPayloadSize + FrameOverhead
)

// Common message IDs shared by every device speaking the protocol.
const (
	// IDAck acknowledges a received command
	IDAck = 1

	// IDNack rejects a received command and carries a reason
	IDNack = 2

	// IDASCIIText carries a free-form text message
	IDASCIIText = 3

	// IDDeviceInformation reports device type, revision and firmware version
	IDDeviceInformation = 4

	// IDProtocolVersion reports the protocol version the device implements
	IDProtocolVersion = 5

	// IDGeneralRequest asks the device to send the message with the given ID
	IDGeneralRequest = 6

	// IDSetDeviceID assigns a new device ID
	IDSetDeviceID = 100
)

// Payload sizes for the common messages.
const (
	// AckPayloadSize is the payload size of an Ack (2 bytes)
	AckPayloadSize = 2

	// NackMinPayloadSize is the minimum Nack payload: the nacked ID (2 bytes)
	NackMinPayloadSize = 2

	// DeviceInformationPayloadSize is the payload size of Device Information (6 bytes)
	DeviceInformationPayloadSize = 6

	// ProtocolVersionPayloadSize is the payload size of Protocol Version (4 bytes)
	ProtocolVersionPayloadSize = 4

	// GeneralRequestPayloadSize is the payload size of General Request (2 bytes)
	GeneralRequestPayloadSize = 2

	// SetDeviceIDPayloadSize is the payload size of Set Device ID (1 byte)
	SetDeviceIDPayloadSize = 1
)

// BroadcastID addresses every device on the link.
const BroadcastID = 0
