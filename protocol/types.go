package protocol

// Frame is one decoded protocol message, detached from any receive buffer.
type Frame struct {
	// MessageID identifies the payload layout
	MessageID uint16

	// SourceID is the sending device ID
	SourceID byte

	// DestinationID is the receiving device ID (BroadcastID for all devices)
	DestinationID byte

	// Payload is the message-specific data
	Payload []byte
}

// Nack is the payload of a Nack message.
type Nack struct {
	// NackedID is the ID of the rejected message
	NackedID uint16

	// Reason is the device's explanation (may be empty)
	Reason string
}

// DeviceInformation is the payload of a Device Information message.
type DeviceInformation struct {
	// DeviceType identifies the kind of device
	DeviceType byte

	// DeviceRevision is the hardware revision
	DeviceRevision byte

	// FirmwareVersion is the firmware version [major, minor, patch]
	FirmwareVersion [3]byte
}

// ProtocolVersionInfo is the payload of a Protocol Version message.
type ProtocolVersionInfo struct {
	Major byte
	Minor byte
	Patch byte
}
