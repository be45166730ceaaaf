package parser

import "fmt"

// State is a parser phase, or one of the two terminal report values.
//
// StateNewMessage and StateError are only ever returned by ParseByte; the
// parser itself sits in StateWaitStart after reporting either of them.
type State uint8

const (
	StateNewMessage    State = iota // a checksum-verified frame just completed
	StateWaitStart                  // waiting for 'B'
	StateWaitHeader                 // waiting for 'R'
	StateWaitLengthL                // waiting for the payload length low byte
	StateWaitLengthH                // waiting for the payload length high byte
	StateWaitMsgIDL                 // waiting for the message ID low byte
	StateWaitMsgIDH                 // waiting for the message ID high byte
	StateWaitSrcID                  // waiting for the source device ID
	StateWaitDstID                  // waiting for the destination device ID
	StateWaitPayload                // waiting for the last payload byte
	StateWaitChecksumL              // waiting for the checksum low byte
	StateWaitChecksumH              // waiting for the checksum high byte
	StateError                      // a complete frame failed checksum verification
)

var stateNames = [...]string{
	StateNewMessage:    "NEW_MESSAGE",
	StateWaitStart:     "WAIT_START",
	StateWaitHeader:    "WAIT_HEADER",
	StateWaitLengthL:   "WAIT_LENGTH_L",
	StateWaitLengthH:   "WAIT_LENGTH_H",
	StateWaitMsgIDL:    "WAIT_MSG_ID_L",
	StateWaitMsgIDH:    "WAIT_MSG_ID_H",
	StateWaitSrcID:     "WAIT_SRC_ID",
	StateWaitDstID:     "WAIT_DST_ID",
	StateWaitPayload:   "WAIT_PAYLOAD",
	StateWaitChecksumL: "WAIT_CHECKSUM_L",
	StateWaitChecksumH: "WAIT_CHECKSUM_H",
	StateError:         "ERROR",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// Terminal reports whether s marks the end of a frame.
func (s State) Terminal() bool {
	return s == StateNewMessage || s == StateError
}
