// Package parser implements an incremental, byte-at-a-time frame parser for
// the BR device protocol.
//
// Feed every received byte to ParseByte. The returned State tells the caller
// where the parser is in the current frame, and signals completion:
//
//	p := parser.MustNew(protocol.DefaultCapacity)
//	for _, b := range chunk {
//	    switch p.ParseByte(b) {
//	    case parser.StateNewMessage:
//	        msg := p.Message()
//	        fmt.Printf("id=%d len=%d\n", msg.MessageID(), msg.PayloadLength())
//	    case parser.StateError:
//	        // checksum failure, counted in p.Errors()
//	    }
//	}
//
// Noise between frames, broken magic sequences and payload lengths that
// don't fit the buffer are dropped without being counted as errors. Only a
// well-framed message with a bad checksum yields StateError.
//
// ParseByte never blocks, never allocates and never writes past the buffer
// capacity chosen in New. A Parser must not be shared between goroutines.
package parser
