// Package capture loads recorded byte streams for offline decoding.
//
// # Capture Formats
//
// Hex captures are text files with whitespace-separated hex bytes. Blank
// lines are ignored, '#' starts a comment, and a leading "OFFSET:" column
// (as written by WriteHex or hexdump-style tools) is skipped:
//
//	# two frames, the second one corrupt
//	00000000: 42 52 00 00 05 00 01 02 9c 00
//	00000010: 42 52 00 00 05 00 01 02 9d 00
//
// Raw captures are the received bytes stored unchanged.
//
// # Usage
//
//	c, err := capture.Parse("session.hex", capture.FormatHex)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d bytes from %d lines\n", len(c.Data), c.Lines)
//
// Hex parse errors include the line number.
package capture
