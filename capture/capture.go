package capture

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
)

// Constants for capture file parsing.
const (
	// CommentPrefix starts a comment that runs to the end of the line
	CommentPrefix = "#"

	// OffsetSuffix ends an optional hexdump-style offset column ("00000010:")
	OffsetSuffix = ":"

	// DefaultCapacity is the default initial capacity for the data slice
	DefaultCapacity = 4096
)

// Format identifies how a capture is stored on disk.
type Format int

const (
	// FormatHex is text: hex byte pairs separated by optional whitespace
	FormatHex Format = iota

	// FormatRaw is the byte stream exactly as received
	FormatRaw
)

// String returns the configuration name of the format.
func (f Format) String() string {
	switch f {
	case FormatHex:
		return "hex"
	case FormatRaw:
		return "raw"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// ParseFormat maps a configuration name ("hex", "raw") to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "hex":
		return FormatHex, nil
	case "raw", "bin", "binary":
		return FormatRaw, nil
	default:
		return 0, fmt.Errorf("unknown capture format %q (must be hex or raw)", name)
	}
}

// Capture is a recorded byte stream.
type Capture struct {
	// Data is the stream contents in arrival order
	Data []byte

	// Lines is the number of text lines read (0 for raw captures)
	Lines int
}

// Reader returns a reader over the captured bytes.
func (c *Capture) Reader() io.Reader {
	return bytes.NewReader(c.Data)
}

// Parse loads a capture file from the given path.
//
// Example:
//
//	c, err := capture.Parse("session.hex", capture.FormatHex)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	recv, err := link.NewReceiver(c.Reader())
func Parse(path string, format Format) (*Capture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ParseReader(f, format)
}

// ParseReader loads a capture from any io.Reader.
// This is useful for testing and reading from non-file sources.
func ParseReader(r io.Reader, format Format) (*Capture, error) {
	switch format {
	case FormatRaw:
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read capture: %w", err)
		}
		return &Capture{Data: data}, nil
	case FormatHex:
		return parseHex(r)
	default:
		return nil, fmt.Errorf("unsupported capture format: %s", format)
	}
}

// parseHex reads a hex capture.
//
// Line format:
//
//	[OFFSET:] HEX [HEX...] [# comment]
//
// Example:
//
//	# ping reply
//	00000000: 42 52 00 00 05 00 01 02
//	00000008: 9C 00
func parseHex(r io.Reader) (*Capture, error) {
	scanner := bufio.NewScanner(r)
	c := &Capture{Data: make([]byte, 0, DefaultCapacity)}

	for scanner.Scan() {
		c.Lines++

		data, err := parseHexLine(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", c.Lines, err)
		}
		c.Data = append(c.Data, data...)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read capture: %w", err)
	}

	return c, nil
}

// parseHexLine decodes one line of a hex capture.
// Empty lines and comment-only lines decode to nil.
func parseHexLine(line string) ([]byte, error) {
	if i := strings.Index(line, CommentPrefix); i >= 0 {
		line = line[:i]
	}

	fields := strings.Fields(line)
	if len(fields) > 0 && strings.HasSuffix(fields[0], OffsetSuffix) {
		fields = fields[1:]
	}
	if len(fields) == 0 {
		return nil, nil
	}

	digits := strings.Join(fields, "")
	if len(digits)%2 != 0 {
		return nil, fmt.Errorf("odd number of hex digits: %d", len(digits))
	}

	data, err := hex.DecodeString(digits)
	if err != nil {
		return nil, fmt.Errorf("invalid hex data: %w", err)
	}

	return data, nil
}

// WriteHex writes data as a hex capture with 16 bytes per line and an
// offset column, the same layout parseHex accepts.
func WriteHex(w io.Writer, data []byte) error {
	bw := bufio.NewWriter(w)
	for off := 0; off < len(data); off += 16 {
		end := off + 16
		if end > len(data) {
			end = len(data)
		}

		if _, err := fmt.Fprintf(bw, "%08x:", off); err != nil {
			return err
		}
		for _, b := range data[off:end] {
			if _, err := fmt.Fprintf(bw, " %02x", b); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
