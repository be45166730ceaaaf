package capture

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReaderHex(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      []byte
		wantLines int
		wantErr   bool
		errMsg    string
	}{
		{
			name:      "single line",
			input:     "42 52 00 00\n",
			want:      []byte{0x42, 0x52, 0x00, 0x00},
			wantLines: 1,
		},
		{
			name:      "packed digits",
			input:     "42520000\n",
			want:      []byte{0x42, 0x52, 0x00, 0x00},
			wantLines: 1,
		},
		{
			name: "offsets comments and blank lines",
			input: "# header comment\n" +
				"\n" +
				"00000000: 42 52 # magic\n" +
				"00000002: 0a 0B\n",
			want:      []byte{0x42, 0x52, 0x0A, 0x0B},
			wantLines: 4,
		},
		{
			name:      "no trailing newline",
			input:     "ff",
			want:      []byte{0xFF},
			wantLines: 1,
		},
		{
			name:      "empty input",
			input:     "",
			want:      []byte{},
			wantLines: 0,
		},
		{
			name:    "odd digit count",
			input:   "42 5\n",
			wantErr: true,
			errMsg:  "line 1: odd number of hex digits",
		},
		{
			name:    "invalid hex",
			input:   "42\nZZ\n",
			wantErr: true,
			errMsg:  "line 2: invalid hex data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ParseReader(strings.NewReader(tt.input), FormatHex)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Data)
			assert.Equal(t, tt.wantLines, c.Lines)
		})
	}
}

func TestParseReaderRaw(t *testing.T) {
	data := []byte{0x00, 'B', 'R', 0xFF, '\n', '#'}
	c, err := ParseReader(bytes.NewReader(data), FormatRaw)
	require.NoError(t, err)
	assert.Equal(t, data, c.Data)
	assert.Zero(t, c.Lines)
}

func TestParseReaderUnknownFormat(t *testing.T) {
	_, err := ParseReader(strings.NewReader(""), Format(42))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "format(42)")
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.hex")
	require.NoError(t, os.WriteFile(path, []byte("42 52\n"), 0o600))

	c, err := Parse(path, FormatHex)
	require.NoError(t, err)
	assert.Equal(t, []byte{'B', 'R'}, c.Data)

	_, err = Parse(filepath.Join(t.TempDir(), "missing.hex"), FormatHex)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open file")
}

func TestWriteHexRoundTrip(t *testing.T) {
	data := make([]byte, 40)
	for i := range data {
		data[i] = byte(i * 7)
	}

	var buf bytes.Buffer
	require.NoError(t, WriteHex(&buf, data))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "00000010: 70 77"))

	c, err := ParseReader(&buf, FormatHex)
	require.NoError(t, err)
	assert.Equal(t, data, c.Data)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("HEX")
	require.NoError(t, err)
	assert.Equal(t, FormatHex, f)

	f, err = ParseFormat("binary")
	require.NoError(t, err)
	assert.Equal(t, FormatRaw, f)
	assert.Equal(t, "raw", f.String())

	_, err = ParseFormat("pcap")
	require.Error(t, err)
}

func TestCaptureReader(t *testing.T) {
	c := &Capture{Data: []byte{1, 2, 3}}
	var buf bytes.Buffer
	_, err := buf.ReadFrom(c.Reader())
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, buf.Bytes())
}
