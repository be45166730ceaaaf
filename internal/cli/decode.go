package cli

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/moffa90/go-brping/capture"
	"github.com/moffa90/go-brping/link"
	"github.com/moffa90/go-brping/protocol"
)

func newDecodeCmd(flags *globalFlags) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "decode [file]",
		Short: "Decode frames from a captured byte stream",
		Long: `Decode reads a capture and prints every frame that passes checksum
verification, every frame that fails it, and a summary.

The capture is read from standard input when no file is given.

Examples:
    brdump decode session.hex
    brdump decode --format raw session.bin
    cat session.hex | brdump decode --checksum crc16`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			if format != "" {
				cfg.Input.Format = format
				if err := cfg.Validate(); err != nil {
					return err
				}
			}

			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Close() }()

			var c *capture.Capture
			if len(args) == 1 {
				c, err = capture.Parse(args[0], cfg.CaptureFormat())
			} else {
				c, err = capture.ParseReader(cmd.InOrStdin(), cfg.CaptureFormat())
			}
			if err != nil {
				return err
			}
			logger.Debug("capture loaded", "bytes", len(c.Data), "lines", c.Lines)

			out := cmd.OutOrStdout()
			recv, err := link.NewReceiver(c.Reader(),
				link.WithCapacity(cfg.Parser.Capacity),
				link.WithChecksumType(cfg.ChecksumType()),
				link.WithReadBufferSize(cfg.Link.ReadBufferSize),
				link.WithLogger(logger),
				link.WithChecksumErrorCallback(func(e link.ChecksumError) {
					fmt.Fprintf(out, "checksum error: id=%d len=%d stored=0x%04x calculated=0x%04x\n",
						e.MessageID, e.PayloadLength, e.Stored, e.Calculated)
				}),
			)
			if err != nil {
				return err
			}

			count := 0
			err = recv.Run(cmd.Context(), func(f *protocol.Frame) error {
				count++
				printFrame(out, count, f)
				return nil
			})
			if err != nil {
				return fmt.Errorf("decode failed: %w", err)
			}

			printSummary(out, recv.Stats())
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "capture format (hex or raw)")

	return cmd
}

func printFrame(w io.Writer, n int, f *protocol.Frame) {
	fmt.Fprintf(w, "frame %d: id=%d src=%d dst=%d len=%d", n, f.MessageID, f.SourceID, f.DestinationID, len(f.Payload))
	if len(f.Payload) > 0 {
		fmt.Fprintf(w, " payload=% x", f.Payload)
	}
	if desc := describe(f); desc != "" {
		fmt.Fprintf(w, " (%s)", desc)
	}
	fmt.Fprintln(w)
}

func printSummary(w io.Writer, s link.Stats) {
	fmt.Fprintf(w, "%s frames, %s checksum errors, %s resyncs, %s read\n",
		humanize.Comma(int64(s.Parsed)),
		humanize.Comma(int64(s.Errors)),
		humanize.Comma(int64(s.Resyncs)),
		humanize.Bytes(s.BytesRead),
	)
}

// describe decodes the payload of the common message set.
// Unknown IDs and empty payloads describe to "".
func describe(f *protocol.Frame) string {
	if len(f.Payload) == 0 {
		return ""
	}

	switch f.MessageID {
	case protocol.IDAck:
		id, err := protocol.ParseAck(f.Payload)
		if err != nil {
			return malformed(err)
		}
		return fmt.Sprintf("ack of %d", id)

	case protocol.IDNack:
		n, err := protocol.ParseNack(f.Payload)
		if err != nil {
			return malformed(err)
		}
		if n.Reason == "" {
			return fmt.Sprintf("nack of %d", n.NackedID)
		}
		return fmt.Sprintf("nack of %d: %q", n.NackedID, n.Reason)

	case protocol.IDASCIIText:
		return fmt.Sprintf("text %q", protocol.ParseASCIIText(f.Payload))

	case protocol.IDDeviceInformation:
		info, err := protocol.ParseDeviceInformation(f.Payload)
		if err != nil {
			return malformed(err)
		}
		return fmt.Sprintf("device type %d rev %d firmware %d.%d.%d",
			info.DeviceType, info.DeviceRevision,
			info.FirmwareVersion[0], info.FirmwareVersion[1], info.FirmwareVersion[2])

	case protocol.IDProtocolVersion:
		v, err := protocol.ParseProtocolVersion(f.Payload)
		if err != nil {
			return malformed(err)
		}
		return fmt.Sprintf("protocol %d.%d.%d", v.Major, v.Minor, v.Patch)

	case protocol.IDGeneralRequest:
		id, err := protocol.ParseGeneralRequest(f.Payload)
		if err != nil {
			return malformed(err)
		}
		return fmt.Sprintf("request for %d", id)

	case protocol.IDSetDeviceID:
		if len(f.Payload) != protocol.SetDeviceIDPayloadSize {
			return "malformed set device id"
		}
		return fmt.Sprintf("set device id %d", f.Payload[0])
	}

	return ""
}

func malformed(err error) string {
	return "malformed: " + err.Error()
}
