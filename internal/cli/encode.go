package cli

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/moffa90/go-brping/capture"
	"github.com/moffa90/go-brping/protocol"
)

type encodeFlags struct {
	messageID uint16
	src       uint8
	dst       uint8
	payload   string
	text      string
	raw       bool
}

func newEncodeCmd(flags *globalFlags) *cobra.Command {
	ef := &encodeFlags{}

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Build a frame",
		Long: `Encode builds one frame and prints it as a hex capture, or writes the
raw bytes with --raw.

Examples:
    brdump encode --id 6 --src 0 --dst 1 --payload "04 00"
    brdump encode --id 3 --text "hello" --checksum crc16
    brdump encode --id 100 --payload 2a --raw > set_id.bin`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}

			payload, err := ef.buildPayload()
			if err != nil {
				return err
			}

			frame, err := protocol.EncodeFrame(protocol.Frame{
				MessageID:     ef.messageID,
				SourceID:      ef.src,
				DestinationID: ef.dst,
				Payload:       payload,
			}, cfg.ChecksumType())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if ef.raw {
				_, err := out.Write(frame)
				return err
			}
			return capture.WriteHex(out, frame)
		},
	}

	cmd.Flags().Uint16Var(&ef.messageID, "id", 0, "message ID")
	cmd.Flags().Uint8Var(&ef.src, "src", 0, "source device ID")
	cmd.Flags().Uint8Var(&ef.dst, "dst", protocol.BroadcastID, "destination device ID")
	cmd.Flags().StringVarP(&ef.payload, "payload", "p", "", "payload as hex, spaces allowed")
	cmd.Flags().StringVarP(&ef.text, "text", "t", "", "payload as null-terminated ASCII text")
	cmd.Flags().BoolVar(&ef.raw, "raw", false, "write raw bytes instead of hex")
	cmd.MarkFlagsMutuallyExclusive("payload", "text")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

// buildPayload returns the payload given by --payload or --text.
func (f *encodeFlags) buildPayload() ([]byte, error) {
	if f.text != "" {
		return append([]byte(f.text), 0), nil
	}

	digits := strings.Join(strings.Fields(f.payload), "")
	payload, err := hex.DecodeString(digits)
	if err != nil {
		return nil, fmt.Errorf("invalid --payload: %w", err)
	}
	return payload, nil
}
