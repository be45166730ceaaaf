// Package cli implements the brdump command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/moffa90/go-brping/internal/config"
	"github.com/moffa90/go-brping/internal/logging"
)

// Version is the brdump release, overridable at link time.
var Version = "0.1.0-dev"

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configFile string
	logLevel   string
	checksum   string
}

// NewRootCmd builds the brdump command tree.
func NewRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "brdump",
		Short: "Decode and build BR protocol frames",
		Long: `brdump decodes captured BR protocol byte streams into frames and
builds frames for sending to a device.

Configuration is read from an optional file (--config) and from environment
variables prefixed with BRDUMP_, e.g. BRDUMP_PARSER_CHECKSUM=crc16.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&flags.configFile, "config", "c", "", "configuration file path (toml, yaml or json)")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flags.checksum, "checksum", "", "checksum algorithm (sum or crc16)")

	rootCmd.AddCommand(
		newDecodeCmd(flags),
		newEncodeCmd(flags),
		newVersionCmd(),
	)

	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
// This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the configuration and applies flag overrides.
func (f *globalFlags) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(f.configFile)
	if err != nil {
		return nil, err
	}

	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	if f.checksum != "" {
		cfg.Parser.Checksum = f.checksum
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// newLogger builds the logger described by cfg.
func newLogger(cfg *config.Config) (*logging.Logger, error) {
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}
	return logger, nil
}
