// Package config loads brdump settings from defaults, a file and the environment.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/moffa90/go-brping/capture"
	"github.com/moffa90/go-brping/internal/logging"
	"github.com/moffa90/go-brping/protocol"
)

// EnvPrefix is the prefix for environment overrides (BRDUMP_PARSER_CAPACITY).
const EnvPrefix = "BRDUMP"

// Config is the brdump configuration.
type Config struct {
	Log    logging.Config `mapstructure:"log"`
	Parser ParserConfig   `mapstructure:"parser"`
	Input  InputConfig    `mapstructure:"input"`
	Link   LinkConfig     `mapstructure:"link"`

	configPath string
}

// ParserConfig sizes the frame buffer and picks the checksum algorithm.
type ParserConfig struct {
	Capacity int    `mapstructure:"capacity"`
	Checksum string `mapstructure:"checksum"`
}

// InputConfig describes how captures are stored.
type InputConfig struct {
	Format string `mapstructure:"format"`
}

// LinkConfig tunes stream reading.
type LinkConfig struct {
	ReadBufferSize int `mapstructure:"read_buffer_size"`
}

// Load reads configuration from, in increasing priority: defaults, the
// optional file at path, and BRDUMP_ environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if path != "" {
		if err := loadFile(v, path); err != nil {
			return nil, err
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.configPath = path

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var config Config
	// Defaults always decode.
	_ = v.Unmarshal(&config)
	return &config
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.path", "")

	v.SetDefault("parser.capacity", protocol.DefaultCapacity)
	v.SetDefault("parser.checksum", protocol.ChecksumSum.String())

	v.SetDefault("input.format", capture.FormatHex.String())

	v.SetDefault("link.read_buffer_size", 256)
}

func loadFile(v *viper.Viper, path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("config file does not exist: %s", path)
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return nil
}

// Validate checks every field that a later stage would otherwise reject.
func (c *Config) Validate() error {
	if c.Parser.Capacity < protocol.MinCapacity || c.Parser.Capacity > protocol.MaxCapacity {
		return fmt.Errorf("parser.capacity %d out of range [%d, %d]",
			c.Parser.Capacity, protocol.MinCapacity, protocol.MaxCapacity)
	}
	if _, err := protocol.ParseChecksumType(c.Parser.Checksum); err != nil {
		return fmt.Errorf("parser.checksum: %w", err)
	}
	if _, err := capture.ParseFormat(c.Input.Format); err != nil {
		return fmt.Errorf("input.format: %w", err)
	}
	if c.Link.ReadBufferSize <= 0 {
		return fmt.Errorf("link.read_buffer_size must be positive, got %d", c.Link.ReadBufferSize)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// ChecksumType returns the configured checksum algorithm.
func (c *Config) ChecksumType() protocol.ChecksumType {
	t, _ := protocol.ParseChecksumType(c.Parser.Checksum)
	return t
}

// CaptureFormat returns the configured capture format.
func (c *Config) CaptureFormat() capture.Format {
	f, _ := capture.ParseFormat(c.Input.Format)
	return f
}

// ConfigPath returns the file the configuration was loaded from, or "".
func (c *Config) ConfigPath() string {
	return c.configPath
}
