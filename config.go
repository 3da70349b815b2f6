package taillight

import (
	"encoding"
	"fmt"
	"io"
	"time"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
)

// Renderer names.
const (
	RendererTerm   = "term"
	RendererWindow = "window"
	RendererNone   = "none"
)

// Config is the configuration for the taillight daemon.
type Config struct {
	// Renderer selects how the strip is displayed: "term", "window" or
	// "none".
	Renderer string `toml:"renderer"`
	// StatsInterval is how often the stats topic is published.
	StatsInterval TOMLDuration `toml:"stats_interval"`
	// Settle is the delay between blanking the strip and powering down.
	Settle TOMLDuration `toml:"settle"`
	// Serial, if present, mirrors frames to an external strip controller.
	Serial *SerialConfig `toml:"serial"`
}

// SerialConfig configures the serial frame mirror.
type SerialConfig struct {
	// Device is the path to the serial device file.
	// This is usually /dev/ttyUSB0 or /dev/ttyACM0.
	Device string `toml:"device"`
	// Baud is the baud rate for the serial connection.
	Baud int `toml:"baud"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Renderer:      RendererTerm,
		StatsInterval: TOMLDuration(10 * time.Second),
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	switch c.Renderer {
	case RendererTerm, RendererWindow, RendererNone:
	default:
		return fmt.Errorf("unknown renderer %q", c.Renderer)
	}

	if c.Serial != nil {
		if c.Serial.Device == "" {
			return errors.New("serial device not set")
		}
		if c.Serial.Baud <= 0 {
			return errors.New("serial baud rate not set")
		}
	}

	return nil
}

type TOMLDuration time.Duration

var (
	_ encoding.TextUnmarshaler = (*TOMLDuration)(nil)
	_ encoding.TextMarshaler   = (*TOMLDuration)(nil)
)

func (d *TOMLDuration) UnmarshalText(text []byte) error {
	duration, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = TOMLDuration(duration)
	return nil
}

func (d TOMLDuration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// ParseConfig parses a configuration from a reader. Fields not present
// keep their defaults.
func ParseConfig(r io.Reader) (*Config, error) {
	config := DefaultConfig()
	if err := toml.NewDecoder(r).Decode(config); err != nil {
		return nil, err
	}
	return config, nil
}
