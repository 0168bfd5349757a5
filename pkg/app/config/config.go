// Package config holds the decoder configuration.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"dccdump/pkg/dsbuf"

	"github.com/womat/debug"
	"gopkg.in/yaml.v2"
)

var (
	ErrConflictingChannels = errors.New("channels A and B are mutually exclusive")
	ErrConflictingOutput   = errors.New("output-samples and output-bits are mutually exclusive")
)

// OutputMode selects the primary output of a decode run.
type OutputMode int

const (
	// OutputPackets prints the decoded commands (the default).
	OutputPackets OutputMode = iota
	// OutputSamples prints the raw samples of the selected channel.
	OutputSamples
	// OutputBits prints the raw classified bit string.
	OutputBits
)

// Config defines the struct of global config and the struct of the
// configuration file.
type Config struct {
	Channel  string      `yaml:"channel"`
	Timebase string      `yaml:"timebase"`
	Filter   bool        `yaml:"filter"`
	Stats    bool        `yaml:"stats"`
	Debug    DebugConfig `yaml:"debug"`

	// derived from Channel/Timebase/Flag by LoadConfig
	SelectedChannel dsbuf.Channel `yaml:"-"`
	SampleDuration  float64       `yaml:"-"`
	Mode            OutputMode    `yaml:"-"`

	// Filename is the buffer file to parse.
	Filename string `yaml:"-"`

	Flag FlagConfig `yaml:"-"`
}

// FlagConfig defines the configured flags (parameters).
type FlagConfig struct {
	ConfigFile    string
	LogLevel      string
	ChannelA      bool
	ChannelB      bool
	Timebase      string
	OutputSamples bool
	OutputBits    bool
	Filter        bool
	NoStats       bool
}

// DebugConfig defines the struct of the debug configuration and
// configuration file.
type DebugConfig struct {
	File       io.WriteCloser `yaml:"-"`
	Flag       int            `yaml:"-"`
	FlagString string         `yaml:"flag"`
	FileString string         `yaml:"file"`
}

func NewConfig() *Config {
	return &Config{
		Channel:  "A",
		Timebase: "0.5ms",
		Stats:    true,
		Flag:     FlagConfig{},
		Debug: DebugConfig{
			FileString: "stderr",
			FlagString: "standard",
		},
	}
}

// LoadConfig reads the optional configuration file, applies the command
// line overrides and derives the channel, timebase and output mode.
func (c *Config) LoadConfig() error {
	if c.Flag.ConfigFile != "" {
		if err := c.readConfigFile(); err != nil {
			return fmt.Errorf("error reading config file %q: %w", c.Flag.ConfigFile, err)
		}
	}

	if c.Flag.LogLevel != "" {
		c.Debug.FlagString = c.Flag.LogLevel
	}
	if err := c.setDebugConfig(); err != nil {
		return fmt.Errorf("unable to open debug file %q: %w", c.Debug.FileString, err)
	}

	if c.Flag.ChannelA && c.Flag.ChannelB {
		return ErrConflictingChannels
	}
	if c.Flag.ChannelA {
		c.Channel = "A"
	}
	if c.Flag.ChannelB {
		c.Channel = "B"
	}
	if c.Flag.Timebase != "" {
		c.Timebase = c.Flag.Timebase
	}
	if c.Flag.Filter {
		c.Filter = true
	}
	if c.Flag.NoStats {
		c.Stats = false
	}

	var err error
	if c.SelectedChannel, err = dsbuf.ParseChannel(c.Channel); err != nil {
		return fmt.Errorf("%w: %q", err, c.Channel)
	}
	if c.SampleDuration, err = dsbuf.Timebase(c.Timebase); err != nil {
		return fmt.Errorf("%w: %q", err, c.Timebase)
	}

	switch {
	case c.Flag.OutputSamples && c.Flag.OutputBits:
		return ErrConflictingOutput
	case c.Flag.OutputSamples:
		c.Mode = OutputSamples
	case c.Flag.OutputBits:
		c.Mode = OutputBits
	default:
		c.Mode = OutputPackets
	}

	return nil
}

func (c *Config) readConfigFile() error {
	file, err := os.Open(c.Flag.ConfigFile)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	decoder := yaml.NewDecoder(file)
	if err = decoder.Decode(c); err != nil {
		return err
	}

	return nil
}

func (c *Config) setDebugConfig() (err error) {
	switch c.Debug.FlagString {
	case "trace", "full":
		c.Debug.Flag = debug.Full
	case "debug":
		c.Debug.Flag = debug.Warning | debug.Info | debug.Error | debug.Fatal | debug.Debug
	case "standard":
		c.Debug.Flag = debug.Standard
	}

	switch c.Debug.FileString {
	case "stderr":
		c.Debug.File = os.Stderr
	case "stdout":
		c.Debug.File = os.Stdout
	default:
		if c.Debug.File, err = os.OpenFile(c.Debug.FileString, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666); err != nil {
			return
		}
	}

	return
}
