// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// DataConfig points at the genome data produced by the external
// sequencing pipeline.
type DataConfig struct {
	// path to the reference FASTA
	FastaPath string `mapstructure:"fasta"`

	// path to the FASTA index (.fai)
	FaiPath string `mapstructure:"fai"`

	// pattern for per-contig filtered VCFs, %s replaced by contig name
	VCFPattern string `mapstructure:"vcf-pattern"`

	// contigs available for display, in order
	Contigs []string `mapstructure:"contigs"`
}

// StripConfig describes the LED string and its transport.
type StripConfig struct {
	// number of base pairs shown at once (one strand of the helix)
	Pairs int `mapstructure:"pairs"`

	// serial device the LED controller hangs off
	Port string `mapstructure:"port"`

	Baud int `mapstructure:"baud"`

	// render to the terminal instead of hardware
	Term bool `mapstructure:"term"`
}

// DisplayConfig tunes the render loop.
type DisplayConfig struct {
	// "scroll" walks the consensus sequence, "static" holds one frame
	Mode string `mapstructure:"mode"`

	// frames per second pushed to the strip
	RefreshHz int `mapstructure:"refresh-hz"`

	// how fast the sequence scrolls
	BasesPerSecond float64 `mapstructure:"bases-per-second"`

	// chance per displayed base of jumping to a random position
	JumpProb float64 `mapstructure:"jump-prob"`

	// brightness multiplier for loci matching the reference
	HomRefFactor float64 `mapstructure:"homref-factor"`

	// variant file for static mode (one frame of calls)
	StaticPath string `mapstructure:"static-path"`

	// contig for static mode calls
	StaticContig string `mapstructure:"static-contig"`
}

// BeaconConfig is the optional online/heartbeat beacon.
type BeaconConfig struct {
	// ntfy-style endpoint; empty disables the beacon
	Endpoint string `mapstructure:"endpoint"`

	// seconds between heartbeats
	IntervalSec int `mapstructure:"interval-sec"`
}

// Config is the root-level settings struct, populated from
// settings.yaml and/or command line flags.
type Config struct {
	Data    DataConfig    `mapstructure:"data"`
	Strip   StripConfig   `mapstructure:"strip"`
	Display DisplayConfig `mapstructure:"display"`
	Beacon  BeaconConfig  `mapstructure:"beacon"`
}

// New returns a Config populated from Viper.
func New() (Config, error) {
	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("unable to decode settings: %w", err)
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// Validate checks the handful of settings with hard requirements.
func (c Config) Validate() error {
	if c.Strip.Pairs <= 0 {
		return fmt.Errorf("strip.pairs must be positive, got %d", c.Strip.Pairs)
	}
	if c.Display.RefreshHz <= 0 {
		return fmt.Errorf("display.refresh-hz must be positive, got %d", c.Display.RefreshHz)
	}
	switch c.Display.Mode {
	case "scroll", "static":
	default:
		return fmt.Errorf("display.mode must be scroll or static, got %q", c.Display.Mode)
	}
	if c.Display.HomRefFactor <= 0 || c.Display.HomRefFactor > 1 {
		return fmt.Errorf("display.homref-factor must be in (0, 1], got %g", c.Display.HomRefFactor)
	}
	return nil
}

// LEDCount is the length of the physical string: two strands of Pairs LEDs.
func (c Config) LEDCount() int {
	return 2 * c.Strip.Pairs
}

// RefreshInterval is the time between frames.
func (c Config) RefreshInterval() time.Duration {
	return time.Second / time.Duration(c.Display.RefreshHz)
}

// VCFPath resolves the filtered VCF for a contig.
func (c Config) VCFPath(contig string) string {
	return fmt.Sprintf(c.Data.VCFPattern, contig)
}
