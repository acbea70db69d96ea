package config

import (
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Data: DataConfig{
			FastaPath:  "./data/ref.fna",
			FaiPath:    "./data/ref.fna.fai",
			VCFPattern: "./data/calls_%s.vcf",
			Contigs:    []string{"chr1", "chr2"},
		},
		Strip: StripConfig{Pairs: 9, Port: "/dev/ttyUSB0", Baud: 115200},
		Display: DisplayConfig{
			Mode:           "scroll",
			RefreshHz:      10,
			BasesPerSecond: 6,
			JumpProb:       0.0001,
			HomRefFactor:   0.1,
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "static mode", mutate: func(c *Config) { c.Display.Mode = "static" }},
		{name: "zero pairs", mutate: func(c *Config) { c.Strip.Pairs = 0 }, wantErr: true},
		{name: "zero refresh", mutate: func(c *Config) { c.Display.RefreshHz = 0 }, wantErr: true},
		{name: "unknown mode", mutate: func(c *Config) { c.Display.Mode = "disco" }, wantErr: true},
		{name: "factor zero", mutate: func(c *Config) { c.Display.HomRefFactor = 0 }, wantErr: true},
		{name: "factor above one", mutate: func(c *Config) { c.Display.HomRefFactor = 1.5 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(&c)
			if err := c.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDerivedValues(t *testing.T) {
	c := validConfig()
	if got := c.LEDCount(); got != 18 {
		t.Errorf("LEDCount() = %d, want 18", got)
	}
	if got := c.RefreshInterval(); got != 100*time.Millisecond {
		t.Errorf("RefreshInterval() = %v, want 100ms", got)
	}
	if got := c.VCFPath("chr2"); got != "./data/calls_chr2.vcf" {
		t.Errorf("VCFPath(chr2) = %q", got)
	}
}
