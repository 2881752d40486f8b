// Package config handles the forthbyte.toml render configuration.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/jcorbin/forthbyte/internal/forth"
	"github.com/jcorbin/forthbyte/internal/render"
)

// Output formats.
const (
	FormatWAV = "wav"
	FormatRaw = "raw"
)

// ErrFormat is returned for a format other than FormatWAV or FormatRaw.
var ErrFormat = errors.New("unknown output format")

// Config holds render settings; command line flags override it.
type Config struct {
	OutputRate uint64  `toml:"output_rate"`
	Seconds    float64 `toml:"seconds"`
	Format     string  `toml:"format"`
	Output     string  `toml:"output"`
	Capacity   int     `toml:"capacity"`
	Volume     float64 `toml:"volume"`
	Trace      bool    `toml:"trace"`
}

// Default returns the configuration used without a config file.
func Default() Config {
	return Config{
		OutputRate: render.DefaultOutputRate,
		Seconds:    30,
		Format:     FormatWAV,
		Capacity:   forth.DefaultCapacity,
		Volume:     1,
	}
}

// Load reads a TOML file over the defaults; keys absent from the file keep
// their default value.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("cannot read %s: %w", path, err)
	}
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, fmt.Errorf("parse error in %s: %w", path, err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return cfg, fmt.Errorf("unknown key %q in %s", undec[0].String(), path)
	}
	return cfg, cfg.Validate()
}

// Validate checks value ranges.
func (cfg Config) Validate() error {
	switch {
	case cfg.Format != FormatWAV && cfg.Format != FormatRaw:
		return fmt.Errorf("%w: %q", ErrFormat, cfg.Format)
	case cfg.OutputRate == 0:
		return errors.New("output_rate must be positive")
	case cfg.Seconds < 0:
		return errors.New("seconds must not be negative")
	case cfg.Capacity < 1:
		return errors.New("capacity must be positive")
	case cfg.Volume < 0 || cfg.Volume > 1:
		return errors.New("volume must be within [0, 1]")
	}
	return nil
}
