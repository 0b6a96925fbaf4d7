// Package umbra is the boundary layer of the layout engine: declarative
// widget descriptions, engine configuration, and the builder that
// compiles both into live shadow trees.
package umbra

import (
	"os"

	"github.com/kjk/flex"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/umbralabs/umbra/internal/logkit"
)

// Config is the engine configuration shared by every tree built through
// this package.
type Config struct {
	// Scale is the point scale factor (device pixels per point) the
	// solver rounds computed geometry to.
	Scale float32 `toml:"scale"`

	// RTLMirroring enables the start/end-over-left/right resolution of
	// logical box edges for right-to-left layouts.
	RTLMirroring bool `toml:"rtl_mirroring"`

	Logging LogConfig `toml:"logging"`
}

// LogConfig configures the diagnostics logger.
type LogConfig struct {
	// Path of the rotating log file. Empty disables the file sink.
	Path string `toml:"path"`

	MaxSizeMB  int `toml:"max_size_mb"`
	MaxBackups int `toml:"max_backups"`
	MaxAgeDays int `toml:"max_age_days"`

	// Console mirrors log output to stdout.
	Console bool `toml:"console"`

	// Development lowers the level to debug and uses a human-readable
	// console encoding.
	Development bool `toml:"development"`
}

// DefaultConfig returns sensible defaults for a new engine.
func DefaultConfig() Config {
	return Config{
		Scale: 1,
		Logging: LogConfig{
			MaxSizeMB:  10,
			MaxBackups: 5,
			MaxAgeDays: 30,
			Console:    true,
		},
	}
}

// LoadConfig reads a TOML configuration file, filling unspecified fields
// from DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "read config %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrapf(err, "validate config %s", path)
	}
	return cfg, nil
}

// Validate checks the configuration for values the engine cannot honor.
func (c *Config) Validate() error {
	if c.Scale <= 0 {
		return errors.Errorf("scale %g must be positive", c.Scale)
	}
	if c.Logging.MaxSizeMB < 0 || c.Logging.MaxBackups < 0 || c.Logging.MaxAgeDays < 0 {
		return errors.New("logging retention values must not be negative")
	}
	return nil
}

// Logger builds the diagnostics logger described by the Logging section.
func (c *Config) Logger() *zap.Logger {
	return logkit.New(logkit.Options{
		Path:        c.Logging.Path,
		MaxSizeMB:   c.Logging.MaxSizeMB,
		MaxBackups:  c.Logging.MaxBackups,
		MaxAgeDays:  c.Logging.MaxAgeDays,
		Console:     c.Logging.Console,
		Development: c.Logging.Development,
	})
}

// SolverConfig builds the shared solver configuration for nodes created
// under this engine configuration.
func (c *Config) SolverConfig() *flex.Config {
	fc := flex.NewConfig()
	fc.SetPointScaleFactor(c.Scale)
	return fc
}
