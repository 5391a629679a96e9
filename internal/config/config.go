package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth     = 360
	DefaultHeight    = 450
	DefaultRootX     = 180.0
	DefaultRootY     = 380.0
	DefaultGroundTop = 361.0
	DefaultMinLevels = 3
	DefaultMaxLevels = 9
	DefaultInterval  = time.Second
	DefaultTheme     = "meadow"
	DefaultLogLevel  = "info"
	DefaultScale     = 2
)

// Validation errors.
var (
	ErrInvalidSize       = errors.New("config: scene size must be positive")
	ErrInvalidLevelRange = errors.New("config: level range must satisfy 1 <= min_levels <= max_levels")
	ErrInvalidInterval   = errors.New("config: frame interval must be positive")
	ErrInvalidScale      = errors.New("config: output scale must be between 1 and 8")
	ErrInvalidLogLevel   = errors.New("config: unknown log level")
)

type Config struct {
	Width     int           `yaml:"width"`
	Height    int           `yaml:"height"`
	RootX     float64       `yaml:"root_x"`
	RootY     float64       `yaml:"root_y"`
	Ground    bool          `yaml:"ground"`
	GroundTop float64       `yaml:"ground_top"`
	MinLevels int           `yaml:"min_levels"`
	MaxLevels int           `yaml:"max_levels"`
	Interval  time.Duration `yaml:"interval"`
	Seed      int64         `yaml:"seed"`
	Theme     string        `yaml:"theme"`
	Scale     int           `yaml:"scale"`
	LogLevel  string        `yaml:"log_level"`
	LogJSON   bool          `yaml:"log_json"`
}

func DefaultConfig() *Config {
	return &Config{
		Width:     DefaultWidth,
		Height:    DefaultHeight,
		RootX:     DefaultRootX,
		RootY:     DefaultRootY,
		Ground:    true,
		GroundTop: DefaultGroundTop,
		MinLevels: DefaultMinLevels,
		MaxLevels: DefaultMaxLevels,
		Interval:  DefaultInterval,
		Theme:     DefaultTheme,
		Scale:     DefaultScale,
		LogLevel:  DefaultLogLevel,
	}
}

// Load reads a yaml file on top of base. A nil base starts from the
// defaults.
func Load(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if base != nil {
		c := *base
		cfg = &c
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, c.Width, c.Height)
	}
	if c.MinLevels < 1 || c.MaxLevels < c.MinLevels {
		return fmt.Errorf("%w: got [%d, %d]", ErrInvalidLevelRange, c.MinLevels, c.MaxLevels)
	}
	if c.Interval <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInterval, c.Interval)
	}
	if c.Scale < 1 || c.Scale > 8 {
		return fmt.Errorf("%w: %d", ErrInvalidScale, c.Scale)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
	return nil
}

// EffectiveGroundTop returns where the ground strip starts, or zero when the
// ground is disabled.
func (c *Config) EffectiveGroundTop() float64 {
	if !c.Ground {
		return 0
	}
	return c.GroundTop
}

// Seeded returns the configured seed, or now when the seed is zero.
func (c *Config) Seeded(now time.Time) int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return now.UnixNano()
}
