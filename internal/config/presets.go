package config

import (
	"sort"
	"time"
)

// Presets override the level range and pacing of the default scene.
var Presets = map[string]*Config{
	"sapling": {
		MinLevels: 3, MaxLevels: 4, Interval: 1500 * time.Millisecond,
	},
	"classic": {
		MinLevels: 3, MaxLevels: 9, Interval: time.Second,
	},
	"orchard": {
		MinLevels: 6, MaxLevels: 7, Interval: 700 * time.Millisecond,
	},
	"ancient": {
		MinLevels: 8, MaxLevels: 9, Interval: 500 * time.Millisecond,
	},
}

// GetPreset returns the default config with the named preset applied, or
// nil if there is no such preset.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.MinLevels = p.MinLevels
	cfg.MaxLevels = p.MaxLevels
	cfg.Interval = p.Interval
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
