package config

import (
	"sort"

	"github.com/san-kum/warpfield/internal/rng"
)

var Presets = map[string]*Config{
	// handheld matches the 400x240 crank device: signed recycle, centred
	// projection, no idle drift.
	"handheld": {
		Stars: 600, Width: 400, Height: 240, RefreshRate: 50,
		Speed: 0, Crank: 1, Centered: true, Recycle: "signed",
		Scale: rng.DefaultScale, Theme: "mono", Frames: 500,
	},
	// classic is the early rendition: constant speed, uncentred projection
	// and recycles into the positive quadrant.
	"classic": {
		Stars: 200, Width: 400, Height: 240, RefreshRate: 50,
		Speed: 5, Crank: 1, Centered: false, Recycle: "unsigned",
		Scale: 1, Theme: "mono", Frames: 500,
	},
	"hyperspace": {
		Stars: 600, Width: 400, Height: 240, RefreshRate: 50,
		Speed: 18, Crank: 2, Centered: true, Recycle: "signed",
		Scale: rng.DefaultScale, Theme: "ion", Frames: 300,
	},
	"drift": {
		Stars: 150, Width: 400, Height: 240, RefreshRate: 30,
		Speed: 0.75, Crank: 0.5, Centered: true, Recycle: "signed",
		Scale: 100000, Theme: "amber", Frames: 1000,
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *p
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
