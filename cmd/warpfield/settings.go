package main

import (
	"fmt"
	"os"

	"github.com/san-kum/warpfield/internal/config"
	"github.com/san-kum/warpfield/internal/starfield"
	"github.com/san-kum/warpfield/internal/viz"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// resolveConfig layers defaults, the preset, the config file and changed
// flags, in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		fileCfg, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = fileCfg
	}

	flags := cmd.Flags()
	if flags.Changed("stars") {
		cfg.Stars = stars
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("clock-seed") {
		cfg.ClockSeed = clockSeed
	}
	if flags.Changed("speed") {
		cfg.Speed = speed
	}
	if flags.Changed("centered") {
		cfg.Centered = centered
	}
	if flags.Changed("recycle") {
		cfg.Recycle = recycle
	}
	if flags.Changed("scale") {
		cfg.Scale = scale
	}
	if flags.Changed("fps") {
		cfg.RefreshRate = fps
	}
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("frames") {
		cfg.Frames = frames
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if _, err := viz.LookupTheme(cfg.Theme); err != nil {
		return nil, fmt.Errorf("%w: %w", config.ErrInvalid, err)
	}
	return cfg, nil
}

// settings is the resolved config in the shapes the hosts take.
type settings struct {
	cfg   *config.Config
	field starfield.Config
	theme viz.Theme
}

func resolve(cmd *cobra.Command) (settings, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return settings{}, err
	}
	fc, err := cfg.Starfield()
	if err != nil {
		return settings{}, err
	}
	th := viz.GetTheme(cfg.Theme)
	fc.Foreground = th.Star
	fc.Background = th.Space
	return settings{cfg: cfg, field: fc, theme: th}, nil
}

// impulse is the crank turn of one wheel notch or key press.
func (s settings) impulse() float32 {
	return s.cfg.Crank * impulseUnit
}

func printYAML(cfg *config.Config) error {
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}
