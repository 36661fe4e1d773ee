package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/warpfield/internal/hal"
	"github.com/san-kum/warpfield/internal/rng"
	"github.com/san-kum/warpfield/internal/starfield"
	"gopkg.in/yaml.v3"
)

const (
	DefaultStars       = starfield.DefaultStars
	DefaultWidth       = 400
	DefaultHeight      = 240
	DefaultRefreshRate = starfield.DefaultRefreshRate
	DefaultSpeed       = 4.0
	DefaultFrames      = 500
	DefaultTheme       = "mono"
)

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Stars       int     `yaml:"stars"`
	Seed        uint64  `yaml:"seed"`
	ClockSeed   bool    `yaml:"clock_seed"`
	Width       float32 `yaml:"width"`
	Height      float32 `yaml:"height"`
	RefreshRate float32 `yaml:"refresh_rate"`
	// Speed is the travel per frame applied even when the crank is idle.
	Speed float32 `yaml:"speed"`
	// Crank scales mouse wheel and crank impulses into travel.
	Crank    float32 `yaml:"crank"`
	Centered bool    `yaml:"centered"`
	Recycle  string  `yaml:"recycle"`
	Scale    float32 `yaml:"scale"`
	Theme    string  `yaml:"theme"`
	Frames   int     `yaml:"frames"`
}

func DefaultConfig() *Config {
	return &Config{
		Stars:       DefaultStars,
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		RefreshRate: DefaultRefreshRate,
		Speed:       DefaultSpeed,
		Crank:       1,
		Centered:    true,
		Recycle:     starfield.RecycleSigned.String(),
		Scale:       rng.DefaultScale,
		Theme:       DefaultTheme,
		Frames:      DefaultFrames,
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of a copy of base, so keys missing from the
// file keep base's values.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports the first field that the engine would reject.
func (c *Config) Validate() error {
	if c.Frames < 0 {
		return fmt.Errorf("%w: frames %d", ErrInvalid, c.Frames)
	}
	if c.Speed < 0 {
		return fmt.Errorf("%w: speed %g", ErrInvalid, c.Speed)
	}
	sc, err := c.Starfield()
	if err != nil {
		return err
	}
	if err := sc.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// View converts the display and projection settings.
func (c *Config) View() (starfield.View, error) {
	mode, err := starfield.ParseRecycleMode(c.Recycle)
	if err != nil {
		return starfield.View{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return starfield.View{
		Width:    c.Width,
		Height:   c.Height,
		Centered: c.Centered,
		Recycle:  mode,
		Scale:    c.Scale,
	}, nil
}

// Starfield converts the config into the engine's construction config.
func (c *Config) Starfield() (starfield.Config, error) {
	v, err := c.View()
	if err != nil {
		return starfield.Config{}, err
	}
	return starfield.Config{
		Stars:       c.Stars,
		Seed:        c.Seed,
		ClockSeed:   c.ClockSeed,
		View:        v,
		RefreshRate: c.RefreshRate,
		Foreground:  hal.White,
		Background:  hal.Black,
	}, nil
}
