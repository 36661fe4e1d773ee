// Package window hosts a starfield in an ebiten window. The field strokes
// its lines into an offscreen image at the view's native resolution, which
// ebiten scales to the window.
package window

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/san-kum/warpfield/internal/hal"
	"github.com/san-kum/warpfield/internal/starfield"
	"github.com/san-kum/warpfield/internal/viz"
)

type Options struct {
	Scale    int
	Theme    viz.Theme
	Throttle float32
	Impulse  float32
	// Antialias strokes lines with ebiten's antialiasing.
	Antialias bool
}

// Game is an ebiten.Game driving one field per tick.
type Game struct {
	field   *starfield.Field
	crank   *hal.Crank
	theme   viz.Theme
	frame   *ebiten.Image
	w, h    int
	opts    Options
	running bool
}

// Run opens the window and blocks until it closes. A frame error ends the
// loop and is returned.
func Run(cfg starfield.Config, opts Options) error {
	g, err := NewGame(cfg, opts)
	if err != nil {
		return err
	}
	ebiten.SetWindowTitle("warpfield")
	ebiten.SetWindowSize(g.w*g.opts.Scale, g.h*g.opts.Scale)
	slog.Info("window open", "host", "ebiten", "width", g.w, "height", g.h, "stars", cfg.Stars, "seed", g.field.Seed())

	err = ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

func NewGame(cfg starfield.Config, opts Options) (*Game, error) {
	if opts.Scale < 1 {
		opts.Scale = 2
	}
	if opts.Impulse == 0 {
		opts.Impulse = 4
	}
	if opts.Theme.Name == "" {
		opts.Theme = viz.ThemeMono
	}
	cfg.Foreground = opts.Theme.Star
	cfg.Background = opts.Theme.Space

	g := &Game{
		crank:   hal.NewCrank(opts.Throttle),
		theme:   opts.Theme,
		w:       int(math.Ceil(float64(cfg.View.Width))),
		h:       int(math.Ceil(float64(cfg.View.Height))),
		opts:    opts,
		running: true,
	}
	g.frame = ebiten.NewImage(g.w, g.h)

	f, err := starfield.New(cfg, starfield.Ports{
		Display:  displayFunc(g.setRefreshRate),
		Renderer: g,
		Input:    g.crank,
	})
	if err != nil {
		return nil, err
	}
	g.field = f
	return g, nil
}

// displayFunc adapts a function to hal.Display.
type displayFunc func(fps float32) error

func (f displayFunc) SetRefreshRate(fps float32) error { return f(fps) }

func (g *Game) setRefreshRate(fps float32) error {
	tps := int(math.Round(float64(fps)))
	if tps < 1 {
		return fmt.Errorf("window: refresh rate %g", fps)
	}
	ebiten.SetTPS(tps)
	return nil
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.running = !g.running
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyUp) {
		g.crank.SetBase(g.crank.Base() + 0.5)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDown) {
		g.crank.SetBase(max(g.crank.Base()-0.5, 0))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.field.SetCentered(!g.field.View().Centered)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		g.theme = g.theme.Next()
	}
	if _, dy := ebiten.Wheel(); dy != 0 {
		g.crank.Turn(float32(dy) * g.opts.Impulse)
	}

	if !g.running {
		return nil
	}
	if err := g.field.Update(); err != nil {
		slog.Error("frame failed", "frame", g.field.Frame(), "err", err)
		return err
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.DrawImage(g.frame, nil)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.w, g.h
}

func (g *Game) Clear(hal.Color) error {
	g.frame.Fill(g.theme.Space)
	return nil
}

func (g *Game) DrawLine(from, to hal.Point, thickness int, _ hal.Color) error {
	width := float32(thickness)
	if thickness < 1 {
		width = 1
	}
	vector.StrokeLine(g.frame,
		float32(from.X), float32(from.Y), float32(to.X), float32(to.Y),
		width, g.theme.Star, g.opts.Antialias)
	return nil
}
