package gui

import (
	"log/slog"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/warpfield/internal/hal"
	"github.com/san-kum/warpfield/internal/starfield"
	"github.com/san-kum/warpfield/internal/viz"
)

var (
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
)

type Options struct {
	// Scale multiplies the view size to get the window size.
	Scale    float32
	Theme    viz.Theme
	Throttle float32
	// Impulse is the crank turn for one wheel notch.
	Impulse  float32
	ShowHUD  bool
	MaxSpeed float32
}

type line struct {
	from, to rl.Vector2
	thick    float32
	color    rl.Color
}

// App is a raylib window that acts as the field's display and renderer.
// The mouse wheel turns the crank.
type App struct {
	Field   *starfield.Field
	Crank   *hal.Crank
	Theme   viz.Theme
	Scale   float32
	Running bool
	ShowHUD bool

	opts       Options
	background rl.Color
	// last completed frame, replayed while paused
	lines []line
}

func initWindow(w, h int32) {
	rl.InitWindow(w, h, "warpfield")
	rl.SetExitKey(0)
}

// NewApp builds the field against an open window. InitWindow must have run.
func NewApp(cfg starfield.Config, opts Options) (*App, error) {
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	if opts.Impulse == 0 {
		opts.Impulse = 4
	}
	if opts.MaxSpeed == 0 {
		opts.MaxSpeed = 30
	}
	if opts.Theme.Name == "" {
		opts.Theme = viz.ThemeMono
	}
	cfg.Foreground = opts.Theme.Star
	cfg.Background = opts.Theme.Space

	a := &App{
		Crank:   hal.NewCrank(opts.Throttle),
		Theme:   opts.Theme,
		Scale:   opts.Scale,
		Running: true,
		ShowHUD: opts.ShowHUD,
		opts:    opts,
		lines:   make([]line, 0, cfg.Stars),
	}
	f, err := starfield.New(cfg, starfield.Ports{Display: a, Renderer: a, Input: a.Crank})
	if err != nil {
		return nil, err
	}
	a.Field = f
	return a, nil
}

// Run opens a window sized to the view and blocks until it is closed or a
// frame fails.
func Run(cfg starfield.Config, opts Options) error {
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	w := int32(math.Round(float64(cfg.View.Width * scale)))
	h := int32(math.Round(float64(cfg.View.Height * scale)))
	initWindow(w, h)
	defer rl.CloseWindow()

	app, err := NewApp(cfg, opts)
	if err != nil {
		return err
	}
	slog.Info("window open", "host", "raylib", "width", w, "height", h, "stars", cfg.Stars, "seed", app.Field.Seed())
	return app.RunLoop()
}

func (a *App) RunLoop() error {
	for !rl.WindowShouldClose() {
		if quit := a.Update(); quit {
			return nil
		}
		if err := a.Draw(); err != nil {
			slog.Error("frame failed", "frame", a.Field.Frame(), "err", err)
			return err
		}
	}
	return nil
}

// Update polls keys and the wheel. It reports whether the user quit.
func (a *App) Update() bool {
	if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
		return true
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Running = !a.Running
	}
	if rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyK) {
		a.Crank.SetBase(min(a.Crank.Base()+0.5, a.opts.MaxSpeed))
	}
	if rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyJ) {
		a.Crank.SetBase(max(a.Crank.Base()-0.5, 0))
	}
	if rl.IsKeyPressed(rl.KeyC) {
		a.Field.SetCentered(!a.Field.View().Centered)
	}
	if rl.IsKeyPressed(rl.KeyT) {
		a.Theme = a.Theme.Next()
	}
	if rl.IsKeyPressed(rl.KeyH) {
		a.ShowHUD = !a.ShowHUD
	}
	if move := rl.GetMouseWheelMove(); move != 0 {
		a.Crank.Turn(move * a.opts.Impulse)
	}
	return false
}

// Draw runs one frame of the field, or replays the last one while paused.
func (a *App) Draw() error {
	rl.BeginDrawing()
	defer rl.EndDrawing()

	if a.Running {
		if err := a.Field.Update(); err != nil {
			return err
		}
	} else {
		rl.ClearBackground(a.background)
		for _, l := range a.lines {
			rl.DrawLineEx(l.from, l.to, l.thick, l.color)
		}
	}
	if a.ShowHUD {
		a.drawHUD()
	}
	return nil
}

func (a *App) SetRefreshRate(fps float32) error {
	rl.SetTargetFPS(int32(math.Round(float64(fps))))
	return nil
}

// Clear paints the theme background. The field's own background colour is
// fixed at construction, so theme changes take effect here.
func (a *App) Clear(hal.Color) error {
	a.background = toColor(a.Theme.Space)
	a.lines = a.lines[:0]
	rl.ClearBackground(a.background)
	return nil
}

func (a *App) DrawLine(from, to hal.Point, thickness int, _ hal.Color) error {
	l := line{
		from:  a.toVec(from),
		to:    a.toVec(to),
		thick: lineWidth(thickness, a.Scale),
		color: toColor(a.Theme.Star),
	}
	a.lines = append(a.lines, l)
	rl.DrawLineEx(l.from, l.to, l.thick, l.color)
	return nil
}

func (a *App) toVec(p hal.Point) rl.Vector2 {
	return rl.NewVector2(float32(p.X)*a.Scale, float32(p.Y)*a.Scale)
}

func toColor(c hal.Color) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, 255)
}

// lineWidth maps a port thickness to pixels; below 1 is a hairline.
func lineWidth(thickness int, scale float32) float32 {
	if thickness < 1 {
		return 1
	}
	return float32(thickness) * scale
}
