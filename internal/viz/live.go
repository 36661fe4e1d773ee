package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/warpfield/internal/hal"
	"github.com/san-kum/warpfield/internal/starfield"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 120
)

type TickMsg time.Time

// Options tune the terminal host. Zero values pick the defaults.
type Options struct {
	Theme Theme
	// Throttle is the base speed applied every frame.
	Throttle float32
	// Impulse is the crank turn for one key press or wheel notch.
	Impulse float32
	// MaxThrottle caps the up key.
	MaxThrottle  float32
	ThrottleStep float32
	Cols, Rows   int
}

func (o *Options) defaults() {
	if o.Theme.Name == "" {
		o.Theme = ThemeMono
	}
	if o.Impulse == 0 {
		o.Impulse = 4
	}
	if o.MaxThrottle == 0 {
		o.MaxThrottle = 30
	}
	if o.ThrottleStep == 0 {
		o.ThrottleStep = 0.5
	}
	if o.Cols == 0 {
		o.Cols = width
	}
	if o.Rows == 0 {
		o.Rows = height
	}
}

// Model hosts a starfield in the terminal. The braille surface is the
// field's display and renderer; the crank is its input.
type Model struct {
	field    *starfield.Field
	surface  *Surface
	crank    *hal.Crank
	opts     Options
	theme    Theme
	running  bool
	showHelp bool
	recycled []float64
	depth    []float64
	err      error
}

func NewModel(cfg starfield.Config, opts Options) (Model, error) {
	opts.defaults()
	surface := NewSurface(opts.Cols, opts.Rows, cfg.View.Width, cfg.View.Height)
	crank := hal.NewCrank(opts.Throttle)
	cfg.Foreground = opts.Theme.Star
	cfg.Background = opts.Theme.Space

	f, err := starfield.New(cfg, starfield.Ports{
		Display:  surface,
		Renderer: surface,
		Input:    crank,
	})
	if err != nil {
		return Model{}, err
	}
	return Model{
		field:    f,
		surface:  surface,
		crank:    crank,
		opts:     opts,
		theme:    opts.Theme,
		running:  true,
		recycled: make([]float64, 0, historyCapacity),
		depth:    make([]float64, 0, historyCapacity),
	}, nil
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	interval := time.Duration(float64(time.Second) / float64(m.surface.RefreshRate()))
	return tea.Tick(interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and advances the field on every tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "up", "k":
			m.crank.SetBase(min(m.crank.Base()+m.opts.ThrottleStep, m.opts.MaxThrottle))
		case "down", "j":
			m.crank.SetBase(max(m.crank.Base()-m.opts.ThrottleStep, 0))
		case "+", "=":
			m.crank.Turn(m.opts.Impulse)
		case "-", "_":
			m.crank.Turn(-m.opts.Impulse)
		case "c":
			m.field.SetCentered(!m.field.View().Centered)
		case "t":
			m.theme = m.theme.Next()
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.crank.Turn(m.opts.Impulse)
		case tea.MouseButtonWheelDown:
			m.crank.Turn(-m.opts.Impulse)
		}
	case TickMsg:
		if m.running {
			if err := m.field.Update(); err != nil {
				m.err = err
				return m, tea.Quit
			}
			st := m.field.LastStats()
			m.recycled = push(m.recycled, float64(st.Recycled))
			m.depth = push(m.depth, st.MeanDepth)
		}
		return m, m.tick()
	}
	return m, nil
}

func push(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyCapacity {
		h = h[1:]
	}
	return h
}

// Err is the frame error that stopped the program, if any.
func (m Model) Err() error { return m.err }

func (m Model) Field() *starfield.Field { return m.field }

func (m Model) Crank() *hal.Crank { return m.crank }

func (m Model) Theme() Theme { return m.theme }

func (m Model) Running() bool { return m.running }

// View renders the canvas beside the stats panel.
func (m Model) View() string {
	starStyle := lipgloss.NewStyle().
		Foreground(Hex(m.theme.Star)).
		Background(Hex(m.theme.Space))
	canvasView := canvasStyle.Render(starStyle.Render(m.surface.Canvas().String()))

	var s strings.Builder
	title := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Accent)
	s.WriteString(title.Render("WARPFIELD") + "\n")
	if m.running {
		s.WriteString(StatusRunning.Render("RUNNING") + "\n\n")
	} else {
		s.WriteString(StatusPaused.Render("PAUSED") + "\n\n")
	}

	if len(m.recycled) > 1 {
		chart := asciigraph.Plot(m.recycled, asciigraph.Height(4), asciigraph.Width(28), asciigraph.Caption("Recycled"))
		s.WriteString(lipgloss.NewStyle().Foreground(m.theme.Accent).Render(chart) + "\n")
		s.WriteString(labelStyle.Render("Depth") + SparklineChart(m.depth, 20) + "\n\n")
	}

	st := m.field.LastStats()
	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Frame", fmt.Sprintf("%d", m.field.Frame()))
	row("Stars", fmt.Sprintf("%d", m.field.Len()))
	row("Seed", fmt.Sprintf("%d", m.field.Seed()))
	row("Speed", fmt.Sprintf("%.2f", st.Speed))
	row("Throttle", ThrottleBar(m.crank.Base(), m.opts.MaxThrottle, 12))
	row("Mean Z", fmt.Sprintf("%.1f", st.MeanDepth))
	row("Centered", fmt.Sprintf("%v", m.field.View().Centered))
	row("Theme", m.theme.Name)

	s.WriteString(helpStyle.Render("─────────────────────\nSP:Pause Q:Quit ?:Help\n↑↓:Throttle +-:Crank"))
	panel := panelStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, panel)
	if m.showHelp {
		return helpText + "\n\n" + mainView
	}
	return mainView
}

var helpText = KeyHint.Render(`
  Space    pause / resume
  Q        quit
  Up/K     raise throttle
  Down/J   lower throttle
  + / -    crank forward / back
  Wheel    crank
  C        toggle centred projection
  T        cycle themes
  ?        toggle this help`)
