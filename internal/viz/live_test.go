package viz

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/warpfield/internal/starfield"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	m, err := NewModel(starfield.DefaultConfig(), Options{Throttle: 5})
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	return m
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModelRejectsBadConfig(t *testing.T) {
	cfg := starfield.DefaultConfig()
	cfg.Stars = 0
	if _, err := NewModel(cfg, Options{}); err == nil {
		t.Error("expected error for zero stars")
	}
}

func TestModelTick(t *testing.T) {
	m := newTestModel(t)
	if m.Init() == nil {
		t.Fatal("expected tick command from Init")
	}

	m, cmd := send(t, m, TickMsg(time.Now()))
	if cmd == nil {
		t.Error("expected next tick to be scheduled")
	}
	if m.Field().Frame() != 1 {
		t.Errorf("expected 1 frame, got %d", m.Field().Frame())
	}
	if m.surface.Lines() != m.Field().Len() {
		t.Errorf("expected %d lines, got %d", m.Field().Len(), m.surface.Lines())
	}
	if m.Err() != nil {
		t.Errorf("unexpected error %v", m.Err())
	}
	if !strings.Contains(m.View(), "WARPFIELD") {
		t.Error("view should contain the title")
	}
}

func TestModelPause(t *testing.T) {
	m := newTestModel(t)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if m.Running() {
		t.Fatal("space should pause")
	}
	m, cmd := send(t, m, TickMsg(time.Now()))
	if m.Field().Frame() != 0 {
		t.Error("paused model should not advance")
	}
	if cmd == nil {
		t.Error("paused model should keep ticking")
	}
}

func TestModelThrottle(t *testing.T) {
	m := newTestModel(t)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.Crank().Base() != 5.5 {
		t.Errorf("expected throttle 5.5, got %v", m.Crank().Base())
	}
	for i := 0; i < 20; i++ {
		m, _ = send(t, m, key("j"))
	}
	if m.Crank().Base() != 0 {
		t.Errorf("throttle should stop at 0, got %v", m.Crank().Base())
	}
}

func TestModelCrank(t *testing.T) {
	m := newTestModel(t)
	m, _ = send(t, m, key("+"))
	m, _ = send(t, m, tea.MouseMsg{Button: tea.MouseButtonWheelUp})

	speed, _ := m.Crank().Speed()
	if speed != 13 {
		t.Errorf("expected 5 + 4 + 4, got %v", speed)
	}
	speed, _ = m.Crank().Speed()
	if speed != 5 {
		t.Errorf("impulses should drain, got %v", speed)
	}
}

func TestModelToggles(t *testing.T) {
	m := newTestModel(t)

	m, _ = send(t, m, key("c"))
	if m.Field().View().Centered {
		t.Error("c should disable centering")
	}

	m, _ = send(t, m, key("t"))
	if m.Theme().Name != "amber" {
		t.Errorf("expected amber, got %s", m.Theme().Name)
	}

	m, _ = send(t, m, key("?"))
	if !m.showHelp {
		t.Error("? should show help")
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t)
	_, cmd := send(t, m, key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}
