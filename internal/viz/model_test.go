package viz

import (
	"io"
	"log/slog"
	"math/rand"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/fibtree/internal/anim"
)

func newTestModel(t *testing.T, levels int) Model {
	t.Helper()
	d, err := anim.New(anim.Settings{
		Width: 360, Height: 450,
		RootX: 180, RootY: 380,
		MinLevels: levels, MaxLevels: levels,
		GroundTop: 361,
	}, rand.New(rand.NewSource(1)), slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("driver: %v", err)
	}
	return NewModel(d, time.Second, 360, 450)
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_TickAdvances(t *testing.T) {
	m := newTestModel(t, 4)
	if m.last.Shown != 0 || m.frames != 1 {
		t.Fatalf("expected first frame drawn, got shown=%d frames=%d", m.last.Shown, m.frames)
	}

	for i := 1; i <= 4; i++ {
		m = update(m, TickMsg(time.Now()))
		if m.last.Shown != i {
			t.Errorf("tick %d: shown %d", i, m.last.Shown)
		}
	}
	if m.trees != 2 {
		t.Errorf("expected a second tree after a full cycle, got %d", m.trees)
	}
}

func TestModel_Pause(t *testing.T) {
	m := newTestModel(t, 5)
	m = update(m, key(" "))
	if m.running {
		t.Fatal("space should pause")
	}
	m = update(m, TickMsg(time.Now()))
	if m.frames != 1 {
		t.Errorf("paused model advanced to frame %d", m.frames)
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("expected PAUSED in view")
	}
}

func TestModel_Keys(t *testing.T) {
	m := newTestModel(t, 3)

	m = update(m, key("n"))
	if m.trees != 2 || m.last.Shown != 0 {
		t.Errorf("n should start a new tree, trees=%d shown=%d", m.trees, m.last.Shown)
	}

	m = update(m, key("+"))
	if m.interval != 500*time.Millisecond {
		t.Errorf("expected 500ms, got %s", m.interval)
	}
	for i := 0; i < 10; i++ {
		m = update(m, key("-"))
	}
	if m.interval != maxInterval {
		t.Errorf("expected interval capped at %s, got %s", maxInterval, m.interval)
	}

	before := CurrentTheme.Name
	m = update(m, key("t"))
	if CurrentTheme.Name == before {
		t.Error("t should switch theme")
	}
	SetTheme(before)

	m = update(m, key("?"))
	if !strings.Contains(m.View(), "KEYBOARD SHORTCUTS") {
		t.Error("expected help overlay")
	}

	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q should return a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestModel_Resize(t *testing.T) {
	m := newTestModel(t, 4)
	m = update(m, TickMsg(time.Now()))
	m = update(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.canvas.Width != 120-panelWidth-4 || m.canvas.Height != 38 {
		t.Errorf("canvas not resized: %dx%d", m.canvas.Width, m.canvas.Height)
	}
	if dots(m.canvas) == 0 {
		t.Error("resize should repaint the last frame")
	}
	bottom := m.canvas.Colors[m.canvas.Height-1][m.canvas.Width/2]
	if bottom != anim.GroundColor {
		t.Errorf("resize should repaint the ground strip, bottom cell is %v", bottom)
	}
}

func TestModel_View(t *testing.T) {
	m := newTestModel(t, 6)
	v := m.View()
	for _, want := range []string{"Levels", "Branches", "GROWING"} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
