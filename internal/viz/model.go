package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/fibtree/internal/anim"
	"github.com/san-kum/fibtree/internal/fibtree"
)

const (
	width  = 60
	height = 28

	panelWidth  = 46
	minInterval = 100 * time.Millisecond
	maxInterval = 10 * time.Second
)

type TickMsg time.Time

// Model runs the growth animation in the terminal.
type Model struct {
	driver   *anim.Driver
	canvas   *Canvas
	sceneW   float64
	sceneH   float64
	interval time.Duration
	running  bool
	showHelp bool
	last     anim.Frame
	frames   int
	trees    int
}

// NewModel draws the first frame so the view is never empty.
func NewModel(d *anim.Driver, interval time.Duration, sceneW, sceneH float64) Model {
	c := NewCanvas(width, height)
	c.Fit(sceneW, sceneH)
	m := Model{
		driver:   d,
		canvas:   c,
		sceneW:   sceneW,
		sceneH:   sceneH,
		interval: interval,
		running:  true,
		trees:    1,
	}
	m.advance()
	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and advances the animation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "n":
			if err := m.driver.Reset(); err == nil {
				m.trees++
				m.advance()
			}
		case "t":
			NextTheme()
		case "+", "=":
			m.interval = max(m.interval/2, minInterval)
		case "-", "_":
			m.interval = min(m.interval*2, maxInterval)
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.WindowSizeMsg:
		w := max(msg.Width-panelWidth-4, 20)
		h := max(msg.Height-2, 10)
		m.canvas = NewCanvas(w, h)
		m.canvas.Fit(m.sceneW, m.sceneH)
		m.redraw()
	case TickMsg:
		if m.running {
			m.advance()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) advance() {
	m.last = m.driver.Frame(m.canvas)
	m.frames++
	if m.last.NewTree {
		m.trees++
	}
}

// redraw repaints the last frame after a resize without moving the cursor.
func (m *Model) redraw() {
	if m.last.Tree != nil {
		anim.Paint(m.canvas, m.driver.Settings(), m.last.Tree, m.last.Shown)
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	theme := CurrentTheme
	st := stylesFor(theme)
	canvasView := st.canvas.Render(m.canvas.Render(theme.Sky))

	tree := m.last.Tree
	var s strings.Builder
	s.WriteString(st.header.Render(GradientText("FIBONACCI TREE", theme.Title, theme.Accent)) + "\n")

	status := st.running.Render("GROWING")
	if !m.running {
		status = st.paused.Render("PAUSED")
	}
	s.WriteString(status + "\n\n")

	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	row("Levels", fmt.Sprintf("%d", tree.Levels()))
	row("Shown", fmt.Sprintf("%d / %d", m.last.Shown, tree.Levels()))
	row("Branches", fmt.Sprintf("%d", tree.Len()))
	row("Trunk", fmt.Sprintf("%d", tree.Trunk().Width()))
	row("Trees", fmt.Sprintf("%d", m.trees))
	row("Interval", m.interval.String())
	row("Theme", theme.Name)

	progress := float64(m.last.Shown) / float64(tree.Levels())
	s.WriteString("\n" + st.progressBar(progress, 30) + "\n")

	if widths := fibtree.MaxWidths(tree); len(widths) > 1 {
		chart := asciigraph.Plot(widths,
			asciigraph.Height(6),
			asciigraph.Width(30),
			asciigraph.Caption("widest branch per level"))
		s.WriteString(st.graph.Render(chart) + "\n")
	}

	s.WriteString(st.help.Render("SP:Pause N:New Q:Quit\nT:Theme +/-:Speed ?:Help"))
	statsView := st.panel.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume growth      ║
║  N        - Grow a new tree now      ║
║  T        - Cycle themes             ║
║  + / -    - Faster / slower frames   ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n" + mainView
	}
	return mainView
}

// Run blocks until the user quits.
func Run(d *anim.Driver, interval time.Duration, sceneW, sceneH float64) error {
	p := tea.NewProgram(NewModel(d, interval, sceneW, sceneH), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
