// Package tui hosts the overlay in a terminal with bubbletea.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"debug-overlay/overlay"
	"debug-overlay/scene"
)

// Stepper advances the update loop by one frame. *clock.Loop implements it.
type Stepper interface {
	Frame(ctx context.Context, dt time.Duration) overlay.Frame
}

// Source exposes the engine state after a frame. *overlay.Engine
// implements it.
type Source interface {
	Categories() []overlay.CategoryView
	Stats() overlay.Stats
}

type keyMap struct {
	Toggle key.Binding
	Pause  key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Pause, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Toggle, k.Pause}, {k.Help, k.Quit}}
}

func defaultKeys(toggle string) keyMap {
	return keyMap{
		Toggle: key.NewBinding(key.WithKeys(toggle), key.WithHelp(toggle, "show/hide overlay")),
		Pause:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

type styles struct {
	panel    lipgloss.Style
	category lipgloss.Style
	text     lipgloss.Style
	divider  lipgloss.Style
	label    lipgloss.Style
	dim      lipgloss.Style
}

func defaultStyles() styles {
	brand := lipgloss.Color("214")
	subtle := lipgloss.Color("241")
	return styles{
		panel:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(subtle).Padding(0, 1),
		category: lipgloss.NewStyle().Bold(true).Foreground(brand),
		text:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		divider:  lipgloss.NewStyle().Foreground(subtle),
		label:    lipgloss.NewStyle().Foreground(subtle),
		dim:      lipgloss.NewStyle().Foreground(subtle),
	}
}

type frameMsg struct{ ts time.Time }

// Options configures a Model.
type Options struct {
	Interval   time.Duration
	ToggleKey  string
	GraphWidth int
}

// Model is the bubbletea model driving the loop from tea.Tick messages.
type Model struct {
	ctx    context.Context
	loop   Stepper
	source Source
	scene  *scene.Scene

	interval   time.Duration
	graphWidth int
	last       time.Time
	paused     bool
	frame      overlay.Frame

	width int
	keys  keyMap
	help  help.Model
	st    styles
}

// NewModel builds a model. s must be registered as the engine's host so
// its nodes follow the engine's lifecycle events.
func NewModel(ctx context.Context, loop Stepper, source Source, s *scene.Scene, opts Options) Model {
	if opts.Interval <= 0 {
		opts.Interval = time.Second / 30
	}
	if opts.ToggleKey == "" {
		opts.ToggleKey = "="
	}
	if opts.GraphWidth <= 0 {
		opts.GraphWidth = 40
	}
	return Model{
		ctx:        ctx,
		loop:       loop,
		source:     source,
		scene:      s,
		interval:   opts.Interval,
		graphWidth: opts.GraphWidth,
		keys:       defaultKeys(opts.ToggleKey),
		help:       help.New(),
		st:         defaultStyles(),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(ts time.Time) tea.Msg { return frameMsg{ts: ts} })
}

func (m Model) Init() tea.Cmd { return m.tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Toggle):
			m.scene.ToggleVisible()
		case key.Matches(msg, m.keys.Pause):
			m.paused = !m.paused
			m.last = time.Time{}
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
		return m, nil

	case frameMsg:
		if !m.paused {
			dt := m.interval
			if !m.last.IsZero() {
				dt = msg.ts.Sub(m.last)
			}
			m.last = msg.ts
			m.frame = m.loop.Frame(m.ctx, dt)
			m.scene.Sync(m.source.Categories())
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	if m.scene.Visible {
		b.WriteString(m.st.panel.Render(m.panel()))
		b.WriteString("\n")
	} else {
		b.WriteString(m.st.dim.Render(fmt.Sprintf("overlay hidden, press %s", m.keys.Toggle.Help().Key)))
		b.WriteString("\n")
	}
	stats := m.source.Stats()
	status := fmt.Sprintf("categories %d  graphs %d  entries %d  dropped %d  cycles %d",
		stats.Categories, stats.Graphs, stats.Entries, stats.Dropped, stats.Cycles)
	if m.paused {
		status += "  [paused]"
	}
	b.WriteString(m.st.dim.Render(status))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) panel() string {
	if m.scene.Empty() {
		return m.st.text.Render(scene.EmptyMessage)
	}
	var blocks []string
	for _, cat := range m.scene.Categories() {
		if cat.Visible {
			blocks = append(blocks, m.category(cat))
		}
	}
	return strings.Join(blocks, "\n\n")
}

func (m Model) category(cat *scene.Node) string {
	lines := []string{m.st.category.Render(cat.Name)}
	if cat.Text != "" {
		for _, l := range strings.Split(cat.Text, "\n") {
			lines = append(lines, m.st.text.Render(l))
		}
	}

	graphs := 0
	for _, g := range cat.Children {
		if g.Visible && g.Kind == scene.KindGraph {
			graphs++
		}
	}
	if cat.Text != "" && graphs > 0 {
		lines = append(lines, m.st.divider.Render(strings.Repeat("─", m.graphWidth)))
	}

	for _, g := range cat.Children {
		if !g.Visible || g.Kind != scene.KindGraph {
			continue
		}
		snap := g.Graph
		title := snap.ID
		if snap.Origin == overlay.TickSlow {
			title += " [fixed]"
		}
		line := lipgloss.NewStyle().Foreground(lipgloss.Color(g.Color.Hex()))
		width := min(m.graphWidth, max(snap.Capacity, 1))
		lines = append(lines,
			fmt.Sprintf("%s %s", title, m.st.label.Render(fmt.Sprintf("%.4g", snap.Max))),
			line.Render(Sparkline(snap.Samples, snap.Min, snap.Max, width)),
			m.st.label.Render(fmt.Sprintf("%.4g", snap.Min)),
		)
	}
	return strings.Join(lines, "\n")
}

// Run starts a bubbletea program on the alternate screen and blocks until
// the user quits or ctx is cancelled.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
