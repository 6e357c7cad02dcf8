package page

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/synapse/internal/field"
	"github.com/san-kum/synapse/internal/viz"
)

const (
	historyCapacity = 600
	sidebarWidth    = 45
	sparkWidth      = 24
)

var (
	sidebarStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(sidebarWidth)
	graphStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
)

// FieldModel shows the field alone with live statistics.
type FieldModel struct {
	keys fieldKeys
	help help.Model
	host *host

	history *[]float64
	links   *[]float64
	stats   *field.Stats

	width, height int
	quitting      bool
}

func NewFieldModel(opts Options) FieldModel {
	m := FieldModel{
		keys:    fieldKeys{defaultKeys()},
		help:    help.New(),
		host:    newHost(opts),
		history: new([]float64),
		links:   new([]float64),
		stats:   new(field.Stats),
		width:   80,
		height:  24,
	}
	hist, links, stats := m.history, m.links, m.stats
	m.host.field.AddObserver(field.ObserverFunc(func(_ field.State, f field.Frame) {
		*stats = field.FrameStats(f)
		*hist = appendCapped(*hist, float64(len(f.Particles)))
		*links = appendCapped(*links, float64(len(f.Links)))
	}))
	m.layout()
	return m
}

func appendCapped(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyCapacity {
		h = h[len(h)-historyCapacity:]
	}
	return h
}

func (m FieldModel) Init() tea.Cmd {
	return m.host.tick()
}

func (m *FieldModel) layout() {
	cols := max(10, m.width-sidebarWidth-2)
	rows := max(4, m.height-lipgloss.Height(m.help.View(m.keys))-1)
	m.host.resize(cols, rows)
}

// History returns the particle population of recent frames, oldest first.
func (m FieldModel) History() []float64 { return *m.history }

func (m FieldModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.layout()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			m.host.stop()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Pause):
			m.host.togglePause()
		case key.Matches(msg, m.keys.Reseed):
			m.host.field.Reseed()
			*m.history = (*m.history)[:0]
			*m.links = (*m.links)[:0]
		case key.Matches(msg, m.keys.Theme):
			m.host.nextTheme()
		case key.Matches(msg, m.keys.Record):
			m.host.toggleRecording()
		case key.Matches(msg, m.keys.Snapshot):
			m.host.screenshot()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			m.layout()
		}
		return m, nil

	case TickMsg:
		m.host.advance(time.Time(msg))
		if m.host.active() {
			return m, m.host.tick()
		}
		return m, nil
	}
	return m, nil
}

func (m FieldModel) sidebar() string {
	t := m.host.theme
	var s strings.Builder
	s.WriteString(viz.HeaderStyle.Render(viz.GradientText("SYNAPSE", t.Text, t.Accent)) + "\n")

	switch {
	case m.host.recording:
		s.WriteString(viz.StatusRecording.Render("● REC") + "\n\n")
	case m.host.paused:
		s.WriteString(viz.StatusPaused.Render("❚❚ PAUSED") + "\n\n")
	default:
		s.WriteString(viz.StatusRunning.Render(viz.AnimatedSpinner(m.stats.Frame)+" RUNNING") + "\n\n")
	}

	if hist := *m.history; len(hist) > 1 {
		chart := asciigraph.Plot(hist, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Particles"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(viz.MetricLabel.Render(label) + viz.MetricValue.Render(value) + "\n")
	}
	w, h := m.host.vp.Size()
	row("Frame", fmt.Sprintf("%d", m.stats.Frame))
	row("Nodes", fmt.Sprintf("%d", m.stats.Nodes))
	row("Links", fmt.Sprintf("%d", m.stats.Links))
	if len(*m.links) > 1 {
		s.WriteString(strings.Repeat(" ", 12) + viz.SparklineChart(*m.links, sparkWidth) + "\n")
	}
	row("Particles", fmt.Sprintf("%d", m.stats.Particles))
	row("Mean alpha", fmt.Sprintf("%.2f", m.stats.MeanAlpha))
	row("Field", fmt.Sprintf("%.0fx%.0f", w, h))
	row("Theme", t.Name)
	if m.host.fps > 0 {
		row("FPS", fmt.Sprintf("%.0f", m.host.fps))
	}
	if m.host.opts.Preset != "" {
		row("Preset", m.host.opts.Preset)
	}
	if m.host.status != "" {
		s.WriteString("\n" + viz.Subtle.Render(m.host.status) + "\n")
	}
	return sidebarStyle.Render(s.String())
}

func (m FieldModel) View() string {
	if m.quitting {
		return ""
	}
	main := lipgloss.JoinHorizontal(lipgloss.Top,
		m.host.surface.Canvas.Render(m.host.theme),
		m.sidebar(),
	)
	return lipgloss.JoinVertical(lipgloss.Left, main, m.help.View(m.keys))
}
