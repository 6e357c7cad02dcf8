package page

import (
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/synapse/internal/content"
	"github.com/san-kum/synapse/internal/motion"
	"github.com/san-kum/synapse/internal/viz"
)

const (
	minHeroRows = 8
	// heroLift converts the intro offset into caption rows.
	heroLift = 10.0
)

// Model is the portfolio page: the field as a hero banner with the profile
// scrolling underneath.
type Model struct {
	keys keyMap
	help help.Model
	host *host

	profile  *content.Profile
	intro    *motion.Intro
	typer    *motion.Typewriter
	tokens   *motion.TokenStream
	sections []*section
	vp       viewport.Model

	width, height int
	heroRows      int
	quitting      bool
}

func New(p *content.Profile, opts Options) Model {
	h := newHost(opts)
	tokens := motion.NewTokenStream(p.About, rand.New(rand.NewSource(opts.Seed)))
	m := Model{
		keys:    defaultKeys(),
		help:    help.New(),
		host:    h,
		profile: p,
		intro:   motion.NewIntro(),
		typer:   motion.NewTypewriter(p.Titles, true),
		tokens:  tokens,
		vp:      viewport.New(80, 12),
		width:   80,
		height:  24,
	}
	m.sections = buildSections(p, tokens, h.opts.FPS)
	m.layout()
	return m
}

func (m Model) Init() tea.Cmd {
	return m.host.tick()
}

func (m *Model) layout() {
	m.heroRows = max(minHeroRows, m.height*2/5)
	m.host.resize(m.width, m.heroRows)
	m.vp.Width = m.width
	m.vp.Height = max(1, m.height-m.heroRows-lipgloss.Height(m.status()))
	m.refresh()
}

// refresh re-renders the sections and records each one's line span.
func (m *Model) refresh() {
	if !m.intro.Done() {
		m.vp.SetContent("")
		return
	}
	var b strings.Builder
	line := 0
	for i, s := range m.sections {
		if i > 0 {
			b.WriteString("\n" + viz.Separator(m.width-2) + "\n")
			line += 2
		}
		out := s.render(m.width-2, m.host.theme)
		s.start = line
		s.height = lipgloss.Height(out)
		line += s.height
		b.WriteString(out)
	}
	m.vp.SetContent(b.String())
}

func (m *Model) observeSections() {
	for _, s := range m.sections {
		if s.reveal.Observe(s.visible(m.vp.YOffset, m.vp.Height)) && s.title == "About" {
			m.tokens.Start()
		}
		s.reveal.Update()
	}
}

func (m *Model) captions() {
	c := m.host.surface.Canvas
	if c.Width == 0 || c.Height == 0 {
		return
	}
	t := m.host.theme
	alpha := m.intro.Opacity
	lift := int(m.intro.Offset / heroLift)
	row := c.Height/2 - 1 + lift

	name := m.profile.Name
	if m.intro.Scale > 1+(motion.IntroMaxScale-1)/2 {
		name = strings.Join(strings.Split(name, ""), " ")
	}
	title := m.typer.Text()
	if m.typer.CursorVisible() {
		title += "▌"
	} else {
		title += " "
	}

	centre := func(s string) int { return max(0, (c.Width-len([]rune(s)))/2) }
	c.SetCaptions(
		viz.Caption{
			Row:   row,
			Col:   centre(name),
			Text:  name,
			Style: lipgloss.NewStyle().Bold(true).Foreground(viz.FadeColor(t.Text, alpha)),
		},
		viz.Caption{
			Row:   row + 2,
			Col:   centre(title),
			Text:  title,
			Style: lipgloss.NewStyle().Foreground(viz.FadeColor(t.Accent, alpha)),
		},
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
		case key.Matches(msg, m.keys.Theme):
			m.host.nextTheme()
			m.refresh()
		case key.Matches(msg, m.keys.Record):
			m.host.toggleRecording()
		case key.Matches(msg, m.keys.Snapshot):
			m.host.screenshot()
		case key.Matches(msg, m.keys.Skip):
			m.intro.Skip()
			m.refresh()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			m.layout()
		case key.Matches(msg, m.keys.Down):
			m.vp.LineDown(1)
		case key.Matches(msg, m.keys.Up):
			m.vp.LineUp(1)
		case key.Matches(msg, m.keys.PageDown):
			m.vp.ViewDown()
		case key.Matches(msg, m.keys.PageUp):
			m.vp.ViewUp()
		}
		return m, nil

	case TickMsg:
		dt := m.host.advance(time.Time(msg))
		m.intro.Update(dt)
		m.typer.Advance(dt)
		if m.intro.Done() {
			m.tokens.Advance(dt)
			m.observeSections()
		}
		m.refresh()
		m.captions()
		// the intro and the typewriter run even when the field is detached
		if !m.quitting {
			return m, m.host.tick()
		}
		return m, nil
	}
	return m, nil
}

func (m Model) status() string {
	var parts []string
	switch {
	case m.host.recording:
		parts = append(parts, viz.StatusRecording.Render("● REC"))
	case m.host.paused:
		parts = append(parts, viz.StatusPaused.Render("❚❚ PAUSED"))
	}
	if m.host.status != "" {
		parts = append(parts, viz.Subtle.Render(m.host.status))
	}
	parts = append(parts, m.help.View(m.keys))
	return strings.Join(parts, "  ")
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.host.surface.Canvas.Render(m.host.theme),
		m.vp.View(),
		m.status(),
	)
}
