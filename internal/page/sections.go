package page

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/synapse/internal/content"
	"github.com/san-kum/synapse/internal/motion"
	"github.com/san-kum/synapse/internal/viz"
)

// revealFrom is how far, in columns, a section starts from its resting place.
const revealFrom = 12

type section struct {
	title  string
	body   func(width int, t viz.Theme) string
	reveal *motion.Reveal
	// start and height are the section's line span in the viewport content.
	start, height int
}

// visible returns the fraction of the section inside [top, top+rows).
func (s *section) visible(top, rows int) float64 {
	if s.height <= 0 {
		return 0
	}
	lo, hi := max(s.start, top), min(s.start+s.height, top+rows)
	if hi <= lo {
		return 0
	}
	return float64(hi-lo) / float64(s.height)
}

func (s *section) render(width int, t viz.Theme) string {
	header := viz.HeaderStyle.Foreground(t.Text).Render(s.title)
	block := lipgloss.JoinVertical(lipgloss.Left, header, s.body(width, t))
	if !s.reveal.Triggered() {
		return lipgloss.NewStyle().PaddingLeft(revealFrom).Faint(true).Render(block)
	}
	if pad := int(s.reveal.Offset + 0.5); pad > 0 {
		return lipgloss.NewStyle().PaddingLeft(pad).Render(block)
	}
	return block
}

func buildSections(p *content.Profile, tokens *motion.TokenStream, fps int) []*section {
	sections := []*section{
		{title: "About", body: aboutBody(tokens)},
		{title: "Experience", body: experienceBody(p.Experience)},
		{title: "Skills", body: skillsBody(p.Skills)},
		{title: "Projects", body: projectsBody(p.Projects)},
		{title: "Education", body: educationBody(p.Education)},
		{title: "Contact", body: contactBody(p.Contact)},
	}
	for _, s := range sections {
		s.reveal = motion.NewReveal(fps, revealFrom)
	}
	return sections
}

func wrap(width int) lipgloss.Style {
	if width < 20 {
		width = 20
	}
	return lipgloss.NewStyle().Width(width)
}

func aboutBody(tokens *motion.TokenStream) func(int, viz.Theme) string {
	return func(width int, t viz.Theme) string {
		lines := tokens.Lines()
		if len(lines) == 0 {
			return viz.Subtle.Render("…")
		}
		out := make([]string, 0, len(lines))
		for _, l := range lines {
			text := lipgloss.NewStyle().Foreground(t.Text).Render(l.Text)
			if l.Rate > 0 {
				text += " " + viz.Subtle.Render(l.Suffix())
			}
			out = append(out, wrap(width-4).Render(text))
		}
		return strings.Join(out, "\n")
	}
}

func badges(items []string, t viz.Theme) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, viz.Badge(it, t))
	}
	return strings.Join(parts, " ")
}

func experienceBody(exp []content.Experience) func(int, viz.Theme) string {
	return func(width int, t viz.Theme) string {
		dot := lipgloss.NewStyle().Foreground(t.Accent).Render("●")
		rail := lipgloss.NewStyle().Foreground(t.Accent).Render("│")
		var entries []string
		for _, e := range exp {
			head := fmt.Sprintf("%s %s %s", dot,
				lipgloss.NewStyle().Bold(true).Foreground(t.Text).Render(e.Title),
				viz.Subtle.Render("@ "+e.Company))
			body := lipgloss.JoinVertical(lipgloss.Left,
				viz.Subtle.Render(e.Timeframe),
				wrap(width-6).Render(e.Description),
				badges(e.Skills, t),
			)
			indented := lipgloss.JoinHorizontal(lipgloss.Top, rail+" ", body)
			entries = append(entries, head+"\n"+indented)
		}
		return strings.Join(entries, "\n\n")
	}
}

func skillsBody(skills []content.Skill) func(int, viz.Theme) string {
	return func(width int, t viz.Theme) string {
		barWidth := min(30, max(10, width-30))
		rows := make([]string, 0, len(skills))
		for _, s := range skills {
			rows = append(rows, fmt.Sprintf("%s %s %s",
				lipgloss.NewStyle().Width(22).Foreground(t.Text).Render(s.Name),
				viz.ProgressBar(s.Proficiency, barWidth),
				viz.MetricValue.Render(fmt.Sprintf("%3.0f%%", s.Proficiency*100)),
			))
		}
		return strings.Join(rows, "\n")
	}
}

func projectsBody(projects []content.Project) func(int, viz.Theme) string {
	return func(width int, t viz.Theme) string {
		cards := make([]string, 0, len(projects))
		for _, p := range projects {
			lines := []string{
				lipgloss.NewStyle().Bold(true).Foreground(t.Text).Render(p.Title),
				wrap(width - 10).Render(p.Description),
				badges(p.TechStack, t),
			}
			if p.DemoLink != "" {
				lines = append(lines, lipgloss.NewStyle().Foreground(t.Accent).Underline(true).Render(p.DemoLink))
			}
			cards = append(cards, viz.CardStyle.BorderForeground(t.Muted).Render(strings.Join(lines, "\n")))
		}
		return strings.Join(cards, "\n")
	}
}

func educationBody(edu []content.Education) func(int, viz.Theme) string {
	return func(width int, t viz.Theme) string {
		cards := make([]string, 0, len(edu))
		for _, e := range edu {
			lines := []string{
				lipgloss.NewStyle().Bold(true).Foreground(t.Text).Render(e.Degree),
				e.University,
				viz.Subtle.Render(e.Timeframe),
			}
			if e.Description != "" {
				lines = append(lines, wrap(width-10).Render(e.Description))
			}
			cards = append(cards, viz.CardStyle.BorderForeground(t.Muted).Render(strings.Join(lines, "\n")))
		}
		return strings.Join(cards, "\n")
	}
}

func contactBody(c content.Contact) func(int, viz.Theme) string {
	return func(width int, t viz.Theme) string {
		row := func(label, value string) string {
			return viz.MetricLabel.Render(label) + lipgloss.NewStyle().Foreground(t.Text).Render(value)
		}
		rows := []string{row("email", c.Email)}
		if c.Phone != "" {
			rows = append(rows, row("phone", c.Phone))
		}
		if c.LinkedIn != "" {
			rows = append(rows, row("linkedin", c.LinkedIn))
		}
		if c.GitHub != "" {
			rows = append(rows, row("github", c.GitHub))
		}
		return strings.Join(rows, "\n")
	}
}
