package viz

import (
	"strings"
	"testing"

	"github.com/san-kum/synapse/internal/field"
)

var _ field.Surface = (*CanvasSurface)(nil)

func TestCanvasSetAndClear(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)

	if c.Grid[0][0] != blank|0x1 {
		t.Errorf("expected dot 1 set, got %U", c.Grid[0][0])
	}
	if c.Grid[0][1] != blank|0x80 {
		t.Errorf("expected dot 8 set, got %U", c.Grid[0][1])
	}
	if c.Level[0][0] != 1 {
		t.Errorf("expected level 1, got %f", c.Level[0][0])
	}

	c.Clear()
	if c.Grid[0][0] != blank || c.Level[0][0] != 0 {
		t.Error("clear did not reset cell")
	}
}

func TestCanvasIgnoresOutOfRange(t *testing.T) {
	c := NewCanvas(1, 1)
	c.Set(-1, 0)
	c.Set(0, -1)
	c.Set(2, 0)
	c.Set(0, 4)

	if c.Grid[0][0] != blank {
		t.Errorf("expected untouched cell, got %U", c.Grid[0][0])
	}
}

func TestDrawLineAlphaDithers(t *testing.T) {
	count := func(alpha float64) int {
		c := NewCanvas(40, 1)
		c.DrawLineAlpha(0, 0, 59, 0, alpha)
		n := 0
		for x := 0; x < 40; x++ {
			r := c.Grid[0][x] - blank
			for r > 0 {
				n += int(r & 1)
				r >>= 1
			}
		}
		return n
	}

	full, half, faint := count(1), count(0.5), count(0.1)
	if full != 60 {
		t.Errorf("expected 60 pixels at full alpha, got %d", full)
	}
	if half != 30 {
		t.Errorf("expected 30 pixels at half alpha, got %d", half)
	}
	if faint != 20 {
		t.Errorf("expected 20 pixels at low alpha, got %d", faint)
	}
}

func TestLabelsAndCaptions(t *testing.T) {
	c := NewCanvas(10, 2)
	c.SetCaptions(Caption{Row: 1, Col: 0, Text: "ada"})
	c.PutLabel(5, 0, "0.50", 1)

	lines := strings.Split(strings.TrimSuffix(c.String(), "\n"), "\n")
	if !strings.Contains(lines[0], "0.50") {
		t.Errorf("label missing from row 0: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "ada") {
		t.Errorf("caption missing from row 1: %q", lines[1])
	}

	c.Clear()
	lines = strings.Split(strings.TrimSuffix(c.String(), "\n"), "\n")
	if strings.Contains(lines[0], "0.50") {
		t.Error("label survived clear")
	}
	if !strings.HasPrefix(lines[1], "ada") {
		t.Error("caption should survive clear")
	}
}

func TestCanvasSurfaceResize(t *testing.T) {
	s := NewCanvasSurface(3)
	s.Canvas.SetCaptions(Caption{Text: "x"})
	w, h := UnitsFor(40, 10, 3)
	s.Resize(w, h)

	if s.Canvas.Width != 40 || s.Canvas.Height != 10 {
		t.Errorf("expected 40x10 cells, got %dx%d", s.Canvas.Width, s.Canvas.Height)
	}
	if gw, gh := s.Size(); gw != w || gh != h {
		t.Errorf("expected size %fx%f, got %fx%f", w, h, gw, gh)
	}
	if len(s.Canvas.captions) != 1 {
		t.Error("captions lost on resize")
	}
}

func TestCanvasSurfaceDrawsFrame(t *testing.T) {
	s := NewCanvasSurface(3)
	s.Resize(UnitsFor(20, 5, 3))

	fr := field.Frame{
		Links:     []field.Link{{X0: 0, Y0: 0, X1: 100, Y1: 0, Alpha: 1}},
		Nodes:     []field.Node{{X: 30, Y: 30, Radius: 4}},
		Particles: []field.Particle{{X: 60, Y: 36, Value: 0.5, Alpha: 1}, {X: 60, Y: 12, Value: -0.5, Alpha: 0.01}},
	}
	field.Render(s, fr, field.DefaultParams())

	out := s.Canvas.String()
	if !strings.Contains(out, "0.50") {
		t.Error("visible particle label missing")
	}
	if strings.Contains(out, "-0.50") {
		t.Error("faint particle label should be hidden")
	}
	if s.Canvas.Grid[0][0] == blank {
		t.Error("link not drawn")
	}
}

func TestRenderKeepsText(t *testing.T) {
	c := NewCanvas(6, 1)
	c.SetCaptions(Caption{Row: 0, Col: 1, Text: "hey"})
	out := c.Render(ThemeSynapse)
	if !strings.Contains(out, "hey") {
		t.Errorf("caption missing from render: %q", out)
	}
}

func TestNextThemeWraps(t *testing.T) {
	last := Themes[len(Themes)-1]
	if NextTheme(last.Name).Name != Themes[0].Name {
		t.Error("expected wrap to first theme")
	}
	if GetTheme("nope").Name != "synapse" {
		t.Error("expected fallback theme")
	}
}

func TestFadeColor(t *testing.T) {
	if got := FadeColor("#ffffff", 0.5); got != "#7f7f7f" {
		t.Errorf("expected #7f7f7f, got %s", got)
	}
	if got := FadeColor("#ffffff", 2); got != "#ffffff" {
		t.Errorf("expected clamp to white, got %s", got)
	}
}

func TestSparklineScalesVisibleWindow(t *testing.T) {
	// the old peak scrolls out of view, so the last two samples span the range
	out := SparklineChart([]float64{100, 0, 1}, 2)
	if !strings.Contains(out, "▁") || !strings.Contains(out, "█") {
		t.Errorf("expected lowest and highest bars, got %q", out)
	}
	if got := SparklineChart(nil, 3); got != "───" {
		t.Errorf("empty sparkline: got %q", got)
	}
}

func TestSeparator(t *testing.T) {
	if !strings.Contains(Separator(20), "◆") {
		t.Error("wide separator should carry a diamond")
	}
	if strings.Contains(Separator(4), "◆") {
		t.Error("narrow separator should be a plain rule")
	}
}

func TestGradientText(t *testing.T) {
	out := GradientText("syn", ThemeSynapse.Text, ThemeSynapse.Accent)
	for _, r := range "syn" {
		if !strings.ContainsRune(out, r) {
			t.Errorf("gradient dropped %q", r)
		}
	}
	if GradientText("", ThemeSynapse.Text, ThemeSynapse.Accent) != "" {
		t.Error("empty text should stay empty")
	}
}

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != len(Themes) || names[0] != "synapse" {
		t.Fatalf("unexpected theme names %v", names)
	}
	for _, n := range names {
		if GetTheme(n).Name != n {
			t.Errorf("theme %s does not round-trip", n)
		}
	}
}

func TestCanvasDots(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Plot(1, 2, 0.4)
	c.Plot(3, 7, 1)

	type dot struct {
		x, y  int
		level float64
	}
	var got []dot
	c.Dots(func(x, y int, level float64) { got = append(got, dot{x, y, level}) })

	want := []dot{{1, 2, 0.4}, {3, 7, 1}}
	if len(got) != len(want) {
		t.Fatalf("expected %d dots, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("dot %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}
