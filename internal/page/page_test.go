package page

import (
	"image/gif"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/synapse/internal/content"
	"github.com/san-kum/synapse/internal/field"
	"github.com/san-kum/synapse/internal/viz"
)

func keyPress(s string) tea.KeyMsg {
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	return New(content.Default(), Options{Seed: 7, OutDir: t.TempDir()})
}

// tick feeds n frames spaced one sixtieth of a second apart.
func tick(m tea.Model, n int) (tea.Model, tea.Cmd) {
	now := time.Unix(1700000000, 0)
	var cmd tea.Cmd
	for i := 0; i < n; i++ {
		now = now.Add(time.Second / 60)
		m, cmd = m.Update(TickMsg(now))
	}
	return m, cmd
}

func TestResizeFeedsViewport(t *testing.T) {
	m := newTestModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = next.(Model)

	wantW, wantH := viz.UnitsFor(100, 16, viz.DefaultScale)
	w, h := m.host.vp.Size()
	if w != wantW || h != wantH {
		t.Fatalf("expected viewport %vx%v, got %vx%v", wantW, wantH, w, h)
	}
	st := m.host.field.State()
	if st.Width != wantW || st.Height != wantH {
		t.Errorf("field did not follow resize: %vx%v", st.Width, st.Height)
	}
	if m.host.surface.Canvas.Width != 100 {
		t.Errorf("expected 100 canvas columns, got %d", m.host.surface.Canvas.Width)
	}
}

func TestTickAdvancesAndRearms(t *testing.T) {
	m := newTestModel(t)
	next, cmd := tick(m, 3)
	m = next.(Model)

	if cmd == nil {
		t.Fatal("tick should be re-armed while the field runs")
	}
	if got := m.host.field.State().Frame; got != 3 {
		t.Errorf("expected frame 3, got %d", got)
	}
}

func TestQuitStopsField(t *testing.T) {
	m := newTestModel(t)
	next, cmd := m.Update(keyPress("q"))
	m = next.(Model)

	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if m.host.active() || m.host.field.Running() {
		t.Error("field should be stopped after quit")
	}
	if _, cmd := tick(m, 1); cmd != nil {
		t.Error("tick must not be re-armed after quit")
	}
	if m.View() != "" {
		t.Error("view should be empty after quit")
	}
}

func TestDetachedFieldKeepsPageAlive(t *testing.T) {
	m := newTestModel(t)
	m.host.stop()
	m.host.field = field.New(field.DefaultParams(), rand.New(rand.NewSource(1)), m.host.driver)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	next, cmd := tick(next, 1)
	if cmd == nil {
		t.Fatal("tick should be re-armed while the intro runs")
	}
	next, _ = next.Update(keyPress("enter"))
	next, _ = tick(next, 1)
	m = next.(Model)

	if m.host.field.Attached() {
		t.Fatal("field should stay detached")
	}
	if !strings.Contains(m.View(), "About") {
		t.Error("sections should show without a field")
	}
	if !strings.Contains(m.host.surface.Canvas.String(), "Alex Doe") {
		t.Error("hero captions should show without a field")
	}
}

func TestPauseHoldsFrame(t *testing.T) {
	m := newTestModel(t)
	next, _ := tick(m, 2)
	next, _ = next.Update(keyPress(" "))
	next, cmd := tick(next, 5)
	m = next.(Model)

	if got := m.host.field.State().Frame; got != 2 {
		t.Errorf("paused field advanced to frame %d", got)
	}
	if cmd == nil {
		t.Error("paused page keeps ticking for animations")
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("expected paused status")
	}
}

func TestIntroHidesContent(t *testing.T) {
	m := newTestModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	next, _ = tick(next, 1)
	if strings.Contains(next.View(), "Experience") {
		t.Fatal("sections should stay hidden during the intro")
	}

	next, _ = next.Update(keyPress("enter"))
	next, _ = tick(next, 1)
	m = next.(Model)
	if !m.intro.Done() {
		t.Fatal("enter should skip the intro")
	}
	if !strings.Contains(m.View(), "About") {
		t.Error("expected the about section after the intro")
	}
}

func TestRevealStartsTokenStream(t *testing.T) {
	m := newTestModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	next, _ = next.Update(keyPress("enter"))
	next, _ = tick(next, 2)
	m = next.(Model)

	about := m.sections[0]
	if !about.reveal.Triggered() {
		t.Fatal("first section is on screen and should be revealed")
	}
	if !m.tokens.Started() {
		t.Error("about reveal should start the token stream")
	}
	last := m.sections[len(m.sections)-1]
	if last.reveal.Triggered() {
		t.Error("contact section is off screen and should not be revealed yet")
	}
}

func TestSectionVisible(t *testing.T) {
	s := &section{start: 10, height: 10}
	cases := []struct {
		top, rows int
		want      float64
	}{
		{0, 5, 0},
		{15, 10, 0.5},
		{0, 100, 1},
		{12, 4, 0.4},
		{25, 10, 0},
	}
	for _, c := range cases {
		if got := s.visible(c.top, c.rows); got != c.want {
			t.Errorf("visible(%d, %d) = %v, want %v", c.top, c.rows, got, c.want)
		}
	}
	if (&section{}).visible(0, 10) != 0 {
		t.Error("empty section is never visible")
	}
}

func TestThemeKeyCycles(t *testing.T) {
	m := newTestModel(t)
	before := m.host.theme.Name
	next, _ := m.Update(keyPress("t"))
	m = next.(Model)
	if m.host.theme.Name == before {
		t.Errorf("theme did not change from %s", before)
	}
}

func TestCaptionsCentreName(t *testing.T) {
	m := newTestModel(t)
	next, _ := m.Update(keyPress("enter"))
	next, _ = tick(next, 1)
	m = next.(Model)

	out := m.host.surface.Canvas.String()
	if !strings.Contains(out, "Alex Doe") {
		t.Errorf("hero should carry the profile name:\n%s", out)
	}
}

func TestSnapshotWritesSVG(t *testing.T) {
	m := newTestModel(t)
	next, _ := tick(m, 1)
	next, _ = next.Update(keyPress("s"))
	m = next.(Model)

	data, err := os.ReadFile(filepath.Join(m.host.opts.OutDir, "synapse.svg"))
	if err != nil {
		t.Fatalf("snapshot not written: %v", err)
	}
	if !strings.Contains(string(data), "<circle") {
		t.Error("snapshot should contain nodes")
	}

	braille, err := os.ReadFile(filepath.Join(m.host.opts.OutDir, "synapse-braille.svg"))
	if err != nil {
		t.Fatalf("braille snapshot not written: %v", err)
	}
	if !strings.Contains(string(braille), "<circle") {
		t.Error("braille snapshot should contain dots")
	}
}

func TestRecordingWritesGIF(t *testing.T) {
	m := NewFieldModel(Options{Seed: 3, OutDir: t.TempDir()})
	next, _ := m.Update(keyPress("g"))
	next, _ = tick(next, 3)
	next, _ = next.Update(keyPress("g"))
	fm := next.(FieldModel)

	f, err := os.Open(filepath.Join(fm.host.opts.OutDir, "synapse.gif"))
	if err != nil {
		t.Fatalf("gif not written: %v", err)
	}
	defer f.Close()
	anim, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(anim.Image) != 3 {
		t.Errorf("expected 3 frames, got %d", len(anim.Image))
	}
	if fm.host.recording {
		t.Error("second press should stop recording")
	}
}

func TestFieldModelHistory(t *testing.T) {
	m := NewFieldModel(Options{Seed: 11, OutDir: t.TempDir(), Preset: "storm"})
	next, _ := tick(m, 10)
	fm := next.(FieldModel)

	if got := len(fm.History()); got != 10 {
		t.Fatalf("expected 10 history points, got %d", got)
	}
	if got := len(*fm.links); got != 10 {
		t.Errorf("expected 10 link samples, got %d", got)
	}
	view := fm.View()
	for _, want := range []string{"Frame", "Particles", "storm"} {
		if !strings.Contains(view, want) {
			t.Errorf("sidebar missing %q", want)
		}
	}
	if !strings.ContainsAny(view, "▁▂▃▄▅▆▇█") {
		t.Error("sidebar missing the links sparkline")
	}

	next, _ = fm.Update(keyPress("r"))
	fm = next.(FieldModel)
	if len(fm.History()) != 0 || len(*fm.links) != 0 {
		t.Error("reseed should clear the history")
	}
}
