package page

import (
	"fmt"
	"image"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/synapse/internal/export"
	"github.com/san-kum/synapse/internal/field"
	"github.com/san-kum/synapse/internal/frame"
	"github.com/san-kum/synapse/internal/viz"
)

const (
	defaultFPS = 60
	gifDelay   = 2
	maxFrames  = 600
	// brailleDot is the sub-pixel pitch of braille snapshots, in pixels.
	brailleDot = 4.0
)

// Options configure both terminal hosts.
type Options struct {
	Params field.Params
	Seed   int64
	FPS    int
	Theme  string
	Preset string
	// OutDir receives GIF recordings and SVG screenshots.
	OutDir string
}

type TickMsg time.Time

// host owns the field and everything that drives it inside bubbletea. The
// bubbletea loop is the only caller, so nothing here is locked.
type host struct {
	opts    Options
	driver  *frame.Driver
	vp      *frame.Viewport
	surface *viz.CanvasSurface
	field   *field.Field
	theme   viz.Theme

	paused    bool
	recording bool
	frames    []*image.Paletted
	status    string
	lastTick  time.Time
	fps       float64
}

func newHost(opts Options) *host {
	if opts.FPS <= 0 {
		opts.FPS = defaultFPS
	}
	if opts.OutDir == "" {
		opts.OutDir = "."
	}
	if opts.Params.NodeCount == 0 && opts.Params.LinkDistance == 0 {
		opts.Params = field.DefaultParams()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	h := &host{
		opts:    opts,
		driver:  frame.NewDriver(),
		vp:      frame.NewViewport(viz.UnitsFor(80, 12, viz.DefaultScale)),
		surface: viz.NewCanvasSurface(viz.DefaultScale),
		theme:   viz.GetTheme(opts.Theme),
	}
	h.field = field.New(opts.Params, rand.New(rand.NewSource(seed)), h.driver)
	if err := h.field.Attach(h.surface, h.vp); err != nil {
		h.status = "field unavailable"
		return h
	}
	h.field.Start()
	return h
}

func (h *host) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(h.opts.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
}

// resize maps a cell area onto the viewport; the field follows through its
// resize subscription.
func (h *host) resize(cols, rows int) {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	h.vp.Set(viz.UnitsFor(cols, rows, h.surface.Scale))
	if !h.field.Attached() {
		h.surface.Resize(h.vp.Size())
	}
}

// advance runs one field frame and returns the elapsed time since the last
// tick.
func (h *host) advance(now time.Time) time.Duration {
	dt := time.Second / time.Duration(h.opts.FPS)
	if !h.lastTick.IsZero() {
		if d := now.Sub(h.lastTick); d > 0 {
			dt = d
			h.fps = 1 / d.Seconds()
		}
	}
	h.lastTick = now

	if !h.paused {
		h.driver.Tick()
		if h.recording && len(h.frames) < maxFrames {
			h.frames = append(h.frames, export.CanvasImage(h.surface.Canvas))
		}
	}
	return dt
}

func (h *host) active() bool { return h.driver.Active() }

func (h *host) stop() { h.field.Stop() }

func (h *host) togglePause() { h.paused = !h.paused }

func (h *host) nextTheme() { h.theme = viz.NextTheme(h.theme.Name) }

func (h *host) toggleRecording() {
	if !h.recording {
		h.recording = true
		h.frames = make([]*image.Paletted, 0)
		h.status = "recording"
		return
	}
	h.recording = false
	path := filepath.Join(h.opts.OutDir, "synapse.gif")
	if err := writeTo(path, func(f *os.File) error { return export.EncodeGIF(f, h.frames, gifDelay) }); err != nil {
		h.status = fmt.Sprintf("gif: %v", err)
	} else {
		h.status = fmt.Sprintf("saved %s (%d frames)", path, len(h.frames))
	}
	h.frames = nil
}

// screenshot writes the last frame as SVG at full field resolution.
func (h *host) screenshot() {
	w, ht := h.vp.Size()
	svg := export.NewSVGSurface(w, ht)
	field.Render(svg, h.field.LastFrame(), h.field.Params())

	vector := filepath.Join(h.opts.OutDir, "synapse.svg")
	braille := filepath.Join(h.opts.OutDir, "synapse-braille.svg")
	for path, doc := range map[string]string{
		vector:  svg.String(),
		braille: export.BrailleSVG(h.surface.Canvas, brailleDot, h.theme),
	} {
		if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
			h.status = fmt.Sprintf("svg: %v", err)
			return
		}
	}
	h.status = "saved " + vector + " and " + braille
}

func writeTo(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
