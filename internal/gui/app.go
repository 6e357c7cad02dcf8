package gui

import (
	"fmt"
	"math/rand"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/synapse/internal/config"
	"github.com/san-kum/synapse/internal/content"
	"github.com/san-kum/synapse/internal/field"
	"github.com/san-kum/synapse/internal/frame"
	"github.com/san-kum/synapse/internal/motion"
)

// Theme Colors (Monochrome Hyper-Minimalist)
var (
	ColBg      = rl.NewColor(0, 0, 0, 255)       // Black
	ColAccent  = rl.NewColor(33, 150, 243, 255)  // Timeline blue
	ColSelect  = rl.NewColor(255, 255, 255, 255) // Bright White
	ColText    = rl.NewColor(140, 140, 140, 255) // Neutral Gray
	ColTextDim = rl.NewColor(60, 60, 60, 255)    // Dark Gray (Subtle)
)

const maxTelemetry = 200

// Options configure a window session.
type Options struct {
	Width, Height int
	FPS           int
	Seed          int64
	Preset        string
	Params        field.Params
	Profile       *content.Profile
	// Interactive opens the preset menu before starting the field.
	Interactive bool
}

type App struct {
	Opts     Options
	Font     rl.Font
	Surface  *RaylibSurface
	Driver   *frame.Driver
	Viewport *frame.Viewport
	Field    *field.Field

	Intro *motion.Intro
	Typer *motion.Typewriter

	Running   bool
	InMenu    bool
	Presets   []string
	Selected  int
	Preset    string
	Telemetry []float64 // particle population, oldest first
	Status    string
}

// initWindow opens a resizable window and disables the default exit key so
// ESC can return to the menu.
func initWindow(w, h, fps int) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(w), int32(h), "synapse")
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(0)
}

// loadFont loads Liberation Mono when installed; raylib falls back to its
// built-in font otherwise.
func loadFont() rl.Font {
	font := rl.LoadFontEx("/usr/share/fonts/liberation/LiberationMono-Regular.ttf", 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

func NewApp(opts Options) *App {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 1280, 720
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Profile == nil {
		opts.Profile = content.Default()
	}
	if opts.Preset == "" {
		opts.Preset = "classic"
	}

	font := loadFont()
	app := &App{
		Opts:      opts,
		Font:      font,
		Surface:   NewRaylibSurface(font),
		Driver:    frame.NewDriver(),
		Viewport:  frame.NewViewport(float64(opts.Width), float64(opts.Height)),
		Intro:     motion.NewIntro(),
		Typer:     motion.NewTypewriter(opts.Profile.Titles, true),
		InMenu:    opts.Interactive,
		Presets:   config.ListPresets(),
		Telemetry: make([]float64, 0, maxTelemetry),
	}
	if !opts.Interactive {
		params := opts.Params
		if params.NodeCount == 0 {
			params = field.DefaultParams()
		}
		app.loadField(opts.Preset, params)
	}
	return app
}

// Run opens the window and blocks until it is closed.
func Run(opts Options) {
	initWindow(orDefault(opts.Width, 1280), orDefault(opts.Height, 720), orDefault(opts.FPS, 60))
	defer rl.CloseWindow()
	app := NewApp(opts)
	defer app.Close()
	app.RunLoop()
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if !a.Update() {
			return
		}
		a.Draw()
	}
}

// Close stops the field so no frame runs after the window goes away.
func (a *App) Close() {
	if a.Field != nil {
		a.Field.Stop()
	}
}

func (a *App) loadField(preset string, params field.Params) {
	a.Close()
	seed := a.Opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	a.Field = field.New(params, rand.New(rand.NewSource(seed)), a.Driver)
	a.Field.AddObserver(field.ObserverFunc(func(_ field.State, f field.Frame) {
		a.Telemetry = append(a.Telemetry, float64(len(f.Particles)))
		if len(a.Telemetry) > maxTelemetry {
			a.Telemetry = a.Telemetry[1:]
		}
	}))
	a.Telemetry = a.Telemetry[:0]
	if err := a.Field.Attach(a.Surface, a.Viewport); err != nil {
		a.Status = err.Error()
		return
	}
	a.Field.Start()
	a.Preset = preset
	a.Running = true
	a.InMenu = false
}

// Update handles input and reports false when the app should exit.
func (a *App) Update() bool {
	if rl.IsKeyPressed(rl.KeyQ) {
		return false
	}
	if rl.IsWindowResized() {
		a.Viewport.Set(float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight()))
	}

	if a.InMenu {
		a.updateMenu()
		return true
	}

	dt := time.Duration(float64(rl.GetFrameTime()) * float64(time.Second))
	a.Intro.Update(dt)
	a.Typer.Advance(dt)

	switch {
	case rl.IsKeyPressed(rl.KeySpace):
		a.Running = !a.Running
	case rl.IsKeyPressed(rl.KeyR):
		a.Field.Reseed()
		a.Telemetry = a.Telemetry[:0]
	case rl.IsKeyPressed(rl.KeyEnter):
		a.Intro.Skip()
	case rl.IsKeyPressed(rl.KeyS):
		name := fmt.Sprintf("synapse_%d.png", time.Now().Unix())
		rl.TakeScreenshot(name)
		a.Status = "saved " + name
	case rl.IsKeyPressed(rl.KeyEscape):
		a.Close()
		a.InMenu = true
	}
	return true
}

func (a *App) updateMenu() {
	if rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyJ) {
		a.Selected++
	}
	if rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyK) {
		a.Selected--
	}
	if a.Selected >= len(a.Presets) {
		a.Selected = 0
	}
	if a.Selected < 0 {
		a.Selected = len(a.Presets) - 1
	}
	if rl.IsKeyPressed(rl.KeyEnter) {
		name := a.Presets[a.Selected]
		cfg := config.GetPreset(name)
		if cfg == nil {
			a.Status = "unknown preset " + name
			return
		}
		a.loadField(name, cfg.Params())
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	if a.InMenu {
		a.drawMenu()
	} else {
		a.drawField()
		a.drawHero()
		a.DrawHUD()
	}

	rl.EndDrawing()
}

// drawField runs one field frame onto the screen. While paused the last
// frame is redrawn as is.
func (a *App) drawField() {
	if a.Running {
		a.Driver.Tick()
		return
	}
	field.Render(a.Surface, a.Field.LastFrame(), a.Field.Params())
}

func (a *App) DrawHUD() {
	h := rl.GetScreenHeight()
	w := rl.GetScreenWidth()
	a.drawText("synapse", 30, 30, 24, ColSelect)
	a.drawText(fmt.Sprintf(":: %s", a.Preset), 140, 34, 16, ColText)

	a.DrawTelemetry()

	status := "RUNNING"
	col := ColSelect
	if !a.Running {
		status = "PAUSED"
		col = ColTextDim
	}
	a.drawText(status, w-130, 30, 16, col)

	a.drawText("[SPACE] PAUSE  [R] RESEED  [S] SCREENSHOT  [ESC] MENU  [Q] QUIT", w-580, h-40, 14, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), 30, h-40, 14, ColTextDim)
	if a.Status != "" {
		a.drawText(a.Status, 30, h-70, 14, ColText)
	}
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}

func (a *App) drawMenu() {
	a.drawText("synapse", 50, 50, 40, ColSelect)
	a.drawText("Select Preset", 50, 100, 16, ColTextDim)

	y := 160
	for i, name := range a.Presets {
		if i == a.Selected {
			a.drawText(fmt.Sprintf("> %s", name), 50, y, 20, ColSelect)
		} else {
			a.drawText(fmt.Sprintf("  %s", name), 50, y, 20, ColText)
		}
		y += 28
	}

	a.drawText("ARROWS: NAVIGATE  ENTER: SELECT  Q: QUIT", rl.GetScreenWidth()-430, rl.GetScreenHeight()-40, 14, ColTextDim)
}
