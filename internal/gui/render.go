package gui

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const labelSize = 12

var (
	ColLink  = rl.NewColor(255, 255, 255, 255)
	ColNode  = rl.NewColor(255, 255, 255, 255)
	ColLabel = rl.NewColor(255, 255, 255, 255)
)

// RaylibSurface draws field frames straight to the current raylib target.
// It must only be used between BeginDrawing and EndDrawing.
type RaylibSurface struct {
	font rl.Font
	w, h float64
}

func NewRaylibSurface(font rl.Font) *RaylibSurface {
	return &RaylibSurface{font: font}
}

func (s *RaylibSurface) Size() (float64, float64) { return s.w, s.h }
func (s *RaylibSurface) Resize(w, h float64)      { s.w, s.h = w, h }
func (s *RaylibSurface) Clear()                   { rl.ClearBackground(ColBg) }

func (s *RaylibSurface) Line(x0, y0, x1, y1, alpha float64) {
	rl.DrawLineEx(
		rl.NewVector2(float32(x0), float32(y0)),
		rl.NewVector2(float32(x1), float32(y1)),
		1, rl.ColorAlpha(ColLink, float32(alpha)))
}

func (s *RaylibSurface) Circle(x, y, r, alpha float64) {
	rl.DrawCircleV(rl.NewVector2(float32(x), float32(y)), float32(r), rl.ColorAlpha(ColNode, float32(alpha)))
}

// Text draws text centred on (x, y).
func (s *RaylibSurface) Text(x, y float64, text string, alpha float64) {
	size := rl.MeasureTextEx(s.font, text, labelSize, 1)
	pos := rl.NewVector2(float32(x)-size.X/2, float32(y)-size.Y/2)
	rl.DrawTextEx(s.font, text, pos, labelSize, 1, rl.ColorAlpha(ColLabel, float32(alpha)))
}

// drawHero centres the profile name and the typed title over the field.
func (a *App) drawHero() {
	w, h := float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight())
	alpha := float32(a.Intro.Opacity)
	lift := float32(a.Intro.Offset)

	nameSize := float32(56) * float32(a.Intro.Scale)
	name := a.Opts.Profile.Name
	ns := rl.MeasureTextEx(a.Font, name, nameSize, 2)
	rl.DrawTextEx(a.Font, name, rl.NewVector2((w-ns.X)/2, h/2-ns.Y+lift), nameSize, 2, rl.ColorAlpha(ColSelect, alpha))

	title := a.Typer.Text()
	if a.Typer.CursorVisible() {
		title += "|"
	}
	ts := rl.MeasureTextEx(a.Font, title, 28, 1)
	rl.DrawTextEx(a.Font, title, rl.NewVector2((w-ts.X)/2, h/2+12+lift), 28, 1, rl.ColorAlpha(ColAccent, alpha))

	if !a.Intro.Done() {
		return
	}
	hint := strings.ToUpper(strings.Join(a.Opts.Profile.Titles, " · "))
	hs := rl.MeasureTextEx(a.Font, hint, 14, 1)
	rl.DrawTextEx(a.Font, hint, rl.NewVector2((w-hs.X)/2, h/2+60), 14, 1, rl.ColorAlpha(ColTextDim, 1))
}

func (a *App) DrawTelemetry() {
	if len(a.Telemetry) < 2 {
		return
	}

	rectX, rectY := 30, rl.GetScreenHeight()-120
	width, height := 400, 60

	minVal, maxVal := a.Telemetry[0], a.Telemetry[0]
	for _, v := range a.Telemetry {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(a.Telemetry))
	for i, val := range a.Telemetry {
		px := float32(rectX) + (float32(i)/float32(len(a.Telemetry)))*float32(width)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(rectY+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColAccent)
	a.drawText(fmt.Sprintf("particles: %d", int(a.Telemetry[len(a.Telemetry)-1])), rectX+width+10, rectY+height-10, 14, ColText)
}
