package viz

import "math"

// DefaultScale is the number of field units per braille sub-pixel.
const DefaultScale = 3.0

// LabelCutoff hides labels too faint to read in a terminal.
const LabelCutoff = 0.2

// CanvasSurface draws field frames onto a braille Canvas.
type CanvasSurface struct {
	Canvas *Canvas
	Scale  float64
	w, h   float64
}

func NewCanvasSurface(scale float64) *CanvasSurface {
	if scale <= 0 {
		scale = DefaultScale
	}
	return &CanvasSurface{Canvas: NewCanvas(0, 0), Scale: scale}
}

// UnitsFor converts a cell area into field units at the given scale.
func UnitsFor(cols, rows int, scale float64) (w, h float64) {
	return float64(cols) * 2 * scale, float64(rows) * 4 * scale
}

func (s *CanvasSurface) Size() (float64, float64) { return s.w, s.h }

// Resize reallocates the canvas to cover w×h units. Captions carry over.
func (s *CanvasSurface) Resize(w, h float64) {
	s.w, s.h = w, h
	cols := int(math.Ceil(w / (2 * s.Scale)))
	rows := int(math.Ceil(h / (4 * s.Scale)))
	caps := s.Canvas.captions
	s.Canvas = NewCanvas(cols, rows)
	s.Canvas.captions = caps
}

func (s *CanvasSurface) Clear() { s.Canvas.Clear() }

func (s *CanvasSurface) sub(v float64) int { return int(v / s.Scale) }

func (s *CanvasSurface) Line(x0, y0, x1, y1, alpha float64) {
	s.Canvas.DrawLineAlpha(s.sub(x0), s.sub(y0), s.sub(x1), s.sub(y1), alpha)
}

func (s *CanvasSurface) Circle(x, y, r, alpha float64) {
	s.Canvas.FillCircle(s.sub(x), s.sub(y), s.sub(r), alpha)
}

func (s *CanvasSurface) Text(x, y float64, text string, alpha float64) {
	if alpha < LabelCutoff {
		return
	}
	s.Canvas.PutLabel(s.sub(x)/2, s.sub(y)/4, text, alpha)
}
