package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/san-kum/synapse/internal/viz"
)

// SVGSurface records field frames as SVG elements. Only the last frame
// (everything since the latest Clear) is kept.
type SVGSurface struct {
	w, h       float64
	Background string
	Stroke     string
	body       strings.Builder
}

func NewSVGSurface(w, h float64) *SVGSurface {
	return &SVGSurface{w: w, h: h, Background: "#000000", Stroke: "#ffffff"}
}

func (s *SVGSurface) Size() (float64, float64) { return s.w, s.h }
func (s *SVGSurface) Resize(w, h float64)      { s.w, s.h = w, h }
func (s *SVGSurface) Clear()                   { s.body.Reset() }

func (s *SVGSurface) Line(x0, y0, x1, y1, alpha float64) {
	fmt.Fprintf(&s.body, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke-opacity="%.3f"/>
`, x0, y0, x1, y1, alpha)
}

func (s *SVGSurface) Circle(x, y, r, alpha float64) {
	fmt.Fprintf(&s.body, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill-opacity="%.3f"/>
`, x, y, r, alpha)
}

func (s *SVGSurface) Text(x, y float64, text string, alpha float64) {
	fmt.Fprintf(&s.body, `<text x="%.1f" y="%.1f" fill-opacity="%.3f">%s</text>
`, x, y, alpha, html.EscapeString(text))
}

// String returns the recorded frame as a complete SVG document.
func (s *SVGSurface) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g stroke="%s" fill="%s" stroke-width="1" font-family="sans-serif" font-size="10" text-anchor="middle" dominant-baseline="middle">
`, s.w, s.h, s.w, s.h, s.Background, s.Stroke, s.Stroke)
	sb.WriteString(s.body.String())
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// BrailleSVG draws the lit dots of a braille canvas as circles, dot units
// apart, in the theme's node color over its background.
func BrailleSVG(c *viz.Canvas, dot float64, t viz.Theme) string {
	if c == nil {
		return ""
	}
	w := float64(c.Width*2) * dot
	h := float64(c.Height*4) * dot

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="%s">
`, w, h, w, h, t.Background, t.Node)
	c.Dots(func(x, y int, level float64) {
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill-opacity="%.2f"/>
`, (float64(x)+0.5)*dot, (float64(y)+0.5)*dot, dot*0.4, level)
	})
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
