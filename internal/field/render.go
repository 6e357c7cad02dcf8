package field

import "fmt"

// Render clears the surface and draws f in link, node, particle order.
func Render(sf Surface, f Frame, p Params) {
	sf.Clear()
	for _, l := range f.Links {
		sf.Line(l.X0, l.Y0, l.X1, l.Y1, l.Alpha)
	}
	for _, n := range f.Nodes {
		sf.Circle(n.X, n.Y, n.Radius, p.NodeAlpha)
		if p.Labels {
			sf.Text(n.X, n.Y, FormatValue(n.Value), 1)
		}
	}
	for _, pt := range f.Particles {
		sf.Text(pt.X, pt.Y, FormatValue(pt.Value), pt.Alpha*p.NodeAlpha)
	}
}

// FormatValue formats a node or particle value for display.
func FormatValue(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// Stats summarizes a frame for sidebars and recordings.
type Stats struct {
	Frame     int
	Nodes     int
	Particles int
	Links     int
	MeanAlpha float64
}

func FrameStats(f Frame) Stats {
	st := Stats{
		Frame:     f.Index,
		Nodes:     len(f.Nodes),
		Particles: len(f.Particles),
		Links:     len(f.Links),
	}
	if len(f.Particles) > 0 {
		sum := 0.0
		for _, pt := range f.Particles {
			sum += pt.Alpha
		}
		st.MeanAlpha = sum / float64(len(f.Particles))
	}
	return st
}

type multiSurface []Surface

// MultiSurface fans every draw call out to each surface. Size reports the
// first surface.
func MultiSurface(ss ...Surface) Surface { return multiSurface(ss) }

func (m multiSurface) Size() (float64, float64) {
	if len(m) == 0 {
		return 0, 0
	}
	return m[0].Size()
}

func (m multiSurface) Resize(w, h float64) {
	for _, s := range m {
		s.Resize(w, h)
	}
}

func (m multiSurface) Clear() {
	for _, s := range m {
		s.Clear()
	}
}

func (m multiSurface) Line(x0, y0, x1, y1, alpha float64) {
	for _, s := range m {
		s.Line(x0, y0, x1, y1, alpha)
	}
}

func (m multiSurface) Circle(x, y, r, alpha float64) {
	for _, s := range m {
		s.Circle(x, y, r, alpha)
	}
}

func (m multiSurface) Text(x, y float64, text string, alpha float64) {
	for _, s := range m {
		s.Text(x, y, text, alpha)
	}
}
