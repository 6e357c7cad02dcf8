package metrics

import "github.com/san-kum/synapse/internal/field"

type MeanLinks struct {
	name    string
	total   int
	samples int
}

func NewMeanLinks() *MeanLinks {
	return &MeanLinks{name: "mean_links"}
}

func (m *MeanLinks) Name() string { return m.name }

func (m *MeanLinks) Observe(s field.State, f field.Frame) {
	m.total += len(f.Links)
	m.samples++
}

func (m *MeanLinks) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return float64(m.total) / float64(m.samples)
}

func (m *MeanLinks) Reset() {
	m.total = 0
	m.samples = 0
}

// Containment is the fraction of observed frames in which every node sat
// inside the surface bounds. Anything below 1 means reflection failed.
type Containment struct {
	name       string
	violations int
	samples    int
}

func NewContainment() *Containment {
	return &Containment{name: "containment"}
}

func (c *Containment) Name() string { return c.name }

func (c *Containment) Observe(s field.State, f field.Frame) {
	c.samples++
	for _, n := range s.Nodes {
		if n.X < 0 || n.X > s.Width || n.Y < 0 || n.Y > s.Height {
			c.violations++
			break
		}
	}
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Containment) Reset() {
	c.violations = 0
	c.samples = 0
}
