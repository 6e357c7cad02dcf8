package metrics

import "github.com/san-kum/synapse/internal/field"

type PeakParticles struct {
	name string
	peak int
}

func NewPeakParticles() *PeakParticles {
	return &PeakParticles{name: "peak_particles"}
}

func (p *PeakParticles) Name() string { return p.name }

func (p *PeakParticles) Observe(s field.State, f field.Frame) {
	if n := len(f.Particles); n > p.peak {
		p.peak = n
	}
}

func (p *PeakParticles) Value() float64 { return float64(p.peak) }

func (p *PeakParticles) Reset() { p.peak = 0 }

type MeanParticles struct {
	name    string
	total   int
	samples int
}

func NewMeanParticles() *MeanParticles {
	return &MeanParticles{name: "mean_particles"}
}

func (m *MeanParticles) Name() string { return m.name }

func (m *MeanParticles) Observe(s field.State, f field.Frame) {
	m.total += len(f.Particles)
	m.samples++
}

func (m *MeanParticles) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return float64(m.total) / float64(m.samples)
}

func (m *MeanParticles) Reset() {
	m.total = 0
	m.samples = 0
}

// Emissions counts particles emitted over the run.
type Emissions struct {
	name    string
	emitted int
}

func NewEmissions() *Emissions {
	return &Emissions{name: "emissions"}
}

func (e *Emissions) Name() string { return e.name }

func (e *Emissions) Observe(s field.State, f field.Frame) { e.emitted += f.Emitted }

func (e *Emissions) Value() float64 { return float64(e.emitted) }

func (e *Emissions) Reset() { e.emitted = 0 }
