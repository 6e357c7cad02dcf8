package runner

import (
	"errors"

	"github.com/san-kum/synapse/internal/field"
)

var ErrInvalidConfig = errors.New("invalid run config")

// Metric accumulates a scalar over the frames of a run.
type Metric interface {
	Name() string
	Observe(s field.State, f field.Frame)
	Value() float64
	Reset()
}

type Config struct {
	Width  float64
	Height float64
	Frames int
	// Seed drives node placement and emission. Zero picks a time-based seed.
	Seed   int64
	Params field.Params
}

// Sample is the per-frame population record kept in a run result.
type Sample struct {
	Frame     int
	Nodes     int
	Particles int
	Links     int
	MeanAlpha float64
}

func SampleOf(f field.Frame) Sample {
	st := field.FrameStats(f)
	return Sample{
		Frame:     st.Frame,
		Nodes:     st.Nodes,
		Particles: st.Particles,
		Links:     st.Links,
		MeanAlpha: st.MeanAlpha,
	}
}

type Result struct {
	Seed      int64
	FramesRun int
	Samples   []Sample
	Metrics   map[string]float64
	Final     field.State
	Last      field.Frame
}
