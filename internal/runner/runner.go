package runner

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/san-kum/synapse/internal/field"
	"github.com/san-kum/synapse/internal/frame"
	"github.com/san-kum/synapse/internal/metrics"
)

// Runner drives a field headlessly for a fixed number of frames.
type Runner struct {
	metrics   []Metric
	observers []field.Observer
}

func New() *Runner {
	return &Runner{
		metrics:   make([]Metric, 0),
		observers: make([]field.Observer, 0),
	}
}

// DefaultMetrics returns fresh instances of the standard run metrics.
func DefaultMetrics() []Metric {
	return []Metric{
		metrics.NewPeakParticles(),
		metrics.NewMeanParticles(),
		metrics.NewMeanLinks(),
		metrics.NewEmissions(),
	}
}

func (r *Runner) AddMetric(m Metric)           { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o field.Observer) { r.observers = append(r.observers, o) }

// Run attaches a field to sf and ticks it cfg.Frames times. A nil surface
// runs without drawing. On cancellation the partial result is returned with
// the context error.
func (r *Runner) Run(ctx context.Context, cfg Config, sf field.Surface) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	if sf == nil {
		sf = &discard{}
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	result := &Result{
		Seed:    seed,
		Samples: make([]Sample, 0, cfg.Frames),
		Metrics: make(map[string]float64),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	driver := frame.NewDriver()
	vp := frame.NewViewport(cfg.Width, cfg.Height)
	f := field.New(cfg.Params, rand.New(rand.NewSource(seed)), driver)
	f.AddObserver(field.ObserverFunc(func(s field.State, fr field.Frame) {
		for _, m := range r.metrics {
			m.Observe(s, fr)
		}
		result.Samples = append(result.Samples, SampleOf(fr))
		result.FramesRun++
	}))
	for _, o := range r.observers {
		f.AddObserver(o)
	}

	if err := f.Attach(sf, vp); err != nil {
		return nil, err
	}
	f.Start()
	defer f.Stop()

	var runErr error
	for i := 0; i < cfg.Frames; i++ {
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
		default:
		}
		if runErr != nil {
			break
		}
		driver.Tick()
	}

	result.Final = f.State()
	result.Last = f.LastFrame()
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, runErr
}

func validateConfig(cfg Config) error {
	if cfg.Frames <= 0 {
		return fmt.Errorf("%w: frames must be positive, got %d", ErrInvalidConfig, cfg.Frames)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("%w: size must be positive, got %.0fx%.0f", ErrInvalidConfig, cfg.Width, cfg.Height)
	}
	if cfg.Params.NodeCount < 0 {
		return fmt.Errorf("%w: node count must not be negative", ErrInvalidConfig)
	}
	return nil
}

type discard struct{ w, h float64 }

func (d *discard) Size() (float64, float64)               { return d.w, d.h }
func (d *discard) Resize(w, h float64)                    { d.w, d.h = w, h }
func (d *discard) Clear()                                 {}
func (d *discard) Line(_, _, _, _, _ float64)             {}
func (d *discard) Circle(_, _, _, _ float64)              {}
func (d *discard) Text(_, _ float64, _ string, _ float64) {}
