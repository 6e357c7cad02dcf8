package batch

import (
	"context"
	"fmt"
	"io"

	"github.com/san-kum/synapse/internal/config"
	"github.com/san-kum/synapse/internal/runner"
)

// Sweep runs a preset across evenly spaced values of one field parameter.
type Sweep struct {
	Preset string
	Param  string
	Min    float64
	Max    float64
	Steps  int
	Frames int
	Width  float64
	Height float64
	Seed   int64
}

type SweepResult struct {
	Value   float64
	Metrics map[string]float64
}

// RunSweep runs every sweep point with the same seed so only the swept
// parameter differs between points.
func RunSweep(ctx context.Context, sweep *Sweep, out io.Writer) ([]SweepResult, error) {
	if out == nil {
		out = io.Discard
	}
	if sweep.Steps < 2 {
		return nil, fmt.Errorf("sweep needs at least 2 steps, got %d", sweep.Steps)
	}
	preset := sweep.Preset
	if preset == "" {
		preset = "classic"
	}
	fc := config.GetPreset(preset)
	if fc == nil {
		return nil, fmt.Errorf("unknown preset: %s", preset)
	}
	job := withDefaults(Job{Preset: preset, Width: sweep.Width, Height: sweep.Height, Frames: sweep.Frames})
	seed := sweep.Seed
	if seed == 0 {
		seed = 1
	}

	results := make([]SweepResult, 0, sweep.Steps)
	paramStep := (sweep.Max - sweep.Min) / float64(sweep.Steps-1)

	for i := 0; i < sweep.Steps; i++ {
		val := sweep.Min + float64(i)*paramStep
		params := fc.Params()
		if err := config.SetParam(&params, sweep.Param, val); err != nil {
			return nil, err
		}

		r := runner.New()
		for _, m := range runner.DefaultMetrics() {
			r.AddMetric(m)
		}
		res, err := r.Run(ctx, runner.Config{
			Width:  job.Width,
			Height: job.Height,
			Frames: job.Frames,
			Seed:   seed,
			Params: params,
		}, nil)
		if err != nil {
			return nil, err
		}

		results = append(results, SweepResult{Value: val, Metrics: res.Metrics})
		fmt.Fprintf(out, "Sweep %d/%d: %s=%.4f\n", i+1, sweep.Steps, sweep.Param, val)
	}

	return results, nil
}
