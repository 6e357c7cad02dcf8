package runner

import (
	"context"
	"sync"
)

// Ensemble runs the same config under consecutive seeds in parallel. Each
// run owns its field, driver and metrics.
type Ensemble struct {
	numRuns    int
	seedStart  int64
	newMetrics func() []Metric
}

func NewEnsemble(numRuns int, seedStart int64, newMetrics func() []Metric) *Ensemble {
	if newMetrics == nil {
		newMetrics = DefaultMetrics
	}
	return &Ensemble{numRuns: numRuns, seedStart: seedStart, newMetrics: newMetrics}
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := cfg
			cfgCopy.Seed = e.seedStart + int64(idx)

			r := New()
			for _, m := range e.newMetrics() {
				r.AddMetric(m)
			}
			results[idx], errs[idx] = r.Run(ctx, cfgCopy, nil)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

// MeanMetrics averages each metric across results.
func MeanMetrics(results []*Result) map[string]float64 {
	mean := make(map[string]float64)
	if len(results) == 0 {
		return mean
	}
	for _, r := range results {
		for name, v := range r.Metrics {
			mean[name] += v
		}
	}
	for name := range mean {
		mean[name] /= float64(len(results))
	}
	return mean
}
