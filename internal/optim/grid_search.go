package optim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/synapse/internal/config"
	"github.com/san-kum/synapse/internal/field"
	"github.com/san-kum/synapse/internal/runner"
)

// Objective scores a parameter set; lower is better.
type Objective func(ctx context.Context, p field.Params) (float64, error)

// GridSearch tries every combination of the given parameter values.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Search returns the best combination found and its score. Parameters not
// named keep their value from base.
func (g *GridSearch) Search(ctx context.Context, base field.Params, objective Objective) (map[string]float64, float64, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, 0, fmt.Errorf("%d parameters but %d ranges", len(g.paramNames), len(g.ranges))
	}
	probe := base
	for i, name := range g.paramNames {
		if err := config.SetParam(&probe, name, 0); err != nil {
			return nil, 0, err
		}
		if len(g.ranges[i]) == 0 {
			return nil, 0, fmt.Errorf("no values for %s", name)
		}
	}

	best := math.Inf(1)
	var bestParams map[string]float64

	err := g.searchRecursive(ctx, 0, base, make(map[string]float64), objective, &best, &bestParams)
	return bestParams, best, err
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	base field.Params,
	current map[string]float64,
	objective Objective,
	best *float64,
	bestParams *map[string]float64,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if depth == len(g.paramNames) {
		p := base
		for k, v := range current {
			if err := config.SetParam(&p, k, v); err != nil {
				return err
			}
		}

		val, err := objective(ctx, p)
		if err != nil {
			return err
		}
		if val < *best {
			*best = val
			*bestParams = make(map[string]float64)
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, base, newParams, objective, best, bestParams); err != nil {
			return err
		}
	}
	return nil
}

// Linspace returns steps evenly spaced values from min to max inclusive.
func Linspace(min, max float64, steps int) []float64 {
	if steps <= 1 {
		return []float64{min}
	}
	vals := make([]float64, steps)
	step := (max - min) / float64(steps-1)
	for i := range vals {
		vals[i] = min + float64(i)*step
	}
	return vals
}

// MetricTarget scores a parameter set by how far a run metric lands from
// target. Every evaluation uses the same size, length and seed.
func MetricTarget(cfg runner.Config, metric string, target float64) Objective {
	return func(ctx context.Context, p field.Params) (float64, error) {
		r := runner.New()
		for _, m := range runner.DefaultMetrics() {
			r.AddMetric(m)
		}
		c := cfg
		c.Params = p
		res, err := r.Run(ctx, c, nil)
		if err != nil {
			return 0, err
		}
		v, ok := res.Metrics[metric]
		if !ok {
			return 0, fmt.Errorf("unknown metric: %s", metric)
		}
		return math.Abs(v - target), nil
	}
}
