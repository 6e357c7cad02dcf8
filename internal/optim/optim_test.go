package optim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/synapse/internal/field"
	"github.com/san-kum/synapse/internal/runner"
)

func TestLinspace(t *testing.T) {
	got := Linspace(0, 1, 5)
	want := []float64{0, 0.25, 0.5, 0.75, 1}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Fatalf("Linspace = %v, want %v", got, want)
		}
	}
	if v := Linspace(3, 9, 1); len(v) != 1 || v[0] != 3 {
		t.Errorf("single step should return min, got %v", v)
	}
}

func TestGridSearchFindsMinimum(t *testing.T) {
	g := NewGridSearch(
		[]string{"gravity", "fade_step"},
		[][]float64{{0.01, 0.02, 0.03}, {0.1, 0.2}},
	)
	calls := 0
	obj := func(_ context.Context, p field.Params) (float64, error) {
		calls++
		return math.Abs(p.Gravity-0.02) + math.Abs(p.FadeStep-0.2), nil
	}

	best, score, err := g.Search(context.Background(), field.DefaultParams(), obj)
	if err != nil {
		t.Fatal(err)
	}
	if calls != 6 {
		t.Errorf("expected 6 evaluations, got %d", calls)
	}
	if best["gravity"] != 0.02 || best["fade_step"] != 0.2 {
		t.Errorf("unexpected best %v", best)
	}
	if score > 1e-12 {
		t.Errorf("expected zero score, got %v", score)
	}
}

func TestGridSearchRejectsBadInput(t *testing.T) {
	obj := func(context.Context, field.Params) (float64, error) { return 0, nil }
	ctx := context.Background()

	if _, _, err := NewGridSearch([]string{"mass"}, [][]float64{{1}}).Search(ctx, field.DefaultParams(), obj); err == nil {
		t.Error("expected error for unknown parameter")
	}
	if _, _, err := NewGridSearch([]string{"gravity"}, nil).Search(ctx, field.DefaultParams(), obj); err == nil {
		t.Error("expected error for missing ranges")
	}
	if _, _, err := NewGridSearch([]string{"gravity"}, [][]float64{{}}).Search(ctx, field.DefaultParams(), obj); err == nil {
		t.Error("expected error for an empty range")
	}
}

func TestGridSearchStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	g := NewGridSearch([]string{"gravity"}, [][]float64{{1, 2, 3}})
	calls := 0
	_, _, err := g.Search(context.Background(), field.DefaultParams(), func(context.Context, field.Params) (float64, error) {
		calls++
		return 0, boom
	})
	if !errors.Is(err, boom) || calls != 1 {
		t.Errorf("expected to stop at the first error, got %v after %d calls", err, calls)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := g.Search(ctx, field.DefaultParams(), func(context.Context, field.Params) (float64, error) { return 0, nil }); !errors.Is(err, context.Canceled) {
		t.Errorf("expected cancellation, got %v", err)
	}
}

func TestMetricTarget(t *testing.T) {
	cfg := runner.Config{Width: 300, Height: 200, Frames: 30, Seed: 5}
	quiet := field.DefaultParams()
	quiet.EmitChance = 0

	score, err := MetricTarget(cfg, "peak_particles", 4)(context.Background(), quiet)
	if err != nil {
		t.Fatal(err)
	}
	if score != 4 {
		t.Errorf("no emission should miss the target by 4, got %v", score)
	}

	if _, err := MetricTarget(cfg, "nope", 0)(context.Background(), quiet); err == nil {
		t.Error("expected error for unknown metric")
	}
}
