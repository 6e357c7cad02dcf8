package runner

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/synapse/internal/field"
	"github.com/san-kum/synapse/internal/metrics"
)

func testConfig() Config {
	return Config{
		Width:  800,
		Height: 600,
		Frames: 100,
		Seed:   42,
		Params: field.DefaultParams(),
	}
}

func TestRunnerRun(t *testing.T) {
	r := New()
	for _, m := range DefaultMetrics() {
		r.AddMetric(m)
	}

	result, err := r.Run(context.Background(), testConfig(), nil)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.FramesRun != 100 {
		t.Errorf("expected 100 frames, got %d", result.FramesRun)
	}
	if len(result.Samples) != 100 {
		t.Errorf("expected 100 samples, got %d", len(result.Samples))
	}
	if result.Samples[0].Nodes != field.DefaultNodeCount {
		t.Errorf("expected %d nodes, got %d", field.DefaultNodeCount, result.Samples[0].Nodes)
	}
	for _, name := range []string{"peak_particles", "mean_particles", "mean_links", "emissions"} {
		if _, ok := result.Metrics[name]; !ok {
			t.Errorf("missing metric %s", name)
		}
	}
	if result.Metrics["peak_particles"] < result.Metrics["mean_particles"] {
		t.Error("peak should not be below mean")
	}
}

func TestRunnerDeterministic(t *testing.T) {
	a, err := New().Run(context.Background(), testConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	b, err := New().Run(context.Background(), testConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}

	for i := range a.Samples {
		if a.Samples[i] != b.Samples[i] {
			t.Fatalf("frame %d differs: %+v vs %+v", i, a.Samples[i], b.Samples[i])
		}
	}
	if a.Final.Nodes[0] != b.Final.Nodes[0] {
		t.Error("final state differs for the same seed")
	}
}

func TestRunnerKeepsNodesInside(t *testing.T) {
	r := New()
	c := metrics.NewContainment()
	r.AddMetric(c)

	cfg := testConfig()
	cfg.Frames = 500
	cfg.Width, cfg.Height = 120, 80
	if _, err := r.Run(context.Background(), cfg, nil); err != nil {
		t.Fatal(err)
	}
	if c.Value() != 1 {
		t.Errorf("expected full containment, got %f", c.Value())
	}
}

func TestRunnerCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := New().Run(ctx, testConfig(), nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if result == nil || result.FramesRun != 0 {
		t.Error("expected empty partial result")
	}
}

func TestRunnerInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		edit func(*Config)
	}{
		{"zero frames", func(c *Config) { c.Frames = 0 }},
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative height", func(c *Config) { c.Height = -1 }},
	}

	for _, tt := range tests {
		cfg := testConfig()
		tt.edit(&cfg)
		_, err := New().Run(context.Background(), cfg, nil)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s: expected ErrInvalidConfig, got %v", tt.name, err)
		}
	}
}

func TestEnsemble(t *testing.T) {
	cfg := testConfig()
	cfg.Frames = 50

	results, err := NewEnsemble(4, 1, nil).Run(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	for i, r := range results {
		if r.Seed != int64(1+i) {
			t.Errorf("run %d: expected seed %d, got %d", i, 1+i, r.Seed)
		}
	}

	mean := MeanMetrics(results)
	if _, ok := mean["mean_links"]; !ok {
		t.Error("expected averaged mean_links")
	}
}

func BenchmarkRun(b *testing.B) {
	cfg := testConfig()
	for i := 0; i < b.N; i++ {
		New().Run(context.Background(), cfg, nil)
	}
}
