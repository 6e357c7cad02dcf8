package batch

import (
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/synapse/internal/config"
	"github.com/san-kum/synapse/internal/export"
	"github.com/san-kum/synapse/internal/field"
	"github.com/san-kum/synapse/internal/metrics"
	"github.com/san-kum/synapse/internal/runner"
	"github.com/san-kum/synapse/internal/storage"
)

const (
	defaultFrames = 300
	// gifEvery is the frame stride between captured GIF frames.
	gifEvery = 2
	gifDelay = 3
	maxGIF   = 200
)

// Scenario is a scripted list of headless field runs.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Jobs        []Job  `yaml:"jobs"`
}

// Job is one run in a scenario. Output paths are optional; Runs above one
// adds an ensemble over consecutive seeds.
type Job struct {
	Preset string  `yaml:"preset"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Frames int     `yaml:"frames"`
	Seed   int64   `yaml:"seed"`
	Runs   int     `yaml:"runs"`
	SVG    string  `yaml:"svg"`
	GIF    string  `yaml:"gif"`
	PNG    string  `yaml:"png"`
	Save   bool    `yaml:"save"`
	// Field replaces the preset's parameters when set.
	Field *config.FieldConfig `yaml:"field,omitempty"`
}

type JobResult struct {
	Index  int
	Preset string
	Result *runner.Result
	RunID  string
	// Ensemble holds metrics averaged over Runs seeds when Runs > 1.
	Ensemble map[string]float64
}

type Deps struct {
	Store *storage.Store
	// Out receives progress lines; nil discards them.
	Out io.Writer
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Jobs) == 0 {
		return nil, fmt.Errorf("scenario %q has no jobs", scenario.Name)
	}
	return &scenario, nil
}

// Run executes the jobs in order and stops at the first failure.
func Run(ctx context.Context, scenario *Scenario, deps Deps) ([]JobResult, error) {
	out := deps.Out
	if out == nil {
		out = io.Discard
	}
	results := make([]JobResult, 0, len(scenario.Jobs))

	for i, job := range scenario.Jobs {
		job = withDefaults(job)
		fmt.Fprintf(out, "Running job %d/%d: %s %.0fx%.0f, %d frames\n",
			i+1, len(scenario.Jobs), job.Preset, job.Width, job.Height, job.Frames)

		jr, err := runJob(ctx, i+1, job, deps)
		if err != nil {
			return results, fmt.Errorf("job %d: %w", i+1, err)
		}
		results = append(results, jr)
	}

	return results, nil
}

func withDefaults(job Job) Job {
	if job.Preset == "" {
		job.Preset = "classic"
	}
	if job.Width == 0 {
		job.Width = config.DefaultWidth
	}
	if job.Height == 0 {
		job.Height = config.DefaultHeight
	}
	if job.Frames == 0 {
		job.Frames = defaultFrames
	}
	return job
}

func runJob(ctx context.Context, index int, job Job, deps Deps) (JobResult, error) {
	jr := JobResult{Index: index, Preset: job.Preset}

	fc := job.Field
	if fc == nil {
		fc = config.GetPreset(job.Preset)
	}
	if fc == nil {
		return jr, fmt.Errorf("unknown preset: %s", job.Preset)
	}
	if err := fc.Validate(); err != nil {
		return jr, err
	}
	cfg := runner.Config{
		Width:  job.Width,
		Height: job.Height,
		Frames: job.Frames,
		Seed:   job.Seed,
		Params: fc.Params(),
	}

	r := runner.New()
	for _, m := range runner.DefaultMetrics() {
		r.AddMetric(m)
	}
	r.AddMetric(metrics.NewContainment())

	var surfaces []field.Surface
	var svg *export.SVGSurface
	var img *export.ImageSurface
	var frames []*image.Paletted

	if job.SVG != "" {
		svg = export.NewSVGSurface(job.Width, job.Height)
		surfaces = append(surfaces, svg)
	}
	if job.PNG != "" || job.GIF != "" {
		img = export.NewImageSurface(int(job.Width), int(job.Height))
		surfaces = append(surfaces, img)
	}
	if job.GIF != "" {
		r.AddObserver(field.ObserverFunc(func(s field.State, f field.Frame) {
			if f.Index%gifEvery == 0 && len(frames) < maxGIF {
				frames = append(frames, export.Paletted(img.Img))
			}
		}))
	}

	var sf field.Surface
	if len(surfaces) > 0 {
		sf = field.MultiSurface(surfaces...)
	}

	result, err := r.Run(ctx, cfg, sf)
	if err != nil {
		return jr, err
	}
	jr.Result = result

	if svg != nil {
		if err := writeFile(job.SVG, func(w io.Writer) error {
			_, err := io.WriteString(w, svg.String())
			return err
		}); err != nil {
			return jr, err
		}
	}
	if job.PNG != "" {
		if err := writeFile(job.PNG, func(w io.Writer) error { return export.EncodePNG(w, img.Img) }); err != nil {
			return jr, err
		}
	}
	if job.GIF != "" {
		if err := writeFile(job.GIF, func(w io.Writer) error { return export.EncodeGIF(w, frames, gifDelay) }); err != nil {
			return jr, err
		}
	}

	if job.Save {
		if deps.Store == nil {
			return jr, fmt.Errorf("save requested without a store")
		}
		meta := storage.RunMetadata{
			Preset:    job.Preset,
			Width:     job.Width,
			Height:    job.Height,
			NodeCount: cfg.Params.NodeCount,
		}
		runID, err := deps.Store.Save(meta, result)
		if err != nil {
			return jr, fmt.Errorf("save: %w", err)
		}
		jr.RunID = runID
	}

	if job.Runs > 1 {
		results, err := runner.NewEnsemble(job.Runs, result.Seed, nil).Run(ctx, cfg)
		if err != nil {
			return jr, fmt.Errorf("ensemble: %w", err)
		}
		jr.Ensemble = runner.MeanMetrics(results)
	}

	return jr, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
