package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/synapse/internal/analysis"
	"github.com/san-kum/synapse/internal/batch"
	"github.com/san-kum/synapse/internal/config"
	"github.com/san-kum/synapse/internal/optim"
	"github.com/san-kum/synapse/internal/runner"
	"github.com/san-kum/synapse/internal/storage"
)

var (
	svgOut   string
	pngOut   string
	gifOut   string
	save     bool
	runs     int
	csvOut   string
	sweepArg batch.Sweep

	tuneParams []string
	tuneMetric string
	tuneTarget float64
)

func dataCommands() []*cobra.Command {
	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "run the field headless and write snapshots",
		RunE:  renderField,
	}
	renderCmd.Flags().StringVar(&svgOut, "svg", "", "write the last frame as svg")
	renderCmd.Flags().StringVar(&pngOut, "png", "", "write the last frame as png")
	renderCmd.Flags().StringVar(&gifOut, "gif", "", "write an animated gif")
	renderCmd.Flags().BoolVar(&save, "save", false, "store the run in the data directory")
	renderCmd.Flags().IntVar(&runs, "runs", 1, "average metrics over this many seeds")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot particle and link counts of a run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run samples to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&csvOut, "output", "o", "", "output file (default stdout)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and samples to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "population statistics and spectrum of a run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  analyzeRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list field presets",
		RunE:  listPresets,
	}

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run the jobs of a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [param]",
		Short: fmt.Sprintf("sweep one field parameter %v", config.TunableParams),
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().Float64Var(&sweepArg.Min, "min", 0, "first value")
	sweepCmd.Flags().Float64Var(&sweepArg.Max, "max", 0.05, "last value")
	sweepCmd.Flags().IntVar(&sweepArg.Steps, "steps", 5, "number of values")

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid search field parameters toward a metric target",
		RunE:  runTune,
	}
	tuneCmd.Flags().StringArrayVar(&tuneParams, "param", nil, "name=min:max:steps (repeatable)")
	tuneCmd.Flags().StringVar(&tuneMetric, "metric", "mean_particles", "metric to match")
	tuneCmd.Flags().Float64Var(&tuneTarget, "target", 20, "metric target")

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the effective config to a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}

	return []*cobra.Command{renderCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, analyzeCmd, presetsCmd, batchCmd, sweepCmd, tuneCmd, initCmd}
}

// interruptible cancels on Ctrl-C so long headless runs stop between frames.
func interruptible() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func printMetrics(metrics map[string]float64) {
	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.4f\n", name, metrics[name])
	}
}

func renderField(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	fc := cfg.Field
	job := batch.Job{
		Preset: presetName(),
		Width:  float64(cfg.Width),
		Height: float64(cfg.Height),
		Frames: cfg.Frames,
		Seed:   cfg.Seed,
		Runs:   runs,
		SVG:    svgOut,
		PNG:    pngOut,
		GIF:    gifOut,
		Save:   save,
		Field:  &fc,
	}

	ctx, cancel := interruptible()
	defer cancel()

	start := time.Now()
	results, err := batch.Run(ctx, &batch.Scenario{Name: "render", Jobs: []batch.Job{job}}, batch.Deps{
		Store: storage.New(cfg.DataDir),
		Out:   os.Stdout,
	})
	if err != nil {
		return err
	}
	jr := results[0]

	fmt.Printf("completed in %v\n", time.Since(start))
	fmt.Printf("seed: %d\n", jr.Result.Seed)
	if jr.RunID != "" {
		fmt.Printf("run id: %s\n", jr.RunID)
	}
	fmt.Println("\nmetrics:")
	printMetrics(jr.Result.Metrics)
	if jr.Ensemble != nil {
		fmt.Printf("\nensemble (%d runs):\n", runs)
		printMetrics(jr.Ensemble)
	}
	return nil
}

func openStore(cmd *cobra.Command) (*storage.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return storage.New(cfg.DataDir), nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tSIZE\tFRAMES\tNODES\tPEAK")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.0fx%.0f\t%d\t%d\t%.0f\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Width, run.Height,
			run.Frames,
			run.NodeCount,
			run.Metrics["peak_particles"],
		)
	}

	return w.Flush()
}

// loadRun reads the named run, or the most recent one when args is empty.
func loadRun(cmd *cobra.Command, args []string) (*storage.RunMetadata, []runner.Sample, error) {
	st, err := openStore(cmd)
	if err != nil {
		return nil, nil, err
	}

	var meta *storage.RunMetadata
	if len(args) == 1 {
		meta, err = st.Load(args[0])
	} else {
		meta, err = st.Latest()
	}
	if err != nil {
		return nil, nil, err
	}

	samples, err := st.LoadSamples(meta.ID)
	if err != nil {
		return nil, nil, err
	}
	if len(samples) == 0 {
		return nil, nil, fmt.Errorf("run %s has no samples", meta.ID)
	}
	return meta, samples, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(cmd, args)
	if err != nil {
		return err
	}

	particles := make([]float64, len(samples))
	links := make([]float64, len(samples))
	for i, s := range samples {
		particles[i] = float64(s.Particles)
		links[i] = float64(s.Links)
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s\n", meta.Preset)
	fmt.Printf("frames: %d\n\n", len(samples))

	fmt.Println(asciigraph.Plot(particles, asciigraph.Height(10), asciigraph.Width(70), asciigraph.Caption("particles")))
	fmt.Println()
	fmt.Println(asciigraph.Plot(links, asciigraph.Height(6), asciigraph.Width(70), asciigraph.Caption("links")))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(cmd, args)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	data := make([]float64, len(samples))
	for i, s := range samples {
		data[i] = float64(s.Particles)
	}

	fmt.Printf("population analysis: %s\n", meta.ID)
	fmt.Printf("preset: %s\n\n", meta.Preset)

	ps := analysis.PowerSpectrum(data)
	if len(ps) > 4 {
		fmt.Println(asciigraph.Plot(ps[:len(ps)/2],
			asciigraph.Height(12),
			asciigraph.Width(70),
			asciigraph.Caption("power spectrum (particles)"),
		))
		fmt.Println()
	}

	fmt.Printf("mean particles: %.2f\n", analysis.Mean(data))
	fmt.Printf("std dev: %.2f\n", analysis.StdDev(data))

	peak := analysis.Dominant(ps, len(data), cfg.FPS)
	if peak.Bin == 0 {
		fmt.Println("no dominant rhythm")
		return nil
	}
	fmt.Printf("dominant frequency: %.3f hz at %d fps\n", peak.FrequencyHz, cfg.FPS)
	fmt.Printf("period: %.1f frames\n", peak.PeriodFrames)
	fmt.Printf("autocorrelation at period: %.3f\n", analysis.Autocorrelation(data, int(peak.PeriodFrames+0.5)))
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if csvOut != "" {
		f, err := os.Create(csvOut)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	return storage.WriteSamples(out, samples)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, *meta, samples)
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tNODES\tLINK\tEMIT\tFADE\tGRAVITY\tLABELS")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%.0f\t%.3f\t%.3f\t%.3f\t%v\n",
			name, p.NodeCount, p.LinkDistance, p.EmitChance, p.FadeStep, p.Gravity, p.Labels)
	}
	return w.Flush()
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	scenario, err := batch.LoadScenario(args[0])
	if err != nil {
		return err
	}

	ctx, cancel := interruptible()
	defer cancel()

	fmt.Printf("scenario: %s\n", scenario.Name)
	results, err := batch.Run(ctx, scenario, batch.Deps{Store: storage.New(cfg.DataDir), Out: os.Stdout})
	for _, jr := range results {
		line := fmt.Sprintf("job %d (%s): peak %.0f, mean %.1f particles",
			jr.Index, jr.Preset, jr.Result.Metrics["peak_particles"], jr.Result.Metrics["mean_particles"])
		if jr.RunID != "" {
			line += " -> " + jr.RunID
		}
		fmt.Println(line)
	}
	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sweep := sweepArg
	sweep.Param = args[0]
	sweep.Preset = preset
	sweep.Frames = cfg.Frames
	sweep.Width = float64(cfg.Width)
	sweep.Height = float64(cfg.Height)
	sweep.Seed = cfg.Seed

	ctx, cancel := interruptible()
	defer cancel()

	results, err := batch.RunSweep(ctx, &sweep, os.Stderr)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tPEAK\tMEAN\tLINKS\tEMISSIONS\n", sweep.Param)
	means := make([]float64, 0, len(results))
	for _, r := range results {
		fmt.Fprintf(w, "%.4f\t%.0f\t%.2f\t%.2f\t%.0f\n", r.Value,
			r.Metrics["peak_particles"], r.Metrics["mean_particles"], r.Metrics["mean_links"], r.Metrics["emissions"])
		means = append(means, r.Metrics["mean_particles"])
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Println()
	fmt.Println(asciigraph.Plot(means, asciigraph.Height(6), asciigraph.Caption("mean particles")))
	return nil
}

// parseRange reads name=min:max:steps.
func parseRange(arg string) (string, []float64, error) {
	name, rng, ok := strings.Cut(arg, "=")
	if !ok {
		return "", nil, fmt.Errorf("bad --param %q, want name=min:max:steps", arg)
	}
	parts := strings.Split(rng, ":")
	if len(parts) != 3 {
		return "", nil, fmt.Errorf("bad range %q, want min:max:steps", rng)
	}
	lo, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return "", nil, fmt.Errorf("%s min: %w", name, err)
	}
	hi, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return "", nil, fmt.Errorf("%s max: %w", name, err)
	}
	steps, err := strconv.Atoi(parts[2])
	if err != nil {
		return "", nil, fmt.Errorf("%s steps: %w", name, err)
	}
	return name, optim.Linspace(lo, hi, steps), nil
}

func runTune(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if len(tuneParams) == 0 {
		return fmt.Errorf("at least one --param is required")
	}

	names := make([]string, 0, len(tuneParams))
	ranges := make([][]float64, 0, len(tuneParams))
	for _, arg := range tuneParams {
		name, vals, err := parseRange(arg)
		if err != nil {
			return err
		}
		names = append(names, name)
		ranges = append(ranges, vals)
	}

	ctx, cancel := interruptible()
	defer cancel()

	rc := runner.Config{
		Width:  float64(cfg.Width),
		Height: float64(cfg.Height),
		Frames: cfg.Frames,
		Seed:   cfg.Seed,
	}
	if rc.Seed == 0 {
		rc.Seed = 1
	}

	fmt.Printf("searching %v for %s = %.2f\n", names, tuneMetric, tuneTarget)
	start := time.Now()
	best, score, err := optim.NewGridSearch(names, ranges).Search(ctx, cfg.Field.Params(), optim.MetricTarget(rc, tuneMetric, tuneTarget))
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n\nbest:\n", time.Since(start))
	printMetrics(best)
	fmt.Printf("\ndistance from target: %.4f\n", score)
	return nil
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[0])
	return nil
}
