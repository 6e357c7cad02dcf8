package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"

	"github.com/san-kum/synapse/internal/config"
	"github.com/san-kum/synapse/internal/content"
	"github.com/san-kum/synapse/internal/gui"
	"github.com/san-kum/synapse/internal/page"
	"github.com/san-kum/synapse/internal/viz"
)

var (
	configFile  string
	dataDir     string
	contentFile string
	preset      string
	theme       string
	seed        int64
	fps         int
	width       int
	height      int
	frames      int
	debug       bool
	outDir      string
	menu        bool
)

// main registers the commands and runs the portfolio page when no
// subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:   "synapse",
		Short: "particle field portfolio",
		RunE:  runPage,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	pf.StringVar(&contentFile, "content", "", "profile file (yaml)")
	pf.StringVar(&preset, "preset", "", "field preset")
	pf.StringVar(&theme, "theme", config.DefaultTheme, fmt.Sprintf("color theme %v", viz.ThemeNames()))
	pf.Int64Var(&seed, "seed", 0, "random seed (0 picks one)")
	pf.IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	pf.IntVar(&width, "width", config.DefaultWidth, "field width")
	pf.IntVar(&height, "height", config.DefaultHeight, "field height")
	pf.IntVar(&frames, "frames", config.DefaultFrames, "frames for headless runs")
	pf.BoolVar(&debug, "debug", false, "log to debug.log")
	rootCmd.Flags().StringVar(&outDir, "out", ".", "directory for gif and svg captures")

	fieldCmd := &cobra.Command{
		Use:   "field",
		Short: "full-screen field with live stats",
		RunE:  runField,
	}
	fieldCmd.Flags().StringVar(&outDir, "out", ".", "directory for gif and svg captures")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run the field in a window",
		RunE:  runGUI,
	}
	guiCmd.Flags().BoolVar(&menu, "menu", false, "open the preset menu first")

	rootCmd.AddCommand(fieldCmd, guiCmd)
	rootCmd.AddCommand(dataCommands()...)
	rootCmd.AddCommand(serveCommands()...)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig layers defaults, the config file, a preset, the environment
// and finally any flags set on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if preset != "" {
		if err := cfg.ApplyPreset(preset); err != nil {
			return nil, fmt.Errorf("%w (available: %v)", err, config.ListPresets())
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("content") {
		cfg.Content = contentFile
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("frames") {
		cfg.Frames = frames
	}
	if err := cfg.Field.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadProfile(cfg *config.Config) (*content.Profile, error) {
	if cfg.Content == "" {
		return content.Default(), nil
	}
	return content.Load(cfg.Content)
}

func presetName() string {
	if preset == "" {
		return "custom"
	}
	return preset
}

func pageOptions(cfg *config.Config) page.Options {
	return page.Options{
		Params: cfg.Field.Params(),
		Seed:   cfg.Seed,
		FPS:    cfg.FPS,
		Theme:  cfg.Theme,
		Preset: presetName(),
		OutDir: outDir,
	}
}

// runProgram runs a bubbletea model on the alternate screen. With --debug,
// log output goes to debug.log since stdout belongs to the renderer.
func runProgram(m tea.Model) error {
	if debug {
		f, err := tea.LogToFile(filepath.Join(".", "debug.log"), "synapse")
		if err != nil {
			return err
		}
		defer f.Close()
	}
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func runPage(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	profile, err := loadProfile(cfg)
	if err != nil {
		return err
	}
	return runProgram(page.New(profile, pageOptions(cfg)))
}

func runField(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return runProgram(page.NewFieldModel(pageOptions(cfg)))
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	profile, err := loadProfile(cfg)
	if err != nil {
		return err
	}
	gui.Run(gui.Options{
		Width:       cfg.Width,
		Height:      cfg.Height,
		FPS:         cfg.FPS,
		Seed:        cfg.Seed,
		Preset:      presetName(),
		Params:      cfg.Field.Params(),
		Profile:     profile,
		Interactive: menu,
	})
	return nil
}
