package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/synapse/internal/field"
)

const (
	DefaultWidth   = 800
	DefaultHeight  = 600
	DefaultFPS     = 60
	DefaultFrames  = 600
	DefaultTheme   = "synapse"
	DefaultDataDir = "data"
	DefaultPort    = "8080"
	DefaultDB      = "synapse.db"
)

var ErrInvalidField = errors.New("invalid field config")

type Config struct {
	Width   int          `yaml:"width"`
	Height  int          `yaml:"height"`
	FPS     int          `yaml:"fps"`
	Frames  int          `yaml:"frames"`
	Seed    int64        `yaml:"seed"`
	Theme   string       `yaml:"theme"`
	Content string       `yaml:"content,omitempty"`
	DataDir string       `yaml:"data_dir"`
	Field   FieldConfig  `yaml:"field"`
	Server  ServerConfig `yaml:"server"`
}

type FieldConfig struct {
	NodeCount             int     `yaml:"node_count"`
	LinkDistance          float64 `yaml:"link_distance"`
	EmitChance            float64 `yaml:"emit_chance"`
	FadeStep              float64 `yaml:"fade_step"`
	Gravity               float64 `yaml:"gravity"`
	RadiusMin             float64 `yaml:"radius_min"`
	RadiusMax             float64 `yaml:"radius_max"`
	NodeAlpha             float64 `yaml:"node_alpha"`
	Labels                bool    `yaml:"labels"`
	KeepParticlesOnResize bool    `yaml:"keep_particles_on_resize"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
	DB   string `yaml:"db"`
}

func DefaultField() FieldConfig {
	p := field.DefaultParams()
	return FieldConfig{
		NodeCount:    p.NodeCount,
		LinkDistance: p.LinkDistance,
		EmitChance:   p.EmitChance,
		FadeStep:     p.FadeStep,
		Gravity:      p.Gravity,
		RadiusMin:    p.RadiusMin,
		RadiusMax:    p.RadiusMax,
		NodeAlpha:    p.NodeAlpha,
	}
}

func DefaultConfig() *Config {
	return &Config{
		Width:   DefaultWidth,
		Height:  DefaultHeight,
		FPS:     DefaultFPS,
		Frames:  DefaultFrames,
		Theme:   DefaultTheme,
		DataDir: DefaultDataDir,
		Field:   DefaultField(),
		Server: ServerConfig{
			Port: DefaultPort,
			DB:   DefaultDB,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Field.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects field sections that cannot seed or advance a field.
func (f FieldConfig) Validate() error {
	switch {
	case f.NodeCount < 0:
		return fmt.Errorf("%w: node_count must not be negative, got %d", ErrInvalidField, f.NodeCount)
	case f.LinkDistance < 0:
		return fmt.Errorf("%w: link_distance must not be negative, got %g", ErrInvalidField, f.LinkDistance)
	case f.EmitChance < 0 || f.EmitChance > 1:
		return fmt.Errorf("%w: emit_chance must be in [0, 1], got %g", ErrInvalidField, f.EmitChance)
	case f.FadeStep <= 0:
		return fmt.Errorf("%w: fade_step must be positive, got %g", ErrInvalidField, f.FadeStep)
	case f.RadiusMin < 0 || f.RadiusMin > f.RadiusMax:
		return fmt.Errorf("%w: radius range [%g, %g] is empty", ErrInvalidField, f.RadiusMin, f.RadiusMax)
	}
	return nil
}

// Params converts the field section into simulation parameters.
func (f FieldConfig) Params() field.Params {
	return field.Params{
		NodeCount:             f.NodeCount,
		LinkDistance:          f.LinkDistance,
		EmitChance:            f.EmitChance,
		FadeStep:              f.FadeStep,
		Gravity:               f.Gravity,
		RadiusMin:             f.RadiusMin,
		RadiusMax:             f.RadiusMax,
		NodeAlpha:             f.NodeAlpha,
		Labels:                f.Labels,
		KeepParticlesOnResize: f.KeepParticlesOnResize,
	}
}

// ApplyPreset replaces the field section with a named preset.
func (c *Config) ApplyPreset(name string) error {
	p := GetPreset(name)
	if p == nil {
		return fmt.Errorf("unknown preset: %s", name)
	}
	c.Field = *p
	return nil
}

// ApplyEnv overrides values from SYNAPSE_* variables, PORT and SYNAPSE_DB.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("SYNAPSE_SEED"); ok && v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("SYNAPSE_SEED: %w", err)
		}
		c.Seed = seed
	}
	if v, ok := lookup("SYNAPSE_FPS"); ok && v != "" {
		fps, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SYNAPSE_FPS: %w", err)
		}
		if fps <= 0 {
			return fmt.Errorf("SYNAPSE_FPS: must be positive, got %d", fps)
		}
		c.FPS = fps
	}
	if v, ok := lookup("SYNAPSE_THEME"); ok && v != "" {
		c.Theme = v
	}
	if v, ok := lookup("SYNAPSE_DATA"); ok && v != "" {
		c.DataDir = v
	}
	if v, ok := lookup("PORT"); ok && v != "" {
		c.Server.Port = v
	}
	if v, ok := lookup("SYNAPSE_DB"); ok && v != "" {
		c.Server.DB = v
	}
	return nil
}
