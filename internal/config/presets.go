package config

import (
	"fmt"
	"sort"

	"github.com/san-kum/synapse/internal/field"
)

var Presets = map[string]FieldConfig{
	"classic": DefaultField(),
	"labeled": func() FieldConfig {
		f := DefaultField()
		f.Labels = true
		return f
	}(),
	"calm": {
		NodeCount: 30, LinkDistance: 180, EmitChance: 0.004, FadeStep: 0.006,
		Gravity: 0.01, RadiusMin: 3, RadiusMax: 5, NodeAlpha: 0.5,
	},
	"dense": {
		NodeCount: 120, LinkDistance: 90, EmitChance: 0.01, FadeStep: 0.015,
		Gravity: 0.02, RadiusMin: 2, RadiusMax: 4, NodeAlpha: 0.7,
	},
	"storm": {
		NodeCount: 60, LinkDistance: 150, EmitChance: 0.08, FadeStep: 0.02,
		Gravity: 0.05, RadiusMin: 3, RadiusMax: 6, NodeAlpha: 0.9,
		KeepParticlesOnResize: true,
	},
}

func GetPreset(name string) *FieldConfig {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return &p
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TunableParams lists the field parameters that sweeps and searches vary.
var TunableParams = []string{"emit_chance", "fade_step", "gravity", "link_distance", "node_count"}

// SetParam assigns one tunable parameter by name. Node counts are rounded.
func SetParam(p *field.Params, name string, v float64) error {
	switch name {
	case "emit_chance":
		p.EmitChance = v
	case "fade_step":
		p.FadeStep = v
	case "gravity":
		p.Gravity = v
	case "link_distance":
		p.LinkDistance = v
	case "node_count":
		p.NodeCount = int(v + 0.5)
	default:
		return fmt.Errorf("unknown parameter: %s (tunable: %v)", name, TunableParams)
	}
	return nil
}
