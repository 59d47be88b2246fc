// Package brand loads optional brand guideline files and applies them to a
// theme configuration. Guidelines are YAML (JSON is accepted too, being a
// YAML subset) and validated before use, so a typo in a guideline file
// fails loudly instead of silently producing an off-brand theme.
package brand

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jfenske/themata/internal/colour"
	"github.com/jfenske/themata/internal/theme"
)

// Guidelines are caller-supplied brand constraints. Every field is optional;
// zero values leave the corresponding configuration untouched.
type Guidelines struct {
	// PrimaryColor pins the theme's primary colour, replacing image
	// extraction entirely when set.
	PrimaryColor string `yaml:"primary_color" json:"primary_color" validate:"omitempty,hexcolor"`

	HarmonyRule   string `yaml:"harmony_rule" json:"harmony_rule" validate:"omitempty,oneof=auto analogous complementary triadic monochrome"`
	ContrastLevel string `yaml:"contrast_level" json:"contrast_level" validate:"omitempty,oneof=AA AAA"`

	ClusterCount    int     `yaml:"cluster_count" json:"cluster_count" validate:"omitempty,min=1,max=64"`
	MinRoleDistance float64 `yaml:"min_role_distance" json:"min_role_distance" validate:"omitempty,gt=0"`

	TypeBase     float64 `yaml:"type_base" json:"type_base" validate:"omitempty,gt=0"`
	TypeRatio    float64 `yaml:"type_ratio" json:"type_ratio" validate:"omitempty,gt=1"`
	SpacingBase  float64 `yaml:"spacing_base" json:"spacing_base" validate:"omitempty,gt=0"`
	SpacingRatio float64 `yaml:"spacing_ratio" json:"spacing_ratio" validate:"omitempty,gt=1"`
}

var validate = validator.New()

// Parse unmarshals and validates guideline data.
func Parse(data []byte) (*Guidelines, error) {
	var g Guidelines
	if err := yaml.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("failed to parse brand guidelines: %w", err)
	}
	if err := validate.Struct(&g); err != nil {
		return nil, fmt.Errorf("invalid brand guidelines: %w", err)
	}
	return &g, nil
}

// Load reads and parses a guideline file.
func Load(path string) (*Guidelines, error) {
	data, err := os.ReadFile(path) // #nosec G304 - user-specified guidelines path
	if err != nil {
		return nil, fmt.Errorf("failed to read brand guidelines: %w", err)
	}
	return Parse(data)
}

// Apply overrides cfg with any guideline values that are set, and returns
// the pinned primary colour if the guidelines specify one.
func (g *Guidelines) Apply(cfg *theme.Config) (*colour.RGB, error) {
	if g.HarmonyRule != "" {
		cfg.HarmonyRule = colour.HarmonyRule(g.HarmonyRule)
	}
	if g.ContrastLevel != "" {
		cfg.ContrastLevel = colour.ContrastLevel(g.ContrastLevel)
	}
	if g.ClusterCount != 0 {
		cfg.ClusterCount = g.ClusterCount
	}
	if g.MinRoleDistance != 0 {
		cfg.MinRoleDistance = g.MinRoleDistance
	}
	if g.TypeBase != 0 {
		cfg.TypeBase = g.TypeBase
	}
	if g.TypeRatio != 0 {
		cfg.TypeRatio = g.TypeRatio
	}
	if g.SpacingBase != 0 {
		cfg.SpacingBase = g.SpacingBase
	}
	if g.SpacingRatio != 0 {
		cfg.SpacingRatio = g.SpacingRatio
	}

	if g.PrimaryColor == "" {
		return nil, nil
	}
	seed, err := colour.ParseHex(g.PrimaryColor)
	if err != nil {
		return nil, err
	}
	return &seed, nil
}
