// Package theme composes extracted colours, harmonised palettes and modular
// scales into a single immutable theme descriptor. It is the engine's only
// public entry point; everything downstream consumes the descriptor.
package theme

import (
	"fmt"
	"image"

	"github.com/jfenske/themata/internal/colour"
	"github.com/jfenske/themata/internal/fonts"
	"github.com/jfenske/themata/internal/scale"
)

// Config holds every knob for a single theme generation call. All fields
// have working defaults from DefaultConfig; there is no hidden process-wide
// state.
type Config struct {
	// ClusterCount is the number of dominant colours extracted from an image.
	ClusterCount int

	// HarmonyRule selects the colour-theory rule, or auto.
	HarmonyRule colour.HarmonyRule

	// MinRoleDistance is the minimum perceptual distance enforced between
	// primary, secondary and accent. Zero uses the package default.
	MinRoleDistance float64

	// ContrastLevel is the WCAG target for the default contrast pairs.
	ContrastLevel colour.ContrastLevel

	// TypeBase and TypeRatio drive the typographic scale.
	TypeBase  float64
	TypeRatio float64

	// SpacingBase and SpacingRatio drive the spacing scale.
	SpacingBase  float64
	SpacingRatio float64

	// DownsampleStride overrides the pixel sampling stride. Zero computes
	// one from the image size.
	DownsampleStride int
}

// DefaultConfig returns the default generation configuration.
func DefaultConfig() Config {
	return Config{
		ClusterCount:     6,
		HarmonyRule:      colour.HarmonyAuto,
		MinRoleDistance:  colour.DefaultMinRoleDistance,
		ContrastLevel:    colour.LevelAA,
		TypeBase:         16,
		TypeRatio:        1.2,
		SpacingBase:      16,
		SpacingRatio:     1.3,
		DownsampleStride: 0,
	}
}

// Validate validates the configuration.
func (c Config) Validate() error {
	ec := colour.ExtractorConfig{ClusterCount: c.ClusterCount, Stride: c.DownsampleStride}
	if err := ec.Validate(); err != nil {
		return err
	}
	if !colour.IsValidHarmonyRule(c.HarmonyRule) {
		return fmt.Errorf("%w: %q", colour.ErrUnknownHarmonyRule, c.HarmonyRule)
	}
	if c.ContrastLevel != colour.LevelAA && c.ContrastLevel != colour.LevelAAA {
		return fmt.Errorf("contrast level must be AA or AAA, got %q", c.ContrastLevel)
	}
	if err := (scale.Config{Base: c.TypeBase, Ratio: c.TypeRatio}).Validate(); err != nil {
		return fmt.Errorf("type scale: %w", err)
	}
	if err := (scale.Config{Base: c.SpacingBase, Ratio: c.SpacingRatio}).Validate(); err != nil {
		return fmt.Errorf("spacing scale: %w", err)
	}
	return nil
}

// Metadata describes how a theme was derived and any accessibility
// shortfalls that remain.
type Metadata struct {
	// Source is "image" or "seed".
	Source string `json:"source"`

	// HarmonyRule is the rule actually applied (auto resolved).
	HarmonyRule colour.HarmonyRule `json:"harmony_rule"`

	// RequestedRule is the rule the caller asked for.
	RequestedRule colour.HarmonyRule `json:"requested_rule"`

	// Clusters are the extracted dominant colours, heaviest first. Empty
	// for seed-derived themes.
	Clusters []colour.Cluster `json:"clusters,omitempty"`

	// FontPairing is the suggested heading/body pairing.
	FontPairing fonts.Pairing `json:"font_pairing"`

	// Corrections lists contrast repairs applied by the validator.
	Corrections []colour.Correction `json:"corrections,omitempty"`

	// Unresolved lists contrast pairs that could not be repaired. These are
	// warnings for the caller, never errors.
	Unresolved []colour.UnresolvedContrast `json:"unresolved,omitempty"`
}

// Descriptor is the complete output of one generation call. It is built
// once and never mutated afterwards; the caller owns it exclusively.
type Descriptor struct {
	Palette    map[colour.ColourRole]colour.RGB `json:"palette"`
	Typography map[scale.Step]int               `json:"typography"`
	Spacing    map[scale.Step]int               `json:"spacing"`

	LineHeights    map[string]float64 `json:"line_heights"`
	LetterSpacings map[string]string  `json:"letter_spacings"`
	Shadows        map[string]string  `json:"shadows"`
	Borders        map[string]string  `json:"borders"`
	Transitions    map[string]string  `json:"transitions"`

	Metadata Metadata `json:"metadata"`
}

// Generate derives a theme from a decoded image. The scale pipeline has no
// data dependency on the palette pipeline and runs concurrently with it.
func Generate(img image.Image, cfg Config) (*Descriptor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	scaleCh := runScales(cfg)

	extractor := colour.NewKMeansExtractor()
	palette, err := extractor.Extract(img, colour.ExtractorConfig{
		ClusterCount: cfg.ClusterCount,
		Stride:       cfg.DownsampleStride,
	})
	if err != nil {
		return nil, err
	}

	roles, rule, err := colour.NewHarmoniser(cfg.MinRoleDistance).Harmonise(palette, cfg.HarmonyRule)
	if err != nil {
		return nil, err
	}

	return compose(cfg, roles, rule, "image", palette.Clusters, scaleCh)
}

// GenerateFromSeed derives a theme from a single seed colour.
func GenerateFromSeed(seed colour.RGB, cfg Config) (*Descriptor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	scaleCh := runScales(cfg)

	roles, rule, err := colour.NewHarmoniser(cfg.MinRoleDistance).HarmoniseSeed(seed, cfg.HarmonyRule)
	if err != nil {
		return nil, err
	}

	return compose(cfg, roles, rule, "seed", nil, scaleCh)
}

// scaleResult carries both generated scales off the scale goroutine.
type scaleResult struct {
	typography map[scale.Step]int
	spacing    map[scale.Step]int
	err        error
}

// runScales generates the typographic and spacing scales on their own
// goroutine. The channel is buffered so an early palette failure never
// leaks the goroutine.
func runScales(cfg Config) <-chan scaleResult {
	ch := make(chan scaleResult, 1)
	go func() {
		var res scaleResult
		res.typography, res.err = scale.Typographic(scale.Config{Base: cfg.TypeBase, Ratio: cfg.TypeRatio})
		if res.err == nil {
			res.spacing, res.err = scale.Spacing(scale.Config{Base: cfg.SpacingBase, Ratio: cfg.SpacingRatio})
		}
		ch <- res
	}()
	return ch
}

// compose validates contrast, joins the scale pipeline and assembles the
// descriptor with the fixed token defaults.
func compose(cfg Config, roles colour.RoleMap, rule colour.HarmonyRule, source string, clusters []colour.Cluster, scaleCh <-chan scaleResult) (*Descriptor, error) {
	validator := colour.NewValidator(colour.DefaultContrastPairs(cfg.ContrastLevel))
	repaired, corrections, unresolved := validator.Validate(roles)

	scales := <-scaleCh
	if scales.err != nil {
		return nil, scales.err
	}

	pairing := fonts.Suggest(rule, repaired[colour.RolePrimary])

	palette := make(map[colour.ColourRole]colour.RGB, len(repaired))
	for role, rgb := range repaired {
		palette[role] = rgb
	}

	return &Descriptor{
		Palette:        palette,
		Typography:     scales.typography,
		Spacing:        scales.spacing,
		LineHeights:    defaultLineHeights(),
		LetterSpacings: defaultLetterSpacings(),
		Shadows:        defaultShadows(),
		Borders:        defaultBorders(),
		Transitions:    defaultTransitions(),
		Metadata: Metadata{
			Source:        source,
			HarmonyRule:   rule,
			RequestedRule: cfg.HarmonyRule,
			Clusters:      clusters,
			FontPairing:   pairing,
			Corrections:   corrections,
			Unresolved:    unresolved,
		},
	}, nil
}

// Fixed accessory token defaults. Fresh maps per call keep descriptors
// independent of each other.

func defaultLineHeights() map[string]float64 {
	return map[string]float64{
		"tight":   1.25,
		"normal":  1.5,
		"relaxed": 1.65,
		"loose":   2.0,
	}
}

func defaultLetterSpacings() map[string]string {
	return map[string]string{
		"tight":  "-0.02em",
		"normal": "0",
		"wide":   "0.05em",
	}
}

func defaultShadows() map[string]string {
	return map[string]string{
		"sm": "0 1px 2px 0 rgb(0 0 0 / 0.05)",
		"md": "0 4px 6px -1px rgb(0 0 0 / 0.1), 0 2px 4px -2px rgb(0 0 0 / 0.1)",
		"lg": "0 10px 15px -3px rgb(0 0 0 / 0.1), 0 4px 6px -4px rgb(0 0 0 / 0.1)",
		"xl": "0 20px 25px -5px rgb(0 0 0 / 0.1), 0 8px 10px -6px rgb(0 0 0 / 0.1)",
	}
}

func defaultBorders() map[string]string {
	return map[string]string{
		"width":       "1px",
		"width-thick": "2px",
		"radius-sm":   "4px",
		"radius-md":   "8px",
		"radius-lg":   "16px",
		"radius-full": "9999px",
	}
}

func defaultTransitions() map[string]string {
	return map[string]string{
		"fast": "all 150ms ease-in-out",
		"base": "all 300ms ease-in-out",
		"slow": "all 500ms ease-in-out",
	}
}
