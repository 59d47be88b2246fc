package colour

import (
	"fmt"
	"math"
)

// HarmonyRule is a colour-theory strategy for deriving a palette from a
// primary colour.
type HarmonyRule string

const (
	// HarmonyAuto selects a rule from the hue spread of the top clusters.
	HarmonyAuto HarmonyRule = "auto"
	// HarmonyAnalogous keeps secondary and accent within 30 degrees of primary.
	HarmonyAnalogous HarmonyRule = "analogous"
	// HarmonyComplementary places the accent opposite the primary hue.
	HarmonyComplementary HarmonyRule = "complementary"
	// HarmonyTriadic spaces primary, secondary and accent 120 degrees apart.
	HarmonyTriadic HarmonyRule = "triadic"
	// HarmonyMonochrome derives all roles from the primary hue alone.
	HarmonyMonochrome HarmonyRule = "monochrome"
)

// ValidHarmonyRules returns all recognised harmony rules.
func ValidHarmonyRules() []HarmonyRule {
	return []HarmonyRule{
		HarmonyAuto,
		HarmonyAnalogous,
		HarmonyComplementary,
		HarmonyTriadic,
		HarmonyMonochrome,
	}
}

// IsValidHarmonyRule checks if the given harmony rule is recognised.
func IsValidHarmonyRule(rule HarmonyRule) bool {
	for _, valid := range ValidHarmonyRules() {
		if rule == valid {
			return true
		}
	}
	return false
}

// ColourRole is the semantic role of a colour in a theme.
type ColourRole string

const (
	RolePrimary         ColourRole = "primary"
	RoleSecondary       ColourRole = "secondary"
	RoleAccent          ColourRole = "accent"
	RoleTextDark        ColourRole = "text_dark"
	RoleTextLight       ColourRole = "text_light"
	RoleBackgroundLight ColourRole = "background_light"
	RoleBackgroundDark  ColourRole = "background_dark"
	RoleSurface         ColourRole = "surface"
)

// Roles returns every theme role in display order. The set is fixed and
// exhaustive: a harmonised palette always carries exactly one colour per role.
func Roles() []ColourRole {
	return []ColourRole{
		RolePrimary,
		RoleSecondary,
		RoleAccent,
		RoleTextDark,
		RoleTextLight,
		RoleBackgroundLight,
		RoleBackgroundDark,
		RoleSurface,
	}
}

// RoleMap maps every theme role to one colour.
type RoleMap map[ColourRole]RGB

// Complete reports whether the map carries a colour for every role.
func (m RoleMap) Complete() bool {
	for _, role := range Roles() {
		if _, ok := m[role]; !ok {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the role map.
func (m RoleMap) Clone() RoleMap {
	out := make(RoleMap, len(m))
	for role, rgb := range m {
		out[role] = rgb
	}
	return out
}

// DefaultMinRoleDistance is the default minimum perceptual (redmean)
// distance enforced between primary, secondary and accent.
const DefaultMinRoleDistance = 60.0

// distinctnessAttempts bounds the candidate search per adjusted role. At
// 0.05 lightness per step the candidates span the full range from any
// starting point.
const distinctnessAttempts = 20

// Harmoniser derives a complete role map from extracted clusters or a seed
// colour using colour-theory rules.
type Harmoniser struct {
	minDistance float64
}

// NewHarmoniser creates a Harmoniser. A non-positive minDistance falls back
// to DefaultMinRoleDistance.
func NewHarmoniser(minDistance float64) *Harmoniser {
	if minDistance <= 0 {
		minDistance = DefaultMinRoleDistance
	}
	return &Harmoniser{minDistance: minDistance}
}

// Harmonise derives a role map from a ranked palette. The heaviest cluster
// becomes primary. Returns the role map and the rule that was applied
// (resolved from the clusters when rule is HarmonyAuto).
func (h *Harmoniser) Harmonise(palette *Palette, rule HarmonyRule) (RoleMap, HarmonyRule, error) {
	if !IsValidHarmonyRule(rule) {
		return nil, "", fmt.Errorf("%w: %q (valid rules: %v)", ErrUnknownHarmonyRule, rule, ValidHarmonyRules())
	}
	if palette == nil || palette.Len() == 0 {
		return nil, "", fmt.Errorf("%w: no clusters to harmonise", ErrEmptyImageInput)
	}

	if rule == HarmonyAuto {
		rule = resolveAutoRule(palette.Clusters)
	}

	roles := h.derive(palette.Clusters[0].RGB, rule)
	return roles, rule, nil
}

// HarmoniseSeed derives a role map from a single seed colour when no image
// is supplied. HarmonyAuto resolves from the seed's saturation alone: a grey
// seed goes monochrome, anything else analogous.
func (h *Harmoniser) HarmoniseSeed(seed RGB, rule HarmonyRule) (RoleMap, HarmonyRule, error) {
	if !IsValidHarmonyRule(rule) {
		return nil, "", fmt.Errorf("%w: %q (valid rules: %v)", ErrUnknownHarmonyRule, rule, ValidHarmonyRules())
	}

	if rule == HarmonyAuto {
		_, s, _ := ToHSL(seed)
		if s < 0.15 {
			rule = HarmonyMonochrome
		} else {
			rule = HarmonyAnalogous
		}
	}

	roles := h.derive(seed, rule)
	return roles, rule, nil
}

// resolveAutoRule picks a harmony rule from the hue spread of the top
// saturated clusters. Tightly grouped hues read as monochrome, a
// near-opposite pair as complementary, a moderate spread as analogous, and
// anything wider as triadic.
func resolveAutoRule(clusters []Cluster) HarmonyRule {
	hues := make([]float64, 0, 3)
	for _, c := range clusters {
		_, s, _ := ToHSL(c.RGB)
		if s < 0.15 {
			continue
		}
		h, _, _ := ToHSL(c.RGB)
		hues = append(hues, h)
		if len(hues) == 3 {
			break
		}
	}

	if len(hues) <= 1 {
		return HarmonyMonochrome
	}

	spread := 0.0
	opposite := false
	for i := 0; i < len(hues); i++ {
		for j := i + 1; j < len(hues); j++ {
			d := HueDistance(hues[i], hues[j])
			if d > spread {
				spread = d
			}
			if d >= 150 {
				opposite = true
			}
		}
	}

	switch {
	case spread < 15:
		return HarmonyMonochrome
	case opposite:
		return HarmonyComplementary
	case spread <= 60:
		return HarmonyAnalogous
	default:
		return HarmonyTriadic
	}
}

// derive builds the full role map from a primary colour and a concrete rule.
func (h *Harmoniser) derive(primary RGB, rule HarmonyRule) RoleMap {
	hp, sp, lp := ToHSL(primary)

	var secondary, accent RGB
	switch rule {
	case HarmonyMonochrome:
		secondary = HSLToRGB(hp, sp*0.9, shiftLightness(lp, 0.18))
		accent = HSLToRGB(hp, clamp01(sp*1.15), shiftLightness(lp, 0.36))
	case HarmonyAnalogous:
		secondary = HSLToRGB(normaliseHue(hp+30), sp, lp)
		accent = HSLToRGB(normaliseHue(hp-30), sp, lp)
	case HarmonyComplementary:
		secondary = HSLToRGB(normaliseHue(hp+30), sp, lp)
		accent = HSLToRGB(normaliseHue(hp+180), sp, lp)
	case HarmonyTriadic:
		secondary = HSLToRGB(normaliseHue(hp+120), sp, lp)
		accent = HSLToRGB(normaliseHue(hp+240), sp, lp)
	}

	roles := RoleMap{
		RolePrimary:   primary,
		RoleSecondary: secondary,
		RoleAccent:    accent,

		// Text anchors: near-black and near-white, nudged towards the
		// palette hue at low saturation for cohesion.
		RoleTextDark:  HSLToRGB(hp, 0.10, 0.12),
		RoleTextLight: HSLToRGB(hp, 0.06, 0.97),

		// Surfaces: very low saturation variants of the primary hue.
		RoleBackgroundLight: HSLToRGB(hp, 0.08, 0.96),
		RoleBackgroundDark:  HSLToRGB(hp, 0.14, 0.11),
		RoleSurface:         HSLToRGB(hp, 0.06, 0.90),
	}

	h.ensureDistinct(roles)
	return roles
}

// shiftLightness moves a lightness value towards the farther extreme by
// delta, so light primaries darken and dark primaries lighten.
func shiftLightness(l, delta float64) float64 {
	if l > 0.5 {
		return clamp01(l - delta)
	}
	return clamp01(l + delta)
}

// ensureDistinct enforces the minimum perceptual distance between primary,
// secondary and accent. Secondary is placed against primary first, then
// accent against both, so every pair of the three ends up separated. Only
// lightness moves; the hue family never changes.
func (h *Harmoniser) ensureDistinct(roles RoleMap) {
	roles[RoleSecondary] = h.separate(roles[RoleSecondary], roles[RolePrimary])
	roles[RoleAccent] = h.separate(roles[RoleAccent], roles[RolePrimary], roles[RoleSecondary])
}

// separate moves a colour to the nearest lightness at which it clears the
// minimum distance from every anchor. Candidates step outward from the
// colour's own lightness in 0.05 increments on both sides, covering the
// whole range, so a black or fully desaturated colour escapes through the
// interior instead of pinning at an extremum. If no candidate reaches the
// minimum, the one with the greatest clearance wins.
func (h *Harmoniser) separate(c RGB, anchors ...RGB) RGB {
	best := c
	bestClearance := clearance(c, anchors)
	if bestClearance >= h.minDistance {
		return c
	}

	hh, s, l := ToHSL(c)
	for attempt := 1; attempt <= distinctnessAttempts; attempt++ {
		delta := float64(attempt) * 0.05
		for _, cl := range []float64{l + delta, l - delta} {
			if cl < 0 || cl > 1 {
				continue
			}
			moved := HSLToRGB(hh, s, cl)
			mc := clearance(moved, anchors)
			if mc >= h.minDistance {
				return moved
			}
			if mc > bestClearance {
				best = moved
				bestClearance = mc
			}
		}
	}
	return best
}

// clearance is the perceptual distance to the nearest anchor.
func clearance(c RGB, anchors []RGB) float64 {
	nearest := math.MaxFloat64
	for _, a := range anchors {
		if d := PerceptualDistance(c, a); d < nearest {
			nearest = d
		}
	}
	return nearest
}
