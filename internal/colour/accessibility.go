package colour

import (
	"math"
)

// WCAG contrast thresholds for normal text.
const (
	ContrastAA  = 4.5
	ContrastAAA = 7.0
)

// ContrastLevel is a WCAG compliance target.
type ContrastLevel string

const (
	LevelAA  ContrastLevel = "AA"
	LevelAAA ContrastLevel = "AAA"
)

// Ratio returns the required contrast ratio for normal text at this level.
// Unknown levels fall back to AA.
func (l ContrastLevel) Ratio() float64 {
	if l == LevelAAA {
		return ContrastAAA
	}
	return ContrastAA
}

// ContrastPair is a foreground/background role pair with its required ratio.
type ContrastPair struct {
	Foreground ColourRole `json:"foreground"`
	Background ColourRole `json:"background"`
	Required   float64    `json:"required"`
}

// DefaultContrastPairs returns the pairs validated by default: every
// practically-used text-on-surface combination in the role set.
func DefaultContrastPairs(level ContrastLevel) []ContrastPair {
	ratio := level.Ratio()
	return []ContrastPair{
		{Foreground: RoleTextDark, Background: RoleBackgroundLight, Required: ratio},
		{Foreground: RoleTextDark, Background: RoleSurface, Required: ratio},
		{Foreground: RoleTextLight, Background: RoleBackgroundDark, Required: ratio},
		{Foreground: RoleTextLight, Background: RolePrimary, Required: ratio},
	}
}

// Correction records a repair the validator applied to a role.
type Correction struct {
	Role       ColourRole `json:"role"`
	Against    ColourRole `json:"against"`
	Before     string     `json:"before"`
	After      string     `json:"after"`
	Ratio      float64    `json:"ratio"`
	RatioAfter float64    `json:"ratio_after"`
}

// UnresolvedContrast records a pair that could not be repaired before the
// adjusted channel reached its extremum. These are reported, not fatal.
type UnresolvedContrast struct {
	Foreground ColourRole `json:"foreground"`
	Background ColourRole `json:"background"`
	Required   float64    `json:"required"`
	Achieved   float64    `json:"achieved"`
}

// repairSteps bounds the lightness adjustment loop per pair.
const repairSteps = 20

// repairStepSize is the lightness adjustment per step.
const repairStepSize = 0.05

// Validator checks and repairs contrast between role pairs.
type Validator struct {
	pairs []ContrastPair
}

// NewValidator creates a Validator for the given pairs. Nil pairs use the
// AA defaults.
func NewValidator(pairs []ContrastPair) *Validator {
	if pairs == nil {
		pairs = DefaultContrastPairs(LevelAA)
	}
	return &Validator{pairs: pairs}
}

// Validate checks every pair against its required ratio and repairs failures
// by moving the lighter role's lightness monotonically away from the darker
// role. Validation re-runs after every repair cycle so a repair cannot
// silently break a previously-passing pair. Returns the repaired role map,
// the corrections applied, and any pairs left unresolved.
func (v *Validator) Validate(roles RoleMap) (RoleMap, []Correction, []UnresolvedContrast) {
	repaired := roles.Clone()
	var corrections []Correction

	// Each cycle repairs at most the currently-failing pairs; adjustments
	// are monotonic, so pairs+1 cycles suffice for convergence.
	exhausted := make(map[ContrastPair]bool)
	for cycle := 0; cycle <= len(v.pairs); cycle++ {
		fixedAny := false
		for _, pair := range v.pairs {
			if exhausted[pair] {
				continue
			}
			ratio := ContrastRatio(repaired[pair.Foreground], repaired[pair.Background])
			if ratio >= pair.Required {
				continue
			}

			correction, ok := repairPair(repaired, pair)
			if ok {
				corrections = append(corrections, correction)
				fixedAny = true
			} else {
				exhausted[pair] = true
			}
		}
		if !fixedAny {
			break
		}
	}

	var unresolved []UnresolvedContrast
	for _, pair := range v.pairs {
		ratio := ContrastRatio(repaired[pair.Foreground], repaired[pair.Background])
		if ratio < pair.Required {
			unresolved = append(unresolved, UnresolvedContrast{
				Foreground: pair.Foreground,
				Background: pair.Background,
				Required:   pair.Required,
				Achieved:   ratio,
			})
		}
	}

	return repaired, corrections, unresolved
}

// repairPair lightens the lighter of the two roles in fixed steps until the
// pair meets its required ratio or lightness reaches its extremum. Reports
// whether the pair now passes.
func repairPair(roles RoleMap, pair ContrastPair) (Correction, bool) {
	fg := roles[pair.Foreground]
	bg := roles[pair.Background]

	// Adjust the lighter role away from the darker one.
	adjustRole := pair.Foreground
	against := pair.Background
	if Luminance(bg) > Luminance(fg) {
		adjustRole = pair.Background
		against = pair.Foreground
	}

	original := roles[adjustRole]
	other := roles[against]
	startRatio := ContrastRatio(original, other)

	h, s, l := ToHSL(original)
	current := original
	ratio := startRatio

	for step := 0; step < repairSteps && ratio < pair.Required; step++ {
		l = math.Min(1.0, l+repairStepSize)
		current = HSLToRGB(h, s, l)
		ratio = ContrastRatio(current, other)
		if l >= 1.0 {
			break
		}
	}

	if ratio < pair.Required {
		// Extremum reached without meeting the threshold. Keep the best
		// attempt; the caller reports the pair as unresolved.
		roles[adjustRole] = current
		return Correction{}, false
	}

	roles[adjustRole] = current
	return Correction{
		Role:       adjustRole,
		Against:    against,
		Before:     original.Hex(),
		After:      current.Hex(),
		Ratio:      startRatio,
		RatioAfter: ratio,
	}, true
}
