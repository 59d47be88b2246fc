// Package scale generates modular typographic and spacing scales.
//
// Each scale is a geometric progression from a base size and ratio: a step's
// continuous value is base * ratio^offset, where the offset is measured from
// the anchor step (body for typography, md for spacing). Values are rounded
// to whole units with a bump rule that keeps every scale strictly monotonic.
package scale

import (
	"errors"
	"fmt"
)

// ErrInvalidScaleParameters is returned for a non-positive base or a ratio
// that is not greater than 1.
var ErrInvalidScaleParameters = errors.New("invalid scale parameters")

// Step is a named size step within a scale.
type Step string

// Typographic steps.
const (
	StepCaption Step = "caption"
	StepSmall   Step = "small"
	StepBody    Step = "body"
	StepH6      Step = "h6"
	StepH5      Step = "h5"
	StepH4      Step = "h4"
	StepH3      Step = "h3"
	StepH2      Step = "h2"
	StepH1      Step = "h1"
	StepDisplay Step = "display"
)

// Spacing steps.
const (
	StepXS  Step = "xs"
	StepSM  Step = "sm"
	StepMD  Step = "md"
	StepLG  Step = "lg"
	StepXL  Step = "xl"
	Step2XL Step = "2xl"
)

// stepDef pairs a step name with its exponent offset from the anchor.
type stepDef struct {
	name   Step
	offset int
}

// typeSteps lists typographic steps in ascending size order, anchored at
// body (offset 0).
var typeSteps = []stepDef{
	{StepCaption, -2},
	{StepSmall, -1},
	{StepBody, 0},
	{StepH6, 1},
	{StepH5, 2},
	{StepH4, 3},
	{StepH3, 4},
	{StepH2, 5},
	{StepH1, 6},
	{StepDisplay, 7},
}

// spaceSteps lists spacing steps in ascending size order, anchored at md.
var spaceSteps = []stepDef{
	{StepXS, -2},
	{StepSM, -1},
	{StepMD, 0},
	{StepLG, 1},
	{StepXL, 2},
	{Step2XL, 3},
}

// TypeOrder returns the typographic steps from smallest to largest.
func TypeOrder() []Step {
	return stepNames(typeSteps)
}

// SpacingOrder returns the spacing steps from smallest to largest.
func SpacingOrder() []Step {
	return stepNames(spaceSteps)
}

func stepNames(defs []stepDef) []Step {
	names := make([]Step, len(defs))
	for i, d := range defs {
		names[i] = d.name
	}
	return names
}

// Config holds the base size and ratio for one scale.
type Config struct {
	Base  float64
	Ratio float64
}

// Validate checks the scale parameters: base must be positive and ratio
// must be greater than 1.
func (c Config) Validate() error {
	if c.Base <= 0 {
		return fmt.Errorf("%w: base must be positive, got %g", ErrInvalidScaleParameters, c.Base)
	}
	if c.Ratio <= 1 {
		return fmt.Errorf("%w: ratio must be greater than 1, got %g", ErrInvalidScaleParameters, c.Ratio)
	}
	return nil
}

// Typographic generates the typographic scale for the given configuration.
func Typographic(cfg Config) (map[Step]int, error) {
	return generate(cfg, typeSteps)
}

// Spacing generates the spacing scale for the given configuration.
func Spacing(cfg Config) (map[Step]int, error) {
	return generate(cfg, spaceSteps)
}

// generate computes base * ratio^offset for each step and rounds to whole
// units. Rounding never produces two adjacent equal steps: walking from the
// smallest step up, any step that would collide is bumped one unit above its
// predecessor, which keeps the scale strictly monotonic.
func generate(cfg Config, defs []stepDef) (map[Step]int, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	out := make(map[Step]int, len(defs))
	prev := 0
	for i, d := range defs {
		v := round(cfg.Base * pow(cfg.Ratio, d.offset))
		if v < 1 {
			v = 1
		}
		if i > 0 && v <= prev {
			v = prev + 1
		}
		out[d.name] = v
		prev = v
	}
	return out, nil
}

// pow raises ratio to an integer exponent, negative exponents included.
func pow(ratio float64, exp int) float64 {
	v := 1.0
	if exp >= 0 {
		for range exp {
			v *= ratio
		}
		return v
	}
	for range -exp {
		v /= ratio
	}
	return v
}

// round rounds half away from zero; inputs here are always positive.
func round(v float64) int {
	return int(v + 0.5)
}
