// Package fonts suggests a heading/body font pairing for a generated theme.
package fonts

import (
	"github.com/jfenske/themata/internal/colour"
)

// Pairing is a heading/body font combination with its micro-typographic
// recommendations.
type Pairing struct {
	Heading       string `json:"heading"`
	Body          string `json:"body"`
	LineHeight    string `json:"line_height"`    // tight, normal, relaxed
	LetterSpacing string `json:"letter_spacing"` // tight, normal, wide
}

// pairings is a fixed table of well-known Google-font combinations, from
// the most expressive to the most restrained.
var pairings = []Pairing{
	{Heading: "Bebas Neue", Body: "Montserrat", LineHeight: "tight", LetterSpacing: "wide"},
	{Heading: "Montserrat", Body: "Lato", LineHeight: "normal", LetterSpacing: "normal"},
	{Heading: "Playfair Display", Body: "Source Sans Pro", LineHeight: "relaxed", LetterSpacing: "tight"},
	{Heading: "Inter", Body: "Inter", LineHeight: "normal", LetterSpacing: "tight"},
	{Heading: "Merriweather", Body: "Open Sans", LineHeight: "relaxed", LetterSpacing: "normal"},
}

// Suggest picks a pairing from the resolved harmony rule and the primary
// colour's character. The mapping is fixed so the same theme inputs always
// choose the same pairing.
func Suggest(rule colour.HarmonyRule, primary colour.RGB) Pairing {
	_, s, l := colour.ToHSL(primary)

	switch {
	case rule == colour.HarmonyTriadic || (s > 0.7 && l > 0.35 && l < 0.65):
		// Loud palettes take the display pairing.
		return pairings[0]
	case rule == colour.HarmonyComplementary || s > 0.4:
		return pairings[1]
	case rule == colour.HarmonyMonochrome && l > 0.6:
		// Light monochrome palettes read as editorial.
		return pairings[2]
	case s < 0.15:
		return pairings[3]
	default:
		return pairings[4]
	}
}
