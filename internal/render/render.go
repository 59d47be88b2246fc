// Package render turns a theme descriptor into consumable artefacts (CSS
// custom properties, a Tailwind config, JSON). Renderers write to an
// io.Writer; file handling belongs to the caller.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"text/template"

	"github.com/jfenske/themata/internal/colour"
	"github.com/jfenske/themata/internal/scale"
	"github.com/jfenske/themata/internal/theme"
)

// Format identifies an output renderer.
type Format string

const (
	FormatCSS      Format = "css"
	FormatTailwind Format = "tailwind"
	FormatJSON     Format = "json"
)

// ValidFormats returns all supported output formats.
func ValidFormats() []Format {
	return []Format{FormatCSS, FormatTailwind, FormatJSON}
}

// Renderer writes one artefact for a theme descriptor.
type Renderer interface {
	// Render writes the artefact for the descriptor.
	Render(w io.Writer, d *theme.Descriptor) error

	// Filename returns the conventional file name for this artefact.
	Filename() string
}

// NewRenderer creates a renderer for the given format.
func NewRenderer(f Format) (Renderer, error) {
	switch f {
	case FormatCSS:
		return &cssRenderer{}, nil
	case FormatTailwind:
		return &tailwindRenderer{}, nil
	case FormatJSON:
		return &jsonRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown output format: %s (valid formats: %v)", f, ValidFormats())
	}
}

// token is a single name/value pair in template-friendly form.
type token struct {
	Name  string
	Value string
}

// view is the ordered, stringified form of a descriptor handed to the
// templates. Maps are flattened into slices so output ordering is stable.
type view struct {
	Palette     []token
	Typography  []token
	Spacing     []token
	LineHeights []token
	Spacings    []token
	Shadows     []token
	Borders     []token
	Transitions []token
	HeadingFont string
	BodyFont    string
	HarmonyRule string
}

func newView(d *theme.Descriptor) view {
	v := view{
		HeadingFont: d.Metadata.FontPairing.Heading,
		BodyFont:    d.Metadata.FontPairing.Body,
		HarmonyRule: string(d.Metadata.HarmonyRule),
	}

	for _, role := range colour.Roles() {
		v.Palette = append(v.Palette, token{Name: string(role), Value: d.Palette[role].Hex()})
	}
	for _, step := range scale.TypeOrder() {
		v.Typography = append(v.Typography, token{Name: string(step), Value: fmt.Sprintf("%dpx", d.Typography[step])})
	}
	for _, step := range scale.SpacingOrder() {
		v.Spacing = append(v.Spacing, token{Name: string(step), Value: fmt.Sprintf("%dpx", d.Spacing[step])})
	}
	for _, name := range []string{"tight", "normal", "relaxed", "loose"} {
		v.LineHeights = append(v.LineHeights, token{Name: name, Value: fmt.Sprintf("%g", d.LineHeights[name])})
	}
	for _, name := range []string{"tight", "normal", "wide"} {
		v.Spacings = append(v.Spacings, token{Name: name, Value: d.LetterSpacings[name]})
	}
	for _, name := range []string{"sm", "md", "lg", "xl"} {
		v.Shadows = append(v.Shadows, token{Name: name, Value: d.Shadows[name]})
	}
	for _, name := range []string{"width", "width-thick", "radius-sm", "radius-md", "radius-lg", "radius-full"} {
		v.Borders = append(v.Borders, token{Name: name, Value: d.Borders[name]})
	}
	for _, name := range []string{"fast", "base", "slow"} {
		v.Transitions = append(v.Transitions, token{Name: name, Value: d.Transitions[name]})
	}

	return v
}

// cssName converts role/step names to CSS custom property fragments.
func cssName(s string) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '_' {
			out[i] = '-'
		} else {
			out[i] = s[i]
		}
	}
	return string(out)
}

var templateFuncs = template.FuncMap{
	"cssName": cssName,
}

// cssRenderer emits the theme as CSS custom properties on :root.
type cssRenderer struct{}

const cssTemplate = `/* Generated by themata. Do not edit by hand. */
:root {
  /* Palette ({{.HarmonyRule}}) */
{{- range .Palette}}
  --color-{{cssName .Name}}: {{.Value}};
{{- end}}

  /* Typography */
  --font-heading: "{{.HeadingFont}}", sans-serif;
  --font-body: "{{.BodyFont}}", sans-serif;
{{- range .Typography}}
  --font-size-{{cssName .Name}}: {{.Value}};
{{- end}}
{{- range .LineHeights}}
  --line-height-{{.Name}}: {{.Value}};
{{- end}}
{{- range .Spacings}}
  --letter-spacing-{{.Name}}: {{.Value}};
{{- end}}

  /* Spacing */
{{- range .Spacing}}
  --spacing-{{.Name}}: {{.Value}};
{{- end}}

  /* Effects */
{{- range .Shadows}}
  --shadow-{{.Name}}: {{.Value}};
{{- end}}
{{- range .Borders}}
  --border-{{.Name}}: {{.Value}};
{{- end}}
{{- range .Transitions}}
  --transition-{{.Name}}: {{.Value}};
{{- end}}
}
`

func (r *cssRenderer) Filename() string { return "theme.css" }

func (r *cssRenderer) Render(w io.Writer, d *theme.Descriptor) error {
	tmpl, err := template.New("css").Funcs(templateFuncs).Parse(cssTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse CSS template: %w", err)
	}
	if err := tmpl.Execute(w, newView(d)); err != nil {
		return fmt.Errorf("failed to render CSS: %w", err)
	}
	return nil
}

// tailwindRenderer emits a Tailwind theme extension.
type tailwindRenderer struct{}

const tailwindTemplate = `// Generated by themata. Do not edit by hand.
module.exports = {
  theme: {
    extend: {
      colors: {
{{- range .Palette}}
        '{{cssName .Name}}': '{{.Value}}',
{{- end}}
      },
      fontFamily: {
        heading: ['{{.HeadingFont}}', 'sans-serif'],
        body: ['{{.BodyFont}}', 'sans-serif'],
      },
      fontSize: {
{{- range .Typography}}
        '{{.Name}}': '{{.Value}}',
{{- end}}
      },
      spacing: {
{{- range .Spacing}}
        '{{.Name}}': '{{.Value}}',
{{- end}}
      },
      boxShadow: {
{{- range .Shadows}}
        '{{.Name}}': '{{.Value}}',
{{- end}}
      },
    },
  },
};
`

func (r *tailwindRenderer) Filename() string { return "tailwind.theme.js" }

func (r *tailwindRenderer) Render(w io.Writer, d *theme.Descriptor) error {
	tmpl, err := template.New("tailwind").Funcs(templateFuncs).Parse(tailwindTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse Tailwind template: %w", err)
	}
	if err := tmpl.Execute(w, newView(d)); err != nil {
		return fmt.Errorf("failed to render Tailwind config: %w", err)
	}
	return nil
}

// jsonRenderer emits the descriptor itself as indented JSON.
type jsonRenderer struct{}

func (r *jsonRenderer) Filename() string { return "theme.json" }

func (r *jsonRenderer) Render(w io.Writer, d *theme.Descriptor) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("failed to render JSON: %w", err)
	}
	return nil
}
