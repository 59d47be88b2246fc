package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/jfenske/themata/internal/colour"
	"github.com/jfenske/themata/internal/scale"
	"github.com/jfenske/themata/internal/theme"
)

const minSwatchWidth = 24

// renderPreview renders the palette and scales as a terminal preview using
// lipgloss swatches sized to the terminal.
func renderPreview(d *theme.Descriptor) string {
	width := terminalWidth()
	swatchWidth := min(max(width/2, minSwatchWidth), 48)

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Palette"))
	b.WriteString("\n")
	for _, role := range colour.Roles() {
		rgb := d.Palette[role]
		label := fmt.Sprintf(" %-17s %s ", role, rgb.Hex())

		// Pick the text anchor with the better contrast for the label.
		fg := d.Palette[colour.RoleTextDark]
		if colour.ContrastRatio(rgb, d.Palette[colour.RoleTextLight]) > colour.ContrastRatio(rgb, fg) {
			fg = d.Palette[colour.RoleTextLight]
		}

		swatch := lipgloss.NewStyle().
			Background(lipgloss.Color(rgb.Hex())).
			Foreground(lipgloss.Color(fg.Hex())).
			Width(swatchWidth).
			Render(label)
		b.WriteString(swatch)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Typography"))
	b.WriteString(fmt.Sprintf("  %s / %s\n", d.Metadata.FontPairing.Heading, d.Metadata.FontPairing.Body))
	for _, step := range scale.TypeOrder() {
		b.WriteString(fmt.Sprintf("  %-8s %4dpx\n", step, d.Typography[step]))
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Spacing"))
	b.WriteString("\n")
	for _, step := range scale.SpacingOrder() {
		b.WriteString(fmt.Sprintf("  %-8s %4dpx\n", step, d.Spacing[step]))
	}

	return b.String()
}

// terminalWidth returns the current terminal width, defaulting to 80 when
// stdout is not a terminal.
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}
