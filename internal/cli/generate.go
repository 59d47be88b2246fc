package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jfenske/themata/internal/brand"
	"github.com/jfenske/themata/internal/colour"
	"github.com/jfenske/themata/internal/image"
	"github.com/jfenske/themata/internal/render"
	"github.com/jfenske/themata/internal/theme"
)

var (
	// Generate command flags
	generateImage        string
	generateSeed         string
	generateBrandFile    string
	generateHarmony      string
	generateClusters     int
	generateContrast     string
	generateMinDistance  float64
	generateStride       int
	generateTypeBase     float64
	generateTypeRatio    float64
	generateSpacingBase  float64
	generateSpacingRatio float64
	generateOutputDir    string
	generateFormats      []string
	generateShowPreview  bool
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a theme from an image or seed colour",
	Long: `Generate a complete visual theme from a source image or a seed colour.

The source image is clustered into dominant colours, which are harmonised
into a role-based palette (primary, secondary, accent, text and surface
roles), contrast-checked against the requested WCAG level, and combined
with modular typographic and spacing scales into a theme descriptor.
Pass a seed colour instead of an image to build a palette from colour
theory alone.

Supported image formats: JPEG, PNG, GIF, WebP (local path or HTTP(S) URL)

Examples:
  # Generate a theme from a wallpaper, writing CSS, Tailwind and JSON
  themata generate --image wallpaper.jpg

  # Generate from a seed colour with a complementary palette
  themata generate --seed "#1a73e8" --harmony complementary

  # Target AAA contrast and preview the palette in the terminal
  themata generate --image photo.png --contrast AAA --preview

  # Custom scales
  themata generate --image photo.png --type-base 18 --type-ratio 1.25

  # Apply brand guidelines on top of extraction
  themata generate --image logo.png --brand brand.yaml

  # Only emit CSS into a specific directory
  themata generate --image wall.webp --formats css --output ./theme`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateImage, "image", "i", "", "source image (file path or HTTP(S) URL)")
	generateCmd.Flags().StringVarP(&generateSeed, "seed", "s", "", "seed colour as hex (e.g. #1a73e8) instead of an image")
	generateCmd.Flags().StringVar(&generateBrandFile, "brand", "", "brand guidelines file (YAML or JSON)")

	generateCmd.Flags().StringVar(&generateHarmony, "harmony", "auto", "harmony rule (auto, analogous, complementary, triadic, monochrome)")
	generateCmd.Flags().IntVarP(&generateClusters, "clusters", "c", 6, "number of dominant colours to extract (1-64)")
	generateCmd.Flags().StringVar(&generateContrast, "contrast", "AA", "WCAG contrast level (AA, AAA)")
	generateCmd.Flags().Float64Var(&generateMinDistance, "min-distance", colour.DefaultMinRoleDistance, "minimum perceptual distance between primary/secondary/accent")
	generateCmd.Flags().IntVar(&generateStride, "stride", 0, "pixel sampling stride (0 = computed from image size)")

	generateCmd.Flags().Float64Var(&generateTypeBase, "type-base", 16, "typographic base size")
	generateCmd.Flags().Float64Var(&generateTypeRatio, "type-ratio", 1.2, "typographic scale ratio")
	generateCmd.Flags().Float64Var(&generateSpacingBase, "spacing-base", 16, "spacing base size")
	generateCmd.Flags().Float64Var(&generateSpacingRatio, "spacing-ratio", 1.3, "spacing scale ratio")

	generateCmd.Flags().StringVarP(&generateOutputDir, "output", "o", ".", "output directory for generated files")
	generateCmd.Flags().StringSliceVarP(&generateFormats, "formats", "f", []string{"css", "tailwind", "json"}, "output formats (css, tailwind, json)")
	generateCmd.Flags().BoolVar(&generateShowPreview, "preview", false, "show palette preview in terminal")
}

// runGenerate executes the generate command.
func runGenerate(cmd *cobra.Command, args []string) error {
	cfg := theme.DefaultConfig()
	cfg.ClusterCount = generateClusters
	cfg.HarmonyRule = colour.HarmonyRule(generateHarmony)
	cfg.ContrastLevel = colour.ContrastLevel(generateContrast)
	cfg.MinRoleDistance = generateMinDistance
	cfg.DownsampleStride = generateStride
	cfg.TypeBase = generateTypeBase
	cfg.TypeRatio = generateTypeRatio
	cfg.SpacingBase = generateSpacingBase
	cfg.SpacingRatio = generateSpacingRatio

	var seed *colour.RGB

	if generateBrandFile != "" {
		guidelines, err := brand.Load(generateBrandFile)
		if err != nil {
			return err
		}
		seed, err = guidelines.Apply(&cfg)
		if err != nil {
			return err
		}
		logger.Debug("applied brand guidelines", "file", generateBrandFile)
	}

	if generateSeed != "" {
		parsed, err := colour.ParseHex(generateSeed)
		if err != nil {
			return fmt.Errorf("invalid seed colour: %w", err)
		}
		seed = &parsed
	}

	var descriptor *theme.Descriptor
	switch {
	case seed != nil:
		logger.Info("generating theme from seed colour", "seed", seed.Hex())
		var err error
		descriptor, err = theme.GenerateFromSeed(*seed, cfg)
		if err != nil {
			return err
		}
	case generateImage != "":
		if err := image.ValidateImagePath(generateImage); err != nil {
			return fmt.Errorf("invalid image path: %w", err)
		}

		loader := image.NewSmartLoader()
		img, err := loader.Load(generateImage)
		if err != nil {
			return fmt.Errorf("failed to load image: %w", err)
		}
		bounds := img.Bounds()
		logger.Info("image loaded", "path", generateImage, "width", bounds.Dx(), "height", bounds.Dy())

		descriptor, err = theme.Generate(img, cfg)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("either --image or --seed is required")
	}

	logger.Info("theme generated",
		"harmony", descriptor.Metadata.HarmonyRule,
		"heading_font", descriptor.Metadata.FontPairing.Heading,
		"corrections", len(descriptor.Metadata.Corrections))

	// Accessibility shortfalls are warnings, never failures.
	for _, u := range descriptor.Metadata.Unresolved {
		logger.Warn("unresolved contrast pair",
			"foreground", u.Foreground,
			"background", u.Background,
			"required", u.Required,
			"achieved", fmt.Sprintf("%.2f", u.Achieved))
	}

	if generateShowPreview {
		fmt.Println(renderPreview(descriptor))
	}

	return writeOutputs(descriptor)
}

// writeOutputs renders the descriptor in each requested format into the
// output directory.
func writeOutputs(descriptor *theme.Descriptor) error {
	if err := os.MkdirAll(generateOutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, format := range generateFormats {
		renderer, err := render.NewRenderer(render.Format(format))
		if err != nil {
			return err
		}

		outPath := filepath.Join(generateOutputDir, renderer.Filename())
		file, err := os.Create(outPath) // #nosec G304 - user-specified output directory
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}

		if err := renderer.Render(file, descriptor); err != nil {
			file.Close()
			return err
		}
		if err := file.Close(); err != nil {
			return fmt.Errorf("failed to write %s: %w", outPath, err)
		}

		logger.Info("wrote output", "format", format, "path", outPath)
		fmt.Printf("Wrote %s\n", outPath)
	}

	return nil
}
