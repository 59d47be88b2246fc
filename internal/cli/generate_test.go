package cli

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jfenske/themata/internal/colour"
	"github.com/jfenske/themata/internal/theme"
)

// resetGenerateFlags restores the generate command's flag variables to their
// defaults. Flag values persist across Execute calls, so every test run
// starts from a clean slate.
func resetGenerateFlags() {
	generateImage = ""
	generateSeed = ""
	generateBrandFile = ""
	generateHarmony = "auto"
	generateClusters = 6
	generateContrast = "AA"
	generateMinDistance = colour.DefaultMinRoleDistance
	generateStride = 0
	generateTypeBase = 16
	generateTypeRatio = 1.2
	generateSpacingBase = 16
	generateSpacingRatio = 1.3
	generateOutputDir = "."
	generateFormats = []string{"css", "tailwind", "json"}
	generateShowPreview = false
}

// runCommand executes the root command with the given args, capturing output.
func runCommand(args ...string) error {
	resetGenerateFlags()

	var outBuf, errBuf bytes.Buffer
	rootCmd.SetOut(&outBuf)
	rootCmd.SetErr(&errBuf)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

// writeTestImage writes a small two-tone PNG and returns its path.
func writeTestImage(t *testing.T, dir string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			c := color.RGBA{R: 11, G: 61, B: 145, A: 255}
			if x >= 20 {
				c = color.RGBA{R: 220, G: 230, B: 240, A: 255}
			}
			img.SetRGBA(x, y, c)
		}
	}

	path := filepath.Join(dir, "source.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create test image: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return path
}

// readDescriptor decodes a generated theme.json.
func readDescriptor(t *testing.T, dir string) *theme.Descriptor {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, "theme.json"))
	if err != nil {
		t.Fatalf("failed to read theme.json: %v", err)
	}
	var d theme.Descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		t.Fatalf("failed to decode theme.json: %v", err)
	}
	return &d
}

func TestGenerateCommand(t *testing.T) {
	t.Run("FromImage", func(t *testing.T) {
		dir := t.TempDir()
		imgPath := writeTestImage(t, dir)
		outDir := filepath.Join(dir, "out")

		err := runCommand("generate", "-i", imgPath, "--output", outDir)
		if err != nil {
			t.Fatalf("generate failed: %v", err)
		}

		for _, name := range []string{"theme.css", "tailwind.theme.js", "theme.json"} {
			if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
				t.Errorf("expected output file %s: %v", name, err)
			}
		}

		css, err := os.ReadFile(filepath.Join(outDir, "theme.css"))
		if err != nil {
			t.Fatalf("failed to read theme.css: %v", err)
		}
		if !strings.Contains(string(css), ":root {") {
			t.Errorf("theme.css missing :root block:\n%s", css)
		}

		d := readDescriptor(t, outDir)
		if d.Metadata.Source != "image" {
			t.Errorf("descriptor source = %q, want %q", d.Metadata.Source, "image")
		}
	})

	t.Run("FromSeed", func(t *testing.T) {
		outDir := filepath.Join(t.TempDir(), "out")

		err := runCommand("generate", "--seed", "#0b3d91", "--formats", "css", "--output", outDir)
		if err != nil {
			t.Fatalf("generate failed: %v", err)
		}

		css, err := os.ReadFile(filepath.Join(outDir, "theme.css"))
		if err != nil {
			t.Fatalf("failed to read theme.css: %v", err)
		}
		if !strings.Contains(string(css), "--color-primary: #0b3d91;") {
			t.Errorf("theme.css missing seed primary:\n%s", css)
		}

		// Only the requested format is written.
		if _, err := os.Stat(filepath.Join(outDir, "theme.json")); !os.IsNotExist(err) {
			t.Errorf("theme.json written despite --formats css (stat err: %v)", err)
		}
	})

	t.Run("MissingSource", func(t *testing.T) {
		err := runCommand("generate", "--output", t.TempDir())
		if err == nil {
			t.Fatal("expected an error without --image or --seed")
		}
		if !strings.Contains(err.Error(), "either --image or --seed") {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("InvalidSeed", func(t *testing.T) {
		err := runCommand("generate", "--seed", "notacolour", "--output", t.TempDir())
		if err == nil {
			t.Fatal("expected an error for an invalid seed colour")
		}
		if !strings.Contains(err.Error(), "invalid seed colour") {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("InvalidFormat", func(t *testing.T) {
		err := runCommand("generate", "--seed", "#0b3d91", "--formats", "scss", "--output", t.TempDir())
		if err == nil {
			t.Fatal("expected an error for an unknown output format")
		}
		if !strings.Contains(err.Error(), "unknown output format") {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("InvalidImagePath", func(t *testing.T) {
		err := runCommand("generate", "-i", filepath.Join(t.TempDir(), "missing.png"), "--output", t.TempDir())
		if err == nil {
			t.Fatal("expected an error for a missing image")
		}
		if !strings.Contains(err.Error(), "invalid image path") {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestGenerateCommandBrandGuidelines(t *testing.T) {
	t.Run("BrandPinsPrimary", func(t *testing.T) {
		dir := t.TempDir()
		brandPath := filepath.Join(dir, "brand.yaml")
		brand := "primary_color: \"#ff0000\"\nharmony_rule: monochrome\n"
		if err := os.WriteFile(brandPath, []byte(brand), 0o600); err != nil {
			t.Fatalf("failed to write brand file: %v", err)
		}
		outDir := filepath.Join(dir, "out")

		err := runCommand("generate", "--brand", brandPath, "--formats", "json", "--output", outDir)
		if err != nil {
			t.Fatalf("generate failed: %v", err)
		}

		d := readDescriptor(t, outDir)
		if got := d.Palette[colour.RolePrimary]; got != (colour.RGB{R: 255, G: 0, B: 0}) {
			t.Errorf("primary = %v, want brand colour #ff0000", got)
		}
		if d.Metadata.Source != "seed" {
			t.Errorf("descriptor source = %q, want %q", d.Metadata.Source, "seed")
		}
		if d.Metadata.HarmonyRule != colour.HarmonyMonochrome {
			t.Errorf("harmony rule = %q, want monochrome from guidelines", d.Metadata.HarmonyRule)
		}
	})

	t.Run("SeedFlagOverridesBrand", func(t *testing.T) {
		dir := t.TempDir()
		brandPath := filepath.Join(dir, "brand.yaml")
		if err := os.WriteFile(brandPath, []byte("primary_color: \"#ff0000\"\n"), 0o600); err != nil {
			t.Fatalf("failed to write brand file: %v", err)
		}
		outDir := filepath.Join(dir, "out")

		err := runCommand("generate", "--brand", brandPath, "--seed", "#0b3d91", "--formats", "json", "--output", outDir)
		if err != nil {
			t.Fatalf("generate failed: %v", err)
		}

		d := readDescriptor(t, outDir)
		if got := d.Palette[colour.RolePrimary]; got != (colour.RGB{R: 11, G: 61, B: 145}) {
			t.Errorf("primary = %v, want the explicit seed #0b3d91", got)
		}
	})

	t.Run("InvalidBrandFile", func(t *testing.T) {
		dir := t.TempDir()
		brandPath := filepath.Join(dir, "brand.yaml")
		if err := os.WriteFile(brandPath, []byte("harmony_rule: vibrant\n"), 0o600); err != nil {
			t.Fatalf("failed to write brand file: %v", err)
		}

		err := runCommand("generate", "--brand", brandPath, "--output", filepath.Join(dir, "out"))
		if err == nil {
			t.Fatal("expected an error for invalid brand guidelines")
		}
	})
}
