// Package cli provides the command-line interface for themata.
package cli

import (
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jfenske/themata/internal/version"
)

var (
	// Global logging flag
	logLevel string

	// logger is the application logger, configured in PersistentPreRun.
	logger hclog.Logger

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "themata",
		Short: "A visual theme generator",
		Long: `Themata derives a complete, internally-consistent visual theme from a
source image or a seed colour: a role-based colour palette, a modular
typographic scale, a spacing scale and accessibility metadata.

Dominant colours are extracted with deterministic k-means clustering,
harmonised into named roles using colour-theory rules, and validated
against WCAG contrast requirements before the theme is rendered as CSS
custom properties, a Tailwind config, or JSON.`,
		Version:      version.Short(),
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = hclog.New(&hclog.LoggerOptions{
				Name:   "themata",
				Level:  hclog.LevelFromString(logLevel),
				Output: os.Stderr,
			})
		},
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (trace, debug, info, warn, error)")

	// Set version template
	rootCmd.SetVersionTemplate(version.String() + "\n")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(generateCmd)
}
