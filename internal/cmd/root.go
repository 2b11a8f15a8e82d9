package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for sift
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sift",
		Short: "Utility-class candidate extraction for build pipelines",
		Long: `Sift scans source files of any language for utility-class candidates:
variant-chained, bracket-aware tokens that a downstream generator can
resolve into CSS rules.

It reads and scans files in parallel, and always produces the same
deduplicated, byte-sorted candidate list regardless of the chosen
execution strategy.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	// Add subcommands
	cmd.AddCommand(NewScanCommand())
	cmd.AddCommand(NewWatchCommand())

	return cmd
}
