// Package cli provides the Cobra command structure for wikidoc.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/wikidoc/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	debug      bool
	configPath string
	color      string
}

// NewRootCommand creates the root wikidoc command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	globals := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "wikidoc",
		Short: "Convert documents between wiki dialects, Markdown, HTML and text",
		Long: `wikidoc converts lightweight markup documents through a shared document model.

It reads OWiki, Markdown and Creole (plus CommonMark and GFM through goldmark)
and writes HTML, OWiki, Markdown, Creole, Confluence, Codeplex or plain text.
Whole directory trees convert in parallel, with dry-run and unified diff modes
to preview what would change.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if globals.debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&globals.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&globals.configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&globals.color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newConvertCommand(globals))
	rootCmd.AddCommand(newFormatsCommand(globals))
	rootCmd.AddCommand(newSamplesCommand(globals))
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newConfigCommand(globals))
	rootCmd.AddCommand(newVersionCommand(info))

	helpFormatter := NewHelpFormatter(globals.color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
