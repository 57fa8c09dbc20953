package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/wikidoc/internal/logging"
)

func newVersionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, and build date of wikidoc.`,
		Run: func(cmd *cobra.Command, _ []string) {
			logging.NewWriter(cmd.OutOrStdout(), "info").Info("wikidoc",
				logging.FieldVersion, info.Version,
				logging.FieldCommit, info.Commit,
				logging.FieldBuilt, info.Date,
			)
		},
	}
}
