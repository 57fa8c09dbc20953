package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/wikidoc/internal/configloader"
	"github.com/yaklabco/wikidoc/internal/ui/pretty"
	"github.com/yaklabco/wikidoc/pkg/config"
	"github.com/yaklabco/wikidoc/pkg/fsutil"
)

func newConfigCommand(globals *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect wikidoc configuration",
		Long: `Inspect the configuration wikidoc resolves from system, user and project
files, the --config flag and WIKIDOC_* environment variables.`,
	}

	cmd.AddCommand(newConfigShowCommand(globals))
	cmd.AddCommand(newConfigEnvCommand(globals))
	cmd.AddCommand(newConfigValidateCommand())

	return cmd
}

func newConfigShowCommand(globals *globalFlags) *cobra.Command {
	var asTOML bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return runConfigShow(ctx, cmd.OutOrStdout(), globals.configPath, asTOML)
		},
	}

	cmd.Flags().BoolVar(&asTOML, "toml", false, "print TOML instead of YAML")

	return cmd
}

func runConfigShow(ctx context.Context, w io.Writer, explicitPath string, asTOML bool) error {
	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	result, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: explicitPath,
	})
	if err != nil {
		return err
	}

	header := "# resolved from built-in defaults"
	for _, path := range result.LoadedFrom {
		header += "\n# loaded " + path
	}
	for _, warning := range result.Warnings {
		header += "\n# warning: " + warning
	}

	var data []byte
	if asTOML {
		data, err = result.Config.ToTOML()
		if err == nil {
			data = append([]byte(header+"\n\n"), data...)
		}
	} else {
		data, err = result.Config.ToYAMLWithHeader(header)
	}
	if err != nil {
		return err
	}

	_, err = w.Write(data)
	return err
}

func newConfigEnvCommand(globals *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "List the supported environment variables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			styles := pretty.NewStyles(pretty.IsColorEnabled(globals.color, w))
			table := pretty.NewTableFormatter(styles, pretty.TerminalWidth(w))

			var rows []pretty.Row
			for _, v := range configloader.ListEnvVars() {
				value := os.Getenv(v.Name)
				rows = append(rows, pretty.Row{Cells: []string{v.Name, value, v.Description}})
			}

			fmt.Fprint(w, table.Format([]string{"VARIABLE", "VALUE", "DESCRIPTION"}, rows))
			return nil
		},
	}
}

func newConfigValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a configuration file for errors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return runConfigValidate(ctx, cmd.OutOrStdout(), args[0])
		},
	}
}

func runConfigValidate(ctx context.Context, w io.Writer, path string) error {
	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return err
	}

	cfg, err := config.FromFile(path, content)
	if err != nil {
		return &configloader.ValidationError{FilePath: path, Message: err.Error()}
	}

	result := configloader.ValidateWithFile(cfg, path)
	for _, message := range result.AllMessages() {
		fmt.Fprintln(w, message)
	}

	if !result.Valid() {
		return &result.Errors[0]
	}

	fmt.Fprintf(w, "%s: ok\n", path)

	return nil
}
