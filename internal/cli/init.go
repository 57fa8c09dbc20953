package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/wikidoc/internal/logging"
	"github.com/yaklabco/wikidoc/pkg/config"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0644

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new wikidoc configuration file",
		Long: `Create a new .wikidoc.yml configuration file in the current directory.
Every option is listed with a comment; the full template also spells out the
built-in style of each role used by standalone HTML pages.

When the file already exists and standard input is a terminal, init asks
before overwriting it.

Examples:
  wikidoc init                      Create minimal .wikidoc.yml
  wikidoc init --full               Include every style role
  wikidoc init --format toml        Create .wikidoc.toml instead
  wikidoc init --output custom.yml  Write to a custom file path`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(flags, cmd.InOrStdin(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Generate full template with all style roles")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "Output format: yaml or toml")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .wikidoc.yml or .wikidoc.toml)")

	return cmd
}

func runInit(flags *initFlags, in io.Reader, prompt io.Writer) error {
	logger := logging.NewInteractive()

	if flags.format != "yaml" && flags.format != "toml" {
		return fmt.Errorf("%w: invalid format %q: must be yaml or toml", ErrInvalidUsage, flags.format)
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = ".wikidoc.yml"
		if flags.format == "toml" {
			outputPath = ".wikidoc.toml"
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		switch {
		case flags.force:
			logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
		case isTerminal(in):
			if !confirm(in, prompt, fmt.Sprintf("%s already exists. Overwrite?", outputPath)) {
				logger.Info("kept existing file", logging.FieldPath, outputPath)
				return nil
			}
		default:
			return fmt.Errorf("%w: file %q already exists; use --force to overwrite", ErrInvalidUsage, outputPath)
		}
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:   flags.full,
		Format: flags.format,
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := os.WriteFile(absPath, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)

	if flags.full {
		logger.Info("full template includes every style role")
	}

	logger.Info("run 'wikidoc formats' to see all dialects and targets")

	return nil
}

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// confirm asks a yes/no question. Anything but y or yes is a no.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N] ", question)

	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
