package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/wikidoc/internal/configloader"
	"github.com/yaklabco/wikidoc/internal/logging"
	"github.com/yaklabco/wikidoc/pkg/config"
	"github.com/yaklabco/wikidoc/pkg/fsutil"
	"github.com/yaklabco/wikidoc/pkg/reporter"
	"github.com/yaklabco/wikidoc/pkg/runner"
)

// stdinPath is the path argument that converts standard input.
const stdinPath = "-"

// convertFlags holds the flags for the convert command.
type convertFlags struct {
	from           string
	to             string
	outputDir      string
	jobs           int
	dryRun         bool
	diff           bool
	format         string
	defines        []string
	vars           []string
	varsFile       string
	symbols        string
	template       string
	css            string
	linkFormat     string
	typography     bool
	standalone     bool
	detectLanguage bool
	ignore         []string
	followSymlinks bool
	quiet          bool
	compact        bool
	noSummary      bool
}

func newConvertCommand(globals *globalFlags) *cobra.Command {
	flags := &convertFlags{}

	cmd := &cobra.Command{
		Use:   "convert [paths...]",
		Short: "Convert documents to another format",
		Long: `Convert wiki, Markdown and Creole documents to the target format.

Directories are walked recursively for files with a known source extension.
Each output file is written next to its input, or under --output-dir with the
same relative layout, using the extension of the target format. A single "-"
argument converts standard input to standard output.`,
		Example: `  wikidoc convert page.owiki                 Write page.html
  wikidoc convert docs/ --to markdown -o out   Convert a tree into out/
  wikidoc convert docs/ --diff                 Show what would change
  cat page.md | wikidoc convert - --from gfm --to creole`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, globals, flags, args)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.from, "from", "", "source dialect (default: from each file extension)")
	f.StringVarP(&flags.to, "to", "t", "", "target format (default: html)")
	f.StringVarP(&flags.outputDir, "output-dir", "o", "", "directory for converted files")
	f.IntVarP(&flags.jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	f.BoolVar(&flags.dryRun, "dry-run", false, "convert without writing files")
	f.BoolVar(&flags.diff, "diff", false, "show a unified diff against existing output (implies --dry-run)")
	f.StringVar(&flags.format, "format", "", "report format: text, table, json, diff, summary")
	f.StringSliceVarP(&flags.defines, "define", "D", nil, "name that is true for @if (repeatable)")
	f.StringArrayVar(&flags.vars, "var", nil, "substitution variable as name=value (repeatable)")
	f.StringVar(&flags.varsFile, "vars", "", "TOML or YAML file of substitution variables")
	f.StringVar(&flags.symbols, "symbols", "", "directory or URL prefix of symbol images")
	f.StringVar(&flags.template, "template", "", "output template file")
	f.StringVar(&flags.css, "css", "", "stylesheet linked from HTML output")
	f.StringVar(&flags.linkFormat, "link-format", "", "format for relative links, e.g. %s.html")
	f.BoolVar(&flags.typography, "typography", false, "convert ASCII sequences to typographic glyphs")
	f.BoolVar(&flags.standalone, "standalone", false, "render complete HTML pages")
	f.BoolVar(&flags.detectLanguage, "detect-language", false, "guess the language of untagged code blocks")
	f.StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns of files to skip")
	f.BoolVar(&flags.followSymlinks, "follow-symlinks", false, "follow directory symlinks")
	f.BoolVarP(&flags.quiet, "quiet", "q", false, "only report failures")
	f.BoolVar(&flags.compact, "compact", false, "compact JSON output")
	f.BoolVar(&flags.noSummary, "no-summary", false, "omit the summary line")

	return cmd
}

func runConvert(cmd *cobra.Command, globals *globalFlags, flags *convertFlags, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger := logging.FromContext(ctx)

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	cliCfg, err := flags.toConfig(cmd)
	if err != nil {
		return err
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: globals.configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return err
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn("config warning", logging.FieldError, warning)
	}
	for _, path := range loadResult.LoadedFrom {
		logger.Debug("loaded config", logging.FieldPath, path)
	}

	cfg := loadResult.Config

	converter, err := runner.NewConverter(ctx, cfg, logger)
	if err != nil {
		return err
	}

	if len(args) == 1 && args[0] == stdinPath {
		return convertStream(ctx, converter, cmd.InOrStdin(), cmd.OutOrStdout())
	}
	for _, arg := range args {
		if arg == stdinPath {
			return fmt.Errorf("%w: %q must be the only path", ErrInvalidUsage, stdinPath)
		}
	}

	format, err := reportFormat(cmd, cfg)
	if err != nil {
		return err
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      format,
		Color:       globals.color,
		ShowSummary: !flags.noSummary,
		Quiet:       flags.quiet,
		Compact:     flags.compact,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	}

	logger.Debug("starting conversion",
		logging.FieldPaths, args,
		logging.FieldTarget, converter.Target(),
		logging.FieldJobs, cfg.Jobs,
		logging.FieldDryRun, cfg.DryRun || cfg.Diff)

	result, runErr := runner.New(converter).Run(ctx, runner.Options{
		Paths:          args,
		WorkingDir:     workDir,
		Extensions:     runner.ExtensionsFor(cfg.From),
		ExcludeGlobs:   cfg.Ignore,
		FollowSymlinks: flags.followSymlinks,
		Jobs:           cfg.Jobs,
		OutputDir:      cfg.OutputDir,
		DryRun:         cfg.DryRun,
		Diff:           cfg.Diff,
		Logger:         logger,
	})
	if result == nil {
		return runErr
	}

	_, reportErr := rep.Report(ctx, result)
	if err := errors.Join(runErr, reportErr); err != nil {
		return err
	}

	logger.Debug("conversion finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesWritten, result.Stats.FilesWritten,
		logging.FieldFilesFailed, result.Stats.FilesFailed)

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrConversionFailed
	}

	return nil
}

// toConfig turns the flags that were set into a configuration layer.
// Booleans only override lower layers when given explicitly.
func (f *convertFlags) toConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := &config.Config{
		From:            f.from,
		To:              f.to,
		OutputDir:       f.outputDir,
		SymbolDirectory: f.symbols,
		Template:        f.template,
		CSS:             f.css,
		LocalLinkFormat: f.linkFormat,
		Jobs:            f.jobs,
		DryRun:          f.dryRun,
		Diff:            f.diff,
		Format:          config.OutputFormat(f.format),
	}

	changed := cmd.Flags().Changed
	if changed("define") {
		cfg.Defines = f.defines
	}
	if changed("ignore") {
		cfg.Ignore = f.ignore
	}
	if changed("typography") {
		cfg.Typography = config.Bool(f.typography)
	}
	if changed("standalone") {
		cfg.Standalone = config.Bool(f.standalone)
	}
	if changed("detect-language") {
		cfg.DetectLanguage = config.Bool(f.detectLanguage)
	}

	if f.varsFile != "" {
		vars, err := loadVariablesFile(f.varsFile)
		if err != nil {
			return nil, err
		}
		cfg.Variables = vars
	}

	if len(f.vars) > 0 {
		vars, err := parseVariables(f.vars)
		if err != nil {
			return nil, err
		}
		if cfg.Variables == nil {
			cfg.Variables = vars
		} else {
			for name, value := range vars {
				cfg.Variables[name] = value
			}
		}
	}

	return cfg, nil
}

// reportFormat picks the report format. A diff run without an explicit
// format reports diffs.
func reportFormat(cmd *cobra.Command, cfg *config.Config) (reporter.Format, error) {
	name := string(cfg.Format)
	if cfg.Diff && !cmd.Flags().Changed("format") && (name == "" || cfg.Format == config.FormatText) {
		name = string(config.FormatDiff)
	}

	format, err := reporter.ParseFormat(name)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	}

	return format, nil
}

// convertStream converts one document read from r and writes it to w.
func convertStream(ctx context.Context, converter *runner.Converter, r io.Reader, w io.Writer) error {
	text, err := fsutil.ReadAll(r)
	if err != nil {
		return err
	}

	out, src, err := converter.Convert(ctx, "", text)
	if err != nil {
		return err
	}

	logging.FromContext(ctx).Debug("converted standard input",
		logging.FieldDialect, src,
		logging.FieldTarget, converter.Target())

	if _, err := io.WriteString(w, out); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}
