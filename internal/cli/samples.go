package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/wikidoc/internal/logging"
	"github.com/yaklabco/wikidoc/internal/ui/pretty"
	"github.com/yaklabco/wikidoc/pkg/docmodel"
	"github.com/yaklabco/wikidoc/pkg/format"
)

// samplesFlags holds the flags for the samples command.
type samplesFlags struct {
	to         string
	standalone bool
}

func newSamplesCommand(globals *globalFlags) *cobra.Command {
	flags := &samplesFlags{}

	cmd := &cobra.Command{
		Use:   "samples [name]",
		Short: "List or render the built-in sample documents",
		Long: `Without an argument, list the built-in sample documents. With a name,
render that sample in the target format given by --to.

Examples:
  wikidoc samples                   List the samples
  wikidoc samples table --to owiki  Render the table sample as OWiki`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return listSamples(cmd.OutOrStdout(), globals.color)
			}
			return renderSample(cmd.OutOrStdout(), args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.to, "to", "t", string(format.TargetHTML), "target format")
	cmd.Flags().BoolVar(&flags.standalone, "standalone", false, "render a complete HTML page")

	return cmd
}

func listSamples(w io.Writer, color string) error {
	styles := pretty.NewStyles(pretty.IsColorEnabled(color, w))
	table := pretty.NewTableFormatter(styles, pretty.TerminalWidth(w))

	var rows []pretty.Row
	for _, sample := range docmodel.Samples() {
		core := "no"
		if sample.Core {
			core = "yes"
		}
		rows = append(rows, pretty.Row{Cells: []string{sample.Name, core, sample.Description}})
	}

	fmt.Fprint(w, table.Format([]string{"NAME", "CORE", "DESCRIPTION"}, rows))

	return nil
}

func renderSample(w io.Writer, name string, flags *samplesFlags) error {
	sample, ok := docmodel.LookupSample(name)
	if !ok {
		names := make([]string, 0, len(docmodel.Samples()))
		for _, s := range docmodel.Samples() {
			names = append(names, s.Name)
		}
		return fmt.Errorf("%w: unknown sample %q; valid: %s", ErrInvalidUsage, name, strings.Join(names, ", "))
	}

	target, err := format.ParseTarget(flags.to)
	if err != nil {
		return err
	}

	out, err := format.Format(sample.Build(), target, format.Options{
		Standalone: flags.standalone,
		Logger:     logging.Default(),
	})
	if err != nil {
		return err
	}

	if _, err := io.WriteString(w, out); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}
