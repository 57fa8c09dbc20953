package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/wikidoc/internal/ui/pretty"
	"github.com/yaklabco/wikidoc/pkg/format"
	"github.com/yaklabco/wikidoc/pkg/runner"
	"github.com/yaklabco/wikidoc/pkg/textutil"
)

// Listings printed by the formats command.
const (
	listSources   = "sources"
	listTargets   = "targets"
	listSymbols   = "symbols"
	listLanguages = "languages"
)

func newFormatsCommand(globals *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "formats [sources|targets|symbols|languages]",
		Short: "List source dialects, output targets, symbols and code languages",
		Long: `List the source dialects wikidoc reads, the targets it writes, the
named symbols the wiki dialects understand and the code languages the HTML
target highlights. Without an argument every listing is printed.`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{listSources, listTargets, listSymbols, listLanguages},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormats(cmd.OutOrStdout(), globals.color, args)
		},
	}
}

func runFormats(w io.Writer, color string, args []string) error {
	listings := []string{listSources, listTargets, listSymbols, listLanguages}
	if len(args) == 1 {
		name := strings.ToLower(args[0])
		if !slices.Contains(listings, name) {
			return fmt.Errorf("%w: unknown listing %q; valid: %s",
				ErrInvalidUsage, args[0], strings.Join(listings, ", "))
		}
		listings = []string{name}
	}

	styles := pretty.NewStyles(pretty.IsColorEnabled(color, w))
	table := pretty.NewTableFormatter(styles, pretty.TerminalWidth(w))

	for i, listing := range listings {
		if i > 0 {
			fmt.Fprintln(w)
		}

		var headers []string
		var rows []pretty.Row

		switch listing {
		case listSources:
			headers, rows = sourceRows()
		case listTargets:
			headers, rows = targetRows()
		case listSymbols:
			headers, rows = symbolRows()
		case listLanguages:
			headers, rows = languageRows()
		}

		fmt.Fprintln(w, styles.SummaryTitle.Render(strings.ToUpper(listing[:1])+listing[1:]))
		fmt.Fprint(w, table.Format(headers, rows))
	}

	return nil
}

func sourceRows() ([]string, []pretty.Row) {
	var rows []pretty.Row
	for _, src := range runner.Sources() {
		rows = append(rows, pretty.Row{Cells: []string{
			src.String(),
			strings.Join(src.Extensions(), " "),
			src.Description(),
		}})
	}

	return []string{"NAME", "EXTENSIONS", "DESCRIPTION"}, rows
}

func targetRows() ([]string, []pretty.Row) {
	var rows []pretty.Row
	for _, target := range format.Targets() {
		rows = append(rows, pretty.Row{Cells: []string{
			target.String(),
			target.Extension(),
			target.Description(),
		}})
	}

	return []string{"NAME", "EXTENSION", "DESCRIPTION"}, rows
}

func symbolRows() ([]string, []pretty.Row) {
	var rows []pretty.Row
	for _, sym := range textutil.Symbols() {
		rows = append(rows, pretty.Row{Cells: []string{sym.Name, sym.Text, sym.Asset}})
	}

	return []string{"NAME", "TEXT", "ASSET"}, rows
}

func languageRows() ([]string, []pretty.Row) {
	var rows []pretty.Row
	for _, lang := range textutil.HighlightLanguages() {
		rows = append(rows, pretty.Row{Cells: []string{lang}})
	}

	return []string{"LANGUAGE"}, rows
}
