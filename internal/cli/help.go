package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/wikidoc/internal/configloader"
	"github.com/yaklabco/wikidoc/internal/ui/pretty"
)

// HelpStyles contains Lipgloss styles for command help formatting.
type HelpStyles struct {
	Command     lipgloss.Style
	Heading     lipgloss.Style
	Subcommand  lipgloss.Style
	Flag        lipgloss.Style
	FlagType    lipgloss.Style
	Description lipgloss.Style
	Example     lipgloss.Style
}

// NewHelpStyles creates help styles based on color mode.
func NewHelpStyles(colorEnabled bool) *HelpStyles {
	plain := lipgloss.NewStyle()
	if !colorEnabled {
		return &HelpStyles{
			Command:     plain,
			Heading:     plain,
			Subcommand:  plain,
			Flag:        plain,
			FlagType:    plain,
			Description: plain,
			Example:     plain,
		}
	}

	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	return &HelpStyles{
		Command:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		Heading:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Subcommand:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Flag:        lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		FlagType:    dim,
		Description: plain,
		Example:     dim,
	}
}

// HelpFormatter renders styled help for Cobra commands.
type HelpFormatter struct {
	styles *HelpStyles
}

// NewHelpFormatter creates a new help formatter with the given color mode.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	return &HelpFormatter{styles: NewHelpStyles(pretty.IsColorEnabled(colorMode, writer))}
}

// helpEntry is one row of a two-column help section.
type helpEntry struct {
	name        string
	description string
}

const helpTemplate = `{{with (or .Long .Short)}}{{ trim . }}

{{end}}{{ usage . }}`

const usageTemplate = `{{ heading "Usage:" }}
{{- if .Runnable}}
  {{ command .UseLine }}
{{- end}}
{{- if .HasAvailableSubCommands}}
  {{ command .CommandPath }} [command]
{{- end}}
{{- if gt (len .Aliases) 0}}

{{ heading "Aliases:" }}
  {{ join .Aliases ", " }}
{{- end}}
{{- if .HasExample}}

{{ heading "Examples:" }}
{{ example .Example }}
{{- end}}
{{- if .HasAvailableSubCommands}}

{{ heading "Commands:" }}
{{ subcommands . }}
{{- end}}
{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end}}
{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end}}
{{- if not .HasParent}}

{{ heading "Environment:" }}
{{ environment }}
{{- end}}
{{- if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

func (h *HelpFormatter) funcs() template.FuncMap {
	return template.FuncMap{
		"heading":     h.styles.Heading.Render,
		"command":     h.styles.Command.Render,
		"example":     h.styles.Example.Render,
		"join":        strings.Join,
		"trim":        trimTrailingWhitespaces,
		"subcommands": h.subcommands,
		"flags":       h.flags,
		"environment": h.environment,
	}
}

func (h *HelpFormatter) subcommands(cmd *cobra.Command) string {
	var entries []helpEntry
	for _, sub := range cmd.Commands() {
		if sub.IsAvailableCommand() || sub.Name() == "help" {
			entries = append(entries, helpEntry{sub.Name(), sub.Short})
		}
	}

	return h.columns(entries, render(h.styles.Subcommand))
}

// flags lists a flag set as "-s, --name type" and its usage text.
func (h *HelpFormatter) flags(fs *pflag.FlagSet) string {
	var entries []helpEntry

	fs.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}

		name := "    --" + f.Name
		if f.Shorthand != "" {
			name = "-" + f.Shorthand + ", --" + f.Name
		}

		varname, usage := pflag.UnquoteUsage(f)
		if varname != "" {
			name += " " + varname
		}

		if f.DefValue != "" && f.DefValue != "false" && f.DefValue != "0" && f.DefValue != "[]" {
			usage += fmt.Sprintf(" (default %q)", f.DefValue)
		}

		entries = append(entries, helpEntry{name, usage})
	})

	return h.columns(entries, h.styleFlag)
}

// styleFlag colors the flag names and dims the value type, keeping the
// column padding.
func (h *HelpFormatter) styleFlag(name string) string {
	trimmed := strings.TrimLeft(name, " ")
	indent := name[:len(name)-len(trimmed)]
	body := strings.TrimRight(trimmed, " ")
	padding := trimmed[len(body):]

	flag, typ := body, ""
	if i := strings.LastIndex(body, " "); i >= 0 && !strings.HasPrefix(body[i+1:], "-") {
		flag, typ = body[:i], body[i+1:]
	}

	out := indent + h.styles.Flag.Render(flag)
	if typ != "" {
		out += " " + h.styles.FlagType.Render(typ)
	}

	return out + padding
}

func (h *HelpFormatter) environment() string {
	vars := configloader.ListEnvVars()

	entries := make([]helpEntry, 0, len(vars))
	for _, v := range vars {
		entries = append(entries, helpEntry{v.Name, v.Description})
	}

	return h.columns(entries, render(h.styles.Flag))
}

// columns aligns entries into a name column and a description column.
func (h *HelpFormatter) columns(entries []helpEntry, styleName func(string) string) string {
	width := 0
	for _, e := range entries {
		width = max(width, runewidth.StringWidth(e.name))
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		name := styleName(runewidth.FillRight(e.name, width))
		lines = append(lines, "  "+name+"   "+h.styles.Description.Render(e.description))
	}

	return strings.Join(lines, "\n")
}

func render(style lipgloss.Style) func(string) string {
	return func(s string) string { return style.Render(s) }
}

// ApplyToCommand installs the styled help and usage output on cmd. Cobra
// hands the functions down to every subcommand.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	funcs := h.funcs()
	funcs["usage"] = func(c *cobra.Command) (string, error) {
		var b strings.Builder
		err := h.execute(&b, "usage", usageTemplate, funcs, c)
		return b.String(), err
	}

	cmd.SetUsageFunc(func(c *cobra.Command) error {
		return h.execute(c.OutOrStderr(), "usage", usageTemplate, funcs, c)
	})

	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		if err := h.execute(c.OutOrStdout(), "help", helpTemplate, funcs, c); err != nil {
			c.PrintErrln(err)
		}
	})
}

func (h *HelpFormatter) execute(w io.Writer, name, text string, funcs template.FuncMap, cmd *cobra.Command) error {
	tmpl, err := template.New(name).Funcs(funcs).Parse(text)
	if err != nil {
		return fmt.Errorf("parse %s template: %w", name, err)
	}

	return tmpl.Execute(w, cmd)
}

// trimTrailingWhitespaces removes trailing whitespace from lines.
func trimTrailingWhitespaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
