package commands

import (
	"github.com/hqltools/hqlint/internal/cli/output"
	"github.com/hqltools/hqlint/pkg/lint"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List lint rules",
		Long: `List the lint rules with their diagnostic codes, severities and
default toggles.

Rule names are the keys accepted under linting.rules in the
configuration file and by 'hqlint lint --rule'.`,
		Example: `  # List rules
  hqlint rules

  # Machine-readable catalog
  hqlint rules --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRules(cmd)
		},
	}
	return cmd
}

// rulesOutput is the rules command's JSON document.
type rulesOutput struct {
	Rules []lint.RuleInfo `json:"rules"`
}

func runRules(cmd *cobra.Command) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer
	rules := lint.Rules()

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(rulesOutput{Rules: rules})
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.AppendHeader(table.Row{"RULE", "CODE", "SEVERITY", "DEFAULT", "SUMMARY"})
	for _, info := range rules {
		code := info.Code
		if code == "" {
			code = "-"
		}
		toggle := "off"
		if info.Default {
			toggle = "on"
		}
		t.AppendRow(table.Row{info.Name, code, info.Severity.String(), toggle, info.Summary})
	}

	if r.EffectiveMode() == output.ModeMarkdown {
		t.RenderMarkdown()
		return nil
	}
	t.SetStyle(table.StyleLight)
	t.Render()
	return nil
}
