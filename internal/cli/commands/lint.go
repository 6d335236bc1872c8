package commands

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/hqltools/hqlint/internal/cli/output"
	"github.com/hqltools/hqlint/pkg/lint"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// LintOptions holds options for the lint command.
type LintOptions struct {
	Paths    []string // Files, directories or "-" for stdin
	Rules    []string // Per-run rule overrides, name=on|off
	Severity string   // Failure threshold override
}

// NewLintCommand creates the lint command.
func NewLintCommand() *cobra.Command {
	opts := &LintOptions{}
	cmd := &cobra.Command{
		Use:   "lint [path...]",
		Short: "Lint HQL files",
		Long: `Analyze HQL files for problems.

Paths may be files, directories (searched recursively for .sql, .hql
and .q files) or - for stdin. Without arguments the current directory
is linted.

Output adapts to environment:
  - Terminal: styled output with colors
  - Piped/Scripted: markdown format
  - JSON: machine-readable format`,
		Example: `  # Lint the current directory
  hqlint lint

  # Lint specific files and directories
  hqlint lint queries/ reports.hql

  # Lint stdin
  cat query.hql | hqlint lint -

  # Enable the keyword casing rule for this run
  hqlint lint --rule keywordCasing=on

  # Fail only on errors
  hqlint lint --severity error`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Paths = args
			return runLint(cmd, opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.Rules, "rule", nil, "Per-run rule override, name=on|off")
	cmd.Flags().StringVar(&opts.Severity, "severity", "", "Failure threshold: error, warning, info or hint")

	return cmd
}

func runLint(cmd *cobra.Command, opts *LintOptions) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg
	r := cmdCtx.Renderer

	if !cfg.Linting.Enabled {
		r.Muted("Linting is disabled in configuration")
		return nil
	}

	ruleCfg := cfg.Linting.RuleConfig()
	for _, override := range opts.Rules {
		name, enabled, err := parseRuleOverride(override)
		if err != nil {
			return err
		}
		if err := ruleCfg.SetRule(name, enabled); err != nil {
			return err
		}
	}

	threshold := cfg.Linting.Threshold()
	if opts.Severity != "" {
		s, err := lint.ParseSeverity(opts.Severity)
		if err != nil {
			return err
		}
		threshold = s
	}

	files, err := collectInputs(opts.Paths)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		r.Muted("No HQL files found")
		return nil
	}

	results, err := lintInputs(cmd.Context(), cmd.InOrStdin(), files, ruleCfg)
	if err != nil {
		return err
	}
	cmdCtx.Logger.Debug("lint finished", "files", len(results))

	if renderLintResults(r, results, threshold) {
		return fmt.Errorf("lint issues found")
	}
	return nil
}

// parseRuleOverride splits a name=on|off flag value.
func parseRuleOverride(s string) (string, bool, error) {
	name, state, ok := strings.Cut(s, "=")
	if !ok {
		return "", false, fmt.Errorf("invalid rule override %q, want name=on or name=off", s)
	}
	switch strings.ToLower(state) {
	case "on", "true":
		return name, true, nil
	case "off", "false":
		return name, false, nil
	}
	return "", false, fmt.Errorf("invalid rule state %q in %q, want on or off", state, s)
}

// lintFileResult pairs an input with its findings.
type lintFileResult struct {
	Path        string
	Diagnostics []lint.Diagnostic
}

// lintInputs lints every input concurrently, bounded by GOMAXPROCS,
// and returns results in input order.
func lintInputs(ctx context.Context, stdin io.Reader, paths []string, ruleCfg lint.Config) ([]lintFileResult, error) {
	results := make([]lintFileResult, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			text, name, err := readInput(stdin, path)
			if err != nil {
				return err
			}
			results[i] = lintFileResult{Path: name, Diagnostics: lint.Run(text, ruleCfg)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// renderLintResults writes the report and reports whether any finding
// reaches the failure threshold.
func renderLintResults(r *output.Renderer, results []lintFileResult, threshold lint.Severity) bool {
	summary := output.LintSummary{FilesAnalyzed: len(results)}
	failed := false
	for _, res := range results {
		summary.TotalIssues += len(res.Diagnostics)
		for _, d := range res.Diagnostics {
			switch d.Severity {
			case lint.SeverityError:
				summary.Errors++
			case lint.SeverityWarning:
				summary.Warnings++
			case lint.SeverityInfo:
				summary.Info++
			case lint.SeverityHint:
				summary.Hints++
			}
			if d.Severity.AtLeast(threshold) {
				failed = true
			}
		}
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		doc := output.LintOutput{Summary: summary, Files: make([]output.LintFileResult, 0, len(results))}
		for _, res := range results {
			doc.Files = append(doc.Files, toFileResult(res))
		}
		_ = r.JSON(doc)
	case output.ModeMarkdown:
		renderLintMarkdown(r, results, summary)
	default:
		renderLintText(r, results, summary)
	}

	return failed
}

func renderLintText(r *output.Renderer, results []lintFileResult, summary output.LintSummary) {
	if summary.TotalIssues == 0 {
		r.Success(fmt.Sprintf("No issues found in %d files", summary.FilesAnalyzed))
		return
	}

	styles := r.Styles()
	for _, res := range results {
		if len(res.Diagnostics) == 0 {
			continue
		}
		r.Println(styles.FilePath.Render(res.Path))
		for _, d := range res.Diagnostics {
			pos := fmt.Sprintf("%d:%d", d.Span.Start.Line+1, d.Span.Start.Column+1)
			line := fmt.Sprintf("  %s  %s  %s",
				styles.Muted.Render(fmt.Sprintf("%-7s", pos)),
				severityLabel(styles, d.Severity),
				d.Message,
			)
			if d.Code != "" {
				line += " " + styles.Muted.Render("("+d.Code+")")
			}
			r.Println(line)
		}
		r.Println("")
	}

	renderSummaryTable(r, summary)
}

func renderLintMarkdown(r *output.Renderer, results []lintFileResult, summary output.LintSummary) {
	if summary.TotalIssues == 0 {
		r.Success(fmt.Sprintf("No issues found in %d files", summary.FilesAnalyzed))
		return
	}

	for _, res := range results {
		if len(res.Diagnostics) == 0 {
			continue
		}
		r.Println(output.FormatHeader(2, res.Path))
		r.Println("")
		for _, d := range res.Diagnostics {
			pos := fmt.Sprintf("%d:%d", d.Span.Start.Line+1, d.Span.Start.Column+1)
			entry := fmt.Sprintf("- `%s` **%s** %s", pos, d.Severity, d.Message)
			if d.Code != "" {
				entry += fmt.Sprintf(" (`%s`)", d.Code)
			}
			r.Println(entry)
		}
		r.Println("")
	}

	renderSummaryTable(r, summary)
}

// severityLabel returns the fixed-width styled severity column.
func severityLabel(styles *output.Styles, sev lint.Severity) string {
	switch sev {
	case lint.SeverityError:
		return styles.Error.Render("error  ")
	case lint.SeverityWarning:
		return styles.Warning.Render("warning")
	case lint.SeverityInfo:
		return styles.Info.Render("info   ")
	default:
		return styles.Hint.Render("hint   ")
	}
}

func renderSummaryTable(r *output.Renderer, s output.LintSummary) {
	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.AppendHeader(table.Row{"FILES", "ERRORS", "WARNINGS", "INFO", "HINTS", "TOTAL"})
	t.AppendRow(table.Row{s.FilesAnalyzed, s.Errors, s.Warnings, s.Info, s.Hints, s.TotalIssues})
	if r.EffectiveMode() == output.ModeMarkdown {
		t.RenderMarkdown()
		return
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}

// toFileResult converts engine findings into the one-based report
// form.
func toFileResult(res lintFileResult) output.LintFileResult {
	out := output.LintFileResult{Path: res.Path}
	for _, d := range res.Diagnostics {
		out.Diagnostics = append(out.Diagnostics, output.LintDiagnostic{
			Code:      d.Code,
			Severity:  d.Severity.String(),
			Message:   d.Message,
			Line:      d.Span.Start.Line + 1,
			Column:    d.Span.Start.Column + 1,
			EndLine:   d.Span.End.Line + 1,
			EndColumn: d.Span.End.Column + 1,
		})
	}
	return out
}
