package commands

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hqltools/hqlint/internal/cli/output"
	"github.com/hqltools/hqlint/internal/config"
)

// executeCommand runs a subcommand the way the root would, with an
// optional configuration snapshot injected into its context.
func executeCommand(t *testing.T, cmd *cobra.Command, cfg *config.Config, stdin string, args ...string) (string, error) {
	t.Helper()
	out := new(strings.Builder)
	cmd.SetOut(out)
	cmd.SetErr(out)
	if stdin != "" {
		cmd.SetIn(strings.NewReader(stdin))
	}
	if cfg != nil {
		cmd.SetContext(config.WithConfig(context.Background(), cfg))
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeQuery(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "query.hql")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

func TestNewLintCommand(t *testing.T) {
	cmd := NewLintCommand()

	assert.Equal(t, "lint [path...]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	for _, flag := range []string{"rule", "severity"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestParseRuleOverride(t *testing.T) {
	tests := []struct {
		in      string
		name    string
		enabled bool
		wantErr bool
	}{
		{in: "keywordCasing=on", name: "keywordCasing", enabled: true},
		{in: "missingComma=off", name: "missingComma", enabled: false},
		{in: "semicolon=true", name: "semicolon", enabled: true},
		{in: "semicolon=OFF", name: "semicolon", enabled: false},
		{in: "keywordCasing", wantErr: true},
		{in: "keywordCasing=maybe", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			name, enabled, err := parseRuleOverride(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.enabled, enabled)
		})
	}
}

func TestLintCleanFile(t *testing.T) {
	path := writeQuery(t, "SELECT * FROM users;\n")

	out, err := executeCommand(t, NewLintCommand(), nil, "", path)
	require.NoError(t, err)
	assert.Contains(t, out, "No issues found in 1 files")
}

func TestLintFailsOnError(t *testing.T) {
	path := writeQuery(t, "SELECT * FROM users WHERE (id = 1;\n")

	out, err := executeCommand(t, NewLintCommand(), nil, "", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lint issues found")
	assert.Contains(t, out, "Unbalanced parentheses")
}

func TestLintThreshold(t *testing.T) {
	// Missing semicolon is information severity: quiet under the
	// default warning threshold, fatal once the flag lowers the bar.
	path := writeQuery(t, "SELECT 1\n")

	out, err := executeCommand(t, NewLintCommand(), nil, "", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Missing semicolon at end of file")

	_, err = executeCommand(t, NewLintCommand(), nil, "", "--severity", "info", path)
	require.Error(t, err)

	_, err = executeCommand(t, NewLintCommand(), nil, "", "--severity", "loud", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown severity")
}

func TestLintRuleOverrideFlag(t *testing.T) {
	path := writeQuery(t, "select 1;\n")

	// Keyword casing is off by default.
	_, err := executeCommand(t, NewLintCommand(), nil, "", path)
	require.NoError(t, err)

	out, err := executeCommand(t, NewLintCommand(), nil, "", "--rule", "keywordCasing=on", path)
	require.Error(t, err)
	assert.Contains(t, out, "Keyword 'select' should be uppercase")

	_, err = executeCommand(t, NewLintCommand(), nil, "", "--rule", "nosuchrule=on", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nosuchrule")
}

func TestLintStdin(t *testing.T) {
	out, err := executeCommand(t, NewLintCommand(), nil, "select 1", "--rule", "keywordCasing=on", "-")
	require.Error(t, err)
	assert.Contains(t, out, stdinName)
}

func TestLintDisabledConfiguration(t *testing.T) {
	cfg := config.Default()
	cfg.Linting.Enabled = false
	path := writeQuery(t, "select (broken\n")

	out, err := executeCommand(t, NewLintCommand(), cfg, "", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Linting is disabled")
}

func TestLintJSONOutput(t *testing.T) {
	cfg := config.Default()
	cfg.Output = "json"
	path := writeQuery(t, "SELECT 1\n")

	out, err := executeCommand(t, NewLintCommand(), cfg, "", path)
	require.NoError(t, err)

	var doc output.LintOutput
	require.NoError(t, json.Unmarshal([]byte(out), &doc))

	assert.Equal(t, 1, doc.Summary.FilesAnalyzed)
	assert.Equal(t, 1, doc.Summary.TotalIssues)
	assert.Equal(t, 1, doc.Summary.Info)
	require.Len(t, doc.Files, 1)
	assert.Equal(t, path, doc.Files[0].Path)
	require.Len(t, doc.Files[0].Diagnostics, 1)

	d := doc.Files[0].Diagnostics[0]
	assert.Equal(t, "missing-semicolon", d.Code)
	assert.Equal(t, "information", d.Severity)
	// One-based positions in reports: after the "1" on line 1.
	assert.Equal(t, 1, d.Line)
	assert.Equal(t, 9, d.Column)
}

func TestLintMultipleFilesOrdered(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "b.sql")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.sql"), []byte("select 1\n"), 0o644))

	cfg := config.Default()
	cfg.Output = "json"

	out, err := executeCommand(t, NewLintCommand(), cfg, "", dir)
	require.NoError(t, err)

	var doc output.LintOutput
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Files, 2)
	assert.Equal(t, filepath.Join(dir, "a.sql"), doc.Files[0].Path)
	assert.Equal(t, filepath.Join(dir, "b.sql"), doc.Files[1].Path)
	assert.Len(t, doc.Files[0].Diagnostics, 1)
	assert.Empty(t, doc.Files[1].Diagnostics)
}

func TestLintNoFilesFound(t *testing.T) {
	dir := t.TempDir()

	out, err := executeCommand(t, NewLintCommand(), nil, "", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "No HQL files found")
}
