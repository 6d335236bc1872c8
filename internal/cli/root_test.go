package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hqltools/hqlint/internal/cli/output"
	"github.com/hqltools/hqlint/internal/config"
)

// executeRoot runs the full command tree the way main does, from a
// directory with no config file unless the test plants one.
func executeRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Cleanup(config.Reset)

	cmd := NewRootCmd("1.2.3")
	out := new(strings.Builder)
	errOut := new(strings.Builder)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestNewRootCmd(t *testing.T) {
	cmd := NewRootCmd("1.2.3")

	assert.Equal(t, "hqlint", cmd.Use)
	assert.Equal(t, "1.2.3", cmd.Version)

	for _, flag := range []string{"config", "verbose", "output", "log-level"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "persistent flag %q should exist", flag)
	}

	names := make([]string, 0, len(cmd.Commands()))
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	for _, want := range []string{"lint", "fmt", "rules", "lsp", "init", "version", "completion"} {
		assert.Contains(t, names, want)
	}
}

func TestRootVersion(t *testing.T) {
	t.Chdir(t.TempDir())

	out, _, err := executeRoot(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "hqlint v1.2.3")

	out, _, err = executeRoot(t, "--version")
	require.NoError(t, err)
	assert.Equal(t, "hqlint 1.2.3\n", out)
}

func TestRootLintJSON(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "query.hql")
	require.NoError(t, os.WriteFile(path, []byte("SELECT 1\n"), 0o644))

	out, _, err := executeRoot(t, "lint", "--output", "json", path)
	require.NoError(t, err)

	var doc output.LintOutput
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, 1, doc.Summary.FilesAnalyzed)
	assert.Equal(t, 1, doc.Summary.Info)
	require.Len(t, doc.Files, 1)
	require.Len(t, doc.Files[0].Diagnostics, 1)
	assert.Equal(t, "missing-semicolon", doc.Files[0].Diagnostics[0].Code)
}

func TestRootLintFailure(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "broken.hql")
	require.NoError(t, os.WriteFile(path, []byte("SELECT (1\n"), 0o644))

	out, _, err := executeRoot(t, "lint", path)
	require.Error(t, err)
	assert.Contains(t, out, "Unbalanced parentheses")
}

func TestRootConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	cfgYAML := "linting:\n  rules:\n    keywordCasing: true\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hqlint.yaml"), []byte(cfgYAML), 0o644))
	path := filepath.Join(dir, "query.hql")
	require.NoError(t, os.WriteFile(path, []byte("select 1;\n"), 0o644))

	out, _, err := executeRoot(t, "lint", path)
	require.Error(t, err, "casing warning from the config file should fail the run")
	assert.Contains(t, out, "Keyword 'select' should be uppercase")

	// --verbose reports which file was picked up, on stderr.
	_, errOut, err := executeRoot(t, "lint", "--verbose", path)
	require.Error(t, err)
	assert.Contains(t, errOut, "Using config file:")
	assert.Contains(t, errOut, ".hqlint.yaml")
}

func TestRootRejectsInvalidOutput(t *testing.T) {
	t.Chdir(t.TempDir())

	_, _, err := executeRoot(t, "rules", "--output", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output must be text, json or markdown")
}

func TestRootHelpNeedsNoConfig(t *testing.T) {
	// An unreadable explicit config path must not break help.
	t.Chdir(t.TempDir())

	out, _, err := executeRoot(t, "help", "--config", "nope.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "hqlint checks Hive SQL")
}

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.Config
		debugMsg bool
	}{
		{name: "default info", cfg: config.Config{}, debugMsg: false},
		{name: "log level debug", cfg: config.Config{LogLevel: "debug"}, debugMsg: true},
		{name: "verbose forces debug", cfg: config.Config{Verbose: true, LogLevel: "warn"}, debugMsg: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := new(strings.Builder)
			logger := newLogger(buf, &tt.cfg)
			logger.Debug("probe")
			if tt.debugMsg {
				assert.Contains(t, buf.String(), "probe")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}
