package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hqltools/hqlint/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// initFileName is the configuration file init writes.
const initFileName = ".hqlint.yaml"

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a default configuration file",
		Long: `Write a commented .hqlint.yaml with the default configuration.

The file goes into the given directory (default: the current one).
An existing file is never overwritten without --force.`,
		Example: `  # Create ./.hqlint.yaml
  hqlint init

  # Create the file in a project directory
  hqlint init queries/

  # Replace an existing file
  hqlint init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runInit(cmd, dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing configuration file")

	return cmd
}

func runInit(cmd *cobra.Command, dir string, force bool) error {
	r := NewCommandContext(cmd).Renderer

	if dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	path := filepath.Join(dir, initFileName)
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists. Use --force to overwrite", path)
	}

	content, err := defaultConfigYAML()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	r.StatusLine(path, "success", "")
	r.Println("")
	r.Success("Configuration written!")
	r.Println("")
	r.Println("Next steps:")
	r.Println("  1. Adjust linting.rules to taste ('hqlint rules' lists them)")
	r.Println("  2. Run 'hqlint lint' over your queries")
	r.Println("  3. Point your editor at 'hqlint lsp'")

	return nil
}

// fileConfig is the slice of the configuration that belongs in the
// project file. CLI knobs (output mode, log level, verbosity) stay
// out: they describe an invocation, not a project.
type fileConfig struct {
	Linting    config.LintingConfig    `yaml:"linting"`
	Formatting config.FormattingConfig `yaml:"formatting"`
}

// keyComments annotates the generated file, keyed by dotted path.
var keyComments = map[string]string{
	"linting":                        "Diagnostic engine settings.",
	"linting.severity":               "Failure threshold for 'hqlint lint': error, warning, information or hint.",
	"linting.maxFileSize":            "Inputs larger than this many bytes are skipped.",
	"linting.rules":                  "Per-rule toggles; 'hqlint rules' describes each one.",
	"formatting":                     "Formatter settings, shared by 'hqlint fmt' and the language server.",
	"formatting.keywordCase":         "upper, lower or preserve.",
	"formatting.linesBetweenQueries": "Blank lines between top-level statements.",
}

// defaultConfigYAML renders the default configuration with guiding
// comments, through a yaml.Node so the comments survive marshaling.
func defaultConfigYAML() ([]byte, error) {
	d := config.Default()

	var root yaml.Node
	if err := root.Encode(fileConfig{Linting: d.Linting, Formatting: d.Formatting}); err != nil {
		return nil, fmt.Errorf("encoding default config: %w", err)
	}

	root.HeadComment = "hqlint configuration.\nHQLINT_* environment variables and command-line flags override these values."
	for path, text := range keyComments {
		if key := findKey(&root, strings.Split(path, ".")...); key != nil {
			key.HeadComment = text
		}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&root); err != nil {
		return nil, fmt.Errorf("rendering default config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// findKey returns the key node at the dotted path below a mapping
// node, or nil. Mapping content alternates key and value nodes.
func findKey(node *yaml.Node, path ...string) *yaml.Node {
	if len(path) == 0 || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if key.Value != path[0] {
			continue
		}
		if len(path) == 1 {
			return key
		}
		return findKey(value, path[1:]...)
	}
	return nil
}
