package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jsforge/jsforge/internal/config"
	"github.com/jsforge/jsforge/pkg/api"
)

var (
	lintConfigPath string
	lintFix        bool
)

var lintCmd = &cobra.Command{
	Use:   "lint <file>",
	Short: "run every enabled rule against a file and report violations",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		source, err := readSource(path)
		if err != nil {
			return err
		}

		lintPath := lintConfigPath
		if lintPath == "" {
			lintPath = projectConfig.LintConfigPath
		}
		if lintPath == "" {
			lintPath = ".jsforgelintrc"
		}
		lintCfg, err := config.LoadLintConfig(lintPath)
		if err != nil {
			return fmt.Errorf("jsforge: %w", err)
		}

		parsed := api.Parse(path, source, parseOptionsFor(path))
		printDiagnostics(parsed.Diagnostics)
		if api.HasErrors(parsed.Diagnostics) {
			os.Exit(1)
		}

		sem := api.BuildSemantic(path, source, parsed.Program, api.BuildSemanticOptions{})
		printDiagnostics(sem.Diagnostics)

		settings := lintCfg.ToSettings([]string{filepath.Dir(path)})
		result := api.Lint(path, source, parsed.Program, sem.Semantic, settings)

		if lintFix {
			fixed, remaining := api.ApplyLintFixes(source, result.Msgs)
			if err := os.WriteFile(path, []byte(fixed), 0o644); err != nil {
				return fmt.Errorf("jsforge: write %s: %w", path, err)
			}
			printDiagnostics(api.RenderDiagnostics(path, fixed, remaining))
			return nil
		}

		printDiagnostics(result.Diagnostics)
		if api.HasErrors(result.Diagnostics) {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	lintCmd.Flags().StringVar(&lintConfigPath, "config", "", "path to the lint rule config (default: jsforge.yaml's lint_config, or .jsforgelintrc)")
	lintCmd.Flags().BoolVar(&lintFix, "fix", false, "apply auto-fixes and rewrite the file in place")
}
