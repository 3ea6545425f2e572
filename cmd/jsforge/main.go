// Command jsforge is a cobra-based CLI over pkg/api: every subcommand
// below is a thin adapter that reads files from disk, builds the
// right Options struct, calls exactly one façade function, and prints
// either the artifact or the diagnostics it produced. None of the
// actual compiler logic lives in this package.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jsforge/jsforge/internal/config"
)

var (
	verbose    bool
	configPath string

	projectConfig *config.ProjectConfig
	opLog         *zap.SugaredLogger
)

var rootCmd = &cobra.Command{
	Use:   "jsforge",
	Short: "jsforge is a JavaScript/TypeScript parser, linter, formatter, and minifier",
	Long: `jsforge parses, analyzes, lints, formats, transforms, and minifies
JavaScript and TypeScript, the way a single cohesive toolchain should —
one AST, one set of diagnostics, shared across every subcommand below.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		opLog, err = config.NewOperationalLogger(verbose)
		if err != nil {
			return fmt.Errorf("jsforge: initialize logger: %w", err)
		}

		path := configPath
		if path == "" {
			path = "jsforge.yaml"
		}
		projectConfig, err = config.LoadProjectConfig(path)
		if err != nil {
			return fmt.Errorf("jsforge: load config: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if opLog != nil {
			_ = opLog.Sync()
		}
	},
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print operational trace output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to jsforge.yaml (default: ./jsforge.yaml)")

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(astCmd)
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(formatCmd)
	rootCmd.AddCommand(minifyCmd)
	rootCmd.AddCommand(buildTypesCmd)
	rootCmd.AddCommand(transformCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
