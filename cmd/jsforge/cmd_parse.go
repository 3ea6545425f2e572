package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsforge/jsforge/pkg/api"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "parse a file and report any syntax diagnostics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		source, err := readSource(path)
		if err != nil {
			return err
		}

		result := api.Parse(path, source, parseOptionsFor(path))
		printDiagnostics(result.Diagnostics)
		if api.HasErrors(result.Diagnostics) {
			os.Exit(1)
		}
		fmt.Printf("parsed %s: %d top-level statements, %d module record entries\n",
			path, len(result.Program.Body), len(result.ModuleRecord))
		return nil
	},
}
