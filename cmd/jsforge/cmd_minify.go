package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsforge/jsforge/pkg/api"
)

var minifyCmd = &cobra.Command{
	Use:   "minify <file>",
	Short: "fold constants, eliminate dead code, and mangle local names",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		source, err := readSource(path)
		if err != nil {
			return err
		}

		parsed := api.Parse(path, source, parseOptionsFor(path))
		printDiagnostics(parsed.Diagnostics)
		if api.HasErrors(parsed.Diagnostics) {
			os.Exit(1)
		}

		sem := api.BuildSemantic(path, source, parsed.Program, api.BuildSemanticOptions{})
		printDiagnostics(sem.Diagnostics)

		opts := projectConfig.MinifyOptions()
		minified := api.Minify(parsed.Program, sem.Semantic, opts)
		out := api.Codegen(minified.Program, api.CodegenOptions{})
		fmt.Print(string(out.JS))
		return nil
	},
}
