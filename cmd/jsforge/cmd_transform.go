package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsforge/jsforge/pkg/api"
)

var transformCmd = &cobra.Command{
	Use:   "transform <file>",
	Short: "erase types, lower class syntax and decorators, and downlevel to the configured target",
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

		transformed := api.Transform(parsed.Program, projectConfig.TransformOptions())
		out := api.Codegen(transformed.Program, api.CodegenOptions{})
		fmt.Print(string(out.JS))
		return nil
	},
}
