package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsforge/jsforge/pkg/api"
)

var stripInternal bool

var buildTypesCmd = &cobra.Command{
	Use:   "build-types <file>",
	Short: "emit a .d.ts-equivalent declaration file without running type inference",
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

		result := api.IsolatedDeclarations(path, source, parsed.Program, api.IsolatedDeclarationsOptions{
			StripInternal: stripInternal,
		})
		printDiagnostics(result.Diagnostics)
		if api.HasErrors(result.Diagnostics) {
			os.Exit(1)
		}

		out := api.Codegen(result.Program, api.CodegenOptions{})
		fmt.Print(string(out.JS))
		return nil
	},
}

func init() {
	buildTypesCmd.Flags().BoolVar(&stripInternal, "strip-internal", false, "omit declarations annotated @internal")
}
