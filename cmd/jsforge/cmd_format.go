package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsforge/jsforge/pkg/api"
)

var writeFormat bool

var formatCmd = &cobra.Command{
	Use:   "format <file>",
	Short: "print a file reformatted to canonical style",
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

		opts, err := projectConfig.FormatOptions()
		if err != nil {
			return fmt.Errorf("jsforge: %w", err)
		}
		out := api.Format(parsed.Program, opts)

		if writeFormat {
			return os.WriteFile(path, []byte(out.Code), 0o644)
		}
		fmt.Print(out.Code)
		return nil
	},
}

func init() {
	formatCmd.Flags().BoolVarP(&writeFormat, "write", "w", false, "rewrite the file in place instead of printing to stdout")
}
