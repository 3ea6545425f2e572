package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsforge/jsforge/pkg/api"
)

var astUTF16 bool

var astCmd = &cobra.Command{
	Use:   "ast <file>",
	Short: "print a file's parsed AST as ESTree-compatible JSON",
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

		out, err := api.SerializeAST(parsed.Program, source, api.ESTreeOptions{UTF16Offsets: astUTF16})
		if err != nil {
			return fmt.Errorf("jsforge: serialize ast: %w", err)
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	astCmd.Flags().BoolVar(&astUTF16, "utf16-offsets", false, "report spans as UTF-16 code unit offsets instead of UTF-8 bytes")
}
