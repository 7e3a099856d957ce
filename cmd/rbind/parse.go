package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/qza7849467chensh5/reflective-bind/internal/ast"
	"github.com/qza7849467chensh5/reflective-bind/internal/diagfmt"
	"github.com/qza7849467chensh5/reflective-bind/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.js",
	Short: "Parse a source file and print its syntax tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "tree", "output format (tree|shape)")
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	mode, err := pathMode(cmd)
	if err != nil {
		return err
	}

	result, err := driver.Parse(args[0], maxDiagnostics)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	if result.Bag.Len() > 0 {
		useColor, colorErr := colorEnabled(cmd, os.Stderr)
		if colorErr != nil {
			return colorErr
		}
		result.Bag.Sort()
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color:    useColor,
			Context:  2,
			PathMode: mode,
		})
	}

	switch format {
	case "tree":
		err = ast.Dump(cmd.OutOrStdout(), result.Tree, result.Tree.Root)
	case "shape":
		_, err = fmt.Fprintln(cmd.OutOrStdout(), ast.Shape(result.Tree, result.Tree.Root))
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return fmt.Errorf("%s has syntax errors", args[0])
	}
	return nil
}
