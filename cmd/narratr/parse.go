package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"narratr/internal/diagfmt"
	"narratr/internal/driver"
	"narratr/internal/parser"
	"narratr/internal/source"
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] file.ntr",
		Short: "Parse a narratr source and print its syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE:  runParse,
	}
	cmd.Flags().String("format", "pretty", "tree format (pretty|json)")
	cmd.Flags().Bool("symtab", false, "print the symbol table instead of the tree")
	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format %q (expected pretty|json)", format)
	}
	showSymtab, err := cmd.Flags().GetBool("symtab")
	if err != nil {
		return fmt.Errorf("failed to get symtab flag: %w", err)
	}

	res, err := driver.Parse(cmd.Context(), args[0], parser.Options{})
	if err != nil {
		var file *source.File
		if res != nil {
			file = res.File
		}
		return reportOne(cmd, err, file)
	}

	out := cmd.OutOrStdout()
	switch {
	case showSymtab:
		return diagfmt.FormatSymtab(out, res.Symbols.View().Entries())
	case format == "json":
		return diagfmt.FormatTreeJSON(out, res.Program)
	default:
		return diagfmt.FormatTree(out, res.Program)
	}
}

// reportOne prints err against file and marks it reported.
func reportOne(cmd *cobra.Command, err error, file *source.File) error {
	stderr := cmd.ErrOrStderr()
	useColor, cerr := colorEnabled(cmd, stderr)
	if cerr != nil {
		return cerr
	}
	diagfmt.Error(stderr, err, file, diagfmt.PrettyOpts{Color: useColor, Context: 1})
	return errReported
}
