package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"narratr/internal/diagfmt"
	"narratr/internal/driver"
	"narratr/internal/lexer"
)

func newTokenizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] file.ntr",
		Short: "Print the token stream of a narratr source",
		Args:  cobra.ExactArgs(1),
		RunE:  runTokenize,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format %q (expected pretty|json)", format)
	}

	res, lexErr := driver.Tokenize(args[0], lexer.Options{})
	if res == nil {
		return lexErr
	}
	out := cmd.OutOrStdout()
	if format == "json" {
		err = diagfmt.FormatTokensJSON(out, res.Tokens)
	} else {
		err = diagfmt.FormatTokensPretty(out, res.Tokens)
	}
	if err != nil {
		return err
	}
	if lexErr != nil {
		return reportOne(cmd, lexErr, res.File)
	}
	return nil
}
