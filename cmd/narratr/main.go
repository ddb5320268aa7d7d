// Command narratr compiles narratr interactive fiction sources into Go programs.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"narratr/internal/diagfmt"
	"narratr/internal/version"
)

// errReported means the failure was already printed.
var errReported = errors.New("errors reported")

// newRootCmd builds the command tree. The caller must run release: cobra
// skips post-run hooks when a command fails.
func newRootCmd() (*cobra.Command, func()) {
	var cleanups []func()
	root := &cobra.Command{
		Use:           "narratr",
		Short:         "narratr interactive fiction compiler",
		Long:          `narratr compiles scene-based interactive fiction into standalone Go programs.`,
		Version:       version.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			useColor, err := colorEnabled(cmd, os.Stdout)
			if err != nil {
				return err
			}
			color.NoColor = !useColor

			stopProf, err := setupProfiling(cmd)
			if err != nil {
				return err
			}
			cleanups = append(cleanups, stopProf)
			stopTrace, err := setupTracing(cmd)
			if err != nil {
				return err
			}
			cleanups = append(cleanups, stopTrace)
			return nil
		},
	}
	release := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
		cleanups = nil
	}

	root.AddCommand(newBuildCmd())
	root.AddCommand(newTokenizeCmd())
	root.AddCommand(newParseCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newVersionCmd())

	pf := root.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.BoolP("quiet", "q", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.String("trace", "", "write a compiler trace to file ('-' for stderr, .ndjson for JSON lines)")
	pf.String("trace-level", "", "trace level (off|error|phase|detail|debug); defaults to phase when --trace is set")
	pf.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	pf.String("cpuprofile", "", "write a CPU profile to file")
	pf.String("memprofile", "", "write a heap profile to file")
	pf.String("runtime-trace", "", "write a Go runtime trace to file")
	return root, release
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root, release := newRootCmd()
	defer release()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			diagfmt.Error(stderr, err, nil, diagfmt.PrettyOpts{Color: !color.NoColor})
		}
		return 1
	}
	return 0
}

func quiet(cmd *cobra.Command) bool {
	q, err := cmd.Root().PersistentFlags().GetBool("quiet")
	return err == nil && q
}

func timingsEnabled(cmd *cobra.Command) bool {
	t, err := cmd.Root().PersistentFlags().GetBool("timings")
	return err == nil && t
}

func printf(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		panic(err)
	}
}
