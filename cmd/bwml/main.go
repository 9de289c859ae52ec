// Package main provides the bwml command-line tool.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/muesli/termenv"
)

const version = "v0.1.0-dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run dispatches a subcommand and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	out := termenv.NewOutput(stdout)

	if len(args) == 0 {
		usage(out)
		return 2
	}

	var err error
	switch args[0] {
	case "version":
		fmt.Fprintf(out, "bwml %s\n", version)
	case "demo":
		err = runDemo(out)
	case "fit":
		err = runFit(args[1:], out, stderr)
	case "predict":
		err = runPredict(args[1:], out, stderr)
	case "config":
		err = runConfig(args[1:], out, stderr)
	case "help", "-h", "--help":
		usage(out)
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n", args[0])
		usage(termenv.NewOutput(stderr))
		return 2
	}

	if err != nil {
		fmt.Fprintf(stderr, "bwml %s: %v\n", args[0], err)
		return 1
	}
	return 0
}

func usage(out *termenv.Output) {
	fmt.Fprintln(out, out.String("bwml - dense N-dimensional arrays for Go").Bold())
	fmt.Fprintf(out, "Version: %s\n\n", version)
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  version    Show version")
	fmt.Fprintln(out, "  demo       Multiply small matrices and print the results")
	fmt.Fprintln(out, "  fit        Train a linear regression model")
	fmt.Fprintln(out, "  predict    Run a saved model on input rows")
	fmt.Fprintln(out, "  config     Print the default training config")
}

// newLogger returns a text logger on w at Info, or Debug when verbose.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// heading renders a bold section title.
func heading(out *termenv.Output, title string) string {
	return out.String(title).Bold().Foreground(out.Color("12")).String()
}
