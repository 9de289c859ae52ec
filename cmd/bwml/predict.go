package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/muesli/termenv"

	"github.com/bwmllib/bwml/internal/config"
	"github.com/bwmllib/bwml/internal/linreg"
	"github.com/bwmllib/bwml/internal/serialization"
	"github.com/bwmllib/bwml/internal/tensor"
)

func runPredict(args []string, out *termenv.Output, stderr io.Writer) error {
	fs := flag.NewFlagSet("predict", flag.ContinueOnError)
	fs.SetOutput(stderr)
	modelPath := fs.String("model", "", "SafeTensors file written by 'bwml fit -o'")
	input := fs.String("x", "", `Input rows, e.g. "1,2;3,4"`)
	verbose := fs.Bool("v", false, "Verbose logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *modelPath == "" || *input == "" {
		return errors.New("both -model and -x are required")
	}

	X, err := parseMatrix(*input)
	if err != nil {
		return err
	}

	state, metadata, err := serialization.LoadFile[float64](*modelPath)
	if err != nil {
		return err
	}
	newLogger(stderr, *verbose).Debug("model loaded", "path", *modelPath, "metadata", metadata)

	model := linreg.New(linreg.Config{})
	if err := model.LoadStateDict(state); err != nil {
		return err
	}
	pred, err := model.Predict(X)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, heading(out, "Predictions"))
	for _, v := range pred.Data() {
		fmt.Fprintf(out, "%.6g\n", v)
	}
	return nil
}

func runConfig(args []string, out *termenv.Output, stderr io.Writer) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(stderr)
	format := fs.String("format", "toml", "Output format: toml or yaml")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return config.Encode(out, config.Format(*format), config.Default())
}

// parseMatrix parses rows separated by ';' of comma-separated values.
func parseMatrix(s string) (*tensor.NDArray[float64], error) {
	var values []float64
	cols := -1
	rows := strings.Split(s, ";")
	for i, row := range rows {
		fields := strings.Split(row, ",")
		if cols >= 0 && len(fields) != cols {
			return nil, fmt.Errorf("row %d has %d values, expected %d", i, len(fields), cols)
		}
		cols = len(fields)
		for _, field := range fields {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i, err)
			}
			values = append(values, v)
		}
	}
	return tensor.FromSlice(tensor.Shape{len(rows), cols}, values)
}
