package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/muesli/termenv"

	"github.com/bwmllib/bwml/internal/config"
	"github.com/bwmllib/bwml/internal/linreg"
	"github.com/bwmllib/bwml/internal/serialization"
)

func runFit(args []string, out *termenv.Output, stderr io.Writer) error {
	fs := flag.NewFlagSet("fit", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "Training config file (.toml, .yaml); defaults to synthetic data")
	lr := fs.Float64("lr", 0, "Learning rate (overrides config)")
	iters := fs.Int("iters", 0, "Maximum iterations (overrides config)")
	tol := fs.Float64("tol", 0, "Convergence tolerance (overrides config)")
	output := fs.String("o", "", "Write the fitted model to this SafeTensors file")
	verbose := fs.Bool("v", false, "Verbose logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return err
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "lr":
			cfg.LearningRate = *lr
		case "iters":
			cfg.Iterations = *iters
		case "tol":
			cfg.Tolerance = *tol
		}
	})

	X, y, err := cfg.Dataset()
	if err != nil {
		return err
	}

	logger := newLogger(stderr, *verbose)
	model := linreg.New(linreg.Config{
		LearningRate: cfg.LearningRate,
		Tolerance:    cfg.Tolerance,
		Iterations:   cfg.Iterations,
		LogEvery:     cfg.LogEvery,
		Logger:       logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := model.Fit(ctx, X, y)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, heading(out, "Training"))
	fmt.Fprintf(out, "samples:    %d\n", X.Shape()[0])
	fmt.Fprintf(out, "iterations: %d\n", result.Iterations)
	fmt.Fprintf(out, "converged:  %t\n", result.Converged)
	if n := len(result.Costs); n > 0 {
		fmt.Fprintf(out, "cost:       %.6g -> %.6g\n", result.Costs[0], result.Costs[n-1])
	}

	fmt.Fprintln(out, heading(out, "Parameters"))
	fmt.Fprintf(out, "weights:    %v\n", model.Weights().Data())
	fmt.Fprintf(out, "bias:       %.6g\n", model.Bias())

	if *output == "" {
		return nil
	}
	state, err := model.StateDict()
	if err != nil {
		return err
	}
	metadata := map[string]string{
		"model":      "linreg",
		"version":    version,
		"iterations": strconv.Itoa(result.Iterations),
		"converged":  strconv.FormatBool(result.Converged),
	}
	if err := serialization.SaveFile(*output, state, metadata); err != nil {
		return err
	}
	logger.Info("model saved", "path", *output)
	return nil
}
