// Package config loads training configuration for the bwml command from TOML
// or YAML files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Common errors.
var (
	ErrUnsupportedFormat = errors.New("unsupported config format")
	ErrInvalidConfig     = errors.New("invalid config")
)

// Format is a configuration file format.
type Format string

// Supported formats.
const (
	TOML Format = "toml"
	YAML Format = "yaml"
)

// Training configures a regression run.
//
// Data, when present, takes precedence over Synthetic.
type Training struct {
	LearningRate float64 `toml:"learning_rate" yaml:"learning_rate"`
	Tolerance    float64 `toml:"tolerance" yaml:"tolerance"`
	Iterations   int     `toml:"iterations" yaml:"iterations"`
	LogEvery     int     `toml:"log_every" yaml:"log_every"`

	Data      *Data      `toml:"data,omitempty" yaml:"data,omitempty"`
	Synthetic *Synthetic `toml:"synthetic,omitempty" yaml:"synthetic,omitempty"`
}

// Data is an explicit training set. Features holds one row per sample.
type Data struct {
	Features [][]float64 `toml:"features" yaml:"features"`
	Targets  []float64   `toml:"targets" yaml:"targets"`
}

// Synthetic describes generated samples y = x·weights + bias + noise with
// features drawn uniformly from [0, 1).
type Synthetic struct {
	Samples int       `toml:"samples" yaml:"samples"`
	Weights []float64 `toml:"weights" yaml:"weights"`
	Bias    float64   `toml:"bias" yaml:"bias"`
	Noise   float64   `toml:"noise" yaml:"noise"` // Standard deviation of Gaussian noise
	Seed    uint64    `toml:"seed" yaml:"seed"`
}

// Default returns the configuration used when no file is given.
func Default() Training {
	return Training{
		LearningRate: 0.1,
		Tolerance:    1e-9,
		Iterations:   5000,
		LogEvery:     500,
		Synthetic: &Synthetic{
			Samples: 100,
			Weights: []float64{2},
			Bias:    1,
			Noise:   0.05,
			Seed:    1,
		},
	}
}

// FormatFromPath detects the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	default:
		return "", fmt.Errorf("%w: %q (expected .toml, .yaml or .yml)", ErrUnsupportedFormat, ext)
	}
}

// Load reads and validates a configuration file. Fields absent from the
// file keep their Default values.
func Load(path string) (Training, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return Training{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Training{}, fmt.Errorf("failed to read config: %w", err)
	}

	cfg, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return Training{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses a configuration over Default and validates it.
// Unknown keys are rejected.
func Decode(r io.Reader, format Format) (Training, error) {
	cfg := Default()

	switch format {
	case TOML:
		dec := toml.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return Training{}, fmt.Errorf("failed to parse TOML: %w", err)
		}
	case YAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Training{}, fmt.Errorf("failed to parse YAML: %w", err)
		}
	default:
		return Training{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	if err := cfg.Validate(); err != nil {
		return Training{}, err
	}
	return cfg, nil
}

// Encode writes cfg in the given format.
func Encode(w io.Writer, format Format, cfg Training) error {
	switch format {
	case TOML:
		return toml.NewEncoder(w).Encode(cfg)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Validate checks hyperparameters and the training set.
func (t Training) Validate() error {
	if t.LearningRate <= 0 {
		return fmt.Errorf("%w: learning_rate must be positive, got %g", ErrInvalidConfig, t.LearningRate)
	}
	if t.Tolerance < 0 {
		return fmt.Errorf("%w: tolerance must not be negative, got %g", ErrInvalidConfig, t.Tolerance)
	}
	if t.Iterations <= 0 {
		return fmt.Errorf("%w: iterations must be positive, got %d", ErrInvalidConfig, t.Iterations)
	}

	switch {
	case t.Data != nil:
		return t.Data.validate()
	case t.Synthetic != nil:
		return t.Synthetic.validate()
	default:
		return fmt.Errorf("%w: either data or synthetic must be set", ErrInvalidConfig)
	}
}

func (d *Data) validate() error {
	if len(d.Features) == 0 {
		return fmt.Errorf("%w: data.features is empty", ErrInvalidConfig)
	}
	width := len(d.Features[0])
	if width == 0 {
		return fmt.Errorf("%w: data.features rows are empty", ErrInvalidConfig)
	}
	for i, row := range d.Features {
		if len(row) != width {
			return fmt.Errorf("%w: data.features row %d has %d values, expected %d",
				ErrInvalidConfig, i, len(row), width)
		}
	}
	if len(d.Targets) != len(d.Features) {
		return fmt.Errorf("%w: %d targets for %d samples", ErrInvalidConfig, len(d.Targets), len(d.Features))
	}
	return nil
}

func (s *Synthetic) validate() error {
	if s.Samples <= 0 {
		return fmt.Errorf("%w: synthetic.samples must be positive, got %d", ErrInvalidConfig, s.Samples)
	}
	if len(s.Weights) == 0 {
		return fmt.Errorf("%w: synthetic.weights is empty", ErrInvalidConfig)
	}
	if s.Noise < 0 {
		return fmt.Errorf("%w: synthetic.noise must not be negative, got %g", ErrInvalidConfig, s.Noise)
	}
	return nil
}
