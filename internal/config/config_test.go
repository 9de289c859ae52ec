package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bwmllib/bwml/internal/tensor"
)

const tomlConfig = `
learning_rate = 0.05
iterations = 200

[data]
features = [[1.0, 0.0], [0.0, 1.0], [1.0, 1.0]]
targets = [1.0, 2.0, 3.0]
`

const yamlConfig = `
learning_rate: 0.2
tolerance: 0.0001
synthetic:
  samples: 10
  weights: [3.0, -1.0]
  bias: 0.5
  noise: 0
  seed: 7
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault_IsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestLoad_TOML(t *testing.T) {
	cfg, err := Load(writeFile(t, "train.toml", tomlConfig))
	require.NoError(t, err)

	assert.Equal(t, 0.05, cfg.LearningRate)
	assert.Equal(t, 200, cfg.Iterations)
	assert.Equal(t, Default().Tolerance, cfg.Tolerance)
	require.NotNil(t, cfg.Data)
	assert.Equal(t, [][]float64{{1, 0}, {0, 1}, {1, 1}}, cfg.Data.Features)
	assert.Equal(t, []float64{1, 2, 3}, cfg.Data.Targets)

	X, y, err := cfg.Dataset()
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{3, 2}, X.Shape())
	assert.Equal(t, []float64{1, 0, 0, 1, 1, 1}, X.Data())
	assert.Equal(t, tensor.Shape{3, 1}, y.Shape())
}

func TestLoad_YAML(t *testing.T) {
	for _, name := range []string{"train.yaml", "TRAIN.YML"} {
		cfg, err := Load(writeFile(t, name, yamlConfig))
		require.NoError(t, err, name)

		assert.Equal(t, 0.2, cfg.LearningRate)
		assert.Equal(t, 1e-4, cfg.Tolerance)
		assert.Equal(t, Default().Iterations, cfg.Iterations)
		assert.Nil(t, cfg.Data)
		require.NotNil(t, cfg.Synthetic)
		assert.Equal(t, 10, cfg.Synthetic.Samples)
		assert.Equal(t, []float64{3, -1}, cfg.Synthetic.Weights)
	}
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(writeFile(t, "train.json", "{}"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeFile(t, "bad.toml", "learning_rate = "))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "unknown.toml", "learning_rat = 0.1\n"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "unknown.yaml", "learning_rat: 0.1\n"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "invalid.yaml", "iterations: 0\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestDecode_EmptyYAMLKeepsDefaults(t *testing.T) {
	cfg, err := Decode(strings.NewReader(""), YAML)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Training)
	}{
		{"zero learning rate", func(c *Training) { c.LearningRate = 0 }},
		{"negative tolerance", func(c *Training) { c.Tolerance = -1 }},
		{"zero iterations", func(c *Training) { c.Iterations = 0 }},
		{"no data source", func(c *Training) { c.Synthetic = nil }},
		{"no samples", func(c *Training) { c.Synthetic.Samples = 0 }},
		{"no weights", func(c *Training) { c.Synthetic.Weights = nil }},
		{"negative noise", func(c *Training) { c.Synthetic.Noise = -0.1 }},
		{"empty features", func(c *Training) { c.Data = &Data{} }},
		{"empty rows", func(c *Training) { c.Data = &Data{Features: [][]float64{{}}, Targets: []float64{1}} }},
		{"ragged rows", func(c *Training) {
			c.Data = &Data{Features: [][]float64{{1, 2}, {3}}, Targets: []float64{1, 2}}
		}},
		{"target count", func(c *Training) {
			c.Data = &Data{Features: [][]float64{{1}, {2}}, Targets: []float64{1}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestEncodeDecode(t *testing.T) {
	for _, format := range []Format{TOML, YAML} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, format, Default()))

			cfg, err := Decode(&buf, format)
			require.NoError(t, err)
			assert.Equal(t, Default(), cfg)
		})
	}

	assert.ErrorIs(t, Encode(&bytes.Buffer{}, "ini", Default()), ErrUnsupportedFormat)
	_, err := Decode(strings.NewReader(""), "ini")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestSynthetic_Deterministic(t *testing.T) {
	cfg := Default()
	cfg.Synthetic = &Synthetic{Samples: 20, Weights: []float64{1.5, -2}, Bias: 0.25, Seed: 42}

	X1, y1, err := cfg.Dataset()
	require.NoError(t, err)
	X2, y2, err := cfg.Dataset()
	require.NoError(t, err)

	assert.True(t, X1.Equal(X2))
	assert.True(t, y1.Equal(y2))
	assert.Equal(t, tensor.Shape{20, 2}, X1.Shape())

	// Without noise every target lies exactly on the plane.
	for i := range 20 {
		a, _ := X1.At(i, 0)
		b, _ := X1.At(i, 1)
		want := 0.25 + 1.5*a + -2*b
		got, _ := y1.At(i, 0)
		assert.InDelta(t, want, got, 1e-12)
		assert.GreaterOrEqual(t, a, 0.0)
		assert.Less(t, a, 1.0)
	}

	cfg.Synthetic.Seed = 43
	X3, _, err := cfg.Dataset()
	require.NoError(t, err)
	assert.False(t, X1.Equal(X3))
}
