package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(args ...string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRun_Version(t *testing.T) {
	code, out, _ := execute("version")
	assert.Equal(t, 0, code)
	assert.Equal(t, "bwml "+version+"\n", out)
}

func TestRun_Usage(t *testing.T) {
	code, out, _ := execute()
	assert.Equal(t, 2, code)
	assert.Contains(t, out, "Commands:")

	code, _, errOut := execute("train")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, `unknown command "train"`)
}

func TestRun_Demo(t *testing.T) {
	code, out, _ := execute("demo")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "NDArray(1, 2, 3) [0 0 0 0 0 0]")
	assert.Contains(t, out, "NDArray(2, 2) [1 2 3 4]")
	assert.Contains(t, out, "NDArray(2, 3) [9 12 15 19 26 33]")
	assert.Contains(t, out, "NDArray(2, 2, 2) [0 1 2 3 8 10 12 14]")
	assert.Contains(t, out, "NDArray(2, 2, 2) [0 2 1 3 4 6 5 7]")
}

func TestRun_FitAndPredict(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "train.toml")
	modelPath := filepath.Join(dir, "model.safetensors")
	require.NoError(t, os.WriteFile(configPath, []byte(`
learning_rate = 0.5
tolerance = 1e-12
iterations = 10000

[data]
features = [[0.0], [0.25], [0.5], [0.75], [1.0]]
targets = [1.0, 1.5, 2.0, 2.5, 3.0]
`), 0o600))

	code, out, errOut := execute("fit", "-config", configPath, "-o", modelPath)
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "converged:  true")
	assert.Contains(t, errOut, "model saved")
	assert.FileExists(t, modelPath)

	code, out, errOut = execute("predict", "-model", modelPath, "-x", "2; 4")
	require.Equal(t, 0, code, errOut)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	for i, want := range []float64{5, 9} {
		got, err := strconv.ParseFloat(lines[i+1], 64)
		require.NoError(t, err)
		assert.InDelta(t, want, got, 1e-3)
	}
}

func TestRun_FitFlagOverrides(t *testing.T) {
	code, out, errOut := execute("fit", "-iters", "3", "-lr", "0.2")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "iterations: 3")
	assert.Contains(t, out, "converged:  false")
}

func TestRun_FitZeroTolerance(t *testing.T) {
	code, out, errOut := execute("fit", "-tol", "0", "-iters", "50")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "iterations: 50")
	assert.Contains(t, out, "converged:  false")
}

func TestRun_Errors(t *testing.T) {
	code, _, errOut := execute("fit", "-config", "train.json")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "unsupported config format")

	code, _, errOut = execute("predict", "-x", "1")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "-model and -x are required")

	code, _, _ = execute("fit", "-nope")
	assert.Equal(t, 1, code)
}

func TestRun_Config(t *testing.T) {
	code, out, _ := execute("config")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "learning_rate = 0.1")

	code, out, _ = execute("config", "-format", "yaml")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "learning_rate: 0.1")
}

func TestParseMatrix(t *testing.T) {
	m, err := parseMatrix("1, 2; 3,4 ;5,6")
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2}, []int(m.Shape()))
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, m.Data())

	_, err = parseMatrix("1,2;3")
	assert.Error(t, err)
	_, err = parseMatrix("1,x")
	assert.Error(t, err)
}
