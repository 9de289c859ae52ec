package linreg

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/bwmllib/bwml/internal/tensor"
)

// DefaultTolerance is the Tolerance set by DefaultConfig.
const DefaultTolerance = 1e-6

// Config holds training hyperparameters.
//
// Tolerance is used as given: zero disables early stopping and runs all
// Iterations. Start from DefaultConfig to get DefaultTolerance.
type Config struct {
	LearningRate float64      // Step size (default: 0.01)
	Tolerance    float64      // Stop when the cost changes by less than this (0: never)
	Iterations   int          // Maximum number of iterations (default: 1000)
	LogEvery     int          // Log progress every N iterations (default: 100, negative disables)
	Logger       *slog.Logger // Progress logger (default: slog.Default())
}

// Result summarizes a training run.
type Result struct {
	Iterations int       // Iterations actually run
	Costs      []float64 // Cost before each update
	Converged  bool      // True when training stopped on the tolerance
}

// Model is a linear regression model.
type Model struct {
	cfg     Config
	weights *tensor.NDArray[float64] // (features, 1)
	bias    float64

	dw *tensor.NDArray[float64]
	db float64
}

// DefaultConfig returns the default hyperparameters.
func DefaultConfig() Config {
	return Config{
		LearningRate: 0.01,
		Tolerance:    DefaultTolerance,
		Iterations:   1000,
		LogEvery:     100,
	}
}

// New creates an unfitted model. Zero LearningRate, Iterations and LogEvery
// take their DefaultConfig values; Tolerance is kept as given.
func New(cfg Config) *Model {
	if cfg.LearningRate == 0 {
		cfg.LearningRate = 0.01
	}
	if cfg.Iterations == 0 {
		cfg.Iterations = 1000
	}
	if cfg.LogEvery == 0 {
		cfg.LogEvery = 100
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Model{cfg: cfg}
}

// Fit trains the model on X (samples × features) and y (samples × 1).
// Parameters are reset to zero before training. The context is checked once
// per iteration; on cancellation Fit returns the partial result and ctx.Err().
func (m *Model) Fit(ctx context.Context, X, y *tensor.NDArray[float64]) (Result, error) {
	if m.cfg.LearningRate <= 0 || m.cfg.Iterations < 0 || m.cfg.Tolerance < 0 {
		return Result{}, fmt.Errorf("%w: learning rate %g, tolerance %g, iterations %d",
			ErrInvalidInput, m.cfg.LearningRate, m.cfg.Tolerance, m.cfg.Iterations)
	}
	if err := checkTrainingData(X, y); err != nil {
		return Result{}, err
	}

	m.weights = tensor.Zeros[float64](X.Shape()[1], 1)
	m.bias = 0

	log := m.cfg.Logger
	log.Debug("fit started",
		"X", X, "y", y,
		"learning_rate", m.cfg.LearningRate, "iterations", m.cfg.Iterations)

	result := Result{Costs: make([]float64, 0, min(m.cfg.Iterations, 4096))}
	for i := 0; i < m.cfg.Iterations; i++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		pred, err := m.forward(X)
		if err != nil {
			return result, err
		}
		cost, err := Cost(pred, y)
		if err != nil {
			return result, err
		}
		if err := m.backward(X, y, pred); err != nil {
			return result, err
		}
		if err := m.step(); err != nil {
			return result, err
		}

		result.Costs = append(result.Costs, cost)
		result.Iterations = i + 1

		if m.cfg.LogEvery > 0 && i%m.cfg.LogEvery == 0 {
			log.Info("training", "iteration", i, "cost", cost)
		}

		if i > 0 && math.Abs(cost-result.Costs[i-1]) < m.cfg.Tolerance {
			result.Converged = true
			log.Info("converged", "iterations", result.Iterations, "cost", cost)
			break
		}
	}

	return result, nil
}

// Predict returns X·w + b as an (samples, 1) array.
func (m *Model) Predict(X *tensor.NDArray[float64]) (*tensor.NDArray[float64], error) {
	if m.weights == nil {
		return nil, ErrNotFitted
	}
	features := m.weights.Shape()[0]
	if X == nil || X.Rank() != 2 || X.Shape()[1] != features {
		return nil, fmt.Errorf("%w: expected features matrix (m, %d), got %v",
			ErrInvalidInput, features, shapeOf(X))
	}
	return m.forward(X)
}

// Cost returns the mean squared error Σ(pred − y)² / m.
func Cost(pred, y *tensor.NDArray[float64]) (float64, error) {
	diff, err := pred.Sub(y)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	n := diff.NumElements()
	if n == 0 {
		return 0, nil
	}
	return diff.Square().Sum() / float64(n), nil
}

// Weights returns a copy of the learned (features, 1) weight column.
func (m *Model) Weights() *tensor.NDArray[float64] {
	if m.weights == nil {
		return nil
	}
	return m.weights.Clone()
}

// Bias returns the learned bias.
func (m *Model) Bias() float64 {
	return m.bias
}

// Gradients returns the gradients from the last training iteration.
func (m *Model) Gradients() (dw *tensor.NDArray[float64], db float64) {
	if m.dw == nil {
		return nil, 0
	}
	return m.dw.Clone(), m.db
}

// forward computes X·w + b. The bias is added through an (m, 1) array
// filled with b.
func (m *Model) forward(X *tensor.NDArray[float64]) (*tensor.NDArray[float64], error) {
	xw, err := X.BatchedMatMul(m.weights)
	if err != nil {
		return nil, fmt.Errorf("forward: %w", err)
	}
	return xw.Add(tensor.Full(m.bias, xw.Shape()...))
}

// backward stores dw = Xᵀ·(pred − y) / m and db = Σ(pred − y) / m.
func (m *Model) backward(X, y, pred *tensor.NDArray[float64]) error {
	diff, err := pred.Sub(y)
	if err != nil {
		return fmt.Errorf("backward: %w", err)
	}
	xt, err := X.Transpose(0, 1)
	if err != nil {
		return fmt.Errorf("backward: %w", err)
	}
	grad, err := xt.BatchedMatMul(diff)
	if err != nil {
		return fmt.Errorf("backward: %w", err)
	}

	samples := float64(diff.NumElements())
	m.dw = grad.DivScalar(samples)
	m.db = diff.Sum() / samples
	return nil
}

// step applies w -= lr·dw and b -= lr·db.
func (m *Model) step() error {
	w, err := m.weights.Sub(m.dw.Scale(m.cfg.LearningRate))
	if err != nil {
		return fmt.Errorf("step: %w", err)
	}
	m.weights = w
	m.bias -= m.cfg.LearningRate * m.db
	return nil
}

func checkTrainingData(X, y *tensor.NDArray[float64]) error {
	if X == nil || y == nil {
		return fmt.Errorf("%w: nil training data", ErrInvalidInput)
	}
	if X.Rank() != 2 {
		return fmt.Errorf("%w: features must be (m, n), got %v", ErrInvalidInput, X.Shape())
	}
	samples, features := X.Shape()[0], X.Shape()[1]
	if samples == 0 || features == 0 {
		return fmt.Errorf("%w: empty features matrix %v", ErrInvalidInput, X.Shape())
	}
	if !y.Shape().Equal(tensor.Shape{samples, 1}) {
		return fmt.Errorf("%w: targets must be (%d, 1), got %v", ErrInvalidInput, samples, y.Shape())
	}
	return nil
}

func shapeOf(a *tensor.NDArray[float64]) tensor.Shape {
	if a == nil {
		return nil
	}
	return a.Shape()
}
