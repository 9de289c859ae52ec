package linreg

import (
	"fmt"

	"github.com/bwmllib/bwml/internal/tensor"
)

// State dict keys.
const (
	WeightsKey = "weights"
	BiasKey    = "bias"
)

// StateDict returns copies of the model parameters keyed by name:
// "weights" with shape (features, 1) and "bias" with shape (1).
func (m *Model) StateDict() (map[string]*tensor.NDArray[float64], error) {
	if m.weights == nil {
		return nil, ErrNotFitted
	}
	return map[string]*tensor.NDArray[float64]{
		WeightsKey: m.weights.Clone(),
		BiasKey:    tensor.Full(m.bias, 1),
	}, nil
}

// LoadStateDict restores parameters produced by StateDict.
func (m *Model) LoadStateDict(state map[string]*tensor.NDArray[float64]) error {
	w, ok := state[WeightsKey]
	if !ok || w == nil {
		return fmt.Errorf("%w: missing %q", ErrInvalidInput, WeightsKey)
	}
	if w.Rank() != 2 || w.Shape()[1] != 1 || w.Shape()[0] == 0 {
		return fmt.Errorf("%w: %q must be (features, 1), got %v", ErrInvalidInput, WeightsKey, w.Shape())
	}

	b, ok := state[BiasKey]
	if !ok || b == nil {
		return fmt.Errorf("%w: missing %q", ErrInvalidInput, BiasKey)
	}
	bias, err := b.Item()
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrInvalidInput, BiasKey, err)
	}

	m.weights = w.Clone()
	m.bias = bias
	m.dw, m.db = nil, 0
	return nil
}
