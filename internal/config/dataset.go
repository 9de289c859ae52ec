package config

import (
	"math/rand/v2"

	"github.com/bwmllib/bwml/internal/tensor"
)

// Dataset materializes the training set as a (samples, features) matrix and
// a (samples, 1) target column.
func (t Training) Dataset() (X, y *tensor.NDArray[float64], err error) {
	if err := t.Validate(); err != nil {
		return nil, nil, err
	}
	if t.Data != nil {
		return t.Data.arrays()
	}
	return t.Synthetic.generate()
}

func (d *Data) arrays() (X, y *tensor.NDArray[float64], err error) {
	rows, cols := len(d.Features), len(d.Features[0])
	flat := make([]float64, 0, rows*cols)
	for _, row := range d.Features {
		flat = append(flat, row...)
	}

	X, err = tensor.FromSlice(tensor.Shape{rows, cols}, flat)
	if err != nil {
		return nil, nil, err
	}
	y, err = tensor.FromSlice(tensor.Shape{rows, 1}, d.Targets)
	if err != nil {
		return nil, nil, err
	}
	return X, y, nil
}

// generate draws samples deterministically from Seed.
func (s *Synthetic) generate() (X, y *tensor.NDArray[float64], err error) {
	rng := rand.New(rand.NewPCG(s.Seed, s.Seed^0x9e3779b97f4a7c15))
	features := len(s.Weights)

	X = tensor.Zeros[float64](s.Samples, features)
	y = tensor.Zeros[float64](s.Samples, 1)
	xs, ys := X.Data(), y.Data()
	for i := range s.Samples {
		target := s.Bias
		for j, w := range s.Weights {
			x := rng.Float64()
			xs[i*features+j] = x
			target += w * x
		}
		if s.Noise > 0 {
			target += rng.NormFloat64() * s.Noise
		}
		ys[i] = target
	}
	return X, y, nil
}
