package tensor

import (
	"fmt"

	"github.com/bwmllib/bwml/internal/parallel"
)

// parallelThreshold is the multiply-add count below which BatchedMatMul
// stays on the calling goroutine.
const parallelThreshold = 1 << 16

// MatMul performs matrix multiplication.
// (M, K) @ (K, N) -> (M, N). Both operands must have rank 2.
//
// Example:
//
//	a := tensor.MustFromSlice(tensor.Shape{1, 2}, []int{2, 2})
//	b := tensor.MustFromSlice(tensor.Shape{2, 3}, []int{1, 2, 3, 4, 5, 6})
//	c, _ := a.MatMul(b) // (1, 3): [10 14 18]
func (t *NDArray[T]) MatMul(other *NDArray[T]) (*NDArray[T], error) {
	if len(t.shape) != 2 || len(other.shape) != 2 {
		return nil, fmt.Errorf("matmul: %w: only 2D arrays supported, got %dD and %dD",
			ErrRankMismatch, len(t.shape), len(other.shape))
	}

	m, k := t.shape[0], t.shape[1]
	kAlt, n := other.shape[0], other.shape[1]
	if k != kAlt {
		return nil, fmt.Errorf("matmul: %w: %v @ %v", ErrShapeMismatch, t.shape, other.shape)
	}

	result := Zeros[T](m, n)
	matmulBlock(result.data, t.data, other.data, m, k, n)
	return result, nil
}

// BatchedMatMul multiplies matching matrices across leading batch dimensions.
//
//	(B..., M, K) @ (B..., K, N) -> (B..., M, N)
//
// Both operands must have the same rank and identical batch dimensions.
// Rank-2 operands are handled by MatMul. Batches are enumerated in row-major
// order of the batch dimensions, and each output matrix is computed with the
// same accumulation order as MatMul, so results do not depend on whether the
// loop was parallelized.
func (t *NDArray[T]) BatchedMatMul(other *NDArray[T]) (*NDArray[T], error) {
	cfg := parallel.Sequential()
	if t.batchedWork(other) >= parallelThreshold {
		cfg = parallel.DefaultConfig()
	}
	return t.BatchedMatMulWith(other, cfg)
}

// BatchedMatMulWith is BatchedMatMul with explicit control over how batches
// are distributed across goroutines.
func (t *NDArray[T]) BatchedMatMulWith(other *NDArray[T], cfg parallel.Config) (*NDArray[T], error) {
	aShape, bShape := t.shape, other.shape
	ndim := len(aShape)

	if len(bShape) != ndim {
		return nil, fmt.Errorf("batched matmul: %w: got %dD and %dD", ErrRankMismatch, ndim, len(bShape))
	}
	if ndim == 2 {
		return t.MatMul(other)
	}
	if ndim < 2 {
		return nil, fmt.Errorf("batched matmul: %w: inputs must be at least 2D, got %dD", ErrRankMismatch, ndim)
	}

	for i := 0; i < ndim-2; i++ {
		if aShape[i] != bShape[i] {
			return nil, fmt.Errorf("batched matmul: %w: batch dimension %d: %d vs %d",
				ErrShapeMismatch, i, aShape[i], bShape[i])
		}
	}

	m, k := aShape[ndim-2], aShape[ndim-1]
	kAlt, n := bShape[ndim-2], bShape[ndim-1]
	if k != kAlt {
		return nil, fmt.Errorf("batched matmul: %w: inner dimension %d vs %d", ErrShapeMismatch, k, kAlt)
	}

	outShape := make(Shape, ndim)
	copy(outShape, aShape[:ndim-2])
	outShape[ndim-2] = m
	outShape[ndim-1] = n
	result, err := New[T](outShape)
	if err != nil {
		return nil, err
	}

	batches := Shape(aShape[:ndim-2]).NumElements()
	batchMatmul(result.data, t.data, other.data, batches, m, k, n, cfg)
	return result, nil
}

// batchedWork estimates the multiply-add count of a batched product,
// ignoring operands that would fail validation.
func (t *NDArray[T]) batchedWork(other *NDArray[T]) int {
	ndim := len(t.shape)
	if ndim < 3 || len(other.shape) != ndim {
		return 0
	}
	return len(t.data) * other.shape[ndim-1]
}

// batchMatmul runs matmulBlock over consecutive fixed-size windows of the
// flat buffers: batch i reads a[i*m*k:], b[i*k*n:] and writes c[i*m*n:].
func batchMatmul[T Numeric](c, a, b []T, batches, m, k, n int, cfg parallel.Config) {
	sizeA, sizeB, sizeC := m*k, k*n, m*n
	if sizeC == 0 {
		return
	}

	parallel.For(batches, cfg, func(lo, hi int) {
		for batch := lo; batch < hi; batch++ {
			matmulBlock(
				c[batch*sizeC:(batch+1)*sizeC],
				a[batch*sizeA:(batch+1)*sizeA],
				b[batch*sizeB:(batch+1)*sizeB],
				m, k, n,
			)
		}
	})
}

// matmulBlock computes C = A @ B for dense row-major blocks
// A (m×k), B (k×n) and C (m×n). Every cell of C is overwritten.
func matmulBlock[T Numeric](c, a, b []T, m, k, n int) {
	for i := 0; i < m; i++ {
		row := a[i*k : (i+1)*k]
		out := c[i*n : (i+1)*n]
		for j := range out {
			var sum T
			for kIdx, av := range row {
				sum += av * b[kIdx*n+j]
			}
			out[j] = sum
		}
	}
}
