// Copyright 2025 The bwml Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for dense N-dimensional arrays.
//
// The package defines:
//   - NDArray[T]: row-major array with elementwise ops, matmul and batched matmul
//   - Numeric: the element type constraint
//   - Shape: dimension sizes
//   - Sentinel errors for rank, shape and index violations
//
// Example:
//
//	x := tensor.MustFromSlice(tensor.Shape{2, 1, 2}, []int{1, 2, 3, 4})
//	y := tensor.MustFromSlice(tensor.Shape{2, 2, 1}, []int{4, 3, 2, 1})
//	z, err := x.BatchedMatMul(y) // Shape: (2, 1, 1), data [10 10]
package tensor

import (
	"github.com/bwmllib/bwml/internal/parallel"
	"github.com/bwmllib/bwml/internal/tensor"
)

// Type aliases for public API

// Numeric is the constraint for element types: integers, floats and complex numbers.
type Numeric = tensor.Numeric

// Shape represents the dimensions of an array.
// Example: Shape{2, 3, 4} is a 3D array with dimensions 2×3×4.
type Shape = tensor.Shape

// NDArray is a dense N-dimensional array backed by one contiguous buffer.
//
// NDArray provides:
//   - Validated element access (At, Set, FlatIndex)
//   - Elementwise arithmetic on identically shaped arrays (Add, Sub, Mul, Scale)
//   - Reductions (Sum) and Square
//   - Two-axis Transpose
//   - MatMul and BatchedMatMul over arbitrary leading batch dimensions
type NDArray[T Numeric] = tensor.NDArray[T]

// ParallelConfig controls how BatchedMatMulWith distributes batches.
type ParallelConfig = parallel.Config

// Errors returned by NDArray operations. Match them with errors.Is.
var (
	ErrRankMismatch    = tensor.ErrRankMismatch
	ErrShapeMismatch   = tensor.ErrShapeMismatch
	ErrIndexOutOfRange = tensor.ErrIndexOutOfRange
	ErrInvalidShape    = tensor.ErrInvalidShape
)

// Creation functions

// New creates a zero-initialized array with the given shape.
//
// Example:
//
//	x, err := tensor.New[float64](tensor.Shape{3, 4, 2}) // strides (8, 2, 1)
func New[T Numeric](shape Shape) (*NDArray[T], error) {
	return tensor.New[T](shape)
}

// FromSlice creates an array from a flat row-major slice.
// Fails with ErrShapeMismatch when len(values) differs from the shape's element count.
//
// Example:
//
//	x, err := tensor.FromSlice(tensor.Shape{2, 2}, []int{1, 2, 3, 4})
func FromSlice[T Numeric](shape Shape, values []T) (*NDArray[T], error) {
	return tensor.FromSlice(shape, values)
}

// MustFromSlice is like FromSlice but panics on error.
func MustFromSlice[T Numeric](shape Shape, values []T) *NDArray[T] {
	return tensor.MustFromSlice(shape, values)
}

// Zeros creates an array filled with zeros.
//
// Example:
//
//	x := tensor.Zeros[float32](2, 3)
func Zeros[T Numeric](dims ...int) *NDArray[T] {
	return tensor.Zeros[T](dims...)
}

// Ones creates an array filled with ones.
func Ones[T Numeric](dims ...int) *NDArray[T] {
	return tensor.Ones[T](dims...)
}

// Full creates an array filled with value.
//
// Example:
//
//	x := tensor.Full(3.14, 2, 3)
func Full[T Numeric](value T, dims ...int) *NDArray[T] {
	return tensor.Full(value, dims...)
}

// Arange creates an array holding 0, 1, 2, ... in row-major order.
func Arange[T Numeric](dims ...int) *NDArray[T] {
	return tensor.Arange[T](dims...)
}

// Eye creates an n×n identity matrix.
func Eye[T Numeric](n int) *NDArray[T] {
	return tensor.Eye[T](n)
}

// Parallel configs

// DefaultParallel returns a config that uses every CPU.
func DefaultParallel() ParallelConfig {
	return parallel.DefaultConfig()
}

// Sequential returns a config that keeps all work on the calling goroutine.
func Sequential() ParallelConfig {
	return parallel.Sequential()
}
