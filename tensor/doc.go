// Copyright 2025 The bwml Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// # Overview
//
// Arrays store their elements in one contiguous row-major buffer. The shape
// is fixed at construction and strides are always derived from it:
//
//	shape   (3, 4, 2)
//	strides (8, 2, 1)
//
// so element [i, j, k] lives at flat offset 8*i + 2*j + k.
//
// # Basic Usage
//
//	import "github.com/bwmllib/bwml/tensor"
//
//	func main() {
//	    m1 := tensor.Zeros[int](2, 2)
//	    _ = m1.Set(1, 0, 0)
//	    _ = m1.Set(4, 1, 1)
//
//	    m2 := tensor.Arange[int](2, 3)
//	    product, err := m1.MatMul(m2)
//	}
//
// # Batched Multiplication
//
// BatchedMatMul treats every dimension except the last two as batch
// dimensions. Batch dimensions must match exactly; there is no broadcasting.
//
//	a := tensor.Zeros[float32](8, 4, 16, 32) // (B, H, M, K)
//	b := tensor.Zeros[float32](8, 4, 32, 16) // (B, H, K, N)
//	c, err := a.BatchedMatMul(b)             // (B, H, M, N)
//
// Large products are split across goroutines by batch. Each batch is computed
// with the same kernel and accumulation order, so results are bit-identical
// to a sequential run. Use BatchedMatMulWith with Sequential() or a custom
// ParallelConfig to control this.
//
// # Errors
//
// Operations validate before they allocate or write. Failures wrap one of
// ErrRankMismatch, ErrShapeMismatch, ErrIndexOutOfRange or ErrInvalidShape.
//
// # Supported Element Types
//
// Any integer, floating-point or complex type, including named types whose
// underlying type is one of those.
package tensor
