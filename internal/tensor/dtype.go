// Package tensor implements dense N-dimensional arrays with row-major strided
// storage, elementwise arithmetic and batched matrix multiplication.
package tensor

import "golang.org/x/exp/constraints"

// Numeric is the constraint for NDArray element types.
// Every member supports +, -, * and / and has a zero value that acts as the
// additive identity for reductions and matmul accumulators.
type Numeric interface {
	constraints.Integer | constraints.Float | constraints.Complex
}
