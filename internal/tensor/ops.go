package tensor

import "fmt"

// Add performs element-wise addition. Shapes must be identical.
//
// Example:
//
//	a := tensor.Ones[float32](3, 4)
//	b := tensor.Full[float32](2, 3, 4)
//	c, err := a.Add(b) // all 3s
func (t *NDArray[T]) Add(other *NDArray[T]) (*NDArray[T], error) {
	if err := sameShape("add", t, other); err != nil {
		return nil, err
	}
	result := t.like()
	for i, v := range t.data {
		result.data[i] = v + other.data[i]
	}
	return result, nil
}

// Sub performs element-wise subtraction. Shapes must be identical.
func (t *NDArray[T]) Sub(other *NDArray[T]) (*NDArray[T], error) {
	if err := sameShape("sub", t, other); err != nil {
		return nil, err
	}
	result := t.like()
	for i, v := range t.data {
		result.data[i] = v - other.data[i]
	}
	return result, nil
}

// Mul performs element-wise (Hadamard) multiplication. Shapes must be identical.
func (t *NDArray[T]) Mul(other *NDArray[T]) (*NDArray[T], error) {
	if err := sameShape("mul", t, other); err != nil {
		return nil, err
	}
	result := t.like()
	for i, v := range t.data {
		result.data[i] = v * other.data[i]
	}
	return result, nil
}

// Scale multiplies every element by scalar.
func (t *NDArray[T]) Scale(scalar T) *NDArray[T] {
	result := t.like()
	for i, v := range t.data {
		result.data[i] = scalar * v
	}
	return result
}

// DivScalar divides every element by scalar.
// Integer division by zero panics, as it does for plain Go integers.
func (t *NDArray[T]) DivScalar(scalar T) *NDArray[T] {
	result := t.like()
	for i, v := range t.data {
		result.data[i] = v / scalar
	}
	return result
}

// Square returns a new array with every element squared.
func (t *NDArray[T]) Square() *NDArray[T] {
	result := t.like()
	for i, v := range t.data {
		result.data[i] = v * v
	}
	return result
}

// Sum reduces all elements to a single value, accumulating in flat order.
// The sum of an empty array is zero.
func (t *NDArray[T]) Sum() T {
	var acc T
	for _, v := range t.data {
		acc += v
	}
	return acc
}

// Equal reports whether both arrays have the same shape and exactly equal
// elements. No tolerance is applied; floating-point callers needing one
// must compare Data themselves.
func (t *NDArray[T]) Equal(other *NDArray[T]) bool {
	if t == other {
		return true
	}
	if t == nil || other == nil {
		return false
	}
	if !t.shape.Equal(other.shape) {
		return false
	}
	for i, v := range t.data {
		if v != other.data[i] {
			return false
		}
	}
	return true
}

// Transpose returns a copy of the array with dimensions dim1 and dim2
// swapped. The data is physically reordered so the result is contiguous and
// its strides are the row-major strides of the new shape.
//
// Example:
//
//	t := tensor.Arange[float32](2, 3, 4)
//	tt, _ := t.Transpose(0, 2) // Shape: (4, 3, 2)
func (t *NDArray[T]) Transpose(dim1, dim2 int) (*NDArray[T], error) {
	rank := len(t.shape)
	for _, dim := range [...]int{dim1, dim2} {
		if dim < 0 || dim >= rank {
			return nil, fmt.Errorf("transpose: %w: axis %d for rank %d", ErrIndexOutOfRange, dim, rank)
		}
	}
	if dim1 == dim2 {
		return t.Clone(), nil
	}

	outShape := t.shape.Clone()
	outShape[dim1], outShape[dim2] = outShape[dim2], outShape[dim1]
	result := &NDArray[T]{
		data:    make([]T, len(t.data)),
		shape:   outShape,
		strides: outShape.ComputeStrides(),
	}

	// Stepping along output axis dim1 steps along source axis dim2.
	srcStrides := append([]int(nil), t.strides...)
	srcStrides[dim1], srcStrides[dim2] = srcStrides[dim2], srcStrides[dim1]

	idx := make([]int, rank)
	src := 0
	for o := range result.data {
		result.data[o] = t.data[src]
		for ax := rank - 1; ax >= 0; ax-- {
			idx[ax]++
			src += srcStrides[ax]
			if idx[ax] < outShape[ax] {
				break
			}
			src -= srcStrides[ax] * outShape[ax]
			idx[ax] = 0
		}
	}
	return result, nil
}

// T is a shortcut for transposing a matrix.
func (t *NDArray[T]) T() (*NDArray[T], error) {
	if len(t.shape) != 2 {
		return nil, fmt.Errorf("transpose: %w: T() requires a matrix, got rank %d", ErrRankMismatch, len(t.shape))
	}
	return t.Transpose(0, 1)
}

func sameShape[T Numeric](op string, a, b *NDArray[T]) error {
	if !a.shape.Equal(b.shape) {
		return fmt.Errorf("%s: %w: %v vs %v", op, ErrShapeMismatch, a.shape, b.shape)
	}
	return nil
}
