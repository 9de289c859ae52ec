package tensor

import (
	"fmt"
	"log/slog"
)

// NDArray is a dense N-dimensional array backed by one contiguous buffer in
// row-major order.
//
// The shape is fixed at construction. Strides are always derived from the
// shape and cannot be set independently. Operations that produce a different
// shape (MatMul, Transpose) return a new NDArray.
//
// Example:
//
//	a, _ := tensor.FromSlice(tensor.Shape{2, 3}, []float64{1, 2, 3, 4, 5, 6})
//	v, _ := a.At(1, 2) // 6
type NDArray[T Numeric] struct {
	data    []T
	shape   Shape
	strides []int
}

// New creates a zero-initialized NDArray with the given shape.
func New[T Numeric](shape Shape) (*NDArray[T], error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}
	return &NDArray[T]{
		data:    make([]T, shape.NumElements()),
		shape:   shape.Clone(),
		strides: shape.ComputeStrides(),
	}, nil
}

// FromSlice creates an NDArray from a flat row-major slice.
// The slice is copied into the array's buffer.
func FromSlice[T Numeric](shape Shape, values []T) (*NDArray[T], error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("from slice: %w", err)
	}
	if n := shape.NumElements(); n != len(values) {
		return nil, fmt.Errorf("from slice: %w: shape %v requires %d elements, got %d",
			ErrShapeMismatch, shape, n, len(values))
	}

	t, err := New[T](shape)
	if err != nil {
		return nil, err
	}
	copy(t.data, values)
	return t, nil
}

// Shape returns a copy of the array's shape.
func (t *NDArray[T]) Shape() Shape {
	return t.shape.Clone()
}

// Strides returns a copy of the array's row-major strides.
func (t *NDArray[T]) Strides() []int {
	strides := make([]int, len(t.strides))
	copy(strides, t.strides)
	return strides
}

// Rank returns the number of dimensions.
func (t *NDArray[T]) Rank() int {
	return len(t.shape)
}

// NumElements returns the total number of elements.
func (t *NDArray[T]) NumElements() int {
	return len(t.data)
}

// Data returns the underlying flat buffer.
// The slice aliases the array: writes through it modify the array.
func (t *NDArray[T]) Data() []T {
	return t.data
}

// SetData replaces the whole buffer with a copy of values.
// The length of values must equal NumElements.
func (t *NDArray[T]) SetData(values []T) error {
	if len(values) != len(t.data) {
		return fmt.Errorf("set data: %w: expected %d elements, got %d",
			ErrShapeMismatch, len(t.data), len(values))
	}
	copy(t.data, values)
	return nil
}

// FlatIndex maps a multi-dimensional index to its offset in the flat buffer.
// It is the single place where coordinates are validated.
func (t *NDArray[T]) FlatIndex(indices ...int) (int, error) {
	if len(indices) != len(t.shape) {
		return 0, fmt.Errorf("flat index: %w: expected %d indices, got %d",
			ErrRankMismatch, len(t.shape), len(indices))
	}

	offset := 0
	for i, idx := range indices {
		if idx < 0 || idx >= t.shape[i] {
			return 0, fmt.Errorf("flat index: %w: index %d for dimension %d (size %d)",
				ErrIndexOutOfRange, idx, i, t.shape[i])
		}
		offset += idx * t.strides[i]
	}
	return offset, nil
}

// At returns the element at the given indices.
func (t *NDArray[T]) At(indices ...int) (T, error) {
	offset, err := t.FlatIndex(indices...)
	if err != nil {
		var zero T
		return zero, err
	}
	return t.data[offset], nil
}

// Set stores value at the given indices.
func (t *NDArray[T]) Set(value T, indices ...int) error {
	offset, err := t.FlatIndex(indices...)
	if err != nil {
		return err
	}
	t.data[offset] = value
	return nil
}

// Item returns the single value of a one-element array.
func (t *NDArray[T]) Item() (T, error) {
	if len(t.data) != 1 {
		var zero T
		return zero, fmt.Errorf("item: %w: array of shape %v has %d elements",
			ErrShapeMismatch, t.shape, len(t.data))
	}
	return t.data[0], nil
}

// Clone returns a deep copy of the array.
func (t *NDArray[T]) Clone() *NDArray[T] {
	return &NDArray[T]{
		data:    append([]T(nil), t.data...),
		shape:   t.shape.Clone(),
		strides: append([]int(nil), t.strides...),
	}
}

// String returns the shape followed by the flat data.
func (t *NDArray[T]) String() string {
	return fmt.Sprintf("NDArray%v %v", t.shape, t.data)
}

// LogValue implements slog.LogValuer. Only the shape and element count are
// logged.
func (t *NDArray[T]) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("shape", t.shape.String()),
		slog.Int("elements", len(t.data)),
	)
}

// like allocates a zeroed array with the same shape as t.
func (t *NDArray[T]) like() *NDArray[T] {
	return &NDArray[T]{
		data:    make([]T, len(t.data)),
		shape:   t.shape.Clone(),
		strides: append([]int(nil), t.strides...),
	}
}
