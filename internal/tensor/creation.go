package tensor

import "fmt"

// Zeros creates an array of the given dimensions filled with zeros.
// Panics on a negative dimension.
//
// Example:
//
//	t := tensor.Zeros[float32](3, 4)
func Zeros[T Numeric](dims ...int) *NDArray[T] {
	t, err := New[T](Shape(dims))
	if err != nil {
		panic(err)
	}
	return t
}

// Ones creates an array of the given dimensions filled with ones.
func Ones[T Numeric](dims ...int) *NDArray[T] {
	return Full[T](1, dims...)
}

// Full creates an array of the given dimensions filled with value.
//
// Example:
//
//	t := tensor.Full[float64](0.5, 2, 2)
func Full[T Numeric](value T, dims ...int) *NDArray[T] {
	t := Zeros[T](dims...)
	for i := range t.data {
		t.data[i] = value
	}
	return t
}

// MustFromSlice is like FromSlice but panics on error.
// Intended for literals in tests and examples.
func MustFromSlice[T Numeric](shape Shape, values []T) *NDArray[T] {
	t, err := FromSlice(shape, values)
	if err != nil {
		panic(fmt.Sprintf("must from slice: %v", err))
	}
	return t
}

// Arange creates an array of the given dimensions holding 0, 1, 2, ...
// in row-major order.
//
// Example:
//
//	t := tensor.Arange[int](2, 3) // [[0 1 2] [3 4 5]]
func Arange[T Numeric](dims ...int) *NDArray[T] {
	t := Zeros[T](dims...)
	var v T
	for i := range t.data {
		t.data[i] = v
		v++
	}
	return t
}

// Eye creates an n×n identity matrix.
func Eye[T Numeric](n int) *NDArray[T] {
	t := Zeros[T](n, n)
	for i := 0; i < n; i++ {
		t.data[i*n+i] = 1
	}
	return t
}
