package main

import (
	"fmt"

	"github.com/muesli/termenv"

	"github.com/bwmllib/bwml/internal/tensor"
)

// runDemo builds two matrices by indexed writes and prints their product,
// followed by a batched product.
func runDemo(out *termenv.Output) error {
	fmt.Fprintln(out, heading(out, "Arrays"))
	zeros := tensor.Zeros[int](1, 2, 3)
	fmt.Fprintln(out, zeros)

	m1 := tensor.Zeros[int](2, 2)
	m2 := tensor.Zeros[int](2, 3)
	for i, v := range []int{1, 2, 3, 4} {
		if err := m1.Set(v, i/2, i%2); err != nil {
			return err
		}
	}
	for i, v := range []int{1, 2, 3, 4, 5, 6} {
		if err := m2.Set(v, i/3, i%3); err != nil {
			return err
		}
	}
	fmt.Fprintln(out, m1)
	fmt.Fprintln(out, m2)

	product, err := m1.MatMul(m2)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, heading(out, "MatMul"))
	fmt.Fprintln(out, product)

	a := tensor.Arange[int](2, 2, 2)
	b := tensor.MustFromSlice(tensor.Shape{2, 2, 2}, []int{1, 0, 0, 1, 2, 0, 0, 2})
	batched, err := a.BatchedMatMul(b)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, heading(out, "BatchedMatMul"))
	fmt.Fprintln(out, batched)

	at, err := a.Transpose(1, 2)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, heading(out, "Transpose(1, 2)"))
	fmt.Fprintln(out, at)
	return nil
}
