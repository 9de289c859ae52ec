// Copyright 2025 The bwml Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"errors"
	"testing"

	"github.com/bwmllib/bwml/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicAPI_Construction(t *testing.T) {
	x, err := tensor.New[int](tensor.Shape{3, 4, 2})
	require.NoError(t, err)
	assert.Equal(t, []int{8, 2, 1}, x.Strides())
	assert.Len(t, x.Data(), 24)

	_, err = tensor.FromSlice(tensor.Shape{2, 2}, []int{1, 2, 3})
	assert.True(t, errors.Is(err, tensor.ErrShapeMismatch))

	y, err := tensor.FromSlice(tensor.Shape{2, 2}, []int{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4}, y.Data())
}

func TestPublicAPI_MatMul(t *testing.T) {
	a := tensor.MustFromSlice(tensor.Shape{1, 2}, []int{2, 2})
	b := tensor.MustFromSlice(tensor.Shape{2, 3}, []int{1, 2, 3, 4, 5, 6})

	c, err := a.MatMul(b)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{1, 3}, c.Shape())
	assert.Equal(t, []int{10, 14, 18}, c.Data())

	_, err = a.MatMul(tensor.Zeros[int](3, 3))
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)

	_, err = a.MatMul(tensor.Zeros[int](2, 1, 1))
	assert.ErrorIs(t, err, tensor.ErrRankMismatch)
}

func TestPublicAPI_BatchedMatMul(t *testing.T) {
	a := tensor.MustFromSlice(tensor.Shape{2, 1, 2}, []int{1, 2, 3, 4})
	b := tensor.MustFromSlice(tensor.Shape{2, 2, 1}, []int{4, 3, 2, 1})

	c, err := a.BatchedMatMul(b)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 1, 1}, c.Shape())
	assert.Equal(t, []int{10, 10}, c.Data())

	seq, err := a.BatchedMatMulWith(b, tensor.Sequential())
	require.NoError(t, err)
	assert.True(t, seq.Equal(c))

	par, err := a.BatchedMatMulWith(b, tensor.DefaultParallel())
	require.NoError(t, err)
	assert.True(t, par.Equal(c))
}

func TestPublicAPI_Reductions(t *testing.T) {
	x := tensor.MustFromSlice(tensor.Shape{2, 2, 2}, []int{1, 2, 3, 4, 5, 6, 7, 8})
	assert.Equal(t, 36, x.Sum())
	assert.Equal(t, 204, x.Square().Sum())
}

type meters float64

func TestPublicAPI_NamedElementType(t *testing.T) {
	x := tensor.Full[meters](1.5, 2)
	assert.Equal(t, meters(3), x.Sum())
}
