// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fld implements fields, variables, materials and their approximations
package fld

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Array holds data with shape (nel, nqp, nrow, ncol) stored in row-major order
//  nel  -- number of elements (or 1 for data constant over elements)
//  nqp  -- number of quadrature points (or 1 after integration)
//  nrow -- number of rows of the tensor at each point
//  ncol -- number of columns of the tensor at each point
type Array struct {
	Shape [4]int
	Data  []float64
}

// NewArray allocates a zero-initialised array
func NewArray(nel, nqp, nrow, ncol int) *Array {
	return &Array{
		Shape: [4]int{nel, nqp, nrow, ncol},
		Data:  make([]float64, nel*nqp*nrow*ncol),
	}
}

// Size returns the block size of each (element, point)
func (o *Array) Size() int { return o.Shape[2] * o.Shape[3] }

// Nel returns the number of elements
func (o *Array) Nel() int { return o.Shape[0] }

// Idx returns the position in Data of entry (e, q, i, j)
func (o *Array) Idx(e, q, i, j int) int {
	return ((e*o.Shape[1]+q)*o.Shape[2]+i)*o.Shape[3] + j
}

// At returns entry (e, q, i, j)
func (o *Array) At(e, q, i, j int) float64 { return o.Data[o.Idx(e, q, i, j)] }

// Set sets entry (e, q, i, j)
func (o *Array) Set(e, q, i, j int, v float64) { o.Data[o.Idx(e, q, i, j)] = v }

// Block returns the nrow×ncol values at (e, q). The slice shares data with o
func (o *Array) Block(e, q int) []float64 {
	n := o.Size()
	start := (e*o.Shape[1] + q) * n
	return o.Data[start : start+n]
}

// Dense returns a matrix view of the block at (e, q). The matrix shares data with o
func (o *Array) Dense(e, q int) *mat.Dense {
	return mat.NewDense(o.Shape[2], o.Shape[3], o.Block(e, q))
}

// Head returns a view of the first n elements
func (o *Array) Head(n int) *Array {
	if n > o.Shape[0] {
		chk.Panic("cannot get head with %d elements from array with %d elements", n, o.Shape[0])
	}
	stride := o.Shape[1] * o.Size()
	return &Array{Shape: [4]int{n, o.Shape[1], o.Shape[2], o.Shape[3]}, Data: o.Data[:n*stride]}
}

// Rows returns a new array with the elements selected by idx
func (o *Array) Rows(idx []int) (res *Array) {
	res = NewArray(len(idx), o.Shape[1], o.Shape[2], o.Shape[3])
	stride := o.Shape[1] * o.Size()
	for k, e := range idx {
		copy(res.Data[k*stride:(k+1)*stride], o.Data[e*stride:(e+1)*stride])
	}
	return
}

// Tile returns a new array with nel copies of the first element
func (o *Array) Tile(nel int) (res *Array) {
	res = NewArray(nel, o.Shape[1], o.Shape[2], o.Shape[3])
	stride := o.Shape[1] * o.Size()
	for e := 0; e < nel; e++ {
		copy(res.Data[e*stride:(e+1)*stride], o.Data[:stride])
	}
	return
}

// Fill sets all entries to v
func (o *Array) Fill(v float64) {
	for i := range o.Data {
		o.Data[i] = v
	}
}

// Sum returns the sum of all entries
func (o *Array) Sum() float64 { return floats.Sum(o.Data) }

// SumElems sums over elements and points, returning the nrow×ncol values
func (o *Array) SumElems() (res []float64) {
	res = make([]float64, o.Size())
	for e := 0; e < o.Shape[0]; e++ {
		for q := 0; q < o.Shape[1]; q++ {
			floats.Add(res, o.Block(e, q))
		}
	}
	return
}

// SameShape tells whether o and b have the same shape
func (o *Array) SameShape(b *Array) bool { return o.Shape == b.Shape }

// String returns a short description of this array
func (o *Array) String() string {
	return io.Sf("Array%v", o.Shape)
}
