// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package cache implements memoized data at quadrature points shared by terms
package cache

import (
	"errors"

	"github.com/cpmech/goterms/fld"
	"github.com/cpmech/goterms/inp"
)

// errors
var (
	ErrShape        = errors.New("shape mismatch")
	ErrUnknownCache = errors.New("unknown cache")
	ErrDuplicate    = errors.New("duplicate cache")
)

// data kinds
const (
	KindState  = "state"  // *fld.Array (nel, nqp, vdim, 1)
	KindMatQP  = "matqp"  // *MatQP
	KindVolume = "volume" // *Measure
)

// DataCache computes data at quadrature points of a group of elements
type DataCache interface {
	Name() string    // name of cache; e.g. "state_in_volume_qp"
	Kinds() []string // kinds of data computed by this cache
	Compute(kind string, grp *inp.Group, prm *Params) (val interface{}, err error)
}

// Params holds the arguments of a cache computation
type Params struct {
	Integral      *fld.Integral // quadrature
	State         *fld.Variable // variable to be interpolated or defining the geometry
	Mat           *fld.Material // material (mat_in_qp only)
	ModeIn        string        // overrides the material mode; "" means use Mat.Mode
	AssumedShapes [][4]int      // accepted shapes of results (mat_in_qp only); -1 matches any size
}

// MatKind tells how material values vary over elements
type MatKind int

// material kinds
const (
	Constant   MatKind = iota // same values in all elements; Data has one element
	PerElement                // Data has one entry per element of the group
)

// MatQP holds material values at quadrature points
type MatQP struct {
	Kind MatKind    // Constant or PerElement
	Data *fld.Array // (1 or nel, nqp, nrow, ncol)
}

// Chunk returns the values for the elements in chunk: (len(chunk), nqp, nrow, ncol)
func (o *MatQP) Chunk(chunk []int) *fld.Array {
	if o.Kind == Constant {
		return o.Data.Tile(len(chunk))
	}
	return o.Data.Rows(chunk)
}

// Measure holds the measure (length, area or volume) of a group
type Measure struct {
	Val    float64 // measure
	Status int     // integration status
}
