// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cache

import (
	"fmt"

	"github.com/cpmech/goterms/fld"
	"github.com/cpmech/goterms/inp"
	"github.com/cpmech/gosl/chk"
)

func init() {
	SetAllocator("mat_in_qp", func() DataCache { return new(MatInQP) })
}

// MatInQP evaluates material parameters at quadrature points
type MatInQP struct{}

// Name returns the name of this cache
func (o *MatInQP) Name() string { return "mat_in_qp" }

// Kinds returns the kinds of data computed by this cache
func (o *MatInQP) Kinds() []string { return []string{KindMatQP} }

// Compute computes material values @ quadrature points
//  const       -- nrow*ncol values for the whole group
//  vertex      -- nverts*nrow*ncol values interpolated with the base functions
//  element_avg -- ncells*nrow*ncol values; constant in each cell
//  ""          -- nqp*nrow*ncol or nel*nqp*nrow*ncol values; nrow*ncol values are taken as constant
func (o *MatInQP) Compute(kind string, grp *inp.Group, prm *Params) (val interface{}, err error) {

	// input
	m := prm.Mat
	if m == nil || prm.State == nil {
		return nil, chk.Err("mat_in_qp: material and variable are required")
	}
	gkind := fld.Volume
	if grp.Region.IsSurface() {
		gkind = fld.Surface
	}
	ap, _, err := prm.State.GetApproximation(grp, gkind, prm.Integral)
	if err != nil {
		return
	}
	mode := prm.ModeIn
	if mode == "" {
		mode = m.Mode
	}
	nrow, ncol := m.RowsCols()
	sz := nrow * ncol
	nel, nqp, _, _ := ap.VDataShape()
	msh := ap.Field.Msh
	vals := m.Vals()
	nvals := len(vals)

	// compute
	var res *MatQP
	switch mode {

	case fld.ModeConst:
		if nvals != sz {
			return nil, shapeError(m, "const mode requires %d values; %d given", sz, nvals)
		}
		res = constant(vals, nqp, nrow, ncol)

	case fld.ModeVertex:
		if nvals != len(msh.Verts)*sz {
			return nil, shapeError(m, "vertex mode requires %d values; %d given", len(msh.Verts)*sz, nvals)
		}
		data := ap.Interpolate(vals, sz)
		data.Shape = [4]int{nel, nqp, nrow, ncol}
		res = &MatQP{Kind: PerElement, Data: data}

	case fld.ModeElementAvg:
		if nvals != len(msh.Cells)*sz {
			return nil, shapeError(m, "element_avg mode requires %d values; %d given", len(msh.Cells)*sz, nvals)
		}
		data := fld.NewArray(nel, nqp, nrow, ncol)
		for e := 0; e < nel; e++ {
			cid := grp.Cells[e]
			if gkind == fld.Surface {
				cid = grp.Faces[e].Cell
			}
			for q := 0; q < nqp; q++ {
				copy(data.Block(e, q), vals[cid*sz:(cid+1)*sz])
			}
		}
		res = &MatQP{Kind: PerElement, Data: data}

	case fld.ModeQp:
		switch nvals {
		case sz:
			res = constant(vals, nqp, nrow, ncol)
		case nqp * sz:
			data := fld.NewArray(1, nqp, nrow, ncol)
			copy(data.Data, vals)
			res = &MatQP{Kind: Constant, Data: data}
		case nel * nqp * sz:
			data := fld.NewArray(nel, nqp, nrow, ncol)
			copy(data.Data, vals)
			res = &MatQP{Kind: PerElement, Data: data}
		default:
			return nil, shapeError(m, "%d values cannot be distributed over %d elements with %d points and shape %dx%d", nvals, nel, nqp, nrow, ncol)
		}

	default:
		return nil, chk.Err("mat_in_qp: mode %q of material %q is invalid", mode, m.Name)
	}

	// check shape
	if len(prm.AssumedShapes) > 0 {
		shape := res.Data.Shape
		for _, s := range prm.AssumedShapes {
			if shapeMatches(s, shape) {
				return res, nil
			}
		}
		return nil, shapeError(m, "shape %v does not match any of the assumed shapes %v", shape, prm.AssumedShapes)
	}
	return res, nil
}

// constant returns a MatQP with the same values at all points
func constant(vals []float64, nqp, nrow, ncol int) *MatQP {
	data := fld.NewArray(1, nqp, nrow, ncol)
	for q := 0; q < nqp; q++ {
		copy(data.Block(0, q), vals)
	}
	return &MatQP{Kind: Constant, Data: data}
}

// shapeMatches compares shapes; negative entries in assumed match anything.
// One element in shape matches any number of elements
func shapeMatches(assumed, shape [4]int) bool {
	for i := 0; i < 4; i++ {
		if assumed[i] < 0 || assumed[i] == shape[i] {
			continue
		}
		if i == 0 && shape[0] == 1 {
			continue
		}
		return false
	}
	return true
}

func shapeError(m *fld.Material, msg string, prm ...interface{}) error {
	return fmt.Errorf("%w: material %q: %s", ErrShape, m.Name, fmt.Sprintf(msg, prm...))
}
