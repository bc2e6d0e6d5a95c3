// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package term

import (
	"github.com/cpmech/goterms/fld"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func init() {
	SetAllocator("dw_volume_wdot", func() Term {
		return &WdotW{Base: Base{Info: &Info{
			Name:     "dw_volume_wdot",
			ArgTypes: []string{"material", "virtual", "state"},
			Geometry: []GeomArg{{fld.Volume, "virtual"}, {fld.Volume, "state"}},
			UseCaches: map[string][][]string{
				"state_in_volume_qp": {{"state"}},
				"mat_in_qp":          {{"material", "virtual"}},
			},
		}}, arg: "state", jacobian: true}
	})
	SetAllocator("dw_volume_wdot_r", func() Term {
		return &WdotW{Base: Base{Info: &Info{
			Name:     "dw_volume_wdot_r",
			ArgTypes: []string{"material", "virtual", "parameter"},
			Geometry: []GeomArg{{fld.Volume, "virtual"}, {fld.Volume, "parameter"}},
			UseCaches: map[string][][]string{
				"state_in_volume_qp": {{"parameter"}},
				"mat_in_qp":          {{"material", "virtual"}},
			},
		}}, arg: "parameter"}
	})
}

// WdotW implements the weighted mass-like operator ∫_Ω q y u, where q is the virtual
// variable, y a scalar material and u the state (or parameter)
//  residual (nep, 1):   ∫ Sᵀ y u
//  Jacobian (nep, nep): ∫ Sᵀ y S
//  dw_volume_wdot:   residual and Jacobian w.r.t. state
//  dw_volume_wdot_r: residual only
type WdotW struct {
	Base
	arg      string // name of argument holding the values
	jacobian bool   // Jacobian is available
}

// Eval evaluates element vectors or matrices
func (o *WdotW) Eval(diffVar string, chunkSize int) (seq *Sequence, err error) {

	// mode
	u, v := o.Args.Var(o.arg), o.Args.Var("virtual")
	jac := false
	switch {
	case diffVar == "":
	case o.jacobian && diffVar == u.Name:
		jac = true
	default:
		return EmptySequence(), nil
	}
	if u.Field.Vdim > 1 || v.Field.Vdim > 1 {
		return nil, notImplemented(o.Info.Name, "vector variables %q and %q", v.Name, u.Name)
	}

	// data
	ap, geo, err := o.approx("virtual")
	if err != nil {
		return
	}
	mq, err := o.matqp(0, "", [4]int{-1, -1, 1, 1})
	if err != nil {
		return
	}
	var uq *fld.Array
	if !jac {
		uq, err = o.state("state_in_volume_qp", 0)
		if err != nil {
			return
		}
	}

	// sequence
	_, nqp, _, nep := ap.VDataShape()
	bf, err := ap.GetBase(0)
	if err != nil {
		return
	}
	ncol := 1
	if jac {
		ncol = nep
	}
	it := o.CharFun().Iter(chunkSize, 1, nep, ncol)
	return newSequence(func() (*Result, error) {
		if !it.Next() {
			return nil, nil
		}
		local := it.LocalChunk()
		m := mq.Chunk(local)
		qp := fld.NewArray(len(local), nqp, nep, ncol)
		for k, e := range local {
			for q := 0; q < nqp; q++ {
				S := bf.Block(0, q)
				y := m.At(k, q, 0, 0)
				if jac {
					s := mat.NewVecDense(nep, S)
					qp.Dense(k, q).Outer(y, s, s)
				} else {
					floats.ScaleTo(qp.Block(k, q), y*uq.At(e, q, 0, 0), S)
				}
			}
		}
		status := geo.IntegrateChunk(it.Out(), qp, local)
		return o.result(it, status, false), nil
	}), nil
}
