// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package term

import (
	"github.com/cpmech/goterms/fld"
)

func init() {
	SetAllocator("d_volume_integrate", func() Term {
		return &Integrate{Base: Base{Info: &Info{
			Name:      "d_volume_integrate",
			ArgTypes:  []string{"parameter"},
			Geometry:  []GeomArg{{fld.Volume, "parameter"}},
			UseCaches: map[string][][]string{"state_in_volume_qp": {{"parameter"}}},
		}}, cacheName: "state_in_volume_qp"}
	})
	SetAllocator("d_surface_integrate", func() Term {
		return &Integrate{Base: Base{Info: &Info{
			Name:      "d_surface_integrate",
			ArgTypes:  []string{"parameter"},
			Geometry:  []GeomArg{{fld.Surface, "parameter"}},
			UseCaches: map[string][][]string{"state_in_surface_qp": {{"parameter"}}},
			DofConn:   fld.Surface,
		}}, cacheName: "state_in_surface_qp", flux: true}
	})
	SetAllocator("dw_volume_integrate", func() Term {
		return &IntegrateW{Base: Base{Info: &Info{
			Name:     "dw_volume_integrate",
			ArgTypes: []string{"virtual"},
			Geometry: []GeomArg{{fld.Volume, "virtual"}},
		}}}
	})
	SetAllocator("di_volume_integrate_mat", func() Term {
		return &IntegrateMat{Base: Base{Info: &Info{
			Name:      "di_volume_integrate_mat",
			ArgTypes:  []string{"material", "parameter", "shape", "mode"},
			Geometry:  []GeomArg{{fld.Volume, "parameter"}},
			UseCaches: map[string][][]string{"mat_in_qp": {{"material", "parameter"}}},
		}}}
	})
}

// Integrate integrates a scalar parameter over a volume or surface region.
// With flux, vector parameters with ndim components are dotted with the unit normal
//  d_volume_integrate:  ∫_Ω y
//  d_surface_integrate: ∫_Γ y  or  ∫_Γ y⋅n
type Integrate struct {
	Base
	cacheName string
	flux      bool
}

// Eval evaluates the integral; functional mode only
func (o *Integrate) Eval(diffVar string, chunkSize int) (seq *Sequence, err error) {
	if diffVar != "" {
		return EmptySequence(), nil
	}
	p := o.Args.Var("parameter")
	vdim := p.Field.Vdim
	if vdim > 1 && !(o.flux && vdim == o.Msh.Ndim) {
		return nil, notImplemented(o.Info.Name, "parameter %q with %d components", p.Name, vdim)
	}
	_, geo, err := o.approx("parameter")
	if err != nil {
		return
	}
	val, err := o.state(o.cacheName, 0)
	if err != nil {
		return
	}
	nrm := geo.Normals()
	it := o.CharFun().Iter(chunkSize, 1, 1, 1)
	return newSequence(func() (*Result, error) {
		if !it.Next() {
			return nil, nil
		}
		local := it.LocalChunk()
		qp := val.Rows(local)
		if vdim > 1 {
			dot := fld.NewArray(len(local), qp.Shape[1], 1, 1)
			for k, e := range local {
				for q := 0; q < qp.Shape[1]; q++ {
					s := 0.0
					for c := 0; c < vdim; c++ {
						s += qp.At(k, q, c, 0) * nrm.At(e, q, c, 0)
					}
					dot.Set(k, q, 0, 0, s)
				}
			}
			qp = dot
		}
		status := geo.IntegrateChunk(it.Out(), qp, local)
		return o.result(it, status, true), nil
	}), nil
}

// IntegrateW computes the element vectors of ∫_Ω q, where q is a virtual variable
//  dw_volume_integrate
type IntegrateW struct {
	Base
}

// Eval evaluates element vectors (nep*vdim, 1); residual mode only
func (o *IntegrateW) Eval(diffVar string, chunkSize int) (seq *Sequence, err error) {
	if diffVar != "" {
		return EmptySequence(), nil
	}
	v := o.Args.Var("virtual")
	ap, geo, err := o.approx("virtual")
	if err != nil {
		return
	}
	_, nqp, _, nep := ap.VDataShape()
	bf, err := ap.GetBase(0)
	if err != nil {
		return
	}
	vdim := v.Field.Vdim
	ndof := nep * vdim
	it := o.CharFun().Iter(chunkSize, 1, ndof, 1)
	return newSequence(func() (*Result, error) {
		if !it.Next() {
			return nil, nil
		}
		local := it.LocalChunk()
		qp := fld.NewArray(len(local), nqp, ndof, 1)
		for k := range local {
			for q := 0; q < nqp; q++ {
				S := bf.Block(0, q)
				blk := qp.Block(k, q)
				for m := 0; m < nep; m++ {
					for c := 0; c < vdim; c++ {
						blk[m*vdim+c] = S[m]
					}
				}
			}
		}
		status := geo.IntegrateChunk(it.Out(), qp, local)
		return o.result(it, status, false), nil
	}), nil
}

// IntegrateMat integrates a material parameter over a volume region
//  di_volume_integrate_mat: ∫_Ω m, keeping the native shape of m
type IntegrateMat struct {
	Base
}

// Eval evaluates the integral; functional mode only
func (o *IntegrateMat) Eval(diffVar string, chunkSize int) (seq *Sequence, err error) {
	if diffVar != "" {
		return EmptySequence(), nil
	}
	_, geo, err := o.approx("parameter")
	if err != nil {
		return
	}
	nrow, ncol := fld.PadShape(o.Args.Shape("shape"))
	mq, err := o.matqp(0, o.Args.Mode("mode"), [4]int{-1, -1, nrow, ncol})
	if err != nil {
		return
	}
	it := o.CharFun().Iter(chunkSize, 1, nrow, ncol)
	return newSequence(func() (*Result, error) {
		if !it.Next() {
			return nil, nil
		}
		local := it.LocalChunk()
		status := geo.IntegrateChunk(it.Out(), mq.Chunk(local), local)
		return o.result(it, status, true), nil
	}), nil
}
