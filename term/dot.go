// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package term

import (
	"fmt"

	"github.com/cpmech/goterms/cache"
	"github.com/cpmech/goterms/fld"
	"gonum.org/v1/gonum/floats"
)

func init() {
	SetAllocator("d_volume_dot", func() Term {
		return &Dot{Base: Base{Info: &Info{
			Name:      "d_volume_dot",
			ArgTypes:  []string{"parameter_1", "parameter_2"},
			Geometry:  []GeomArg{{fld.Volume, "parameter_1"}},
			UseCaches: map[string][][]string{"state_in_volume_qp": {{"parameter_1"}, {"parameter_2"}}},
		}}, cacheName: "state_in_volume_qp"}
	})
	SetAllocator("d_surface_dot", func() Term {
		return &Dot{Base: Base{Info: &Info{
			Name:      "d_surface_dot",
			ArgTypes:  []string{"parameter_1", "parameter_2"},
			Geometry:  []GeomArg{{fld.Surface, "parameter_1"}},
			UseCaches: map[string][][]string{"state_in_surface_qp": {{"parameter_1"}, {"parameter_2"}}},
			DofConn:   fld.Surface,
		}}, cacheName: "state_in_surface_qp"}
	})
	SetAllocator("d_volume_wdot", func() Term {
		return &Dot{Base: Base{Info: &Info{
			Name:     "d_volume_wdot",
			ArgTypes: []string{"material", "parameter_1", "parameter_2"},
			Geometry: []GeomArg{{fld.Volume, "parameter_1"}},
			UseCaches: map[string][][]string{
				"state_in_volume_qp": {{"parameter_1"}, {"parameter_2"}},
				"mat_in_qp":          {{"material", "parameter_1"}},
			},
		}}, cacheName: "state_in_volume_qp", weighted: true}
	})
}

// Dot integrates the dot product of two parameters, optionally weighted by a scalar material
//  d_volume_dot:  ∫_Ω p r  or  ∫_Ω u⋅w
//  d_surface_dot: ∫_Γ p r  or  ∫_Γ u⋅w
//  d_volume_wdot: ∫_Ω y p r
type Dot struct {
	Base
	cacheName string
	weighted  bool
}

// Eval evaluates the integral; functional mode only
func (o *Dot) Eval(diffVar string, chunkSize int) (seq *Sequence, err error) {
	if diffVar != "" {
		return EmptySequence(), nil
	}
	p1, p2 := o.Args.Var("parameter_1"), o.Args.Var("parameter_2")
	vdim := p1.Field.Vdim
	if p2.Field.Vdim != vdim {
		return nil, fmt.Errorf("%w: %s: parameters %q and %q have different number of components", ErrArgs, o.Info.Name, p1.Name, p2.Name)
	}
	if o.weighted && vdim > 1 {
		return nil, notImplemented(o.Info.Name, "parameters with %d components", vdim)
	}
	_, geo, err := o.approx("parameter_1")
	if err != nil {
		return
	}
	v1, err := o.state(o.cacheName, 0)
	if err != nil {
		return
	}
	v2, err := o.state(o.cacheName, 1)
	if err != nil {
		return
	}
	var mq *cache.MatQP
	if o.weighted {
		mq, err = o.matqp(0, "", [4]int{-1, -1, 1, 1})
		if err != nil {
			return
		}
	}
	nqp := geo.Nqp()
	it := o.CharFun().Iter(chunkSize, 1, 1, 1)
	return newSequence(func() (*Result, error) {
		if !it.Next() {
			return nil, nil
		}
		local := it.LocalChunk()
		qp := fld.NewArray(len(local), nqp, 1, 1)
		var m *fld.Array
		if o.weighted {
			m = mq.Chunk(local)
		}
		for k, e := range local {
			for q := 0; q < nqp; q++ {
				s := floats.Dot(v1.Block(e, q), v2.Block(e, q))
				if m != nil {
					s *= m.At(k, q, 0, 0)
				}
				qp.Set(k, q, 0, 0, s)
			}
		}
		status := geo.IntegrateChunk(it.Out(), qp, local)
		return o.result(it, status, true), nil
	}), nil
}
