// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package term

import (
	"github.com/cpmech/goterms/cache"
	"github.com/cpmech/goterms/fld"
	"github.com/cpmech/gosl/chk"
)

func init() {
	SetAllocator("d_volume", func() Term {
		return &Volume{Base: Base{Info: &Info{
			Name:      "d_volume",
			ArgTypes:  []string{"parameter"},
			Geometry:  []GeomArg{{fld.Volume, "parameter"}},
			UseCaches: map[string][][]string{"volume": {{"parameter"}}},
		}}}
	})
}

// Volume computes the measure of a region: length, area or volume. Over surface
// regions, the measure of the faces is computed
//  d_volume: ∫_Ω 1
type Volume struct {
	Base
}

// Eval returns a single result with the measure of the current group
func (o *Volume) Eval(diffVar string, chunkSize int) (seq *Sequence, err error) {
	if diffVar != "" {
		return EmptySequence(), nil
	}
	if o.grp == nil {
		return nil, chk.Err("%s: current group is not set", o.Info.Name)
	}
	h, names, err := o.handle("volume", 0)
	if err != nil {
		return
	}
	m, err := h.Measure(o.grp, 0, &cache.Params{Integral: o.Integral, State: o.Args.Var(names[0])})
	if err != nil {
		return
	}
	it := o.CharFun().Iter(0, 1, 1, 1)
	return newSequence(func() (*Result, error) {
		if !it.Next() {
			return nil, nil
		}
		return &Result{Val: []float64{o.Sign * m.Val}, Chunk: it.Chunk(), Status: m.Status}, nil
	}), nil
}
