// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cache

import (
	"github.com/cpmech/goterms/fld"
	"github.com/cpmech/goterms/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

func init() {
	SetAllocator("volume", func() DataCache { return new(Volume) })
}

// Volume computes the measure of a group by integrating 1 over its cells or faces
type Volume struct{}

// Name returns the name of this cache
func (o *Volume) Name() string { return "volume" }

// Kinds returns the kinds of data computed by this cache
func (o *Volume) Kinds() []string { return []string{KindVolume} }

// Compute computes the measure and the integration status
func (o *Volume) Compute(kind string, grp *inp.Group, prm *Params) (val interface{}, err error) {
	if prm.State == nil {
		return nil, chk.Err("volume: variable defining the geometry is required")
	}
	gkind := fld.Volume
	if grp.Region.IsSurface() {
		gkind = fld.Surface
	}
	_, geo, err := prm.State.GetApproximation(grp, gkind, prm.Integral)
	if err != nil {
		return
	}
	nel := geo.Nel()
	qp := fld.NewArray(nel, geo.Nqp(), 1, 1)
	qp.Fill(1)
	out := fld.NewArray(nel, 1, 1, 1)
	status := geo.IntegrateChunk(out, qp, utl.IntRange(nel))
	return &Measure{Val: out.Sum(), Status: status}, nil
}
