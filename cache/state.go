// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cache

import (
	"github.com/cpmech/goterms/fld"
	"github.com/cpmech/goterms/inp"
	"github.com/cpmech/gosl/chk"
)

func init() {
	SetAllocator("state_in_volume_qp", func() DataCache { return &StateInQP{name: "state_in_volume_qp", kind: fld.Volume} })
	SetAllocator("state_in_surface_qp", func() DataCache { return &StateInQP{name: "state_in_surface_qp", kind: fld.Surface} })
}

// StateInQP interpolates values of a variable to quadrature points of cells or faces
type StateInQP struct {
	name string
	kind fld.Kind
}

// Name returns the name of this cache
func (o *StateInQP) Name() string { return o.name }

// Kinds returns the kinds of data computed by this cache
func (o *StateInQP) Kinds() []string { return []string{KindState} }

// Compute computes (nel, nqp, vdim, 1) values @ quadrature points
func (o *StateInQP) Compute(kind string, grp *inp.Group, prm *Params) (val interface{}, err error) {
	v := prm.State
	if v == nil {
		return nil, chk.Err("%s: variable is required", o.name)
	}
	if v.Virtual {
		return nil, chk.Err("%s: cannot interpolate values of virtual variable %q", o.name, v.Name)
	}
	ap, _, err := v.GetApproximation(grp, o.kind, prm.Integral)
	if err != nil {
		return
	}
	return ap.Interpolate(v.Vals(), v.Field.Vdim), nil
}
