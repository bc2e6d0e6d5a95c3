// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package term

import (
	"fmt"

	"github.com/cpmech/goterms/cache"
	"github.com/cpmech/goterms/fld"
	"github.com/cpmech/goterms/inp"
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/floats"
)

// Base holds the data shared by all terms
type Base struct {
	Info     *Info         // static description
	Msh      *inp.Mesh     // mesh
	Region   *inp.Region   // region
	Sign     float64       // sign; e.g. -1 or 1
	Integral *fld.Integral // quadrature
	Args     *Args         // arguments
	Caches   *cache.Caches // data shared with other terms

	grp *inp.Group // current group
}

// GetBase returns the base of a term
func (o *Base) GetBase() *Base { return o }

// Setup binds the term to a region and arguments and checks the cache dependencies
func (o *Base) Setup(msh *inp.Mesh, reg *inp.Region, sign float64, integral *fld.Integral, args *Args, caches *cache.Caches) (err error) {
	if msh == nil || reg == nil || integral == nil || args == nil || caches == nil {
		return chk.Err("%s: mesh, region, integral, arguments and caches are required", o.Info.Name)
	}
	o.Msh, o.Region, o.Sign, o.Integral, o.Args, o.Caches = msh, reg, sign, integral, args, caches
	for _, g := range o.Info.Geometry {
		if !args.Has(g.Arg) || args.Var(g.Arg) == nil {
			return fmt.Errorf("%w: %s: geometry argument %q is not a variable", ErrArgs, o.Info.Name, g.Arg)
		}
	}
	for name, slots := range o.Info.UseCaches {
		if !cache.Has(name) {
			return fmt.Errorf("%w: %s uses cache %q", cache.ErrUnknownCache, o.Info.Name, name)
		}
		for _, names := range slots {
			for _, a := range names {
				if !args.Has(a) {
					return fmt.Errorf("%w: %s: cache %q uses argument %q which is not declared", ErrArgs, o.Info.Name, name, a)
				}
			}
		}
	}
	return
}

// Groups returns the groups of the region
func (o *Base) Groups() ([]*inp.Group, error) { return o.Region.Groups(o.Msh) }

// SetCurrentGroup sets the group to be evaluated by Eval
func (o *Base) SetCurrentGroup(grp *inp.Group) { o.grp = grp }

// CurrentGroup returns the group to be evaluated by Eval
func (o *Base) CurrentGroup() *inp.Group { return o.grp }

// CharFun returns the characteristic function of the current group
func (o *Base) CharFun() *CharFun { return NewCharFun(o.grp) }

// approx returns the approximation of a geometry argument
func (o *Base) approx(argName string) (ap *fld.Approx, geo fld.Geometry, err error) {
	if o.grp == nil {
		return nil, nil, chk.Err("%s: current group is not set", o.Info.Name)
	}
	for _, g := range o.Info.Geometry {
		if g.Arg == argName {
			return o.Args.Var(argName).GetApproximation(o.grp, g.Kind, o.Integral)
		}
	}
	return nil, nil, chk.Err("%s: argument %q does not define a geometry", o.Info.Name, argName)
}

// handle returns the cache handle of a slot
func (o *Base) handle(name string, slot int) (h *cache.Handle, names []string, err error) {
	slots := o.Info.UseCaches[name]
	if slot >= len(slots) {
		return nil, nil, chk.Err("%s: cache %q has no slot %d", o.Info.Name, name, slot)
	}
	names = slots[slot]
	h, err = o.Caches.Handle(name, o.Args.versioned(names)...)
	return
}

// state returns the values of the variable of a slot of a state cache @ quadrature points
func (o *Base) state(name string, slot int) (res *fld.Array, err error) {
	h, names, err := o.handle(name, slot)
	if err != nil {
		return
	}
	return h.State(o.grp, slot, &cache.Params{Integral: o.Integral, State: o.Args.Var(names[0])})
}

// matqp returns the material of a slot of mat_in_qp @ quadrature points. The slot
// lists the material and the variable defining the approximation
func (o *Base) matqp(slot int, mode string, assumed ...[4]int) (res *cache.MatQP, err error) {
	h, names, err := o.handle("mat_in_qp", slot)
	if err != nil {
		return
	}
	prm := &cache.Params{
		Integral:      o.Integral,
		Mat:           o.Args.Mat(names[0]),
		State:         o.Args.Var(names[1]),
		ModeIn:        mode,
		AssumedShapes: assumed,
	}
	return h.MatQP(o.grp, slot, prm)
}

// result returns the result of the current chunk after applying the sign
func (o *Base) result(it *ChunkIter, status int, reduce bool) *Result {
	out := it.Out()
	if o.Sign != 1 {
		floats.Scale(o.Sign, out.Data)
	}
	res := &Result{Out: out, Chunk: it.Chunk(), Status: status}
	if reduce {
		res.Val = out.SumElems()
	}
	return res
}
