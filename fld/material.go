// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fld

import (
	"github.com/cpmech/goterms/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// material modes
const (
	ModeConst      = "const"       // one set of values for the whole domain
	ModeVertex     = "vertex"      // one set of values per vertex
	ModeElementAvg = "element_avg" // one set of values per cell
	ModeQp         = ""            // values already given at quadrature points
)

// Material holds the values of a material parameter with native shape (), (n) or (n, m)
//  Note: values are modified by SetVals only; it changes the version and thus invalidates cached data
type Material struct {
	Name  string // name; e.g. "m.val"
	Mode  string // how values are distributed; see Mode constants
	Shape []int  // native shape of parameter

	vals    []float64
	version int
}

// NewMaterial returns a new material
func NewMaterial(name, mode string, shape []int, vals []float64) (o *Material, err error) {
	switch mode {
	case ModeConst, ModeVertex, ModeElementAvg, ModeQp:
	default:
		return nil, chk.Err("material %q: mode %q is invalid", name, mode)
	}
	if len(shape) > 2 {
		return nil, chk.Err("material %q: shape can have up to two dimensions. %v is invalid", name, shape)
	}
	o = &Material{Name: name, Mode: mode, Shape: append([]int{}, shape...), vals: append([]float64{}, vals...)}
	return
}

// NewConstMaterial returns a material with constant value(s)
func NewConstMaterial(name string, shape []int, vals ...float64) (*Material, error) {
	return NewMaterial(name, ModeConst, shape, vals)
}

// NewPrmsMaterial returns a constant material with values taken from a set of parameters
//  names -- names of parameters, in the order of values; all parameters are taken if names is empty
func NewPrmsMaterial(name string, shape []int, prms dbf.Params, names ...string) (o *Material, err error) {
	if len(names) == 0 {
		for _, p := range prms {
			names = append(names, p.N)
		}
	}
	vals := make([]float64, len(names))
	for i, n := range names {
		p := prms.Find(n)
		if p == nil {
			return nil, chk.Err("material %q: cannot find parameter named %q", name, n)
		}
		vals[i] = p.V
	}
	return NewMaterial(name, ModeConst, shape, vals)
}

// NewFuncMaterial returns a vertex material with values computed by y = F(t, x) functions
//  fcns -- one function per component of shape
func NewFuncMaterial(name string, msh *inp.Mesh, t float64, shape []int, fcns ...dbf.T) (o *Material, err error) {
	nrow, ncol := PadShape(shape)
	if len(fcns) != nrow*ncol {
		return nil, chk.Err("material %q: shape %v requires %d functions. %d is invalid", name, shape, nrow*ncol, len(fcns))
	}
	vals := make([]float64, len(msh.Verts)*len(fcns))
	evalAtVerts(vals, msh, t, fcns)
	return NewMaterial(name, ModeVertex, shape, vals)
}

// Version returns a number that changes every time values are modified
func (o *Material) Version() int { return o.version }

// Vals returns a copy of the values
func (o *Material) Vals() []float64 { return append([]float64{}, o.vals...) }

// SetVals sets new values
func (o *Material) SetVals(vals []float64) {
	o.vals = append(o.vals[:0], vals...)
	o.version++
}

// RowsCols returns the shape padded to two dimensions: () => 1×1, (n) => n×1
func (o *Material) RowsCols() (nrow, ncol int) {
	return PadShape(o.Shape)
}

// Size returns the number of values at one point
func (o *Material) Size() int {
	r, c := o.RowsCols()
	return r * c
}

// PadShape pads shapes with fewer than two dimensions with trailing singleton axes
func PadShape(shape []int) (nrow, ncol int) {
	switch len(shape) {
	case 0:
		return 1, 1
	case 1:
		return shape[0], 1
	}
	return shape[0], shape[1]
}
