// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fld

import (
	"sync"

	"github.com/cpmech/goterms/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

// Kind defines the kind of geometry an approximation integrates over
type Kind int

// geometry kinds
const (
	Volume Kind = iota
	Surface
)

// String returns the name of kind
func (k Kind) String() string {
	if k == Surface {
		return "Surface"
	}
	return "Volume"
}

// Field holds a nodal (vertex-based) discretisation over a mesh with vdim components per vertex
type Field struct {
	Name string    // name of field
	Vdim int       // number of components per vertex; e.g. 1 for scalars, ndim for vectors
	Msh  *inp.Mesh // the mesh

	// approximations
	mutex   sync.Mutex
	approxs map[string]*Approx // key => approximation
}

// NewField returns a new field
func NewField(name string, vdim int, msh *inp.Mesh) (o *Field, err error) {
	if vdim < 1 {
		return nil, chk.Err("field %q: number of components must be at least 1. vdim=%d is invalid", name, vdim)
	}
	if msh == nil {
		return nil, chk.Err("field %q: mesh is required", name)
	}
	return &Field{Name: name, Vdim: vdim, Msh: msh, approxs: make(map[string]*Approx)}, nil
}

// Ndofs returns the number of degrees of freedom
func (o *Field) Ndofs() int { return len(o.Msh.Verts) * o.Vdim }

// Eqs returns the equation numbers (location array) corresponding to vertices
//  eqs -- [len(verts)*vdim] with eqs[m*vdim+c] = verts[m]*vdim+c
func (o *Field) Eqs(verts []int) (eqs []int) {
	eqs = make([]int, len(verts)*o.Vdim)
	for m, v := range verts {
		for c := 0; c < o.Vdim; c++ {
			eqs[m*o.Vdim+c] = v*o.Vdim + c
		}
	}
	return
}

// GetApproximation returns the approximation and the geometry for a group of a region
func (o *Field) GetApproximation(grp *inp.Group, kind Kind, integral *Integral) (ap *Approx, geo Geometry, err error) {
	key := io.Sf("%s|%v|%s", grp.Key(), kind, integral.Name)
	o.mutex.Lock()
	defer o.mutex.Unlock()
	if a, ok := o.approxs[key]; ok {
		return a, a.Geo, nil
	}
	ap, err = newApprox(o, grp, kind, integral)
	if err != nil {
		return nil, nil, chk.Err("field %q: cannot build %v approximation of group %q:\n%v", o.Name, kind, grp.Key(), err)
	}
	o.approxs[key] = ap
	return ap, ap.Geo, nil
}

// Variable holds values of a field. A virtual (test) variable has no values
//  Note: values are modified by SetVals, SetConst or SetFunc only; these
//        change the version and thus invalidate cached data
type Variable struct {
	Name    string // name of variable; e.g. "u", "p", "q"
	Field   *Field // underlying field
	Virtual bool   // test function

	vals    []float64 // [nverts*vdim] nodal values; nil for virtual variables
	version int
}

// NewVariable returns a variable with zero values
func NewVariable(name string, field *Field) *Variable {
	return &Variable{Name: name, Field: field, vals: make([]float64, field.Ndofs())}
}

// NewVirtual returns a virtual (test) variable
func NewVirtual(name string, field *Field) *Variable {
	return &Variable{Name: name, Field: field, Virtual: true}
}

// Version returns a number that changes every time values are modified
func (o *Variable) Version() int { return o.version }

// Vals returns a copy of the nodal values; nil for virtual variables
func (o *Variable) Vals() []float64 {
	if o.vals == nil {
		return nil
	}
	return append([]float64{}, o.vals...)
}

// SetVals sets all values
func (o *Variable) SetVals(vals []float64) (err error) {
	if o.Virtual {
		return chk.Err("cannot set values of virtual variable %q", o.Name)
	}
	if len(vals) != o.Field.Ndofs() {
		return chk.Err("variable %q requires %d values. %d is invalid", o.Name, o.Field.Ndofs(), len(vals))
	}
	copy(o.vals, vals)
	o.version++
	return
}

// SetConst sets all components at all vertices
//  vals -- [vdim] values of components
func (o *Variable) SetConst(vals ...float64) (err error) {
	if o.Virtual {
		return chk.Err("cannot set values of virtual variable %q", o.Name)
	}
	if len(vals) != o.Field.Vdim {
		return chk.Err("variable %q requires %d components. %d is invalid", o.Name, o.Field.Vdim, len(vals))
	}
	for v := range o.Field.Msh.Verts {
		copy(o.vals[v*o.Field.Vdim:], vals)
	}
	o.version++
	return
}

// SetFunc sets values at vertices by means of y = F(t, x) functions
//  fcns -- [vdim] one function per component
func (o *Variable) SetFunc(t float64, fcns ...dbf.T) (err error) {
	if o.Virtual {
		return chk.Err("cannot set values of virtual variable %q", o.Name)
	}
	vdim := o.Field.Vdim
	if len(fcns) != vdim {
		return chk.Err("variable %q requires %d functions. %d is invalid", o.Name, vdim, len(fcns))
	}
	evalAtVerts(o.vals, o.Field.Msh, t, fcns)
	o.version++
	return
}

// GetApproximation returns the approximation and geometry of the underlying field
func (o *Variable) GetApproximation(grp *inp.Group, kind Kind, integral *Integral) (*Approx, Geometry, error) {
	return o.Field.GetApproximation(grp, kind, integral)
}

// CoordFcns returns the functions y = x[i] for i in [0, ndim)
func CoordFcns(ndim int) (fcns []dbf.T) {
	coefs := []string{"a0", "a1", "a2"}
	fcns = make([]dbf.T, ndim)
	for i := 0; i < ndim; i++ {
		fcns[i] = dbf.New("xpoly1", dbf.Params{&dbf.P{N: coefs[i], V: 1}})
	}
	return
}

// evalAtVerts computes res[v*n+i] = fcns[i].F(t, x_v) for all vertices v of mesh
//  Note: coordinates are padded with zeros up to three components
func evalAtVerts(res []float64, msh *inp.Mesh, t float64, fcns []dbf.T) {
	n := len(fcns)
	x := make([]float64, 3)
	for v, vert := range msh.Verts {
		copy(x, vert.C)
		for i, f := range fcns {
			res[v*n+i] = f.F(t, x)
		}
	}
}
