// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fld

import (
	"math"

	"github.com/cpmech/goterms/inp"
	"github.com/cpmech/goterms/shp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"gonum.org/v1/gonum/floats"
)

// Integral holds the definition of a numerical integral
type Integral struct {
	Name  string // name; e.g. "i1"
	Order int    // polynomial order integrated exactly
}

// NewIntegral returns a new integral
func NewIntegral(name string, order int) *Integral {
	return &Integral{Name: name, Order: order}
}

// Approx holds the approximation of a field over a group of elements (cells or faces)
type Approx struct {
	Field    *Field       // field
	Group    *inp.Group   // group of region
	Kind     Kind         // Volume or Surface
	Integral *Integral    // integral defining the quadrature points
	Shape    *shp.Shape   // shape of elements; nil for point faces of 1D meshes
	Ips      []shp.Ipoint // integration points

	// dimensions
	Nel  int // number of elements
	Nqp  int // number of quadrature points per element
	Ndim int // space dimension
	Nep  int // number of nodes per element

	// data
	Conn [][]int  // [nel][nep] vertex ids of elements
	Bf   *Array   // (1, nqp, 1, nep) base functions @ quadrature points
	Bfg  *Array   // (nel, nqp, ndim, nep) gradients of base functions @ quadrature points (Volume only)
	Geo  Geometry // Jacobian-weighted integrator
}

// VDataShape returns (nel, nqp, ndim, nep)
func (o *Approx) VDataShape() (nel, nqp, ndim, nep int) {
	return o.Nel, o.Nqp, o.Ndim, o.Nep
}

// GetBase returns base functions (derivOrder==0) or their gradients (derivOrder==1)
func (o *Approx) GetBase(derivOrder int) (*Array, error) {
	switch derivOrder {
	case 0:
		return o.Bf, nil
	case 1:
		if o.Bfg == nil {
			return nil, chk.Err("gradients of base functions are not available for %v approximations", o.Kind)
		}
		return o.Bfg, nil
	}
	return nil, chk.Err("derivative order %d of base functions is not available", derivOrder)
}

// Interpolate interpolates nodal values to quadrature points
//  vals -- [nverts*vdim] nodal values
//  res  -- (nel, nqp, vdim, 1)
func (o *Approx) Interpolate(vals []float64, vdim int) (res *Array) {
	res = NewArray(o.Nel, o.Nqp, vdim, 1)
	for e, verts := range o.Conn {
		for q := 0; q < o.Nqp; q++ {
			S := o.Bf.Block(0, q)
			blk := res.Block(e, q)
			for m, v := range verts {
				for c := 0; c < vdim; c++ {
					blk[c] += S[m] * vals[v*vdim+c]
				}
			}
		}
	}
	return
}

// newApprox builds the approximation of a field over a group
func newApprox(f *Field, grp *inp.Group, kind Kind, integral *Integral) (o *Approx, err error) {
	o = &Approx{Field: f, Group: grp, Kind: kind, Integral: integral, Ndim: f.Msh.Ndim}
	cshape, err := shp.Get(grp.Type)
	if err != nil {
		return nil, err
	}
	switch kind {
	case Volume:
		if grp.Region.IsSurface() {
			return nil, chk.Err("cannot build volume approximation over surface region %q", grp.Region.Name)
		}
		err = o.initVolume(cshape)
	case Surface:
		if !grp.Region.IsSurface() {
			return nil, chk.Err("cannot build surface approximation over volume region %q", grp.Region.Name)
		}
		err = o.initSurface(cshape)
	default:
		err = chk.Err("geometry kind %d is invalid", kind)
	}
	if err != nil {
		return nil, err
	}
	return
}

// initVolume computes base functions, gradients and Jacobian determinants @ cells
func (o *Approx) initVolume(cshape *shp.Shape) (err error) {

	// shape and integration points
	msh := o.Field.Msh
	if cshape.Gndim != o.Ndim {
		return chk.Err("geometry dimension of %q (%d) must be equal to space dimension (%d)", cshape.Type, cshape.Gndim, o.Ndim)
	}
	o.Shape = cshape
	o.Ips, err = shp.GetIps(cshape.Type, o.Integral.Order)
	if err != nil {
		return
	}
	o.Nel, o.Nqp, o.Nep = len(o.Group.Cells), len(o.Ips), cshape.Nverts

	// base functions
	S, dSdR := cshape.NewScratch()
	o.Bf = NewArray(1, o.Nqp, 1, o.Nep)
	for q, ip := range o.Ips {
		cshape.Func(o.Bf.Block(0, q), dSdR, ip, false)
	}

	// connectivity, gradients and determinants
	geo := newJacobianGeometry(o.Nel, o.Ips, 0)
	o.Conn = make([][]int, o.Nel)
	o.Bfg = NewArray(o.Nel, o.Nqp, o.Ndim, o.Nep)
	J := la.NewMatrix(o.Ndim, o.Ndim)
	Jinv := la.NewMatrix(o.Ndim, o.Ndim)
	for e, cid := range o.Group.Cells {
		cell := msh.Cells[cid]
		o.Conn[e] = cell.Verts
		X := msh.CellCoords(cell) // [ndim][nverts]
		for q, ip := range o.Ips {
			cshape.Func(S, dSdR, ip, true)
			jacobian(J, X, dSdR)
			det := la.MatInvSmall(Jinv, J, 0)
			geo.DetJ[e][q] = det
			if det == 0 {
				continue
			}
			blk := o.Bfg.Block(e, q) // dS/dx = dS/dR ⋅ dR/dx
			for i := 0; i < o.Ndim; i++ {
				for m := 0; m < o.Nep; m++ {
					for j := 0; j < o.Ndim; j++ {
						blk[i*o.Nep+m] += dSdR[m][j] * Jinv.Get(j, i)
					}
				}
			}
		}
	}
	o.Geo = geo
	return
}

// initSurface computes base functions, normals and Jacobian determinants @ faces
func (o *Approx) initSurface(cshape *shp.Shape) (err error) {

	// shape and integration points
	msh := o.Field.Msh
	if cshape.Gndim != o.Ndim {
		return chk.Err("geometry dimension of %q (%d) must be equal to space dimension (%d)", cshape.Type, cshape.Gndim, o.Ndim)
	}
	o.Nel = len(o.Group.Faces)
	o.Conn = make([][]int, o.Nel)
	for e, face := range o.Group.Faces {
		o.Conn[e] = msh.FaceVerts(msh.Cells[face.Cell], face.Idx)
	}

	// faces of 1D cells are points
	if cshape.FaceType == "" {
		o.Ips = []shp.Ipoint{{0, 0, 0, 1}}
		o.Nqp, o.Nep = 1, 1
		o.Bf = NewArray(1, 1, 1, 1)
		o.Bf.Data[0] = 1
		geo := newJacobianGeometry(o.Nel, o.Ips, o.Ndim)
		for e, face := range o.Group.Faces {
			geo.DetJ[e][0] = 1
			geo.Nrms.Set(e, 0, 0, 0, cshape.NatCoords[0][cshape.FaceLocalVerts[face.Idx][0]])
		}
		o.Geo = geo
		return
	}

	// face shape
	fshape, err := shp.Get(cshape.FaceType)
	if err != nil {
		return
	}
	o.Shape = fshape
	o.Ips, err = shp.GetIps(fshape.Type, o.Integral.Order)
	if err != nil {
		return
	}
	o.Nqp, o.Nep = len(o.Ips), fshape.Nverts

	// base functions
	S, dSdR := fshape.NewScratch()
	o.Bf = NewArray(1, o.Nqp, 1, o.Nep)
	for q, ip := range o.Ips {
		fshape.Func(o.Bf.Block(0, q), dSdR, ip, false)
	}

	// determinants and normals
	geo := newJacobianGeometry(o.Nel, o.Ips, o.Ndim)
	T := la.NewMatrix(o.Ndim, fshape.Gndim)
	for e, face := range o.Group.Faces {
		X := msh.FaceCoords(msh.Cells[face.Cell], face.Idx) // [ndim][nfaceverts]
		for q, ip := range o.Ips {
			fshape.Func(S, dSdR, ip, true)
			jacobian(T, X, dSdR) // tangents: dx/dR
			nvec := geo.Nrms.Block(e, q)
			if o.Ndim == 2 {
				nvec[0], nvec[1] = T.Get(1, 0), -T.Get(0, 0)
			} else {
				nvec[0] = T.Get(1, 0)*T.Get(2, 1) - T.Get(2, 0)*T.Get(1, 1)
				nvec[1] = T.Get(2, 0)*T.Get(0, 1) - T.Get(0, 0)*T.Get(2, 1)
				nvec[2] = T.Get(0, 0)*T.Get(1, 1) - T.Get(1, 0)*T.Get(0, 1)
			}
			det := math.Sqrt(floats.Dot(nvec, nvec))
			geo.DetJ[e][q] = det
			if det > 0 {
				for i := range nvec {
					nvec[i] /= det
				}
			}
		}
	}
	o.Geo = geo
	return
}

// String returns a short description of this approximation
func (o *Approx) String() string {
	return io.Sf("%v approximation of %q on %q: nel=%d nqp=%d ndim=%d nep=%d", o.Kind, o.Field.Name, o.Group.Key(), o.Nel, o.Nqp, o.Ndim, o.Nep)
}

// jacobian computes J = dx/dR = X ⋅ dS/dR
//  X    -- [ndim][nverts] coordinates
//  dSdR -- [nverts][gndim] derivatives of shape functions
func jacobian(J *la.Matrix, X, dSdR [][]float64) {
	for i := 0; i < J.M; i++ {
		for j := 0; j < J.N; j++ {
			J.Set(i, j, 0)
			for m := range dSdR {
				J.Add(i, j, X[i][m]*dSdR[m][j])
			}
		}
	}
}
