// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fld

import (
	"github.com/cpmech/goterms/shp"
	"gonum.org/v1/gonum/floats"
)

// integration status codes
const (
	StatusOK          = 0 // success
	StatusBadJacobian = 1 // non-positive Jacobian determinant found
	StatusBadShape    = 2 // shapes of arrays are inconsistent
)

// Geometry integrates quantities given at quadrature points over elements
type Geometry interface {

	// IntegrateChunk computes out[k] = Σ_q qp[k,q] ⋅ detJ[chunk[k],q] ⋅ w[q]
	//  out   -- (len(chunk), 1, nrow, ncol)
	//  qp    -- (len(chunk), nqp, nrow, ncol)
	//  chunk -- indices of elements
	// Returns a status code; StatusOK on success
	IntegrateChunk(out, qp *Array, chunk []int) (status int)

	Nel() int        // number of elements
	Nqp() int        // number of quadrature points
	Normals() *Array // (nel, nqp, ndim, 1) unit outward normals; nil for volume geometries
}

// JacobianGeometry implements Geometry with precomputed determinants of the Jacobian
type JacobianGeometry struct {
	DetJ [][]float64 // [nel][nqp] determinants of Jacobian (or norm of normal vector @ faces)
	W    []float64   // [nqp] weights of quadrature points
	Nrms *Array      // (nel, nqp, ndim, 1) unit normals; nil for volume geometries
}

// newJacobianGeometry allocates a new geometry. ndim > 0 allocates normals
func newJacobianGeometry(nel int, ips []shp.Ipoint, ndim int) (o *JacobianGeometry) {
	o = new(JacobianGeometry)
	nqp := len(ips)
	o.DetJ = make([][]float64, nel)
	for e := 0; e < nel; e++ {
		o.DetJ[e] = make([]float64, nqp)
	}
	o.W = make([]float64, nqp)
	for q, ip := range ips {
		o.W[q] = ip[3]
	}
	if ndim > 0 {
		o.Nrms = NewArray(nel, nqp, ndim, 1)
	}
	return
}

// Nel returns the number of elements
func (o *JacobianGeometry) Nel() int { return len(o.DetJ) }

// Nqp returns the number of quadrature points
func (o *JacobianGeometry) Nqp() int { return len(o.W) }

// Normals returns the unit normals @ quadrature points
func (o *JacobianGeometry) Normals() *Array { return o.Nrms }

// IntegrateChunk integrates qp over the elements in chunk
func (o *JacobianGeometry) IntegrateChunk(out, qp *Array, chunk []int) (status int) {
	n, nqp := len(chunk), len(o.W)
	if qp.Shape[0] != n || qp.Shape[1] != nqp || out.Shape[0] != n || out.Shape[1] != 1 ||
		out.Shape[2] != qp.Shape[2] || out.Shape[3] != qp.Shape[3] {
		return StatusBadShape
	}
	for k, e := range chunk {
		if e < 0 || e >= len(o.DetJ) {
			return StatusBadShape
		}
		dst := out.Block(k, 0)
		for i := range dst {
			dst[i] = 0
		}
		for q := 0; q < nqp; q++ {
			if o.DetJ[e][q] <= 0 {
				status = StatusBadJacobian
			}
			floats.AddScaled(dst, o.DetJ[e][q]*o.W[q], qp.Block(k, q))
		}
	}
	return
}
