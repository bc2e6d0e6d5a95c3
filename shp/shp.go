// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package shp implements reference shapes and integration points
package shp

import (
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// ShpFunc is a shape function which computes S @ natural coordinates r and,
// if derivs==true, also dSdR
//  S    -- [nverts] shape functions
//  dSdR -- [nverts][gndim] derivatives of S with respect to natural coordinates
type ShpFunc func(S []float64, dSdR [][]float64, r []float64, derivs bool)

// Shape holds the definition of a reference shape. Shapes are shared and must not be modified
type Shape struct {
	Type           string      // name; e.g. "lin2"
	Gndim          int         // geometry dimension
	Nverts         int         // number of vertices
	FaceType       string      // geometry type of faces; e.g. "lin2" for "qua4"
	FaceLocalVerts [][]int     // [nfaces][nfaceverts] local vertices of faces
	NatCoords      [][]float64 // [gndim][nverts] natural coordinates of vertices
	Func           ShpFunc     // shape/derivative function
}

// Nfaces returns the number of faces
func (o *Shape) Nfaces() int { return len(o.FaceLocalVerts) }

// NewScratch allocates S and dSdR for this shape
func (o *Shape) NewScratch() (S []float64, dSdR [][]float64) {
	return make([]float64, o.Nverts), utl.Alloc(o.Nverts, o.Gndim)
}

// Get returns an existent Shape structure
func Get(geoType string) (*Shape, error) {
	s, ok := factory[geoType]
	if !ok {
		return nil, chk.Err("cannot find shape type %q in database", geoType)
	}
	return s, nil
}

// Types returns the names of all available shapes
func Types() (names []string) {
	for name := range factory {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

// factory holds all shapes
var factory = make(map[string]*Shape)

// register adds a shape to the factory
func register(s *Shape) {
	if _, ok := factory[s.Type]; ok {
		chk.Panic("cannot register shape %q because it exists already", s.Type)
	}
	factory[s.Type] = s
}
