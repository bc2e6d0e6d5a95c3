// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// face tags set by the structured mesh generators
const (
	TagXmin = -10 // faces @ x == xmin
	TagXmax = -11 // faces @ x == xmax
	TagYmin = -20 // faces @ y == ymin
	TagYmax = -21 // faces @ y == ymax
	TagZmin = -30 // faces @ z == zmin
	TagZmax = -31 // faces @ z == zmax
)

// GenLin2 generates a 1D mesh with nx lin2 cells in [xmin, xmax]
func GenLin2(nx int, xmin, xmax float64) (o *Mesh, err error) {
	if nx < 1 {
		return nil, chk.Err("number of divisions must be at least 1. nx=%d is invalid", nx)
	}
	o = new(Mesh)
	X := utl.LinSpace(xmin, xmax, nx+1)
	for i, x := range X {
		o.Verts = append(o.Verts, &Vert{Id: i, C: []float64{x}})
	}
	for i := 0; i < nx; i++ {
		o.Cells = append(o.Cells, &Cell{Id: i, Tag: -1, Type: "lin2", Verts: []int{i, i + 1}, FTags: []int{0, 0}})
	}
	o.Cells[0].FTags[0] = TagXmin
	o.Cells[nx-1].FTags[1] = TagXmax
	err = o.Init()
	return
}

// GenQua4 generates a structured 2D mesh with nx × ny qua4 cells in [xmin,xmax] × [ymin,ymax]
//  Note: vertices are numbered along x first
func GenQua4(nx, ny int, xmin, xmax, ymin, ymax float64) (o *Mesh, err error) {
	if nx < 1 || ny < 1 {
		return nil, chk.Err("number of divisions must be at least 1. nx=%d, ny=%d is invalid", nx, ny)
	}
	o = new(Mesh)
	genVerts2d(o, nx, ny, xmin, xmax, ymin, ymax)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			a := i + j*(nx+1)
			c := &Cell{Id: len(o.Cells), Tag: -1, Type: "qua4"}
			c.Verts = []int{a, a + 1, a + 1 + (nx + 1), a + (nx + 1)}
			c.FTags = []int{0, 0, 0, 0}
			if j == 0 {
				c.FTags[0] = TagYmin
			}
			if i == nx-1 {
				c.FTags[1] = TagXmax
			}
			if j == ny-1 {
				c.FTags[2] = TagYmax
			}
			if i == 0 {
				c.FTags[3] = TagXmin
			}
			o.Cells = append(o.Cells, c)
		}
	}
	err = o.Init()
	return
}

// GenTri3 generates a structured 2D mesh with 2 × nx × ny tri3 cells in [xmin,xmax] × [ymin,ymax]
// by splitting each rectangle along its diagonal
func GenTri3(nx, ny int, xmin, xmax, ymin, ymax float64) (o *Mesh, err error) {
	if nx < 1 || ny < 1 {
		return nil, chk.Err("number of divisions must be at least 1. nx=%d, ny=%d is invalid", nx, ny)
	}
	o = new(Mesh)
	genVerts2d(o, nx, ny, xmin, xmax, ymin, ymax)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			a := i + j*(nx+1)
			b, c, d := a+1, a+1+(nx+1), a+(nx+1)
			lower := &Cell{Id: len(o.Cells), Tag: -1, Type: "tri3", Verts: []int{a, b, c}, FTags: []int{0, 0, 0}}
			if j == 0 {
				lower.FTags[0] = TagYmin
			}
			if i == nx-1 {
				lower.FTags[1] = TagXmax
			}
			o.Cells = append(o.Cells, lower)
			upper := &Cell{Id: len(o.Cells), Tag: -2, Type: "tri3", Verts: []int{a, c, d}, FTags: []int{0, 0, 0}}
			if j == ny-1 {
				upper.FTags[1] = TagYmax
			}
			if i == 0 {
				upper.FTags[2] = TagXmin
			}
			o.Cells = append(o.Cells, upper)
		}
	}
	err = o.Init()
	return
}

// GenHex8 generates a structured 3D mesh with nx × ny × nz hex8 cells in
// [xmin,xmax] × [ymin,ymax] × [zmin,zmax]
func GenHex8(nx, ny, nz int, xmin, xmax, ymin, ymax, zmin, zmax float64) (o *Mesh, err error) {
	if nx < 1 || ny < 1 || nz < 1 {
		return nil, chk.Err("number of divisions must be at least 1. nx=%d, ny=%d, nz=%d is invalid", nx, ny, nz)
	}
	o = new(Mesh)
	X := utl.LinSpace(xmin, xmax, nx+1)
	Y := utl.LinSpace(ymin, ymax, ny+1)
	Z := utl.LinSpace(zmin, zmax, nz+1)
	for _, z := range Z {
		for _, y := range Y {
			for _, x := range X {
				o.Verts = append(o.Verts, &Vert{Id: len(o.Verts), C: []float64{x, y, z}})
			}
		}
	}
	nxy := (nx + 1) * (ny + 1)
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				a := i + j*(nx+1) + k*nxy
				c := &Cell{Id: len(o.Cells), Tag: -1, Type: "hex8"}
				c.Verts = []int{
					a, a + 1, a + 1 + (nx + 1), a + (nx + 1),
					a + nxy, a + 1 + nxy, a + 1 + (nx + 1) + nxy, a + (nx + 1) + nxy,
				}
				c.FTags = make([]int, 6)
				if i == 0 {
					c.FTags[0] = TagXmin
				}
				if i == nx-1 {
					c.FTags[1] = TagXmax
				}
				if j == 0 {
					c.FTags[2] = TagYmin
				}
				if j == ny-1 {
					c.FTags[3] = TagYmax
				}
				if k == 0 {
					c.FTags[4] = TagZmin
				}
				if k == nz-1 {
					c.FTags[5] = TagZmax
				}
				o.Cells = append(o.Cells, c)
			}
		}
	}
	err = o.Init()
	return
}

// genVerts2d generates the vertices of a structured 2D grid
func genVerts2d(o *Mesh, nx, ny int, xmin, xmax, ymin, ymax float64) {
	X := utl.LinSpace(xmin, xmax, nx+1)
	Y := utl.LinSpace(ymin, ymax, ny+1)
	for _, y := range Y {
		for _, x := range X {
			o.Verts = append(o.Verts, &Vert{Id: len(o.Verts), C: []float64{x, y}})
		}
	}
}
