// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data: meshes, regions and evaluation options
package inp

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"

	"github.com/cpmech/goterms/shp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// Vert holds vertex data
type Vert struct {
	Id  int       `json:"i"` // id
	Tag int       `json:"t"` // tag
	C   []float64 `json:"c"` // coordinates (size==2 or 3)
}

// Cell holds cell data
type Cell struct {
	Id    int    `json:"i"`  // id
	Tag   int    `json:"t"`  // tag
	Type  string `json:"y"`  // geometry type; e.g. "qua4"
	Verts []int  `json:"v"`  // vertices
	FTags []int  `json:"ft"` // face tags; 0 means inner face

	// derived
	Shp *shp.Shape `json:"-"` // reference shape
}

// Mesh holds a mesh for FE analyses
type Mesh struct {

	// from JSON
	Verts []*Vert `json:"verts"` // vertices
	Cells []*Cell `json:"cells"` // cells

	// derived
	Ndim  int      // space dimension
	Xmin  float64  // min x-coordinate
	Xmax  float64  // max x-coordinate
	Ymin  float64  // min y-coordinate
	Ymax  float64  // max y-coordinate
	Zmin  float64  // min z-coordinate
	Zmax  float64  // max z-coordinate
	Types []string // cell types in order of first appearance
}

// ReadMsh reads a mesh for FE analyses
//  Note: returns nil on errors
func ReadMsh(dir, fn string) (o *Mesh, err error) {

	// new mesh
	o = new(Mesh)

	// read file
	fn = filepath.Join(dir, fn)
	b, err := os.ReadFile(os.ExpandEnv(fn))
	if err != nil {
		return nil, chk.Err("cannot read mesh file %q:\n%v", fn, err)
	}

	// decode
	err = json.Unmarshal(b, o)
	if err != nil {
		return nil, chk.Err("cannot unmarshal mesh file %q:\n%v", fn, err)
	}

	// check and derived data
	err = o.Init()
	if err != nil {
		return nil, chk.Err("mesh file %q is invalid:\n%v", fn, err)
	}
	return
}

// Init checks the mesh and computes derived data
func (o *Mesh) Init() (err error) {

	// vertices
	if len(o.Verts) < 2 {
		return chk.Err("at least 2 vertices are required in mesh")
	}
	o.Ndim = len(o.Verts[0].C)
	if o.Ndim < 1 || o.Ndim > 3 {
		return chk.Err("space dimension must be 1, 2 or 3. ndim=%d is invalid", o.Ndim)
	}
	o.Xmin, o.Ymin, o.Zmin = math.MaxFloat64, math.MaxFloat64, math.MaxFloat64
	o.Xmax, o.Ymax, o.Zmax = -math.MaxFloat64, -math.MaxFloat64, -math.MaxFloat64
	for i, v := range o.Verts {
		if v.Id != i {
			return chk.Err("vertices ids must coincide with order in \"verts\" list. %d != %d", v.Id, i)
		}
		if len(v.C) != o.Ndim {
			return chk.Err("vertex %d has %d coordinates; but ndim=%d", v.Id, len(v.C), o.Ndim)
		}
		o.Xmin = math.Min(o.Xmin, v.C[0])
		o.Xmax = math.Max(o.Xmax, v.C[0])
		if o.Ndim > 1 {
			o.Ymin = math.Min(o.Ymin, v.C[1])
			o.Ymax = math.Max(o.Ymax, v.C[1])
		}
		if o.Ndim > 2 {
			o.Zmin = math.Min(o.Zmin, v.C[2])
			o.Zmax = math.Max(o.Zmax, v.C[2])
		}
	}

	// cells
	if len(o.Cells) < 1 {
		return chk.Err("at least 1 cell is required in mesh")
	}
	o.Types = make([]string, 0)
	for i, c := range o.Cells {
		if c.Id != i {
			return chk.Err("cells ids must coincide with order in \"cells\" list. %d != %d", c.Id, i)
		}
		c.Shp, err = shp.Get(c.Type)
		if err != nil {
			return chk.Err("cell %d: %v", c.Id, err)
		}
		if c.Shp.Gndim != o.Ndim {
			return chk.Err("cell %d of type %q has geometry dimension %d; but ndim=%d", c.Id, c.Type, c.Shp.Gndim, o.Ndim)
		}
		if len(c.Verts) != c.Shp.Nverts {
			return chk.Err("cell %d of type %q must have %d vertices; %d given", c.Id, c.Type, c.Shp.Nverts, len(c.Verts))
		}
		for _, v := range c.Verts {
			if v < 0 || v >= len(o.Verts) {
				return chk.Err("cell %d references vertex %d which does not exist", c.Id, v)
			}
		}
		if len(c.FTags) == 0 {
			c.FTags = make([]int, c.Shp.Nfaces())
		}
		if len(c.FTags) != c.Shp.Nfaces() {
			return chk.Err("cell %d of type %q must have %d face tags; %d given", c.Id, c.Type, c.Shp.Nfaces(), len(c.FTags))
		}
		if utl.StrIndexSmall(o.Types, c.Type) < 0 {
			o.Types = append(o.Types, c.Type)
		}
	}
	return
}

// CellCoords returns the coordinate matrix of a particular Cell
//  x -- [ndim][nverts]
func (o *Mesh) CellCoords(cell *Cell) (x [][]float64) {
	x = utl.Alloc(o.Ndim, len(cell.Verts))
	for i := 0; i < o.Ndim; i++ {
		for j, v := range cell.Verts {
			x[i][j] = o.Verts[v].C[i]
		}
	}
	return
}

// FaceCoords returns the coordinate matrix of a face of a particular Cell
//  x -- [ndim][nfaceverts]
func (o *Mesh) FaceCoords(cell *Cell, iface int) (x [][]float64) {
	lverts := cell.Shp.FaceLocalVerts[iface]
	x = utl.Alloc(o.Ndim, len(lverts))
	for i := 0; i < o.Ndim; i++ {
		for j, l := range lverts {
			x[i][j] = o.Verts[cell.Verts[l]].C[i]
		}
	}
	return
}

// FaceVerts returns the global vertex ids of a face of a particular Cell
func (o *Mesh) FaceVerts(cell *Cell, iface int) (verts []int) {
	lverts := cell.Shp.FaceLocalVerts[iface]
	verts = make([]int, len(lverts))
	for j, l := range lverts {
		verts[j] = cell.Verts[l]
	}
	return
}

// String returns a short summary of this mesh
func (o *Mesh) String() string {
	return io.Sf("ndim=%d nverts=%d ncells=%d types=%v", o.Ndim, len(o.Verts), len(o.Cells), o.Types)
}
