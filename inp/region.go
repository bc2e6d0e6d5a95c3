// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Face identifies a face of a cell
type Face struct {
	Cell int // cell id
	Idx  int // local index of face in cell
}

// Region holds a named subset of the mesh: cells (volume regions) or cell faces (surface regions)
type Region struct {
	Name  string // name; e.g. "Omega", "Gamma"
	Cells []int  // cell ids (volume region)
	Faces []Face // faces (surface region)

	// derived
	groups []*Group
}

// Group holds the part of a region made of cells of a single type
//  Note: elements of a volume group are the cells; elements of a surface group are the faces
type Group struct {
	Idx      int     // index of group in region
	Region   *Region // parent region
	Type     string  // cell type; e.g. "qua4"
	Cells    []int   // ids of cells in group
	Faces    []Face  // [nfaces] faces in group (surface regions only)
	FaceCell []int   // [nfaces] position of the cell of each face in Cells (surface regions only)
}

// IsSurface tells whether this region is made of faces
func (o *Region) IsSurface() bool { return len(o.Faces) > 0 }

// Nel returns the number of elements in group: cells or faces
func (o *Group) Nel() int {
	if o.Region.IsSurface() {
		return len(o.Faces)
	}
	return len(o.Cells)
}

// Key returns a string identifying this group
func (o *Group) Key() string {
	return io.Sf("%s:%d:%s", o.Region.Name, o.Idx, o.Type)
}

// Groups splits the region into groups of cells with the same type
//  Note: an empty region has no groups
func (o *Region) Groups(msh *Mesh) (groups []*Group, err error) {
	if o.groups != nil {
		return o.groups, nil
	}
	if len(o.Cells) == 0 && len(o.Faces) == 0 {
		o.groups = []*Group{}
		return o.groups, nil
	}
	type2grp := make(map[string]*Group)
	get := func(cid int) (*Group, error) {
		if cid < 0 || cid >= len(msh.Cells) {
			return nil, chk.Err("region %q references cell %d which does not exist", o.Name, cid)
		}
		typ := msh.Cells[cid].Type
		g, ok := type2grp[typ]
		if !ok {
			g = &Group{Region: o, Type: typ}
			type2grp[typ] = g
		}
		return g, nil
	}
	if o.IsSurface() {
		pos := make(map[int]int)
		for _, f := range o.Faces {
			g, e := get(f.Cell)
			if e != nil {
				return nil, e
			}
			if f.Idx < 0 || f.Idx >= msh.Cells[f.Cell].Shp.Nfaces() {
				return nil, chk.Err("region %q references face %d of cell %d which does not exist", o.Name, f.Idx, f.Cell)
			}
			p, ok := pos[f.Cell]
			if !ok {
				p = len(g.Cells)
				pos[f.Cell] = p
				g.Cells = append(g.Cells, f.Cell)
			}
			g.Faces = append(g.Faces, f)
			g.FaceCell = append(g.FaceCell, p)
		}
	} else {
		for _, cid := range o.Cells {
			g, e := get(cid)
			if e != nil {
				return nil, e
			}
			g.Cells = append(g.Cells, cid)
		}
	}

	// sort groups following the order of types in mesh
	for _, typ := range msh.Types {
		if g, ok := type2grp[typ]; ok {
			g.Idx = len(groups)
			groups = append(groups, g)
		}
	}
	o.groups = groups
	return
}

// RegionAll returns a volume region with all cells
func (o *Mesh) RegionAll(name string) *Region {
	reg := &Region{Name: name, Cells: make([]int, len(o.Cells))}
	for i := range o.Cells {
		reg.Cells[i] = i
	}
	return reg
}

// RegionCellTags returns a volume region with the cells with given tags
func (o *Mesh) RegionCellTags(name string, tags ...int) *Region {
	reg := &Region{Name: name}
	for _, c := range o.Cells {
		if hasTag(tags, c.Tag) {
			reg.Cells = append(reg.Cells, c.Id)
		}
	}
	return reg
}

// RegionFaceTags returns a surface region with the faces with given tags
func (o *Mesh) RegionFaceTags(name string, tags ...int) *Region {
	reg := &Region{Name: name}
	for _, c := range o.Cells {
		for k, ft := range c.FTags {
			if ft != 0 && hasTag(tags, ft) {
				reg.Faces = append(reg.Faces, Face{c.Id, k})
			}
		}
	}
	return reg
}

// RegionBoundary returns a surface region with all faces that are not shared by two cells
func (o *Mesh) RegionBoundary(name string) *Region {
	count := make(map[string]int)
	keys := make([][]string, len(o.Cells))
	for _, c := range o.Cells {
		keys[c.Id] = make([]string, c.Shp.Nfaces())
		for k := 0; k < c.Shp.Nfaces(); k++ {
			verts := o.FaceVerts(c, k)
			sort.Ints(verts)
			key := io.Sf("%v", verts)
			keys[c.Id][k] = key
			count[key]++
		}
	}
	reg := &Region{Name: name}
	for _, c := range o.Cells {
		for k, key := range keys[c.Id] {
			if count[key] == 1 {
				reg.Faces = append(reg.Faces, Face{c.Id, k})
			}
		}
	}
	return reg
}

func hasTag(tags []int, tag int) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
