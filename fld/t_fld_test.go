// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fld

import (
	"testing"

	"github.com/cpmech/goterms/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// integrate integrates qp over all elements of geo
func integrate(tst *testing.T, geo Geometry, qp *Array) (res []float64, status int) {
	chunk := utl.IntRange(geo.Nel())
	out := NewArray(len(chunk), 1, qp.Shape[2], qp.Shape[3])
	status = geo.IntegrateChunk(out, qp, chunk)
	return out.SumElems(), status
}

// linear returns y = c + a0 x0 + a1 x1
func linear(c, a0, a1 float64) dbf.T {
	return dbf.New("add", dbf.Params{
		&dbf.P{N: "a", V: 1},
		&dbf.P{N: "b", V: 1},
		&dbf.P{N: "fa", Fcn: dbf.New("cte", dbf.Params{&dbf.P{N: "c", V: c}})},
		&dbf.P{N: "fb", Fcn: dbf.New("xpoly1", dbf.Params{&dbf.P{N: "a0", V: a0}, &dbf.P{N: "a1", V: a1}})},
	})
}

// firstGroup returns the first group of region
func firstGroup(tst *testing.T, msh *inp.Mesh, reg *inp.Region) *inp.Group {
	groups, err := reg.Groups(msh)
	if err != nil {
		tst.Fatalf("Groups failed:\n%v", err)
	}
	return groups[0]
}

func Test_array01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("array01")

	a := NewArray(3, 2, 2, 1)
	chk.Int(tst, "size", a.Size(), 2)
	chk.Int(tst, "nel", a.Nel(), 3)
	for e := 0; e < 3; e++ {
		for q := 0; q < 2; q++ {
			a.Set(e, q, 0, 0, float64(e))
			a.Set(e, q, 1, 0, float64(10*q))
		}
	}
	io.Pforan("a = %v\n", a)
	chk.Float64(tst, "a[2,1,1,0]", 1e-17, a.At(2, 1, 1, 0), 10)
	chk.Array(tst, "block(1,1)", 1e-17, a.Block(1, 1), []float64{1, 10})
	chk.Array(tst, "sumElems", 1e-17, a.SumElems(), []float64{6, 30})
	chk.Float64(tst, "sum", 1e-17, a.Sum(), 36)

	h := a.Head(2)
	chk.Ints(tst, "head shape", h.Shape[:], []int{2, 2, 2, 1})
	h.Set(1, 0, 0, 0, 123)
	chk.Float64(tst, "head shares data", 1e-17, a.At(1, 0, 0, 0), 123)

	r := a.Rows([]int{2, 0})
	chk.Ints(tst, "rows shape", r.Shape[:], []int{2, 2, 2, 1})
	chk.Array(tst, "rows block(0,1)", 1e-17, r.Block(0, 1), []float64{2, 10})
	r.Set(1, 0, 0, 0, -1)
	chk.Float64(tst, "rows copies data", 1e-17, a.At(0, 0, 0, 0), 0)

	t := a.Rows([]int{2}).Tile(4)
	chk.Ints(tst, "tile shape", t.Shape[:], []int{4, 2, 2, 1})
	chk.Array(tst, "tile block(3,1)", 1e-17, t.Block(3, 1), []float64{2, 10})

	d := a.Dense(2, 1)
	d.Set(1, 0, 7)
	chk.Float64(tst, "dense shares data", 1e-17, a.At(2, 1, 1, 0), 7)

	t.Fill(0.5)
	chk.Float64(tst, "fill", 1e-15, t.Sum(), 0.5*16)
	if a.SameShape(t) {
		tst.Errorf("shapes should differ\n")
	}
}

func Test_measure01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("measure01")

	lin2, _ := inp.GenLin2(4, -1, 2)
	qua4, _ := inp.GenQua4(2, 3, 0, 2, 0, 3)
	tri3, _ := inp.GenTri3(3, 2, 0, 3, 0, 1)
	hex8, _ := inp.GenHex8(2, 2, 1, 0, 1, 0, 2, 0, 3)
	meshes := []*inp.Mesh{lin2, qua4, tri3, hex8}
	measures := []float64{3, 6, 3, 6}

	for i, msh := range meshes {
		for _, order := range []int{1, 2, 3} {
			f, err := NewField("u", 1, msh)
			if err != nil {
				tst.Errorf("NewField failed:\n%v", err)
				return
			}
			grp := firstGroup(tst, msh, msh.RegionAll("Omega"))
			ap, geo, err := f.GetApproximation(grp, Volume, NewIntegral("i", order))
			if err != nil {
				tst.Errorf("GetApproximation failed:\n%v", err)
				return
			}
			io.Pforan("%v\n", ap)
			nel, nqp, ndim, nep := ap.VDataShape()
			chk.Int(tst, "ndim", ndim, msh.Ndim)
			chk.Int(tst, "nep", nep, msh.Cells[0].Shp.Nverts)
			qp := NewArray(nel, nqp, 1, 1)
			qp.Fill(1)
			res, status := integrate(tst, geo, qp)
			chk.Int(tst, "status", status, StatusOK)
			chk.Float64(tst, io.Sf("measure of %s", msh.Types[0]), 1e-13, res[0], measures[i])

			// memoized
			ap2, _, _ := f.GetApproximation(grp, Volume, NewIntegral("i", order))
			if ap2 != ap {
				tst.Errorf("approximation should be memoized\n")
			}
		}
	}
}

func Test_interp01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("interp01")

	msh, _ := inp.GenQua4(3, 2, 0, 3, -1, 1)
	grp := firstGroup(tst, msh, msh.RegionAll("Omega"))
	integral := NewIntegral("i2", 2)

	// coordinates and linear scalar field
	fx, _ := NewField("x", 2, msh)
	fu, _ := NewField("u", 1, msh)
	x := NewVariable("x", fx)
	x.SetFunc(0, CoordFcns(2)...)
	u := NewVariable("u", fu)
	u.SetFunc(0, linear(1, 1, 2))
	chk.Int(tst, "version", u.Version(), 1)
	uvals := u.Vals()

	apx, _, err := x.GetApproximation(grp, Volume, integral)
	if err != nil {
		tst.Errorf("GetApproximation failed:\n%v", err)
		return
	}
	apu, _, _ := u.GetApproximation(grp, Volume, integral)
	xq := apx.Interpolate(x.Vals(), 2)
	uq := apu.Interpolate(uvals, 1)
	chk.Ints(tst, "shape of xq", xq.Shape[:], []int{6, 4, 2, 1})
	for e := 0; e < apu.Nel; e++ {
		for q := 0; q < apu.Nqp; q++ {
			chk.Float64(tst, "u @ qp", 1e-14, uq.At(e, q, 0, 0), 1+xq.At(e, q, 0, 0)+2*xq.At(e, q, 1, 0))
		}
	}

	// gradients of u are (1, 2) everywhere
	G, err := apu.GetBase(1)
	if err != nil {
		tst.Errorf("GetBase failed:\n%v", err)
		return
	}
	for e, verts := range apu.Conn {
		for q := 0; q < apu.Nqp; q++ {
			g := G.Dense(e, q)
			for i := 0; i < 2; i++ {
				gi := 0.0
				for m, v := range verts {
					gi += g.At(i, m) * uvals[v]
				}
				chk.Float64(tst, io.Sf("du/dx%d", i), 1e-14, gi, float64(i+1))
			}
		}
	}
	_, err = apu.GetBase(2)
	if err == nil {
		tst.Errorf("GetBase should have failed with derivative order 2\n")
	}

	// virtual variables cannot be set
	v := NewVirtual("v", fu)
	if err = v.SetConst(1); err == nil {
		tst.Errorf("SetConst should have failed with virtual variable\n")
	}
	if err = u.SetConst(1, 2); err == nil {
		tst.Errorf("SetConst should have failed with wrong number of components\n")
	}
	if err = u.SetFunc(0, CoordFcns(2)...); err == nil {
		tst.Errorf("SetFunc should have failed with wrong number of functions\n")
	}
	if err = v.SetFunc(0, linear(0, 1, 0)); err == nil {
		tst.Errorf("SetFunc should have failed with virtual variable\n")
	}
}

func Test_variable01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("variable01")

	msh, _ := inp.GenQua4(1, 1, 0, 1, 0, 1)
	fu, _ := NewField("u", 1, msh)
	u := NewVariable("u", fu)
	u.SetConst(2)
	chk.Int(tst, "version", u.Version(), 1)

	// values returned are a copy; only setters change values and version
	vals := u.Vals()
	vals[0] = 123
	chk.Array(tst, "vals", 1e-17, u.Vals(), []float64{2, 2, 2, 2})
	chk.Int(tst, "version after modifying copy", u.Version(), 1)
	u.SetVals(vals)
	chk.Array(tst, "vals", 1e-17, u.Vals(), []float64{123, 2, 2, 2})
	chk.Int(tst, "version after SetVals", u.Version(), 2)

	// functions of time and space
	u.SetFunc(2, dbf.New("lin", dbf.Params{&dbf.P{N: "m", V: 3}, &dbf.P{N: "ts", V: 0}}))
	chk.Array(tst, "lin", 1e-17, u.Vals(), []float64{6, 6, 6, 6})
	chk.Int(tst, "version after SetFunc", u.Version(), 3)

	if NewVirtual("v", fu).Vals() != nil {
		tst.Errorf("virtual variables have no values\n")
	}
}

func Test_surface01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("surface01")

	// ∫ x⋅n dΓ = ndim ⋅ |Ω|
	qua4, _ := inp.GenQua4(2, 2, 0, 2, 0, 3)
	tri3, _ := inp.GenTri3(2, 3, -1, 1, 0, 1)
	hex8, _ := inp.GenHex8(1, 2, 2, 0, 1, 0, 2, 0, 1)
	lin2, _ := inp.GenLin2(3, 1, 4)
	meshes := []*inp.Mesh{qua4, tri3, hex8, lin2}
	measures := []float64{6, 2, 2, 3}

	for i, msh := range meshes {
		io.Pforan("--- %s ---\n", msh.Types[0])
		ndim := msh.Ndim
		f, _ := NewField("x", ndim, msh)
		x := NewVariable("x", f)
		x.SetFunc(0, CoordFcns(ndim)...)
		grp := firstGroup(tst, msh, msh.RegionBoundary("Gamma"))
		ap, geo, err := x.GetApproximation(grp, Surface, NewIntegral("i", 2))
		if err != nil {
			tst.Errorf("GetApproximation failed:\n%v", err)
			return
		}
		xq := ap.Interpolate(x.Vals(), ndim)
		nrm := geo.Normals()
		qp := NewArray(ap.Nel, ap.Nqp, 1, 1)
		for e := 0; e < ap.Nel; e++ {
			for q := 0; q < ap.Nqp; q++ {
				s := 0.0
				for k := 0; k < ndim; k++ {
					s += xq.At(e, q, k, 0) * nrm.At(e, q, k, 0)
				}
				qp.Set(e, q, 0, 0, s)
			}
		}
		res, status := integrate(tst, geo, qp)
		chk.Int(tst, "status", status, StatusOK)
		chk.Float64(tst, "flux", 1e-13, res[0], float64(ndim)*measures[i])

		// surface geometry cannot be used for volume approximation
		_, _, err = x.GetApproximation(grp, Volume, NewIntegral("i", 2))
		if err == nil {
			tst.Errorf("GetApproximation should have failed with volume kind on surface region\n")
		}
	}
}

func Test_inverted01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("inverted01")

	// second cell is numbered clockwise
	msh := &inp.Mesh{
		Verts: []*inp.Vert{
			{Id: 0, C: []float64{0, 0}},
			{Id: 1, C: []float64{1, 0}},
			{Id: 2, C: []float64{2, 0}},
			{Id: 3, C: []float64{0, 1}},
			{Id: 4, C: []float64{1, 1}},
			{Id: 5, C: []float64{2, 1}},
		},
		Cells: []*inp.Cell{
			{Id: 0, Type: "qua4", Verts: []int{0, 1, 4, 3}},
			{Id: 1, Type: "qua4", Verts: []int{1, 4, 5, 2}},
		},
	}
	err := msh.Init()
	if err != nil {
		tst.Errorf("Init failed:\n%v", err)
		return
	}
	f, _ := NewField("u", 1, msh)
	grp := firstGroup(tst, msh, msh.RegionAll("Omega"))
	_, geo, err := f.GetApproximation(grp, Volume, NewIntegral("i", 2))
	if err != nil {
		tst.Errorf("GetApproximation failed:\n%v", err)
		return
	}
	qp := NewArray(1, geo.Nqp(), 1, 1)
	qp.Fill(1)
	out := NewArray(1, 1, 1, 1)
	chk.Int(tst, "status of good cell", geo.IntegrateChunk(out, qp, []int{0}), StatusOK)
	chk.Int(tst, "status of bad cell", geo.IntegrateChunk(out, qp, []int{1}), StatusBadJacobian)
	chk.Int(tst, "status of bad shape", geo.IntegrateChunk(out, qp, []int{0, 1}), StatusBadShape)
}

func Test_material01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("material01")

	m, err := NewConstMaterial("m.K", []int{2, 3}, 1, 2, 3, 4, 5, 6)
	if err != nil {
		tst.Errorf("NewConstMaterial failed:\n%v", err)
		return
	}
	r, c := m.RowsCols()
	chk.Ints(tst, "rows, cols", []int{r, c}, []int{2, 3})
	chk.Int(tst, "size", m.Size(), 6)
	vals := m.Vals()
	vals[0] = 100
	chk.Array(tst, "vals", 1e-17, m.Vals(), []float64{1, 2, 3, 4, 5, 6})
	chk.Int(tst, "version", m.Version(), 0)
	m.SetVals([]float64{0, 0, 0, 0, 0, 0})
	chk.Int(tst, "version", m.Version(), 1)

	// from parameters
	prms := dbf.Params{
		&dbf.P{N: "kx", V: 1},
		&dbf.P{N: "ky", V: 2},
		&dbf.P{N: "rho", V: 3},
	}
	mp, err := NewPrmsMaterial("m.k", []int{2}, prms, "kx", "ky")
	if err != nil {
		tst.Errorf("NewPrmsMaterial failed:\n%v", err)
		return
	}
	chk.String(tst, mp.Mode, ModeConst)
	chk.Array(tst, "kx, ky", 1e-17, mp.Vals(), []float64{1, 2})
	mp, _ = NewPrmsMaterial("m.all", []int{3}, prms)
	chk.Array(tst, "all", 1e-17, mp.Vals(), []float64{1, 2, 3})
	_, err = NewPrmsMaterial("m.bad", nil, prms, "kz")
	if err == nil {
		tst.Errorf("NewPrmsMaterial should have failed with unknown parameter\n")
	}

	// from functions of coordinates
	msh, _ := inp.GenQua4(1, 1, 0, 1, 0, 2)
	mf, err := NewFuncMaterial("m.x", msh, 0, []int{2}, CoordFcns(2)...)
	if err != nil {
		tst.Errorf("NewFuncMaterial failed:\n%v", err)
		return
	}
	chk.String(tst, mf.Mode, ModeVertex)
	chk.Array(tst, "coords", 1e-17, mf.Vals(), []float64{0, 0, 1, 0, 0, 2, 1, 2})
	_, err = NewFuncMaterial("m.bad", msh, 0, nil, CoordFcns(2)...)
	if err == nil {
		tst.Errorf("NewFuncMaterial should have failed with wrong number of functions\n")
	}

	r, c = PadShape(nil)
	chk.Ints(tst, "pad ()", []int{r, c}, []int{1, 1})
	r, c = PadShape([]int{3})
	chk.Ints(tst, "pad (3)", []int{r, c}, []int{3, 1})

	_, err = NewMaterial("m.bad", "nodal", nil, []float64{1})
	if err == nil {
		tst.Errorf("NewMaterial should have failed with invalid mode\n")
	}
	_, err = NewMaterial("m.bad", ModeConst, []int{1, 2, 3}, []float64{1})
	if err == nil {
		tst.Errorf("NewMaterial should have failed with 3 dimensions\n")
	}
}
