// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"path/filepath"

	"github.com/cpmech/goterms/fem"
	"github.com/cpmech/goterms/fld"
	"github.com/cpmech/goterms/inp"
	"github.com/cpmech/goterms/term"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("\nERROR: %v", err)
			io.Pf("See location of error below:\n")
			chk.Verbose = true
			for i := 5; i > 3; i-- {
				chk.CallerInfo(i)
			}
		}
	}()

	// read input parameters
	fnamepath, _ := io.ArgToFilename(0, "inp/data/square2x1", ".msh", true)
	verbose := io.ArgToBool(1, true)
	order := io.ArgToInt(2, inp.DefaultOrder)
	chunksize := io.ArgToInt(3, inp.DefaultChunkSize)
	parallel := io.ArgToBool(4, false)

	// message
	if verbose {
		io.Pf("\nGoterms -- evaluation of weak-form terms over finite element meshes\n")
		io.Pf("\n%v\n", io.ArgsTable("INPUT ARGUMENTS",
			"mesh filename path", "fnamepath", fnamepath,
			"show messages", "verbose", verbose,
			"order of integral", "order", order,
			"elements per chunk", "chunksize", chunksize,
			"evaluate terms concurrently", "parallel", parallel,
		))
	}

	// mesh and options
	msh, err := inp.ReadMsh(filepath.Dir(fnamepath), filepath.Base(fnamepath))
	if err != nil {
		chk.Panic("cannot read mesh:\n%v", err)
	}
	opts := inp.NewOptions()
	opts.Order, opts.ChunkSize, opts.Parallel, opts.Verbose = order, chunksize, parallel, verbose
	dom, err := fem.NewDomain(msh, opts)
	if err != nil {
		chk.Panic("cannot allocate domain:\n%v", err)
	}
	if verbose {
		io.Pforan("mesh: %v\n", msh)
	}

	// variables
	fu, err := fld.NewField("u", 1, msh)
	if err != nil {
		chk.Panic("%v", err)
	}
	fx, err := fld.NewField("x", msh.Ndim, msh)
	if err != nil {
		chk.Panic("%v", err)
	}
	one := fld.NewVariable("one", fu)
	one.SetConst(1)
	x := fld.NewVariable("x", fx)
	x.SetFunc(0, fld.CoordFcns(msh.Ndim)...)
	q := fld.NewVirtual("q", fu)
	m, err := fld.NewPrmsMaterial("m.rho", nil, dbf.Params{&dbf.P{N: "rho", V: 1}})
	if err != nil {
		chk.Panic("%v", err)
	}

	// functionals
	omega := msh.RegionAll("Omega")
	gamma := msh.RegionBoundary("Gamma")
	vals, err := dom.EvalScalars(context.Background(), []*fem.TermDesc{
		{Name: "d_volume", Region: omega, Args: []term.Arg{term.VarArg(one)}},
		{Name: "d_volume", Region: gamma, Args: []term.Arg{term.VarArg(one)}},
		{Name: "d_surface_integrate", Region: gamma, Args: []term.Arg{term.VarArg(x)}},
		{Name: "d_volume_dot", Region: omega, Args: []term.Arg{term.VarArg(x), term.VarArg(x)}},
	})
	if err != nil {
		chk.Panic("cannot evaluate functionals:\n%v", err)
	}

	// mass matrix and load vector
	n := fu.Ndofs()
	mass := []*fem.TermDesc{{Name: "dw_volume_wdot", Region: omega, Args: []term.Arg{term.MatArg(m), term.VarArg(q), term.VarArg(one)}}}
	nnz := 0
	for _, c := range msh.Cells {
		nnz += len(c.Verts) * len(c.Verts)
	}
	var Kb la.Triplet
	Kb.Init(n, n, nnz)
	err = dom.AssembleKb(&Kb, mass, "one")
	if err != nil {
		chk.Panic("cannot assemble mass matrix:\n%v", err)
	}
	fb := make([]float64, n)
	err = dom.AssembleRhs(fb, []*fem.TermDesc{{Name: "dw_volume_integrate", Region: omega, Args: []term.Arg{term.VarArg(q)}}})
	if err != nil {
		chk.Panic("cannot assemble load vector:\n%v", err)
	}
	sumfb := 0.0
	for _, v := range fb {
		sumfb += v
	}

	// results
	io.Pf("\n%-28s = %23.15e\n", "measure of Omega", vals[0])
	io.Pf("%-28s = %23.15e\n", "measure of Gamma", vals[1])
	io.Pf("%-28s = %23.15e  (ndim⋅|Ω| = %g)\n", "∫ x⋅n dΓ", vals[2], float64(msh.Ndim)*vals[0])
	io.Pf("%-28s = %23.15e\n", "∫ x⋅x dΩ", vals[3])
	io.Pf("%-28s = %23.15e\n", "Σ ∫ q dΩ", sumfb)
	io.Pf("%-28s = %d\n", "mass matrix entries", nnz)
	if len(dom.BadCells) > 0 {
		io.PfRed("cells with failed integration: %v\n", dom.BadCells)
	}
}
