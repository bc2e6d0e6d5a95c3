// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fem implements the evaluation of weak-form terms over a mesh
package fem

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/cpmech/goterms/cache"
	"github.com/cpmech/goterms/fld"
	"github.com/cpmech/goterms/inp"
	"github.com/cpmech/goterms/term"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// ErrIntegration is returned when the integration over a cell fails
var ErrIntegration = errors.New("integration failed")

// TermDesc describes one term of an equation; e.g. "-dw_volume_wdot.i2.Omega(m.y, q, u)"
type TermDesc struct {
	Name     string        // name of term; e.g. "dw_volume_wdot"
	Sign     float64       // sign; 0 means 1
	Region   *inp.Region   // region
	Integral *fld.Integral // quadrature; nil means the default integral
	Args     []term.Arg    // arguments in the order of the term's argument names
}

// Domain evaluates terms over a mesh
type Domain struct {

	// input
	Msh     *inp.Mesh     // mesh
	Opts    *inp.Options  // options
	ShowMsg bool          // show messages
	Itg     *fld.Integral // default integral

	// pass
	Caches   *cache.Caches // data shared by the terms of the current pass
	BadCells []int         // ids of cells in chunks with failed integration (KeepGoing only)

	mutex sync.Mutex
}

// NewDomain returns a new domain
func NewDomain(msh *inp.Mesh, opts *inp.Options) (o *Domain, err error) {
	if msh == nil {
		return nil, chk.Err("mesh is required")
	}
	if opts == nil {
		opts = inp.NewOptions()
	}
	err = opts.PostProcess()
	if err != nil {
		return
	}
	o = &Domain{Msh: msh, Opts: opts, ShowMsg: opts.Verbose}
	o.Itg = fld.NewIntegral(io.Sf("i%d", opts.Order), opts.Order)
	o.NewPass()
	return
}

// NewPass starts a new evaluation pass: caches and bad cells are cleared
func (o *Domain) NewPass() {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Caches = cache.NewCaches()
	o.Caches.Verbose = o.ShowMsg
	o.BadCells = nil
}

// Bind allocates the term described by desc and binds it to the current pass
func (o *Domain) Bind(desc *TermDesc) (t term.Term, err error) {
	sign := desc.Sign
	if sign == 0 {
		sign = 1
	}
	itg := desc.Integral
	if itg == nil {
		itg = o.Itg
	}
	t, err = term.Bind(desc.Name, o.Msh, desc.Region, sign, itg, o.Caches, desc.Args...)
	if err != nil {
		return nil, fmt.Errorf("cannot bind term %q: %w", desc.Name, err)
	}
	_, err = t.GetBase().Groups() // groups are memoized without locks; compute them before concurrent use
	return
}

// EvalScalar evaluates a functional term returning one scalar
func (o *Domain) EvalScalar(desc *TermDesc) (val float64, err error) {
	vals, err := o.EvalArray(desc)
	if err != nil {
		return
	}
	if vals == nil { // no elements
		return 0, nil
	}
	if len(vals) != 1 {
		return 0, chk.Err("term %q returns %d values; cannot be used as scalar", desc.Name, len(vals))
	}
	return vals[0], nil
}

// EvalArray evaluates a functional term returning the values in the native shape of the result
func (o *Domain) EvalArray(desc *TermDesc) (vals []float64, err error) {
	t, err := o.Bind(desc)
	if err != nil {
		return
	}
	err = o.run(t, "", func(grp *inp.Group, res *term.Result) error {
		if vals == nil {
			vals = make([]float64, len(res.Val))
		}
		for i, v := range res.Val {
			vals[i] += v
		}
		return nil
	})
	if o.ShowMsg && err == nil {
		io.Pf("> %s on %q = %v\n", desc.Name, desc.Region.Name, vals)
	}
	return
}

// AssembleRhs adds element vectors of residual terms to fb
//  fb -- [ndofs] global vector indexed by the equation numbers of the virtual variable
func (o *Domain) AssembleRhs(fb []float64, descs []*TermDesc) (err error) {
	for _, desc := range descs {
		t, err := o.Bind(desc)
		if err != nil {
			return err
		}
		virt, err := virtual(t)
		if err != nil {
			return err
		}
		err = o.run(t, "", func(grp *inp.Group, res *term.Result) error {
			for k, e := range res.Chunk {
				eqs := virt.Field.Eqs(o.Msh.Cells[grp.Cells[e]].Verts)
				blk := res.Out.Block(k, 0)
				if len(blk) != len(eqs) {
					return chk.Err("term %q: element vector has %d entries; %d equations expected", desc.Name, len(blk), len(eqs))
				}
				for i, I := range eqs {
					fb[I] += blk[i]
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return
}

// Putter is a sparse matrix accepting entries; e.g. la.Triplet
type Putter interface {
	Put(i, j int, x float64)
}

// AssembleKb adds element matrices of terms differentiated with respect to diffVar to Kb
//  rows are the equations of the virtual variable and columns the equations of diffVar
func (o *Domain) AssembleKb(Kb Putter, descs []*TermDesc, diffVar string) (err error) {
	for _, desc := range descs {
		t, err := o.Bind(desc)
		if err != nil {
			return err
		}
		virt, err := virtual(t)
		if err != nil {
			return err
		}
		state := variable(t, diffVar)
		err = o.run(t, diffVar, func(grp *inp.Group, res *term.Result) error {
			if state == nil {
				return chk.Err("term %q has no argument named %q", desc.Name, diffVar)
			}
			for k, e := range res.Chunk {
				verts := o.Msh.Cells[grp.Cells[e]].Verts
				rows, cols := virt.Field.Eqs(verts), state.Field.Eqs(verts)
				Ke := res.Out.Dense(k, 0)
				if r, c := Ke.Dims(); r != len(rows) || c != len(cols) {
					return chk.Err("term %q: element matrix is %d×%d; %d×%d expected", desc.Name, r, c, len(rows), len(cols))
				}
				for i, I := range rows {
					for j, J := range cols {
						Kb.Put(I, J, Ke.At(i, j))
					}
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return
}

// run evaluates a term over all groups of its region calling fcn for each result
func (o *Domain) run(t term.Term, diffVar string, fcn func(grp *inp.Group, res *term.Result) error) (err error) {
	b := t.GetBase()
	groups, err := b.Groups()
	if err != nil {
		return
	}
	for _, grp := range groups {
		b.SetCurrentGroup(grp)
		seq, err := t.Eval(diffVar, o.Opts.ChunkSize)
		if err != nil {
			return fmt.Errorf("term %q on group %q: %w", b.Info.Name, grp.Key(), err)
		}
		for seq.Next() {
			res := seq.Result()
			if res.Status != fld.StatusOK {
				cells := make([]int, len(res.Chunk))
				for k, e := range res.Chunk {
					cells[k] = grp.Cells[e]
				}
				if !o.Opts.KeepGoing {
					return fmt.Errorf("%w: term %q: status %d in chunk with cells %v", ErrIntegration, b.Info.Name, res.Status, cells)
				}
				o.flag(cells)
				if o.ShowMsg {
					io.PfRed("> %s: integration failed in cells %v; skipped\n", b.Info.Name, cells)
				}
				continue
			}
			err = fcn(grp, res)
			if err != nil {
				return err
			}
		}
		if err = seq.Err(); err != nil {
			return fmt.Errorf("term %q on group %q: %w", b.Info.Name, grp.Key(), err)
		}
	}
	return
}

// flag records bad cells
func (o *Domain) flag(cells []int) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	for _, c := range cells {
		i := sort.SearchInts(o.BadCells, c)
		if i < len(o.BadCells) && o.BadCells[i] == c {
			continue
		}
		o.BadCells = append(o.BadCells, 0)
		copy(o.BadCells[i+1:], o.BadCells[i:])
		o.BadCells[i] = c
	}
}

// virtual returns the virtual variable of a term
func virtual(t term.Term) (*fld.Variable, error) {
	b := t.GetBase()
	for _, name := range b.Args.Names() {
		if term.Role(name) == term.RoleVirtual {
			return b.Args.Var(name), nil
		}
	}
	return nil, chk.Err("term %q has no virtual variable and cannot be assembled", b.Info.Name)
}

// variable returns the variable argument of a term named name; nil if not found
func variable(t term.Term, name string) *fld.Variable {
	b := t.GetBase()
	for _, a := range b.Args.Names() {
		if v := b.Args.Var(a); v != nil && v.Name == name {
			return v
		}
	}
	return nil
}
