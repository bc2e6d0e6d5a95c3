// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cache

import (
	"errors"
	"testing"

	"github.com/cpmech/goterms/fld"
	"github.com/cpmech/goterms/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// problem holds a mesh, a group and a scalar variable
type problem struct {
	msh *inp.Mesh
	grp *inp.Group
	u   *fld.Variable
	itg *fld.Integral
}

func newProblem(tst *testing.T) *problem {
	msh, err := inp.GenQua4(3, 2, 0, 3, 0, 2)
	require.NoError(tst, err)
	groups, err := msh.RegionAll("Omega").Groups(msh)
	require.NoError(tst, err)
	f, err := fld.NewField("u", 1, msh)
	require.NoError(tst, err)
	u := fld.NewVariable("u", f)
	require.NoError(tst, u.SetFunc(0, xplusy()))
	return &problem{msh, groups[0], u, fld.NewIntegral("i2", 2)}
}

// xplusy returns y = x[0] + x[1]
func xplusy() dbf.T {
	return dbf.New("xpoly1", dbf.Params{&dbf.P{N: "a0", V: 1}, &dbf.P{N: "a1", V: 1}})
}

func Test_registry01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("registry01")

	chk.Strings(tst, "names", Names(), []string{"mat_in_qp", "state_in_surface_qp", "state_in_volume_qp", "volume"})
	assert.True(tst, Has("volume"))

	_, err := New("state_in_line_qp")
	assert.True(tst, errors.Is(err, ErrUnknownCache))

	r := NewRegistry()
	require.NoError(tst, r.Add("volume", func() DataCache { return new(Volume) }))
	err = r.Add("volume", func() DataCache { return new(Volume) })
	assert.True(tst, errors.Is(err, ErrDuplicate))

	assert.Panics(tst, func() { SetAllocator("volume", func() DataCache { return new(Volume) }) })

	c := NewCaches()
	_, err = c.Handle("nonexistent")
	assert.True(tst, errors.Is(err, ErrUnknownCache))
}

func Test_memo01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("memo01")

	p := newProblem(tst)
	c := NewCaches()
	c.Verbose = chk.Verbose
	h, err := c.Handle("state_in_volume_qp", p.u)
	require.NoError(tst, err)
	prm := &Params{Integral: p.itg, State: p.u}

	a, err := h.State(p.grp, 0, prm)
	require.NoError(tst, err)
	chk.Ints(tst, "shape", a.Shape[:], []int{6, 4, 1, 1})
	b, err := h.State(p.grp, 0, prm)
	require.NoError(tst, err)
	assert.Same(tst, a, b)
	chk.Int(tst, "ncomputed", c.Ncomputed("state_in_volume_qp"), 1)
	chk.Int(tst, "nhits", c.Nhits(), 1)

	// another handle with the same arguments shares data
	h2, _ := c.Handle("state_in_volume_qp", p.u)
	b, _ = h2.State(p.grp, 0, prm)
	assert.Same(tst, a, b)
	chk.Int(tst, "ncomputed", c.Ncomputed("state_in_volume_qp"), 1)

	// another slot
	b, _ = h.State(p.grp, 1, prm)
	assert.NotSame(tst, a, b)
	chk.Array(tst, "same values", 1e-17, b.Data, a.Data)
	chk.Int(tst, "ncomputed", c.Ncomputed("state_in_volume_qp"), 2)

	// modified values
	p.u.SetConst(1)
	b, _ = h.State(p.grp, 0, prm)
	chk.Float64(tst, "new value", 1e-14, b.At(5, 3, 0, 0), 1)
	chk.Int(tst, "ncomputed", c.Ncomputed("state_in_volume_qp"), 3)
	chk.Int(tst, "len", c.Len(), 2)

	// wrong kind
	_, err = h.Get(KindMatQP, p.grp, 0, prm)
	assert.Error(tst, err)

	// virtual variables have no values
	v := fld.NewVirtual("v", p.u.Field)
	hv, _ := c.Handle("state_in_volume_qp", v)
	_, err = hv.State(p.grp, 0, &Params{Integral: p.itg, State: v})
	assert.Error(tst, err)

	c.Reset()
	chk.Int(tst, "len after reset", c.Len(), 0)
	chk.Int(tst, "nhits after reset", c.Nhits(), 0)
}

func Test_memo02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("memo02")

	p := newProblem(tst)
	c := NewCaches()
	prm := &Params{Integral: p.itg, State: p.u}
	res := make([]*fld.Array, 16)
	var g errgroup.Group
	for i := range res {
		i := i
		g.Go(func() error {
			h, err := c.Handle("state_in_volume_qp", p.u)
			if err != nil {
				return err
			}
			res[i], err = h.State(p.grp, 0, prm)
			return err
		})
	}
	require.NoError(tst, g.Wait())
	chk.Int(tst, "ncomputed", c.Ncomputed("state_in_volume_qp"), 1)
	for i := 1; i < len(res); i++ {
		assert.Same(tst, res[0], res[i])
	}
}

func Test_volume01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("volume01")

	p := newProblem(tst)
	c := NewCaches()
	h, err := c.Handle("volume", p.u)
	require.NoError(tst, err)
	m, err := h.Measure(p.grp, 0, &Params{Integral: p.itg, State: p.u})
	require.NoError(tst, err)
	chk.Int(tst, "status", m.Status, fld.StatusOK)
	chk.Float64(tst, "area", 1e-13, m.Val, 6)

	// boundary
	groups, err := p.msh.RegionBoundary("Gamma").Groups(p.msh)
	require.NoError(tst, err)
	m, err = h.Measure(groups[0], 0, &Params{Integral: p.itg, State: p.u})
	require.NoError(tst, err)
	chk.Float64(tst, "perimeter", 1e-13, m.Val, 10)
}

func Test_mat01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mat01")

	p := newProblem(tst)
	nel, nqp := 6, 4
	c := NewCaches()
	get := func(m *fld.Material, mode string, assumed ...[4]int) (*MatQP, error) {
		h, err := c.Handle("mat_in_qp", m, p.u)
		require.NoError(tst, err)
		return h.MatQP(p.grp, 0, &Params{Integral: p.itg, State: p.u, Mat: m, ModeIn: mode, AssumedShapes: assumed})
	}

	// const
	m, _ := fld.NewConstMaterial("m.D", []int{2, 2}, 1, 2, 3, 4)
	r, err := get(m, "", [4]int{1, -1, 2, 2})
	require.NoError(tst, err)
	assert.Equal(tst, Constant, r.Kind)
	chk.Ints(tst, "shape", r.Data.Shape[:], []int{1, nqp, 2, 2})
	t := r.Chunk([]int{0, 4, 5})
	chk.Ints(tst, "chunk shape", t.Shape[:], []int{3, nqp, 2, 2})
	chk.Array(tst, "chunk block", 1e-17, t.Block(2, 3), []float64{1, 2, 3, 4})

	// assumed shape mismatch
	_, err = get(m, "", [4]int{1, -1, 1, 1}, [4]int{1, -1, 3, 1})
	assert.True(tst, errors.Is(err, ErrShape))

	// wrong number of values
	mbad, _ := fld.NewConstMaterial("m.bad", []int{2}, 1, 2, 3)
	_, err = get(mbad, "")
	assert.True(tst, errors.Is(err, ErrShape))

	// vertex: linear values are reproduced @ quadrature points
	mv, err := fld.NewFuncMaterial("m.v", p.msh, 0, nil, xplusy())
	require.NoError(tst, err)
	r, err = get(mv, "")
	require.NoError(tst, err)
	assert.Equal(tst, PerElement, r.Kind)
	hs, _ := c.Handle("state_in_volume_qp", p.u)
	uq, _ := hs.State(p.grp, 0, &Params{Integral: p.itg, State: p.u})
	chk.Array(tst, "vertex", 1e-15, r.Data.Data, uq.Data)
	chk.Array(tst, "rows", 1e-15, r.Chunk([]int{3}).Block(0, 2), uq.Block(3, 2))

	// element_avg
	vals := []float64{0, 1, 2, 3, 4, 5}
	me, _ := fld.NewMaterial("m.e", fld.ModeElementAvg, nil, vals)
	r, err = get(me, "", [4]int{nel, nqp, 1, 1})
	require.NoError(tst, err)
	for e := 0; e < nel; e++ {
		for q := 0; q < nqp; q++ {
			chk.Float64(tst, "element_avg", 1e-17, r.Data.At(e, q, 0, 0), float64(p.grp.Cells[e]))
		}
	}

	// mode given by term overrides material mode
	_, err = get(me, fld.ModeConst)
	assert.True(tst, errors.Is(err, ErrShape))

	// values @ quadrature points
	mq, _ := fld.NewMaterial("m.q", fld.ModeQp, nil, []float64{1, 2, 3, 4})
	r, err = get(mq, "")
	require.NoError(tst, err)
	assert.Equal(tst, Constant, r.Kind)
	chk.Array(tst, "qp", 1e-17, r.Chunk([]int{5}).Data, []float64{1, 2, 3, 4})
	mq.SetVals(make([]float64, nel*nqp))
	r, err = get(mq, "")
	require.NoError(tst, err)
	assert.Equal(tst, PerElement, r.Kind)
	mq.SetVals([]float64{1, 2, 3})
	_, err = get(mq, "")
	assert.True(tst, errors.Is(err, ErrShape))
}
