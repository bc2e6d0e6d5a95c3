// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cache

import (
	"strings"
	"sync"

	"github.com/cpmech/goterms/fld"
	"github.com/cpmech/goterms/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"golang.org/x/sync/singleflight"
)

// Versioned is implemented by arguments whose values may change: variables and materials
type Versioned interface {
	Version() int
}

// Caches holds the data computed by caches during one evaluation pass
//  Note: safe for concurrent use; concurrent requests of the same key wait for one computation
type Caches struct {
	Verbose bool // show messages

	mutex     sync.Mutex
	flight    singleflight.Group
	instances map[string]DataCache // name => cache
	entries   map[string]*entry    // key => data
	ncomputed map[string]int       // name => number of computations
	nhits     int                  // number of requests served from memory
}

// entry holds computed data and the versions of arguments used to compute it
type entry struct {
	val   interface{}
	stamp string
}

// NewCaches returns an empty store
func NewCaches() *Caches {
	return &Caches{
		instances: make(map[string]DataCache),
		entries:   make(map[string]*entry),
		ncomputed: make(map[string]int),
	}
}

// Handle returns a handle to the cache named name with the given arguments
func (o *Caches) Handle(name string, args ...Versioned) (h *Handle, err error) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	dc, ok := o.instances[name]
	if !ok {
		dc, err = New(name)
		if err != nil {
			return
		}
		o.instances[name] = dc
	}
	ids := make([]string, len(args))
	for i, a := range args {
		ids[i] = io.Sf("%p", a)
	}
	return &Handle{caches: o, dc: dc, args: args, ids: strings.Join(ids, ",")}, nil
}

// Ncomputed returns how many times the cache named name has computed data
func (o *Caches) Ncomputed(name string) int {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	return o.ncomputed[name]
}

// Nhits returns how many requests were served from memory
func (o *Caches) Nhits() int {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	return o.nhits
}

// Len returns the number of entries
func (o *Caches) Len() int {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	return len(o.entries)
}

// Reset clears all data and counters
func (o *Caches) Reset() {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.entries = make(map[string]*entry)
	o.ncomputed = make(map[string]int)
	o.nhits = 0
}

// lookup returns data in memory with matching stamp
func (o *Caches) lookup(key, stamp string) (val interface{}, ok bool) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	e, ok := o.entries[key]
	if !ok || e.stamp != stamp {
		return nil, false
	}
	o.nhits++
	return e.val, true
}

// get returns data from memory or computes it once
func (o *Caches) get(name, key, stamp string, compute func() (interface{}, error)) (val interface{}, err error) {
	if val, ok := o.lookup(key, stamp); ok {
		return val, nil
	}
	val, err, _ = o.flight.Do(key+"#"+stamp, func() (interface{}, error) {
		if val, ok := o.lookup(key, stamp); ok {
			return val, nil
		}
		res, cerr := compute()
		if cerr != nil {
			return nil, cerr
		}
		o.mutex.Lock()
		o.entries[key] = &entry{val: res, stamp: stamp}
		o.ncomputed[name]++
		o.mutex.Unlock()
		if o.Verbose {
			io.Pforan("cache: computed %s\n", key)
		}
		return res, nil
	})
	return
}

// Handle gives access to one cache with bound arguments
type Handle struct {
	caches *Caches
	dc     DataCache
	args   []Versioned
	ids    string
}

// Name returns the name of the cache
func (o *Handle) Name() string { return o.dc.Name() }

// Get returns data of kind computed for a group. slot distinguishes requests of the
// same cache with the same arguments that must not share data
func (o *Handle) Get(kind string, grp *inp.Group, slot int, prm *Params) (val interface{}, err error) {
	found := false
	for _, k := range o.dc.Kinds() {
		if k == kind {
			found = true
			break
		}
	}
	if !found {
		return nil, chk.Err("cache %q cannot compute data of kind %q", o.dc.Name(), kind)
	}
	iname := ""
	if prm.Integral != nil {
		iname = prm.Integral.Name
	}
	key := io.Sf("%s|%s|%s|%d|%s|%s|%s|%v", o.dc.Name(), kind, grp.Key(), slot, iname, o.ids, prm.ModeIn, prm.AssumedShapes)
	stamps := make([]string, len(o.args))
	for i, a := range o.args {
		stamps[i] = io.Sf("%d", a.Version())
	}
	return o.caches.get(o.dc.Name(), key, strings.Join(stamps, ","), func() (interface{}, error) {
		return o.dc.Compute(kind, grp, prm)
	})
}

// State returns variable values at quadrature points: (nel, nqp, vdim, 1)
func (o *Handle) State(grp *inp.Group, slot int, prm *Params) (res *fld.Array, err error) {
	val, err := o.Get(KindState, grp, slot, prm)
	if err != nil {
		return
	}
	return val.(*fld.Array), nil
}

// MatQP returns material values at quadrature points
func (o *Handle) MatQP(grp *inp.Group, slot int, prm *Params) (res *MatQP, err error) {
	val, err := o.Get(KindMatQP, grp, slot, prm)
	if err != nil {
		return
	}
	return val.(*MatQP), nil
}

// Measure returns the measure of a group
func (o *Handle) Measure(grp *inp.Group, slot int, prm *Params) (res *Measure, err error) {
	val, err := o.Get(KindVolume, grp, slot, prm)
	if err != nil {
		return
	}
	return val.(*Measure), nil
}
