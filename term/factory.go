// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package term

import (
	"fmt"
	"sort"

	"github.com/cpmech/goterms/cache"
	"github.com/cpmech/goterms/fld"
	"github.com/cpmech/goterms/inp"
	"github.com/cpmech/gosl/chk"
)

// Allocator defines a function that allocates a term
type Allocator func() Term

// Registry maps names to allocators of terms
type Registry struct {
	allocators map[string]Allocator
}

// NewRegistry returns an empty registry
func NewRegistry() *Registry {
	return &Registry{allocators: make(map[string]Allocator)}
}

// Add adds a new allocator
func (o *Registry) Add(name string, fcn Allocator) (err error) {
	if _, ok := o.allocators[name]; ok {
		return fmt.Errorf("%w: cannot set allocator for %q because term name exists already", ErrDuplicate, name)
	}
	o.allocators[name] = fcn
	return
}

// New allocates a new term
func (o *Registry) New(name string) (Term, error) {
	fcn, ok := o.allocators[name]
	if !ok {
		return nil, fmt.Errorf("%w: cannot find term named %q", ErrUnknownTerm, name)
	}
	return fcn(), nil
}

// Names returns the sorted names of all terms
func (o *Registry) Names() (names []string) {
	for name := range o.allocators {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

// allocators holds all available terms
var allocators = NewRegistry()

// SetAllocator sets a new term allocator. It panics if name exists already
func SetAllocator(name string, fcn Allocator) {
	if err := allocators.Add(name, fcn); err != nil {
		chk.Panic("%v", err)
	}
}

// New returns a new term from the factory
func New(name string) (Term, error) { return allocators.New(name) }

// Names returns the names of available terms
func Names() []string { return allocators.Names() }

// Bind allocates a term and binds it to a region and arguments
func Bind(name string, msh *inp.Mesh, reg *inp.Region, sign float64, integral *fld.Integral, caches *cache.Caches, vals ...Arg) (t Term, err error) {
	t, err = New(name)
	if err != nil {
		return
	}
	b := t.GetBase()
	args, err := NewArgs(b.Info, vals...)
	if err != nil {
		return nil, err
	}
	err = b.Setup(msh, reg, sign, integral, args, caches)
	if err != nil {
		return nil, err
	}
	return
}
