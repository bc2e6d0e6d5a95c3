// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cache

import (
	"fmt"
	"sort"

	"github.com/cpmech/gosl/chk"
)

// Allocator defines a function that allocates a data cache
type Allocator func() DataCache

// Registry maps names to allocators of data caches
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
		return fmt.Errorf("%w: cannot set allocator for %q because cache name exists already", ErrDuplicate, name)
	}
	o.allocators[name] = fcn
	return
}

// Has tells whether a cache named name exists
func (o *Registry) Has(name string) bool {
	_, ok := o.allocators[name]
	return ok
}

// New allocates a new data cache
func (o *Registry) New(name string) (DataCache, error) {
	fcn, ok := o.allocators[name]
	if !ok {
		return nil, fmt.Errorf("%w: cannot find cache named %q", ErrUnknownCache, name)
	}
	return fcn(), nil
}

// Names returns the sorted names of all caches
func (o *Registry) Names() (names []string) {
	for name := range o.allocators {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

// allocators holds all available caches
var allocators = NewRegistry()

// SetAllocator sets a new cache allocator. It panics if name exists already
func SetAllocator(name string, fcn Allocator) {
	if err := allocators.Add(name, fcn); err != nil {
		chk.Panic("%v", err)
	}
}

// New returns a new data cache from the factory
func New(name string) (DataCache, error) { return allocators.New(name) }

// Has tells whether a cache named name is available
func Has(name string) bool { return allocators.Has(name) }

// Names returns the names of available caches
func Names() []string { return allocators.Names() }
