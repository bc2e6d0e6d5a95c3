// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package term implements weak-form terms evaluated at quadrature points
package term

import (
	"errors"
	"fmt"

	"github.com/cpmech/goterms/fld"
)

// errors
var (
	ErrNotImplemented = errors.New("not implemented")
	ErrUnknownTerm    = errors.New("unknown term")
	ErrDuplicate      = errors.New("duplicate term")
	ErrArgs           = errors.New("invalid arguments")
)

// GeomArg pairs a kind of geometry with the argument whose approximation defines it
type GeomArg struct {
	Kind fld.Kind // Volume or Surface
	Arg  string   // argument name; e.g. "parameter"
}

// Info holds the static description of a term
type Info struct {
	Name      string                // unique name; e.g. "dw_volume_wdot"
	ArgTypes  []string              // argument names; the role is the name without the "_N" suffix
	Geometry  []GeomArg             // geometries
	UseCaches map[string][][]string // cache name => list of argument names for each slot
	DofConn   fld.Kind              // connectivity of local vectors and matrices
}

// Term defines a weak-form term
type Term interface {
	GetBase() *Base // returns the data shared by all terms

	// Eval returns the sequence of results for the current group.
	//  diffVar   -- "" for residual or functional; otherwise the name of the variable
	//               to differentiate with respect to
	//  chunkSize -- maximum number of elements per result; <= 0 means all
	// An unsupported diffVar yields an empty sequence
	Eval(diffVar string, chunkSize int) (seq *Sequence, err error)
}

// Result holds the result of one chunk
//  Note: Out is a view of a buffer reused by the next chunk
type Result struct {
	Val    []float64  // values reduced over the chunk: one scalar or nrow*ncol values; nil for dw_ terms
	Out    *fld.Array // (len(Chunk), 1, nrow, ncol) values for each element; nil for d_volume
	Chunk  []int      // positions of cells in group
	Status int        // integration status; fld.StatusOK on success
}

// Sequence is a single-pass iterator over results
type Sequence struct {
	next func() (*Result, error) // returns nil when exhausted
	res  *Result
	err  error
	done bool
}

// newSequence returns a sequence driven by next
func newSequence(next func() (*Result, error)) *Sequence {
	return &Sequence{next: next}
}

// EmptySequence returns a sequence without results
func EmptySequence() *Sequence {
	return &Sequence{done: true}
}

// Next advances to the next result. It returns false when exhausted or on errors
func (o *Sequence) Next() bool {
	if o.done {
		return false
	}
	o.res, o.err = o.next()
	if o.err != nil || o.res == nil {
		o.res, o.done = nil, true
		return false
	}
	return true
}

// Result returns the current result
func (o *Sequence) Result() *Result { return o.res }

// Err returns the error that stopped the sequence, if any
func (o *Sequence) Err() error { return o.err }

// notImplemented returns an ErrNotImplemented error with context
func notImplemented(name, msg string, prm ...interface{}) error {
	return fmt.Errorf("%w: %s: %s", ErrNotImplemented, name, fmt.Sprintf(msg, prm...))
}
