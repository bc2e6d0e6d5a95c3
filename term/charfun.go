// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package term

import (
	"github.com/cpmech/goterms/fld"
	"github.com/cpmech/goterms/inp"
)

// CharFun is the characteristic function of a group: it selects the elements to be evaluated
type CharFun struct {
	grp *inp.Group
}

// NewCharFun returns the characteristic function of a group
func NewCharFun(grp *inp.Group) *CharFun {
	return &CharFun{grp: grp}
}

// Nel returns the number of elements (cells or faces)
func (o *CharFun) Nel() int { return o.grp.Nel() }

// Iter returns an iterator over chunks with output buffers of shape (len(chunk), a, b, c)
//  chunkSize -- maximum number of elements per chunk; <= 0 means all elements at once
func (o *CharFun) Iter(chunkSize, a, b, c int) *ChunkIter {
	nel := o.Nel()
	if chunkSize <= 0 || chunkSize > nel {
		chunkSize = nel
	}
	it := &ChunkIter{cf: o, nel: nel, size: chunkSize}
	if nel > 0 {
		it.buf = fld.NewArray(chunkSize, a, b, c)
	}
	return it
}

// ChunkIter iterates over chunks of elements
type ChunkIter struct {
	cf    *CharFun
	nel   int
	size  int
	pos   int
	buf   *fld.Array
	out   *fld.Array
	local []int
	chunk []int
}

// Next moves to the next chunk and zeroes the output buffer
func (o *ChunkIter) Next() bool {
	if o.pos >= o.nel {
		return false
	}
	n := o.size
	if o.pos+n > o.nel {
		n = o.nel - o.pos
	}
	o.local = make([]int, n)
	for k := range o.local {
		o.local[k] = o.pos + k
	}
	if o.cf.grp.Region.IsSurface() {
		o.chunk = make([]int, n)
		for k, f := range o.local {
			o.chunk[k] = o.cf.grp.FaceCell[f]
		}
	} else {
		o.chunk = o.local
	}
	o.out = o.buf.Head(n)
	o.out.Fill(0)
	o.pos += n
	return true
}

// Out returns the output buffer of the current chunk
func (o *ChunkIter) Out() *fld.Array { return o.out }

// Chunk returns the positions in group of the cells of the current chunk
func (o *ChunkIter) Chunk() []int { return o.chunk }

// LocalChunk returns the positions of the elements of the current chunk: cells or faces
func (o *ChunkIter) LocalChunk() []int { return o.local }

// Reset restarts the iteration
func (o *ChunkIter) Reset() { o.pos = 0 }
