// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
)

// Options holds the options for the evaluation of terms
type Options struct {
	Desc      string `json:"desc"`      // description
	ChunkSize int    `json:"chunksize"` // number of elements evaluated together; 0 => use default
	Order     int    `json:"order"`     // polynomial order of the default integral; 0 => use default
	Parallel  bool   `json:"parallel"`  // evaluate independent terms concurrently
	KeepGoing bool   `json:"keepgoing"` // flag cells with failed integration instead of aborting
	Verbose   bool   `json:"verbose"`   // show messages
}

// default values
const (
	DefaultChunkSize = 1000
	DefaultOrder     = 2
)

// SetDefault sets default values
func (o *Options) SetDefault() {
	o.ChunkSize = DefaultChunkSize
	o.Order = DefaultOrder
}

// PostProcess fixes values after reading
func (o *Options) PostProcess() (err error) {
	if o.ChunkSize == 0 {
		o.ChunkSize = DefaultChunkSize
	}
	if o.Order == 0 {
		o.Order = DefaultOrder
	}
	if o.ChunkSize < 0 {
		return chk.Err("chunk size must be positive. chunksize=%d is invalid", o.ChunkSize)
	}
	if o.Order < 0 {
		return chk.Err("integral order must be positive. order=%d is invalid", o.Order)
	}
	return
}

// NewOptions returns options with default values
func NewOptions() *Options {
	var o Options
	o.SetDefault()
	return &o
}

// ReadOptions reads options from a (.opt) JSON file
func ReadOptions(dir, fn string) (o *Options, err error) {

	// read file
	fn = filepath.Join(dir, fn)
	b, err := os.ReadFile(os.ExpandEnv(fn))
	if err != nil {
		return nil, chk.Err("cannot read options file %q:\n%v", fn, err)
	}

	// decode
	o = NewOptions()
	err = json.Unmarshal(b, o)
	if err != nil {
		return nil, chk.Err("cannot unmarshal options file %q:\n%v", fn, err)
	}
	err = o.PostProcess()
	if err != nil {
		return nil, chk.Err("options file %q is invalid:\n%v", fn, err)
	}
	return
}
