// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"context"

	"github.com/cpmech/goterms/inp"
	"github.com/cpmech/goterms/term"
	"github.com/cpmech/gosl/chk"
	"golang.org/x/sync/errgroup"
)

// EvalScalars evaluates functional terms returning one scalar each. With Opts.Parallel,
// terms are evaluated concurrently sharing the caches of the current pass
func (o *Domain) EvalScalars(ctx context.Context, descs []*TermDesc) (vals []float64, err error) {

	// bind all terms first
	terms := make([]term.Term, len(descs))
	for i, desc := range descs {
		terms[i], err = o.Bind(desc)
		if err != nil {
			return
		}
	}

	// evaluate
	vals = make([]float64, len(descs))
	eval := func(i int) error {
		return o.run(terms[i], "", func(_ *inp.Group, res *term.Result) error {
			if len(res.Val) != 1 {
				return chk.Err("term %q returns %d values; cannot be used as scalar", descs[i].Name, len(res.Val))
			}
			vals[i] += res.Val[0]
			return nil
		})
	}
	if !o.Opts.Parallel {
		for i := range terms {
			if err = ctx.Err(); err != nil {
				return nil, err
			}
			if err = eval(i); err != nil {
				return nil, err
			}
		}
		return
	}
	g, gctx := errgroup.WithContext(ctx)
	for i := range terms {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return eval(i)
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}
	return
}
