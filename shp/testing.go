// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/io"
)

// CheckShape checks that shape functions evaluate to 1.0 @ nodes
func CheckShape(tst *testing.T, shape *Shape, tol float64, verbose bool) {

	// loop over all vertices
	errS := 0.0
	r := []float64{0, 0, 0}
	S, dSdR := shape.NewScratch()
	for n := 0; n < shape.Nverts; n++ {

		// natural coordinates @ vertex
		for i := 0; i < shape.Gndim; i++ {
			r[i] = shape.NatCoords[i][n]
		}

		// compute function
		shape.Func(S, dSdR, r, false)

		// check
		if verbose {
			io.Pf("S = %v\n", S)
		}
		for m := 0; m < shape.Nverts; m++ {
			if n == m {
				errS += math.Abs(S[m] - 1.0)
			} else {
				errS += math.Abs(S[m])
			}
		}
	}

	// error
	if errS > tol {
		tst.Errorf("%s failed with err = %g\n", shape.Type, errS)
		return
	}
}

// CheckDerivs checks dSdR against central differences @ the integration points
func CheckDerivs(tst *testing.T, shape *Shape, tol float64, verbose bool) {

	// auxiliary
	h := 1e-5
	r := []float64{0, 0, 0}
	S, dSdR := shape.NewScratch()
	Sp, tmp := shape.NewScratch()
	Sm, _ := shape.NewScratch()
	ips, err := GetIps(shape.Type, 2)
	if err != nil {
		tst.Errorf("GetIps failed: %v\n", err)
		return
	}

	// loop over integration points
	maxErr := 0.0
	for _, ip := range ips {
		copy(r, ip[:3])
		shape.Func(S, dSdR, r, true)
		for i := 0; i < shape.Gndim; i++ {
			ri := r[i]
			r[i] = ri + h
			shape.Func(Sp, tmp, r, false)
			r[i] = ri - h
			shape.Func(Sm, tmp, r, false)
			r[i] = ri
			for m := 0; m < shape.Nverts; m++ {
				dnum := (Sp[m] - Sm[m]) / (2.0 * h)
				maxErr = math.Max(maxErr, math.Abs(dSdR[m][i]-dnum))
			}
		}
	}

	// error
	if verbose {
		io.Pforan("%s: max error of dSdR = %g\n", shape.Type, maxErr)
	}
	if maxErr > tol {
		tst.Errorf("%s: derivatives failed with err = %g\n", shape.Type, maxErr)
	}
}

// CheckFaces checks that faces' local vertices are consistent with the face shape
func CheckFaces(tst *testing.T, shape *Shape) {
	if shape.FaceType == "" {
		return
	}
	fshape, err := Get(shape.FaceType)
	if err != nil {
		tst.Errorf("%s: cannot get face shape: %v\n", shape.Type, err)
		return
	}
	for k, lverts := range shape.FaceLocalVerts {
		if len(lverts) != fshape.Nverts {
			tst.Errorf("%s: face %d has %d vertices; but %q requires %d\n", shape.Type, k, len(lverts), fshape.Type, fshape.Nverts)
		}
	}
}
