// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_shp01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("shp01")

	for _, name := range Types() {
		io.Pforan("--- %s ---\n", name)
		s, err := Get(name)
		if err != nil {
			tst.Errorf("Get failed: %v\n", err)
			return
		}
		CheckShape(tst, s, 1e-15, chk.Verbose)
		CheckDerivs(tst, s, 1e-9, chk.Verbose)
		CheckFaces(tst, s)
	}

	_, err := Get("tri6")
	if err == nil {
		tst.Errorf("Get should have failed with unknown shape\n")
	}
}

func Test_gauss01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("gauss01")

	x, w, err := GaussLegendre(2)
	if err != nil {
		tst.Errorf("GaussLegendre failed: %v\n", err)
		return
	}
	a := 1.0 / math.Sqrt(3.0)
	chk.Array(tst, "x2", 1e-14, x, []float64{-a, a})
	chk.Array(tst, "w2", 1e-14, w, []float64{1, 1})

	x, w, err = GaussLegendre(3)
	if err != nil {
		tst.Errorf("GaussLegendre failed: %v\n", err)
		return
	}
	b := math.Sqrt(3.0 / 5.0)
	chk.Array(tst, "x3", 1e-14, x, []float64{-b, 0, b})
	chk.Array(tst, "w3", 1e-14, w, []float64{5.0 / 9.0, 8.0 / 9.0, 5.0 / 9.0})

	// x⁴ over [-1,1] with 3 points is exact
	x, w, _ = GaussLegendre(3)
	sum := 0.0
	for i := range x {
		sum += w[i] * math.Pow(x[i], 4)
	}
	chk.Float64(tst, "∫x⁴", 1e-14, sum, 2.0/5.0)

	_, _, err = GaussLegendre(0)
	if err == nil {
		tst.Errorf("GaussLegendre should have failed with n=0\n")
	}
}

func Test_ips01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ips01")

	// sum of weights == measure of reference shape
	measures := map[string]float64{"lin2": 2, "tri3": 0.5, "qua4": 4, "hex8": 8}
	nips := map[string]int{"lin2": 2, "tri3": 3, "qua4": 4, "hex8": 8}
	for name, meas := range measures {
		ips, err := GetIps(name, 2)
		if err != nil {
			tst.Errorf("GetIps failed: %v\n", err)
			return
		}
		sum := 0.0
		for _, ip := range ips {
			sum += ip[3]
		}
		chk.Int(tst, name+": nip", len(ips), nips[name])
		chk.Float64(tst, name+": Σw", 1e-14, sum, meas)
	}

	chk.Int(tst, "npts(0)", NpointsForOrder(0), 1)
	chk.Int(tst, "npts(3)", NpointsForOrder(3), 2)
	chk.Int(tst, "npts(4)", NpointsForOrder(4), 3)

	_, err := GetIps("tri3", 5)
	if err == nil {
		tst.Errorf("GetIps should have failed with tri3 and order 5\n")
	}
}
