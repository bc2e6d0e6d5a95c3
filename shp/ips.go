// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

// Ipoint holds integration point data: {r, s, t, w}
type Ipoint []float64

// GaussLegendre computes n Gauss-Legendre points and weights on [-1, 1]
// by solving the eigenvalue problem of the Jacobi matrix (Golub-Welsch)
func GaussLegendre(n int) (x, w []float64, err error) {
	if n < 1 {
		return nil, nil, chk.Err("number of Gauss points must be at least 1. n=%d is invalid", n)
	}
	if n == 1 {
		return []float64{0}, []float64{2}, nil
	}

	// symmetric tridiagonal Jacobi matrix; zero diagonal for Legendre polynomials
	J := mat.NewSymDense(n, nil)
	for i := 1; i < n; i++ {
		k := float64(i)
		J.SetSym(i-1, i, k/math.Sqrt(4*k*k-1))
	}

	// eigenvalues are the nodes; weights come from the first component of eigenvectors
	var eig mat.EigenSym
	if ok := eig.Factorize(J, true); !ok {
		return nil, nil, chk.Err("eigen decomposition of Jacobi matrix with n=%d failed", n)
	}
	x = eig.Values(nil)
	var V mat.Dense
	eig.VectorsTo(&V)
	w = make([]float64, n)
	for i := 0; i < n; i++ {
		v0 := V.At(0, i)
		w[i] = 2 * v0 * v0
	}

	// remove round-off asymmetry about zero
	for i := 0; i < n/2; i++ {
		j := n - 1 - i
		a := 0.5 * (x[j] - x[i])
		x[i], x[j] = -a, a
		b := 0.5 * (w[i] + w[j])
		w[i], w[j] = b, b
	}
	if n%2 == 1 {
		x[n/2] = 0
	}
	return
}

// NpointsForOrder returns the number of Gauss-Legendre points per direction that
// integrate exactly polynomials of the given order
func NpointsForOrder(order int) int {
	if order < 1 {
		return 1
	}
	return (order + 2) / 2
}

// GetIps returns the integration points of a shape for a given polynomial order
func GetIps(geoType string, order int) (ips []Ipoint, err error) {
	switch geoType {
	case "lin2":
		x, w, e := GaussLegendre(NpointsForOrder(order))
		if e != nil {
			return nil, e
		}
		for i := range x {
			ips = append(ips, Ipoint{x[i], 0, 0, w[i]})
		}
	case "qua4":
		x, w, e := GaussLegendre(NpointsForOrder(order))
		if e != nil {
			return nil, e
		}
		for j := range x {
			for i := range x {
				ips = append(ips, Ipoint{x[i], x[j], 0, w[i] * w[j]})
			}
		}
	case "hex8":
		x, w, e := GaussLegendre(NpointsForOrder(order))
		if e != nil {
			return nil, e
		}
		for k := range x {
			for j := range x {
				for i := range x {
					ips = append(ips, Ipoint{x[i], x[j], x[k], w[i] * w[j] * w[k]})
				}
			}
		}
	case "tri3":
		switch {
		case order <= 1:
			ips = ipsTri1
		case order == 2:
			ips = ipsTri3
		case order <= 4:
			ips = ipsTri6
		default:
			return nil, chk.Err("integration of order %d is not available for %q", order, geoType)
		}
	default:
		return nil, chk.Err("integration points for %q are not available", geoType)
	}
	return
}

var ipsTri1 = []Ipoint{
	{1.0 / 3.0, 1.0 / 3.0, 0, 1.0 / 2.0},
}

var ipsTri3 = []Ipoint{
	{1.0 / 6.0, 1.0 / 6.0, 0, 1.0 / 6.0},
	{2.0 / 3.0, 1.0 / 6.0, 0, 1.0 / 6.0},
	{1.0 / 6.0, 2.0 / 3.0, 0, 1.0 / 6.0},
}

var ipsTri6 = []Ipoint{
	{0.445948490915965, 0.445948490915965, 0, 0.223381589678011 / 2.0},
	{0.108103018168070, 0.445948490915965, 0, 0.223381589678011 / 2.0},
	{0.445948490915965, 0.108103018168070, 0, 0.223381589678011 / 2.0},
	{0.091576213509771, 0.091576213509771, 0, 0.109951743655322 / 2.0},
	{0.816847572980459, 0.091576213509771, 0, 0.109951743655322 / 2.0},
	{0.091576213509771, 0.816847572980459, 0, 0.109951743655322 / 2.0},
}
