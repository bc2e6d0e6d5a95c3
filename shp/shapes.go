// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

func init() {
	register(&Shape{
		Type:           "lin2",
		Gndim:          1,
		Nverts:         2,
		FaceLocalVerts: [][]int{{0}, {1}},
		NatCoords:      [][]float64{{-1, 1}},
		Func:           FuncLin2,
	})
	register(&Shape{
		Type:           "tri3",
		Gndim:          2,
		Nverts:         3,
		FaceType:       "lin2",
		FaceLocalVerts: [][]int{{0, 1}, {1, 2}, {2, 0}},
		NatCoords: [][]float64{
			{0, 1, 0},
			{0, 0, 1},
		},
		Func: FuncTri3,
	})
	register(&Shape{
		Type:           "qua4",
		Gndim:          2,
		Nverts:         4,
		FaceType:       "lin2",
		FaceLocalVerts: [][]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}},
		NatCoords: [][]float64{
			{-1, 1, 1, -1},
			{-1, -1, 1, 1},
		},
		Func: FuncQua4,
	})
	register(&Shape{
		Type:     "hex8",
		Gndim:    3,
		Nverts:   8,
		FaceType: "qua4",
		FaceLocalVerts: [][]int{
			{0, 4, 7, 3}, {1, 2, 6, 5},
			{0, 1, 5, 4}, {2, 3, 7, 6},
			{0, 3, 2, 1}, {4, 5, 6, 7},
		},
		NatCoords: [][]float64{
			{-1, 1, 1, -1, -1, 1, 1, -1},
			{-1, -1, 1, 1, -1, -1, 1, 1},
			{-1, -1, -1, -1, 1, 1, 1, 1},
		},
		Func: FuncHex8,
	})
}

// FuncLin2 calculates the shape functions (S) and derivatives of shape functions (dSdR) of lin2
// elements at {r,s,t} natural coordinates. The derivatives are calculated only if derivs==true.
//
//   -----------------
//       0 ----- 1  --> r
//   -----------------
//
func FuncLin2(S []float64, dSdR [][]float64, R []float64, derivs bool) {
	r := R[0]
	S[0] = 0.5 * (1.0 - r)
	S[1] = 0.5 * (1.0 + r)
	if !derivs {
		return
	}
	dSdR[0][0] = -0.5
	dSdR[1][0] = 0.5
}

// FuncTri3 calculates the shape functions (S) and derivatives of shape functions (dSdR) of tri3
// elements at {r,s,t} natural coordinates. The derivatives are calculated only if derivs==true.
//
//    s
//    |
//    2, (0,1)
//    | ',
//    |   ',
//    |     ',
//    |       ',
//    0-----------1 ---- r
//  (0,0)       (1,0)
//
func FuncTri3(S []float64, dSdR [][]float64, R []float64, derivs bool) {
	r, s := R[0], R[1]
	S[0] = 1.0 - r - s
	S[1] = r
	S[2] = s
	if !derivs {
		return
	}
	dSdR[0][0], dSdR[0][1] = -1.0, -1.0
	dSdR[1][0], dSdR[1][1] = 1.0, 0.0
	dSdR[2][0], dSdR[2][1] = 0.0, 1.0
}

// FuncQua4 calculates the shape functions (S) and derivatives of shape functions (dSdR) of qua4
// elements at {r,s,t} natural coordinates. The derivatives are calculated only if derivs==true.
//
//   3-----------2
//   |     s     |
//   |     |     |
//   |     +--r  |
//   |           |
//   |           |
//   0-----------1
//
func FuncQua4(S []float64, dSdR [][]float64, R []float64, derivs bool) {
	r, s := R[0], R[1]
	S[0] = (1.0 - r - s + r*s) / 4.0
	S[1] = (1.0 + r - s - r*s) / 4.0
	S[2] = (1.0 + r + s + r*s) / 4.0
	S[3] = (1.0 - r + s - r*s) / 4.0
	if !derivs {
		return
	}
	dSdR[0][0], dSdR[0][1] = (-1.0+s)/4.0, (-1.0+r)/4.0
	dSdR[1][0], dSdR[1][1] = (+1.0-s)/4.0, (-1.0-r)/4.0
	dSdR[2][0], dSdR[2][1] = (+1.0+s)/4.0, (+1.0+r)/4.0
	dSdR[3][0], dSdR[3][1] = (-1.0-s)/4.0, (+1.0-r)/4.0
}

// FuncHex8 calculates the shape functions (S) and derivatives of shape functions (dSdR) of hex8
// elements at {r,s,t} natural coordinates. The derivatives are calculated only if derivs==true.
//
//              4________________7
//            ,'|              ,'|
//          ,'  |            ,'  |
//        ,'    |          ,'    |
//      ,'      |        ,'      |
//    5'===============6'        |
//    |         |      |         |
//    |         |      |         |
//    |         0_____ | ________3
//    |       ,'       |       ,'
//    |     ,'         |     ,'
//    |   ,'           |   ,'
//    | ,'             | ,'
//    1________________2'
//
func FuncHex8(S []float64, dSdR [][]float64, R []float64, derivs bool) {
	r, s, t := R[0], R[1], R[2]
	S[0] = (1.0 - r - s + r*s - t + s*t + r*t - r*s*t) / 8.0
	S[1] = (1.0 + r - s - r*s - t + s*t - r*t + r*s*t) / 8.0
	S[2] = (1.0 + r + s + r*s - t - s*t - r*t - r*s*t) / 8.0
	S[3] = (1.0 - r + s - r*s - t - s*t + r*t + r*s*t) / 8.0
	S[4] = (1.0 - r - s + r*s + t - s*t - r*t + r*s*t) / 8.0
	S[5] = (1.0 + r - s - r*s + t - s*t + r*t - r*s*t) / 8.0
	S[6] = (1.0 + r + s + r*s + t + s*t + r*t + r*s*t) / 8.0
	S[7] = (1.0 - r + s - r*s + t + s*t - r*t - r*s*t) / 8.0
	if !derivs {
		return
	}
	dSdR[0][0], dSdR[0][1], dSdR[0][2] = (-1.0+s+t-s*t)/8.0, (-1.0+r+t-r*t)/8.0, (-1.0+r+s-r*s)/8.0
	dSdR[1][0], dSdR[1][1], dSdR[1][2] = (+1.0-s-t+s*t)/8.0, (-1.0-r+t+r*t)/8.0, (-1.0-r+s+r*s)/8.0
	dSdR[2][0], dSdR[2][1], dSdR[2][2] = (+1.0+s-t-s*t)/8.0, (+1.0+r-t-r*t)/8.0, (-1.0-r-s-r*s)/8.0
	dSdR[3][0], dSdR[3][1], dSdR[3][2] = (-1.0-s+t+s*t)/8.0, (+1.0-r-t+r*t)/8.0, (-1.0+r-s+r*s)/8.0
	dSdR[4][0], dSdR[4][1], dSdR[4][2] = (-1.0+s-t+s*t)/8.0, (-1.0+r-t+r*t)/8.0, (+1.0-r-s+r*s)/8.0
	dSdR[5][0], dSdR[5][1], dSdR[5][2] = (+1.0-s+t-s*t)/8.0, (-1.0-r-t-r*t)/8.0, (+1.0+r-s-r*s)/8.0
	dSdR[6][0], dSdR[6][1], dSdR[6][2] = (+1.0+s+t+s*t)/8.0, (+1.0+r+t+r*t)/8.0, (+1.0+r+s+r*s)/8.0
	dSdR[7][0], dSdR[7][1], dSdR[7][2] = (-1.0-s-t-s*t)/8.0, (+1.0-r+t-r*t)/8.0, (+1.0-r+s-r*s)/8.0
}
