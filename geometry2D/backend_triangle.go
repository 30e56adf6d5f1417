//go:build triangle

package geometry2D

import (
	"github.com/pradeep-pyro/triangle"
)

// Triangulate hands the point set to Shewchuk's Triangle through cgo
func Triangulate(X, Y []float64) (tris [][3]int32) {
	if len(X) < 3 || len(Y) != len(X) {
		return
	}
	pts := make([][2]float64, len(X))
	for i := range X {
		pts[i] = [2]float64{X[i], Y[i]}
	}
	for _, t := range triangle.Delaunay(pts) {
		a, b, c := t[0], t[1], t[2]
		if orient(X[a], Y[a], X[b], Y[b], X[c], Y[c]) < 0 {
			b, c = c, b
		}
		tris = append(tris, [3]int32{a, b, c})
	}
	return
}
