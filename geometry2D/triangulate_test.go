package geometry2D

import (
	"math"
	"math/rand"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsIllegalEdge(t *testing.T) {
	// Circumcircle of the reference triangle is centered at the origin, radius sqrt(2)
	R := []float64{0, 0.5, 0.9, -0.5, 1, 2, -1, 1, -1}
	S := []float64{0, 0.5, 0.9, 0.2, 1, 0, -1, -1, 1}
	inside := []bool{true, true, true, true, false, false, false, false, false}
	for i, r := range R {
		s := S[i]
		assert.Equal(t, inside[i], IsIllegalEdge(r, s, -1, -1, 1, -1, -1, 1))
		// Opposite handedness of the base triangle gives the same answer
		assert.Equal(t, inside[i], IsIllegalEdge(r, s, -1, 1, 1, -1, -1, -1))
	}
}

func checkTriangles(t *testing.T, X, Y []float64, tris [][3]int32) (area float64) {
	for _, tri := range tris {
		a, b, c := tri[0], tri[1], tri[2]
		o := orient(X[a], Y[a], X[b], Y[b], X[c], Y[c])
		require.Greater(t, o, 0.)
		area += 0.5 * o
		// Empty circumcircle
		for p := range X {
			if int32(p) == a || int32(p) == b || int32(p) == c {
				continue
			}
			assert.False(t, IsIllegalEdge(X[p], Y[p], X[a], Y[a], X[b], Y[b], X[c], Y[c]),
				"point %d inside circumcircle of %v", p, tri)
		}
	}
	return
}

func TestDelaunay(t *testing.T) {
	{ // Degenerate input
		assert.Empty(t, Delaunay([]float64{0, 1}, []float64{0, 1}))
		assert.Empty(t, Delaunay([]float64{0, 1, 2, 3}, []float64{0, 1, 2, 3}))
	}
	{ // Square with a center point
		X := []float64{-1, 1, 1, -1, 0}
		Y := []float64{-1, -1, 1, 1, 0}
		tris := Delaunay(X, Y)
		assert.Equal(t, 4, len(tris))
		assert.InDelta(t, 4., checkTriangles(t, X, Y, tris), 1.e-12)
	}
	{ // Regular grid with cocircular cells and collinear hull
		var (
			X, Y []float64
			m    = 6
			s    = 0.5
		)
		for i := 0; i < m; i++ {
			for j := 0; j < m; j++ {
				X = append(X, float64(i)*s)
				Y = append(Y, float64(j)*s)
			}
		}
		tris := Delaunay(X, Y)
		assert.Equal(t, 2*(m-1)*(m-1), len(tris))
		assert.InDelta(t, math.Pow(float64(m-1)*s, 2), checkTriangles(t, X, Y, tris), 1.e-9)
	}
	{ // Scattered points, 2n-2-h triangles for a triangular hull
		var (
			rng  = rand.New(rand.NewSource(7))
			X, Y = []float64{-2, 2, 0}, []float64{-2, -2, 2}
		)
		for len(X) < 200 {
			x, y := rng.Float64()*2-1, rng.Float64()*2-1.5
			// Stay clear of the hull edges
			if orient(-2, -2, 2, -2, x, y) > 0.5 && orient(2, -2, 0, 2, x, y) > 0.5 &&
				orient(0, 2, -2, -2, x, y) > 0.5 {
				X, Y = append(X, x), append(Y, y)
			}
		}
		tris := Delaunay(X, Y)
		assert.Equal(t, 2*len(X)-2-3, len(tris))
		assert.InDelta(t, 8., checkTriangles(t, X, Y, tris), 1.e-9)
	}
	{ // Grid samples inside a slanted quad cover the quad exactly
		var (
			quad = []r2.Point{{X: -3, Y: -2}, {X: 4, Y: -1}, {X: 2, Y: 3}, {X: -2.5, Y: 2}}
			X, Y []float64
		)
		for _, p := range quad {
			X, Y = append(X, p.X), append(Y, p.Y)
		}
		for i := 0; i <= 28; i++ {
			for j := 0; j <= 20; j++ {
				p := r2.Point{X: -3 + 0.25*float64(i), Y: -2 + 0.25*float64(j)}
				inside := true
				for k := range quad {
					if orient(quad[k].X, quad[k].Y, quad[(k+1)%4].X, quad[(k+1)%4].Y, p.X, p.Y) <= 1.e-3 {
						inside = false
					}
				}
				if inside {
					X, Y = append(X, p.X), append(Y, p.Y)
				}
			}
		}
		tris := Delaunay(X, Y)
		assert.Equal(t, 2*len(X)-2-4, len(tris))
		assert.InDelta(t, 23.75, checkTriangles(t, X, Y, tris), 1.e-9)
	}
	{ // A nearly flat lower hull whose circumcircles reach far outside the points
		var X, Y []float64
		for i := -5; i <= 5; i++ {
			x := float64(i)
			X, Y = append(X, x), append(Y, 1.e-4*x*x)
		}
		X, Y = append(X, 0), append(Y, 2)
		var hull float64
		n := len(X)
		for i := 0; i < n; i++ {
			j := (i + 1) % n
			hull += 0.5 * (X[i]*Y[j] - X[j]*Y[i])
		}
		tris := Delaunay(X, Y)
		assert.Equal(t, 2*n-2-n, len(tris))
		assert.InDelta(t, hull, checkTriangles(t, X, Y, tris), 1.e-9)
	}
	{ // Duplicate points are skipped
		X := []float64{-1, 1, 1, -1, 0, 1, 0}
		Y := []float64{-1, -1, 1, 1, 0, 1, 0}
		tris := Delaunay(X, Y)
		assert.Equal(t, 4, len(tris))
		for _, tri := range tris {
			for _, v := range tri {
				assert.Less(t, v, int32(5))
			}
		}
	}
}
