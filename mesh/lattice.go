package mesh

import (
	"github.com/golang/geo/r2"

	"github.com/notargets/gowarp/field"
	"github.com/notargets/gowarp/geometry2D"
)

/*
NewLattice samples f on a (samples+1)x(samples+1) lattice over domain. When polys
is not empty, vertices outside all of them are culled. Vertices where f is not
finite are dropped as well. A lattice cell contributes the triangles (a,b,d) and
(b,c,d) only where all three corners survive.
*/
func NewLattice(f field.ScalarField, domain r2.Rect, samples int, polys []*geometry2D.Polygon) *Surface {
	if samples < 1 {
		return &Surface{}
	}
	var (
		n     = samples + 1
		remap = make([]int32, n*n)
		s     = &Surface{}
		next  int32
	)
	lerp := func(lo, hi float64, k int) float64 {
		return lo + (hi-lo)*float64(k)/float64(samples)
	}
	for i := 0; i < n; i++ {
		x := lerp(domain.X.Lo, domain.X.Hi, i)
		for j := 0; j < n; j++ {
			y := lerp(domain.Y.Lo, domain.Y.Hi, j)
			remap[i*n+j] = -1
			if len(polys) != 0 && !geometry2D.InsideAny(r2.Point{X: x, Y: y}, polys) {
				continue
			}
			// Evaluated after the culling test
			z, ok := f.Evaluate(x, y)
			if !ok {
				continue
			}
			remap[i*n+j] = next
			next++
			s.Positions = append(s.Positions, x, y, z)
		}
	}
	for i := 0; i < samples; i++ {
		for j := 0; j < samples; j++ {
			a := remap[i*n+j]
			b := remap[(i+1)*n+j]
			c := remap[(i+1)*n+j+1]
			d := remap[i*n+j+1]
			if a >= 0 && b >= 0 && d >= 0 {
				s.Indices = append(s.Indices, uint32(a), uint32(b), uint32(d))
			}
			if b >= 0 && c >= 0 && d >= 0 {
				s.Indices = append(s.Indices, uint32(b), uint32(c), uint32(d))
			}
		}
	}
	return s.finish()
}
