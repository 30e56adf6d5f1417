package mesh

import (
	"math"

	"github.com/golang/geo/r2"

	"github.com/notargets/gowarp/field"
	"github.com/notargets/gowarp/geometry2D"
)

const DefaultClampStep = 0.05

/*
NewClamped builds a mesh restricted to a single polygon. The bounding box of the
polygon is sampled on step, interior samples with a finite value no higher than
maxZ are kept, and every polygon vertex is added with its height clamped to maxZ.
The point set is Delaunay triangulated in the plane and triangles whose centroid
falls outside the polygon are discarded.
*/
func NewClamped(f field.ScalarField, pg *geometry2D.Polygon, step, maxZ float64) *Surface {
	if pg == nil || len(pg.Points) < 3 {
		return &Surface{}
	}
	if !(step > 0) {
		step = DefaultClampStep
	}
	var (
		X, Y, Z []float64
		seen    = make(map[[2]float64]bool)
		box     = pg.Box
	)
	add := func(x, y, z float64) {
		key := [2]float64{x, y}
		if seen[key] {
			return
		}
		seen[key] = true
		X, Y, Z = append(X, x), append(Y, y), append(Z, z)
	}
	nx := int(math.Floor((box.X.Hi-box.X.Lo)/step + 1.e-9))
	ny := int(math.Floor((box.Y.Hi-box.Y.Lo)/step + 1.e-9))
	for i := 0; i <= nx; i++ {
		x := box.X.Lo + float64(i)*step
		for j := 0; j <= ny; j++ {
			y := box.Y.Lo + float64(j)*step
			if !geometry2D.PointInPolygon(r2.Point{X: x, Y: y}, pg.Points) {
				continue
			}
			z, ok := f.Evaluate(x, y)
			if !ok || z > maxZ {
				continue
			}
			add(x, y, z)
		}
	}
	for _, p := range pg.Points {
		z, ok := f.Evaluate(p.X, p.Y)
		if !ok || z > maxZ {
			z = maxZ
		}
		add(p.X, p.Y, z)
	}
	if len(X) < 3 {
		return &Surface{}
	}
	s := &Surface{Positions: make([]float64, 0, 3*len(X))}
	for i := range X {
		s.Positions = append(s.Positions, X[i], Y[i], Z[i])
	}
	for _, tri := range geometry2D.Triangulate(X, Y) {
		c := r2.Point{
			X: (X[tri[0]] + X[tri[1]] + X[tri[2]]) / 3,
			Y: (Y[tri[0]] + Y[tri[1]] + Y[tri[2]]) / 3,
		}
		if !geometry2D.PointInPolygon(c, pg.Points) {
			continue
		}
		s.Indices = append(s.Indices, uint32(tri[0]), uint32(tri[1]), uint32(tri[2]))
	}
	return s.finish()
}
