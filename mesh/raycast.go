package mesh

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gowarp/utils"
)

const rayEpsilon = utils.NODETOL

type Ray struct {
	Origin, Dir r3.Vec
}

// VerticalRay points straight down at (x, y) from above any reasonable surface
func VerticalRay(x, y float64) Ray {
	return Ray{Origin: r3.Vec{X: x, Y: y, Z: 1.e6}, Dir: r3.Vec{Z: -1}}
}

func (r Ray) At(t float64) r3.Vec { return r3.Add(r.Origin, r3.Scale(t, r.Dir)) }

type Hit struct {
	Point    r3.Vec
	Normal   r3.Vec // Unit face normal
	Triangle int
	T        float64
}

/*
Intersect returns the nearest hit of the ray with the surface, testing both
faces of every triangle with the Moller-Trumbore algorithm.
*/
func (s *Surface) Intersect(ray Ray) (hit Hit, ok bool) {
	hit.T = math.Inf(1)
	for t := 0; t < s.NumTriangles(); t++ {
		ia, ib, ic := s.Triangle(t)
		a, b, c := s.Vertex(ia), s.Vertex(ib), s.Vertex(ic)
		d, found := intersectTriangle(ray, a, b, c)
		if !found || d >= hit.T {
			continue
		}
		ok = true
		hit.T = d
		hit.Triangle = t
		hit.Normal = r3.Unit(FaceNormal(a, b, c))
	}
	if ok {
		hit.Point = ray.At(hit.T)
	}
	return
}

func intersectTriangle(ray Ray, a, b, c r3.Vec) (t float64, ok bool) {
	e1 := r3.Sub(b, a)
	e2 := r3.Sub(c, a)
	p := r3.Cross(ray.Dir, e2)
	det := r3.Dot(e1, p)
	if math.Abs(det) < rayEpsilon {
		return
	}
	inv := 1 / det
	tv := r3.Sub(ray.Origin, a)
	u := r3.Dot(tv, p) * inv
	if u < 0 || u > 1 {
		return
	}
	q := r3.Cross(tv, e1)
	v := r3.Dot(ray.Dir, q) * inv
	if v < 0 || u+v > 1 {
		return
	}
	t = r3.Dot(e2, q) * inv
	return t, t > rayEpsilon
}
