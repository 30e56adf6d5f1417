package geometry2D

import (
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

// ErrTooFewVertices is returned when a polygon is built from less than 3 points
var ErrTooFewVertices = errors.New("polygon needs at least 3 vertices")

/*
HalfSpace is one oriented edge constraint of a polygon. A point p is on the
interior side when N·p - C > 0.
*/
type HalfSpace struct {
	N r2.Point
	C float64
}

func (hs HalfSpace) Margin(p r2.Point) float64 {
	return hs.N.Dot(p) - hs.C
}

/*
ComputeHalfSpaces produces one constraint per edge p[i] -> p[i+1], using the left
normal of the edge. A counter-clockwise boundary has its interior on the left of
every edge, so the constraints are satisfied inside. A clockwise boundary
produces an empty feasible region.
*/
func ComputeHalfSpaces(pts []r2.Point) (hs []HalfSpace) {
	var (
		n = len(pts)
	)
	hs = make([]HalfSpace, n)
	for i, p := range pts {
		q := pts[(i+1)%n]
		nv := q.Sub(p).Ortho() // (-dy, dx)
		hs[i] = HalfSpace{N: nv, C: nv.Dot(p)}
	}
	return
}

type Polygon struct {
	Points     []r2.Point
	HalfSpaces []HalfSpace
	Box        r2.Rect
}

func NewPolygon(pts []r2.Point) (pg *Polygon, err error) {
	if len(pts) < 3 {
		err = errors.Wrapf(ErrTooFewVertices, "have %d", len(pts))
		return
	}
	points := make([]r2.Point, len(pts))
	copy(points, pts)
	pg = &Polygon{
		Points:     points,
		HalfSpaces: ComputeHalfSpaces(points),
		Box:        r2.RectFromPoints(points...),
	}
	return
}

// Contains is a ray crossing test, preceded by a bounding box rejection
func (pg *Polygon) Contains(p r2.Point) bool {
	if !pg.Box.ContainsPoint(p) {
		return false
	}
	return PointInPolygon(p, pg.Points)
}

func PointInPolygon(p r2.Point, poly []r2.Point) (inside bool) {
	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		pi, pj := poly[i], poly[j]
		if (pi.Y > p.Y) != (pj.Y > p.Y) &&
			p.X < (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y)+pi.X {
			inside = !inside
		}
	}
	return
}

func InsideAny(p r2.Point, polys []*Polygon) bool {
	for _, pg := range polys {
		if pg.Contains(p) {
			return true
		}
	}
	return false
}

// SignedArea is positive for a counter-clockwise boundary
func (pg *Polygon) SignedArea() (area float64) {
	n := len(pg.Points)
	for i, p := range pg.Points {
		area += p.Cross(pg.Points[(i+1)%n])
	}
	return 0.5 * area
}

func (pg *Polygon) IsCCW() bool { return pg.SignedArea() > 0 }

/*
IsConvex reports whether every consecutive edge turn has the same sign. Collinear
vertices are tolerated.
*/
func (pg *Polygon) IsConvex() bool {
	var (
		n        = len(pg.Points)
		pos, neg bool
	)
	for i := 0; i < n; i++ {
		a, b, c := pg.Points[i], pg.Points[(i+1)%n], pg.Points[(i+2)%n]
		cr := b.Sub(a).Cross(c.Sub(b))
		switch {
		case cr > 0:
			pos = true
		case cr < 0:
			neg = true
		}
		if pos && neg {
			return false
		}
	}
	return true
}

// Flat returns the vertices packed as x0,y0,x1,y1,...
func (pg *Polygon) Flat() (xy []float64) {
	xy = make([]float64, 2*len(pg.Points))
	for i, p := range pg.Points {
		xy[2*i], xy[2*i+1] = p.X, p.Y
	}
	return
}
