package mesh

import (
	"gonum.org/v1/gonum/spatial/kdtree"
)

type vertexPoint struct {
	X     [2]float64
	Index int
}

func (p *vertexPoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	return p.X[d] - c.(*vertexPoint).X[d]
}

func (p *vertexPoint) Dims() int { return 2 }

func (p *vertexPoint) Distance(c kdtree.Comparable) float64 {
	q := c.(*vertexPoint)
	dx, dy := p.X[0]-q.X[0], p.X[1]-q.X[1]
	return dx*dx + dy*dy
}

type vertexPoints []*vertexPoint

func (vp vertexPoints) Index(i int) kdtree.Comparable { return vp[i] }
func (vp vertexPoints) Len() int                       { return len(vp) }
func (vp vertexPoints) Slice(start, end int) kdtree.Interface {
	return vp[start:end]
}

func (vp vertexPoints) Pivot(d kdtree.Dim) int {
	p := vertexPlane{points: vp, dim: d}
	return kdtree.Partition(p, kdtree.MedianOfMedians(p))
}

type vertexPlane struct {
	points vertexPoints
	dim    kdtree.Dim
}

func (p vertexPlane) Less(i, j int) bool {
	return p.points[i].Compare(p.points[j], p.dim) < 0
}
func (p vertexPlane) Swap(i, j int) { p.points[i], p.points[j] = p.points[j], p.points[i] }
func (p vertexPlane) Len() int      { return len(p.points) }
func (p vertexPlane) Slice(start, end int) kdtree.SortSlicer {
	p.points = p.points[start:end]
	return p
}

/*
Locator finds the surface vertex nearest to a planar point, ignoring height. It
indexes the vertex footprint at construction and is not updated by deformation.
*/
type Locator struct {
	tree *kdtree.Tree
}

func NewLocator(s *Surface) (l *Locator) {
	l = &Locator{}
	if s.IsEmpty() {
		return
	}
	pts := make(vertexPoints, 0, s.NumVertices())
	// Only vertices that belong to a triangle can be hit
	used := make([]bool, s.NumVertices())
	for _, i := range s.Indices {
		used[i] = true
	}
	for i := 0; i < s.NumVertices(); i++ {
		if used[i] {
			pts = append(pts, &vertexPoint{X: [2]float64{s.Positions[3*i], s.Positions[3*i+1]}, Index: i})
		}
	}
	l.tree = kdtree.New(pts, false)
	return
}

// Nearest returns the vertex index and the squared planar distance to it
func (l *Locator) Nearest(x, y float64) (index int, dist2 float64, ok bool) {
	if l == nil || l.tree == nil {
		return -1, 0, false
	}
	c, d := l.tree.Nearest(&vertexPoint{X: [2]float64{x, y}})
	if c == nil {
		return -1, 0, false
	}
	return c.(*vertexPoint).Index, d, true
}
