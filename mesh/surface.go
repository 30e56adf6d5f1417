package mesh

import (
	"gonum.org/v1/gonum/spatial/r3"
)

/*
Surface is an indexed triangle mesh in the packed layout a renderer uploads.
Positions and Normals hold x,y,z per vertex, Colors holds r,g,b per vertex and
Indices holds three vertex indices per triangle, counter-clockwise seen from +z.
*/
type Surface struct {
	Positions  []float64
	Normals    []float64
	Colors     []float32
	Indices    []uint32
	ZMin, ZMax float64
}

func (s *Surface) NumVertices() int  { return len(s.Positions) / 3 }
func (s *Surface) NumTriangles() int { return len(s.Indices) / 3 }
func (s *Surface) IsEmpty() bool     { return s == nil || len(s.Indices) == 0 }

func (s *Surface) Vertex(i int) r3.Vec {
	return r3.Vec{X: s.Positions[3*i], Y: s.Positions[3*i+1], Z: s.Positions[3*i+2]}
}

func (s *Surface) Triangle(t int) (a, b, c int) {
	return int(s.Indices[3*t]), int(s.Indices[3*t+1]), int(s.Indices[3*t+2])
}

// Clone is a deep copy
func (s *Surface) Clone() (c *Surface) {
	c = &Surface{
		Positions: append([]float64(nil), s.Positions...),
		Normals:   append([]float64(nil), s.Normals...),
		Colors:    append([]float32(nil), s.Colors...),
		Indices:   append([]uint32(nil), s.Indices...),
		ZMin:      s.ZMin,
		ZMax:      s.ZMax,
	}
	return
}

// XY returns the planar footprint of the vertices
func (s *Surface) XY() (x, y []float64) {
	n := s.NumVertices()
	x, y = make([]float64, n), make([]float64, n)
	for i := 0; i < n; i++ {
		x[i], y[i] = s.Positions[3*i], s.Positions[3*i+1]
	}
	return
}

// finish computes normals and the default height color ramp
func (s *Surface) finish() *Surface {
	if s.IsEmpty() {
		return &Surface{}
	}
	ComputeNormals(s)
	ApplyColorRamp(s, ViridisReversed, true)
	return s
}
