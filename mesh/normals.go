package mesh

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gowarp/utils"
)

// FaceNormal is (c-b)x(a-b), its length is twice the triangle area
func FaceNormal(a, b, c r3.Vec) r3.Vec {
	return r3.Cross(r3.Sub(c, b), r3.Sub(a, b))
}

/*
Incidence returns the vertex to triangle incidence matrix, one row per vertex
with a unit entry for every triangle using it.
*/
func Incidence(s *Surface) utils.CSR {
	dok := utils.NewDOK(s.NumVertices(), s.NumTriangles())
	for t := 0; t < s.NumTriangles(); t++ {
		a, b, c := s.Triangle(t)
		dok.Set(a, t, 1)
		dok.Set(b, t, 1)
		dok.Set(c, t, 1)
	}
	return dok.ToCSR()
}

/*
ComputeNormals sets each vertex normal to the normalized, area weighted sum of
the face normals around it. Vertices used by no triangle get a zero normal.
*/
func ComputeNormals(s *Surface) {
	var (
		nv    = s.NumVertices()
		nt    = s.NumTriangles()
		faces = make([]r3.Vec, nt)
	)
	for t := 0; t < nt; t++ {
		a, b, c := s.Triangle(t)
		faces[t] = FaceNormal(s.Vertex(a), s.Vertex(b), s.Vertex(c))
	}
	if len(s.Normals) != 3*nv {
		s.Normals = make([]float64, 3*nv)
	}
	inc := Incidence(s)
	for i := 0; i < nv; i++ {
		var sum r3.Vec
		for _, t := range inc.RowNonZeros(i) {
			sum = r3.Add(sum, faces[t])
		}
		if l := r3.Norm(sum); l > 0 {
			sum = r3.Scale(1/l, sum)
		}
		s.Normals[3*i], s.Normals[3*i+1], s.Normals[3*i+2] = sum.X, sum.Y, sum.Z
	}
}

// ComputeOutlineNormals returns horizontal vertex normals of a closed 3-D polyline,
// perpendicular to the tangent through each vertex
func ComputeOutlineNormals(xyz []float64) (normals []float64) {
	var (
		n = len(xyz) / 3
	)
	normals = make([]float64, len(xyz))
	if n < 2 {
		return
	}
	at := func(i int) r3.Vec {
		i = (i + n) % n
		return r3.Vec{X: xyz[3*i], Y: xyz[3*i+1], Z: xyz[3*i+2]}
	}
	up := r3.Vec{Z: 1}
	for i := 0; i < n; i++ {
		tangent := r3.Sub(at(i+1), at(i-1))
		nrm := r3.Cross(up, tangent)
		if l := r3.Norm(nrm); l > 0 {
			nrm = r3.Scale(1/l, nrm)
		}
		normals[3*i], normals[3*i+1], normals[3*i+2] = nrm.X, nrm.Y, nrm.Z
	}
	return
}
