//go:build !triangle

package geometry2D

// Triangulate is the Delaunay backend used by the mesh pipeline
func Triangulate(X, Y []float64) [][3]int32 {
	return Delaunay(X, Y)
}
