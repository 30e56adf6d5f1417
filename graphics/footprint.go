package graphics

import (
	"image/color"
	"math"
	"time"

	"github.com/notargets/avs/chart2d"
	"github.com/notargets/avs/geometry"
	utils2 "github.com/notargets/avs/utils"
)

/*
TriMeshFromPacked converts packed xyz positions (stride 3) and triangle indices
into the planar mesh the avs charts draw.
*/
func TriMeshFromPacked(positions []float64, indices []uint32) (gm geometry.TriMesh) {
	var (
		np = len(positions) / 3
		nt = len(indices) / 3
	)
	gm = geometry.TriMesh{
		XY:       make([]float32, 2*np),
		TriVerts: make([][3]int64, nt),
	}
	for i := 0; i < np; i++ {
		gm.XY[2*i] = float32(positions[3*i])
		gm.XY[2*i+1] = float32(positions[3*i+1])
	}
	for k := 0; k < nt; k++ {
		for n := 0; n < 3; n++ {
			gm.TriVerts[k][n] = int64(indices[3*k+n])
		}
	}
	return
}

// ClosedLoopSegments turns a packed xy loop into x1,y1,x2,y2 segment pairs
func ClosedLoopSegments(xy []float64) (line []float32) {
	n := len(xy) / 2
	if n < 2 {
		return
	}
	line = make([]float32, 0, 4*n)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		line = append(line,
			float32(xy[2*i]), float32(xy[2*i+1]),
			float32(xy[2*j]), float32(xy[2*j+1]),
		)
	}
	return
}

func GetMinMax(XY []float32) (xMin, xMax, yMin, yMax float32) {
	xMin, xMax = float32(math.MaxFloat32), -float32(math.MaxFloat32)
	yMin, yMax = float32(math.MaxFloat32), -float32(math.MaxFloat32)
	for i := 0; i < len(XY)/2; i++ {
		x, y := XY[2*i], XY[2*i+1]
		xMin, xMax = min(xMin, x), max(xMax, x)
		yMin, yMax = min(yMin, y), max(yMax, y)
	}
	return
}

/*
PlotFootprint opens a chart window with the triangulated footprint of a surface
and red polygon outlines. It holds the window for hold, or forever when hold is
not positive.
*/
func PlotFootprint(gm geometry.TriMesh, outlines [][]float32, hold time.Duration) {
	xMin, xMax, yMin, yMax := GetMinMax(gm.XY)
	ch := chart2d.NewChart2D(xMin, xMax, yMin, yMax,
		1024, 1024, utils2.WHITE, utils2.BLACK)
	ch.AddTriMesh(gm)
	red := color.RGBA{R: 255, G: 0, B: 50, A: 255}
	for _, line := range outlines {
		ch.AddLine(line, red)
	}
	if hold <= 0 {
		select {}
	}
	time.Sleep(hold)
}
