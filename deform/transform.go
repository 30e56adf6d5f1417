package deform

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gowarp/metric"
	"github.com/notargets/gowarp/utils"
)

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

/*
TransformPoint maps p by anchor + L·(p - anchor) in the plane, carrying Z
through. A non-finite result leaves p unchanged.
*/
func TransformPoint(p, anchor r3.Vec, m metric.LocalMetric) r3.Vec {
	x, y := TransformXY(p.X, p.Y, anchor.X, anchor.Y, m)
	return r3.Vec{X: x, Y: y, Z: p.Z}
}

func TransformXY(px, py, ax, ay float64, m metric.LocalMetric) (x, y float64) {
	vx, vy := px-ax, py-ay
	nx := m.L11*vx + m.L12*vy
	ny := m.L12*vx + m.L22*vy
	if !finite(nx) || !finite(ny) {
		return px, py
	}
	return ax + nx, ay + ny
}

/*
TransformBuffer reads packed points with the given stride (2 for xy, 3 for xyz)
and writes the mapped points into a new buffer. Components past the first two
are copied unchanged.
*/
func TransformBuffer(src []float64, stride int, anchor r3.Vec, m metric.LocalMetric) (dst []float64) {
	dst = make([]float64, len(src))
	copy(dst, src)
	utils.ParallelFor(len(src)/stride, func(lo, hi int) {
		for i := lo * stride; i < hi*stride; i += stride {
			dst[i], dst[i+1] = TransformXY(src[i], src[i+1], anchor.X, anchor.Y, m)
		}
	})
	return
}
