package deform

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gowarp/field"
	"github.com/notargets/gowarp/metric"
	"github.com/notargets/gowarp/utils"
)

func TestTransformPoint(t *testing.T) {
	{ // A = I is the identity map
		m := metric.FromHessian(1, 0, 1)
		anchor := r3.Vec{X: 0.3, Y: -1.2, Z: 4}
		for _, p := range []r3.Vec{{X: 1, Y: 2, Z: 3}, {X: -7.5, Y: 0.25, Z: -1}, {}} {
			q := TransformPoint(p, anchor, m)
			assert.InDelta(t, p.X, q.X, 1.e-14)
			assert.InDelta(t, p.Y, q.Y, 1.e-14)
			assert.Equal(t, p.Z, q.Z)
		}
	}
	{ // Anchor is a fixed point, distances scale by L
		m := metric.FromHessian(0.25, 0, 0.25)
		anchor := r3.Vec{X: 1, Y: 1}
		assert.Equal(t, anchor, TransformPoint(anchor, anchor, m))
		q := TransformPoint(r3.Vec{X: 3, Y: 1, Z: 2}, anchor, m)
		assert.InDelta(t, 2., q.X, 1.e-14)
		assert.InDelta(t, 1., q.Y, 1.e-14)
		assert.Equal(t, 2., q.Z)
	}
	{ // Non-finite metric falls back to identity per point
		m := metric.LocalMetric{L11: math.NaN(), L22: 1}
		p := r3.Vec{X: 2, Y: 3, Z: 1}
		assert.Equal(t, p, TransformPoint(p, r3.Vec{}, m))
		m = metric.LocalMetric{L11: math.Inf(1), L22: 1}
		q := TransformPoint(r3.Vec{X: 0, Y: 3}, r3.Vec{}, m)
		assert.Equal(t, 0., q.X) // Inf*0 is NaN
		assert.Equal(t, 3., q.Y)
	}
	{
		m := metric.FromHessian(4, 0, 1)
		src := []float64{1, 1, 9, 2, 0, 8}
		dst := TransformBuffer(src, 3, r3.Vec{}, m)
		assert.Equal(t, []float64{1, 1, 9, 2, 0, 8}, src)
		assert.InDeltaSlice(t, []float64{2, 1, 9, 4, 0, 8}, dst, 1.e-14)
		dst = TransformBuffer([]float64{1, 1, 2, 0}, 2, r3.Vec{X: 1}, m)
		assert.InDeltaSlice(t, []float64{1, 1, 3, 0}, dst, 1.e-14)
	}
	{ // Large buffers are split across workers and match the pointwise map
		m := metric.FromHessian(0.6, 0.05, 0.2)
		anchor := r3.Vec{X: 0.5, Y: -0.5}
		n := 3 * utils.MinParallelItems
		src := make([]float64, 3*n)
		for i := 0; i < n; i++ {
			src[3*i], src[3*i+1], src[3*i+2] = float64(i%97)-48, float64(i%31)-15, float64(i)
		}
		dst := TransformBuffer(src, 3, anchor, m)
		for i := 0; i < n; i++ {
			q := TransformPoint(r3.Vec{X: src[3*i], Y: src[3*i+1], Z: src[3*i+2]}, anchor, m)
			assert.Equal(t, q, r3.Vec{X: dst[3*i], Y: dst[3*i+1], Z: dst[3*i+2]})
		}
	}
}

func TestIntrinsicBall(t *testing.T) {
	{ // Paraboloid at the origin, circle of radius 2 that warps to the unit circle
		_, p, _ := field.PresetByName("paraboloid")
		m := metric.Hessian2D(p, 0, 0)
		center := r2.Point{}
		var n int
		for pt := range IntrinsicBall(center, m, DefaultBallSteps) {
			n++
			assert.InDelta(t, 2., pt.Norm(), 1.e-5)
			w := TransformPoint(r3.Vec{X: pt.X, Y: pt.Y}, r3.Vec{}, m)
			assert.InDelta(t, 1., math.Hypot(w.X, w.Y), 1.e-5)
		}
		assert.Equal(t, DefaultBallSteps, n)
	}
	{ // Every sample sits on the unit level set of the quadratic form
		m := metric.FromHessian(0.6, 0.05, 0.2)
		center := r2.Point{X: -1, Y: 2}
		xy := BallPoints(center, m, 64)
		assert.Equal(t, 128, len(xy))
		for i := 0; i < len(xy); i += 2 {
			vx, vy := xy[i]-center.X, xy[i+1]-center.Y
			assert.InDelta(t, 1., m.QuadraticForm(vx, vy), 1.e-12)
		}
		// Restartable
		assert.Equal(t, xy, BallPoints(center, m, 64))
	}
	{ // A saddle skips directions with a non-positive form
		m := metric.FromHessian(1, 0, -1)
		xy := BallPoints(r2.Point{}, m, 4)
		// Angles 0 and π keep q = 1, π/2 and 3π/2 are negative
		assert.Equal(t, 4, len(xy))
		assert.InDeltaSlice(t, []float64{1, 0, -1, 0}, xy, 1.e-12)
	}
	{ // Early termination
		m := metric.Identity()
		var n int
		for range IntrinsicBall(r2.Point{}, m, 100) {
			n++
			if n == 10 {
				break
			}
		}
		assert.Equal(t, 10, n)
	}
}
