package deform

import (
	"iter"
	"math"

	"github.com/golang/geo/r2"

	"github.com/notargets/gowarp/metric"
)

const DefaultBallSteps = 244

/*
IntrinsicBall samples the unit ball {v : v·A·v = 1} of the Hessian around
center, one point per angle 2πk/steps. Directions where the quadratic form is
not positive are skipped. The sequence is recomputed on every iteration.
*/
func IntrinsicBall(center r2.Point, m metric.LocalMetric, steps int) iter.Seq[r2.Point] {
	return func(yield func(r2.Point) bool) {
		for k := 0; k < steps; k++ {
			th := 2 * math.Pi * float64(k) / float64(steps)
			ux, uy := math.Cos(th), math.Sin(th)
			q := m.QuadraticForm(ux, uy)
			if !(q > 0) {
				continue
			}
			r := 1 / math.Sqrt(q)
			if !yield(r2.Point{X: center.X + r*ux, Y: center.Y + r*uy}) {
				return
			}
		}
	}
}

// BallPoints packs the intrinsic ball as x0,y0,x1,y1,...
func BallPoints(center r2.Point, m metric.LocalMetric, steps int) (xy []float64) {
	xy = make([]float64, 0, 2*steps)
	for p := range IntrinsicBall(center, m, steps) {
		xy = append(xy, p.X, p.Y)
	}
	return
}
