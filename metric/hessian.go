package metric

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gowarp/field"
)

const (
	DefaultStep  = 1.e-4
	EigenFloor   = 1.e-12
	EigenCeiling = 1.e12
	// Off diagonal magnitude below which the Hessian is treated as diagonal
	DiagonalTol = 1.e-20
)

/*
LocalMetric holds the Hessian A = [[A11, A12], [A12, A22]] of a field at a point
and its symmetric square root L, so that A = L·Lt once the eigenvalues of A are
clamped into [EigenFloor, EigenCeiling].
*/
type LocalMetric struct {
	A11, A12, A22 float64
	L11, L12, L22 float64
}

// Identity has A = L = I
func Identity() LocalMetric {
	return LocalMetric{A11: 1, A22: 1, L11: 1, L22: 1}
}

/*
Hessian2D computes the metric of f at (x, y) from second order central
differences with step h. Non-finite samples propagate into the result, which the
deformation transform treats as an identity map.
*/
func Hessian2D(f field.ScalarField, x, y float64, hO ...float64) LocalMetric {
	var (
		h = DefaultStep
	)
	if len(hO) != 0 && hO[0] > 0 {
		h = hO[0]
	}
	fv := func(x, y float64) float64 { return field.Value(f, x, y) }
	var (
		f0         = fv(x, y)
		fxph, fxmh = fv(x+h, y), fv(x-h, y)
		fyph, fymh = fv(x, y+h), fv(x, y-h)
		fpp, fpm   = fv(x+h, y+h), fv(x+h, y-h)
		fmp, fmm   = fv(x-h, y+h), fv(x-h, y-h)
	)
	fxy := (fpp - fpm - fmp + fmm) / (4 * h * h)
	fxx := (fxph - 2*f0 + fxmh) / (h * h)
	fyy := (fyph - 2*f0 + fymh) / (h * h)
	return FromHessian(fxx, fxy, fyy)
}

/*
FromHessian forms the clamped symmetric square root of [[a, b], [b, c]] from the
closed form 2x2 eigen decomposition.
*/
func FromHessian(a, b, c float64) (m LocalMetric) {
	m.A11, m.A12, m.A22 = a, b, c
	var (
		tr       = a + c
		del      = math.Sqrt((a-c)*(a-c) + 4*b*b)
		l1, l2   = 0.5 * (tr + del), 0.5 * (tr - del)
		u1x, u1y float64
	)
	if math.Abs(b) > DiagonalTol {
		u1x, u1y = l1-c, b
	} else if a >= c {
		u1x, u1y = 1, 0
	} else {
		u1x, u1y = 0, 1
	}
	nrm := math.Hypot(u1x, u1y)
	u1x, u1y = u1x/nrm, u1y/nrm
	u2x, u2y := -u1y, u1x

	s1 := math.Sqrt(clamp(l1))
	s2 := math.Sqrt(clamp(l2))
	m.L11 = s1*u1x*u1x + s2*u2x*u2x
	m.L12 = s1*u1x*u1y + s2*u2x*u2y
	m.L22 = s1*u1y*u1y + s2*u2y*u2y
	return
}

func clamp(l float64) float64 {
	return math.Min(math.Max(l, EigenFloor), EigenCeiling)
}

func (m LocalMetric) A() *mat.SymDense {
	return mat.NewSymDense(2, []float64{m.A11, m.A12, m.A12, m.A22})
}

func (m LocalMetric) L() *mat.SymDense {
	return mat.NewSymDense(2, []float64{m.L11, m.L12, m.L12, m.L22})
}

// QuadraticForm is u·A·u for the Hessian
func (m LocalMetric) QuadraticForm(ux, uy float64) float64 {
	return ux*(m.A11*ux+m.A12*uy) + uy*(m.A12*ux+m.A22*uy)
}

func (m LocalMetric) IsFinite() bool {
	for _, v := range []float64{m.L11, m.L12, m.L22} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
