package field

import (
	"math"

	"github.com/notargets/gowarp/geometry2D"
	"github.com/notargets/gowarp/types"
)

/*
ScalarField is a height function over the plane. Evaluate reports ok == false
where the field is outside its natural domain, in which case z is not finite.
*/
type ScalarField interface {
	Evaluate(x, y float64) (z float64, ok bool)
	Kind() types.FieldKind
}

// Value evaluates f and returns NaN outside its domain
func Value(f ScalarField, x, y float64) float64 {
	z, ok := f.Evaluate(x, y)
	if !ok {
		return math.NaN()
	}
	return z
}

func IsFinite(z float64) bool {
	return !math.IsNaN(z) && !math.IsInf(z, 0)
}

// Func adapts a plain closure to a preset kind field
type Func func(x, y float64) float64

func (fn Func) Evaluate(x, y float64) (z float64, ok bool) {
	z = fn(x, y)
	return z, IsFinite(z)
}

func (fn Func) Kind() types.FieldKind { return types.FieldPreset }

/*
Barrier is the negative log sum of half-space margins. It is finite strictly
inside the intersection of the half-spaces and NaN elsewhere.
*/
type Barrier struct {
	HalfSpaces []geometry2D.HalfSpace
}

func NewBarrier(polys []*geometry2D.Polygon) (b *Barrier) {
	b = &Barrier{}
	for _, pg := range polys {
		b.HalfSpaces = append(b.HalfSpaces, pg.HalfSpaces...)
	}
	return
}

func (b *Barrier) Evaluate(x, y float64) (z float64, ok bool) {
	for _, hs := range b.HalfSpaces {
		s := hs.N.X*x + hs.N.Y*y - hs.C
		if !(s > 0) {
			return math.NaN(), false
		}
		z -= math.Log(s)
	}
	return z, IsFinite(z)
}

func (b *Barrier) Kind() types.FieldKind { return types.FieldBarrier }

// Compose returns the barrier over all polygons, or base when there are none
func Compose(base ScalarField, polys []*geometry2D.Polygon) ScalarField {
	if len(polys) == 0 {
		return base
	}
	return NewBarrier(polys)
}
