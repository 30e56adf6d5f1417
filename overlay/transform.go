package overlay

import (
	"math"

	"github.com/golang/geo/r2"
)

/*
Transform maps model coordinates to overlay canvas pixels. The canvas y axis
points down, so model yMax lands on row 0. Rotation is the display rotation of
the overlay about its centre, it only enters the screen to canvas mapping.
*/
type Transform struct {
	Domain        r2.Rect
	Width, Height float64
	Rotation      float64
}

func NewTransform(domain r2.Rect, width, height int) Transform {
	return Transform{Domain: domain, Width: float64(width), Height: float64(height)}
}

func (tf Transform) ModelToCanvas(p r2.Point) r2.Point {
	var (
		dx, dy = tf.Domain.X, tf.Domain.Y
	)
	return r2.Point{
		X: (p.X - dx.Lo) / dx.Length() * tf.Width,
		Y: tf.Height - (p.Y-dy.Lo)/dy.Length()*tf.Height,
	}
}

func (tf Transform) CanvasToModel(px r2.Point) r2.Point {
	var (
		dx, dy = tf.Domain.X, tf.Domain.Y
	)
	return r2.Point{
		X: px.X/tf.Width*dx.Length() + dx.Lo,
		Y: (tf.Height-px.Y)/tf.Height*dy.Length() + dy.Lo,
	}
}

/*
ScreenToCanvas undoes the display rotation. The screen point is given relative
to the on-screen centre of the rotated overlay.
*/
func (tf Transform) ScreenToCanvas(rel r2.Point) r2.Point {
	s, c := math.Sincos(-tf.Rotation)
	return r2.Point{
		X: rel.X*c - rel.Y*s + 0.5*tf.Width,
		Y: rel.X*s + rel.Y*c + 0.5*tf.Height,
	}
}

// PixelDistSq is the squared canvas distance between two model points
func (tf Transform) PixelDistSq(a, b r2.Point) float64 {
	d := tf.ModelToCanvas(a).Sub(tf.ModelToCanvas(b))
	return d.Dot(d)
}
