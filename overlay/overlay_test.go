package overlay

import (
	"bytes"
	"image/png"
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func domain(lo, hi float64) r2.Rect {
	return r2.RectFromPoints(r2.Point{X: lo, Y: lo}, r2.Point{X: hi, Y: hi})
}

func TestTransform(t *testing.T) {
	tf := NewTransform(domain(-5, 5), 200, 100)
	{ // Corners and centre
		assert.InDelta(t, 0, tf.ModelToCanvas(r2.Point{X: -5, Y: 5}).X, 1.e-12)
		assert.InDelta(t, 0, tf.ModelToCanvas(r2.Point{X: -5, Y: 5}).Y, 1.e-12)
		c := tf.ModelToCanvas(r2.Point{})
		assert.InDelta(t, 100, c.X, 1.e-12)
		assert.InDelta(t, 50, c.Y, 1.e-12)
		b := tf.ModelToCanvas(r2.Point{X: 5, Y: -5})
		assert.InDelta(t, 200, b.X, 1.e-12)
		assert.InDelta(t, 100, b.Y, 1.e-12)
	}
	{ // Round trip
		for _, p := range []r2.Point{{X: 1.3, Y: -2.2}, {X: -4.9, Y: 4.1}, {}} {
			q := tf.CanvasToModel(tf.ModelToCanvas(p))
			assert.InDelta(t, p.X, q.X, 1.e-12)
			assert.InDelta(t, p.Y, q.Y, 1.e-12)
		}
	}
	{ // Screen rotation about the centre
		tf.Rotation = math.Pi / 2
		// A screen point right of centre was canvas "up" before a quarter turn
		p := tf.ScreenToCanvas(r2.Point{X: 10, Y: 0})
		assert.InDelta(t, 100, p.X, 1.e-12)
		assert.InDelta(t, 40, p.Y, 1.e-12)
		tf.Rotation = 0
		p = tf.ScreenToCanvas(r2.Point{X: -3, Y: 4})
		assert.InDelta(t, 97, p.X, 1.e-12)
		assert.InDelta(t, 54, p.Y, 1.e-12)
	}
	{ // Pixel distance
		tf = NewTransform(domain(-5, 5), 100, 100)
		assert.InDelta(t, 100, tf.PixelDistSq(r2.Point{}, r2.Point{X: 1}), 1.e-9)
	}
}

func TestPainter(t *testing.T) {
	pt := NewPainter(NewTransform(domain(-5, 5), 200, 200))
	defer pt.Close()
	square := []r2.Point{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}}
	fr := &Frame{
		Polygons:  [][]r2.Point{square},
		Drawing:   true,
		Current:   []r2.Point{{X: 2, Y: 2}, {X: 3, Y: 2}},
		HoverBall: []float64{-3, -3, -2, -3, -2, -2},
	}
	require.NoError(t, pt.Paint(fr))
	img := pt.Context().Image()
	{ // Polygon interior is tinted red, empty cells stay white
		r, g, b, _ := img.At(90, 90).RGBA()
		assert.Greater(t, r, g)
		assert.Greater(t, r, b)
		r, g, b, _ = img.At(30, 30).RGBA()
		assert.Equal(t, r, g)
		assert.Equal(t, g, b)
		assert.Greater(t, r, uint32(0xf000))
	}
	{ // PNG encoding
		var buf bytes.Buffer
		require.NoError(t, pt.EncodePNG(&buf))
		dec, err := png.Decode(&buf)
		require.NoError(t, err)
		assert.Equal(t, 200, dec.Bounds().Dx())
	}
	{ // Empty frame paints without error
		require.NoError(t, pt.Paint(&Frame{}))
	}
}
