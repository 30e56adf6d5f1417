package overlay

import (
	"io"
	"math"

	"github.com/gogpu/gg"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

/*
Frame is everything the overlay shows for one repaint. Polygons are the overlay
copies of the polygon vertices, which follow the deformation. The balls are
packed x,y model coordinates.
*/
type Frame struct {
	Polygons   [][]r2.Point
	Drawing    bool
	Current    []r2.Point
	HoverBall  []float64
	StaticBall []float64
}

type Painter struct {
	Transform Transform
	dc        *gg.Context
}

func NewPainter(tf Transform) *Painter {
	return &Painter{
		Transform: tf,
		dc:        gg.NewContext(int(tf.Width), int(tf.Height)),
	}
}

func (pt *Painter) Close() error { return pt.dc.Close() }

func (pt *Painter) Context() *gg.Context { return pt.dc }

// Paint redraws the whole overlay from scratch
func (pt *Painter) Paint(fr *Frame) (err error) {
	var (
		dc = pt.dc
		tf = pt.Transform
	)
	dc.ClearWithColor(gg.White)
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(1)
	for x := math.Ceil(tf.Domain.X.Lo); x <= tf.Domain.X.Hi; x++ {
		px := tf.ModelToCanvas(r2.Point{X: x}).X
		dc.MoveTo(px, 0)
		dc.LineTo(px, tf.Height)
		if err = dc.Stroke(); err != nil {
			return errors.Wrap(err, "grid")
		}
	}
	for y := math.Ceil(tf.Domain.Y.Lo); y <= tf.Domain.Y.Hi; y++ {
		py := tf.ModelToCanvas(r2.Point{Y: y}).Y
		dc.MoveTo(0, py)
		dc.LineTo(tf.Width, py)
		if err = dc.Stroke(); err != nil {
			return errors.Wrap(err, "grid")
		}
	}
	for _, poly := range fr.Polygons {
		pt.path(poly, true)
		dc.SetRGBA(1, 0, 0, 0.1)
		if err = dc.FillPreserve(); err != nil {
			return errors.Wrap(err, "polygon fill")
		}
		dc.SetRGB(1, 0, 0)
		if err = dc.Stroke(); err != nil {
			return errors.Wrap(err, "polygon outline")
		}
	}
	if fr.Drawing && len(fr.Current) > 0 {
		dc.SetRGB(0, 0, 1)
		pt.path(fr.Current, false)
		if err = dc.Stroke(); err != nil {
			return errors.Wrap(err, "path")
		}
		for _, p := range fr.Current {
			c := tf.ModelToCanvas(p)
			dc.DrawCircle(c.X, c.Y, 3)
			if err = dc.Fill(); err != nil {
				return errors.Wrap(err, "path vertex")
			}
		}
	}
	dc.SetRGB(1, 0, 0)
	dc.SetLineWidth(2)
	for _, ball := range [][]float64{fr.HoverBall, fr.StaticBall} {
		if len(ball) < 4 {
			continue
		}
		for i := 0; i < len(ball)/2; i++ {
			c := tf.ModelToCanvas(r2.Point{X: ball[2*i], Y: ball[2*i+1]})
			if i == 0 {
				dc.MoveTo(c.X, c.Y)
			} else {
				dc.LineTo(c.X, c.Y)
			}
		}
		dc.ClosePath()
		if err = dc.Stroke(); err != nil {
			return errors.Wrap(err, "ball")
		}
	}
	return
}

func (pt *Painter) path(pts []r2.Point, closed bool) {
	for i, p := range pts {
		c := pt.Transform.ModelToCanvas(p)
		if i == 0 {
			pt.dc.MoveTo(c.X, c.Y)
		} else {
			pt.dc.LineTo(c.X, c.Y)
		}
	}
	if closed {
		pt.dc.ClosePath()
	}
}

func (pt *Painter) SavePNG(path string) error {
	return errors.Wrapf(pt.dc.SavePNG(path), "writing %s", path)
}

func (pt *Painter) EncodePNG(w io.Writer) error {
	return errors.Wrap(pt.dc.EncodePNG(w), "encoding overlay")
}
