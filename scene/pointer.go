package scene

import (
	"time"

	"github.com/golang/geo/r2"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gowarp/animator"
	"github.com/notargets/gowarp/deform"
	"github.com/notargets/gowarp/geometry2D"
	"github.com/notargets/gowarp/mesh"
	"github.com/notargets/gowarp/metric"
)

const (
	trackSurface = "surface"
	trackBall    = "ball"
)

type ClickResult uint8

const (
	ClickNone ClickResult = iota
	PointAdded
	PolygonStarted
	PolygonClosed
	PolygonDeleted
)

func (cr ClickResult) String() string {
	return [...]string{"none", "point added", "polygon started", "polygon closed", "polygon deleted"}[cr]
}

// OverlayScreenClick takes a point relative to the on-screen overlay centre
func (sc *Scene) OverlayScreenClick(rel r2.Point) (ClickResult, error) {
	return sc.OverlayClick(sc.Transform.ScreenToCanvas(rel))
}

/*
OverlayClick handles a click on the overlay canvas. While drawing, it closes the
polygon when the click lands within the snap radius of the first vertex and at
least 3 points exist, otherwise it appends the point. When not drawing, a click
inside an existing polygon deletes the most recently drawn one containing it,
anything else starts a new polygon.
*/
func (sc *Scene) OverlayClick(canvas r2.Point) (res ClickResult, err error) {
	p := sc.Transform.CanvasToModel(canvas)
	sc.overlayDirty = true
	if sc.drawing {
		snap := sc.Params.SnapRadius
		if len(sc.current) >= 3 && sc.Transform.PixelDistSq(sc.current[0], p) < snap*snap {
			var pg *geometry2D.Polygon
			if pg, err = geometry2D.NewPolygon(sc.current); err != nil {
				return ClickNone, err
			}
			sc.drawing, sc.current = false, nil
			sc.addRegion(pg)
			sc.rebuildForPolygons()
			sc.log.Info("polygon closed", zap.Int("vertices", len(pg.Points)),
				zap.Int("polygons", len(sc.regions)))
			return PolygonClosed, nil
		}
		sc.current = append(sc.current, p)
		return PointAdded, nil
	}
	for i := len(sc.regions) - 1; i >= 0; i-- {
		if geometry2D.PointInPolygon(p, sc.regions[i].OverlayPoints()) {
			sc.regions = append(sc.regions[:i], sc.regions[i+1:]...)
			sc.rebuildForPolygons()
			sc.log.Info("polygon deleted", zap.Int("index", i), zap.Int("polygons", len(sc.regions)))
			return PolygonDeleted, nil
		}
	}
	sc.drawing = true
	sc.current = []r2.Point{p}
	return PolygonStarted, nil
}

func (sc *Scene) rebuildForPolygons() {
	sc.syncParamPolygons()
	sc.updateField()
	sc.updateSurface()
}

// Pick is the nearest intersection of the ray with the current surface
func (sc *Scene) Pick(ray mesh.Ray) (mesh.Hit, bool) {
	if sc.surface.IsEmpty() {
		return mesh.Hit{}, false
	}
	return sc.surface.Intersect(ray)
}

/*
SnapRay returns a vertical ray that is guaranteed to land on the surface close
to the surface vertex nearest (x, y). It is used when a requested point lies
off the mesh.
*/
func (sc *Scene) SnapRay(x, y float64) (ray mesh.Ray, ok bool) {
	var idx int
	if idx, _, ok = sc.locator.Nearest(x, y); !ok {
		return
	}
	s := sc.surface
	for t := 0; t < s.NumTriangles(); t++ {
		a, b, c := s.Triangle(t)
		if a != idx && b != idx && c != idx {
			continue
		}
		cen := r3.Scale(1./3, r3.Add(r3.Add(s.Vertex(a), s.Vertex(b)), s.Vertex(c)))
		v := s.Vertex(idx)
		aim := r3.Add(r3.Scale(0.99, v), r3.Scale(0.01, cen))
		return mesh.VerticalRay(aim.X, aim.Y), true
	}
	return ray, false
}

// PointerMove records the pointer ray used for the hover preview on the next tick
func (sc *Scene) PointerMove(ray mesh.Ray) {
	sc.pointer = &ray
}

// PointerMoveOverlay hovers the surface point under an overlay canvas position
func (sc *Scene) PointerMoveOverlay(canvas r2.Point) {
	p := sc.Transform.CanvasToModel(canvas)
	sc.PointerMove(mesh.VerticalRay(p.X, p.Y))
}

func (sc *Scene) PointerLeave() {
	sc.pointer = nil
}

/*
SurfaceClick starts a forward deformation anchored where the ray hits the
surface, or plays back a deformation that is warped or still moving forward.
Clicks during the reverse playback are ignored, as are clicks that miss.
*/
func (sc *Scene) SurfaceClick(now time.Time, ray mesh.Ray) (phase animator.Phase, err error) {
	switch sc.tween.Phase() {
	case animator.Warped, animator.Forward:
		if err = sc.tween.Reverse(now); err != nil {
			return sc.tween.Phase(), err
		}
		sc.anchor.Visible = false
		sc.hover.Visible = true
		sc.log.Info("deformation reversing")
		return sc.tween.Phase(), nil
	case animator.Reverse:
		return animator.Reverse, nil
	}
	hit, ok := sc.Pick(ray)
	if !ok {
		return animator.Inactive, nil
	}
	if err = sc.beginDeformation(now, hit.Point); err != nil {
		return sc.tween.Phase(), err
	}
	return sc.tween.Phase(), nil
}

func (sc *Scene) beginDeformation(now time.Time, anchor r3.Vec) (err error) {
	var (
		m      = metric.Hessian2D(sc.active, anchor.X, anchor.Y)
		center = r2.Point{X: anchor.X, Y: anchor.Y}
		tracks = make([]*animator.Track, 0, 2*len(sc.regions)+2)
	)
	sc.tween.Duration, sc.tween.Easing = sc.Params.Duration(), sc.Params.EasingType()
	sc.original = sc.surface.Clone()
	tracks = append(tracks, animator.NewTrack(trackSurface, sc.surface.Positions,
		deform.TransformBuffer(sc.surface.Positions, 3, anchor, m)))
	for _, rg := range sc.regions {
		if rg.Outline != nil {
			tracks = append(tracks, animator.NewTrack("outline", rg.Outline.Positions,
				deform.TransformBuffer(rg.Outline.Positions, 3, anchor, m)))
		}
		tracks = append(tracks, animator.NewTrack("overlay", rg.Overlay,
			deform.TransformBuffer(rg.Overlay, 2, anchor, m)))
	}
	sc.staticBall = deform.BallPoints(center, m, sc.Params.BallSteps)
	tracks = append(tracks, animator.NewTrack(trackBall, sc.staticBall,
		deform.TransformBuffer(sc.staticBall, 2, anchor, m)))
	if err = sc.tween.Begin(now, tracks...); err != nil {
		sc.original, sc.staticBall = nil, nil
		return
	}
	sc.anchorMetric = m
	sc.anchor = Marker{Position: anchor, Visible: true}
	sc.hover.Visible = false
	sc.hoverBall = nil
	sc.overlayDirty = true
	sc.log.Info("deformation started",
		zap.Float64("x", anchor.X), zap.Float64("y", anchor.Y),
		zap.Float64("a11", m.A11), zap.Float64("a12", m.A12), zap.Float64("a22", m.A22))
	return
}
