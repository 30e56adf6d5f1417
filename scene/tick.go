package scene

import (
	"time"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gowarp/animator"
	"github.com/notargets/gowarp/deform"
	"github.com/notargets/gowarp/export"
	"github.com/notargets/gowarp/mesh"
	"github.com/notargets/gowarp/metric"
	"github.com/notargets/gowarp/overlay"
)

/*
Tick advances the scene to time now. It updates the hover preview, steps the
tween, repaints the overlay when anything it shows changed, then submits the
frame to the renderer.
*/
func (sc *Scene) Tick(now time.Time) (err error) {
	if sc.tween.Phase() == animator.Inactive {
		sc.updateHover()
	}
	if sc.tween.Active() {
		_, settled := sc.tween.Step(now)
		sc.overlayDirty = true
		if settled {
			sc.settle()
		}
	}
	if sc.overlayDirty && sc.painter != nil {
		if err = sc.painter.Paint(sc.OverlayFrame()); err != nil {
			return errors.Wrap(err, "overlay")
		}
		sc.overlayDirty = false
	}
	if sc.renderer != nil {
		if err = sc.renderer.Render(sc.RenderFrame()); err != nil {
			return errors.Wrap(err, "render")
		}
	}
	return
}

func (sc *Scene) updateHover() {
	var (
		hit mesh.Hit
		ok  bool
	)
	if sc.pointer != nil {
		hit, ok = sc.Pick(*sc.pointer)
	}
	if !ok {
		if sc.hover.Visible || sc.hoverBall != nil {
			sc.overlayDirty = true
		}
		sc.hover.Visible = false
		sc.hoverBall = nil
		return
	}
	hover := Marker{
		Position: r3.Add(hit.Point, r3.Scale(HoverLift, hit.Normal)),
		Visible:  true,
	}
	if hover != sc.hover || sc.hoverBall == nil {
		sc.overlayDirty = true
	}
	sc.hover = hover
	m := metric.Hessian2D(sc.active, hit.Point.X, hit.Point.Y)
	sc.hoverBall = deform.BallPoints(r2.Point{X: hit.Point.X, Y: hit.Point.Y}, m, sc.Params.BallSteps)
}

func (sc *Scene) settle() {
	switch sc.tween.Phase() {
	case animator.Warped:
		mesh.ComputeNormals(sc.surface)
		for _, rg := range sc.regions {
			if rg.Outline != nil {
				rg.Outline.Normals = mesh.ComputeOutlineNormals(rg.Outline.Positions)
			}
		}
		sc.anchor.Visible = true
		sc.hover.Visible = false
		sc.log.Info("deformation settled")
	case animator.Inactive:
		if sc.original != nil {
			copy(sc.surface.Normals, sc.original.Normals)
		}
		for _, rg := range sc.regions {
			if rg.Outline != nil {
				rg.Outline.Normals = mesh.ComputeOutlineNormals(rg.Outline.Positions)
			}
		}
		sc.tween.Reset()
		sc.original = nil
		sc.staticBall = nil
		sc.anchor.Visible = false
		sc.hover.Visible = true
		sc.log.Info("deformation restored")
	}
}

func (sc *Scene) OverlayFrame() (fr *overlay.Frame) {
	fr = &overlay.Frame{
		Polygons:   make([][]r2.Point, len(sc.regions)),
		Drawing:    sc.drawing,
		Current:    sc.current,
		HoverBall:  sc.hoverBall,
		StaticBall: sc.staticBall,
	}
	for i, rg := range sc.regions {
		fr.Polygons[i] = rg.OverlayPoints()
	}
	return
}

func (sc *Scene) RenderFrame() (fr *RenderFrame) {
	fr = &RenderFrame{
		Surface:  sc.surface,
		Outlines: make([]*Outline, 0, len(sc.regions)),
		Camera:   sc.camera,
		Hover:    sc.hover,
		Anchor:   sc.anchor,
	}
	for _, rg := range sc.regions {
		if rg.Outline != nil {
			fr.Outlines = append(fr.Outlines, rg.Outline)
		}
	}
	return
}

// Snapshot is the exportable view of the scene
func (sc *Scene) Snapshot() (snap *export.Snapshot) {
	snap = &export.Snapshot{
		Preset:   sc.preset.Name,
		Polygons: make([][]r2.Point, len(sc.regions)),
		Ball:     sc.staticBall,
	}
	if snap.Ball == nil {
		snap.Ball = sc.hoverBall
	}
	for i, rg := range sc.regions {
		snap.Polygons[i] = rg.OverlayPoints()
	}
	if sc.tween.Deformed() {
		snap.Anchor = r2.Point{X: sc.anchor.Position.X, Y: sc.anchor.Position.Y}
		snap.HasAnchor = true
	}
	return
}

// RunUntilSettled ticks on a fixed frame interval until no tween is moving
func (sc *Scene) RunUntilSettled(start time.Time, frame time.Duration, maxFrames int) (now time.Time, err error) {
	now = start
	for i := 0; i < maxFrames; i++ {
		if err = sc.Tick(now); err != nil {
			return
		}
		if !sc.tween.Active() {
			return
		}
		now = now.Add(frame)
	}
	err = errors.Errorf("tween still %s after %d frames", sc.tween.Phase(), maxFrames)
	sc.log.Warn("tween did not settle", zap.Int("frames", maxFrames))
	return
}
