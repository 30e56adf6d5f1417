package scene

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/notargets/gowarp/InputParameters"
	"github.com/notargets/gowarp/field"
	"github.com/notargets/gowarp/geometry2D"
	"github.com/notargets/gowarp/mesh"
	"github.com/notargets/gowarp/overlay"
	"github.com/notargets/gowarp/types"
)

func (sc *Scene) addRegion(pg *geometry2D.Polygon) {
	if !pg.IsConvex() {
		sc.log.Warn("non-convex polygon, barrier half-spaces will not match its interior",
			zap.Int("vertices", len(pg.Points)))
	}
	if !pg.IsCCW() {
		sc.log.Warn("clockwise polygon, barrier field is empty", zap.Int("vertices", len(pg.Points)))
	}
	sc.regions = append(sc.regions, &Region{Polygon: pg, Overlay: pg.Flat()})
}

func (sc *Scene) polygons() (polys []*geometry2D.Polygon) {
	polys = make([]*geometry2D.Polygon, len(sc.regions))
	for i, rg := range sc.regions {
		polys[i] = rg.Polygon
	}
	return
}

func (sc *Scene) updateField() {
	sc.active = field.Compose(sc.preset, sc.polygons())
	sc.log.Debug("field rebuilt", zap.Stringer("kind", sc.active.Kind()),
		zap.Int("polygons", len(sc.regions)))
}

/*
resetDeformation drops any tween or warped state. The overlay copies return to
the drawn polygon shapes, the caller rebuilds the meshes.
*/
func (sc *Scene) resetDeformation() {
	sc.tween.Reset()
	sc.original = nil
	sc.staticBall = nil
	sc.hoverBall = nil
	sc.anchor.Visible = false
	sc.hover.Visible = true
	for _, rg := range sc.regions {
		rg.Overlay = rg.Polygon.Flat()
	}
	sc.overlayDirty = true
}

func (sc *Scene) buildSurface() *mesh.Surface {
	var (
		sp    = sc.Params
		polys = sc.polygons()
	)
	if len(polys) == 0 || sp.MeshModeType() == types.MeshLattice {
		return mesh.NewLattice(sc.active, sp.Domain(), sp.Samples, polys)
	}
	return mesh.NewClamped(sc.active, polys[0], sp.ClampStep, sp.CapZ)
}

func (sc *Scene) buildOutline(pg *geometry2D.Polygon) (ol *Outline) {
	ol = &Outline{Positions: make([]float64, 0, 3*len(pg.Points))}
	for _, p := range pg.Points {
		z, ok := sc.active.Evaluate(p.X, p.Y)
		if !ok {
			z = sc.Params.CapZ
		}
		ol.Positions = append(ol.Positions, p.X, p.Y, z)
	}
	ol.Normals = mesh.ComputeOutlineNormals(ol.Positions)
	return
}

// updateSurface resets the deformation and rebuilds the surface and outlines
func (sc *Scene) updateSurface() {
	sc.resetDeformation()
	sc.surface = sc.buildSurface()
	sc.locator = mesh.NewLocator(sc.surface)
	for _, rg := range sc.regions {
		rg.Outline = sc.buildOutline(rg.Polygon)
	}
	sc.log.Info("surface rebuilt",
		zap.Int("vertices", sc.surface.NumVertices()),
		zap.Int("triangles", sc.surface.NumTriangles()),
		zap.Int("polygons", len(sc.regions)))
}

// SelectPreset switches the base field, clearing all polygons
func (sc *Scene) SelectPreset(name string) (err error) {
	var p *field.Preset
	if _, p, err = field.PresetByName(name); err != nil {
		return
	}
	sc.preset = p
	sc.Params.Preset = p.Name
	sc.Params.Polygons = nil
	sc.clearPolygons()
	sc.updateField()
	sc.updateSurface()
	sc.log.Info("preset selected", zap.String("preset", p.Name))
	return
}

func (sc *Scene) clearPolygons() {
	sc.regions = nil
	sc.drawing = false
	sc.current = nil
	sc.hover.Visible = false
	sc.anchor.Visible = false
	sc.overlayDirty = true
}

// LoadPolygons replaces the polygon collection, as if each had been drawn
func (sc *Scene) LoadPolygons(polys []*geometry2D.Polygon) {
	sc.clearPolygons()
	for _, pg := range polys {
		sc.addRegion(pg)
	}
	sc.syncParamPolygons()
	sc.updateField()
	sc.updateSurface()
}

func (sc *Scene) syncParamPolygons() {
	sc.Params.Polygons = make([][][2]float64, len(sc.regions))
	for i, rg := range sc.regions {
		raw := make([][2]float64, len(rg.Polygon.Points))
		for j, p := range rg.Polygon.Points {
			raw[j] = [2]float64{p.X, p.Y}
		}
		sc.Params.Polygons[i] = raw
	}
}

/*
SetParameters applies a new parameter set with the narrowest rebuild it needs.
Domain, sampling, cap or mesh mode changes rebuild the surface, camera changes
only move the camera. The polygon collection and preset of the scene are kept.
*/
func (sc *Scene) SetParameters(sp *InputParameters.SceneParameters) (err error) {
	if err = sp.Validate(); err != nil {
		return errors.Wrap(err, "scene parameters")
	}
	old := sc.Params
	next := *sp
	next.Preset = old.Preset
	next.Polygons = old.Polygons
	sc.Params = &next
	rebuildMesh := old.XMin != next.XMin || old.XMax != next.XMax ||
		old.YMin != next.YMin || old.YMax != next.YMax ||
		old.Samples != next.Samples || old.CapZ != next.CapZ ||
		old.ClampStep != next.ClampStep || old.MeshMode != next.MeshMode
	moveCamera := rebuildMesh || old.RotationZ != next.RotationZ ||
		old.Zoom != next.Zoom || old.Altitude != next.Altitude
	sc.Transform = overlay.NewTransform(next.Domain(), next.OverlayWidth, next.OverlayHeight)
	sc.Transform.Rotation = next.RotationZ
	// A running tween keeps its timing, the next one picks the new settings up
	if !sc.tween.Active() {
		sc.tween.Duration, sc.tween.Easing = next.Duration(), next.EasingType()
	}
	if rebuildMesh {
		sc.updateSurface()
	}
	if moveCamera {
		sc.updateCamera()
	}
	sc.overlayDirty = true
	sc.log.Debug("parameters applied", zap.Bool("mesh", rebuildMesh), zap.Bool("camera", moveCamera))
	return
}
