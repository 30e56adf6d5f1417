package scene

import (
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gowarp/InputParameters"
	"github.com/notargets/gowarp/animator"
	"github.com/notargets/gowarp/field"
	"github.com/notargets/gowarp/geometry2D"
	"github.com/notargets/gowarp/mesh"
	"github.com/notargets/gowarp/metric"
	"github.com/notargets/gowarp/overlay"
)

// HoverLift is the offset of the hover marker along the picked face normal
const HoverLift = 0.02

type Marker struct {
	Position r3.Vec
	Visible  bool
}

// Outline is the 3-D boundary of a polygon, lifted onto the active field
type Outline struct {
	Positions []float64
	Normals   []float64
}

/*
Region is one drawn polygon. Overlay holds the packed x,y copy of the vertices
the overlay shows, it follows the deformation while the polygon itself keeps
the drawn shape.
*/
type Region struct {
	Polygon *geometry2D.Polygon
	Outline *Outline
	Overlay []float64
}

func (rg *Region) OverlayPoints() (pts []r2.Point) {
	pts = make([]r2.Point, len(rg.Overlay)/2)
	for i := range pts {
		pts[i] = r2.Point{X: rg.Overlay[2*i], Y: rg.Overlay[2*i+1]}
	}
	return
}

// RenderFrame is what a renderer receives once per tick
type RenderFrame struct {
	Surface  *mesh.Surface
	Outlines []*Outline
	Camera   Camera
	Hover    Marker
	Anchor   Marker
}

type Renderer interface {
	Render(fr *RenderFrame) error
}

type OverlayPainter interface {
	Paint(fr *overlay.Frame) error
}

type Option func(sc *Scene)

func WithLogger(log *zap.Logger) Option { return func(sc *Scene) { sc.log = log } }

func WithRenderer(r Renderer) Option { return func(sc *Scene) { sc.renderer = r } }

func WithPainter(p OverlayPainter) Option { return func(sc *Scene) { sc.painter = p } }

/*
Scene owns the complete interactive state: the selected preset and the active
field, the drawn polygons, the surface mesh, the deformation tween and the
markers. It is driven from one goroutine through the pointer methods and Tick.
*/
type Scene struct {
	Params    *InputParameters.SceneParameters
	Transform overlay.Transform

	preset  *field.Preset
	active  field.ScalarField
	regions []*Region

	drawing bool
	current []r2.Point

	surface  *mesh.Surface
	original *mesh.Surface
	locator  *mesh.Locator

	tween        *animator.Tween
	anchorMetric metric.LocalMetric
	hover        Marker
	anchor       Marker
	hoverBall    []float64
	staticBall   []float64
	pointer      *mesh.Ray
	overlayDirty bool

	camera   Camera
	renderer Renderer
	painter  OverlayPainter
	log      *zap.Logger
}

func New(sp *InputParameters.SceneParameters, opts ...Option) (sc *Scene, err error) {
	if sp == nil {
		sp = InputParameters.NewSceneParameters()
	}
	if err = sp.Validate(); err != nil {
		return nil, errors.Wrap(err, "scene parameters")
	}
	sc = &Scene{
		Params: sp,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(sc)
	}
	if _, sc.preset, err = field.PresetByName(sp.Preset); err != nil {
		return nil, err
	}
	sc.tween = animator.New(sp.Duration(), sp.EasingType())
	sc.Transform = overlay.NewTransform(sp.Domain(), sp.OverlayWidth, sp.OverlayHeight)
	sc.Transform.Rotation = sp.RotationZ
	polys, err := sp.PolygonList()
	if err != nil {
		return nil, err
	}
	for _, pg := range polys {
		sc.addRegion(pg)
	}
	sc.updateField()
	sc.updateSurface()
	sc.updateCamera()
	return
}

func (sc *Scene) Logger() *zap.Logger { return sc.log }

func (sc *Scene) Preset() *field.Preset { return sc.preset }

func (sc *Scene) Field() field.ScalarField { return sc.active }

func (sc *Scene) Regions() []*Region { return sc.regions }

func (sc *Scene) Surface() *mesh.Surface { return sc.surface }

// Original is the undeformed clone of the surface taken when a deformation starts
func (sc *Scene) Original() *mesh.Surface { return sc.original }

func (sc *Scene) Phase() animator.Phase { return sc.tween.Phase() }

func (sc *Scene) Tween() *animator.Tween { return sc.tween }

func (sc *Scene) Drawing() (bool, []r2.Point) { return sc.drawing, sc.current }

func (sc *Scene) Hover() Marker { return sc.hover }

func (sc *Scene) Anchor() Marker { return sc.anchor }

func (sc *Scene) AnchorMetric() metric.LocalMetric { return sc.anchorMetric }

func (sc *Scene) HoverBall() []float64 { return sc.hoverBall }

func (sc *Scene) StaticBall() []float64 { return sc.staticBall }

func (sc *Scene) Camera() Camera { return sc.camera }
