package scene

import (
	"math"
	"testing"
	"time"

	"github.com/golang/geo/r2"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gowarp/InputParameters"
	"github.com/notargets/gowarp/animator"
	"github.com/notargets/gowarp/deform"
	"github.com/notargets/gowarp/field"
	"github.com/notargets/gowarp/geometry2D"
	"github.com/notargets/gowarp/mesh"
	"github.com/notargets/gowarp/overlay"
	"github.com/notargets/gowarp/types"
)

type countingPainter struct{ frames []*overlay.Frame }

func (cp *countingPainter) Paint(fr *overlay.Frame) error {
	cp.frames = append(cp.frames, fr)
	return nil
}

type countingRenderer struct{ frames int }

func (cr *countingRenderer) Render(fr *RenderFrame) error {
	cr.frames++
	return nil
}

func testParams(preset string) *InputParameters.SceneParameters {
	sp := InputParameters.NewSceneParameters()
	sp.Preset = preset
	sp.Samples = 10
	sp.OverlayWidth, sp.OverlayHeight = 100, 100
	return sp
}

func click(t *testing.T, sc *Scene, x, y float64) ClickResult {
	res, err := sc.OverlayClick(sc.Transform.ModelToCanvas(r2.Point{X: x, Y: y}))
	require.NoError(t, err)
	return res
}

func drawSquare(t *testing.T, sc *Scene) {
	assert.Equal(t, PolygonStarted, click(t, sc, -1, -1))
	assert.Equal(t, PointAdded, click(t, sc, 1, -1))
	assert.Equal(t, PointAdded, click(t, sc, 1, 1))
	assert.Equal(t, PointAdded, click(t, sc, -1, 1))
	// Within the snap radius of the first vertex
	res, err := sc.OverlayClick(sc.Transform.ModelToCanvas(r2.Point{X: -1, Y: -1}).Add(r2.Point{X: 2, Y: 1}))
	require.NoError(t, err)
	assert.Equal(t, PolygonClosed, res)
}

var approx = cmpopts.EquateApprox(0, 1.e-9)

func TestNewScene(t *testing.T) {
	{ // Default lattice
		sc, err := New(testParams("paraboloid"))
		require.NoError(t, err)
		assert.Equal(t, "paraboloid", sc.Preset().Name)
		assert.Equal(t, types.FieldPreset, sc.Field().Kind())
		assert.Equal(t, 200, sc.Surface().NumTriangles())
		assert.Equal(t, 121, sc.Surface().NumVertices())
		assert.Equal(t, animator.Inactive, sc.Phase())
		cam := sc.Camera()
		assert.InDelta(t, 0, cam.Position.X, 1.e-12)
		assert.InDelta(t, -15, cam.Position.Y, 1.e-12)
		assert.InDelta(t, 20, cam.Position.Z, 1.e-12)
	}
	{ // Polygons from parameters build a barrier over a clamped mesh
		sp := testParams("")
		sp.Polygons = [][][2]float64{{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}}
		sc, err := New(sp)
		require.NoError(t, err)
		assert.Equal(t, types.FieldBarrier, sc.Field().Kind())
		require.Len(t, sc.Regions(), 1)
		assert.False(t, sc.Surface().IsEmpty())
		assert.Len(t, sc.RenderFrame().Outlines, 1)
	}
	{ // Bad parameters
		sp := testParams("nope")
		_, err := New(sp)
		assert.Error(t, err)
		sp = testParams("")
		sp.Samples = 0
		_, err = New(sp)
		assert.Error(t, err)
	}
}

func TestOverlayProtocol(t *testing.T) {
	sc, err := New(testParams("paraboloid"))
	require.NoError(t, err)
	{ // Drawing and closing the square
		drawSquare(t, sc)
		drawing, current := sc.Drawing()
		assert.False(t, drawing)
		assert.Empty(t, current)
		require.Len(t, sc.Regions(), 1)
		pg := sc.Regions()[0].Polygon
		assert.Len(t, pg.HalfSpaces, 4)
		assert.Equal(t, types.FieldBarrier, sc.Field().Kind())
		assert.InDelta(t, -4*math.Log(2), field.Value(sc.Field(), 0, 0), 1.e-12)
		assert.True(t, math.IsNaN(field.Value(sc.Field(), 2, 2)))
		assert.False(t, sc.Surface().IsEmpty())
		assert.Len(t, sc.Params.Polygons, 1)
	}
	{ // Too few points never close, the click just extends the path
		assert.Equal(t, PolygonStarted, click(t, sc, 3, 3))
		assert.Equal(t, PointAdded, click(t, sc, 3.1, 3))
		assert.Equal(t, PointAdded, click(t, sc, 4, 3))
		drawing, current := sc.Drawing()
		assert.True(t, drawing)
		assert.Len(t, current, 3)
		assert.Equal(t, PointAdded, click(t, sc, 3, 4))
		assert.Equal(t, PolygonClosed, click(t, sc, 3, 3))
		assert.Len(t, sc.Regions(), 2)
	}
	{ // Clicking inside deletes the most recent polygon holding the point
		assert.Equal(t, PolygonDeleted, click(t, sc, 0, 0))
		require.Len(t, sc.Regions(), 1)
		assert.Equal(t, PolygonDeleted, click(t, sc, 3.2, 3.1))
		assert.Empty(t, sc.Regions())
		assert.Equal(t, types.FieldPreset, sc.Field().Kind())
		assert.Equal(t, 200, sc.Surface().NumTriangles())
	}
	{ // Screen clicks undo the overlay rotation
		sc.Transform.Rotation = math.Pi
		res, err := sc.OverlayScreenClick(r2.Point{X: 10, Y: 0})
		require.NoError(t, err)
		assert.Equal(t, PolygonStarted, res)
		_, current := sc.Drawing()
		assert.InDelta(t, -1, current[0].X, 1.e-9)
		assert.InDelta(t, 0, current[0].Y, 1.e-9)
	}
	{ // Selecting a preset clears everything
		require.NoError(t, sc.SelectPreset("Sine × Cos"))
		drawing, _ := sc.Drawing()
		assert.False(t, drawing)
		assert.Equal(t, "sine-cos", sc.Params.Preset)
		assert.Error(t, sc.SelectPreset("missing"))
	}
}

func TestDeformationRoundTrip(t *testing.T) {
	t0 := time.Unix(5000, 0)
	ms := func(n int) time.Time { return t0.Add(time.Duration(n) * time.Millisecond) }
	sc, err := New(testParams("paraboloid"))
	require.NoError(t, err)
	drawSquare(t, sc)
	var (
		orig     = append([]float64(nil), sc.Surface().Positions...)
		origOver = append([]float64(nil), sc.Regions()[0].Overlay...)
		origLine = append([]float64(nil), sc.Regions()[0].Outline.Positions...)
	)
	{ // Forward
		phase, err := sc.SurfaceClick(t0, mesh.VerticalRay(0.2, 0.1))
		require.NoError(t, err)
		assert.Equal(t, animator.Forward, phase)
		assert.True(t, sc.Anchor().Visible)
		assert.False(t, sc.Hover().Visible)
		assert.InDelta(t, 0.2, sc.Anchor().Position.X, 1.e-9)
		assert.NotEmpty(t, sc.StaticBall())
		require.NoError(t, sc.Tick(ms(500)))
		assert.Equal(t, animator.Forward, sc.Phase())
		require.NoError(t, sc.Tick(ms(1000)))
		assert.Equal(t, animator.Warped, sc.Phase())
		want := deform.TransformBuffer(sc.Original().Positions, 3, sc.Anchor().Position, sc.AnchorMetric())
		assert.True(t, cmp.Equal(want, sc.Surface().Positions))
		assert.False(t, cmp.Equal(orig, sc.Surface().Positions, approx))
	}
	{ // Reverse restores every tracked buffer exactly
		phase, err := sc.SurfaceClick(ms(2000), mesh.VerticalRay(0, 0))
		require.NoError(t, err)
		assert.Equal(t, animator.Reverse, phase)
		phase, err = sc.SurfaceClick(ms(2100), mesh.VerticalRay(0, 0))
		require.NoError(t, err)
		assert.Equal(t, animator.Reverse, phase)
		require.NoError(t, sc.Tick(ms(3000)))
		assert.Equal(t, animator.Inactive, sc.Phase())
		assert.True(t, cmp.Equal(orig, sc.Surface().Positions), cmp.Diff(orig, sc.Surface().Positions))
		assert.Equal(t, origOver, sc.Regions()[0].Overlay)
		assert.Equal(t, origLine, sc.Regions()[0].Outline.Positions)
		assert.Nil(t, sc.StaticBall())
		assert.False(t, sc.Anchor().Visible)
		assert.Nil(t, sc.Original())
	}
	{ // Reversing mid-flight is continuous
		_, err := sc.SurfaceClick(ms(4000), mesh.VerticalRay(0.2, 0.1))
		require.NoError(t, err)
		require.NoError(t, sc.Tick(ms(4300)))
		mid := append([]float64(nil), sc.Surface().Positions...)
		phase, err := sc.SurfaceClick(ms(4300), mesh.VerticalRay(0, 0))
		require.NoError(t, err)
		assert.Equal(t, animator.Reverse, phase)
		require.NoError(t, sc.Tick(ms(4300)))
		assert.True(t, cmp.Equal(mid, sc.Surface().Positions, approx))
		now, err := sc.RunUntilSettled(ms(4316), 16*time.Millisecond, 100)
		require.NoError(t, err)
		assert.True(t, now.Before(ms(5000)))
		assert.Equal(t, animator.Inactive, sc.Phase())
		assert.Equal(t, orig, sc.Surface().Positions)
	}
	{ // A miss does nothing
		phase, err := sc.SurfaceClick(ms(6000), mesh.VerticalRay(4, 4))
		require.NoError(t, err)
		assert.Equal(t, animator.Inactive, phase)
	}
	{ // Editing polygons while warped drops the deformation
		_, err := sc.SurfaceClick(ms(7000), mesh.VerticalRay(0.2, 0.1))
		require.NoError(t, err)
		require.NoError(t, sc.Tick(ms(7500)))
		assert.Equal(t, PolygonDeleted, click(t, sc, 0.5, 0.5))
		assert.Equal(t, animator.Inactive, sc.Phase())
		assert.Nil(t, sc.StaticBall())
	}
}

func TestParaboloidWarp(t *testing.T) {
	t0 := time.Unix(0, 0)
	sc, err := New(testParams("paraboloid"))
	require.NoError(t, err)
	_, err = sc.SurfaceClick(t0, mesh.VerticalRay(0.5, 0.25))
	require.NoError(t, err)
	m := sc.AnchorMetric()
	assert.InDelta(t, 0.25, m.A11, 1.e-6)
	assert.InDelta(t, 0.25, m.A22, 1.e-6)
	assert.InDelta(t, 0.5, m.L11, 1.e-6)
	assert.InDelta(t, 0.5, m.L22, 1.e-6)
	assert.Len(t, sc.StaticBall(), 2*deform.DefaultBallSteps)
	// The ball starts as a circle of radius 2 about the anchor
	a := sc.Anchor().Position
	ball := sc.StaticBall()
	for i := 0; i < len(ball); i += 2 {
		assert.InDelta(t, 2, math.Hypot(ball[i]-a.X, ball[i+1]-a.Y), 1.e-4)
	}
	_, err = sc.RunUntilSettled(t0, 100*time.Millisecond, 20)
	require.NoError(t, err)
	assert.Equal(t, animator.Warped, sc.Phase())
	// and maps onto the unit circle
	ball = sc.StaticBall()
	for i := 0; i < len(ball); i += 2 {
		assert.InDelta(t, 1, math.Hypot(ball[i]-a.X, ball[i+1]-a.Y), 1.e-4)
	}
	snap := sc.Snapshot()
	assert.True(t, snap.HasAnchor)
	assert.Len(t, snap.Ball, len(ball))
}

func TestHoverAndFrames(t *testing.T) {
	var (
		painter  = &countingPainter{}
		renderer = &countingRenderer{}
		t0       = time.Unix(0, 0)
	)
	sc, err := New(testParams("paraboloid"), WithPainter(painter), WithRenderer(renderer))
	require.NoError(t, err)
	{ // Repaints are coalesced to one per tick and skipped when clean
		require.NoError(t, sc.Tick(t0))
		require.NoError(t, sc.Tick(t0))
		assert.Len(t, painter.frames, 1)
		assert.Equal(t, 2, renderer.frames)
		click(t, sc, 1, 1)
		click(t, sc, 2, 1)
		click(t, sc, 2, 2)
		require.NoError(t, sc.Tick(t0))
		require.Len(t, painter.frames, 2)
		assert.True(t, painter.frames[1].Drawing)
		assert.Len(t, painter.frames[1].Current, 3)
	}
	{ // Hover preview follows the pointer while inactive
		sc.PointerMove(mesh.VerticalRay(0, 0))
		require.NoError(t, sc.Tick(t0))
		assert.True(t, sc.Hover().Visible)
		assert.Greater(t, sc.Hover().Position.Z, 0.)
		assert.Len(t, sc.HoverBall(), 2*deform.DefaultBallSteps)
		// A pointer that stays put does not repaint
		painted := len(painter.frames)
		require.NoError(t, sc.Tick(t0))
		require.NoError(t, sc.Tick(t0))
		assert.Len(t, painter.frames, painted)
		assert.True(t, sc.Hover().Visible)
		sc.PointerMove(mesh.VerticalRay(0.5, 0))
		require.NoError(t, sc.Tick(t0))
		assert.Len(t, painter.frames, painted+1)
		sc.PointerMoveOverlay(sc.Transform.ModelToCanvas(r2.Point{X: 1, Y: 1}))
		require.NoError(t, sc.Tick(t0))
		assert.True(t, sc.Hover().Visible)
		sc.PointerMove(mesh.Ray{Origin: mesh.VerticalRay(0, 0).Origin, Dir: mesh.VerticalRay(0, 0).Origin})
		require.NoError(t, sc.Tick(t0))
		assert.False(t, sc.Hover().Visible)
		assert.Nil(t, sc.HoverBall())
		sc.PointerLeave()
	}
	{ // Snapping off-mesh points to the nearest vertex
		ray, ok := sc.SnapRay(40, -40)
		require.True(t, ok)
		hit, ok := sc.Pick(ray)
		require.True(t, ok)
		assert.InDelta(t, 5, hit.Point.X, 0.1)
		assert.InDelta(t, -5, hit.Point.Y, 0.1)
	}
}

func TestSetParameters(t *testing.T) {
	sc, err := New(testParams("paraboloid"))
	require.NoError(t, err)
	surface := sc.Surface()
	{ // Camera only
		sp := *sc.Params
		sp.Zoom = 30
		sp.RotationZ = math.Pi / 2
		require.NoError(t, sc.SetParameters(&sp))
		assert.Same(t, surface, sc.Surface())
		assert.InDelta(t, 30, sc.Camera().Position.X, 1.e-9)
		assert.InDelta(t, 0, sc.Camera().Position.Y, 1.e-9)
		assert.Equal(t, math.Pi/2, sc.Transform.Rotation)
	}
	{ // Sampling rebuilds the mesh
		sp := *sc.Params
		sp.Samples = 4
		require.NoError(t, sc.SetParameters(&sp))
		assert.NotSame(t, surface, sc.Surface())
		assert.Equal(t, 32, sc.Surface().NumTriangles())
	}
	{ // Tween settings
		sp := *sc.Params
		sp.TweenSeconds = 2
		sp.Easing = "ease-in-out"
		require.NoError(t, sc.SetParameters(&sp))
		assert.Equal(t, 2*time.Second, sc.Tween().Duration)
		assert.Equal(t, types.EaseInOut, sc.Tween().Easing)
	}
	{ // Tween settings changed mid-flight wait for the next deformation
		sc, err := New(testParams("paraboloid"))
		require.NoError(t, err)
		t0 := time.Unix(100, 0)
		phase, err := sc.SurfaceClick(t0, mesh.VerticalRay(0.3, 0.2))
		require.NoError(t, err)
		require.Equal(t, animator.Forward, phase)
		half := t0.Add(500 * time.Millisecond)
		require.NoError(t, sc.Tick(half))
		assert.InDelta(t, 0.5, sc.Tween().Progress(half), 1.e-12)
		sp := *sc.Params
		sp.TweenSeconds = 4
		sp.Easing = "cubicin"
		require.NoError(t, sc.SetParameters(&sp))
		assert.Equal(t, time.Second, sc.Tween().Duration)
		assert.Equal(t, types.EaseLinear, sc.Tween().Easing)
		assert.InDelta(t, 0.5, sc.Tween().Progress(half), 1.e-12)
		now, err := sc.RunUntilSettled(half, 100*time.Millisecond, 10)
		require.NoError(t, err)
		assert.Equal(t, animator.Warped, sc.Phase())
		_, err = sc.SurfaceClick(now, mesh.VerticalRay(0.3, 0.2))
		require.NoError(t, err)
		now, err = sc.RunUntilSettled(now, 100*time.Millisecond, 12)
		require.NoError(t, err)
		require.Equal(t, animator.Inactive, sc.Phase())
		_, err = sc.SurfaceClick(now, mesh.VerticalRay(0.3, 0.2))
		require.NoError(t, err)
		assert.Equal(t, 4*time.Second, sc.Tween().Duration)
		assert.Equal(t, types.EaseCubicIn, sc.Tween().Easing)
	}
	{ // Invalid input leaves the scene alone
		sp := *sc.Params
		sp.ClampStep = 0
		assert.Error(t, sc.SetParameters(&sp))
		assert.Equal(t, 0.05, sc.Params.ClampStep)
	}
	{ // Loading polygons
		pg, err := geometry2D.NewPolygon([]r2.Point{{X: -2, Y: -2}, {X: 2, Y: -2}, {X: 0, Y: 2}})
		require.NoError(t, err)
		sc.LoadPolygons([]*geometry2D.Polygon{pg})
		assert.Len(t, sc.Regions(), 1)
		assert.Equal(t, types.FieldBarrier, sc.Field().Kind())
		assert.Len(t, sc.Snapshot().Polygons, 1)
	}
}
