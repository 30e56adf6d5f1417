package InputParameters

import (
	"fmt"
	"math"
	"time"

	"github.com/ghodss/yaml"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"github.com/notargets/gowarp/geometry2D"
	"github.com/notargets/gowarp/types"
)

// Parameters obtained from the YAML input file
type SceneParameters struct {
	Title         string         `json:"Title"`
	Preset        string         `json:"Preset"`
	XMin          float64        `json:"XMin"`
	XMax          float64        `json:"XMax"`
	YMin          float64        `json:"YMin"`
	YMax          float64        `json:"YMax"`
	Samples       int            `json:"Samples"`
	RotationZ     float64        `json:"RotationZ"`
	Zoom          float64        `json:"Zoom"`
	Altitude      float64        `json:"Altitude"`
	CapZ          float64        `json:"CapZ"`      // Height clamp for the polygon mesh
	ClampStep     float64        `json:"ClampStep"` // Sampling step inside the polygon
	BallSteps     int            `json:"BallSteps"`
	TweenSeconds  float64        `json:"TweenSeconds"`
	Easing        string         `json:"Easing"`
	MeshMode      string         `json:"MeshMode"`
	SnapRadius    float64        `json:"SnapRadius"` // Pixels
	OverlayWidth  int            `json:"OverlayWidth"`
	OverlayHeight int            `json:"OverlayHeight"`
	Polygons      [][][2]float64 `json:"Polygons"`
	Anchor        *[2]float64    `json:"Anchor,omitempty"`
}

func NewSceneParameters() *SceneParameters {
	return &SceneParameters{
		Title:         "gowarp",
		Preset:        "radial-bowl",
		XMin:          -5,
		XMax:          5,
		YMin:          -5,
		YMax:          5,
		Samples:       100,
		Zoom:          15,
		Altitude:      20,
		CapZ:          -1,
		ClampStep:     0.05,
		BallSteps:     244,
		TweenSeconds:  1,
		Easing:        "linear",
		MeshMode:      "auto",
		SnapRadius:    5,
		OverlayWidth:  512,
		OverlayHeight: 512,
	}
}

// Parse overlays the YAML document onto the current values
func (sp *SceneParameters) Parse(data []byte) (err error) {
	if err = yaml.Unmarshal(data, sp); err != nil {
		return errors.Wrap(err, "parsing scene parameters")
	}
	return sp.Validate()
}

func (sp *SceneParameters) Validate() (err error) {
	finite := func(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
	switch {
	case !(sp.XMax > sp.XMin) || !(sp.YMax > sp.YMin):
		return errors.Errorf("empty domain [%g,%g]x[%g,%g]", sp.XMin, sp.XMax, sp.YMin, sp.YMax)
	case sp.Samples < 1:
		return errors.Errorf("samples must be positive, have %d", sp.Samples)
	case !(sp.ClampStep > 0):
		return errors.Errorf("clamp step must be positive, have %g", sp.ClampStep)
	case sp.BallSteps < 3:
		return errors.Errorf("ball steps must be at least 3, have %d", sp.BallSteps)
	case sp.TweenSeconds < 0:
		return errors.Errorf("negative tween duration %g", sp.TweenSeconds)
	case !finite(sp.RotationZ) || !finite(sp.Zoom) || !finite(sp.Altitude) || !finite(sp.CapZ):
		return errors.New("camera and cap values must be finite")
	case sp.SnapRadius < 0:
		return errors.Errorf("negative snap radius %g", sp.SnapRadius)
	case sp.OverlayWidth < 1 || sp.OverlayHeight < 1:
		return errors.Errorf("bad overlay size %dx%d", sp.OverlayWidth, sp.OverlayHeight)
	}
	if _, err = types.NewEasingType(sp.Easing); err != nil {
		return
	}
	if _, err = types.NewMeshMode(sp.MeshMode); err != nil {
		return
	}
	_, err = sp.PolygonList()
	return
}

func (sp *SceneParameters) Domain() r2.Rect {
	return r2.RectFromPoints(r2.Point{X: sp.XMin, Y: sp.YMin}, r2.Point{X: sp.XMax, Y: sp.YMax})
}

func (sp *SceneParameters) Duration() time.Duration {
	return time.Duration(sp.TweenSeconds * float64(time.Second))
}

func (sp *SceneParameters) EasingType() types.EasingType {
	et, _ := types.NewEasingType(sp.Easing)
	return et
}

func (sp *SceneParameters) MeshModeType() types.MeshMode {
	mm, _ := types.NewMeshMode(sp.MeshMode)
	return mm
}

func (sp *SceneParameters) PolygonList() (polys []*geometry2D.Polygon, err error) {
	for i, raw := range sp.Polygons {
		pts := make([]r2.Point, len(raw))
		for j, p := range raw {
			pts[j] = r2.Point{X: p[0], Y: p[1]}
		}
		var pg *geometry2D.Polygon
		if pg, err = geometry2D.NewPolygon(pts); err != nil {
			return nil, errors.Wrapf(err, "polygon %d", i)
		}
		polys = append(polys, pg)
	}
	return
}

func (sp *SceneParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", sp.Title)
	fmt.Printf("[%s]\t\t= Preset\n", sp.Preset)
	fmt.Printf("[%g,%g]x[%g,%g]\t= Domain\n", sp.XMin, sp.XMax, sp.YMin, sp.YMax)
	fmt.Printf("[%d]\t\t\t= Samples\n", sp.Samples)
	fmt.Printf("%8.5f\t\t= RotationZ\n", sp.RotationZ)
	fmt.Printf("%8.5f\t\t= Zoom\n", sp.Zoom)
	fmt.Printf("%8.5f\t\t= Altitude\n", sp.Altitude)
	fmt.Printf("%8.5f\t\t= CapZ\n", sp.CapZ)
	fmt.Printf("%8.5f\t\t= ClampStep\n", sp.ClampStep)
	fmt.Printf("[%d]\t\t\t= BallSteps\n", sp.BallSteps)
	fmt.Printf("%8.5f\t\t= TweenSeconds\n", sp.TweenSeconds)
	fmt.Printf("[%s]\t\t= Easing\n", sp.Easing)
	fmt.Printf("[%s]\t\t= MeshMode\n", sp.MeshMode)
	for i, poly := range sp.Polygons {
		fmt.Printf("Polygons[%d] = %v\n", i, poly)
	}
	if sp.Anchor != nil {
		fmt.Printf("(%g,%g)\t\t= Anchor\n", sp.Anchor[0], sp.Anchor[1])
	}
}
