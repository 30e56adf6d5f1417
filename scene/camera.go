package scene

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gowarp/InputParameters"
)

// Camera is a look-at pose with +z up
type Camera struct {
	Position r3.Vec
	Target   r3.Vec
	Up       r3.Vec
}

/*
CameraPose orbits the centre of the domain on a horizontal circle of radius
zoom at height altitude. Rotation zero puts the camera on the -y side.
*/
func CameraPose(sp *InputParameters.SceneParameters) Camera {
	var (
		cx   = 0.5 * (sp.XMin + sp.XMax)
		cy   = 0.5 * (sp.YMin + sp.YMax)
		s, c = math.Sincos(sp.RotationZ)
	)
	return Camera{
		Position: r3.Vec{X: cx + s*sp.Zoom, Y: cy - c*sp.Zoom, Z: sp.Altitude},
		Target:   r3.Vec{X: cx, Y: cy},
		Up:       r3.Vec{Z: 1},
	}
}

func (sc *Scene) updateCamera() {
	sc.camera = CameraPose(sc.Params)
}
