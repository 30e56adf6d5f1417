package mesh

import (
	"github.com/gogpu/gg"
	"gonum.org/v1/gonum/floats"
)

var (
	Viridis         = []string{"#440154", "#414487", "#2a788e", "#21a585", "#7ad151", "#fde725"}
	ViridisReversed = []string{"#fde725", "#7ad151", "#21a585", "#2a788e", "#414487", "#440154"}
)

/*
RampColor interpolates piecewise linearly between equally spaced color stops,
t in [0,1] maps to the first through the last stop.
*/
func RampColor(stops []gg.RGBA, t float64) gg.RGBA {
	if len(stops) == 1 {
		return stops[0]
	}
	switch {
	case t < 0:
		t = 0
	case t > 1:
		t = 1
	}
	s := t * float64(len(stops)-1)
	i0 := int(s)
	i1 := min(i0+1, len(stops)-1)
	return stops[i0].Lerp(stops[i1], s-float64(i0))
}

/*
ApplyColorRamp colors every vertex by its height relative to the z range of the
surface. With flip set the ramp runs from the last stop at the bottom.
*/
func ApplyColorRamp(s *Surface, hexStops []string, flip bool) {
	var (
		nv    = s.NumVertices()
		stops = make([]gg.RGBA, len(hexStops))
	)
	if nv == 0 || len(hexStops) == 0 {
		return
	}
	for i, h := range hexStops {
		stops[i] = gg.Hex(h)
	}
	z := make([]float64, nv)
	for i := range z {
		z[i] = s.Positions[3*i+2]
	}
	s.ZMin, s.ZMax = floats.Min(z), floats.Max(z)
	span := s.ZMax - s.ZMin
	if span == 0 {
		span = 1
	}
	s.Colors = make([]float32, 3*nv)
	for i, zi := range z {
		t := (zi - s.ZMin) / span
		if flip {
			t = 1 - t
		}
		c := RampColor(stops, t)
		s.Colors[3*i], s.Colors[3*i+1], s.Colors[3*i+2] = float32(c.R), float32(c.G), float32(c.B)
	}
}
