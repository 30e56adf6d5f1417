package field

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/notargets/gowarp/types"
)

type Preset struct {
	Name  string // Lookup key, lower case
	Label string
	TeX   string
	Fn    func(x, y float64) float64
}

func (p *Preset) Evaluate(x, y float64) (z float64, ok bool) {
	z = p.Fn(x, y)
	return z, IsFinite(z)
}

func (p *Preset) Kind() types.FieldKind { return types.FieldPreset }

// Presets is ordered, the first entry is the default field
var Presets = []*Preset{
	{
		Name:  "radial-bowl",
		Label: "Radial Bowl",
		TeX:   `\sqrt{x^{2}+y^{2}+1}\;{-}\;1`,
		Fn:    func(x, y float64) float64 { return math.Sqrt(x*x+y*y+1) - 1 },
	},
	{
		Name:  "log-barrier",
		Label: "Log Barrier",
		TeX:   `-\log(5{-}x)\;{-}\;\log(5{-}y)`,
		Fn:    func(x, y float64) float64 { return -math.Log(5.001-x) - math.Log(5.001-y) },
	},
	{
		Name:  "paraboloid",
		Label: "Paraboloid",
		TeX:   `\frac18\bigl(x^{2}+y^{2}\bigr)`,
		Fn:    func(x, y float64) float64 { return 0.125 * (x*x + y*y) },
	},
	{
		Name:  "tilted-quadratic",
		Label: "Tilted Quadratic",
		TeX:   `\tfrac1{20}\bigl(6x^{2}+xy+2y^{2}\bigr)`,
		Fn:    func(x, y float64) float64 { return (6*x*x + x*y + 2*y*y) / 20 },
	},
	{
		Name:  "logsumexp",
		Label: "LogSumExp",
		TeX:   `2\,\log\!\bigl(e^{0.3x}+e^{0.3y}+e^{-0.3(x+y)}\bigr)`,
		Fn: func(x, y float64) float64 {
			return 2 * math.Log(math.Exp(0.3*x)+math.Exp(0.3*y)+math.Exp(-0.3*(x+y)))
		},
	},
	{
		Name:  "bigbowl",
		Label: "BigBowl",
		TeX:   `x+y\,{-}\log x\,{-}\log y`,
		Fn:    func(x, y float64) float64 { return x + y - math.Log(x) - math.Log(y) },
	},
	{
		Name:  "sine-cos",
		Label: "Sine × Cos",
		TeX:   `\sin x\,\cos y`,
		Fn:    func(x, y float64) float64 { return math.Sin(x) * math.Cos(y) },
	},
}

/*
PresetByName accepts a preset name, its label in any case, or its index in the
catalogue.
*/
func PresetByName(name string) (index int, p *Preset, err error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return 0, Presets[0], nil
	}
	for i, pr := range Presets {
		if key == pr.Name || key == strings.ToLower(pr.Label) {
			return i, pr, nil
		}
	}
	if i, cerr := strconv.Atoi(key); cerr == nil && i >= 0 && i < len(Presets) {
		return i, Presets[i], nil
	}
	err = errors.Errorf("unknown preset %q", name)
	return
}
