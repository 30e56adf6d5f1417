package animator

import (
	"github.com/notargets/gowarp/types"
)

// Ease maps linear progress t in [0,1] onto the easing curve, fixing 0 and 1
func Ease(t float64, easing types.EasingType) float64 {
	switch easing {
	case types.EaseIn:
		return t * t
	case types.EaseOut:
		return t * (2 - t)
	case types.EaseInOut:
		if t < 0.5 {
			return 2 * t * t
		}
		return -1 + (4-2*t)*t
	case types.EaseCubicIn:
		return t * t * t
	case types.EaseCubicOut:
		t2 := 1 - t
		return 1 - t2*t2*t2
	case types.EaseCubicInOut:
		if t < 0.5 {
			return 4 * t * t * t
		}
		t2 := -2*t + 2
		return 1 - t2*t2*t2/2
	}
	return t
}
