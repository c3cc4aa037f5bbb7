package scheduler

import "math"

// Easing selects how linear animation progress is reshaped into displayed
// progress. All easings map 0 to 0 and 1 to 1 exactly.
type Easing string

const (
	EasingLinear    Easing = "linear"
	EasingEaseIn    Easing = "ease-in"
	EasingEaseOut   Easing = "ease-out"
	EasingEaseInOut Easing = "ease-in-out"
	EasingBounce    Easing = "bounce"
	EasingElastic   Easing = "elastic"
)

const (
	bounceC1 = 1.70158
	bounceC3 = bounceC1 + 1
)

// Apply reshapes raw progress p in [0,1]. Unknown easings fall back to linear.
func (e Easing) Apply(p float64) float64 {
	switch e {
	case EasingEaseIn:
		return p * p
	case EasingEaseOut:
		return 1 - (1-p)*(1-p)
	case EasingEaseInOut:
		if p < 0.5 {
			return 2 * p * p
		}
		return 1 - math.Pow(-2*p+2, 2)/2
	case EasingBounce:
		return bounceC3*p*p*p - bounceC1*p*p
	case EasingElastic:
		if p == 0 {
			return 0
		}
		if p == 1 {
			return 1
		}
		return math.Pow(2, -10*p)*math.Sin((10*p-0.75)*(2*math.Pi/3)) + 1
	default:
		return p
	}
}
