package anim

import "math"

// RateFunc maps linear progress in [0,1] to eased progress.
type RateFunc func(t float64) float64

func Linear(t float64) float64 { return t }

// Smooth eases in and out with a smoothstep-shaped sigmoid.
func Smooth(t float64) float64 {
	t = clamp01(t)
	return t * t * t * (t*(t*6-15) + 10)
}

// ThereAndBack runs to the target at the midpoint and returns to the start.
func ThereAndBack(t float64) float64 {
	if t < 0.5 {
		return Smooth(2 * t)
	}
	return Smooth(2 - 2*t)
}

func EaseInOutCubic(t float64) float64 {
	t = clamp01(t)
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp01(t float64) float64 {
	return math.Max(0, math.Min(1, t))
}
