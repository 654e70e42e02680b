// Package systems provides the math and sampling helpers shared by the
// ensemble and the renderers.
package systems

import "math"

// Clamp clamps v between minVal and maxVal.
func Clamp(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// Clamp01 clamps v to the [0, 1] range.
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Lerp interpolates linearly between a and b by t in [0, 1].
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// WrapX teleports x to the opposite edge when it leaves
// [-margin, width+margin]. Inside the band x is returned unchanged.
func WrapX(x, width, margin float64) float64 {
	if x < -margin {
		return width + margin
	}
	if x > width+margin {
		return -margin
	}
	return x
}

// SnapToGrid floors y to a multiple of spacing.
func SnapToGrid(y, spacing float64) float64 {
	return math.Floor(y/spacing) * spacing
}
