package util

import "github.com/fogleman/ease"

// EasingByName maps a config easing name onto its curve. Unknown names
// fall back to linear.
func EasingByName(name string) func(float64) float64 {
	switch name {
	case "in-out-quad":
		return ease.InOutQuad
	case "in-out-cubic":
		return ease.InOutCubic
	case "out-quad":
		return ease.OutQuad
	default:
		return ease.Linear
	}
}
