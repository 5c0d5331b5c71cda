package util

import "golang.org/x/exp/constraints"

func Clamp[T constraints.Ordered](v, low, high T) T {
	return max(low, min(v, high))
}

// Ratio returns part/whole clamped to [0, 1]. A non-positive whole yields 0.
func Ratio[T constraints.Integer | constraints.Float](part, whole T) float64 {
	if whole <= 0 {
		return 0
	}
	return Clamp(float64(part)/float64(whole), 0, 1)
}
