package systems

import "math"

// Clamp functions for common value ranges

// clamp clamps v between minVal and maxVal.
func clamp(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// Finite reports whether v is neither NaN nor infinite.
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// FinitePoint reports whether both coordinates are finite.
func FinitePoint(x, y float64) bool {
	return Finite(x) && Finite(y)
}

// Distance functions

// distance returns the Euclidean distance between two points.
func distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x1-x2, y1-y2)
}

// uniform draws from [lo, hi).
func uniform(rng Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// centred draws from [-0.5, 0.5).
func centred(rng Rand) float64 {
	return rng.Float64() - 0.5
}

// Rand is the random source used by the systems. *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}
