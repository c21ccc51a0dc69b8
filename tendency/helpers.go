package tendency

import (
	"math"
)

func fill(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}

	return out
}

// linspace returns n evenly spaced points from a to b inclusive (n >= 2).
func linspace(a, b float64, n int) []float64 {
	if n < 2 {
		n = 2
	}
	out := make([]float64, n)
	step := (b - a) / float64(n-1)
	for i := range out {
		out[i] = a + float64(i)*step
	}
	out[n-1] = b

	return out
}

func clampPoints(n, max int) int {
	if n < 2 {
		return 2
	}
	if n > max {
		return max
	}

	return n
}

func frac(x float64) float64 {
	return x - math.Floor(x)
}
