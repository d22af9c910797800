package analytics

import "math"

// roundTo rounds x to the given number of decimal digits.
func roundTo(x float64, digits int) float64 {
	pow := math.Pow(10, float64(digits))
	return math.Round(x*pow) / pow
}
