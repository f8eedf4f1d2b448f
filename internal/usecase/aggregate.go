package usecase

import "math"

// AverageRating returns the arithmetic mean of values rounded to two
// decimals, half to even. An empty set averages to 0.
func AverageRating(values []int) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum int64
	for _, v := range values {
		sum += int64(v)
	}
	mean := float64(sum) / float64(len(values))
	return math.RoundToEven(mean*100) / 100
}
