package sys

import "math/rand/v2"

// Prob returns true with the given probability.
func Prob(probability float64) bool {
	return ProbFrom(rand.Float64, probability)
}

// ProbFrom is Prob with roll as the source of numbers in [0, 1).
func ProbFrom(roll func() float64, probability float64) bool {
	return roll() < probability
}
