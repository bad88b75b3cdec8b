// Package adaptive holds the rating and percentile arithmetic behind
// question selection. All functions are pure so the handlers stay thin.
package adaptive

import "math"

// DefaultRating is assigned to a user in a subject before any attempt and to
// a question before it has enough attempts for a real difficulty estimate.
const DefaultRating = 50

// MinAttemptsForDifficulty is how many attempts a question needs before its
// difficulty rating is recomputed from live data.
const MinAttemptsForDifficulty = 10

// Rating converts an attempt history into a 0..100 score.
func Rating(attempts, correct int) int {
	if attempts <= 0 {
		return DefaultRating
	}
	return int(math.Round(float64(correct) / float64(attempts) * 100))
}

// Difficulty is the share of wrong answers on a question, as 0..100.
func Difficulty(attempts, correct int) float64 {
	if attempts <= 0 {
		return DefaultRating
	}
	return float64(attempts-correct) / float64(attempts) * 100
}

// PercentileRank is the percentage of the population strictly below the
// sample. An empty population ranks at 0.
func PercentileRank(below, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return float64(below) / float64(total) * 100
}

// Band returns the [lo, hi] difficulty-percentile window around a user's
// percentile, clamped to 0..100.
func Band(percentile, tolerance float64) (lo, hi float64) {
	lo = percentile - tolerance
	hi = percentile + tolerance
	if lo < 0 {
		lo = 0
	}
	if hi > 100 {
		hi = 100
	}
	return lo, hi
}

// IncrementalMean folds one new sample into a running average where n is the
// sample count including the new sample.
func IncrementalMean(oldAvg float64, n int64, sample float64) float64 {
	if n <= 1 {
		return sample
	}
	return (oldAvg*float64(n-1) + sample) / float64(n)
}
