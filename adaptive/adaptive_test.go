package adaptive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRating(t *testing.T) {
	assert.Equal(t, 50, Rating(0, 0))
	assert.Equal(t, 100, Rating(4, 4))
	assert.Equal(t, 0, Rating(4, 0))
	assert.Equal(t, 67, Rating(3, 2))
	assert.Equal(t, 33, Rating(3, 1))
}

func TestDifficulty(t *testing.T) {
	assert.Equal(t, 50.0, Difficulty(0, 0))
	assert.Equal(t, 0.0, Difficulty(10, 10))
	assert.Equal(t, 100.0, Difficulty(10, 0))
	assert.InDelta(t, 40.0, Difficulty(10, 6), 1e-9)
}

func TestPercentileRank(t *testing.T) {
	assert.Equal(t, 0.0, PercentileRank(0, 0))
	assert.Equal(t, 0.0, PercentileRank(0, 5))
	assert.Equal(t, 100.0, PercentileRank(5, 5))
	assert.InDelta(t, 40.0, PercentileRank(2, 5), 1e-9)
}

func TestBandClampsToRange(t *testing.T) {
	lo, hi := Band(50, 10)
	assert.Equal(t, 40.0, lo)
	assert.Equal(t, 60.0, hi)

	lo, hi = Band(3, 10)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 13.0, hi)

	lo, hi = Band(97, 10)
	assert.Equal(t, 87.0, lo)
	assert.Equal(t, 100.0, hi)

	lo, hi = Band(0, 10)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 10.0, hi)
}

func TestIncrementalMean(t *testing.T) {
	// First sample becomes the average.
	assert.Equal(t, 42.0, IncrementalMean(0, 1, 42))

	avg := IncrementalMean(10, 2, 20)
	assert.InDelta(t, 15.0, avg, 1e-9)

	// Folding samples one by one matches the arithmetic mean.
	samples := []float64{12, 8, 30, 5}
	running := 0.0
	for i, s := range samples {
		running = IncrementalMean(running, int64(i+1), s)
	}
	assert.InDelta(t, (12.0+8+30+5)/4, running, 1e-9)
}
