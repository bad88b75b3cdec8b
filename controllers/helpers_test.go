package controllers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartOfDay(t *testing.T) {
	in := time.Date(2025, 3, 14, 17, 45, 12, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), startOfDay(in))

	// Non-UTC input normalizes to the UTC calendar day.
	loc := time.FixedZone("UTC+5", 5*3600)
	in = time.Date(2025, 3, 14, 2, 0, 0, 0, loc)
	assert.Equal(t, time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC), startOfDay(in))
}

func TestStartOfWeek(t *testing.T) {
	// 2025-03-14 is a Friday; the week starts Monday 2025-03-10.
	friday := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), startOfWeek(friday))

	monday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, monday, startOfWeek(monday))

	sunday := time.Date(2025, 3, 16, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), startOfWeek(sunday))
}

func TestWindowStart(t *testing.T) {
	now := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), windowStart(now, "day"))
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), windowStart(now, "week"))
	assert.Equal(t, time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC), windowStart(now, "month"))
	assert.Equal(t, time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC), windowStart(now, "year"))
	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), windowStart(now, "bogus"))
}

func TestCanRemoveSubject(t *testing.T) {
	added := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

	assert.False(t, canRemoveSubject(added, added.AddDate(0, 0, 30), false))
	assert.False(t, canRemoveSubject(added, added.AddDate(0, 2, 0).Add(-time.Second), false))
	assert.True(t, canRemoveSubject(added, added.AddDate(0, 2, 0), false))
	assert.True(t, canRemoveSubject(added, added.AddDate(0, 6, 0), false))

	// Premium bypasses the cooldown entirely.
	assert.True(t, canRemoveSubject(added, added.Add(time.Hour), true))
}

func TestQuotaExhausted(t *testing.T) {
	limit := 10

	assert.False(t, quotaExhausted(false, 0, limit))
	assert.False(t, quotaExhausted(false, int64(limit-1), limit))

	// The cap is inclusive: hitting the limit blocks the next attempt.
	assert.True(t, quotaExhausted(false, int64(limit), limit))
	assert.True(t, quotaExhausted(false, int64(limit+1), limit))

	// Premium is never limited.
	assert.False(t, quotaExhausted(true, int64(limit), limit))
	assert.False(t, quotaExhausted(true, int64(limit)*100, limit))
}

func TestRandomNumericCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code := randomNumericCode()
		assert.Len(t, code, 6)
		for _, ch := range code {
			assert.True(t, ch >= '0' && ch <= '9')
		}
		seen[code] = true
	}
	// 50 draws from a million-code space collapsing to one value would mean
	// the generator is broken.
	assert.Greater(t, len(seen), 1)
}
