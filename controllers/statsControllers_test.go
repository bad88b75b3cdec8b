package controllers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asterisk-academy/backend/models"
)

func attemptOn(t time.Time, correct bool) models.SolvedQuestion {
	return models.SolvedQuestion{SubjectCode: "0620", IsCorrect: correct, AttemptedOn: t}
}

func TestBuildDailySeriesEmptyHistory(t *testing.T) {
	now := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	series := buildDailySeries(nil, now)

	require.Len(t, series, statsWindowDays)
	assert.Equal(t, "2025-02-13", series[0].Date)
	assert.Equal(t, "2025-03-14", series[len(series)-1].Date)
	for _, day := range series {
		assert.Zero(t, day.DailyAttempts)
		assert.Zero(t, day.CumulativeAttempts)
		assert.Equal(t, 50, day.Rating)
	}
}

func TestBuildDailySeriesCumulates(t *testing.T) {
	now := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	history := []models.SolvedQuestion{
		attemptOn(now.AddDate(0, 0, -2), true),
		attemptOn(now.AddDate(0, 0, -2), false),
		attemptOn(now.AddDate(0, 0, -1), true),
		attemptOn(now, true),
	}
	series := buildDailySeries(history, now)

	last := series[len(series)-1]
	assert.Equal(t, 1, last.DailyAttempts)
	assert.Equal(t, 4, last.CumulativeAttempts)
	assert.Equal(t, 3, last.CumulativeCorrect)
	assert.Equal(t, 75, last.Rating)

	twoDaysAgo := series[len(series)-3]
	assert.Equal(t, 2, twoDaysAgo.DailyAttempts)
	assert.Equal(t, 2, twoDaysAgo.CumulativeAttempts)
	assert.Equal(t, 1, twoDaysAgo.CumulativeCorrect)
}

func TestBuildDetailedSeriesGroupsByDayAndSubject(t *testing.T) {
	now := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	user := models.User{
		SelectedSubjects: []models.SubjectStats{
			{SubjectCode: "0620", UserRating: 70, UserPercentile: 81.5},
			{SubjectCode: "0625", UserRating: 40, UserPercentile: 22.0},
		},
		QuestionsSolvedDetails: []models.SolvedQuestion{
			{SubjectCode: "0620", IsCorrect: true, AttemptedOn: now.AddDate(0, 0, -1)},
			{SubjectCode: "0620", IsCorrect: false, AttemptedOn: now.AddDate(0, 0, -1)},
			{SubjectCode: "0625", IsCorrect: true, AttemptedOn: now.AddDate(0, 0, -1)},
			{SubjectCode: "0620", IsCorrect: true, AttemptedOn: now},
			// Outside the window, must not appear.
			{SubjectCode: "0620", IsCorrect: true, AttemptedOn: now.AddDate(0, -6, 0)},
		},
	}

	series := buildDetailedSeries(user, now)

	// Only the two days with attempts, ascending.
	require.Len(t, series, 2)
	assert.Equal(t, "2025-03-13", series[0].Date)
	assert.Equal(t, "2025-03-14", series[1].Date)

	yesterday := series[0].SubjectStats
	require.Len(t, yesterday, 2)
	assert.Equal(t, 2, yesterday["0620"].TotalAttempts)
	assert.Equal(t, 1, yesterday["0620"].TotalCorrects)
	assert.Equal(t, 70, yesterday["0620"].UserRating)
	assert.Equal(t, 81.5, yesterday["0620"].UserPercentile)
	assert.Equal(t, 1, yesterday["0625"].TotalAttempts)
	assert.Equal(t, 1, yesterday["0625"].TotalCorrects)

	today := series[1].SubjectStats
	require.Len(t, today, 1)
	assert.Equal(t, 1, today["0620"].TotalAttempts)
}

func TestBuildDetailedSeriesEmptyHistory(t *testing.T) {
	now := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	assert.Empty(t, buildDetailedSeries(models.User{}, now))
}

func TestBuildDailySeriesCountsPreWindowAttempts(t *testing.T) {
	now := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	history := []models.SolvedQuestion{
		attemptOn(now.AddDate(0, -6, 0), true),
		attemptOn(now.AddDate(0, -6, 0), true),
		attemptOn(now, false),
	}
	series := buildDailySeries(history, now)

	first := series[0]
	assert.Zero(t, first.DailyAttempts)
	assert.Equal(t, 2, first.CumulativeAttempts)
	assert.Equal(t, 2, first.CumulativeCorrect)

	last := series[len(series)-1]
	assert.Equal(t, 3, last.CumulativeAttempts)
	assert.Equal(t, 2, last.CumulativeCorrect)
	assert.Equal(t, 67, last.Rating)
}
