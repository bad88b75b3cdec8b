package controllers

import (
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/asterisk-academy/backend/adaptive"
	"github.com/asterisk-academy/backend/models"
	"github.com/asterisk-academy/backend/store"
)

const statsWindowDays = 30

type dayStats struct {
	Date               string  `json:"date"`
	DailyAttempts      int     `json:"dailyAttempts"`
	CumulativeAttempts int     `json:"cumulativeAttempts"`
	CumulativeCorrect  int     `json:"cumulativeCorrect"`
	Rating             int     `json:"rating"`
	Percentile         float64 `json:"percentile"`
}

// buildDailySeries folds the attempt history into a per-day cumulative series
// covering the last statsWindowDays days up to now. Percentile is filled in
// by the caller for the final day only; intermediate days carry the rating
// derived from history.
func buildDailySeries(history []models.SolvedQuestion, now time.Time) []dayStats {
	firstDay := startOfDay(now).AddDate(0, 0, -(statsWindowDays - 1))

	// Attempts before the window still count toward the cumulative totals.
	cumAttempts, cumCorrect := 0, 0
	perDayAttempts := make(map[string]int)
	perDayCorrect := make(map[string]int)
	for _, attempt := range history {
		if attempt.AttemptedOn.Before(firstDay) {
			cumAttempts++
			if attempt.IsCorrect {
				cumCorrect++
			}
			continue
		}
		key := startOfDay(attempt.AttemptedOn).Format("2006-01-02")
		perDayAttempts[key]++
		if attempt.IsCorrect {
			perDayCorrect[key]++
		}
	}

	series := make([]dayStats, 0, statsWindowDays)
	for d := 0; d < statsWindowDays; d++ {
		day := firstDay.AddDate(0, 0, d)
		key := day.Format("2006-01-02")
		cumAttempts += perDayAttempts[key]
		cumCorrect += perDayCorrect[key]
		series = append(series, dayStats{
			Date:               key,
			DailyAttempts:      perDayAttempts[key],
			CumulativeAttempts: cumAttempts,
			CumulativeCorrect:  cumCorrect,
			Rating:             adaptive.Rating(cumAttempts, cumCorrect),
		})
	}
	return series
}

type subjectDayStats struct {
	TotalAttempts  int     `json:"totalAttempts"`
	TotalCorrects  int     `json:"totalCorrects"`
	UserRating     int     `json:"userRating"`
	UserPercentile float64 `json:"userPercentile"`
}

type detailedDay struct {
	Date         string                     `json:"date"`
	SubjectStats map[string]subjectDayStats `json:"subjectStats"`
}

// buildDetailedSeries groups the attempt history by day and subject over the
// last statsWindowDays days. Each cell carries that day's attempt and correct
// counts plus the subject's current rating and percentile. Days without
// attempts are omitted; days come back in ascending date order.
func buildDetailedSeries(user models.User, now time.Time) []detailedDay {
	firstDay := startOfDay(now).AddDate(0, 0, -(statsWindowDays - 1))

	type cell struct{ attempts, correct int }
	perDay := make(map[string]map[string]cell)
	for _, attempt := range user.QuestionsSolvedDetails {
		if attempt.AttemptedOn.Before(firstDay) {
			continue
		}
		key := startOfDay(attempt.AttemptedOn).Format("2006-01-02")
		if perDay[key] == nil {
			perDay[key] = make(map[string]cell)
		}
		counts := perDay[key][attempt.SubjectCode]
		counts.attempts++
		if attempt.IsCorrect {
			counts.correct++
		}
		perDay[key][attempt.SubjectCode] = counts
	}

	current := make(map[string]models.SubjectStats, len(user.SelectedSubjects))
	for _, stats := range user.SelectedSubjects {
		current[stats.SubjectCode] = stats
	}

	dates := make([]string, 0, len(perDay))
	for date := range perDay {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	series := make([]detailedDay, 0, len(dates))
	for _, date := range dates {
		day := detailedDay{Date: date, SubjectStats: make(map[string]subjectDayStats, len(perDay[date]))}
		for code, counts := range perDay[date] {
			stats := current[code]
			day.SubjectStats[code] = subjectDayStats{
				TotalAttempts:  counts.attempts,
				TotalCorrects:  counts.correct,
				UserRating:     stats.UserRating,
				UserPercentile: stats.UserPercentile,
			}
		}
		series = append(series, day)
	}
	return series
}

// GetDetailedStats returns the per-day, per-subject attempt breakdown backing
// the dashboard drill-down view.
func GetDetailedStats(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "success",
		"days":   buildDetailedSeries(user, time.Now()),
	})
}

// GetStats returns the 30-day cumulative dashboard series.
func GetStats(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)

	series := buildDailySeries(user.QuestionsSolvedDetails, time.Now())
	if len(series) > 0 {
		last := &series[len(series)-1]
		percentile, err := store.CumulativeRatingPercentile(c.Context(), last.Rating)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "database error"})
		}
		last.Percentile = percentile
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":           "success",
		"days":             series,
		"selectedSubjects": user.SelectedSubjects,
	})
}

// ReviewQuestions returns the attempt history for a time window grouped by
// subject. Premium only.
func ReviewQuestions(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)
	if !user.PremiumAccess.Valid {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "error",
			"message": "review is a premium feature",
		})
	}

	rangeName := c.Query("range", "day")
	switch rangeName {
	case "day", "week", "month", "year":
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "range must be day, week, month or year"})
	}

	since := windowStart(time.Now(), rangeName)
	grouped := make(map[string][]models.SolvedQuestion)
	for _, attempt := range user.QuestionsSolvedDetails {
		if attempt.AttemptedOn.Before(since) {
			continue
		}
		grouped[attempt.SubjectCode] = append(grouped[attempt.SubjectCode], attempt)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":   "success",
		"range":    rangeName,
		"since":    since,
		"subjects": grouped,
	})
}
