package controllers

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/asterisk-academy/backend/util"
)

var validate = validator.New()

// userLocks serializes submission processing per user id so two concurrent
// submissions cannot drop each other's history updates.
var userLocks = util.NewUserLock()

// subjectRemovalCooldown is how long a subject stays locked to the account
// after being added, for non-premium users.
const subjectRemovalCooldown = 2 // months

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// startOfWeek returns the most recent Monday 00:00 UTC at or before t.
func startOfWeek(t time.Time) time.Time {
	day := startOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// windowStart maps a review range name to its window start. Unknown ranges
// fall back to the current day.
func windowStart(now time.Time, rangeName string) time.Time {
	switch rangeName {
	case "week":
		return startOfWeek(now)
	case "month":
		return startOfDay(now).AddDate(0, -1, 0)
	case "year":
		return startOfDay(now).AddDate(-1, 0, 0)
	default:
		return startOfDay(now)
	}
}

// canRemoveSubject enforces the removal cooldown. Premium accounts can drop a
// subject at any time.
func canRemoveSubject(dateAdded, now time.Time, premium bool) bool {
	if premium {
		return true
	}
	return !now.Before(dateAdded.AddDate(0, subjectRemovalCooldown, 0))
}

// quotaExhausted reports whether a free-tier attempt count has used up the
// daily allowance. Premium accounts are never limited.
func quotaExhausted(premium bool, attempts int64, limit int) bool {
	if premium {
		return false
	}
	return attempts >= int64(limit)
}

// randomNumericCode draws a 6-digit verification code from crypto/rand; these
// codes gate account takeover so they must not be predictable.
func randomNumericCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		panic(err)
	}
	return fmt.Sprintf("%06d", n.Int64())
}
