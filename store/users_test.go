package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/asterisk-academy/backend/models"
)

// The targeted user updates exist so handlers that touch one slice of the
// document cannot drop a history entry appended by a concurrent submission.
// These tests pin down that none of them reference the attempt history and
// that list-valued records go through $push rather than a whole-field write.

func updateTouchesField(update bson.M, field string) bool {
	for _, doc := range update {
		if m, ok := doc.(bson.M); ok {
			if _, found := m[field]; found {
				return true
			}
		}
	}
	return false
}

func TestAppendGradedEssayUpdateShape(t *testing.T) {
	now := time.Now()
	essay := models.GradedEssay{EssayID: "e-1", Grade: 72}

	update := appendGradedEssayUpdate(essay, now)

	push, ok := update["$push"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, essay, push["essaysGraded"])

	assert.False(t, updateTouchesField(update, "questionsSolvedDetails"))
	assert.False(t, updateTouchesField(update, "selectedSubjects"))
}

func TestAppendSolvedPaperUpdateShape(t *testing.T) {
	now := time.Now()
	paper := models.SolvedPaper{PaperCode: "0620/41", UserMarks: 30}

	update := appendSolvedPaperUpdate(paper, now)

	push, ok := update["$push"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, paper, push["papersSolvedDetails"])

	assert.False(t, updateTouchesField(update, "questionsSolvedDetails"))
	assert.False(t, updateTouchesField(update, "selectedSubjects"))
}

func TestSetAccessUpdateShape(t *testing.T) {
	now := time.Now()
	till := now.AddDate(0, 1, 0)
	premium := &models.Access{Valid: true, AccessTill: &till}
	grader := &models.GraderAccess{Valid: true, WeeklyEssayLimit: 5}

	update := setAccessUpdate(premium, grader, now)
	set, ok := update["$set"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, *premium, set["premiumAccess"])
	assert.Equal(t, *grader, set["graderAccess"])
	assert.False(t, updateTouchesField(update, "questionsSolvedDetails"))

	// Absent entitlements stay untouched.
	update = setAccessUpdate(premium, nil, now)
	set = update["$set"].(bson.M)
	assert.Contains(t, set, "premiumAccess")
	assert.NotContains(t, set, "graderAccess")

	update = setAccessUpdate(nil, grader, now)
	set = update["$set"].(bson.M)
	assert.NotContains(t, set, "premiumAccess")
	assert.Contains(t, set, "graderAccess")
}

func TestSetAccountUpdateShape(t *testing.T) {
	now := time.Now()
	subjects := []models.SubjectStats{{SubjectCode: "0620", UserRating: 50}}

	update := setAccountUpdate(subjects, "hash", now, now)
	set, ok := update["$set"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, subjects, set["selectedSubjects"])
	assert.Equal(t, "hash", set["password"])
	assert.Equal(t, now, set["passwordChangedAt"])
	assert.False(t, updateTouchesField(update, "questionsSolvedDetails"))
	assert.False(t, updateTouchesField(update, "essaysGraded"))
	assert.False(t, updateTouchesField(update, "papersSolvedDetails"))

	// A nil subject list means the subjects were not part of the request.
	update = setAccountUpdate(nil, "hash", now, now)
	set = update["$set"].(bson.M)
	assert.NotContains(t, set, "selectedSubjects")
	assert.Contains(t, set, "password")

	// An empty password means only the subjects change.
	update = setAccountUpdate(subjects, "", time.Time{}, now)
	set = update["$set"].(bson.M)
	assert.Contains(t, set, "selectedSubjects")
	assert.NotContains(t, set, "password")
	assert.NotContains(t, set, "passwordChangedAt")
}
