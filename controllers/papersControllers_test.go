package controllers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/asterisk-academy/backend/models"
)

func TestScorePaper(t *testing.T) {
	q1 := primitive.NewObjectID()
	q2 := primitive.NewObjectID()
	q3 := primitive.NewObjectID()
	paper := models.Paper{Questions: []primitive.ObjectID{q1, q2, q3}, TotalMarks: 3}

	base := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	history := []models.SolvedQuestion{
		{QuestionID: q1, IsCorrect: false, UserQuestionTime: 30, AttemptedOn: base},
		// A later retry of q1 supersedes the first attempt.
		{QuestionID: q1, IsCorrect: true, UserQuestionTime: 20, AttemptedOn: base.Add(time.Hour)},
		{QuestionID: q2, IsCorrect: false, UserQuestionTime: 45, AttemptedOn: base},
		// q3 never attempted.
	}

	marks, totalTime, attempted, accuracy := scorePaper(paper, history)
	assert.Equal(t, 1, marks)
	assert.Equal(t, 65, totalTime)
	assert.Equal(t, 2, attempted)
	assert.InDelta(t, 50.0, accuracy, 1e-9)
}

func TestScorePaperNoAttempts(t *testing.T) {
	paper := models.Paper{Questions: []primitive.ObjectID{primitive.NewObjectID()}}
	marks, totalTime, attempted, accuracy := scorePaper(paper, nil)
	assert.Zero(t, marks)
	assert.Zero(t, totalTime)
	assert.Zero(t, attempted)
	assert.Zero(t, accuracy)
}

func TestGraderAccessState(t *testing.T) {
	now := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	future := now.Add(30 * 24 * time.Hour)
	past := now.Add(-time.Hour)

	user := models.User{GraderAccess: models.GraderAccess{Valid: true, AccessTill: &future, WeeklyEssayLimit: 2}}
	allowed, remaining, _ := graderAccessState(user, now)
	assert.True(t, allowed)
	assert.Equal(t, 2, remaining)

	// One essay this week, one last week. Only this week's counts.
	user.EssaysGraded = []models.GradedEssay{
		{Date: startOfWeek(now).Add(time.Hour)},
		{Date: startOfWeek(now).Add(-time.Hour)},
	}
	allowed, remaining, _ = graderAccessState(user, now)
	assert.True(t, allowed)
	assert.Equal(t, 1, remaining)

	user.EssaysGraded = append(user.EssaysGraded, models.GradedEssay{Date: now})
	allowed, _, reason := graderAccessState(user, now)
	assert.False(t, allowed)
	assert.Equal(t, "weekly essay limit reached", reason)

	user.GraderAccess.AccessTill = &past
	allowed, _, reason = graderAccessState(user, now)
	assert.False(t, allowed)
	assert.Equal(t, "grader access expired", reason)

	user.GraderAccess.Valid = false
	allowed, _, reason = graderAccessState(user, now)
	assert.False(t, allowed)
	assert.Equal(t, "no grader access", reason)
}
