package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/asterisk-academy/backend/adaptive"
	"github.com/asterisk-academy/backend/models"
	"github.com/asterisk-academy/backend/store"
	"github.com/asterisk-academy/backend/util"
)

// SubmitAnswer records one attempt: question stats, attempt history, subject
// and cumulative ratings, then generates the next question. Processing is
// serialized per user id; the question-side and user-side writes are still
// two separate documents, so a failure in between leaves them divergent and
// is only logged.
func SubmitAnswer(c *fiber.Ctx) error {
	type submitRequest struct {
		QuestionID string `json:"questionId" validate:"required"`
		UserAnswer string `json:"userAnswer" validate:"required"`
		IsCorrect  bool   `json:"isCorrect"`
		TimeTaken  int    `json:"timeTaken" validate:"gte=0"`
	}

	var req submitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "invalid request"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": err.Error()})
	}
	questionID, err := primitive.ObjectIDFromHex(req.QuestionID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "invalid question id"})
	}

	sessionUser := c.Locals("user").(models.User)

	userLocks.Lock(sessionUser.ID.Hex())
	defer userLocks.Unlock(sessionUser.ID.Hex())

	// Reload inside the lock; the middleware's copy may predate a
	// submission that just finished.
	user, err := store.GetUserByID(c.Context(), sessionUser.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "database error"})
	}

	exceeded, err := dailyQuotaExceeded(c.Context(), user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "database error"})
	}
	if exceeded {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "error",
			"message": "daily question limit reached",
		})
	}

	question, err := store.GetQuestionByID(c.Context(), questionID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "question not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "database error"})
	}
	subjectCode := question.Subject.SubjectCode

	// Subject stats entry must exist or be creatable before anything is
	// written.
	statsIdx := -1
	for i, stats := range user.SelectedSubjects {
		if stats.SubjectCode == subjectCode {
			statsIdx = i
			break
		}
	}
	if statsIdx == -1 {
		if !user.PremiumAccess.Valid && len(user.SelectedSubjects) >= util.FreeSubjectLimit {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"status":  "error",
				"message": "subject limit reached, upgrade to premium to add more",
			})
		}
		user.SelectedSubjects = append(user.SelectedSubjects, models.SubjectStats{
			SubjectCode: subjectCode,
			SubjectName: question.Subject.Name,
			UserRating:  adaptive.DefaultRating,
			DateAdded:   time.Now(),
		})
		statsIdx = len(user.SelectedSubjects) - 1
	}

	// Question-side update.
	question.TotalAttempts++
	if req.IsCorrect {
		question.TotalCorrect++
	}
	question.AverageTimeTakenInSeconds = adaptive.IncrementalMean(
		question.AverageTimeTakenInSeconds, int64(question.TotalAttempts), float64(req.TimeTaken))
	if question.TotalAttempts >= adaptive.MinAttemptsForDifficulty {
		question.DifficultyRating = adaptive.Difficulty(question.TotalAttempts, question.TotalCorrect)
		percentile, err := store.DifficultyPercentile(c.Context(), subjectCode, question.DifficultyRating)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "database error"})
		}
		question.DifficultyRatingPercentile = percentile
	}
	if err := store.UpdateQuestionStats(c.Context(), question); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "database error"})
	}

	// User-side update: append-only history entry plus recomputed ratings.
	user.QuestionsSolvedDetails = append(user.QuestionsSolvedDetails, models.SolvedQuestion{
		QuestionID:       question.ID,
		SubjectCode:      subjectCode,
		UserAnswer:       req.UserAnswer,
		UserQuestionTime: req.TimeTaken,
		IsCorrect:        req.IsCorrect,
		AttemptedOn:      time.Now(),
	})

	stats := &user.SelectedSubjects[statsIdx]
	stats.UserAttempts++
	if req.IsCorrect {
		stats.UserCorrectAnswers++
	}
	stats.UserRating = adaptive.Rating(stats.UserAttempts, stats.UserCorrectAnswers)
	subjectPct, err := store.SubjectRatingPercentile(c.Context(), subjectCode, stats.UserRating)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "database error"})
	}
	stats.UserPercentile = subjectPct

	totalAttempts, totalCorrect := 0, 0
	for _, s := range user.SelectedSubjects {
		totalAttempts += s.UserAttempts
		totalCorrect += s.UserCorrectAnswers
	}
	user.CumulativeRating = adaptive.Rating(totalAttempts, totalCorrect)
	cumulativePct, err := store.CumulativeRatingPercentile(c.Context(), user.CumulativeRating)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "database error"})
	}
	user.CumulativePercentile = cumulativePct

	if err := store.ReplaceUser(c.Context(), user); err != nil {
		util.Log.Errorw("user update failed after question stats were written",
			"user", user.ID.Hex(), "question", question.ID.Hex(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "database error"})
	}

	// Next question, seeded with the same topic/subtopic at the user's
	// post-update level. A generation failure does not undo the recorded
	// submission.
	subject := models.Subject{SubjectCode: subjectCode, SubjectName: question.Subject.Name}
	next, genErr := generateAndSaveQuestion(c.Context(), subject, question.Level, question.Topic, question.Subtopic, stats.UserPercentile)
	if genErr != nil {
		util.Log.Errorw("next question generation failed", "subject", subjectCode, "error", genErr)
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":       "success",
			"subjectStats": user.SelectedSubjects[statsIdx],
			"nextQuestion": nil,
			"message":      "answer recorded, next question unavailable",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":       "success",
		"subjectStats": user.SelectedSubjects[statsIdx],
		"nextQuestion": next,
	})
}
