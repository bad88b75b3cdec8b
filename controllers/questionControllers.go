package controllers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/asterisk-academy/backend/adaptive"
	"github.com/asterisk-academy/backend/ai"
	"github.com/asterisk-academy/backend/models"
	"github.com/asterisk-academy/backend/store"
	"github.com/asterisk-academy/backend/util"
)

// subjectPercentile resolves the user's current percentile for a subject,
// defaulting to the neutral midpoint when the subject has no prior stats.
func subjectPercentile(user models.User, subjectCode string) float64 {
	for _, stats := range user.SelectedSubjects {
		if stats.SubjectCode == subjectCode && stats.UserAttempts > 0 {
			return stats.UserPercentile
		}
	}
	return adaptive.DefaultRating
}

// dailyQuotaExceeded applies the free-tier daily attempt cap. Premium users
// are never limited.
func dailyQuotaExceeded(ctx context.Context, user models.User) (bool, error) {
	if user.PremiumAccess.Valid {
		return false, nil
	}
	count, err := store.DailyAttemptCount(ctx, user.ID, startOfDay(time.Now()))
	if err != nil {
		return false, err
	}
	return quotaExhausted(user.PremiumAccess.Valid, count, util.FreeDailyQuestionLimit), nil
}

func solvedQuestionIDs(user models.User) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(user.QuestionsSolvedDetails))
	for _, attempt := range user.QuestionsSolvedDetails {
		ids = append(ids, attempt.QuestionID)
	}
	return ids
}

// ServeQuestion picks the next question for the user: an unseen question
// within the difficulty band around the user's percentile, or a freshly
// generated one when the corpus has no match.
func ServeQuestion(c *fiber.Ctx) error {
	type serveRequest struct {
		SubjectCode string   `json:"subjectCode" validate:"required"`
		Level       string   `json:"level"`
		Topics      []string `json:"topics"`
		Subtopics   []string `json:"subtopics"`
	}

	var req serveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "invalid request"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "subjectCode is required"})
	}

	user := c.Locals("user").(models.User)

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

	subject, err := store.GetSubjectByCode(c.Context(), req.SubjectCode)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "subject not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "database error"})
	}

	percentile := subjectPercentile(user, req.SubjectCode)
	lo, hi := adaptive.Band(percentile, util.QuestionDifficultyRange)

	// One subtopic is drawn at random per request even when several were
	// asked for; questions come one subtopic at a time.
	subtopic := store.PickSubtopic(req.Subtopics)

	filter := store.QuestionFilter{
		SubjectCode:   req.SubjectCode,
		Level:         req.Level,
		Topics:        req.Topics,
		Subtopic:      subtopic,
		ExcludeIDs:    solvedQuestionIDs(user),
		HasBand:       true,
		MinPercentile: lo,
		MaxPercentile: hi,
	}

	question, err := store.SampleQuestion(c.Context(), filter)
	if err == mongo.ErrNoDocuments {
		topic := ""
		if len(req.Topics) > 0 {
			topic = req.Topics[0]
		}
		question, err = generateAndSaveQuestion(c.Context(), subject, req.Level, topic, subtopic, percentile)
		if err != nil {
			util.Log.Errorw("question generation failed", "subject", req.SubjectCode, "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": err.Error()})
		}
	} else if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "database error"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "success", "question": question})
}

// generateAndSaveQuestion asks the model for a new question at the target
// difficulty and persists it with zeroed attempt stats. Nothing is written
// when generation fails.
func generateAndSaveQuestion(ctx context.Context, subject models.Subject, level, topic, subtopic string, difficulty float64) (models.Question, error) {
	mcq, err := ai.Default.GenerateQuestion(ctx, subject.SubjectName, level, topic, subtopic, difficulty)
	if err != nil {
		return models.Question{}, err
	}

	options := make([]models.Option, 0, len(mcq.Options))
	for _, opt := range mcq.Options {
		options = append(options, models.Option{Option: opt.Option, Text: opt.Text})
	}

	percentile, err := store.DifficultyPercentile(ctx, subject.SubjectCode, difficulty)
	if err != nil {
		return models.Question{}, err
	}

	question := models.Question{
		Subject:                    models.SubjectRef{Name: subject.SubjectName, SubjectCode: subject.SubjectCode},
		Level:                      level,
		Topic:                      topic,
		Subtopic:                   subtopic,
		QuestionText:               mcq.QuestionText,
		Options:                    options,
		CorrectOption:              models.Option{Option: mcq.CorrectOption.Option, Text: mcq.CorrectOption.Text},
		Explanation:                mcq.Explanation,
		DifficultyRating:           difficulty,
		DifficultyRatingPercentile: percentile,
	}
	if err := store.InsertQuestion(ctx, &question); err != nil {
		return models.Question{}, err
	}
	return question, nil
}

// CreateQuestion seeds one question directly, for admin/import tooling.
func CreateQuestion(c *fiber.Ctx) error {
	type createRequest struct {
		SubjectCode   string          `json:"subjectCode" validate:"required"`
		Level         string          `json:"level" validate:"required,oneof=IGCSE AS-Level A-Level"`
		Topic         string          `json:"topic" validate:"required"`
		Subtopic      string          `json:"subtopic" validate:"required"`
		QuestionText  string          `json:"questionText" validate:"required"`
		Options       []models.Option `json:"options" validate:"required,len=4"`
		CorrectOption models.Option   `json:"correctOption" validate:"required"`
		Explanation   string          `json:"explanation"`
	}

	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "invalid request"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": err.Error()})
	}

	found := false
	for _, opt := range req.Options {
		if opt.Option == req.CorrectOption.Option {
			found = true
			break
		}
	}
	if !found {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "correct option not among options"})
	}

	subject, err := store.GetSubjectByCode(c.Context(), req.SubjectCode)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "subject not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "database error"})
	}

	question := models.Question{
		Subject:          models.SubjectRef{Name: subject.SubjectName, SubjectCode: subject.SubjectCode},
		Level:            req.Level,
		Topic:            req.Topic,
		Subtopic:         req.Subtopic,
		QuestionText:     req.QuestionText,
		Options:          req.Options,
		CorrectOption:    req.CorrectOption,
		Explanation:      req.Explanation,
		DifficultyRating: adaptive.DefaultRating,
	}

	percentile, err := store.DifficultyPercentile(c.Context(), subject.SubjectCode, question.DifficultyRating)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "database error"})
	}
	question.DifficultyRatingPercentile = percentile

	if err := store.InsertQuestion(c.Context(), &question); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "database error"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "question": question})
}
