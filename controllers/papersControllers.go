package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/asterisk-academy/backend/models"
	"github.com/asterisk-academy/backend/store"
)

// scorePaper evaluates a paper against the user's attempt history: one mark
// per question whose latest attempt was correct, total time summed over the
// latest attempts, accuracy over the questions actually attempted.
func scorePaper(paper models.Paper, history []models.SolvedQuestion) (marks, totalTime, attempted int, accuracy float64) {
	latest := make(map[primitive.ObjectID]models.SolvedQuestion)
	for _, attempt := range history {
		prev, ok := latest[attempt.QuestionID]
		if !ok || attempt.AttemptedOn.After(prev.AttemptedOn) {
			latest[attempt.QuestionID] = attempt
		}
	}

	for _, qid := range paper.Questions {
		attempt, ok := latest[qid]
		if !ok {
			continue
		}
		attempted++
		totalTime += attempt.UserQuestionTime
		if attempt.IsCorrect {
			marks++
		}
	}
	if attempted > 0 {
		accuracy = float64(marks) / float64(attempted) * 100
	}
	return marks, totalTime, attempted, accuracy
}

// SubmitMock scores a mock paper from the attempt history and records the
// result.
func SubmitMock(c *fiber.Ctx) error {
	type mockRequest struct {
		PaperCode string `json:"paperCode" validate:"required"`
	}

	var req mockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "invalid request"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": err.Error()})
	}

	paper, err := store.GetPaperByCode(c.Context(), req.PaperCode)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "paper not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "database error"})
	}

	sessionUser := c.Locals("user").(models.User)

	// Score against the history as of now, not the middleware snapshot; a
	// submission finishing mid-request would otherwise be missed.
	userLocks.Lock(sessionUser.ID.Hex())
	defer userLocks.Unlock(sessionUser.ID.Hex())

	user, err := store.GetUserByID(c.Context(), sessionUser.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "database error"})
	}
	marks, totalTime, attempted, accuracy := scorePaper(paper, user.QuestionsSolvedDetails)

	solved := models.SolvedPaper{
		PaperID:       paper.ID,
		PaperCode:     paper.PaperCode,
		UserMarks:     marks,
		UserPaperTime: totalTime,
		Accuracy:      accuracy,
		AttemptedOn:   time.Now(),
	}

	if err := store.AppendSolvedPaper(c.Context(), user.ID, solved); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "database error"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":     "success",
		"paperCode":  paper.PaperCode,
		"marks":      marks,
		"totalMarks": paper.TotalMarks,
		"attempted":  attempted,
		"accuracy":   accuracy,
		"timeTaken":  totalTime,
	})
}
