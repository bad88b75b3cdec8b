package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/asterisk-academy/backend/ai"
	"github.com/asterisk-academy/backend/models"
	"github.com/asterisk-academy/backend/store"
	"github.com/asterisk-academy/backend/util"
)

// GradeEssay runs the LLM grader on a submitted essay and records the result
// against the user's weekly allowance.
func GradeEssay(c *fiber.Ctx) error {
	type gradeRequest struct {
		Question     string `json:"question" validate:"required"`
		SubjectName  string `json:"subjectName" validate:"required"`
		SubjectCode  string `json:"subjectCode" validate:"required"`
		QuestionType string `json:"questionType"`
		UserEssay    string `json:"userEssay" validate:"required"`
		TotalMarks   int    `json:"totalMarks" validate:"gte=0"`
	}

	var req gradeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "invalid request"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": err.Error()})
	}

	sessionUser := c.Locals("user").(models.User)

	// The weekly gate counts essays already recorded, so the count and the
	// append must happen under the same per-user lock on a fresh document.
	userLocks.Lock(sessionUser.ID.Hex())
	defer userLocks.Unlock(sessionUser.ID.Hex())

	user, err := store.GetUserByID(c.Context(), sessionUser.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "database error"})
	}
	now := time.Now()

	allowed, _, reason := graderAccessState(user, now)
	if !allowed {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"status": "error", "message": reason})
	}

	grade, err := ai.Default.GradeEssay(c.Context(), req.SubjectName, req.Question, req.UserEssay)
	if err != nil {
		util.Log.Errorw("essay grading failed", "subject", req.SubjectCode, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": err.Error()})
	}

	graded := models.GradedEssay{
		EssayID:      uuid.NewString(),
		Date:         now,
		Question:     req.Question,
		SubjectName:  req.SubjectName,
		SubjectCode:  req.SubjectCode,
		QuestionType: req.QuestionType,
		UserEssay:    req.UserEssay,
		TotalMarks:   req.TotalMarks,
		Grade:        grade.Grade,
		Feedback:     grade.Feedback,
	}
	if err := store.AppendGradedEssay(c.Context(), user.ID, graded); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "database error"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":   "success",
		"essayId":  graded.EssayID,
		"grade":    graded.Grade,
		"feedback": graded.Feedback,
	})
}
