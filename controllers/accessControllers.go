package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/asterisk-academy/backend/models"
	"github.com/asterisk-academy/backend/store"
)

// essaysGradedSince counts grader runs from the given instant.
func essaysGradedSince(user models.User, since time.Time) int {
	count := 0
	for _, essay := range user.EssaysGraded {
		if !essay.Date.Before(since) {
			count++
		}
	}
	return count
}

// graderAccessState evaluates the grader gate: access valid and unexpired,
// weekly essay budget not exhausted.
func graderAccessState(user models.User, now time.Time) (allowed bool, remaining int, reason string) {
	access := user.GraderAccess
	if !access.Valid {
		return false, 0, "no grader access"
	}
	if access.AccessTill != nil && now.After(*access.AccessTill) {
		return false, 0, "grader access expired"
	}
	used := essaysGradedSince(user, startOfWeek(now))
	remaining = access.WeeklyEssayLimit - used
	if remaining <= 0 {
		return false, 0, "weekly essay limit reached"
	}
	return true, remaining, ""
}

// UpdateAccess sets the premium and grader entitlements on the session user.
func UpdateAccess(c *fiber.Ctx) error {
	type accessRequest struct {
		PremiumAccess *models.Access       `json:"premiumAccess"`
		GraderAccess  *models.GraderAccess `json:"graderAccess"`
	}

	var req accessRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "invalid request"})
	}
	if req.PremiumAccess == nil && req.GraderAccess == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "nothing to update"})
	}

	user := c.Locals("user").(models.User)
	if req.PremiumAccess != nil {
		user.PremiumAccess = *req.PremiumAccess
	}
	if req.GraderAccess != nil {
		user.GraderAccess = *req.GraderAccess
	}

	// Only the entitlement fields are written; the rest of the document,
	// attempt history included, stays whatever a concurrent request made it.
	if err := store.SetUserAccess(c.Context(), user.ID, req.PremiumAccess, req.GraderAccess); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "database error"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":        "success",
		"premiumAccess": user.PremiumAccess,
		"graderAccess":  user.GraderAccess,
	})
}

// GraderAccessCheck reports whether the user can grade an essay right now.
func GraderAccessCheck(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)
	allowed, remaining, reason := graderAccessState(user, time.Now())

	resp := fiber.Map{
		"status":          "success",
		"allowed":         allowed,
		"essaysRemaining": remaining,
	}
	if reason != "" {
		resp["reason"] = reason
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}
