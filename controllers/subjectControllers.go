package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/asterisk-academy/backend/adaptive"
	"github.com/asterisk-academy/backend/models"
	"github.com/asterisk-academy/backend/store"
	"github.com/asterisk-academy/backend/util"
)

func GetAllSubjects(c *fiber.Ctx) error {
	subjects, err := store.ListSubjects(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "database error"})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "success", "subjects": subjects})
}

func GetSelectedSubjects(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":           "success",
		"selectedSubjects": user.SelectedSubjects,
	})
}

// UpdateAccountDetails handles subject personalization and password changes.
// Subject additions respect the free-tier count limit; removals respect the
// cooldown window.
func UpdateAccountDetails(c *fiber.Ctx) error {
	type updateRequest struct {
		SelectedSubjects *[]string `json:"selectedSubjects"`
		Password         string    `json:"password"`
	}

	var req updateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "invalid request"})
	}

	sessionUser := c.Locals("user").(models.User)

	// The subject list is reconciled against the stored one, and submissions
	// append to it, so the read and the write stay under the per-user lock.
	userLocks.Lock(sessionUser.ID.Hex())
	defer userLocks.Unlock(sessionUser.ID.Hex())

	user, err := store.GetUserByID(c.Context(), sessionUser.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "database error"})
	}
	now := time.Now()
	premium := user.PremiumAccess.Valid

	var reconciled []models.SubjectStats
	if req.SelectedSubjects != nil {
		requested := make(map[string]bool, len(*req.SelectedSubjects))
		for _, code := range *req.SelectedSubjects {
			requested[code] = true
		}

		// Keep what survives, enforcing the removal cooldown.
		var kept []models.SubjectStats
		for _, stats := range user.SelectedSubjects {
			if requested[stats.SubjectCode] {
				kept = append(kept, stats)
				delete(requested, stats.SubjectCode)
				continue
			}
			if !canRemoveSubject(stats.DateAdded, now, premium) {
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
					"status":  "error",
					"message": "subject " + stats.SubjectCode + " cannot be removed yet",
				})
			}
		}

		// Additions: whatever remains in the requested set.
		for code := range requested {
			if !premium && len(kept) >= util.FreeSubjectLimit {
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
					"status":  "error",
					"message": "subject limit reached, upgrade to premium to add more",
				})
			}
			subject, err := store.GetSubjectByCode(c.Context(), code)
			if err != nil {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "unknown subject " + code})
			}
			kept = append(kept, models.SubjectStats{
				SubjectCode: subject.SubjectCode,
				SubjectName: subject.SubjectName,
				UserRating:  adaptive.DefaultRating,
				DateAdded:   now,
			})
		}
		if kept == nil {
			kept = []models.SubjectStats{}
		}
		reconciled = kept
		user.SelectedSubjects = kept
	}

	passwordHash := ""
	if req.Password != "" {
		if len(req.Password) < 8 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "password too short"})
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "internal server error"})
		}
		passwordHash = string(hash)
	}

	if err := store.SetAccountDetails(c.Context(), user.ID, reconciled, passwordHash, now); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "database error"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":           "success",
		"selectedSubjects": user.SelectedSubjects,
	})
}
