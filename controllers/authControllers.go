package controllers

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/asterisk-academy/backend/mail"
	"github.com/asterisk-academy/backend/models"
	"github.com/asterisk-academy/backend/store"
	"github.com/asterisk-academy/backend/util"
)

func Index(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "success", "page": "index page"})
}

const verificationCodeTTL = time.Hour

func setTokenCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     "token",
		Value:    token,
		Expires:  time.Now().Add(72 * time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})
}

func SignUp(c *fiber.Ctx) error {
	type signupRequest struct {
		UserName string `json:"userName" validate:"required,min=3,max=30"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
	}

	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "invalid request"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": err.Error()})
	}

	// A verified account owns its username and email permanently. An
	// unverified leftover from an abandoned signup gets overwritten.
	if existing, err := store.GetUserByUserName(c.Context(), req.UserName); err == nil {
		if existing.IsVerified || existing.Email != req.Email {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "username already taken"})
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "internal server error"})
	}

	code := randomNumericCode()
	now := time.Now()

	existing, err := store.GetUserByEmail(c.Context(), req.Email)
	if err == nil {
		if existing.IsVerified {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "email already registered"})
		}
		existing.UserName = req.UserName
		existing.Password = string(hash)
		existing.PasswordChangedAt = now
		existing.VerificationCode = code
		existing.VerificationCodeExpiry = now.Add(verificationCodeTTL)
		if err := store.ReplaceUser(c.Context(), existing); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "database error"})
		}
	} else if err == mongo.ErrNoDocuments {
		user := models.User{
			UserName:               req.UserName,
			Email:                  req.Email,
			Password:               string(hash),
			PasswordChangedAt:      now,
			VerificationCode:       code,
			VerificationCodeExpiry: now.Add(verificationCodeTTL),
			SelectedSubjects:       []models.SubjectStats{},
			QuestionsSolvedDetails: []models.SolvedQuestion{},
			CreatedAt:              now,
			UpdatedAt:              now,
		}
		if err := store.InsertUser(c.Context(), &user); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "database error"})
		}
	} else {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "database error"})
	}

	if err := mail.Default.SendVerificationEmail(c.Context(), req.Email, req.UserName, code); err != nil {
		util.Log.Errorw("verification email failed", "email", req.Email, "error", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"message": "verification code sent",
	})
}

func VerifyEmail(c *fiber.Ctx) error {
	type verifyRequest struct {
		Email string `json:"email" validate:"required,email"`
		Code  string `json:"code" validate:"required,len=6"`
	}

	var req verifyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "invalid request"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": err.Error()})
	}

	user, err := store.GetUserByEmail(c.Context(), req.Email)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "user not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "database error"})
	}
	if user.IsVerified {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "already verified"})
	}
	if user.VerificationCode != req.Code || time.Now().After(user.VerificationCodeExpiry) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "invalid or expired code"})
	}

	user.IsVerified = true
	user.VerificationCode = ""
	if err := store.ReplaceUser(c.Context(), user); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "database error"})
	}

	token, err := util.JwtGenerate(user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "internal server error"})
	}
	setTokenCookie(c, token)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "success", "token": token})
}

func ResendVerificationCode(c *fiber.Ctx) error {
	type resendRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	var req resendRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "invalid request"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": err.Error()})
	}

	user, err := store.GetUserByEmail(c.Context(), req.Email)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "user not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "database error"})
	}
	if user.IsVerified {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "already verified"})
	}

	user.VerificationCode = randomNumericCode()
	user.VerificationCodeExpiry = time.Now().Add(verificationCodeTTL)
	if err := store.ReplaceUser(c.Context(), user); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "database error"})
	}

	if err := mail.Default.SendVerificationEmail(c.Context(), user.Email, user.UserName, user.VerificationCode); err != nil {
		util.Log.Errorw("verification email failed", "email", user.Email, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "could not send email"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "success", "message": "verification code sent"})
}

func Login(c *fiber.Ctx) error {
	type loginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "invalid request"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": err.Error()})
	}

	user, err := store.GetUserByEmail(c.Context(), req.Email)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "invalid credentials"})
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "invalid credentials"})
	}
	if !user.IsVerified {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"status": "error", "message": "email not verified"})
	}

	token, err := util.JwtGenerate(user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "internal server error"})
	}
	setTokenCookie(c, token)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "success", "token": token})
}

func CheckUsernameUnique(c *fiber.Ctx) error {
	userName := c.Query("userName")
	if userName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "userName is required"})
	}

	_, err := store.GetUserByUserName(c.Context(), userName)
	if err == mongo.ErrNoDocuments {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "success", "unique": true})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "database error"})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "success", "unique": false})
}

func ForgotPassword(c *fiber.Ctx) error {
	type forgotRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	var req forgotRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "invalid request"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": err.Error()})
	}

	user, err := store.GetUserByEmail(c.Context(), req.Email)
	if err != nil {
		// Do not reveal whether the address is registered.
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "success", "message": "if the address is registered, a code has been sent"})
	}

	user.ResetCode = randomNumericCode()
	user.ResetCodeExpiry = time.Now().Add(verificationCodeTTL)
	if err := store.ReplaceUser(c.Context(), user); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "database error"})
	}

	if err := mail.Default.SendPasswordResetEmail(c.Context(), user.Email, user.UserName, user.ResetCode); err != nil {
		util.Log.Errorw("reset email failed", "email", user.Email, "error", err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "success", "message": "if the address is registered, a code has been sent"})
}

func ResetPassword(c *fiber.Ctx) error {
	type resetRequest struct {
		Email       string `json:"email" validate:"required,email"`
		Code        string `json:"code" validate:"required,len=6"`
		NewPassword string `json:"newPassword" validate:"required,min=8"`
	}

	var req resetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "invalid request"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": err.Error()})
	}

	user, err := store.GetUserByEmail(c.Context(), req.Email)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "user not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "database error"})
	}
	if user.ResetCode == "" || user.ResetCode != req.Code || time.Now().After(user.ResetCodeExpiry) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "invalid or expired code"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "internal server error"})
	}
	user.Password = string(hash)
	user.PasswordChangedAt = time.Now()
	user.ResetCode = ""
	if err := store.ReplaceUser(c.Context(), user); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "database error"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "success", "message": "password updated"})
}

func GoogleLogin(c *fiber.Ctx) error {
	url := util.GetGoogleConfig().AuthCodeURL("state-token")
	return c.Redirect(url, fiber.StatusTemporaryRedirect)
}

func GoogleCallback(c *fiber.Ctx) error {
	code := c.Query("code")
	if code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "missing code"})
	}

	conf := util.GetGoogleConfig()
	oauthToken, err := conf.Exchange(context.Background(), code)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "oauth exchange failed"})
	}

	client := conf.Client(context.Background(), oauthToken)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "could not fetch user info"})
	}
	defer resp.Body.Close()

	var info struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil || info.Email == "" {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "could not decode user info"})
	}

	user, err := store.GetUserByEmail(c.Context(), info.Email)
	if err == mongo.ErrNoDocuments {
		now := time.Now()
		user = models.User{
			UserName:               info.Email,
			Email:                  info.Email,
			IsVerified:             true,
			PasswordChangedAt:      now,
			SelectedSubjects:       []models.SubjectStats{},
			QuestionsSolvedDetails: []models.SolvedQuestion{},
			CreatedAt:              now,
			UpdatedAt:              now,
		}
		if err := store.InsertUser(c.Context(), &user); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "database error"})
		}
	} else if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "database error"})
	} else if !user.IsVerified {
		// The Google account proves ownership of the address.
		user.IsVerified = true
		user.VerificationCode = ""
		if err := store.ReplaceUser(c.Context(), user); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "database error"})
		}
	}

	token, err := util.JwtGenerate(user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "internal server error"})
	}
	setTokenCookie(c, token)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "success", "token": token})
}
