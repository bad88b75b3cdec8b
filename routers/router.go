package routers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/asterisk-academy/backend/controllers"
	"github.com/asterisk-academy/backend/middlewares"
)

func SetupRoutes(app *fiber.App) {

	api := app.Group("/api")
	api.Get("/", controllers.Index)

	//Auth
	auth := api.Group("/auth")
	auth.Post("/signup", controllers.SignUp)
	auth.Post("/verify-email", controllers.VerifyEmail)
	auth.Post("/resend-verification", controllers.ResendVerificationCode)
	auth.Post("/login", controllers.Login)
	auth.Get("/check-username", controllers.CheckUsernameUnique)
	auth.Post("/forgot-password", controllers.ForgotPassword)
	auth.Post("/reset-password", controllers.ResetPassword)
	auth.Get("/google-login", controllers.GoogleLogin)
	auth.Get("/google-callback", controllers.GoogleCallback)

	//Subjects and account
	subjects := api.Group("/subjects")
	subjects.Get("/", controllers.GetAllSubjects)
	subjects.Get("/selected", middlewares.Protected(), controllers.GetSelectedSubjects)

	account := api.Group("/account")
	account.Put("/", middlewares.Protected(), controllers.UpdateAccountDetails)
	account.Put("/access", middlewares.Protected(), controllers.UpdateAccess)
	account.Get("/grader-access", middlewares.Protected(), controllers.GraderAccessCheck)

	//Questions
	questions := api.Group("/questions")
	questions.Post("/serve", middlewares.Protected(), controllers.ServeQuestion)
	questions.Post("/submit", middlewares.Protected(), controllers.SubmitAnswer)
	questions.Post("/", middlewares.Protected(), controllers.CreateQuestion)

	//Grader
	api.Post("/grade-essay", middlewares.Protected(), controllers.GradeEssay)

	//Stats
	stats := api.Group("/stats")
	stats.Get("/", middlewares.Protected(), controllers.GetStats)
	stats.Get("/detailed", middlewares.Protected(), controllers.GetDetailedStats)
	stats.Get("/review", middlewares.Protected(), controllers.ReviewQuestions)

	//Papers
	papers := api.Group("/papers")
	papers.Post("/submit-mock", middlewares.Protected(), controllers.SubmitMock)
}
