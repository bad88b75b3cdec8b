package main

import (
	"context"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/asterisk-academy/backend/ai"
	"github.com/asterisk-academy/backend/mail"
	"github.com/asterisk-academy/backend/middlewares"
	"github.com/asterisk-academy/backend/routers"
	"github.com/asterisk-academy/backend/store"
	"github.com/asterisk-academy/backend/subjectdata"
	"github.com/asterisk-academy/backend/util"
)

func main() {
	if err := util.LoadConfig(); err != nil {
		log.Fatal("couldn't load config: ", err)
	}
	if err := util.InitLogger(os.Getenv("ENV")); err != nil {
		log.Fatal("couldn't init logger: ", err)
	}

	if err := util.DBConnectAndPopulateDBVar(); err != nil {
		util.Log.Fatalw("couldn't connect to the database", "error", err)
	}
	util.Log.Info("connected to the database")

	if err := util.EnsureIndexes(); err != nil {
		util.Log.Fatalw("couldn't create indexes", "error", err)
	}
	if err := store.UpsertSubjects(context.Background(), subjectdata.Catalogue()); err != nil {
		util.Log.Fatalw("couldn't seed subjects", "error", err)
	}

	ai.Init(util.OpenAIBase, util.OpenAIKey, util.OpenAIModel)
	mail.Init(util.MailAPIKey, util.MailFrom)

	corsOrigins := os.Getenv("CORS_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = "http://localhost:3000"
	}
	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))
	app.Use(middlewares.RequestLogger())

	routers.SetupRoutes(app)
	app.Use(middlewares.NotFound)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	util.Log.Infow("starting server", "port", port)
	if err := app.Listen(":" + port); err != nil {
		util.Log.Fatalw("server stopped", "error", err)
	}
}
