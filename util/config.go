package util

import (
	"context"
	"errors"
	"log"
	"os"
	"strconv"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/joho/godotenv"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

var (
	MongoURI    string
	MongoDBName string
	JWTSecret   string

	MailAPIKey  string
	MailFrom    string
	OpenAIKey   string
	OpenAIBase  string
	OpenAIModel string

	ClientID     string
	ClientSecret string
)

// Free-tier limits. Env-overridable so staging can tighten or relax them.
var (
	FreeDailyQuestionLimit  = 10
	FreeSubjectLimit        = 3
	QuestionDifficultyRange = 10.0
)

// LoadConfig populates the package configuration vars. In DEV the values come
// from .env / the process environment; otherwise the secret bundle is fetched
// from GCP Secret Manager as a whitespace-separated payload.
func LoadConfig() error {
	if env := os.Getenv("ENV"); env == "DEV" || env == "DEV_DB" {
		if err := godotenv.Load(); err != nil {
			log.Println("no .env file found, using environment variables")
		}
		MongoURI = getEnv("MONGO_URI", "mongodb://localhost:27017")
		MongoDBName = getEnv("MONGO_DB_NAME", "asterisk_academy")
		JWTSecret = os.Getenv("JWT_SECRET")
		MailAPIKey = os.Getenv("MAIL_API_KEY")
		MailFrom = getEnv("MAIL_FROM", "noreply@asteriskacademy.app")
		OpenAIKey = os.Getenv("OPENAI_API_KEY")
		OpenAIBase = getEnv("OPENAI_BASE_URL", "https://api.openai.com")
		OpenAIModel = getEnv("OPENAI_MODEL", "gpt-4o-mini")
		ClientID = os.Getenv("GOOGLE_CLIENT_ID")
		ClientSecret = os.Getenv("GOOGLE_CLIENT_SECRET")
	} else {
		name := os.Getenv("SECRET_RESOURCE_NAME")
		if name == "" {
			return errors.New("SECRET_RESOURCE_NAME is required outside DEV")
		}
		ctx := context.Background()
		client, err := secretmanager.NewClient(ctx)
		if err != nil {
			return errors.New("couldn't create secret manager client")
		}
		defer client.Close()
		result, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
			Name: name,
		})
		if err != nil {
			return errors.New("couldn't access secret version")
		}
		words := strings.Fields(string(result.Payload.Data))
		if len(words) < 7 {
			return errors.New("secret payload is missing fields")
		}
		ClientID = words[0]
		ClientSecret = words[1]
		MailAPIKey = words[2]
		JWTSecret = words[3]
		OpenAIKey = words[4]
		MongoDBName = words[5]
		MongoURI = strings.Join(words[6:], " ")
		MailFrom = getEnv("MAIL_FROM", "noreply@asteriskacademy.app")
		OpenAIBase = getEnv("OPENAI_BASE_URL", "https://api.openai.com")
		OpenAIModel = getEnv("OPENAI_MODEL", "gpt-4o-mini")
	}
	if JWTSecret == "" {
		return errors.New("JWT secret is not configured")
	}

	FreeDailyQuestionLimit = getEnvInt("FREE_DAILY_QUESTION_LIMIT", FreeDailyQuestionLimit)
	FreeSubjectLimit = getEnvInt("FREE_SUBJECT_LIMIT", FreeSubjectLimit)
	if v := os.Getenv("QUESTION_DIFFICULTY_RANGE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			QuestionDifficultyRange = f
		}
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func GetGoogleConfig() *oauth2.Config {
	var uri string
	if os.Getenv("ENV") == "DEV" {
		uri = "http://localhost:8080/api/auth/google-callback"
	} else {
		uri = getEnv("BASE_URL", "https://api.asteriskacademy.app") + "/api/auth/google-callback"
	}
	return &oauth2.Config{
		RedirectURL:  uri,
		ClientID:     ClientID,
		ClientSecret: ClientSecret,
		Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
		Endpoint:     google.Endpoint,
	}
}
