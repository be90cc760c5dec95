package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env                 string
	Port                string
	DatabaseURL         string
	RedisURL            string
	GoogleBooksAPIURL   string // base URL; override in tests, default public API
	GoogleBooksAPIKey   string
	DefaultBookLanguage string // language assigned to lookup-built books when the API omits it
	FrontendURLEndsWith string
	DevPassword         string
	SendinblueAPIKey    string // SENDINBLUE_API_KEY for notification emails (Brevo)
	MailFrom            string
	HealthAdminKey      string
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	port := viper.GetString("PORT")
	if port == "" {
		port = "8080"
	}
	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	dbURL := viper.GetString("DATABASE_URL_DEV")
	if env == "production" {
		dbURL = viper.GetString("DATABASE_URL_PROD")
	} else if env == "test" {
		dbURL = viper.GetString("DATABASE_URL_TEST")
	}
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}

	lang := viper.GetString("DEFAULT_BOOK_LANGUAGE")
	if lang == "" {
		lang = "fr"
	}
	booksURL := viper.GetString("GOOGLE_BOOKS_API_URL")
	if booksURL == "" {
		booksURL = "https://www.googleapis.com/books/v1"
	}

	return &Config{
		Env:                 env,
		Port:                port,
		DatabaseURL:         dbURL,
		RedisURL:            viper.GetString("REDIS_URL"),
		GoogleBooksAPIURL:   booksURL,
		GoogleBooksAPIKey:   viper.GetString("GOOGLE_BOOKS_API_KEY"),
		DefaultBookLanguage: lang,
		FrontendURLEndsWith: viper.GetString("FRONTEND_URL_ENDS_WITH"),
		DevPassword:         viper.GetString("DEV_PASSWORD"),
		SendinblueAPIKey:    viper.GetString("SENDINBLUE_API_KEY"),
		MailFrom:            viper.GetString("MAIL_FROM"),
		HealthAdminKey:      viper.GetString("HEALTH_ADMIN_KEY"),
	}, nil
}
