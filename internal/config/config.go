package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost              string
	DBUser              string
	DBPassword          string
	DBName              string
	DBPort              string
	AppPort             string
	AppEnv              string
	FrontendURL         string
	PublicOrigin        string
	UploadDir           string
	StripeSecretKey     string
	StripeCallbackToken string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:              os.Getenv("DB_HOST"),
		DBUser:              os.Getenv("DB_USER"),
		DBPassword:          os.Getenv("DB_PASSWORD"),
		DBName:              os.Getenv("DB_NAME"),
		DBPort:              os.Getenv("DB_PORT"),
		AppPort:             os.Getenv("APP_PORT"),
		AppEnv:              os.Getenv("APP_ENV"),
		FrontendURL:         os.Getenv("FRONTEND_URL"),
		PublicOrigin:        os.Getenv("PUBLIC_ORIGIN"),
		UploadDir:           os.Getenv("UPLOAD_DIR"),
		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeCallbackToken: os.Getenv("STRIPE_WEBHOOK_TOKEN"),
	}

	if cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	if cfg.AppPort == "" {
		cfg.AppPort = "4000"
	}
	if cfg.FrontendURL == "" {
		cfg.FrontendURL = "http://localhost:5173"
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "./uploads"
	}

	return cfg
}
