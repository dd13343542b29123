package config

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

type S3Config struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Region          string
}

type Config struct {
	DBURL       string
	Port        string
	Environment string
	CorsConfig  cors.Options
	S3          S3Config
}

// Load reads the environment (optionally seeded from an env file) into a
// Config. The value is passed down from main; nothing in this package holds
// it globally.
func Load() Config {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("No", envFile, "file found")
	}

	return Config{
		DBURL:       getEnv("DB_URL", ""),
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENV", "development"),
		CorsConfig:  CorsConfig(),
		S3: S3Config{
			Endpoint:        getEnv("S3_ENDPOINT", ""),
			AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
			BucketName:      getEnv("S3_BUCKET_NAME", ""),
			Region:          getEnv("S3_REGION", "auto"),
		},
	}
}

// Complete reports whether the store configuration is usable. The upload
// endpoint refuses work with a 500 when it is not, instead of failing
// half-way through a multipart body.
func (s S3Config) Complete() bool {
	return s.Endpoint != "" && s.AccessKeyID != "" && s.SecretAccessKey != "" && s.BucketName != ""
}

// Gets the env by key or fallbacks
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func CorsConfig() cors.Options {
	return cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "https://lockdrop.vercel.app"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}
}
