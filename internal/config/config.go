// internal/config/config.go
package config

import (
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	Environment    string
	LogLevel       string
	DatabaseURL    string
	AllowedOrigins []string
	SessionSecret  string

	AWSRegion       string
	AWSAccessKeyID  string
	AWSSecretKey    string
	S3Bucket        string
	S3PublicBaseURL string
}

// Load reads an optional .env file and then the process environment.
// Variables already present in the environment win over the file.
func Load() *Config {
	_ = godotenv.Load()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		host := getEnv("PSQL_HOST", "localhost")
		port := getEnv("PSQL_PORT", "5432")
		user := getEnv("PSQL_USER", "postgres")
		password := getEnv("PSQL_PASSWORD", "postgres")
		dbName := getEnv("PSQL_DB_NAME", "fyyur")

		u := &url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(user, password),
			Host:   host + ":" + port,
			Path:   dbName,
		}
		q := u.Query()
		q.Set("sslmode", "disable")
		u.RawQuery = q.Encode()
		databaseURL = u.String()
	}

	return &Config{
		Port:           getEnv("PORT", "5000"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		DatabaseURL:    databaseURL,
		AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		SessionSecret:  os.Getenv("SESSION_SECRET"),

		AWSRegion:       os.Getenv("AWS_REGION"),
		AWSAccessKeyID:  os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretKey:    os.Getenv("AWS_SECRET_ACCESS_KEY"),
		S3Bucket:        os.Getenv("S3_BUCKET_NAME"),
		S3PublicBaseURL: os.Getenv("S3_PUBLIC_BASE_URL"),
	}
}

// ImageUploadsEnabled reports whether an S3 bucket has been configured.
func (c *Config) ImageUploadsEnabled() bool {
	return c.S3Bucket != ""
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
