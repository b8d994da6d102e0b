package config

import (
	"github.com/joho/godotenv"
	"log"
	"os"
	"strconv"
	"time"
)

type DB struct {
	DbHOST     string
	DbPORT     string
	DbUSER     string
	DbPASSWORD string
	DbNAME     string
	DbSSLMODE  string
}

type Google struct {
	ClientID     string
	ClientSecret string
	CallbackURL  string
}

type Config struct {
	ServerPort         int
	DB                 DB
	Google             Google
	SessionSecret      string
	SessionLifetime    time.Duration
	TokenDuration      time.Duration
	FrontendURL        string
	AllowedEmailDomain string
	MaxUploadSize      int64
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return duration
}

func parseMaxUploadSize(value string) int64 {
	size, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 10 * 1024 * 1024
	}
	return size
}

func LoadDB() DB {
	return DB{
		DbHOST:     getEnv("DB_HOST", "localhost"),
		DbPORT:     getEnv("DB_PORT", "5432"),
		DbUSER:     getEnv("DB_USER", "postgres"),
		DbPASSWORD: getEnv("DB_PASSWORD", "password"),
		DbNAME:     getEnv("DB_NAME", "pratblog"),
		DbSSLMODE:  getEnv("DB_SSLMODE", "disable"),
	}
}

func LoadGoogle() Google {
	return Google{
		ClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		ClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		CallbackURL:  getEnv("GOOGLE_CALLBACK_URL", "http://localhost:3000/auth/google/callback"),
	}
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	return &Config{
		ServerPort:         getEnvAsInt("SERVER_PORT", 3000),
		DB:                 LoadDB(),
		Google:             LoadGoogle(),
		SessionSecret:      getEnv("SESSION_SECRET", ""),
		SessionLifetime:    parseDuration(getEnv("SESSION_LIFETIME", "24h"), 24*time.Hour),
		TokenDuration:      parseDuration(getEnv("TOKEN_DURATION", "24h"), 24*time.Hour),
		FrontendURL:        getEnv("FRONTEND_URL", "http://localhost:8080"),
		AllowedEmailDomain: getEnv("ALLOWED_EMAIL_DOMAIN", "@gmail.com"),
		MaxUploadSize:      parseMaxUploadSize(getEnv("MAX_UPLOAD_SIZE", "10485760")),
	}
}
