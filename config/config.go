package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	Environment string
	JWTSecret   string

	// Database: "sqlite3" or "postgres"
	Database   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBName     string
	DBPassword string
	SQLitePath string

	// Uploads
	UploadRoot       string
	MaxAudioSizeMB   int
	MaxImageSizeMB   int
	PublicUploadBase string

	// Logging
	LogFilePath   string
	LogHMACKey    string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	}

	return &Config{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		JWTSecret:   getEnv("JWT_SECRET", "secret"),

		Database:   getEnv("DATABASE", "sqlite3"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "lufy"),
		DBName:     getEnv("DB_NAME", "lufy"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		SQLitePath: getEnv("SQLITE_PATH", "db/lufy.db"),

		UploadRoot:       getEnv("UPLOAD_ROOT", "public/uploads"),
		MaxAudioSizeMB:   getEnvAsInt("MAX_AUDIO_SIZE_MB", 50),
		MaxImageSizeMB:   getEnvAsInt("MAX_IMAGE_SIZE_MB", 5),
		PublicUploadBase: getEnv("PUBLIC_UPLOAD_BASE", "/uploads"),

		LogFilePath:   getEnv("LOG_FILE_PATH", "/var/log/lufy/app.log"),
		LogHMACKey:    getEnv("LOG_HMAC_KEY", "default-hmac-key-change-in-production"),
		LogMaxSizeMB:  getEnvAsInt("LOG_MAX_SIZE_MB", 100),
		LogMaxBackups: getEnvAsInt("LOG_MAX_BACKUPS", 5),
		LogMaxAgeDays: getEnvAsInt("LOG_MAX_AGE_DAYS", 30),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
