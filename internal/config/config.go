package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	APIURL         string
	APIToken       string
	RequestTimeout time.Duration
	AlertTTL       time.Duration
	LogLevel       string
	FakeAPIAddr    string
	JWTSecret      string
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = Config{
		APIURL:         strings.TrimRight(getEnvOrDefault("API_URL", "http://localhost:8080/api"), "/"),
		APIToken:       getEnvOrDefault("API_TOKEN", ""),
		RequestTimeout: getDurationEnv("REQUEST_TIMEOUT", 10, time.Second),
		AlertTTL:       getDurationEnv("ALERT_TTL", 3000, time.Millisecond),
		LogLevel:       getEnvOrDefault("LOG_LEVEL", "info"),
		FakeAPIAddr:    getEnvOrDefault("FAKE_API_ADDR", ":8080"),
		JWTSecret:      getEnvOrDefault("JWT_SECRET", "dev-secret"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}
