// File: internal/config/config.go
package config

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort    string
	Environment   string
	SessionSecret string
	GeminiAPIKey  string
	GeminiModel   string
	AITimeout     time.Duration
}

// Load reads configuration from environment variables or a .env file.
func Load() *Config {
	env := os.Getenv("ENV")
	if strings.ToLower(env) != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found; continuing with environment variables")
		}
	}

	cfg := &Config{
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		Environment:   env,
		SessionSecret: getEnv("SESSION_SECRET", ""),
		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		AITimeout:     time.Duration(getEnvAsInt("AI_TIMEOUT_SECONDS", 60)) * time.Second,
	}

	if cfg.SessionSecret == "" {
		if strings.ToLower(env) == "production" {
			log.Fatal("Missing required production environment variable: SESSION_SECRET")
		}
		// Sessions will not survive a restart, which is fine outside
		// production.
		cfg.SessionSecret = randomSecret()
		log.Println("SESSION_SECRET not set; generated an ephemeral secret")
	}

	return cfg
}

func randomSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		log.Fatalf("could not generate session secret: %v", err)
	}
	return hex.EncodeToString(buf)
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an env var as an integer, with a fallback.
func getEnvAsInt(key string, defaultValue int) int {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(strValue)
	if err != nil {
		log.Printf("Warning: could not parse env var %s as integer. Using default value.", key)
		return defaultValue
	}
	return intValue
}
