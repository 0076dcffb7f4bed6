package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// APIBaseURL is the root of the remote classroom API,
	// e.g. "http://localhost:5000/api".
	APIBaseURL string

	// TokenFile is the path where the access/refresh token pair is
	// persisted between runs.
	TokenFile string

	// ServerPort is the port the local web UI listens on.
	ServerPort int

	// HTTPTimeout bounds every outgoing API call.
	HTTPTimeout time.Duration
}

func LoadConfig() Config {
	if os.Getenv("ENV") == "dev" {
		godotenv.Load()
	}

	return Config{
		APIBaseURL:  getEnv("API_BASE_URL", "http://localhost:5000/api"),
		TokenFile:   getEnv("TOKEN_FILE", defaultTokenFile()),
		ServerPort:  getEnvInt("SERVER_PORT", 3000),
		HTTPTimeout: time.Duration(getEnvInt("HTTP_TIMEOUT_SECONDS", 30)) * time.Second,
	}
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".openclassroom_tokens.json"
	}
	return filepath.Join(home, ".openclassroom", "tokens.json")
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		var value int
		fmt.Sscanf(valueStr, "%d", &value)
		return value
	}
	return defaultValue
}
