package server

import (
	"os"
	"strconv"
	"strings"
)

// Config holds the HTTP server settings read from the environment
type Config struct {
	Addr           string
	CORSOrigins    []string
	MaxBodyBytes   int64
	LogLevel       string
	RegulatoryFile string
}

// LoadConfig reads the server configuration from environment variables
func LoadConfig() Config {
	return Config{
		Addr:           getEnv("RESCISAO_ADDR", ":8080"),
		CORSOrigins:    splitList(getEnv("RESCISAO_CORS_ORIGINS", "http://localhost:5173")),
		MaxBodyBytes:   int64(getEnvInt("RESCISAO_MAX_BODY_BYTES", 1<<20)),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		RegulatoryFile: getEnv("RESCISAO_REGULATORY_FILE", ""),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
