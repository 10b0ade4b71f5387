// ABOUTME: Centralized configuration for the RAG service
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the RAG service
type Config struct {
	// Server settings
	Port string

	// Storage settings
	DBPath string

	// OpenAI settings
	OpenAIKey      string
	ChatModel      string
	EmbeddingModel string
	MaxRetries     int
	RetryBaseDelay time.Duration
	RetryMinDelay  time.Duration
	RetryMaxDelay  time.Duration

	// Generation settings
	QuizTemperature float64
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:            getEnv("RAG_PORT", "8000"),
		DBPath:          getEnv("RAG_DB_PATH", "curriculum.db"),
		OpenAIKey:       os.Getenv("OPENAI_API_KEY"),
		ChatModel:       getEnv("RAG_OPENAI_MODEL", "gpt-4o-mini"),
		EmbeddingModel:  getEnv("RAG_EMBEDDING_MODEL", "text-embedding-3-small"),
		MaxRetries:      getEnvInt("RAG_MAX_RETRIES", 3),
		RetryBaseDelay:  getEnvDuration("RAG_RETRY_BASE_DELAY", time.Second),
		RetryMinDelay:   getEnvDuration("RAG_RETRY_MIN_DELAY", 4*time.Second),
		RetryMaxDelay:   getEnvDuration("RAG_RETRY_MAX_DELAY", 10*time.Second),
		QuizTemperature: getEnvFloat("RAG_QUIZ_TEMPERATURE", 0.7),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.MaxRetries < 1 || c.MaxRetries > 10 {
		return fmt.Errorf("RAG_MAX_RETRIES must be 1-10, got %d", c.MaxRetries)
	}
	if c.RetryMinDelay > c.RetryMaxDelay {
		return fmt.Errorf("RAG_RETRY_MIN_DELAY %v exceeds RAG_RETRY_MAX_DELAY %v", c.RetryMinDelay, c.RetryMaxDelay)
	}
	if c.QuizTemperature < 0 || c.QuizTemperature > 2 {
		return fmt.Errorf("RAG_QUIZ_TEMPERATURE must be 0-2, got %f", c.QuizTemperature)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
