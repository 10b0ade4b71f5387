// ABOUTME: Tests for centralized configuration system
// ABOUTME: Verifies environment variable parsing and validation
package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != "8000" {
		t.Errorf("Port = %s, want 8000", cfg.Port)
	}
	if cfg.DBPath != "curriculum.db" {
		t.Errorf("DBPath = %s, want curriculum.db", cfg.DBPath)
	}
	if cfg.ChatModel != "gpt-4o-mini" {
		t.Errorf("ChatModel = %s, want gpt-4o-mini", cfg.ChatModel)
	}
	if cfg.EmbeddingModel != "text-embedding-3-small" {
		t.Errorf("EmbeddingModel = %s, want text-embedding-3-small", cfg.EmbeddingModel)
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", cfg.MaxRetries)
	}
	if cfg.RetryBaseDelay != time.Second {
		t.Errorf("RetryBaseDelay = %v, want 1s", cfg.RetryBaseDelay)
	}
	if cfg.RetryMinDelay != 4*time.Second {
		t.Errorf("RetryMinDelay = %v, want 4s", cfg.RetryMinDelay)
	}
	if cfg.RetryMaxDelay != 10*time.Second {
		t.Errorf("RetryMaxDelay = %v, want 10s", cfg.RetryMaxDelay)
	}
	if cfg.QuizTemperature != 0.7 {
		t.Errorf("QuizTemperature = %f, want 0.7", cfg.QuizTemperature)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	os.Clearenv()
	os.Setenv("RAG_PORT", "9000")
	os.Setenv("RAG_DB_PATH", "/tmp/test.db")
	os.Setenv("OPENAI_API_KEY", "test-key")
	os.Setenv("RAG_OPENAI_MODEL", "gpt-4")
	os.Setenv("RAG_MAX_RETRIES", "5")
	os.Setenv("RAG_RETRY_MIN_DELAY", "2s")
	os.Setenv("RAG_RETRY_MAX_DELAY", "8s")
	os.Setenv("RAG_QUIZ_TEMPERATURE", "0.3")
	defer os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != "9000" {
		t.Errorf("Port = %s, want 9000", cfg.Port)
	}
	if cfg.DBPath != "/tmp/test.db" {
		t.Errorf("DBPath = %s, want /tmp/test.db", cfg.DBPath)
	}
	if cfg.OpenAIKey != "test-key" {
		t.Errorf("OpenAIKey = %s, want test-key", cfg.OpenAIKey)
	}
	if cfg.ChatModel != "gpt-4" {
		t.Errorf("ChatModel = %s, want gpt-4", cfg.ChatModel)
	}
	if cfg.MaxRetries != 5 {
		t.Errorf("MaxRetries = %d, want 5", cfg.MaxRetries)
	}
	if cfg.RetryMinDelay != 2*time.Second {
		t.Errorf("RetryMinDelay = %v, want 2s", cfg.RetryMinDelay)
	}
	if cfg.QuizTemperature != 0.3 {
		t.Errorf("QuizTemperature = %f, want 0.3", cfg.QuizTemperature)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"retries too high", "RAG_MAX_RETRIES", "11"},
		{"retries zero", "RAG_MAX_RETRIES", "0"},
		{"temperature negative", "RAG_QUIZ_TEMPERATURE", "-0.5"},
		{"temperature too high", "RAG_QUIZ_TEMPERATURE", "3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			os.Setenv(tt.key, tt.value)
			defer os.Clearenv()

			if _, err := Load(); err == nil {
				t.Errorf("expected validation error for %s=%s", tt.key, tt.value)
			}
		})
	}
}

func TestLoad_MinDelayAboveMaxDelayRejected(t *testing.T) {
	os.Clearenv()
	os.Setenv("RAG_RETRY_MIN_DELAY", "20s")
	os.Setenv("RAG_RETRY_MAX_DELAY", "5s")
	defer os.Clearenv()

	if _, err := Load(); err == nil {
		t.Error("expected validation error when min delay exceeds max delay")
	}
}

func TestLoad_MalformedValuesFallBackToDefaults(t *testing.T) {
	os.Clearenv()
	os.Setenv("RAG_MAX_RETRIES", "not-a-number")
	os.Setenv("RAG_RETRY_BASE_DELAY", "soon")
	defer os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want default 3", cfg.MaxRetries)
	}
	if cfg.RetryBaseDelay != time.Second {
		t.Errorf("RetryBaseDelay = %v, want default 1s", cfg.RetryBaseDelay)
	}
}
