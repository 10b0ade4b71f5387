// ABOUTME: ValidatedGenerator turns oracle output into schema-valid questions
// ABOUTME: Transport and parse failures retry with backoff; invalid items drop silently
package llm

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/edutera/ragserver/internal/models"
	"github.com/edutera/ragserver/internal/util"
)

// Oracle is the text-completion dependency of the generator
type Oracle interface {
	CompleteJSON(prompt string, temperature float32) (string, error)
}

// GeneratorConfig holds retry and sampling settings
type GeneratorConfig struct {
	MaxAttempts int
	Temperature float32
	BaseDelay   time.Duration
	MinDelay    time.Duration
	MaxDelay    time.Duration
}

// DefaultGeneratorConfig returns the standard retry policy: 3 attempts,
// exponential backoff clamped to 4-10s, temperature 0.7.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		MaxAttempts: 3,
		Temperature: 0.7,
		BaseDelay:   time.Second,
		MinDelay:    4 * time.Second,
		MaxDelay:    10 * time.Second,
	}
}

// ValidatedGenerator calls the oracle and gates every item through schema
// validation. Callers only ever see fully valid questions.
type ValidatedGenerator struct {
	oracle Oracle
	config GeneratorConfig
}

// NewValidatedGenerator creates a generator around an oracle
func NewValidatedGenerator(oracle Oracle, config GeneratorConfig) *ValidatedGenerator {
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 1
	}
	return &ValidatedGenerator{oracle: oracle, config: config}
}

// Generate invokes the oracle with the prompt and returns the validated
// question sequence, which may be empty. Oracle errors and envelope parse
// failures are retried; per-item validation failures are filtered, never
// retried.
func (g *ValidatedGenerator) Generate(prompt string) ([]models.GeneratedQuestion, error) {
	var lastErr error

	for attempt := 1; attempt <= g.config.MaxAttempts; attempt++ {
		if attempt > 1 {
			time.Sleep(util.CalculateBackoff(g.config.BaseDelay, attempt-1, g.config.MinDelay, g.config.MaxDelay))
		}

		raw, err := g.oracle.CompleteJSON(prompt, g.config.Temperature)
		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt, err)
			continue
		}

		items, err := parseEnvelope(raw)
		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt, err)
			continue
		}

		return filterValid(items), nil
	}

	return nil, fmt.Errorf("generation failed after %d attempts: %w", g.config.MaxAttempts, lastErr)
}

// parseEnvelope extracts the raw item list from the oracle's JSON object.
// A missing "questions" key is an empty batch, not an error; output that
// is not a JSON object at all is a retryable parse failure.
func parseEnvelope(raw string) ([]json.RawMessage, error) {
	var envelope struct {
		Questions []json.RawMessage `json:"questions"`
	}

	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		// JSON mode usually returns a bare object, but fenced or
		// prefixed output still parses once the object is recovered.
		extracted := util.ExtractJSON(raw)
		if extracted == "{}" {
			return nil, fmt.Errorf("parsing oracle response: %w", err)
		}
		if err := json.Unmarshal([]byte(extracted), &envelope); err != nil {
			return nil, fmt.Errorf("parsing oracle response: %w", err)
		}
	}

	return envelope.Questions, nil
}

// filterValid folds each raw item through ParseQuestion and keeps the
// successes. The silent-drop policy lives here and nowhere else.
func filterValid(items []json.RawMessage) []models.GeneratedQuestion {
	valid := make([]models.GeneratedQuestion, 0, len(items))
	for _, item := range items {
		q, err := models.ParseQuestion(item)
		if err != nil {
			continue
		}
		valid = append(valid, q)
	}
	return valid
}
