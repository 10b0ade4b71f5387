// ABOUTME: Prompt rendering for quiz generation, tutoring, and adaptive explanations
// ABOUTME: Encodes the JSON contract the validated generator checks on the way back
package llm

import (
	"fmt"
	"strings"

	"github.com/edutera/ragserver/internal/models"
)

const (
	// QuizContextCharLimit bounds the context embedded in a quiz prompt
	QuizContextCharLimit = 2500
	// TutorContextCharLimit bounds the context embedded in a tutor prompt
	TutorContextCharLimit = 2000
	// HistoryTurnLimit is how many trailing conversation turns are kept
	HistoryTurnLimit = 3
	// DefaultDifficultyCode applies when a tier name is unrecognized
	DefaultDifficultyCode = 2
)

// DifficultyTiers are the fixed tiers a quiz spans, in generation order
var DifficultyTiers = []string{"easy", "medium", "hard"}

var difficultyCodes = map[string]int{
	"easy":   1,
	"medium": 2,
	"hard":   3,
}

// DifficultyCode maps a tier name to its numeric code
func DifficultyCode(tier string) int {
	if code, ok := difficultyCodes[tier]; ok {
		return code
	}
	return DefaultDifficultyCode
}

// TruncateContext keeps the first limit characters of text. Any remainder
// is silently dropped.
func TruncateContext(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}

// BuildQuizPrompt renders the quiz generation request. The oracle must
// answer with a single JSON object holding a "questions" array whose items
// carry exactly the eight GeneratedQuestion fields: English keys, Arabic
// values.
func BuildQuizPrompt(contextText string, skill models.SkillContext, numQuestions int, difficulty string) string {
	diffNum := DifficultyCode(difficulty)

	return fmt.Sprintf(`You are an expert Math Teacher specialized in creating exam questions.

**Task:** Create %d questions with '%s' difficulty.

**Source Material (Context):**
%s

**Target Skill:**
- ID: %d
- Name: %s

**CRITICAL JSON REQUIREMENTS:**
You must output a strictly valid JSON object.
Each question object MUST have exactly these 8 fields:

{
  "question_text": "The question text in ARABIC",
  "correct_answer": 0, // Integer index (0-3) of the correct option
  "options": ["Option 1 in Arabic", "Option 2 in Arabic", "Option 3", "Option 4"],
  "hint": "A helpful hint in Arabic",
  "bottom_hint": "The answer revealer in Arabic",
  "difficulty": %d,
  "type": "multiple_choice", // One of: "multiple_choice", "true_false", "fill_in_blank"
  "skill_id": %d
}

**Rules:**
1. Mix question types: "multiple_choice", "true_false", "fill_in_blank".
2. JSON keys must be in English.
3. Values (Text) must be in ARABIC.
4. If the context contains examples, try to create similar questions but with different numbers.
5. Return ONLY the JSON object.

**Output Format:**
{
  "questions": [ ... ]
}
`, numQuestions, difficulty,
		TruncateContext(contextText, QuizContextCharLimit),
		skill.SkillID, skill.SkillName, diffNum, skill.SkillID)
}

// BuildTutorMessages renders the role-tagged message sequence for a
// grounded tutoring answer. History is truncated to the most recent
// HistoryTurnLimit turns; the student question goes last.
func BuildTutorMessages(contextText, question string, history []models.ConversationTurn) []models.ConversationTurn {
	systemPrompt := fmt.Sprintf(`You are an AI Math Tutor.
Context from curriculum: %s

Instructions:
- Answer the student's question in Arabic based ONLY on the context.
- Be helpful and encouraging.
`, TruncateContext(contextText, TutorContextCharLimit))

	messages := []models.ConversationTurn{
		{Role: "system", Content: systemPrompt},
	}

	if len(history) > HistoryTurnLimit {
		history = history[len(history)-HistoryTurnLimit:]
	}
	for _, turn := range history {
		role := turn.Role
		if role == "" {
			role = "user"
		}
		messages = append(messages, models.ConversationTurn{Role: role, Content: turn.Content})
	}

	return append(messages, models.ConversationTurn{Role: "user", Content: question})
}

// ExplanationStyle picks how a concept is explained based on mastery.
// Low mastery selects the simplified style.
func ExplanationStyle(mastery float64) string {
	if mastery < 0.4 {
		return "Explain simply with daily life examples."
	}
	return "Explain normally."
}

// BuildExplanationPrompt renders an adaptive concept explanation request
func BuildExplanationPrompt(concept string, mastery float64, contextText string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Role: Tutor. Concept: %s. Student Level: %.2f. Style: %s. Context: %s. Explain in Arabic.",
		concept, mastery, ExplanationStyle(mastery), contextText)
	return b.String()
}
