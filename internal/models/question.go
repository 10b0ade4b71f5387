// ABOUTME: GeneratedQuestion and the validating parser that gates oracle output
// ABOUTME: Invalid candidates never become typed values; negative answers clamp to 0
package models

import (
	"encoding/json"
	"fmt"
)

// QuestionType enumerates the supported question formats
type QuestionType string

const (
	QuestionTypeMultipleChoice QuestionType = "multiple_choice"
	QuestionTypeTrueFalse      QuestionType = "true_false"
	QuestionTypeFillInBlank    QuestionType = "fill_in_blank"
)

// OptionCount is the number of answer options every question carries
const OptionCount = 4

// GeneratedQuestion is a fully validated quiz question. Instances exist
// only as the output of ParseQuestion; there is no invalid state.
type GeneratedQuestion struct {
	QuestionText  string       `json:"question_text"`
	CorrectAnswer int          `json:"correct_answer"`
	Options       []string     `json:"options"`
	Hint          string       `json:"hint"`
	BottomHint    string       `json:"bottom_hint"`
	Difficulty    int          `json:"difficulty"`
	Type          QuestionType `json:"type"`
	SkillID       int          `json:"skill_id"`
}

// rawQuestion uses pointers so missing fields are distinguishable from
// zero values during coercion.
type rawQuestion struct {
	QuestionText  *string  `json:"question_text"`
	CorrectAnswer *int     `json:"correct_answer"`
	Options       []string `json:"options"`
	Hint          *string  `json:"hint"`
	BottomHint    *string  `json:"bottom_hint"`
	Difficulty    *int     `json:"difficulty"`
	Type          *string  `json:"type"`
	SkillID       *int     `json:"skill_id"`
}

// ParseQuestion coerces one raw oracle item into a GeneratedQuestion.
// A wrong-typed, missing, or out-of-enum field fails coercion; a negative
// correct_answer is rewritten to 0 rather than rejected.
func ParseQuestion(data json.RawMessage) (GeneratedQuestion, error) {
	var raw rawQuestion
	if err := json.Unmarshal(data, &raw); err != nil {
		return GeneratedQuestion{}, fmt.Errorf("malformed question item: %w", err)
	}

	switch {
	case raw.QuestionText == nil:
		return GeneratedQuestion{}, fmt.Errorf("missing field question_text")
	case raw.CorrectAnswer == nil:
		return GeneratedQuestion{}, fmt.Errorf("missing field correct_answer")
	case raw.Options == nil:
		return GeneratedQuestion{}, fmt.Errorf("missing field options")
	case raw.Hint == nil:
		return GeneratedQuestion{}, fmt.Errorf("missing field hint")
	case raw.BottomHint == nil:
		return GeneratedQuestion{}, fmt.Errorf("missing field bottom_hint")
	case raw.Difficulty == nil:
		return GeneratedQuestion{}, fmt.Errorf("missing field difficulty")
	case raw.Type == nil:
		return GeneratedQuestion{}, fmt.Errorf("missing field type")
	case raw.SkillID == nil:
		return GeneratedQuestion{}, fmt.Errorf("missing field skill_id")
	}

	if len(raw.Options) != OptionCount {
		return GeneratedQuestion{}, fmt.Errorf("expected %d options, got %d", OptionCount, len(raw.Options))
	}

	if *raw.Difficulty < 1 || *raw.Difficulty > 3 {
		return GeneratedQuestion{}, fmt.Errorf("difficulty %d out of range 1-3", *raw.Difficulty)
	}

	qType := QuestionType(*raw.Type)
	switch qType {
	case QuestionTypeMultipleChoice, QuestionTypeTrueFalse, QuestionTypeFillInBlank:
	default:
		return GeneratedQuestion{}, fmt.Errorf("unknown question type %q", *raw.Type)
	}

	answer := *raw.CorrectAnswer
	if answer < 0 {
		answer = 0
	}

	return GeneratedQuestion{
		QuestionText:  *raw.QuestionText,
		CorrectAnswer: answer,
		Options:       raw.Options,
		Hint:          *raw.Hint,
		BottomHint:    *raw.BottomHint,
		Difficulty:    *raw.Difficulty,
		Type:          qType,
		SkillID:       *raw.SkillID,
	}, nil
}

// QuizResult is the assembled quiz response. TotalQuestions always equals
// len(Questions).
type QuizResult struct {
	Success        bool                `json:"success"`
	Questions      []GeneratedQuestion `json:"questions"`
	TotalQuestions int                 `json:"total_questions"`
}

// NewQuizResult builds a QuizResult preserving the total invariant.
func NewQuizResult(questions []GeneratedQuestion) QuizResult {
	if questions == nil {
		questions = []GeneratedQuestion{}
	}
	return QuizResult{
		Success:        true,
		Questions:      questions,
		TotalQuestions: len(questions),
	}
}
