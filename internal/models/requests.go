// ABOUTME: Request and response types for the public quiz and tutor surface
// ABOUTME: Shape validation happens here; semantic failures never reach callers
package models

import "errors"

// DefaultQuestionsPerLesson applies when a request leaves the count unset
const DefaultQuestionsPerLesson = 9

// ConversationTurn is one entry of caller-supplied chat history
type ConversationTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// InitialQuizRequest asks for a quiz spanning several lessons
type InitialQuizRequest struct {
	ClassID            int   `json:"class_id"`
	UnitID             int   `json:"unit_id"`
	Lessons            []int `json:"lessons"`
	QuestionsPerLesson int   `json:"questions_per_lesson"`
}

// Validate checks the request contract; it does not touch content.
func (r *InitialQuizRequest) Validate() error {
	if len(r.Lessons) == 0 {
		return errors.New("lessons is required")
	}
	if r.QuestionsPerLesson <= 0 {
		r.QuestionsPerLesson = DefaultQuestionsPerLesson
	}
	return nil
}

// LessonQuizRequest asks for a quiz covering a single lesson
type LessonQuizRequest struct {
	ClassID            int `json:"class_id"`
	SessionID          int `json:"session_id"`
	LessonID           int `json:"lesson_id"`
	QuestionsPerLesson int `json:"questions_per_lesson"`
}

func (r *LessonQuizRequest) Validate() error {
	if r.LessonID <= 0 {
		return errors.New("lesson_id is required")
	}
	if r.QuestionsPerLesson <= 0 {
		r.QuestionsPerLesson = DefaultQuestionsPerLesson
	}
	return nil
}

// TutorRequest is a free-form student question with trailing history
type TutorRequest struct {
	StudentID          int                `json:"student_id"`
	SessionID          int                `json:"session_id"`
	LessonID           int                `json:"lesson_id"`
	ClassID            int                `json:"class_id"`
	Question           string             `json:"question"`
	ConversationID     *int               `json:"conversation_id,omitempty"`
	PreviousMessages   []ConversationTurn `json:"previous_messages"`
	TopicsCoveredSoFar []string           `json:"topics_covered_so_far"`
}

func (r *TutorRequest) Validate() error {
	if r.Question == "" {
		return errors.New("question is required")
	}
	if r.LessonID <= 0 {
		return errors.New("lesson_id is required")
	}
	return nil
}

// TutorResponse carries the grounded answer back to the student
type TutorResponse struct {
	Answer           string   `json:"answer"`
	TopicsCovered    []string `json:"topics_covered"`
	AllTopicsCovered bool     `json:"all_topics_covered"`
}

// ExplanationRequest asks for a mastery-adapted concept explanation
type ExplanationRequest struct {
	StudentID int    `json:"student_id"`
	SessionID int    `json:"session_id"`
	LessonID  int    `json:"lesson_id"`
	Concept   string `json:"concept"`
	SkillID   int    `json:"skill_id"`
}

func (r *ExplanationRequest) Validate() error {
	if r.Concept == "" {
		return errors.New("concept is required")
	}
	if r.SkillID <= 0 {
		return errors.New("skill_id is required")
	}
	return nil
}

// ExplanationResponse wraps the generated explanation text
type ExplanationResponse struct {
	Explanation string `json:"explanation"`
}
