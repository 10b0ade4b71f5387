// ABOUTME: Tutor answers student questions and explains concepts from retrieved context
// ABOUTME: Retrieval is lesson- or skill-filtered nearest-neighbor search
package core

import (
	"fmt"
	"strings"

	"github.com/edutera/ragserver/internal/llm"
	"github.com/edutera/ragserver/internal/mastery"
	"github.com/edutera/ragserver/internal/models"
)

const (
	// TutorTopK is how many chunks ground a tutoring answer
	TutorTopK = 3
	// ExplainTopK is how many chunks ground a concept explanation
	ExplainTopK = 2
	// TutorTemperature is the sampling temperature for tutoring answers
	TutorTemperature = 0.5

	// NoContextFallback stands in when retrieval finds nothing
	NoContextFallback = "No context available."
)

// SimilarityRetriever serves filtered nearest-neighbor retrieval
type SimilarityRetriever interface {
	QueryByLesson(text string, lessonID, topK int) ([]models.Chunk, error)
	QueryBySkill(text string, skillID, topK int) ([]models.Chunk, error)
}

// ChatOracle sends a role-tagged message sequence to the generation service
type ChatOracle interface {
	ChatCompletion(messages []models.ConversationTurn, temperature float32) (string, error)
}

// MasteryProvider estimates a student's mastery of a skill
type MasteryProvider interface {
	GetMastery(studentToken string, skillID int) (mastery.Record, error)
}

// Tutor serves grounded answers and mastery-adapted explanations
type Tutor struct {
	retriever SimilarityRetriever
	oracle    ChatOracle
	mastery   MasteryProvider
}

// NewTutor creates a Tutor over its collaborators
func NewTutor(retriever SimilarityRetriever, oracle ChatOracle, masteryClient MasteryProvider) *Tutor {
	return &Tutor{retriever: retriever, oracle: oracle, mastery: masteryClient}
}

// Answer responds to a free-form student question grounded in the
// lesson's nearest chunks. Trailing history beyond the window is dropped
// by the prompt builder.
func (t *Tutor) Answer(req models.TutorRequest) (models.TutorResponse, error) {
	chunks, err := t.retriever.QueryByLesson(req.Question, req.LessonID, TutorTopK)
	if err != nil {
		return models.TutorResponse{}, fmt.Errorf("retrieving context: %w", err)
	}

	contextText := joinChunkText(chunks)
	if contextText == "" {
		contextText = NoContextFallback
	}

	messages := llm.BuildTutorMessages(contextText, req.Question, req.PreviousMessages)

	answer, err := t.oracle.ChatCompletion(messages, TutorTemperature)
	if err != nil {
		return models.TutorResponse{}, fmt.Errorf("generating answer: %w", err)
	}

	topics := req.TopicsCoveredSoFar
	if topics == nil {
		topics = []string{}
	}

	return models.TutorResponse{
		Answer:           answer,
		TopicsCovered:    topics,
		AllTopicsCovered: false,
	}, nil
}

// Explain renders a concept explanation whose style adapts to the
// student's mastery estimate.
func (t *Tutor) Explain(req models.ExplanationRequest, studentToken string) (string, error) {
	record, err := t.mastery.GetMastery(studentToken, req.SkillID)
	if err != nil {
		return "", fmt.Errorf("fetching mastery: %w", err)
	}

	chunks, err := t.retriever.QueryBySkill(req.Concept, req.SkillID, ExplainTopK)
	if err != nil {
		return "", fmt.Errorf("retrieving context: %w", err)
	}

	prompt := llm.BuildExplanationPrompt(req.Concept, record.MasteryAfter, joinChunkText(chunks))

	explanation, err := t.oracle.ChatCompletion([]models.ConversationTurn{
		{Role: "user", Content: prompt},
	}, 0)
	if err != nil {
		return "", fmt.Errorf("generating explanation: %w", err)
	}

	return explanation, nil
}

func joinChunkText(chunks []models.Chunk) string {
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	return strings.Join(texts, "\n")
}
