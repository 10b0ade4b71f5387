// ABOUTME: QuizAssembler drives retrieval, aggregation, and validated generation
// ABOUTME: Best-effort across lessons and tiers; completion always yields a result
package core

import (
	"log"

	"github.com/edutera/ragserver/internal/llm"
	"github.com/edutera/ragserver/internal/models"
)

// QuestionsPerDifficulty is how many questions each (lesson, tier) prompt requests
const QuestionsPerDifficulty = 3

// LessonRetriever fetches all stored chunks of one lesson
type LessonRetriever interface {
	GetByLesson(lessonID int) ([]models.Chunk, error)
}

// QuestionGenerator produces schema-valid questions from a rendered prompt
type QuestionGenerator interface {
	Generate(prompt string) ([]models.GeneratedQuestion, error)
}

// QuizAssembler builds quizzes across lessons and the fixed difficulty
// tiers. Generation failures degrade to zero questions for the failing
// (lesson, tier) pair; the assembled result always reports success.
type QuizAssembler struct {
	retriever LessonRetriever
	generator QuestionGenerator
}

// NewQuizAssembler creates an assembler over its two collaborators
func NewQuizAssembler(retriever LessonRetriever, generator QuestionGenerator) *QuizAssembler {
	return &QuizAssembler{retriever: retriever, generator: generator}
}

// AssembleQuiz generates questions for each lesson in order, three tiers
// per lesson, and concatenates everything that validated. Lessons with no
// stored content are skipped. questionsPerLesson is part of the request
// surface; the per-tier count is fixed at QuestionsPerDifficulty.
func (a *QuizAssembler) AssembleQuiz(lessonIDs []int, questionsPerLesson int) models.QuizResult {
	var all []models.GeneratedQuestion

	for _, lessonID := range lessonIDs {
		chunks, err := a.retriever.GetByLesson(lessonID)
		if err != nil {
			log.Printf("Warning: retrieval failed for lesson %d: %v", lessonID, err)
			continue
		}
		if len(chunks) == 0 {
			continue
		}

		primary, ok := PrimarySkill(AggregateSkills(chunks))
		if !ok {
			continue
		}

		for _, tier := range llm.DifficultyTiers {
			prompt := llm.BuildQuizPrompt(primary.Content, primary, QuestionsPerDifficulty, tier)

			questions, err := a.generator.Generate(prompt)
			if err != nil {
				log.Printf("Warning: generation failed for lesson %d tier %s: %v", lessonID, tier, err)
				continue
			}
			all = append(all, questions...)
		}
	}

	return models.NewQuizResult(all)
}

// AssembleLessonQuiz is the single-lesson convenience variant
func (a *QuizAssembler) AssembleLessonQuiz(lessonID, questionsPerLesson int) models.QuizResult {
	return a.AssembleQuiz([]int{lessonID}, questionsPerLesson)
}
