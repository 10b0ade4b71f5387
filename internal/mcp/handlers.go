// ABOUTME: MCP tool handler implementations for the curriculum server
// ABOUTME: Argument extraction and error handling for all 3 tools
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/edutera/ragserver/internal/models"
)

// QuizService assembles quizzes from stored curriculum content
type QuizService interface {
	AssembleQuiz(lessonIDs []int, questionsPerLesson int) models.QuizResult
}

// TutorService answers student questions and explains concepts
type TutorService interface {
	Answer(req models.TutorRequest) (models.TutorResponse, error)
	Explain(req models.ExplanationRequest, studentToken string) (string, error)
}

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	quizzes QuizService
	tutor   TutorService
}

// GenerateQuiz handles the generate_quiz tool
func (h *Handlers) GenerateQuiz(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	lessons := request.GetIntSlice("lessons", nil)
	if len(lessons) == 0 {
		return mcp.NewToolResultError("lessons argument is required and must be a non-empty array of numbers"), nil
	}

	questionsPerLesson := request.GetInt("questions_per_lesson", models.DefaultQuestionsPerLesson)
	if questionsPerLesson <= 0 {
		questionsPerLesson = models.DefaultQuestionsPerLesson
	}

	result := h.quizzes.AssembleQuiz(lessons, questionsPerLesson)

	responseJSON, err := json.Marshal(result)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// AskTutor handles the ask_tutor tool
func (h *Handlers) AskTutor(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("question argument is required and must be a string"), nil
	}

	lessonID, err := request.RequireInt("lesson_id")
	if err != nil {
		return mcp.NewToolResultError("lesson_id argument is required and must be a number"), nil
	}

	resp, err := h.tutor.Answer(models.TutorRequest{
		Question: question,
		LessonID: lessonID,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("tutoring failed: %v", err)), nil
	}

	responseJSON, err := json.Marshal(resp)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// ExplainConcept handles the explain_concept tool
func (h *Handlers) ExplainConcept(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	concept, err := request.RequireString("concept")
	if err != nil {
		return mcp.NewToolResultError("concept argument is required and must be a string"), nil
	}

	skillID, err := request.RequireInt("skill_id")
	if err != nil {
		return mcp.NewToolResultError("skill_id argument is required and must be a number"), nil
	}

	studentToken := request.GetString("student_token", "mock_token")

	explanation, err := h.tutor.Explain(models.ExplanationRequest{
		Concept: concept,
		SkillID: skillID,
	}, studentToken)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("explanation failed: %v", err)), nil
	}

	responseJSON, err := json.Marshal(models.ExplanationResponse{Explanation: explanation})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}
