// ABOUTME: MCP tool definitions and registration for the curriculum server
// ABOUTME: Exposes quiz generation and tutoring to agent clients over MCP
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, quizzes QuizService, tutor TutorService) *Handlers {
	handlers := &Handlers{
		quizzes: quizzes,
		tutor:   tutor,
	}

	// 1. generate_quiz - Build a validated quiz from stored lessons
	server.AddTool(mcp.Tool{
		Name:        "generate_quiz",
		Description: "Generate a validated quiz from stored curriculum lessons. Each lesson contributes questions across easy, medium, and hard difficulty tiers.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"lessons": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "number"},
					"description": "Lesson ids to draw questions from",
				},
				"questions_per_lesson": map[string]interface{}{
					"type":        "number",
					"description": "Questions requested per lesson (default: 9)",
					"default":     9,
				},
			},
			Required: []string{"lessons"},
		},
	}, handlers.GenerateQuiz)

	// 2. ask_tutor - Answer a student question grounded in lesson content
	server.AddTool(mcp.Tool{
		Name:        "ask_tutor",
		Description: "Answer a student question grounded in the stored content of one lesson.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"question": map[string]interface{}{
					"type":        "string",
					"description": "The student's question",
				},
				"lesson_id": map[string]interface{}{
					"type":        "number",
					"description": "Lesson to ground the answer in",
				},
			},
			Required: []string{"question", "lesson_id"},
		},
	}, handlers.AskTutor)

	// 3. explain_concept - Explain a concept adapted to student mastery
	server.AddTool(mcp.Tool{
		Name:        "explain_concept",
		Description: "Explain a concept from one skill's stored content, with the style adapted to the student's mastery level.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"concept": map[string]interface{}{
					"type":        "string",
					"description": "The concept to explain",
				},
				"skill_id": map[string]interface{}{
					"type":        "number",
					"description": "Skill to ground the explanation in",
				},
				"student_token": map[string]interface{}{
					"type":        "string",
					"description": "Optional student token for mastery lookup",
				},
			},
			Required: []string{"concept", "skill_id"},
		},
	}, handlers.ExplainConcept)

	return handlers
}
