// ABOUTME: HTTP handlers for the quiz and tutor endpoints
// ABOUTME: Validates request shapes, extracts student tokens, forwards to services
package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/edutera/ragserver/internal/models"
)

// MockStudentToken stands in when no Authorization header is present
const MockStudentToken = "mock_token"

// QuizService assembles quizzes from stored curriculum content
type QuizService interface {
	AssembleQuiz(lessonIDs []int, questionsPerLesson int) models.QuizResult
	AssembleLessonQuiz(lessonID, questionsPerLesson int) models.QuizResult
}

// TutorService answers student questions and explains concepts
type TutorService interface {
	Answer(req models.TutorRequest) (models.TutorResponse, error)
	Explain(req models.ExplanationRequest, studentToken string) (string, error)
}

// Handler serves the public API
type Handler struct {
	quizzes QuizService
	tutor   TutorService
}

// NewHandler creates a Handler over the two services
func NewHandler(quizzes QuizService, tutor TutorService) *Handler {
	return &Handler{quizzes: quizzes, tutor: tutor}
}

func jsonResponse(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResponse(w http.ResponseWriter, message string, status int) {
	jsonResponse(w, map[string]string{"error": message}, status)
}

// studentToken pulls the bearer token from the Authorization header.
// Callers without one get the mock token so local setups keep working.
func studentToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		if token := strings.TrimPrefix(auth, "Bearer "); token != "" {
			return token
		}
	}
	return MockStudentToken
}

// HealthCheck reports service liveness
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, map[string]string{"status": "healthy"}, http.StatusOK)
}

// GenerateInitialQuiz builds a quiz spanning the requested lessons
func (h *Handler) GenerateInitialQuiz(w http.ResponseWriter, r *http.Request) {
	var req models.InitialQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		errorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	log.Printf("Generating initial quiz: class=%d unit=%d lessons=%v", req.ClassID, req.UnitID, req.Lessons)

	result := h.quizzes.AssembleQuiz(req.Lessons, req.QuestionsPerLesson)
	jsonResponse(w, result, http.StatusOK)
}

// GenerateLessonQuiz builds a quiz for a single lesson
func (h *Handler) GenerateLessonQuiz(w http.ResponseWriter, r *http.Request) {
	var req models.LessonQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		errorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	log.Printf("Generating lesson quiz: session=%d lesson=%d", req.SessionID, req.LessonID)

	result := h.quizzes.AssembleLessonQuiz(req.LessonID, req.QuestionsPerLesson)
	jsonResponse(w, result, http.StatusOK)
}

// TutorAnswer responds to a free-form student question
func (h *Handler) TutorAnswer(w http.ResponseWriter, r *http.Request) {
	var req models.TutorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		errorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp, err := h.tutor.Answer(req)
	if err != nil {
		log.Printf("Tutor answer failed: %v", err)
		errorResponse(w, "failed to generate answer", http.StatusInternalServerError)
		return
	}

	jsonResponse(w, resp, http.StatusOK)
}

// ExplainConcept renders a mastery-adapted explanation of one concept
func (h *Handler) ExplainConcept(w http.ResponseWriter, r *http.Request) {
	var req models.ExplanationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		errorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	explanation, err := h.tutor.Explain(req, studentToken(r))
	if err != nil {
		log.Printf("Explanation failed: %v", err)
		errorResponse(w, "failed to generate explanation", http.StatusInternalServerError)
		return
	}

	jsonResponse(w, models.ExplanationResponse{Explanation: explanation}, http.StatusOK)
}
