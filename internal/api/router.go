// ABOUTME: HTTP router wiring all endpoints under the /rag prefix
// ABOUTME: CORS is permissive; auth happens per-handler via bearer tokens
package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter builds the HTTP surface around a Handler
func NewRouter(h *Handler) http.Handler {
	r := mux.NewRouter()

	api := r.PathPrefix("/rag").Subrouter()

	api.HandleFunc("/health", h.HealthCheck).Methods("GET")

	api.HandleFunc("/quizzes/generate-initial", h.GenerateInitialQuiz).Methods("POST")
	api.HandleFunc("/quizzes/generate-lesson", h.GenerateLessonQuiz).Methods("POST")

	api.HandleFunc("/tutor/answer", h.TutorAnswer).Methods("POST")
	api.HandleFunc("/tutor/explain", h.ExplainConcept).Methods("POST")

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	return c.Handler(r)
}
