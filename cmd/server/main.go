// ABOUTME: Main entry point for the curriculum RAG HTTP server
// ABOUTME: Wires storage, OpenAI client, quiz and tutor services, graceful shutdown
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	openai "github.com/sashabaranov/go-openai"

	"github.com/edutera/ragserver/internal/api"
	"github.com/edutera/ragserver/internal/config"
	"github.com/edutera/ragserver/internal/core"
	"github.com/edutera/ragserver/internal/llm"
	"github.com/edutera/ragserver/internal/mastery"
	"github.com/edutera/ragserver/internal/storage"
)

func main() {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if cfg.OpenAIKey == "" {
		log.Println("Warning: OPENAI_API_KEY not set - generation and retrieval will not work")
	}

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()
	log.Printf("Database ready: %s", cfg.DBPath)

	client, err := llm.NewClient(&llm.ClientConfig{
		APIKey:         cfg.OpenAIKey,
		ChatModel:      cfg.ChatModel,
		EmbeddingModel: openai.EmbeddingModel(cfg.EmbeddingModel),
		MaxRetries:     cfg.MaxRetries,
		RetryBaseDelay: cfg.RetryBaseDelay,
		RetryMinDelay:  cfg.RetryMinDelay,
		RetryMaxDelay:  cfg.RetryMaxDelay,
	})
	if err != nil {
		log.Fatalf("Failed to create OpenAI client: %v", err)
	}

	store := storage.NewStore(db, client)

	generator := llm.NewValidatedGenerator(client, llm.GeneratorConfig{
		MaxAttempts: cfg.MaxRetries,
		Temperature: float32(cfg.QuizTemperature),
		BaseDelay:   cfg.RetryBaseDelay,
		MinDelay:    cfg.RetryMinDelay,
		MaxDelay:    cfg.RetryMaxDelay,
	})

	assembler := core.NewQuizAssembler(store, generator)
	tutor := core.NewTutor(store, client, mastery.NewClient())

	handler := api.NewHandler(assembler, tutor)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	log.Printf("Curriculum RAG server listening on :%s", cfg.Port)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
