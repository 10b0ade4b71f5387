// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Enables LLM agents to generate quizzes and tutor via stdio
package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	openai "github.com/sashabaranov/go-openai"
	"github.com/spf13/cobra"

	"github.com/edutera/ragserver/internal/config"
	"github.com/edutera/ragserver/internal/core"
	"github.com/edutera/ragserver/internal/llm"
	"github.com/edutera/ragserver/internal/mastery"
	"github.com/edutera/ragserver/internal/mcp"
	"github.com/edutera/ragserver/internal/storage"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Serves quiz generation, tutoring, and concept explanation as MCP
(Model Context Protocol) tools over stdio.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by an agent host)
  ragctl mcp

  # Configure in the host's MCP config:
  # {
  #   "mcpServers": {
  #     "curriculum": {
  #       "command": "ragctl",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil && !quiet {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	if cfg.OpenAIKey == "" {
		log.Println("Warning: OPENAI_API_KEY not set - generation and retrieval will not work")
	}

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}

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
		return fmt.Errorf("creating OpenAI client: %w", err)
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

	server := mcpserver.NewMCPServer(
		"Curriculum RAG",
		versionInfo.Version,
	)

	mcp.RegisterTools(server, assembler, tutor)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !quiet {
		log.Println("Curriculum RAG MCP server starting on stdio...")
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		if !quiet {
			log.Println("Shutdown signal received, gracefully shutting down...")
		}

		if err := db.Close(); err != nil {
			log.Printf("Warning: Error closing database: %v", err)
		}

		if !quiet {
			log.Println("Shutdown complete")
		}

	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
