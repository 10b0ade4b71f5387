// ABOUTME: CLI command to ingest curriculum markdown into the vector store
// ABOUTME: Segments the document, embeds every chunk, and uploads in batches
package commands

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	openai "github.com/sashabaranov/go-openai"
	"github.com/spf13/cobra"

	"github.com/edutera/ragserver/internal/config"
	"github.com/edutera/ragserver/internal/core"
	"github.com/edutera/ragserver/internal/llm"
	"github.com/edutera/ragserver/internal/storage"
)

var (
	ingestUnitID int
	ingestDBPath string
)

// NewIngestCmd creates the ingest command
func NewIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest <file>",
		Short: "Ingest a curriculum markdown file",
		Long: `Ingest a curriculum markdown file into the vector store.

The document is segmented at lesson headings (lines starting with "# ")
and skill markers (lines starting with "$$$$"), embedded chunk by chunk,
and stored for retrieval.

Examples:
  ragctl ingest unit1.md
  ragctl ingest --unit 3 --db curriculum.db unit3.md`,
		Args: cobra.ExactArgs(1),
		RunE: runIngest,
	}

	cmd.Flags().IntVar(&ingestUnitID, "unit", 1, "Unit id recorded on every chunk")
	cmd.Flags().StringVar(&ingestDBPath, "db", "", "Database path (defaults to RAG_DB_PATH)")

	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if ingestDBPath != "" {
		cfg.DBPath = ingestDBPath
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}

	chunks := core.NewSegmenter(ingestUnitID).Segment(string(data))
	if len(chunks) == 0 {
		return fmt.Errorf("no content found in %s", args[0])
	}
	if verbose {
		for _, c := range chunks {
			fmt.Fprintf(cmd.ErrOrStderr(), "lesson %d skill %d (%s): %d chars\n",
				c.LessonID, c.SkillID, c.SkillName, len(c.Text))
		}
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

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() { _ = db.Close() }()

	store := storage.NewStore(db, client)
	if err := store.SaveChunks(chunks); err != nil {
		return fmt.Errorf("storing chunks: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Ingested %d chunks from %s into %s\n",
			len(chunks), args[0], cfg.DBPath)
	}
	return nil
}
