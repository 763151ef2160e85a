// Package main provides the docdex CLI for managing the document index.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/docdex/docdex/internal/docs"
	"github.com/docdex/docdex/internal/embedding"
	"github.com/docdex/docdex/internal/extract"
	"github.com/docdex/docdex/internal/storage"
)

var semanticFlag bool

var rootCmd = &cobra.Command{
	Use:   "docdex",
	Short: "Document index management tool",
	Long: `CLI tool for managing the docdex document index in Qdrant.

Environment variables:
  QDRANT_HOST    Qdrant hostname (default: localhost)
  QDRANT_PORT    Qdrant gRPC port (default: 6334)
  OPENAI_API_KEY OpenAI API key for embeddings (required)`,
}

var addCmd = &cobra.Command{
	Use:   "add <title> <content>",
	Short: "Add a document to the index",
	Args:  cobra.ExactArgs(2),
	RunE:  runAdd,
}

var ingestCmd = &cobra.Command{
	Use:   "ingest <file>",
	Short: "Extract text from a PDF or DOCX file and index it",
	Args:  cobra.ExactArgs(1),
	RunE:  runIngest,
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search indexed documents",
	Long:  "Keyword search by default; pass --semantic for embedding similarity ranking.",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all indexed documents",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a document by ID",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop and recreate the document collection",
	Args:  cobra.NoArgs,
	RunE:  runClear,
}

func init() {
	searchCmd.Flags().BoolVar(&semanticFlag, "semantic", false, "rank results by embedding similarity")
	rootCmd.AddCommand(addCmd, ingestCmd, searchCmd, listCmd, deleteCmd, clearCmd)
}

func main() {
	// Load .env file if present (local development), ignore if missing (production)
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// connect dials Qdrant and ensures the document collection exists.
func connect(ctx context.Context) (*storage.QdrantStore, error) {
	qdrantHost := getEnv("QDRANT_HOST", "localhost")
	qdrantPort := getEnvInt("QDRANT_PORT", 6334)

	store, err := storage.NewQdrantStore(qdrantHost, qdrantPort)
	if err != nil {
		return nil, fmt.Errorf("Failed to connect to Qdrant: %w", err)
	}
	if err := store.EnsureCollection(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("Failed to ensure collection: %w", err)
	}
	return store, nil
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	store, err := connect(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	provider := embedding.NewOpenAIProvider(embedding.DefaultTimeout)
	pipeline := docs.NewPipeline(provider, store, slog.Default())

	doc, err := pipeline.AddDocument(ctx, args[0], args[1])
	if err != nil {
		return fmt.Errorf("Failed to add document: %w", err)
	}

	fmt.Printf("Added document %s\n", doc.ID)
	if !doc.HasEmbedding() {
		fmt.Println("Warning: embedding unavailable, document stored without vector")
	}
	return nil
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	path := args[0]

	extractor := extract.New()
	ext := filepath.Ext(path)
	if !extractor.Supported(ext) {
		return fmt.Errorf("Unsupported file format %q (only .pdf and .docx)", ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("Failed to read file: %w", err)
	}

	text, err := extractor.Extract(data, ext)
	if err != nil {
		return fmt.Errorf("Failed to extract text: %w", err)
	}

	store, err := connect(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	provider := embedding.NewOpenAIProvider(embedding.DefaultTimeout)
	pipeline := docs.NewPipeline(provider, store, slog.Default())

	doc, err := pipeline.AddFromFile(ctx, text, filepath.Base(path), path)
	if err != nil {
		return fmt.Errorf("Failed to index file: %w", err)
	}

	fmt.Printf("Indexed %s as document %s (%d characters extracted)\n", filepath.Base(path), doc.ID, len(text))
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	start := time.Now()

	store, err := connect(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	provider := embedding.NewOpenAIProvider(embedding.DefaultTimeout)
	searcher := docs.NewSearcher(provider, store, slog.Default())

	if semanticFlag {
		results, err := searcher.SemanticSearch(ctx, args[0])
		if err != nil {
			return fmt.Errorf("Search failed: %w", err)
		}
		if len(results) == 0 {
			fmt.Println("No documents indexed.")
			return nil
		}
		for i, r := range results {
			fmt.Printf("%d. %s (score %.4f)\n   %s\n", i+1, r.Title, r.Score, snippet(r.Content))
		}
	} else {
		results, err := searcher.KeywordSearch(ctx, args[0])
		if err != nil {
			return fmt.Errorf("Search failed: %w", err)
		}
		if len(results) == 0 {
			fmt.Println("No matching documents.")
			return nil
		}
		for i, r := range results {
			fmt.Printf("%d. %s\n   %s\n", i+1, r.Title, snippet(r.Content))
		}
	}

	fmt.Printf("\nQuery time: %s\n", time.Since(start).Round(time.Millisecond))
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	store, err := connect(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	all, err := store.FetchAll(ctx)
	if err != nil {
		return fmt.Errorf("Failed to list documents: %w", err)
	}

	if len(all) == 0 {
		fmt.Println("No documents indexed.")
		return nil
	}
	for _, doc := range all {
		embedded := "embedded"
		if !doc.HasEmbedding() {
			embedded = "no vector"
		}
		fmt.Printf("%s  %-30s  %s  %s\n", doc.ID, doc.Title, embedded, doc.CreatedAt.Format(time.RFC3339))
	}
	fmt.Printf("\n%d documents\n", len(all))
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	store, err := connect(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.DeleteByID(ctx, args[0]); err != nil {
		return fmt.Errorf("Failed to delete document: %w", err)
	}

	fmt.Printf("Deleted document %s\n", args[0])
	return nil
}

func runClear(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	store, err := connect(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	fmt.Println("Clearing collection...")
	if err := store.ClearCollection(ctx); err != nil {
		return fmt.Errorf("Failed to clear collection: %w", err)
	}
	fmt.Println("Collection cleared")
	return nil
}

// snippet truncates content for terminal display.
func snippet(content string) string {
	s := strings.Join(strings.Fields(content), " ")
	if len(s) > 120 {
		return s[:120] + "..."
	}
	return s
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		var i int
		if _, err := fmt.Sscanf(v, "%d", &i); err == nil {
			return i
		}
	}
	return defaultValue
}
