// Package main provides the docdex HTTP/MCP server entry point.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/docdex/docdex/internal/api"
	"github.com/docdex/docdex/internal/blob"
	"github.com/docdex/docdex/internal/config"
	"github.com/docdex/docdex/internal/docs"
	"github.com/docdex/docdex/internal/embedding"
	"github.com/docdex/docdex/internal/extract"
	mcpserver "github.com/docdex/docdex/internal/mcp"
	"github.com/docdex/docdex/internal/storage"
)

func main() {
	// Load .env file if present (local development), ignore if missing (production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Create context that cancels on SIGTERM/SIGINT
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	cfg, err := config.Load(getEnv("CONFIG_PATH", "config.yaml"))
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Environment overrides for container deployments
	storageType := getEnv("STORAGE_TYPE", cfg.Storage.Type)
	qdrantHost := getEnv("QDRANT_HOST", cfg.Storage.Qdrant.Host)
	qdrantPort := getEnvInt("QDRANT_PORT", cfg.Storage.Qdrant.Port)
	addr := getEnv("ADDR", cfg.Server.Addr)

	if os.Getenv("OPENAI_API_KEY") == "" {
		log.Fatal("OPENAI_API_KEY environment variable not set")
	}

	// Initialize storage
	store, err := newStore(storageType, qdrantHost, qdrantPort)
	if err != nil {
		log.Fatalf("failed to initialize storage: %v", err)
	}
	defer store.Close()

	// Initialize components
	provider := embedding.NewOpenAIProvider(cfg.EmbedTimeout())
	logger := slog.Default()
	pipeline := docs.NewPipeline(provider, store, logger)
	searcher := docs.NewSearcher(provider, store, logger)

	extractor := extract.New()
	blobs, err := blob.NewLocalStore(cfg.Server.UploadDir)
	if err != nil {
		log.Fatalf("failed to initialize blob store: %v", err)
	}

	// REST API + health
	restServer := api.NewServer(&api.Config{
		Pipeline:       pipeline,
		Searcher:       searcher,
		Store:          store,
		Extractor:      extractor,
		Blobs:          blobs,
		Logger:         logger,
		MaxUploadBytes: cfg.Server.MaxUploadMB << 20,
	})

	// MCP server sharing the same pipeline and searcher
	server := mcpserver.NewServer(&mcpserver.Config{
		Pipeline: pipeline,
		Searcher: searcher,
		Store:    store,
	})

	mux := http.NewServeMux()
	mux.Handle("/", restServer.Handler())
	mux.Handle("/mcp", mcpserver.NewHTTPHandler(server, nil))

	// Check if running in server mode (HTTP) or stdio mode (local MCP clients)
	serverMode := getEnv("SERVER_MODE", "true") == "true"

	if serverMode {
		log.Printf("Starting HTTP server on %s (API at /api, MCP at /mcp, health at /health)", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Fatalf("HTTP server error: %v", err)
		}
	} else {
		// Stdio mode: run MCP over stdin/stdout, keep HTTP in the background
		go func() {
			log.Printf("Starting HTTP server on %s", addr)
			if err := http.ListenAndServe(addr, mux); err != nil {
				log.Printf("HTTP server error: %v", err)
			}
		}()

		log.Println("Starting docdex MCP server (stdio mode)...")
		if err := server.Run(ctx); err != nil {
			log.Printf("server error: %v", err)
			os.Exit(1)
		}
	}
}

// newStore builds the configured document store.
func newStore(storageType, qdrantHost string, qdrantPort int) (storage.Store, error) {
	switch storageType {
	case "memory":
		return storage.NewMemoryStore(), nil
	case "qdrant":
		store, err := storage.NewQdrantStore(qdrantHost, qdrantPort)
		if err != nil {
			return nil, err
		}
		if err := store.EnsureCollection(context.Background()); err != nil {
			store.Close()
			return nil, err
		}
		return store, nil
	}
	return nil, fmt.Errorf("unknown storage type %q", storageType)
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}
