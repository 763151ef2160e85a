package api

import (
	"log/slog"
	"net/http"

	"github.com/docdex/docdex/internal/blob"
	"github.com/docdex/docdex/internal/docs"
	"github.com/docdex/docdex/internal/extract"
	"github.com/docdex/docdex/internal/storage"
)

// DefaultMaxUploadBytes caps multipart upload size (32 MiB).
const DefaultMaxUploadBytes = 32 << 20

// Server routes HTTP requests to the ingestion pipeline and search engine.
type Server struct {
	pipeline  *docs.Pipeline
	searcher  *docs.Searcher
	store     storage.Store
	extractor *extract.Extractor
	blobs     blob.Store
	logger    *slog.Logger
	maxUpload int64
}

// Config holds server dependencies.
type Config struct {
	Pipeline  *docs.Pipeline
	Searcher  *docs.Searcher
	Store     storage.Store
	Extractor *extract.Extractor
	Blobs     blob.Store
	Logger    *slog.Logger

	// MaxUploadBytes limits upload size; 0 means DefaultMaxUploadBytes.
	MaxUploadBytes int64
}

// NewServer creates a configured HTTP server.
func NewServer(cfg *Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	maxUpload := cfg.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = DefaultMaxUploadBytes
	}
	return &Server{
		pipeline:  cfg.Pipeline,
		searcher:  cfg.Searcher,
		store:     cfg.Store,
		extractor: cfg.Extractor,
		blobs:     cfg.Blobs,
		logger:    logger,
		maxUpload: maxUpload,
	}
}

// Handler returns the route table as an http.Handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/documents/add", s.handleAdd)
	mux.HandleFunc("POST /api/documents/upload", s.handleUpload)
	mux.HandleFunc("GET /api/documents/search", s.handleKeywordSearch)
	mux.HandleFunc("GET /api/documents/ai-search", s.handleSemanticSearch)
	mux.HandleFunc("GET /api/documents/all", s.handleListAll)
	mux.HandleFunc("DELETE /api/documents/{id}", s.handleDelete)
	mux.HandleFunc("GET /health", NewHealthHandler(s.store))

	return mux
}
