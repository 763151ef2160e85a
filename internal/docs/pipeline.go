// Package docs contains the document ingestion pipeline and the search engine.
package docs

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/docdex/docdex/internal/embedding"
	"github.com/docdex/docdex/internal/storage"
)

// Pipeline ingests documents: validate, embed, persist.
//
// Embedding failure is deliberately absorbed: the document is stored with an
// empty vector and stays keyword-searchable, it just ranks last in semantic
// search. Storage failure propagates and no partial record is left behind.
type Pipeline struct {
	provider embedding.Provider
	store    storage.Store
	logger   *slog.Logger
}

// NewPipeline creates an ingestion pipeline with the given dependencies.
func NewPipeline(provider embedding.Provider, store storage.Store, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		provider: provider,
		store:    store,
		logger:   logger,
	}
}

// AddDocument ingests a manually typed document. Title and content are both
// required; validation fails before the embedding provider is called.
func (p *Pipeline) AddDocument(ctx context.Context, title, content string) (storage.Document, error) {
	if strings.TrimSpace(title) == "" {
		return storage.Document{}, ErrMissingTitle
	}
	if strings.TrimSpace(content) == "" {
		return storage.Document{}, ErrMissingContent
	}

	return p.ingest(ctx, storage.Document{
		Title:   title,
		Content: content,
	})
}

// AddFromFile ingests text extracted from an uploaded file. The filename
// becomes the title and blobURI, if any, points at the stored original.
// Empty extracted text is allowed: scanned PDFs extract to nothing and the
// upload should still be recorded.
func (p *Pipeline) AddFromFile(ctx context.Context, text, filename, blobURI string) (storage.Document, error) {
	if strings.TrimSpace(filename) == "" {
		return storage.Document{}, ErrMissingFilename
	}

	return p.ingest(ctx, storage.Document{
		Title:    filename,
		Content:  text,
		FilePath: blobURI,
	})
}

// ingest runs the shared embed-then-insert routine.
func (p *Pipeline) ingest(ctx context.Context, doc storage.Document) (storage.Document, error) {
	doc.Embedding = p.embedOrEmpty(ctx, doc.Content)

	persisted, err := p.store.Insert(ctx, doc)
	if err != nil {
		return storage.Document{}, fmt.Errorf("insert document: %w", err)
	}

	p.logger.Info("Document ingested",
		"id", persisted.ID,
		"title", persisted.Title,
		"embedded", persisted.HasEmbedding(),
	)
	return persisted, nil
}

// embedOrEmpty calls the provider and converts any failure into an empty
// vector. The failure is logged as a recoverable event, never surfaced.
func (p *Pipeline) embedOrEmpty(ctx context.Context, text string) []float32 {
	vector, err := p.provider.Embed(ctx, text)
	if err != nil {
		p.logger.Warn("Embedding failed, storing document without vector", "error", err)
		return nil
	}
	return vector
}
