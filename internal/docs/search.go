package docs

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/docdex/docdex/internal/embedding"
	"github.com/docdex/docdex/internal/storage"
	"github.com/docdex/docdex/internal/vectormath"
)

// TopK is the fixed semantic search cutoff.
const TopK = 5

// ScoredDocument is a document annotated with its similarity score.
type ScoredDocument struct {
	storage.Document
	Score float64
}

// Searcher answers keyword and semantic queries over the full document set.
type Searcher struct {
	provider embedding.Provider
	store    storage.Store
	logger   *slog.Logger
}

// NewSearcher creates a search engine with the given dependencies.
func NewSearcher(provider embedding.Provider, store storage.Store, logger *slog.Logger) *Searcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Searcher{
		provider: provider,
		store:    store,
		logger:   logger,
	}
}

// KeywordSearch returns documents whose title or content contains q as a
// case-insensitive substring, in store order. An empty query matches
// everything.
func (s *Searcher) KeywordSearch(ctx context.Context, q string) ([]storage.Document, error) {
	docs, err := s.store.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch documents: %w", err)
	}

	needle := strings.ToLower(q)
	matches := make([]storage.Document, 0)
	for _, doc := range docs {
		if strings.Contains(strings.ToLower(doc.Title), needle) ||
			strings.Contains(strings.ToLower(doc.Content), needle) {
			matches = append(matches, doc)
		}
	}
	return matches, nil
}

// SemanticSearch embeds the query, scores every document by cosine similarity
// and returns the top TopK results ordered by non-increasing score.
//
// If the query embedding fails every document scores 0; the request still
// succeeds with a degenerate ranking. No minimum score is applied: with a
// small corpus even zero-score documents can appear in the result, which is
// intentional (always return something, up to TopK).
//
// Ties keep store order (stable sort); the relative order of equal scores is
// deterministic but not otherwise meaningful.
func (s *Searcher) SemanticSearch(ctx context.Context, q string) ([]ScoredDocument, error) {
	queryVector, err := s.provider.Embed(ctx, q)
	if err != nil {
		s.logger.Warn("Query embedding failed, all scores degrade to 0", "error", err)
		queryVector = nil
	}

	docs, err := s.store.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch documents: %w", err)
	}

	scored := make([]ScoredDocument, len(docs))
	for i, doc := range docs {
		scored[i] = ScoredDocument{
			Document: doc,
			Score:    vectormath.CosineSimilarity(queryVector, doc.Embedding),
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > TopK {
		scored = scored[:TopK]
	}
	return scored, nil
}
