// Package api exposes the document service over HTTP.
package api

import (
	"time"

	"github.com/docdex/docdex/internal/docs"
	"github.com/docdex/docdex/internal/storage"
)

// AddDocumentRequest is the body of POST /api/documents/add.
type AddDocumentRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// DocumentResponse is the JSON shape of a persisted document. The raw
// embedding vector is not serialized; Embedded reports whether one exists.
type DocumentResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	FilePath  string    `json:"filePath,omitempty"`
	Embedded  bool      `json:"embedded"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ScoredDocumentResponse is a document annotated with its similarity score.
type ScoredDocumentResponse struct {
	DocumentResponse
	Score float64 `json:"score"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

func toDocumentResponse(doc storage.Document) DocumentResponse {
	return DocumentResponse{
		ID:        doc.ID,
		Title:     doc.Title,
		Content:   doc.Content,
		FilePath:  doc.FilePath,
		Embedded:  doc.HasEmbedding(),
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}

func toDocumentResponses(docs []storage.Document) []DocumentResponse {
	out := make([]DocumentResponse, len(docs))
	for i, doc := range docs {
		out[i] = toDocumentResponse(doc)
	}
	return out
}

func toScoredResponses(scored []docs.ScoredDocument) []ScoredDocumentResponse {
	out := make([]ScoredDocumentResponse, len(scored))
	for i, s := range scored {
		out[i] = ScoredDocumentResponse{
			DocumentResponse: toDocumentResponse(s.Document),
			Score:            s.Score,
		}
	}
	return out
}
