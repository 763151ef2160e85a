package storage

import "time"

// Document is the single persisted entity: a text body with an optional
// embedding vector and an optional pointer to the uploaded original file.
type Document struct {
	ID        string    // UUID, assigned by the store on insert
	Title     string    // Label; original filename for uploaded documents
	Content   string    // Full text body (typed or extracted)
	FilePath  string    // URI of the stored original file; empty for manual adds
	Embedding []float32 // Empty when embedding failed, otherwise VectorDimension
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasEmbedding reports whether the document carries an embedding vector.
// Documents without one are keyword-searchable but score 0 in semantic search.
func (d Document) HasEmbedding() bool {
	return len(d.Embedding) > 0
}

// CollectionName is the single Qdrant collection for all documents.
const CollectionName = "documents"

// VectorDimension is the embedding size for text-embedding-3-small.
const VectorDimension = 1536
