// Package storage persists documents and their embedding vectors.
package storage

import "context"

// Store is the persistence contract for documents.
//
// Insert must be durable before it returns and must accept documents with
// empty embeddings. FetchAll returns the full corpus in insertion order;
// both search modes scan it. DeleteByID and FetchByID return ErrNotFound
// for unknown ids, distinct from transport failures.
type Store interface {
	Insert(ctx context.Context, doc Document) (Document, error)
	FetchAll(ctx context.Context) ([]Document, error)
	FetchByID(ctx context.Context, id string) (Document, error)
	DeleteByID(ctx context.Context, id string) error
	Health(ctx context.Context) error
	Close() error
}
