package storage

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_InsertAssignsIDAndTimestamps(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	doc, err := store.Insert(ctx, Document{
		Title:     "Annual report",
		Content:   "Revenue grew this year.",
		Embedding: []float32{0.1, 0.2, 0.3},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, doc.ID)
	assert.False(t, doc.CreatedAt.IsZero())
	assert.Equal(t, doc.CreatedAt, doc.UpdatedAt)
	assert.Equal(t, "Annual report", doc.Title)
}

func TestMemoryStore_InsertAcceptsEmptyEmbedding(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	doc, err := store.Insert(ctx, Document{Title: "No vector", Content: "body"})
	require.NoError(t, err)
	assert.False(t, doc.HasEmbedding())

	fetched, err := store.FetchByID(ctx, doc.ID)
	require.NoError(t, err)
	assert.Empty(t, fetched.Embedding)
}

func TestMemoryStore_FetchAllPreservesInsertionOrder(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	var ids []string
	for i := 0; i < 5; i++ {
		doc, err := store.Insert(ctx, Document{Title: fmt.Sprintf("doc-%d", i), Content: "x"})
		require.NoError(t, err)
		ids = append(ids, doc.ID)
	}

	docs, err := store.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 5)
	for i, doc := range docs {
		assert.Equal(t, ids[i], doc.ID)
	}
}

func TestMemoryStore_FetchByID_NotFound(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.FetchByID(context.Background(), "missing-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_DeleteByID(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	doc, err := store.Insert(ctx, Document{Title: "to delete", Content: "x"})
	require.NoError(t, err)

	require.NoError(t, store.DeleteByID(ctx, doc.ID))

	docs, err := store.FetchAll(ctx)
	require.NoError(t, err)
	for _, remaining := range docs {
		assert.NotEqual(t, doc.ID, remaining.ID)
	}

	// Second delete reports not found, never silent success.
	assert.ErrorIs(t, store.DeleteByID(ctx, doc.ID), ErrNotFound)
}

func TestMemoryStore_ReturnedDocumentsAreCopies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	doc, err := store.Insert(ctx, Document{Title: "t", Content: "c", Embedding: []float32{1, 2, 3}})
	require.NoError(t, err)

	doc.Embedding[0] = 99

	fetched, err := store.FetchByID(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, float32(1), fetched.Embedding[0], "caller mutation must not leak into the store")
}

func TestMemoryStore_ConcurrentInserts(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			_, err := store.Insert(ctx, Document{Title: fmt.Sprintf("doc-%d", i), Content: "x"})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	docs, err := store.FetchAll(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, n)

	seen := make(map[string]bool, n)
	for _, doc := range docs {
		assert.False(t, seen[doc.ID], "duplicate id %s", doc.ID)
		seen[doc.ID] = true
	}
}
