package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

// vectorName is the named vector slot for document embeddings. Using a named
// vector lets documents whose embedding failed be stored as vectorless points
// in the same collection.
const vectorName = "content"

// QdrantStore persists documents in a Qdrant collection over gRPC.
type QdrantStore struct {
	client *qdrant.Client
	host   string
	port   int
}

var _ Store = (*QdrantStore)(nil)

// NewQdrantStore connects to Qdrant and validates connectivity.
// The health check retries with exponential backoff so the service fails fast
// (rather than hangs) when Qdrant is down at startup.
func NewQdrantStore(host string, port int) (*QdrantStore, error) {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host: host,
		Port: port,
	})
	if err != nil {
		return nil, fmt.Errorf("create qdrant client: %w", err)
	}

	store := &QdrantStore{
		client: client,
		host:   host,
		port:   port,
	}

	if err := store.healthCheckWithRetry(context.Background()); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	return store, nil
}

// healthCheckWithRetry performs a health check with exponential backoff.
// Initial interval 500ms, max interval 10s, max elapsed 30s.
func (s *QdrantStore) healthCheckWithRetry(ctx context.Context) error {
	exponentialBackoff := backoff.NewExponentialBackOff()
	exponentialBackoff.InitialInterval = 500 * time.Millisecond
	exponentialBackoff.MaxInterval = 10 * time.Second
	exponentialBackoff.MaxElapsedTime = 30 * time.Second

	return backoff.Retry(func() error {
		return s.Health(ctx)
	}, backoff.WithContext(exponentialBackoff, ctx))
}

// Health performs a single health check against Qdrant.
func (s *QdrantStore) Health(ctx context.Context) error {
	result, err := s.client.HealthCheck(ctx)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	if result == nil || result.Title == "" {
		return fmt.Errorf("health check returned invalid response")
	}
	return nil
}

// EnsureCollection creates the documents collection if it does not exist.
// Idempotent, safe to call on every startup.
func (s *QdrantStore) EnsureCollection(ctx context.Context) error {
	collections, err := s.client.ListCollections(ctx)
	if err != nil {
		return fmt.Errorf("list collections: %w", err)
	}
	for _, name := range collections {
		if name == CollectionName {
			return nil
		}
	}

	err = s.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: CollectionName,
		VectorsConfig: qdrant.NewVectorsConfigMap(map[string]*qdrant.VectorParams{
			vectorName: {
				Size:     VectorDimension,
				Distance: qdrant.Distance_Cosine,
			},
		}),
	})
	if err != nil {
		return fmt.Errorf("create collection: %w", err)
	}
	return nil
}

// ClearCollection drops and recreates the collection. Used by tests and the
// occasional manual reset.
func (s *QdrantStore) ClearCollection(ctx context.Context) error {
	if err := s.client.DeleteCollection(ctx, CollectionName); err != nil {
		return fmt.Errorf("delete collection: %w", err)
	}
	return s.EnsureCollection(ctx)
}

// Close closes the underlying gRPC connection.
func (s *QdrantStore) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}

// Insert stores a document, assigning its id and timestamps. The upsert waits
// for Qdrant to commit the point so the write is durable before returning.
// Documents with empty embeddings are stored as vectorless points.
func (s *QdrantStore) Insert(ctx context.Context, doc Document) (Document, error) {
	now := time.Now().UTC()
	doc.ID = uuid.New().String()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	vectors := map[string]*qdrant.Vector{}
	if doc.HasEmbedding() {
		vectors[vectorName] = qdrant.NewVector(doc.Embedding...)
	}

	point := &qdrant.PointStruct{
		Id:      qdrant.NewIDUUID(doc.ID),
		Vectors: qdrant.NewVectorsMap(vectors),
		Payload: qdrant.NewValueMap(map[string]any{
			"title":      doc.Title,
			"content":    doc.Content,
			"file_path":  doc.FilePath,
			"created_at": doc.CreatedAt.Format(time.RFC3339),
			"updated_at": doc.UpdatedAt.Format(time.RFC3339),
		}),
	}

	if err := s.upsertWithRetry(ctx, []*qdrant.PointStruct{point}); err != nil {
		return Document{}, fmt.Errorf("%w: upsert document: %v", ErrUnreachable, err)
	}

	return doc, nil
}

// upsertWithRetry performs a waited upsert with exponential backoff.
func (s *QdrantStore) upsertWithRetry(ctx context.Context, points []*qdrant.PointStruct) error {
	exponentialBackoff := backoff.NewExponentialBackOff()
	exponentialBackoff.InitialInterval = 500 * time.Millisecond
	exponentialBackoff.MaxInterval = 10 * time.Second
	exponentialBackoff.MaxElapsedTime = 30 * time.Second

	return backoff.Retry(func() error {
		_, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
			CollectionName: CollectionName,
			Points:         points,
			Wait:           qdrant.PtrOf(true),
		})
		return err
	}, backoff.WithContext(exponentialBackoff, ctx))
}

// FetchAll scrolls through the whole collection. Both search modes scan the
// full corpus, so embeddings are returned along with payloads.
func (s *QdrantStore) FetchAll(ctx context.Context) ([]Document, error) {
	var docs []Document
	var offset *qdrant.PointId

	batchSize := uint32(100)

	for {
		results, err := s.client.Scroll(ctx, &qdrant.ScrollPoints{
			CollectionName: CollectionName,
			Limit:          qdrant.PtrOf(batchSize),
			Offset:         offset,
			WithPayload:    qdrant.NewWithPayload(true),
			WithVectors:    qdrant.NewWithVectors(true),
		})
		if err != nil {
			return nil, fmt.Errorf("%w: scroll documents: %v", ErrUnreachable, err)
		}

		for _, point := range results {
			docs = append(docs, documentFromPoint(point.Id, point.Payload, point.Vectors))
		}

		// Fewer results than the batch size means the last page.
		if uint32(len(results)) < batchSize {
			break
		}
		offset = results[len(results)-1].Id
	}

	return docs, nil
}

// FetchByID retrieves a single document. Returns ErrNotFound for unknown ids.
func (s *QdrantStore) FetchByID(ctx context.Context, id string) (Document, error) {
	results, err := s.client.Get(ctx, &qdrant.GetPoints{
		CollectionName: CollectionName,
		Ids:            []*qdrant.PointId{qdrant.NewIDUUID(id)},
		WithPayload:    qdrant.NewWithPayload(true),
		WithVectors:    qdrant.NewWithVectors(true),
	})
	if err != nil {
		return Document{}, fmt.Errorf("%w: get document: %v", ErrUnreachable, err)
	}
	if len(results) == 0 {
		return Document{}, ErrNotFound
	}

	point := results[0]
	return documentFromPoint(point.Id, point.Payload, point.Vectors), nil
}

// DeleteByID removes a document. Returns ErrNotFound if no point exists with
// the given id, distinct from a transport failure.
func (s *QdrantStore) DeleteByID(ctx context.Context, id string) error {
	if _, err := s.FetchByID(ctx, id); err != nil {
		return err
	}

	_, err := s.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: CollectionName,
		Points:         qdrant.NewPointsSelector(qdrant.NewIDUUID(id)),
		Wait:           qdrant.PtrOf(true),
	})
	if err != nil {
		return fmt.Errorf("%w: delete document: %v", ErrUnreachable, err)
	}
	return nil
}

// documentFromPoint rebuilds a Document from a Qdrant point.
func documentFromPoint(id *qdrant.PointId, payload map[string]*qdrant.Value, vectors *qdrant.VectorsOutput) Document {
	doc := Document{
		ID:       id.GetUuid(),
		Title:    payload["title"].GetStringValue(),
		Content:  payload["content"].GetStringValue(),
		FilePath: payload["file_path"].GetStringValue(),
	}

	// Zero time on parse failure; timestamps are informational.
	if t, err := time.Parse(time.RFC3339, payload["created_at"].GetStringValue()); err == nil {
		doc.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, payload["updated_at"].GetStringValue()); err == nil {
		doc.UpdatedAt = t
	}

	if named := vectors.GetVectors(); named != nil {
		if v, ok := named.GetVectors()[vectorName]; ok {
			doc.Embedding = v.GetData()
		}
	}

	return doc
}
