package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/docdex/docdex/internal/docs"
	"github.com/docdex/docdex/internal/storage"
)

// makeAddHandler creates the add_document tool handler.
func makeAddHandler(pipeline *docs.Pipeline) func(
	context.Context, *mcp.CallToolRequest, AddDocumentInput,
) (*mcp.CallToolResult, AddDocumentOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input AddDocumentInput) (
		*mcp.CallToolResult, AddDocumentOutput, error,
	) {
		doc, err := pipeline.AddDocument(ctx, input.Title, input.Content)
		if err != nil {
			return nil, AddDocumentOutput{}, fmt.Errorf("add document: %w", err)
		}

		return nil, AddDocumentOutput{
			ID:       doc.ID,
			Title:    doc.Title,
			Embedded: doc.HasEmbedding(),
		}, nil
	}
}

// makeKeywordSearchHandler creates the keyword_search tool handler.
func makeKeywordSearchHandler(searcher *docs.Searcher) func(
	context.Context, *mcp.CallToolRequest, SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SearchInput) (
		*mcp.CallToolResult, SearchOutput, error,
	) {
		matches, err := searcher.KeywordSearch(ctx, input.Query)
		if err != nil {
			return nil, SearchOutput{}, fmt.Errorf("keyword search: %w", err)
		}

		results := make([]SearchResult, 0, len(matches))
		for _, doc := range matches {
			results = append(results, SearchResult{
				ID:      doc.ID,
				Title:   doc.Title,
				Content: doc.Content,
			})
		}

		if len(results) == 0 {
			return nil, SearchOutput{
				Results: []SearchResult{},
				Message: "No matching documents found.",
			}, nil
		}
		return nil, SearchOutput{Results: results}, nil
	}
}

// makeSemanticSearchHandler creates the semantic_search tool handler.
func makeSemanticSearchHandler(searcher *docs.Searcher) func(
	context.Context, *mcp.CallToolRequest, SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SearchInput) (
		*mcp.CallToolResult, SearchOutput, error,
	) {
		scored, err := searcher.SemanticSearch(ctx, input.Query)
		if err != nil {
			return nil, SearchOutput{}, fmt.Errorf("semantic search: %w", err)
		}

		results := make([]SearchResult, 0, len(scored))
		for _, s := range scored {
			results = append(results, SearchResult{
				ID:      s.ID,
				Title:   s.Title,
				Content: s.Content,
				Score:   s.Score,
			})
		}

		if len(results) == 0 {
			return nil, SearchOutput{
				Results: []SearchResult{},
				Message: "The index is empty.",
			}, nil
		}
		return nil, SearchOutput{Results: results}, nil
	}
}

// makeListHandler creates the list_documents tool handler.
func makeListHandler(store storage.Store) func(
	context.Context, *mcp.CallToolRequest, ListDocumentsInput,
) (*mcp.CallToolResult, ListDocumentsOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ListDocumentsInput) (
		*mcp.CallToolResult, ListDocumentsOutput, error,
	) {
		documents, err := store.FetchAll(ctx)
		if err != nil {
			return nil, ListDocumentsOutput{}, fmt.Errorf("list documents: %w", err)
		}

		summaries := make([]DocumentSummary, 0, len(documents))
		for _, doc := range documents {
			summaries = append(summaries, DocumentSummary{
				ID:        doc.ID,
				Title:     doc.Title,
				Embedded:  doc.HasEmbedding(),
				CreatedAt: doc.CreatedAt,
			})
		}

		return nil, ListDocumentsOutput{
			Documents: summaries,
			Count:     len(summaries),
		}, nil
	}
}

// makeDeleteHandler creates the delete_document tool handler.
func makeDeleteHandler(store storage.Store) func(
	context.Context, *mcp.CallToolRequest, DeleteDocumentInput,
) (*mcp.CallToolResult, DeleteDocumentOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input DeleteDocumentInput) (
		*mcp.CallToolResult, DeleteDocumentOutput, error,
	) {
		err := store.DeleteByID(ctx, input.ID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, DeleteDocumentOutput{
					Deleted: false,
					Message: fmt.Sprintf("No document with id %s.", input.ID),
				}, nil
			}
			return nil, DeleteDocumentOutput{}, fmt.Errorf("delete document: %w", err)
		}

		return nil, DeleteDocumentOutput{Deleted: true}, nil
	}
}
