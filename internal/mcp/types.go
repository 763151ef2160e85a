// Package mcp exposes the document service as MCP tools.
package mcp

import "time"

// AddDocumentInput defines the input parameters for the add_document tool.
type AddDocumentInput struct {
	// Title is the document label.
	Title string `json:"title" jsonschema:"required,description=Title of the document"`
	// Content is the full text body to index.
	Content string `json:"content" jsonschema:"required,description=Full text content of the document"`
}

// AddDocumentOutput confirms the created document.
type AddDocumentOutput struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Embedded bool   `json:"embedded"`
}

// SearchInput defines the input parameters for both search tools.
type SearchInput struct {
	// Query is the search text.
	Query string `json:"query" jsonschema:"required,description=The search query"`
}

// SearchResult is a single document match.
type SearchResult struct {
	ID      string  `json:"id"`
	Title   string  `json:"title"`
	Content string  `json:"content"`
	Score   float64 `json:"score,omitempty"`
}

// SearchOutput contains the search results.
type SearchOutput struct {
	Results []SearchResult `json:"results"`
	// Message provides informational context (e.g. "no matching documents").
	Message string `json:"message,omitempty"`
}

// ListDocumentsInput takes no parameters.
type ListDocumentsInput struct{}

// DocumentSummary describes one stored document.
type DocumentSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Embedded  bool      `json:"embedded"`
	CreatedAt time.Time `json:"created_at"`
}

// ListDocumentsOutput contains all stored documents.
type ListDocumentsOutput struct {
	Documents []DocumentSummary `json:"documents"`
	Count     int               `json:"count"`
}

// DeleteDocumentInput identifies the document to delete.
type DeleteDocumentInput struct {
	// ID is the document id to delete.
	ID string `json:"id" jsonschema:"required,description=The document id to delete"`
}

// DeleteDocumentOutput reports the outcome.
type DeleteDocumentOutput struct {
	Deleted bool   `json:"deleted"`
	Message string `json:"message,omitempty"`
}
