package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/docdex/docdex/internal/docs"
	"github.com/docdex/docdex/internal/storage"
)

// Server wraps the MCP server with dependencies.
type Server struct {
	server   *mcp.Server
	pipeline *docs.Pipeline
	searcher *docs.Searcher
	store    storage.Store
}

// Config holds server dependencies.
type Config struct {
	Pipeline *docs.Pipeline
	Searcher *docs.Searcher
	Store    storage.Store
}

// NewServer creates a configured MCP server with tools registered.
func NewServer(cfg *Config) *Server {
	impl := &mcp.Implementation{
		Name:    "docdex-server",
		Version: "v0.1.0",
	}

	server := mcp.NewServer(impl, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_document",
		Description: "Add a text document to the index. The document becomes searchable by keyword and, when embedding succeeds, semantically.",
	}, makeAddHandler(cfg.Pipeline))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "keyword_search",
		Description: "Find documents whose title or content contains the query as a case-insensitive substring.",
	}, makeKeywordSearchHandler(cfg.Searcher))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "semantic_search",
		Description: "Find the 5 documents most similar to the query by embedding cosine similarity, with scores.",
	}, makeSemanticSearchHandler(cfg.Searcher))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_documents",
		Description: "List all stored documents with their ids and titles.",
	}, makeListHandler(cfg.Store))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_document",
		Description: "Delete a document by id.",
	}, makeDeleteHandler(cfg.Store))

	return &Server{
		server:   server,
		pipeline: cfg.Pipeline,
		searcher: cfg.Searcher,
		store:    cfg.Store,
	}
}

// Run starts the server with stdio transport (blocks until client disconnects).
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// MCPServer returns the underlying MCP server instance.
// Used by transport handlers that need to wrap the server.
func (s *Server) MCPServer() *mcp.Server {
	return s.server
}
