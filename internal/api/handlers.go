package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path/filepath"

	"github.com/docdex/docdex/internal/docs"
	"github.com/docdex/docdex/internal/extract"
	"github.com/docdex/docdex/internal/storage"
)

// handleAdd creates a document from typed title and content.
func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	var req AddDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	doc, err := s.pipeline.AddDocument(r.Context(), req.Title, req.Content)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toDocumentResponse(doc))
}

// handleUpload ingests a multipart file upload. The extension gate runs
// before extraction, blob storage, and the pipeline.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	ext := filepath.Ext(header.Filename)
	if !s.extractor.Supported(ext) {
		writeError(w, http.StatusBadRequest, extract.ErrUnsupportedFormat.Error())
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read upload")
		return
	}

	text, err := s.extractor.Extract(data, ext)
	if err != nil {
		s.logger.Warn("Text extraction failed", "filename", header.Filename, "error", err)
		writeError(w, http.StatusBadRequest, "could not extract text from file")
		return
	}

	// Blob storage failure is the upload's concern, not the pipeline's: the
	// document is not created when the original cannot be kept.
	uri, err := s.blobs.Save(r.Context(), header.Filename, data)
	if err != nil {
		s.logger.Error("Blob save failed", "filename", header.Filename, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to store uploaded file")
		return
	}

	doc, err := s.pipeline.AddFromFile(r.Context(), text, header.Filename, uri)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toDocumentResponse(doc))
}

// handleKeywordSearch serves GET /api/documents/search?q=.
func (s *Server) handleKeywordSearch(w http.ResponseWriter, r *http.Request) {
	results, err := s.searcher.KeywordSearch(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDocumentResponses(results))
}

// handleSemanticSearch serves GET /api/documents/ai-search?q=.
func (s *Server) handleSemanticSearch(w http.ResponseWriter, r *http.Request) {
	results, err := s.searcher.SemanticSearch(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toScoredResponses(results))
}

// handleListAll serves GET /api/documents/all.
func (s *Server) handleListAll(w http.ResponseWriter, r *http.Request) {
	documents, err := s.store.FetchAll(r.Context())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDocumentResponses(documents))
}

// handleDelete serves DELETE /api/documents/{id}.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := s.store.DeleteByID(r.Context(), id); err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "document deleted"})
}

// writeDomainError maps domain errors to HTTP status codes.
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, docs.ErrMissingTitle),
		errors.Is(err, docs.ErrMissingContent),
		errors.Is(err, docs.ErrMissingFilename):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, "document not found")
	case errors.Is(err, storage.ErrUnreachable):
		s.logger.Error("Storage failure", "error", err)
		writeError(w, http.StatusBadGateway, "storage unavailable")
	default:
		s.logger.Error("Request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "something went wrong")
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
