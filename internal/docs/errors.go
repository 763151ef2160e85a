package docs

import "errors"

// Validation failures, reported to the caller before any embedding or storage
// call is made.
var (
	ErrMissingTitle    = errors.New("title is required")
	ErrMissingContent  = errors.New("content is required")
	ErrMissingFilename = errors.New("filename is required")
)
