// Package blob stores uploaded original files and hands back opaque URIs.
package blob

import "context"

// Store persists an uploaded original and returns a URI for it.
// The URI ends up in Document.FilePath; the rest of the system treats it as
// an opaque string.
type Store interface {
	Save(ctx context.Context, name string, data []byte) (string, error)
}
