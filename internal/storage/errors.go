package storage

import "errors"

var (
	ErrNotFound    = errors.New("document not found")
	ErrUnreachable = errors.New("storage unreachable")
)
