package domain

import "errors"

var (
	// ErrNotFound signals a missing resume.
	ErrNotFound = errors.New("not found")
	// ErrVectorDimMismatch signals a vector dimension mismatch.
	ErrVectorDimMismatch = errors.New("vector dimension mismatch")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	// Search callers treat it as "no result", not a fatal error.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrIndexNotProvisioned signals that the search index has not been created yet.
	ErrIndexNotProvisioned = errors.New("search index not provisioned")
	// ErrTextSearchNotSupported signals that the store cannot run BM25 queries.
	ErrTextSearchNotSupported = errors.New("text search not supported by store")
)
