package reembed

import "errors"

var (
	// ErrInvalidMaxAttempts is returned when a retry policy allows no attempts.
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrEmbeddingMismatch is returned when the embedder returns a different
	// number of vectors than texts, or an unusable vector.
	ErrEmbeddingMismatch = errors.New("embedding result mismatch")

	// ErrRepositoryRequired is returned when no program repository is given.
	ErrRepositoryRequired = errors.New("program repository required")

	// ErrEmbedderRequired is returned when no embedder is given.
	ErrEmbedderRequired = errors.New("embedder required")
)
