package ai

import "errors"

var (
	// ErrEmbedderRequired indicates a nil embedder was supplied.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrCircuitOpen indicates the embedding provider is rejecting calls
	// because recent failures tripped the circuit breaker.
	ErrCircuitOpen = errors.New("embedding provider circuit open")

	// ErrInvalidConfig indicates an AI configuration value is out of range.
	ErrInvalidConfig = errors.New("invalid ai config")
)
