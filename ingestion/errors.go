package ingestion

import "errors"

var (
	// ErrProgramRepositoryRequired is returned when a program repository is not provided.
	ErrProgramRepositoryRequired = errors.New("program repository required")

	// ErrRankingRepositoryRequired is returned when a ranking repository is not provided.
	ErrRankingRepositoryRequired = errors.New("ranking repository required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")

	// ErrInvalidConfig indicates an import configuration value is out of range.
	ErrInvalidConfig = errors.New("invalid ingestion config")

	// ErrMalformedInput indicates a catalog or ranking file could not be decoded.
	ErrMalformedInput = errors.New("malformed import input")
)
