package ingestion

import "errors"

var (
	// ErrGrantRepositoryRequired is returned when a grant repository is not provided.
	ErrGrantRepositoryRequired = errors.New("grant repository required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")
)
