package ai

import "context"

// Embedder turns text into vector embeddings for similarity matching.
// Implementations must be safe for concurrent use.
type Embedder interface {
	// EmbedText embeds a single text.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts embeds a batch of texts in one call, returning vectors
	// in input order. Batching amortizes the round trip to the service.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Provider owns the lifecycle of the embedding services it hands out, so
// they share configuration and underlying clients.
type Provider interface {
	// Embedder returns the text embedding service, safe for concurrent use.
	Embedder() Embedder

	// Close releases the provider's resources. Services obtained from the
	// provider must not be used afterward.
	Close() error
}
