package storage

import (
	"context"

	"github.com/poiesic/grantmatch/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// GrantRepository provides operations for managing the grant corpus.
type GrantRepository interface {
	Repository

	// AddGrants adds one or more grants to storage.
	// For grants with ID=0, derives a content-based ID from the funding body
	// and title, so re-ingesting the same call overwrites rather than
	// duplicates. Sets InsertedAt and UpdatedAt timestamps.
	// Returns the grants with IDs and timestamps populated.
	AddGrants(ctx context.Context, grants ...*core.Grant) ([]*core.Grant, error)

	// UpdateGrants updates existing grants.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any grant doesn't exist.
	UpdateGrants(ctx context.Context, grants ...*core.Grant) ([]*core.Grant, error)

	// DeleteGrants removes grants by their IDs.
	// Also removes associated indices.
	// Returns ErrNotFound if any grant doesn't exist.
	DeleteGrants(ctx context.Context, ids ...core.ID) error

	// GetGrant retrieves a single grant by ID.
	// Returns ErrNotFound if the grant doesn't exist.
	GetGrant(ctx context.Context, id core.ID) (*core.Grant, error)

	// GetGrants retrieves multiple grants by their IDs.
	// Returns only the grants that exist (no error for missing grants).
	GetGrants(ctx context.Context, ids ...core.ID) ([]*core.Grant, error)

	// FindGrantByContent finds a grant by its (funding body, title) tuple.
	// Returns ErrNotFound if no matching grant exists.
	FindGrantByContent(ctx context.Context, fundingBody, title string) (*core.Grant, error)

	// AllGrants retrieves the full corpus as an independent snapshot.
	// Mutating the returned grants does not affect storage. This is the
	// corpus feed for the matching engine.
	AllGrants(ctx context.Context) ([]*core.Grant, error)
}
