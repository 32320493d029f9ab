package storage

import (
	"context"

	"github.com/poiesic/symptomit/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// FindSimilar finds stored concepts similar to the given vector.
	// Returns concepts with similarity >= minSimilarity, up to limit results,
	// ordered by similarity score (highest first).
	FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.SimilarConcept, error)

	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// ConceptRepository provides operations for managing persisted concepts,
// including the vectors computed by the indexing pipeline.
type ConceptRepository interface {
	Repository

	// PutConcepts inserts or replaces concepts. Concepts with Id=0 get a
	// content-based ID derived from the lowercased label. Returns the
	// concepts with IDs populated.
	PutConcepts(ctx context.Context, concepts ...*core.Concept) ([]*core.Concept, error)

	// DeleteConcepts removes concepts by their IDs.
	// Returns ErrNotFound if any concept doesn't exist.
	DeleteConcepts(ctx context.Context, ids ...core.ID) error

	// GetConcept retrieves a single concept by ID.
	// Returns ErrNotFound if the concept doesn't exist.
	GetConcept(ctx context.Context, id core.ID) (*core.Concept, error)

	// GetConcepts retrieves multiple concepts by their IDs.
	// Returns only the concepts that exist (no error for missing concepts).
	GetConcepts(ctx context.Context, ids ...core.ID) ([]*core.Concept, error)

	// FindConceptByLabel finds a concept by its label, case-insensitively.
	// Returns ErrNotFound if no matching concept exists.
	FindConceptByLabel(ctx context.Context, label string) (*core.Concept, error)

	// GetAllConcepts retrieves all stored concepts.
	GetAllConcepts(ctx context.Context) ([]*core.Concept, error)
}

// RuleRepository provides operations for managing persisted pattern rules.
type RuleRepository interface {
	// PutRules inserts or replaces pattern rules keyed by rule id.
	PutRules(ctx context.Context, rules ...*core.PatternRule) error

	// GetAllRules retrieves all stored pattern rules ordered by rule id.
	GetAllRules(ctx context.Context) ([]*core.PatternRule, error)

	// DeleteRules removes pattern rules by their ids.
	// Returns ErrNotFound if any rule doesn't exist.
	DeleteRules(ctx context.Context, ids ...string) error

	// Close closes the storage backend and releases resources.
	Close() error
}
