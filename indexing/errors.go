package indexing

import "errors"

var (
	// ErrConceptRepositoryRequired is returned when no concept repository is provided.
	ErrConceptRepositoryRequired = errors.New("concept repository is required")

	// ErrEmbedderRequired is returned when no embedder is provided.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrNormalizerRequired is returned when no normalizer is provided.
	ErrNormalizerRequired = errors.New("normalizer is required")

	// ErrEmbeddingMismatch is returned when the embedder returns a different
	// number of vectors than texts submitted.
	ErrEmbeddingMismatch = errors.New("embedding count does not match text count")
)
