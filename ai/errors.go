package ai

import "errors"

var (
	// ErrEmbeddingMismatch is returned when a batch embedding call returns a
	// different number of vectors than texts submitted.
	ErrEmbeddingMismatch = errors.New("embedding result count mismatch")
)
