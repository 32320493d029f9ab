package match

import "errors"

var (
	ErrBaseRequired       = errors.New("knowledge base is required")
	ErrEmbedderRequired   = errors.New("embedder is required")
	ErrNormalizerRequired = errors.New("normalizer is required")
)
