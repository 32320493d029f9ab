package analyze

import "errors"

var (
	ErrBaseRequired   = errors.New("knowledge base is required")
	ErrScorerRequired = errors.New("similarity scorer is required")
)
