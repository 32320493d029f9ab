package knowledge

import "errors"

var (
	ErrNormalizerRequired  = errors.New("normalizer is required")
	ErrMalformedConceptMap = errors.New("malformed concept map")
)
