package badger

import (
	"fmt"

	"github.com/poiesic/symptomit/core"
)

// Key prefixes for different data types
const (
	conceptRecordPrefix = "conrec"
	conceptLabelPrefix  = "conlab"
	patternRulePrefix   = "patrul"
)

// makeConceptKey generates a key for a concept by ID.
func makeConceptKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", conceptRecordPrefix, id))
}

// makeConceptLabelKey generates a key for the label index.
// The caller lowercases the label so lookups are case-insensitive.
func makeConceptLabelKey(label string) []byte {
	return []byte(conceptLabelPrefix + ":" + label)
}

// makePatternRuleKey generates a key for a pattern rule by rule id.
func makePatternRuleKey(id string) []byte {
	return []byte(patternRulePrefix + ":" + id)
}
