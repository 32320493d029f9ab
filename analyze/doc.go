// Package analyze resolves individual symptom phrases to canonical concepts.
//
// Input text is split on phrase delimiters, each phrase is checked against the
// synonym table for an exact hit, and misses fall back to a hybrid
// lexical-plus-semantic scan of the concept vocabulary. Phrases that resolve
// weakly are flagged for research instead of being forced onto a concept.
package analyze
