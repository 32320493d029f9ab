// Package hashed implements the deterministic embedding fallback.
//
// When no trained embedding model is configured, texts are embedded as
// hashed bags of words: tokens are split on non-alphanumeric boundaries,
// hashed into a fixed number of buckets, and the count vector is
// L2-normalized. The result captures token overlap rather than meaning, which
// degrades recall but keeps the similarity pipeline fully functional with no
// external dependency.
package hashed
