// Package knowledge loads and indexes the concept knowledge base.
//
// A Base is built once from concept records and shared read-only across
// queries. Per-concept normalized labels, token sets, and description blobs
// are precomputed at build time so matching never normalizes knowledge-base
// text on the hot path. Loaders exist for the JSON concept map, CSV candidate
// exports, and YAML pattern rule files; a missing source file always yields a
// valid empty state.
package knowledge
