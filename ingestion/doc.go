// Package ingestion provides pipeline orchestration for loading grants into
// the corpus.
//
// The Pipeline type manages the ingestion workflow for grants, including:
//   - Validating and adding grants to storage
//   - Generating embeddings asynchronously
//
// Embedding is performed concurrently using a worker pool. Errors during
// async processing are logged but do not fail the ingestion operation: a
// grant without an embedding still participates in filter-mode matching.
package ingestion
