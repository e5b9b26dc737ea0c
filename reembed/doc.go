// Package reembed provides functionality for reembedding the stored grant
// corpus with a new or updated embedding model.
//
// Stored grant embeddings and query embeddings must share a provider, model,
// and dimensionality; after a model change the whole corpus has to be
// regenerated or similarity search fails with a dimension mismatch. This
// package supports batch processing of grants, progress tracking, retry
// logic with exponential backoff, and vector normalization.
package reembed
