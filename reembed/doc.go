// Package reembed regenerates the stored vectors of every catalog program,
// typically after switching embedding models.
//
// Programs are read in pages ordered by ID, embedded in batches from their
// name and description, normalized to unit length and written back. Embedding
// calls are retried with exponential backoff and progress is written to a
// caller-supplied writer. The retry and normalization helpers are shared with
// the ingestion package.
package reembed
