// Package ingestion loads program catalogs and ranking tables into storage.
//
// The Importer accepts program records as decoded from the catalog JSON
// format. Records that arrive without a vector are embedded from their name
// and description on a worker pool, with retries and an optional request
// rate limit. Every record is validated before it is written; invalid ones
// are reported and skipped rather than failing the import. Programs are
// upserted by school and program name, so importing the same file twice
// updates records in place.
//
// Ranking tables replace the stored set as a whole.
package ingestion
