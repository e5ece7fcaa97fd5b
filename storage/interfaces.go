package storage

import (
	"context"

	"github.com/poiesic/unifinder/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the repository and releases resources.
	Close() error
}

// CatalogRepository is the read-only view of the catalog used by the
// recommendation engine.
type CatalogRepository interface {
	// ListPrograms returns every program in insertion order.
	ListPrograms(ctx context.Context) ([]*core.ProgramRecord, error)

	// GetRankings returns the category-keyed ranking table.
	GetRankings(ctx context.Context) (core.SchoolRankings, error)
}

// ProgramQuery filters SearchPrograms. Empty fields match everything.
// Non-empty fields match case-insensitive substrings and are ANDed.
type ProgramQuery struct {
	Name     string
	Location string
	Category string
}

// ProgramRepository provides operations for managing program records.
type ProgramRepository interface {
	Repository

	// AddPrograms inserts or replaces programs keyed by school and program name.
	// A program whose natural key already exists keeps its ID and InsertedAt
	// and has its other fields replaced. New programs get IDs from a sequence,
	// so listing order follows first insertion.
	// Returns the records with IDs and timestamps populated.
	AddPrograms(ctx context.Context, records ...*core.ProgramRecord) ([]*core.ProgramRecord, error)

	// UpdatePrograms updates existing programs by ID.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any record doesn't exist.
	UpdatePrograms(ctx context.Context, records ...*core.ProgramRecord) ([]*core.ProgramRecord, error)

	// DeletePrograms removes programs by their IDs.
	// Returns ErrNotFound if any record doesn't exist.
	DeletePrograms(ctx context.Context, ids ...core.ID) error

	// GetProgram retrieves a single program by ID.
	// Returns ErrNotFound if the record doesn't exist.
	GetProgram(ctx context.Context, id core.ID) (*core.ProgramRecord, error)

	// GetPrograms retrieves multiple programs by their IDs.
	// Returns only the records that exist (no error for missing records).
	GetPrograms(ctx context.Context, ids ...core.ID) ([]*core.ProgramRecord, error)

	// ListPrograms returns every program in ID order.
	ListPrograms(ctx context.Context) ([]*core.ProgramRecord, error)

	// ListProgramsAfter returns up to limit programs with ID greater than after,
	// in ID order. Used for paging through the catalog.
	ListProgramsAfter(ctx context.Context, after core.ID, limit int) ([]*core.ProgramRecord, error)

	// CountPrograms returns the number of stored programs.
	CountPrograms(ctx context.Context) (int, error)

	// SearchPrograms returns the programs matching query, in ID order.
	SearchPrograms(ctx context.Context, query ProgramQuery) ([]*core.ProgramRecord, error)
}

// RankingRepository provides operations for managing school ranking tables.
type RankingRepository interface {
	Repository

	// SetRankings replaces the ranking table of one category.
	SetRankings(ctx context.Context, category string, entries []core.RankingEntry) error

	// ReplaceRankings replaces every ranking table with the given set.
	ReplaceRankings(ctx context.Context, rankings core.SchoolRankings) error

	// GetRankings returns every ranking table.
	GetRankings(ctx context.Context) (core.SchoolRankings, error)

	// GetCategoryRankings returns one category's table.
	// Returns ErrNotFound if the category has no table.
	GetCategoryRankings(ctx context.Context, category string) ([]core.RankingEntry, error)

	// DeleteRankings removes one category's table.
	// Returns ErrNotFound if the category has no table.
	DeleteRankings(ctx context.Context, category string) error
}
