package storage

import (
	"context"

	"github.com/poiesic/unifinder/core"
)

type catalog struct {
	programs ProgramRepository
	rankings RankingRepository
}

// NewCatalog joins program and ranking repositories into the read-only
// catalog view consumed by the engine.
func NewCatalog(programs ProgramRepository, rankings RankingRepository) CatalogRepository {
	return &catalog{programs: programs, rankings: rankings}
}

func (c *catalog) ListPrograms(ctx context.Context) ([]*core.ProgramRecord, error) {
	return c.programs.ListPrograms(ctx)
}

func (c *catalog) GetRankings(ctx context.Context) (core.SchoolRankings, error) {
	return c.rankings.GetRankings(ctx)
}
