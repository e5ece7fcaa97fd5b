package badger

import (
	"context"
	"testing"

	"github.com/poiesic/unifinder/core"
	"github.com/poiesic/unifinder/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRankings(t *testing.T) storage.RankingRepository {
	t.Helper()
	programRepo, rankingRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		rankingRepo.Close()
		programRepo.Close()
		backend.Close()
	})
	return rankingRepo
}

func TestRankingBasics(t *testing.T) {
	repo := setupRankings(t)
	ctx := context.Background()

	entries := []core.RankingEntry{
		{School: "University of the Philippines Manila", Rating: 9.8},
		{School: "University of Santo Tomas", Rating: 9.2},
	}
	require.NoError(t, repo.SetRankings(ctx, "Medicine", entries))

	got, err := repo.GetCategoryRankings(ctx, "Medicine")
	require.NoError(t, err)
	assert.Equal(t, entries, got, "table order is preserved")

	all, err := repo.GetRankings(ctx)
	require.NoError(t, err)
	assert.Equal(t, core.SchoolRankings{"Medicine": entries}, all)
}

func TestRankings_Empty(t *testing.T) {
	repo := setupRankings(t)
	ctx := context.Background()

	all, err := repo.GetRankings(ctx)
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)

	_, err = repo.GetCategoryRankings(ctx, "Law")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSetRankings_Validation(t *testing.T) {
	repo := setupRankings(t)
	err := repo.SetRankings(context.Background(), "  ", nil)
	assert.ErrorIs(t, err, storage.ErrInvalidQuery)
}

func TestReplaceRankings(t *testing.T) {
	repo := setupRankings(t)
	ctx := context.Background()

	require.NoError(t, repo.SetRankings(ctx, "Old", []core.RankingEntry{{School: "A", Rating: 5}}))

	replacement := core.SchoolRankings{
		"Engineering": {{School: "Mapua", Rating: 9}},
		"Business":    {{School: "DLSU", Rating: 8.5}},
	}
	require.NoError(t, repo.ReplaceRankings(ctx, replacement))

	all, err := repo.GetRankings(ctx)
	require.NoError(t, err)
	assert.Equal(t, replacement, all)

	err = repo.ReplaceRankings(ctx, core.SchoolRankings{"": nil})
	assert.ErrorIs(t, err, storage.ErrInvalidQuery)
}

func TestDeleteRankings(t *testing.T) {
	repo := setupRankings(t)
	ctx := context.Background()

	require.NoError(t, repo.SetRankings(ctx, "Law", []core.RankingEntry{{School: "UP", Rating: 9}}))
	require.NoError(t, repo.DeleteRankings(ctx, "Law"))

	_, err := repo.GetCategoryRankings(ctx, "Law")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	err = repo.DeleteRankings(ctx, "Law")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestNewCatalog(t *testing.T) {
	programRepo, rankingRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		rankingRepo.Close()
		programRepo.Close()
		backend.Close()
	}()
	ctx := context.Background()

	_, err = programRepo.AddPrograms(ctx, program("UP", "BS Math", "Science", "Diliman"))
	require.NoError(t, err)
	require.NoError(t, rankingRepo.SetRankings(ctx, "Science", []core.RankingEntry{{School: "UP", Rating: 9}}))

	catalog := storage.NewCatalog(programRepo, rankingRepo)
	programs, err := catalog.ListPrograms(ctx)
	require.NoError(t, err)
	assert.Len(t, programs, 1)

	rankings, err := catalog.GetRankings(ctx)
	require.NoError(t, err)
	assert.Len(t, rankings["Science"], 1)
}
