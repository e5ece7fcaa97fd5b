package reembed

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/poiesic/unifinder/core"
	"github.com/poiesic/unifinder/storage"
	"github.com/poiesic/unifinder/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepo(t *testing.T, count int) storage.ProgramRepository {
	t.Helper()
	programRepo, rankingRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		rankingRepo.Close()
		programRepo.Close()
		backend.Close()
	})

	programs := make([]*core.ProgramRecord, count)
	for i := range programs {
		programs[i] = &core.ProgramRecord{
			School:      fmt.Sprintf("School %d", i),
			Name:        fmt.Sprintf("Program %d", i),
			Description: "A program",
			Vector:      []float32{1, 0},
		}
	}
	if count > 0 {
		_, err = programRepo.AddPrograms(context.Background(), programs...)
		require.NoError(t, err)
	}
	return programRepo
}

func TestProgramIterator_Batches(t *testing.T) {
	tests := []struct {
		name      string
		count     int
		batchSize int
		want      []int
	}{
		{"empty repository", 0, 10, nil},
		{"single partial batch", 5, 10, []int{5}},
		{"exact multiple", 20, 10, []int{10, 10}},
		{"trailing partial", 25, 10, []int{10, 10, 5}},
		{"default batch size", 3, 0, []int{3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := setupRepo(t, tt.count)
			it := NewProgramIterator(repo, tt.batchSize)

			var sizes []int
			seen := make(map[core.ID]bool)
			err := it.ForEach(context.Background(), func(programs []*core.ProgramRecord) error {
				sizes = append(sizes, len(programs))
				for _, p := range programs {
					assert.False(t, seen[p.Id], "program %d visited twice", p.Id)
					seen[p.Id] = true
				}
				return nil
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, sizes)
			assert.Len(t, seen, tt.count)
		})
	}
}

func TestProgramIterator_StopsOnError(t *testing.T) {
	repo := setupRepo(t, 30)
	it := NewProgramIterator(repo, 10)

	stop := errors.New("stop")
	calls := 0
	err := it.ForEach(context.Background(), func(programs []*core.ProgramRecord) error {
		calls++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}

func TestProgramIterator_ContextCanceled(t *testing.T) {
	repo := setupRepo(t, 30)
	it := NewProgramIterator(repo, 10)

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := it.ForEach(ctx, func(programs []*core.ProgramRecord) error {
		calls++
		cancel()
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}
