package badger

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/unifinder/core"
	"github.com/poiesic/unifinder/storage"
)

// RankingRepository implements storage.RankingRepository for BadgerDB.
// Each category's table is stored under its own key.
type RankingRepository struct {
	backend *Backend
}

var _ storage.RankingRepository = (*RankingRepository)(nil)

// NewRankingRepository creates a new RankingRepository.
func NewRankingRepository(backend *Backend) (*RankingRepository, error) {
	if backend == nil {
		return nil, errors.New("backend required")
	}
	return &RankingRepository{backend: backend}, nil
}

// Close is a no-op; the backend owns the database.
func (r *RankingRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *RankingRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// SetRankings replaces the ranking table of one category.
func (r *RankingRepository) SetRankings(ctx context.Context, category string, entries []core.RankingEntry) error {
	if strings.TrimSpace(category) == "" {
		return fmt.Errorf("%w: category is required", storage.ErrInvalidQuery)
	}
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeRankingKey(category), storage.MarshalRankings(entries)); err != nil {
			return err
		}
		return commit(tx)
	}, true)
}

// ReplaceRankings removes every existing table and stores the given set.
func (r *RankingRepository) ReplaceRankings(ctx context.Context, rankings core.SchoolRankings) error {
	for category := range rankings {
		if strings.TrimSpace(category) == "" {
			return fmt.Errorf("%w: category is required", storage.ErrInvalidQuery)
		}
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		var stale [][]byte
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(rankingPrefix)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		for iter.Rewind(); iter.Valid(); iter.Next() {
			stale = append(stale, iter.Item().KeyCopy(nil))
		}
		iter.Close()

		for _, key := range stale {
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		for category, entries := range rankings {
			if err := tx.Set(makeRankingKey(category), storage.MarshalRankings(entries)); err != nil {
				return err
			}
		}
		return commit(tx)
	}, true)
}

// GetRankings returns every ranking table.
func (r *RankingRepository) GetRankings(ctx context.Context) (core.SchoolRankings, error) {
	rankings := make(core.SchoolRankings)
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(rankingPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			item := iter.Item()
			category := categoryFromRankingKey(item.Key())
			if err := item.Value(func(val []byte) error {
				entries, err := storage.UnmarshalRankings(val)
				if err != nil {
					return err
				}
				rankings[category] = entries
				return nil
			}); err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return rankings, nil
}

// GetCategoryRankings returns one category's table.
func (r *RankingRepository) GetCategoryRankings(ctx context.Context, category string) ([]core.RankingEntry, error) {
	var entries []core.RankingEntry
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeRankingKey(category))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("%w: rankings for %q", storage.ErrNotFound, category)
			}
			return err
		}
		return item.Value(func(val []byte) error {
			entries, err = storage.UnmarshalRankings(val)
			return err
		})
	}, false)
	return entries, err
}

// DeleteRankings removes one category's table.
func (r *RankingRepository) DeleteRankings(ctx context.Context, category string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeRankingKey(category)
		if _, err := tx.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("%w: rankings for %q", storage.ErrNotFound, category)
			}
			return err
		}
		if err := tx.Delete(key); err != nil {
			return err
		}
		return commit(tx)
	}, true)
}
