package badger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/unifinder/core"
	"github.com/poiesic/unifinder/storage"
)

// ProgramRepository implements storage.ProgramRepository for BadgerDB.
type ProgramRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.ProgramRepository = (*ProgramRepository)(nil)

// NewProgramRepository creates a new ProgramRepository.
func NewProgramRepository(backend *Backend) (*ProgramRepository, error) {
	idSeq, err := backend.GetSequence(programIDSeq)
	if err != nil {
		return nil, err
	}

	return &ProgramRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *ProgramRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *ProgramRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddPrograms inserts or replaces programs keyed by school and program name.
func (r *ProgramRepository) AddPrograms(ctx context.Context, records ...*core.ProgramRecord) ([]*core.ProgramRecord, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		now := time.Now().UTC().Truncate(time.Microsecond)
		for _, record := range records {
			natKey := makeProgramNaturalKey(record.School, record.Name)

			existingID, found, err := readIndexedID(tx, natKey)
			if err != nil {
				return err
			}

			if found {
				old, err := r.readProgram(tx, makeProgramKey(existingID))
				if err != nil {
					return err
				}
				record.Id = existingID
				record.InsertedAt = now
				if old != nil {
					record.InsertedAt = old.InsertedAt
				}
			} else {
				nextID, err := r.nextID()
				if err != nil {
					return err
				}
				record.Id = nextID
				record.InsertedAt = now
				if err := tx.Set(natKey, storage.MarshalID(record.Id)); err != nil {
					return err
				}
			}
			record.UpdatedAt = now

			if err := tx.Set(makeProgramKey(record.Id), storage.MarshalProgram(record)); err != nil {
				return err
			}
		}
		return commit(tx)
	}, true)

	return records, err
}

// UpdatePrograms updates existing programs by ID.
func (r *ProgramRepository) UpdatePrograms(ctx context.Context, records ...*core.ProgramRecord) ([]*core.ProgramRecord, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		now := time.Now().UTC().Truncate(time.Microsecond)
		for _, record := range records {
			key := makeProgramKey(record.Id)

			old, err := r.readProgram(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return fmt.Errorf("%w: program %d", storage.ErrNotFound, record.Id)
			}

			// Move the natural-key index when the identity changed
			oldNat := makeProgramNaturalKey(old.School, old.Name)
			newNat := makeProgramNaturalKey(record.School, record.Name)
			if string(oldNat) != string(newNat) {
				ownerID, taken, err := readIndexedID(tx, newNat)
				if err != nil {
					return err
				}
				if taken && ownerID != record.Id {
					return fmt.Errorf("%w: %s / %s", storage.ErrDuplicateKey, record.School, record.Name)
				}
				if err := tx.Delete(oldNat); err != nil {
					return err
				}
				if err := tx.Set(newNat, storage.MarshalID(record.Id)); err != nil {
					return err
				}
			}

			record.InsertedAt = old.InsertedAt
			record.UpdatedAt = now

			if err := tx.Set(key, storage.MarshalProgram(record)); err != nil {
				return err
			}
		}
		return commit(tx)
	}, true)

	return records, err
}

// DeletePrograms removes programs by their IDs.
func (r *ProgramRepository) DeletePrograms(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeProgramKey(id)

			record, err := r.readProgram(tx, key)
			if err != nil {
				return err
			}
			if record == nil {
				return fmt.Errorf("%w: program %d", storage.ErrNotFound, id)
			}

			if err := tx.Delete(makeProgramNaturalKey(record.School, record.Name)); err != nil {
				return err
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return commit(tx)
	}, true)
}

// GetProgram retrieves a single program by ID.
func (r *ProgramRepository) GetProgram(ctx context.Context, id core.ID) (*core.ProgramRecord, error) {
	var result *core.ProgramRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = r.readProgram(tx, makeProgramKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return fmt.Errorf("%w: program %d", storage.ErrNotFound, id)
		}
		return nil
	}, false)
	return result, err
}

// GetPrograms retrieves multiple programs by their IDs.
func (r *ProgramRepository) GetPrograms(ctx context.Context, ids ...core.ID) ([]*core.ProgramRecord, error) {
	var result []*core.ProgramRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			record, err := r.readProgram(tx, makeProgramKey(id))
			if err != nil {
				return err
			}
			if record != nil {
				result = append(result, record)
			}
		}
		return nil
	}, false)
	return result, err
}

// ListPrograms returns every program in ID order.
func (r *ProgramRepository) ListPrograms(ctx context.Context) ([]*core.ProgramRecord, error) {
	return r.scan(ctx, 0, 0, nil)
}

// ListProgramsAfter returns up to limit programs with ID greater than after.
func (r *ProgramRepository) ListProgramsAfter(ctx context.Context, after core.ID, limit int) ([]*core.ProgramRecord, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive", storage.ErrInvalidQuery)
	}
	return r.scan(ctx, after, limit, nil)
}

// CountPrograms returns the number of stored programs.
func (r *ProgramRepository) CountPrograms(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(programRecordPrefix)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// SearchPrograms returns the programs matching query, in ID order.
func (r *ProgramRepository) SearchPrograms(ctx context.Context, query storage.ProgramQuery) ([]*core.ProgramRecord, error) {
	name := strings.ToLower(strings.TrimSpace(query.Name))
	location := strings.ToLower(strings.TrimSpace(query.Location))
	category := strings.ToLower(strings.TrimSpace(query.Category))

	return r.scan(ctx, 0, 0, func(p *core.ProgramRecord) bool {
		if name != "" && !strings.Contains(strings.ToLower(p.Name), name) {
			return false
		}
		if location != "" && !strings.Contains(strings.ToLower(p.Location), location) {
			return false
		}
		if category != "" && !strings.Contains(strings.ToLower(p.Category), category) {
			return false
		}
		return true
	})
}

// scan walks program records in ID order starting after the given ID.
// A zero limit means no limit. A nil match accepts every record.
func (r *ProgramRepository) scan(ctx context.Context, after core.ID, limit int, match func(*core.ProgramRecord) bool) ([]*core.ProgramRecord, error) {
	var results []*core.ProgramRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(programRecordPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Seek(makeProgramKey(after)); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			item := iter.Item()
			if programIDFromKey(item.Key()) <= after {
				continue
			}

			var record *core.ProgramRecord
			if err := item.Value(func(val []byte) error {
				var err error
				record, err = storage.UnmarshalProgram(val)
				return err
			}); err != nil {
				return err
			}

			if match != nil && !match(record) {
				continue
			}
			results = append(results, record)
			if limit > 0 && len(results) >= limit {
				break
			}
		}
		return nil
	}, false)

	return results, err
}

// nextID draws the next program ID from the sequence.
func (r *ProgramRepository) nextID() (core.ID, error) {
	nextID, err := r.idSeq.Next()
	if err != nil {
		return 0, err
	}
	// BadgerDB sequences can return 0 on first call, so we skip it
	if nextID == 0 {
		nextID, err = r.idSeq.Next()
		if err != nil {
			return 0, err
		}
	}
	return core.ID(nextID), nil
}

// readProgram reads a program from the database.
// Returns nil if the record doesn't exist.
func (r *ProgramRepository) readProgram(tx *badger.Txn, key []byte) (*core.ProgramRecord, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var record *core.ProgramRecord
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		record, unmarshalErr = storage.UnmarshalProgram(val)
		return unmarshalErr
	})
	return record, err
}

// readIndexedID reads an ID stored under an index key.
func readIndexedID(tx *badger.Txn, key []byte) (core.ID, bool, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return 0, false, nil
		}
		return 0, false, err
	}

	var id core.ID
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		id, unmarshalErr = storage.UnmarshalID(val)
		return unmarshalErr
	})
	return id, err == nil, err
}
