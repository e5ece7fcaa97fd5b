// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package reembed

import (
	"context"

	"github.com/poiesic/unifinder/core"
	"github.com/poiesic/unifinder/storage"
)

// DefaultBatchSize is the default number of programs fetched per page.
const DefaultBatchSize = 100

// ProgramIterator pages through every stored program in ID order.
type ProgramIterator struct {
	repo      storage.ProgramRepository
	batchSize int
}

// NewProgramIterator creates an iterator reading batchSize programs per page.
// A non-positive batchSize uses DefaultBatchSize.
func NewProgramIterator(repo storage.ProgramRepository, batchSize int) *ProgramIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &ProgramIterator{
		repo:      repo,
		batchSize: batchSize,
	}
}

// ForEach calls fn with each page of programs. Pages are fetched lazily, so
// fn may update the programs it is given. Iteration stops on the first error
// from fn or the repository and on context cancellation.
func (it *ProgramIterator) ForEach(ctx context.Context, fn func([]*core.ProgramRecord) error) error {
	var after core.ID
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		page, err := it.repo.ListProgramsAfter(ctx, after, it.batchSize)
		if err != nil {
			return err
		}
		if len(page) == 0 {
			return nil
		}
		after = page[len(page)-1].Id

		if err := fn(page); err != nil {
			return err
		}
		if len(page) < it.batchSize {
			return nil
		}
	}
}
