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


package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/unifinder/ai"
	"github.com/poiesic/unifinder/core"
	"github.com/poiesic/unifinder/reembed"
	"golang.org/x/time/rate"
)

// embeddingProcessor fills in missing program vectors. Chunks of programs
// are embedded concurrently on the pool; each call waits on the limiter and
// is retried with backoff.
type embeddingProcessor struct {
	embedder  ai.Embedder
	pool      *ants.Pool
	limiter   *rate.Limiter
	retry     reembed.RetryPolicy
	batchSize int
	logger    *slog.Logger
}

// chunkFailure records a chunk that could not be embedded.
type chunkFailure struct {
	programs []*core.ProgramRecord
	err      error
}

// process embeds every program in programs, setting its Vector. Programs of
// chunks that failed are returned with the error; the rest are done.
func (ep *embeddingProcessor) process(ctx context.Context, programs []*core.ProgramRecord, progress func(int)) []chunkFailure {
	var (
		mu       sync.Mutex
		failures []chunkFailure
		wg       sync.WaitGroup
	)
	fail := func(chunk []*core.ProgramRecord, err error) {
		mu.Lock()
		defer mu.Unlock()
		failures = append(failures, chunkFailure{programs: chunk, err: err})
	}

	for start := 0; start < len(programs); start += ep.batchSize {
		chunk := programs[start:min(start+ep.batchSize, len(programs))]

		wg.Add(1)
		err := ep.pool.Submit(func() {
			defer wg.Done()
			if err := ep.embedChunk(ctx, chunk); err != nil {
				ep.logger.Error("error embedding programs", "programs", len(chunk), "err", err)
				fail(chunk, err)
				return
			}
			if progress != nil {
				progress(len(chunk))
			}
		})
		if err != nil {
			wg.Done()
			fail(chunk, fmt.Errorf("submitting embedding task: %w", err))
		}
	}

	wg.Wait()
	return failures
}

func (ep *embeddingProcessor) embedChunk(ctx context.Context, chunk []*core.ProgramRecord) error {
	texts := make([]string, len(chunk))
	for i, program := range chunk {
		texts[i] = program.EmbeddingText()
	}

	var embeddings [][]float32
	err := reembed.RetryWithBackoff(ctx, ep.retry, func(ctx context.Context) error {
		if err := ep.limiter.Wait(ctx); err != nil {
			return err
		}
		var err error
		embeddings, err = ep.embedder.EmbedTexts(ctx, texts)
		return err
	})
	if err != nil {
		return err
	}

	if len(embeddings) != len(chunk) {
		return fmt.Errorf("%w: expected %d vectors, got %d", reembed.ErrEmbeddingMismatch, len(chunk), len(embeddings))
	}
	for i, program := range chunk {
		program.Vector = reembed.NormalizeVector(embeddings[i])
	}
	return nil
}
