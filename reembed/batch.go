package reembed

import (
	"context"
	"fmt"

	"github.com/poiesic/unifinder/ai"
	"github.com/poiesic/unifinder/core"
	"github.com/poiesic/unifinder/storage"
)

// BatchProcessor re-embeds one page of programs and writes it back.
type BatchProcessor struct {
	repo     storage.ProgramRepository
	embedder ai.Embedder
	retry    RetryPolicy
}

func NewBatchProcessor(repo storage.ProgramRepository, embedder ai.Embedder, retry RetryPolicy) *BatchProcessor {
	return &BatchProcessor{
		repo:     repo,
		embedder: embedder,
		retry:    retry,
	}
}

// Process embeds each program's EmbeddingText, normalizes the vectors and
// updates the programs in one repository call.
func (bp *BatchProcessor) Process(ctx context.Context, programs []*core.ProgramRecord) error {
	if len(programs) == 0 {
		return nil
	}

	texts := make([]string, len(programs))
	for i, program := range programs {
		texts[i] = program.EmbeddingText()
	}

	var embeddings [][]float32
	err := RetryWithBackoff(ctx, bp.retry, func(ctx context.Context) error {
		var err error
		embeddings, err = bp.embedder.EmbedTexts(ctx, texts)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to generate embeddings: %w", err)
	}

	if len(embeddings) != len(programs) {
		return fmt.Errorf("%w: expected %d vectors, got %d", ErrEmbeddingMismatch, len(programs), len(embeddings))
	}

	for i, program := range programs {
		vector := NormalizeVector(embeddings[i])
		if len(vector) == 0 || !core.IsFiniteVector(vector) {
			return fmt.Errorf("%w: unusable vector for %q", ErrEmbeddingMismatch, program.Name)
		}
		program.Vector = vector
	}

	if _, err := bp.repo.UpdatePrograms(ctx, programs...); err != nil {
		return fmt.Errorf("failed to update programs: %w", err)
	}
	return nil
}
