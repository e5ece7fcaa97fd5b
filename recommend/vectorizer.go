package recommend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/poiesic/unifinder/ai"
	"github.com/poiesic/unifinder/core"
)

// Vectorizer turns questionnaire answers into a single query vector.
type Vectorizer struct {
	embedder ai.Embedder
	timeout  time.Duration
	logger   *slog.Logger
}

// NewVectorizer creates a vectorizer that bounds each embedding call by timeout.
func NewVectorizer(embedder ai.Embedder, timeout time.Duration, logger *slog.Logger) *Vectorizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Vectorizer{
		embedder: embedder,
		timeout:  timeout,
		logger:   logger.With("component", "vectorizer"),
	}
}

// Vectorize embeds every non-empty category text in one batch and returns
// the element-wise mean of the vectors with non-zero magnitude, along with
// the number of vectors that went into it.
//
// Returns ErrNoValidInput when nothing usable remains, ErrProviderTimeout
// when the deadline passes and ErrProviderUnavailable for any other
// provider failure.
func (v *Vectorizer) Vectorize(ctx context.Context, answers *core.UserAnswers) ([]float32, int, error) {
	texts := make([]string, 0, len(core.AnswerCategories))
	for _, category := range core.AnswerCategories {
		text := answers.Text(category)
		if strings.TrimSpace(text) == "" {
			continue
		}
		texts = append(texts, text)
	}
	if len(texts) == 0 {
		return nil, 0, ErrNoValidInput
	}

	embedCtx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	vectors, err := v.embedder.EmbedTexts(embedCtx, texts)
	if err != nil {
		return nil, 0, v.classify(ctx, embedCtx, err)
	}
	if len(vectors) != len(texts) {
		return nil, 0, fmt.Errorf("%w: got %d vectors for %d texts", ErrProviderUnavailable, len(vectors), len(texts))
	}

	var sum []float64
	valid := 0
	for _, vec := range vectors {
		if !core.IsFiniteVector(vec) {
			return nil, 0, fmt.Errorf("%w: non-finite vector", ErrProviderUnavailable)
		}
		if magnitude(vec) == 0 {
			continue
		}
		if sum == nil {
			sum = make([]float64, len(vec))
		} else if len(vec) != len(sum) {
			return nil, 0, fmt.Errorf("%w: %w: %d vs %d", ErrProviderUnavailable, ErrDimensionMismatch, len(vec), len(sum))
		}
		for i, x := range vec {
			sum[i] += float64(x)
		}
		valid++
	}
	if valid == 0 {
		return nil, 0, ErrNoValidInput
	}

	query := make([]float32, len(sum))
	for i, s := range sum {
		query[i] = float32(s / float64(valid))
	}
	return query, valid, nil
}

// classify maps a provider error onto the engine's sentinels. Cancellation
// by the caller is passed through unchanged.
func (v *Vectorizer) classify(parent, embedCtx context.Context, err error) error {
	if parent.Err() != nil && errors.Is(parent.Err(), context.Canceled) {
		return parent.Err()
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(embedCtx.Err(), context.DeadlineExceeded) {
		v.logger.Warn("embedding timed out", "timeout", v.timeout, "err", err)
		return fmt.Errorf("%w: %w", ErrProviderTimeout, err)
	}
	v.logger.Error("embedding failed", "err", err)
	return fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
}

func magnitude(vec []float32) float64 {
	var sum float64
	for _, x := range vec {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}
