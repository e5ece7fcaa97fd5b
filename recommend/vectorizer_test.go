package recommend

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/poiesic/unifinder/ai/mock"
	"github.com/poiesic/unifinder/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorize_MeanOfValidVectors(t *testing.T) {
	embedder := mock.NewMockEmbedder().
		WithVector("math physics", []float32{1, 0, 0}).
		WithVector("become an engineer", []float32{0, 1, 0}).
		WithVector("quiet library", []float32{0, 0, 0})
	v := NewVectorizer(embedder, time.Second, slog.Default())

	answers := core.NewUserAnswers().
		Select(core.CategoryAcademics, "math", "physics").
		SetCustom(core.CategoryGoals, "become an engineer").
		SetCustom(core.CategoryEnvironment, "quiet library")

	query, count, err := v.Vectorize(context.Background(), answers)
	require.NoError(t, err)
	assert.Equal(t, 2, count, "zero vectors are not averaged in")
	assert.Equal(t, []float32{0.5, 0.5, 0}, query)

	batches := embedder.Batches()
	require.Len(t, batches, 1, "all categories go in one call")
	assert.Equal(t, []string{"math physics", "become an engineer", "quiet library"}, batches[0])
}

func TestVectorize_CategoryOrderAndCustomText(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	v := NewVectorizer(embedder, time.Second, nil)

	answers := core.NewUserAnswers().
		Select(core.CategoryEnvironment, "city").
		Select(core.CategoryFields, "health").
		SetCustom(core.CategoryFields, "  nursing  ").
		SetCustom(core.CategoryActivities, "   ")

	_, _, err := v.Vectorize(context.Background(), answers)
	require.NoError(t, err)

	batches := embedder.Batches()
	require.Len(t, batches, 1)
	assert.Equal(t, []string{"health nursing", "city"}, batches[0])
}

func TestVectorize_NoValidInput(t *testing.T) {
	t.Run("empty answers skip the provider", func(t *testing.T) {
		embedder := mock.NewMockEmbedder()
		v := NewVectorizer(embedder, time.Second, nil)

		_, _, err := v.Vectorize(context.Background(), core.NewUserAnswers())
		assert.ErrorIs(t, err, ErrNoValidInput)

		_, _, err = v.Vectorize(context.Background(), nil)
		assert.ErrorIs(t, err, ErrNoValidInput)
		assert.Equal(t, 0, embedder.CallCount())
	})

	t.Run("only zero vectors", func(t *testing.T) {
		embedder := mock.NewMockEmbedder().WithVector("nothing", []float32{0, 0})
		v := NewVectorizer(embedder, time.Second, nil)

		_, _, err := v.Vectorize(context.Background(), core.NewUserAnswers().Select(core.CategoryGoals, "nothing"))
		assert.ErrorIs(t, err, ErrNoValidInput)
	})
}

func TestVectorize_ProviderFailures(t *testing.T) {
	answers := core.NewUserAnswers().Select(core.CategoryAcademics, "math")

	t.Run("timeout", func(t *testing.T) {
		embedder := mock.NewMockEmbedder()
		embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		}
		v := NewVectorizer(embedder, 20*time.Millisecond, nil)

		_, _, err := v.Vectorize(context.Background(), answers)
		assert.ErrorIs(t, err, ErrProviderTimeout)
		assert.True(t, IsRetryable(err))
	})

	t.Run("failure", func(t *testing.T) {
		boom := errors.New("connection refused")
		embedder := mock.NewMockEmbedder()
		embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
			return nil, boom
		}
		v := NewVectorizer(embedder, time.Second, nil)

		_, _, err := v.Vectorize(context.Background(), answers)
		assert.ErrorIs(t, err, ErrProviderUnavailable)
		assert.ErrorIs(t, err, boom)
		assert.True(t, IsRetryable(err))
	})

	t.Run("wrong vector count", func(t *testing.T) {
		embedder := mock.NewMockEmbedder()
		embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
			return [][]float32{}, nil
		}
		v := NewVectorizer(embedder, time.Second, nil)

		_, _, err := v.Vectorize(context.Background(), answers)
		assert.ErrorIs(t, err, ErrProviderUnavailable)
	})

	t.Run("mixed dimensions", func(t *testing.T) {
		embedder := mock.NewMockEmbedder().
			WithVector("math", []float32{1, 0}).
			WithVector("art", []float32{1, 0, 0})
		v := NewVectorizer(embedder, time.Second, nil)

		_, _, err := v.Vectorize(context.Background(), core.NewUserAnswers().
			Select(core.CategoryAcademics, "math").
			Select(core.CategoryFields, "art"))
		assert.ErrorIs(t, err, ErrProviderUnavailable)
		assert.ErrorIs(t, err, ErrDimensionMismatch)
	})

	t.Run("caller cancellation passes through", func(t *testing.T) {
		embedder := mock.NewMockEmbedder()
		v := NewVectorizer(embedder, time.Second, nil)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, _, err := v.Vectorize(ctx, answers)
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, IsRetryable(err))
	})
}

func TestIsRetryable(t *testing.T) {
	assert.False(t, IsRetryable(nil))
	assert.False(t, IsRetryable(ErrNoValidInput))
	assert.False(t, IsRetryable(errors.New("other")))
	assert.True(t, IsRetryable(ErrProviderTimeout))
	assert.True(t, IsRetryable(ErrProviderUnavailable))
}
