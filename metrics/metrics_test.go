package metrics

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/poiesic/unifinder/ai"
	"github.com/poiesic/unifinder/ai/mock"
	"github.com/poiesic/unifinder/core"
	"github.com/poiesic/unifinder/recommend"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedCatalog struct {
	programs []*core.ProgramRecord
}

func (c *fixedCatalog) ListPrograms(ctx context.Context) ([]*core.ProgramRecord, error) {
	return c.programs, nil
}

func (c *fixedCatalog) GetRankings(ctx context.Context) (core.SchoolRankings, error) {
	return core.SchoolRankings{}, nil
}

func TestRecommendMonitor(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	catalog := &fixedCatalog{programs: []*core.ProgramRecord{
		{School: "UP", Name: "BS Math", SchoolType: "public", Vector: []float32{1, 0}},
		{School: "Ateneo", Name: "BS Math", SchoolType: "private", Vector: []float32{1, 0}},
		{School: "DLSU", Name: "", Vector: []float32{1, 0}},
	}}
	embedder := mock.NewMockEmbedder().WithVector("math", []float32{1, 0})
	engine, err := recommend.NewEngine(catalog, mock.NewMockProviderWithEmbedder(embedder),
		recommend.WithMonitor(m.Monitor()))
	require.NoError(t, err)

	ctx := context.Background()
	answers := core.NewUserAnswers().Select(core.CategoryAcademics, "math")

	_, err = engine.Recommend(ctx, answers, recommend.Filter{SchoolType: "public"})
	require.NoError(t, err)
	_, err = engine.Recommend(ctx, core.NewUserAnswers(), recommend.Filter{})
	require.NoError(t, err)

	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("down")
	}
	_, err = engine.Recommend(ctx, answers, recommend.Filter{})
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("exact")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("no_input")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("error")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Requests.WithLabelValues("fallback")))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CandidatesScored))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CandidatesSkipped))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CandidatesFiltered.WithLabelValues("school_type")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.CatalogPrograms))

	var duration dto.Metric
	require.NoError(t, m.RequestDuration.Write(&duration))
	assert.Equal(t, uint64(3), duration.GetHistogram().GetSampleCount())
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, "error", outcome(nil, nil))
	assert.Equal(t, "error", outcome(&core.RecommendationResponse{}, errors.New("x")))
	assert.Equal(t, "exact", outcome(&core.RecommendationResponse{Type: core.MatchExact}, nil))
	assert.Equal(t, "fallback", outcome(&core.RecommendationResponse{
		Type: core.MatchFallback, Message: recommend.NoStrongMatchMessage,
	}, nil))
	assert.Equal(t, "no_input", outcome(&core.RecommendationResponse{
		Type: core.MatchFallback, Message: recommend.NoValidInputMessage,
	}, nil))
}

func TestBreakerStateChange(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	failing := mock.NewMockEmbedder()
	failing.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("refused")
	}
	breaker, err := ai.NewBreakerEmbedder(failing,
		ai.WithBreakerName("test"),
		ai.WithBreakerThreshold(2, time.Hour),
		ai.WithStateChange(m.BreakerStateChange))
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err := breaker.EmbedTexts(context.Background(), []string{"x"})
		require.Error(t, err)
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.BreakerState.WithLabelValues("test")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BreakerTransitions.WithLabelValues("test", "closed", "open")))

	m.BreakerStateChange("test", "open", "half-open")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BreakerState.WithLabelValues("test")))
	m.BreakerStateChange("test", "half-open", "closed")
	assert.Equal(t, 0.0, testutil.ToFloat64(m.BreakerState.WithLabelValues("test")))
}

func TestWriteText(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.CandidatesScored.Add(3)

	var buf bytes.Buffer
	require.NoError(t, m.WriteText(&buf))
	assert.Contains(t, buf.String(), "unifinder_recommend_candidates_scored_total 3")

	noGather := New(prometheus.WrapRegistererWithPrefix("x_", prometheus.NewRegistry()))
	assert.Error(t, noGather.WriteText(&buf))
}
