package recommend

import (
	"math"
	"testing"

	"github.com/poiesic/unifinder/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"scale invariant", []float32{1, 1}, []float32{5, 5}, 1},
		{"zero candidate", []float32{1, 0}, []float32{0, 0}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CosineSimilarity(tt.a, tt.b)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}

	t.Run("dimension mismatch", func(t *testing.T) {
		_, err := CosineSimilarity([]float32{1, 0}, []float32{1, 0, 0})
		assert.ErrorIs(t, err, ErrDimensionMismatch)
	})

	t.Run("bounded", func(t *testing.T) {
		got, err := CosineSimilarity([]float32{0.1, 0.7, 0.3}, []float32{0.1, 0.7, 0.3})
		require.NoError(t, err)
		assert.LessOrEqual(t, got, 1.0)
	})
}

func TestBlend(t *testing.T) {
	t.Run("documented example", func(t *testing.T) {
		assert.Equal(t, 0.87, Blend(0.9, 8, 0.3, 10))
	})

	t.Run("no rating", func(t *testing.T) {
		assert.Equal(t, 0.35, Blend(0.5, 0, 0.3, 10))
	})

	t.Run("rounds to three decimals", func(t *testing.T) {
		got := Blend(0.123456, 7.77, 0.3, 10)
		assert.Equal(t, got, math.Round(got*1000)/1000)
		assert.InDelta(t, 0.123456*0.7+0.777*0.3, got, 0.0005)
	})

	t.Run("negative similarity is not clamped", func(t *testing.T) {
		assert.Equal(t, -0.7, Blend(-1, 0, 0.3, 10))
	})

	t.Run("deterministic", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			assert.Equal(t, Blend(0.6123, 9.1, 0.3, 10), Blend(0.6123, 9.1, 0.3, 10))
		}
	})
}

func TestLookupRating(t *testing.T) {
	rankings := core.SchoolRankings{
		"Medicine": {
			{School: "University of Santo Tomas Legazpi", Rating: 6},
			{School: "University of Santo Tomas", Rating: 9},
			{School: "UP Manila", Rating: 9.5},
		},
	}

	tests := []struct {
		name     string
		category string
		school   string
		want     float64
	}{
		{"nested names take the first table entry", "Medicine", "University of Santo Tomas", 6},
		{"case-insensitive", "Medicine", "up manila", 9.5},
		{"school must be inside the entry name", "Medicine", "UP Manila College of Medicine", 0},
		{"partial candidate name matches", "Medicine", "Legazpi", 6},
		{"blank school", "Medicine", "  ", 0},
		{"unknown category", "Law", "UP Manila", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LookupRating(rankings, tt.category, tt.school))
		})
	}
}
