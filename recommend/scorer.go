package recommend

import (
	"fmt"
	"math"
	"strings"

	"github.com/poiesic/unifinder/core"
)

// CosineSimilarity returns the cosine of the angle between a and b,
// accumulated in float64. A zero-magnitude vector scores 0.
func CosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0, nil
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	// Rounding can push parallel vectors a hair past 1
	return math.Max(-1, math.Min(1, sim)), nil
}

// LookupRating finds the school's rating in the category's table. The
// case-folded school name must appear inside a table entry's name; the first
// such entry in table order wins. No match, or a blank name, rates 0.
func LookupRating(rankings core.SchoolRankings, category, school string) float64 {
	needle := strings.ToLower(strings.TrimSpace(school))
	if needle == "" {
		return 0
	}
	for _, entry := range rankings[category] {
		if strings.Contains(strings.ToLower(entry.School), needle) {
			return entry.Rating
		}
	}
	return 0
}

// Blend folds a rating into a similarity:
//
//	sim*(1-weight) + (rating/ratingMax)*weight
//
// rounded to three decimals. Negative similarities are not clamped.
func Blend(similarity, rating, weight, ratingMax float64) float64 {
	score := similarity*(1-weight) + (rating/ratingMax)*weight
	return math.Round(score*1000) / 1000
}
