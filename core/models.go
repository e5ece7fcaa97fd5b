package core

import (
	"encoding/binary"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

type ID uint64

func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// NaturalKey returns the content-based identity of a program offering.
// School and program names are case-folded and trimmed so re-imports of the
// same offering collapse onto one record.
func NaturalKey(school, program string) ID {
	return IDFromContent(strings.ToLower(strings.TrimSpace(school)) + "|" + strings.ToLower(strings.TrimSpace(program)))
}

// SchoolTypePrivate is the school type the private-only budget scope applies to.
const SchoolTypePrivate = "private"

type ProgramRecord struct {
	Id                    ID
	School                string    `validate:"notblank"`
	Name                  string    `validate:"notblank"`
	Description           string
	Category              string
	Location              string
	SchoolType            string
	TuitionPerSemester    *float64  `validate:"omitempty,gte=0"`
	TuitionAnnual         *float64  `validate:"omitempty,gte=0"`
	TuitionNotes          string
	AdmissionRequirements []string
	GradeRequirements     string
	SchoolRequirements    []string
	SchoolWebsite         string
	SchoolLogo            string
	BoardPassingRate      string
	Vector                []float32 `validate:"required,min=1"`
	InsertedAt            time.Time // When the record was inserted into the database
	UpdatedAt             time.Time // When the record was last updated
}

// EmbeddingText is the text a program's vector is generated from:
// the program name followed by its description.
func (p *ProgramRecord) EmbeddingText() string {
	return strings.TrimSpace(strings.TrimSpace(p.Name) + " " + strings.TrimSpace(p.Description))
}

// RankingEntry is one row of a category ranking table.
type RankingEntry struct {
	School string  `json:"school" validate:"notblank"`
	Rating float64 `json:"rating" validate:"gte=0,lte=10"`
}

// SchoolRankings maps a program category to its ranking table, best first.
type SchoolRankings map[string][]RankingEntry

// Top returns at most n entries of the category's table.
// The returned slice is a copy; callers may keep it after the snapshot changes.
func (r SchoolRankings) Top(category string, n int) []RankingEntry {
	table := r[category]
	if n > len(table) {
		n = len(table)
	}
	top := make([]RankingEntry, n)
	copy(top, table[:n])
	return top
}

type ScoredResult struct {
	Program    *ProgramRecord
	Similarity float64 // Raw cosine similarity against the query vector
	Score      float64 // Blended and rounded final score
	Category   string  // Category used for the ranking lookup
}

type MatchType string

const (
	MatchExact    MatchType = "exact"
	MatchFallback MatchType = "fallback"
)

type RecommendationResponse struct {
	Type                  MatchType       `json:"type"`
	Message               string          `json:"message,omitempty"`
	Results               []*ScoredResult `json:"results"`
	WeakMatches           []*ScoredResult `json:"weak_matches"`
	MatchedCategory       *string         `json:"matched_category"`
	TopSchoolsForCategory []RankingEntry  `json:"top_schools_for_category"`
}
