package core

import (
	"errors"
	"math"
	"testing"
)

func floatPtr(f float64) *float64 { return &f }

func validProgram() *ProgramRecord {
	return &ProgramRecord{
		School:             "University of the Philippines",
		Name:               "BS Computer Science",
		Category:           "Engineering",
		Location:           "Quezon City",
		SchoolType:         "public",
		TuitionPerSemester: floatPtr(0),
		Vector:             []float32{0.1, 0.2, 0.3},
	}
}

func TestValidateProgram(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *ProgramRecord)
		wantErr error
	}{
		{
			name:    "valid record",
			mutate:  func(p *ProgramRecord) {},
			wantErr: nil,
		},
		{
			name:    "valid record without tuition",
			mutate:  func(p *ProgramRecord) { p.TuitionPerSemester = nil },
			wantErr: nil,
		},
		{
			name:    "valid record with empty category and location",
			mutate: func(p *ProgramRecord) {
				p.Category = ""
				p.Location = ""
			},
			wantErr: nil,
		},
		{
			name:    "missing school",
			mutate:  func(p *ProgramRecord) { p.School = "" },
			wantErr: ErrMissingSchool,
		},
		{
			name:    "blank school",
			mutate:  func(p *ProgramRecord) { p.School = "   " },
			wantErr: ErrMissingSchool,
		},
		{
			name:    "missing program name",
			mutate:  func(p *ProgramRecord) { p.Name = "" },
			wantErr: ErrMissingProgramName,
		},
		{
			name:    "nil vector",
			mutate:  func(p *ProgramRecord) { p.Vector = nil },
			wantErr: ErrEmptyVector,
		},
		{
			name:    "empty vector",
			mutate:  func(p *ProgramRecord) { p.Vector = []float32{} },
			wantErr: ErrEmptyVector,
		},
		{
			name:    "NaN component",
			mutate:  func(p *ProgramRecord) { p.Vector = []float32{0.1, float32(math.NaN())} },
			wantErr: ErrNonFiniteVector,
		},
		{
			name:    "infinite component",
			mutate:  func(p *ProgramRecord) { p.Vector = []float32{float32(math.Inf(1))} },
			wantErr: ErrNonFiniteVector,
		},
		{
			name:    "negative tuition",
			mutate:  func(p *ProgramRecord) { p.TuitionAnnual = floatPtr(-1) },
			wantErr: ErrNegativeTuition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := validProgram()
			tt.mutate(record)
			err := ValidateProgram(record)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateProgram() unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, ErrMalformedProgram) {
				t.Errorf("ValidateProgram() error = %v, want wrapped ErrMalformedProgram", err)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateProgram() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateProgram_Nil(t *testing.T) {
	if err := ValidateProgram(nil); !errors.Is(err, ErrMalformedProgram) {
		t.Errorf("ValidateProgram(nil) error = %v, want ErrMalformedProgram", err)
	}
}

func TestIsFiniteVector(t *testing.T) {
	tests := []struct {
		name string
		v    []float32
		want bool
	}{
		{"empty", nil, true},
		{"finite", []float32{1, -2, 0}, true},
		{"nan", []float32{float32(math.NaN())}, false},
		{"negative infinity", []float32{float32(math.Inf(-1))}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsFiniteVector(tt.v); got != tt.want {
				t.Errorf("IsFiniteVector() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidateRankings(t *testing.T) {
	tests := []struct {
		name     string
		rankings SchoolRankings
		wantErr  error
	}{
		{"empty", SchoolRankings{}, nil},
		{"valid", SchoolRankings{"Law": {{School: "UP", Rating: 10}, {School: "Ateneo", Rating: 0}}}, nil},
		{"blank category", SchoolRankings{" ": {{School: "UP", Rating: 9}}}, ErrMissingCategory},
		{"blank school", SchoolRankings{"Law": {{School: "", Rating: 9}}}, ErrMissingSchool},
		{"rating above scale", SchoolRankings{"Law": {{School: "UP", Rating: 10.5}}}, ErrRatingOutOfRange},
		{"negative rating", SchoolRankings{"Law": {{School: "UP", Rating: -1}}}, ErrRatingOutOfRange},
		{"nan rating", SchoolRankings{"Law": {{School: "UP", Rating: math.NaN()}}}, ErrRatingOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRankings(tt.rankings)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("ValidateRankings() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, ErrMalformedRanking) || !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateRankings() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
