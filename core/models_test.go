package core

import (
	"testing"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantSame bool
	}{
		{
			name:     "same content produces same ID",
			content:  "test content",
			wantSame: true,
		},
		{
			name:     "empty string",
			content:  "",
			wantSame: true,
		},
		{
			name:     "long content",
			content:  "This is a much longer piece of content that should still hash consistently",
			wantSame: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if tt.wantSame && id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent("content1")
	id2 := IDFromContent("content2")

	if id1 == id2 {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestNaturalKey(t *testing.T) {
	tests := []struct {
		name               string
		schoolA, schoolB   string
		programA, programB string
		wantSame           bool
	}{
		{"identical", "Ateneo", "Ateneo", "BS Biology", "BS Biology", true},
		{"case folded", "Ateneo", "ATENEO", "BS Biology", "bs biology", true},
		{"trimmed", " Ateneo ", "Ateneo", "BS Biology\t", "BS Biology", true},
		{"different program", "Ateneo", "Ateneo", "BS Biology", "BS Chemistry", false},
		{"different school", "Ateneo", "La Salle", "BS Biology", "BS Biology", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NaturalKey(tt.schoolA, tt.programA)
			b := NaturalKey(tt.schoolB, tt.programB)
			if (a == b) != tt.wantSame {
				t.Errorf("NaturalKey() same = %v, want %v", a == b, tt.wantSame)
			}
		})
	}
}

func TestNaturalKey_SeparatorMatters(t *testing.T) {
	if NaturalKey("ab", "c") == NaturalKey("a", "bc") {
		t.Errorf("NaturalKey() collided across the school/program boundary")
	}
}

func TestSchoolRankings_Top(t *testing.T) {
	rankings := SchoolRankings{
		"Medicine": {
			{School: "A", Rating: 9},
			{School: "B", Rating: 8},
			{School: "C", Rating: 7},
		},
	}

	tests := []struct {
		name     string
		category string
		n        int
		want     int
	}{
		{"fewer than table", "Medicine", 2, 2},
		{"more than table", "Medicine", 5, 3},
		{"unknown category", "Law", 5, 0},
		{"zero", "Medicine", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rankings.Top(tt.category, tt.n)
			if got == nil {
				t.Fatalf("Top() returned nil, want empty slice")
			}
			if len(got) != tt.want {
				t.Errorf("Top() len = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestSchoolRankings_TopIsCopy(t *testing.T) {
	rankings := SchoolRankings{"Medicine": {{School: "A", Rating: 9}}}
	top := rankings.Top("Medicine", 1)
	top[0].School = "changed"
	if rankings["Medicine"][0].School != "A" {
		t.Errorf("Top() shares backing array with the table")
	}
}

func TestProgramRecord_EmbeddingText(t *testing.T) {
	tests := []struct {
		name, program, description, want string
	}{
		{"name and description", "BS Nursing", "Care for patients", "BS Nursing Care for patients"},
		{"name only", "BS Nursing", "", "BS Nursing"},
		{"trims both", "  BS Nursing ", " Care ", "BS Nursing Care"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &ProgramRecord{Name: tt.program, Description: tt.description}
			if got := p.EmbeddingText(); got != tt.want {
				t.Errorf("EmbeddingText() = %q, want %q", got, tt.want)
			}
		})
	}
}
