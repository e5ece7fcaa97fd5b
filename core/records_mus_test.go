package core

import (
	"errors"
	"testing"
	"time"
)

func TestProgramMUS_RoundTrip(t *testing.T) {
	now := time.UnixMicro(time.Now().UnixMicro())
	record := ProgramRecord{
		Id:                    42,
		School:                "Ateneo de Manila University",
		Name:                  "BS Biology",
		Description:           "Life sciences",
		Category:              "Science",
		Location:              "Quezon City",
		SchoolType:            "private",
		TuitionPerSemester:    floatPtr(85000),
		TuitionNotes:          "excludes lab fees",
		AdmissionRequirements: []string{"ACET", "Form 138"},
		SchoolRequirements:    []string{"Good moral"},
		SchoolWebsite:         "https://ateneo.edu",
		BoardPassingRate:      "92%",
		Vector:                []float32{0.5, -0.25, 1},
		InsertedAt:            now,
	}

	buf := make([]byte, ProgramMUS.Size(record))
	n := ProgramMUS.Marshal(record, buf)
	if n != len(buf) {
		t.Fatalf("Marshal() wrote %d bytes, Size() = %d", n, len(buf))
	}

	got, m, err := ProgramMUS.Unmarshal(buf)
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if m != n {
		t.Errorf("Unmarshal() read %d bytes, want %d", m, n)
	}
	if got.School != record.School || got.Name != record.Name || got.Id != record.Id {
		t.Errorf("identity mismatch: %+v", got)
	}
	if got.TuitionPerSemester == nil || *got.TuitionPerSemester != 85000 {
		t.Errorf("TuitionPerSemester = %v", got.TuitionPerSemester)
	}
	if got.TuitionAnnual != nil {
		t.Errorf("TuitionAnnual = %v, want nil", *got.TuitionAnnual)
	}
	if len(got.AdmissionRequirements) != 2 || got.AdmissionRequirements[1] != "Form 138" {
		t.Errorf("AdmissionRequirements = %v", got.AdmissionRequirements)
	}
	if len(got.Vector) != 3 || got.Vector[1] != -0.25 {
		t.Errorf("Vector = %v", got.Vector)
	}
	if !got.InsertedAt.Equal(now) {
		t.Errorf("InsertedAt = %v, want %v", got.InsertedAt, now)
	}
	if !got.UpdatedAt.IsZero() {
		t.Errorf("UpdatedAt = %v, want zero", got.UpdatedAt)
	}
}

func TestProgramMUS_Truncated(t *testing.T) {
	record := ProgramRecord{School: "A", Name: "B", Vector: []float32{1, 2}}
	buf := make([]byte, ProgramMUS.Size(record))
	ProgramMUS.Marshal(record, buf)

	if _, _, err := ProgramMUS.Unmarshal(buf[:len(buf)/2]); err == nil {
		t.Errorf("Unmarshal() of truncated data expected error")
	}
}

func TestRankingEntriesMUS_RoundTrip(t *testing.T) {
	entries := []RankingEntry{{School: "UP Diliman", Rating: 9.5}, {School: "UST", Rating: 8}}

	buf := make([]byte, RankingEntriesMUS.Size(entries))
	RankingEntriesMUS.Marshal(entries, buf)

	got, _, err := RankingEntriesMUS.Unmarshal(buf)
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(got) != 2 || got[0] != entries[0] || got[1] != entries[1] {
		t.Errorf("Unmarshal() = %v, want %v", got, entries)
	}
}

func TestRankingEntriesMUS_CorruptLength(t *testing.T) {
	buf := make([]byte, IDMUS.Size(1000))
	IDMUS.Marshal(1000, buf)

	if _, _, err := RankingEntriesMUS.Unmarshal(buf); !errors.Is(err, ErrCorruptRecord) {
		t.Errorf("Unmarshal() error = %v, want ErrCorruptRecord", err)
	}
}
