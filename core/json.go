package core

import "github.com/goccy/go-json"

// ProgramDocument is the JSON shape of a program record used by catalog
// files and command output.
type ProgramDocument struct {
	School                string    `json:"school"`
	Name                  string    `json:"name"`
	Description           string    `json:"description"`
	Category              string    `json:"category"`
	Location              string    `json:"location"`
	SchoolType            string    `json:"school_type"`
	TuitionPerSemester    *float64  `json:"tuition_per_semester"`
	TuitionAnnual         *float64  `json:"tuition_annual"`
	TuitionNotes          string    `json:"tuition_notes,omitempty"`
	AdmissionRequirements []string  `json:"admission_requirements,omitempty"`
	GradeRequirements     string    `json:"grade_requirements,omitempty"`
	SchoolRequirements    []string  `json:"school_requirements,omitempty"`
	SchoolWebsite         string    `json:"school_website,omitempty"`
	SchoolLogo            string    `json:"school_logo,omitempty"`
	BoardPassingRate      string    `json:"board_passing_rate,omitempty"`
	Vector                []float32 `json:"vector,omitempty"`
}

// Document converts the record to its JSON shape.
func (p *ProgramRecord) Document() ProgramDocument {
	return ProgramDocument{
		School:                p.School,
		Name:                  p.Name,
		Description:           p.Description,
		Category:              p.Category,
		Location:              p.Location,
		SchoolType:            p.SchoolType,
		TuitionPerSemester:    p.TuitionPerSemester,
		TuitionAnnual:         p.TuitionAnnual,
		TuitionNotes:          p.TuitionNotes,
		AdmissionRequirements: p.AdmissionRequirements,
		GradeRequirements:     p.GradeRequirements,
		SchoolRequirements:    p.SchoolRequirements,
		SchoolWebsite:         p.SchoolWebsite,
		SchoolLogo:            p.SchoolLogo,
		BoardPassingRate:      p.BoardPassingRate,
		Vector:                p.Vector,
	}
}

// Record converts a document into a program record without an ID.
func (d ProgramDocument) Record() *ProgramRecord {
	return &ProgramRecord{
		School:                d.School,
		Name:                  d.Name,
		Description:           d.Description,
		Category:              d.Category,
		Location:              d.Location,
		SchoolType:            d.SchoolType,
		TuitionPerSemester:    d.TuitionPerSemester,
		TuitionAnnual:         d.TuitionAnnual,
		TuitionNotes:          d.TuitionNotes,
		AdmissionRequirements: d.AdmissionRequirements,
		GradeRequirements:     d.GradeRequirements,
		SchoolRequirements:    d.SchoolRequirements,
		SchoolWebsite:         d.SchoolWebsite,
		SchoolLogo:            d.SchoolLogo,
		BoardPassingRate:      d.BoardPassingRate,
		Vector:                d.Vector,
	}
}

// scoredResultDocument flattens a result the way result cards consume it.
type scoredResultDocument struct {
	School                string   `json:"school"`
	Program               string   `json:"program"`
	Description           string   `json:"description"`
	Score                 float64  `json:"score"`
	Similarity            float64  `json:"similarity"`
	TuitionPerSemester    *float64 `json:"tuition_per_semester"`
	TuitionAnnual         *float64 `json:"tuition_annual"`
	TuitionNotes          string   `json:"tuition_notes"`
	AdmissionRequirements []string `json:"admission_requirements"`
	GradeRequirements     string   `json:"grade_requirements"`
	SchoolRequirements    []string `json:"school_requirements"`
	SchoolWebsite         string   `json:"school_website"`
	SchoolType            string   `json:"school_type"`
	Location              string   `json:"location"`
	SchoolLogo            string   `json:"school_logo"`
	BoardPassingRate      string   `json:"board_passing_rate,omitempty"`
	Category              string   `json:"category"`
}

func (r *ScoredResult) MarshalJSON() ([]byte, error) {
	p := r.Program
	if p == nil {
		p = &ProgramRecord{}
	}
	return json.Marshal(scoredResultDocument{
		School:                p.School,
		Program:               p.Name,
		Description:           p.Description,
		Score:                 r.Score,
		Similarity:            r.Similarity,
		TuitionPerSemester:    p.TuitionPerSemester,
		TuitionAnnual:         p.TuitionAnnual,
		TuitionNotes:          p.TuitionNotes,
		AdmissionRequirements: p.AdmissionRequirements,
		GradeRequirements:     p.GradeRequirements,
		SchoolRequirements:    p.SchoolRequirements,
		SchoolWebsite:         p.SchoolWebsite,
		SchoolType:            p.SchoolType,
		Location:              p.Location,
		SchoolLogo:            p.SchoolLogo,
		BoardPassingRate:      p.BoardPassingRate,
		Category:              r.Category,
	})
}
