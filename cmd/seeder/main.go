package main

import (
	"context"
	"flag"
	"iter"
	"log/slog"
	"os"

	"github.com/poiesic/unifinder"
	"github.com/poiesic/unifinder/core"
	"github.com/poiesic/unifinder/ingestion"
)

func tuition(v float64) *float64 {
	return &v
}

var programs = []*core.ProgramRecord{
	{
		School:             "University of the Philippines Diliman",
		Name:               "BS Computer Science",
		Description:        "Algorithms, software engineering and systems programming with a research track.",
		Category:           "Technology",
		Location:           "Quezon City",
		SchoolType:         "public",
		TuitionPerSemester: tuition(0),
		SchoolWebsite:      "https://upd.edu.ph",
		BoardPassingRate:   "N/A",
	},
	{
		School:             "University of the Philippines Diliman",
		Name:               "BS Civil Engineering",
		Description:        "Structural design, hydraulics and construction management for public infrastructure.",
		Category:           "Engineering",
		Location:           "Quezon City",
		SchoolType:         "public",
		TuitionPerSemester: tuition(0),
		BoardPassingRate:   "92%",
	},
	{
		School:                "University of Santo Tomas",
		Name:                  "BS Nursing",
		Description:           "Patient care, community health and clinical practice in partner hospitals.",
		Category:              "Nursing",
		Location:              "Manila",
		SchoolType:            "private",
		TuitionPerSemester:    tuition(55000),
		AdmissionRequirements: []string{"USTET result", "Form 138"},
		BoardPassingRate:      "98%",
	},
	{
		School:             "University of Santo Tomas",
		Name:               "BS Architecture",
		Description:        "Architectural design studios, building technology and urban planning.",
		Category:           "Architecture",
		Location:           "Manila",
		SchoolType:         "private",
		TuitionPerSemester: tuition(60000),
		BoardPassingRate:   "85%",
	},
	{
		School:        "Ateneo de Manila University",
		Name:          "BS Management",
		Description:   "Business strategy, entrepreneurship and leadership grounded in the liberal arts.",
		Category:      "Business",
		Location:      "Quezon City",
		SchoolType:    "private",
		TuitionAnnual: tuition(220000),
	},
	{
		School:             "De La Salle University",
		Name:               "BS Accountancy",
		Description:        "Financial reporting, auditing and taxation leading to the CPA licensure exam.",
		Category:           "Business",
		Location:           "Manila",
		SchoolType:         "private",
		TuitionPerSemester: tuition(95000),
		BoardPassingRate:   "90%",
	},
	{
		School:             "Mapua University",
		Name:               "BS Electronics Engineering",
		Description:        "Circuits, communications and embedded systems with laboratory work.",
		Category:           "Engineering",
		Location:           "Manila",
		SchoolType:         "private",
		TuitionPerSemester: tuition(70000),
		BoardPassingRate:   "88%",
	},
	{
		School:             "Philippine Normal University",
		Name:               "Bachelor of Secondary Education",
		Description:        "Teaching methods, curriculum design and practice teaching in partner high schools.",
		Category:           "Education",
		Location:           "Manila",
		SchoolType:         "public",
		TuitionPerSemester: tuition(0),
		BoardPassingRate:   "80%",
	},
	{
		School:             "University of San Carlos",
		Name:               "BA Communication",
		Description:        "Journalism, broadcast media and digital storytelling.",
		Category:           "Arts & Media",
		Location:           "Cebu City",
		SchoolType:         "private",
		TuitionPerSemester: tuition(40000),
	},
	{
		School:             "Polytechnic University of the Philippines",
		Name:               "BS Information Technology",
		Description:        "Networks, web development and database administration.",
		Category:           "Technology",
		Location:           "Manila",
		SchoolType:         "public",
		TuitionPerSemester: tuition(0),
	},
}

var rankings = core.SchoolRankings{
	"Technology": {
		{School: "University of the Philippines Diliman", Rating: 9.6},
		{School: "Polytechnic University of the Philippines", Rating: 8.1},
	},
	"Engineering": {
		{School: "University of the Philippines Diliman", Rating: 9.5},
		{School: "Mapua University", Rating: 9.0},
	},
	"Nursing": {
		{School: "University of Santo Tomas", Rating: 9.7},
	},
	"Architecture": {
		{School: "University of Santo Tomas", Rating: 9.2},
	},
	"Business": {
		{School: "Ateneo de Manila University", Rating: 9.4},
		{School: "De La Salle University", Rating: 9.3},
	},
	"Education": {
		{School: "Philippine Normal University", Rating: 9.5},
	},
}

var (
	dbPath       = flag.String("db", "./unifinder_db", "catalog database directory")
	seedFileName = flag.String("src", "", "JSON file of programs to seed instead of the demo catalog")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

// programsFromFile returns an iterator over the programs in a JSON file.
func programsFromFile(filename string) (iter.Seq[*core.ProgramRecord], error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := ingestion.DecodePrograms(f)
	if err != nil {
		return nil, err
	}
	return programsFromSlice(records), nil
}

// programsFromSlice returns an iterator over a slice of programs.
func programsFromSlice(records []*core.ProgramRecord) iter.Seq[*core.ProgramRecord] {
	return func(yield func(*core.ProgramRecord) bool) {
		for _, record := range records {
			if !yield(record) {
				return
			}
		}
	}
}

// importBatched reads from a source iterator and imports programs in batches.
func importBatched(ctx context.Context, importer *ingestion.Importer, source iter.Seq[*core.ProgramRecord], batchSize int) error {
	batch := make([]*core.ProgramRecord, 0, batchSize)

	flush := func() error {
		report, err := importer.ImportPrograms(ctx, batch)
		if err != nil {
			return err
		}
		for _, rejected := range report.Rejected {
			slog.Warn("program rejected", "school", rejected.School, "program", rejected.Name, "err", rejected.Err)
		}
		batch = batch[:0]
		return nil
	}

	for record := range source {
		batch = append(batch, record)
		if len(batch) == batchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}

	if len(batch) > 0 {
		return flush()
	}
	return nil
}

func main() {
	db, err := unifinder.NewDatabase(*dbPath)
	if err != nil {
		panic(err)
	}
	defer db.Close()

	importer, err := db.NewImporter()
	if err != nil {
		panic(err)
	}
	defer importer.Release()

	ctx := context.Background()

	var source iter.Seq[*core.ProgramRecord]
	if *seedFileName != "" {
		source, err = programsFromFile(*seedFileName)
		if err != nil {
			panic(err)
		}
	} else {
		source = programsFromSlice(programs)
		if err := importer.ImportRankings(ctx, rankings); err != nil {
			panic(err)
		}
	}

	// Import in batches of 5
	if err := importBatched(ctx, importer, source, 5); err != nil {
		panic(err)
	}
}
