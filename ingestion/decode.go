package ingestion

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/poiesic/unifinder/core"
)

// DecodePrograms reads a JSON array of program documents.
func DecodePrograms(r io.Reader) ([]*core.ProgramRecord, error) {
	var docs []core.ProgramDocument
	if err := json.NewDecoder(r).Decode(&docs); err != nil {
		return nil, fmt.Errorf("%w: programs: %w", ErrMalformedInput, err)
	}

	records := make([]*core.ProgramRecord, len(docs))
	for i, doc := range docs {
		records[i] = doc.Record()
	}
	return records, nil
}

// DecodeRankings reads a ranking file. Both the wrapped form
//
//	{"programs": {"Engineering": [{"school": "...", "rating": 9.5}]}}
//
// and a bare category map are accepted.
func DecodeRankings(r io.Reader) (core.SchoolRankings, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: rankings: %w", ErrMalformedInput, err)
	}

	var wrapped struct {
		Programs core.SchoolRankings `json:"programs"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Programs != nil {
		return wrapped.Programs, nil
	}

	var bare core.SchoolRankings
	if err := json.Unmarshal(data, &bare); err != nil {
		return nil, fmt.Errorf("%w: rankings: %w", ErrMalformedInput, err)
	}
	if bare == nil {
		bare = core.SchoolRankings{}
	}
	return bare, nil
}
