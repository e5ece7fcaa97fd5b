package storage

import (
	"testing"
	"time"

	"github.com/poiesic/unifinder/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"natural key", core.NaturalKey("UP Diliman", "BS Physics")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalID(tt.id)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Invalid(t *testing.T) {
	_, err := UnmarshalID([]byte{})
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestMarshalUnmarshalProgram(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	tuition := 45000.0

	tests := []struct {
		name   string
		record *core.ProgramRecord
	}{
		{
			name: "minimal record",
			record: &core.ProgramRecord{
				Id:     core.ID(1),
				School: "Mapua University",
				Name:   "BS Civil Engineering",
				Vector: []float32{0.1, 0.2},
			},
		},
		{
			name: "full record",
			record: &core.ProgramRecord{
				Id:                    core.ID(2),
				School:                "University of Santo Tomas",
				Name:                  "BS Nursing",
				Description:           "Four-year nursing program",
				Category:              "Medicine and Allied Health",
				Location:              "Manila",
				SchoolType:            "private",
				TuitionPerSemester:    &tuition,
				TuitionNotes:          "Estimated",
				AdmissionRequirements: []string{"USTET"},
				GradeRequirements:     "85 GWA",
				SchoolRequirements:    []string{"Birth certificate", "Good moral"},
				SchoolWebsite:         "https://www.ust.edu.ph",
				SchoolLogo:            "ust.png",
				BoardPassingRate:      "98%",
				Vector:                []float32{1, -1, 0.5},
				InsertedAt:            now,
				UpdatedAt:             now,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalProgram(tt.record)
			decoded, err := UnmarshalProgram(data)
			require.NoError(t, err)

			assert.Equal(t, tt.record.Id, decoded.Id)
			assert.Equal(t, tt.record.School, decoded.School)
			assert.Equal(t, tt.record.Name, decoded.Name)
			assert.Equal(t, tt.record.Category, decoded.Category)
			assert.Equal(t, tt.record.TuitionPerSemester, decoded.TuitionPerSemester)
			assert.Equal(t, tt.record.SchoolRequirements, decoded.SchoolRequirements)
			assert.Equal(t, tt.record.Vector, decoded.Vector)
			assert.True(t, tt.record.InsertedAt.Equal(decoded.InsertedAt))
		})
	}
}

func TestUnmarshalProgram_Invalid(t *testing.T) {
	_, err := UnmarshalProgram([]byte{})
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestMarshalUnmarshalRankings(t *testing.T) {
	entries := []core.RankingEntry{
		{School: "University of the Philippines Manila", Rating: 9.8},
		{School: "University of Santo Tomas", Rating: 9.1},
	}

	decoded, err := UnmarshalRankings(MarshalRankings(entries))
	require.NoError(t, err)
	assert.Equal(t, entries, decoded)

	empty, err := UnmarshalRankings(MarshalRankings(nil))
	require.NoError(t, err)
	assert.Empty(t, empty)
}
