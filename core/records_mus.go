package core

import (
	"time"

	"github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// Record layouts are written field by field in declaration order. Slices are
// a varint length followed by their elements. Optional numbers are a
// presence flag followed by the value. Times are Unix microseconds, with the
// zero time encoded as 0.

var (
	IDMUS             mus.Serializer[ID]             = idMUS{}
	ProgramMUS        mus.Serializer[ProgramRecord]  = programMUS{}
	RankingEntriesMUS mus.Serializer[[]RankingEntry] = rankingEntriesMUS{}
)

type idMUS struct{}

func (idMUS) Marshal(v ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (idMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	u, n, err := varint.Uint64.Unmarshal(bs)
	return ID(u), n, err
}

func (idMUS) Size(v ID) (size int) {
	return varint.Uint64.Size(uint64(v))
}

func (idMUS) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

type programMUS struct{}

func (programMUS) Marshal(v ProgramRecord, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.School, bs[n:])
	n += ord.String.Marshal(v.Name, bs[n:])
	n += ord.String.Marshal(v.Description, bs[n:])
	n += ord.String.Marshal(v.Category, bs[n:])
	n += ord.String.Marshal(v.Location, bs[n:])
	n += ord.String.Marshal(v.SchoolType, bs[n:])
	n += marshalOptFloat(v.TuitionPerSemester, bs[n:])
	n += marshalOptFloat(v.TuitionAnnual, bs[n:])
	n += ord.String.Marshal(v.TuitionNotes, bs[n:])
	n += marshalStrings(v.AdmissionRequirements, bs[n:])
	n += ord.String.Marshal(v.GradeRequirements, bs[n:])
	n += marshalStrings(v.SchoolRequirements, bs[n:])
	n += ord.String.Marshal(v.SchoolWebsite, bs[n:])
	n += ord.String.Marshal(v.SchoolLogo, bs[n:])
	n += ord.String.Marshal(v.BoardPassingRate, bs[n:])
	n += marshalVector(v.Vector, bs[n:])
	n += marshalTime(v.InsertedAt, bs[n:])
	n += marshalTime(v.UpdatedAt, bs[n:])
	return n
}

func (programMUS) Unmarshal(bs []byte) (v ProgramRecord, n int, err error) {
	var n1 int
	steps := []func([]byte) (int, error){
		idInto(&v.Id),
		stringInto(&v.School),
		stringInto(&v.Name),
		stringInto(&v.Description),
		stringInto(&v.Category),
		stringInto(&v.Location),
		stringInto(&v.SchoolType),
		optFloatInto(&v.TuitionPerSemester),
		optFloatInto(&v.TuitionAnnual),
		stringInto(&v.TuitionNotes),
		stringsInto(&v.AdmissionRequirements),
		stringInto(&v.GradeRequirements),
		stringsInto(&v.SchoolRequirements),
		stringInto(&v.SchoolWebsite),
		stringInto(&v.SchoolLogo),
		stringInto(&v.BoardPassingRate),
		vectorInto(&v.Vector),
		timeInto(&v.InsertedAt),
		timeInto(&v.UpdatedAt),
	}
	for _, step := range steps {
		n1, err = step(bs[n:])
		n += n1
		if err != nil {
			return v, n, err
		}
	}
	return v, n, nil
}

func (programMUS) Size(v ProgramRecord) (size int) {
	size = IDMUS.Size(v.Id)
	for _, s := range []string{v.School, v.Name, v.Description, v.Category, v.Location, v.SchoolType} {
		size += ord.String.Size(s)
	}
	size += sizeOptFloat(v.TuitionPerSemester)
	size += sizeOptFloat(v.TuitionAnnual)
	size += ord.String.Size(v.TuitionNotes)
	size += sizeStrings(v.AdmissionRequirements)
	size += ord.String.Size(v.GradeRequirements)
	size += sizeStrings(v.SchoolRequirements)
	for _, s := range []string{v.SchoolWebsite, v.SchoolLogo, v.BoardPassingRate} {
		size += ord.String.Size(s)
	}
	size += sizeVector(v.Vector)
	size += sizeTime(v.InsertedAt)
	size += sizeTime(v.UpdatedAt)
	return size
}

func (s programMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return n, err
}

type rankingEntriesMUS struct{}

func (rankingEntriesMUS) Marshal(v []RankingEntry, bs []byte) (n int) {
	n = varint.Int.Marshal(len(v), bs)
	for _, e := range v {
		n += ord.String.Marshal(e.School, bs[n:])
		n += raw.Float64.Marshal(e.Rating, bs[n:])
	}
	return n
}

func (rankingEntriesMUS) Unmarshal(bs []byte) (v []RankingEntry, n int, err error) {
	length, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return nil, n, err
	}
	if length < 0 || length > len(bs) {
		return nil, n, ErrCorruptRecord
	}
	v = make([]RankingEntry, length)
	var n1 int
	for i := range v {
		v[i].School, n1, err = ord.String.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return nil, n, err
		}
		v[i].Rating, n1, err = raw.Float64.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return nil, n, err
		}
	}
	return v, n, nil
}

func (rankingEntriesMUS) Size(v []RankingEntry) (size int) {
	size = varint.Int.Size(len(v))
	for _, e := range v {
		size += ord.String.Size(e.School) + raw.Float64.Size(e.Rating)
	}
	return size
}

func (s rankingEntriesMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return n, err
}

func marshalOptFloat(v *float64, bs []byte) int {
	if v == nil {
		return ord.Bool.Marshal(false, bs)
	}
	n := ord.Bool.Marshal(true, bs)
	return n + raw.Float64.Marshal(*v, bs[n:])
}

func sizeOptFloat(v *float64) int {
	if v == nil {
		return ord.Bool.Size(false)
	}
	return ord.Bool.Size(true) + raw.Float64.Size(*v)
}

func optFloatInto(dst **float64) func([]byte) (int, error) {
	return func(bs []byte) (int, error) {
		present, n, err := ord.Bool.Unmarshal(bs)
		if err != nil || !present {
			*dst = nil
			return n, err
		}
		f, n1, err := raw.Float64.Unmarshal(bs[n:])
		if err != nil {
			return n + n1, err
		}
		*dst = &f
		return n + n1, nil
	}
}

func idInto(dst *ID) func([]byte) (int, error) {
	return func(bs []byte) (n int, err error) {
		*dst, n, err = IDMUS.Unmarshal(bs)
		return n, err
	}
}

func stringInto(dst *string) func([]byte) (int, error) {
	return func(bs []byte) (n int, err error) {
		*dst, n, err = ord.String.Unmarshal(bs)
		return n, err
	}
}

func marshalStrings(v []string, bs []byte) int {
	n := varint.Int.Marshal(len(v), bs)
	for _, s := range v {
		n += ord.String.Marshal(s, bs[n:])
	}
	return n
}

func sizeStrings(v []string) int {
	size := varint.Int.Size(len(v))
	for _, s := range v {
		size += ord.String.Size(s)
	}
	return size
}

func stringsInto(dst *[]string) func([]byte) (int, error) {
	return func(bs []byte) (int, error) {
		length, n, err := varint.Int.Unmarshal(bs)
		if err != nil {
			return n, err
		}
		if length < 0 || length > len(bs) {
			return n, ErrCorruptRecord
		}
		if length == 0 {
			*dst = nil
			return n, nil
		}
		out := make([]string, length)
		for i := range out {
			var n1 int
			out[i], n1, err = ord.String.Unmarshal(bs[n:])
			n += n1
			if err != nil {
				return n, err
			}
		}
		*dst = out
		return n, nil
	}
}

func marshalVector(v []float32, bs []byte) int {
	n := varint.Int.Marshal(len(v), bs)
	for _, f := range v {
		n += raw.Float32.Marshal(f, bs[n:])
	}
	return n
}

func sizeVector(v []float32) int {
	size := varint.Int.Size(len(v))
	for _, f := range v {
		size += raw.Float32.Size(f)
	}
	return size
}

func vectorInto(dst *[]float32) func([]byte) (int, error) {
	return func(bs []byte) (int, error) {
		length, n, err := varint.Int.Unmarshal(bs)
		if err != nil {
			return n, err
		}
		if length < 0 || length > len(bs) {
			return n, ErrCorruptRecord
		}
		if length == 0 {
			*dst = nil
			return n, nil
		}
		out := make([]float32, length)
		for i := range out {
			var n1 int
			out[i], n1, err = raw.Float32.Unmarshal(bs[n:])
			n += n1
			if err != nil {
				return n, err
			}
		}
		*dst = out
		return n, nil
	}
}

func marshalTime(t time.Time, bs []byte) int {
	return varint.Int64.Marshal(timeMicros(t), bs)
}

func sizeTime(t time.Time) int {
	return varint.Int64.Size(timeMicros(t))
}

func timeMicros(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMicro()
}

func timeInto(dst *time.Time) func([]byte) (int, error) {
	return func(bs []byte) (int, error) {
		us, n, err := varint.Int64.Unmarshal(bs)
		if err != nil {
			return n, err
		}
		if us == 0 {
			*dst = time.Time{}
		} else {
			*dst = time.UnixMicro(us)
		}
		return n, nil
	}
}
