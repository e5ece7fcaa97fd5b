package badger

import (
	"encoding/binary"

	"github.com/poiesic/unifinder/core"
)

// Key prefixes for different data types
const (
	programRecordPrefix  = "prgrec:"
	programNaturalPrefix = "prgnat:"
	programIDSeq         = "prgseq"
	rankingPrefix        = "rnkcat:"
)

// makeProgramKey generates a key for a program record by ID.
// Format: prefix + big-endian ID, so prefix iteration yields ID order.
func makeProgramKey(id core.ID) []byte {
	return appendID([]byte(programRecordPrefix), id)
}

// programIDFromKey extracts the ID from a program record key.
func programIDFromKey(key []byte) core.ID {
	return core.ID(binary.BigEndian.Uint64(key[len(programRecordPrefix):]))
}

// makeProgramNaturalKey generates the natural-key index entry for a program.
// Format: prefix + big-endian NaturalKey(school, name)
func makeProgramNaturalKey(school, name string) []byte {
	return appendID([]byte(programNaturalPrefix), core.NaturalKey(school, name))
}

// makeRankingKey generates a key for a category's ranking table.
func makeRankingKey(category string) []byte {
	buf := make([]byte, 0, len(rankingPrefix)+len(category))
	buf = append(buf, rankingPrefix...)
	return append(buf, category...)
}

// categoryFromRankingKey extracts the category from a ranking key.
func categoryFromRankingKey(key []byte) string {
	return string(key[len(rankingPrefix):])
}

func appendID(prefix []byte, id core.ID) []byte {
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	// BigEndian so lexicographic order matches numeric order
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}
