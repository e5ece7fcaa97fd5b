// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package storage

import (
	"fmt"

	"github.com/poiesic/unifinder/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	if err != nil {
		return 0, fmt.Errorf("%w: id: %w", ErrSerializationFailed, err)
	}
	return id, nil
}

// MarshalProgram serializes a ProgramRecord to bytes.
func MarshalProgram(record *core.ProgramRecord) []byte {
	buf := make([]byte, core.ProgramMUS.Size(*record))
	core.ProgramMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalProgram deserializes a ProgramRecord from bytes.
func UnmarshalProgram(data []byte) (*core.ProgramRecord, error) {
	record, _, err := core.ProgramMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: program: %w", ErrSerializationFailed, err)
	}
	return &record, nil
}

// MarshalRankings serializes one category's ranking table to bytes.
func MarshalRankings(entries []core.RankingEntry) []byte {
	buf := make([]byte, core.RankingEntriesMUS.Size(entries))
	core.RankingEntriesMUS.Marshal(entries, buf)
	return buf
}

// UnmarshalRankings deserializes one category's ranking table from bytes.
func UnmarshalRankings(data []byte) ([]core.RankingEntry, error) {
	entries, _, err := core.RankingEntriesMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: rankings: %w", ErrSerializationFailed, err)
	}
	return entries, nil
}
