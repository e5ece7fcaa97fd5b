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


package core

import "errors"

// Domain validation errors
var (
	// ErrMalformedProgram indicates a ProgramRecord failed validation.
	ErrMalformedProgram = errors.New("malformed program record")

	// ErrMissingSchool indicates the School field is blank.
	ErrMissingSchool = errors.New("school name cannot be empty")

	// ErrMissingProgramName indicates the Name field is blank.
	ErrMissingProgramName = errors.New("program name cannot be empty")

	// ErrEmptyVector indicates the record carries no embedding.
	ErrEmptyVector = errors.New("vector cannot be empty")

	// ErrNonFiniteVector indicates the embedding holds NaN or Inf components.
	ErrNonFiniteVector = errors.New("vector contains non-finite values")

	// ErrNegativeTuition indicates a tuition figure below zero.
	ErrNegativeTuition = errors.New("tuition cannot be negative")

	// ErrMalformedRanking indicates a ranking table failed validation.
	ErrMalformedRanking = errors.New("malformed ranking table")

	// ErrMissingCategory indicates a ranking table keyed by a blank category.
	ErrMissingCategory = errors.New("ranking category cannot be empty")

	// ErrRatingOutOfRange indicates a school rating outside 0 to 10.
	ErrRatingOutOfRange = errors.New("rating must be between 0 and 10")

	// ErrCorruptRecord indicates an encoded record with an impossible length prefix.
	ErrCorruptRecord = errors.New("corrupt record encoding")

	// ErrUnknownAnswerCategory indicates a questionnaire key outside the fixed set.
	ErrUnknownAnswerCategory = errors.New("unknown answer category")
)
