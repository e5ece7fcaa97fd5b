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

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func programValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	})
	return validate
}

// ValidateProgram validates a ProgramRecord before it is scored or stored.
//
// Validation rules:
//   - School and Name must not be blank
//   - Tuition figures, when present, must not be negative
//   - Vector must be non-empty with only finite components
//
// NOT validated:
//   - Category, Location, SchoolType (free text, may be empty)
//   - ID (assigned by storage)
func ValidateProgram(record *ProgramRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrMalformedProgram)
	}

	if err := programValidator().Struct(record); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return fmt.Errorf("%w: %w", ErrMalformedProgram, fieldError(fieldErrs[0]))
		}
		return fmt.Errorf("%w: %w", ErrMalformedProgram, err)
	}

	if !IsFiniteVector(record.Vector) {
		return fmt.Errorf("%w: %w", ErrMalformedProgram, ErrNonFiniteVector)
	}
	return nil
}

func fieldError(fe validator.FieldError) error {
	switch fe.StructField() {
	case "School":
		return ErrMissingSchool
	case "Name":
		return ErrMissingProgramName
	case "Vector":
		return ErrEmptyVector
	case "Rating":
		return ErrRatingOutOfRange
	case "TuitionPerSemester", "TuitionAnnual":
		return fmt.Errorf("%w: %s", ErrNegativeTuition, fe.StructField())
	}
	return fmt.Errorf("field %s failed %q", fe.StructField(), fe.Tag())
}

// ValidateRankings checks every table: categories must not be blank, and
// each entry needs a school name and a rating within 0 to 10. The first
// problem found, in sorted category order, is returned.
func ValidateRankings(rankings SchoolRankings) error {
	categories := make([]string, 0, len(rankings))
	for category := range rankings {
		categories = append(categories, category)
	}
	slices.Sort(categories)

	for _, category := range categories {
		if strings.TrimSpace(category) == "" {
			return fmt.Errorf("%w: %w", ErrMalformedRanking, ErrMissingCategory)
		}
		for i, entry := range rankings[category] {
			if err := programValidator().Struct(entry); err != nil {
				var fieldErrs validator.ValidationErrors
				if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
					err = fieldError(fieldErrs[0])
				}
				return fmt.Errorf("%w: %s entry %d: %w", ErrMalformedRanking, category, i, err)
			}
			if math.IsNaN(entry.Rating) {
				return fmt.Errorf("%w: %s entry %d: %w", ErrMalformedRanking, category, i, ErrRatingOutOfRange)
			}
		}
	}
	return nil
}

// IsFiniteVector reports whether v holds no NaN or infinite components.
func IsFiniteVector(v []float32) bool {
	for _, x := range v {
		f := float64(x)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
