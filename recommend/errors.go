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


package recommend

import "errors"

var (
	// ErrCatalogRequired is returned when a catalog repository is not provided.
	ErrCatalogRequired = errors.New("catalog repository required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")

	// ErrNoValidInput means no answer category produced a usable vector.
	// Recommend turns it into a fallback response rather than returning it.
	ErrNoValidInput = errors.New("no valid input")

	// ErrProviderTimeout means the embedding call exceeded its deadline.
	ErrProviderTimeout = errors.New("embedding provider timed out")

	// ErrProviderUnavailable means the embedding call failed or returned
	// unusable vectors.
	ErrProviderUnavailable = errors.New("embedding provider unavailable")

	// ErrDimensionMismatch means two vectors of different length were compared.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrInvalidConfig indicates an engine configuration value is out of range.
	ErrInvalidConfig = errors.New("invalid recommend config")
)

// IsRetryable reports whether err is an embedding provider failure that may
// succeed on a later attempt.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrProviderTimeout) || errors.Is(err, ErrProviderUnavailable)
}
