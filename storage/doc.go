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


// Package storage provides the storage abstraction layer for UniFinder.
//
// This package defines repository interfaces that decouple the catalog's
// persistence from the recommendation engine and the catalog tools.
//
// # Constructor Return Type Pattern
//
// Public constructors in backend packages return repository interfaces:
//
//	programs, rankings, backend, err := badger.NewMemoryRepositories()
//
// Internal constructors may return concrete types since they are only used
// within the implementation package.
//
// # Architecture
//
// The storage layer follows the Repository pattern:
//
//   - Repository: Transactions and Close, shared by all repositories
//   - ProgramRepository: Program records, keyed by school and program name
//   - RankingRepository: Category-keyed school ranking tables
//   - CatalogRepository: The read-only view the engine consumes
//
// NewCatalog joins a ProgramRepository and a RankingRepository into a
// CatalogRepository.
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
//
// # Context Support
//
// All repository methods accept context.Context for cancellation
// and timeout support.
package storage
