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
// Package ai provides abstractions for the AI services used by UniFinder.
//
// The engine needs a single capability from an AI backend: turning text into
// fixed-dimension vectors. Questionnaire answers are embedded at request time
// and catalog descriptions are embedded at import time, so both sides must use
// the same model.
//
// # Interfaces
//
//   - Embedder: Generates vector embeddings from text
//   - AIProvider: Aggregates AI services for convenient initialization
//
// # Implementation Packages
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// Public constructors (openai.NewProvider, openai.NewEmbedder) return
// interface types. Test utility constructors (mock.NewMockEmbedder) return
// concrete types so tests can inject behavior and read call counts.
//
// # Circuit Breaking
//
// NewBreakerEmbedder wraps any Embedder with a circuit breaker. While the
// breaker is open, calls fail fast with ErrCircuitOpen instead of waiting on
// a provider that is known to be down.
//
// # Usage Example
//
//	config := ai.DefaultConfig()
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	embedder, err := ai.NewBreakerEmbedder(provider.Embedder())
//	vector, err := embedder.EmbedText(ctx, "nursing and public health")
package ai
