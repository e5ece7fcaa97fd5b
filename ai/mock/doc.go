// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.Embedder, ai.ConceptExtractor,
// and ai.AIProvider for use in unit tests. The mocks allow tests to run without
// external AI service dependencies and enable controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockProvider := mock.NewMockProvider()
//	vector, err := mockProvider.Embedder().EmbedText(ctx, "test")
//
//	// Fixed vectors per text
//	mockEmbedder := mock.NewMockEmbedder().
//	    WithVector("math", []float32{1, 0, 0}).
//	    WithVector("art", []float32{0, 1, 0})
//
//	// Custom behavior injection
//	mockEmbedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
//	    return nil, errors.New("provider down")
//	}
//
//	// Check call counts and batches
//	count := mockEmbedder.CallCount()
//	batches := mockEmbedder.Batches()
//
// # Default Behavior
//
//   - MockEmbedder: Returns fixed vectors when registered, otherwise
//     deterministic vectors based on text hash
//   - MockProvider: Wraps a mock embedder
package mock
