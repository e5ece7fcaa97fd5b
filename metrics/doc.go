// Package metrics exports Prometheus instrumentation for the recommendation
// engine and the embedding circuit breaker.
//
// Metrics are registered on a caller-supplied registerer so that tests and
// embedders of the library can keep separate registries:
//
//	reg := prometheus.NewRegistry()
//	m := metrics.New(reg)
//
//	engine, err := recommend.NewEngine(cache, provider, recommend.WithMonitor(m.Monitor()))
//	provider, err := openai.NewProvider(cfg, ai.WithStateChange(m.BreakerStateChange))
package metrics
