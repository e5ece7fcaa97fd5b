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


package metrics

import (
	"errors"
	"io"
	"time"

	"github.com/poiesic/unifinder/core"
	"github.com/poiesic/unifinder/recommend"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

const namespace = "unifinder"

// Metrics holds the collectors registered by New.
type Metrics struct {
	gatherer prometheus.Gatherer

	Requests           *prometheus.CounterVec
	RequestDuration    prometheus.Histogram
	CandidatesScored   prometheus.Counter
	CandidatesFiltered *prometheus.CounterVec
	CandidatesSkipped  prometheus.Counter
	QueryVectors       prometheus.Histogram
	CatalogPrograms    prometheus.Gauge
	BreakerState       *prometheus.GaugeVec
	BreakerTransitions *prometheus.CounterVec
}

// New creates the collectors and registers them on reg. If reg is also a
// prometheus.Gatherer, WriteText can dump it.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	m := &Metrics{
		Requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "recommend_requests_total",
				Help:      "Recommendation requests by outcome",
			},
			[]string{"outcome"}, // "exact", "fallback", "no_input", "error"
		),
		RequestDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "recommend_duration_seconds",
				Help:      "Duration of recommendation requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
		),
		CandidatesScored: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "recommend_candidates_scored_total",
				Help:      "Candidates that passed the filter and were scored",
			},
		),
		CandidatesFiltered: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "recommend_candidates_filtered_total",
				Help:      "Candidates removed by the request filter",
			},
			[]string{"reason"},
		),
		CandidatesSkipped: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "recommend_candidates_skipped_total",
				Help:      "Malformed or unscoreable catalog records skipped during scoring",
			},
		),
		QueryVectors: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "recommend_query_vectors",
				Help:      "Answer categories averaged into each query vector",
				Buckets:   []float64{1, 2, 3, 4, 5},
			},
		),
		CatalogPrograms: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "catalog_programs",
				Help:      "Programs in the catalog snapshot seen by the last request",
			},
		),
		BreakerState: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "embed_breaker_state",
				Help:      "Embedding circuit breaker state (0=closed, 1=half-open, 2=open)",
			},
			[]string{"breaker"},
		),
		BreakerTransitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "embed_breaker_transitions_total",
				Help:      "Embedding circuit breaker state changes",
			},
			[]string{"breaker", "from", "to"},
		),
	}
	if g, ok := reg.(prometheus.Gatherer); ok {
		m.gatherer = g
	}
	return m
}

// Monitor returns a recommend.Monitor that records into m.
func (m *Metrics) Monitor() recommend.Monitor {
	return &RecommendMonitor{metrics: m}
}

// BreakerStateChange records a breaker transition. It matches
// ai.StateChangeFunc.
func (m *Metrics) BreakerStateChange(name, from, to string) {
	m.BreakerTransitions.WithLabelValues(name, from, to).Inc()
	m.BreakerState.WithLabelValues(name).Set(breakerStateValue(to))
}

// WriteText writes every gathered metric family in the Prometheus text format.
func (m *Metrics) WriteText(w io.Writer) error {
	if m.gatherer == nil {
		return errors.New("metrics registry is not a gatherer")
	}
	families, err := m.gatherer.Gather()
	if err != nil {
		return err
	}
	for _, family := range families {
		if _, err := expfmt.MetricFamilyToText(w, family); err != nil {
			return err
		}
	}
	return nil
}

func breakerStateValue(state string) float64 {
	switch state {
	case "half-open":
		return 1
	case "open":
		return 2
	default:
		return 0
	}
}

// RecommendMonitor implements recommend.Monitor on top of Metrics.
// It keeps no per-request state.
type RecommendMonitor struct {
	metrics *Metrics
}

var _ recommend.Monitor = (*RecommendMonitor)(nil)

func (r *RecommendMonitor) Start(_ string) {}

func (r *RecommendMonitor) AfterVectorize(_ string, vectors int, _ int) {
	r.metrics.QueryVectors.Observe(float64(vectors))
}

func (r *RecommendMonitor) AfterCatalogLoad(_ string, programs int, _ int) {
	r.metrics.CatalogPrograms.Set(float64(programs))
}

func (r *RecommendMonitor) CandidateSkipped(_ string, _ *core.ProgramRecord, _ error) {
	r.metrics.CandidatesSkipped.Inc()
}

func (r *RecommendMonitor) CandidateFiltered(_ string, _ *core.ProgramRecord, reason recommend.FilterReason) {
	r.metrics.CandidatesFiltered.WithLabelValues(string(reason)).Inc()
}

func (r *RecommendMonitor) CandidateScored(_ string, _ *core.ScoredResult) {
	r.metrics.CandidatesScored.Inc()
}

func (r *RecommendMonitor) Finish(_ string, response *core.RecommendationResponse, err error, elapsed time.Duration) {
	r.metrics.RequestDuration.Observe(elapsed.Seconds())
	r.metrics.Requests.WithLabelValues(outcome(response, err)).Inc()
}

func outcome(response *core.RecommendationResponse, err error) string {
	switch {
	case err != nil || response == nil:
		return "error"
	case response.Type == core.MatchExact:
		return "exact"
	case response.Message == recommend.NoValidInputMessage:
		return "no_input"
	default:
		return "fallback"
	}
}
