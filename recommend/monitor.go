package recommend

import (
	"time"

	"github.com/poiesic/unifinder/core"
)

// Monitor provides hooks to observe a recommendation request.
// One Monitor may observe many concurrent requests, so implementations
// must be safe for concurrent use.
type Monitor interface {
	Start(requestID string)
	AfterVectorize(requestID string, vectors int, dimension int)
	AfterCatalogLoad(requestID string, programs int, rankedCategories int)
	CandidateSkipped(requestID string, program *core.ProgramRecord, err error)
	CandidateFiltered(requestID string, program *core.ProgramRecord, reason FilterReason)
	CandidateScored(requestID string, result *core.ScoredResult)
	Finish(requestID string, response *core.RecommendationResponse, err error, elapsed time.Duration)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                                                            {}
func (n *noopMonitor) AfterVectorize(_ string, _ int, _ int)                                     {}
func (n *noopMonitor) AfterCatalogLoad(_ string, _ int, _ int)                                   {}
func (n *noopMonitor) CandidateSkipped(_ string, _ *core.ProgramRecord, _ error)                 {}
func (n *noopMonitor) CandidateFiltered(_ string, _ *core.ProgramRecord, _ FilterReason)         {}
func (n *noopMonitor) CandidateScored(_ string, _ *core.ScoredResult)                            {}
func (n *noopMonitor) Finish(_ string, _ *core.RecommendationResponse, _ error, _ time.Duration) {}

// multiMonitor fans every hook out to each monitor in order.
type multiMonitor []Monitor

var _ Monitor = multiMonitor(nil)

func (m multiMonitor) Start(requestID string) {
	for _, mon := range m {
		mon.Start(requestID)
	}
}

func (m multiMonitor) AfterVectorize(requestID string, vectors int, dimension int) {
	for _, mon := range m {
		mon.AfterVectorize(requestID, vectors, dimension)
	}
}

func (m multiMonitor) AfterCatalogLoad(requestID string, programs int, rankedCategories int) {
	for _, mon := range m {
		mon.AfterCatalogLoad(requestID, programs, rankedCategories)
	}
}

func (m multiMonitor) CandidateSkipped(requestID string, program *core.ProgramRecord, err error) {
	for _, mon := range m {
		mon.CandidateSkipped(requestID, program, err)
	}
}

func (m multiMonitor) CandidateFiltered(requestID string, program *core.ProgramRecord, reason FilterReason) {
	for _, mon := range m {
		mon.CandidateFiltered(requestID, program, reason)
	}
}

func (m multiMonitor) CandidateScored(requestID string, result *core.ScoredResult) {
	for _, mon := range m {
		mon.CandidateScored(requestID, result)
	}
}

func (m multiMonitor) Finish(requestID string, response *core.RecommendationResponse, err error, elapsed time.Duration) {
	for _, mon := range m {
		mon.Finish(requestID, response, err, elapsed)
	}
}
