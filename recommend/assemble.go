package recommend

import "github.com/poiesic/unifinder/core"

const (
	// NoValidInputMessage accompanies the fallback for an empty questionnaire.
	NoValidInputMessage = "No valid input provided. Please answer at least one question."

	// NoStrongMatchMessage accompanies the fallback when nothing clears the threshold.
	NoStrongMatchMessage = "We couldn't find a strong match for your interest, so here are a few programs you might explore or Click Try Again!"
)

// noValidInputResponse is the fallback for a questionnaire with no usable answers.
func noValidInputResponse() *core.RecommendationResponse {
	return &core.RecommendationResponse{
		Type:                  core.MatchFallback,
		Message:               NoValidInputMessage,
		Results:               []*core.ScoredResult{},
		WeakMatches:           []*core.ScoredResult{},
		TopSchoolsForCategory: []core.RankingEntry{},
	}
}

// assemble builds the response from sorted strong and weak lists.
func assemble(strong, weak []*core.ScoredResult, rankings core.SchoolRankings, cfg *Config) *core.RecommendationResponse {
	if len(strong) > 0 {
		resp := &core.RecommendationResponse{
			Type:        core.MatchExact,
			Results:     window(strong, 0, cfg.ExactLimit),
			WeakMatches: window(weak, 0, cfg.ExactLimit),
		}
		setMatchedCategory(resp, strong[0], rankings, cfg.TopSchools)
		return resp
	}

	resp := &core.RecommendationResponse{
		Type:                  core.MatchFallback,
		Results:               window(weak, 0, cfg.FallbackResults),
		WeakMatches:           window(weak, cfg.FallbackResults, cfg.FallbackResults+cfg.FallbackWeak),
		TopSchoolsForCategory: []core.RankingEntry{},
	}
	resp.Message = NoStrongMatchMessage
	if len(weak) > 0 {
		setMatchedCategory(resp, weak[0], rankings, cfg.TopSchools)
	}
	return resp
}

func setMatchedCategory(resp *core.RecommendationResponse, best *core.ScoredResult, rankings core.SchoolRankings, topSchools int) {
	category := best.Category
	resp.MatchedCategory = &category
	resp.TopSchoolsForCategory = rankings.Top(category, topSchools)
}

// window returns a copy of s[from:to], clipped to the slice bounds.
// The result is never nil.
func window(s []*core.ScoredResult, from, to int) []*core.ScoredResult {
	from = min(from, len(s))
	to = max(from, min(to, len(s)))
	out := make([]*core.ScoredResult, to-from)
	copy(out, s[from:to])
	return out
}
