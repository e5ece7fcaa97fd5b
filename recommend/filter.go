package recommend

import (
	"strings"

	"github.com/poiesic/unifinder/core"
)

// SchoolTypeAny disables the school type filter.
const SchoolTypeAny = "any"

// Filter narrows the candidate pool. The zero value admits everything.
type Filter struct {
	// SchoolType keeps only candidates of this type. Empty or "any" disables it.
	SchoolType string
	// Locations keeps candidates whose location contains any of these.
	// Blank entries are ignored.
	Locations []string
	// MaxBudget drops candidates whose tuition per semester exceeds it.
	// Candidates without a tuition figure are kept.
	MaxBudget *float64
}

// FilterReason names the criterion that rejected a candidate.
type FilterReason string

const (
	ReasonSchoolType FilterReason = "school_type"
	ReasonLocation   FilterReason = "location"
	ReasonBudget     FilterReason = "budget"
)

// criteria is a Filter with its strings folded once per request.
type criteria struct {
	schoolType string
	locations  []string
	maxBudget  *float64
	scope      BudgetScope
}

func (f Filter) compile(scope BudgetScope) criteria {
	c := criteria{maxBudget: f.MaxBudget, scope: scope}
	if t := strings.ToLower(strings.TrimSpace(f.SchoolType)); t != SchoolTypeAny {
		c.schoolType = t
	}
	for _, loc := range f.Locations {
		if loc = strings.ToLower(strings.TrimSpace(loc)); loc != "" {
			c.locations = append(c.locations, loc)
		}
	}
	return c
}

// reject returns the first criterion the program fails, or "" when it passes.
// The criteria are independent, so the order they are checked in does not
// change which programs pass.
func (c criteria) reject(p *core.ProgramRecord) FilterReason {
	if c.schoolType != "" && strings.ToLower(strings.TrimSpace(p.SchoolType)) != c.schoolType {
		return ReasonSchoolType
	}

	if len(c.locations) > 0 {
		location := strings.ToLower(p.Location)
		matched := false
		for _, loc := range c.locations {
			if strings.Contains(location, loc) {
				matched = true
				break
			}
		}
		if !matched {
			return ReasonLocation
		}
	}

	if c.maxBudget != nil && p.TuitionPerSemester != nil && *p.TuitionPerSemester > *c.maxBudget {
		if c.scope == BudgetScopeAll || strings.EqualFold(strings.TrimSpace(p.SchoolType), core.SchoolTypePrivate) {
			return ReasonBudget
		}
	}

	return ""
}
