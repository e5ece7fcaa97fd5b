package recommend

import (
	"testing"

	"github.com/poiesic/unifinder/core"
	"github.com/stretchr/testify/assert"
)

func floatPtr(f float64) *float64 {
	return &f
}

func pool() []*core.ProgramRecord {
	return []*core.ProgramRecord{
		{Id: 1, School: "UP Diliman", SchoolType: "Public", Location: "Quezon City", TuitionPerSemester: floatPtr(0)},
		{Id: 2, School: "Ateneo", SchoolType: "Private", Location: "Quezon City", TuitionPerSemester: floatPtr(120000)},
		{Id: 3, School: "DLSU", SchoolType: "private", Location: "Manila", TuitionPerSemester: floatPtr(95000)},
		{Id: 4, School: "PLM", SchoolType: "public", Location: "Intramuros, Manila", TuitionPerSemester: floatPtr(60000)},
		{Id: 5, School: "Mapua", SchoolType: "Private", Location: "Makati"},
		{Id: 6, School: "Silliman", SchoolType: "Private", Location: "Dumaguete", TuitionPerSemester: floatPtr(50000)},
	}
}

func admitted(f Filter, scope BudgetScope, programs []*core.ProgramRecord) []core.ID {
	crit := f.compile(scope)
	var ids []core.ID
	for _, p := range programs {
		if crit.reject(p) == "" {
			ids = append(ids, p.Id)
		}
	}
	return ids
}

func TestFilter_SchoolType(t *testing.T) {
	assert.Len(t, admitted(Filter{}, BudgetScopeAll, pool()), 6)
	assert.Len(t, admitted(Filter{SchoolType: "any"}, BudgetScopeAll, pool()), 6)
	assert.Len(t, admitted(Filter{SchoolType: "ANY"}, BudgetScopeAll, pool()), 6)
	assert.Equal(t, []core.ID{2, 3, 5, 6}, admitted(Filter{SchoolType: "PRIVATE"}, BudgetScopeAll, pool()))
	assert.Equal(t, []core.ID{1, 4}, admitted(Filter{SchoolType: "public"}, BudgetScopeAll, pool()))
}

func TestFilter_Locations(t *testing.T) {
	tests := []struct {
		name      string
		locations []string
		want      []core.ID
	}{
		{"none", nil, []core.ID{1, 2, 3, 4, 5, 6}},
		{"substring", []string{"manila"}, []core.ID{3, 4}},
		{"any of several", []string{"Makati", "dumaguete"}, []core.ID{5, 6}},
		{"blank entries ignored", []string{"", "  ", "quezon"}, []core.ID{1, 2}},
		{"only blanks disables filter", []string{" "}, []core.ID{1, 2, 3, 4, 5, 6}},
		{"no match", []string{"Cebu"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, admitted(Filter{Locations: tt.locations}, BudgetScopeAll, pool()))
		})
	}
}

func TestFilter_Budget(t *testing.T) {
	budget := Filter{MaxBudget: floatPtr(55000)}

	t.Run("all scope drops every school over budget", func(t *testing.T) {
		// PLM is public but over budget; Mapua has no tuition figure
		assert.Equal(t, []core.ID{1, 5, 6}, admitted(budget, BudgetScopeAll, pool()))
	})

	t.Run("private-only scope keeps public schools over budget", func(t *testing.T) {
		assert.Equal(t, []core.ID{1, 4, 5, 6}, admitted(budget, BudgetScopePrivateOnly, pool()))
	})

	t.Run("tuition equal to budget is kept", func(t *testing.T) {
		assert.Contains(t, admitted(Filter{MaxBudget: floatPtr(50000)}, BudgetScopeAll, pool()), core.ID(6))
	})

	t.Run("reason", func(t *testing.T) {
		crit := budget.compile(BudgetScopeAll)
		assert.Equal(t, ReasonBudget, crit.reject(pool()[1]))
	})
}

func TestFilter_OrderIndependence(t *testing.T) {
	full := Filter{
		SchoolType: "private",
		Locations:  []string{"quezon", "manila", "makati"},
		MaxBudget:  floatPtr(100000),
	}
	combined := admitted(full, BudgetScopeAll, pool())
	assert.Equal(t, []core.ID{3, 5}, combined)

	only := []Filter{
		{SchoolType: full.SchoolType},
		{Locations: full.Locations},
		{MaxBudget: full.MaxBudget},
	}
	orders := [][]int{{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0}}
	for _, order := range orders {
		remaining := pool()
		for _, i := range order {
			crit := only[i].compile(BudgetScopeAll)
			var next []*core.ProgramRecord
			for _, p := range remaining {
				if crit.reject(p) == "" {
					next = append(next, p)
				}
			}
			remaining = next
		}
		var ids []core.ID
		for _, p := range remaining {
			ids = append(ids, p.Id)
		}
		assert.Equal(t, combined, ids, "order %v", order)
	}

	reversed := full
	reversed.Locations = []string{"makati", "manila", "quezon"}
	assert.Equal(t, combined, admitted(reversed, BudgetScopeAll, pool()))
}
