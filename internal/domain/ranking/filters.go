package ranking

import (
	"strings"

	"github.com/okian/gigmatch/internal/domain/model"
)

// Filter reports whether r is eligible for p. Filters run before scoring.
type Filter func(p model.Profile, r model.Record) bool

// BudgetFloor keeps records whose budget meets the profile's floor.
// A zero floor keeps everything.
func BudgetFloor() Filter {
	return func(p model.Profile, r model.Record) bool {
		return p.MinBudget <= 0 || r.Budget >= p.MinBudget
	}
}

// Category keeps records whose category equals one of the preferred
// categories, ignoring case. No preference keeps everything.
func Category() Filter {
	return func(p model.Profile, r model.Record) bool {
		if len(p.PreferredCategories) == 0 {
			return true
		}
		for _, c := range p.PreferredCategories {
			if strings.EqualFold(strings.TrimSpace(c), strings.TrimSpace(r.Category)) {
				return true
			}
		}
		return false
	}
}

// Location keeps records whose location contains one of the preferred
// locations, ignoring case. No preference keeps everything.
func Location() Filter {
	return func(p model.Profile, r model.Record) bool {
		if len(p.PreferredLocations) == 0 {
			return true
		}
		loc := strings.ToLower(r.Location)
		for _, want := range p.PreferredLocations {
			w := strings.ToLower(strings.TrimSpace(want))
			if w != "" && strings.Contains(loc, w) {
				return true
			}
		}
		return false
	}
}

func eligible(filters []Filter, p model.Profile, r model.Record) bool {
	for _, f := range filters {
		if !f(p, r) {
			return false
		}
	}
	return true
}
