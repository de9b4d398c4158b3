// Package insights derives market trends, skill gaps and application texts
// from catalog records.
package insights

import (
	"sort"

	"github.com/okian/gigmatch/internal/domain/model"
)

// Skill gap weights.
const (
	gapTrending = 1.0
	gapOther    = 0.5
)

// DefaultTrendingSkills is the trending list used when none is configured.
var DefaultTrendingSkills = []string{"react", "generative ai", "agentic ai", "python", "typescript", "flutter"}

// SkillCount is one entry of the skill demand table.
type SkillCount struct {
	Skill string `json:"skill"`
	Count int    `json:"count"`
}

// Trends summarizes a dataset.
type Trends struct {
	Skills           []SkillCount       `json:"skills"`
	BudgetByCategory map[string]float64 `json:"budget_by_category"`
	PlatformCounts   map[string]int     `json:"platform_counts"`
	SkillGap         map[string]float64 `json:"skill_gap"`
	BudgetByPlatform map[string]float64 `json:"success_rates"`
	Records          int                `json:"records"`
}

// Analyze computes demand per skill, mean budget per category and platform,
// platform counts and the skill gap map against trending.
func Analyze(ds *model.Dataset, trending []string) Trends {
	hot := make(map[string]struct{})
	for _, s := range model.NormalizeSkills(trending) {
		hot[s] = struct{}{}
	}

	t := Trends{
		BudgetByCategory: map[string]float64{},
		PlatformCounts:   map[string]int{},
		SkillGap:         map[string]float64{},
		BudgetByPlatform: map[string]float64{},
	}
	counts := map[string]int{}
	var order []string
	catSum, catN := map[string]float64{}, map[string]int{}
	platSum := map[string]float64{}

	for _, r := range ds.All() {
		t.Records++
		for _, s := range r.RequiredSkills {
			if _, seen := counts[s]; !seen {
				order = append(order, s)
			}
			counts[s]++
			if _, ok := hot[s]; ok {
				t.SkillGap[s] = gapTrending
			} else {
				t.SkillGap[s] = gapOther
			}
		}
		if r.Category != "" {
			catSum[r.Category] += r.Budget
			catN[r.Category]++
		}
		if r.Platform != "" {
			platSum[r.Platform] += r.Budget
			t.PlatformCounts[r.Platform]++
		}
	}

	for c, sum := range catSum {
		t.BudgetByCategory[c] = sum / float64(catN[c])
	}
	for p, sum := range platSum {
		t.BudgetByPlatform[p] = sum / float64(t.PlatformCounts[p])
	}

	t.Skills = make([]SkillCount, 0, len(order))
	for _, s := range order {
		t.Skills = append(t.Skills, SkillCount{Skill: s, Count: counts[s]})
	}
	sort.SliceStable(t.Skills, func(i, j int) bool {
		return t.Skills[i].Count > t.Skills[j].Count
	})
	return t
}
