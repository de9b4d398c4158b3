package scoring

import (
	"strings"

	"github.com/okian/gigmatch/internal/domain/model"
)

// Sub-score values for the experience buckets.
const (
	fitExact        = 1.0
	fitNeutral      = 0.5
	entryOverqual   = 0.5
	midMismatch     = 0.7
	seniorUnderqual = 0.3

	entryMaxYears = 2
	midMaxYears   = 5
)

// Sub-score values when the requester's education is below the requirement.
const (
	phdShortfall      = 0.3
	masterShortfall   = 0.5
	bachelorShortfall = 0.3
)

// Education tiers; zero means unrecognized.
const (
	tierNone = iota
	tierBachelor
	tierMaster
	tierPhD
)

// SkillOverlap is the Jaccard index of two skill sets after normalization.
// It is 0 when either side is empty.
func SkillOverlap(a, b []string) float64 {
	left := model.NormalizeSkills(a)
	right := model.NormalizeSkills(b)
	if len(left) == 0 || len(right) == 0 {
		return 0
	}

	set := make(map[string]struct{}, len(left))
	for _, s := range left {
		set[s] = struct{}{}
	}
	var inter int
	for _, s := range right {
		if _, ok := set[s]; ok {
			inter++
		}
	}
	union := len(left) + len(right) - inter
	return float64(inter) / float64(union)
}

// ExperienceFit maps years of experience against a level label. The label is
// matched by substring, so "Mid-level" and "Senior Engineer" both resolve.
func ExperienceFit(years int, level string) float64 {
	l := strings.ToLower(level)
	switch {
	case strings.Contains(l, "entry"):
		if years <= entryMaxYears {
			return fitExact
		}
		return entryOverqual
	case strings.Contains(l, "mid"):
		if years > entryMaxYears && years <= midMaxYears {
			return fitExact
		}
		return midMismatch
	case strings.Contains(l, "senior"):
		if years > midMaxYears {
			return fitExact
		}
		return seniorUnderqual
	default:
		return fitNeutral
	}
}

// EducationFit compares the requester's education with the requirement on
// the tier order bachelor < master < phd.
func EducationFit(have, required string) float64 {
	need := educationTier(required)
	if need == tierNone {
		return fitNeutral
	}
	if educationTier(have) >= need {
		return fitExact
	}
	switch need {
	case tierPhD:
		return phdShortfall
	case tierMaster:
		return masterShortfall
	default:
		return bachelorShortfall
	}
}

func educationTier(s string) int {
	l := strings.ToLower(s)
	switch {
	case strings.Contains(l, "phd"), strings.Contains(l, "ph.d"), strings.Contains(l, "doctor"):
		return tierPhD
	case strings.Contains(l, "master"):
		return tierMaster
	case strings.Contains(l, "bachelor"):
		return tierBachelor
	default:
		return tierNone
	}
}

// TrendingShare is the fraction of skills that appear in trending.
// Both sides are expected normalized.
func TrendingShare(skills []string, trending map[string]struct{}) float64 {
	if len(skills) == 0 || len(trending) == 0 {
		return 0
	}
	var hits int
	for _, s := range skills {
		if _, ok := trending[s]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(skills))
}
