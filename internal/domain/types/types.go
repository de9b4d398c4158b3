// Package types contains common types used across the application
package types

import (
	"github.com/okian/gigmatch/internal/domain/insights"
	"github.com/okian/gigmatch/internal/domain/model"
	"github.com/okian/gigmatch/internal/domain/ranking"
	"github.com/okian/gigmatch/internal/domain/scoring"
)

// Entry is one ranked recommendation as returned to clients.
type Entry struct {
	Rank       int               `json:"rank"`
	RecordID   string            `json:"id"`
	Title      string            `json:"title"`
	Company    string            `json:"company,omitempty"`
	Location   string            `json:"location,omitempty"`
	Category   string            `json:"category,omitempty"`
	Platform   string            `json:"platform,omitempty"`
	Budget     float64           `json:"budget,omitempty"`
	Skills     []string          `json:"skills"`
	Experience string            `json:"experience_level,omitempty"`
	Education  string            `json:"education_level,omitempty"`
	Score      float64           `json:"score"`
	Breakdown  scoring.Breakdown `json:"breakdown"`
	Pitch      *insights.Pitch   `json:"pitch,omitempty"`
}

// Recommendations is a ranked list plus skill-gap advice.
type Recommendations struct {
	Catalog      string         `json:"catalog"`
	Entries      []Entry        `json:"recommendations"`
	Missing      []string       `json:"missing_skills,omitempty"`
	Tips         []insights.Tip `json:"skill_tips,omitempty"`
	TipsText     string         `json:"skill_tips_text,omitempty"`
	FeedbackRows int            `json:"feedback_rows"`
}

// FromRecord copies the display fields of r into an unranked entry.
func FromRecord(r model.Record) Entry {
	return Entry{
		RecordID:   r.ID,
		Title:      r.Title,
		Company:    r.Company,
		Location:   r.Location,
		Category:   r.Category,
		Platform:   r.Platform,
		Budget:     r.Budget,
		Skills:     append([]string{}, r.RequiredSkills...),
		Experience: r.ExperienceLevel,
		Education:  r.EducationLevel,
	}
}

// FromResults converts ranked results to entries with 1-based ranks.
// withPitch attaches the generated application texts.
func FromResults(results []ranking.Result, withPitch bool) []Entry {
	out := make([]Entry, len(results))
	for i, res := range results {
		e := FromRecord(res.Record)
		e.Rank = i + 1
		e.Score = res.Score
		e.Breakdown = res.Breakdown
		if withPitch {
			p := insights.NewPitch(res.Record)
			e.Pitch = &p
		}
		out[i] = e
	}
	return out
}
