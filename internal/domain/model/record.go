// Package model contains domain models passed between layers.
package model

import (
	"strings"
)

// TextField selects which free-text part of a Record feeds text similarity.
type TextField int

const (
	// TextDescription uses the record description.
	TextDescription TextField = iota
	// TextSkills uses the required skills joined with ", ".
	TextSkills
)

// String implements fmt.Stringer.
func (f TextField) String() string {
	switch f {
	case TextSkills:
		return "skills"
	default:
		return "description"
	}
}

// Record is a job posting or a freelance gig. Immutable once placed in a Dataset.
type Record struct {
	ID              string
	Title           string
	Company         string
	Description     string
	RequiredSkills  []string // normalized lowercase
	PreferredSkills []string // normalized lowercase
	ExperienceLevel string   // e.g. "Entry", "Mid-level", "Senior"
	EducationLevel  string   // e.g. "Bachelor's", "Master's", "PhD"
	Budget          float64
	Category        string
	Location        string
	Platform        string
	PostedDate      string
}

// Text returns the free text selected by field.
func (r Record) Text(field TextField) string {
	if field == TextSkills {
		return strings.Join(r.RequiredSkills, ", ")
	}
	return r.Description
}

// clone returns a copy that shares no slices with r.
func (r Record) clone() Record {
	out := r
	out.RequiredSkills = append([]string(nil), r.RequiredSkills...)
	out.PreferredSkills = append([]string(nil), r.PreferredSkills...)
	return out
}

// NormalizeSkills lowercases and trims skills, dropping empties and duplicates.
// First-seen order is kept.
func NormalizeSkills(skills []string) []string {
	if len(skills) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// ParseList splits a comma-separated cell into trimmed, non-empty items.
func ParseList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// trimAll trims every item and drops empties.
func trimAll(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			out = append(out, it)
		}
	}
	return out
}
