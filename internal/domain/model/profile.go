package model

import (
	"fmt"
	"strings"
)

// Profile describes the requester of a recommendation. Built per request.
type Profile struct {
	ID                  string
	Name                string
	Skills              []string
	ExperienceYears     int
	ExperienceDetails   string
	Education           string
	MinBudget           float64
	PreferredCategories []string
	PreferredLocations  []string
	PreferredTitles     []string
}

// Normalize returns a copy with normalized skills and trimmed preference lists.
func (p Profile) Normalize() Profile {
	out := p
	out.ID = strings.TrimSpace(p.ID)
	out.Name = strings.TrimSpace(p.Name)
	out.Skills = NormalizeSkills(p.Skills)
	out.PreferredCategories = trimAll(p.PreferredCategories)
	out.PreferredLocations = trimAll(p.PreferredLocations)
	out.PreferredTitles = trimAll(p.PreferredTitles)
	return out
}

// Validate reports missing or out-of-range fields.
func (p Profile) Validate() error {
	switch {
	case strings.TrimSpace(p.ID) == "":
		return fmt.Errorf("%w: missing id", ErrInvalidProfile)
	case p.ExperienceYears < 0:
		return fmt.Errorf("%w: negative experience years", ErrInvalidProfile)
	case p.MinBudget < 0:
		return fmt.Errorf("%w: negative budget floor", ErrInvalidProfile)
	}
	return nil
}

// SkillText joins the profile skills for text similarity against skill strings.
func (p Profile) SkillText() string {
	return strings.Join(p.Skills, ", ")
}
