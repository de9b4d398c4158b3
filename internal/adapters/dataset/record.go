// Package dataset loads job and gig records from CSV, YAML and JSON files.
package dataset

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/okian/gigmatch/internal/domain/model"
)

// List decodes either a sequence or a comma-separated string.
type List []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *List) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*l = model.ParseList(node.Value)
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := node.Decode(&items); err != nil {
			return err
		}
		*l = items
		return nil
	default:
		return fmt.Errorf("line %d: expected list or string", node.Line)
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *List) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*l = model.ParseList(s)
		return nil
	}
	var items []string
	if err := json.Unmarshal(b, &items); err != nil {
		return fmt.Errorf("expected list or string: %w", err)
	}
	*l = items
	return nil
}

// fileRecord is the on-disk shape shared by YAML and JSON files.
type fileRecord struct {
	ID              string  `yaml:"id" json:"id"`
	Title           string  `yaml:"title" json:"title"`
	Company         string  `yaml:"company" json:"company"`
	Location        string  `yaml:"location" json:"location"`
	Description     string  `yaml:"description" json:"description"`
	RequiredSkills  List    `yaml:"required_skills" json:"required_skills"`
	PreferredSkills List    `yaml:"preferred_skills" json:"preferred_skills"`
	ExperienceLevel string  `yaml:"experience_level" json:"experience_level"`
	EducationLevel  string  `yaml:"education_level" json:"education_level"`
	PostedDate      string  `yaml:"posted_date" json:"posted_date"`
	Budget          float64 `yaml:"budget" json:"budget"`
	Category        string  `yaml:"category" json:"category"`
	Platform        string  `yaml:"platform" json:"platform"`
}

func (f fileRecord) toModel() model.Record {
	return model.Record{
		ID:              f.ID,
		Title:           f.Title,
		Company:         f.Company,
		Location:        f.Location,
		Description:     f.Description,
		RequiredSkills:  f.RequiredSkills,
		PreferredSkills: f.PreferredSkills,
		ExperienceLevel: f.ExperienceLevel,
		EducationLevel:  f.EducationLevel,
		PostedDate:      f.PostedDate,
		Budget:          f.Budget,
		Category:        f.Category,
		Platform:        f.Platform,
	}
}

// ProfileDoc is the file and request shape of a requester profile.
type ProfileDoc struct {
	ID                  string  `yaml:"user_id" json:"user_id"`
	Name                string  `yaml:"name" json:"name"`
	Skills              List    `yaml:"skills" json:"skills"`
	ExperienceYears     int     `yaml:"experience_years" json:"experience_years"`
	ExperienceDetails   string  `yaml:"experience_details" json:"experience_details"`
	Education           string  `yaml:"education" json:"education"`
	MinBudget           float64 `yaml:"min_budget" json:"min_budget"`
	PreferredCategories List    `yaml:"preferred_categories" json:"preferred_categories"`
	PreferredLocations  List    `yaml:"preferred_locations" json:"preferred_locations"`
	PreferredTitles     List    `yaml:"preferred_job_titles" json:"preferred_job_titles"`
}

// Model converts the document to a domain profile.
func (f ProfileDoc) Model() model.Profile {
	return model.Profile{
		ID:                  f.ID,
		Name:                f.Name,
		Skills:              f.Skills,
		ExperienceYears:     f.ExperienceYears,
		ExperienceDetails:   f.ExperienceDetails,
		Education:           f.Education,
		MinBudget:           f.MinBudget,
		PreferredCategories: f.PreferredCategories,
		PreferredLocations:  f.PreferredLocations,
		PreferredTitles:     f.PreferredTitles,
	}
}
