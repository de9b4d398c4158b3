package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/okian/gigmatch/internal/domain/model"
)

// table maps lowercase header names to column positions.
type table struct {
	cols map[string]int
}

func newTable(header []string) table {
	t := table{cols: make(map[string]int, len(header))}
	for i, h := range header {
		t.cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return t
}

func (t table) require(names ...string) error {
	for _, n := range names {
		if _, ok := t.cols[n]; !ok {
			return fmt.Errorf("%w: %s", ErrMissingColumn, n)
		}
	}
	return nil
}

func (t table) get(row []string, name string) string {
	i, ok := t.cols[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (t table) number(row []string, name string) (float64, error) {
	v := t.get(row, name)
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("column %s: %w", name, err)
	}
	return f, nil
}

func readCSV(r io.Reader, required []string, each func(t table, row []string, line int) error) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	t := newTable(header)
	if err := t.require(required...); err != nil {
		return err
	}

	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		if err := each(t, row, line); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
}

// ReadCSV parses records from CSV with a header row. List columns hold
// comma-separated values. A gig_id column is accepted in place of id.
func ReadCSV(r io.Reader) ([]model.Record, error) {
	var out []model.Record
	err := readCSV(r, nil, func(t table, row []string, _ int) error {
		id := t.get(row, "id")
		if id == "" {
			id = t.get(row, "gig_id")
		}
		budget, err := t.number(row, "budget")
		if err != nil {
			return err
		}
		skills := t.get(row, "required_skills")
		if skills == "" {
			skills = t.get(row, "skills")
		}
		out = append(out, model.Record{
			ID:              id,
			Title:           t.get(row, "title"),
			Company:         t.get(row, "company"),
			Location:        t.get(row, "location"),
			Description:     t.get(row, "description"),
			RequiredSkills:  model.ParseList(skills),
			PreferredSkills: model.ParseList(t.get(row, "preferred_skills")),
			ExperienceLevel: t.get(row, "experience_level"),
			EducationLevel:  t.get(row, "education_level"),
			PostedDate:      t.get(row, "posted_date"),
			Budget:          budget,
			Category:        t.get(row, "category"),
			Platform:        t.get(row, "platform"),
		})
		return nil
	})
	return out, err
}

// ReadProfilesCSV parses requester profiles from CSV with a header row.
func ReadProfilesCSV(r io.Reader) ([]model.Profile, error) {
	var out []model.Profile
	err := readCSV(r, []string{"user_id"}, func(t table, row []string, _ int) error {
		years, err := t.number(row, "experience_years")
		if err != nil {
			return err
		}
		budget, err := t.number(row, "min_budget")
		if err != nil {
			return err
		}
		out = append(out, model.Profile{
			ID:                  t.get(row, "user_id"),
			Name:                t.get(row, "name"),
			Skills:              model.ParseList(t.get(row, "skills")),
			ExperienceYears:     int(years),
			ExperienceDetails:   t.get(row, "experience_details"),
			Education:           t.get(row, "education"),
			MinBudget:           budget,
			PreferredCategories: model.ParseList(t.get(row, "preferred_categories")),
			PreferredLocations:  model.ParseList(t.get(row, "preferred_locations")),
			PreferredTitles:     model.ParseList(t.get(row, "preferred_job_titles")),
		})
		return nil
	})
	return out, err
}
