package model

import (
	"fmt"
	"strings"
)

// Dataset is an immutable, ordered collection of records. Safe for concurrent reads.
type Dataset struct {
	records []Record
	byID    map[string]int
}

// NewDataset copies records, normalizes their skill sets and indexes them by id.
func NewDataset(records []Record) (*Dataset, error) {
	d := &Dataset{
		records: make([]Record, 0, len(records)),
		byID:    make(map[string]int, len(records)),
	}
	for i, r := range records {
		r = r.clone()
		r.ID = strings.TrimSpace(r.ID)
		if r.ID == "" {
			return nil, fmt.Errorf("%w: record %d has empty id", ErrInvalidRecord, i)
		}
		if _, dup := d.byID[r.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRecord, r.ID)
		}
		if r.Budget < 0 {
			return nil, fmt.Errorf("%w: record %s has negative budget", ErrInvalidRecord, r.ID)
		}
		r.RequiredSkills = NormalizeSkills(r.RequiredSkills)
		r.PreferredSkills = NormalizeSkills(r.PreferredSkills)
		d.byID[r.ID] = len(d.records)
		d.records = append(d.records, r)
	}
	return d, nil
}

// Len returns the number of records.
func (d *Dataset) Len() int { return len(d.records) }

// All returns copies of every record in load order.
func (d *Dataset) All() []Record {
	out := make([]Record, len(d.records))
	for i, r := range d.records {
		out[i] = r.clone()
	}
	return out
}

// ByID looks up a record.
func (d *Dataset) ByID(id string) (Record, bool) {
	i, ok := d.byID[id]
	if !ok {
		return Record{}, false
	}
	return d.records[i].clone(), true
}

// Filter returns copies of the records keep accepts, in load order.
func (d *Dataset) Filter(keep func(Record) bool) []Record {
	var out []Record
	for _, r := range d.records {
		if keep(r) {
			out = append(out, r.clone())
		}
	}
	return out
}

// Texts returns the selected text field of every record, in load order.
func (d *Dataset) Texts(field TextField) []string {
	out := make([]string, len(d.records))
	for i, r := range d.records {
		out[i] = r.Text(field)
	}
	return out
}
