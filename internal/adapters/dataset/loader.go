package dataset

import (
	"bytes"
	"embed"
	"errors"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/okian/gigmatch/internal/domain/model"
)

// Format identifies a dataset encoding.
type Format string

// Supported formats.
const (
	FormatCSV  Format = "csv"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Sample dataset names.
const (
	SampleJobs = "jobs"
	SampleGigs = "gigs"
)

//go:embed samples/*.yaml
var samples embed.FS

// FormatOf infers the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Read decodes records in the given format.
func Read(r io.Reader, f Format) ([]model.Record, error) {
	switch f {
	case FormatCSV:
		return ReadCSV(r)
	case FormatYAML:
		var rows []fileRecord
		if err := yaml.NewDecoder(r).Decode(&rows); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
		return toRecords(rows), nil
	case FormatJSON:
		var rows []fileRecord
		if err := json.NewDecoder(r).Decode(&rows); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
		return toRecords(rows), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

// Load reads a dataset file and builds a Dataset.
func Load(path string) (*model.Dataset, error) {
	f, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	fh, err := os.Open(path) //nolint:gosec // path comes from operator config
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer func() { _ = fh.Close() }()

	records, err := Read(fh, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	ds, err := model.NewDataset(records)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// Sample returns one of the embedded sample datasets.
func Sample(name string) (*model.Dataset, error) {
	b, err := samples.ReadFile("samples/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSample, name)
	}
	records, err := Read(bytes.NewReader(b), FormatYAML)
	if err != nil {
		return nil, err
	}
	return model.NewDataset(records)
}

// LoadOrSample loads path, or the named sample when path is empty.
func LoadOrSample(path, sample string) (*model.Dataset, error) {
	if strings.TrimSpace(path) == "" {
		return Sample(sample)
	}
	return Load(path)
}

// LoadProfiles reads requester profiles from a CSV, YAML or JSON file.
func LoadProfiles(path string) ([]model.Profile, error) {
	f, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	fh, err := os.Open(path) //nolint:gosec // path comes from the command line
	if err != nil {
		return nil, fmt.Errorf("open profiles: %w", err)
	}
	defer func() { _ = fh.Close() }()

	if f == FormatCSV {
		return ReadProfilesCSV(fh)
	}
	var rows []ProfileDoc
	if f == FormatYAML {
		err = yaml.NewDecoder(fh).Decode(&rows)
	} else {
		err = json.NewDecoder(fh).Decode(&rows)
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode profiles: %w", err)
	}
	out := make([]model.Profile, len(rows))
	for i, r := range rows {
		out[i] = r.Model()
	}
	return out, nil
}

func toRecords(rows []fileRecord) []model.Record {
	out := make([]model.Record, len(rows))
	for i, r := range rows {
		out[i] = r.toModel()
	}
	return out
}
