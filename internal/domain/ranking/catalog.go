package ranking

import (
	"fmt"

	"github.com/okian/gigmatch/internal/domain/model"
	"github.com/okian/gigmatch/internal/domain/scoring"
	"github.com/okian/gigmatch/internal/domain/textindex"
)

// Catalog names a dataset together with its fitted index, scorer and filters.
type Catalog struct {
	*Ranker
	name  string
	index *textindex.Index
}

type catalogConfig struct {
	field      model.TextField
	stopWords  []string
	hasStop    bool
	scorerOpts []scoring.Option
	filters    []Filter
}

// CatalogOption configures NewCatalog.
type CatalogOption func(*catalogConfig)

// WithTextField selects the text pairing used for fitting and scoring.
func WithTextField(f model.TextField) CatalogOption {
	return func(c *catalogConfig) { c.field = f }
}

// WithStopWords overrides the index stop list.
func WithStopWords(words []string) CatalogOption {
	return func(c *catalogConfig) {
		c.stopWords = words
		c.hasStop = true
	}
}

// WithScoring appends scorer options.
func WithScoring(opts ...scoring.Option) CatalogOption {
	return func(c *catalogConfig) { c.scorerOpts = append(c.scorerOpts, opts...) }
}

// WithFilters appends hard filters.
func WithFilters(filters ...Filter) CatalogOption {
	return func(c *catalogConfig) { c.filters = append(c.filters, filters...) }
}

// NewCatalog fits the text index over ds and builds the scorer.
func NewCatalog(name string, ds *model.Dataset, opts ...CatalogOption) (*Catalog, error) {
	cfg := catalogConfig{field: model.TextDescription}
	for _, opt := range opts {
		opt(&cfg)
	}
	if ds == nil {
		return nil, fmt.Errorf("%w: catalog %q: %w", ErrConfiguration, name, textindex.ErrNoDocuments)
	}

	var ixOpts []textindex.Option
	if cfg.hasStop {
		ixOpts = append(ixOpts, textindex.WithStopWords(cfg.stopWords))
	}
	ix, err := textindex.Fit(ds.Texts(cfg.field), ixOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: catalog %q: %w", ErrConfiguration, name, err)
	}

	scorerOpts := append([]scoring.Option{
		scoring.WithSimilarity(ix),
		scoring.WithTextField(cfg.field),
	}, cfg.scorerOpts...)
	scorer, err := scoring.New(scorerOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: catalog %q: %w", ErrConfiguration, name, err)
	}

	return &Catalog{
		Ranker: NewRanker(ds, scorer, cfg.filters...),
		name:   name,
		index:  ix,
	}, nil
}

// Name returns the catalog name.
func (c *Catalog) Name() string { return c.name }

// Dataset returns the catalog's records.
func (c *Catalog) Dataset() *model.Dataset { return c.dataset }

// Index returns the fitted text index.
func (c *Catalog) Index() *textindex.Index { return c.index }

// WithFeedback returns a ranker whose scorer is bound to summary.
func (c *Catalog) WithFeedback(summary model.FeedbackSummary) *Ranker {
	return NewRanker(c.dataset, c.scorer.WithFeedback(summary), c.filters...)
}
