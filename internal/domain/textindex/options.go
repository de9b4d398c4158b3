package textindex

// DefaultStopWords is the stop list used when none is configured.
var DefaultStopWords = []string{"a", "an", "the", "and", "or", "in", "on", "at"}

// Option applies a configuration option to an Index at fit time.
type Option func(*Index)

// WithStopWords replaces the stop list. A nil or empty list disables stop-word removal.
func WithStopWords(words []string) Option {
	return func(ix *Index) {
		ix.stopWords = make(map[string]struct{}, len(words))
		for _, w := range words {
			ix.stopWords[normalizeToken(w)] = struct{}{}
		}
	}
}
