package dedupe

// Option applies a configuration option to the deduper.
type Option func(*ringDeduper)

// WithMaxSize bounds the number of remembered ids; the oldest is evicted
// first. A value <= 0 keeps every id.
func WithMaxSize(maxSize int) Option {
	return func(d *ringDeduper) {
		d.maxSize = maxSize
	}
}
