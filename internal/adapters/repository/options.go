package repository

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithMaxSize bounds the number of reports the in-memory store keeps; the
// oldest reports are evicted first. Zero or negative means unbounded.
func WithMaxSize(size int) Option {
	return func(s *MemoryStore) {
		s.maxSize = size
	}
}
