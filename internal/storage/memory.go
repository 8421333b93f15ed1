package storage

// MemoryStore keeps values in a plain map. It backs tests and processes that
// opt out of durable persistence. All access happens inside single-threaded
// event handlers, so no locking is required.
type MemoryStore struct {
	values map[string]string
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: map[string]string{}}
}

// Get returns the stored value and whether the key exists.
func (s *MemoryStore) Get(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Set stores the value under key.
func (s *MemoryStore) Set(key, value string) {
	s.values[key] = value
}

// Remove deletes the key if present.
func (s *MemoryStore) Remove(key string) {
	delete(s.values, key)
}

// Len returns the number of stored keys. Test helper.
func (s *MemoryStore) Len() int {
	return len(s.values)
}
