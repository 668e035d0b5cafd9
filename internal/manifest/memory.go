package manifest

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// MemoryStore implements Store using in-memory maps (not persistent)
type MemoryStore struct {
	runs    map[string]Run
	entries map[string]Entry
	mu      sync.RWMutex
}

// NewMemoryStore creates a new in-memory manifest
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		runs:    make(map[string]Run),
		entries: make(map[string]Entry),
	}
}

func (m *MemoryStore) PutRun(run Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.runs[run.ID] = run
	return nil
}

func (m *MemoryStore) GetRun(id string) (Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	run, exists := m.runs[id]
	if !exists {
		return Run{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return run, nil
}

func (m *MemoryStore) Runs() ([]Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	runs := make([]Run, 0, len(m.runs))
	for _, id := range slices.Sorted(maps.Keys(m.runs)) {
		runs = append(runs, m.runs[id])
	}
	return runs, nil
}

func (m *MemoryStore) PutEntry(e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[e.Key()] = e
	return nil
}

func (m *MemoryStore) GetEntry(key string) (Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, exists := m.entries[key]
	if !exists {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return e, nil
}

// ForEach iterates over a snapshot, so fn may write to the store.
func (m *MemoryStore) ForEach(fn func(e Entry) error) error {
	m.mu.RLock()
	keys := slices.Sorted(maps.Keys(m.entries))
	snapshot := make([]Entry, len(keys))
	for i, k := range keys {
		snapshot[i] = m.entries[k]
	}
	m.mu.RUnlock()

	for _, e := range snapshot {
		if err := fn(e); err != nil {
			return err
		}
	}
	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}
