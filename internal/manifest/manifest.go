// Package manifest records what a run emitted: one entry per artifact with
// its digest, plus one record per run. Two manifests can be compared without
// touching the artifact trees.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"time"

	"pkg.jsn.cam/prngvec/pkg/prngvec"
)

// InMemory selects the ephemeral store in Open.
const InMemory = ":memory:"

var (
	runsBucket      = []byte("runs")
	artifactsBucket = []byte("artifacts")
)

// ErrNotFound is returned by lookups for unknown keys.
var ErrNotFound = errors.New("manifest entry not found")

// Entry describes one written artifact.
type Entry struct {
	Family string `json:"family"`
	Name   string `json:"name"`
	Values int    `json:"values"`
	Width  int    `json:"width"`
	Bytes  int64  `json:"bytes"`
	SHA256 string `json:"sha256"`
	RunID  string `json:"run_id"`
}

// Key is the slash-separated relative artifact path.
func (e Entry) Key() string {
	return path.Join(e.Family, e.Name)
}

// Config parses the parameter tuple back from the entry.
func (e Entry) Config() (prngvec.Config, error) {
	return prngvec.ParseName(prngvec.Family(e.Family), e.Name)
}

// Run describes one generate invocation.
type Run struct {
	ID            string    `json:"id"`
	FormatVersion string    `json:"format_version"`
	VectorLength  int       `json:"vector_length"`
	Workers       int       `json:"workers"`
	StartedAt     time.Time `json:"started_at"`
	FinishedAt    time.Time `json:"finished_at"`
	Artifacts     int       `json:"artifacts"`
	Failures      int       `json:"failures"`
}

// Store persists manifest records. Implementations are safe for concurrent use.
type Store interface {
	PutRun(run Run) error
	GetRun(id string) (Run, error)
	Runs() ([]Run, error)

	PutEntry(e Entry) error
	GetEntry(key string) (Entry, error)
	// ForEach visits entries in key order.
	ForEach(fn func(e Entry) error) error

	Close() error
}

// Open returns a bbolt store at path, or an in-memory store for InMemory.
func Open(path string) (Store, error) {
	if path == InMemory {
		return NewMemoryStore(), nil
	}
	return NewBboltStore(path)
}

// LatestRun returns the run with the latest start time.
func LatestRun(s Store) (Run, error) {
	runs, err := s.Runs()
	if err != nil {
		return Run{}, err
	}
	if len(runs) == 0 {
		return Run{}, fmt.Errorf("%w: no runs recorded", ErrNotFound)
	}
	latest := runs[0]
	for _, r := range runs[1:] {
		if r.StartedAt.After(latest.StartedAt) {
			latest = r
		}
	}
	return latest, nil
}

func encode(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}
	return data, nil
}

func decode(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode JSON: %w", err)
	}
	return nil
}
