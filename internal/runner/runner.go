// Package runner sweeps the parameter grid across the selected families and
// emits one artifact per tuple.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/marusama/semaphore/v2"
	"github.com/schollz/progressbar/v3"

	"pkg.jsn.cam/prngvec/internal/emitter"
	"pkg.jsn.cam/prngvec/internal/grid"
	"pkg.jsn.cam/prngvec/internal/manifest"
	"pkg.jsn.cam/prngvec/internal/metrics"
	"pkg.jsn.cam/prngvec/pkg/generators"
	"pkg.jsn.cam/prngvec/pkg/prngvec"
	"pkg.jsn.cam/prngvec/pkg/prngvec/protocol"
)

const (
	DefaultLength  = 150
	DefaultWorkers = 1
)

// Config configures a run. Zero values fall back to the defaults.
type Config struct {
	Families []generators.Entry
	Policy   *grid.Policy
	Length   int // values per artifact
	Workers  int // concurrent emissions

	Emitter  *emitter.Emitter
	Manifest manifest.Store   // optional
	Metrics  *metrics.Metrics // optional
	Progress io.Writer        // progress bar output, nil disables it
}

// Summary reports the outcome of a run.
type Summary struct {
	RunID     string
	Artifacts int
	Failures  int
	Values    int
	Bytes     int64
	Duration  time.Duration
}

func (s Summary) String() string {
	return fmt.Sprintf("run %s: %d artifacts (%s, %s values) in %v, %d failed",
		s.RunID, s.Artifacts, humanize.Bytes(uint64(s.Bytes)),
		humanize.Comma(int64(s.Values)), s.Duration.Round(time.Millisecond), s.Failures)
}

// Runner executes one grid sweep.
type Runner struct {
	cfg Config
	id  string

	mu      sync.Mutex
	summary Summary
	errs    []error
}

// New validates cfg and returns a runner with a fresh run id.
func New(cfg Config) (*Runner, error) {
	if cfg.Emitter == nil {
		return nil, errors.New("runner: emitter is required")
	}
	if cfg.Length < 0 {
		return nil, fmt.Errorf("runner: negative vector length %d", cfg.Length)
	}
	if cfg.Length == 0 {
		cfg.Length = DefaultLength
	}
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.Policy == nil {
		cfg.Policy = &grid.DefaultPolicy
	}
	if len(cfg.Families) == 0 {
		for _, family := range generators.List() {
			cfg.Families = append(cfg.Families, generators.Generators[family])
		}
	}
	if cfg.Progress == nil {
		cfg.Progress = io.Discard
	}

	return &Runner{cfg: cfg, id: uuid.New().String()}, nil
}

// ID returns the run id recorded in the manifest.
func (r *Runner) ID() string {
	return r.id
}

// Run emits every artifact of the grid. A failed artifact does not stop the
// sweep; all failures are returned joined.
func (r *Runner) Run() (Summary, error) {
	start := time.Now()
	total := r.cfg.Policy.Count(r.cfg.Families)

	log.Printf("[RUNNER] Run %s: %d artifacts across %d families, %d values each, %d workers",
		r.id, total, len(r.cfg.Families), r.cfg.Length, r.cfg.Workers)

	run := manifest.Run{
		ID:            r.id,
		FormatVersion: protocol.VectorFormatVersion,
		VectorLength:  r.cfg.Length,
		Workers:       r.cfg.Workers,
		StartedAt:     start,
	}
	if err := r.recordRun(run); err != nil {
		return Summary{RunID: r.id}, err
	}

	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(r.cfg.Progress),
		progressbar.OptionSetDescription("emitting"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	byFamily := make(map[prngvec.Family]generators.Entry, len(r.cfg.Families))
	for _, entry := range r.cfg.Families {
		byFamily[entry.Family] = entry
	}

	sem := semaphore.New(r.cfg.Workers)
	var wg sync.WaitGroup
	for cfg := range r.cfg.Policy.All(r.cfg.Families) {
		// never cancelled, so Acquire cannot fail
		_ = sem.Acquire(context.Background(), 1)
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)
			r.emit(byFamily[cfg.Family], cfg)
			_ = bar.Add(1)
		}()
	}
	wg.Wait()
	_ = bar.Finish()

	r.mu.Lock()
	summary := r.summary
	errs := r.errs
	r.mu.Unlock()

	summary.RunID = r.id
	summary.Duration = time.Since(start)

	run.FinishedAt = time.Now()
	run.Artifacts = summary.Artifacts
	run.Failures = summary.Failures
	if err := r.recordRun(run); err != nil {
		errs = append(errs, err)
	}

	if summary.Failures > 0 {
		log.Printf("[RUNNER] Run %s finished with %d failed artifacts", r.id, summary.Failures)
	} else {
		log.Printf("[RUNNER] %s", summary)
	}

	return summary, errors.Join(errs...)
}

func (r *Runner) emit(entry generators.Entry, cfg prngvec.Config) {
	res, err := r.cfg.Emitter.Emit(entry, cfg, r.cfg.Length)
	if err != nil {
		log.Printf("[RUNNER] %v", err)
		if r.cfg.Metrics != nil {
			r.cfg.Metrics.ObserveFailure(string(cfg.Family))
		}
		r.fail(err)
		return
	}

	if r.cfg.Metrics != nil {
		r.cfg.Metrics.ObserveEmit(string(cfg.Family), res.Values, res.Bytes, res.Duration)
	}
	if r.cfg.Manifest != nil {
		err := r.cfg.Manifest.PutEntry(manifest.Entry{
			Family: string(cfg.Family),
			Name:   cfg.Name(),
			Values: res.Values,
			Width:  entry.Width,
			Bytes:  res.Bytes,
			SHA256: res.SHA256,
			RunID:  r.id,
		})
		if err != nil {
			r.fail(fmt.Errorf("record %s: %w", cfg, err))
			return
		}
	}

	r.mu.Lock()
	r.summary.Artifacts++
	r.summary.Values += res.Values
	r.summary.Bytes += res.Bytes
	r.mu.Unlock()
}

func (r *Runner) fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.summary.Failures++
	r.errs = append(r.errs, err)
}

func (r *Runner) recordRun(run manifest.Run) error {
	if r.cfg.Manifest == nil {
		return nil
	}
	if err := r.cfg.Manifest.PutRun(run); err != nil {
		return fmt.Errorf("record run %s: %w", run.ID, err)
	}
	return nil
}
