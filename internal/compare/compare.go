// Package compare checks vectors produced by an implementation under test
// against a reference set and attributes every difference to the parameter
// tuple that produced it.
package compare

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"

	"pkg.jsn.cam/prngvec/internal/manifest"
	"pkg.jsn.cam/prngvec/pkg/prngvec"
	"pkg.jsn.cam/prngvec/pkg/prngvec/protocol"
)

type Kind int

const (
	Differs Kind = iota // both sides have the artifact, contents differ
	Missing             // reference artifact absent from the test side
	Extra               // test artifact absent from the reference side
)

func (k Kind) String() string {
	switch k {
	case Differs:
		return "differs"
	case Missing:
		return "missing"
	case Extra:
		return "extra"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Mismatch is one artifact that does not match its reference.
type Mismatch struct {
	Path   string // relative, slash separated
	Config prngvec.Config
	Parsed bool // Config was recovered from Path
	Kind   Kind

	// For tree comparisons of differing artifacts: the first differing line
	// (1-based) and its value on each side. An empty value means that side
	// ended early.
	Line int
	Ref  string
	Test string
}

func (m Mismatch) String() string {
	target := m.Path
	if m.Parsed {
		target = m.Config.String()
	}
	switch {
	case m.Kind != Differs:
		return fmt.Sprintf("%s: %s", target, m.Kind)
	case m.Line > 0:
		return fmt.Sprintf("%s: line %d: reference %q, got %q", target, m.Line, m.Ref, m.Test)
	default:
		return fmt.Sprintf("%s: digest %s, got %s", target, m.Ref, m.Test)
	}
}

// Report is the outcome of one comparison.
type Report struct {
	Compared   int // artifacts present on both sides
	RefBytes   int64
	TestBytes  int64
	Stale      int // manifest entries from earlier runs, not compared
	Mismatches []Mismatch
}

func (r Report) OK() bool {
	return len(r.Mismatches) == 0
}

func (r Report) String() string {
	s := fmt.Sprintf("%d artifacts compared (reference %s, test %s), %d mismatches",
		r.Compared, humanize.Bytes(uint64(r.RefBytes)), humanize.Bytes(uint64(r.TestBytes)),
		len(r.Mismatches))
	if r.Stale > 0 {
		s += fmt.Sprintf(", %d stale entries ignored", r.Stale)
	}
	return s
}

func newMismatch(rel string, kind Kind) Mismatch {
	m := Mismatch{Path: rel, Kind: kind}
	if cfg, err := prngvec.ParsePath(rel); err == nil {
		m.Config = cfg
		m.Parsed = true
	}
	return m
}

// listTree returns the relative slash-separated paths of all regular files
// below root, skipping dot files such as leftover temporaries.
func listTree(root string) (map[string]int64, error) {
	files := make(map[string]int64)
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p != root && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		files[filepath.ToSlash(rel)] = info.Size()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return files, nil
}

// Trees compares every artifact below refRoot with its counterpart below
// testRoot, byte for byte.
func Trees(refRoot, testRoot string) (Report, error) {
	refFiles, err := listTree(refRoot)
	if err != nil {
		return Report{}, err
	}
	testFiles, err := listTree(testRoot)
	if err != nil {
		return Report{}, err
	}

	var report Report
	for _, rel := range slices.Sorted(maps.Keys(refFiles)) {
		report.RefBytes += refFiles[rel]
		size, ok := testFiles[rel]
		if !ok {
			report.Mismatches = append(report.Mismatches, newMismatch(rel, Missing))
			continue
		}
		report.TestBytes += size
		report.Compared++

		m, same, err := compareFiles(rel, filepath.Join(refRoot, rel), filepath.Join(testRoot, rel))
		if err != nil {
			return report, err
		}
		if !same {
			report.Mismatches = append(report.Mismatches, m)
		}
	}
	for _, rel := range slices.Sorted(maps.Keys(testFiles)) {
		if _, ok := refFiles[rel]; !ok {
			report.TestBytes += testFiles[rel]
			report.Mismatches = append(report.Mismatches, newMismatch(rel, Extra))
		}
	}

	log.Printf("[COMPARE] %s vs %s: %s", refRoot, testRoot, report)
	return report, nil
}

func compareFiles(rel, refPath, testPath string) (Mismatch, bool, error) {
	ref, err := os.ReadFile(refPath)
	if err != nil {
		return Mismatch{}, false, err
	}
	test, err := os.ReadFile(testPath)
	if err != nil {
		return Mismatch{}, false, err
	}
	if bytes.Equal(ref, test) {
		return Mismatch{}, true, nil
	}

	m := newMismatch(rel, Differs)
	refLines := bufio.NewScanner(bytes.NewReader(ref))
	testLines := bufio.NewScanner(bytes.NewReader(test))
	for line := 1; ; line++ {
		okRef, okTest := refLines.Scan(), testLines.Scan()
		if !okRef && !okTest {
			// same lines, different bytes: trailing newline or line endings
			m.Line = line - 1
			m.Ref, m.Test = "<eof>", "<eof>"
			break
		}
		var r, t string
		if okRef {
			r = refLines.Text()
		}
		if okTest {
			t = testLines.Text()
		}
		if okRef != okTest || r != t {
			m.Line, m.Ref, m.Test = line, r, t
			break
		}
	}
	return m, false, nil
}

// ErrIncompleteRun is returned by Manifests when the latest run of either
// side did not finish or failed to write some of its artifacts.
var ErrIncompleteRun = errors.New("latest run is incomplete")

func latestCompleteRun(side string, s manifest.Store) (manifest.Run, error) {
	run, err := manifest.LatestRun(s)
	if err != nil {
		return manifest.Run{}, fmt.Errorf("%s manifest: %w", side, err)
	}
	if run.FinishedAt.IsZero() {
		return run, fmt.Errorf("%w: %s run %s never finished", ErrIncompleteRun, side, run.ID)
	}
	if run.Failures > 0 {
		return run, fmt.Errorf("%w: %s run %s failed %d artifacts", ErrIncompleteRun, side, run.ID, run.Failures)
	}
	return run, nil
}

// Manifests compares two manifests by artifact digest. Only entries written
// by the latest run of each side take part; entries left behind by earlier
// runs are counted as stale. Both latest runs must have completed without
// failures and use compatible vector format versions.
func Manifests(ref, test manifest.Store) (Report, error) {
	refRun, err := latestCompleteRun("reference", ref)
	if err != nil {
		return Report{}, err
	}
	testRun, err := latestCompleteRun("test", test)
	if err != nil {
		return Report{}, err
	}
	compatible, err := protocol.IsCompatibleVersion(refRun.FormatVersion, testRun.FormatVersion)
	if err != nil {
		return Report{}, fmt.Errorf("%w: %v", prngvec.ErrIncompatibleVersion, err)
	}
	if !compatible {
		return Report{}, fmt.Errorf("%w: %s", prngvec.ErrIncompatibleVersion,
			protocol.GetCompatibilityError(refRun.FormatVersion, testRun.FormatVersion))
	}

	var report Report
	seen := make(map[string]bool)
	err = ref.ForEach(func(r manifest.Entry) error {
		if r.RunID != refRun.ID {
			report.Stale++
			return nil
		}
		key := r.Key()
		report.RefBytes += r.Bytes

		t, err := test.GetEntry(key)
		if err != nil && !errors.Is(err, manifest.ErrNotFound) {
			return err
		}
		if err != nil || t.RunID != testRun.ID {
			report.Mismatches = append(report.Mismatches, newMismatch(key, Missing))
			return nil
		}
		seen[key] = true
		report.TestBytes += t.Bytes
		report.Compared++

		if r.SHA256 != t.SHA256 {
			m := newMismatch(key, Differs)
			m.Ref, m.Test = r.SHA256, t.SHA256
			report.Mismatches = append(report.Mismatches, m)
		}
		return nil
	})
	if err != nil {
		return report, err
	}

	err = test.ForEach(func(t manifest.Entry) error {
		if t.RunID != testRun.ID {
			report.Stale++
			return nil
		}
		if !seen[t.Key()] {
			report.TestBytes += t.Bytes
			report.Mismatches = append(report.Mismatches, newMismatch(t.Key(), Extra))
		}
		return nil
	})
	if err != nil {
		return report, err
	}

	log.Printf("[COMPARE] manifest run %s vs %s: %s", refRun.ID, testRun.ID, report)
	return report, nil
}
