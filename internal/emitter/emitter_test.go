package emitter

import (
	"bufio"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"pkg.jsn.cam/prngvec/pkg/generators"
	"pkg.jsn.cam/prngvec/pkg/prngvec"
)

func mustEntry(t *testing.T, family prngvec.Family) generators.Entry {
	t.Helper()
	entry, err := generators.Get(family)
	if err != nil {
		t.Fatal(err)
	}
	return entry
}

func readLines(t *testing.T, path string) []int64 {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()

	var values []int64
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		v, err := strconv.ParseInt(scanner.Text(), 10, 64)
		if err != nil {
			t.Fatalf("line %d of %s: %v", len(values)+1, path, err)
		}
		values = append(values, v)
	}
	if err := scanner.Err(); err != nil {
		t.Fatal(err)
	}
	return values
}

func TestEmitReferenceScenario(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	e := New(root)
	cfg := prngvec.Config{Family: prngvec.LCG64Shift, SplitParts: 5}

	res, err := e.Emit(mustEntry(t, prngvec.LCG64Shift), cfg, 150)
	if err != nil {
		t.Fatalf("Emit failed: %v", err)
	}

	wantPath := filepath.Join(root, "lcg64shift", "0-5-0-0-0")
	if res.Path != wantPath {
		t.Errorf("path = %s, want %s", res.Path, wantPath)
	}

	values := readLines(t, wantPath)
	if len(values) != 150 {
		t.Fatalf("artifact has %d lines, want 150", len(values))
	}
	if res.Values != 150 {
		t.Errorf("result values = %d, want 150", res.Values)
	}

	info, err := os.Stat(wantPath)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() != res.Bytes {
		t.Errorf("result bytes = %d, file has %d", res.Bytes, info.Size())
	}
}

func TestEmitDeterministic(t *testing.T) {
	t.Parallel()

	cfg := prngvec.Config{
		Family: prngvec.MRG3, Seed: 742367882, SplitParts: 8, SplitIndex: 4,
		JumpDistance: 948392782247324, JumpLog2: 46,
	}
	entry := mustEntry(t, prngvec.MRG3)

	a, err := New(t.TempDir()).Emit(entry, cfg, 150)
	if err != nil {
		t.Fatal(err)
	}
	b, err := New(t.TempDir()).Emit(entry, cfg, 150)
	if err != nil {
		t.Fatal(err)
	}

	if a.SHA256 != b.SHA256 {
		t.Errorf("digests differ: %s vs %s", a.SHA256, b.SHA256)
	}
	da, _ := os.ReadFile(a.Path)
	db, _ := os.ReadFile(b.Path)
	if !bytes.Equal(da, db) {
		t.Error("two emissions of the same config differ")
	}
}

func TestEmitMatchesGenerator(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	entry := mustEntry(t, prngvec.MT19937)
	cfg := prngvec.Config{Family: prngvec.MT19937, Seed: 742367882, SplitParts: 1}

	res, err := New(root).Emit(entry, cfg, 64)
	if err != nil {
		t.Fatal(err)
	}

	g := entry.New()
	g.Seed(742367882)
	for i, v := range readLines(t, res.Path) {
		if want := g.Next(); v != want {
			t.Fatalf("line %d = %d, want %d", i+1, v, want)
		}
	}
}

func TestIdempotentDirectoryCreation(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	entry := mustEntry(t, prngvec.MRG2)

	// the directory already exists before the first emitter sees it
	if err := os.MkdirAll(filepath.Join(root, "mrg2"), 0755); err != nil {
		t.Fatal(err)
	}

	for _, e := range []*Emitter{New(root), New(root)} {
		for _, index := range []uint32{0, 2} {
			cfg := prngvec.Config{Family: prngvec.MRG2, SplitParts: 8, SplitIndex: index}
			if _, err := e.Emit(entry, cfg, 10); err != nil {
				t.Fatalf("Emit(%s) failed: %v", cfg, err)
			}
		}
	}
}

func TestConcurrentEmit(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	e := New(root)
	entry := mustEntry(t, prngvec.LCG64)

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := uint32(0); i < 16; i++ {
		wg.Add(1)
		go func(index uint32) {
			defer wg.Done()
			cfg := prngvec.Config{Family: prngvec.LCG64, SplitParts: 16, SplitIndex: index}
			if _, err := e.Emit(entry, cfg, 50); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}

	entries, err := os.ReadDir(filepath.Join(root, "lcg64"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 16 {
		t.Errorf("found %d artifacts, want 16", len(entries))
	}
}

func TestWriteFailureIsSurfaced(t *testing.T) {
	t.Parallel()

	// a regular file where the output root should be
	root := filepath.Join(t.TempDir(), "blocked")
	if err := os.WriteFile(root, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := prngvec.Config{Family: prngvec.Taus88, Seed: 1, SplitParts: 1}
	_, err := New(root).Emit(mustEntry(t, prngvec.Taus88), cfg, 10)

	var emitErr *EmitError
	if !errors.As(err, &emitErr) {
		t.Fatalf("Emit error = %v, want *EmitError", err)
	}
	if emitErr.Config != cfg {
		t.Errorf("error config = %v, want %v", emitErr.Config, cfg)
	}
	if emitErr.Path != filepath.Join(root, "taus88", "1-1-0-0-0") {
		t.Errorf("error path = %s", emitErr.Path)
	}
}

func TestInvalidConfigIsSurfaced(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	cfg := prngvec.Config{Family: prngvec.MRG2, SplitParts: 5, SplitIndex: 5}
	_, err := New(root).Emit(mustEntry(t, prngvec.MRG2), cfg, 10)

	if !errors.Is(err, prngvec.ErrInvalidSplit) {
		t.Fatalf("Emit error = %v, want ErrInvalidSplit", err)
	}
	if _, statErr := os.Stat(filepath.Join(root, "mrg2")); !os.IsNotExist(statErr) {
		t.Error("invalid config still created output")
	}
}

func TestNoTemporaryFilesLeft(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	cfg := prngvec.Config{Family: prngvec.MT19937_64, SplitParts: 1}
	if _, err := New(root).Emit(mustEntry(t, prngvec.MT19937_64), cfg, 20); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(filepath.Join(root, "mt19937_64"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "0-1-0-0-0" {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("directory holds %v, want only the artifact", names)
	}
}

func TestEncodeWidth(t *testing.T) {
	t.Parallel()

	v := &prngvec.Vector{Width: 32, Values: []int64{-1, 2147483647, -2147483648, 0}}
	var buf bytes.Buffer
	if err := Encode(&buf, v); err != nil {
		t.Fatal(err)
	}
	want := "-1\n2147483647\n-2147483648\n0\n"
	if buf.String() != want {
		t.Errorf("Encode = %q, want %q", buf.String(), want)
	}
}
