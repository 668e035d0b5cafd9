// Package emitter turns a parameter tuple into a conformance vector file.
package emitter

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/puzpuzpuz/xsync"

	"pkg.jsn.cam/prngvec/pkg/generators"
	"pkg.jsn.cam/prngvec/pkg/prngvec"
)

// EmitError carries everything needed to reproduce a failed artifact.
type EmitError struct {
	Config prngvec.Config
	Path   string
	Err    error
}

func (e *EmitError) Error() string {
	return fmt.Sprintf("emit %s to %s: %v", e.Config, e.Path, e.Err)
}

func (e *EmitError) Unwrap() error {
	return e.Err
}

// Result describes one written artifact.
type Result struct {
	Config   prngvec.Config
	Path     string
	Values   int
	Bytes    int64
	SHA256   string
	Duration time.Duration
}

// Emitter writes vectors below a root directory. It is safe for concurrent
// use as long as every call gets its own generator, which Emit guarantees.
type Emitter struct {
	root string
	dirs *xsync.MapOf[string, bool] // directories known to exist
}

// New returns an emitter writing below root.
func New(root string) *Emitter {
	return &Emitter{
		root: root,
		dirs: xsync.NewMapOf[bool](),
	}
}

// Root returns the output root.
func (e *Emitter) Root() string {
	return e.root
}

// Generate configures a freshly constructed generator with cfg and draws n
// values from it.
func Generate(entry generators.Entry, cfg prngvec.Config, n int) (*prngvec.Vector, error) {
	if cfg.Family != entry.Family {
		return nil, fmt.Errorf("config for %s applied to %s", cfg.Family, entry.Family)
	}

	g := entry.New()
	if err := cfg.Apply(g); err != nil {
		return nil, err
	}

	values := make([]int64, n)
	for i := range values {
		values[i] = g.Next()
	}

	return &prngvec.Vector{
		Config: cfg,
		Name:   cfg.Name(),
		Width:  entry.Width,
		Values: values,
	}, nil
}

// Encode writes one decimal line per value.
func Encode(w io.Writer, v *prngvec.Vector) error {
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 24)
	for _, x := range v.Values {
		if v.Width == 32 {
			x = int64(int32(x))
		}
		buf = strconv.AppendInt(buf[:0], x, 10)
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Emit generates the vector for cfg and writes it.
func (e *Emitter) Emit(entry generators.Entry, cfg prngvec.Config, n int) (Result, error) {
	start := time.Now()
	path := filepath.Join(e.root, cfg.Path())

	v, err := Generate(entry, cfg, n)
	if err != nil {
		return Result{}, &EmitError{Config: cfg, Path: path, Err: err}
	}

	res, err := e.Write(v)
	if err != nil {
		return Result{}, err
	}
	res.Duration = time.Since(start)
	return res, nil
}

// Write stores v at <root>/<family>/<name>. The content goes to a temporary
// file in the same directory first, so a failed write never leaves a partial
// artifact behind.
func (e *Emitter) Write(v *prngvec.Vector) (Result, error) {
	path := filepath.Join(e.root, v.Config.Path())
	fail := func(err error) (Result, error) {
		return Result{}, &EmitError{Config: v.Config, Path: path, Err: err}
	}

	dir := filepath.Dir(path)
	if err := e.ensureDir(dir); err != nil {
		return fail(err)
	}

	tmp, err := os.CreateTemp(dir, "."+v.Name+".tmp-*")
	if err != nil {
		return fail(err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	hash := sha256.New()
	counter := &countingWriter{w: io.MultiWriter(tmp, hash)}
	if err := Encode(counter, v); err != nil {
		tmp.Close()
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		return fail(err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fail(err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fail(err)
	}

	return Result{
		Config: v.Config,
		Path:   path,
		Values: len(v.Values),
		Bytes:  counter.n,
		SHA256: hex.EncodeToString(hash.Sum(nil)),
	}, nil
}

// ensureDir creates dir once per emitter. MkdirAll tolerates existing
// directories, so concurrent first calls for the same dir are harmless.
func (e *Emitter) ensureDir(dir string) error {
	if _, ok := e.dirs.Load(dir); ok {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	if _, loaded := e.dirs.LoadOrStore(dir, true); !loaded {
		log.Printf("[EMITTER] Writing into %s", dir)
	}
	return nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
