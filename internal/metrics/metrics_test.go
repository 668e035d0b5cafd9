package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserve(t *testing.T) {
	t.Parallel()

	m := New()
	m.ObserveEmit("mrg2", 150, 1600, time.Millisecond)
	m.ObserveEmit("mrg2", 150, 1500, time.Millisecond)
	m.ObserveFailure("mt19937")

	if got := testutil.ToFloat64(m.ArtifactsEmitted.WithLabelValues("mrg2")); got != 2 {
		t.Errorf("artifacts emitted = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.ValuesEmitted.WithLabelValues("mrg2")); got != 300 {
		t.Errorf("values emitted = %v, want 300", got)
	}
	if got := testutil.ToFloat64(m.BytesWritten.WithLabelValues("mrg2")); got != 3100 {
		t.Errorf("bytes written = %v, want 3100", got)
	}
	if got := testutil.ToFloat64(m.ArtifactFailures.WithLabelValues("mt19937")); got != 1 {
		t.Errorf("failures = %v, want 1", got)
	}
}

func TestWriteTextfile(t *testing.T) {
	t.Parallel()

	m := New()
	m.ObserveEmit("lcg64shift", 150, 3000, time.Millisecond)

	path := filepath.Join(t.TempDir(), "prngvec.prom")
	if err := m.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `prngvec_artifacts_emitted_total{family="lcg64shift"} 1`) {
		t.Errorf("textfile missing artifact counter:\n%s", data)
	}
}
