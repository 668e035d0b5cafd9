package prngvec

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cfg  Config
		want string
	}{
		{Config{Family: LCG64Shift, SplitParts: 5}, "0-5-0-0-0"},
		{Config{Family: MRG2, Seed: 742367882, SplitParts: 8, SplitIndex: 2, JumpLog2: 23}, "742367882-8-2-0-23"},
		{Config{Family: LCG64, Seed: 74236788222246, SplitParts: 8, SplitIndex: 6, JumpDistance: 948392782247324, JumpLog2: 46},
			"74236788222246-8-6-948392782247324-46"},
		{Config{Family: MT19937_64, Seed: 1<<64 - 1, SplitParts: 1}, "18446744073709551615-1-0-0-0"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			if got := tt.cfg.Name(); got != tt.want {
				t.Errorf("Name() = %s, want %s", got, tt.want)
			}
			wantPath := filepath.Join(string(tt.cfg.Family), tt.want)
			if got := tt.cfg.Path(); got != wantPath {
				t.Errorf("Path() = %s, want %s", got, wantPath)
			}

			parsed, err := ParsePath(tt.cfg.Path())
			if err != nil {
				t.Fatalf("ParsePath(%s) failed: %v", tt.cfg.Path(), err)
			}
			if parsed != tt.cfg {
				t.Errorf("ParsePath(%s) = %+v, want %+v", tt.cfg.Path(), parsed, tt.cfg)
			}
		})
	}
}

func TestParseInvalid(t *testing.T) {
	t.Parallel()

	for _, rel := range []string{
		"lcg64shift/0-5-0-0",
		"lcg64shift/0-5-0-0-0-0",
		"lcg64shift/a-5-0-0-0",
		"lcg64shift/0--5-0-0-0",
		"lcg64shift/0-5-0-0-4294967296",
		"0-5-0-0-0",
		"a/b/0-5-0-0-0",
	} {
		if _, err := ParsePath(rel); !errors.Is(err, ErrInvalidName) {
			t.Errorf("ParsePath(%q) error = %v, want ErrInvalidName", rel, err)
		}
	}
}
