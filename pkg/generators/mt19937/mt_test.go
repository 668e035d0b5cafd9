package mt19937

import (
	"testing"

	"pkg.jsn.cam/prngvec/internal/conformance"
	"pkg.jsn.cam/prngvec/pkg/prngvec"
)

func TestDefaultSequence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		gen           prngvec.Generator
		first         int64
		tenThousandth int64
	}{
		{"mt19937", New(), -795755684, -171307301}, // 3499211612, 4123659995 unsigned
		{"mt19937_64", New64(), -3932459287431434586, -8465198341435762574},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.gen.Next(); got != tt.first {
				t.Errorf("first value = %d, want %d", got, tt.first)
			}
			var got int64
			for i := 1; i < 10000; i++ {
				got = tt.gen.Next()
			}
			if got != tt.tenThousandth {
				t.Errorf("10000th value = %d, want %d", got, tt.tenThousandth)
			}
		})
	}
}

func TestSeedMatchesDefault(t *testing.T) {
	t.Parallel()

	a, b := New(), &Random32{}
	b.Seed(DefaultSeed)
	for i := 0; i < 700; i++ {
		if a.Next() != b.Next() {
			t.Fatalf("value %d differs", i)
		}
	}
}

func TestSeedUsesLow32Bits(t *testing.T) {
	t.Parallel()

	a, b := New(), New()
	a.Seed(1<<32 | 17)
	b.Seed(17)
	if a.Next() != b.Next() {
		t.Error("high seed bits changed the 32-bit sequence")
	}
}

func TestSeedOnlyCapabilities(t *testing.T) {
	t.Parallel()

	for _, g := range []prngvec.Generator{New(), New64()} {
		if _, ok := g.(prngvec.Splitter); ok {
			t.Errorf("%T implements Splitter", g)
		}
		if _, ok := g.(prngvec.Jumper); ok {
			t.Errorf("%T implements Jumper", g)
		}
	}
}

func TestSeedDistinct(t *testing.T) {
	t.Parallel()

	seeds := []uint64{0, 742367882, 74236788222246}
	if err := conformance.CheckSeedDistinct(func() prngvec.Generator { return New() }, seeds); err != nil {
		t.Error(err)
	}
	if err := conformance.CheckSeedDistinct(func() prngvec.Generator { return New64() }, seeds); err != nil {
		t.Error(err)
	}
}
