// Package conformance checks the behavioral properties the conformance
// vectors rely on: determinism, seed distinctness, leapfrog splitting and
// closed-form jumps.
package conformance

import (
	"errors"
	"fmt"
	"slices"

	"pkg.jsn.cam/prngvec/pkg/prngvec"
)

// Factory constructs a fresh generator in its default state.
type Factory func() prngvec.Generator

// ErrPropertyViolated is wrapped by every failed check.
var ErrPropertyViolated = errors.New("property violated")

// JumpSamples are the jump distances every jump check covers.
var JumpSamples = []uint64{0, 1, 23, 947}

// Jump2Samples are the jump2 exponents every jump2 check covers. They include
// the grid's exponents and the largest valid one.
var Jump2Samples = []uint32{0, 1, 5, 10, 23, 46, 63}

func take(g prngvec.Generator, n int) []int64 {
	values := make([]int64, n)
	for i := range values {
		values[i] = g.Next()
	}
	return values
}

func seeded(newGen Factory, seed uint64) (prngvec.Generator, error) {
	g := newGen()
	if err := g.Seed(seed); err != nil {
		return nil, fmt.Errorf("seed %d: %w", seed, err)
	}
	return g, nil
}

// CheckDeterminism applies cfg to two fresh instances and compares n values.
func CheckDeterminism(newGen Factory, cfg prngvec.Config, n int) error {
	first, second := newGen(), newGen()
	if err := cfg.Apply(first); err != nil {
		return err
	}
	if err := cfg.Apply(second); err != nil {
		return err
	}

	a, b := take(first, n), take(second, n)
	if i := firstDiff(a, b); i >= 0 {
		return fmt.Errorf("%w: %s is not deterministic at value %d (%d != %d)",
			ErrPropertyViolated, cfg, i, a[i], b[i])
	}
	return nil
}

// CheckSeedDistinct requires pairwise distinct first values for seeds.
func CheckSeedDistinct(newGen Factory, seeds []uint64) error {
	seen := make(map[int64]uint64, len(seeds))
	for _, seed := range seeds {
		g, err := seeded(newGen, seed)
		if err != nil {
			return err
		}
		v := g.Next()
		if other, dup := seen[v]; dup && other != seed {
			return fmt.Errorf("%w: seeds %d and %d share first value %d",
				ErrPropertyViolated, other, seed, v)
		}
		seen[v] = seed
	}
	return nil
}

// CheckJump verifies that Jump(k) followed by Next equals the (k+1)-th value
// of the unjumped generator.
func CheckJump(newGen Factory, seed uint64, distances []uint64) error {
	for _, k := range distances {
		g, err := seeded(newGen, seed)
		if err != nil {
			return err
		}
		j, ok := g.(prngvec.Jumper)
		if !ok {
			return nil
		}
		j.Jump(k)
		got := j.Next()

		ref, err := seeded(newGen, seed)
		if err != nil {
			return err
		}
		var want int64
		for i := uint64(0); i <= k; i++ {
			want = ref.Next()
		}

		if got != want {
			return fmt.Errorf("%w: seed %d: jump(%d) gives %d, stepping gives %d",
				ErrPropertyViolated, seed, k, got, want)
		}
	}
	return nil
}

// CheckJump2 verifies Jump2(s) == Jump(1<<s) over n values for every s.
func CheckJump2(newGen Factory, seed uint64, exponents []uint32, n int) error {
	for _, s := range exponents {
		g, err := seeded(newGen, seed)
		if err != nil {
			return err
		}
		j, ok := g.(prngvec.Jumper)
		if !ok {
			return nil
		}
		if err := j.Jump2(s); err != nil {
			return err
		}

		ref, err := seeded(newGen, seed)
		if err != nil {
			return err
		}
		ref.(prngvec.Jumper).Jump(uint64(1) << s)

		a, b := take(j, n), take(ref, n)
		if i := firstDiff(a, b); i >= 0 {
			return fmt.Errorf("%w: seed %d: jump2(%d) differs from jump(2^%d) at value %d",
				ErrPropertyViolated, seed, s, s, i)
		}
	}
	return nil
}

// CheckSplit verifies that the parts sub-streams of seed are pairwise
// distinct and that interleaving them round-robin reconstructs the unsplit
// sequence. Each sub-stream is compared over n values.
func CheckSplit(newGen Factory, seed uint64, parts uint32, n int) error {
	base, err := seeded(newGen, seed)
	if err != nil {
		return err
	}
	if _, ok := base.(prngvec.Splitter); !ok {
		return nil
	}
	whole := take(base, n*int(parts))

	subs := make([][]int64, parts)
	for index := uint32(0); index < parts; index++ {
		g, err := seeded(newGen, seed)
		if err != nil {
			return err
		}
		if err := g.(prngvec.Splitter).Split(parts, index); err != nil {
			return err
		}
		subs[index] = take(g, n)

		for i, v := range subs[index] {
			if want := whole[i*int(parts)+int(index)]; v != want {
				return fmt.Errorf("%w: seed %d: split(%d, %d) value %d is %d, interleaving expects %d",
					ErrPropertyViolated, seed, parts, index, i, v, want)
			}
		}
		for other := uint32(0); other < index; other++ {
			if slices.Equal(subs[other], subs[index]) {
				return fmt.Errorf("%w: seed %d: split(%d, %d) equals split(%d, %d)",
					ErrPropertyViolated, seed, parts, index, parts, other)
			}
		}
	}
	return nil
}

// Report is the outcome of CheckAll for one family.
type Report struct {
	Family prngvec.Family
	Checks int
	Errors []error
}

// OK reports whether every check passed.
func (r Report) OK() bool {
	return len(r.Errors) == 0
}

// CheckAll runs every property check for one family with the given seeds.
func CheckAll(family prngvec.Family, newGen Factory, seeds []uint64) Report {
	report := Report{Family: family}
	run := func(err error) {
		report.Checks++
		if err != nil {
			report.Errors = append(report.Errors, err)
		}
	}

	run(CheckSeedDistinct(newGen, seeds))
	for _, seed := range seeds {
		run(CheckDeterminism(newGen, prngvec.Config{
			Family: family, Seed: seed, SplitParts: 1,
		}, 150))
		run(CheckJump(newGen, seed, JumpSamples))
		run(CheckJump2(newGen, seed, Jump2Samples, 16))
		for _, parts := range []uint32{1, 5, 8} {
			run(CheckSplit(newGen, seed, parts, 32))
		}
	}
	return report
}

func firstDiff(a, b []int64) int {
	for i := range min(len(a), len(b)) {
		if a[i] != b[i] {
			return i
		}
	}
	if len(a) != len(b) {
		return min(len(a), len(b))
	}
	return -1
}
