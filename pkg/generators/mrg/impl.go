// Package mrg implements multiple recursive generators
// r[n] = a1*r[n-1] + ... + ak*r[n-k] mod 2^31-1, following TRNG's mrg2 and
// mrg3 engines.
package mrg

import (
	"fmt"
	"slices"

	"pkg.jsn.cam/prngvec/pkg/prngvec"
)

// Modulus of all recursions in this package.
const Modulus = 2147483647

// Param holds the recursion coefficients a1..ak.
type Param []uint64

var (
	// MRG2LEcuyer1 is the default order-2 parameter set.
	MRG2LEcuyer1 = Param{1498809829, 1160990996}
	// MRG2LEcuyer2 is an alternative order-2 set with small coefficients.
	MRG2LEcuyer2 = Param{46325, 1084587}

	// MRG3LEcuyer1 is the default order-3 parameter set.
	MRG3LEcuyer1 = Param{2021422057, 1826992351, 1977753457}
	// MRG3LEcuyer2 and MRG3LEcuyer3 are alternative order-3 sets with a2 = 0.
	MRG3LEcuyer2 = Param{1476728729, 0, 1155643113}
	MRG3LEcuyer3 = Param{65338, 0, 64636}
)

// Random is an order-k MRG. It is not safe for concurrent use.
type Random struct {
	a Param    // a[0] multiplies the newest value
	r []uint64 // r[0] is the newest value
}

var (
	_ prngvec.Splitter = (*Random)(nil)
	_ prngvec.Jumper   = (*Random)(nil)
)

// New2 returns an order-2 generator in its default state.
func New2() *Random {
	return NewWithParam(MRG2LEcuyer1)
}

// New3 returns an order-3 generator in its default state.
func New3() *Random {
	return NewWithParam(MRG3LEcuyer1)
}

// NewWithParam returns a generator of order len(p) with state {0, 1, ..., 1}.
// The last coefficient must be non-zero.
func NewWithParam(p Param) *Random {
	g := &Random{a: slices.Clone(p), r: make([]uint64, len(p))}
	g.reset(0)
	return g
}

// Param returns a copy of the current coefficients. They change after a Split.
func (g *Random) Param() Param {
	return slices.Clone(g.a)
}

func (g *Random) reset(r0 uint64) {
	g.r[0] = r0
	for i := 1; i < len(g.r); i++ {
		g.r[i] = 1
	}
}

func (g *Random) Seed(seed uint64) error {
	t := int64(seed) % Modulus
	if t < 0 {
		t += Modulus
	}
	g.reset(uint64(t))
	return nil
}

func (g *Random) step() {
	var t uint64
	for i, a := range g.a {
		t = addMod(t, mulMod(a, g.r[i]))
	}
	copy(g.r[1:], g.r[:len(g.r)-1])
	g.r[0] = t
}

// backward undoes one step.
func (g *Random) backward() {
	k := len(g.r)
	prev := make([]uint64, k)
	copy(prev, g.r[1:])

	acc := g.r[0]
	for i := 0; i < k-1; i++ {
		acc = subMod(acc, mulMod(g.a[i], prev[i]))
	}
	prev[k-1] = mulMod(acc, invMod(g.a[k-1]))
	g.r = prev
}

func (g *Random) Next() int64 {
	g.step()
	return int64(g.r[0])
}

func (g *Random) Split(parts, index uint32) error {
	if parts < 1 {
		return fmt.Errorf("%w: parts must be >= 1 but was %d", prngvec.ErrInvalidSplit, parts)
	}
	if index >= parts {
		return fmt.Errorf("%w: index must be < %d but was %d", prngvec.ErrInvalidSplit, parts, index)
	}
	if parts == 1 {
		return nil
	}

	g.Jump(uint64(index) + 1)

	// Sample the sub-stream k times; the samples seed the new recursion.
	k := len(g.a)
	leap := companion(g.a).pow(uint64(parts))
	q := make([]uint64, k)
	q[0] = g.r[0]
	for j := 1; j < k; j++ {
		g.r = leap.apply(g.r)
		q[j] = g.r[0]
	}

	g.a = leap.recurrence()
	for i := range g.r {
		g.r[i] = q[k-1-i]
	}
	for i := 0; i < k; i++ {
		g.backward()
	}
	return nil
}

func (g *Random) Jump(distance uint64) {
	if distance == 0 {
		return
	}
	g.r = companion(g.a).pow(distance).apply(g.r)
}

func (g *Random) Jump2(log2 uint32) error {
	if log2 >= prngvec.MaxJumpLog2 {
		return fmt.Errorf("%w: jump2 exponent must be < %d but was %d",
			prngvec.ErrInvalidJump, prngvec.MaxJumpLog2, log2)
	}
	g.r = companion(g.a).pow2(log2).apply(g.r)
	return nil
}
