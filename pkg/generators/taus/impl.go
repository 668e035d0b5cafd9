// Package taus implements L'Ecuyer's maximally equidistributed combined
// Tausworthe generator (taus88), seeded the way GSL's "taus" seeds it.
package taus

import "pkg.jsn.cam/prngvec/pkg/prngvec"

const mask = 0xffffffff

// Random is taus88. It is not safe for concurrent use.
type Random struct {
	s1, s2, s3 uint64
}

var _ prngvec.Generator = (*Random)(nil)

// New returns a generator seeded with 0.
func New() *Random {
	g := &Random{}
	g.Seed(0)
	return g
}

func lcg(n uint64) uint64 {
	return (69069 * n) & mask
}

// Seed expands seed into the three components. Each component has a lower
// bound (2, 8, 16) below which it would degenerate; those are bumped.
func (g *Random) Seed(seed uint64) error {
	if seed == 0 {
		seed = 1
	}

	g.s1 = lcg(seed)
	if g.s1 < 2 {
		g.s1 += 2
	}
	g.s2 = lcg(g.s1)
	if g.s2 < 8 {
		g.s2 += 8
	}
	g.s3 = lcg(g.s2)
	if g.s3 < 16 {
		g.s3 += 16
	}

	for i := 0; i < 6; i++ {
		g.Next()
	}
	return nil
}

func tausworthe(s uint64, a, b uint, c uint64, d uint) uint64 {
	return (((s & c) << d) & mask) ^ ((((s << a) & mask) ^ s) >> b)
}

func (g *Random) Next() int64 {
	g.s1 = tausworthe(g.s1, 13, 19, 4294967294, 12)
	g.s2 = tausworthe(g.s2, 2, 25, 4294967288, 4)
	g.s3 = tausworthe(g.s3, 3, 11, 4294967280, 17)
	return int64(int32(uint32(g.s1 ^ g.s2 ^ g.s3)))
}
