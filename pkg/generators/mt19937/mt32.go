// Package mt19937 implements the 32-bit and 64-bit Mersenne Twisters of
// Matsumoto and Nishimura. Both are seed-only in this module: they implement
// prngvec.Generator but neither Splitter nor Jumper.
package mt19937

import "pkg.jsn.cam/prngvec/pkg/prngvec"

// DefaultSeed is the seed of a freshly constructed generator.
const DefaultSeed = 5489

const (
	n32 = 624
	m32 = 397

	matrixA32 uint32 = 0x9908b0df
	upper32   uint32 = 0x80000000
	lower32   uint32 = 0x7fffffff
)

// Random32 is MT19937. It is not safe for concurrent use.
type Random32 struct {
	mt  [n32]uint32
	mti int
}

var _ prngvec.Generator = (*Random32)(nil)

// New returns a 32-bit Mersenne Twister seeded with DefaultSeed.
func New() *Random32 {
	g := &Random32{}
	g.Seed(DefaultSeed)
	return g
}

// Seed uses the low 32 bits of seed (init_genrand).
func (g *Random32) Seed(seed uint64) error {
	g.mt[0] = uint32(seed)
	for i := 1; i < n32; i++ {
		prev := g.mt[i-1]
		g.mt[i] = 1812433253*(prev^(prev>>30)) + uint32(i)
	}
	g.mti = n32
	return nil
}

func (g *Random32) generate() {
	mag := func(y uint32) uint32 {
		if y&1 == 0 {
			return 0
		}
		return matrixA32
	}

	var i int
	for ; i < n32-m32; i++ {
		y := (g.mt[i] & upper32) | (g.mt[i+1] & lower32)
		g.mt[i] = g.mt[i+m32] ^ (y >> 1) ^ mag(y)
	}
	for ; i < n32-1; i++ {
		y := (g.mt[i] & upper32) | (g.mt[i+1] & lower32)
		g.mt[i] = g.mt[i+m32-n32] ^ (y >> 1) ^ mag(y)
	}
	y := (g.mt[n32-1] & upper32) | (g.mt[0] & lower32)
	g.mt[n32-1] = g.mt[m32-1] ^ (y >> 1) ^ mag(y)

	g.mti = 0
}

func (g *Random32) Next() int64 {
	if g.mti >= n32 {
		g.generate()
	}

	y := g.mt[g.mti]
	g.mti++

	y ^= y >> 11
	y ^= (y << 7) & 0x9d2c5680
	y ^= (y << 15) & 0xefc60000
	y ^= y >> 18
	return int64(int32(y))
}
