package mt19937

import "pkg.jsn.cam/prngvec/pkg/prngvec"

const (
	n64 = 312
	m64 = 156

	matrixA64 uint64 = 0xb5026f5aa96619e9
	upper64   uint64 = 0xffffffff80000000 // 33 most sig. bits
	lower64   uint64 = 0x000000007fffffff // 31 least sig. bits
)

// Random64 is MT19937-64. It is not safe for concurrent use.
type Random64 struct {
	mt  [n64]uint64
	mti int
}

var _ prngvec.Generator = (*Random64)(nil)

// New64 returns a 64-bit Mersenne Twister seeded with DefaultSeed.
func New64() *Random64 {
	g := &Random64{}
	g.Seed(DefaultSeed)
	return g
}

// Seed is init_genrand64.
func (g *Random64) Seed(seed uint64) error {
	g.mt[0] = seed
	for i := 1; i < n64; i++ {
		prev := g.mt[i-1]
		g.mt[i] = 6364136223846793005*(prev^(prev>>62)) + uint64(i)
	}
	g.mti = n64
	return nil
}

func (g *Random64) generate() {
	mag := func(x uint64) uint64 {
		if x&1 == 0 {
			return 0
		}
		return matrixA64
	}

	var i int
	for ; i < n64-m64; i++ {
		x := (g.mt[i] & upper64) | (g.mt[i+1] & lower64)
		g.mt[i] = g.mt[i+m64] ^ (x >> 1) ^ mag(x)
	}
	for ; i < n64-1; i++ {
		x := (g.mt[i] & upper64) | (g.mt[i+1] & lower64)
		g.mt[i] = g.mt[i+m64-n64] ^ (x >> 1) ^ mag(x)
	}
	x := (g.mt[n64-1] & upper64) | (g.mt[0] & lower64)
	g.mt[n64-1] = g.mt[m64-1] ^ (x >> 1) ^ mag(x)

	g.mti = 0
}

func (g *Random64) Next() int64 {
	if g.mti >= n64 {
		g.generate()
	}

	x := g.mt[g.mti]
	g.mti++

	x ^= (x >> 29) & 0x5555555555555555
	x ^= (x << 17) & 0x71d67fffeda60000
	x ^= (x << 37) & 0xfff7eee000000000
	x ^= x >> 43
	return int64(x)
}
