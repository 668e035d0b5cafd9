package lcg

import "math"

// affine is the map x -> a*x + b mod 2^64.
type affine struct {
	a, b uint64
}

var identity = affine{a: 1, b: 0}

func (f affine) apply(x uint64) uint64 {
	return f.a*x + f.b
}

// then returns the map that applies f first and g second.
func (f affine) then(g affine) affine {
	return affine{a: g.a * f.a, b: g.a*f.b + g.b}
}

// pow returns f applied n times, by square-and-multiply.
func (f affine) pow(n uint64) affine {
	res := identity
	base := f
	for n > 0 {
		if n&1 == 1 {
			res = res.then(base)
		}
		base = base.then(base)
		n >>= 1
	}
	return res
}

// pow2 returns f applied 2^s times.
func (f affine) pow2(s uint32) affine {
	res := f
	for i := uint32(0); i < s; i++ {
		res = res.then(res)
	}
	return res
}

// inverse returns f applied 2^64-1 times, which steps one position back for
// every odd multiplier.
func (f affine) inverse() affine {
	return f.pow(math.MaxUint64)
}
