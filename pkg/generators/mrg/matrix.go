package mrg

// Arithmetic modulo the prime Modulus. All operands are reduced, so every
// product fits into 62 bits.

func addMod(x, y uint64) uint64 {
	return (x + y) % Modulus
}

func subMod(x, y uint64) uint64 {
	return (x + Modulus - y) % Modulus
}

func mulMod(x, y uint64) uint64 {
	return x * y % Modulus
}

func powMod(x, n uint64) uint64 {
	res := uint64(1)
	x %= Modulus
	for n > 0 {
		if n&1 == 1 {
			res = mulMod(res, x)
		}
		x = mulMod(x, x)
		n >>= 1
	}
	return res
}

// invMod returns the multiplicative inverse of a non-zero x (Fermat).
func invMod(x uint64) uint64 {
	return powMod(x, Modulus-2)
}

// matrix is a square matrix over Z/Modulus, row major.
type matrix [][]uint64

func newMatrix(k int) matrix {
	m := make(matrix, k)
	for i := range m {
		m[i] = make([]uint64, k)
	}
	return m
}

func identityMatrix(k int) matrix {
	m := newMatrix(k)
	for i := range m {
		m[i][i] = 1
	}
	return m
}

// companion returns the one-step transition of the recursion with
// coefficients a, acting on a state vector that holds the newest value first.
func companion(a []uint64) matrix {
	k := len(a)
	m := newMatrix(k)
	copy(m[0], a)
	for i := 1; i < k; i++ {
		m[i][i-1] = 1
	}
	return m
}

func (m matrix) mul(o matrix) matrix {
	k := len(m)
	res := newMatrix(k)
	for i := 0; i < k; i++ {
		for j := 0; j < k; j++ {
			var acc uint64
			for l := 0; l < k; l++ {
				acc = addMod(acc, mulMod(m[i][l], o[l][j]))
			}
			res[i][j] = acc
		}
	}
	return res
}

func (m matrix) apply(v []uint64) []uint64 {
	res := make([]uint64, len(v))
	for i := range m {
		var acc uint64
		for j, x := range v {
			acc = addMod(acc, mulMod(m[i][j], x))
		}
		res[i] = acc
	}
	return res
}

func (m matrix) pow(n uint64) matrix {
	res := identityMatrix(len(m))
	base := m
	for n > 0 {
		if n&1 == 1 {
			res = res.mul(base)
		}
		base = base.mul(base)
		n >>= 1
	}
	return res
}

func (m matrix) pow2(s uint32) matrix {
	res := m
	for i := uint32(0); i < s; i++ {
		res = res.mul(res)
	}
	return res
}

func (m matrix) trace() uint64 {
	var t uint64
	for i := range m {
		t = addMod(t, m[i][i])
	}
	return t
}

// recurrence returns the coefficients c of the characteristic polynomial
// x^k - c[0]x^(k-1) - ... - c[k-1], i.e. the linear recursion every
// coordinate sequence of m's powers satisfies (Faddeev-LeVerrier).
func (m matrix) recurrence() []uint64 {
	k := len(m)
	c := make([]uint64, k)

	acc := identityMatrix(k)
	for i := 1; i <= k; i++ {
		if i > 1 {
			acc = m.mul(acc)
			for j := 0; j < k; j++ {
				acc[j][j] = subMod(acc[j][j], c[i-2])
			}
		}
		c[i-1] = mulMod(m.mul(acc).trace(), invMod(uint64(i)))
	}
	return c
}
