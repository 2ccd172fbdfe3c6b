// Package nmod implements arithmetic modulo a word-sized integer q > 1,
// with precomputed constants for fast Barrett and Montgomery reduction.
//
// A Modulus is immutable once created and is meant to be embedded by value
// in every object living over it, so that the reduction constants are
// computed once and never looked up indirectly.
package nmod

import (
	"fmt"
	"math/bits"
)

// MaxModulusBits is the largest supported modulus bit-size. All reduction
// constants are proven exact below this bound.
const MaxModulusBits = 62

// Modulus stores a modulus q along with precomputations for fast modular
// reduction of words and double-words.
type Modulus struct {

	// Modulus
	Q uint64

	// 2^bit_length(Q) - 1
	Mask uint64

	// Fast reduction constants
	BRedConstant [2]uint64 // Barrett Reduction
	MRedConstant uint64    // Montgomery Reduction (zero when Q is even)
}

// NewModulus creates a new Modulus for q. It returns an error if q < 2 or
// if q exceeds MaxModulusBits bits.
func NewModulus(q uint64) (m Modulus, err error) {

	if q < 2 {
		return Modulus{}, fmt.Errorf("invalid modulus: must be greater than 1 but is %d", q)
	}

	if bits.Len64(q) > MaxModulusBits {
		return Modulus{}, fmt.Errorf("invalid modulus: must not exceed %d bits but has %d", MaxModulusBits, bits.Len64(q))
	}

	m.Q = q
	m.Mask = (1 << uint64(bits.Len64(q-1))) - 1

	m.BRedConstant = GenBRedConstant(q)

	// The Montgomery form only exists for odd moduli.
	if q&1 == 1 {
		m.MRedConstant = GenMRedConstant(q)
	}

	return
}

// Bits returns the bit-size of the modulus.
func (m Modulus) Bits() int {
	return bits.Len64(m.Q)
}

// Add returns a+b mod q. Inputs must be in [0, q-1].
func (m Modulus) Add(a, b uint64) uint64 {
	return CRed(a+b, m.Q)
}

// Sub returns a-b mod q. Inputs must be in [0, q-1].
func (m Modulus) Sub(a, b uint64) uint64 {
	return CRed(a+m.Q-b, m.Q)
}

// Neg returns -a mod q. The input must be in [0, q-1].
func (m Modulus) Neg(a uint64) uint64 {
	if a == 0 {
		return 0
	}
	return m.Q - a
}

// Mul returns a*b mod q. Inputs must be in [0, q-1].
func (m Modulus) Mul(a, b uint64) uint64 {
	return BRed(a, b, m.Q, m.BRedConstant)
}

// Reduce returns x mod q for any unsigned 64-bit x.
func (m Modulus) Reduce(x uint64) uint64 {
	return CRed(BRedAdd(x, m.Q, m.BRedConstant), m.Q)
}

// ReduceInt64 returns x mod q, mapping negative inputs to their positive
// residue.
func (m Modulus) ReduceInt64(x int64) uint64 {
	if x < 0 {
		return m.Neg(m.Reduce(-uint64(x)))
	}
	return m.Reduce(uint64(x))
}

// Exp returns a^e mod q. The base must be in [0, q-1].
func (m Modulus) Exp(a, e uint64) uint64 {

	if m.Q&1 == 1 {
		// Square-and-multiply in the Montgomery domain.
		r := MForm(1, m.Q, m.BRedConstant)
		x := MForm(a, m.Q, m.BRedConstant)
		for ; e > 0; e >>= 1 {
			if e&1 == 1 {
				r = MRed(r, x, m.Q, m.MRedConstant)
			}
			x = MRed(x, x, m.Q, m.MRedConstant)
		}
		return IMForm(r, m.Q, m.MRedConstant)
	}

	r := uint64(1)
	x := a
	for ; e > 0; e >>= 1 {
		if e&1 == 1 {
			r = m.Mul(r, x)
		}
		x = m.Mul(x, x)
	}
	return r
}

// Inv returns the inverse of a mod q, or an error if gcd(a, q) != 1.
// The input must be in [0, q-1].
func (m Modulus) Inv(a uint64) (uint64, error) {

	if a == 0 {
		return 0, fmt.Errorf("cannot Inv: 0 is not invertible mod %d", m.Q)
	}

	// Extended Euclid; all intermediate values fit an int64 since
	// q < 2^62.
	r0, r1 := int64(m.Q), int64(a)
	t0, t1 := int64(0), int64(1)
	for r1 != 0 {
		k := r0 / r1
		r0, r1 = r1, r0-k*r1
		t0, t1 = t1, t0-k*t1
	}

	if r0 != 1 {
		return 0, fmt.Errorf("cannot Inv: %d is not invertible mod %d (gcd is %d)", a, m.Q, r0)
	}

	if t0 < 0 {
		t0 += int64(m.Q)
	}

	return uint64(t0), nil
}

// ReduceWide returns (hi*2^64 + lo) mod q.
func (m Modulus) ReduceWide(hi, lo uint64) uint64 {
	return bits.Rem64(hi, lo, m.Q)
}

// MForm returns a*2^64 mod q, the Montgomery form of a. Panics if the
// modulus is even.
func (m Modulus) MForm(a uint64) uint64 {
	if m.MRedConstant == 0 {
		panic(fmt.Errorf("cannot MForm: modulus %d is even", m.Q))
	}
	return MForm(a, m.Q, m.BRedConstant)
}

// IMForm returns a*(1/2^64) mod q, undoing MForm. Panics if the modulus
// is even.
func (m Modulus) IMForm(a uint64) uint64 {
	if m.MRedConstant == 0 {
		panic(fmt.Errorf("cannot IMForm: modulus %d is even", m.Q))
	}
	return IMForm(a, m.Q, m.MRedConstant)
}
