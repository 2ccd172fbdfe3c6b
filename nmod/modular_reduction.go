package nmod

import (
	"math/big"
	"math/bits"
)

// MForm returns a*2^64 mod q.
func MForm(a, q uint64, u [2]uint64) (r uint64) {
	mhi, _ := bits.Mul64(a, u[1])
	r = -(a*u[0] + mhi) * q
	if r >= q {
		r -= q
	}
	return
}

// IMForm returns a*(1/2^64) mod q.
func IMForm(a, q, qInv uint64) (r uint64) {
	r, _ = bits.Mul64(a*qInv, q)
	r = q - r
	if r >= q {
		r -= q
	}
	return
}

// GenMRedConstant computes the constant qInv = (q^-1) mod 2^64 required by
// MRed. The input q must be odd.
func GenMRedConstant(q uint64) (qInv uint64) {
	var x uint64
	qInv = 1
	x = q
	for i := 0; i < 63; i++ {
		qInv *= x
		qInv &= 0xFFFFFFFFFFFFFFFF
		x *= x
		x &= 0xFFFFFFFFFFFFFFFF
	}
	return
}

// MRed computes x*y*(1/2^64) mod q, a 64x64-bit multiplication followed
// by a Montgomery reduction over a radix of 2^64.
func MRed(x, y, q, qInv uint64) (r uint64) {
	ahi, alo := bits.Mul64(x, y)
	R := alo * qInv
	H, _ := bits.Mul64(R, q)
	r = ahi - H + q
	if r >= q {
		r -= q
	}
	return
}

// GenBRedConstant computes the constant floor(2^128/q) required by BRed
// and BRedAdd, over a radix of 2^128.
func GenBRedConstant(q uint64) (constant [2]uint64) {
	bigR := new(big.Int).Lsh(new(big.Int).SetUint64(1), 128)
	bigR.Quo(bigR, new(big.Int).SetUint64(q))

	// 2^radix // q
	mhi := new(big.Int).Rsh(bigR, 64).Uint64()
	mlo := bigR.Uint64()

	return [2]uint64{mhi, mlo}
}

// BRedAdd reduces a 64-bit integer by q.
// The result is guaranteed to be in [0, q-1] only for x < 2^63; for
// larger inputs it can land in [q, 2q-1] and needs one more CRed.
func BRedAdd(x, q uint64, u [2]uint64) (r uint64) {
	s0, _ := bits.Mul64(x, u[0])
	r = x - s0*q
	if r >= q {
		r -= q
	}
	return
}

// BRed computes x*y mod q for x, y in [0, q-1], a 64x64-bit multiplication
// followed by a Barrett reduction with the 2^128 radix constant.
func BRed(x, y, q uint64, u [2]uint64) (r uint64) {

	var lhi, mhi, mlo, s0, s1, carry uint64

	ahi, alo := bits.Mul64(x, y)

	// (alo*ulo)>>64

	lhi, _ = bits.Mul64(alo, u[1])

	// ((ahi*ulo + alo*uhi) + (alo*ulo))>>64

	mhi, mlo = bits.Mul64(alo, u[0])

	s0, carry = bits.Add64(mlo, lhi, 0)

	s1 = mhi + carry

	mhi, mlo = bits.Mul64(ahi, u[1])

	_, carry = bits.Add64(mlo, s0, 0)

	lhi = mhi + carry

	// (ahi*uhi) + (((ahi*ulo + alo*uhi) + (alo*ulo))>>64)

	s0 = ahi*u[0] + s1 + lhi

	r = alo - s0*q

	if r >= q {
		r -= q
	}

	return
}

// CRed returns a mod q, where a is required to be in the range [0, 2q-1].
func CRed(a, q uint64) uint64 {
	if a >= q {
		return a - q
	}
	return a
}
