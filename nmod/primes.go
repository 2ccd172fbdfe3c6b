package nmod

import (
	"fmt"
	"math/big"
	"math/bits"
)

// IsPrime applies the Baillie-PSW test, which is 100% accurate for numbers
// below 2^64.
func IsPrime(x uint64) bool {
	return new(big.Int).SetUint64(x).ProbablyPrime(0)
}

// NextPrime returns the smallest prime strictly greater than q. An error
// is returned if the search leaves the supported modulus range.
func NextPrime(q uint64) (qNext uint64, err error) {

	qNext = q + 1
	if qNext&1 == 0 && qNext != 2 {
		qNext++
	}

	for !IsPrime(qNext) {

		qNext += 2

		if bits.Len64(qNext) > MaxModulusBits {
			return 0, fmt.Errorf("next prime exceeds the maximum bit-size of %d bits", MaxModulusBits)
		}
	}

	return qNext, nil
}

// PreviousPrime returns the largest prime strictly smaller than q, or an
// error if there is none.
func PreviousPrime(q uint64) (qPrev uint64, err error) {

	if q <= 2 {
		return 0, fmt.Errorf("no prime smaller than %d", q)
	}

	if q == 3 {
		return 2, nil
	}

	qPrev = q - 1
	if qPrev&1 == 0 {
		qPrev--
	}

	for !IsPrime(qPrev) {
		qPrev -= 2
	}

	return qPrev, nil
}
