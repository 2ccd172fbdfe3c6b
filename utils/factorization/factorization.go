// Package factorization implements integer factorization routines used to
// find the prime factors of group orders.
package factorization

import (
	"math/big"

	"github.com/bits-and-blooms/bitset"
)

// trialDivisionBound bounds the small primes removed by trial division
// before the heavier methods run.
const trialDivisionBound = 1 << 16

// ecmStage1Bound is the stage-1 smoothness bound of GetFactorECM.
const ecmStage1Bound = 1 << 10

// IsPrime returns true if m is prime, applying the Baillie-PSW test,
// which is 100% accurate for numbers below 2^64.
func IsPrime(m *big.Int) bool {
	return m.ProbablyPrime(0)
}

// SmallPrimes returns all primes up to limit, by an Eratosthenes sieve.
func SmallPrimes(limit uint64) (primes []uint64) {

	if limit < 2 {
		return
	}

	composite := bitset.New(uint(limit + 1))

	for p := uint64(2); p <= limit; p++ {
		if composite.Test(uint(p)) {
			continue
		}
		primes = append(primes, p)
		for j := p * p; j <= limit; j += p {
			composite.Set(uint(j))
		}
	}

	return
}

// GetFactors returns the list of distinct prime factors of m.
func GetFactors(m *big.Int) (factors []*big.Int) {

	n := new(big.Int).Set(m)
	if n.Sign() < 0 {
		n.Neg(n)
	}

	one := new(big.Int).SetUint64(1)
	if n.Cmp(one) <= 0 {
		return
	}

	tmp := new(big.Int)
	for _, p := range SmallPrimes(trialDivisionBound) {
		bigP := new(big.Int).SetUint64(p)
		if tmp.Mod(n, bigP).Sign() == 0 {
			factors = append(factors, bigP)
			for tmp.Mod(n, bigP).Sign() == 0 {
				n.Quo(n, bigP)
			}
		}
		if n.Cmp(one) == 0 {
			return
		}
	}

	// The remaining cofactor has no factor below trialDivisionBound;
	// splits it recursively.
	var split func(c *big.Int)
	split = func(c *big.Int) {
		if IsPrime(c) {
			for _, f := range factors {
				if f.Cmp(c) == 0 {
					return
				}
			}
			factors = append(factors, c)
			return
		}
		d := GetFactorPollardRho(c)
		split(d)
		split(new(big.Int).Quo(c, d))
	}
	split(n)

	return
}

// GetFactorPollardRho returns a non-trivial factor of the composite m
// using Pollard's rho method with Floyd cycle detection.
func GetFactorPollardRho(m *big.Int) *big.Int {

	one := new(big.Int).SetUint64(1)
	two := new(big.Int).SetUint64(2)

	if new(big.Int).Mod(m, two).Sign() == 0 {
		return two
	}

	f := func(x, c *big.Int) *big.Int {
		y := new(big.Int).Mul(x, x)
		y.Add(y, c)
		return y.Mod(y, m)
	}

	for c := int64(1); ; c++ {

		bigC := big.NewInt(c)
		x := new(big.Int).SetUint64(2)
		y := new(big.Int).SetUint64(2)
		d := new(big.Int).SetUint64(1)

		for d.Cmp(one) == 0 {
			x = f(x, bigC)
			y = f(f(y, bigC), bigC)
			d.Sub(x, y)
			d.Abs(d)
			d.GCD(nil, nil, d, m)
		}

		// d == m means the walk collapsed; retries with another constant.
		if d.Cmp(m) != 0 {
			return d
		}
	}
}

// GetFactorECM returns a non-trivial factor of the composite m using
// stage 1 of Lenstra's elliptic-curve method on random Weierstrass curves.
// The expected running time scales with the smallest factor, which makes
// it the method of choice once trial division has removed the small ones.
func GetFactorECM(m *big.Int) *big.Int {

	one := new(big.Int).SetUint64(1)

	primes := SmallPrimes(ecmStage1Bound)

	for {

		w, p := NewRandomWeierstrassCurve(m)

		var g *big.Int
		for _, ell := range primes {
			// Raises p to the largest power of ell below the stage-1 bound.
			for k := ell; k <= ecmStage1Bound; k *= ell {
				if p, g = w.ScalarMul(p, ell); g != nil {
					break
				}
			}
			if g != nil {
				break
			}
		}

		if g != nil && g.Cmp(one) > 0 && g.Cmp(m) < 0 {
			return g
		}
		// Curve order was not smooth enough (or collapsed to m);
		// tries another random curve.
	}
}
