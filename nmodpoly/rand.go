package nmodpoly

import (
	"fmt"
	"math/bits"

	"github.com/vneiger/flint2/nmod"
	"github.com/vneiger/flint2/utils/sampling"
)

// RandTest returns a polynomial with uniform coefficients and uniform
// length in [0, maxLen].
func RandTest(mod nmod.Modulus, prng sampling.PRNG, maxLen int) Poly {
	if maxLen < 0 {
		panic(fmt.Errorf("negative length bound: %d", maxLen))
	}
	mask := (uint64(1) << bits.Len64(uint64(maxLen))) - 1
	n := int(nmod.RandUniform(prng, uint64(maxLen)+1, mask))

	s := nmod.NewUniformSampler(prng, mod)
	return Poly{Mod: mod, Coeffs: normalise(s.ReadNew(n))}
}

// RandTestNotZero returns a non-zero polynomial with uniform coefficients
// and length in [1, maxLen].
func RandTestNotZero(mod nmod.Modulus, prng sampling.PRNG, maxLen int) Poly {
	if maxLen < 1 {
		panic(fmt.Errorf("length bound must be positive, got %d", maxLen))
	}
	for {
		if p := RandTest(mod, prng, maxLen); !p.IsZero() {
			return p
		}
	}
}

// RandTestMonic returns a monic polynomial of exact length n, so of degree
// n-1, with uniform lower coefficients.
func RandTestMonic(mod nmod.Modulus, prng sampling.PRNG, n int) Poly {
	if n < 1 {
		panic(fmt.Errorf("length must be positive, got %d", n))
	}
	s := nmod.NewUniformSampler(prng, mod)
	coeffs := append(s.ReadNew(n-1), 1)
	return Poly{Mod: mod, Coeffs: coeffs}
}

// RandTestIrreducible returns a monic irreducible polynomial of exact
// length n by rejection sampling. Panics if the modulus is not prime or
// if n is below two.
func RandTestIrreducible(mod nmod.Modulus, prng sampling.PRNG, n int) Poly {
	if !nmod.IsPrime(mod.Q) {
		panic(fmt.Errorf("irreducible sampling requires a prime modulus, got %d", mod.Q))
	}
	if n < 2 {
		panic(fmt.Errorf("length must be at least two, got %d", n))
	}
	for {
		if p := RandTestMonic(mod, prng, n); p.IsIrreducible() {
			return p
		}
	}
}
