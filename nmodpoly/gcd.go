package nmodpoly

import (
	"fmt"

	"github.com/vneiger/flint2/nmod"
)

// GCD returns the monic greatest common divisor of p and q, and the zero
// polynomial when both are zero. The leading coefficients met along the
// Euclidean remainder sequence must be invertible, which always holds for
// a prime modulus.
func (p Poly) GCD(q Poly) Poly {
	p.assertSameMod(q)
	a, b := p.CopyNew(), q.CopyNew()
	for !b.IsZero() {
		a, b = b, a.Rem(b)
	}
	if a.IsZero() {
		return a
	}
	return a.MakeMonic()
}

// IsSquarefree returns true if p has no repeated factor. Polynomials of
// length below three are squarefree by convention.
func (p Poly) IsSquarefree() bool {
	if len(p.Coeffs) < 3 {
		return true
	}
	return p.GCD(p.Derivative()).Degree() == 0
}

// primeDivisors returns the distinct prime divisors of n.
func primeDivisors(n int) []int {
	var ps []int
	for d := 2; d*d <= n; d++ {
		if n%d == 0 {
			ps = append(ps, d)
			for n%d == 0 {
				n /= d
			}
		}
	}
	if n > 1 {
		ps = append(ps, n)
	}
	return ps
}

// IsIrreducible runs the Rabin irreducibility test: p of degree n is
// irreducible over F_q if and only if x^(q^n) = x mod p while
// gcd(p, x^(q^(n/d)) - x) is constant for every prime divisor d of n.
// Panics if the modulus is not prime.
func (p Poly) IsIrreducible() bool {
	if !nmod.IsPrime(p.Mod.Q) {
		panic(fmt.Errorf("irreducibility test requires a prime modulus, got %d", p.Mod.Q))
	}

	n := p.Degree()
	if n < 1 {
		return false
	}
	if n == 1 {
		return true
	}

	f := p.MakeMonic()
	gen := NewPolyFromCoeffs(p.Mod, 0, 1)

	checks := make(map[int]bool)
	for _, d := range primeDivisors(n) {
		checks[n/d] = true
	}

	// u runs through x^(q^i) mod f, one Frobenius power at a time
	u := gen
	for i := 1; i <= n; i++ {
		u = u.PowMod(p.Mod.Q, f)
		if checks[i] && f.GCD(u.Sub(gen)).Degree() != 0 {
			return false
		}
	}
	return u.Equal(gen)
}
