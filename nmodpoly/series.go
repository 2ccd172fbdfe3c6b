package nmodpoly

import (
	"fmt"

	"github.com/vneiger/flint2/nmod"
)

// invSeriesNewtonCutoff is the precision below which series inversion uses
// the quadratic kernel.
const invSeriesNewtonCutoff = 32

// invSeriesBasecase solves a * g = 1 mod x^n for g by back substitution.
// Panics if the constant term of a is missing or not invertible.
func invSeriesBasecase(m nmod.Modulus, a []uint64, n int) []uint64 {
	if len(a) == 0 || a[0] == 0 {
		panic("constant term is zero")
	}
	inv0, err := m.Inv(a[0])
	if err != nil {
		panic(fmt.Errorf("constant term: %w", err))
	}

	g := make([]uint64, n)
	g[0] = inv0
	for i := 1; i < n; i++ {
		upper := i
		if upper > len(a)-1 {
			upper = len(a) - 1
		}
		var s uint64
		for j := 1; j <= upper; j++ {
			s = m.Add(s, m.Mul(a[j], g[i-j]))
		}
		g[i] = m.Neg(m.Mul(inv0, s))
	}
	return g
}

// invSeriesNewton doubles the precision of the inverse at each step with
// g <- g * (2 - a*g).
func invSeriesNewton(m nmod.Modulus, a []uint64, n int) []uint64 {
	cut := invSeriesNewtonCutoff
	if n < cut {
		cut = n
	}
	g := invSeriesBasecase(m, a, cut)

	for prec := cut; prec < n; {
		prec *= 2
		if prec > n {
			prec = n
		}

		t := mullow(m, a, g, prec)
		u := make([]uint64, len(t))
		m.NegVec(t, u)
		u[0] = m.Add(u[0], m.Reduce(2))

		g = mullow(m, g, u, prec)
	}
	return g
}

// invSeries dispatches between the series inversion kernels. The result
// may be shorter than n and is not trimmed.
func invSeries(m nmod.Modulus, a []uint64, n int) []uint64 {
	if n < invSeriesNewtonCutoff {
		return invSeriesBasecase(m, a, n)
	}
	return invSeriesNewton(m, a, n)
}

// InvSeries returns the power series inverse of p to precision n, that is
// the polynomial g of length at most n with p * g = 1 mod x^n. Panics if n
// is not positive or if the constant term of p is not invertible.
func (p Poly) InvSeries(n int) Poly {
	if n < 1 {
		panic(fmt.Errorf("precision must be positive, got %d", n))
	}
	return Poly{Mod: p.Mod, Coeffs: normalise(invSeries(p.Mod, p.Coeffs, n))}
}

// InvSeriesBasecase returns the power series inverse of p to precision n
// using the quadratic kernel.
func (p Poly) InvSeriesBasecase(n int) Poly {
	if n < 1 {
		panic(fmt.Errorf("precision must be positive, got %d", n))
	}
	return Poly{Mod: p.Mod, Coeffs: normalise(invSeriesBasecase(p.Mod, p.Coeffs, n))}
}

// InvSeriesNewton returns the power series inverse of p to precision n
// using Newton iteration.
func (p Poly) InvSeriesNewton(n int) Poly {
	if n < 1 {
		panic(fmt.Errorf("precision must be positive, got %d", n))
	}
	return Poly{Mod: p.Mod, Coeffs: normalise(invSeriesNewton(p.Mod, p.Coeffs, n))}
}

// DivSeries returns p / d as a power series to precision n. Panics if n is
// not positive or if the constant term of d is not invertible.
func (p Poly) DivSeries(d Poly, n int) Poly {
	p.assertSameMod(d)
	if n < 1 {
		panic(fmt.Errorf("precision must be positive, got %d", n))
	}
	if len(p.Coeffs) == 0 {
		if len(d.Coeffs) == 0 || d.Coeffs[0] == 0 {
			panic("constant term is zero")
		}
		return NewPoly(p.Mod)
	}
	return Poly{Mod: p.Mod, Coeffs: normalise(mullow(p.Mod, p.Coeffs, invSeries(p.Mod, d.Coeffs, n), n))}
}

// Derivative returns the formal derivative of p.
func (p Poly) Derivative() Poly {
	if len(p.Coeffs) <= 1 {
		return NewPoly(p.Mod)
	}
	res := make([]uint64, len(p.Coeffs)-1)
	for i := range res {
		res[i] = p.Mod.Mul(p.Coeffs[i+1], p.Mod.Reduce(uint64(i+1)))
	}
	return Poly{Mod: p.Mod, Coeffs: normalise(res)}
}

// Integral returns the formal integral of p with zero constant term.
// Panics if some required inverse 1/(i+1) does not exist modulo q.
func (p Poly) Integral() Poly {
	if len(p.Coeffs) == 0 {
		return NewPoly(p.Mod)
	}
	res := make([]uint64, len(p.Coeffs)+1)
	for i, c := range p.Coeffs {
		if c == 0 {
			continue
		}
		inv, err := p.Mod.Inv(p.Mod.Reduce(uint64(i + 1)))
		if err != nil {
			panic(fmt.Errorf("cannot integrate degree %d term: %w", i, err))
		}
		res[i+1] = p.Mod.Mul(c, inv)
	}
	return Poly{Mod: p.Mod, Coeffs: normalise(res)}
}
