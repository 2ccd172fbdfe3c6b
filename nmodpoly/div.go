package nmodpoly

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/vneiger/flint2/nmod"
)

const (
	// divremBasecaseCutoff is the quotient or divisor length below which
	// division falls back to the schoolbook kernel.
	divremBasecaseCutoff = 16

	// divremNewtonCutoff is the quotient length above which division
	// switches from divide and conquer to Newton iteration.
	divremNewtonCutoff = 120
)

// reverse returns a reversed copy of v.
func reverse(v []uint64) []uint64 {
	out := make([]uint64, len(v))
	for i := range out {
		out[i] = v[len(v)-1-i]
	}
	return out
}

// divremBasecase is the schoolbook division kernel. It requires
// len(a) >= len(b) >= 1 and invLead the inverse of b's leading
// coefficient.
func divremBasecase(m nmod.Modulus, a, b []uint64, invLead uint64) (q, r []uint64) {
	la, lb := len(a), len(b)
	r = slices.Clone(a)
	q = make([]uint64, la-lb+1)
	for i := la - 1; i >= lb-1; i-- {
		if r[i] == 0 {
			continue
		}
		t := m.Mul(r[i], invLead)
		q[i-lb+1] = t
		m.ScalarMulSubVec(b, t, r[i-lb+1:i+1])
	}
	return q, normalise(r[:lb-1])
}

// divremAny accepts any operand lengths, handling the short-dividend case
// before recursing into the divide and conquer kernel.
func divremAny(m nmod.Modulus, a, b []uint64, invLead uint64) (q, r []uint64) {
	if len(a) < len(b) {
		return nil, a
	}
	return divremDivConquer(m, a, b, invLead)
}

// divremDivConquer splits the quotient in halves, dividing by the upper
// half of the divisor first and correcting with a multiplication. A long
// dividend is consumed one window of 2*len(b)-1 coefficients at a time.
// It requires len(a) >= len(b) >= 1.
func divremDivConquer(m nmod.Modulus, a, b []uint64, invLead uint64) (q, r []uint64) {
	la, lb := len(a), len(b)
	n := la - lb + 1

	if n < divremBasecaseCutoff || lb < divremBasecaseCutoff {
		return divremBasecase(m, a, b, invLead)
	}

	if la > 2*lb-1 {
		k := la - (2*lb - 1)
		q1, r1 := divremDivConquer(m, a[k:], b, invLead)

		t := make([]uint64, k+len(r1))
		copy(t, a[:k])
		copy(t[k:], r1)

		var q0 []uint64
		q0, r = divremAny(m, normalise(t), b, invLead)

		q = make([]uint64, n)
		copy(q, q0)
		copy(q[k:], q1)
		return q, r
	}

	n2 := n >> 1

	// a = q1 * (b div x^n2) * x^(2*n2) + s * x^(2*n2) + (a mod x^(2*n2))
	q1, s := divremDivConquer(m, a[2*n2:], b[n2:], invLead)

	// p = a - q1 * b * x^n2, of length at most lb + n2 - 1
	p := make([]uint64, lb+n2-1)
	copy(p, a[:2*n2])
	copy(p[2*n2:], s)
	t := mul(m, q1, b[:n2])
	m.SubVec(p[n2:n2+len(t)], t, p[n2:n2+len(t)])

	var q0 []uint64
	q0, r = divremAny(m, normalise(p), b, invLead)

	q = make([]uint64, n)
	copy(q, q0)
	copy(q[n2:], q1)
	return q, r
}

// quotNewton computes the quotient of a by b as the reversal of
// rev(a) * binv modulo x^n, where binv is the inverse of rev(b) to
// precision at least n = len(a)-len(b)+1.
func quotNewton(m nmod.Modulus, a, b, binv []uint64) []uint64 {
	la, lb := len(a), len(b)
	n := la - lb + 1

	ra := make([]uint64, n)
	for i := range ra {
		ra[i] = a[la-1-i]
	}

	rq := mullow(m, ra, binv, n)

	q := make([]uint64, n)
	for i := range q {
		if j := n - 1 - i; j < len(rq) {
			q[i] = rq[j]
		}
	}
	return q
}

// divremNewton divides via power series inversion of the reversed divisor,
// recovering the remainder with a truncated back multiplication. It
// requires len(a) >= len(b) >= 1.
func divremNewton(m nmod.Modulus, a, b []uint64) (q, r []uint64) {
	n := len(a) - len(b) + 1
	binv := invSeries(m, reverse(b), n)
	q = quotNewton(m, a, b, binv)
	r = normalise(sub(m, a[:len(b)-1], mullow(m, b, q, len(b)-1)))
	return q, r
}

// divrem dispatches between the division kernels. Panics if b is zero or
// if its leading coefficient is not invertible.
func divrem(m nmod.Modulus, a, b []uint64) (q, r []uint64) {
	la, lb := len(a), len(b)
	if lb == 0 {
		panic("division by zero polynomial")
	}
	if la < lb {
		return nil, slices.Clone(a)
	}

	invLead, err := m.Inv(b[lb-1])
	if err != nil {
		panic(fmt.Errorf("leading coefficient: %w", err))
	}

	n := la - lb + 1
	switch {
	case n < divremBasecaseCutoff || lb < divremBasecaseCutoff:
		return divremBasecase(m, a, b, invLead)
	case n < divremNewtonCutoff:
		return divremDivConquer(m, a, b, invLead)
	default:
		return divremNewton(m, a, b)
	}
}

// rem returns only the remainder of a by b.
func rem(m nmod.Modulus, a, b []uint64) []uint64 {
	_, r := divrem(m, a, b)
	return r
}

// DivRem returns the quotient and remainder of p by d, selecting the
// algorithm from the operand lengths. Panics if d is zero or if its
// leading coefficient is not invertible.
func (p Poly) DivRem(d Poly) (Poly, Poly) {
	p.assertSameMod(d)
	q, r := divrem(p.Mod, p.Coeffs, d.Coeffs)
	return Poly{Mod: p.Mod, Coeffs: normalise(q)}, Poly{Mod: p.Mod, Coeffs: normalise(r)}
}

// DivRemBasecase returns the quotient and remainder of p by d using
// schoolbook division.
func (p Poly) DivRemBasecase(d Poly) (Poly, Poly) {
	p.assertSameMod(d)
	invLead := p.divisorInv(d)
	if len(p.Coeffs) < len(d.Coeffs) {
		return NewPoly(p.Mod), p.CopyNew()
	}
	q, r := divremBasecase(p.Mod, p.Coeffs, d.Coeffs, invLead)
	return Poly{Mod: p.Mod, Coeffs: normalise(q)}, Poly{Mod: p.Mod, Coeffs: normalise(r)}
}

// DivRemDivConquer returns the quotient and remainder of p by d using
// divide and conquer division.
func (p Poly) DivRemDivConquer(d Poly) (Poly, Poly) {
	p.assertSameMod(d)
	invLead := p.divisorInv(d)
	if len(p.Coeffs) < len(d.Coeffs) {
		return NewPoly(p.Mod), p.CopyNew()
	}
	q, r := divremDivConquer(p.Mod, p.Coeffs, d.Coeffs, invLead)
	return Poly{Mod: p.Mod, Coeffs: normalise(q)}, Poly{Mod: p.Mod, Coeffs: normalise(r)}
}

// DivRemNewton returns the quotient and remainder of p by d using Newton
// iteration on the reversed divisor.
func (p Poly) DivRemNewton(d Poly) (Poly, Poly) {
	p.assertSameMod(d)
	p.divisorInv(d)
	if len(p.Coeffs) < len(d.Coeffs) {
		return NewPoly(p.Mod), p.CopyNew()
	}
	q, r := divremNewton(p.Mod, p.Coeffs, d.Coeffs)
	return Poly{Mod: p.Mod, Coeffs: normalise(q)}, Poly{Mod: p.Mod, Coeffs: normalise(r)}
}

// DivRemNewtonPreInv returns the quotient and remainder of p by d given
// binv, the power series inverse to precision Length(d) of the reversal of
// d, as returned by d.Reverse(d.Length()).InvSeries(d.Length()). It
// requires Length(p) <= 2*Length(d)-1 and panics otherwise.
func (p Poly) DivRemNewtonPreInv(d, binv Poly) (Poly, Poly) {
	p.assertSameMod(d)
	p.assertSameMod(binv)
	p.divisorInv(d)
	la, lb := len(p.Coeffs), len(d.Coeffs)
	if la < lb {
		return NewPoly(p.Mod), p.CopyNew()
	}
	if la > 2*lb-1 {
		panic(fmt.Errorf("dividend of length %d is too long for a divisor of length %d with a precomputed inverse", la, lb))
	}
	q := quotNewton(p.Mod, p.Coeffs, d.Coeffs, binv.Coeffs)
	r := sub(p.Mod, p.Coeffs[:lb-1], mullow(p.Mod, d.Coeffs, q, lb-1))
	return Poly{Mod: p.Mod, Coeffs: normalise(q)}, Poly{Mod: p.Mod, Coeffs: normalise(r)}
}

// DivNewtonPreInv returns the quotient of p by d given binv, under the
// same contract as DivRemNewtonPreInv, skipping the remainder recovery.
func (p Poly) DivNewtonPreInv(d, binv Poly) Poly {
	p.assertSameMod(d)
	p.assertSameMod(binv)
	p.divisorInv(d)
	la, lb := len(p.Coeffs), len(d.Coeffs)
	if la < lb {
		return NewPoly(p.Mod)
	}
	if la > 2*lb-1 {
		panic(fmt.Errorf("dividend of length %d is too long for a divisor of length %d with a precomputed inverse", la, lb))
	}
	q := quotNewton(p.Mod, p.Coeffs, d.Coeffs, binv.Coeffs)
	return Poly{Mod: p.Mod, Coeffs: normalise(q)}
}

// divisorInv panics unless d is a valid divisor, returning the inverse of
// its leading coefficient.
func (p Poly) divisorInv(d Poly) uint64 {
	if len(d.Coeffs) == 0 {
		panic("division by zero polynomial")
	}
	invLead, err := p.Mod.Inv(d.Coeffs[len(d.Coeffs)-1])
	if err != nil {
		panic(fmt.Errorf("leading coefficient: %w", err))
	}
	return invLead
}

// Div returns the quotient of p by d, discarding the remainder.
func (p Poly) Div(d Poly) Poly {
	p.assertSameMod(d)
	la, lb := len(p.Coeffs), len(d.Coeffs)
	if lb == 0 {
		panic("division by zero polynomial")
	}
	if la < lb {
		return NewPoly(p.Mod)
	}
	n := la - lb + 1
	if n >= divremNewtonCutoff && lb >= divremBasecaseCutoff {
		p.divisorInv(d)
		binv := invSeries(p.Mod, reverse(d.Coeffs), n)
		q := quotNewton(p.Mod, p.Coeffs, d.Coeffs, binv)
		return Poly{Mod: p.Mod, Coeffs: normalise(q)}
	}
	q, _ := divrem(p.Mod, p.Coeffs, d.Coeffs)
	return Poly{Mod: p.Mod, Coeffs: normalise(q)}
}

// Rem returns the remainder of p modulo d.
func (p Poly) Rem(d Poly) Poly {
	p.assertSameMod(d)
	_, r := divrem(p.Mod, p.Coeffs, d.Coeffs)
	return Poly{Mod: p.Mod, Coeffs: normalise(r)}
}

// DivRoot divides p by the linear factor x - c, returning the quotient and
// the evaluation p(c), which is the remainder of the division.
func (p Poly) DivRoot(c uint64) (Poly, uint64) {
	c = p.Mod.Reduce(c)
	n := len(p.Coeffs)
	if n == 0 {
		return NewPoly(p.Mod), 0
	}
	if n == 1 {
		return NewPoly(p.Mod), p.Coeffs[0]
	}

	q := make([]uint64, n-1)
	acc := p.Coeffs[n-1]
	for i := n - 2; i >= 0; i-- {
		q[i] = acc
		acc = p.Mod.Add(p.Mod.Mul(acc, c), p.Coeffs[i])
	}
	return Poly{Mod: p.Mod, Coeffs: q}, acc
}
