package nmodpoly

import (
	"math/bits"

	"github.com/vneiger/flint2/nmod"
)

// composeDCCutoff is the outer length below which composition is done by
// Horner's rule.
const composeDCCutoff = 8

// composeHorner is the Horner kernel for composition: the coefficients of
// a are folded from the top, multiplying by b at each step.
func composeHorner(m nmod.Modulus, a, b []uint64) []uint64 {
	var res []uint64
	for i := len(a) - 1; i >= 0; i-- {
		res = mul(m, normalise(res), b)
		if a[i] != 0 {
			if len(res) == 0 {
				res = []uint64{a[i]}
			} else {
				res[0] = m.Add(res[0], a[i])
			}
		}
	}
	return res
}

// composeDCRec splits a at the largest power of two below its length and
// recombines the halves with a precomputed power of b.
func composeDCRec(m nmod.Modulus, a, b []uint64, powers [][]uint64) []uint64 {
	if len(a) <= composeDCCutoff {
		return composeHorner(m, a, b)
	}

	h := 1 << uint(bits.Len(uint(len(a)-1))-1)

	lo := composeDCRec(m, normalise(a[:h]), b, powers)
	hi := composeDCRec(m, a[h:], b, powers)

	t := mul(m, normalise(hi), powers[bits.Len(uint(h))-1])
	return add(m, normalise(lo), normalise(t))
}

// composeDivConquer composes by divide and conquer over the coefficients
// of a, against a table of repeatedly squared powers of b.
func composeDivConquer(m nmod.Modulus, a, b []uint64) []uint64 {
	powers := [][]uint64{b}
	for 1<<uint(len(powers)) < len(a) {
		last := powers[len(powers)-1]
		powers = append(powers, normalise(mul(m, last, last)))
	}
	return composeDCRec(m, a, b, powers)
}

// ComposeHorner returns p(q) using Horner's rule.
func (p Poly) ComposeHorner(q Poly) Poly {
	p.assertSameMod(q)
	return Poly{Mod: p.Mod, Coeffs: normalise(composeHorner(p.Mod, p.Coeffs, q.Coeffs))}
}

// ComposeDivConquer returns p(q) by divide and conquer over the
// coefficients of p.
func (p Poly) ComposeDivConquer(q Poly) Poly {
	p.assertSameMod(q)
	if len(p.Coeffs) <= composeDCCutoff {
		return p.ComposeHorner(q)
	}
	return Poly{Mod: p.Mod, Coeffs: normalise(composeDivConquer(p.Mod, p.Coeffs, q.Coeffs))}
}

// Compose returns p(q), selecting the algorithm from the length of p.
func (p Poly) Compose(q Poly) Poly {
	if len(p.Coeffs) <= composeDCCutoff {
		return p.ComposeHorner(q)
	}
	return p.ComposeDivConquer(q)
}
