package nmodpoly

import (
	"golang.org/x/exp/slices"

	"github.com/vneiger/flint2/nmod"
)

// add returns the coefficient-wise sum of a and b, without trimming.
func add(m nmod.Modulus, a, b []uint64) []uint64 {
	if len(a) < len(b) {
		a, b = b, a
	}
	res := make([]uint64, len(a))
	m.AddVec(a[:len(b)], b, res[:len(b)])
	copy(res[len(b):], a[len(b):])
	return res
}

// sub returns the coefficient-wise difference a - b, without trimming.
func sub(m nmod.Modulus, a, b []uint64) []uint64 {
	la, lb := len(a), len(b)
	n := la
	if lb > n {
		n = lb
	}
	res := make([]uint64, n)
	if la < lb {
		m.SubVec(a, b[:la], res[:la])
		m.NegVec(b[la:], res[la:])
	} else {
		m.SubVec(a[:lb], b, res[:lb])
		copy(res[lb:], a[lb:])
	}
	return res
}

// Add returns p + q.
func (p Poly) Add(q Poly) Poly {
	p.assertSameMod(q)
	return Poly{Mod: p.Mod, Coeffs: normalise(add(p.Mod, p.Coeffs, q.Coeffs))}
}

// Sub returns p - q.
func (p Poly) Sub(q Poly) Poly {
	p.assertSameMod(q)
	return Poly{Mod: p.Mod, Coeffs: normalise(sub(p.Mod, p.Coeffs, q.Coeffs))}
}

// Neg returns -p.
func (p Poly) Neg() Poly {
	res := make([]uint64, len(p.Coeffs))
	p.Mod.NegVec(p.Coeffs, res)
	return Poly{Mod: p.Mod, Coeffs: res}
}

// ScalarMul returns c * p. The scalar is reduced modulo q first.
func (p Poly) ScalarMul(c uint64) Poly {
	c = p.Mod.Reduce(c)
	if c == 0 || len(p.Coeffs) == 0 {
		return NewPoly(p.Mod)
	}
	res := make([]uint64, len(p.Coeffs))
	p.Mod.ScalarMulVec(p.Coeffs, c, res)
	return Poly{Mod: p.Mod, Coeffs: normalise(res)}
}

// AddScalar returns p + c. The scalar is reduced modulo q first.
func (p Poly) AddScalar(c uint64) Poly {
	res := slices.Clone(p.Coeffs)
	c = p.Mod.Reduce(c)
	if len(res) == 0 {
		if c == 0 {
			return NewPoly(p.Mod)
		}
		return Poly{Mod: p.Mod, Coeffs: []uint64{c}}
	}
	res[0] = p.Mod.Add(res[0], c)
	return Poly{Mod: p.Mod, Coeffs: normalise(res)}
}

// SubScalar returns p - c. The scalar is reduced modulo q first.
func (p Poly) SubScalar(c uint64) Poly {
	return p.AddScalar(p.Mod.Neg(p.Mod.Reduce(c)))
}
