package nmodpoly

import (
	"math/bits"

	"github.com/vneiger/flint2/nmod"
	"github.com/vneiger/flint2/utils"
)

// mulKSCutoff is the operand length above which multiplication switches
// from the schoolbook kernel to Kronecker substitution.
const mulKSCutoff = 16

// mulClassical is the schoolbook kernel. Operands must be non-empty; the
// result has length len(a)+len(b)-1 and is not trimmed.
func mulClassical(m nmod.Modulus, a, b []uint64) []uint64 {
	res := make([]uint64, len(a)+len(b)-1)
	for i, c := range a {
		if c != 0 {
			m.ScalarMulAddVec(b, c, res[i:i+len(b)])
		}
	}
	return res
}

// mulKS multiplies by Kronecker substitution: both operands are packed
// into big integers at a digit width large enough for the product digits
// not to overlap, multiplied as integers, and the digits of the product
// are reduced modulo q. Operands must be non-empty.
func mulKS(m nmod.Modulus, a, b []uint64) []uint64 {
	short := utils.Min(len(a), len(b))
	width := uint(2*m.Bits() + bits.Len(uint(short)))

	z := bigFromWords(bitPack(a, width))
	z.Mul(z, bigFromWords(bitPack(b, width)))
	words := wordsFromBig(z)

	res := make([]uint64, len(a)+len(b)-1)
	for k := range res {
		res[k] = foldWide(m, getBits(words, uint(k)*width, width))
	}
	return res
}

// mul dispatches between the schoolbook and Kronecker kernels. The result
// is not trimmed.
func mul(m nmod.Modulus, a, b []uint64) []uint64 {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	if utils.Min(len(a), len(b)) < mulKSCutoff {
		return mulClassical(m, a, b)
	}
	return mulKS(m, a, b)
}

// mullowClassical is the schoolbook kernel computing only the coefficients
// of degree below n. Operands must be non-empty and already trimmed to at
// most n entries.
func mullowClassical(m nmod.Modulus, a, b []uint64, n int) []uint64 {
	res := make([]uint64, utils.Min(n, len(a)+len(b)-1))
	for i, c := range a {
		if c == 0 {
			continue
		}
		hi := utils.Min(len(b), n-i)
		if hi <= 0 {
			break
		}
		m.ScalarMulAddVec(b[:hi], c, res[i:i+hi])
	}
	return res
}

// mullow returns the product of a and b truncated to length n. The result
// is not trimmed.
func mullow(m nmod.Modulus, a, b []uint64, n int) []uint64 {
	if len(a) == 0 || len(b) == 0 || n <= 0 {
		return nil
	}
	if len(a) > n {
		a = a[:n]
	}
	if len(b) > n {
		b = b[:n]
	}
	if utils.Min(len(a), len(b)) < mulKSCutoff {
		return mullowClassical(m, a, b, n)
	}
	res := mulKS(m, a, b)
	if len(res) > n {
		res = res[:n]
	}
	return res
}

// mulhighClassical is the schoolbook kernel computing only the
// coefficients of degree start and above; lower coefficients of the result
// are zero. Operands must be non-empty.
func mulhighClassical(m nmod.Modulus, a, b []uint64, start int) []uint64 {
	res := make([]uint64, len(a)+len(b)-1)
	for i, c := range a {
		if c == 0 {
			continue
		}
		lo := start - i
		if lo < 0 {
			lo = 0
		}
		if lo >= len(b) {
			continue
		}
		m.ScalarMulAddVec(b[lo:], c, res[i+lo:i+len(b)])
	}
	return res
}

// MulClassical returns p * q using the schoolbook algorithm.
func (p Poly) MulClassical(q Poly) Poly {
	p.assertSameMod(q)
	if len(p.Coeffs) == 0 || len(q.Coeffs) == 0 {
		return NewPoly(p.Mod)
	}
	return Poly{Mod: p.Mod, Coeffs: normalise(mulClassical(p.Mod, p.Coeffs, q.Coeffs))}
}

// MulKS returns p * q using Kronecker substitution.
func (p Poly) MulKS(q Poly) Poly {
	p.assertSameMod(q)
	if len(p.Coeffs) == 0 || len(q.Coeffs) == 0 {
		return NewPoly(p.Mod)
	}
	return Poly{Mod: p.Mod, Coeffs: normalise(mulKS(p.Mod, p.Coeffs, q.Coeffs))}
}

// Mul returns p * q, selecting the algorithm from the operand lengths.
func (p Poly) Mul(q Poly) Poly {
	p.assertSameMod(q)
	return Poly{Mod: p.Mod, Coeffs: normalise(mul(p.Mod, p.Coeffs, q.Coeffs))}
}

// MulLow returns p * q truncated to length n, that is modulo x^n.
func (p Poly) MulLow(q Poly, n int) Poly {
	p.assertSameMod(q)
	return Poly{Mod: p.Mod, Coeffs: normalise(mullow(p.Mod, p.Coeffs, q.Coeffs, n))}
}

// MulLowClassical returns p * q modulo x^n using the schoolbook algorithm.
func (p Poly) MulLowClassical(q Poly, n int) Poly {
	p.assertSameMod(q)
	a, b := p.Coeffs, q.Coeffs
	if len(a) == 0 || len(b) == 0 || n <= 0 {
		return NewPoly(p.Mod)
	}
	if len(a) > n {
		a = a[:n]
	}
	if len(b) > n {
		b = b[:n]
	}
	return Poly{Mod: p.Mod, Coeffs: normalise(mullowClassical(p.Mod, a, b, n))}
}

// MulLowKS returns p * q modulo x^n using Kronecker substitution.
func (p Poly) MulLowKS(q Poly, n int) Poly {
	p.assertSameMod(q)
	if len(p.Coeffs) == 0 || len(q.Coeffs) == 0 || n <= 0 {
		return NewPoly(p.Mod)
	}
	res := mulKS(p.Mod, p.Coeffs, q.Coeffs)
	if len(res) > n {
		res = res[:n]
	}
	return Poly{Mod: p.Mod, Coeffs: normalise(res)}
}

// MulHigh returns p * q with the coefficients of degree below start zeroed
// out. The coefficients of degree start and above match the full product.
func (p Poly) MulHigh(q Poly, start int) Poly {
	p.assertSameMod(q)
	if len(p.Coeffs) == 0 || len(q.Coeffs) == 0 || start < 0 {
		return p.Mul(q)
	}
	if utils.Min(len(p.Coeffs), len(q.Coeffs)) < mulKSCutoff {
		return Poly{Mod: p.Mod, Coeffs: normalise(mulhighClassical(p.Mod, p.Coeffs, q.Coeffs, start))}
	}
	res := mul(p.Mod, p.Coeffs, q.Coeffs)
	for i := 0; i < start && i < len(res); i++ {
		res[i] = 0
	}
	return Poly{Mod: p.Mod, Coeffs: normalise(res)}
}

// MulHighClassical returns p * q with the coefficients of degree below
// start zeroed out, using the schoolbook algorithm.
func (p Poly) MulHighClassical(q Poly, start int) Poly {
	p.assertSameMod(q)
	if len(p.Coeffs) == 0 || len(q.Coeffs) == 0 {
		return NewPoly(p.Mod)
	}
	if start < 0 {
		start = 0
	}
	return Poly{Mod: p.Mod, Coeffs: normalise(mulhighClassical(p.Mod, p.Coeffs, q.Coeffs, start))}
}

// MulMod returns p * q reduced modulo f. Panics if f is zero or if its
// leading coefficient is not invertible.
func (p Poly) MulMod(q, f Poly) Poly {
	return p.Mul(q).Rem(f)
}
