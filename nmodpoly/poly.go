// Package nmodpoly implements dense univariate polynomials over Z/qZ for a
// word-sized modulus q, with size-adaptive algorithms for multiplication,
// division, power series, evaluation, composition and interpolation.
//
// A Poly stores its coefficients in ascending order of degree, reduced
// modulo q, with no trailing zero coefficient. The zero polynomial has an
// empty coefficient slice and degree -1. All constructors and mutators
// maintain this normal form, and all operations assume it.
//
// Operations taking two polynomial operands require both operands to share
// the same modulus and panic otherwise. Precondition violations inside
// arithmetic (division by the zero polynomial, non-invertible leading or
// constant coefficients, repeated interpolation nodes) also panic, while
// constructors and deserialization return errors.
package nmodpoly

import (
	"fmt"
	"math/bits"

	"golang.org/x/exp/slices"

	"github.com/vneiger/flint2/nmod"
)

// Poly is a dense polynomial over Z/qZ. The coefficient of degree i is
// Coeffs[i]. Coeffs is normalized: its last entry, if any, is non-zero.
type Poly struct {
	Mod    nmod.Modulus
	Coeffs []uint64
}

// NewPoly returns the zero polynomial over Z/qZ.
func NewPoly(mod nmod.Modulus) Poly {
	return Poly{Mod: mod}
}

// NewPolyFromCoeffs returns the polynomial with the given coefficients in
// ascending order of degree. Coefficients are reduced modulo q and trailing
// zeros are trimmed.
func NewPolyFromCoeffs(mod nmod.Modulus, coeffs ...uint64) Poly {
	c := make([]uint64, len(coeffs))
	mod.ReduceVec(coeffs, c)
	return Poly{Mod: mod, Coeffs: normalise(c)}
}

// normalise trims trailing zero coefficients.
func normalise(coeffs []uint64) []uint64 {
	n := len(coeffs)
	for n > 0 && coeffs[n-1] == 0 {
		n--
	}
	return coeffs[:n]
}

// assertSameMod panics if p and q are not defined over the same modulus.
func (p Poly) assertSameMod(q Poly) {
	if p.Mod.Q != q.Mod.Q {
		panic(fmt.Errorf("mismatched moduli: %d != %d", p.Mod.Q, q.Mod.Q))
	}
}

// Length returns the number of stored coefficients, which is Degree()+1.
func (p Poly) Length() int {
	return len(p.Coeffs)
}

// Degree returns the degree of p, with the convention that the zero
// polynomial has degree -1.
func (p Poly) Degree() int {
	return len(p.Coeffs) - 1
}

// Modulus returns the modulus q.
func (p Poly) Modulus() uint64 {
	return p.Mod.Q
}

// IsZero returns true if p is the zero polynomial.
func (p Poly) IsZero() bool {
	return len(p.Coeffs) == 0
}

// IsOne returns true if p is the constant polynomial 1.
func (p Poly) IsOne() bool {
	return len(p.Coeffs) == 1 && p.Coeffs[0] == 1
}

// IsGen returns true if p is the monomial x.
func (p Poly) IsGen() bool {
	return len(p.Coeffs) == 2 && p.Coeffs[0] == 0 && p.Coeffs[1] == 1
}

// Coeff returns the coefficient of degree i, which is zero for any i
// at or above Length. Panics if i is negative.
func (p Poly) Coeff(i int) uint64 {
	if i < 0 {
		panic(fmt.Errorf("negative coefficient index: %d", i))
	}
	if i >= len(p.Coeffs) {
		return 0
	}
	return p.Coeffs[i]
}

// LeadingCoeff returns the coefficient of the highest degree term, or zero
// if p is the zero polynomial.
func (p Poly) LeadingCoeff() uint64 {
	if len(p.Coeffs) == 0 {
		return 0
	}
	return p.Coeffs[len(p.Coeffs)-1]
}

// SetCoeff sets the coefficient of degree i to v mod q, extending or
// trimming the coefficient slice as needed. Panics if i is negative.
func (p *Poly) SetCoeff(i int, v uint64) {
	if i < 0 {
		panic(fmt.Errorf("negative coefficient index: %d", i))
	}

	v = p.Mod.Reduce(v)

	if i >= len(p.Coeffs) {
		if v == 0 {
			return
		}
		for len(p.Coeffs) <= i {
			p.Coeffs = append(p.Coeffs, 0)
		}
	}

	p.Coeffs[i] = v

	if v == 0 && i == len(p.Coeffs)-1 {
		p.Coeffs = normalise(p.Coeffs)
	}
}

// SetCoeffInt64 sets the coefficient of degree i to the residue of v,
// mapping negative values to q - (-v mod q).
func (p *Poly) SetCoeffInt64(i int, v int64) {
	p.SetCoeff(i, p.Mod.ReduceInt64(v))
}

// Zero sets p to the zero polynomial, keeping the allocated storage.
func (p *Poly) Zero() {
	p.Coeffs = p.Coeffs[:0]
}

// Set sets p to a copy of q, modulus included.
func (p *Poly) Set(q Poly) {
	p.Mod = q.Mod
	p.Coeffs = append(p.Coeffs[:0], q.Coeffs...)
}

// CopyNew returns a deep copy of p.
func (p Poly) CopyNew() Poly {
	return Poly{Mod: p.Mod, Coeffs: slices.Clone(p.Coeffs)}
}

// Equal returns true if p and q have the same modulus and the same
// coefficients.
func (p Poly) Equal(q Poly) bool {
	return p.Mod.Q == q.Mod.Q && slices.Equal(p.Coeffs, q.Coeffs)
}

// Truncate discards the coefficients of degree n and above. For n at or
// above Length it is a no-op, and for n <= 0 it zeroes p.
func (p *Poly) Truncate(n int) {
	if n <= 0 {
		p.Coeffs = p.Coeffs[:0]
		return
	}
	if n < len(p.Coeffs) {
		p.Coeffs = normalise(p.Coeffs[:n])
	}
}

// Realloc resizes the storage of p to hold alloc coefficients. If alloc is
// smaller than the current length, p is truncated to length alloc.
func (p *Poly) Realloc(alloc int) {
	if alloc <= 0 {
		p.Coeffs = nil
		return
	}
	if alloc < len(p.Coeffs) {
		p.Truncate(alloc)
	}
	if cap(p.Coeffs) != alloc {
		coeffs := make([]uint64, len(p.Coeffs), alloc)
		copy(coeffs, p.Coeffs)
		p.Coeffs = coeffs
	}
}

// ShiftLeft returns p * x^k. Panics if k is negative.
func (p Poly) ShiftLeft(k int) Poly {
	if k < 0 {
		panic(fmt.Errorf("negative shift: %d", k))
	}
	if len(p.Coeffs) == 0 {
		return NewPoly(p.Mod)
	}
	coeffs := make([]uint64, len(p.Coeffs)+k)
	copy(coeffs[k:], p.Coeffs)
	return Poly{Mod: p.Mod, Coeffs: coeffs}
}

// ShiftRight returns the quotient of p by x^k, discarding the k lowest
// coefficients. Panics if k is negative.
func (p Poly) ShiftRight(k int) Poly {
	if k < 0 {
		panic(fmt.Errorf("negative shift: %d", k))
	}
	if k >= len(p.Coeffs) {
		return NewPoly(p.Mod)
	}
	return Poly{Mod: p.Mod, Coeffs: slices.Clone(p.Coeffs[k:])}
}

// Reverse returns the reversal of p viewed as a polynomial of length n,
// that is x^(n-1) * p(1/x), zero-padding or discarding coefficients of
// degree n and above as needed. Panics if n is negative.
func (p Poly) Reverse(n int) Poly {
	if n < 0 {
		panic(fmt.Errorf("negative length: %d", n))
	}
	coeffs := make([]uint64, n)
	for i := 0; i < n; i++ {
		if j := n - 1 - i; j < len(p.Coeffs) {
			coeffs[i] = p.Coeffs[j]
		}
	}
	return Poly{Mod: p.Mod, Coeffs: normalise(coeffs)}
}

// MakeMonic returns p scaled by the inverse of its leading coefficient.
// Panics if p is zero or if the leading coefficient is not invertible.
func (p Poly) MakeMonic() Poly {
	if len(p.Coeffs) == 0 {
		panic("cannot make the zero polynomial monic")
	}
	lc := p.Coeffs[len(p.Coeffs)-1]
	if lc == 1 {
		return p.CopyNew()
	}
	inv, err := p.Mod.Inv(lc)
	if err != nil {
		panic(fmt.Errorf("leading coefficient: %w", err))
	}
	return p.ScalarMul(inv)
}

// MaxBits returns the bit length of the largest coefficient of p, and zero
// for the zero polynomial.
func (p Poly) MaxBits() int {
	var max int
	for _, c := range p.Coeffs {
		if b := bits.Len64(c); b > max {
			max = b
		}
	}
	return max
}
