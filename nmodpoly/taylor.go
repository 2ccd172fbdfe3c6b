package nmodpoly

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/vneiger/flint2/nmod"
)

// taylorShiftConvolutionCutoff is the length below which TaylorShift uses
// the quadratic in-place kernel.
const taylorShiftConvolutionCutoff = 64

// TaylorShiftHorner returns p(x + c) by repeated Horner passes over the
// coefficients.
func (p Poly) TaylorShiftHorner(c uint64) Poly {
	m := p.Mod
	c = m.Reduce(c)
	a := slices.Clone(p.Coeffs)
	if c != 0 {
		n := len(a)
		for i := 0; i < n-1; i++ {
			for j := n - 2; j >= i; j-- {
				a[j] = m.Add(a[j], m.Mul(c, a[j+1]))
			}
		}
	}
	return Poly{Mod: p.Mod, Coeffs: a}
}

// TaylorShiftConvolution returns p(x + c) as a single convolution: with
// f[i] = a[i]*i! and g[t] = c^t/t! stored in reverse, the upper half of
// f * g holds the shifted coefficients scaled by k!. It requires the
// factorials below Length(p) to be invertible and panics otherwise.
func (p Poly) TaylorShiftConvolution(c uint64) Poly {
	m := p.Mod
	c = m.Reduce(c)
	n := len(p.Coeffs)
	if n <= 1 || c == 0 {
		return p.CopyNew()
	}

	fact := make([]uint64, n)
	fact[0] = 1
	for i := 1; i < n; i++ {
		fact[i] = m.Mul(fact[i-1], m.Reduce(uint64(i)))
	}

	invTop, err := m.Inv(fact[n-1])
	if err != nil {
		panic(fmt.Errorf("factorial of %d: %w", n-1, err))
	}
	invFact := make([]uint64, n)
	invFact[n-1] = invTop
	for i := n - 1; i > 0; i-- {
		invFact[i-1] = m.Mul(invFact[i], m.Reduce(uint64(i)))
	}

	f := make([]uint64, n)
	for i := range f {
		f[i] = m.Mul(p.Coeffs[i], fact[i])
	}

	g := make([]uint64, n)
	cp := uint64(1)
	for t := 0; t < n; t++ {
		g[n-1-t] = m.Mul(cp, invFact[t])
		cp = m.Mul(cp, c)
	}

	prod := mul(m, f, g)

	res := make([]uint64, n)
	for k := 0; k < n; k++ {
		res[k] = m.Mul(prod[n-1+k], invFact[k])
	}
	return Poly{Mod: p.Mod, Coeffs: normalise(res)}
}

// TaylorShiftCompose returns p(x + c) by composing p with x + c.
func (p Poly) TaylorShiftCompose(c uint64) Poly {
	return p.Compose(NewPolyFromCoeffs(p.Mod, c, 1))
}

// TaylorShift returns p(x + c), selecting the algorithm from the length
// of p and the modulus.
func (p Poly) TaylorShift(c uint64) Poly {
	n := len(p.Coeffs)
	if n < taylorShiftConvolutionCutoff {
		return p.TaylorShiftHorner(c)
	}
	if nmod.IsPrime(p.Mod.Q) && uint64(n) <= p.Mod.Q {
		return p.TaylorShiftConvolution(c)
	}
	return p.TaylorShiftCompose(c)
}
