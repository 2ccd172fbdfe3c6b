package nmodpoly

// Pow returns p^e by binary exponentiation, with p^0 = 1 for every p.
func (p Poly) Pow(e uint64) Poly {
	if e == 0 {
		return NewPolyFromCoeffs(p.Mod, 1)
	}
	if len(p.Coeffs) == 0 {
		return NewPoly(p.Mod)
	}

	res := NewPolyFromCoeffs(p.Mod, 1)
	base := p.CopyNew()
	for ; e > 0; e >>= 1 {
		if e&1 == 1 {
			res = res.Mul(base)
		}
		if e > 1 {
			base = base.Mul(base)
		}
	}
	return res
}

// PowTrunc returns p^e modulo x^n by binary exponentiation with truncated
// multiplications. The result is zero for n <= 0.
func (p Poly) PowTrunc(e uint64, n int) Poly {
	if n <= 0 {
		return NewPoly(p.Mod)
	}
	if e == 0 {
		return NewPolyFromCoeffs(p.Mod, 1)
	}

	base := p.CopyNew()
	base.Truncate(n)
	if base.IsZero() {
		return NewPoly(p.Mod)
	}

	res := NewPolyFromCoeffs(p.Mod, 1)
	for ; e > 0; e >>= 1 {
		if e&1 == 1 {
			res = res.MulLow(base, n)
		}
		if e > 1 {
			base = base.MulLow(base, n)
		}
	}
	return res
}

// PowMod returns p^e modulo f by binary exponentiation with modular
// multiplications. Panics if f is zero or if its leading coefficient is
// not invertible.
func (p Poly) PowMod(e uint64, f Poly) Poly {
	p.assertSameMod(f)
	p.divisorInv(f)

	// modulo a unit everything reduces to zero
	if len(f.Coeffs) == 1 {
		return NewPoly(p.Mod)
	}
	if e == 0 {
		return NewPolyFromCoeffs(p.Mod, 1)
	}

	base := p.Rem(f)
	if base.IsZero() {
		return NewPoly(p.Mod)
	}

	res := NewPolyFromCoeffs(p.Mod, 1)
	for ; e > 0; e >>= 1 {
		if e&1 == 1 {
			res = res.MulMod(base, f)
		}
		if e > 1 {
			base = base.MulMod(base, f)
		}
	}
	return res
}
