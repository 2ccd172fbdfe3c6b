package nmodpoly

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGCD(t *testing.T) {
	prng := testPRNG(t)
	for _, q := range []uint64{2, 31, 12289, 0x1fffffffffe00001} {
		mod := testModulus(t, q)
		t.Run(testString("gcd", q), func(t *testing.T) {
			a := RandTestNotZero(mod, prng, 20)
			b := RandTestNotZero(mod, prng, 20)
			c := RandTestMonic(mod, prng, 5)

			g := a.GCD(b)
			require.False(t, g.IsZero())
			require.Equal(t, uint64(1), g.LeadingCoeff())
			require.True(t, a.Rem(g).IsZero())
			require.True(t, b.Rem(g).IsZero())

			// a common factor is collected
			gc := a.Mul(c).GCD(b.Mul(c))
			require.True(t, gc.Rem(c).IsZero())
			require.True(t, gc.Rem(g).IsZero())

			require.True(t, a.GCD(NewPoly(mod)).Equal(a.MakeMonic()))
			require.True(t, NewPoly(mod).GCD(a).Equal(a.MakeMonic()))
			require.True(t, NewPoly(mod).GCD(NewPoly(mod)).IsZero())
		})
	}
}

func TestIsSquarefree(t *testing.T) {
	mod2 := testModulus(t, 2)
	mod31 := testModulus(t, 31)

	// x^2 + x = x(x+1)
	require.True(t, NewPolyFromCoeffs(mod2, 0, 1, 1).IsSquarefree())
	// x^2
	require.False(t, NewPolyFromCoeffs(mod2, 0, 0, 1).IsSquarefree())
	// (x+1)^2
	require.False(t, NewPolyFromCoeffs(mod31, 1, 2, 1).IsSquarefree())
	// x^2 + 1 is irreducible mod 31
	require.True(t, NewPolyFromCoeffs(mod31, 1, 0, 1).IsSquarefree())

	// short polynomials are squarefree by convention
	require.True(t, NewPoly(mod31).IsSquarefree())
	require.True(t, NewPolyFromCoeffs(mod31, 7).IsSquarefree())
	require.True(t, NewPolyFromCoeffs(mod31, 1, 1).IsSquarefree())

	prng := testPRNG(t)
	f := RandTestMonic(mod31, prng, 6)
	require.False(t, f.Mul(f).IsSquarefree())
}

func TestIsIrreducible(t *testing.T) {
	mod2 := testModulus(t, 2)
	mod3 := testModulus(t, 3)
	mod5 := testModulus(t, 5)
	mod31 := testModulus(t, 31)

	// -1 is not a square mod 3, but 2^2 = -1 mod 5
	require.True(t, NewPolyFromCoeffs(mod3, 1, 0, 1).IsIrreducible())
	require.False(t, NewPolyFromCoeffs(mod5, 1, 0, 1).IsIrreducible())

	// classic binary irreducibles
	require.True(t, NewPolyFromCoeffs(mod2, 1, 1, 1).IsIrreducible())
	require.True(t, NewPolyFromCoeffs(mod2, 1, 1, 0, 1).IsIrreducible())
	// x^4 + x^2 + 1 = (x^2 + x + 1)^2
	require.False(t, NewPolyFromCoeffs(mod2, 1, 0, 1, 0, 1).IsIrreducible())

	require.True(t, NewPolyFromCoeffs(mod31, 5, 1).IsIrreducible())
	require.False(t, NewPolyFromCoeffs(mod31, 7).IsIrreducible())
	require.False(t, NewPoly(mod31).IsIrreducible())

	prng := testPRNG(t)
	f := RandTestMonic(mod31, prng, 4)
	g := RandTestMonic(mod31, prng, 3)
	require.False(t, f.Mul(g).IsIrreducible())

	mod91 := testModulus(t, 91)
	require.Panics(t, func() { NewPolyFromCoeffs(mod91, 1, 0, 1).IsIrreducible() })
}

func TestRandTest(t *testing.T) {
	prng := testPRNG(t)
	for _, q := range testModuli {
		mod := testModulus(t, q)
		t.Run(testString("randtest", q), func(t *testing.T) {
			seen := 0
			for i := 0; i < 32; i++ {
				p := RandTest(mod, prng, 10)
				require.LessOrEqual(t, p.Length(), 10)
				for _, c := range p.Coeffs {
					require.Less(t, c, q)
				}
				if !p.IsZero() {
					seen++
				}
			}
			require.Greater(t, seen, 0)

			require.False(t, RandTestNotZero(mod, prng, 10).IsZero())

			p := RandTestMonic(mod, prng, 7)
			require.Equal(t, 7, p.Length())
			require.Equal(t, uint64(1), p.LeadingCoeff())
		})
	}

	t.Run("irreducible", func(t *testing.T) {
		for _, q := range []uint64{2, 31, 12289} {
			mod := testModulus(t, q)
			for _, n := range []int{2, 3, 5} {
				p := RandTestIrreducible(mod, prng, n)
				require.Equal(t, n, p.Length())
				require.Equal(t, uint64(1), p.LeadingCoeff())
				require.True(t, p.IsIrreducible())
			}
		}

		mod91 := testModulus(t, 91)
		require.Panics(t, func() { RandTestIrreducible(mod91, prng, 3) })
	})
}

func TestPow(t *testing.T) {
	prng := testPRNG(t)
	for _, q := range testModuli {
		mod := testModulus(t, q)
		t.Run(testString("pow", q), func(t *testing.T) {
			p := RandTest(mod, prng, 8)
			one := NewPolyFromCoeffs(mod, 1)

			require.True(t, p.Pow(0).Equal(one))
			require.True(t, p.Pow(1).Equal(p))

			want := one
			for e := uint64(1); e <= 6; e++ {
				want = want.Mul(p)
				require.True(t, p.Pow(e).Equal(want))
			}

			require.True(t, NewPoly(mod).Pow(5).IsZero())
			require.True(t, NewPoly(mod).Pow(0).Equal(one))
		})

		t.Run(testString("powtrunc", q), func(t *testing.T) {
			p := RandTest(mod, prng, 8)
			for _, n := range []int{0, 1, 5, 30} {
				want := p.Pow(5)
				want.Truncate(n)
				require.True(t, p.PowTrunc(5, n).Equal(want))
			}
		})

		t.Run(testString("powmod", q), func(t *testing.T) {
			f := RandTestMonic(mod, prng, 6)
			p := RandTest(mod, prng, 10)

			for _, e := range []uint64{0, 1, 2, 7} {
				require.True(t, p.PowMod(e, f).Equal(p.Pow(e).Rem(f)))
			}

			// modulo a constant everything vanishes
			require.True(t, p.PowMod(3, NewPolyFromCoeffs(mod, 1)).IsZero())
			require.Panics(t, func() { p.PowMod(3, NewPoly(mod)) })
		})
	}

	// Frobenius fixes the prime field: x^(q^d) = x modulo an irreducible
	// of degree d
	mod := testModulus(t, 31)
	f := RandTestIrreducible(mod, prng, 4)
	gen := NewPolyFromCoeffs(mod, 0, 1)
	require.True(t, gen.PowMod(31*31*31, f).Equal(gen))
}
