package fqzech

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/vneiger/flint2/nmod"
	"github.com/vneiger/flint2/nmodpoly"
	"github.com/vneiger/flint2/utils/sampling"
)

var testFields = []struct {
	p uint64
	d int
}{
	{2, 1}, {2, 2}, {2, 3}, {2, 10}, {3, 2}, {3, 5}, {5, 2}, {7, 1}, {31, 1},
}

func testString(opname string, p uint64, d int) string {
	return fmt.Sprintf("%s/GF(%d^%d)", opname, p, d)
}

func testPRNG(t *testing.T) sampling.PRNG {
	prng, err := sampling.NewKeyedPRNG(sampling.DeriveKey("fqzech test vectors"))
	require.NoError(t, err)
	return prng
}

func TestNewCtx(t *testing.T) {
	for _, tc := range testFields {
		t.Run(testString("ctx", tc.p, tc.d), func(t *testing.T) {
			ctx, err := NewCtx(tc.p, tc.d)
			require.NoError(t, err)

			q := uint64(1)
			for i := 0; i < tc.d; i++ {
				q *= tc.p
			}
			require.Equal(t, tc.p, ctx.P())
			require.Equal(t, tc.d, ctx.Degree())
			require.Equal(t, q, ctx.Order())

			modulus := ctx.Modulus()
			require.Equal(t, tc.d, modulus.Degree())
			require.Equal(t, uint64(1), modulus.LeadingCoeff())
			require.True(t, modulus.IsIrreducible())

			// the generator has full multiplicative order
			g := ctx.Gen()
			require.True(t, ctx.IsOne(ctx.Pow(g, q-1)))
			for k := uint64(1); k < q-1; k++ {
				require.False(t, ctx.IsOne(ctx.Pow(g, k)))
			}

			// context derivation is deterministic in (p, d)
			again, err := NewCtx(tc.p, tc.d)
			require.NoError(t, err)
			require.Equal(t, ctx.Literal(), again.Literal())
		})
	}
}

func TestNewCtxErrors(t *testing.T) {
	_, err := NewCtx(4, 2)
	require.Error(t, err)
	_, err = NewCtx(2, 0)
	require.Error(t, err)
	_, err = NewCtx(2, 21)
	require.Error(t, err)
	_, err = NewCtx(1048583, 1)
	require.Error(t, err)

	mod2, err := nmod.NewModulus(2)
	require.NoError(t, err)
	mod3, err := nmod.NewModulus(3)
	require.NoError(t, err)
	mod91, err := nmod.NewModulus(91)
	require.NoError(t, err)

	_, err = NewCtxModulus(nmodpoly.NewPolyFromCoeffs(mod2, 0, 0, 1))
	require.Error(t, err)
	_, err = NewCtxModulus(nmodpoly.NewPolyFromCoeffs(mod3, 1, 0, 2))
	require.Error(t, err)
	_, err = NewCtxModulus(nmodpoly.NewPolyFromCoeffs(mod3, 1))
	require.Error(t, err)
	_, err = NewCtxModulus(nmodpoly.NewPolyFromCoeffs(mod91, 1, 0, 1))
	require.Error(t, err)
}

func TestArithmetic(t *testing.T) {
	for _, tc := range []struct {
		p uint64
		d int
	}{{2, 1}, {2, 3}, {3, 2}, {5, 2}, {7, 1}} {
		t.Run(testString("arith", tc.p, tc.d), func(t *testing.T) {
			ctx, err := NewCtx(tc.p, tc.d)
			require.NoError(t, err)
			q := ctx.Order()

			for i := uint64(0); i < q; i++ {
				a := Elem{Log: i}
				pa := ctx.Poly(a)
				require.Less(t, pa.Degree(), ctx.Degree())
				require.True(t, ctx.FromPoly(pa).Equal(a))
				require.True(t, ctx.Neg(a).Equal(ctx.FromPoly(pa.Neg())))
				require.True(t, ctx.IsZero(ctx.Add(a, ctx.Neg(a))))

				if !ctx.IsZero(a) {
					require.True(t, ctx.IsOne(ctx.Mul(a, ctx.Inv(a))))
				}

				// the q-th power map is the identity
				require.True(t, ctx.Pow(a, q).Equal(a))

				for j := uint64(0); j < q; j++ {
					b := Elem{Log: j}
					pb := ctx.Poly(b)
					require.True(t, ctx.Add(a, b).Equal(ctx.FromPoly(pa.Add(pb))))
					require.True(t, ctx.Sub(a, b).Equal(ctx.FromPoly(pa.Sub(pb))))
					require.True(t, ctx.Mul(a, b).Equal(ctx.FromPoly(pa.Mul(pb))))
					if !ctx.IsZero(b) {
						require.True(t, ctx.Mul(ctx.Div(a, b), b).Equal(a))
					}
				}
			}
		})
	}
}

func TestPow(t *testing.T) {
	prng := testPRNG(t)
	for _, tc := range testFields {
		t.Run(testString("pow", tc.p, tc.d), func(t *testing.T) {
			ctx, err := NewCtx(tc.p, tc.d)
			require.NoError(t, err)

			a := ctx.RandTest(prng)
			want := ctx.One()
			for e := uint64(0); e < 16; e++ {
				require.True(t, ctx.Pow(a, e).Equal(want))
				want = ctx.Mul(want, a)
			}

			require.True(t, ctx.IsOne(ctx.Pow(ctx.Zero(), 0)))
			require.True(t, ctx.IsZero(ctx.Pow(ctx.Zero(), 3)))
		})
	}
}

func TestNeg(t *testing.T) {
	prng := testPRNG(t)
	for _, tc := range testFields {
		t.Run(testString("neg", tc.p, tc.d), func(t *testing.T) {
			ctx, err := NewCtx(tc.p, tc.d)
			require.NoError(t, err)

			// negating in place matches negating into a fresh element
			for i := 0; i < 200; i++ {
				a := ctx.RandTest(prng)
				b := a
				c := ctx.Neg(b)
				b = ctx.Neg(b)
				require.True(t, b.Equal(c))
			}

			for i := 0; i < 200; i++ {
				a, b := ctx.RandTest(prng), ctx.RandTest(prng)
				require.True(t, ctx.Sub(a, b).Equal(ctx.Add(a, ctx.Neg(b))))
			}
		})
	}
}

func TestRandTest(t *testing.T) {
	prng := testPRNG(t)
	ctx, err := NewCtx(2, 2)
	require.NoError(t, err)

	seen := make(map[uint64]int)
	for i := 0; i < 256; i++ {
		a := ctx.RandTest(prng)
		require.LessOrEqual(t, a.Log, ctx.Order()-1)
		seen[a.Log]++
	}
	require.Len(t, seen, 4)
}

func TestString(t *testing.T) {
	mod3, err := nmod.NewModulus(3)
	require.NoError(t, err)
	ctx, err := NewCtxModulus(nmodpoly.NewPolyFromCoeffs(mod3, 1, 0, 1))
	require.NoError(t, err)

	for want, coeffs := range map[string][]uint64{
		"0":     {},
		"1":     {1},
		"2":     {2},
		"a":     {0, 1},
		"a+1":   {1, 1},
		"a+2":   {2, 1},
		"2*a":   {0, 2},
		"2*a+1": {1, 2},
		"2*a+2": {2, 2},
	} {
		got := ctx.String(ctx.FromPoly(nmodpoly.NewPolyFromCoeffs(mod3, coeffs...)))
		require.Equal(t, want, got)
	}
}

func TestLiteral(t *testing.T) {
	ctx, err := NewCtx(3, 2)
	require.NoError(t, err)

	data, err := json.Marshal(ctx)
	require.NoError(t, err)

	var decoded Ctx
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Empty(t, cmp.Diff(ctx.Literal(), decoded.Literal()))

	// the rebuilt context agrees element for element
	for i := uint64(0); i < ctx.Order(); i++ {
		a := Elem{Log: i}
		require.Equal(t, ctx.String(a), decoded.String(a))
	}

	// an empty modulus falls back to the derived one
	derived, err := NewCtxFromLiteral(CtxLiteral{P: 3, D: 2})
	require.NoError(t, err)
	require.Equal(t, ctx.Literal(), derived.Literal())

	_, err = NewCtxFromLiteral(CtxLiteral{P: 3, D: 3, Modulus: []uint64{1, 0, 1}})
	require.Error(t, err)
}
