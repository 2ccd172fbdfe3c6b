package padic

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vneiger/flint2/utils/sampling"
)

func testCtx(t *testing.T, p uint64, n int) *Ctx {
	ctx, err := NewCtx(new(big.Int).SetUint64(p), n)
	require.NoError(t, err)
	return ctx
}

func testPRNG(t *testing.T) sampling.PRNG {
	prng, err := sampling.NewKeyedPRNG(sampling.DeriveKey("padic test vectors"))
	require.NoError(t, err)
	return prng
}

func TestNewCtx(t *testing.T) {
	ctx := testCtx(t, 5, 4)
	require.Equal(t, uint64(5), ctx.P().Uint64())
	require.Equal(t, 4, ctx.N())

	// P returns a copy
	ctx.P().SetUint64(7)
	require.Equal(t, uint64(5), ctx.P().Uint64())

	_, err := NewCtx(big.NewInt(4), 3)
	require.Error(t, err)
	_, err = NewCtx(big.NewInt(5), 0)
	require.Error(t, err)
	_, err = NewCtx(nil, 3)
	require.Error(t, err)
}

func TestCanonical(t *testing.T) {
	ctx := testCtx(t, 5, 4)

	require.True(t, ctx.New().IsZero())
	require.True(t, ctx.SetUint64(0).IsZero())
	require.True(t, ctx.SetUint64(625).IsZero())
	require.True(t, ctx.SetUint64(1250).IsZero())
	require.Equal(t, 0, ctx.New().Valuation())

	a := ctx.SetUint64(75)
	require.Equal(t, 2, a.Valuation())
	require.Equal(t, uint64(3), a.Unit().Uint64())
	require.Equal(t, uint64(75), ctx.BigInt(a).Uint64())

	// construction reduces modulo p^N
	require.True(t, a.Equal(ctx.SetUint64(625+75)))

	// the unit lives in [0, p^(N-val))
	d := ctx.SetUint64(5 * 26)
	require.Equal(t, 1, d.Valuation())
	require.Equal(t, uint64(26), d.Unit().Uint64())

	// negative inputs map to the canonical representative
	c := ctx.SetBigInt(big.NewInt(-1))
	require.Equal(t, 0, c.Valuation())
	require.Equal(t, uint64(624), ctx.BigInt(c).Uint64())
}

func TestArithmetic(t *testing.T) {
	prng := testPRNG(t)
	ctx := testCtx(t, 7, 6)
	pn := new(big.Int).Exp(big.NewInt(7), big.NewInt(6), nil)

	for i := 0; i < 50; i++ {
		x, y := sampling.ReadUint64(prng), sampling.ReadUint64(prng)
		a, b := ctx.SetUint64(x), ctx.SetUint64(y)
		bx := new(big.Int).SetUint64(x)
		by := new(big.Int).SetUint64(y)

		sum := new(big.Int).Add(bx, by)
		require.Zero(t, ctx.BigInt(ctx.Add(a, b)).Cmp(sum.Mod(sum, pn)))

		prod := new(big.Int).Mul(bx, by)
		require.Zero(t, ctx.BigInt(ctx.Mul(a, b)).Cmp(prod.Mod(prod, pn)))

		diff := new(big.Int).Sub(bx, by)
		require.Zero(t, ctx.BigInt(ctx.Sub(a, b)).Cmp(diff.Mod(diff, pn)))

		require.True(t, ctx.Add(a, b).Equal(ctx.Add(b, a)))
		require.True(t, ctx.Add(a, ctx.Neg(a)).IsZero())
		require.True(t, ctx.Sub(a, a).IsZero())
	}

	// valuations add under multiplication and cap at the precision
	require.Equal(t, 3, ctx.Mul(ctx.SetUint64(7), ctx.SetUint64(49)).Valuation())
	require.True(t, ctx.Mul(ctx.SetUint64(2401), ctx.SetUint64(343)).IsZero())
}

func TestString(t *testing.T) {
	ctx := testCtx(t, 5, 4)
	require.Equal(t, "0", ctx.String(ctx.New()))
	require.Equal(t, "3", ctx.String(ctx.SetUint64(3)))
	require.Equal(t, "2*5", ctx.String(ctx.SetUint64(10)))
	require.Equal(t, "3*5^2", ctx.String(ctx.SetUint64(75)))
}

func TestLog(t *testing.T) {
	ctx := testCtx(t, 5, 4)

	l, err := ctx.Log(ctx.SetUint64(1))
	require.NoError(t, err)
	require.True(t, l.IsZero())

	// log(6) = 5 - 5^2/2 + 5^3/3 - ... = 111*5 mod 5^4
	l, err = ctx.Log(ctx.SetUint64(6))
	require.NoError(t, err)
	require.Equal(t, 1, l.Valuation())
	require.Equal(t, uint64(111), l.Unit().Uint64())
	require.Equal(t, uint64(555), ctx.BigInt(l).Uint64())

	_, err = ctx.Log(ctx.SetUint64(2))
	require.Error(t, err)
	_, err = ctx.Log(ctx.New())
	require.Error(t, err)

	// p = 2 needs ord_2(a - 1) >= 2
	ctx2 := testCtx(t, 2, 8)
	_, err = ctx2.Log(ctx2.SetUint64(3))
	require.Error(t, err)
	_, err = ctx2.Log(ctx2.SetUint64(5))
	require.NoError(t, err)
}

func TestExp(t *testing.T) {
	ctx := testCtx(t, 5, 4)

	e, err := ctx.Exp(ctx.New())
	require.NoError(t, err)
	require.Equal(t, uint64(1), ctx.BigInt(e).Uint64())

	// exp(5) = 1 + 5 + 5^2/2 + 5^3/6 = 456 mod 5^4
	e, err = ctx.Exp(ctx.SetUint64(5))
	require.NoError(t, err)
	require.Equal(t, uint64(456), ctx.BigInt(e).Uint64())

	_, err = ctx.Exp(ctx.SetUint64(3))
	require.Error(t, err)

	ctx2 := testCtx(t, 2, 5)
	_, err = ctx2.Exp(ctx2.SetUint64(2))
	require.Error(t, err)

	// exp(4) = 1 + 4 + 4^2/2 = 13 mod 2^5
	e, err = ctx2.Exp(ctx2.SetUint64(4))
	require.NoError(t, err)
	require.Equal(t, uint64(13), ctx2.BigInt(e).Uint64())
}

func TestLogExpRoundTrip(t *testing.T) {
	prng := testPRNG(t)
	for _, tc := range []struct {
		p uint64
		n int
	}{{3, 4}, {3, 16}, {5, 8}, {7, 40}, {13, 10}, {2, 8}, {2, 30}} {
		t.Run(fmt.Sprintf("roundtrip/p=%d/N=%d", tc.p, tc.n), func(t *testing.T) {
			ctx := testCtx(t, tc.p, tc.n)

			// smallest valuation inside the convergence domain
			scale := ctx.SetUint64(tc.p)
			if tc.p == 2 {
				scale = ctx.SetUint64(4)
			}

			for i := 0; i < 20; i++ {
				x := ctx.Mul(scale, ctx.SetUint64(sampling.ReadUint64(prng)))
				if x.IsZero() {
					continue
				}

				e, err := ctx.Exp(x)
				require.NoError(t, err)
				l, err := ctx.Log(e)
				require.NoError(t, err)
				require.True(t, l.Equal(x),
					"log(exp(x)) != x for x = %s", ctx.String(x))
			}
		})
	}
}

func TestLogMulAndExpAdd(t *testing.T) {
	prng := testPRNG(t)
	for _, p := range []uint64{3, 5, 13, 2} {
		t.Run(fmt.Sprintf("homomorphism/p=%d", p), func(t *testing.T) {
			ctx := testCtx(t, p, 12)
			one := ctx.SetUint64(1)

			scale := ctx.SetUint64(p)
			if p == 2 {
				scale = ctx.SetUint64(4)
			}

			for i := 0; i < 20; i++ {
				x := ctx.Mul(scale, ctx.SetUint64(sampling.ReadUint64(prng)))
				y := ctx.Mul(scale, ctx.SetUint64(sampling.ReadUint64(prng)))

				a := ctx.Add(one, x)
				b := ctx.Add(one, y)

				la, err := ctx.Log(a)
				require.NoError(t, err)
				lb, err := ctx.Log(b)
				require.NoError(t, err)
				lab, err := ctx.Log(ctx.Mul(a, b))
				require.NoError(t, err)
				require.True(t, lab.Equal(ctx.Add(la, lb)))

				ex, err := ctx.Exp(x)
				require.NoError(t, err)
				ey, err := ctx.Exp(y)
				require.NoError(t, err)
				exy, err := ctx.Exp(ctx.Add(x, y))
				require.NoError(t, err)
				require.True(t, exy.Equal(ctx.Mul(ex, ey)))
			}
		})
	}
}
