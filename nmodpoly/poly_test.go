package nmodpoly

import (
	"bytes"
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vneiger/flint2/nmod"
	"github.com/vneiger/flint2/utils/buffer"
	"github.com/vneiger/flint2/utils/sampling"
)

var testModuli = []uint64{
	2,
	31,
	91,
	12289,
	1 << 20,
	0x3ee0001,
	0x1fffffffffe00001,
	4611686018427387847,
}

func testString(opname string, q uint64) string {
	return fmt.Sprintf("%s/q=%d", opname, q)
}

func testPRNG(t testing.TB) sampling.PRNG {
	prng, err := sampling.NewKeyedPRNG(sampling.DeriveKey("nmodpoly test vectors"))
	require.NoError(t, err)
	return prng
}

func testModulus(t testing.TB, q uint64) nmod.Modulus {
	mod, err := nmod.NewModulus(q)
	require.NoError(t, err)
	return mod
}

func TestNewPoly(t *testing.T) {
	mod := testModulus(t, 31)

	z := NewPoly(mod)
	require.True(t, z.IsZero())
	require.Equal(t, -1, z.Degree())
	require.Equal(t, 0, z.Length())
	require.Equal(t, uint64(0), z.LeadingCoeff())

	p := NewPolyFromCoeffs(mod, 1, 2, 3)
	require.Equal(t, 2, p.Degree())
	require.Equal(t, uint64(3), p.LeadingCoeff())
	require.Equal(t, uint64(31), p.Modulus())

	// coefficients are reduced and trailing zeros trimmed
	require.True(t, NewPolyFromCoeffs(mod, 32, 62).Equal(NewPolyFromCoeffs(mod, 1)))
	require.True(t, NewPolyFromCoeffs(mod, 0, 0).IsZero())

	require.True(t, NewPolyFromCoeffs(mod, 1).IsOne())
	require.True(t, NewPolyFromCoeffs(mod, 0, 1).IsGen())
	require.False(t, NewPolyFromCoeffs(mod, 1, 1).IsGen())
}

func TestSetCoeff(t *testing.T) {
	mod := testModulus(t, 31)

	p := NewPoly(mod)
	p.SetCoeff(3, 1)
	require.Equal(t, "4 31  0 0 0 1", p.String())
	require.Equal(t, uint64(0), p.Coeff(2))
	require.Equal(t, uint64(0), p.Coeff(100))

	// values reduce on write
	p.SetCoeff(5, 17+31)
	require.Equal(t, uint64(17), p.Coeff(5))
	require.Equal(t, 5, p.Degree())

	// clearing the top coefficient renormalizes
	p.SetCoeff(5, 0)
	require.Equal(t, 3, p.Degree())

	// writing zero past the end is a no-op
	p.SetCoeff(40, 62)
	require.Equal(t, 3, p.Degree())

	p.SetCoeffInt64(0, -1)
	require.Equal(t, uint64(30), p.Coeff(0))

	require.Panics(t, func() { p.SetCoeff(-1, 0) })
	require.Panics(t, func() { p.Coeff(-1) })
}

func TestTruncateRealloc(t *testing.T) {
	mod := testModulus(t, 31)

	p := NewPolyFromCoeffs(mod, 1, 0, 2, 3)
	p.Truncate(10)
	require.Equal(t, 3, p.Degree())

	p.Truncate(3)
	require.Equal(t, 2, p.Degree())

	// truncation renormalizes across interior zeros
	p.Truncate(2)
	require.Equal(t, 0, p.Degree())

	p.Truncate(0)
	require.True(t, p.IsZero())

	q := NewPolyFromCoeffs(mod, 1, 2, 3, 4)
	q.Realloc(2)
	require.Equal(t, 1, q.Degree())
	require.Equal(t, 2, cap(q.Coeffs))

	q.Realloc(16)
	require.Equal(t, 1, q.Degree())
	require.Equal(t, 16, cap(q.Coeffs))

	q.Realloc(0)
	require.True(t, q.IsZero())

	var z Poly
	z.Set(NewPolyFromCoeffs(mod, 5, 6))
	require.Equal(t, "2 31  5 6", z.String())
	z.Zero()
	require.True(t, z.IsZero())
}

func TestShiftReverse(t *testing.T) {
	mod := testModulus(t, 31)
	p := NewPolyFromCoeffs(mod, 1, 2, 3)

	require.Equal(t, "5 31  0 0 1 2 3", p.ShiftLeft(2).String())
	require.Equal(t, "2 31  2 3", p.ShiftRight(1).String())
	require.True(t, p.ShiftRight(3).IsZero())
	require.True(t, p.ShiftLeft(2).ShiftRight(2).Equal(p))
	require.True(t, NewPoly(mod).ShiftLeft(4).IsZero())

	require.Equal(t, "3 31  3 2 1", p.Reverse(3).String())
	require.Equal(t, "5 31  0 0 3 2 1", p.Reverse(5).String())
	require.Equal(t, "2 31  2 1", p.Reverse(2).String())
	require.True(t, p.Reverse(0).IsZero())
	require.True(t, p.Reverse(3).Reverse(3).Equal(p))

	require.Panics(t, func() { p.ShiftLeft(-1) })
	require.Panics(t, func() { p.Reverse(-1) })
}

func TestMakeMonic(t *testing.T) {
	mod := testModulus(t, 31)

	p := NewPolyFromCoeffs(mod, 4, 0, 2)
	m := p.MakeMonic()
	require.Equal(t, uint64(1), m.LeadingCoeff())
	require.Equal(t, "3 31  2 0 1", m.String())

	require.Panics(t, func() { NewPoly(mod).MakeMonic() })

	// non-invertible leading coefficient over a composite modulus
	mod91 := testModulus(t, 91)
	require.Panics(t, func() { NewPolyFromCoeffs(mod91, 1, 7).MakeMonic() })
}

func TestMaxBits(t *testing.T) {
	mod := testModulus(t, 12289)
	require.Equal(t, 0, NewPoly(mod).MaxBits())
	require.Equal(t, 1, NewPolyFromCoeffs(mod, 1).MaxBits())
	require.Equal(t, 11, NewPolyFromCoeffs(mod, 1, 1024, 3).MaxBits())
}

func TestCopyEqual(t *testing.T) {
	mod := testModulus(t, 31)
	p := NewPolyFromCoeffs(mod, 1, 2, 3)

	q := p.CopyNew()
	require.True(t, p.Equal(q))
	q.SetCoeff(0, 7)
	require.False(t, p.Equal(q))
	require.Equal(t, uint64(1), p.Coeff(0))

	// same coefficients, different modulus
	r := NewPolyFromCoeffs(testModulus(t, 37), 1, 2, 3)
	require.False(t, p.Equal(r))
	require.Panics(t, func() { p.Add(r) })
}

func TestParse(t *testing.T) {
	p, err := Parse("4 31  0 0 0 1")
	require.NoError(t, err)
	require.Equal(t, 3, p.Degree())
	require.Equal(t, uint64(1), p.Coeff(3))
	require.Equal(t, "4 31  0 0 0 1", p.String())

	z, err := Parse("0 31")
	require.NoError(t, err)
	require.True(t, z.IsZero())
	require.Equal(t, "0 31", z.String())

	// values reduce and trailing zeros trim
	p, err = Parse("2 31  32 33")
	require.NoError(t, err)
	require.Equal(t, "2 31  1 2", p.String())

	p, err = Parse("2 31  5 31")
	require.NoError(t, err)
	require.Equal(t, "1 31  5", p.String())

	for _, s := range []string{
		"",
		"5",
		"x 31",
		"2 x  1 1",
		"2 0  1 1",
		"2 1  1 1",
		"3 31  1 2",
		"1 31  1 2",
		"2 31  a b",
		"-2 31",
	} {
		_, err := Parse(s)
		require.Error(t, err, "input %q", s)
	}
}

func TestStringRoundTrip(t *testing.T) {
	prng := testPRNG(t)
	for _, q := range testModuli {
		mod := testModulus(t, q)
		t.Run(testString("roundtrip", q), func(t *testing.T) {
			for i := 0; i < 16; i++ {
				p := RandTest(mod, prng, 32)
				got, err := Parse(p.String())
				require.NoError(t, err)
				require.True(t, got.Equal(p))
			}
		})
	}
}

func TestSerialization(t *testing.T) {
	prng := testPRNG(t)
	for _, q := range testModuli {
		mod := testModulus(t, q)
		p := RandTest(mod, prng, 40)

		t.Run(testString("writeto/buffer", q), func(t *testing.T) {
			buf := buffer.NewBufferSize(p.BinarySize())
			n, err := p.WriteTo(buf)
			require.NoError(t, err)
			require.Equal(t, int64(p.BinarySize()), n)

			var got Poly
			m, err := got.ReadFrom(buf)
			require.NoError(t, err)
			require.Equal(t, n, m)
			require.True(t, got.Equal(p))
		})

		t.Run(testString("writeto/bufio", q), func(t *testing.T) {
			var bb bytes.Buffer
			_, err := p.WriteTo(&bb)
			require.NoError(t, err)

			var got Poly
			_, err = got.ReadFrom(&bb)
			require.NoError(t, err)
			require.True(t, got.Equal(p))
		})

		t.Run(testString("marshal", q), func(t *testing.T) {
			data, err := p.MarshalBinary()
			require.NoError(t, err)
			require.Equal(t, p.BinarySize(), len(data))

			var got Poly
			require.NoError(t, got.UnmarshalBinary(data))
			require.True(t, got.Equal(p))
		})
	}

	t.Run("invalid modulus", func(t *testing.T) {
		mod := testModulus(t, 31)
		data, err := NewPolyFromCoeffs(mod, 1, 2).MarshalBinary()
		require.NoError(t, err)
		for i := 0; i < 8; i++ {
			data[i] = 0
		}
		var got Poly
		require.Error(t, got.UnmarshalBinary(data))
	})
}

func TestBitPack(t *testing.T) {
	prng := testPRNG(t)
	for _, q := range testModuli {
		mod := testModulus(t, q)
		t.Run(testString("bitpack", q), func(t *testing.T) {
			for i := 0; i < 8; i++ {
				p := RandTestNotZero(mod, prng, 30)

				for _, width := range []int{p.MaxBits(), p.MaxBits() + 3, 64, 75} {
					z := p.BitPack(width)

					// the packed integer is the evaluation at 2^width
					expected := new(big.Int)
					base := new(big.Int).Lsh(big.NewInt(1), uint(width))
					for j := p.Degree(); j >= 0; j-- {
						expected.Mul(expected, base)
						expected.Add(expected, new(big.Int).SetUint64(p.Coeff(j)))
					}
					require.Equal(t, 0, expected.Cmp(z))

					require.True(t, BitUnpack(mod, z, width).Equal(p))
				}
			}
		})
	}

	mod := testModulus(t, 12289)
	require.Equal(t, 0, NewPoly(mod).BitPack(10).Sign())
	require.True(t, BitUnpack(mod, new(big.Int), 10).IsZero())
	require.Panics(t, func() { NewPolyFromCoeffs(mod, 1024).BitPack(5) })
	require.Panics(t, func() { BitUnpack(mod, big.NewInt(-1), 5) })
}
