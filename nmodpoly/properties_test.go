package nmodpoly

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/vneiger/flint2/nmod"
)

func propertyModuli(t *testing.T) []nmod.Modulus {
	return []nmod.Modulus{testModulus(t, 31), testModulus(t, 0x1fffffffffe00001)}
}

func TestArithmeticProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	moduli := propertyModuli(t)

	properties := gopter.NewProperties(parameters)

	properties.Property("classical product == Kronecker product", prop.ForAll(
		func(ac, bc []uint64) bool {
			for _, mod := range moduli {
				a := NewPolyFromCoeffs(mod, ac...)
				b := NewPolyFromCoeffs(mod, bc...)
				if !a.MulClassical(b).Equal(a.MulKS(b)) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.UInt64()),
		gen.SliceOf(gen.UInt64()),
	))

	properties.Property("a == q*d + r with deg(r) < deg(d)", prop.ForAll(
		func(ac, dc []uint64) bool {
			for _, mod := range moduli {
				a := NewPolyFromCoeffs(mod, ac...)
				d := NewPolyFromCoeffs(mod, append(dc, 1)...)
				q, r := a.DivRem(d)
				if !q.Mul(d).Add(r).Equal(a) {
					return false
				}
				if r.Degree() >= d.Degree() {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.UInt64()),
		gen.SliceOf(gen.UInt64()),
	))

	properties.Property("shifting by c then by -c is the identity", prop.ForAll(
		func(coeffs []uint64, c uint64) bool {
			for _, mod := range moduli {
				p := NewPolyFromCoeffs(mod, coeffs...)
				if !p.TaylorShift(c).TaylorShift(mod.Neg(mod.Reduce(c))).Equal(p) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.UInt64()),
		gen.UInt64(),
	))

	properties.Property("(a*b)(x) == a(x)*b(x) and (a+b)(x) == a(x)+b(x)", prop.ForAll(
		func(ac, bc []uint64, x uint64) bool {
			for _, mod := range moduli {
				a := NewPolyFromCoeffs(mod, ac...)
				b := NewPolyFromCoeffs(mod, bc...)
				ax, bx := a.Evaluate(x), b.Evaluate(x)
				if a.Mul(b).Evaluate(x) != mod.Mul(ax, bx) {
					return false
				}
				if a.Add(b).Evaluate(x) != mod.Add(ax, bx) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.UInt64()),
		gen.SliceOf(gen.UInt64()),
		gen.UInt64(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestEncodingProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	moduli := propertyModuli(t)

	properties := gopter.NewProperties(parameters)

	properties.Property("Parse(String(p)) == p", prop.ForAll(
		func(coeffs []uint64) bool {
			for _, mod := range moduli {
				p := NewPolyFromCoeffs(mod, coeffs...)
				q, err := Parse(p.String())
				if err != nil || !q.Equal(p) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.UInt64()),
	))

	properties.Property("UnmarshalBinary(MarshalBinary(p)) == p", prop.ForAll(
		func(coeffs []uint64) bool {
			for _, mod := range moduli {
				p := NewPolyFromCoeffs(mod, coeffs...)
				data, err := p.MarshalBinary()
				if err != nil {
					return false
				}
				if len(data) != p.BinarySize() {
					return false
				}
				var q Poly
				if err := q.UnmarshalBinary(data); err != nil || !q.Equal(p) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.UInt64()),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
