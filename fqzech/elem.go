package fqzech

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/vneiger/flint2/nmod"
	"github.com/vneiger/flint2/nmodpoly"
	"github.com/vneiger/flint2/utils/sampling"
)

// Elem is a field element in Zech representation: the discrete logarithm
// of the element in base the context generator, with q-1 encoding zero.
// An Elem is only meaningful together with the context that produced it.
type Elem struct {
	Log uint64
}

// Zero returns the additive identity.
func (c *Ctx) Zero() Elem {
	return Elem{Log: c.q - 1}
}

// One returns the multiplicative identity.
func (c *Ctx) One() Elem {
	return Elem{}
}

// Gen returns the multiplicative generator.
func (c *Ctx) Gen() Elem {
	if c.q == 2 {
		return c.One()
	}
	return Elem{Log: 1}
}

// IsZero returns true if a is zero.
func (c *Ctx) IsZero(a Elem) bool {
	return a.Log == c.q-1
}

// IsOne returns true if a is one.
func (c *Ctx) IsOne(a Elem) bool {
	return a.Log == 0
}

// Equal returns true if a and b are the same element.
func (a Elem) Equal(b Elem) bool {
	return a.Log == b.Log
}

// Add returns a + b, as g^a * (1 + g^(b-a)) through the Zech table.
func (c *Ctx) Add(a, b Elem) Elem {
	if c.IsZero(a) {
		return b
	}
	if c.IsZero(b) {
		return a
	}
	r := c.q - 1
	t := c.zech[(b.Log+r-a.Log)%r]
	if t == r {
		return c.Zero()
	}
	return Elem{Log: (a.Log + t) % r}
}

// Neg returns -a. Over characteristic two this is a itself, otherwise -1
// is the unique element of multiplicative order two, g^((q-1)/2).
func (c *Ctx) Neg(a Elem) Elem {
	if c.fp.Q == 2 || c.IsZero(a) {
		return a
	}
	r := c.q - 1
	return Elem{Log: (a.Log + r/2) % r}
}

// Sub returns a - b.
func (c *Ctx) Sub(a, b Elem) Elem {
	return c.Add(a, c.Neg(b))
}

// Mul returns a * b.
func (c *Ctx) Mul(a, b Elem) Elem {
	if c.IsZero(a) || c.IsZero(b) {
		return c.Zero()
	}
	return Elem{Log: (a.Log + b.Log) % (c.q - 1)}
}

// Inv returns 1/a. Panics if a is zero.
func (c *Ctx) Inv(a Elem) Elem {
	if c.IsZero(a) {
		panic("inverse of the zero element")
	}
	r := c.q - 1
	return Elem{Log: (r - a.Log) % r}
}

// Div returns a / b. Panics if b is zero.
func (c *Ctx) Div(a, b Elem) Elem {
	if c.IsZero(b) {
		panic("division by the zero element")
	}
	if c.IsZero(a) {
		return a
	}
	r := c.q - 1
	return Elem{Log: (a.Log + r - b.Log) % r}
}

// Pow returns a^e, with a^0 = 1 for any a.
func (c *Ctx) Pow(a Elem, e uint64) Elem {
	if c.IsZero(a) {
		if e == 0 {
			return c.One()
		}
		return a
	}
	r := c.q - 1
	return Elem{Log: (a.Log * (e % r)) % r}
}

// RandTest returns an element drawn uniformly from the field.
func (c *Ctx) RandTest(prng sampling.PRNG) Elem {
	mask := uint64(1)<<bits.Len64(c.q-1) - 1
	return Elem{Log: nmod.RandUniform(prng, c.q, mask)}
}

// Poly returns the polynomial representative of a, of degree below d.
func (c *Ctx) Poly(a Elem) nmodpoly.Poly {
	if c.IsZero(a) {
		return nmodpoly.NewPoly(c.fp)
	}
	return c.decode(c.powEnc[a.Log])
}

// FromPoly returns the element represented by f, reducing f by the
// defining polynomial. Panics if f is not defined over F_p.
func (c *Ctx) FromPoly(f nmodpoly.Poly) Elem {
	if f.Modulus() != c.fp.Q {
		panic(fmt.Errorf("mismatched moduli: %d != %d", f.Modulus(), c.fp.Q))
	}
	r := f.Rem(c.modulus)
	if r.IsZero() {
		return c.Zero()
	}
	return Elem{Log: c.logs[c.encode(r)]}
}

// String renders a as a polynomial in the field variable, for example
// "2*a^2+a+3", with "0" for the zero element.
func (c *Ctx) String(a Elem) string {
	f := c.Poly(a)
	if f.IsZero() {
		return "0"
	}
	var sb strings.Builder
	for i := f.Degree(); i >= 0; i-- {
		coeff := f.Coeff(i)
		if coeff == 0 {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('+')
		}
		if coeff != 1 || i == 0 {
			fmt.Fprintf(&sb, "%d", coeff)
			if i > 0 {
				sb.WriteByte('*')
			}
		}
		if i == 1 {
			sb.WriteByte('a')
		} else if i > 1 {
			fmt.Fprintf(&sb, "a^%d", i)
		}
	}
	return sb.String()
}
