// Package fqzech implements arithmetic in small finite fields F_{p^d}
// through Zech logarithm tables.
//
// A context fixes a monic irreducible modulus of degree d over F_p and a
// generator g of the multiplicative group, then stores the Zech logarithms
// S[k] = log_g(1 + g^k). Field elements are discrete logarithms in base g,
// with q-1 encoding zero, so that multiplicative operations are index
// arithmetic modulo q-1 and addition is a single table lookup. The table
// size limits the field order to MaxOrder.
package fqzech

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math/big"

	"golang.org/x/exp/slices"

	"github.com/vneiger/flint2/nmod"
	"github.com/vneiger/flint2/nmodpoly"
	"github.com/vneiger/flint2/utils/factorization"
	"github.com/vneiger/flint2/utils/sampling"
)

// MaxOrder bounds the field order p^d. Beyond it the logarithm and Zech
// tables stop being a sensible representation.
const MaxOrder = 1 << 20

// Ctx holds the tables for one field F_{p^d}. It is immutable once built
// and safe for concurrent readers.
type Ctx struct {
	fp      nmod.Modulus
	d       int
	q       uint64
	modulus nmodpoly.Poly
	gen     nmodpoly.Poly

	// powEnc[k] is g^k in base-p encoding, logs is its inverse with
	// logs[0] unused, zech[k] = log_g(1 + g^k) with q-1 encoding zero.
	powEnc []uint64
	logs   []uint64
	zech   []uint64
}

// CtxLiteral is a JSON-serializable description of a field context. An
// empty Modulus lets the context derive its own irreducible polynomial,
// which is deterministic in (P, D).
type CtxLiteral struct {
	P       uint64
	D       int
	Modulus []uint64 `json:",omitempty"`
}

// NewCtx builds the field F_{p^d} over a derived irreducible modulus.
// Requires p prime, d positive and p^d at most MaxOrder.
func NewCtx(p uint64, d int) (*Ctx, error) {
	fp, err := nmod.NewModulus(p)
	if err != nil {
		return nil, fmt.Errorf("base field: %w", err)
	}
	if !nmod.IsPrime(p) {
		return nil, fmt.Errorf("characteristic must be prime, got %d", p)
	}
	if d < 1 {
		return nil, fmt.Errorf("extension degree must be positive, got %d", d)
	}
	if _, err := fieldOrder(p, d); err != nil {
		return nil, err
	}

	key := sampling.DeriveKey("fqzech modulus",
		binary.LittleEndian.AppendUint64(nil, p),
		binary.LittleEndian.AppendUint64(nil, uint64(d)))
	prng, err := sampling.NewKeyedPRNG(key)
	if err != nil {
		return nil, err
	}

	return NewCtxModulus(nmodpoly.RandTestIrreducible(fp, prng, d+1))
}

// NewCtxModulus builds the field F_{p^d} defined by the given monic
// irreducible polynomial of degree d over F_p.
func NewCtxModulus(modulus nmodpoly.Poly) (*Ctx, error) {
	p := modulus.Modulus()
	if !nmod.IsPrime(p) {
		return nil, fmt.Errorf("characteristic must be prime, got %d", p)
	}
	d := modulus.Degree()
	if d < 1 {
		return nil, fmt.Errorf("modulus must have positive degree, got %d", d)
	}
	if modulus.LeadingCoeff() != 1 {
		return nil, fmt.Errorf("modulus must be monic, got leading coefficient %d", modulus.LeadingCoeff())
	}
	if !modulus.IsIrreducible() {
		return nil, fmt.Errorf("modulus must be irreducible over F_%d", p)
	}
	q, err := fieldOrder(p, d)
	if err != nil {
		return nil, err
	}

	c := &Ctx{
		fp:      modulus.Mod,
		d:       d,
		q:       q,
		modulus: modulus.CopyNew(),
	}
	c.gen = c.findGenerator()
	c.buildTables()
	return c, nil
}

// NewCtxFromLiteral builds a context from its literal description.
func NewCtxFromLiteral(lit CtxLiteral) (*Ctx, error) {
	if len(lit.Modulus) == 0 {
		return NewCtx(lit.P, lit.D)
	}
	fp, err := nmod.NewModulus(lit.P)
	if err != nil {
		return nil, fmt.Errorf("base field: %w", err)
	}
	modulus := nmodpoly.NewPolyFromCoeffs(fp, lit.Modulus...)
	if modulus.Degree() != lit.D {
		return nil, fmt.Errorf("modulus degree %d does not match D = %d", modulus.Degree(), lit.D)
	}
	return NewCtxModulus(modulus)
}

func fieldOrder(p uint64, d int) (uint64, error) {
	q := uint64(1)
	for i := 0; i < d; i++ {
		if q > MaxOrder/p {
			return 0, fmt.Errorf("field order %d^%d exceeds the table bound %d", p, d, MaxOrder)
		}
		q *= p
	}
	return q, nil
}

// encode maps a reduced polynomial to its base-p integer encoding.
func (c *Ctx) encode(f nmodpoly.Poly) uint64 {
	var e uint64
	for i := len(f.Coeffs) - 1; i >= 0; i-- {
		e = e*c.fp.Q + f.Coeffs[i]
	}
	return e
}

// decode is the inverse of encode.
func (c *Ctx) decode(e uint64) nmodpoly.Poly {
	coeffs := make([]uint64, 0, c.d)
	for ; e > 0; e /= c.fp.Q {
		coeffs = append(coeffs, e%c.fp.Q)
	}
	return nmodpoly.Poly{Mod: c.fp, Coeffs: coeffs}
}

// findGenerator returns a generator of the multiplicative group, checking
// candidate orders against the prime factorization of q-1.
func (c *Ctx) findGenerator() nmodpoly.Poly {
	if c.q == 2 {
		return nmodpoly.NewPolyFromCoeffs(c.fp, 1)
	}

	var exps []uint64
	for _, f := range factorization.GetFactors(new(big.Int).SetUint64(c.q - 1)) {
		exps = append(exps, (c.q-1)/f.Uint64())
	}

	for e := uint64(2); e < c.q; e++ {
		cand := c.decode(e)
		isGen := true
		for _, exp := range exps {
			if cand.PowMod(exp, c.modulus).IsOne() {
				isGen = false
				break
			}
		}
		if isGen {
			return cand
		}
	}
	panic("no multiplicative generator found")
}

func (c *Ctx) buildTables() {
	r := c.q - 1

	c.powEnc = make([]uint64, r)
	c.logs = make([]uint64, c.q)
	cur := nmodpoly.NewPolyFromCoeffs(c.fp, 1)
	for k := uint64(0); k < r; k++ {
		e := c.encode(cur)
		c.powEnc[k] = e
		c.logs[e] = k
		cur = cur.MulMod(c.gen, c.modulus)
	}

	c.zech = make([]uint64, r)
	for k := uint64(0); k < r; k++ {
		e := c.powEnc[k]
		c0 := e % c.fp.Q
		e2 := e - c0 + (c0+1)%c.fp.Q
		if e2 == 0 {
			c.zech[k] = r
		} else {
			c.zech[k] = c.logs[e2]
		}
	}
}

// P returns the field characteristic.
func (c *Ctx) P() uint64 {
	return c.fp.Q
}

// Degree returns the extension degree d.
func (c *Ctx) Degree() int {
	return c.d
}

// Order returns the field order p^d.
func (c *Ctx) Order() uint64 {
	return c.q
}

// Modulus returns a copy of the defining polynomial.
func (c *Ctx) Modulus() nmodpoly.Poly {
	return c.modulus.CopyNew()
}

// GenPoly returns the multiplicative generator as a polynomial.
func (c *Ctx) GenPoly() nmodpoly.Poly {
	return c.gen.CopyNew()
}

// Literal returns the literal description of the context, including its
// modulus so that the rebuilt context matches element for element.
func (c *Ctx) Literal() CtxLiteral {
	return CtxLiteral{P: c.fp.Q, D: c.d, Modulus: slices.Clone(c.modulus.Coeffs)}
}

// MarshalJSON encodes the context as its CtxLiteral.
func (c *Ctx) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Literal())
}

// UnmarshalJSON rebuilds the context from an encoded CtxLiteral.
func (c *Ctx) UnmarshalJSON(data []byte) error {
	var lit CtxLiteral
	if err := json.Unmarshal(data, &lit); err != nil {
		return err
	}
	ctx, err := NewCtxFromLiteral(lit)
	if err != nil {
		return err
	}
	*c = *ctx
	return nil
}
