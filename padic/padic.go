// Package padic implements p-adic integers to a fixed absolute precision
// N, together with the p-adic logarithm and exponential.
//
// A context fixes the prime p and the precision: every value is known
// modulo p^N and stored in canonical form unit * p^val, with the unit in
// [0, p^(N-val)) and coprime to p. The zero value has a zero unit. All
// operations return newly allocated values and leave their operands
// untouched.
package padic

import (
	"fmt"
	"math/big"

	"github.com/vneiger/flint2/utils"
	"github.com/vneiger/flint2/utils/factorization"
)

// Ctx fixes the prime and the absolute precision of a family of values.
type Ctx struct {
	p  *big.Int
	n  int
	pn *big.Int
}

// Int is a p-adic integer in canonical unit * p^val form. Values are only
// meaningful together with the context that produced them.
type Int struct {
	unit *big.Int
	val  int
}

// NewCtx returns a context for arithmetic modulo p^n. Requires p prime
// and n positive.
func NewCtx(p *big.Int, n int) (*Ctx, error) {
	if p == nil || !factorization.IsPrime(p) {
		return nil, fmt.Errorf("p must be prime, got %v", p)
	}
	if n < 1 {
		return nil, fmt.Errorf("precision must be positive, got %d", n)
	}
	prime := new(big.Int).Set(p)
	return &Ctx{
		p:  prime,
		n:  n,
		pn: new(big.Int).Exp(prime, big.NewInt(int64(n)), nil),
	}, nil
}

// P returns the prime p.
func (c *Ctx) P() *big.Int {
	return new(big.Int).Set(c.p)
}

// N returns the absolute precision.
func (c *Ctx) N() int {
	return c.n
}

// pk returns p^k.
func (c *Ctx) pk(k int) *big.Int {
	return new(big.Int).Exp(c.p, big.NewInt(int64(k)), nil)
}

// valuation returns ord_p(x) for non-zero x, leaving x untouched.
func (c *Ctx) valuation(x *big.Int) int {
	var v int
	q, r, t := new(big.Int), new(big.Int), new(big.Int).Abs(x)
	for {
		q.QuoRem(t, c.p, r)
		if r.Sign() != 0 {
			return v
		}
		t.Set(q)
		v++
	}
}

// canonicalise brings u * p^v into canonical form, taking ownership of u.
func (c *Ctx) canonicalise(u *big.Int, v int) *Int {
	if u.Sign() == 0 {
		return &Int{unit: u}
	}
	q, r := new(big.Int), new(big.Int)
	for {
		q.QuoRem(u, c.p, r)
		if r.Sign() != 0 {
			break
		}
		u.Set(q)
		v++
	}
	if v >= c.n {
		return &Int{unit: u.SetInt64(0)}
	}
	u.Mod(u, c.pk(c.n-v))
	return &Int{unit: u, val: v}
}

// New returns the zero value.
func (c *Ctx) New() *Int {
	return &Int{unit: new(big.Int)}
}

// SetUint64 returns x as a p-adic integer.
func (c *Ctx) SetUint64(x uint64) *Int {
	return c.canonicalise(new(big.Int).SetUint64(x), 0)
}

// SetBigInt returns x as a p-adic integer, reduced modulo p^N.
func (c *Ctx) SetBigInt(x *big.Int) *Int {
	return c.canonicalise(new(big.Int).Set(x), 0)
}

// IsZero returns true if a is zero.
func (a *Int) IsZero() bool {
	return a.unit.Sign() == 0
}

// Unit returns a copy of the unit part of a.
func (a *Int) Unit() *big.Int {
	return new(big.Int).Set(a.unit)
}

// Valuation returns ord_p(a), with the convention that the zero value has
// valuation zero.
func (a *Int) Valuation() int {
	return a.val
}

// Equal returns true if a and b are the same value. Canonical form makes
// this a component-wise comparison.
func (a *Int) Equal(b *Int) bool {
	return a.val == b.val && a.unit.Cmp(b.unit) == 0
}

// BigInt returns the canonical representative of a in [0, p^N).
func (c *Ctx) BigInt(a *Int) *big.Int {
	if a.IsZero() {
		return new(big.Int)
	}
	return new(big.Int).Mul(a.unit, c.pk(a.val))
}

// Add returns a + b.
func (c *Ctx) Add(a, b *Int) *Int {
	if a.IsZero() {
		return &Int{unit: b.Unit(), val: b.val}
	}
	if b.IsZero() {
		return &Int{unit: a.Unit(), val: a.val}
	}
	v := utils.Min(a.val, b.val)
	s := new(big.Int).Mul(a.unit, c.pk(a.val-v))
	t := new(big.Int).Mul(b.unit, c.pk(b.val-v))
	return c.canonicalise(s.Add(s, t), v)
}

// Neg returns -a.
func (c *Ctx) Neg(a *Int) *Int {
	if a.IsZero() {
		return c.New()
	}
	u := c.pk(c.n - a.val)
	return &Int{unit: u.Sub(u, a.unit), val: a.val}
}

// Sub returns a - b.
func (c *Ctx) Sub(a, b *Int) *Int {
	return c.Add(a, c.Neg(b))
}

// Mul returns a * b.
func (c *Ctx) Mul(a, b *Int) *Int {
	if a.IsZero() || b.IsZero() {
		return c.New()
	}
	v := a.val + b.val
	if v >= c.n {
		return c.New()
	}
	u := new(big.Int).Mul(a.unit, b.unit)
	return &Int{unit: u.Mod(u, c.pk(c.n-v)), val: v}
}

// String renders a in unit*p^val form, for example "3*5^2".
func (c *Ctx) String(a *Int) string {
	if a.IsZero() {
		return "0"
	}
	switch a.val {
	case 0:
		return a.unit.String()
	case 1:
		return fmt.Sprintf("%v*%v", a.unit, c.p)
	default:
		return fmt.Sprintf("%v*%v^%d", a.unit, c.p, a.val)
	}
}
