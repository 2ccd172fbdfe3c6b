package padic

import (
	"fmt"
	"math/big"
)

var two = big.NewInt(2)

// flog returns floor(log_p(n)) for n >= 1.
func flog(n, p int64) int {
	var e int
	for n >= p {
		n /= p
		e++
	}
	return e
}

// clog returns ceil(log_p(n)) for n >= 1.
func clog(n, p int64) int {
	if n <= 1 {
		return 0
	}
	return flog(n-1, p) + 1
}

// ordFactorial returns ord_p(k!) by Legendre's formula.
func ordFactorial(k, p int64) int {
	var s int64
	for k > 0 {
		k /= p
		s += k
	}
	return int(s)
}

// logSeriesBound returns the first index b such that ord_p(y^i / i) >= n
// holds for every i >= b, given v = ord_p(y) with 1 <= v < n. Starting
// from an upper estimate, it walks down while the cut stays valid.
func logSeriesBound(v, n int, p *big.Int) int {
	if p.IsInt64() {
		pp := p.Int64()
		c := int64(n) - int64(flog(int64(v), pp))
		b := (c + int64(clog(c, pp)) + 1 + int64(v) - 1) / int64(v)
		for b--; b >= 2; b-- {
			if b*int64(v)-int64(clog(b, pp)) < int64(n) {
				return int(b) + 1
			}
		}
		return 2
	}
	// indices below p are units, so the cut needs no log_p correction
	return (n + v - 1) / v
}

// expSeriesBound returns the first index b such that ord_p(y^i / i!) >= n
// holds for every i >= b, using ord_p(i!) <= (i-1)/(p-1). The products
// (p-1)*n and (p-1)*v can exceed a word, so the ceiling division runs on
// big integers.
func expSeriesBound(v, n int, p *big.Int) int {
	one := big.NewInt(1)
	pm1 := new(big.Int).Sub(p, one)
	num := new(big.Int).Mul(pm1, big.NewInt(int64(n)))
	num.Sub(num, one)
	den := new(big.Int).Mul(pm1, big.NewInt(int64(v)))
	den.Sub(den, one)
	num.Add(num, den)
	num.Sub(num, one)
	return int(num.Quo(num, den).Int64())
}

// logSeries returns -sum_{i>=1} y^i / i mod p^n for v = ord_p(y). The
// powers of y carry floor(log_p(b-1)) guard digits so that the division
// by each index stays exact.
func (c *Ctx) logSeries(y *big.Int, v int) *big.Int {
	b := logSeriesBound(v, c.n, c.p)
	g := 0
	if c.p.IsInt64() {
		g = flog(int64(b)-1, c.p.Int64())
	}
	m := c.pk(c.n + g)

	sum := new(big.Int)
	pow := new(big.Int).Mod(y, m)
	t := new(big.Int)
	for i := int64(1); i < int64(b); i++ {
		w, u := 0, i
		if c.p.IsInt64() {
			pp := c.p.Int64()
			for u%pp == 0 {
				u /= pp
				w++
			}
		}
		t.Quo(pow, c.pk(w))
		t.Mod(t, c.pn)
		t.Mul(t, new(big.Int).ModInverse(big.NewInt(u), c.pn))
		sum.Add(sum, t.Mod(t, c.pn))
		pow.Mul(pow, y)
		pow.Mod(pow, m)
	}
	sum.Mod(sum, c.pn)
	sum.Neg(sum)
	return sum.Mod(sum, c.pn)
}

// expSeries returns sum_{i>=0} y^i / i! mod p^n for v = ord_p(y). The
// powers of y carry ord_p((b-1)!) guard digits.
func (c *Ctx) expSeries(y *big.Int, v int) *big.Int {
	b := expSeriesBound(v, c.n, c.p)
	g := 0
	if c.p.IsInt64() {
		g = ordFactorial(int64(b)-1, c.p.Int64())
	}
	m := c.pk(c.n + g)

	sum := big.NewInt(1)
	pow := new(big.Int).Mod(y, m)
	fac := big.NewInt(1) // unit part of i!
	t := new(big.Int)
	w := 0
	for i := int64(1); i < int64(b); i++ {
		u := i
		if c.p.IsInt64() {
			pp := c.p.Int64()
			for u%pp == 0 {
				u /= pp
				w++
			}
		}
		fac.Mul(fac, big.NewInt(u))
		fac.Mod(fac, m)
		t.Quo(pow, c.pk(w))
		t.Mod(t, c.pn)
		t.Mul(t, new(big.Int).ModInverse(fac, c.pn))
		sum.Add(sum, t.Mod(t, c.pn))
		pow.Mul(pow, y)
		pow.Mod(pow, m)
	}
	return sum.Mod(sum, c.pn)
}

// Log returns the p-adic logarithm -sum_{i>=1} (1-a)^i / i of a. The
// series converges when ord_p(a - 1) is at least 1 for odd p, at least 2
// for p = 2, and Log errors otherwise. The result is newly allocated and
// a is left untouched.
func (c *Ctx) Log(a *Int) (*Int, error) {
	y := c.BigInt(a)
	y.Sub(big.NewInt(1), y)
	y.Mod(y, c.pn)
	if y.Sign() == 0 {
		return c.New(), nil
	}
	v := c.valuation(y)
	if v < 2 && (c.p.Cmp(two) == 0 || v < 1) {
		return nil, fmt.Errorf("logarithm series diverges: ord_%v(1 - x) = %d", c.p, v)
	}
	return c.canonicalise(c.logSeries(y, v), 0), nil
}

// Exp returns the p-adic exponential sum_{i>=0} a^i / i! of a. The
// series converges when ord_p(a) is at least 1 for odd p, at least 2 for
// p = 2, and Exp errors otherwise.
func (c *Ctx) Exp(a *Int) (*Int, error) {
	if a.IsZero() {
		return c.SetUint64(1), nil
	}
	if a.val < 2 && (c.p.Cmp(two) == 0 || a.val < 1) {
		return nil, fmt.Errorf("exponential series diverges: ord_%v(x) = %d", c.p, a.val)
	}
	return c.canonicalise(c.expSeries(c.BigInt(a), a.val), 0), nil
}
