// Package theta evaluates the Jacobi theta constants theta_2, theta_3 and
// theta_4 for a real nome 0 < q < 1, by direct summation of the q-series
// on big.Float.
//
// The scope is one-dimensional constants at a real nome. This is plain
// floating-point summation with guard bits and a tail bound, not ball
// arithmetic, and there is no lattice-point enumeration behind it.
package theta

import (
	"fmt"
	"math"
	"math/big"

	"github.com/vneiger/flint2/utils/bignum"
)

// guardBits pads the working precision of the series accumulators.
const guardBits = 32

func checkNome(q *big.Float) error {
	if q == nil || q.Sign() <= 0 || q.Cmp(big.NewFloat(1)) >= 0 {
		return fmt.Errorf("nome must lie in (0, 1), got %v", q)
	}
	return nil
}

// termCount returns the summation cutoff n: past it the terms q^(k^2)
// drop below 2^-(prec+8) even after the geometric tail factor 1/(1-q).
func termCount(q *big.Float, prec uint) (int, error) {
	const p = 64
	qq := bignum.NewFloat(q, p)
	gap := new(big.Float).Sub(bignum.NewFloat(1, p), qq)
	if gap.Sign() <= 0 {
		return 0, fmt.Errorf("nome %v is too close to one for precision %d", q, prec)
	}
	num := new(big.Float).Mul(bignum.NewFloat(float64(prec)+8, p), bignum.Log(bignum.NewFloat(2, p)))
	num.Sub(num, bignum.Log(gap))
	num.Quo(num, new(big.Float).Neg(bignum.Log(qq)))
	f, _ := num.Float64()
	if !(f >= 0) || f > 1e12 {
		return 0, fmt.Errorf("nome %v is too close to one for precision %d", q, prec)
	}
	return int(math.Sqrt(f)) + 1, nil
}

// Nome returns exp(-pi*tau), the nome of purely imaginary lattice
// parameter tau*i, with prec bits of precision.
func Nome(tau *big.Float, prec uint) *big.Float {
	wprec := prec + guardBits
	t := bignum.NewFloat(tau, wprec)
	t.Neg(t.Mul(t, bignum.Pi(wprec)))
	return bignum.Exp(t).SetPrec(prec)
}

// Theta3 returns 1 + 2*sum_{k>=1} q^(k^2) with prec bits of precision.
func Theta3(q *big.Float, prec uint) (*big.Float, error) {
	if err := checkNome(q); err != nil {
		return nil, err
	}
	n, err := termCount(q, prec)
	if err != nil {
		return nil, err
	}

	wprec := prec + guardBits
	qq := bignum.NewFloat(q, wprec)
	qsq := new(big.Float).Mul(qq, qq)
	sum := bignum.NewFloat(1, wprec)
	term := bignum.NewFloat(1, wprec)
	ratio := new(big.Float).Set(qq)
	tmp := new(big.Float).SetPrec(wprec)

	for k := 1; k <= n; k++ {
		term.Mul(term, ratio)
		ratio.Mul(ratio, qsq)
		sum.Add(sum, tmp.Add(term, term))
	}
	return sum.SetPrec(prec), nil
}

// Theta4 returns 1 + 2*sum_{k>=1} (-1)^k q^(k^2) with prec bits of
// precision.
func Theta4(q *big.Float, prec uint) (*big.Float, error) {
	if err := checkNome(q); err != nil {
		return nil, err
	}
	n, err := termCount(q, prec)
	if err != nil {
		return nil, err
	}

	wprec := prec + guardBits
	qq := bignum.NewFloat(q, wprec)
	qsq := new(big.Float).Mul(qq, qq)
	sum := bignum.NewFloat(1, wprec)
	term := bignum.NewFloat(1, wprec)
	ratio := new(big.Float).Set(qq)
	tmp := new(big.Float).SetPrec(wprec)

	for k := 1; k <= n; k++ {
		term.Mul(term, ratio)
		ratio.Mul(ratio, qsq)
		tmp.Add(term, term)
		if k&1 == 1 {
			sum.Sub(sum, tmp)
		} else {
			sum.Add(sum, tmp)
		}
	}
	return sum.SetPrec(prec), nil
}

// Theta2 returns 2*q^(1/4)*sum_{k>=0} q^(k(k+1)) with prec bits of
// precision. The quarter power of the nome comes from bignum.Pow.
func Theta2(q *big.Float, prec uint) (*big.Float, error) {
	if err := checkNome(q); err != nil {
		return nil, err
	}
	n, err := termCount(q, prec)
	if err != nil {
		return nil, err
	}

	wprec := prec + guardBits
	qq := bignum.NewFloat(q, wprec)
	qsq := new(big.Float).Mul(qq, qq)
	sum := bignum.NewFloat(1, wprec)
	term := bignum.NewFloat(1, wprec)
	ratio := new(big.Float).Set(qsq)

	for k := 1; k <= n; k++ {
		term.Mul(term, ratio)
		ratio.Mul(ratio, qsq)
		sum.Add(sum, term)
	}

	sum.Mul(sum, bignum.Pow(qq, bignum.NewFloat(0.25, wprec)))
	sum.Add(sum, sum)
	return sum.SetPrec(prec), nil
}
