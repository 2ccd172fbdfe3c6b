package factorization

import (
	"math/big"

	"github.com/vneiger/flint2/utils/sampling"
)

// Weierstrass is an elliptic curve y^2 = x^3 + ax + b mod N.
// N is not required to be prime; when a slope denominator is not
// invertible mod N the group law fails, and the gcd revealed by the
// failure is exactly what the elliptic-curve factoring method wants.
type Weierstrass struct {
	A, B, N *big.Int
}

// Point represents an elliptic curve point in affine coordinates.
// The point at infinity is encoded as (0, 1).
type Point struct {
	X, Y *big.Int
}

// Infinity returns the identity point.
func Infinity() Point {
	return Point{X: new(big.Int), Y: new(big.Int).SetUint64(1)}
}

// IsInfinity returns true if p is the identity point.
func (p Point) IsInfinity() bool {
	return p.X.Sign() == 0 && p.Y.Cmp(new(big.Int).SetUint64(1)) == 0
}

// Add adds two points with respect to the underlying curve. This method
// does not check that the points lie on the curve. When the slope
// denominator is not invertible mod N, Add returns a zero Point along
// with gcd(denominator, N); otherwise the returned gcd is nil.
func (w Weierstrass) Add(P, Q Point) (Point, *big.Int) {

	if P.IsInfinity() {
		return Point{new(big.Int).Set(Q.X), new(big.Int).Set(Q.Y)}, nil
	}

	if Q.IsInfinity() {
		return Point{new(big.Int).Set(P.X), new(big.Int).Set(P.Y)}, nil
	}

	xP, yP := P.X, P.Y
	xQ, yQ := Q.X, Q.Y

	N := w.N

	tmp := new(big.Int)
	S := new(big.Int) // slope

	if xP.Cmp(xQ) == 0 {

		// P + (-P) = infinity
		if yP.Cmp(tmp.Sub(N, yQ)) == 0 || yP.Sign() == 0 {
			return Infinity(), nil
		}

		// S = (3*xP^2 + a)/(2*yP)
		S.Mul(xP, xP)
		S.Mod(S, N)
		S.Mul(S, new(big.Int).SetUint64(3))
		S.Add(S, w.A)
		S.Mod(S, N)
		tmp.Add(yP, yP)

	} else {

		// S = (yQ-yP)/(xQ-xP)
		S.Sub(yQ, yP)
		tmp.Sub(xQ, xP)
	}

	tmp.Mod(tmp, N)
	g := new(big.Int).GCD(nil, nil, tmp, N)
	if g.Cmp(new(big.Int).SetUint64(1)) != 0 {
		return Point{}, g
	}

	tmp.ModInverse(tmp, N)
	S.Mul(S, tmp)
	S.Mod(S, N)

	// xR = S^2 - xP - xQ
	xR := new(big.Int).Mul(S, S)
	xR.Mod(xR, N)
	xR.Sub(xR, xP)
	xR.Sub(xR, xQ)
	xR.Mod(xR, N)

	// yR = S*(xP-xR) - yP
	yR := new(big.Int).Sub(xP, xR)
	yR.Mul(yR, S)
	yR.Mod(yR, N)
	yR.Sub(yR, yP)
	yR.Mod(yR, N)

	return Point{X: xR, Y: yR}, nil
}

// ScalarMul returns k*P by double-and-add. As for Add, a failure of the
// group law returns a zero Point and the revealing gcd.
func (w Weierstrass) ScalarMul(P Point, k uint64) (Point, *big.Int) {

	R := Infinity()

	var g *big.Int
	for ; k > 0; k >>= 1 {
		if k&1 == 1 {
			if R, g = w.Add(R, P); g != nil {
				return Point{}, g
			}
		}
		if P, g = w.Add(P, P); g != nil {
			return Point{}, g
		}
	}

	return R, nil
}

// NewRandomWeierstrassCurve generates a new random Weierstrass curve
// modulo N, along with a random point that lies on the curve.
func NewRandomWeierstrassCurve(N *big.Int) (Weierstrass, Point) {

	var A, B, xG, yG *big.Int
	for {

		// Selects random values for A, xG and yG
		A = sampling.RandInt(N)
		xG = sampling.RandInt(N)
		yG = sampling.RandInt(N)

		// Deduces B from Y^2 = X^3 + A*X + B evaluated at (xG, yG)
		yGpow2 := new(big.Int).Mul(yG, yG)
		yGpow2.Mod(yGpow2, N)

		xGpow3 := new(big.Int).Mul(xG, xG)
		xGpow3.Mod(xGpow3, N)
		xGpow3.Add(xGpow3, A)
		xGpow3.Mul(xGpow3, xG)
		xGpow3.Mod(xGpow3, N)

		B = new(big.Int).Sub(yGpow2, xGpow3)
		B.Mod(B, N)

		// Rejects singular curves: 4A^3 + 27B^2 must be a unit mod N
		fourACube := new(big.Int).Mul(A, A)
		fourACube.Mod(fourACube, N)
		fourACube.Mul(fourACube, A)
		fourACube.Mod(fourACube, N)
		fourACube.Mul(fourACube, new(big.Int).SetUint64(4))
		fourACube.Mod(fourACube, N)

		twentySevenBSquare := new(big.Int).Mul(B, B)
		twentySevenBSquare.Mod(twentySevenBSquare, N)
		twentySevenBSquare.Mul(twentySevenBSquare, new(big.Int).SetUint64(27))
		twentySevenBSquare.Mod(twentySevenBSquare, N)

		discriminant := new(big.Int).Add(fourACube, twentySevenBSquare)
		discriminant.Mod(discriminant, N)

		if discriminant.Sign() != 0 && new(big.Int).GCD(nil, nil, N, discriminant).Cmp(new(big.Int).SetUint64(1)) == 0 {
			return Weierstrass{
				A: A,
				B: B,
				N: N,
			}, Point{X: xG, Y: yG}
		}
	}
}
