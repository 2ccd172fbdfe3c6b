package nmodpoly

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/vneiger/flint2/nmod"
	"github.com/vneiger/flint2/utils"
)

const (
	// interpolateNewtonCutoff is the point count below which Interpolate
	// uses plain Lagrange accumulation.
	interpolateNewtonCutoff = 6

	// interpolateFastCutoff is the point count above which Interpolate
	// switches to the subproduct tree.
	interpolateFastCutoff = 32
)

// interpNodes reduces the points modulo q and panics unless they form a
// valid interpolation input: matching lengths and pairwise distinct nodes.
func interpNodes(mod nmod.Modulus, xs, ys []uint64) ([]uint64, []uint64) {
	if len(xs) != len(ys) {
		panic(fmt.Errorf("mismatched point counts: %d != %d", len(xs), len(ys)))
	}
	rx := make([]uint64, len(xs))
	mod.ReduceVec(xs, rx)
	ry := make([]uint64, len(ys))
	mod.ReduceVec(ys, ry)
	if !utils.AllDistinct(rx) {
		panic("interpolation nodes must be distinct")
	}
	return rx, ry
}

// mulLinear multiplies v by x + a, returning a fresh slice one entry
// longer.
func mulLinear(m nmod.Modulus, v []uint64, a uint64) []uint64 {
	out := make([]uint64, len(v)+1)
	copy(out[1:], v)
	m.ScalarMulAddVec(v, a, out[:len(v)])
	return out
}

// nodeInv inverts a quantity derived from the interpolation nodes,
// converting a failure into a panic. Over a prime modulus the inverse
// always exists.
func nodeInv(m nmod.Modulus, v uint64) uint64 {
	inv, err := m.Inv(v)
	if err != nil {
		panic(fmt.Errorf("interpolation nodes: %w", err))
	}
	return inv
}

// interpolateLagrange accumulates the Lagrange basis polynomials one node
// at a time. Reference kernel for small inputs.
func interpolateLagrange(m nmod.Modulus, xs, ys []uint64) []uint64 {
	n := len(xs)
	res := make([]uint64, n)
	for i := 0; i < n; i++ {
		num := []uint64{1}
		den := uint64(1)
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			num = mulLinear(m, num, m.Neg(xs[j]))
			den = m.Mul(den, m.Sub(xs[i], xs[j]))
		}
		scale := m.Mul(ys[i], nodeInv(m, den))
		m.ScalarMulAddVec(num, scale, res)
	}
	return res
}

// interpolateNewton computes the divided difference table in place, then
// expands the Newton form into the monomial basis.
func interpolateNewton(m nmod.Modulus, xs, ys []uint64) []uint64 {
	n := len(xs)
	dd := slices.Clone(ys)
	for j := 1; j < n; j++ {
		for i := n - 1; i >= j; i-- {
			num := m.Sub(dd[i], dd[i-1])
			dd[i] = m.Mul(num, nodeInv(m, m.Sub(xs[i], xs[i-j])))
		}
	}

	var res []uint64
	for i := n - 1; i >= 0; i-- {
		res = mulLinear(m, res, m.Neg(xs[i]))
		res[0] = m.Add(res[0], dd[i])
	}
	return res
}

// interpolateBarycentric divides the master polynomial by each linear
// factor, scaling by the barycentric weight 1/M'(xi).
func interpolateBarycentric(m nmod.Modulus, xs, ys []uint64) []uint64 {
	n := len(xs)
	master := Poly{Mod: m, Coeffs: buildEvalTree(m, xs, 0, n).poly}

	res := make([]uint64, n)
	for i := range xs {
		li, _ := master.DivRoot(xs[i])
		di := evaluate(m, li.Coeffs, xs[i])
		m.ScalarMulAddVec(li.Coeffs, m.Mul(ys[i], nodeInv(m, di)), res)
	}
	return res
}

// interpUp combines the leaf multiples of the Lagrange basis up the
// subproduct tree: each node returns sum of ci * prod_{j != i} (x - xj)
// over its range.
func interpUp(m nmod.Modulus, nd *evalNode, c []uint64) []uint64 {
	if nd.left == nil {
		return []uint64{c[nd.lo]}
	}
	rl := interpUp(m, nd.left, c)
	rr := interpUp(m, nd.right, c)
	return add(m, mul(m, rl, nd.right.poly), mul(m, rr, nd.left.poly))
}

// interpolateFast interpolates with a subproduct tree: the weights are the
// evaluations of the derivative of the master polynomial, obtained by a
// single downward pass, and the result is combined upward.
func interpolateFast(m nmod.Modulus, xs, ys []uint64) []uint64 {
	n := len(xs)
	root := buildEvalTree(m, xs, 0, n)

	deriv := Poly{Mod: m, Coeffs: root.poly}.Derivative()
	d := make([]uint64, n)
	evalDown(m, root, deriv.Coeffs, d)

	c := make([]uint64, n)
	for i := range c {
		c[i] = m.Mul(ys[i], nodeInv(m, d[i]))
	}
	return interpUp(m, root, c)
}

// Interpolate returns the unique polynomial of length at most len(xs)
// taking value ys[i] at xs[i], selecting the algorithm from the point
// count. The nodes are reduced modulo q and must be pairwise distinct;
// the required node difference inverses must exist, which always holds
// for a prime modulus.
func Interpolate(mod nmod.Modulus, xs, ys []uint64) Poly {
	rx, ry := interpNodes(mod, xs, ys)
	n := len(rx)
	switch {
	case n == 0:
		return NewPoly(mod)
	case n < interpolateNewtonCutoff:
		return Poly{Mod: mod, Coeffs: normalise(interpolateLagrange(mod, rx, ry))}
	case n < interpolateFastCutoff:
		return Poly{Mod: mod, Coeffs: normalise(interpolateNewton(mod, rx, ry))}
	default:
		return Poly{Mod: mod, Coeffs: normalise(interpolateFast(mod, rx, ry))}
	}
}

// InterpolateNewton interpolates through divided differences.
func InterpolateNewton(mod nmod.Modulus, xs, ys []uint64) Poly {
	rx, ry := interpNodes(mod, xs, ys)
	if len(rx) == 0 {
		return NewPoly(mod)
	}
	return Poly{Mod: mod, Coeffs: normalise(interpolateNewton(mod, rx, ry))}
}

// InterpolateBarycentric interpolates through barycentric weights against
// the master polynomial.
func InterpolateBarycentric(mod nmod.Modulus, xs, ys []uint64) Poly {
	rx, ry := interpNodes(mod, xs, ys)
	if len(rx) == 0 {
		return NewPoly(mod)
	}
	return Poly{Mod: mod, Coeffs: normalise(interpolateBarycentric(mod, rx, ry))}
}

// InterpolateFast interpolates on a subproduct tree.
func InterpolateFast(mod nmod.Modulus, xs, ys []uint64) Poly {
	rx, ry := interpNodes(mod, xs, ys)
	if len(rx) == 0 {
		return NewPoly(mod)
	}
	return Poly{Mod: mod, Coeffs: normalise(interpolateFast(mod, rx, ry))}
}
