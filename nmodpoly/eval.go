package nmodpoly

import (
	"math/bits"

	"github.com/vneiger/flint2/nmod"
	"github.com/vneiger/flint2/utils"
)

// evaluateFastCutoff is the length below which EvaluateFast falls back to
// the Horner kernel.
const evaluateFastCutoff = 16

// evaluate is the Horner kernel. The point must be reduced.
func evaluate(m nmod.Modulus, a []uint64, x uint64) uint64 {
	var acc uint64
	for i := len(a) - 1; i >= 0; i-- {
		acc = m.Add(m.Mul(acc, x), a[i])
	}
	return acc
}

// Evaluate returns p(x) by Horner's rule. The point is reduced modulo q
// first.
func (p Poly) Evaluate(x uint64) uint64 {
	return evaluate(p.Mod, p.Coeffs, p.Mod.Reduce(x))
}

// EvaluateFast returns p(x) by baby-step giant-step splitting: the
// coefficients are consumed in blocks of roughly sqrt(Length) against a
// table of small powers of x, with one giant multiplication per block.
func (p Poly) EvaluateFast(x uint64) uint64 {
	m := p.Mod
	x = m.Reduce(x)
	n := len(p.Coeffs)
	if n < evaluateFastCutoff {
		return evaluate(m, p.Coeffs, x)
	}

	k := 1 << ((bits.Len(uint(n)) + 1) / 2)

	pw := make([]uint64, k)
	pw[0] = 1
	for j := 1; j < k; j++ {
		pw[j] = m.Mul(pw[j-1], x)
	}
	giant := m.Mul(pw[k-1], x)

	var acc uint64
	for blk := (n + k - 1) / k; blk > 0; blk-- {
		base := (blk - 1) * k
		hi := utils.Min(k, n-base)

		s := p.Coeffs[base]
		for j := 1; j < hi; j++ {
			s = m.Add(s, m.Mul(p.Coeffs[base+j], pw[j]))
		}
		acc = m.Add(m.Mul(acc, giant), s)
	}
	return acc
}

// EvaluateVec returns the evaluations of p at each point of xs, one Horner
// pass per point.
func (p Poly) EvaluateVec(xs []uint64) []uint64 {
	out := make([]uint64, len(xs))
	for i, x := range xs {
		out[i] = evaluate(p.Mod, p.Coeffs, p.Mod.Reduce(x))
	}
	return out
}

// evalNode is a node of a subproduct tree over a range of evaluation
// points. Its polynomial is the monic product of x - xs[i] over [lo, hi).
type evalNode struct {
	poly        []uint64
	left, right *evalNode
	lo, hi      int
}

// buildEvalTree builds the subproduct tree over xs[lo:hi]. Points must be
// reduced and the range non-empty.
func buildEvalTree(m nmod.Modulus, xs []uint64, lo, hi int) *evalNode {
	if hi-lo == 1 {
		return &evalNode{poly: []uint64{m.Neg(xs[lo]), 1}, lo: lo, hi: hi}
	}
	mid := (lo + hi) / 2
	l := buildEvalTree(m, xs, lo, mid)
	r := buildEvalTree(m, xs, mid, hi)
	return &evalNode{poly: mul(m, l.poly, r.poly), left: l, right: r, lo: lo, hi: hi}
}

// evalDown pushes the residue of r down the tree, reducing it modulo each
// node polynomial, and records the constant residues at the leaves.
func evalDown(m nmod.Modulus, nd *evalNode, r, out []uint64) {
	if len(r) >= len(nd.poly) {
		r = rem(m, r, nd.poly)
	}
	if nd.left == nil {
		if len(r) > 0 {
			out[nd.lo] = r[0]
		}
		return
	}
	evalDown(m, nd.left, r, out)
	evalDown(m, nd.right, r, out)
}

// EvaluateVecFast returns the evaluations of p at each point of xs using a
// subproduct tree and recursive remaindering.
func (p Poly) EvaluateVecFast(xs []uint64) []uint64 {
	out := make([]uint64, len(xs))
	if len(xs) == 0 {
		return out
	}

	red := make([]uint64, len(xs))
	p.Mod.ReduceVec(xs, red)

	root := buildEvalTree(p.Mod, red, 0, len(red))
	evalDown(p.Mod, root, p.Coeffs, out)
	return out
}
