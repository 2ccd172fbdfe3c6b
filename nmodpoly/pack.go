package nmodpoly

import (
	"fmt"
	"math/big"
	"math/bits"

	"github.com/vneiger/flint2/nmod"
)

// bitPack packs each entry of a into width consecutive bits of a
// little-endian word vector. Entries must fit in width bits, and width may
// exceed 64. The vector carries a spare top word so that the two-word
// placement below never writes out of range.
func bitPack(a []uint64, width uint) []uint64 {
	words := make([]uint64, (uint(len(a))*width+64+63)/64)
	for i, c := range a {
		off := uint(i) * width
		w, s := off/64, off%64
		words[w] |= c << s
		if s != 0 {
			words[w+1] |= c >> (64 - s)
		}
	}
	return words
}

// getBits reads width bits starting at bit offset off of a little-endian
// word vector, least significant word first. Bits beyond the end of the
// vector read as zero.
func getBits(words []uint64, off, width uint) []uint64 {
	out := make([]uint64, (width+63)/64)
	w, s := off/64, off%64
	for i := range out {
		j := int(w) + i
		var v uint64
		if j < len(words) {
			v = words[j] >> s
		}
		if s != 0 && j+1 < len(words) {
			v |= words[j+1] << (64 - s)
		}
		out[i] = v
	}
	if r := width % 64; r != 0 {
		out[len(out)-1] &= (1 << r) - 1
	}
	return out
}

// foldWide reduces a little-endian word vector modulo q by folding it one
// word at a time from the top.
func foldWide(m nmod.Modulus, words []uint64) uint64 {
	var r uint64
	for i := len(words) - 1; i >= 0; i-- {
		r = m.ReduceWide(r, words[i])
	}
	return r
}

// bigFromWords assembles a non-negative big.Int from little-endian 64-bit
// words. On 64-bit platforms the words map one to one onto big.Word limbs.
func bigFromWords(words []uint64) *big.Int {
	z := new(big.Int)
	if bits.UintSize == 64 {
		limbs := make([]big.Word, len(words))
		for i, w := range words {
			limbs[i] = big.Word(w)
		}
		return z.SetBits(limbs)
	}
	limbs := make([]big.Word, 2*len(words))
	for i, w := range words {
		limbs[2*i] = big.Word(uint32(w))
		limbs[2*i+1] = big.Word(uint32(w >> 32))
	}
	return z.SetBits(limbs)
}

// wordsFromBig returns the little-endian 64-bit words of a non-negative
// big.Int.
func wordsFromBig(z *big.Int) []uint64 {
	limbs := z.Bits()
	if bits.UintSize == 64 {
		words := make([]uint64, len(limbs))
		for i, l := range limbs {
			words[i] = uint64(l)
		}
		return words
	}
	words := make([]uint64, (len(limbs)+1)/2)
	for i, l := range limbs {
		words[i/2] |= uint64(uint32(l)) << (32 * uint(i%2))
	}
	return words
}

// BitPack packs the coefficients of p into a single non-negative integer,
// allotting width bits per coefficient. Panics if width is smaller than
// MaxBits, as the packing would not be reversible.
func (p Poly) BitPack(width int) *big.Int {
	if width < 1 {
		panic(fmt.Errorf("bit width must be positive, got %d", width))
	}
	if mb := p.MaxBits(); width < mb {
		panic(fmt.Errorf("bit width %d cannot hold %d-bit coefficients", width, mb))
	}
	if len(p.Coeffs) == 0 {
		return new(big.Int)
	}
	return bigFromWords(bitPack(p.Coeffs, uint(width)))
}

// BitUnpack recovers a polynomial from an integer produced by BitPack with
// the same width, reducing each width-bit digit modulo q. Panics if width
// is not positive or if z is negative.
func BitUnpack(mod nmod.Modulus, z *big.Int, width int) Poly {
	if width < 1 {
		panic(fmt.Errorf("bit width must be positive, got %d", width))
	}
	if z.Sign() < 0 {
		panic("cannot unpack a negative integer")
	}

	n := (z.BitLen() + width - 1) / width
	if n == 0 {
		return NewPoly(mod)
	}

	words := wordsFromBig(z)
	coeffs := make([]uint64, n)
	for k := 0; k < n; k++ {
		coeffs[k] = foldWide(mod, getBits(words, uint(k)*uint(width), uint(width)))
	}
	return Poly{Mod: mod, Coeffs: normalise(coeffs)}
}
