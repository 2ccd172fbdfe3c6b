package nmodpoly

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vneiger/flint2/nmod"
)

// String renders p as "<length> <modulus>  <c0> <c1> ...", with two spaces
// before the coefficient list. The zero polynomial renders as
// "0 <modulus>".
func (p Poly) String() string {
	var sb strings.Builder
	sb.WriteString(strconv.FormatUint(uint64(len(p.Coeffs)), 10))
	sb.WriteByte(' ')
	sb.WriteString(strconv.FormatUint(p.Mod.Q, 10))
	if len(p.Coeffs) > 0 {
		sb.WriteByte(' ')
		for _, c := range p.Coeffs {
			sb.WriteByte(' ')
			sb.WriteString(strconv.FormatUint(c, 10))
		}
	}
	return sb.String()
}

// Parse reads back the String form: a coefficient count, a modulus
// greater than one, and exactly count coefficients, separated by
// whitespace. Coefficients are reduced modulo the modulus and trailing
// zeros are trimmed. Any other shape is rejected.
func Parse(s string) (Poly, error) {
	fields := strings.Fields(s)
	if len(fields) < 2 {
		return Poly{}, fmt.Errorf("cannot parse %q: expected a length and a modulus", s)
	}

	length, err := strconv.ParseUint(fields[0], 10, 64)
	if err != nil {
		return Poly{}, fmt.Errorf("cannot parse length %q: %w", fields[0], err)
	}

	q, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return Poly{}, fmt.Errorf("cannot parse modulus %q: %w", fields[1], err)
	}
	mod, err := nmod.NewModulus(q)
	if err != nil {
		return Poly{}, err
	}

	if uint64(len(fields)-2) != length {
		return Poly{}, fmt.Errorf("expected %d coefficients, got %d", length, len(fields)-2)
	}

	coeffs := make([]uint64, length)
	for i := range coeffs {
		c, err := strconv.ParseUint(fields[2+i], 10, 64)
		if err != nil {
			return Poly{}, fmt.Errorf("cannot parse coefficient %d %q: %w", i, fields[2+i], err)
		}
		coeffs[i] = mod.Reduce(c)
	}
	return Poly{Mod: mod, Coeffs: normalise(coeffs)}, nil
}
