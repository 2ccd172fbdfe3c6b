package nmodpoly

import (
	"bufio"
	"fmt"
	"io"

	"github.com/vneiger/flint2/nmod"
	"github.com/vneiger/flint2/utils/buffer"
)

// BinarySize returns the size in bytes of the serialized polynomial: the
// modulus, the coefficient count and the coefficients, eight bytes each.
func (p Poly) BinarySize() int {
	return 16 + 8*len(p.Coeffs)
}

// WriteTo writes the polynomial on an io.Writer.
//
// To ensure optimal efficiency and minimal allocations, the user is
// encouraged to provide a struct implementing the interface buffer.Writer,
// which defines a subset of the methods of the bufio.Writer. If w is not
// compliant with the buffer.Writer interface, it will be wrapped in a new
// bufio.Writer. For additional information, see utils/buffer/writer.go.
func (p Poly) WriteTo(w io.Writer) (n int64, err error) {
	switch w := w.(type) {
	case buffer.Writer:

		var inc int64
		if inc, err = buffer.WriteUint64(w, p.Mod.Q); err != nil {
			return n + inc, err
		}
		n += inc

		if inc, err = buffer.WriteInt(w, len(p.Coeffs)); err != nil {
			return n + inc, err
		}
		n += inc

		if inc, err = buffer.WriteUint64Slice(w, p.Coeffs); err != nil {
			return n + inc, err
		}
		n += inc

		return n, w.Flush()

	default:
		return p.WriteTo(bufio.NewWriter(w))
	}
}

// ReadFrom reads the polynomial from an io.Reader.
//
// To ensure optimal efficiency and minimal allocations, the user is
// encouraged to provide a struct implementing the interface buffer.Reader,
// which defines a subset of the methods of the bufio.Reader. If r is not
// compliant with the buffer.Reader interface, it will be wrapped in a new
// bufio.Reader. For additional information, see utils/buffer/reader.go.
func (p *Poly) ReadFrom(r io.Reader) (n int64, err error) {
	switch r := r.(type) {
	case buffer.Reader:

		var q uint64
		var inc int
		if inc, err = buffer.ReadUint64(r, &q); err != nil {
			return n + int64(inc), fmt.Errorf("cannot read modulus: %w", err)
		}
		n += int64(inc)

		var mod nmod.Modulus
		if mod, err = nmod.NewModulus(q); err != nil {
			return n, fmt.Errorf("invalid modulus: %w", err)
		}

		var size int
		if inc, err = buffer.ReadInt(r, &size); err != nil {
			return n + int64(inc), fmt.Errorf("cannot read length: %w", err)
		}
		n += int64(inc)

		if size < 0 {
			return n, fmt.Errorf("invalid length: %d", size)
		}

		coeffs := make([]uint64, size)
		if inc, err = buffer.ReadUint64Slice(r, coeffs); err != nil {
			return n + int64(inc), fmt.Errorf("cannot read coefficients: %w", err)
		}
		n += int64(inc)

		mod.ReduceVec(coeffs, coeffs)
		p.Mod = mod
		p.Coeffs = normalise(coeffs)
		return n, nil

	default:
		return p.ReadFrom(bufio.NewReader(r))
	}
}

// MarshalBinary encodes the polynomial on a slice of bytes.
func (p Poly) MarshalBinary() ([]byte, error) {
	buf := buffer.NewBufferSize(p.BinarySize())
	_, err := p.WriteTo(buf)
	return buf.Bytes(), err
}

// UnmarshalBinary decodes a slice of bytes generated by MarshalBinary.
func (p *Poly) UnmarshalBinary(data []byte) error {
	_, err := p.ReadFrom(buffer.NewBuffer(data))
	return err
}
