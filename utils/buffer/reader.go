package buffer

import (
	"encoding/binary"
	"fmt"
)

// ReadInt reads a uint64 from r and stores it into *c.
func ReadInt(r Reader, c *int) (n int, err error) {
	if c == nil {
		return 0, fmt.Errorf("cannot ReadInt: c is nil")
	}
	var v uint64
	if n, err = ReadUint64(r, &v); err != nil {
		return
	}
	*c = int(v)
	return
}

// ReadUint64 reads a uint64 from r and stores it into *c.
func ReadUint64(r Reader, c *uint64) (n int, err error) {

	if c == nil {
		return 0, fmt.Errorf("cannot ReadUint64: c is nil")
	}

	var bb = [8]byte{}

	if n, err = r.Read(bb[:]); err != nil {
		return
	}

	*c = binary.LittleEndian.Uint64(bb[:])

	return n, nil
}

// ReadUint64Slice reads a slice of uint64 from r and stores it into c.
func ReadUint64Slice(r Reader, c []uint64) (n int, err error) {

	if len(c) == 0 {
		return
	}

	var slice []byte

	// Avoid EOF
	size := r.Size()
	if len(c)<<3 < size {
		size = len(c) << 3
	}

	if slice, err = r.Peek(size); err != nil {
		return
	}

	buffered := len(slice) >> 3

	// The slice to fill is equal or smaller than the amount peeked
	if N := len(c); N <= buffered {

		for i, j := 0, 0; i < N; i, j = i+1, j+8 {
			c[i] = binary.LittleEndian.Uint64(slice[j:])
		}

		return r.Discard(N << 3)
	}

	// Decodes the maximum
	for i, j := 0, 0; i < buffered; i, j = i+1, j+8 {
		c[i] = binary.LittleEndian.Uint64(slice[j:])
	}

	// Discards what was peeked
	var inc int
	if inc, err = r.Discard(len(slice)); err != nil {
		return n + inc, err
	}

	n += inc

	// Recurses on the remaining slice to fill
	if inc, err = ReadUint64Slice(r, c[buffered:]); err != nil {
		return n + inc, err
	}

	return n + inc, nil
}
