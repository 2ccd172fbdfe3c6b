// Package buffer implements helpers for writing and reading numeric values
// to and from io.Writer and io.Reader implementations that expose their
// internal buffers.
package buffer

import (
	"fmt"
	"io"
)

// Writer is an interface for writers that expose their internal buffers.
// This interface is notably implemented by the bufio.Writer type
// (see https://pkg.go.dev/bufio#Writer) and by the Buffer type.
type Writer interface {
	io.Writer
	Flush() (err error)
	AvailableBuffer() []byte
	Available() int
}

// Reader is an interface for readers that expose their internal buffers.
// This interface is notably implemented by the bufio.Reader type
// (see https://pkg.go.dev/bufio#Reader) and by the Buffer type.
type Reader interface {
	io.Reader
	Size() int
	Peek(n int) ([]byte, error)
	Discard(n int) (discarded int, err error)
}

// Buffer is a fixed-capacity []byte-based buffer complying to both the
// Writer and Reader interfaces. The backing slice is never grown; writes
// beyond its capacity return an error.
type Buffer struct {
	data []byte
	wOff int
	rOff int
}

// NewBuffer wraps data as a Buffer. The read and write offsets start at
// data[0], so new writes overwrite the current content.
func NewBuffer(data []byte) *Buffer {
	return &Buffer{data: data}
}

// NewBufferSize allocates a new Buffer of the given capacity.
func NewBufferSize(size int) *Buffer {
	return &Buffer{data: make([]byte, size)}
}

// Write writes p into b, returning an error if p does not fit in the
// remaining capacity.
func (b *Buffer) Write(p []byte) (n int, err error) {
	if len(p)+b.wOff > cap(b.data) {
		return 0, fmt.Errorf("buffer too small")
	}
	n = copy(b.data[b.wOff:], p)
	b.wOff += n
	return n, nil
}

// Flush is a no-op on a slice-based buffer.
func (b *Buffer) Flush() (err error) {
	return nil
}

// AvailableBuffer returns an empty slice with Available() capacity, meant
// to be appended to and passed to the next Write call. It is only valid
// until the next write on b.
func (b *Buffer) AvailableBuffer() []byte {
	return b.data[b.wOff:][:0]
}

// Available returns the number of bytes that can still be written to b.
func (b *Buffer) Available() int {
	return len(b.data) - b.wOff
}

// Bytes returns the backing slice.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Reset rewinds both the read and the write offsets of b.
func (b *Buffer) Reset() {
	b.wOff = 0
	b.rOff = 0
}

// Read reads up to len(p) bytes from the read offset of b into p, returning
// io.EOF if fewer than len(p) bytes were available.
func (b *Buffer) Read(p []byte) (n int, err error) {
	n = copy(p, b.data[b.rOff:])
	b.rOff += n
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Size returns the number of bytes available for reads.
func (b *Buffer) Size() int {
	return len(b.data) - b.rOff
}

// Peek returns the next n bytes as a reslice of the internal buffer,
// without advancing the read offset. It returns io.EOF if fewer than n
// bytes are available.
func (b *Buffer) Peek(n int) ([]byte, error) {
	if b.rOff+n > len(b.data) {
		return b.data[b.rOff:], io.EOF
	}
	return b.data[b.rOff : b.rOff+n], nil
}

// Discard skips the next n bytes, returning the number of bytes discarded
// and io.EOF if fewer than n were available.
func (b *Buffer) Discard(n int) (discarded int, err error) {
	remain := len(b.data) - b.rOff
	if n > remain {
		b.rOff = len(b.data)
		return remain, io.EOF
	}
	b.rOff += n
	return n, nil
}
