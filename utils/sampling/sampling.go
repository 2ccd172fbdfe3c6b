// Package sampling implements sampling of bytes and integers from explicit
// PRNG state objects, and key derivation for deterministic test streams.
package sampling

import (
	"crypto/rand"
	"encoding/binary"
	"math/big"

	"github.com/zeebo/blake3"
)

const keySize = 32

// RandUint64 returns a random value between 0 and 0xFFFFFFFFFFFFFFFF.
func RandUint64() uint64 {
	b := []byte{0, 0, 0, 0, 0, 0, 0, 0}
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return binary.LittleEndian.Uint64(b)
}

// RandInt generates a random Int in [0, max-1].
func RandInt(max *big.Int) (n *big.Int) {
	var err error
	if n, err = rand.Int(rand.Reader, max); err != nil {
		panic(err)
	}
	return
}

// ReadUint64 reads 8 bytes from prng and returns them as a big-endian
// unsigned integer.
func ReadUint64(prng PRNG) uint64 {
	b := []byte{0, 0, 0, 0, 0, 0, 0, 0}
	if _, err := prng.Read(b); err != nil {
		// Sanity check, this error should not happen.
		panic(err)
	}
	return binary.BigEndian.Uint64(b)
}

// DeriveKey hashes the given domain string and optional extra data into a
// 32-byte key suitable for NewKeyedPRNG. Two calls with the same inputs
// derive the same key, which makes randomized tests replayable.
func DeriveKey(domain string, data ...[]byte) []byte {
	hasher := blake3.New()
	hasher.Write([]byte(domain))
	for _, d := range data {
		hasher.Write(d)
	}
	sum := hasher.Sum(nil)
	return sum[:keySize]
}
