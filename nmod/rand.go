package nmod

import (
	"encoding/binary"

	"github.com/vneiger/flint2/utils/sampling"
)

const randomBufferSize = 1024

// UniformSampler wraps a sampling.PRNG and represents the state of a
// sampler of uniform residues mod q.
type UniformSampler struct {
	prng sampling.PRNG
	mod  Modulus
	buff []byte
	ptr  int
}

// NewUniformSampler creates a new UniformSampler drawing from prng.
func NewUniformSampler(prng sampling.PRNG, mod Modulus) *UniformSampler {
	return &UniformSampler{
		prng: prng,
		mod:  mod,
		buff: make([]byte, randomBufferSize),
		ptr:  randomBufferSize,
	}
}

// Next samples a uniform residue in [0, q-1], by rejection of masked
// draws that fall outside the range.
func (u *UniformSampler) Next() uint64 {

	q := u.mod.Q
	mask := u.mod.Mask

	for {

		// Refills the buffer if it runs empty
		if u.ptr == len(u.buff) {
			if _, err := u.prng.Read(u.buff); err != nil {
				// Sanity check, this error should not happen.
				panic(err)
			}
			u.ptr = 0
		}

		randomUint := binary.BigEndian.Uint64(u.buff[u.ptr:u.ptr+8]) & mask
		u.ptr += 8

		if randomUint < q {
			return randomUint
		}
	}
}

// Read fills p with uniform residues in [0, q-1].
func (u *UniformSampler) Read(p []uint64) {
	for i := range p {
		p[i] = u.Next()
	}
}

// ReadNew samples a new vector of n uniform residues.
func (u *UniformSampler) ReadNew(n int) (p []uint64) {
	p = make([]uint64, n)
	u.Read(p)
	return
}

// RandUniform samples a uniform randomInt variable in the range [0, mask]
// until randomInt is in the range [0, v-1].
// mask needs to be of the form 2^n - 1.
func RandUniform(prng sampling.PRNG, v uint64, mask uint64) (randomInt uint64) {
	for {
		randomInt = randInt64(prng, mask)
		if randomInt < v {
			return randomInt
		}
	}
}

// randInt64 samples a uniform variable in the range [0, mask], where mask
// is of the form 2^n-1, with n in [0, 64].
func randInt64(prng sampling.PRNG, mask uint64) uint64 {

	randomBytes := make([]byte, 8)
	if _, err := prng.Read(randomBytes); err != nil {
		// Sanity check, this error should not happen.
		panic(err)
	}

	return mask & binary.BigEndian.Uint64(randomBytes)
}
