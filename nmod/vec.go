package nmod

// This file implements the vector arithmetic kernels. All kernels expect
// reduced inputs, write reduced outputs, and tolerate p3 aliasing p1 or p2.

// AddVec evaluates p3 = p1 + p2 mod q coefficient-wise.
func (m Modulus) AddVec(p1, p2, p3 []uint64) {
	q := m.Q
	for i := range p3 {
		p3[i] = CRed(p1[i]+p2[i], q)
	}
}

// SubVec evaluates p3 = p1 - p2 mod q coefficient-wise.
func (m Modulus) SubVec(p1, p2, p3 []uint64) {
	q := m.Q
	for i := range p3 {
		p3[i] = CRed(p1[i]+q-p2[i], q)
	}
}

// NegVec evaluates p2 = -p1 mod q coefficient-wise.
func (m Modulus) NegVec(p1, p2 []uint64) {
	q := m.Q
	for i := range p2 {
		if p1[i] == 0 {
			p2[i] = 0
		} else {
			p2[i] = q - p1[i]
		}
	}
}

// ScalarMulVec evaluates p2 = p1 * scalar mod q coefficient-wise.
func (m Modulus) ScalarMulVec(p1 []uint64, scalar uint64, p2 []uint64) {
	q := m.Q
	u := m.BRedConstant
	for i := range p2 {
		p2[i] = BRed(p1[i], scalar, q, u)
	}
}

// ScalarMulAddVec evaluates p2 = p2 + p1 * scalar mod q coefficient-wise.
func (m Modulus) ScalarMulAddVec(p1 []uint64, scalar uint64, p2 []uint64) {
	q := m.Q
	u := m.BRedConstant
	for i := range p2 {
		p2[i] = CRed(p2[i]+BRed(p1[i], scalar, q, u), q)
	}
}

// ScalarMulSubVec evaluates p2 = p2 - p1 * scalar mod q coefficient-wise.
func (m Modulus) ScalarMulSubVec(p1 []uint64, scalar uint64, p2 []uint64) {
	q := m.Q
	u := m.BRedConstant
	for i := range p2 {
		p2[i] = CRed(p2[i]+q-BRed(p1[i], scalar, q, u), q)
	}
}

// ReduceVec evaluates p2 = p1 mod q coefficient-wise, accepting arbitrary
// unsigned words as input.
func (m Modulus) ReduceVec(p1, p2 []uint64) {
	q := m.Q
	u := m.BRedConstant
	for i := range p2 {
		p2[i] = CRed(BRedAdd(p1[i], q, u), q)
	}
}
