// Package bigmod implements constant-time arithmetic on fixed-capacity
// natural numbers modulo an odd prime, in the Montgomery domain.
//
// Values are capped at 8192 bits, the largest FFDHE modulus. All operations
// on reduced values leak only the announced size of the modulus, never the
// operand values: there are no secret-dependent branches, loop bounds, or
// table indexes, and no buffer is resized while an operation is in flight.
package bigmod

import (
	"errors"
)

// MaxBytes is the capacity of a value in bytes, sized for an 8192-bit modulus.
const MaxBytes = 1024

var (
	// ErrCapacityExceeded is returned when an input does not fit the
	// fixed 8192-bit capacity, or a value does not fit its modulus width.
	ErrCapacityExceeded = errors.New("bigmod: value exceeds capacity")

	// ErrDomainMismatch is returned when operands bound to different moduli,
	// or tagged with different encodings, are combined. It signals a logic
	// fault in the caller, not a runtime condition to recover from.
	ErrDomainMismatch = errors.New("bigmod: modulus domain mismatch")
)

// Modulus is a reusable modulus for Int values. Moduli can only be odd
// numbers. Moduli leak their exact bit length but not their actual value.
//
// A Modulus is immutable once constructed and safe for concurrent use. Its
// pointer identity is the domain identity of every Int bound to it.
type Modulus struct {
	// The underlying natural number for this modulus.
	//
	// This will be stored without any padding, and can't alias with any
	// other natural number being used.
	nat     *nat
	leading int  // number of leading zeros in the modulus
	m0inv   uint // -nat.limbs[0]⁻¹ mod _W
	r1      *nat // R mod m, the Montgomery form of 1
	rr      *nat // R² mod m, used to enter the Montgomery domain
	one     *nat // plain 1, used to leave the Montgomery domain
}

// NewModulusFromBytes produces a new Modulus from a big-endian byte slice.
// The input must be odd, non-empty, and no longer than MaxBytes.
func NewModulusFromBytes(b []byte) (*Modulus, error) {
	if len(b) == 0 {
		return nil, errors.New("bigmod: modulus can't be zero")
	}
	if len(b) > MaxBytes {
		return nil, ErrCapacityExceeded
	}
	if b[len(b)-1]&1 == 0 {
		return nil, errors.New("bigmod: modulus can't be even")
	}
	return modulusFromNat(natFromBytes(b)), nil
}

// minusInverseModW computes -x⁻¹ mod _W with x odd.
//
// This operation is used to precompute a constant involved in Montgomery
// multiplication.
func minusInverseModW(x uint) uint {
	// Every iteration of this loop doubles the least-significant bits of
	// correct inverse in y. The first three bits are already correct (1⁻¹ = 1,
	// 3⁻¹ = 3, 5⁻¹ = 5, and 7⁻¹ = 7 mod 8), so doubling five times is enough
	// for 61 bits (and wastes only one iteration for 31 bits).
	//
	// See https://crypto.stackexchange.com/a/47496.
	y := x
	for i := 0; i < 5; i++ {
		y = y * (2 - x*y)
	}
	return (1 << _W) - (y & _MASK)
}

// modulusFromNat creates a new modulus from a nat.
//
// The nat should be odd, nonzero, and the number of significant bits in the
// number should be leakable. The nat shouldn't be reused.
func modulusFromNat(n *nat) *Modulus {
	m := &Modulus{}
	m.nat = n
	size := len(m.nat.limbs)
	for m.nat.limbs[size-1] == 0 {
		size--
	}
	m.nat.limbs = m.nat.limbs[:size]
	m.leading = _W - bitLen(m.nat.limbs[size-1])
	m.m0inv = minusInverseModW(m.nat.limbs[0])

	// Precompute the Montgomery constants: r1 = R mod m by shifting 1 up a
	// limb at a time, and rr = R² mod m by shifting r1 up the same amount.
	m.one = m.newNat()
	m.one.limbs[0] = 1
	m.r1 = m.one.clone()
	for i := 0; i < size; i++ {
		m.r1.shiftIn(0, m)
	}
	m.rr = m.r1.clone()
	for i := 0; i < size; i++ {
		m.rr.shiftIn(0, m)
	}
	return m
}

// newNat returns a zero nat with the announced length of m.
func (m *Modulus) newNat() *nat {
	return &nat{make([]uint, len(m.nat.limbs))}
}

// Size returns the size of m in bytes.
func (m *Modulus) Size() int {
	return (m.BitLen() + 7) / 8
}

// BitLen returns the size of m in bits.
func (m *Modulus) BitLen() int {
	return len(m.nat.limbs)*_W - m.leading
}

// An Int is a natural number in the range [0, m), bound to the Modulus it was
// constructed under and tagged with its current encoding: the standard
// residue representation, or the Montgomery representation scaled by
// R = 2^(_W * n). Ints are immutable; every operation returns a fresh value.
type Int struct {
	nat        *nat
	m          *Modulus
	montgomery bool
}

// NewIntFromBytesPadded maps an arbitrary big-endian byte string into a
// residue modulo m, in the standard encoding. Input shorter than the modulus
// width is zero-padded on the left; input longer than the modulus width is
// rejected with ErrCapacityExceeded. The value itself is reduced, never
// truncated, so any in-width byte string is accepted — including the
// degenerate residues 0, 1 and m-1.
func (m *Modulus) NewIntFromBytesPadded(b []byte) (*Int, error) {
	if len(b) > m.Size() {
		return nil, ErrCapacityExceeded
	}
	out := m.newNat()
	out.mod(natFromBytes(b), m)
	return &Int{nat: out, m: m, montgomery: false}, nil
}

// Modulus returns the Modulus i is bound to.
func (i *Int) Modulus() *Modulus {
	return i.m
}

// IsMontgomery reports whether i is tagged as Montgomery-encoded.
func (i *Int) IsMontgomery() bool {
	return i.montgomery
}

// ToMontgomery converts i from the standard to the Montgomery encoding under
// its modulus, by Montgomery-multiplying it with R². The conversion does not
// branch on the value of i.
func (i *Int) ToMontgomery() (*Int, error) {
	if i.montgomery {
		return nil, ErrDomainMismatch
	}
	out := i.m.newNat()
	montgomeryMul(out, i.nat, i.m.rr, i.m)
	return &Int{nat: out, m: i.m, montgomery: true}, nil
}

// FromMontgomery converts i from the Montgomery to the standard encoding
// under its modulus, by Montgomery-multiplying it with 1 (which divides out
// R). The conversion does not branch on the value of i.
func (i *Int) FromMontgomery() (*Int, error) {
	if !i.montgomery {
		return nil, ErrDomainMismatch
	}
	out := i.m.newNat()
	montgomeryMul(out, i.nat, i.m.one, i.m)
	return &Int{nat: out, m: i.m, montgomery: false}, nil
}

// Exp computes base^e mod m, with the exponent e in big-endian order. The
// base must be Montgomery-encoded and bound to m by identity, and the result
// is Montgomery-encoded under the same modulus.
//
// The sequence of operations and the memory access pattern depend only on
// len(e) and the announced size of m, never on the exponent bits: windowed
// powers are read with constant-time selection and the multiplication for a
// zero window is performed and discarded. All scratch values are allocated at
// the modulus size up front and never grow.
func (m *Modulus) Exp(base *Int, e []byte) (*Int, error) {
	if base.m != m {
		return nil, ErrDomainMismatch
	}
	if !base.montgomery {
		return nil, ErrDomainMismatch
	}

	// We use a 4 bit window. Larger windows trade scratch nats for fewer
	// multiplications; 4 bits is the upstream sweet spot for moduli this
	// size, and window sizes that don't divide 8 complicate the byte scan.
	table := make([]*nat, (1<<4)-1) // table[k] = base ^ (k+1)
	table[0] = base.nat.clone()
	for k := 1; k < len(table); k++ {
		table[k] = m.newNat()
		montgomeryMul(table[k], table[k-1], base.nat, m)
	}

	out := m.r1.clone() // 1 in Montgomery form
	t0 := m.newNat()
	t1 := m.newNat()
	for _, b := range e {
		for _, j := range []int{4, 0} {
			// Square four times, alternating scratch so that the
			// multiplication never aliases its output.
			montgomeryMul(t0, out, out, m)
			montgomeryMul(out, t0, t0, m)
			montgomeryMul(t0, out, out, m)
			montgomeryMul(out, t0, t0, m)

			// Select base^k in constant time from the table.
			k := uint((b >> j) & 0b1111)
			for i := range table {
				t0.assign(ctEq(k, uint(i+1)), table[i])
			}

			// Multiply by base^k, discarding the result if k = 0.
			montgomeryMul(t1, out, t0, m)
			out.assign(not(ctEq(k, 0)), t1)
		}
	}

	return &Int{nat: out, m: m, montgomery: true}, nil
}

// Bytes returns i as a minimal-length big-endian byte slice, with no
// fixed-width left-padding. The zero residue serializes to an empty slice.
// i must be in the standard encoding.
func (i *Int) Bytes() ([]byte, error) {
	if i.montgomery {
		return nil, ErrDomainMismatch
	}
	b := i.nat.fillBytes(make([]byte, i.m.Size()))
	for len(b) > 0 && b[0] == 0 {
		b = b[1:]
	}
	return b, nil
}

// Equal reports whether i and k hold the same value under the same modulus
// identity and encoding. The comparison is constant time in the values.
func (i *Int) Equal(k *Int) bool {
	if i.m != k.m || i.montgomery != k.montgomery {
		return false
	}
	equal := yes
	for j := range i.nat.limbs {
		equal &= ctEq(i.nat.limbs[j], k.nat.limbs[j])
	}
	return equal == yes
}

// bitLen is a version of bits.Len that only leaks the bit length of n, but
// not its value. bits.Len and bits.LeadingZeros use a lookup table for the
// low-order bits on some architectures.
func bitLen(n uint) int {
	var len int
	// We assume, here and elsewhere, that comparison to zero is constant
	// time with respect to different non-zero values.
	for n != 0 {
		len++
		n >>= 1
	}
	return len
}
