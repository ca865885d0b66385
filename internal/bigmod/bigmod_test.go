package bigmod

import (
	"bytes"
	"crypto/rand"
	"math/big"
	"testing"
)

// testModulusBytes is an arbitrary odd 256-bit modulus. Montgomery
// arithmetic only requires oddness, not primality.
var testModulusBytes = []byte{
	0xd1, 0x37, 0x7f, 0x11, 0x3c, 0xe6, 0x54, 0x8a,
	0x20, 0x9e, 0xab, 0x5c, 0x09, 0xf1, 0x76, 0x33,
	0x81, 0x04, 0xc2, 0xa9, 0x4d, 0xef, 0x10, 0x58,
	0x7a, 0x61, 0xd2, 0x2f, 0x8c, 0xee, 0x40, 0x5b,
}

func testModulus(t *testing.T) *Modulus {
	t.Helper()
	m, err := NewModulusFromBytes(testModulusBytes)
	if err != nil {
		t.Fatalf("Failed to build test modulus: %v", err)
	}
	return m
}

func TestNewModulusFromBytesRejectsInvalid(t *testing.T) {
	if _, err := NewModulusFromBytes(nil); err == nil {
		t.Error("Empty modulus accepted")
	}
	if _, err := NewModulusFromBytes([]byte{0x04}); err == nil {
		t.Error("Even modulus accepted")
	}
	huge := make([]byte, MaxBytes+1)
	huge[len(huge)-1] = 1
	if _, err := NewModulusFromBytes(huge); err != ErrCapacityExceeded {
		t.Errorf("Over-capacity modulus: got %v, want ErrCapacityExceeded", err)
	}
}

func TestModulusSize(t *testing.T) {
	m := testModulus(t)
	if m.BitLen() != 256 {
		t.Errorf("BitLen: got %d, want 256", m.BitLen())
	}
	if m.Size() != 32 {
		t.Errorf("Size: got %d, want 32", m.Size())
	}
}

func TestNewIntFromBytesPadded(t *testing.T) {
	m := testModulus(t)
	mBig := new(big.Int).SetBytes(testModulusBytes)

	// Longer than the modulus width must fail, never truncate.
	over := make([]byte, m.Size()+1)
	if _, err := m.NewIntFromBytesPadded(over); err != ErrCapacityExceeded {
		t.Errorf("Oversized input: got %v, want ErrCapacityExceeded", err)
	}

	// Any in-width value is accepted and reduced, including unreduced ones.
	allFF := bytes.Repeat([]byte{0xff}, m.Size())
	i, err := m.NewIntFromBytesPadded(allFF)
	if err != nil {
		t.Fatalf("In-width unreduced input rejected: %v", err)
	}
	got, err := i.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	want := new(big.Int).Mod(new(big.Int).SetBytes(allFF), mBig).Bytes()
	if !bytes.Equal(got, want) {
		t.Errorf("Reduction mismatch: got %x, want %x", got, want)
	}

	// Short input is padded, not rejected.
	short, err := m.NewIntFromBytesPadded([]byte{0x07})
	if err != nil {
		t.Fatalf("Short input rejected: %v", err)
	}
	got, err = short.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	if !bytes.Equal(got, []byte{0x07}) {
		t.Errorf("Short input: got %x, want 07", got)
	}

	// Empty input is the zero residue, which serializes minimally to nothing.
	zero, err := m.NewIntFromBytesPadded(nil)
	if err != nil {
		t.Fatalf("Empty input rejected: %v", err)
	}
	got, err = zero.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Zero serialization: got %x, want empty", got)
	}
}

func TestMontgomeryRoundTrip(t *testing.T) {
	m := testModulus(t)
	for i := 0; i < 16; i++ {
		raw := make([]byte, m.Size())
		if _, err := rand.Read(raw); err != nil {
			t.Fatalf("rand: %v", err)
		}
		v, err := m.NewIntFromBytesPadded(raw)
		if err != nil {
			t.Fatalf("NewIntFromBytesPadded: %v", err)
		}
		want, err := v.Bytes()
		if err != nil {
			t.Fatalf("Bytes: %v", err)
		}
		mont, err := v.ToMontgomery()
		if err != nil {
			t.Fatalf("ToMontgomery: %v", err)
		}
		back, err := mont.FromMontgomery()
		if err != nil {
			t.Fatalf("FromMontgomery: %v", err)
		}
		got, err := back.Bytes()
		if err != nil {
			t.Fatalf("Bytes: %v", err)
		}
		if !bytes.Equal(got, want) {
			t.Fatalf("Round trip mismatch: got %x, want %x", got, want)
		}
	}
}

func TestExpMatchesBigInt(t *testing.T) {
	m := testModulus(t)
	mBig := new(big.Int).SetBytes(testModulusBytes)

	for i := 0; i < 16; i++ {
		baseRaw := make([]byte, m.Size())
		expRaw := make([]byte, 16)
		if _, err := rand.Read(baseRaw); err != nil {
			t.Fatalf("rand: %v", err)
		}
		if _, err := rand.Read(expRaw); err != nil {
			t.Fatalf("rand: %v", err)
		}

		base, err := m.NewIntFromBytesPadded(baseRaw)
		if err != nil {
			t.Fatalf("NewIntFromBytesPadded: %v", err)
		}
		mont, err := base.ToMontgomery()
		if err != nil {
			t.Fatalf("ToMontgomery: %v", err)
		}
		res, err := m.Exp(mont, expRaw)
		if err != nil {
			t.Fatalf("Exp: %v", err)
		}
		std, err := res.FromMontgomery()
		if err != nil {
			t.Fatalf("FromMontgomery: %v", err)
		}
		got, err := std.Bytes()
		if err != nil {
			t.Fatalf("Bytes: %v", err)
		}

		want := new(big.Int).Exp(
			new(big.Int).SetBytes(baseRaw),
			new(big.Int).SetBytes(expRaw),
			mBig,
		).Bytes()
		if !bytes.Equal(got, want) {
			t.Fatalf("Exp mismatch: base %x exp %x: got %x, want %x", baseRaw, expRaw, got, want)
		}
	}
}

func TestExpZeroBase(t *testing.T) {
	m := testModulus(t)
	zero, err := m.NewIntFromBytesPadded(nil)
	if err != nil {
		t.Fatalf("NewIntFromBytesPadded: %v", err)
	}
	mont, err := zero.ToMontgomery()
	if err != nil {
		t.Fatalf("ToMontgomery: %v", err)
	}
	res, err := m.Exp(mont, []byte{0x03})
	if err != nil {
		t.Fatalf("Exp: %v", err)
	}
	std, err := res.FromMontgomery()
	if err != nil {
		t.Fatalf("FromMontgomery: %v", err)
	}
	got, err := std.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("0^3: got %x, want zero", got)
	}
}

func TestDomainMismatch(t *testing.T) {
	m := testModulus(t)

	otherBytes := append([]byte(nil), testModulusBytes...)
	otherBytes[0] ^= 0x10
	other, err := NewModulusFromBytes(otherBytes)
	if err != nil {
		t.Fatalf("Failed to build second modulus: %v", err)
	}

	v, err := other.NewIntFromBytesPadded([]byte{0x05})
	if err != nil {
		t.Fatalf("NewIntFromBytesPadded: %v", err)
	}
	mont, err := v.ToMontgomery()
	if err != nil {
		t.Fatalf("ToMontgomery: %v", err)
	}

	// Exponentiating a foreign element must fail fast.
	if _, err := m.Exp(mont, []byte{0x03}); err != ErrDomainMismatch {
		t.Errorf("Foreign modulus: got %v, want ErrDomainMismatch", err)
	}

	// A standard-encoded base is in the wrong domain for the engine.
	if _, err := other.Exp(v, []byte{0x03}); err != ErrDomainMismatch {
		t.Errorf("Standard-encoded base: got %v, want ErrDomainMismatch", err)
	}

	// Conversions only move between the two encodings, never within one.
	if _, err := mont.ToMontgomery(); err != ErrDomainMismatch {
		t.Errorf("Double ToMontgomery: got %v, want ErrDomainMismatch", err)
	}
	if _, err := v.FromMontgomery(); err != ErrDomainMismatch {
		t.Errorf("FromMontgomery of standard value: got %v, want ErrDomainMismatch", err)
	}

	// Serialization is only defined for the standard encoding.
	if _, err := mont.Bytes(); err != ErrDomainMismatch {
		t.Errorf("Bytes of Montgomery value: got %v, want ErrDomainMismatch", err)
	}
}

func TestEqual(t *testing.T) {
	m := testModulus(t)
	a, err := m.NewIntFromBytesPadded([]byte{0x2a})
	if err != nil {
		t.Fatalf("NewIntFromBytesPadded: %v", err)
	}
	b, err := m.NewIntFromBytesPadded([]byte{0x00, 0x2a})
	if err != nil {
		t.Fatalf("NewIntFromBytesPadded: %v", err)
	}
	if !a.Equal(b) {
		t.Error("Padded and unpadded encodings of the same value differ")
	}
	am, err := a.ToMontgomery()
	if err != nil {
		t.Fatalf("ToMontgomery: %v", err)
	}
	if a.Equal(am) {
		t.Error("Values in different encodings compare equal")
	}
}
