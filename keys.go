package ffdh

import (
	"fmt"
	"io"

	"go.dedis.ch/kyber/v4/util/random"

	"github.com/backkem/ffdh-go/internal/bigmod"
)

// privateExponent is the secret exponent of one key exchange context. It
// lives in a fixed buffer sized for the largest supported group and is wiped
// when the owning context is consumed.
type privateExponent struct {
	buf [MaxSecretLen]byte
	n   int
}

// generatePrivateExponent draws exactly param.SecretLen bytes from the
// entropy source and forces the least-significant bit to 1, so the exponent
// is always odd. A nil source selects a fresh crypto/rand-backed stream.
//
// The result is routed through the same byte gate as external public values,
// confirming it fits the modulus width before it is ever used as an exponent.
func generatePrivateExponent(param *Param, m *bigmod.Modulus, rand io.Reader) (*privateExponent, error) {
	if param.SecretLen <= 0 || param.SecretLen > MaxSecretLen {
		return nil, fmt.Errorf("ffdh: secret length %d out of range: %w", param.SecretLen, ErrValueTooLarge)
	}
	a := &privateExponent{n: param.SecretLen}
	b := a.buf[:a.n]
	if rand == nil {
		random.New().XORKeyStream(b, b)
	} else if _, err := io.ReadFull(rand, b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRandomSource, err)
	}
	b[a.n-1] |= 1
	if _, err := m.NewIntFromBytesPadded(b); err != nil {
		return nil, err
	}
	return a, nil
}

// bytes returns the exponent as a big-endian byte slice of length SecretLen.
func (a *privateExponent) bytes() []byte {
	return a.buf[:a.n]
}

// wipe overwrites the exponent's backing memory.
func (a *privateExponent) wipe() {
	wipeBytes(a.buf[:])
}

func wipeBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
