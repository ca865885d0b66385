package ffdh

import (
	"errors"
	"fmt"
	"io"

	"github.com/backkem/ffdh-go/internal/bigmod"
)

var (
	// ErrRandomSource indicates that the entropy source could not fill the
	// private exponent buffer. The caller may retry with fresh randomness.
	ErrRandomSource = errors.New("ffdh: randomness source failure")

	// ErrBufferTooSmall indicates that a caller-supplied output buffer is
	// smaller than the serialized value.
	ErrBufferTooSmall = errors.New("ffdh: output buffer too small")

	// ErrContextConsumed indicates that an operation was attempted on a key
	// exchange context after AgreeEphemeral spent it.
	ErrContextConsumed = errors.New("ffdh: key exchange context already consumed")

	// ErrValueTooLarge indicates that a byte sequence (modulus, generator,
	// or peer public value) exceeds the width it must fit.
	ErrValueTooLarge = bigmod.ErrCapacityExceeded

	// ErrDomainMismatch indicates that values bound to different modulus
	// contexts were combined. It is a programming-logic fault and should
	// never surface from a well-formed context.
	ErrDomainMismatch = bigmod.ErrDomainMismatch
)

// KeyExchange holds one party's side of a finite-field DH agreement: the
// private exponent a, the own public value g^a (kept Montgomery-encoded),
// and the modulus context they are bound to.
//
// A context is single-owner and must not be used concurrently. It stays
// usable for repeated PublicKey and SharedSecret calls until AgreeEphemeral
// consumes it.
type KeyExchange struct {
	a        *privateExponent
	ap       *bigmod.Int
	m        *bigmod.Modulus
	consumed bool
}

// New creates a key exchange context for the given parameter set: it decodes
// the group parameters, derives the modulus context, generates a fresh
// private exponent, and computes the corresponding public value.
//
// rand is the entropy source for the private exponent. It may be nil, in
// which case a cryptographically secure default stream is used; a failing
// non-nil source surfaces as ErrRandomSource.
func New(param *Param, rand io.Reader) (*KeyExchange, error) {
	m, err := param.modulusContext()
	if err != nil {
		return nil, err
	}
	a, err := generatePrivateExponent(param, m, rand)
	if err != nil {
		return nil, err
	}
	gb, err := decodeHex(param.G)
	if err != nil {
		return nil, err
	}
	g, err := m.NewIntFromBytesPadded(gb)
	if err != nil {
		return nil, fmt.Errorf("ffdh: generator: %w", err)
	}
	gm, err := g.ToMontgomery()
	if err != nil {
		return nil, err
	}
	ap, err := m.Exp(gm, a.bytes())
	if err != nil {
		return nil, err
	}
	return &KeyExchange{a: a, ap: ap, m: m}, nil
}

// PublicKey converts the context's public value out of the Montgomery domain
// and writes it into buf as a minimal-length big-endian byte sequence, with
// no fixed-width left-padding. It returns the written prefix of buf, and
// fails with ErrBufferTooSmall if the serialized value does not fit.
// MaxPublicKeyLen bytes are always enough.
func (kx *KeyExchange) PublicKey(buf []byte) ([]byte, error) {
	if kx.consumed {
		return nil, ErrContextConsumed
	}
	ap, err := kx.ap.FromMontgomery()
	if err != nil {
		return nil, err
	}
	b, err := ap.Bytes()
	if err != nil {
		return nil, err
	}
	if len(buf) < len(b) {
		return nil, ErrBufferTooSmall
	}
	return buf[:copy(buf, b)], nil
}

// SharedSecret computes the raw shared secret from the peer's public value:
// the peer bytes are mapped into the group, exponentiated with this
// context's private exponent, and serialized as minimal-length big-endian
// bytes. It may be called multiple times on the same context.
//
// Peer bytes longer than the modulus width fail with ErrValueTooLarge. Any
// in-width value is accepted and reduced, including the cryptographically
// degenerate residues 0, 1 and p-1; an adversarial peer can use those to
// force a predictable secret, and callers needing stricter policy must
// validate the peer value themselves before calling. The returned bytes are
// the unprocessed group element — run them through a KDF before use as key
// material.
func (kx *KeyExchange) SharedSecret(peerPublicKey []byte) ([]byte, error) {
	if kx.consumed {
		return nil, ErrContextConsumed
	}
	peer, err := kx.m.NewIntFromBytesPadded(peerPublicKey)
	if err != nil {
		return nil, fmt.Errorf("ffdh: peer public key: %w", err)
	}
	pm, err := peer.ToMontgomery()
	if err != nil {
		return nil, err
	}
	s, err := kx.m.Exp(pm, kx.a.bytes())
	if err != nil {
		return nil, err
	}
	std, err := s.FromMontgomery()
	if err != nil {
		return nil, err
	}
	return std.Bytes()
}

// AgreeEphemeral performs a single-use key agreement: it computes the shared
// secret for the peer's public value, hands the raw bytes to kdf exactly
// once, and returns whatever kdf returns. The context is consumed whether or
// not the computation succeeds; the private exponent and the raw secret are
// wiped before AgreeEphemeral returns, and every later operation on kx fails
// with ErrContextConsumed.
func AgreeEphemeral[T any](kx *KeyExchange, peerPublicKey []byte, kdf func(secret []byte) (T, error)) (T, error) {
	var zero T
	if kx.consumed {
		return zero, ErrContextConsumed
	}
	secret, err := kx.SharedSecret(peerPublicKey)
	kx.consumed = true
	kx.a.wipe()
	if err != nil {
		return zero, err
	}
	defer wipeBytes(secret)
	return kdf(secret)
}
