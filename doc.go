// Package ffdh implements finite-field Diffie-Hellman key agreement over the
// standardized prime groups of RFC 7919 (2048 to 8192 bits).
//
// Two parties each create a KeyExchange for the same parameter set, swap
// public values, and derive the same shared secret without ever transmitting
// it. All modular exponentiation runs in constant time inside a Montgomery-
// encoded domain, so timing and memory-access patterns do not depend on the
// private exponent.
//
// Basic usage:
//
//	// Both sides agree on a parameter set out of band.
//	alice, err := ffdh.New(ffdh.FFDHE2048, nil)
//	if err != nil {
//	    // handle error
//	}
//	bob, err := ffdh.New(ffdh.FFDHE2048, nil)
//	if err != nil {
//	    // handle error
//	}
//
//	// Exchange public values.
//	var buf [ffdh.MaxPublicKeyLen]byte
//	alicePub, err := alice.PublicKey(buf[:])
//	if err != nil {
//	    // handle error
//	}
//
//	// Single-use agreement: the context is consumed and the raw secret
//	// is handed to the KDF exactly once.
//	key, err := ffdh.AgreeEphemeral(bob, alicePub, func(secret []byte) ([]byte, error) {
//	    return deriveSessionKey(secret) // e.g. HKDF with a protocol label
//	})
//
// SharedSecret returns the raw group element; it accepts any peer value that
// fits the modulus width, including degenerate ones, and performs no
// authentication. Callers must bind identities to the exchanged public
// values by other means and always derive keys through a KDF.
package ffdh
