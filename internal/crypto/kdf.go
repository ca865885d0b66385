// Package crypto provides the key-derivation helpers callers feed to
// ephemeral agreement. The raw shared secret of a DH exchange is a group
// element with structure; it must always pass through a KDF before use as
// key material.
package crypto

import (
	"crypto/hmac"
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"
)

// HKDF applies the HMAC-based Extract-and-Expand Key Derivation Function of
// RFC 5869 with SHA-256 to ikm and returns length bytes of output keying
// material.
func HKDF(ikm, salt, info []byte, length int) ([]byte, error) {
	out := make([]byte, length)
	if _, err := io.ReadFull(hkdf.New(sha256.New, ikm, salt, info), out); err != nil {
		return nil, err
	}
	return out, nil
}

// HMACSHA256 computes the HMAC-SHA256 of message under key, for callers that
// bind a confirmation MAC over the exchanged values.
func HMACSHA256(key, message []byte) []byte {
	h := hmac.New(sha256.New, key)
	h.Write(message)
	return h.Sum(nil)
}
