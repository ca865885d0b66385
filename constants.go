package ffdh

const (
	// MaxPublicKeyLen is the byte capacity needed to hold a serialized
	// public value or shared secret for any supported group, sized for the
	// 8192-bit modulus.
	MaxPublicKeyLen = 1024

	// MaxSecretLen is the byte capacity needed to hold a private exponent
	// for any supported group. The largest defined secret length is the
	// 52 bytes of ffdhe8192.
	MaxSecretLen = 64
)
