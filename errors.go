package rsa

import "errors"

// Errors returned by constructors and raw primitive operations. These are
// always raised abruptly (returned, not swallowed) because they indicate a
// programmer error: a caller handed the library a key or message that
// violates a stated precondition.
var (
	// ErrInvalidKey is returned when key construction preconditions fail:
	// p == q, e not coprime to phi(n), e too small, and so on.
	ErrInvalidKey = errors.New("rsa: invalid key")

	// ErrInvalidArgument is returned for malformed constructor arguments
	// that are not specifically about key material, e.g. a requested bit
	// length that is too small to hold the public exponent.
	ErrInvalidArgument = errors.New("rsa: invalid argument")

	// ErrInvalidMessage is returned when a raw integer message is outside
	// [1, n) for a primitive operation, or a payload exceeds the capacity a
	// padding scheme can carry.
	ErrInvalidMessage = errors.New("rsa: invalid message")
)

// ErrDecryption is the single opaque failure returned by the error-returning
// decoding paths in this package: PKCS#1 v1.5 unpadding and OAEP decoding.
// PSS verification and the Verify*/Decrypt* entry points report the same
// opaque failure as a false result instead. Callers cannot distinguish *why*
// a decode failed (wrong length, bad padding byte, hash mismatch, ...), by
// design -- see the package doc for why that matters.
var ErrDecryption = errors.New("rsa: decryption error")
