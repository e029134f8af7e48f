package rsa

import (
	"crypto/subtle"
	"math/big"
)

// xorBytes XORs src into dst in place. dst and src must have equal length;
// every call site in this package sizes them from the same MGF1 output.
func xorBytes(dst, src []byte) {
	if len(dst) != len(src) {
		panic("rsa: xor length mismatch")
	}
	for i := range dst {
		dst[i] ^= src[i]
	}
}

// wipeBytes zeroes data in place. Call it on every exit path of a function
// that held secret material (a plaintext, a padded block, a CRT component)
// in a scratch buffer, per the scoped-acquisition-with-guaranteed-zeroing
// requirement: it is the caller's job never to wipe a slice that aliases a
// value still being returned.
func wipeBytes(data []byte) {
	for i := range data {
		data[i] = 0
	}
}

// wipeBigInt zeroes the words backing x in place, destroying its value.
// Like wipeBytes, only safe on a big.Int this package allocated for
// internal scratch use -- never on one aliased by a value still in flight
// to a caller.
func wipeBigInt(x *big.Int) {
	words := x.Bits()
	for i := range words {
		words[i] = 0
	}
}

// ctFindFirstNonZero scans data starting at offset `from` for the first
// non-zero byte and returns its index. It walks the full slice
// unconditionally -- no early return on the first hit -- so the time taken
// does not leak where, or whether, a match occurred. found is 1 if a
// non-zero byte exists in data[from:], 0 otherwise; when found is 0, index
// is meaningless and callers must check found before using it.
//
// This is the branch-free marker search §9 requires of OAEP/PSS decoding:
// the hazard is a compiler (or a careless rewrite) turning this back into a
// short-circuiting loop, so every step below is a constant-time select
// rather than a conditional return.
func ctFindFirstNonZero(data []byte, from int) (index int, found int) {
	for i := from; i < len(data); i++ {
		isNonZero := 1 - subtle.ConstantTimeByteEq(data[i], 0)
		index = subtle.ConstantTimeSelect(found, index, i)
		found = subtle.ConstantTimeSelect(isNonZero, 1, found)
	}
	return index, found
}

// ctEqual reports whether a and b are equal in time independent of their
// contents, given they already have equal length. Thin wrapper over
// crypto/subtle so every constant-time comparison in this package goes
// through one named spot.
func ctEqual(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
