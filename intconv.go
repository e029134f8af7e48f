package rsa

import "math/big"

// i2osp implements the Integer-to-Octet-String-Primitive from RFC 8017
// §4.1: it encodes a non-negative integer as a big-endian byte string of
// exactly length bytes, left-zero-padded. It panics if x does not fit,
// which only happens if a caller mis-sized a buffer -- every call site in
// this package sizes length from the modulus it is encoding against.
func i2osp(x *big.Int, length int) []byte {
	if x.Sign() < 0 {
		panic("rsa: i2osp of negative integer")
	}
	buf := make([]byte, length)
	if x.BitLen() > length*8 {
		panic("rsa: integer too large for requested length")
	}
	x.FillBytes(buf)
	return buf
}

// os2ip implements the Octet-String-to-Integer-Primitive from RFC 8017
// §4.2: a big-endian decode of a byte string into a non-negative integer.
func os2ip(b []byte) *big.Int {
	return new(big.Int).SetBytes(b)
}
