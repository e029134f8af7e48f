package rsa

import (
	"crypto/subtle"
	"fmt"
	"io"
)

// DefaultSaltLength tells SignPSS/VerifyPSS to use a salt as long as the
// digest (sLen = hLen), the RFC 8017 default.
const DefaultSaltLength = -1

func resolveSaltLength(h HashFunc, sLen int) int {
	if sLen == DefaultSaltLength {
		return h.Size()
	}
	return sLen
}

// EncodePSS builds the EMSA-PSS encoding (§4.8) of msg for a key whose
// modulus has emBits = bits(key)-1 significant bits, with salt length
// sLen. Fails with ErrInvalidMessage if emLen < hLen+sLen+2 -- RFC 8017's
// "encoding error", which this package treats as the abrupt, caller-side
// precondition failure every other encode path uses.
func EncodePSS(h HashFunc, rng io.Reader, emBits, sLen int, msg []byte) ([]byte, error) {
	hLen := h.Size()
	emLen := (emBits + 7) / 8
	if emLen < hLen+sLen+2 {
		return nil, fmt.Errorf("%w: modulus too small for PSS with this hash and salt length", ErrInvalidMessage)
	}

	mHash := digest(h, msg)

	salt := make([]byte, sLen)
	if _, err := io.ReadFull(rng, salt); err != nil {
		return nil, err
	}

	hPrime := pssHPrime(h, mHash, salt)

	db := make([]byte, emLen-hLen-1)
	db[len(db)-sLen-1] = 0x01
	copy(db[len(db)-sLen:], salt)

	mgf1Mask(h, hPrime, db) // db is now maskedDB
	clearTopBits(db, emBits)

	em := make([]byte, 0, emLen)
	em = append(em, db...)
	em = append(em, hPrime...)
	em = append(em, 0xbc)
	return em, nil
}

// pssHPrime computes H' = H(0x00^8 || mHash || salt).
func pssHPrime(h HashFunc, mHash, salt []byte) []byte {
	d := h.New()
	var padding [8]byte
	d.Write(padding[:])
	d.Write(mHash)
	d.Write(salt)
	return d.Sum(nil)
}

// clearTopBits zeroes the 8*emLen-emBits unused high bits of the first byte
// of em, where emLen = len(em).
func clearTopBits(em []byte, emBits int) {
	emLen := len(em)
	numZeroBits := uint(8*emLen - emBits)
	if numZeroBits == 0 {
		return
	}
	em[0] &= 0xff >> numZeroBits
}

// VerifyPSSEncoding checks an EMSA-PSS encoded block em (emLen bytes, emLen
// = ceil(emBits/8)) against msg. Every check -- trailer byte, reserved top
// bits, the 0x01 marker position, and the H' recomputation -- is combined
// with bitwise AND rather than short-circuit evaluation (§4.8).
func VerifyPSSEncoding(h HashFunc, emBits, sLen int, msg, em []byte) bool {
	hLen := h.Size()
	emLen := (emBits + 7) / 8
	if len(em) != emLen || emLen < hLen+sLen+2 {
		return false
	}

	maskedDB := em[:emLen-hLen-1]
	hPrime := em[emLen-hLen-1 : emLen-1]
	trailer := em[emLen-1]

	numZeroBits := uint(8*emLen - emBits)
	var topMask byte
	if numZeroBits > 0 {
		topMask = byte(0xff << (8 - numZeroBits))
	}
	topBitsZero := subtle.ConstantTimeByteEq(maskedDB[0]&topMask, 0)

	db := append([]byte(nil), maskedDB...)
	mgf1Mask(h, hPrime, db)
	clearTopBits(db, emBits)

	expectedIdx := len(db) - sLen - 1
	idx, found := ctFindFirstNonZero(db, 0)

	ok := subtle.ConstantTimeByteEq(trailer, 0xbc)
	ok &= topBitsZero
	ok &= found
	ok &= subtle.ConstantTimeEq(int32(idx), int32(expectedIdx))
	ok &= subtle.ConstantTimeByteEq(safeIndex(db, idx), 0x01)

	salt := db[len(db)-sLen:]
	mHash := digest(h, msg)
	wantHPrime := pssHPrime(h, mHash, salt)
	ok &= subtle.ConstantTimeCompare(hPrime, wantHPrime)

	return ok == 1
}

// SignPSS signs msg under priv using PSS with hash h and salt length sLen
// (DefaultSaltLength for sLen = hLen). No blinding is applied: the
// exponentiation input EM is derived from a random salt and a public hash,
// not secret material an attacker controls across repeated queries.
func SignPSS(priv *PrivateKey, h HashFunc, rng io.Reader, sLen int, msg []byte) ([]byte, error) {
	sLen = resolveSaltLength(h, sLen)
	emBits := priv.Bits() - 1
	em, err := EncodePSS(h, rng, emBits, sLen, msg)
	if err != nil {
		return nil, err
	}
	c, err := DecryptCRT(priv, os2ip(em))
	if err != nil {
		return nil, err
	}
	return i2osp(c, priv.Size()), nil
}

// VerifyPSS verifies a PSS signature. Returns false for any structural or
// cryptographic mismatch, including a signature of the wrong length.
func VerifyPSS(pub *PublicKey, h HashFunc, sLen int, msg, sig []byte) bool {
	sLen = resolveSaltLength(h, sLen)
	k := pub.Size()
	if len(sig) != k {
		return false
	}
	m, err := Encrypt(pub, os2ip(sig))
	if err != nil {
		return false
	}

	emBits := pub.Bits() - 1
	emLen := (emBits + 7) / 8
	if m.BitLen() > emLen*8 {
		return false
	}
	em := i2osp(m, emLen)
	return VerifyPSSEncoding(h, emBits, sLen, msg, em)
}
