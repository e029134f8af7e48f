package rsa

import (
	"crypto"
	"crypto/subtle"
	"fmt"
	"io"
)

// minPadOverhead is the 11-byte minimum overhead of a PKCS#1 v1.5 padded
// block: the 0x00 and BT leading bytes, at least 8 bytes of PS, and the
// 0x00 separator.
const minPadOverhead = 11

// bt01 and bt02 are the PKCS#1 v1.5 block types: bt01 for signatures
// (deterministic 0xff padding), bt02 for encryption (random non-zero
// padding).
const (
	bt01 byte = 0x01
	bt02 byte = 0x02
)

// PadPKCS1Type01 builds the deterministic EMSA-PKCS1-v1_5 signature
// encoding: 0x00 || 0x01 || 0xff...0xff || 0x00 || msg, of exactly k bytes.
// It fails with ErrInvalidMessage if k - len(msg) < 11.
func PadPKCS1Type01(k int, msg []byte) ([]byte, error) {
	if k-len(msg) < minPadOverhead {
		return nil, fmt.Errorf("%w: message too long for %d-byte key", ErrInvalidMessage, k)
	}
	em := make([]byte, k)
	em[1] = bt01
	psEnd := k - len(msg) - 1
	for i := 2; i < psEnd; i++ {
		em[i] = 0xff
	}
	copy(em[k-len(msg):], msg)
	return em, nil
}

// PadPKCS1Type02 builds the randomized EME-PKCS1-v1_5 encryption encoding:
// 0x00 || 0x02 || PS || 0x00 || msg, where PS is len(PS) >= 8 uniformly
// random non-zero bytes. It fails with ErrInvalidMessage if
// k - len(msg) < 11.
func PadPKCS1Type02(rng io.Reader, k int, msg []byte) ([]byte, error) {
	if k-len(msg) < minPadOverhead {
		return nil, fmt.Errorf("%w: message too long for %d-byte key", ErrInvalidMessage, k)
	}
	em := make([]byte, k)
	em[1] = bt02
	ps := em[2 : k-len(msg)-1]
	if err := fillNonZero(rng, ps); err != nil {
		return nil, err
	}
	copy(em[k-len(msg):], msg)
	return em, nil
}

// fillNonZero fills buf with uniformly random non-zero bytes, sampling a
// block at a time and refilling from rng whenever it runs short -- the
// reference strategy from §4.5.
func fillNonZero(rng io.Reader, buf []byte) error {
	for i := 0; i < len(buf); {
		block := make([]byte, len(buf)-i)
		if _, err := io.ReadFull(rng, block); err != nil {
			return err
		}
		for _, b := range block {
			if b != 0 {
				buf[i] = b
				i++
			}
		}
	}
	return nil
}

// UnpadPKCS1Type01 validates and strips a type-01 (signature) encoding.
// Returns ErrDecryption on any structural mismatch.
func UnpadPKCS1Type01(em []byte) ([]byte, error) {
	return unpadPKCS1(em, bt01)
}

// UnpadPKCS1Type02 validates and strips a type-02 (encryption) encoding.
// The validator is a single branch-free pass (§4.5, §9): whether the
// failure was in the leading bytes, the PS predicate, or the separator is
// never distinguished, so decryption cannot be used as a Bleichenbacher
// oracle.
func UnpadPKCS1Type02(em []byte) ([]byte, error) {
	return unpadPKCS1(em, bt02)
}

func unpadPKCS1(em []byte, bt byte) ([]byte, error) {
	// em is a scratch buffer built solely to be unpadded (every call site
	// constructs it fresh from i2osp); wipe it on every exit path once the
	// payload, if any, has been copied out below.
	defer wipeBytes(em)

	if len(em) < minPadOverhead {
		return nil, ErrDecryption
	}

	ok := subtle.ConstantTimeByteEq(em[0], 0x00)
	ok &= subtle.ConstantTimeByteEq(em[1], bt)

	// Scan the whole block unconditionally -- never return as soon as the
	// separator is spotted -- so a PS-predicate failure, a missing
	// separator, and a too-short PS region all take the same time to
	// detect (§4.5, §9).
	looking := 1 // 1 while still scanning for the 0x00 separator
	sepIdx := 0
	psOK := 1
	for i := 2; i < len(em); i++ {
		wasLooking := looking
		isSep := subtle.ConstantTimeByteEq(em[i], 0x00)

		var matchesPS int
		if bt == bt01 {
			matchesPS = subtle.ConstantTimeByteEq(em[i], 0xff)
		} else {
			matchesPS = 1 - isSep
		}
		byteOK := subtle.ConstantTimeSelect(isSep, 1, matchesPS)

		psOK = subtle.ConstantTimeSelect(wasLooking, psOK&byteOK, psOK)
		sepIdx = subtle.ConstantTimeSelect(wasLooking&isSep, i, sepIdx)
		looking = subtle.ConstantTimeSelect(isSep, 0, looking)
	}

	ok &= psOK
	ok &= 1 - looking // separator must have been found
	ok &= subtle.ConstantTimeLessOrEq(2+8, sepIdx)

	if ok != 1 {
		return nil, ErrDecryption
	}
	// copy the payload out before the deferred wipe above scrubs em, since
	// em[sepIdx+1:] aliases em's backing array.
	return append([]byte(nil), em[sepIdx+1:]...), nil
}

// SignPKCS1 signs msg directly (no hashing) under the deterministic type-01
// encoding: decrypt-primitive over PadPKCS1Type01(byteLen, msg).
func SignPKCS1(priv *PrivateKey, msg []byte, mode BlindMode) ([]byte, error) {
	k := priv.Size()
	em, err := PadPKCS1Type01(k, msg)
	if err != nil {
		return nil, err
	}
	defer wipeBytes(em)
	m := os2ip(em)
	defer wipeBigInt(m)
	c, err := Decrypt(priv, m, mode)
	if err != nil {
		return nil, err
	}
	return i2osp(c, k), nil
}

// VerifyPKCS1 checks a type-01 signature and, on success, returns the
// signed payload and true. Returns (nil, false) if sig has the wrong
// length or fails to unpad.
func VerifyPKCS1(pub *PublicKey, sig []byte) ([]byte, bool) {
	k := pub.Size()
	if len(sig) != k {
		return nil, false
	}
	c := os2ip(sig)
	m, err := Encrypt(pub, c)
	if err != nil {
		return nil, false
	}
	em := i2osp(m, k)
	msg, err := UnpadPKCS1Type01(em)
	if err != nil {
		return nil, false
	}
	return msg, true
}

// EncryptPKCS1 encrypts msg under the randomized type-02 encoding:
// encrypt-primitive over PadPKCS1Type02(byteLen, msg, rng).
func EncryptPKCS1(rng io.Reader, pub *PublicKey, msg []byte) ([]byte, error) {
	k := pub.Size()
	em, err := PadPKCS1Type02(rng, k, msg)
	if err != nil {
		return nil, err
	}
	defer wipeBytes(em)
	m := os2ip(em)
	defer wipeBigInt(m)
	c, err := Encrypt(pub, m)
	if err != nil {
		return nil, err
	}
	return i2osp(c, k), nil
}

// DecryptPKCS1 decrypts a type-02 ciphertext, returning (payload, true) on
// success or (nil, false) on any failure -- wrong length, out-of-range
// integer, or a failed unpad -- without distinguishing the cause.
func DecryptPKCS1(priv *PrivateKey, ct []byte, mode BlindMode) ([]byte, bool) {
	k := priv.Size()
	if len(ct) != k {
		return nil, false
	}
	m, err := Decrypt(priv, os2ip(ct), mode)
	if err != nil {
		return nil, false
	}
	defer wipeBigInt(m)
	em := i2osp(m, k)
	msg, err := UnpadPKCS1Type02(em) // em is wiped internally on every exit path
	if err != nil {
		return nil, false
	}
	return msg, true
}

// HashPrefixes holds the precomputed ASN.1 DER DigestInfo prefix for each
// supported hash, so SignHashed/VerifyHashed avoid a general ASN.1 encoder
// for a fixed, small set of algorithm identifiers (RFC 8017 §9.2 note 1).
var HashPrefixes = map[crypto.Hash][]byte{
	crypto.SHA1:   {0x30, 0x21, 0x30, 0x09, 0x06, 0x05, 0x2b, 0x0e, 0x03, 0x02, 0x1a, 0x05, 0x00, 0x04, 0x14},
	crypto.SHA224: {0x30, 0x2d, 0x30, 0x0d, 0x06, 0x09, 0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02, 0x04, 0x05, 0x00, 0x04, 0x1c},
	crypto.SHA256: {0x30, 0x31, 0x30, 0x0d, 0x06, 0x09, 0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02, 0x01, 0x05, 0x00, 0x04, 0x20},
	crypto.SHA384: {0x30, 0x41, 0x30, 0x0d, 0x06, 0x09, 0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02, 0x02, 0x05, 0x00, 0x04, 0x30},
	crypto.SHA512: {0x30, 0x51, 0x30, 0x0d, 0x06, 0x09, 0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02, 0x03, 0x05, 0x00, 0x04, 0x40},
}

// SignHashed signs a precomputed digest, prefixing the hash's DigestInfo
// ASN.1 prefix per RFC 8017 §9.2 before padding, so the verifier can
// recover which hash was used. hashed must be exactly hash.Size() bytes.
func SignHashed(priv *PrivateKey, hash crypto.Hash, hashed []byte, mode BlindMode) ([]byte, error) {
	prefix, ok := HashPrefixes[hash]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported hash algorithm", ErrInvalidArgument)
	}
	if len(hashed) != hash.Size() {
		return nil, fmt.Errorf("%w: hashed input must be %d bytes", ErrInvalidMessage, hash.Size())
	}
	em := make([]byte, 0, len(prefix)+len(hashed))
	em = append(em, prefix...)
	em = append(em, hashed...)
	return SignPKCS1(priv, em, mode)
}

// VerifyHashed checks a hash-prefixed PKCS#1 v1.5 signature against a
// precomputed digest.
func VerifyHashed(pub *PublicKey, hash crypto.Hash, hashed, sig []byte) bool {
	prefix, ok := HashPrefixes[hash]
	if !ok {
		return false
	}
	payload, ok := VerifyPKCS1(pub, sig)
	if !ok {
		return false
	}
	if len(payload) != len(prefix)+len(hashed) {
		return false
	}
	return ctEqual(payload[:len(prefix)], prefix) && ctEqual(payload[len(prefix):], hashed)
}
