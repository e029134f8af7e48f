package rsa

import (
	"crypto/subtle"
	"fmt"
	"io"
)

// MaxMessageLenOAEP returns the largest payload OAEP can carry under pub
// with hash h and no label overhead beyond lHash itself: k - 2*hLen - 2.
func MaxMessageLenOAEP(pub *PublicKey, h HashFunc) int {
	return pub.Size() - 2*h.Size() - 2
}

// EncodeOAEP builds the EME-OAEP encoded message (§4.7) for msg under a
// k-byte modulus, with optional label (empty if nil). Fails with
// ErrInvalidMessage if msg exceeds the scheme's capacity.
func EncodeOAEP(h HashFunc, rng io.Reader, k int, msg, label []byte) ([]byte, error) {
	hLen := h.Size()
	msgMax := k - 2*hLen - 2
	if len(msg) > msgMax {
		return nil, fmt.Errorf("%w: message exceeds OAEP capacity of %d bytes", ErrInvalidMessage, msgMax)
	}

	lHash := digest(h, label)

	db := make([]byte, 0, k-hLen-1)
	db = append(db, lHash...)
	db = append(db, make([]byte, msgMax-len(msg))...)
	db = append(db, 0x01)
	db = append(db, msg...)
	defer wipeBytes(db)

	seed := make([]byte, hLen)
	defer wipeBytes(seed)
	if _, err := io.ReadFull(rng, seed); err != nil {
		return nil, err
	}

	mgf1Mask(h, seed, db) // db is now maskedDB
	maskedSeed := append([]byte(nil), seed...)
	defer wipeBytes(maskedSeed)
	mgf1Mask(h, db, maskedSeed) // maskedSeed = seed XOR MGF1(maskedDB, hLen)

	// em gets its own copies of maskedSeed and db, so the deferred wipes
	// above run after this function returns without touching em's bytes.
	em := make([]byte, 0, k)
	em = append(em, 0x00)
	em = append(em, maskedSeed...)
	em = append(em, db...)
	return em, nil
}

// DecodeOAEP reverses EncodeOAEP. All three structural checks (leading
// byte, label hash, 0x01 marker) are combined with bitwise AND rather than
// short-circuit evaluation, and the failure is a single ErrDecryption: the
// caller cannot tell which check failed, which is what defeats Manger's
// attack (§4.7).
func DecodeOAEP(h HashFunc, em []byte, label []byte) ([]byte, error) {
	// em is a scratch buffer built solely to be decoded (every call site
	// constructs it fresh from i2osp); its bytes are copied into maskedSeed
	// and db below, so it can be wiped unconditionally on exit.
	defer wipeBytes(em)

	hLen := h.Size()
	k := len(em)
	if k < 2*hLen+2 {
		return nil, ErrDecryption
	}

	y := em[0]
	maskedSeed := append([]byte(nil), em[1:1+hLen]...)
	db := append([]byte(nil), em[1+hLen:]...)
	defer wipeBytes(maskedSeed)
	defer wipeBytes(db)

	mgf1Mask(h, db, maskedSeed) // maskedSeed is now recovered seed
	seed := maskedSeed
	mgf1Mask(h, seed, db) // db is now recovered DB

	lHash := digest(h, label)

	idx, found := ctFindFirstNonZero(db, hLen)

	ok := subtle.ConstantTimeByteEq(y, 0x00)
	ok &= subtle.ConstantTimeCompare(db[:hLen], lHash)
	ok &= found
	ok &= subtle.ConstantTimeByteEq(safeIndex(db, idx), 0x01)

	if ok != 1 {
		return nil, ErrDecryption
	}
	// copy the payload out before the deferred wipe above scrubs db, since
	// db[idx+1:] aliases db's backing array.
	return append([]byte(nil), db[idx+1:]...), nil
}

// safeIndex returns data[idx] if idx is in range, else 0x00, which never
// matches the expected 0x01 marker. When ctFindFirstNonZero reports "not
// found", idx is the last scanned position (or 0 if nothing was scanned);
// the byte read there does not matter because the found flag is ANDed into
// the same check.
func safeIndex(data []byte, idx int) byte {
	if idx < 0 || idx >= len(data) {
		return 0x00
	}
	return data[idx]
}

// digest hashes data with h, with an empty input in place of a nil label.
func digest(h HashFunc, data []byte) []byte {
	d := h.New()
	d.Write(data)
	return d.Sum(nil)
}

// EncryptOAEP encrypts msg under pub using OAEP with hash h and label.
func EncryptOAEP(rng io.Reader, h HashFunc, pub *PublicKey, msg, label []byte) ([]byte, error) {
	k := pub.Size()
	em, err := EncodeOAEP(h, rng, k, msg, label)
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

// DecryptOAEP decrypts ct under priv using OAEP with hash h and label,
// returning (plaintext, true) on success or (nil, false) on any failure.
// Blinding defaults are the caller's choice via mode, since an attacker
// able to submit arbitrary ciphertexts to this call is exactly the
// scenario blinding defends against.
func DecryptOAEP(h HashFunc, priv *PrivateKey, ct, label []byte, mode BlindMode) ([]byte, bool) {
	k := priv.Size()
	if len(ct) != k || k < 2*h.Size()+2 {
		return nil, false
	}
	m, err := Decrypt(priv, os2ip(ct), mode)
	if err != nil {
		return nil, false
	}
	defer wipeBigInt(m)
	em := i2osp(m, k)
	msg, err := DecodeOAEP(h, em, label) // em is wiped internally on every exit path
	if err != nil {
		return nil, false
	}
	return msg, true
}
