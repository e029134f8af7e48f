package rsa

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

// checkMessageRange requires 1 <= m < n, per §4.2 of the primitive op
// contract. Every primitive-level entry point in this file runs it first.
func checkMessageRange(m, n *big.Int) error {
	if m.Sign() <= 0 || m.Cmp(n) >= 0 {
		return fmt.Errorf("%w: integer out of range [1, n)", ErrInvalidMessage)
	}
	return nil
}

// Encrypt computes c = m^e mod n, the textbook RSA encryption primitive.
func Encrypt(pub *PublicKey, m *big.Int) (*big.Int, error) {
	if err := checkMessageRange(m, pub.N); err != nil {
		return nil, err
	}
	return new(big.Int).Exp(m, pub.E, pub.N), nil
}

// DecryptCRT computes m = c^d mod n using the Chinese Remainder Theorem
// form of the private key, roughly 4x faster than a plain c^d mod n:
//
//	m1 = c^dp mod p
//	m2 = c^dq mod q
//	h  = qInv * (m1 - m2) mod p
//	m  = h*q + m2
func DecryptCRT(priv *PrivateKey, c *big.Int) (*big.Int, error) {
	if err := checkMessageRange(c, priv.N); err != nil {
		return nil, err
	}
	return decryptCRTUnchecked(priv, c), nil
}

// decryptCRTUnchecked performs the CRT decrypt without re-validating the
// range of c; callers that have already range-checked (e.g. the blinded
// path, which checks c before blinding it) use this to avoid a redundant
// comparison.
func decryptCRTUnchecked(priv *PrivateKey, c *big.Int) *big.Int {
	m1 := new(big.Int).Exp(c, priv.Dp, priv.P)
	m2 := new(big.Int).Exp(c, priv.Dq, priv.Q)
	defer wipeBigInt(m1)
	defer wipeBigInt(m2)

	h := new(big.Int).Sub(m1, m2)
	defer wipeBigInt(h)
	h.Mul(h, priv.Qinv)
	h.Mod(h, priv.P) // Euclidean remainder: big.Int.Mod is always non-negative

	// m is a fresh Int rather than an alias of h, so wiping h above cannot
	// corrupt the value this function returns.
	m := new(big.Int).Mul(h, priv.Q)
	m.Add(m, m2)
	return m
}

// BlindMode selects whether Decrypt randomizes the ciphertext before
// the secret-key operation, and with which entropy source. The zero value
// is BlindOff; use BlindDefault or BlindWith to enable it.
type BlindMode struct {
	enabled bool
	rng     io.Reader
}

// BlindOff disables blinding. Appropriate only for operations whose
// exponentiation input is not attacker-chosen secret data (e.g. PKCS#1 v1.5
// signing of a caller's own message), never for a secret-key operation over
// attacker-influenced ciphertext.
var BlindOff = BlindMode{}

// BlindDefault enables blinding using crypto/rand.Reader.
func BlindDefault() BlindMode {
	return BlindMode{enabled: true, rng: rand.Reader}
}

// BlindWith enables blinding using a caller-supplied entropy source. The
// reader must not be shared concurrently across calls.
func BlindWith(rng io.Reader) BlindMode {
	return BlindMode{enabled: true, rng: rng}
}

// Decrypt performs the CRT decryption primitive, optionally blinded
// according to mode. Blinding randomizes the integer fed to modular
// exponentiation and defends against timing side channels correlated with
// the ciphertext; it does not change the result.
func Decrypt(priv *PrivateKey, c *big.Int, mode BlindMode) (*big.Int, error) {
	if !mode.enabled {
		return DecryptCRT(priv, c)
	}
	return decryptBlinded(priv, c, mode.rng)
}

// decryptBlinded implements §4.2's blinded decrypt: choose a uniform r in
// [2, n) coprime to n, decrypt r^e*c mod n via CRT, then unblind by
// multiplying by r^-1 mod n.
func decryptBlinded(priv *PrivateKey, c *big.Int, rng io.Reader) (*big.Int, error) {
	if err := checkMessageRange(c, priv.N); err != nil {
		return nil, err
	}

	var r, rInv *big.Int
	for {
		var err error
		r, err = rand.Int(rng, new(big.Int).Sub(priv.N, bigTwo))
		if err != nil {
			return nil, err
		}
		r.Add(r, bigTwo) // r in [2, n)

		rInv = new(big.Int).ModInverse(r, priv.N)
		if rInv != nil {
			break
		}
		// gcd(r, n) != 1: negligible probability for well-formed keys, retry
	}
	defer wipeBigInt(r)
	defer wipeBigInt(rInv)

	rpowe := new(big.Int).Exp(r, priv.E, priv.N)
	defer wipeBigInt(rpowe)
	blinded := new(big.Int).Mul(c, rpowe)
	blinded.Mod(blinded, priv.N)
	defer wipeBigInt(blinded)

	x := decryptCRTUnchecked(priv, blinded)
	defer wipeBigInt(x)

	// m is a fresh Int rather than an alias of x, so wiping x above cannot
	// corrupt the value this function returns.
	m := new(big.Int).Mul(x, rInv)
	m.Mod(m, priv.N)
	return m, nil
}
