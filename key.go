package rsa

import (
	"fmt"
	"math/big"
)

var (
	bigZero = big.NewInt(0)
	bigOne  = big.NewInt(1)
	bigTwo  = big.NewInt(2)
	bigThr  = big.NewInt(3)
)

// PublicKey is an RSA public key: the pair (e, n). The invariant 1 < e < n,
// e odd, n the product of two distinct primes, is established by whichever
// constructor produced the private key this was projected from.
type PublicKey struct {
	E *big.Int
	N *big.Int
}

// Bits returns ceil(log2(n)), the bit length of the modulus.
func (pub *PublicKey) Bits() int {
	return pub.N.BitLen()
}

// Size returns ceil(bits/8), the length in bytes of an encoded message,
// ciphertext, or signature under this key.
func (pub *PublicKey) Size() int {
	return (pub.Bits() + 7) / 8
}

// PrivateKey is an RSA private key in CRT form: (e, d, n, p, q, dp, dq,
// qInv), with p > q by convention (qInv is computed as q's inverse mod p,
// so callers must not swap the order of p and q after construction).
type PrivateKey struct {
	E    *big.Int
	D    *big.Int
	N    *big.Int
	P    *big.Int
	Q    *big.Int
	Dp   *big.Int
	Dq   *big.Int
	Qinv *big.Int
}

// Public projects the public key (e, n) from priv.
func (priv *PrivateKey) Public() *PublicKey {
	return &PublicKey{E: priv.E, N: priv.N}
}

// Bits returns ceil(log2(n)).
func (priv *PrivateKey) Bits() int {
	return priv.N.BitLen()
}

// Size returns ceil(bits/8).
func (priv *PrivateKey) Size() int {
	return (priv.Bits() + 7) / 8
}

// NewPrivateKeyFromPrimes derives a full CRT private key from a public
// exponent e and two distinct primes p, q. It fails with ErrInvalidKey when
// p == q, when e < 3, or when e is not invertible modulo phi(n) (i.e.
// gcd(e, p-1) != 1 or gcd(e, q-1) != 1).
//
// On success, p and q are reordered in the returned key so that p > q; qInv
// is computed against that order.
func NewPrivateKeyFromPrimes(e, p, q *big.Int) (*PrivateKey, error) {
	if p.Cmp(q) == 0 {
		return nil, fmt.Errorf("%w: p and q must be distinct primes", ErrInvalidKey)
	}
	if e.Cmp(bigThr) < 0 {
		return nil, fmt.Errorf("%w: e must be at least 3", ErrInvalidKey)
	}

	// canonical order: p > q, so qInv below is q's inverse mod p
	if p.Cmp(q) < 0 {
		p, q = q, p
	}

	pMinus1 := new(big.Int).Sub(p, bigOne)
	qMinus1 := new(big.Int).Sub(q, bigOne)

	if new(big.Int).GCD(nil, nil, e, pMinus1).Cmp(bigOne) != 0 {
		return nil, fmt.Errorf("%w: e is not coprime to p-1", ErrInvalidKey)
	}
	if new(big.Int).GCD(nil, nil, e, qMinus1).Cmp(bigOne) != 0 {
		return nil, fmt.Errorf("%w: e is not coprime to q-1", ErrInvalidKey)
	}

	phi := new(big.Int).Mul(pMinus1, qMinus1)

	d := new(big.Int).ModInverse(e, phi)
	if d == nil {
		return nil, fmt.Errorf("%w: e has no inverse modulo phi(n)", ErrInvalidKey)
	}

	dp := new(big.Int).Mod(d, pMinus1)
	dq := new(big.Int).Mod(d, qMinus1)

	qInv := new(big.Int).ModInverse(q, p)
	if qInv == nil {
		return nil, fmt.Errorf("%w: q has no inverse modulo p", ErrInvalidKey)
	}

	n := new(big.Int).Mul(p, q)

	return &PrivateKey{
		E:    new(big.Int).Set(e),
		D:    d,
		N:    n,
		P:    new(big.Int).Set(p),
		Q:    new(big.Int).Set(q),
		Dp:   dp,
		Dq:   dq,
		Qinv: qInv,
	}, nil
}
