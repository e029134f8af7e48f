package rsa

import (
	"errors"
	"fmt"
	"io"
	"math/big"
)

// DefaultPublicExponent is used by GenerateKey. 65537 = 2^16 + 1 is prime,
// small enough to keep encryption cheap, and large enough to avoid the
// low-exponent attacks that plague e=3.
var DefaultPublicExponent = big.NewInt(65537)

// primeTestRounds is the iteration count passed to big.Int.ProbablyPrime.
// ProbablyPrime(n) runs n Miller-Rabin rounds plus one Baillie-PSW check
// unconditionally; at n=20 the Miller-Rabin false-positive bound alone is
// 4^-20 (2^-40), and combined with Baillie-PSW (no known composite passes
// both) this comfortably meets the spec's <=2^-128 target for the key sizes
// generated here, matching the margin crypto/rsa.GenerateKey relies on.
const primeTestRounds = 20

// GenerateKey generates a new RSA private key of the requested bit length
// using DefaultPublicExponent.
func GenerateKey(rng io.Reader, bits int) (*PrivateKey, error) {
	return GenerateKeyWithExponent(rng, bits, DefaultPublicExponent)
}

// GenerateKeyWithExponent generates a new RSA private key of the requested
// bit length using the given public exponent e. It requires bits >= 10,
// e >= 3, e prime, and bitlen(e) < bits.
//
// Two primes are sampled, of bits/2 and bits-bits/2 bits respectively, each
// with its top two bits set so the product reliably reaches the requested
// bit length. A sample is rejected (and re-drawn) if p == q or if e is not
// coprime to p-1 or q-1.
func GenerateKeyWithExponent(rng io.Reader, bits int, e *big.Int) (*PrivateKey, error) {
	if bits < 10 {
		return nil, fmt.Errorf("%w: bits must be at least 10", ErrInvalidArgument)
	}
	if e.Cmp(bigThr) < 0 {
		return nil, fmt.Errorf("%w: e must be at least 3", ErrInvalidArgument)
	}
	if !e.ProbablyPrime(primeTestRounds) {
		return nil, fmt.Errorf("%w: e must be prime", ErrInvalidArgument)
	}
	if e.BitLen() >= bits {
		return nil, fmt.Errorf("%w: e does not fit in a %d-bit modulus", ErrInvalidArgument, bits)
	}

	bits1 := bits / 2
	bits2 := bits - bits1

	for {
		p, err := randPrimeExactBits(rng, bits1)
		if err != nil {
			return nil, err
		}
		q, err := randPrimeExactBits(rng, bits2)
		if err != nil {
			return nil, err
		}
		if p.Cmp(q) == 0 {
			continue
		}

		priv, err := NewPrivateKeyFromPrimes(e, p, q)
		if err != nil {
			if errors.Is(err, ErrInvalidKey) {
				// e not coprime to p-1 or q-1: resample both primes
				continue
			}
			return nil, err
		}
		return priv, nil
	}
}

// randPrimeExactBits produces a probable prime of exactly `bits` bits with
// the top two bits set, per §4.3.
func randPrimeExactBits(rng io.Reader, bits int) (*big.Int, error) {
	if bits < 2 {
		return nil, fmt.Errorf("%w: prime bit length must be at least 2", ErrInvalidArgument)
	}

	byteLen := (bits + 7) / 8
	buf := make([]byte, byteLen)

	mask := new(big.Int).Lsh(bigOne, uint(bits))
	mask.Sub(mask, bigOne)

	for {
		if _, err := io.ReadFull(rng, buf); err != nil {
			return nil, err
		}

		p := new(big.Int).SetBytes(buf)
		p.And(p, mask)
		p.SetBit(p, bits-1, 1)
		p.SetBit(p, bits-2, 1)
		p.SetBit(p, 0, 1)

		if p.ProbablyPrime(primeTestRounds) {
			return p, nil
		}
	}
}
