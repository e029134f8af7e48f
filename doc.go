/*
Package rsa implements the RSA cryptosystem from first principles: key
construction, CRT-accelerated and blinded decryption, probabilistic key
generation, and the three standardized encoding schemes built on top --
PKCS#1 v1.5 (encryption and signatures), OAEP (encryption), and PSS
(signatures).

# Overview

A private key is derived from a public exponent and two primes:

	priv, err := rsa.NewPrivateKeyFromPrimes(e, p, q)
	if err != nil {
	    return err
	}

or generated directly:

	priv, err := rsa.GenerateKey(rand.Reader, 2048)

From there, each scheme exposes a matched sign/verify or encrypt/decrypt
pair operating on raw byte messages:

	sig, err := rsa.SignPSS(priv, rsa.NewHashFunc(sha256.New), rand.Reader, rsa.DefaultSaltLength, msg)
	ok := rsa.VerifyPSS(priv.Public(), rsa.NewHashFunc(sha256.New), rsa.DefaultSaltLength, msg, sig)

	ct, err := rsa.EncryptOAEP(rand.Reader, rsa.NewHashFunc(sha256.New), pub, msg, nil)
	pt, ok := rsa.DecryptOAEP(rsa.NewHashFunc(sha256.New), priv, ct, nil, rsa.BlindDefault())

# Decode failures are deliberately opaque

Every decode path -- PKCS#1 v1.5 unpadding, OAEP decoding, PSS
verification -- returns a single sentinel result (ErrDecryption, or false)
regardless of which internal check failed. This is not an oversight: a
decryption oracle that distinguishes "wrong padding" from "wrong hash"
from "wrong length" is exactly what the Bleichenbacher and Manger attacks
exploit. Encoding failures (a message too long for its padding scheme, an
out-of-range integer) are the opposite: they are programmer errors and are
raised abruptly as ordinary Go errors.

# Blinding

Every RSA decryption in this package is a secret-key operation over
attacker-influenced input, so Decrypt, DecryptPKCS1, DecryptOAEP, SignPKCS1
and SignHashed take a BlindMode. BlindOff is available for completeness and
for PKCS#1 v1.5 signing, where the exponentiation input is not secret, but
BlindDefault or BlindWith should be used for anything decrypting ciphertext
supplied by an untrusted party. SignPSS takes no BlindMode and never blinds.

# Sources

	[1] RFC 8017, PKCS #1: RSA Cryptography Specifications Version 2.2
	[2] RFC 2437, PKCS #1: RSA Cryptography Specifications Version 2.0

# Non-goals

This package does not implement key import/export in any standardized
encoding, ASN.1/DER encoding of keys or signatures, multi-prime RSA,
RSA-KEM, or certificate handling. It relies on the standard library for
cryptographic randomness (crypto/rand), hashing (crypto/sha256 and
friends), and arbitrary-precision arithmetic (math/big) -- those are
collaborators this package consumes, not reimplements.
*/
package rsa
