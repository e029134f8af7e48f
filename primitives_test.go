package rsa_test

import (
	"bytes"
	"crypto/rand"
	"math/big"
	mathrand "math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	rsa "github.com/arrowcrypt/rsa"
)

var _ = Describe("primitive operations", func() {
	const keyBits = 1024
	priv, err := rsa.GenerateKey(rand.Reader, keyBits)

	It("generates the fixture key", func() {
		Expect(err).NotTo(HaveOccurred())
	})

	pub := priv.Public()

	DescribeTable("encrypt/decrypt round trip under every blinding mode",
		func(mode func() rsa.BlindMode) {
			m := big.NewInt(123456789)
			c, err := rsa.Encrypt(pub, m)
			Expect(err).NotTo(HaveOccurred())

			got, err := rsa.Decrypt(priv, c, mode())
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(m))
		},
		Entry("off", func() rsa.BlindMode { return rsa.BlindOff }),
		Entry("default rng", func() rsa.BlindMode { return rsa.BlindDefault() }),
		Entry("seeded rng", func() rsa.BlindMode { return rsa.BlindWith(mathrand.New(mathrand.NewSource(1))) }),
	)

	It("produces identical plaintexts across blinding modes for a fixed ciphertext", func() {
		m := big.NewInt(42)
		c, err := rsa.Encrypt(pub, m)
		Expect(err).NotTo(HaveOccurred())

		mOff, err := rsa.Decrypt(priv, c, rsa.BlindOff)
		Expect(err).NotTo(HaveOccurred())
		mOn, err := rsa.Decrypt(priv, c, rsa.BlindDefault())
		Expect(err).NotTo(HaveOccurred())
		mSeeded, err := rsa.Decrypt(priv, c, rsa.BlindWith(mathrand.New(mathrand.NewSource(1))))
		Expect(err).NotTo(HaveOccurred())

		Expect(mOff).To(Equal(m))
		Expect(mOn).To(Equal(m))
		Expect(mSeeded).To(Equal(m))
	})

	It("matches plain CRT decryption against plain big.Int exponentiation", func() {
		m := big.NewInt(999)
		c, err := rsa.Encrypt(pub, m)
		Expect(err).NotTo(HaveOccurred())

		want := new(big.Int).Exp(c, priv.D, priv.N)
		got, err := rsa.DecryptCRT(priv, c)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(want))
	})

	DescribeTable("rejects out-of-range messages",
		func(m *big.Int) {
			_, err := rsa.Encrypt(pub, m)
			Expect(err).To(MatchError(rsa.ErrInvalidMessage))
		},
		Entry("zero", big.NewInt(0)),
		Entry("equal to n", priv.N),
		Entry("greater than n", new(big.Int).Add(priv.N, big.NewInt(1))),
	)

	It("rejects an out-of-range ciphertext for decryption", func() {
		_, err := rsa.DecryptCRT(priv, priv.N)
		Expect(err).To(MatchError(rsa.ErrInvalidMessage))
	})

	It("round-trips arbitrary byte-derived integers", func() {
		msg := []byte("a moderately sized plaintext integer")
		m := new(big.Int).SetBytes(msg)
		Expect(m.Cmp(priv.N)).To(BeNumerically("<", 0))

		c, err := rsa.Encrypt(pub, m)
		Expect(err).NotTo(HaveOccurred())
		got, err := rsa.Decrypt(priv, c, rsa.BlindDefault())
		Expect(err).NotTo(HaveOccurred())
		Expect(bytes.Equal(got.Bytes(), msg)).To(BeTrue())
	})
})
