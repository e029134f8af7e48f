package rsa_test

import (
	"math/big"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	rsa "github.com/arrowcrypt/rsa"
)

var _ = Describe("NewPrivateKeyFromPrimes", func() {
	// p=61, q=53, e=17: the textbook RSA example, chosen because its CRT
	// parameters can be checked by hand.
	e := big.NewInt(17)
	p := big.NewInt(61)
	q := big.NewInt(53)

	It("derives n, d, and the CRT parameters", func() {
		priv, err := rsa.NewPrivateKeyFromPrimes(e, p, q)
		Expect(err).NotTo(HaveOccurred())

		Expect(priv.N).To(Equal(big.NewInt(3233)))
		Expect(priv.D).To(Equal(big.NewInt(2753)))
		Expect(priv.Dp).To(Equal(big.NewInt(53)))
		Expect(priv.Dq).To(Equal(big.NewInt(49)))
		Expect(priv.Qinv).To(Equal(big.NewInt(38)))
	})

	It("is idempotent", func() {
		priv1, err := rsa.NewPrivateKeyFromPrimes(e, p, q)
		Expect(err).NotTo(HaveOccurred())
		priv2, err := rsa.NewPrivateKeyFromPrimes(e, p, q)
		Expect(err).NotTo(HaveOccurred())

		Expect(priv1.N).To(Equal(priv2.N))
		Expect(priv1.D).To(Equal(priv2.D))
		Expect(priv1.Dp).To(Equal(priv2.Dp))
		Expect(priv1.Dq).To(Equal(priv2.Dq))
		Expect(priv1.Qinv).To(Equal(priv2.Qinv))
	})

	It("orders p > q regardless of argument order", func() {
		priv, err := rsa.NewPrivateKeyFromPrimes(e, q, p) // q, p swapped
		Expect(err).NotTo(HaveOccurred())
		Expect(priv.P).To(Equal(big.NewInt(61)))
		Expect(priv.Q).To(Equal(big.NewInt(53)))
	})

	It("rejects p == q", func() {
		_, err := rsa.NewPrivateKeyFromPrimes(e, p, p)
		Expect(err).To(MatchError(rsa.ErrInvalidKey))
	})

	It("rejects e < 3", func() {
		_, err := rsa.NewPrivateKeyFromPrimes(big.NewInt(2), p, q)
		Expect(err).To(MatchError(rsa.ErrInvalidKey))
	})

	It("rejects an e that shares a factor with p-1", func() {
		// p-1 = 60 = 2^2 * 3 * 5; e=3 divides 60
		_, err := rsa.NewPrivateKeyFromPrimes(big.NewInt(3), p, q)
		Expect(err).To(MatchError(rsa.ErrInvalidKey))
	})

	It("projects the matching public key", func() {
		priv, err := rsa.NewPrivateKeyFromPrimes(e, p, q)
		Expect(err).NotTo(HaveOccurred())

		pub := priv.Public()
		Expect(pub.E).To(Equal(priv.E))
		Expect(pub.N).To(Equal(priv.N))
	})

	It("computes Bits and Size consistently", func() {
		priv, err := rsa.NewPrivateKeyFromPrimes(e, p, q)
		Expect(err).NotTo(HaveOccurred())

		Expect(priv.Bits()).To(Equal(priv.N.BitLen()))
		Expect(priv.Size()).To(Equal((priv.Bits() + 7) / 8))
		Expect(priv.Public().Bits()).To(Equal(priv.Bits()))
	})
})
