package rsa_test

import (
	"crypto/rand"
	"crypto/sha256"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	rsa "github.com/arrowcrypt/rsa"
)

var _ = Describe("OAEP", func() {
	h := rsa.NewHashFunc(sha256.New)
	priv, err := rsa.GenerateKey(rand.Reader, 1024)
	pub := priv.Public()

	It("generates the fixture key", func() {
		Expect(err).NotTo(HaveOccurred())
	})

	It("round-trips a message with no label", func() {
		msg := []byte("the quick brown fox")
		ct, err := rsa.EncryptOAEP(rand.Reader, h, pub, msg, nil)
		Expect(err).NotTo(HaveOccurred())

		got, ok := rsa.DecryptOAEP(h, priv, ct, nil, rsa.BlindDefault())
		Expect(ok).To(BeTrue())
		Expect(got).To(Equal(msg))
	})

	It("round-trips a message with a label", func() {
		msg := []byte("payload")
		label := []byte("context-string")
		ct, err := rsa.EncryptOAEP(rand.Reader, h, pub, msg, label)
		Expect(err).NotTo(HaveOccurred())

		got, ok := rsa.DecryptOAEP(h, priv, ct, label, rsa.BlindDefault())
		Expect(ok).To(BeTrue())
		Expect(got).To(Equal(msg))
	})

	It("fails to decrypt when the label does not match", func() {
		msg := []byte("payload")
		ct, err := rsa.EncryptOAEP(rand.Reader, h, pub, msg, []byte("label-a"))
		Expect(err).NotTo(HaveOccurred())

		_, ok := rsa.DecryptOAEP(h, priv, ct, []byte("label-b"), rsa.BlindDefault())
		Expect(ok).To(BeFalse())
	})

	It("accepts a message at the maximum capacity and rejects one byte more", func() {
		msgMax := rsa.MaxMessageLenOAEP(pub, h)

		okMsg := make([]byte, msgMax)
		ct, err := rsa.EncryptOAEP(rand.Reader, h, pub, okMsg, nil)
		Expect(err).NotTo(HaveOccurred())
		got, ok := rsa.DecryptOAEP(h, priv, ct, nil, rsa.BlindDefault())
		Expect(ok).To(BeTrue())
		Expect(got).To(Equal(okMsg))

		tooLong := make([]byte, msgMax+1)
		_, err = rsa.EncryptOAEP(rand.Reader, h, pub, tooLong, nil)
		Expect(err).To(MatchError(rsa.ErrInvalidMessage))
	})

	It("fails to decrypt a ciphertext of the wrong length without invoking the primitive", func() {
		ct, err := rsa.EncryptOAEP(rand.Reader, h, pub, []byte("x"), nil)
		Expect(err).NotTo(HaveOccurred())

		_, ok := rsa.DecryptOAEP(h, priv, ct[:len(ct)-1], nil, rsa.BlindDefault())
		Expect(ok).To(BeFalse())
	})

	It("fails to decrypt when any byte of the ciphertext is flipped", func() {
		ct, err := rsa.EncryptOAEP(rand.Reader, h, pub, []byte("a sensitive value"), nil)
		Expect(err).NotTo(HaveOccurred())

		for i := range ct {
			mutated := append([]byte(nil), ct...)
			mutated[i] ^= 0x01
			_, ok := rsa.DecryptOAEP(h, priv, mutated, nil, rsa.BlindDefault())
			Expect(ok).To(BeFalse(), "byte %d", i)
		}
	})

	It("round-trips an empty message", func() {
		ct, err := rsa.EncryptOAEP(rand.Reader, h, pub, nil, nil)
		Expect(err).NotTo(HaveOccurred())

		got, ok := rsa.DecryptOAEP(h, priv, ct, nil, rsa.BlindDefault())
		Expect(ok).To(BeTrue())
		Expect(got).To(BeEmpty())
	})
})
