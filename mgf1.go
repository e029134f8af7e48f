package rsa

import (
	"encoding/binary"
	"hash"
)

// HashFunc names a hash family by its digest constructor, the "capability
// set" spec.md §9 asks MGF1/OAEP/PSS to be polymorphic over. Built with
// NewHashFunc from any hash.Hash constructor (crypto.SHA256.New,
// sha256.New, ...), including one for a hash not registered with the crypto
// package.
type HashFunc struct {
	// New returns a fresh, unused hash.Hash instance.
	New func() hash.Hash
}

// NewHashFunc builds a HashFunc from a hash.Hash constructor.
func NewHashFunc(newHash func() hash.Hash) HashFunc {
	return HashFunc{New: newHash}
}

// Size returns the digest length in bytes (hLen), read from a throwaway
// instance of the hash.
func (h HashFunc) Size() int {
	return h.New().Size()
}

// mgf1 implements the mask generation function from RFC 8017 Appendix B.2.1:
//
//	T = H(seed || I2OSP(0,4)) || H(seed || I2OSP(1,4)) || ...
//
// truncated to length bytes. The precondition length < 2^32 * hLen is never
// close to binding at the message sizes this package handles.
func mgf1(h HashFunc, seed []byte, length int) []byte {
	out := make([]byte, 0, length)
	var counter [4]byte
	digest := h.New()

	for len(out) < length {
		digest.Reset()
		digest.Write(seed)
		digest.Write(counter[:])
		out = digest.Sum(out)
		incCounter(&counter)
	}
	return out[:length]
}

// mgf1Mask XORs data in place with MGF1(seed, len(data)).
func mgf1Mask(h HashFunc, seed, data []byte) {
	mask := mgf1(h, seed, len(data))
	xorBytes(data, mask)
}

// incCounter increments a 4-byte big-endian counter, matching the I2OSP(i,4)
// term in the MGF1 definition.
func incCounter(c *[4]byte) {
	v := binary.BigEndian.Uint32(c[:])
	v++
	binary.BigEndian.PutUint32(c[:], v)
}
