package project

import (
	"golang.org/x/crypto/blake2b"
)

// Digest is a 256-bit content hash, the same width as source.File.Hash.
type Digest [32]byte

// Combine hashes content followed by every part, in order.
func Combine(content Digest, parts ...[]byte) Digest {
	h, err := blake2b.New256(nil)
	if err != nil {
		panic(err) // only fails for oversized keys
	}
	_, _ = h.Write(content[:])
	for _, p := range parts {
		_, _ = h.Write(p)
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
