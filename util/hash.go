package util

import (
	"bytes"
	"encoding/hex"

	"github.com/spacemeshos/sha256-simd"
)

// Hash is a sha256 digest.
type Hash []byte

func (h Hash) Equal(other []byte) bool {
	return bytes.Equal(h, other)
}

// Short returns the hex encoding of the first 8 bytes of h.
func (h Hash) Short() string {
	if len(h) > 8 {
		return hex.EncodeToString(h[:8])
	}
	return hex.EncodeToString(h)
}

// CalcHash returns the sha256 digest of the concatenation of byteArrays.
func CalcHash(byteArrays ...[]byte) Hash {
	h := sha256.New()
	for _, ba := range byteArrays {
		h.Write(ba)
	}
	return h.Sum(nil)
}
