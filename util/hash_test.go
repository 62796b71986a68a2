package util

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCalcHash(t *testing.T) {
	req := require.New(t)

	h := CalcHash([]byte("a "), []byte("string"))
	req.Len(h, 32)
	req.True(h.Equal(CalcHash([]byte("a string"))))
	req.False(h.Equal(CalcHash([]byte("another string"))))

	req.Equal("e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", hex.EncodeToString(CalcHash()))
}

func TestHash_Short(t *testing.T) {
	req := require.New(t)

	req.Equal("e3b0c44298fc1c14", CalcHash().Short())
	req.Equal("0102", Hash{1, 2}.Short())
}
