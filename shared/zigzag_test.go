package shared

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestZigZag(t *testing.T) {
	req := require.New(t)

	req.Equal(uint32(0), EncodeZigZag(0))
	req.Equal(uint32(1), EncodeZigZag(-1))
	req.Equal(uint32(2), EncodeZigZag(1))
	req.Equal(uint32(3), EncodeZigZag(-2))
	req.Equal(uint32(4), EncodeZigZag(2))
	req.Equal(uint32(math.MaxUint32-1), EncodeZigZag(math.MaxInt32))
	req.Equal(uint32(math.MaxUint32), EncodeZigZag(math.MinInt32))

	for i := int32(-100); i < 100; i++ {
		req.Equal(i, DecodeZigZag(EncodeZigZag(i)))
	}

	for _, v := range []int32{math.MinInt32, math.MinInt32 + 1, math.MaxInt32 - 1, math.MaxInt32, 1 << 20, -1 << 20} {
		req.Equal(v, DecodeZigZag(EncodeZigZag(v)))
	}
}

func FuzzZigZag(f *testing.F) {
	f.Add(int32(0))
	f.Add(int32(math.MinInt32))
	f.Add(int32(math.MaxInt32))

	f.Fuzz(func(t *testing.T, v int32) {
		u := EncodeZigZag(v)
		require.Equal(t, v, DecodeZigZag(u))
		if v >= 0 {
			require.Equal(t, uint32(v)*2, u)
		} else {
			require.Equal(t, uint32(-(int64(v)))*2-1, u)
		}
	})
}
