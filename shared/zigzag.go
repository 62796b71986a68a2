package shared

// EncodeZigZag maps signed values to unsigned ones so that small magnitudes of
// either sign get small codes: 0, -1, 1, -2, 2, ... become 0, 1, 2, 3, 4, ...
func EncodeZigZag(v int32) uint32 {
	return uint32((v << 1) ^ (v >> 31))
}

// DecodeZigZag is the inverse of EncodeZigZag.
func DecodeZigZag(u uint32) int32 {
	return int32(u>>1) ^ -int32(u&1)
}
