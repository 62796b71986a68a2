// Package codec stores sequences of signed 32-bit samples in a compact
// container: every sample is zigzag mapped and Rice coded with a caller
// supplied parameter, and the resulting bit stream is prefixed by an XDR
// header carrying the parameters, the sample count and a SHA-256 checksum of
// the payload.
//
// The payload is realigned to a byte boundary after every block of
// BlockSize samples, so each block starts on a whole byte.
package codec
