// Package bitstream provides wrappers for byte sinks and sources to allow
// bit-granularity access to the stream, following the LSB pattern, where
// least-significant bits are written/read first.
//
// On top of single bits and fixed-width binary fields of up to 32 bits, the
// package writes and reads unary codes (a run of 0 bits terminated by a
// single 1 bit) and Rice codes (unary(value >> k) followed by the k low bits
// of value). Neither BitWriter nor BitReader is safe for concurrent use.
package bitstream

import (
	"errors"
	"fmt"
	"io"
)

type Bit bool

const (
	Zero Bit = false
	One  Bit = true
)

const (
	// MaxBinaryBits is the widest field accepted by WriteBinary and ReadBinary.
	MaxBinaryBits = 32

	// MaxRiceBits is the widest fixed part accepted by WriteRice and ReadRice.
	MaxRiceBits = 31
)

var (
	// ErrEndOfStream is returned when the byte source is exhausted while bits
	// of the requested field are still needed. It matches io.EOF with errors.Is.
	ErrEndOfStream = fmt.Errorf("bitstream: end of stream: %w", io.EOF)

	// ErrPrecondition is wrapped by every error caused by an out-of-range argument.
	ErrPrecondition = errors.New("bitstream: precondition violation")

	// ErrOverflow is returned when a decoded value does not fit in an int32.
	ErrOverflow = errors.New("bitstream: decoded value overflows int32")
)

func checkNumBits(numBits, max int) error {
	if numBits < 0 || numBits > max {
		return fmt.Errorf("%w: invalid `numBits`; expected: 0..%d, given: %d", ErrPrecondition, max, numBits)
	}
	return nil
}

func checkValue(name string, value int) error {
	if value < 0 || value > maxInt32 {
		return fmt.Errorf("%w: invalid `%s`; expected: 0..%d, given: %d", ErrPrecondition, name, maxInt32, value)
	}
	return nil
}

const maxInt32 = 1<<31 - 1
