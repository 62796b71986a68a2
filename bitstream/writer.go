package bitstream

import (
	"io"
)

// BitWriter packs bits into bytes and pushes completed bytes to a ByteSink.
type BitWriter struct {
	sink    ByteSink
	pending byte
	// count is the number of low-order bits of pending already filled.
	// Bits above count are always zero.
	count  uint8
	closed bool
}

// A compile time check to ensure that BitWriter fully implements the io interfaces.
var (
	_ io.WriteCloser = (*BitWriter)(nil)
	_ io.ByteWriter  = (*BitWriter)(nil)
)

// NewWriter returns a new instance of BitWriter writing to w.
func NewWriter(w io.Writer) *BitWriter {
	return NewSinkWriter(NewByteSink(w))
}

// NewSinkWriter returns a new instance of BitWriter writing to sink.
func NewSinkWriter(sink ByteSink) *BitWriter {
	return &BitWriter{sink: sink}
}

// Aligned reports whether no bits are pending.
func (bw *BitWriter) Aligned() bool {
	return bw.count == 0
}

// Pending returns the number of bits written since the last byte boundary.
func (bw *BitWriter) Pending() int {
	return int(bw.count)
}

// WriteBit writes a single bit to the stream, LSB first.
func (bw *BitWriter) WriteBit(bit Bit) error {
	if bit {
		bw.pending |= 1 << bw.count
	}

	bw.count++

	if bw.count == 8 {
		return bw.emit()
	}

	return nil
}

// WriteZeroes advances the stream by count zero bits.
func (bw *BitWriter) WriteZeroes(count int) error {
	if count < 0 {
		return checkValue("count", count)
	}

	// The zeroes fit in the pending byte.
	if count+int(bw.count) < 8 {
		bw.count += uint8(count)
		return nil
	}

	// Complete the pending byte; its unfilled bits are already zero.
	count -= 8 - int(bw.count)
	if err := bw.emit(); err != nil {
		return err
	}

	for ; count >= 8; count -= 8 {
		if err := bw.sink.WriteByte(0); err != nil {
			return err
		}
	}

	bw.count = uint8(count)
	return nil
}

// WriteUnary writes value as a run of value zero bits followed by a one bit.
func (bw *BitWriter) WriteUnary(value int) error {
	if err := checkValue("value", value); err != nil {
		return err
	}

	// The whole code fits in the pending byte without completing it.
	if value+int(bw.count)+1 < 8 {
		bw.pending |= 1 << (uint8(value) + bw.count)
		bw.count += uint8(value) + 1
		return nil
	}

	if err := bw.WriteZeroes(value); err != nil {
		return err
	}
	return bw.WriteBit(One)
}

// WriteBinary writes the numBits LS bits of value, LSB first. Bits of value
// above numBits-1 are ignored.
func (bw *BitWriter) WriteBinary(value uint32, numBits int) error {
	if err := checkNumBits(numBits, MaxBinaryBits); err != nil {
		return err
	}

	// A 64-bit intermediate keeps the mask well defined for numBits == 32.
	val := uint64(value) & (1<<uint(numBits) - 1)
	n := uint8(numBits)

	for n > 0 {
		take := 8 - bw.count
		if take > n {
			take = n
		}

		bw.pending |= byte(val&(1<<take-1)) << bw.count
		bw.count += take
		val >>= take
		n -= take

		if bw.count == 8 {
			if err := bw.emit(); err != nil {
				return err
			}
		}
	}

	return nil
}

// WriteByte writes a single byte to the stream, regardless of the alignment.
// If the byte is to be split due to alignment, the LSB pattern is followed in bit-groups.
func (bw *BitWriter) WriteByte(c byte) error {
	if bw.count == 0 {
		return bw.sink.WriteByte(c)
	}

	// Fill the pending byte MS bits with LS bits.
	if err := bw.sink.WriteByte(bw.pending | c<<bw.count); err != nil {
		return err
	}

	// Fill the new pending byte LS bits with MS bits.
	bw.pending = c >> (8 - bw.count)

	return nil
}

// Write implements io.Writer, writing every byte of p regardless of the alignment.
func (bw *BitWriter) Write(p []byte) (int, error) {
	for i, c := range p {
		if err := bw.WriteByte(c); err != nil {
			return i, err
		}
	}
	return len(p), nil
}

// WriteRice writes value as unary(value >> numFixedBits) followed by the
// numFixedBits LS bits of value. Signed values should be mapped with
// shared.EncodeZigZag beforehand.
func (bw *BitWriter) WriteRice(value int, numFixedBits int) error {
	if err := checkValue("value", value); err != nil {
		return err
	}
	if err := checkNumBits(numFixedBits, MaxRiceBits); err != nil {
		return err
	}

	q := value >> uint(numFixedBits)
	r := value & (1<<uint(numFixedBits) - 1)

	if err := bw.WriteUnary(q); err != nil {
		return err
	}
	return bw.WriteBinary(uint32(r), numFixedBits)
}

// Flush writes out the pending partial byte, with its unfilled MS bits as
// zero, and realigns the stream to a byte boundary. If the underlying stream
// can be flushed, it is flushed as well.
func (bw *BitWriter) Flush() error {
	if bw.count > 0 {
		if err := bw.emit(); err != nil {
			return err
		}
	}

	if f, ok := bw.sink.(flusher); ok {
		return f.Flush()
	}
	return nil
}

// Close flushes the pending bits and closes the underlying stream, if it can
// be closed. Subsequent calls return nil.
func (bw *BitWriter) Close() error {
	if bw.closed {
		return nil
	}

	if err := bw.Flush(); err != nil {
		return err
	}
	bw.closed = true

	if c, ok := bw.sink.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (bw *BitWriter) emit() error {
	if err := bw.sink.WriteByte(bw.pending); err != nil {
		return err
	}
	bw.pending = 0
	bw.count = 0
	return nil
}
