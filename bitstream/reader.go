package bitstream

import (
	"errors"
	"io"
)

// BitReader reads bits from a ByteSource.
type BitReader struct {
	source  ByteSource
	current byte
	// pos is the index of the next unread bit of current.
	// 8 means no bits remain and the next read fetches a new byte.
	pos uint8
}

// A compile time check to ensure that BitReader fully implements the io interfaces.
var (
	_ io.ReadCloser = (*BitReader)(nil)
	_ io.ByteReader = (*BitReader)(nil)
)

// NewReader returns a new instance of BitReader reading from r.
func NewReader(r io.Reader) *BitReader {
	if c, ok := r.(io.Closer); ok {
		return NewSourceReader(&closingSource{ByteSource: NewByteSource(r), Closer: c})
	}
	return NewSourceReader(NewByteSource(r))
}

// NewSourceReader returns a new instance of BitReader reading from source.
func NewSourceReader(source ByteSource) *BitReader {
	return &BitReader{source: source, pos: 8}
}

// Aligned reports whether no unread bits remain in the current byte.
func (br *BitReader) Aligned() bool {
	return br.pos == 8
}

// ReadBit reads the next single bit from the stream, LSB first.
func (br *BitReader) ReadBit() (Bit, error) {
	if br.pos == 8 {
		if err := br.fetch(); err != nil {
			return Zero, err
		}
	}

	bit := Bit(br.current&(1<<br.pos) != 0)
	br.pos++

	return bit, nil
}

// ReadUnary counts the zero bits up to the next one bit.
func (br *BitReader) ReadUnary() (int, error) {
	var value int64
	for {
		// The unread bits of the current byte are all zero.
		if br.pos < 8 && br.current>>br.pos == 0 {
			value += int64(8 - br.pos)
			br.pos = 8
		} else {
			bit, err := br.ReadBit()
			if err != nil {
				return 0, err
			}
			if bit {
				return int(value), nil
			}
			value++
		}

		if value > maxInt32 {
			return 0, ErrOverflow
		}
	}
}

// ReadBinary reads the next numBits from the stream as an unsigned value,
// LSB first. Reading 0 bits consumes nothing.
func (br *BitReader) ReadBinary(numBits int) (uint32, error) {
	if err := checkNumBits(numBits, MaxBinaryBits); err != nil {
		return 0, err
	}

	var val uint64
	var filled uint8
	n := uint8(numBits)

	for filled < n {
		if br.pos == 8 {
			if err := br.fetch(); err != nil {
				return 0, err
			}
		}

		take := 8 - br.pos
		if take > n-filled {
			take = n - filled
		}

		bits := uint64(br.current>>br.pos) & (1<<take - 1)
		val |= bits << filled
		filled += take
		br.pos += take
	}

	return uint32(val), nil
}

// ReadRice reads a value written by BitWriter.WriteRice with the same numFixedBits.
func (br *BitReader) ReadRice(numFixedBits int) (int, error) {
	if err := checkNumBits(numFixedBits, MaxRiceBits); err != nil {
		return 0, err
	}

	q, err := br.ReadUnary()
	if err != nil {
		return 0, err
	}

	r, err := br.ReadBinary(numFixedBits)
	if err != nil {
		return 0, err
	}

	value := uint64(q)<<uint(numFixedBits) + uint64(r)
	if value > maxInt32 {
		return 0, ErrOverflow
	}
	return int(value), nil
}

// ReadByte reads the next single byte from the stream, regardless of the alignment.
// If the byte is split, the LSB pattern is followed in bit-groups.
func (br *BitReader) ReadByte() (byte, error) {
	if br.pos == 8 {
		c, err := br.source.ReadByte()
		if err != nil {
			return 0, translate(err)
		}
		return c, nil
	}

	// The byte stream is not aligned.
	// Use the current byte MS bits, combined with the next byte LS bits as MS bits.
	c := br.current >> br.pos

	next, err := br.source.ReadByte()
	if err != nil {
		return 0, translate(err)
	}

	c |= next << (8 - br.pos)
	br.current = next

	return c, nil
}

// Read implements io.Reader, reading whole bytes regardless of the alignment.
// It returns io.EOF once no whole byte is left.
func (br *BitReader) Read(p []byte) (int, error) {
	for i := range p {
		c, err := br.ReadByte()
		if err != nil {
			if errors.Is(err, ErrEndOfStream) {
				if i > 0 {
					return i, nil
				}
				return 0, io.EOF
			}
			return i, err
		}
		p[i] = c
	}
	return len(p), nil
}

// Align discards the unread bits of the current byte, so the next read
// starts at the next byte boundary. Nothing is read from the source.
func (br *BitReader) Align() {
	br.pos = 8
}

// Reset discards any cached partial byte, so the next read fetches from the
// source. Use it when the source has been repositioned.
func (br *BitReader) Reset() {
	br.current = 0
	br.pos = 8
}

// Close closes the underlying source, if it can be closed.
func (br *BitReader) Close() error {
	if c, ok := br.source.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (br *BitReader) fetch() error {
	c, err := br.source.ReadByte()
	if err != nil {
		return translate(err)
	}
	br.current = c
	br.pos = 0
	return nil
}

// translate maps the source end of data signal to ErrEndOfStream.
func translate(err error) error {
	if err == io.EOF {
		return ErrEndOfStream
	}
	return err
}

type closingSource struct {
	ByteSource
	io.Closer
}
