package bitstream

import (
	"io"
)

// ByteSink accepts one byte at a time.
type ByteSink interface {
	WriteByte(c byte) error
}

// ByteSource produces one byte at a time, and io.EOF once no data is left.
type ByteSource interface {
	ReadByte() (byte, error)
}

// ByteSinkFunc adapts a function to the ByteSink interface.
type ByteSinkFunc func(c byte) error

func (f ByteSinkFunc) WriteByte(c byte) error {
	return f(c)
}

// ByteSourceFunc adapts a function to the ByteSource interface.
type ByteSourceFunc func() (byte, error)

func (f ByteSourceFunc) ReadByte() (byte, error) {
	return f()
}

// A compile time check to ensure that the adapters fully implement the interfaces.
var (
	_ ByteSink   = ByteSinkFunc(nil)
	_ ByteSource = ByteSourceFunc(nil)
	_ ByteSink   = (*writerSink)(nil)
	_ ByteSource = (*readerSource)(nil)
)

type flusher interface {
	Flush() error
}

// NewByteSink returns a ByteSink writing to w. Flushing or closing the sink
// flushes or closes w, when w supports it.
func NewByteSink(w io.Writer) ByteSink {
	s := &writerSink{stream: w}
	s.bw, _ = w.(io.ByteWriter)
	return s
}

// NewByteSource returns a ByteSource reading from r. If r is an io.ByteReader
// it is used as is.
func NewByteSource(r io.Reader) ByteSource {
	if br, ok := r.(io.ByteReader); ok {
		return br
	}
	return &readerSource{stream: r}
}

type writerSink struct {
	stream  io.Writer
	bw      io.ByteWriter
	pending [1]byte
}

func (s *writerSink) WriteByte(c byte) error {
	if s.bw != nil {
		return s.bw.WriteByte(c)
	}

	s.pending[0] = c
	n, err := s.stream.Write(s.pending[:])
	if err != nil {
		return err
	}
	if n != 1 {
		return io.ErrShortWrite
	}
	return nil
}

func (s *writerSink) Flush() error {
	if f, ok := s.stream.(flusher); ok {
		return f.Flush()
	}
	return nil
}

func (s *writerSink) Close() error {
	if c, ok := s.stream.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

type readerSource struct {
	stream  io.Reader
	pending [1]byte
}

// maxEmptyReads bounds the consecutive reads returning neither data nor an error.
const maxEmptyReads = 100

func (s *readerSource) ReadByte() (byte, error) {
	for i := 0; i < maxEmptyReads; i++ {
		n, err := s.stream.Read(s.pending[:])
		if n == 1 {
			// Mask io.EOF for the last byte.
			return s.pending[0], nil
		}
		if err != nil {
			return 0, err
		}
	}
	return 0, io.ErrNoProgress
}
