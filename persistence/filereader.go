package persistence

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/jfim/bitio/bitstream"
)

type FileReader struct {
	file *os.File
	buf  *bufio.Reader
	bits *bitstream.BitReader
}

// A compile time check to ensure that FileReader fully implements the Reader interface.
var _ Reader = (*FileReader)(nil)

func NewFileReader(name string) (*FileReader, error) {
	file, err := os.OpenFile(name, os.O_RDONLY, OwnerReadWrite)
	if err != nil {
		return nil, fmt.Errorf("failed to open file for bits reader: %w", err)
	}
	buf := bufio.NewReader(file)

	return &FileReader{
		file,
		buf,
		bitstream.NewReader(buf),
	}, nil
}

// Bits returns the bit stream reading from the file.
func (r *FileReader) Bits() *bitstream.BitReader {
	return r.bits
}

// Seek repositions the file at offset bytes from its start. Any partially
// read byte is dropped.
func (r *FileReader) Seek(offset int64) error {
	if _, err := r.file.Seek(offset, io.SeekStart); err != nil {
		return err
	}
	r.buf.Reset(r.file)
	r.bits.Reset()
	return nil
}

func (r *FileReader) Size() (int64, error) {
	info, err := r.file.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func (r *FileReader) Close() error {
	r.buf = nil
	return r.file.Close()
}
