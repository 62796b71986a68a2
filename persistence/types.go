package persistence

import (
	"os"

	"github.com/jfim/bitio/bitstream"
)

// OwnerReadWriteExec is a standard owner read / write / exec file permission.
const OwnerReadWriteExec = 0o700

// OwnerReadWrite is a standard owner read / write file permission.
const OwnerReadWrite = 0o600

type Reader interface {
	Bits() *bitstream.BitReader
	Seek(offset int64) error
	Size() (int64, error)
	Close() error
}

type Writer interface {
	Bits() *bitstream.BitWriter
	Flush() error
	Close() (os.FileInfo, error)
}
