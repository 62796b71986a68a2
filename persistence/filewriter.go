package persistence

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
	"go.uber.org/zap"

	"github.com/jfim/bitio/bitstream"
)

var ErrClosed = errors.New("persistence: file already closed")

// FileWriter writes a bit stream to a temporary file next to its destination.
// Close replaces the destination with the temporary file atomically, so a
// failed or aborted write never leaves a truncated file behind.
type FileWriter struct {
	file     *os.File
	buf      *bufio.Writer
	bits     *bitstream.BitWriter
	filename string
	logger   *zap.Logger
}

// A compile time check to ensure that FileWriter fully implements the Writer interface.
var _ Writer = (*FileWriter)(nil)

func NewFileWriter(filename string, opts ...Option) (*FileWriter, error) {
	o := applyOptions(opts)

	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, OwnerReadWriteExec); err != nil {
		return nil, fmt.Errorf("dir creation failure: %w", err)
	}

	f, err := os.CreateTemp(dir, filepath.Base(filename)+".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create file for bits writer: %w", err)
	}
	if err := f.Chmod(OwnerReadWrite); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return nil, err
	}

	buf := bufio.NewWriter(f)
	return &FileWriter{
		file:     f,
		buf:      buf,
		bits:     bitstream.NewWriter(buf),
		filename: filename,
		logger:   o.logger,
	}, nil
}

// Bits returns the bit stream writing to the file.
func (w *FileWriter) Bits() *bitstream.BitWriter {
	return w.bits
}

// Name returns the destination file name.
func (w *FileWriter) Name() string {
	return w.filename
}

// Flush realigns the bit stream and flushes the buffered bytes to disk.
func (w *FileWriter) Flush() error {
	if w.file == nil {
		return ErrClosed
	}

	if err := w.bits.Flush(); err != nil {
		return fmt.Errorf("failed to flush disk writer: %w", err)
	}

	return nil
}

// Close flushes pending bits, closes the file and moves it to its destination.
func (w *FileWriter) Close() (os.FileInfo, error) {
	if err := w.Flush(); err != nil {
		w.Abort()
		return nil, err
	}

	tmp := w.file.Name()
	err := w.file.Close()
	w.file = nil
	w.buf = nil
	if err != nil {
		_ = os.Remove(tmp)
		return nil, err
	}

	if err := atomic.ReplaceFile(tmp, w.filename); err != nil {
		_ = os.Remove(tmp)
		return nil, fmt.Errorf("failed to replace %v: %w", w.filename, err)
	}

	info, err := os.Stat(w.filename)
	if err != nil {
		return nil, err
	}

	w.logger.Debug("closing file",
		zap.String("filename", w.filename),
		zap.Int64("size_in_bytes", info.Size()),
	)

	return info, nil
}

// Abort closes and removes the temporary file, leaving the destination untouched.
func (w *FileWriter) Abort() {
	if w.file == nil {
		return
	}

	tmp := w.file.Name()
	_ = w.file.Close()
	_ = os.Remove(tmp)
	w.file = nil
	w.buf = nil

	w.logger.Debug("aborted file", zap.String("filename", w.filename))
}

// WriteFile atomically replaces filename with the content of r.
func WriteFile(filename string, r io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(filename), OwnerReadWriteExec); err != nil {
		return fmt.Errorf("dir creation failure: %w", err)
	}
	return atomic.WriteFile(filename, r)
}
