package codec

import (
	"errors"
	"fmt"
	"io"

	xdr "github.com/nullstyle/go-xdr/xdr3"

	"github.com/jfim/bitio/bitstream"
)

const (
	Version = 1

	// MaxPayloadSize bounds the payload read into memory by Decode.
	MaxPayloadSize = 1 << 30

	// MinSample and MaxSample bound the samples whose zigzag code fits in an int32.
	MinSample = -1 << 30
	MaxSample = 1<<30 - 1
)

var Magic = [4]byte{'B', 'I', 'T', 'R'}

var (
	ErrBadMagic           = errors.New("codec: bad magic")
	ErrUnsupportedVersion = errors.New("codec: unsupported version")
	ErrCorruptHeader      = errors.New("codec: corrupt header")
	ErrChecksumMismatch   = errors.New("codec: checksum mismatch")
	ErrTruncated          = errors.New("codec: truncated payload")
	ErrSampleRange        = errors.New("codec: sample out of range")
)

type Header struct {
	Magic       [4]byte
	Version     uint32
	RiceK       uint32
	BlockSize   uint32
	Count       uint32
	PayloadSize uint32
	Checksum    [32]byte
}

func (h *Header) validate() error {
	if h.Magic != Magic {
		return ErrBadMagic
	}

	if h.Version != Version {
		return fmt.Errorf("%w: expected: %d, given: %d", ErrUnsupportedVersion, Version, h.Version)
	}

	if h.RiceK > bitstream.MaxRiceBits {
		return fmt.Errorf("%w: invalid `RiceK`; expected: <= %d, given: %d", ErrCorruptHeader, bitstream.MaxRiceBits, h.RiceK)
	}

	if h.BlockSize == 0 {
		return fmt.Errorf("%w: invalid `BlockSize`; expected: > 0, given: 0", ErrCorruptHeader)
	}

	if h.PayloadSize > MaxPayloadSize {
		return fmt.Errorf("%w: invalid `PayloadSize`; expected: <= %d, given: %d", ErrCorruptHeader, MaxPayloadSize, h.PayloadSize)
	}

	return nil
}

// WriteHeader serializes h to w.
func WriteHeader(w io.Writer, h *Header) error {
	if _, err := xdr.Marshal(w, h); err != nil {
		return fmt.Errorf("serialization failure: %w", err)
	}
	return nil
}

// ReadHeader deserializes and validates a header from r.
func ReadHeader(r io.Reader) (*Header, error) {
	h := &Header{}
	if _, err := xdr.Unmarshal(r, h); err != nil {
		return nil, fmt.Errorf("deserialization failure: %w", err)
	}

	if err := h.validate(); err != nil {
		return nil, err
	}

	return h, nil
}
