package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"

	"code.cloudfoundry.org/bytefmt"
	"go.uber.org/zap"

	"github.com/jfim/bitio/bitstream"
	"github.com/jfim/bitio/config"
	"github.com/jfim/bitio/shared"
	"github.com/jfim/bitio/util"
)

// Encode writes samples to w as a header followed by the Rice coded payload.
func Encode(w io.Writer, samples []int32, opts ...Option) error {
	o := applyOptions(opts)

	if o.riceK > config.MaxRiceK {
		return fmt.Errorf("invalid `RiceK`; expected: <= %d, given: %d", config.MaxRiceK, o.riceK)
	}
	if o.blockSize < config.MinBlockSize || o.blockSize > config.MaxBlockSize {
		return fmt.Errorf("invalid `BlockSize`; expected: %d..%d, given: %d", config.MinBlockSize, config.MaxBlockSize, o.blockSize)
	}
	if uint64(len(samples)) > math.MaxUint32 {
		return fmt.Errorf("invalid number of samples; expected: <= %d, given: %d", uint32(math.MaxUint32), len(samples))
	}

	payload := bytes.NewBuffer(nil)
	bw := bitstream.NewWriter(payload)
	k := int(o.riceK)

	for i, s := range samples {
		if s < MinSample || s > MaxSample {
			return fmt.Errorf("%w: sample %d; expected: %d..%d, given: %d", ErrSampleRange, i, MinSample, MaxSample, s)
		}

		if err := bw.WriteRice(int(shared.EncodeZigZag(s)), k); err != nil {
			return err
		}

		if uint(i+1)%o.blockSize == 0 {
			if err := bw.Flush(); err != nil {
				return err
			}
		}
	}

	if err := bw.Close(); err != nil {
		return err
	}

	if payload.Len() > MaxPayloadSize {
		return fmt.Errorf("invalid payload size; expected: <= %d, given: %d", MaxPayloadSize, payload.Len())
	}

	h := &Header{
		Magic:       Magic,
		Version:     Version,
		RiceK:       uint32(o.riceK),
		BlockSize:   uint32(o.blockSize),
		Count:       uint32(len(samples)),
		PayloadSize: uint32(payload.Len()),
	}
	copy(h.Checksum[:], util.CalcHash(payload.Bytes()))

	if err := WriteHeader(w, h); err != nil {
		return err
	}
	if _, err := w.Write(payload.Bytes()); err != nil {
		return err
	}

	o.logger.Debug("encoded samples",
		zap.Uint32("count", h.Count),
		zap.Uint32("rice_k", h.RiceK),
		zap.String("payload", bytefmt.ByteSize(uint64(h.PayloadSize))),
	)

	return nil
}

// Decode reads a header and its payload from r and returns the decoded samples.
func Decode(r io.Reader, opts ...Option) ([]int32, *Header, error) {
	o := applyOptions(opts)

	h, err := ReadHeader(r)
	if err != nil {
		return nil, nil, err
	}

	payload := make([]byte, h.PayloadSize)
	if _, err := io.ReadFull(r, payload); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, nil, fmt.Errorf("%w: expected %d bytes", ErrTruncated, h.PayloadSize)
		}
		return nil, nil, err
	}

	if !util.CalcHash(payload).Equal(h.Checksum[:]) {
		return nil, nil, ErrChecksumMismatch
	}

	samples, err := decodePayload(payload, h)
	if err != nil {
		return nil, nil, err
	}

	o.logger.Debug("decoded samples",
		zap.Uint32("count", h.Count),
		zap.Uint32("rice_k", h.RiceK),
		zap.String("payload", bytefmt.ByteSize(uint64(h.PayloadSize))),
	)

	return samples, h, nil
}

func decodePayload(payload []byte, h *Header) ([]int32, error) {
	br := bitstream.NewReader(bytes.NewReader(payload))
	k := int(h.RiceK)

	// Every sample takes at least one bit.
	if uint64(h.Count) > uint64(len(payload))*8 {
		return nil, fmt.Errorf("%w: %d samples in %d bytes", ErrTruncated, h.Count, len(payload))
	}

	samples := make([]int32, h.Count)
	for i := range samples {
		v, err := br.ReadRice(k)
		if err != nil {
			if errors.Is(err, bitstream.ErrEndOfStream) {
				return nil, fmt.Errorf("%w: sample %d of %d", ErrTruncated, i, h.Count)
			}
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		samples[i] = shared.DecodeZigZag(uint32(v))

		if uint32(i+1)%h.BlockSize == 0 {
			br.Align()
		}
	}

	return samples, nil
}
