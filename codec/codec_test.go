package codec_test

import (
	"bytes"
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/jfim/bitio/codec"
	"github.com/jfim/bitio/config"
)

func randomSamples(n int, spread int32) []int32 {
	rnd := rand.New(rand.NewSource(int64(n)))
	samples := make([]int32, n)
	for i := range samples {
		samples[i] = rnd.Int31n(2*spread+1) - spread
	}
	return samples
}

func TestEncodeDecode(t *testing.T) {
	tests := []struct {
		name      string
		samples   []int32
		riceK     uint
		blockSize uint
	}{
		{name: "empty", samples: nil, riceK: 4, blockSize: 16},
		{name: "single", samples: []int32{-3}, riceK: 0, blockSize: 1},
		{name: "small values", samples: randomSamples(1000, 20), riceK: 3, blockSize: 64},
		{name: "wide values", samples: randomSamples(500, 1<<20), riceK: 20, blockSize: 7},
		{name: "limits", samples: []int32{codec.MinSample, codec.MaxSample, 0, -1, 1}, riceK: 31, blockSize: 2},
		{name: "one block", samples: randomSamples(100, 100), riceK: 5, blockSize: config.MaxBlockSize},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			req := require.New(t)

			buf := bytes.NewBuffer(nil)
			opts := []codec.Option{
				codec.WithRiceK(tc.riceK),
				codec.WithBlockSize(tc.blockSize),
				codec.WithLogger(zaptest.NewLogger(t)),
			}
			req.NoError(codec.Encode(buf, tc.samples, opts...))

			samples, h, err := codec.Decode(buf, codec.WithLogger(zaptest.NewLogger(t)))
			req.NoError(err)
			req.Equal(uint32(len(tc.samples)), h.Count)
			req.Equal(uint32(tc.riceK), h.RiceK)
			req.Equal(uint32(tc.blockSize), h.BlockSize)
			req.Len(samples, len(tc.samples))
			for i := range tc.samples {
				req.Equal(tc.samples[i], samples[i], "sample %d", i)
			}
			req.Zero(buf.Len())
		})
	}
}

func TestEncode_Layout(t *testing.T) {
	req := require.New(t)

	// zigzag(21) = 42, Rice coded with k = 4: 0x54 once realigned.
	buf := bytes.NewBuffer(nil)
	req.NoError(codec.Encode(buf, []int32{21, 21}, codec.WithRiceK(4), codec.WithBlockSize(1)))

	h, err := codec.ReadHeader(buf)
	req.NoError(err)
	req.Equal(codec.Magic, h.Magic)
	req.Equal(uint32(codec.Version), h.Version)
	req.Equal(uint32(2), h.PayloadSize)
	req.Equal([]byte{0x54, 0x54}, buf.Bytes())
}

func TestEncode_Invalid(t *testing.T) {
	req := require.New(t)

	buf := bytes.NewBuffer(nil)
	err := codec.Encode(buf, []int32{codec.MaxSample + 1})
	req.ErrorIs(err, codec.ErrSampleRange)
	err = codec.Encode(buf, []int32{codec.MinSample - 1})
	req.ErrorIs(err, codec.ErrSampleRange)

	req.Error(codec.Encode(buf, []int32{1}, codec.WithRiceK(32)))
	req.Error(codec.Encode(buf, []int32{1}, codec.WithBlockSize(0)))
	req.Zero(buf.Len())
}

func TestDecode_Corrupt(t *testing.T) {
	samples := randomSamples(200, 50)
	encoded := bytes.NewBuffer(nil)
	require.NoError(t, codec.Encode(encoded, samples, codec.WithRiceK(4)))
	data := encoded.Bytes()

	tests := []struct {
		name   string
		modify func(data []byte) []byte
		err    error
	}{
		{name: "magic", modify: func(data []byte) []byte { data[0] = 'X'; return data }, err: codec.ErrBadMagic},
		{name: "version", modify: func(data []byte) []byte { data[7] = 9; return data }, err: codec.ErrUnsupportedVersion},
		{name: "rice k", modify: func(data []byte) []byte { data[11] = 32; return data }, err: codec.ErrCorruptHeader},
		{name: "block size", modify: func(data []byte) []byte { copy(data[12:16], []byte{0, 0, 0, 0}); return data }, err: codec.ErrCorruptHeader},
		{name: "payload", modify: func(data []byte) []byte { data[len(data)-1] ^= 0xFF; return data }, err: codec.ErrChecksumMismatch},
		{name: "truncated", modify: func(data []byte) []byte { return data[:len(data)-3] }, err: codec.ErrTruncated},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			corrupted := tc.modify(append([]byte(nil), data...))
			_, _, err := codec.Decode(bytes.NewReader(corrupted))
			require.ErrorIs(t, err, tc.err)
		})
	}
}

func TestSamples(t *testing.T) {
	req := require.New(t)

	input := "# header\n1\n\n  -2 \n2147483647\n-2147483648\n"
	samples, err := codec.ParseSamples(strings.NewReader(input))
	req.NoError(err)
	req.Equal([]int32{1, -2, 2147483647, -2147483648}, samples)

	buf := bytes.NewBuffer(nil)
	req.NoError(codec.WriteSamples(buf, samples))
	req.Equal("1\n-2\n2147483647\n-2147483648\n", buf.String())

	_, err = codec.ParseSamples(strings.NewReader("1\nabc\n"))
	req.ErrorContains(err, "line 2")
	_, err = codec.ParseSamples(strings.NewReader("2147483648\n"))
	req.Error(err)
}

func TestFiles(t *testing.T) {
	req := require.New(t)

	dir := t.TempDir()
	logger := zaptest.NewLogger(t)

	var encodeJobs, decodeJobs []codec.Job
	expected := make(map[string][]int32)
	for i := 0; i < 8; i++ {
		samples := randomSamples(100*(i+1), int32(10*(i+1)))
		input := filepath.Join(dir, fmt.Sprintf("in-%d.txt", i))
		encoded := filepath.Join(dir, "enc", fmt.Sprintf("out-%d.bitr", i))
		decoded := filepath.Join(dir, "dec", fmt.Sprintf("out-%d.txt", i))

		buf := bytes.NewBuffer(nil)
		req.NoError(codec.WriteSamples(buf, samples))
		req.NoError(os.WriteFile(input, buf.Bytes(), 0o600))

		encodeJobs = append(encodeJobs, codec.Job{Input: input, Output: encoded})
		decodeJobs = append(decodeJobs, codec.Job{Input: encoded, Output: decoded})
		expected[decoded] = samples
	}

	ctx := context.Background()
	req.NoError(codec.EncodeFiles(ctx, encodeJobs, 3, codec.WithRiceK(3), codec.WithLogger(logger)))
	req.NoError(codec.DecodeFiles(ctx, decodeJobs, 3, codec.WithLogger(logger)))

	for name, samples := range expected {
		data, err := os.ReadFile(name)
		req.NoError(err)
		decoded, err := codec.ParseSamples(bytes.NewReader(data))
		req.NoError(err)
		req.Equal(samples, decoded)
	}

	stats, err := codec.Stat(encodeJobs[0].Output)
	req.NoError(err)
	req.Equal(uint32(100), stats.Header.Count)
	req.Equal(uint32(3), stats.Header.RiceK)
	req.Greater(stats.FileSize, int64(stats.Header.PayloadSize))
	req.Greater(stats.BitsPerSample(), 0.0)
}

func TestFiles_Error(t *testing.T) {
	req := require.New(t)

	dir := t.TempDir()
	jobs := []codec.Job{{Input: filepath.Join(dir, "missing.txt"), Output: filepath.Join(dir, "out.bitr")}}
	req.Error(codec.EncodeFiles(context.Background(), jobs, 0))

	_, err := os.Stat(jobs[0].Output)
	req.True(os.IsNotExist(err))

	bad := filepath.Join(dir, "bad.bitr")
	req.NoError(os.WriteFile(bad, bytes.Repeat([]byte("not a container "), 8), 0o600))
	_, _, err = codec.DecodeFile(bad)
	req.ErrorIs(err, codec.ErrBadMagic)

	_, err = codec.Stat(bad)
	req.ErrorIs(err, codec.ErrBadMagic)
}

func TestEncodeFile_KeepsPrevious(t *testing.T) {
	req := require.New(t)

	filename := filepath.Join(t.TempDir(), "samples.bitr")
	_, err := codec.EncodeFile(filename, []int32{1, 2, 3})
	req.NoError(err)

	_, err = codec.EncodeFile(filename, []int32{codec.MaxSample + 1})
	req.ErrorIs(err, codec.ErrSampleRange)

	samples, _, err := codec.DecodeFile(filename)
	req.NoError(err)
	req.Equal([]int32{1, 2, 3}, samples)
}
