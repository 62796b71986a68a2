package codec

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jfim/bitio/persistence"
)

// Job maps an input file to an output file.
type Job struct {
	Input  string
	Output string
}

// FileStats describes an encoded file.
type FileStats struct {
	Name     string
	FileSize int64
	Header   *Header
}

// BitsPerSample returns the average payload bits spent on a sample.
func (s *FileStats) BitsPerSample() float64 {
	if s.Header.Count == 0 {
		return 0
	}
	return float64(s.Header.PayloadSize) * 8 / float64(s.Header.Count)
}

// EncodeFile encodes samples into filename. The file is replaced atomically.
func EncodeFile(filename string, samples []int32, opts ...Option) (os.FileInfo, error) {
	o := applyOptions(opts)

	fw, err := persistence.NewFileWriter(filename, persistence.WithLogger(o.logger))
	if err != nil {
		return nil, err
	}

	if err := Encode(fw.Bits(), samples, opts...); err != nil {
		fw.Abort()
		return nil, err
	}

	return fw.Close()
}

// DecodeFile decodes the samples stored in filename.
func DecodeFile(filename string, opts ...Option) ([]int32, *Header, error) {
	fr, err := persistence.NewFileReader(filename)
	if err != nil {
		return nil, nil, err
	}
	defer fr.Close()

	return Decode(fr.Bits(), opts...)
}

// Stat reads the header of filename.
func Stat(filename string) (*FileStats, error) {
	fr, err := persistence.NewFileReader(filename)
	if err != nil {
		return nil, err
	}
	defer fr.Close()

	size, err := fr.Size()
	if err != nil {
		return nil, err
	}

	h, err := ReadHeader(fr.Bits())
	if err != nil {
		return nil, fmt.Errorf("%v: %w", filename, err)
	}

	return &FileStats{Name: filename, FileSize: size, Header: h}, nil
}

// EncodeFiles reads text samples from every job input and encodes them into
// the job output. Up to workers jobs run concurrently, each with its own streams.
func EncodeFiles(ctx context.Context, jobs []Job, workers int, opts ...Option) error {
	o := applyOptions(opts)

	return runJobs(ctx, jobs, workers, func(job Job) error {
		data, err := os.ReadFile(job.Input)
		if err != nil {
			return err
		}

		samples, err := ParseSamples(bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("%v: %w", job.Input, err)
		}

		info, err := EncodeFile(job.Output, samples, opts...)
		if err != nil {
			return fmt.Errorf("%v: %w", job.Output, err)
		}

		o.logger.Info("encoded file",
			zap.String("input", job.Input),
			zap.String("output", job.Output),
			zap.Int("samples", len(samples)),
			zap.Int64("size_in_bytes", info.Size()),
		)
		return nil
	})
}

// DecodeFiles decodes every job input and writes the samples as text into the
// job output. Up to workers jobs run concurrently, each with its own streams.
func DecodeFiles(ctx context.Context, jobs []Job, workers int, opts ...Option) error {
	o := applyOptions(opts)

	return runJobs(ctx, jobs, workers, func(job Job) error {
		samples, _, err := DecodeFile(job.Input, opts...)
		if err != nil {
			return fmt.Errorf("%v: %w", job.Input, err)
		}

		buf := bytes.NewBuffer(nil)
		if err := WriteSamples(buf, samples); err != nil {
			return err
		}
		if err := persistence.WriteFile(job.Output, buf); err != nil {
			return fmt.Errorf("%v: %w", job.Output, err)
		}

		o.logger.Info("decoded file",
			zap.String("input", job.Input),
			zap.String("output", job.Output),
			zap.Int("samples", len(samples)),
		)
		return nil
	})
}

func runJobs(ctx context.Context, jobs []Job, workers int, run func(Job) error) error {
	if workers < 1 {
		workers = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, job := range jobs {
		job := job
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return run(job)
		})
	}

	return g.Wait()
}
