package codec

import (
	"go.uber.org/zap"

	"github.com/jfim/bitio/config"
)

type options struct {
	riceK     uint
	blockSize uint
	logger    *zap.Logger
}

type Option func(*options)

// WithRiceK sets the number of fixed bits of every Rice code.
func WithRiceK(k uint) Option {
	return func(opts *options) {
		opts.riceK = k
	}
}

// WithBlockSize sets the number of samples between two payload realignments.
func WithBlockSize(n uint) Option {
	return func(opts *options) {
		opts.blockSize = n
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(opts *options) {
		opts.logger = logger
	}
}

// WithConfig applies the codec params of cfg.
func WithConfig(cfg *config.Config) Option {
	return func(opts *options) {
		opts.riceK = cfg.RiceK
		opts.blockSize = cfg.BlockSize
	}
}

func applyOptions(opts []Option) options {
	o := options{
		riceK:     config.DefaultRiceK,
		blockSize: config.DefaultBlockSize,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
