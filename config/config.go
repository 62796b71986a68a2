package config

import (
	"fmt"
	"path/filepath"

	"github.com/spacemeshos/smutil"
	"go.uber.org/zap/zapcore"

	"github.com/jfim/bitio/bitstream"
)

const (
	MaxRiceK = bitstream.MaxRiceBits
	MinRiceK = 0

	MaxBlockSize = 1 << 20
	MinBlockSize = 1

	MaxWorkers = 256
	MinWorkers = 1
)

const (
	DefaultHomeDirName    = "bitio"
	DefaultConfigFileName = "config.toml"

	DefaultRiceK     = 4
	DefaultBlockSize = 4096
	DefaultWorkers   = 4
	DefaultLogLevel  = "info"
)

var (
	DefaultHomeDir    = filepath.Join(smutil.GetUserHomeDirectory(), "."+DefaultHomeDirName)
	DefaultConfigFile = filepath.Join(DefaultHomeDir, DefaultConfigFileName)
)

type Config struct {
	ConfigFile string `mapstructure:"config"`
	LogLevel   string `mapstructure:"log-level"`
	OutDir     string `mapstructure:"out-dir"`

	// Codec params.
	RiceK     uint `mapstructure:"rice-k"`
	BlockSize uint `mapstructure:"block-size"`
	Workers   uint `mapstructure:"workers"`
}

func (cfg *Config) Validate() error {
	if cfg.RiceK > MaxRiceK {
		return fmt.Errorf("invalid `RiceK`; expected: <= %d, given: %d", MaxRiceK, cfg.RiceK)
	}

	if cfg.BlockSize > MaxBlockSize {
		return fmt.Errorf("invalid `BlockSize`; expected: <= %d, given: %d", MaxBlockSize, cfg.BlockSize)
	}

	if cfg.BlockSize < MinBlockSize {
		return fmt.Errorf("invalid `BlockSize`; expected: >= %d, given: %d", MinBlockSize, cfg.BlockSize)
	}

	if cfg.Workers > MaxWorkers {
		return fmt.Errorf("invalid `Workers`; expected: <= %d, given: %d", MaxWorkers, cfg.Workers)
	}

	if cfg.Workers < MinWorkers {
		return fmt.Errorf("invalid `Workers`; expected: >= %d, given: %d", MinWorkers, cfg.Workers)
	}

	if _, err := cfg.Level(); err != nil {
		return fmt.Errorf("invalid `LogLevel`; expected: one of debug, info, warn, error, given: %v", cfg.LogLevel)
	}

	return nil
}

// Level parses LogLevel.
func (cfg *Config) Level() (zapcore.Level, error) {
	return zapcore.ParseLevel(cfg.LogLevel)
}

func DefaultConfig() *Config {
	return &Config{
		ConfigFile: DefaultConfigFile,
		LogLevel:   DefaultLogLevel,

		RiceK:     DefaultRiceK,
		BlockSize: DefaultBlockSize,
		Workers:   DefaultWorkers,
	}
}
