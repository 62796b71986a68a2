package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jfim/bitio/config"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, config.DefaultConfig().Validate())

	tests := []struct {
		name   string
		modify func(cfg *config.Config)
	}{
		{name: "rice k too large", modify: func(cfg *config.Config) { cfg.RiceK = config.MaxRiceK + 1 }},
		{name: "zero block size", modify: func(cfg *config.Config) { cfg.BlockSize = 0 }},
		{name: "block size too large", modify: func(cfg *config.Config) { cfg.BlockSize = config.MaxBlockSize + 1 }},
		{name: "zero workers", modify: func(cfg *config.Config) { cfg.Workers = 0 }},
		{name: "too many workers", modify: func(cfg *config.Config) { cfg.Workers = config.MaxWorkers + 1 }},
		{name: "unknown log level", modify: func(cfg *config.Config) { cfg.LogLevel = "loud" }},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := config.DefaultConfig()
			tc.modify(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func TestValidate_Bounds(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.RiceK = config.MaxRiceK
	cfg.BlockSize = config.MinBlockSize
	cfg.Workers = config.MaxWorkers
	cfg.LogLevel = "debug"
	require.NoError(t, cfg.Validate())

	level, err := cfg.Level()
	require.NoError(t, err)
	require.Equal(t, "debug", level.String())
}
