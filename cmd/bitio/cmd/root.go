package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"

	"github.com/davecgh/go-spew/spew"
	"github.com/spacemeshos/smutil"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jfim/bitio/config"
)

var (
	// Version is the version of the binary.
	Version = "0.0.0"

	// Commit is the commit hash of the binary.
	Commit = ""
)

// app holds the state shared by the commands of one invocation.
type app struct {
	cfg         *config.Config
	logger      *zap.Logger
	printConfig bool
}

// NewRootCmd returns the bitio command with all of its subcommands.
func NewRootCmd() *cobra.Command {
	a := &app{cfg: config.DefaultConfig(), logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "bitio",
		Short: "Rice coded sample containers",
		Long: `bitio packs integer samples into a compact bit stream, using zigzag mapping
and Rice codes, and unpacks them again.
For more details take a look at the subcommands.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfg.ConfigFile, "config", a.cfg.ConfigFile, "Path to configuration file")
	flags.StringVar(&a.cfg.LogLevel, "log-level", a.cfg.LogLevel, "Log level (debug, info, warn, error)")
	flags.BoolVar(&a.printConfig, "print-config", false, "Print the effective config")

	rootCmd.AddCommand(
		newEncodeCmd(a),
		newDecodeCmd(a),
		newInspectCmd(a),
		newVersionCmd(),
	)

	return rootCmd
}

// Execute runs the root command and exits with a non-zero code on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	level, err := cfg.Level()
	if err != nil {
		return err
	}
	logger, err := newLogger(level)
	if err != nil {
		return fmt.Errorf("failed to initialize zap logger: %w", err)
	}
	a.logger = logger

	if a.printConfig {
		spew.Fdump(cmd.ErrOrStderr(), cfg)
	}

	return nil
}

// loadConfig merges the defaults, the config file and the flags of cmd.
// Flags set on the command line win over the config file.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	vip := viper.New()
	if err := vip.BindPFlags(cmd.Flags()); err != nil {
		return nil, err
	}

	fileLocation := smutil.GetCanonicalPath(vip.GetString("config"))
	if err := loadConfigFile(fileLocation, vip, cmd.Flags().Changed("config")); err != nil {
		return nil, err
	}

	cfg := config.DefaultConfig()
	if err := vip.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ConfigFile = fileLocation
	if cfg.OutDir != "" {
		cfg.OutDir = smutil.GetCanonicalPath(cfg.OutDir)
	}

	return cfg, nil
}

// loadConfigFile reads fileLocation into vip. A missing file is only an
// error when it was requested explicitly.
func loadConfigFile(fileLocation string, vip *viper.Viper, required bool) error {
	if fileLocation == "" {
		fileLocation = config.DefaultConfigFile
	}

	vip.SetConfigFile(fileLocation)
	if err := vip.ReadInConfig(); err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	return nil
}

func newLogger(level zapcore.Level) (*zap.Logger, error) {
	zapCfg := zap.Config{
		Level:    zap.NewAtomicLevelAt(level),
		Encoding: "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "T",
			LevelKey:       "L",
			NameKey:        "N",
			MessageKey:     "M",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
		},
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}
	return zapCfg.Build()
}

func addCodecFlags(flags *pflag.FlagSet, cfg *config.Config) {
	flags.UintVar(&cfg.RiceK, "rice-k", cfg.RiceK, "Number of fixed bits of every Rice code")
	flags.UintVar(&cfg.BlockSize, "block-size", cfg.BlockSize, "Number of samples between two payload realignments")
}

func addBatchFlags(flags *pflag.FlagSet, cfg *config.Config) {
	flags.UintVar(&cfg.Workers, "workers", cfg.Workers, "Number of files processed concurrently")
	flags.StringVar(&cfg.OutDir, "out-dir", cfg.OutDir, "Output directory; every argument is then an input file")
}
