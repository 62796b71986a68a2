package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jfim/bitio/codec"
)

// DecodedExt is the extension of the files written by decode into --out-dir.
const DecodedExt = ".txt"

func newDecodeCmd(a *app) *cobra.Command {
	decodeCmd := &cobra.Command{
		Use:   "decode IN OUT | decode --out-dir DIR IN...",
		Short: "Decode a container into text samples",
		Long: `Decode verifies a container and writes its samples, one decimal sample per line.
With --out-dir every argument is an input, and the samples are written into DIR.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobs, err := makeJobs(args, a.cfg.OutDir, DecodedExt)
			if err != nil {
				return err
			}

			return codec.DecodeFiles(cmd.Context(), jobs, int(a.cfg.Workers),
				codec.WithLogger(a.logger),
			)
		},
	}

	addBatchFlags(decodeCmd.Flags(), a.cfg)

	return decodeCmd
}
