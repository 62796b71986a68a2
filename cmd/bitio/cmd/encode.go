package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jfim/bitio/codec"
)

// EncodedExt is the extension of the files written by encode into --out-dir.
const EncodedExt = ".bitr"

func newEncodeCmd(a *app) *cobra.Command {
	encodeCmd := &cobra.Command{
		Use:   "encode IN OUT | encode --out-dir DIR IN...",
		Short: "Encode text samples into a container",
		Long: `Encode reads one decimal sample per line and writes them as a Rice coded container.
With --out-dir every argument is an input, and the containers are written into DIR.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobs, err := makeJobs(args, a.cfg.OutDir, EncodedExt)
			if err != nil {
				return err
			}

			return codec.EncodeFiles(cmd.Context(), jobs, int(a.cfg.Workers),
				codec.WithConfig(a.cfg),
				codec.WithLogger(a.logger),
			)
		},
	}

	addCodecFlags(encodeCmd.Flags(), a.cfg)
	addBatchFlags(encodeCmd.Flags(), a.cfg)

	return encodeCmd
}
