package cmd

import (
	"fmt"
	"strconv"

	"code.cloudfoundry.org/bytefmt"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jfim/bitio/codec"
	"github.com/jfim/bitio/util"
)

func newInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect FILE...",
		Short: "Print the headers of containers",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			header := []string{"File", "Size", "Samples", "Rice K", "Block size", "Payload", "Bits/sample", "Checksum"}
			data := make([][]string, 0, len(args))

			for _, name := range args {
				stats, err := codec.Stat(name)
				if err != nil {
					return err
				}
				a.logger.Debug("inspected file",
					zap.String("filename", stats.Name),
					zap.Uint32("count", stats.Header.Count),
				)

				data = append(data, []string{
					stats.Name,
					bytefmt.ByteSize(uint64(stats.FileSize)),
					strconv.FormatUint(uint64(stats.Header.Count), 10),
					strconv.FormatUint(uint64(stats.Header.RiceK), 10),
					strconv.FormatUint(uint64(stats.Header.BlockSize), 10),
					bytefmt.ByteSize(uint64(stats.Header.PayloadSize)),
					fmt.Sprintf("%.2f", stats.BitsPerSample()),
					util.Hash(stats.Header.Checksum[:]).Short(),
				})
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader(header)
			table.SetBorder(true)
			table.AppendBulk(data)
			table.Render()

			return nil
		},
	}
}
