package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

// NewDecompressCmd builds the "decompress" subcommand.
func NewDecompressCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decompress",
		Short: "decompress an rpeg stream back into a PPM raster",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, _ := cmd.Flags().GetString("input")
			out, _ := cmd.Flags().GetString("output")
			return runDecompressFile(ctx, in, out)
		},
	}
	pf := cmd.Flags()
	pf.StringP("input", "i", "-", "input rpeg file, - for stdin")
	pf.StringP("output", "o", "-", "output PPM file, - for stdout")
	return cmd
}
