package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

// NewCompressCmd builds the "compress" subcommand.
func NewCompressCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compress",
		Short: "compress a PPM raster into the rpeg format",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, _ := cmd.Flags().GetString("input")
			out, _ := cmd.Flags().GetString("output")
			return runCompressFile(ctx, in, out)
		},
	}
	pf := cmd.Flags()
	pf.StringP("input", "i", "-", "input PPM file, - for stdin")
	pf.StringP("output", "o", "-", "output rpeg file, - for stdout")
	return cmd
}
