package cmd

import (
	"bytes"
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpfielding/rpeg/pkg/ppm"
	"github.com/jpfielding/rpeg/pkg/rpeg"
)

// NewStatsCmd builds the "stats" subcommand: it round-trips a PPM through
// the codec in memory and reports the mean absolute error per channel,
// without writing an image anywhere.
func NewStatsCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "report round-trip error for a PPM raster",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, _ := cmd.Flags().GetString("input")
			return runStats(ctx, cmd, in)
		},
	}
	pf := cmd.Flags()
	pf.StringP("input", "i", "-", "input PPM file, - for stdin")
	return cmd
}

func runStats(ctx context.Context, cmd *cobra.Command, inPath string) error {
	in, err := openInput(inPath)
	if err != nil {
		return fmt.Errorf("rpeg: opening input: %w", err)
	}
	defer in.Close()

	raster, err := ppm.Read(in)
	if err != nil {
		return fmt.Errorf("rpeg: reading ppm: %w", err)
	}
	original := &rpeg.Image{Pixels: raster.Pixels, Denom: raster.Denom}

	var buf bytes.Buffer
	if err := rpeg.Compress(ctx, &buf, original); err != nil {
		return fmt.Errorf("rpeg: compressing: %w", err)
	}
	decoded, err := rpeg.Decompress(ctx, &buf)
	if err != nil {
		return fmt.Errorf("rpeg: decompressing: %w", err)
	}

	mae := rpeg.ComputeMAE(original, decoded)
	fmt.Fprintf(cmd.OutOrStdout(), "pixels=%d  R=%.3f  G=%.3f  B=%.3f  overall=%.3f\n",
		mae.Pixels, mae.R, mae.G, mae.B, mae.Overall)
	return nil
}
