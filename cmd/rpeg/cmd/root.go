package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jpfielding/rpeg/pkg/logging"
)

// NewRoot builds the rpeg CLI command tree.
func NewRoot(ctx context.Context) *cobra.Command {
	root := &cobra.Command{
		Use:   "rpeg",
		Short: "a lossy PPM image codec",
		Long:  "rpeg compresses and decompresses plain PPM rasters using a fixed-ratio block transform and quantizer.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logLevel, _ := cmd.Flags().GetString("log-level")
			logFile, _ := cmd.Flags().GetString("log-file")

			var level slog.Level
			if err := level.UnmarshalText([]byte(strings.ToUpper(logLevel))); err != nil {
				level = slog.LevelInfo
			}

			var w = os.Stderr
			var logger *slog.Logger
			if logFile != "" {
				logger = logging.Logger(logging.RotatingWriter(logFile, 50, 3), false, level)
			} else {
				logger = logging.Logger(w, true, level)
			}
			slog.SetDefault(logger)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			compressFile, _ := cmd.Flags().GetString("compress")
			decompressFile, _ := cmd.Flags().GetString("decompress")

			switch {
			case compressFile != "":
				return runCompressFile(ctx, compressFile, "-")
			case decompressFile != "":
				return runDecompressFile(ctx, decompressFile, "-")
			default:
				printCommandTree(cmd, 0)
				return nil
			}
		},
	}

	pf := root.PersistentFlags()
	pf.String("log-level", "INFO", "log level (DEBUG, INFO, WARN, ERROR)")
	pf.String("log-file", "", "rotate logs to this file instead of stderr")

	// -c/-d are single-dash aliases for the compress/decompress subcommands,
	// carried over from the original CLI's switches.
	root.Flags().StringP("compress", "c", "", "compress <file> to stdout")
	root.Flags().StringP("decompress", "d", "", "decompress <file> to stdout")

	root.AddCommand(
		NewCompressCmd(ctx),
		NewDecompressCmd(ctx),
		NewStatsCmd(ctx),
	)
	return root
}

func printCommandTree(cmd *cobra.Command, indent int) {
	fmt.Println(strings.Repeat("\t", indent), cmd.Use+":", cmd.Short)
	for _, sub := range cmd.Commands() {
		printCommandTree(sub, indent+1)
	}
}
