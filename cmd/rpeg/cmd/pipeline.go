package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jpfielding/rpeg/pkg/ppm"
	"github.com/jpfielding/rpeg/pkg/rpeg"
)

func runCompressFile(ctx context.Context, inPath, outPath string) error {
	in, err := openInput(inPath)
	if err != nil {
		return fmt.Errorf("rpeg: opening input: %w", err)
	}
	defer in.Close()
	out, err := openOutput(outPath)
	if err != nil {
		return fmt.Errorf("rpeg: opening output: %w", err)
	}
	defer out.Close()
	return runCompress(ctx, in, out)
}

func runDecompressFile(ctx context.Context, inPath, outPath string) error {
	in, err := openInput(inPath)
	if err != nil {
		return fmt.Errorf("rpeg: opening input: %w", err)
	}
	defer in.Close()
	out, err := openOutput(outPath)
	if err != nil {
		return fmt.Errorf("rpeg: opening output: %w", err)
	}
	defer out.Close()
	return runDecompress(ctx, in, out)
}

func runCompress(ctx context.Context, in io.Reader, out io.Writer) error {
	start := time.Now()

	raster, err := ppm.Read(in)
	if err != nil {
		return fmt.Errorf("rpeg: reading ppm: %w", err)
	}
	img := &rpeg.Image{Pixels: raster.Pixels, Denom: raster.Denom}
	runID := rpeg.RunID(img)

	slog.InfoContext(ctx, "compress starting",
		"runID", runID,
		"width", img.Pixels.Width(),
		"height", img.Pixels.Height())

	if err := rpeg.Compress(ctx, out, img); err != nil {
		return fmt.Errorf("rpeg: compressing: %w", err)
	}

	tiles := (img.Pixels.Width() / 2) * (img.Pixels.Height() / 2)
	slog.InfoContext(ctx, "compress finished",
		"runID", runID,
		"tiles", tiles,
		"elapsed", time.Since(start).String())
	return nil
}

func runDecompress(ctx context.Context, in io.Reader, out io.Writer) error {
	start := time.Now()

	img, err := rpeg.Decompress(ctx, in)
	if err != nil {
		return fmt.Errorf("rpeg: decompressing: %w", err)
	}
	runID := rpeg.RunID(img)

	slog.InfoContext(ctx, "decompress starting",
		"runID", runID,
		"width", img.Pixels.Width(),
		"height", img.Pixels.Height())

	if err := ppm.WriteBinary(out, &ppm.Image{Pixels: img.Pixels, Denom: img.Denom}); err != nil {
		return fmt.Errorf("rpeg: writing ppm: %w", err)
	}

	tiles := (img.Pixels.Width() / 2) * (img.Pixels.Height() / 2)
	slog.InfoContext(ctx, "decompress finished",
		"runID", runID,
		"tiles", tiles,
		"elapsed", time.Since(start).String())
	return nil
}
