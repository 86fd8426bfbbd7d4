// Package rpeg orchestrates the codec end to end: it walks an image in
// 2x2 tile order, drives the colorspace, block, and quant stages per tile,
// and assembles or disassembles the big-endian compressed byte stream.
package rpeg

import (
	"bufio"
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/jpfielding/rpeg/pkg/array2"
	"github.com/jpfielding/rpeg/pkg/bitpack"
	"github.com/jpfielding/rpeg/pkg/block"
	"github.com/jpfielding/rpeg/pkg/colorspace"
	"github.com/jpfielding/rpeg/pkg/quant"
)

// Magic is the literal header line every compressed stream begins with.
const Magic = "COMP40 Compressed image format 2\n"

// OutputDenom is the max-value the decompressor always emits, regardless
// of the denom the original image carried.
const OutputDenom = 255

// ErrBadHeader is returned when the compressed stream's magic line or
// dimension line is missing or malformed.
var ErrBadHeader = errors.New("rpeg: bad header")

// ErrFormatError is returned when the compressed payload is truncated or
// not a multiple of 4 bytes.
var ErrFormatError = errors.New("rpeg: malformed compressed payload")

// Image is an RGB raster plus its source max-value.
type Image struct {
	Pixels *array2.Array2[colorspace.RGB8]
	Denom  int
}

// codeWord packs a tile's quantized coefficients into a 32-bit word, MSB
// to LSB: a(9,23) b(5,18) c(5,13) d(5,8) avgPb(4,4) avgPr(4,0).
type codeWord struct {
	a, b, c, d       int
	indexPb, indexPr int
}

func (w codeWord) pack() uint32 {
	var word uint64
	word = putUnsignedMust(word, quant.AWidth, 23, uint64(w.a))
	word = putSignedMust(word, quant.BCDWidth, 18, int64(w.b))
	word = putSignedMust(word, quant.BCDWidth, 13, int64(w.c))
	word = putSignedMust(word, quant.BCDWidth, 8, int64(w.d))
	word = putUnsignedMust(word, quant.ChromaWidth, 4, uint64(w.indexPb))
	word = putUnsignedMust(word, quant.ChromaWidth, 0, uint64(w.indexPr))
	return uint32(word)
}

func unpackCodeWord(word uint32) codeWord {
	w := uint64(word)
	return codeWord{
		a:       int(bitpack.GetUnsigned(w, quant.AWidth, 23)),
		b:       int(bitpack.GetSigned(w, quant.BCDWidth, 18)),
		c:       int(bitpack.GetSigned(w, quant.BCDWidth, 13)),
		d:       int(bitpack.GetSigned(w, quant.BCDWidth, 8)),
		indexPb: int(bitpack.GetUnsigned(w, quant.ChromaWidth, 4)),
		indexPr: int(bitpack.GetUnsigned(w, quant.ChromaWidth, 0)),
	}
}

// Compress trims img to even dimensions, runs the forward pipeline tile by
// tile in row-major tile order, and writes the framed compressed stream to
// w.
func Compress(ctx context.Context, w io.Writer, img *Image) error {
	trimmed := img.Pixels.TrimToEven()
	width, height := trimmed.Width(), trimmed.Height()

	ypbpr := array2.Map(trimmed, func(p colorspace.RGB8) colorspace.YPbPr {
		return colorspace.RGBToYPbPr(p, img.Denom)
	})

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%s%d %d\n", Magic, width, height); err != nil {
		return fmt.Errorf("rpeg: writing header: %w", err)
	}

	tileCols, tileRows := width/2, height/2
	for tr := 0; tr < tileRows; tr++ {
		if tr%64 == 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}
		for tc := 0; tc < tileCols; tc++ {
			quad, err := gatherTile(ypbpr, tc, tr)
			if err != nil {
				return err
			}
			coeffs := block.Forward(quad)
			cw := quantizeCoeffs(coeffs)

			var word [4]byte
			binary.BigEndian.PutUint32(word[:], cw.pack())
			if _, err := bw.Write(word[:]); err != nil {
				return fmt.Errorf("rpeg: writing codeword: %w", err)
			}
		}
	}
	return bw.Flush()
}

// Decompress parses a framed compressed stream from r and runs the inverse
// pipeline tile by tile, producing a denom=255 image.
func Decompress(ctx context.Context, r io.Reader) (*Image, error) {
	br := bufio.NewReader(r)

	width, height, err := readHeader(br)
	if err != nil {
		return nil, err
	}

	payload, err := io.ReadAll(br)
	if err != nil {
		return nil, fmt.Errorf("rpeg: reading payload: %w", err)
	}
	if len(payload)%4 != 0 {
		return nil, fmt.Errorf("rpeg: payload length %d not a multiple of 4: %w", len(payload), ErrFormatError)
	}
	wantWords := (width / 2) * (height / 2)
	if len(payload) != wantWords*4 {
		return nil, fmt.Errorf("rpeg: expected %d words, got %d: %w", wantWords, len(payload)/4, ErrFormatError)
	}

	out := array2.New(width, height, colorspace.RGB8{})

	tileCols := width / 2
	idx := 0
	for tr := 0; tr < height/2; tr++ {
		if tr%64 == 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
		}
		for tc := 0; tc < tileCols; tc++ {
			word := binary.BigEndian.Uint32(payload[idx*4 : idx*4+4])
			idx++

			cw := unpackCodeWord(word)
			coeffs := dequantizeCodeWord(cw)
			quad := block.Inverse(coeffs)

			scatterTile(out, tc, tr, quad)
		}
	}

	return &Image{Pixels: out, Denom: OutputDenom}, nil
}

func gatherTile(ypbpr *array2.Array2[colorspace.YPbPr], tc, tr int) (block.Quad2x2, error) {
	col, row := 2*tc, 2*tr
	y1, err := ypbpr.Get(col, row)
	if err != nil {
		return block.Quad2x2{}, err
	}
	y2, err := ypbpr.Get(col+1, row)
	if err != nil {
		return block.Quad2x2{}, err
	}
	y3, err := ypbpr.Get(col, row+1)
	if err != nil {
		return block.Quad2x2{}, err
	}
	y4, err := ypbpr.Get(col+1, row+1)
	if err != nil {
		return block.Quad2x2{}, err
	}
	return block.Quad2x2{Y1: y1, Y2: y2, Y3: y3, Y4: y4}, nil
}

func scatterTile(out *array2.Array2[colorspace.RGB8], tc, tr int, quad block.Quad2x2) {
	col, row := 2*tc, 2*tr
	_ = out.Set(col, row, colorspace.YPbPrToRGB8(quad.Y1, OutputDenom))
	_ = out.Set(col+1, row, colorspace.YPbPrToRGB8(quad.Y2, OutputDenom))
	_ = out.Set(col, row+1, colorspace.YPbPrToRGB8(quad.Y3, OutputDenom))
	_ = out.Set(col+1, row+1, colorspace.YPbPrToRGB8(quad.Y4, OutputDenom))
}

func quantizeCoeffs(c block.Coeffs) codeWord {
	return codeWord{
		a:       quant.EncodeA(c.A),
		b:       quant.EncodeDetail(c.B),
		c:       quant.EncodeDetail(c.C),
		d:       quant.EncodeDetail(c.D),
		indexPb: quant.IndexOfChroma(c.AvgPb),
		indexPr: quant.IndexOfChroma(c.AvgPr),
	}
}

func dequantizeCodeWord(cw codeWord) block.Coeffs {
	return block.Coeffs{
		A:     quant.DecodeA(cw.a),
		B:     quant.DecodeDetail(cw.b),
		C:     quant.DecodeDetail(cw.c),
		D:     quant.DecodeDetail(cw.d),
		AvgPb: quant.ChromaOfIndex(cw.indexPb),
		AvgPr: quant.ChromaOfIndex(cw.indexPr),
	}
}

func readHeader(br *bufio.Reader) (width, height int, err error) {
	magicBuf := make([]byte, len(Magic))
	if _, err := io.ReadFull(br, magicBuf); err != nil {
		return 0, 0, fmt.Errorf("rpeg: reading magic: %w", errors.Join(err, ErrBadHeader))
	}
	if !bytes.Equal(magicBuf, []byte(Magic)) {
		return 0, 0, fmt.Errorf("rpeg: magic line %q: %w", magicBuf, ErrBadHeader)
	}

	dimLine, err := br.ReadString('\n')
	if err != nil {
		return 0, 0, fmt.Errorf("rpeg: reading dimension line: %w", errors.Join(err, ErrBadHeader))
	}
	var w, h int
	n, serr := fmt.Sscanf(dimLine, "%d %d\n", &w, &h)
	if serr != nil || n != 2 {
		return 0, 0, fmt.Errorf("rpeg: dimension line %q: %w", dimLine, ErrBadHeader)
	}
	if w <= 0 || h <= 0 || w%2 != 0 || h%2 != 0 {
		return 0, 0, fmt.Errorf("rpeg: dimensions %dx%d: %w", w, h, ErrBadHeader)
	}
	return w, h, nil
}

func putUnsignedMust(word uint64, width, lsb uint, value uint64) uint64 {
	got, err := bitpack.PutUnsigned(word, width, lsb, value)
	if err != nil {
		panic(fmt.Sprintf("rpeg: quantizer produced an out-of-range field: %v", err))
	}
	return got
}

func putSignedMust(word uint64, width, lsb uint, value int64) uint64 {
	got, err := bitpack.PutSigned(word, width, lsb, value)
	if err != nil {
		panic(fmt.Sprintf("rpeg: quantizer produced an out-of-range field: %v", err))
	}
	return got
}
