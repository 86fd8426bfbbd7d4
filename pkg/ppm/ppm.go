// Package ppm reads and writes plain portable-pixmap rasters (P3 ASCII and
// P6 binary, 8-bit-per-channel RGB). It is the codec's external
// collaborator: everything here produces or consumes a colorspace.RGB8
// raster plus its declared max-value (denom), and knows nothing about the
// compression pipeline.
package ppm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/jpfielding/rpeg/pkg/array2"
	"github.com/jpfielding/rpeg/pkg/colorspace"
)

// ErrFormat is returned when the input is not a recognizable PPM stream.
var ErrFormat = errors.New("ppm: malformed input")

// Image is a decoded PPM raster plus its source max-value.
type Image struct {
	Pixels *array2.Array2[colorspace.RGB8]
	Denom  int
}

// Read parses a plain PPM (P3 or P6) from r.
func Read(r io.Reader) (*Image, error) {
	br := bufio.NewReader(r)

	magic, err := readToken(br)
	if err != nil {
		return nil, fmt.Errorf("ppm: reading magic: %w", err)
	}
	if magic != "P3" && magic != "P6" {
		return nil, fmt.Errorf("ppm: unsupported magic %q: %w", magic, ErrFormat)
	}

	width, err := readIntToken(br)
	if err != nil {
		return nil, fmt.Errorf("ppm: reading width: %w", err)
	}
	height, err := readIntToken(br)
	if err != nil {
		return nil, fmt.Errorf("ppm: reading height: %w", err)
	}
	denom, err := readIntToken(br)
	if err != nil {
		return nil, fmt.Errorf("ppm: reading max value: %w", err)
	}
	if width <= 0 || height <= 0 || denom <= 0 || denom > 255 {
		return nil, fmt.Errorf("ppm: invalid header %dx%d maxval=%d: %w", width, height, denom, ErrFormat)
	}

	cells := make([]colorspace.RGB8, width*height)
	if magic == "P6" {
		// readIntToken already consumed the single whitespace byte that
		// separates the header from the binary sample section.
		buf := make([]byte, width*height*3)
		if _, err := io.ReadFull(br, buf); err != nil {
			return nil, fmt.Errorf("ppm: reading binary samples: %w", err)
		}
		for i := range cells {
			cells[i] = colorspace.RGB8{R: buf[3*i], G: buf[3*i+1], B: buf[3*i+2]}
		}
	} else {
		for i := range cells {
			r, err := readIntToken(br)
			if err != nil {
				return nil, fmt.Errorf("ppm: reading red sample %d: %w", i, err)
			}
			g, err := readIntToken(br)
			if err != nil {
				return nil, fmt.Errorf("ppm: reading green sample %d: %w", i, err)
			}
			b, err := readIntToken(br)
			if err != nil {
				return nil, fmt.Errorf("ppm: reading blue sample %d: %w", i, err)
			}
			cells[i] = colorspace.RGB8{R: uint8(r), G: uint8(g), B: uint8(b)}
		}
	}

	pixels, err := array2.FromRowMajor(width, height, cells)
	if err != nil {
		return nil, fmt.Errorf("ppm: %w", err)
	}
	return &Image{Pixels: pixels, Denom: denom}, nil
}

// WriteBinary emits img as a P6 binary PPM.
func WriteBinary(w io.Writer, img *Image) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n%d\n", img.Pixels.Width(), img.Pixels.Height(), img.Denom); err != nil {
		return fmt.Errorf("ppm: writing header: %w", err)
	}
	for _, cell := range img.Pixels.IterRowMajor() {
		if _, err := bw.Write([]byte{cell.Value.R, cell.Value.G, cell.Value.B}); err != nil {
			return fmt.Errorf("ppm: writing samples: %w", err)
		}
	}
	return bw.Flush()
}

// readToken skips leading whitespace and '#'-prefixed comment lines, then
// reads one whitespace-delimited token.
func readToken(br *bufio.Reader) (string, error) {
	var buf []byte
	for {
		b, err := br.ReadByte()
		if err != nil {
			return "", err
		}
		if b == '#' {
			if err := skipLine(br); err != nil {
				return "", err
			}
			continue
		}
		if isSpace(b) {
			if len(buf) > 0 {
				return string(buf), nil
			}
			continue
		}
		buf = append(buf, b)
	}
}

func readIntToken(br *bufio.Reader) (int, error) {
	tok, err := readToken(br)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("ppm: %q is not an integer: %w", tok, ErrFormat)
	}
	return n, nil
}

func skipLine(br *bufio.Reader) error {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return err
		}
		if b == '\n' {
			return nil
		}
	}
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n':
		return true
	default:
		return false
	}
}
