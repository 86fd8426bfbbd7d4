// Package block implements the forward and inverse 2x2 block transform:
// chroma averaging plus the 4-point discrete cosine transform applied to
// the luma tile.
package block

import "github.com/jpfielding/rpeg/pkg/colorspace"

// Quad2x2 holds the four Y/Pb/Pr pixels of a 2x2 tile, indexed Y1 (0,0),
// Y2 (0,1), Y3 (1,0), Y4 (1,1).
type Quad2x2 struct {
	Y1, Y2, Y3, Y4 colorspace.YPbPr
}

// Coeffs holds the per-tile transform coefficients before quantization:
// a is the average luma, b/c/d the DCT detail coefficients, AvgPb/AvgPr
// the averaged chroma.
type Coeffs struct {
	A, B, C, D     float64
	AvgPb, AvgPr float64
}

// Forward computes the chroma averages and luma DCT coefficients of a
// 2x2 tile.
func Forward(q Quad2x2) Coeffs {
	const denom = 4.0
	y1, y2, y3, y4 := q.Y1.Y, q.Y2.Y, q.Y3.Y, q.Y4.Y
	return Coeffs{
		A:     (y4 + y3 + y2 + y1) / denom,
		B:     (y4 + y3 - y2 - y1) / denom,
		C:     (y4 - y3 + y2 - y1) / denom,
		D:     (y4 - y3 - y2 + y1) / denom,
		AvgPb: (q.Y1.Pb + q.Y2.Pb + q.Y3.Pb + q.Y4.Pb) / denom,
		AvgPr: (q.Y1.Pr + q.Y2.Pr + q.Y3.Pr + q.Y4.Pr) / denom,
	}
}

// Inverse reconstructs a 2x2 tile from its coefficients. It is the exact
// algebraic inverse of Forward when b, c, d are not saturated by
// quantization; every pixel in the tile shares AvgPb/AvgPr as its chroma.
func Inverse(c Coeffs) Quad2x2 {
	a, b, cc, d := c.A, c.B, c.C, c.D
	mk := func(y float64) colorspace.YPbPr {
		return colorspace.YPbPr{Y: y, Pb: c.AvgPb, Pr: c.AvgPr}
	}
	return Quad2x2{
		Y1: mk(a - b - cc + d),
		Y2: mk(a - b + cc - d),
		Y3: mk(a + b - cc - d),
		Y4: mk(a + b + cc + d),
	}
}
