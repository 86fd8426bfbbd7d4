package rpeg

import "math"

// MeanAbsoluteError holds the per-channel and overall mean absolute error
// between an original and a round-tripped image, measured over every pixel
// the two images have in common.
type MeanAbsoluteError struct {
	R, G, B, Overall float64
	Pixels           int
}

// ComputeMAE compares original and roundTripped pixel-by-pixel over their
// shared width/height (the smaller of the two in each dimension, since
// compression trims odd dimensions) and returns the mean absolute error
// per channel.
func ComputeMAE(original, roundTripped *Image) MeanAbsoluteError {
	w := min(original.Pixels.Width(), roundTripped.Pixels.Width())
	h := min(original.Pixels.Height(), roundTripped.Pixels.Height())

	var sumR, sumG, sumB float64
	n := 0
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			orig, _ := original.Pixels.Get(col, row)
			got, _ := roundTripped.Pixels.Get(col, row)
			sumR += math.Abs(float64(orig.R) - float64(got.R))
			sumG += math.Abs(float64(orig.G) - float64(got.G))
			sumB += math.Abs(float64(orig.B) - float64(got.B))
			n++
		}
	}
	if n == 0 {
		return MeanAbsoluteError{}
	}
	r, g, b := sumR/float64(n), sumG/float64(n), sumB/float64(n)
	return MeanAbsoluteError{
		R: r, G: g, B: b,
		Overall: (r + g + b) / 3,
		Pixels:  n,
	}
}
