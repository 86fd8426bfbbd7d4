// Package colorspace converts between 8-bit integer RGB samples and the
// floating-point Y/Pb/Pr component-video representation used by the rest
// of the codec pipeline.
package colorspace

import "math"

// RGB8 is an 8-bit-per-channel RGB pixel, bounded by Denom.
type RGB8 struct {
	R, G, B uint8
}

// Float is an RGB pixel with channels normalized to [0.0, 1.0].
type Float struct {
	R, G, B float64
}

// YPbPr is a component-video pixel: Y in [0,1], Pb and Pr in [-0.5, 0.5].
type YPbPr struct {
	Y, Pb, Pr float64
}

// ToFloat divides each channel of p by denom.
func ToFloat(p RGB8, denom int) Float {
	d := float64(denom)
	return Float{
		R: float64(p.R) / d,
		G: float64(p.G) / d,
		B: float64(p.B) / d,
	}
}

// ToYPbPr applies the standard Y/Pb/Pr component-video matrix.
func ToYPbPr(p Float) YPbPr {
	return YPbPr{
		Y:  0.299*p.R + 0.587*p.G + 0.114*p.B,
		Pb: -0.168736*p.R - 0.331264*p.G + 0.5*p.B,
		Pr: 0.5*p.R - 0.418688*p.G - 0.081312*p.B,
	}
}

// RGBToYPbPr is the forward conversion: 8-bit RGB bounded by denom to
// component video.
func RGBToYPbPr(p RGB8, denom int) YPbPr {
	return ToYPbPr(ToFloat(p, denom))
}

// FromYPbPr applies the inverse matrix, producing float RGB (not yet
// scaled by denom or clamped).
func FromYPbPr(c YPbPr) Float {
	return Float{
		R: c.Y + 1.402*c.Pr,
		G: c.Y - 0.344136*c.Pb - 0.714136*c.Pr,
		B: c.Y + 1.772*c.Pb,
	}
}

// ToRGB8 scales a float pixel by denom, rounds to nearest integer, and
// clamps to [0, denom]. The clamp absorbs the quantization error that can
// otherwise push reconstructed values just outside the unit cube.
func ToRGB8(p Float, denom int) RGB8 {
	return RGB8{
		R: clampChannel(p.R, denom),
		G: clampChannel(p.G, denom),
		B: clampChannel(p.B, denom),
	}
}

// YPbPrToRGB8 is the inverse conversion: component video to 8-bit RGB
// bounded by denom.
func YPbPrToRGB8(c YPbPr, denom int) RGB8 {
	return ToRGB8(FromYPbPr(c), denom)
}

func clampChannel(v float64, denom int) uint8 {
	scaled := math.Round(v * float64(denom))
	switch {
	case scaled < 0:
		return 0
	case scaled > float64(denom):
		return uint8(denom)
	default:
		return uint8(scaled)
	}
}
