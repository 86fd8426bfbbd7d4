package colorspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRGBToYPbPr_ToRGB8_NearInverse(t *testing.T) {
	pixels := []RGB8{
		{R: 0, G: 0, B: 0},
		{R: 255, G: 255, B: 255},
		{R: 255, G: 0, B: 0},
		{R: 0, G: 255, B: 0},
		{R: 0, G: 0, B: 255},
		{R: 128, G: 64, B: 200},
		{R: 17, G: 245, B: 3},
	}

	for _, p := range pixels {
		cv := RGBToYPbPr(p, 255)
		got := YPbPrToRGB8(cv, 255)
		assert.Equal(t, p, got, "round trip for %+v", p)
	}
}

func TestToFloat_DividesByDenom(t *testing.T) {
	f := ToFloat(RGB8{R: 51, G: 102, B: 255}, 255)
	assert.InDelta(t, 0.2, f.R, 1e-9)
	assert.InDelta(t, 0.4, f.G, 1e-9)
	assert.InDelta(t, 1.0, f.B, 1e-9)
}

func TestToYPbPr_MatrixCoefficients(t *testing.T) {
	cv := ToYPbPr(Float{R: 1, G: 0, B: 0})
	assert.InDelta(t, 0.299, cv.Y, 1e-9)
	assert.InDelta(t, -0.168736, cv.Pb, 1e-9)
	assert.InDelta(t, 0.5, cv.Pr, 1e-9)
}

func TestToRGB8_ClampsOutOfGamut(t *testing.T) {
	assert.Equal(t, uint8(0), clampChannel(-0.01, 255))
	assert.Equal(t, uint8(255), clampChannel(1.01, 255))
	assert.Equal(t, uint8(255), clampChannel(1.0, 255))
	assert.Equal(t, uint8(0), clampChannel(0.0, 255))
}

func TestYPbPrToRGB8_ClampsReconstructionOverflow(t *testing.T) {
	// A chroma pair that pushes the reconstructed red channel above 1.0.
	got := YPbPrToRGB8(YPbPr{Y: 1.0, Pb: 0, Pr: 0.5}, 255)
	assert.Equal(t, uint8(255), got.R)
}

func TestRoundTrip_PreservesDenom(t *testing.T) {
	p := RGB8{R: 80, G: 10, B: 5}
	cv := RGBToYPbPr(p, 100)
	got := YPbPrToRGB8(cv, 100)
	assert.Equal(t, p, got)
}
