// Package quant maps the block transform's floating-point coefficients to
// the fixed-width integer fields of a codeword, and back. Field widths are
// contract, not tunables: a is 9-bit unsigned, b/c/d are 5-bit signed each,
// and the averaged chroma channels are 4-bit indices into a 16-entry table.
package quant

import "math"

const (
	// AWidth is the bit width of the quantized average-luma field.
	AWidth = 9
	// BCDWidth is the bit width of each detail-coefficient field.
	BCDWidth = 5
	// ChromaWidth is the bit width of each chroma-index field.
	ChromaWidth = 4

	aMax       = (1 << AWidth) - 1
	bcdMax   = (1 << (BCDWidth - 1)) - 1
	bcdClamp = 0.3
	// bcdScale is bcdMax/bcdClamp = 15/0.3, written as a literal.
	bcdScale   = 50.0
	chromaSize = 1 << ChromaWidth
)

// EncodeA quantizes the average luma a (expected in [0,1]) into [0, 511],
// saturating out-of-range inputs rather than erroring.
func EncodeA(a float64) int {
	return saturateInt(math.Round(a*aMax), 0, aMax)
}

// DecodeA recovers the average luma from its quantized field.
func DecodeA(code int) float64 {
	return float64(code) / aMax
}

// EncodeDetail quantizes a b/c/d detail coefficient: clamp to [-0.3, 0.3],
// then scale into [-15, 15].
func EncodeDetail(v float64) int {
	clamped := saturateFloat(v, -bcdClamp, bcdClamp)
	return saturateInt(math.Round(clamped*bcdScale), -bcdMax, bcdMax)
}

// DecodeDetail recovers a b/c/d detail coefficient from its quantized field.
func DecodeDetail(code int) float64 {
	return float64(code) / bcdScale
}

// chromaTable is the inverse (index -> bucket center) lookup of a uniform
// 16-step quantizer across [-0.5, 0.5], built so that every bucket center
// maps back to its own index under IndexOfChroma.
var chromaTable [chromaSize]float64

func init() {
	for i := range chromaTable {
		chromaTable[i] = chromaOfIndexExact(i)
	}
	for i := range chromaTable {
		if IndexOfChroma(chromaTable[i]) != i {
			panic("quant: chroma table is not its own inverse")
		}
	}
}

func chromaOfIndexExact(i int) float64 {
	return -0.5 + (float64(i)+0.5)/float64(chromaSize)
}

// ChromaOfIndex returns the representative chroma value for index i,
// i in [0, 15].
func ChromaOfIndex(i int) float64 {
	return chromaTable[saturateInt(float64(i), 0, chromaSize-1)]
}

// IndexOfChroma returns the table index whose bucket contains chroma,
// saturating chroma to [-0.5, 0.5] first.
func IndexOfChroma(chroma float64) int {
	c := saturateFloat(chroma, -0.5, 0.5)
	idx := int(math.Floor((c + 0.5) * float64(chromaSize)))
	return saturateInt(float64(idx), 0, chromaSize-1)
}

func saturateInt(v float64, lo, hi int) int {
	switch {
	case v < float64(lo):
		return lo
	case v > float64(hi):
		return hi
	default:
		return int(v)
	}
}

func saturateFloat(v, lo, hi float64) float64 {
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	default:
		return v
	}
}
