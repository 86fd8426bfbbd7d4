package quant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeA_Saturates(t *testing.T) {
	assert.Equal(t, 0, EncodeA(-1.0))
	assert.Equal(t, aMax, EncodeA(2.0))
	assert.Equal(t, aMax, EncodeA(1.0))
	assert.Equal(t, 0, EncodeA(0.0))
}

func TestEncodeDecodeA_RoundTrip(t *testing.T) {
	for _, a := range []float64{0, 0.25, 0.5, 0.75, 1.0} {
		code := EncodeA(a)
		decoded := DecodeA(code)
		assert.InDelta(t, a, decoded, 1.0/aMax)
	}
}

func TestEncodeDetail_ClampsThenQuantizes(t *testing.T) {
	assert.Equal(t, bcdMax, EncodeDetail(10.0))
	assert.Equal(t, -bcdMax, EncodeDetail(-10.0))
	assert.Equal(t, 0, EncodeDetail(0.0))
}

func TestEncodeDetail_BoundaryValues(t *testing.T) {
	assert.Equal(t, bcdMax, EncodeDetail(0.3))
	assert.Equal(t, -bcdMax, EncodeDetail(-0.3))
}

func TestDecodeDetail_RoundTrip(t *testing.T) {
	for code := -bcdMax; code <= bcdMax; code++ {
		v := DecodeDetail(code)
		assert.Equal(t, code, EncodeDetail(v))
	}
}

func TestChromaTable_MutualInverse(t *testing.T) {
	for i := 0; i < chromaSize; i++ {
		assert.Equal(t, i, IndexOfChroma(ChromaOfIndex(i)), "index %d", i)
	}
}

func TestChromaTable_CoversFullRange(t *testing.T) {
	assert.Equal(t, 0, IndexOfChroma(-0.5))
	assert.Equal(t, chromaSize-1, IndexOfChroma(0.5))
	assert.Equal(t, 0, IndexOfChroma(-10.0))
	assert.Equal(t, chromaSize-1, IndexOfChroma(10.0))
}

func TestChromaTable_Monotone(t *testing.T) {
	for i := 0; i < chromaSize-1; i++ {
		assert.Less(t, ChromaOfIndex(i), ChromaOfIndex(i+1))
	}
}

func TestEncodeA_FitsBitpackWidth(t *testing.T) {
	for _, a := range []float64{-5, 0, 0.5, 1, 5} {
		code := EncodeA(a)
		assert.GreaterOrEqual(t, code, 0)
		assert.Less(t, code, 1<<AWidth)
	}
}

func TestEncodeDetail_FitsBitpackWidth(t *testing.T) {
	for _, v := range []float64{-5, -0.3, 0, 0.3, 5} {
		code := EncodeDetail(v)
		assert.GreaterOrEqual(t, code, -(1 << (BCDWidth - 1)))
		assert.Less(t, code, 1<<(BCDWidth-1))
	}
}
