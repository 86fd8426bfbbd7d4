package block

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jpfielding/rpeg/pkg/colorspace"
)

func sampleQuad() Quad2x2 {
	return Quad2x2{
		Y1: colorspace.YPbPr{Y: 0.1, Pb: 0.05, Pr: -0.1},
		Y2: colorspace.YPbPr{Y: 0.4, Pb: 0.10, Pr: -0.2},
		Y3: colorspace.YPbPr{Y: 0.6, Pb: 0.02, Pr: 0.05},
		Y4: colorspace.YPbPr{Y: 0.9, Pb: -0.08, Pr: 0.15},
	}
}

func TestForward_Averages(t *testing.T) {
	q := sampleQuad()
	c := Forward(q)
	assert.InDelta(t, (0.05+0.10+0.02-0.08)/4, c.AvgPb, 1e-12)
	assert.InDelta(t, (-0.1-0.2+0.05+0.15)/4, c.AvgPr, 1e-12)
	assert.InDelta(t, (0.9+0.6+0.4+0.1)/4, c.A, 1e-12)
}

func TestForwardInverse_ExactWithoutQuantization(t *testing.T) {
	q := sampleQuad()
	c := Forward(q)
	back := Inverse(c)

	assert.InDelta(t, q.Y1.Y, back.Y1.Y, 1e-9)
	assert.InDelta(t, q.Y2.Y, back.Y2.Y, 1e-9)
	assert.InDelta(t, q.Y3.Y, back.Y3.Y, 1e-9)
	assert.InDelta(t, q.Y4.Y, back.Y4.Y, 1e-9)

	for _, p := range []colorspace.YPbPr{back.Y1, back.Y2, back.Y3, back.Y4} {
		assert.InDelta(t, c.AvgPb, p.Pb, 1e-12)
		assert.InDelta(t, c.AvgPr, p.Pr, 1e-12)
	}
}

func TestForwardInverse_Zero(t *testing.T) {
	var q Quad2x2
	c := Forward(q)
	back := Inverse(c)
	assert.Equal(t, q, back)
}

func TestForward_UniformTileHasNoDetail(t *testing.T) {
	cv := colorspace.YPbPr{Y: 0.5, Pb: 0.1, Pr: -0.1}
	q := Quad2x2{Y1: cv, Y2: cv, Y3: cv, Y4: cv}
	c := Forward(q)
	assert.InDelta(t, 0.5, c.A, 1e-12)
	assert.InDelta(t, 0.0, c.B, 1e-12)
	assert.InDelta(t, 0.0, c.C, 1e-12)
	assert.InDelta(t, 0.0, c.D, 1e-12)
}
