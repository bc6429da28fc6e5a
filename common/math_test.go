package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// mulPoint applies a column-major matrix to a point with w=1.
func mulPoint(m []float32, x, y float32) (float32, float32) {
	ox := m[0]*x + m[4]*y + m[12]
	oy := m[1]*x + m[5]*y + m[13]
	return ox, oy
}

func TestIdentity(t *testing.T) {
	m := make([]float32, 16)
	Identity(m)
	x, y := mulPoint(m, 3, -7)
	assert.Equal(t, float32(3), x)
	assert.Equal(t, float32(-7), y)
}

func TestMul4Identity(t *testing.T) {
	a := make([]float32, 16)
	b := make([]float32, 16)
	out := make([]float32, 16)
	Identity(a)
	Translation(b, 5, 6, 0)
	Mul4(out, a, b)
	assert.Equal(t, b, out)
}

func TestOrthoMapsViewportCorners(t *testing.T) {
	m := make([]float32, 16)
	Ortho(m, 800, 600)

	x, y := mulPoint(m, 0, 0)
	assert.InDelta(t, -1.0, x, 1e-6)
	assert.InDelta(t, -1.0, y, 1e-6)

	x, y = mulPoint(m, 800, 600)
	assert.InDelta(t, 1.0, x, 1e-6)
	assert.InDelta(t, 1.0, y, 1e-6)

	x, y = mulPoint(m, 400, 300)
	assert.InDelta(t, 0.0, x, 1e-6)
	assert.InDelta(t, 0.0, y, 1e-6)
}

func TestTranslationScaling(t *testing.T) {
	m := make([]float32, 16)
	Translation(m, 10, 20, 0)
	x, y := mulPoint(m, 1, 1)
	assert.Equal(t, float32(11), x)
	assert.Equal(t, float32(21), y)

	Scaling(m, 2, 3, 1)
	x, y = mulPoint(m, 4, 4)
	assert.Equal(t, float32(8), x)
	assert.Equal(t, float32(12), y)
}

func TestSliceToBytes(t *testing.T) {
	data := []float32{1, 2, 3}
	b := SliceToBytes(data)
	assert.Len(t, b, 12)
	assert.Nil(t, SliceToBytes[float32](nil))
}

func TestStructToBytes(t *testing.T) {
	v := struct {
		A [2]float32
		B uint32
	}{}
	b := StructToBytes(&v)
	assert.Len(t, b, 12)
}
