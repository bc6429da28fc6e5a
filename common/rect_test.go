package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectWidthHeightAbsolute(t *testing.T) {
	tests := []struct {
		name   string
		rect   Rect[float32]
		width  float32
		height float32
	}{
		{"ordered corners", NewRect[float32](0, 0, 4, 2), 4, 2},
		{"reversed x", NewRect[float32](4, 0, 0, 2), 4, 2},
		{"reversed y", NewRect[float32](0, 2, 4, 0), 4, 2},
		{"both reversed", NewRect[float32](4, 2, 0, 0), 4, 2},
		{"negative coordinates", NewRect[float32](-3, -1, 1, 1), 4, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.width, tt.rect.Width())
			assert.Equal(t, tt.height, tt.rect.Height())
			assert.GreaterOrEqual(t, tt.rect.Width(), float32(0))
			assert.GreaterOrEqual(t, tt.rect.Height(), float32(0))
		})
	}
}

func TestRectOrigin(t *testing.T) {
	r := RectOrigin[float32](8, 6)
	assert.Equal(t, NewRect[float32](0, 0, 8, 6), r)
	assert.Equal(t, float32(8), r.Width())
	assert.Equal(t, float32(6), r.Height())
}

func TestRectScaleTranslate(t *testing.T) {
	r := NewRect[float32](1, 2, 3, 4)
	assert.Equal(t, NewRect[float32](2, 4, 6, 8), r.Scale(2))
	assert.Equal(t, NewRect[float32](11, 22, 13, 24), r.Translate(10, 20))
}

func TestRectEmptyZero(t *testing.T) {
	assert.True(t, Rect[int]{}.IsZero())
	assert.True(t, Rect[int]{}.IsEmpty())
	assert.True(t, NewRect(5, 5, 5, 9).IsEmpty())
	assert.False(t, NewRect(5, 5, 5, 9).IsZero())
	assert.False(t, NewRect(0, 0, 1, 1).IsEmpty())
}

func TestRectCenterRadius(t *testing.T) {
	r := NewRect[float32](0, 0, 10, 4)
	cx, cy := r.Center()
	assert.Equal(t, float32(5), cx)
	assert.Equal(t, float32(2), cy)
	assert.Equal(t, float32(5), r.Radius())
}

func TestRectIntegerInstantiation(t *testing.T) {
	r := NewRect(-2, -2, 2, 6)
	assert.Equal(t, 4, r.Width())
	assert.Equal(t, 8, r.Height())
	cx, cy := r.Center()
	assert.Equal(t, 0, cx)
	assert.Equal(t, 2, cy)
}
