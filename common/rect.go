package common

// Scalar constrains the coordinate types a Rect can be instantiated with.
type Scalar interface {
	~int | ~int32 | ~int64 | ~uint32 | ~float32 | ~float64
}

// Rect is an axis-aligned rectangle described by two corner points.
// The corners are not required to be ordered: Width and Height use
// absolute-difference semantics, so a Rect with x1 > x2 is as valid as
// its mirror image.
type Rect[T Scalar] struct {
	X1, Y1 T
	X2, Y2 T
}

// NewRect creates a rectangle from two corner points.
//
// Parameters:
//   - x1, y1: first corner
//   - x2, y2: opposite corner
//
// Returns:
//   - Rect[T]: the rectangle spanning the two corners
func NewRect[T Scalar](x1, y1, x2, y2 T) Rect[T] {
	return Rect[T]{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// RectOrigin creates a rectangle anchored at (0,0) with the given extent.
//
// Parameters:
//   - w: extent along the x axis
//   - h: extent along the y axis
//
// Returns:
//   - Rect[T]: the rectangle (0,0)..(w,h)
func RectOrigin[T Scalar](w, h T) Rect[T] {
	return Rect[T]{X2: w, Y2: h}
}

// Width returns the horizontal extent as an absolute difference.
func (r Rect[T]) Width() T {
	if r.X2 > r.X1 {
		return r.X2 - r.X1
	}
	return r.X1 - r.X2
}

// Height returns the vertical extent as an absolute difference.
func (r Rect[T]) Height() T {
	if r.Y2 > r.Y1 {
		return r.Y2 - r.Y1
	}
	return r.Y1 - r.Y2
}

// Scale multiplies all four coordinates by s.
func (r Rect[T]) Scale(s T) Rect[T] {
	return Rect[T]{X1: r.X1 * s, Y1: r.Y1 * s, X2: r.X2 * s, Y2: r.Y2 * s}
}

// Translate shifts the rectangle by (dx, dy).
func (r Rect[T]) Translate(dx, dy T) Rect[T] {
	return Rect[T]{X1: r.X1 + dx, Y1: r.Y1 + dy, X2: r.X2 + dx, Y2: r.Y2 + dy}
}

// IsEmpty reports whether the rectangle has no area.
func (r Rect[T]) IsEmpty() bool {
	return r.Width() == 0 || r.Height() == 0
}

// IsZero reports whether all four coordinates are zero.
func (r Rect[T]) IsZero() bool {
	return r.X1 == 0 && r.Y1 == 0 && r.X2 == 0 && r.Y2 == 0
}

// Center returns the midpoint of the rectangle.
//
// Returns:
//   - T: center x coordinate
//   - T: center y coordinate
func (r Rect[T]) Center() (T, T) {
	return (r.X1 + r.X2) / 2, (r.Y1 + r.Y2) / 2
}

// Radius returns half of the horizontal extent.
func (r Rect[T]) Radius() T {
	return r.Width() / 2
}
