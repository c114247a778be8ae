package core

// Point is a position in cell space. X grows rightward, Y downward.
type Point struct {
	X, Y int
}

// Rect is a rectangle in cell space with origin at the top-left.
type Rect struct {
	X, Y int
	W, H int
}

// RectFromSize creates a rectangle from an origin and dimensions.
func RectFromSize(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.W <= 0 || r.H <= 0
}

// MaxX returns the exclusive right edge.
func (r Rect) MaxX() int {
	return r.X + r.W
}

// MaxY returns the exclusive bottom edge.
func (r Rect) MaxY() int {
	return r.Y + r.H
}

// Contains reports whether p lies inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.MaxX() && p.Y >= r.Y && p.Y < r.MaxY()
}

// Union returns the smallest rectangle covering both r and other.
// An empty operand yields the other operand.
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	x := min(r.X, other.X)
	y := min(r.Y, other.Y)
	maxX := max(r.MaxX(), other.MaxX())
	maxY := max(r.MaxY(), other.MaxY())
	return Rect{X: x, Y: y, W: maxX - x, H: maxY - y}
}
