package core

// Point represents a 2D cell coordinate
type Point struct {
	X, Y int
}

// Size represents 2D cell dimensions
type Size struct {
	Width, Height int
}

// Rect represents a rectangular region in cell space
type Rect struct {
	X, Y          int // Top-left corner
	Width, Height int
}

// NewRect creates a rect from position and size
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, Width: w, Height: h}
}

// Right returns the first x coordinate outside the rect
func (r Rect) Right() int {
	return r.X + r.Width
}

// Bottom returns the first y coordinate outside the rect
func (r Rect) Bottom() int {
	return r.Y + r.Height
}

// Size returns the rect dimensions
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// IsEmpty returns true if the rect covers no cells
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains returns true if p lies inside the rect
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Intersect returns the overlapping region of two rects
// Empty result if they do not overlap
func (r Rect) Intersect(o Rect) Rect {
	x1 := max(r.X, o.X)
	y1 := max(r.Y, o.Y)
	x2 := min(r.Right(), o.Right())
	y2 := min(r.Bottom(), o.Bottom())
	if x2 <= x1 || y2 <= y1 {
		return Rect{}
	}
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// Offset returns the rect translated by dx, dy
func (r Rect) Offset(dx, dy int) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

// Shrink returns the rect inset by the given thickness on each side
// Dimensions clamp at zero
func (r Rect) Shrink(t Thickness) Rect {
	w := r.Width - t.Left - t.Right
	h := r.Height - t.Top - t.Bottom
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Rect{X: r.X + t.Left, Y: r.Y + t.Top, Width: w, Height: h}
}

// Thickness represents per-side spacing in cells (margins, padding, borders)
type Thickness struct {
	Left, Top, Right, Bottom int
}

// UniformThickness creates equal spacing on all sides
func UniformThickness(n int) Thickness {
	return Thickness{Left: n, Top: n, Right: n, Bottom: n}
}

// Horizontal returns combined left and right spacing
func (t Thickness) Horizontal() int {
	return t.Left + t.Right
}

// Vertical returns combined top and bottom spacing
func (t Thickness) Vertical() int {
	return t.Top + t.Bottom
}
