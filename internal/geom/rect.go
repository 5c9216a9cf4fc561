package geom

import "math"

// Rect is an axis-aligned bounding box in math coordinates.
// Every bounding computation in the pipeline goes through Rect; a valid Rect
// has MinX <= MaxX and MinY <= MaxY.
type Rect struct {
	MinX float64 `json:"minX"`
	MaxX float64 `json:"maxX"`
	MinY float64 `json:"minY"`
	MaxY float64 `json:"maxY"`
}

// DefaultRect is the fixed fallback framing [-10,10]×[-10,10].
var DefaultRect = Rect{MinX: -10, MaxX: 10, MinY: -10, MaxY: 10}

// RectFromPoints returns the bounding box of pts. It returns the zero Rect
// and false when pts is empty.
func RectFromPoints(pts ...Point) (Rect, bool) {
	if len(pts) == 0 {
		return Rect{}, false
	}
	r := Rect{MinX: pts[0].X, MaxX: pts[0].X, MinY: pts[0].Y, MaxY: pts[0].Y}
	for _, p := range pts[1:] {
		r = r.UnionPoint(p)
	}
	return r, true
}

// Width returns MaxX - MinX.
func (r Rect) Width() float64 {
	return r.MaxX - r.MinX
}

// Height returns MaxY - MinY.
func (r Rect) Height() float64 {
	return r.MaxY - r.MinY
}

// Center returns the center point of the rect.
func (r Rect) Center() Point {
	return Point{
		X: 0.5 * (r.MinX + r.MaxX),
		Y: 0.5 * (r.MinY + r.MaxY),
	}
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

// Union returns the smallest rect containing both rects.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		MinX: min(r.MinX, o.MinX),
		MaxX: max(r.MaxX, o.MaxX),
		MinY: min(r.MinY, o.MinY),
		MaxY: max(r.MaxY, o.MaxY),
	}
}

// UnionPoint returns the smallest rect containing r and p.
func (r Rect) UnionPoint(p Point) Rect {
	return Rect{
		MinX: min(r.MinX, p.X),
		MaxX: max(r.MaxX, p.X),
		MinY: min(r.MinY, p.Y),
		MaxY: max(r.MaxY, p.Y),
	}
}

// Inflate grows r by dx on the left and right and by dy on the top and bottom.
func (r Rect) Inflate(dx, dy float64) Rect {
	return Rect{
		MinX: r.MinX - dx,
		MaxX: r.MaxX + dx,
		MinY: r.MinY - dy,
		MaxY: r.MaxY + dy,
	}
}

// Extend grows r upward by top and downward by bottom.
func (r Rect) Extend(top, bottom float64) Rect {
	r.MaxY += top
	r.MinY -= bottom
	return r
}

// CenteredSpan returns a rect of the given width and height centered on c.
func CenteredSpan(c Point, width, height float64) Rect {
	return Rect{
		MinX: c.X - width/2,
		MaxX: c.X + width/2,
		MinY: c.Y - height/2,
		MaxY: c.Y + height/2,
	}
}

// IsFinite reports whether every bound is a finite number.
func (r Rect) IsFinite() bool {
	for _, v := range [...]float64{r.MinX, r.MaxX, r.MinY, r.MaxY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
