package geom

// Viewport is the coordinate range actually shown on the drawing surface.
// It has the same shape as Rect but means "what is visible" rather than
// "what must be contained".
type Viewport struct {
	XMin float64 `json:"xMin"`
	XMax float64 `json:"xMax"`
	YMin float64 `json:"yMin"`
	YMax float64 `json:"yMax"`
}

// DefaultViewport is the viewport shown for an empty scene.
var DefaultViewport = ViewportFromRect(DefaultRect)

// ViewportFromRect copies the bounds of r into a Viewport.
func ViewportFromRect(r Rect) Viewport {
	return Viewport{XMin: r.MinX, XMax: r.MaxX, YMin: r.MinY, YMax: r.MaxY}
}

// Rect returns the viewport bounds as a Rect.
func (v Viewport) Rect() Rect {
	return Rect{MinX: v.XMin, MaxX: v.XMax, MinY: v.YMin, MaxY: v.YMax}
}

// Width returns XMax - XMin.
func (v Viewport) Width() float64 {
	return v.XMax - v.XMin
}

// Height returns YMax - YMin.
func (v Viewport) Height() float64 {
	return v.YMax - v.YMin
}

// Valid reports whether the viewport has positive extent on both axes.
func (v Viewport) Valid() bool {
	return v.XMin < v.XMax && v.YMin < v.YMax
}

// Equal compares bound for bound, without tolerance.
func (v Viewport) Equal(o Viewport) bool {
	return v.XMin == o.XMin && v.XMax == o.XMax && v.YMin == o.YMin && v.YMax == o.YMax
}

// Lerp linearly interpolates every bound from v toward to.
func (v Viewport) Lerp(to Viewport, t float64) Viewport {
	return Viewport{
		XMin: lerp(v.XMin, to.XMin, t),
		XMax: lerp(v.XMax, to.XMax, t),
		YMin: lerp(v.YMin, to.YMin, t),
		YMax: lerp(v.YMax, to.YMax, t),
	}
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
