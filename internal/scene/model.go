package scene

import "github.com/inamate/focusframe/internal/geom"

// Frame is everything the drawing layer hands over for one render tick.
// Frames are produced fresh by the caller every tick; nothing here owns them.
type Frame struct {
	Functions []Function `json:"functions"`
	Points    []Point    `json:"points"`
	Shapes    []Shape    `json:"shapes"`
	Debug     bool       `json:"debug"`
}

// IsEmpty reports whether the frame has nothing to frame.
func (f *Frame) IsEmpty() bool {
	return len(f.Functions) == 0 && len(f.Points) == 0 && len(f.Shapes) == 0
}

// Function is y = a·x² + b·x + c. A zero A denotes a linear function.
type Function struct {
	ID     string  `json:"id,omitempty"`
	Name   string  `json:"name,omitempty"`
	A      float64 `json:"a"`
	B      float64 `json:"b"`
	C      float64 `json:"c"`
	Points []Point `json:"points,omitempty"` // attached points, same visual group
}

// Quadratic returns the coefficients as a geom.Quadratic.
func (f *Function) Quadratic() geom.Quadratic {
	return geom.Quadratic{A: f.A, B: f.B, C: f.C}
}

// Label returns the most descriptive identifier available.
func (f *Function) Label() string {
	if f.Name != "" {
		return f.Name
	}
	return f.ID
}

type PointKind string

const (
	PointKindFree         PointKind = "free"
	PointKindAxis         PointKind = "axis"
	PointKindIntersection PointKind = "intersection"
)

// Point is a plotted point. Free points are placed by the user; axis and
// intersection points are derived from the functions on screen.
type Point struct {
	X    float64   `json:"x"`
	Y    float64   `json:"y"`
	Kind PointKind `json:"kind,omitempty"`
}

// IsUser reports whether the point was placed by the user. Points without a
// kind count as user points.
func (p Point) IsUser() bool {
	return p.Kind == PointKindFree || p.Kind == ""
}

// Geom returns the point as a geom.Point.
func (p Point) Geom() geom.Point {
	return geom.Point{X: p.X, Y: p.Y}
}

type ShapeKind string

const (
	ShapeKindTriangle  ShapeKind = "triangle"
	ShapeKindRectangle ShapeKind = "rectangle"
	ShapeKindPolygon   ShapeKind = "polygon"
	ShapeKindCircle    ShapeKind = "circle"
	ShapeKindIntegral  ShapeKind = "integral"
)

// Shape is a closed figure already flattened to vertices. Circles arrive as
// 16-gons and integral regions as the bounding box of four points.
type Shape struct {
	Kind     ShapeKind `json:"kind"`
	Vertices []Point   `json:"vertices"`
}

// GeomPoints converts a slice of scene points to geom points.
func GeomPoints(pts []Point) []geom.Point {
	out := make([]geom.Point, len(pts))
	for i, p := range pts {
		out[i] = p.Geom()
	}
	return out
}
