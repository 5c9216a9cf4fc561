package scene

import "math"

// CircleSegments is the number of vertices a circle is flattened to.
const CircleSegments = 16

// Circle flattens a circle into a regular 16-gon.
func Circle(cx, cy, r float64) Shape {
	verts := make([]Point, CircleSegments)
	for i := range verts {
		angle := 2 * math.Pi * float64(i) / CircleSegments
		verts[i] = Point{X: cx + r*math.Cos(angle), Y: cy + r*math.Sin(angle)}
	}
	return Shape{Kind: ShapeKindCircle, Vertices: verts}
}

// IntegralRegion flattens the area under f between x0 and x1 into the four
// points (x0,0), (x1,0), (x0,f(x0)), (x1,f(x1)).
func IntegralRegion(f Function, x0, x1 float64) Shape {
	q := f.Quadratic()
	return Shape{
		Kind: ShapeKindIntegral,
		Vertices: []Point{
			{X: x0, Y: 0},
			{X: x1, Y: 0},
			{X: x0, Y: q.Eval(x0)},
			{X: x1, Y: q.Eval(x1)},
		},
	}
}

// Rectangle returns the axis-aligned rectangle with opposite corners
// (x0,y0) and (x1,y1).
func Rectangle(x0, y0, x1, y1 float64) Shape {
	return Shape{
		Kind: ShapeKindRectangle,
		Vertices: []Point{
			{X: x0, Y: y0},
			{X: x1, Y: y0},
			{X: x1, Y: y1},
			{X: x0, Y: y1},
		},
	}
}

// Triangle returns the triangle a, b, c.
func Triangle(a, b, c Point) Shape {
	return Shape{Kind: ShapeKindTriangle, Vertices: []Point{a, b, c}}
}

// Polygon returns a polygon over the given vertices.
func Polygon(verts ...Point) Shape {
	return Shape{Kind: ShapeKindPolygon, Vertices: verts}
}
