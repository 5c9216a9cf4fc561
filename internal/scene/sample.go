package scene

import "github.com/inamate/focusframe/internal/typeid"

// NewSampleFrame returns a small lesson scene: a parabola with its roots
// marked, a line, a shaded integral region and one free point.
func NewSampleFrame() *Frame {
	parabola := Function{
		ID:   typeid.NewFunctionID(),
		Name: "f",
		A:    1, B: -2, C: -3,
		Points: []Point{
			{X: -1, Y: 0, Kind: PointKindAxis},
			{X: 3, Y: 0, Kind: PointKindAxis},
		},
	}
	line := Function{
		ID:   typeid.NewFunctionID(),
		Name: "g",
		A:    0, B: 1, C: 1,
	}

	return &Frame{
		Functions: []Function{parabola, line},
		Points: []Point{
			{X: 4, Y: 5, Kind: PointKindFree},
			{X: -1, Y: 0, Kind: PointKindIntersection},
		},
		Shapes: []Shape{
			IntegralRegion(parabola, 0, 2),
		},
	}
}

// NewEmptyFrame returns a frame with no content.
func NewEmptyFrame() *Frame {
	return &Frame{
		Functions: []Function{},
		Points:    []Point{},
		Shapes:    []Shape{},
	}
}
