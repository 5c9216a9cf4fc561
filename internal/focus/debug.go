package focus

import "github.com/inamate/focusframe/internal/geom"

// Debug holds every intermediate rectangle of one framing, for overlay
// rendering. Layout never reads it back.
type Debug struct {
	Branch    SceneBranch     `json:"branch"`
	Functions []FunctionDebug `json:"functions,omitempty"`
	// Vertices are the function vertices pulled into a shape framing.
	Vertices []geom.Point `json:"vertices,omitempty"`
	// Union is the raw union before margins; nil for the fixed branches.
	Union *geom.Rect `json:"union,omitempty"`
	// Content is the rect after margins, the input to normalization.
	Content  geom.Rect     `json:"content"`
	Viewport geom.Viewport `json:"viewport"`
}

// FunctionDebug is one function's focus area with its label.
type FunctionDebug struct {
	Label string `json:"label,omitempty"`
	Area  Area   `json:"area"`
}

// RefPoints returns every reference point recorded in d, in function order.
func (d *Debug) RefPoints() []geom.Point {
	if d == nil {
		return nil
	}
	var pts []geom.Point
	for _, fd := range d.Functions {
		if r := fd.Area.Refs; r != nil {
			pts = append(pts, r.V, r.F1, r.F2, r.F3, r.F4)
		}
	}
	return append(pts, d.Vertices...)
}
