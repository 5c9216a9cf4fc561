package engine

import (
	"encoding/json"
	"math"

	"github.com/inamate/focusframe/internal/focus"
	"github.com/inamate/focusframe/internal/geom"
	"github.com/inamate/focusframe/internal/scene"
)

// PathCommand represents a single path segment for rendering.
// Format matches Canvas2D: ["M", x, y], ["L", x, y], ["Z"].
type PathCommand []interface{}

// Layer tags what a draw command depicts, so the drawing layer can style or
// hide whole categories.
type Layer string

const (
	LayerGrid     Layer = "grid"
	LayerAxis     Layer = "axis"
	LayerFunction Layer = "function"
	LayerShape    Layer = "shape"
	LayerPoint    Layer = "point"
	LayerFocus    Layer = "focus"
	LayerUnion    Layer = "union"
	LayerContent  Layer = "content"
	LayerRef      Layer = "ref"
)

// DrawCommand represents a single drawing operation for the frontend to execute.
// Coordinates are canvas pixels, already mapped through the view transform.
type DrawCommand struct {
	Op          string        `json:"op"` // "path" or "dot"
	Layer       Layer         `json:"layer"`
	Label       string        `json:"label,omitempty"`
	Path        []PathCommand `json:"path,omitempty"`
	X           float64       `json:"x,omitempty"`
	Y           float64       `json:"y,omitempty"`
	Radius      float64       `json:"radius,omitempty"`
	Fill        string        `json:"fill,omitempty"`
	Stroke      string        `json:"stroke,omitempty"`
	StrokeWidth float64       `json:"strokeWidth,omitempty"`
	Dash        []float64     `json:"dash,omitempty"`
}

// Palette used by CompileDrawCommands.
const (
	colorGrid     = "#e6e6e6"
	colorAxis     = "#808080"
	colorFunction = "#1f6feb"
	colorShape    = "#2da44e"
	colorPoint    = "#cf222e"
	colorFocus    = "#bf8700"
	colorUnion    = "#8250df"
	colorContent  = "#fb8500"
	colorRef      = "#000000"
)

// curveSamples is the number of segments a function is flattened into
// across the viewport width.
const curveSamples = 256

// CompileDrawCommands flattens a frame seen through vp into draw commands
// for a width x height canvas, in painter's order (back to front). The
// debug overlay is appended when dbg is non-nil.
func CompileDrawCommands(f *scene.Frame, vp geom.Viewport, dbg *focus.Debug, width, height float64) []DrawCommand {
	if !vp.Valid() || width <= 0 || height <= 0 {
		return nil
	}
	m := ViewTransform(vp, width, height)

	var commands []DrawCommand
	compileGrid(vp, m, &commands)

	if f != nil {
		for _, fn := range f.Functions {
			compileFunction(fn, vp, m, &commands)
		}
		for _, s := range f.Shapes {
			if len(s.Vertices) == 0 {
				continue
			}
			commands = append(commands, DrawCommand{
				Op:          "path",
				Layer:       LayerShape,
				Label:       string(s.Kind),
				Path:        polygonPath(m, scene.GeomPoints(s.Vertices), true),
				Stroke:      colorShape,
				StrokeWidth: 2,
			})
		}
		for _, fn := range f.Functions {
			for _, p := range fn.Points {
				commands = append(commands, dot(m, p.Geom(), LayerPoint, colorPoint, 4))
			}
		}
		for _, p := range f.Points {
			commands = append(commands, dot(m, p.Geom(), LayerPoint, colorPoint, 4))
		}
	}

	if dbg != nil {
		compileDebug(dbg, m, &commands)
	}
	return commands
}

// compileGrid emits unit grid lines when they stay readable, then both axes.
func compileGrid(vp geom.Viewport, m Matrix2D, commands *[]DrawCommand) {
	step := gridStep(max(vp.Width(), vp.Height()))
	var grid []PathCommand
	for x := math.Ceil(vp.XMin/step) * step; x <= vp.XMax; x += step {
		grid = append(grid, moveTo(m, x, vp.YMin), lineTo(m, x, vp.YMax))
	}
	for y := math.Ceil(vp.YMin/step) * step; y <= vp.YMax; y += step {
		grid = append(grid, moveTo(m, vp.XMin, y), lineTo(m, vp.XMax, y))
	}
	if len(grid) > 0 {
		*commands = append(*commands, DrawCommand{Op: "path", Layer: LayerGrid, Path: grid, Stroke: colorGrid, StrokeWidth: 1})
	}

	var axes []PathCommand
	if vp.XMin <= 0 && vp.XMax >= 0 {
		axes = append(axes, moveTo(m, 0, vp.YMin), lineTo(m, 0, vp.YMax))
	}
	if vp.YMin <= 0 && vp.YMax >= 0 {
		axes = append(axes, moveTo(m, vp.XMin, 0), lineTo(m, vp.XMax, 0))
	}
	if len(axes) > 0 {
		*commands = append(*commands, DrawCommand{Op: "path", Layer: LayerAxis, Path: axes, Stroke: colorAxis, StrokeWidth: 1.5})
	}
}

// gridStep picks a power-of-ten spacing giving at most about 20 lines.
func gridStep(span float64) float64 {
	if span <= 0 || math.IsInf(span, 0) || math.IsNaN(span) {
		return 1
	}
	step := math.Pow(10, math.Floor(math.Log10(span)))
	for span/step > 20 {
		step *= 2
	}
	for span/step < 4 {
		step /= 2
	}
	return step
}

// compileFunction samples fn across the viewport. Samples far outside the
// vertical range break the polyline instead of drawing huge segments.
func compileFunction(fn scene.Function, vp geom.Viewport, m Matrix2D, commands *[]DrawCommand) {
	q := fn.Quadratic()
	lo := vp.YMin - vp.Height()
	hi := vp.YMax + vp.Height()

	var path []PathCommand
	pen := false
	for i := 0; i <= curveSamples; i++ {
		x := vp.XMin + vp.Width()*float64(i)/curveSamples
		y := q.Eval(x)
		if y < lo || y > hi || math.IsNaN(y) {
			pen = false
			continue
		}
		if pen {
			path = append(path, lineTo(m, x, y))
		} else {
			path = append(path, moveTo(m, x, y))
			pen = true
		}
	}
	if len(path) == 0 {
		return
	}
	*commands = append(*commands, DrawCommand{
		Op:          "path",
		Layer:       LayerFunction,
		Label:       fn.Label(),
		Path:        path,
		Stroke:      colorFunction,
		StrokeWidth: 2,
	})
}

func compileDebug(dbg *focus.Debug, m Matrix2D, commands *[]DrawCommand) {
	for _, fd := range dbg.Functions {
		*commands = append(*commands, rectCommand(m, fd.Area.Rect, LayerFocus, fd.Label, colorFocus, []float64{4, 4}))
	}
	if dbg.Union != nil {
		*commands = append(*commands, rectCommand(m, *dbg.Union, LayerUnion, "union", colorUnion, []float64{2, 3}))
	}
	*commands = append(*commands, rectCommand(m, dbg.Content, LayerContent, "content", colorContent, nil))
	for _, p := range dbg.RefPoints() {
		*commands = append(*commands, dot(m, p, LayerRef, colorRef, 3))
	}
}

func rectCommand(m Matrix2D, r geom.Rect, layer Layer, label, stroke string, dash []float64) DrawCommand {
	corners := []geom.Point{
		{X: r.MinX, Y: r.MinY},
		{X: r.MaxX, Y: r.MinY},
		{X: r.MaxX, Y: r.MaxY},
		{X: r.MinX, Y: r.MaxY},
	}
	return DrawCommand{
		Op:          "path",
		Layer:       layer,
		Label:       label,
		Path:        polygonPath(m, corners, true),
		Stroke:      stroke,
		StrokeWidth: 1.5,
		Dash:        dash,
	}
}

func dot(m Matrix2D, p geom.Point, layer Layer, fill string, radius float64) DrawCommand {
	x, y := m.TransformPoint(p.X, p.Y)
	return DrawCommand{Op: "dot", Layer: layer, X: x, Y: y, Radius: radius, Fill: fill}
}

func polygonPath(m Matrix2D, pts []geom.Point, closed bool) []PathCommand {
	path := make([]PathCommand, 0, len(pts)+1)
	for i, p := range pts {
		if i == 0 {
			path = append(path, moveTo(m, p.X, p.Y))
		} else {
			path = append(path, lineTo(m, p.X, p.Y))
		}
	}
	if closed && len(pts) > 0 {
		path = append(path, PathCommand{"Z"})
	}
	return path
}

func moveTo(m Matrix2D, x, y float64) PathCommand {
	sx, sy := m.TransformPoint(x, y)
	return PathCommand{"M", sx, sy}
}

func lineTo(m Matrix2D, x, y float64) PathCommand {
	sx, sy := m.TransformPoint(x, y)
	return PathCommand{"L", sx, sy}
}

// DrawCommandsToJSON serializes draw commands to JSON.
func DrawCommandsToJSON(commands []DrawCommand) (string, error) {
	data, err := json.Marshal(commands)
	if err != nil {
		return "[]", err
	}
	return string(data), nil
}
