// Package preview rasterizes a framed scene to PNG for debugging the
// framing outside the browser.
package preview

import (
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/gogpu/gg"

	"github.com/inamate/focusframe/internal/engine"
	"github.com/inamate/focusframe/internal/focus"
	"github.com/inamate/focusframe/internal/geom"
	"github.com/inamate/focusframe/internal/scene"
)

const (
	MinSize = 16
	MaxSize = 4096
)

var (
	ErrInvalidSize     = errors.New("invalid preview size")
	ErrInvalidViewport = errors.New("invalid viewport")
)

var background = gg.RGB(1, 1, 1)

// Render draws f seen through vp onto a size x size image. The debug overlay
// is drawn when dbg is non-nil.
func Render(f *scene.Frame, vp geom.Viewport, dbg *focus.Debug, size int) (image.Image, error) {
	dc, err := draw(f, vp, dbg, size)
	if err != nil {
		return nil, err
	}
	defer dc.Close()
	return dc.Image(), nil
}

// WritePNG renders like Render and encodes the result as PNG to w.
func WritePNG(w io.Writer, f *scene.Frame, vp geom.Viewport, dbg *focus.Debug, size int) error {
	dc, err := draw(f, vp, dbg, size)
	if err != nil {
		return err
	}
	defer dc.Close()
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func draw(f *scene.Frame, vp geom.Viewport, dbg *focus.Debug, size int) (*gg.Context, error) {
	if size < MinSize || size > MaxSize {
		return nil, fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidSize, size, MinSize, MaxSize)
	}
	if !vp.Valid() {
		return nil, fmt.Errorf("%w: %+v", ErrInvalidViewport, vp)
	}

	dc := gg.NewContext(size, size)
	dc.ClearWithColor(background)
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)

	commands := engine.CompileDrawCommands(f, vp, dbg, float64(size), float64(size))
	for i := range commands {
		if err := drawCommand(dc, &commands[i]); err != nil {
			dc.Close()
			return nil, fmt.Errorf("draw %s: %w", commands[i].Layer, err)
		}
	}
	if err := dc.FlushGPU(); err != nil {
		dc.Close()
		return nil, fmt.Errorf("flush: %w", err)
	}
	return dc, nil
}

func drawCommand(dc *gg.Context, c *engine.DrawCommand) error {
	switch c.Op {
	case "dot":
		dc.DrawCircle(c.X, c.Y, c.Radius)
		dc.SetColor(gg.Hex(c.Fill).Color())
		return dc.Fill()

	case "path":
		tracePath(dc, c.Path)
		dc.SetColor(gg.Hex(c.Stroke).Color())
		dc.SetLineWidth(c.StrokeWidth)
		dc.SetDash(c.Dash...)
		return dc.Stroke()

	default:
		return fmt.Errorf("unknown op %q", c.Op)
	}
}

func tracePath(dc *gg.Context, path []engine.PathCommand) {
	for _, cmd := range path {
		if len(cmd) == 0 {
			continue
		}
		op, _ := cmd[0].(string)
		switch op {
		case "M", "L":
			if len(cmd) < 3 {
				continue
			}
			x, _ := cmd[1].(float64)
			y, _ := cmd[2].(float64)
			if op == "M" {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		case "Z":
			dc.ClosePath()
		}
	}
}
