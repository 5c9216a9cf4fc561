package focus

import (
	"github.com/inamate/focusframe/internal/geom"
	"github.com/inamate/focusframe/internal/scene"
)

// ContentRatio is the share of the viewport's longer side the content
// occupies after normalization.
const ContentRatio = 0.7

// minNormalizedSpan stands in for the longest side of content with no
// extent, so the viewport never collapses.
const minNormalizedSpan = 2

// Normalize turns a content rect into the viewport to display. With skip set
// the bounds are copied as-is. Otherwise the result is a square centered on
// the content whose side is the content's longer side divided by
// ContentRatio, which keeps curves undistorted whatever the surface's
// aspect ratio.
func Normalize(r geom.Rect, skip bool) geom.Viewport {
	if skip {
		return geom.ViewportFromRect(r)
	}

	longest := max(r.Width(), r.Height())
	if longest < geom.Epsilon {
		longest = minNormalizedSpan
	}
	span := longest / ContentRatio
	return geom.ViewportFromRect(geom.CenteredSpan(r.Center(), span, span))
}

// Result is the framing of one frame.
type Result struct {
	Viewport geom.Viewport `json:"viewport"`
	Content  geom.Rect     `json:"content"`
	Skip     bool          `json:"skip"`
	Debug    *Debug        `json:"debug,omitempty"`
}

// Frame aggregates and normalizes a whole frame. The debug payload is only
// built when f.Debug is set.
func Frame(f *scene.Frame) Result {
	agg := Aggregate(f.Functions, f.Points, f.Shapes, f.Debug)
	vp := Normalize(agg.Rect, agg.Skip)
	if agg.Debug != nil {
		agg.Debug.Viewport = vp
	}
	return Result{
		Viewport: vp,
		Content:  agg.Rect,
		Skip:     agg.Skip,
		Debug:    agg.Debug,
	}
}
