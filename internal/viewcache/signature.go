package viewcache

import (
	"strconv"
	"strings"

	"github.com/inamate/focusframe/internal/scene"
)

// Separators never produced by strconv.FormatFloat, so records cannot run
// into each other. Free-form kind strings are quoted.
const (
	recordSep = '|'
	fieldSep  = ';'
	tagSep    = ':'
)

// Signature serializes everything that influences the framing of f: every
// function's coefficients and attached points, every shape's kind and
// vertices, every point's kind and coordinates, and the debug flag.
// Equal scenes produce equal signatures.
func Signature(f *scene.Frame) string {
	var b strings.Builder
	for _, fn := range f.Functions {
		b.WriteByte('f')
		b.WriteByte(tagSep)
		writeFloat(&b, fn.A)
		b.WriteByte(',')
		writeFloat(&b, fn.B)
		b.WriteByte(',')
		writeFloat(&b, fn.C)
		for _, p := range fn.Points {
			b.WriteByte(fieldSep)
			writePoint(&b, p)
		}
		b.WriteByte(recordSep)
	}
	for _, s := range f.Shapes {
		b.WriteByte('s')
		b.WriteByte(tagSep)
		writeKind(&b, string(s.Kind))
		for _, v := range s.Vertices {
			b.WriteByte(fieldSep)
			writePoint(&b, v)
		}
		b.WriteByte(recordSep)
	}
	for _, p := range f.Points {
		b.WriteByte('p')
		b.WriteByte(tagSep)
		writePoint(&b, p)
		b.WriteByte(recordSep)
	}
	b.WriteString("d:")
	b.WriteString(strconv.FormatBool(f.Debug))
	return b.String()
}

func writePoint(b *strings.Builder, p scene.Point) {
	writeFloat(b, p.X)
	b.WriteByte(',')
	writeFloat(b, p.Y)
	if p.Kind != "" {
		b.WriteByte('/')
		writeKind(b, string(p.Kind))
	}
}

// writeKind quotes kind, since kinds arrive from clients unchecked and may
// contain separators.
func writeKind(b *strings.Builder, kind string) {
	b.WriteString(strconv.Quote(kind))
}

func writeFloat(b *strings.Builder, v float64) {
	b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
}
