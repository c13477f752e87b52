package glyphsvg

import (
	"fmt"
	"log/slog"

	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
)

// FromGlyphOutline converts a go-text glyph outline to drawing
// instructions. Coordinates stay in font units with the Y axis increasing
// up, as go-text reports them. Every contour is closed.
func FromGlyphOutline(o font.GlyphOutline) []DrawingInstruction {
	var cb contourBuilder
	for _, seg := range o.Segments {
		a := seg.Args
		switch seg.Op {
		case ot.SegmentOpMoveTo:
			cb.moveTo(float64(a[0].X), float64(a[0].Y))
		case ot.SegmentOpLineTo:
			cb.add(LineTo(float64(a[0].X), float64(a[0].Y)))
		case ot.SegmentOpQuadTo:
			cb.add(QuadTo(
				float64(a[0].X), float64(a[0].Y),
				float64(a[1].X), float64(a[1].Y),
			))
		case ot.SegmentOpCubeTo:
			cb.add(CubicTo(
				float64(a[0].X), float64(a[0].Y),
				float64(a[1].X), float64(a[1].Y),
				float64(a[2].X), float64(a[2].Y),
			))
		}
	}
	return cb.finish()
}

// GoTextGlyph returns the outline of the glyph face maps r to. Glyphs
// stored as bitmaps, SVG documents or color layers yield ErrNotOutline.
func GoTextGlyph(face *font.Face, r rune) ([]DrawingInstruction, error) {
	gid, ok := face.NominalGlyph(r)
	if !ok {
		return nil, fmt.Errorf("rune %q: %w", r, ErrGlyphNotFound)
	}

	outline, ok := face.GlyphData(gid).(font.GlyphOutline)
	if !ok {
		return nil, fmt.Errorf("rune %q (glyph %d): %w", r, gid, ErrNotOutline)
	}

	Logger().Debug("glyphsvg: loaded go-text glyph",
		slog.String("rune", string(r)),
		slog.Int("gid", int(gid)),
		slog.Int("segments", len(outline.Segments)))
	return FromGlyphOutline(outline), nil
}

// GoTextGlyphPath returns the path description of the glyph face maps r
// to.
func GoTextGlyphPath(face *font.Face, r rune) (string, error) {
	instrs, err := GoTextGlyph(face, r)
	if err != nil {
		return "", err
	}
	return Serialize(instrs), nil
}
