package glyphsvg

import (
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// FromSegments converts glyph segments loaded with golang.org/x/image's
// sfnt package to drawing instructions. Coordinates are the 26.6 fixed
// point values converted to float64, with the Y axis increasing down as
// sfnt returns them. Every contour is closed.
func FromSegments(segs sfnt.Segments) []DrawingInstruction {
	var cb contourBuilder
	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			cb.moveTo(fixedToFloat64(seg.Args[0].X), fixedToFloat64(seg.Args[0].Y))
		case sfnt.SegmentOpLineTo:
			cb.add(LineTo(fixedToFloat64(seg.Args[0].X), fixedToFloat64(seg.Args[0].Y)))
		case sfnt.SegmentOpQuadTo:
			cb.add(QuadTo(
				fixedToFloat64(seg.Args[0].X), fixedToFloat64(seg.Args[0].Y),
				fixedToFloat64(seg.Args[1].X), fixedToFloat64(seg.Args[1].Y),
			))
		case sfnt.SegmentOpCubeTo:
			cb.add(CubicTo(
				fixedToFloat64(seg.Args[0].X), fixedToFloat64(seg.Args[0].Y),
				fixedToFloat64(seg.Args[1].X), fixedToFloat64(seg.Args[1].Y),
				fixedToFloat64(seg.Args[2].X), fixedToFloat64(seg.Args[2].Y),
			))
		}
	}
	return cb.finish()
}

// SfntGlyph loads the outline of the glyph mapped to r in font
// design units.
func SfntGlyph(f *sfnt.Font, r rune) ([]DrawingInstruction, error) {
	var buf sfnt.Buffer
	gid, err := f.GlyphIndex(&buf, r)
	if err != nil {
		return nil, fmt.Errorf("glyph index for %q: %w", r, err)
	}
	if gid == 0 {
		return nil, fmt.Errorf("rune %q: %w", r, ErrGlyphNotFound)
	}

	// Loading at ppem == unitsPerEm leaves coordinates unscaled.
	ppem := fixed.I(int(f.UnitsPerEm()))
	segs, err := f.LoadGlyph(&buf, gid, ppem, nil)
	switch {
	case errors.Is(err, sfnt.ErrColoredGlyph):
		return nil, fmt.Errorf("rune %q: %w", r, ErrNotOutline)
	case errors.Is(err, sfnt.ErrNotFound):
		return nil, fmt.Errorf("rune %q: %w", r, ErrGlyphNotFound)
	case err != nil:
		return nil, fmt.Errorf("load glyph %d: %w", gid, err)
	}

	Logger().Debug("glyphsvg: loaded sfnt glyph",
		slog.String("rune", string(r)),
		slog.Int("gid", int(gid)),
		slog.Int("segments", len(segs)))
	return FromSegments(segs), nil
}

// SfntGlyphPath returns the path description of the glyph mapped to r.
func SfntGlyphPath(f *sfnt.Font, r rune) (string, error) {
	instrs, err := SfntGlyph(f, r)
	if err != nil {
		return "", err
	}
	return Serialize(instrs), nil
}

func fixedToFloat64(x fixed.Int26_6) float64 {
	return float64(x) / 64.0
}

// contourBuilder collects instructions and closes each contour before the
// next one starts, since font outlines imply closed contours without
// emitting an explicit operator for it.
type contourBuilder struct {
	instrs []DrawingInstruction
	open   bool
}

func (cb *contourBuilder) moveTo(x, y float64) {
	cb.closeContour()
	cb.instrs = append(cb.instrs, MoveTo(x, y))
	cb.open = true
}

func (cb *contourBuilder) add(di DrawingInstruction) {
	cb.instrs = append(cb.instrs, di)
}

func (cb *contourBuilder) closeContour() {
	if cb.open {
		cb.instrs = append(cb.instrs, Close())
		cb.open = false
	}
}

func (cb *contourBuilder) finish() []DrawingInstruction {
	cb.closeContour()
	if cb.instrs == nil {
		return []DrawingInstruction{}
	}
	return cb.instrs
}
