package glyphsvg

import "fmt"

// InstructionType tells a path consumer which drawing operation a
// DrawingInstruction performs.
type InstructionType int

// These are the instruction types a glyph outline is made of. The zero
// value is not a valid instruction type.
const (
	MoveInstruction InstructionType = iota + 1
	LineInstruction
	CurveInstruction
	QuadInstruction
	CloseInstruction
)

// Tuple is an X,Y coordinate
type Tuple [2]float64

// DrawingInstruction is one step of a glyph outline. Which points are
// meaningful depends on Kind:
//
//	MoveInstruction, LineInstruction: T
//	CurveInstruction:                 C1, C2, T
//	QuadInstruction:                  C1, T
//	CloseInstruction:                 none
type DrawingInstruction struct {
	Kind InstructionType
	C1   Tuple
	C2   Tuple
	T    Tuple
}

// MoveTo starts a new subpath at (x, y).
func MoveTo(x, y float64) DrawingInstruction {
	return DrawingInstruction{Kind: MoveInstruction, T: Tuple{x, y}}
}

// LineTo draws a straight segment to (x, y).
func LineTo(x, y float64) DrawingInstruction {
	return DrawingInstruction{Kind: LineInstruction, T: Tuple{x, y}}
}

// CubicTo draws a cubic Bézier with control points (x1, y1) and (x2, y2)
// ending at (x, y).
func CubicTo(x1, y1, x2, y2, x, y float64) DrawingInstruction {
	return DrawingInstruction{
		Kind: CurveInstruction,
		C1:   Tuple{x1, y1},
		C2:   Tuple{x2, y2},
		T:    Tuple{x, y},
	}
}

// QuadTo draws a quadratic Bézier with control point (x1, y1) ending at
// (x, y).
func QuadTo(x1, y1, x, y float64) DrawingInstruction {
	return DrawingInstruction{Kind: QuadInstruction, C1: Tuple{x1, y1}, T: Tuple{x, y}}
}

// Close closes the current subpath.
func Close() DrawingInstruction {
	return DrawingInstruction{Kind: CloseInstruction}
}

// Letter returns the path-data command letter for k, or "" if k is not a
// known instruction type.
func (k InstructionType) Letter() string {
	switch k {
	case MoveInstruction:
		return "M"
	case LineInstruction:
		return "L"
	case CurveInstruction:
		return "C"
	case QuadInstruction:
		return "Q"
	case CloseInstruction:
		return "Z"
	default:
		return ""
	}
}

func (k InstructionType) String() string {
	switch k {
	case MoveInstruction:
		return "MoveTo"
	case LineInstruction:
		return "LineTo"
	case CurveInstruction:
		return "CubicTo"
	case QuadInstruction:
		return "QuadTo"
	case CloseInstruction:
		return "ClosePath"
	default:
		return fmt.Sprintf("InstructionType(%d)", int(k))
	}
}

func (di DrawingInstruction) String() string {
	switch di.Kind {
	case MoveInstruction, LineInstruction:
		return fmt.Sprintf("%s(%v)", di.Kind, di.T)
	case CurveInstruction:
		return fmt.Sprintf("%s(%v, %v, %v)", di.Kind, di.C1, di.C2, di.T)
	case QuadInstruction:
		return fmt.Sprintf("%s(%v, %v)", di.Kind, di.C1, di.T)
	case CloseInstruction:
		return di.Kind.String() + "()"
	default:
		return fmt.Sprintf("%s(%v, %v, %v)", di.Kind, di.C1, di.C2, di.T)
	}
}
