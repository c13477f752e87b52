package glyphsvg

import (
	"io"
	"log/slog"
	"strconv"
	"strings"
)

// UnknownCommandMode selects what serialization does with an instruction
// whose Kind is not a known InstructionType.
type UnknownCommandMode int

const (
	// UnknownLenient renders an unknown instruction as an empty segment.
	// The separating space is still written, so the output keeps one slot
	// per input instruction.
	UnknownLenient UnknownCommandMode = iota

	// UnknownStrict stops at the first unknown instruction and returns an
	// *UnrecognizedCommandError.
	UnknownStrict
)

// SerializeOptions specifies optional settings for [SerializeWithOptions]
// and [WritePathData]. The zero value is lenient.
type SerializeOptions struct {
	Unknown UnknownCommandMode
}

// Serialize converts a sequence of drawing instructions to a path
// description string such as "M 0 0 L 10 0 Z", suitable for the d
// attribute of an SVG path element.
//
// Segments are joined by single spaces, numbers are formatted the way
// fmt.Sprint formats a float64, and unknown instructions produce empty
// segments. Serialize never fails; see [SerializeWithOptions] for a strict
// variant.
func Serialize(instrs []DrawingInstruction) string {
	s, _ := SerializeWithOptions(instrs, SerializeOptions{})
	return s
}

// SerializeWithOptions is like [Serialize] but honours opts. In
// UnknownStrict mode it returns "" and an *UnrecognizedCommandError for
// the first unknown instruction.
func SerializeWithOptions(instrs []DrawingInstruction, opts SerializeOptions) (string, error) {
	sb := &strings.Builder{}
	if err := WritePathData(sb, instrs, opts); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// WritePathData writes the path description of instrs to w. It returns the
// first error from w, or in UnknownStrict mode the error for the first
// unknown instruction, in which case the segments before it have already
// been written.
func WritePathData(w io.Writer, instrs []DrawingInstruction, opts SerializeOptions) error {
	var err error
	buf := make([]byte, 0, 64)
	for i, di := range instrs {
		buf = buf[:0]
		if i > 0 {
			buf = append(buf, ' ')
		}
		switch di.Kind {
		case MoveInstruction:
			buf = append(buf, 'M')
			buf = appendTuple(buf, di.T)
		case LineInstruction:
			buf = append(buf, 'L')
			buf = appendTuple(buf, di.T)
		case CurveInstruction:
			buf = append(buf, 'C')
			buf = appendTuple(buf, di.C1)
			buf = appendTuple(buf, di.C2)
			buf = appendTuple(buf, di.T)
		case QuadInstruction:
			buf = append(buf, 'Q')
			buf = appendTuple(buf, di.C1)
			buf = appendTuple(buf, di.T)
		case CloseInstruction:
			buf = append(buf, 'Z')
		default:
			if opts.Unknown == UnknownStrict {
				return &UnrecognizedCommandError{Index: i, Kind: di.Kind}
			}
			Logger().Warn("glyphsvg: rendering unrecognized instruction as empty segment",
				slog.Int("index", i),
				slog.Int("kind", int(di.Kind)))
		}
		if _, err = w.Write(buf); err != nil {
			return err
		}
	}
	return nil
}

func appendTuple(buf []byte, t Tuple) []byte {
	buf = append(buf, ' ')
	buf = strconv.AppendFloat(buf, t[0], 'g', -1, 64)
	buf = append(buf, ' ')
	return strconv.AppendFloat(buf, t[1], 'g', -1, 64)
}
