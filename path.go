package glyphsvg

import (
	"strconv"

	gl "github.com/rustyoz/genericlexer"
)

type pathDescriptionParser struct {
	lex          *gl.Lexer
	instructions []DrawingInstruction
}

// ParsePathData reads a path description produced by [Serialize] back into
// drawing instructions. Only the absolute M, L, C, Q commands and Z are
// understood; coordinate groups repeated after a command letter are
// implicit repeats of it, and extra pairs after M are lines. Any other
// input, including characters the lexer cannot read, is a *PathDataError.
func ParsePathData(d string) ([]DrawingInstruction, error) {
	l, items := gl.Lex("d", d)
	// The lexer goroutine only exits once every item has been received.
	defer func() {
		for range items {
		}
	}()

	pdp := &pathDescriptionParser{lex: l, instructions: []DrawingInstruction{}}
	for {
		i := pdp.lex.NextItem()
		switch {
		case i.Type == gl.ItemError:
			return nil, &PathDataError{Reason: i.Value}
		case i.Type == gl.ItemEOS:
			// The end of the input is followed by a second EOS. A lexer that
			// gave up on a character it could not read sends only one.
			if _, ok := <-items; !ok {
				return nil, &PathDataError{Reason: "unreadable character after " + strconv.Itoa(len(pdp.instructions)) + " instructions"}
			}
			return pdp.instructions, nil
		case i.Type == gl.ItemLetter:
			if err := pdp.parseCommand(i); err != nil {
				return nil, err
			}
		case i.Type == gl.ItemNumber:
			return nil, &PathDataError{Reason: "number " + i.Value + " outside of a command"}
		case i.Type == gl.ItemWSP:
		default:
			return nil, &PathDataError{Reason: "unexpected " + strconv.Quote(i.Value)}
		}
	}
}

func (pdp *pathDescriptionParser) parseCommand(i gl.Item) error {
	switch i.Value {
	case "M":
		return pdp.parseMoveToAbs()
	case "L":
		return pdp.parseLineToAbs()
	case "C":
		return pdp.parseCurveToAbs()
	case "Q":
		return pdp.parseQuadToAbs()
	case "z", "Z":
		return pdp.parseClose(i.Value)
	default:
		return &PathDataError{Command: i.Value, Reason: "unsupported command"}
	}
}

// tuples collects every coordinate pair following the current command.
func (pdp *pathDescriptionParser) tuples(cmd string) ([]Tuple, error) {
	var tuples []Tuple
	pdp.lex.ConsumeWhiteSpace()
	for pdp.lex.PeekItem().Type == gl.ItemNumber {
		t, err := parseTuple(pdp.lex)
		if err != nil {
			return nil, &PathDataError{Command: cmd, Reason: "expected coordinate pair", Err: err}
		}
		tuples = append(tuples, t)
		pdp.lex.ConsumeWhiteSpace()
		pdp.lex.ConsumeComma()
		pdp.lex.ConsumeWhiteSpace()
	}
	return tuples, nil
}

// groupedTuples is tuples with the additional requirement that the pairs
// come in non-empty groups of n.
func (pdp *pathDescriptionParser) groupedTuples(cmd string, n int) ([]Tuple, error) {
	tuples, err := pdp.tuples(cmd)
	if err != nil {
		return nil, err
	}
	if len(tuples) == 0 || len(tuples)%n != 0 {
		return nil, &PathDataError{
			Command: cmd,
			Reason:  "expected a multiple of " + strconv.Itoa(n) + " coordinate pairs, got " + strconv.Itoa(len(tuples)),
		}
	}
	return tuples, nil
}

func (pdp *pathDescriptionParser) parseMoveToAbs() error {
	tuples, err := pdp.groupedTuples("M", 1)
	if err != nil {
		return err
	}
	pdp.instructions = append(pdp.instructions, MoveTo(tuples[0][0], tuples[0][1]))
	for _, t := range tuples[1:] {
		pdp.instructions = append(pdp.instructions, LineTo(t[0], t[1]))
	}
	return nil
}

func (pdp *pathDescriptionParser) parseLineToAbs() error {
	tuples, err := pdp.groupedTuples("L", 1)
	if err != nil {
		return err
	}
	for _, t := range tuples {
		pdp.instructions = append(pdp.instructions, LineTo(t[0], t[1]))
	}
	return nil
}

func (pdp *pathDescriptionParser) parseCurveToAbs() error {
	tuples, err := pdp.groupedTuples("C", 3)
	if err != nil {
		return err
	}
	for j := 0; j < len(tuples)/3; j++ {
		c1, c2, t := tuples[j*3], tuples[j*3+1], tuples[j*3+2]
		pdp.instructions = append(pdp.instructions, DrawingInstruction{
			Kind: CurveInstruction,
			C1:   c1,
			C2:   c2,
			T:    t,
		})
	}
	return nil
}

func (pdp *pathDescriptionParser) parseQuadToAbs() error {
	tuples, err := pdp.groupedTuples("Q", 2)
	if err != nil {
		return err
	}
	for j := 0; j < len(tuples)/2; j++ {
		pdp.instructions = append(pdp.instructions, DrawingInstruction{
			Kind: QuadInstruction,
			C1:   tuples[j*2],
			T:    tuples[j*2+1],
		})
	}
	return nil
}

func (pdp *pathDescriptionParser) parseClose(cmd string) error {
	pdp.lex.ConsumeWhiteSpace()
	if pdp.lex.PeekItem().Type == gl.ItemNumber {
		return &PathDataError{Command: cmd, Reason: "close path takes no arguments"}
	}
	pdp.instructions = append(pdp.instructions, Close())
	return nil
}

func parseTuple(l *gl.Lexer) (Tuple, error) {
	var t Tuple
	var err error

	l.ConsumeWhiteSpace()
	if t[0], err = parseNumber(l.NextItem()); err != nil {
		return t, err
	}
	l.ConsumeWhiteSpace()
	l.ConsumeComma()
	l.ConsumeWhiteSpace()
	if t[1], err = parseNumber(l.NextItem()); err != nil {
		return t, err
	}
	return t, nil
}

func parseNumber(i gl.Item) (float64, error) {
	if i.Type != gl.ItemNumber {
		return 0, &PathDataError{Reason: "expected number, got " + strconv.Quote(i.Value)}
	}
	return strconv.ParseFloat(i.Value, 64)
}
