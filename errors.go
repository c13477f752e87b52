package glyphsvg

import (
	"errors"
	"fmt"
)

var (
	// ErrUnrecognizedCommand is matched by every *UnrecognizedCommandError.
	ErrUnrecognizedCommand = errors.New("glyphsvg: unrecognized drawing instruction")

	// ErrGlyphNotFound is returned when a font has no glyph for a rune.
	ErrGlyphNotFound = errors.New("glyphsvg: glyph not found")

	// ErrNotOutline is returned when a glyph exists but is stored as a
	// bitmap, SVG document or color layers instead of a vector outline.
	ErrNotOutline = errors.New("glyphsvg: glyph has no vector outline")
)

// UnrecognizedCommandError reports an instruction whose Kind is not one of
// the known instruction types. It is only produced in UnknownStrict mode.
type UnrecognizedCommandError struct {
	Index int
	Kind  InstructionType
}

func (e *UnrecognizedCommandError) Error() string {
	return fmt.Sprintf("glyphsvg: unrecognized drawing instruction %d at index %d", int(e.Kind), e.Index)
}

func (e *UnrecognizedCommandError) Is(target error) bool {
	return target == ErrUnrecognizedCommand
}

// PathDataError reports malformed path data passed to ParsePathData.
type PathDataError struct {
	Command string
	Reason  string
	Err     error
}

func (e *PathDataError) Error() string {
	msg := "glyphsvg: bad path data"
	if e.Command != "" {
		msg += " in " + e.Command
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *PathDataError) Unwrap() error { return e.Err }
