package glyphsvg

import (
	"errors"
	"math"
	"math/rand"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type PathTest struct {
	Description string
	D           string
	Kinds       []InstructionType
	XCoords     []float64
	YCoords     []float64
}

var tests = []PathTest{
	{
		"absolute lines",
		"M 0 0 L 100 0 L 100 100 L 0 100 Z",
		[]InstructionType{MoveInstruction, LineInstruction, LineInstruction, LineInstruction, CloseInstruction},
		[]float64{0, 100, 100, 0, 0},
		[]float64{0, 0, 100, 100, 0},
	},
	{
		"implicit line repeats",
		"M 0 0 L 100 0 100 100 Z",
		[]InstructionType{MoveInstruction, LineInstruction, LineInstruction, CloseInstruction},
		[]float64{0, 100, 100, 0},
		[]float64{0, 0, 100, 0},
	},
	{
		"implicit lines after move",
		"M 0 0 50 0 50 50",
		[]InstructionType{MoveInstruction, LineInstruction, LineInstruction},
		[]float64{0, 50, 50},
		[]float64{0, 0, 50},
	},
	{
		"comma separated pairs",
		"M 0.5,1.5 L 2.25,3.75 z",
		[]InstructionType{MoveInstruction, LineInstruction, CloseInstruction},
		[]float64{0.5, 2.25, 0},
		[]float64{1.5, 3.75, 0},
	},
	{
		"curves",
		"M 0 0 C 1 1 2 2 3 3 Q 4 4 5 5",
		[]InstructionType{MoveInstruction, CurveInstruction, QuadInstruction},
		[]float64{0, 3, 5},
		[]float64{0, 3, 5},
	},
	{
		"repeated curves",
		"M 0 0 C 1 1 2 2 3 3 4 4 5 5 6 6 Q 7 7 8 8 9 9 10 10",
		[]InstructionType{MoveInstruction, CurveInstruction, CurveInstruction, QuadInstruction, QuadInstruction},
		[]float64{0, 3, 6, 8, 10},
		[]float64{0, 3, 6, 8, 10},
	},
	{
		"two contours",
		"M 0 0 L 10 0 Z M 20 20 L 30 20 Z",
		[]InstructionType{MoveInstruction, LineInstruction, CloseInstruction, MoveInstruction, LineInstruction, CloseInstruction},
		[]float64{0, 10, 0, 20, 30, 0},
		[]float64{0, 0, 0, 20, 20, 0},
	},
	{
		"empty",
		"",
		[]InstructionType{},
		[]float64{},
		[]float64{},
	},
}

func TestParsePathList(t *testing.T) {
	for _, test := range tests {
		strux, err := ParsePathData(test.D)
		require.NoError(t, err, test.Description)
		require.NotNil(t, strux, test.Description)

		if len(strux) != len(test.Kinds) {
			t.Fatalf("expected %d instructions for test %s, but received %d", len(test.Kinds), test.Description, len(strux))
		}

		for i, kind := range test.Kinds {
			if strux[i].Kind != kind {
				t.Fatalf("expected instruction %d for test %s to be %s, but was %s", i, test.Description, kind, strux[i].Kind)
			}
		}

		for i, x := range test.XCoords {
			if strux[i].T[0] != x {
				t.Fatalf("expected X coordinate %d for test %s to be %f, but was %f", i, test.Description, x, strux[i].T[0])
			}
		}

		for i, y := range test.YCoords {
			if strux[i].T[1] != y {
				t.Fatalf("expected Y coordinate %d for test %s to be %f, but was %f", i, test.Description, y, strux[i].T[1])
			}
		}
	}
}

func TestParsePathControlPoints(t *testing.T) {
	strux, err := ParsePathData("C 1 2 3 4 5 6 Q 7 8 9 10")
	require.NoError(t, err)
	require.Equal(t, []DrawingInstruction{CubicTo(1, 2, 3, 4, 5, 6), QuadTo(7, 8, 9, 10)}, strux)
}

func TestParsePathErrors(t *testing.T) {
	bad := map[string]string{
		"unsupported command": "M 0 0 H 10",
		"arc":                 "M 0 0 A 1 1 0 0 1 2 2",
		"missing y":           "M 1",
		"incomplete cubic":    "M 0 0 C 1 1 2 2",
		"incomplete quad":     "M 0 0 Q 1 1 2 2 3 3",
		"move without args":   "M Z",
		"close with args":     "M 0 0 Z 1 1",
		"stray character":     "M 0 0 L 1 1 Z @ L 5 5",
		"carriage return":     "M 0 0 L 1 1\rZ",
		"trailing garbage":    "M 0 0 L 1 1 Z; garbage",
		"parentheses":         "M 0 0 (L 1 1)",
		"doubled letter":      "M 0 0 L 1 1 ZZ",
	}
	for desc, d := range bad {
		_, err := ParsePathData(d)
		require.Error(t, err, desc)

		var pde *PathDataError
		require.True(t, errors.As(err, &pde), desc)
	}
}

func TestParsePathDataReleasesLexer(t *testing.T) {
	before := runtime.NumGoroutine()
	for i := 0; i < 100; i++ {
		_, err := ParsePathData("M 0 0 L 1 1 Z")
		require.NoError(t, err)
		_, err = ParsePathData("M 0 0 H 10")
		require.Error(t, err)
		_, err = ParsePathData("M 0 0 Z @")
		require.Error(t, err)
	}

	after := runtime.NumGoroutine()
	for deadline := time.Now().Add(2 * time.Second); after > before+5 && time.Now().Before(deadline); {
		time.Sleep(10 * time.Millisecond)
		after = runtime.NumGoroutine()
	}
	require.LessOrEqual(t, after, before+5, "goroutines before=%d after=%d", before, after)
}

func TestParsePathSignsAndExponents(t *testing.T) {
	cases := map[string][]DrawingInstruction{
		"M 0.5 -1.25 L -0.015625 12.34375":  {MoveTo(0.5, -1.25), LineTo(-0.015625, 12.34375)},
		"M 1e+06 1e-07 L -3 -4":             {MoveTo(1e6, 1e-7), LineTo(-3, -4)},
		"M 100 -200 Q -1 2 3 -4 Z":          {MoveTo(100, -200), QuadTo(-1, 2, 3, -4), Close()},
		"M +2 -2.5e-05 C -1e+21 0 0 -0 1 1": {MoveTo(2, -2.5e-5), CubicTo(-1e21, 0, 0, 0, 1, 1)},
	}
	for d, want := range cases {
		got, err := ParsePathData(d)
		require.NoError(t, err, d)
		require.Equal(t, want, got, d)
	}
}

func TestPathRoundTrip(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		instrs := randomInstructions(60, seed)
		parsed, err := ParsePathData(Serialize(instrs))
		require.NoError(t, err)
		require.Equal(t, instrs, parsed)
	}
}

func TestPathRoundTripSerializeCases(t *testing.T) {
	for _, test := range serializeTests {
		if !knownOnly(test.Instrs) {
			continue
		}
		parsed, err := ParsePathData(test.Want)
		require.NoError(t, err, test.Description)
		if len(test.Instrs) == 0 {
			require.Empty(t, parsed, test.Description)
			continue
		}
		require.Equal(t, test.Instrs, parsed, test.Description)
	}
}

func knownOnly(instrs []DrawingInstruction) bool {
	for _, di := range instrs {
		if di.Kind.Letter() == "" {
			return false
		}
	}
	return true
}

// randomInstructions returns n instructions of known kinds starting with a
// move. Coordinates are signed, mostly on a 1/64 grid, with some large and
// tiny values that format with an exponent.
func randomInstructions(n int, seed int64) []DrawingInstruction {
	r := rand.New(rand.NewSource(seed))
	coord := func() float64 {
		v := float64(r.Intn(2048)) + float64(r.Intn(64))/64
		switch r.Intn(10) {
		case 0:
			v = float64(r.Intn(9)+1) * math.Pow10(6+r.Intn(20))
		case 1:
			v = float64(r.Intn(9)+1) * math.Pow10(-5-r.Intn(10))
		}
		if r.Intn(2) == 0 {
			v = -v
		}
		return v
	}
	instrs := make([]DrawingInstruction, 0, n)
	instrs = append(instrs, MoveTo(coord(), coord()))
	for len(instrs) < n {
		switch r.Intn(5) {
		case 0:
			instrs = append(instrs, MoveTo(coord(), coord()))
		case 1:
			instrs = append(instrs, LineTo(coord(), coord()))
		case 2:
			instrs = append(instrs, CubicTo(coord(), coord(), coord(), coord(), coord(), coord()))
		case 3:
			instrs = append(instrs, QuadTo(coord(), coord(), coord(), coord()))
		case 4:
			instrs = append(instrs, Close())
		}
	}
	return instrs
}
