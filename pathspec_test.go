package palette

import (
	"errors"
	"reflect"
	"testing"

	"github.com/gogpu/gg"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []PathOp
	}{
		{"empty", "", []PathOp{}},
		{"blank", "  \t\n ", []PathOp{}},
		{"move line", "M,0,0 L,10,10", []PathOp{Move(0, 0), Line(10, 10)}},
		{"quad", "Q,1,2,3,4", []PathOp{Quad(1, 2, 3, 4)}},
		{"lower case", "m,1,1 l,2,2 q,3,3,4,4", []PathOp{Move(1, 1), Line(2, 2), Quad(3, 3, 4, 4)}},
		{"mixed whitespace", "M,0,0\n\tL,5,5   L,0,5", []PathOp{Move(0, 0), Line(5, 5), Line(0, 5)}},
		{"floats", "M,-1.5,.25 L,1e2,-3E-1", []PathOp{Move(-1.5, 0.25), Line(100, -0.3)}},
		{"explicit plus", "L,+4,+0.5", []PathOp{Line(4, 0.5)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePath(tt.in)
			if err != nil {
				t.Fatalf("ParsePath(%q) error = %v", tt.in, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParsePath(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParsePath_Errors(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantPos int
		wantTok string
	}{
		{"unknown opcode", "M,0,0 Z,1,1", 1, "Z,1,1"},
		{"cubic not supported", "C,1,2,3,4,5,6", 0, "C,1,2,3,4,5,6"},
		{"bare letter", "M", 0, "M"},
		{"too few args", "M,0,0 L,1", 1, "L,1"},
		{"too many args", "M,0,0,0", 0, "M,0,0,0"},
		{"quad short", "Q,1,2,3", 0, "Q,1,2,3"},
		{"empty arg", "L,,1", 0, "L,,1"},
		{"garbage number", "M,0,0 L,1,abc", 1, "L,1,abc"},
		{"trailing junk", "L,1x,2", 0, "L,1x,2"},
		{"infinite", "L,1e999,0", 0, "L,1e999,0"},
		{"multi-letter opcode", "ML,1,2", 0, "ML,1,2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ops, err := ParsePath(tt.in)
			if ops != nil {
				t.Errorf("ParsePath(%q) ops = %v, want nil", tt.in, ops)
			}
			if !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("ParsePath(%q) error = %v, want ErrInvalidArgument", tt.in, err)
			}
			var pe *PathError
			if !errors.As(err, &pe) {
				t.Fatalf("ParsePath(%q) error %T is not *PathError", tt.in, err)
			}
			if pe.Pos != tt.wantPos || pe.Token != tt.wantTok {
				t.Errorf("PathError = {Pos:%d Token:%q}, want {Pos:%d Token:%q}",
					pe.Pos, pe.Token, tt.wantPos, tt.wantTok)
			}
		})
	}
}

func TestParsePath_Lenient(t *testing.T) {
	got, err := ParsePath("M,0,0 Z,9,9 L,1,1 X", Lenient())
	if err != nil {
		t.Fatalf("ParsePath() error = %v", err)
	}
	want := []PathOp{Move(0, 0), Line(1, 1)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParsePath() = %v, want %v", got, want)
	}

	// Lenient only forgives opcodes.
	if _, err := ParsePath("M,0,0 L,1,oops", Lenient()); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("lenient malformed number error = %v, want ErrInvalidArgument", err)
	}
	if _, err := ParsePath("L,1", Lenient()); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("lenient arity error = %v, want ErrInvalidArgument", err)
	}
}

func TestPathError_Message(t *testing.T) {
	_, err := ParsePath("M,0,0 L,0,0 Z")
	want := `palette: path token 2 "Z": unknown opcode: palette: invalid argument`
	if err == nil || err.Error() != want {
		t.Errorf("error = %v, want %s", err, want)
	}
}

func TestFormatPath_RoundTrip(t *testing.T) {
	ops := []PathOp{
		Move(0, 0),
		Line(10, -20),
		Quad(1.5, 2.25, -0.125, 300),
		Line(1e-3, 12345.5),
		Move(-7, 0.1),
	}
	s := FormatPath(ops)
	if want := "M,0,0 L,10,-20 Q,1.5,2.25,-0.125,300 L,0.001,12345.5 M,-7,0.1"; s != want {
		t.Errorf("FormatPath() = %q, want %q", s, want)
	}
	got, err := ParsePath(s)
	if err != nil {
		t.Fatalf("ParsePath(FormatPath()) error = %v", err)
	}
	if !reflect.DeepEqual(got, ops) {
		t.Errorf("round trip = %v, want %v", got, ops)
	}
	if FormatPath(nil) != "" {
		t.Errorf("FormatPath(nil) = %q, want empty", FormatPath(nil))
	}
}

func TestOpKindString(t *testing.T) {
	for k, want := range map[OpKind]string{OpMove: "M", OpLine: "L", OpQuad: "Q", OpKind(9): "OpKind(9)"} {
		if got := k.String(); got != want {
			t.Errorf("OpKind(%d).String() = %q, want %q", k, got, want)
		}
	}
}

func TestAppendPath(t *testing.T) {
	ops, err := ParsePath("M,1,2 L,3,4 Q,5,6,7,8")
	if err != nil {
		t.Fatal(err)
	}
	p := gg.NewPath()
	AppendPath(p, ops)

	wantVerbs := []gg.PathVerb{gg.MoveTo, gg.LineTo, gg.QuadTo}
	if !reflect.DeepEqual(p.Verbs(), wantVerbs) {
		t.Errorf("Verbs() = %v, want %v", p.Verbs(), wantVerbs)
	}
	wantCoords := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	if !reflect.DeepEqual(p.Coords(), wantCoords) {
		t.Errorf("Coords() = %v, want %v", p.Coords(), wantCoords)
	}
}

func BenchmarkParsePath(b *testing.B) {
	const s = "M,0,0 L,100,0 Q,150,50,100,100 L,0,100 Q,-50,50,0,0"
	b.ReportAllocs()
	for b.Loop() {
		_, _ = ParsePath(s)
	}
}
