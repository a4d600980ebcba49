package palette

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gogpu/gg"
	tdstrconv "github.com/tdewolff/parse/v2/strconv"
)

// OpKind identifies a path-language instruction.
type OpKind uint8

const (
	// OpMove starts a new subpath at To.
	OpMove OpKind = iota
	// OpLine draws a straight segment to To.
	OpLine
	// OpQuad draws a quadratic Bezier segment through Ctrl to To.
	OpQuad
)

// String returns the instruction letter.
func (k OpKind) String() string {
	switch k {
	case OpMove:
		return "M"
	case OpLine:
		return "L"
	case OpQuad:
		return "Q"
	default:
		return fmt.Sprintf("OpKind(%d)", uint8(k))
	}
}

// arity is the number of numeric arguments the instruction takes.
func (k OpKind) arity() int {
	if k == OpQuad {
		return 4
	}
	return 2
}

// PathOp is one decoded path-language instruction. Ctrl is only meaningful
// for OpQuad.
type PathOp struct {
	Kind OpKind
	Ctrl Point
	To   Point
}

// Move returns a move-to instruction.
func Move(x, y float64) PathOp { return PathOp{Kind: OpMove, To: Point{X: x, Y: y}} }

// Line returns a line-to instruction.
func Line(x, y float64) PathOp { return PathOp{Kind: OpLine, To: Point{X: x, Y: y}} }

// Quad returns a quadratic-curve-to instruction.
func Quad(cx, cy, x, y float64) PathOp {
	return PathOp{Kind: OpQuad, Ctrl: Point{X: cx, Y: cy}, To: Point{X: x, Y: y}}
}

// ParseOption configures ParsePath.
type ParseOption func(*parseOptions)

type parseOptions struct {
	lenient bool
}

// Lenient makes ParsePath skip tokens whose opcode letter it does not
// know instead of failing. Malformed numbers are still errors.
func Lenient() ParseOption {
	return func(o *parseOptions) {
		o.lenient = true
	}
}

// ParsePath decodes a path-language string such as
//
//	"M,0,0 L,10,10 Q,15,5,20,10"
//
// Tokens are separated by whitespace. An unknown opcode letter, a wrong
// argument count or a malformed number yields a *PathError that matches
// ErrInvalidArgument. An empty string yields no instructions.
func ParsePath(s string, opts ...ParseOption) ([]PathOp, error) {
	var o parseOptions
	for _, opt := range opts {
		opt(&o)
	}

	tokens := strings.Fields(s)
	ops := make([]PathOp, 0, len(tokens))
	for pos, tok := range tokens {
		op, err := parseToken(tok)
		if o.lenient && errors.Is(err, errUnknownOpcode) {
			Logger().Warn("palette: skipping unknown path opcode", "pos", pos, "token", tok)
			continue
		}
		if err != nil {
			return nil, &PathError{Pos: pos, Token: tok, Err: err}
		}
		ops = append(ops, op)
	}
	return ops, nil
}

var errUnknownOpcode = fmt.Errorf("unknown opcode: %w", ErrInvalidArgument)

func parseToken(tok string) (PathOp, error) {
	fields := strings.Split(tok, ",")

	var kind OpKind
	switch fields[0] {
	case "M", "m":
		kind = OpMove
	case "L", "l":
		kind = OpLine
	case "Q", "q":
		kind = OpQuad
	default:
		return PathOp{}, errUnknownOpcode
	}

	args := fields[1:]
	if len(args) != kind.arity() {
		return PathOp{}, fmt.Errorf("%s takes %d arguments, got %d: %w",
			kind, kind.arity(), len(args), ErrInvalidArgument)
	}

	var v [4]float64
	for i, a := range args {
		f, err := parseNumber(a)
		if err != nil {
			return PathOp{}, err
		}
		v[i] = f
	}

	if kind == OpQuad {
		return Quad(v[0], v[1], v[2], v[3]), nil
	}
	return PathOp{Kind: kind, To: Point{X: v[0], Y: v[1]}}, nil
}

// parseNumber accepts a complete decimal literal with optional sign,
// fraction and exponent. The tdewolff scanner decides what is a literal;
// strconv then rounds it correctly.
func parseNumber(s string) (float64, error) {
	f, n := tdstrconv.ParseFloat([]byte(s))
	if n == 0 || n != len(s) || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("malformed number %q: %w", s, ErrInvalidArgument)
	}
	if exact, err := strconv.ParseFloat(s, 64); err == nil {
		f = exact
	}
	return f, nil
}

// FormatPath encodes ops in the path language. Numbers use the shortest
// representation that parses back to the same value.
func FormatPath(ops []PathOp) string {
	var sb strings.Builder
	for i, op := range ops {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(op.Kind.String())
		if op.Kind == OpQuad {
			writeCoord(&sb, op.Ctrl.X)
			writeCoord(&sb, op.Ctrl.Y)
		}
		writeCoord(&sb, op.To.X)
		writeCoord(&sb, op.To.Y)
	}
	return sb.String()
}

func writeCoord(sb *strings.Builder, v float64) {
	sb.WriteByte(',')
	sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
}

// AppendPath adds ops to p in order.
func AppendPath(p *gg.Path, ops []PathOp) {
	for _, op := range ops {
		switch op.Kind {
		case OpMove:
			p.MoveTo(op.To.X, op.To.Y)
		case OpLine:
			p.LineTo(op.To.X, op.To.Y)
		case OpQuad:
			p.QuadraticTo(op.Ctrl.X, op.Ctrl.Y, op.To.X, op.To.Y)
		}
	}
}

// traceOps issues ops against dc's current path, through its transform.
func traceOps(dc *gg.Context, ops []PathOp) {
	for _, op := range ops {
		switch op.Kind {
		case OpMove:
			dc.MoveTo(op.To.X, op.To.Y)
		case OpLine:
			dc.LineTo(op.To.X, op.To.Y)
		case OpQuad:
			dc.QuadraticTo(op.Ctrl.X, op.Ctrl.Y, op.To.X, op.To.Y)
		}
	}
}
