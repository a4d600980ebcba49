package palette

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/gg"
)

// LineCap is the shape of open line ends. The zero value leaves the
// inherited cap in place.
type LineCap uint8

// Line caps.
const (
	CapDefault LineCap = iota
	CapButt
	CapRound
	CapSquare
)

// ParseLineCap parses a canvas lineCap name: "butt", "round" or "square".
func ParseLineCap(s string) (LineCap, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "butt":
		return CapButt, nil
	case "round":
		return CapRound, nil
	case "square":
		return CapSquare, nil
	}
	return CapDefault, invalidf("unknown line cap %q", s)
}

func (c LineCap) toGG() gg.LineCap {
	switch c {
	case CapRound:
		return gg.LineCapRound
	case CapSquare:
		return gg.LineCapSquare
	default:
		return gg.LineCapButt
	}
}

// LineJoin is the shape of corners between segments. The zero value
// leaves the inherited join in place.
type LineJoin uint8

// Line joins.
const (
	JoinDefault LineJoin = iota
	JoinMiter
	JoinRound
	JoinBevel
)

// ParseLineJoin parses a canvas lineJoin name: "miter", "round" or "bevel".
func ParseLineJoin(s string) (LineJoin, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "miter":
		return JoinMiter, nil
	case "round":
		return JoinRound, nil
	case "bevel":
		return JoinBevel, nil
	}
	return JoinDefault, invalidf("unknown line join %q", s)
}

func (j LineJoin) toGG() gg.LineJoin {
	switch j {
	case JoinRound:
		return gg.LineJoinRound
	case JoinBevel:
		return gg.LineJoinBevel
	default:
		return gg.LineJoinMiter
	}
}

// Composite selects how a figure is blended onto the surface. The zero
// value leaves the inherited mode in place.
type Composite uint8

// Composite modes.
const (
	CompositeDefault Composite = iota
	SourceOver
	Multiply
	Screen
	Overlay
)

// ParseComposite parses a canvas globalCompositeOperation name. Supported
// names are "source-over", "multiply", "screen" and "overlay".
func ParseComposite(s string) (Composite, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "source-over":
		return SourceOver, nil
	case "multiply":
		return Multiply, nil
	case "screen":
		return Screen, nil
	case "overlay":
		return Overlay, nil
	}
	return CompositeDefault, invalidf("unsupported composite operation %q", s)
}

func (c Composite) blendMode() gg.BlendMode {
	switch c {
	case Multiply:
		return gg.BlendMultiply
	case Screen:
		return gg.BlendScreen
	case Overlay:
		return gg.BlendOverlay
	default:
		return gg.BlendNormal
	}
}

// Shadow is a blurred copy of a figure drawn beneath it.
type Shadow struct {
	OffsetX, OffsetY float64
	Blur             float64 // canvas shadowBlur; Gaussian sigma is Blur/2
	Color            gg.RGBA
}

// ParseShadow parses the "offsetX offsetY blur color" form, e.g.
// "2 2 4 #00000080". Offsets and blur are integers.
func ParseShadow(s string) (*Shadow, error) {
	parts := strings.Fields(s)
	if len(parts) != 4 {
		return nil, invalidf("shadow %q: want \"x y blur color\"", s)
	}
	var v [3]float64
	for i := range v {
		n, err := strconv.Atoi(parts[i])
		if err != nil {
			return nil, invalidf("shadow %q: %v", s, err)
		}
		v[i] = float64(n)
	}
	if v[2] < 0 {
		return nil, invalidf("shadow %q: negative blur", s)
	}
	c, err := ParseColor(parts[3])
	if err != nil {
		return nil, fmt.Errorf("shadow %q: %w", s, err)
	}
	return &Shadow{OffsetX: v[0], OffsetY: v[1], Blur: v[2], Color: c}, nil
}

// visible reports whether drawing the shadow can change any pixel.
func (s *Shadow) visible() bool {
	return s != nil && s.Color.A > 0 && (s.OffsetX != 0 || s.OffsetY != 0 || s.Blur > 0)
}

// Style holds the paint attributes applied before a figure is rendered.
// Zero-valued fields are unset and inherit from the palette's persistent
// style.
type Style struct {
	Fill       gg.Brush
	Shadow     *Shadow
	Stroke     gg.Brush
	Cap        LineCap
	Join       LineJoin
	Thickness  float64
	MiterLimit float64
	Alpha      float64 // (0,1]
	Composite  Composite
	Dash       []float64
}

// DefaultStyle is the style of a fresh palette: black fill and stroke,
// one pixel butt-capped mitered lines, opaque source-over compositing.
func DefaultStyle() Style {
	return Style{
		Fill:       gg.Solid(gg.Black),
		Stroke:     gg.Solid(gg.Black),
		Cap:        CapButt,
		Join:       JoinMiter,
		Thickness:  1,
		MiterLimit: 10,
		Alpha:      1,
		Composite:  SourceOver,
	}
}

// Merge returns s with every field that is set in over replaced.
// Fields are visited in application order: fill, shadow, stroke, cap,
// join, thickness, miter limit, alpha, composite, dash.
func (s Style) Merge(over Style) Style {
	if over.Fill != nil {
		s.Fill = over.Fill
	}
	if over.Shadow != nil {
		s.Shadow = over.Shadow
	}
	if over.Stroke != nil {
		s.Stroke = over.Stroke
	}
	if over.Cap != CapDefault {
		s.Cap = over.Cap
	}
	if over.Join != JoinDefault {
		s.Join = over.Join
	}
	if over.Thickness != 0 {
		s.Thickness = over.Thickness
	}
	if over.MiterLimit != 0 {
		s.MiterLimit = over.MiterLimit
	}
	if over.Alpha != 0 {
		s.Alpha = over.Alpha
	}
	if over.Composite != CompositeDefault {
		s.Composite = over.Composite
	}
	if over.Dash != nil {
		s.Dash = over.Dash
	}
	return s
}

// Validate reports out-of-range values.
func (s Style) Validate() error {
	if s.Thickness < 0 || !finite(s.Thickness) {
		return invalidf("thickness %v", s.Thickness)
	}
	if s.MiterLimit < 0 || !finite(s.MiterLimit) {
		return invalidf("miter limit %v", s.MiterLimit)
	}
	if s.Alpha < 0 || s.Alpha > 1 {
		return invalidf("alpha %v outside [0,1]", s.Alpha)
	}
	if s.Shadow != nil && (s.Shadow.Blur < 0 || !finite(s.Shadow.OffsetX, s.Shadow.OffsetY, s.Shadow.Blur)) {
		return invalidf("shadow %+v", *s.Shadow)
	}
	for _, d := range s.Dash {
		if d < 0 || !finite(d) {
			return invalidf("dash length %v", d)
		}
	}
	return nil
}

// stroke converts the line attributes to a gg stroke.
func (s Style) stroke() gg.Stroke {
	st := gg.DefaultStroke().
		WithWidth(s.Thickness).
		WithCap(s.Cap.toGG()).
		WithJoin(s.Join.toGG()).
		WithMiterLimit(s.MiterLimit)
	if len(s.Dash) > 0 {
		st.Dash = gg.NewDash(s.Dash...)
	}
	return st
}

// layered reports whether the figure must be composited through a layer.
func (s Style) layered() bool {
	return (s.Alpha > 0 && s.Alpha < 1) || s.Composite.blendMode() != gg.BlendNormal
}
