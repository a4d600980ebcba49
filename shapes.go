package palette

import (
	"math"

	"github.com/gogpu/gg"
)

// LineSettings describes a straight segment.
type LineSettings struct {
	X1, Y1, X2, Y2 float64
	Style
}

// Line strokes a segment from (X1,Y1) to (X2,Y2). It is always stroked,
// using the inherited stroke brush when the settings name none.
func (p *Palette) Line(s LineSettings) (*Palette, error) {
	if !finite(s.X1, s.Y1, s.X2, s.Y2) {
		return p, invalidf("line endpoints must be finite")
	}
	return p, p.render(s.Style, paintStroke, func(dc *gg.Context) {
		dc.DrawLine(s.X1, s.Y1, s.X2, s.Y2)
	})
}

// RectSettings describes an axis-aligned rectangle, optionally rotated
// about its centre and optionally with rounded corners.
type RectSettings struct {
	X, Y, Width, Height float64
	Degree              float64 // clockwise rotation about the centre
	Radius              float64 // corner radius, clamped to half the shorter side
	Style
}

// Rect draws a rectangle.
func (p *Palette) Rect(s RectSettings) (*Palette, error) {
	if !finite(s.X, s.Y, s.Width, s.Height, s.Degree, s.Radius) {
		return p, invalidf("rect geometry must be finite")
	}
	if s.Radius < 0 {
		return p, invalidf("rect radius %v", s.Radius)
	}
	if s.Radius > 0 && (s.Width < 0 || s.Height < 0) {
		return p, invalidf("rounded rect needs a non-negative size, got %vx%v", s.Width, s.Height)
	}
	return p, p.render(s.Style, modeFor(s.Style), func(dc *gg.Context) {
		if s.Degree != 0 {
			dc.Push()
			defer dc.Pop()
			dc.RotateAbout(s.Degree*math.Pi/180, s.X+s.Width/2, s.Y+s.Height/2)
		}
		if s.Radius > 0 {
			dc.DrawRoundedRectangle(s.X, s.Y, s.Width, s.Height, s.Radius)
			return
		}
		dc.DrawRectangle(s.X, s.Y, s.Width, s.Height)
	})
}

// CircleSettings describes a circle centred at (X,Y).
type CircleSettings struct {
	X, Y, R float64
	Style
}

// Circle draws a circle.
func (p *Palette) Circle(s CircleSettings) (*Palette, error) {
	if !finite(s.X, s.Y, s.R) || s.R < 0 {
		return p, invalidf("circle radius %v", s.R)
	}
	return p, p.render(s.Style, modeFor(s.Style), func(dc *gg.Context) {
		dc.DrawCircle(s.X, s.Y, s.R)
	})
}

// ArcSettings describes a circular arc. Start and Stop are in radians.
type ArcSettings struct {
	X, Y, R     float64
	Start, Stop float64
	// Anticlockwise sweeps from Start to Stop through decreasing angles.
	Anticlockwise bool
	Style
}

// Arc draws an arc and closes it back to its starting point, so a fill
// produces a circular segment.
func (p *Palette) Arc(s ArcSettings) (*Palette, error) {
	if !finite(s.X, s.Y, s.R, s.Start, s.Stop) || s.R < 0 {
		return p, invalidf("arc radius %v", s.R)
	}
	from, to := s.Start, s.Stop
	if s.Anticlockwise {
		from, to = to, from
	}
	sweep := arcSweep(to - from)
	from = math.Mod(from, 2*math.Pi)
	to = from + sweep
	return p, p.render(s.Style, modeFor(s.Style), func(dc *gg.Context) {
		dc.DrawArc(s.X, s.Y, s.R, from, to)
		dc.ClosePath()
	})
}

// arcSweep maps the signed angle d to the swept angle in [0, 2π]:
// d itself modulo a full turn, or a full turn once d reaches one.
func arcSweep(d float64) float64 {
	if d >= 2*math.Pi {
		return 2 * math.Pi
	}
	d = math.Mod(d, 2*math.Pi)
	if d < 0 {
		d += 2 * math.Pi
	}
	return d
}

// PolygonSettings describes a regular polygon centred at (X,Y).
type PolygonSettings struct {
	X, Y   float64
	Size   float64 // circumradius
	Sides  int
	Degree float64 // rotation of the first vertex
	Style
}

// Polygon draws a regular polygon. Fewer than three sides or a
// non-positive size is ErrInvalidArgument.
func (p *Palette) Polygon(s PolygonSettings) (*Palette, error) {
	pts, err := Polygon{
		Center:   Point{X: s.X, Y: s.Y},
		Size:     s.Size,
		Sides:    s.Sides,
		Rotation: s.Degree,
	}.Vertices()
	if err != nil {
		return p, err
	}
	return p, p.render(s.Style, modeFor(s.Style), func(dc *gg.Context) {
		dc.MoveTo(pts[0].X, pts[0].Y)
		for _, pt := range pts[1:] {
			dc.LineTo(pt.X, pt.Y)
		}
		dc.ClosePath()
	})
}

// PathSettings describes a figure in the path language (see ParsePath).
type PathSettings struct {
	Path string
	// Lenient skips unknown opcodes instead of failing.
	Lenient bool
	// Open leaves the last subpath open; by default it is closed.
	Open bool
	Style
}

// Path draws a figure described in the path language.
func (p *Palette) Path(s PathSettings) (*Palette, error) {
	var opts []ParseOption
	if s.Lenient {
		opts = append(opts, Lenient())
	}
	ops, err := ParsePath(s.Path, opts...)
	if err != nil {
		return p, err
	}
	if len(ops) == 0 {
		return p, nil
	}
	return p, p.render(s.Style, modeFor(s.Style), func(dc *gg.Context) {
		traceOps(dc, ops)
		if !s.Open {
			dc.ClosePath()
		}
	})
}

// Figure draws a path built with gg, replayed through the current
// transform.
func (p *Palette) Figure(path *gg.Path, style Style) (*Palette, error) {
	if path == nil {
		return p, invalidf("nil path")
	}
	return p, p.render(style, modeFor(style), func(dc *gg.Context) {
		dc.DrawPath(path)
	})
}
