package palette

import (
	"image/color"
	"math"

	"github.com/gogpu/gg"
)

// ColorStop is a colour at Offset in [0,1] along a gradient.
type ColorStop struct {
	Offset float64
	Color  gg.RGBA
}

// GradientSettings describes a linear gradient from (X1,Y1) to (X2,Y2).
type GradientSettings struct {
	X1, Y1, X2, Y2 float64
	Stops          []ColorStop
	// Color1 and Color2, when set, add stops at offsets 0 and 1.
	Color1, Color2 color.Color
}

// RadialGradientSettings describes a radial gradient centred at (X,Y)
// running from radius R0 to R1.
type RadialGradientSettings struct {
	X, Y, R0, R1 float64
	Stops        []ColorStop
}

// ConicGradientSettings describes a sweep around (X,Y) starting at
// Start radians.
type ConicGradientSettings struct {
	X, Y, Start float64
	Stops       []ColorStop
}

// LinearGradient builds a linear gradient brush for Style.Fill or
// Style.Stroke. Gradient coordinates are in user space.
func LinearGradient(s GradientSettings) (gg.Brush, error) {
	if !finite(s.X1, s.Y1, s.X2, s.Y2) {
		return nil, invalidf("gradient endpoints must be finite")
	}
	stops := s.Stops
	if s.Color1 != nil {
		stops = append([]ColorStop{{Offset: 0, Color: gg.FromColor(s.Color1)}}, stops...)
	}
	if s.Color2 != nil {
		stops = append(stops, ColorStop{Offset: 1, Color: gg.FromColor(s.Color2)})
	}
	if err := checkStops(stops); err != nil {
		return nil, err
	}
	g := gg.NewLinearGradientBrush(s.X1, s.Y1, s.X2, s.Y2)
	for _, st := range stops {
		g.AddColorStop(st.Offset, st.Color)
	}
	return g, nil
}

// RadialGradient builds a radial gradient brush.
func RadialGradient(s RadialGradientSettings) (gg.Brush, error) {
	if !finite(s.X, s.Y, s.R0, s.R1) || s.R0 < 0 || s.R1 < 0 {
		return nil, invalidf("radial gradient radii %v, %v", s.R0, s.R1)
	}
	if err := checkStops(s.Stops); err != nil {
		return nil, err
	}
	g := gg.NewRadialGradientBrush(s.X, s.Y, s.R0, s.R1)
	for _, st := range s.Stops {
		g.AddColorStop(st.Offset, st.Color)
	}
	return g, nil
}

// ConicGradient builds a sweep gradient brush.
func ConicGradient(s ConicGradientSettings) (gg.Brush, error) {
	if !finite(s.X, s.Y, s.Start) {
		return nil, invalidf("conic gradient must be finite")
	}
	if err := checkStops(s.Stops); err != nil {
		return nil, err
	}
	g := gg.NewSweepGradientBrush(s.X, s.Y, s.Start)
	for _, st := range s.Stops {
		g.AddColorStop(st.Offset, st.Color)
	}
	return g, nil
}

func checkStops(stops []ColorStop) error {
	if len(stops) == 0 {
		return invalidf("gradient has no color stops")
	}
	for _, st := range stops {
		if st.Offset < 0 || st.Offset > 1 || math.IsNaN(st.Offset) {
			return invalidf("color stop offset %v outside [0,1]", st.Offset)
		}
	}
	return nil
}
