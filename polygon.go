package palette

import (
	"math"

	"github.com/gogpu/gg"
)

// Point is a position on the drawing surface.
type Point = gg.Point

// MaxPolygonSides bounds Polygon.Sides.
const MaxPolygonSides = 1 << 20

// Polygon describes a regular polygon inscribed in a circle.
type Polygon struct {
	Center   Point
	Size     float64 // circumradius, > 0
	Sides    int     // 3..MaxPolygonSides
	Rotation float64 // degrees
}

// Vertices returns the Sides+1 corners of the polygon, starting at
// Rotation degrees and stepping 360/Sides degrees toward positive y
// (clockwise on screen). The last point repeats the first.
func (pg Polygon) Vertices() ([]Point, error) {
	if pg.Sides < 3 || pg.Sides > MaxPolygonSides {
		return nil, invalidf("polygon sides %d outside [3, %d]", pg.Sides, MaxPolygonSides)
	}
	if !(pg.Size > 0) || math.IsInf(pg.Size, 0) {
		return nil, invalidf("polygon size must be positive and finite, got %v", pg.Size)
	}
	if !finite(pg.Center.X, pg.Center.Y, pg.Rotation) {
		return nil, invalidf("polygon center and rotation must be finite")
	}

	start := pg.Rotation * math.Pi / 180
	step := 2 * math.Pi / float64(pg.Sides)
	pts := make([]Point, pg.Sides+1)
	for i := 0; i < pg.Sides; i++ {
		a := start + step*float64(i)
		pts[i] = Point{
			X: pg.Center.X + pg.Size*math.Cos(a),
			Y: pg.Center.Y + pg.Size*math.Sin(a),
		}
	}
	pts[pg.Sides] = pts[0]
	return pts, nil
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
