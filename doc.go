// Package palette provides a small settings-driven drawing API on top of
// the gg 2D graphics library.
//
// # Overview
//
// palette wraps a [gg.Context] and exposes one call per figure. Every call
// takes a settings struct describing the geometry and an optional [Style];
// the palette opens a path, issues the gg primitives, fills and/or strokes
// it, and restores its state afterwards. Calls return the palette so they
// can be chained once the error has been checked.
//
// # Quick Start
//
//	import "github.com/gogpu/palette"
//
//	p := palette.New(400, 300)
//
//	red, _ := palette.ParseBrush("tomato")
//	p.Circle(palette.CircleSettings{
//	    X: 200, Y: 150, R: 80,
//	    Style: palette.Style{Fill: red},
//	})
//
//	p.Path(palette.PathSettings{
//	    Path:  "M,20,20 L,120,20 Q,160,60,120,100",
//	    Style: palette.Style{Stroke: gg.Solid(gg.Black), Thickness: 3},
//	})
//
//	if err := p.Save("out.png"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Styles
//
// The palette keeps a persistent [Style] set with [Palette.Style]. Each
// drawing call merges its own Style over the persistent one for the
// duration of the call only. Zero-valued fields are "unset". The merged
// style is applied to the surface in a fixed order: fill, shadow, stroke,
// cap, join, thickness, miter limit, alpha, composite.
//
// A figure is filled only when its own settings carry a Fill brush and is
// stroked only when they carry a Stroke brush. [Palette.Line] always
// strokes.
//
// # Coordinate System
//
// Same as gg:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//
// Angles given in degrees (Degree, Rotation) and in radians (Arc Start and
// Stop) are measured from the positive x-axis toward positive y, which is
// clockwise on screen.
//
// # Path Language
//
// [ParsePath] reads a space-separated list of comma-separated instructions:
//
//	M,x,y          move to
//	L,x,y          line to
//	Q,cx,cy,x,y    quadratic curve to
//
// Letters are case-insensitive. [FormatPath] writes the same language.
//
// # Concurrency
//
// [Polygon.Vertices], [ParsePath] and [FormatPath] are pure functions and
// safe for concurrent use. A Palette serialises its own drawing calls, so
// [Palette.ImageAsync] may complete while other calls are running.
package palette
