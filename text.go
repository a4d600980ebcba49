package palette

import (
	"fmt"
	"math"
	"strings"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"
	"golang.org/x/text/language"
)

// DefaultFontSize is the size used when Font.Size is zero, matching the
// canvas default of "10px sans-serif".
const DefaultFontSize = 10

// builtinFonts maps family names to the embedded Go fonts.
var builtinFonts = map[string][]byte{
	"go":             goregular.TTF,
	"go-regular":     goregular.TTF,
	"go-bold":        gobold.TTF,
	"go-italic":      goitalic.TTF,
	"go-bold-italic": gobolditalic.TTF,
	"go-medium":      gomedium.TTF,
	"go-mono":        gomono.TTF,
	"go-mono-bold":   gomonobold.TTF,
	"go-smallcaps":   gosmallcaps.TTF,
	"sans-serif":     goregular.TTF,
	"serif":          goregular.TTF,
	"monospace":      gomono.TTF,
}

// shaper lays out runs with HarfBuzz. Its advances are not grid-fitted,
// so widths scale linearly with the font size.
var shaper = text.NewGoTextShaper()

// Font selects a face. Path takes precedence over Family; with neither,
// the palette's default font is used.
type Font struct {
	Family string  // built-in family, e.g. "go-bold" or "monospace"
	Path   string  // TrueType/OpenType file
	Size   float64 // points; DefaultFontSize when zero
}

// TextSettings describes a run of text anchored at (X,Y).
type TextSettings struct {
	Text string
	X, Y float64
	Font Font
	// Align is "start" (default), "end", "left", "right" or "center".
	Align string
	// Baseline is "alphabetic" (default), "top", "hanging", "middle",
	// "ideographic" or "bottom".
	Baseline string
	// Direction is "ltr" (default), "rtl" or "inherit".
	Direction string
	// Language is a BCP 47 tag used for shaping, e.g. "ar" or "sr-Latn".
	Language string
	Style
}

// Text draws a run of text. When the settings name a Stroke brush the
// glyph outlines are stroked, otherwise the text is filled with the
// inherited fill.
func (p *Palette) Text(s TextSettings) (*Palette, error) {
	lt, err := p.layoutText(s)
	if err != nil {
		return p, err
	}
	if s.Text == "" {
		return p, nil
	}

	mode := paintFill
	if s.Stroke != nil {
		mode = paintStroke
	}
	return p, p.render(s.Style, mode, func(dc *gg.Context) {
		appendOutlines(dc, lt.face, s.Text, lt.x, lt.y)
	})
}

// MeasureText returns the advance width and line height of s.Text in the
// face selected by s.Font.
func (p *Palette) MeasureText(s TextSettings) (w, h float64, err error) {
	lt, err := p.layoutText(s)
	if err != nil {
		return 0, 0, err
	}
	m := metrics(lt.face)
	return advance(s.Text, lt.face), m.Ascent + m.Descent, nil
}

// laidOut is a face plus the baseline origin after alignment.
type laidOut struct {
	face text.Face
	x, y float64
}

func (p *Palette) layoutText(s TextSettings) (laidOut, error) {
	if !finite(s.X, s.Y, s.Font.Size) || s.Font.Size < 0 {
		return laidOut{}, invalidf("text position and font size must be finite")
	}

	dir, err := parseDirection(s.Direction)
	if err != nil {
		return laidOut{}, err
	}
	faceOpts := []text.FaceOption{text.WithDirection(dir)}
	if s.Language != "" {
		tag, err := language.Parse(s.Language)
		if err != nil {
			return laidOut{}, invalidf("language %q: %v", s.Language, err)
		}
		faceOpts = append(faceOpts, text.WithLanguage(tag.String()))
	}

	p.mu.Lock()
	src, err := p.fonts.source(s.Font)
	p.mu.Unlock()
	if err != nil {
		return laidOut{}, err
	}
	size := s.Font.Size
	if size == 0 {
		size = DefaultFontSize
	}
	face := src.Face(size, faceOpts...)

	ax, err := alignFactor(s.Align, dir)
	if err != nil {
		return laidOut{}, err
	}
	x := s.X - advance(s.Text, face)*ax

	y, err := baselineY(s.Baseline, s.Y, metrics(face))
	if err != nil {
		return laidOut{}, err
	}
	return laidOut{face: face, x: x, y: y}, nil
}

// advance is the unrounded advance width of the shaped run.
func advance(s string, face text.Face) float64 {
	var w float64
	for _, g := range shaper.Shape(s, face) {
		w += g.XAdvance
	}
	return w
}

// metrics returns the face's vertical metrics scaled from font units,
// without the whole-pixel rounding of Face.Metrics.
func metrics(face text.Face) text.Metrics {
	src := face.Source()
	if src == nil || src.Parsed().UnitsPerEm() <= 0 {
		return face.Metrics()
	}
	parsed := src.Parsed()
	upem := parsed.UnitsPerEm()
	fm := parsed.Metrics(float64(upem))
	k := face.Size() / float64(upem)
	return text.Metrics{
		Ascent:    fm.Ascent * k,
		Descent:   math.Abs(fm.Descent) * k,
		XHeight:   fm.XHeight * k,
		CapHeight: fm.CapHeight * k,
	}
}

func parseDirection(s string) (text.Direction, error) {
	switch strings.ToLower(s) {
	case "", "ltr", "inherit":
		return text.DirectionLTR, nil
	case "rtl":
		return text.DirectionRTL, nil
	}
	return text.DirectionLTR, invalidf("unknown text direction %q", s)
}

// alignFactor is the fraction of the advance width left of the anchor.
func alignFactor(align string, dir text.Direction) (float64, error) {
	rtl := dir == text.DirectionRTL
	switch strings.ToLower(align) {
	case "", "start":
		if rtl {
			return 1, nil
		}
		return 0, nil
	case "end":
		if rtl {
			return 0, nil
		}
		return 1, nil
	case "left":
		return 0, nil
	case "right":
		return 1, nil
	case "center":
		return 0.5, nil
	}
	return 0, invalidf("unknown text align %q", align)
}

// baselineY converts an anchor y for the given baseline to the
// alphabetic baseline gg draws on.
func baselineY(baseline string, y float64, m text.Metrics) (float64, error) {
	switch strings.ToLower(baseline) {
	case "", "alphabetic":
		return y, nil
	case "top", "hanging":
		return y + m.Ascent, nil
	case "middle":
		return y + (m.Ascent-m.Descent)/2, nil
	case "ideographic", "bottom":
		return y - m.Descent, nil
	}
	return y, invalidf("unknown text baseline %q", baseline)
}

// appendOutlines adds the glyph outlines of s, with its baseline origin at
// (x, y), to dc's current path.
func appendOutlines(dc *gg.Context, face text.Face, s string, x, y float64) {
	source := face.Source()
	if source == nil {
		return
	}
	parsed := source.Parsed()
	extractor := text.NewOutlineExtractor()

	for _, sg := range shaper.Shape(s, face) {
		outline, err := extractor.ExtractOutline(parsed, sg.GID, face.Size())
		if err != nil || outline == nil || outline.IsEmpty() {
			continue
		}
		gx, gy := x+sg.X, y+sg.Y
		open := false
		for _, seg := range outline.Segments {
			pt := seg.Points
			switch seg.Op {
			case text.OutlineOpMoveTo:
				if open {
					dc.ClosePath()
				}
				dc.MoveTo(gx+float64(pt[0].X), gy+float64(pt[0].Y))
				open = true
			case text.OutlineOpLineTo:
				dc.LineTo(gx+float64(pt[0].X), gy+float64(pt[0].Y))
			case text.OutlineOpQuadTo:
				dc.QuadraticTo(
					gx+float64(pt[0].X), gy+float64(pt[0].Y),
					gx+float64(pt[1].X), gy+float64(pt[1].Y))
			case text.OutlineOpCubicTo:
				dc.CubicTo(
					gx+float64(pt[0].X), gy+float64(pt[0].Y),
					gx+float64(pt[1].X), gy+float64(pt[1].Y),
					gx+float64(pt[2].X), gy+float64(pt[2].Y))
			}
		}
		if open {
			dc.ClosePath()
		}
	}
}

// fontSet caches parsed font sources by family or file.
type fontSet struct {
	fallback *text.FontSource
	owned    []*text.FontSource
	byKey    map[string]*text.FontSource
}

func newFontSet(fallback *text.FontSource) *fontSet {
	return &fontSet{fallback: fallback, byKey: make(map[string]*text.FontSource)}
}

func (fs *fontSet) source(f Font) (*text.FontSource, error) {
	switch {
	case f.Path != "":
		return fs.load("file:"+f.Path, func() (*text.FontSource, error) {
			return text.NewFontSourceFromFile(f.Path)
		})
	case f.Family != "":
		data, ok := builtinFonts[strings.ToLower(f.Family)]
		if !ok {
			return nil, invalidf("unknown font family %q", f.Family)
		}
		return fs.load("family:"+strings.ToLower(f.Family), func() (*text.FontSource, error) {
			return text.NewFontSource(data)
		})
	case fs.fallback != nil:
		return fs.fallback, nil
	default:
		return fs.load("family:go", func() (*text.FontSource, error) {
			return text.NewFontSource(goregular.TTF)
		})
	}
}

func (fs *fontSet) load(key string, open func() (*text.FontSource, error)) (*text.FontSource, error) {
	if src, ok := fs.byKey[key]; ok {
		return src, nil
	}
	src, err := open()
	if err != nil {
		return nil, fmt.Errorf("palette: load font %s: %w", key, err)
	}
	fs.byKey[key] = src
	fs.owned = append(fs.owned, src)
	return src, nil
}

func (fs *fontSet) close() {
	for _, src := range fs.owned {
		_ = src.Close()
	}
	fs.owned = nil
	clear(fs.byKey)
}
