package palette

import (
	"image"
	"sync"

	"github.com/gogpu/gg"
)

// Palette draws figures described by settings structs onto a gg context.
//
// A Palette is safe for concurrent use: every drawing call holds an
// internal lock for its duration.
type Palette struct {
	mu    sync.Mutex
	dc    *gg.Context
	style Style
	bg    gg.RGBA
	fonts *fontSet
}

// New creates a palette with a fresh width x height drawing surface.
func New(width, height int, opts ...Option) *Palette {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	dc := gg.NewContext(width, height, gg.WithDeviceScale(o.deviceScale))
	return newPalette(dc, o)
}

// NewForContext creates a palette that draws onto an existing context.
// The context's content is kept unless WithBackground is given.
func NewForContext(dc *gg.Context, opts ...Option) *Palette {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return newPalette(dc, o)
}

func newPalette(dc *gg.Context, o options) *Palette {
	p := &Palette{
		dc:    dc,
		style: DefaultStyle().Merge(o.style),
		bg:    o.background,
		fonts: newFontSet(o.font),
	}
	if p.bg.A > 0 {
		dc.ClearWithColor(p.bg)
	}
	Logger().Debug("palette: created",
		"width", dc.Width(), "height", dc.Height(), "scale", dc.DeviceScale())
	return p
}

// Width returns the logical width of the surface.
func (p *Palette) Width() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dc.Width()
}

// Height returns the logical height of the surface.
func (p *Palette) Height() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dc.Height()
}

// Context returns the underlying drawing context. Drawing on it directly
// while other goroutines use the palette is not synchronised.
func (p *Palette) Context() *gg.Context {
	return p.dc
}

// Snapshot returns a copy of the current surface pixels.
func (p *Palette) Snapshot() image.Image {
	p.mu.Lock()
	defer p.mu.Unlock()
	flush(p.dc)
	return p.dc.Image()
}

// Size resizes the surface. As with an HTML canvas, the content is
// discarded and the surface is reset to the background.
func (p *Palette) Size(width, height int) (*Palette, error) {
	if width <= 0 || height <= 0 {
		return p, invalidf("size %dx%d", width, height)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.dc.Resize(width, height); err != nil {
		return p, invalidf("resize: %v", err)
	}
	p.dc.ClearWithColor(p.bg)
	return p, nil
}

// ClearSettings selects the rectangle Clear resets.
type ClearSettings struct {
	X, Y, Width, Height float64
}

// Clear resets the surface. With nil settings the whole surface is reset
// to the background; otherwise the rectangle is made fully transparent.
func (p *Palette) Clear(s *ClearSettings) *Palette {
	p.mu.Lock()
	defer p.mu.Unlock()
	if s == nil {
		p.dc.ClearWithColor(p.bg)
		return p
	}
	p.dc.FillRectCPU(s.X, s.Y, s.Width, s.Height, gg.Transparent)
	return p
}

// Style merges s into the persistent style used by every later call.
func (p *Palette) Style(s Style) (*Palette, error) {
	if err := s.Validate(); err != nil {
		return p, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.style = p.style.Merge(s)
	return p, nil
}

// CurrentStyle returns the persistent style.
func (p *Palette) CurrentStyle() Style {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.style
}

// Reset restores DefaultStyle as the persistent style.
func (p *Palette) Reset() *Palette {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.style = DefaultStyle()
	return p
}

// Close releases the drawing context and any fonts the palette loaded.
func (p *Palette) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fonts.close()
	return p.dc.Close()
}
