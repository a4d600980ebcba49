package palette

import (
	"fmt"
	"image"

	"github.com/disintegration/gift"
	"github.com/gogpu/gg"
	"golang.org/x/image/draw"
)

// outline traces a figure onto dc's current path.
type outline func(dc *gg.Context)

// paintMode selects the paint operations applied to a traced figure.
type paintMode uint8

const (
	paintFill paintMode = 1 << iota
	paintStroke
)

// modeFor derives the paint operations from a call's own style: fill when
// it names a fill brush, stroke when it names a stroke brush.
func modeFor(own Style) paintMode {
	var m paintMode
	if own.Fill != nil {
		m |= paintFill
	}
	if own.Stroke != nil {
		m |= paintStroke
	}
	return m
}

// render draws one figure with own merged over the persistent style.
// The surface state it touches (path, paint, layers) is reset before it
// returns.
func (p *Palette) render(own Style, mode paintMode, trace outline) error {
	if err := own.Validate(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	st := p.style.Merge(own)
	dc := p.dc
	dc.ClearPath()

	if st.layered() {
		dc.PushLayer(st.Composite.blendMode(), st.Alpha)
		defer dc.PopLayer()
	}

	if st.Shadow.visible() && mode != 0 {
		if err := p.renderShadow(st, mode, trace); err != nil {
			return err
		}
	}

	trace(dc)
	return paint(dc, st, mode, st.Fill, st.Stroke)
}

// paint fills and/or strokes dc's current path, then clears it.
func paint(dc *gg.Context, st Style, mode paintMode, fill, stroke gg.Brush) error {
	defer dc.ClearPath()
	if mode&paintFill != 0 {
		dc.SetFillBrush(fill)
		if err := dc.FillPreserve(); err != nil {
			return fmt.Errorf("palette: fill: %w", err)
		}
	}
	if mode&paintStroke != 0 {
		dc.SetStroke(st.stroke())
		dc.SetStrokeBrush(stroke)
		if err := dc.StrokePreserve(); err != nil {
			return fmt.Errorf("palette: stroke: %w", err)
		}
	}
	return nil
}

// renderShadow paints the figure in the shadow colour on a scratch
// surface, blurs it and composites it at the shadow offset. Offsets are
// in surface units and ignore the current transform.
func (p *Palette) renderShadow(st Style, mode paintMode, trace outline) error {
	sh := st.Shadow
	scale := p.dc.DeviceScale()

	sc := gg.NewContext(p.dc.Width(), p.dc.Height(), gg.WithDeviceScale(scale))
	defer func() { _ = sc.Close() }()
	sc.SetTransform(p.dc.GetTransform())

	trace(sc)
	brush := gg.Solid(sh.Color)
	if err := paint(sc, st, mode, brush, brush); err != nil {
		return fmt.Errorf("palette: shadow: %w", err)
	}

	flush(sc)
	var img image.Image = sc.Image()
	if sh.Blur > 0 {
		img = blur(img, sh.Blur*scale/2)
	}

	p.dc.Push()
	p.dc.Identity()
	p.dc.DrawImageEx(gg.ImageBufFromImage(straight(img)), gg.DrawImageOptions{
		X:             sh.OffsetX,
		Y:             sh.OffsetY,
		DstWidth:      float64(p.dc.Width()),
		DstHeight:     float64(p.dc.Height()),
		Interpolation: gg.InterpBilinear,
		Opacity:       1,
		BlendMode:     gg.BlendNormal,
	})
	p.dc.Pop()
	return nil
}

// flusher is the part of gg.Context that submits pending GPU work.
type flusher interface {
	FlushGPU() error
}

// flush completes pending GPU work before pixels are read back. A failed
// flush leaves the CPU pixmap as the result, so it is only logged.
func flush(f flusher) {
	if err := f.FlushGPU(); err != nil {
		Logger().Warn("palette: gpu flush failed", "err", err)
	}
}

// blur applies a Gaussian blur with the given sigma in pixels.
func blur(src image.Image, sigma float64) image.Image {
	g := gift.New(gift.GaussianBlur(float32(sigma)))
	dst := image.NewRGBA(g.Bounds(src.Bounds()))
	g.Draw(dst, src)
	return dst
}

// straight converts to non-premultiplied pixels, the layout gg expects
// from an RGBA8 image buffer.
func straight(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
