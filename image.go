package palette

import (
	"context"
	"image"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/palette/internal/imageio"
	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
)

// ImageSettings places an image on the surface.
type ImageSettings struct {
	// Src is a file path, an http(s) URL or a data URL. PNG, JPEG, GIF,
	// BMP, TIFF and WebP are decoded.
	Src  string
	X, Y float64
	// Width and Height scale the image. When only one is set the other
	// follows the aspect ratio; when neither is set the natural size is
	// used.
	Width, Height float64
}

func (s ImageSettings) validate() error {
	if s.Src == "" {
		return invalidf("image source is empty")
	}
	return s.validateGeometry()
}

func (s ImageSettings) validateGeometry() error {
	if !finite(s.X, s.Y, s.Width, s.Height) || s.Width < 0 || s.Height < 0 {
		return invalidf("image geometry %v,%v %vx%v", s.X, s.Y, s.Width, s.Height)
	}
	return nil
}

// Image loads s.Src and draws it. Loading honours ctx.
func (p *Palette) Image(ctx context.Context, s ImageSettings) (*Palette, error) {
	if err := s.validate(); err != nil {
		return p, err
	}
	img, err := imageio.Load(ctx, s.Src)
	if err != nil {
		return p, err
	}
	return p.DrawImage(img, s)
}

// ImageAsync loads s.Src in a new goroutine and draws it once decoded.
// The returned channel receives the outcome and is then closed.
func (p *Palette) ImageAsync(ctx context.Context, s ImageSettings) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		_, err := p.Image(ctx, s)
		if err != nil {
			Logger().Debug("palette: async image failed", "src", s.Src, "err", err)
		}
		done <- err
	}()
	return done
}

// Images loads every source concurrently and, once all have decoded,
// draws them in argument order. The first failure cancels the remaining
// loads and nothing is drawn.
func (p *Palette) Images(ctx context.Context, settings ...ImageSettings) (*Palette, error) {
	for _, s := range settings {
		if err := s.validate(); err != nil {
			return p, err
		}
	}

	imgs := make([]image.Image, len(settings))
	g, ctx := errgroup.WithContext(ctx)
	for i, s := range settings {
		g.Go(func() error {
			img, err := imageio.Load(ctx, s.Src)
			if err != nil {
				return err
			}
			imgs[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return p, err
	}

	for i, img := range imgs {
		if _, err := p.DrawImage(img, settings[i]); err != nil {
			return p, err
		}
	}
	return p, nil
}

// DrawImage draws an already decoded image; s.Src is ignored. The
// persistent alpha and composite apply.
func (p *Palette) DrawImage(img image.Image, s ImageSettings) (*Palette, error) {
	if img == nil {
		return p, invalidf("nil image")
	}
	if err := s.validateGeometry(); err != nil {
		return p, err
	}
	b := img.Bounds()
	if b.Empty() {
		return p, nil
	}
	w, h := s.Width, s.Height
	switch {
	case w == 0 && h == 0:
		w, h = float64(b.Dx()), float64(b.Dy())
	case w == 0:
		w = h * float64(b.Dx()) / float64(b.Dy())
	case h == 0:
		h = w * float64(b.Dy()) / float64(b.Dx())
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	scale := p.dc.DeviceScale()
	src := straight(img)
	pw, ph := int(math.Round(w*scale)), int(math.Round(h*scale))
	if pw > 0 && ph > 0 && pw <= maxResample && ph <= maxResample && (pw != b.Dx() || ph != b.Dy()) {
		src = resample(src, pw, ph)
	}

	Logger().Debug("palette: draw image",
		"natural", b.Size(), "width", w, "height", h)
	p.dc.DrawImageEx(gg.ImageBufFromImage(src), gg.DrawImageOptions{
		X:             s.X,
		Y:             s.Y,
		DstWidth:      w,
		DstHeight:     h,
		Interpolation: gg.InterpBilinear,
		Opacity:       p.style.Alpha,
		BlendMode:     p.style.Composite.blendMode(),
	})
	return p, nil
}

// maxResample bounds the pre-scaled buffer; larger targets are scaled by
// DrawImageEx alone.
const maxResample = 1 << 14

// resample scales src to w x h pixels with a Catmull-Rom filter.
func resample(src *image.NRGBA, w, h int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}
