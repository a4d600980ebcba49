package palette

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vincent-petithory/dataurl"
	"golang.org/x/image/webp"
)

func drawnPalette(t *testing.T) *Palette {
	t.Helper()
	p := newTestPalette(t, 32, 16, WithBackground(color.White))
	if _, err := p.Rect(RectSettings{Width: 16, Height: 16, Style: Style{Fill: red}}); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestEncode_Types(t *testing.T) {
	tests := []struct {
		typ    string
		decode func([]byte) (image.Image, error)
	}{
		{"", func(b []byte) (image.Image, error) { return png.Decode(bytes.NewReader(b)) }},
		{"image/png", func(b []byte) (image.Image, error) { return png.Decode(bytes.NewReader(b)) }},
		{"IMAGE/JPEG", func(b []byte) (image.Image, error) { return jpeg.Decode(bytes.NewReader(b)) }},
		{"image/webp", func(b []byte) (image.Image, error) { return webp.Decode(bytes.NewReader(b)) }},
	}
	p := drawnPalette(t)
	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			var buf bytes.Buffer
			if err := p.Encode(&buf, ExportSettings{Type: tt.typ}); err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			img, err := tt.decode(buf.Bytes())
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if img.Bounds().Dx() != 32 || img.Bounds().Dy() != 16 {
				t.Errorf("bounds = %v, want 32x16", img.Bounds())
			}
			r, g, b, _ := img.At(8, 8).RGBA()
			if r>>8 < 230 || g>>8 > 25 || b>>8 > 25 {
				t.Errorf("pixel (8,8) = (%d,%d,%d), want red", r>>8, g>>8, b>>8)
			}
		})
	}
}

func TestEncode_Errors(t *testing.T) {
	p := drawnPalette(t)
	if err := p.Encode(&bytes.Buffer{}, ExportSettings{Type: "image/avif"}); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("avif error = %v, want ErrUnsupportedFormat", err)
	}
	for _, q := range []float64{-0.5, 1.5} {
		if err := p.Encode(&bytes.Buffer{}, ExportSettings{Type: "image/jpeg", Quality: q}); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("quality %v error = %v, want ErrInvalidArgument", q, err)
		}
	}
}

func TestBlob(t *testing.T) {
	p := drawnPalette(t)
	low, err := p.Blob(ExportSettings{Type: "image/jpeg", Quality: 0.05})
	if err != nil {
		t.Fatal(err)
	}
	high, err := p.Blob(ExportSettings{Type: "image/jpeg"})
	if err != nil {
		t.Fatal(err)
	}
	if len(low) == 0 || len(low) >= len(high) {
		t.Errorf("quality 0.05 = %d bytes, quality 1 = %d bytes", len(low), len(high))
	}
}

func TestBlobAsync(t *testing.T) {
	p := drawnPalette(t)
	type result struct {
		b   []byte
		err error
	}
	ch := make(chan result, 1)
	p.BlobAsync(ExportSettings{}, func(b []byte, err error) { ch <- result{b, err} })

	// Drawing after the call must not show up in the snapshot.
	if _, err := p.Rect(RectSettings{Width: 32, Height: 16, Style: Style{Fill: blue}}); err != nil {
		t.Fatal(err)
	}

	select {
	case r := <-ch:
		if r.err != nil {
			t.Fatal(r.err)
		}
		img, err := png.Decode(bytes.NewReader(r.b))
		if err != nil {
			t.Fatal(err)
		}
		if cr, _, cb, _ := img.At(24, 8).RGBA(); cr>>8 != 255 || cb>>8 != 255 {
			t.Errorf("snapshot pixel (24,8) = r%d b%d, want white", cr>>8, cb>>8)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("BlobAsync callback not called")
	}

	errc := make(chan error, 1)
	p.BlobAsync(ExportSettings{Type: "text/plain"}, func(_ []byte, err error) { errc <- err })
	if err := <-errc; !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("BlobAsync(text/plain) error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestDataURL(t *testing.T) {
	p := drawnPalette(t)
	s, err := p.DataURL(ExportSettings{})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(s, "data:image/png;base64,") {
		t.Fatalf("DataURL() = %.30q..., want PNG data URL", s)
	}
	du, err := dataurl.DecodeString(s)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := png.Decode(bytes.NewReader(du.Data)); err != nil {
		t.Errorf("embedded PNG does not decode: %v", err)
	}

	if _, err := p.DataURL(ExportSettings{Type: "image/heic"}); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("heic error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestSave(t *testing.T) {
	p := drawnPalette(t)
	dir := t.TempDir()
	for _, name := range []string{"out.png", "out.jpg", "out.webp", "out.bmp", "out.tiff"} {
		path := filepath.Join(dir, name)
		if err := p.Save(path); err != nil {
			t.Errorf("Save(%s) error = %v", name, err)
			continue
		}
		if fi, err := os.Stat(path); err != nil || fi.Size() == 0 {
			t.Errorf("Save(%s) wrote nothing: %v", name, err)
		}
	}
	if err := p.Save(filepath.Join(dir, "out.gif")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Save(gif) error = %v, want ErrUnsupportedFormat", err)
	}
}
