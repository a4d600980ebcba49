package palette

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/palette/internal/imageio"
)

// ExportSettings selects the encoding of an exported surface.
type ExportSettings struct {
	// Type is a media type: "image/png" (default), "image/jpeg",
	// "image/webp", "image/bmp" or "image/tiff".
	Type string
	// Quality in (0,1] applies to JPEG. Zero means 1.
	Quality float64
}

func (s ExportSettings) normalize() (ExportSettings, error) {
	s.Type = strings.ToLower(strings.TrimSpace(s.Type))
	if s.Type == "" {
		s.Type = imageio.PNG
	}
	if s.Quality == 0 {
		s.Quality = 1
	}
	if s.Quality < 0 || s.Quality > 1 || !finite(s.Quality) {
		return s, invalidf("export quality %v outside (0,1]", s.Quality)
	}
	return s, nil
}

// Encode writes the surface to w.
func (p *Palette) Encode(w io.Writer, s ExportSettings) error {
	s, err := s.normalize()
	if err != nil {
		return err
	}
	img := p.Snapshot()
	return exportErr(imageio.Encode(w, img, s.Type, s.Quality))
}

// Blob returns the encoded surface.
func (p *Palette) Blob(s ExportSettings) ([]byte, error) {
	var buf bytes.Buffer
	if err := p.Encode(&buf, s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BlobAsync snapshots the surface, then encodes it in a new goroutine and
// passes the result to fn. Drawing may continue while it encodes.
func (p *Palette) BlobAsync(s ExportSettings, fn func([]byte, error)) {
	s, err := s.normalize()
	if err != nil {
		go fn(nil, err)
		return
	}
	img := p.Snapshot()
	go func() {
		var buf bytes.Buffer
		if err := exportErr(imageio.Encode(&buf, img, s.Type, s.Quality)); err != nil {
			fn(nil, err)
			return
		}
		fn(buf.Bytes(), nil)
	}()
}

// DataURL returns the encoded surface as a base64 data URL.
func (p *Palette) DataURL(s ExportSettings) (string, error) {
	s, err := s.normalize()
	if err != nil {
		return "", err
	}
	u, err := imageio.DataURL(p.Snapshot(), s.Type, s.Quality)
	return u, exportErr(err)
}

// Save writes the surface to path, choosing the format from its
// extension.
func (p *Palette) Save(path string) error {
	mt, err := imageio.TypeByExtension(path)
	if err != nil {
		return exportErr(err)
	}
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("palette: create %s: %w", path, err)
	}
	if err := p.Encode(f, ExportSettings{Type: mt}); err != nil {
		_ = f.Close()
		return err
	}
	Logger().Debug("palette: saved", "path", path, "type", mt)
	return f.Close()
}

// exportErr maps encoder errors onto the package's sentinels.
func exportErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, imageio.ErrUnsupportedFormat) {
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	return fmt.Errorf("palette: export: %w", err)
}
