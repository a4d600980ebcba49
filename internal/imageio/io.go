// Package imageio loads images from files, URLs and data URLs, and encodes
// surfaces to the export formats palette supports.
package imageio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // register GIF decoder
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"github.com/vincent-petithory/dataurl"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // register WebP decoder
)

// Media types understood by Encode.
const (
	PNG  = "image/png"
	JPEG = "image/jpeg"
	WebP = "image/webp"
	BMP  = "image/bmp"
	TIFF = "image/tiff"
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when a media type has no encoder.
	ErrUnsupportedFormat = errors.New("imageio: unsupported format")

	// ErrEmptyData is returned when an image source holds no bytes.
	ErrEmptyData = errors.New("imageio: empty data")
)

// MaxRemoteSize caps the body read from an http(s) source.
const MaxRemoteSize = 64 << 20

// Client fetches http(s) sources. Tests may replace it.
var Client = &http.Client{Timeout: 30 * time.Second}

// Load decodes the image named by src: a "data:" URL, an "http://" or
// "https://" URL, or a file path.
func Load(ctx context.Context, src string) (image.Image, error) {
	data, err := read(ctx, src)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

func read(ctx context.Context, src string) ([]byte, error) {
	switch {
	case strings.HasPrefix(src, "data:"):
		du, err := dataurl.DecodeString(src)
		if err != nil {
			return nil, fmt.Errorf("imageio: data url: %w", err)
		}
		return du.Data, nil
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		return fetch(ctx, src)
	default:
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(filepath.Clean(src))
		if err != nil {
			return nil, fmt.Errorf("imageio: open file: %w", err)
		}
		return data, nil
	}
}

func fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("imageio: request %s: %w", url, err)
	}
	resp, err := Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("imageio: fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("imageio: fetch %s: %s", url, resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxRemoteSize))
	if err != nil {
		return nil, fmt.Errorf("imageio: read %s: %w", url, err)
	}
	return data, nil
}

// Decode decodes PNG, JPEG, GIF, BMP, TIFF or WebP data.
func Decode(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("imageio: decode: %w", err)
	}
	return img, nil
}

// Encode writes img as mediaType. Quality in (0,1] applies to JPEG only;
// WebP is always lossless.
func Encode(w io.Writer, img image.Image, mediaType string, quality float64) error {
	var err error
	switch strings.ToLower(mediaType) {
	case PNG:
		err = png.Encode(w, img)
	case JPEG:
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: jpegQuality(quality)})
	case WebP:
		err = nativewebp.Encode(w, img, nil)
	case BMP:
		err = bmp.Encode(w, img)
	case TIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, mediaType)
	}
	if err != nil {
		return fmt.Errorf("imageio: encode %s: %w", mediaType, err)
	}
	return nil
}

func jpegQuality(q float64) int {
	n := int(math.Round(q * 100))
	if n < 1 {
		return 1
	}
	if n > 100 {
		return 100
	}
	return n
}

// DataURL encodes img as mediaType and wraps it in a base64 data URL.
func DataURL(img image.Image, mediaType string, quality float64) (string, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, img, mediaType, quality); err != nil {
		return "", err
	}
	return dataurl.New(buf.Bytes(), strings.ToLower(mediaType)).String(), nil
}

// TypeByExtension maps a file name to the media type Encode expects.
func TypeByExtension(name string) (string, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png":
		return PNG, nil
	case ".jpg", ".jpeg":
		return JPEG, nil
	case ".webp":
		return WebP, nil
	case ".bmp":
		return BMP, nil
	case ".tif", ".tiff":
		return TIFF, nil
	}
	return "", fmt.Errorf("%w: extension of %q", ErrUnsupportedFormat, name)
}

// EncodeAnimation writes frames as a looping lossless animated WebP, each
// frame shown for delay.
func EncodeAnimation(w io.Writer, frames []image.Image, delay time.Duration) error {
	if len(frames) == 0 {
		return ErrEmptyData
	}
	ms := uint(max(delay.Milliseconds(), 1))
	ani := &nativewebp.Animation{
		Images:    frames,
		Durations: make([]uint, len(frames)),
		Disposals: make([]uint, len(frames)),
	}
	for i := range frames {
		ani.Durations[i] = ms
	}
	if err := nativewebp.EncodeAll(w, ani, nil); err != nil {
		return fmt.Errorf("imageio: encode animation: %w", err)
	}
	return nil
}
