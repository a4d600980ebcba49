// Command palettedemo renders a showcase of the palette drawing API.
//
// With -frames it renders a short spinning-polygon animation instead and
// writes it as an animated WebP.
package main

import (
	"context"
	"flag"
	"image"
	"image/color"
	"log"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"time"

	"github.com/gogpu/gg"
	"github.com/gogpu/palette"
	"github.com/gogpu/palette/internal/imageio"
)

func main() {
	var (
		width   = flag.Int("width", 800, "image width")
		height  = flag.Int("height", 600, "image height")
		output  = flag.String("output", "demo.png", "output file; the extension picks the format")
		quality = flag.Float64("quality", 1, "JPEG quality in (0,1]")
		frames  = flag.Int("frames", 0, "render an animation of this many frames (animated WebP)")
		fps     = flag.Float64("fps", 30, "animation frame rate")
		verbose = flag.Bool("verbose", false, "log debug output to stderr")
	)
	flag.Parse()

	if *verbose {
		palette.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	p := palette.New(*width, *height, palette.WithBackground(color.White))
	defer func() { _ = p.Close() }()

	if *frames > 0 {
		if err := animate(ctx, p, *frames, *fps, *output); err != nil {
			log.Fatalf("Failed to animate: %v", err)
		}
		log.Printf("Animation saved to %s (%d frames)\n", *output, *frames)
		return
	}

	if err := showcase(p); err != nil {
		log.Fatalf("Failed to draw: %v", err)
	}
	if err := save(p, *output, *quality); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Demo saved to %s (%dx%d)\n", *output, *width, *height)
}

func save(p *palette.Palette, path string, quality float64) error {
	typ, err := imageio.TypeByExtension(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := p.Encode(f, palette.ExportSettings{Type: typ, Quality: quality}); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func showcase(p *palette.Palette) error {
	w, h := float64(p.Width()), float64(p.Height())

	sky, err := palette.LinearGradient(palette.GradientSettings{
		Y2:     h,
		Color1: color.RGBA{R: 30, G: 50, B: 100, A: 255},
		Color2: color.RGBA{R: 130, G: 160, B: 200, A: 255},
	})
	if err != nil {
		return err
	}
	if _, err := p.Rect(palette.RectSettings{Width: w, Height: h, Style: palette.Style{Fill: sky}}); err != nil {
		return err
	}

	shadow, err := palette.ParseShadow("4 4 6 #00000080")
	if err != nil {
		return err
	}
	steps := []func() (*palette.Palette, error){
		func() (*palette.Palette, error) {
			return p.Circle(palette.CircleSettings{X: 150, Y: 150, R: 60,
				Style: palette.Style{Fill: palette.MustBrush("#ff4d4dcc"), Shadow: shadow}})
		},
		func() (*palette.Palette, error) {
			return p.Rect(palette.RectSettings{X: 300, Y: 100, Width: 140, Height: 90, Radius: 15, Degree: 10,
				Style: palette.Style{Fill: palette.MustBrush("gold"), Stroke: palette.MustBrush("white"), Thickness: 4}})
		},
		func() (*palette.Palette, error) {
			return p.Arc(palette.ArcSettings{X: 600, Y: 150, R: 70, Start: 0, Stop: 1.5 * math.Pi,
				Style: palette.Style{Fill: palette.MustBrush("mediumseagreen")}})
		},
		func() (*palette.Palette, error) {
			return p.Polygon(palette.PolygonSettings{X: 150, Y: 380, Size: 80, Sides: 6, Degree: 30,
				Style: palette.Style{Stroke: palette.MustBrush("navy"), Thickness: 5, Join: palette.JoinRound}})
		},
		func() (*palette.Palette, error) {
			return p.Path(palette.PathSettings{Path: "M,300,450 Q,380,300,460,450 L,540,380 Q,600,330,700,450", Open: true,
				Style: palette.Style{Stroke: palette.MustBrush("crimson"), Thickness: 3, Cap: palette.CapRound, Dash: []float64{12, 6}}})
		},
		func() (*palette.Palette, error) {
			return p.Line(palette.LineSettings{X1: 40, Y1: h - 80, X2: w - 40, Y2: h - 80,
				Style: palette.Style{Stroke: palette.MustBrush("white"), Alpha: 0.6}})
		},
		func() (*palette.Palette, error) {
			return p.Text(palette.TextSettings{Text: "palette", X: w / 2, Y: h - 30, Align: "center",
				Font: palette.Font{Family: "go-bold", Size: 36}, Style: palette.Style{Fill: palette.MustBrush("white")}})
		},
	}
	for _, draw := range steps {
		if _, err := draw(); err != nil {
			return err
		}
	}
	return nil
}

func animate(ctx context.Context, p *palette.Palette, n int, fps float64, path string) error {
	if fps <= 0 {
		fps = palette.DefaultFPS
	}
	cx, cy := float64(p.Width())/2, float64(p.Height())/2
	size := math.Min(cx, cy) * 0.6
	fill, err := palette.RadialGradient(palette.RadialGradientSettings{
		X: cx, Y: cy, R1: size,
		Stops: []palette.ColorStop{{Offset: 0, Color: gg.Hex("#ffe066")}, {Offset: 1, Color: gg.Hex("#f76707")}},
	})
	if err != nil {
		return err
	}

	frames := make([]image.Image, 0, n)
	err = p.Animate(ctx, palette.AnimationSettings{FPS: fps, MaxFrames: n, Clear: true}, func(p *palette.Palette, f palette.Frame) error {
		deg := 360 * float64(f.Index) / float64(n)
		if _, err := p.Polygon(palette.PolygonSettings{X: cx, Y: cy, Size: size, Sides: 5, Degree: deg,
			Style: palette.Style{Fill: fill, Stroke: palette.MustBrush("black"), Thickness: 3}}); err != nil {
			return err
		}
		frames = append(frames, p.Snapshot())
		return nil
	})
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	delay := time.Duration(float64(time.Second) / fps)
	if err := imageio.EncodeAnimation(f, frames, delay); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
