package palette

import (
	"context"
	"errors"
	"math"
	"time"
)

// DefaultFPS is the frame rate used when AnimationSettings.FPS is zero.
const DefaultFPS = 60

// AnimationSettings configures Animate.
type AnimationSettings struct {
	FPS       float64 // frames per second; DefaultFPS when zero
	MaxFrames int     // stop after this many frames; zero runs until stopped
	Clear     bool    // clear the surface to the background before each frame
}

// Frame describes the frame being drawn.
type Frame struct {
	Index   int
	Elapsed time.Duration // since the first frame
	Delta   time.Duration // since the previous frame
}

// FrameFunc draws one frame. Returning ErrStop ends the animation
// without error; any other error ends it with that error.
type FrameFunc func(p *Palette, f Frame) error

// Animate calls fn once per tick until ctx is done, MaxFrames frames have
// been drawn, or fn returns an error. The first frame is drawn
// immediately. Frames are never queued: a slow fn lowers the frame rate.
func (p *Palette) Animate(ctx context.Context, s AnimationSettings, fn FrameFunc) error {
	if fn == nil {
		return invalidf("nil frame func")
	}
	if s.FPS < 0 || !finite(s.FPS) {
		return invalidf("fps %v", s.FPS)
	}
	if s.MaxFrames < 0 {
		return invalidf("max frames %d", s.MaxFrames)
	}
	fps := s.FPS
	if fps == 0 {
		fps = DefaultFPS
	}
	ns := float64(time.Second) / fps
	if ns < 1 || ns >= math.MaxInt64 {
		return invalidf("fps %v gives no representable frame period", s.FPS)
	}
	period := time.Duration(ns)

	ticker := time.NewTicker(period)
	defer ticker.Stop()

	start := time.Now()
	last := start
	for i := 0; s.MaxFrames == 0 || i < s.MaxFrames; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		now := start
		if i > 0 {
			now = time.Now()
		}
		f := Frame{Index: i, Elapsed: now.Sub(start), Delta: now.Sub(last)}
		last = now
		if f.Delta > 2*period {
			Logger().Warn("palette: late frame", "index", i, "delta", f.Delta, "period", period)
		}

		if s.Clear {
			p.Clear(nil)
		}
		if err := fn(p, f); err != nil {
			if errors.Is(err, ErrStop) {
				return nil
			}
			return err
		}
	}
	return nil
}
