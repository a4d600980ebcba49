package palette

import (
	"context"
	"errors"
	"image/color"
	"math"
	"testing"
	"time"
)

func TestAnimate_MaxFrames(t *testing.T) {
	p := newTestPalette(t, 10, 10)
	var frames []Frame
	err := p.Animate(context.Background(), AnimationSettings{FPS: 200, MaxFrames: 5}, func(_ *Palette, f Frame) error {
		frames = append(frames, f)
		return nil
	})
	if err != nil {
		t.Fatalf("Animate() error = %v", err)
	}
	if len(frames) != 5 {
		t.Fatalf("drew %d frames, want 5", len(frames))
	}
	for i, f := range frames {
		if f.Index != i {
			t.Errorf("frames[%d].Index = %d", i, f.Index)
		}
		if i > 0 && f.Elapsed < frames[i-1].Elapsed {
			t.Errorf("Elapsed went backwards at frame %d", i)
		}
	}
	if frames[0].Delta != 0 || frames[0].Elapsed != 0 {
		t.Errorf("first frame = %+v, want zero timing", frames[0])
	}
	if frames[4].Elapsed < 15*time.Millisecond {
		t.Errorf("5 frames at 200fps took %v, want >= 15ms", frames[4].Elapsed)
	}
}

func TestAnimate_Stop(t *testing.T) {
	p := newTestPalette(t, 10, 10)
	n := 0
	err := p.Animate(context.Background(), AnimationSettings{FPS: 500}, func(_ *Palette, f Frame) error {
		n++
		if f.Index == 2 {
			return ErrStop
		}
		return nil
	})
	if err != nil || n != 3 {
		t.Errorf("Animate() = %v after %d frames, want nil after 3", err, n)
	}
}

func TestAnimate_FrameError(t *testing.T) {
	p := newTestPalette(t, 10, 10)
	boom := errors.New("boom")
	err := p.Animate(context.Background(), AnimationSettings{FPS: 500}, func(*Palette, Frame) error { return boom })
	if !errors.Is(err, boom) {
		t.Errorf("Animate() error = %v, want boom", err)
	}
}

func TestAnimate_ContextCanceled(t *testing.T) {
	p := newTestPalette(t, 10, 10)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	n := 0
	err := p.Animate(ctx, AnimationSettings{FPS: 100}, func(*Palette, Frame) error {
		n++
		return nil
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Animate() error = %v, want DeadlineExceeded", err)
	}
	if n == 0 {
		t.Error("no frame drawn before cancellation")
	}

	ctx, cancel = context.WithCancel(context.Background())
	cancel()
	called := false
	err = p.Animate(ctx, AnimationSettings{}, func(*Palette, Frame) error { called = true; return nil })
	if !errors.Is(err, context.Canceled) || called {
		t.Errorf("pre-canceled Animate() = %v, called=%v", err, called)
	}
}

func TestAnimate_Clear(t *testing.T) {
	p := newTestPalette(t, 20, 20, WithBackground(color.White))
	err := p.Animate(context.Background(), AnimationSettings{FPS: 500, MaxFrames: 2, Clear: true}, func(p *Palette, f Frame) error {
		if f.Index == 0 {
			_, err := p.Rect(RectSettings{Width: 10, Height: 10, Style: Style{Fill: red}})
			return err
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	// The second frame cleared the first frame's rectangle.
	assertPixel(t, p, 5, 5, opaqueWhite, 0)
}

func TestAnimate_Invalid(t *testing.T) {
	p := newTestPalette(t, 10, 10)
	ctx := context.Background()
	nop := func(*Palette, Frame) error { return nil }

	if err := p.Animate(ctx, AnimationSettings{FPS: -1}, nop); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("negative fps error = %v", err)
	}
	for _, fps := range []float64{2e9, 1e-11, math.Inf(1), math.NaN()} {
		if err := p.Animate(ctx, AnimationSettings{FPS: fps, MaxFrames: 2}, nop); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("fps %v error = %v, want ErrInvalidArgument", fps, err)
		}
	}
	if err := p.Animate(ctx, AnimationSettings{MaxFrames: -1}, nop); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("negative max frames error = %v", err)
	}
	if err := p.Animate(ctx, AnimationSettings{}, nil); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("nil func error = %v", err)
	}
}
