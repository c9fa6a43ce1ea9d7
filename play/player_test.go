package play

import (
	"errors"
	"testing"
)

func testPlayer(t *testing.T, n int, state State) *Player {
	t.Helper()
	names := make([]string, n)
	for i := range names {
		names[i] = string(rune('a'+i)) + ".png"
	}
	s, err := Load(testSources(names...))
	if err != nil {
		t.Fatal("Load:", err)
	}
	return NewPlayer(s, state, nil)
}

func TestPlayPauseToggle(t *testing.T) {
	p := testPlayer(t, 3, State{FPS: 10})
	if p.State().Playing {
		t.Fatal("playing before Play()")
	}
	p.Play()
	p.Play() // no-op when already playing
	if !p.State().Playing {
		t.Fatal("not playing after Play()")
	}
	p.Pause()
	p.Pause()
	if p.State().Playing {
		t.Fatal("still playing after Pause()")
	}
	p.Toggle()
	if !p.State().Playing {
		t.Fatal("Toggle() did not resume")
	}
}

func TestSeek(t *testing.T) {
	p := testPlayer(t, 4, State{FPS: 10})
	if err := p.Seek(2); err != nil {
		t.Fatal("Seek(2):", err)
	}
	if got := p.State().Index; got != 2 {
		t.Fatalf("Index = %d, want 2", got)
	}
	// Idempotent: the second seek changes nothing, including the
	// playing state.
	p.Play()
	if err := p.Seek(2); err != nil {
		t.Fatal("second Seek(2):", err)
	}
	st := p.State()
	if st.Index != 2 || !st.Playing {
		t.Errorf("after repeated seek: index=%d playing=%v, want 2/true", st.Index, st.Playing)
	}
}

func TestSeekOutOfRange(t *testing.T) {
	p := testPlayer(t, 4, State{FPS: 10})
	for _, idx := range []int{-1, 4, 100} {
		err := p.Seek(idx)
		if !errors.Is(err, ErrOutOfRange) {
			t.Errorf("Seek(%d) error = %v, want ErrOutOfRange", idx, err)
		}
		if got := p.State().Index; got != 0 {
			t.Errorf("Seek(%d) mutated index to %d", idx, got)
		}
	}
}

func TestStepWrapsBothWays(t *testing.T) {
	// Manual stepping wraps regardless of the loop flag.
	p := testPlayer(t, 3, State{FPS: 10, Loop: false})
	p.StepBackward()
	if got := p.State().Index; got != 2 {
		t.Fatalf("StepBackward from 0: index = %d, want 2", got)
	}
	p.StepForward()
	if got := p.State().Index; got != 0 {
		t.Fatalf("StepForward from 2: index = %d, want 0", got)
	}
}

func TestSetFrameRate(t *testing.T) {
	p := testPlayer(t, 3, State{FPS: 10})
	for _, fps := range []float64{0, -5} {
		err := p.SetFrameRate(fps)
		if !errors.Is(err, ErrInvalidFrameRate) {
			t.Errorf("SetFrameRate(%v) error = %v, want ErrInvalidFrameRate", fps, err)
		}
		if got := p.State().FPS; got != 10 {
			t.Errorf("SetFrameRate(%v) mutated fps to %v", fps, got)
		}
	}
	if err := p.SetFrameRate(60); err != nil {
		t.Fatal("SetFrameRate(60):", err)
	}
	if got := p.State().FPS; got != 60 {
		t.Errorf("fps = %v, want 60", got)
	}
	// Above the cap the rate clamps rather than errors.
	if err := p.SetFrameRate(500); err != nil {
		t.Fatal("SetFrameRate(500):", err)
	}
	if got := p.State().FPS; got != MaxFrameRate {
		t.Errorf("fps = %v, want %v", got, MaxFrameRate)
	}
}

func TestAdvanceLooping(t *testing.T) {
	p := testPlayer(t, 3, State{FPS: 10, Loop: true, Playing: true})
	want := []int{1, 2, 0, 1, 2, 0}
	for i, w := range want {
		p.advance()
		if got := p.State().Index; got != w {
			t.Fatalf("advance %d: index = %d, want %d", i, got, w)
		}
		if !p.State().Playing {
			t.Fatalf("advance %d: looping playback paused", i)
		}
	}
}

func TestAdvanceAutoPause(t *testing.T) {
	p := testPlayer(t, 3, State{FPS: 10, Loop: false, Playing: true})
	p.advance()
	p.advance()
	st := p.State()
	if st.Index != 2 || !st.Playing {
		t.Fatalf("before final advance: index=%d playing=%v", st.Index, st.Playing)
	}
	// At the last frame without loop, the controller idles exactly
	// once and the index stays put.
	p.advance()
	st = p.State()
	if st.Index != 2 || st.Playing {
		t.Fatalf("after final advance: index=%d playing=%v, want 2/false", st.Index, st.Playing)
	}
	p.advance()
	if got := p.State().Index; got != 2 {
		t.Fatalf("index moved to %d while idle", got)
	}
}

func TestTickEndToEnd(t *testing.T) {
	// 4 frames, 10 fps: ticks at 0,50,100,150 advance exactly once,
	// at t=100, moving index 0 to 1.
	p := testPlayer(t, 4, State{FPS: 10, Loop: true, Playing: true})
	indices := []int{}
	for _, ms := range []int{0, 50, 100, 150} {
		p.Tick(at(ms))
		indices = append(indices, p.State().Index)
	}
	want := []int{0, 0, 1, 1}
	for i := range want {
		if indices[i] != want[i] {
			t.Fatalf("indices = %v, want %v", indices, want)
		}
	}
}

func TestCompositeNoInterpolation(t *testing.T) {
	p := testPlayer(t, 3, State{FPS: 10, Playing: true})
	c := p.Composite()
	if c.Overlay != nil {
		t.Error("overlay present with interpolation disabled")
	}
	if c.Base == nil || c.BaseOpacity != 1 {
		t.Errorf("base = %v opacity %v, want opaque frame", c.Base, c.BaseOpacity)
	}
}

func TestCompositeSingleFrame(t *testing.T) {
	p := testPlayer(t, 1, State{FPS: 10, Interpolation: true, Playing: true})
	p.Tick(at(0))
	if c := p.Tick(at(50)); c.Overlay != nil {
		t.Error("overlay present for a single-frame sequence")
	}
}

func TestCompositeOpacityRamp(t *testing.T) {
	p := testPlayer(t, 3, State{FPS: 10, Loop: true, Interpolation: true, Playing: true})
	p.Tick(at(0))

	// Within one interval the overlay opacity never decreases.
	prev := 0.0
	for _, ms := range []int{10, 30, 50, 70, 90} {
		c := p.Tick(at(ms))
		if c.Overlay == nil {
			if ms > 10 {
				t.Fatalf("no overlay at t=%dms", ms)
			}
			continue
		}
		if c.OverlayOpacity < prev {
			t.Fatalf("opacity fell from %v to %v at t=%dms", prev, c.OverlayOpacity, ms)
		}
		if c.Overlay.Name() != "b.png" {
			t.Fatalf("overlay = %q, want next frame b.png", c.Overlay.Name())
		}
		prev = c.OverlayOpacity
	}

	// The advance retargets the overlay and restarts its fade.
	c := p.Tick(at(100))
	if got := p.State().Index; got != 1 {
		t.Fatalf("index = %d after a full interval, want 1", got)
	}
	if c.Overlay != nil && c.OverlayOpacity >= prev {
		t.Errorf("opacity did not reset after advance: %v", c.OverlayOpacity)
	}
}

func TestCompositeNegligibleOverlay(t *testing.T) {
	p := testPlayer(t, 3, State{FPS: 10, Interpolation: true, Playing: true})
	p.Tick(at(0))
	// 0.5ms into a 100ms interval is below the negligible threshold.
	if c := p.Composite(); c.Overlay != nil {
		t.Errorf("overlay present at opacity %v, want suppressed", c.OverlayOpacity)
	}
}

func TestTickWhilePaused(t *testing.T) {
	p := testPlayer(t, 3, State{FPS: 10})
	for _, ms := range []int{0, 100, 200, 1000} {
		p.Tick(at(ms))
	}
	if got := p.State().Index; got != 0 {
		t.Fatalf("paused player advanced to %d", got)
	}
}
