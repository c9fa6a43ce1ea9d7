package play

import (
	"errors"
	"fmt"
	"time"
)

// MaxFrameRate caps the accepted playback rate.
const MaxFrameRate = 120

var (
	// ErrOutOfRange is returned by Seek for an index outside the
	// loaded sequence.
	ErrOutOfRange = errors.New("play: frame index out of range")

	// ErrInvalidFrameRate is returned by SetFrameRate for a
	// non-positive rate.
	ErrInvalidFrameRate = errors.New("play: frame rate must be positive")
)

// State is the externally visible playback state. It is a value
// record; mutation happens only inside Player operations.
type State struct {
	Index         int     `json:"index"`
	Playing       bool    `json:"playing"`
	Loop          bool    `json:"loop"`
	FPS           float64 `json:"fps"`
	Interpolation bool    `json:"interpolation"`
}

// Player is the transport controller: the state machine mediating
// between user commands and the playback clock, enforcing frame-index
// bounds. It holds indices only, never image resources, and must be
// detached before the store it references is disposed.
//
// Player is not safe for concurrent use; callers serialize commands
// and ticks onto a single logical turn.
type Player struct {
	store  *Store
	clock  *Clock
	state  State
	easing func(float64) float64
}

// NewPlayer creates an instance of a Player over a populated store.
// The easing function shapes the cross-fade opacity ramp; nil means
// linear.
func NewPlayer(store *Store, initial State, easing func(float64) float64) *Player {
	p := new(Player)
	p.store = store
	p.state = initial
	if p.state.FPS <= 0 {
		p.state.FPS = 1
	}
	if p.state.FPS > MaxFrameRate {
		p.state.FPS = MaxFrameRate
	}
	if p.state.Index < 0 || p.state.Index >= store.Size() {
		p.state.Index = 0
	}
	p.clock = NewClock(p.state.FPS)
	if p.state.Playing {
		p.clock.Start()
	}
	p.easing = easing
	if p.easing == nil {
		p.easing = func(t float64) float64 { return t }
	}
	return p
}

// State returns a copy of the current playback state.
func (p *Player) State() State {
	return p.state
}

// Store returns the frame store the player drives.
func (p *Player) Store() *Store {
	return p.store
}

// Play starts playback. No-op when already playing.
func (p *Player) Play() {
	if p.state.Playing {
		return
	}
	p.state.Playing = true
	p.clock.Start()
}

// Pause suspends playback. No-op when already paused.
func (p *Player) Pause() {
	if !p.state.Playing {
		return
	}
	p.state.Playing = false
	p.clock.Stop()
}

// Toggle flips between playing and paused.
func (p *Player) Toggle() {
	if p.state.Playing {
		p.Pause()
	} else {
		p.Play()
	}
}

// Seek moves to the given frame index and resets the clock
// accumulator. An index outside the sequence is rejected with
// ErrOutOfRange and no state changes. Seeking to the current index is
// harmless; the accumulator reset is idempotent.
func (p *Player) Seek(index int) error {
	if index < 0 || index >= p.store.Size() {
		return fmt.Errorf("seek to %d of %d frames: %w", index, p.store.Size(), ErrOutOfRange)
	}
	p.state.Index = index
	p.clock.Reset()
	return nil
}

// StepForward moves one frame forward, wrapping past the end. Manual
// stepping always wraps regardless of the loop setting; only automatic
// playback stops at the final frame.
func (p *Player) StepForward() {
	p.state.Index = (p.state.Index + 1) % p.store.Size()
	p.clock.Reset()
}

// StepBackward moves one frame back, wrapping before the start.
func (p *Player) StepBackward() {
	n := p.store.Size()
	p.state.Index = (p.state.Index - 1 + n) % n
	p.clock.Reset()
}

// SetFrameRate changes the playback rate. A non-positive rate is
// rejected with ErrInvalidFrameRate and no state changes; rates above
// MaxFrameRate are clamped. Changing the rate resets the clock
// accumulator so the next advance is not judged against a stale
// interval.
func (p *Player) SetFrameRate(fps float64) error {
	if fps <= 0 {
		return fmt.Errorf("frame rate %v: %w", fps, ErrInvalidFrameRate)
	}
	if fps > MaxFrameRate {
		fps = MaxFrameRate
	}
	p.state.FPS = fps
	p.clock.SetRate(fps)
	return nil
}

// SetLoop updates the loop flag. No effect on the clock accumulator.
func (p *Player) SetLoop(enabled bool) {
	p.state.Loop = enabled
}

// SetInterpolation toggles cross-fade blending between consecutive
// frames. Honored only while more than one frame is loaded.
func (p *Player) SetInterpolation(enabled bool) {
	p.state.Interpolation = enabled
}

// advance applies the next-index rule for one advance event: wrap when
// looping, otherwise auto-pause on the final frame without moving.
func (p *Player) advance() {
	n := p.store.Size()
	if p.state.Loop {
		p.state.Index = (p.state.Index + 1) % n
		return
	}
	if p.state.Index == n-1 {
		p.Pause()
		return
	}
	p.state.Index++
}

// Tick drives the player by one render-loop turn: the clock
// accumulates to now, an advance event is applied if one is due, and
// the composite directive for this instant is returned.
func (p *Player) Tick(now time.Time) Composite {
	if p.clock.Tick(now) {
		p.advance()
	}
	return p.composite()
}

// Composite returns the paint directive for the current instant
// without advancing time.
func (p *Player) Composite() Composite {
	return p.composite()
}
