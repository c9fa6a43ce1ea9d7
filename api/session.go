package api

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/zardoy/pixi-sprite-preview/play"
)

// Session owns the player for one viewer session and serializes every
// command and tick onto it, so the core sees the single logical turn
// it was designed for. The rest of the api package talks to the player
// only through the session.
type Session struct {
	mu         sync.Mutex
	player     *play.Player
	background string
	easing     func(float64) float64
}

// NewSession creates an instance of a Session around a loaded store.
func NewSession(store *play.Store, cfg play.Config, easing func(float64) float64) *Session {
	s := new(Session)
	s.easing = easing
	s.background = cfg.Background
	s.player = play.NewPlayer(store, cfg.InitialState(), easing)
	return s
}

// Tick drives the player by one turn and returns the wire paint
// directive. ok is false while no sequence is loaded.
func (s *Session) Tick(now time.Time) (Paint, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.player == nil {
		return Paint{}, false
	}
	c := s.player.Tick(now)
	return s.paint(c), true
}

// paint maps a composite directive to its wire form. Callers hold mu.
func (s *Session) paint(c play.Composite) Paint {
	p := Paint{
		Type:       "paint",
		Base:       s.player.State().Index,
		Overlay:    -1,
		Background: s.background,
	}
	if c.Overlay != nil {
		p.Overlay = (p.Base + 1) % s.player.Store().Size()
		p.OverlayOpacity = c.OverlayOpacity
	}
	return p
}

// Hello describes the loaded sequence to a newly connected client.
// ok is false while no sequence is loaded.
func (s *Session) Hello() (Hello, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.player == nil {
		return Hello{Type: "empty"}, false
	}
	store := s.player.Store()
	h := Hello{
		Type:       "hello",
		Count:      store.Size(),
		State:      s.player.State(),
		Background: s.background,
	}
	for i := 0; i < store.Size(); i++ {
		f := store.Get(i)
		if f.Width() > h.Width {
			h.Width = f.Width()
		}
		if f.Height() > h.Height {
			h.Height = f.Height()
		}
	}
	return h, true
}

// Frame returns the frame at index i for the image endpoint, with
// bounds checking suitable for untrusted input.
func (s *Session) Frame(i int) (*play.Frame, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.player == nil || i < 0 || i >= s.player.Store().Size() {
		return nil, false
	}
	return s.player.Store().Get(i), true
}

// Apply dispatches one viewer command. Rejections (out-of-range seek,
// invalid frame rate, bad color) are logged and leave state untouched.
func (s *Session) Apply(cmd Command) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.player == nil && cmd.Type != CmdBackground {
		return
	}
	var err error
	switch cmd.Type {
	case CmdPlay:
		s.player.Play()
	case CmdPause:
		s.player.Pause()
	case CmdToggle:
		s.player.Toggle()
	case CmdSeek:
		err = s.player.Seek(cmd.Index)
	case CmdStep:
		if cmd.Dir < 0 {
			s.player.StepBackward()
		} else {
			s.player.StepForward()
		}
	case CmdFPS:
		err = s.player.SetFrameRate(cmd.Value)
	case CmdLoop:
		s.player.SetLoop(cmd.On)
	case CmdInterpolation:
		s.player.SetInterpolation(cmd.On)
	case CmdBackground:
		err = s.setBackground(cmd.Color)
	case CmdReset:
		s.reset()
	default:
		err = fmt.Errorf("unknown command %q", cmd.Type)
	}
	if err != nil {
		log.Printf("api: command %s rejected: %v", cmd.Type, err)
	}
}

// setBackground validates and applies a hex background color. Callers
// hold mu.
func (s *Session) setBackground(hex string) error {
	c, err := colorful.Hex(hex)
	if err != nil {
		return err
	}
	s.background = c.Hex()
	return nil
}

// reset returns the session to the pre-load state: the player is
// detached first, then the store it referenced is disposed. Callers
// hold mu.
func (s *Session) reset() {
	if s.player == nil {
		return
	}
	s.player.Pause()
	store := s.player.Store()
	s.player = nil
	store.Dispose()
}

// Reset is the exported teardown used by the reset keyboard command
// and at shutdown.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

// Reload swaps in a freshly loaded store, carrying the previous
// playback settings over and clamping the frame index to the new
// sequence. The old store is disposed only after the player has been
// detached from it.
func (s *Session) Reload(store *play.Store) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := play.DefaultConfig().InitialState()
	if s.player != nil {
		state = s.player.State()
		if state.Index >= store.Size() {
			state.Index = store.Size() - 1
		}
	}

	old := s.player
	s.player = play.NewPlayer(store, state, s.easing)
	if old != nil {
		oldStore := old.Store()
		oldStore.Dispose()
	}
}
