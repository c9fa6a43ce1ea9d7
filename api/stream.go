package api

import (
	"context"
	"time"
)

// Streamer drives the session from a fixed-rate ticker and pushes the
// resulting paint directives to the hub. The playback clock does the
// actual timing; the ticker only supplies timestamps, so its period
// bounds how often the index can advance but not the playback rate
// itself.
type Streamer struct {
	session *Session
	hub     *Hub
	period  time.Duration
	last    Paint
	primed  bool
}

// NewStreamer creates an instance of a Streamer.
func NewStreamer(session *Session, hub *Hub, period time.Duration) *Streamer {
	s := new(Streamer)
	s.session = session
	s.hub = hub
	s.period = period
	if s.period <= 0 {
		s.period = 33 * time.Millisecond
	}
	return s
}

// Run ticks the session until the context is cancelled. Identical
// consecutive paints are suppressed; while cross-fading the opacity
// changes every tick, so fades still stream smoothly.
func (s *Streamer) Run(ctx context.Context) {
	ticker := time.NewTicker(s.period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			p, ok := s.session.Tick(now)
			if !ok {
				continue
			}
			if s.primed && p == s.last {
				continue
			}
			s.last = p
			s.primed = true
			s.hub.Broadcast(p)
		}
	}
}
