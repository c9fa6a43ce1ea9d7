package play

// negligibleOpacity is the weight below which the overlay may be
// treated as absent, sparing the presentation boundary a composite
// pass that would not be visible.
const negligibleOpacity = 0.01

// A Composite is the two-layer paint directive handed to the
// presentation boundary for one instant: an always-opaque base frame
// and, while cross-fading, an overlay fading in on top. Keeping the
// base at full opacity avoids the darkening artifact of stacking two
// partially transparent layers.
type Composite struct {
	Base           *Frame
	BaseOpacity    float64
	Overlay        *Frame
	OverlayOpacity float64
}

// composite computes the directive for the player's current state and
// clock progress. The overlay source is always derived from the
// current index, so an advance implicitly retargets it and restarts
// its fade from zero.
func (p *Player) composite() Composite {
	c := Composite{
		Base:        p.store.Get(p.state.Index),
		BaseOpacity: 1,
	}
	if !p.state.Interpolation || p.store.Size() <= 1 {
		return c
	}
	w := p.easing(p.clock.Progress())
	if w <= negligibleOpacity {
		return c
	}
	if w > 1 {
		w = 1
	}
	c.Overlay = p.store.Get((p.state.Index + 1) % p.store.Size())
	c.OverlayOpacity = w
	return c
}
