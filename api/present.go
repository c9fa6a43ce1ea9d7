package api

import "github.com/zardoy/pixi-sprite-preview/play"

// Command type names accepted from the viewer. The keyboard surface
// maps space onto toggle, the arrow keys onto step, and r onto reset.
const (
	CmdPlay          = "play"
	CmdPause         = "pause"
	CmdToggle        = "toggle"
	CmdSeek          = "seek"
	CmdStep          = "step"
	CmdFPS           = "fps"
	CmdLoop          = "loop"
	CmdInterpolation = "interpolation"
	CmdBackground    = "background"
	CmdReset         = "reset"
)

// Command is one keyboard or UI message from the viewer page.
type Command struct {
	Type  string  `json:"type"`
	Index int     `json:"index,omitempty"`
	Dir   int     `json:"dir,omitempty"`
	Value float64 `json:"value,omitempty"`
	On    bool    `json:"on,omitempty"`
	Color string  `json:"color,omitempty"`
}

// Paint is one composite directive on the wire: the base frame index
// painted fully opaque and, while cross-fading, an overlay index with
// its weight. Overlay is -1 when absent. The browser holds the frame
// images already, so paints carry indices and weights only.
type Paint struct {
	Type           string  `json:"type"`
	Base           int     `json:"base"`
	Overlay        int     `json:"overlay"`
	OverlayOpacity float64 `json:"overlayOpacity,omitempty"`
	Background     string  `json:"background"`
}

// Hello is sent once per connection and after reloads: the sequence
// geometry and the current playback state.
type Hello struct {
	Type       string     `json:"type"`
	Count      int        `json:"count"`
	Width      int        `json:"width"`
	Height     int        `json:"height"`
	Background string     `json:"background"`
	State      play.State `json:"state"`
}

// FitScale returns the aspect-preserving scale that fits a frame of
// the given intrinsic size into the viewport. The scale never
// upscales beyond what fits; a degenerate frame or viewport yields 1.
func FitScale(viewW, viewH, frameW, frameH int) float64 {
	if viewW <= 0 || viewH <= 0 || frameW <= 0 || frameH <= 0 {
		return 1
	}
	sx := float64(viewW) / float64(frameW)
	sy := float64(viewH) / float64(frameH)
	if sy < sx {
		return sy
	}
	return sx
}
