package api

import (
	"encoding/json"
	"testing"
)

func TestFitScale(t *testing.T) {
	tests := []struct {
		name           string
		vw, vh, fw, fh int
		want           float64
	}{
		{"exact", 100, 100, 100, 100, 1},
		{"downscaleWide", 100, 100, 200, 100, 0.5},
		{"downscaleTall", 100, 100, 100, 400, 0.25},
		{"upscale", 300, 300, 100, 100, 3},
		{"letterbox", 640, 480, 320, 480, 1},
		{"degenerateFrame", 100, 100, 0, 10, 1},
		{"degenerateViewport", 0, 100, 10, 10, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FitScale(tt.vw, tt.vh, tt.fw, tt.fh); got != tt.want {
				t.Errorf("FitScale(%d,%d,%d,%d) = %v, want %v", tt.vw, tt.vh, tt.fw, tt.fh, got, tt.want)
			}
		})
	}
}

func TestPaintWireFormat(t *testing.T) {
	// The viewer page keys on these exact field names.
	data, err := json.Marshal(Paint{Type: "paint", Base: 3, Overlay: 4, OverlayOpacity: 0.5, Background: "#000000"})
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"type", "base", "overlay", "overlayOpacity", "background"} {
		if _, ok := m[key]; !ok {
			t.Errorf("paint message missing %q: %s", key, data)
		}
	}
}

func TestCommandWireFormat(t *testing.T) {
	var cmd Command
	if err := json.Unmarshal([]byte(`{"type":"step","dir":-1}`), &cmd); err != nil {
		t.Fatal(err)
	}
	if cmd.Type != CmdStep || cmd.Dir != -1 {
		t.Errorf("decoded %+v, want step/-1", cmd)
	}
	if err := json.Unmarshal([]byte(`{"type":"fps","value":24}`), &cmd); err != nil {
		t.Fatal(err)
	}
	if cmd.Type != CmdFPS || cmd.Value != 24 {
		t.Errorf("decoded %+v, want fps/24", cmd)
	}
}
