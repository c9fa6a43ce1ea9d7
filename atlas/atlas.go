// Package atlas parses texture-atlas manifests and slices the atlas
// image into independent per-frame images for the frame store.
package atlas

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"log"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"

	"github.com/zardoy/pixi-sprite-preview/play"
)

// ErrAtlasNotFound is returned when the manifest references an atlas
// image that is not among the supplied files.
var ErrAtlasNotFound = errors.New("atlas: manifest image not found among supplied files")

// Rect is one packed region inside the atlas.
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Entry describes one named frame in the manifest. Only the frame
// rectangle is consumed; trimming metadata is accepted and ignored.
type Entry struct {
	Frame            Rect            `json:"frame"`
	SpriteSourceSize json.RawMessage `json:"spriteSourceSize,omitempty"`
	SourceSize       json.RawMessage `json:"sourceSize,omitempty"`
}

// Manifest is the parsed JSON manifest: a frame-name to region map
// plus the atlas image reference.
type Manifest struct {
	Frames frameMap `json:"frames"`
	Meta   struct {
		Image string `json:"image"`
	} `json:"meta"`
}

// frameMap accepts both manifest layouts: the hash form
// {"name": {"frame": ...}} and the array form
// [{"filename": "name", "frame": ...}].
type frameMap map[string]Entry

func (m *frameMap) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var list []struct {
			Filename string `json:"filename"`
			Entry
		}
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		out := make(map[string]Entry, len(list))
		for _, e := range list {
			out[e.Filename] = e.Entry
		}
		*m = out
		return nil
	}
	var out map[string]Entry
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	*m = out
	return nil
}

// Parse decodes a manifest from its JSON bytes.
func Parse(data []byte) (*Manifest, error) {
	m := new(Manifest)
	if err := json.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("atlas: parse manifest: %w", err)
	}
	if len(m.Frames) == 0 {
		return nil, fmt.Errorf("atlas: manifest declares no frames")
	}
	return m, nil
}

// Resolve finds the supplied file name the manifest's meta.image
// refers to. Matching is case-insensitive and extension-agnostic, so a
// manifest naming "sheet.PNG" resolves against a supplied "sheet.png".
func (m *Manifest) Resolve(names []string) (string, error) {
	want := baseKey(m.Meta.Image)
	if want == "" {
		return "", fmt.Errorf("atlas: manifest has no meta.image: %w", ErrAtlasNotFound)
	}
	for _, n := range names {
		if baseKey(n) == want {
			return n, nil
		}
	}
	return "", fmt.Errorf("atlas: %q: %w", m.Meta.Image, ErrAtlasNotFound)
}

// baseKey reduces a file name to its case-folded stem.
func baseKey(name string) string {
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.ToLower(base)
}

// Slice crops every manifest region out of the atlas image into an
// independent image the frame store can own outright. Regions falling
// outside the atlas bounds are logged and skipped; they do not abort
// the slice.
func (m *Manifest) Slice(atlas image.Image) []play.Source {
	bounds := atlas.Bounds()
	sources := make([]play.Source, 0, len(m.Frames))
	for name, entry := range m.Frames {
		r := entry.Frame
		sr := image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H).Add(bounds.Min)
		if r.W <= 0 || r.H <= 0 || !sr.In(bounds) {
			log.Printf("atlas: skipping %q: region %v outside atlas %v", name, sr, bounds)
			continue
		}
		dst := image.NewNRGBA(image.Rect(0, 0, r.W, r.H))
		draw.Copy(dst, image.Point{}, atlas, sr, draw.Src, nil)
		sources = append(sources, play.Source{Name: name, Image: dst})
	}
	return sources
}
