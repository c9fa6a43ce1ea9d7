// Package input acquires frame sources for the player: it scans a
// folder of stills, or an atlas image plus JSON manifest, and hands
// already-decoded images to the frame store.
package input

import (
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/zardoy/pixi-sprite-preview/atlas"
	"github.com/zardoy/pixi-sprite-preview/play"
)

// Load scans dir and produces frame sources. A JSON file in the folder
// selects the atlas path: the manifest is parsed, its atlas image
// resolved among the folder's files, and the regions sliced. Otherwise
// every decodable still becomes one source. Individual files that fail
// to decode are logged and skipped; structural problems (unparsable
// manifest, unresolved atlas) fail the load.
func Load(dir string) ([]play.Source, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("input: read %s: %w", dir, err)
	}

	var names []string
	manifest := ""
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.EqualFold(filepath.Ext(name), ".json") {
			if manifest == "" {
				manifest = name
			}
			continue
		}
		names = append(names, name)
	}

	if manifest != "" {
		return loadAtlas(dir, manifest, names)
	}
	return loadStills(dir, names)
}

func loadStills(dir string, names []string) ([]play.Source, error) {
	sources := make([]play.Source, 0, len(names))
	for _, name := range names {
		img, err := decodeFile(filepath.Join(dir, name))
		if err != nil {
			log.Printf("input: skipping %s: %v", name, err)
			continue
		}
		sources = append(sources, play.Source{Name: name, Image: img})
	}
	return sources, nil
}

func loadAtlas(dir, manifest string, names []string) ([]play.Source, error) {
	data, err := os.ReadFile(filepath.Join(dir, manifest))
	if err != nil {
		return nil, fmt.Errorf("input: read manifest %s: %w", manifest, err)
	}
	m, err := atlas.Parse(data)
	if err != nil {
		return nil, err
	}
	atlasName, err := m.Resolve(names)
	if err != nil {
		return nil, err
	}
	img, err := decodeFile(filepath.Join(dir, atlasName))
	if err != nil {
		return nil, fmt.Errorf("input: decode atlas %s: %w", atlasName, err)
	}
	return m.Slice(img), nil
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	return img, nil
}
