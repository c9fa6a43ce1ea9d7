package play

import (
	"errors"
	"image"
	"sort"
)

// ErrEmptySequence is returned by Load when no usable frame remains
// after filtering.
var ErrEmptySequence = errors.New("play: sequence contains no usable frames")

// A Source is one decoded image handed over by an input collaborator.
// The image is already decoded; the store never decodes anything.
type Source struct {
	Name  string
	Image image.Image
}

// A Frame is one still of a loaded sequence, addressed by its position
// in the numeric-aware name order. Frames are immutable once the store
// is populated.
type Frame struct {
	name   string
	img    image.Image
	width  int
	height int
}

// Name returns the originating file or atlas-entry name.
func (f *Frame) Name() string { return f.name }

// Image returns the decoded image.
func (f *Frame) Image() image.Image { return f.img }

// Width returns the intrinsic pixel width.
func (f *Frame) Width() int { return f.width }

// Height returns the intrinsic pixel height.
func (f *Frame) Height() int { return f.height }

// A Store owns the ordered, immutable-after-load sequence of decoded
// frames. It is the sole owner of the decoded image resources; every
// other component holds frame indices only.
type Store struct {
	frames   []*Frame
	disposed bool
}

// Load populates a Store from the supplied sources, ordering them by
// the numeric-aware name sort. Sources with a nil image are skipped.
// Load fails with ErrEmptySequence when nothing usable remains.
func Load(sources []Source) (*Store, error) {
	s := new(Store)
	for _, src := range sources {
		if src.Image == nil {
			continue
		}
		b := src.Image.Bounds()
		s.frames = append(s.frames, &Frame{
			name:   src.Name,
			img:    src.Image,
			width:  b.Dx(),
			height: b.Dy(),
		})
	}
	if len(s.frames) == 0 {
		return nil, ErrEmptySequence
	}
	sort.SliceStable(s.frames, func(i, j int) bool {
		return naturalLess(s.frames[i].name, s.frames[j].name)
	})
	return s, nil
}

// Get returns the frame at index i. Calling Get with an index outside
// [0, Size()) is a contract violation and panics.
func (s *Store) Get(i int) *Frame {
	return s.frames[i]
}

// Size returns the number of frames in the sequence.
func (s *Store) Size() int {
	return len(s.frames)
}

// Dispose releases every owned image resource in one bulk pass. It is
// idempotent; after the first call the store is dead and Get/Size are
// no longer meaningful.
func (s *Store) Dispose() {
	if s.disposed {
		return
	}
	for _, f := range s.frames {
		f.img = nil
	}
	s.frames = nil
	s.disposed = true
}
