package collision

import (
	"sort"

	"go.uber.org/zap"

	"github.com/Faultbox/partview/internal/engine/scene"
	"github.com/Faultbox/partview/internal/logger"
	"github.com/Faultbox/partview/pkg/math"
)

// Visibility reports whether a mesh takes part in detection.
type Visibility interface {
	Visible(id scene.MeshID) bool
}

// Pair is an unordered pair of overlapping meshes, normalized so A < B.
type Pair struct {
	A, B scene.MeshID
}

// MakePair returns the normalized pair of a and b.
func MakePair(a, b scene.MeshID) Pair {
	if b < a {
		a, b = b, a
	}
	return Pair{A: a, B: b}
}

// OverlapSet is the set of overlapping pairs found in one detection pass.
type OverlapSet struct {
	pairs    map[Pair]struct{}
	involved map[scene.MeshID]struct{}
}

func newOverlapSet() OverlapSet {
	return OverlapSet{
		pairs:    make(map[Pair]struct{}),
		involved: make(map[scene.MeshID]struct{}),
	}
}

func (s *OverlapSet) add(a, b scene.MeshID) {
	s.pairs[MakePair(a, b)] = struct{}{}
	s.involved[a] = struct{}{}
	s.involved[b] = struct{}{}
}

// Len returns the number of pairs.
func (s OverlapSet) Len() int {
	return len(s.pairs)
}

// Contains reports whether a and b overlap, in either order.
func (s OverlapSet) Contains(a, b scene.MeshID) bool {
	_, ok := s.pairs[MakePair(a, b)]
	return ok
}

// Involved reports whether id overlaps any other mesh.
func (s OverlapSet) Involved(id scene.MeshID) bool {
	_, ok := s.involved[id]
	return ok
}

// Pairs returns the pairs sorted by A then B.
func (s OverlapSet) Pairs() []Pair {
	out := make([]Pair, 0, len(s.pairs))
	for p := range s.pairs {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].A != out[j].A {
			return out[i].A < out[j].A
		}
		return out[i].B < out[j].B
	})
	return out
}

// DetectOverlaps tests every pair of visible meshes for world-space AABB
// overlap. Meshes are never paired with themselves and meshes without
// vertices never overlap. vis may be nil, in which case every mesh counts.
func DetectOverlaps(s *scene.Scene, transforms map[scene.MeshID]math.Mat4, vis Visibility) OverlapSet {
	type bounded struct {
		id  scene.MeshID
		box AABB
	}

	var boxes []bounded
	for _, id := range s.MeshIDs() {
		if vis != nil && !vis.Visible(id) {
			continue
		}
		world, ok := transforms[id]
		if !ok {
			continue
		}
		m, _ := s.Mesh(id)
		if box, ok := ComputeAABB(m, world); ok {
			boxes = append(boxes, bounded{id: id, box: box})
		}
	}

	set := newOverlapSet()
	for i := 0; i < len(boxes); i++ {
		for j := i + 1; j < len(boxes); j++ {
			if boxes[i].box.Overlaps(boxes[j].box) {
				set.add(boxes[i].id, boxes[j].id)
			}
		}
	}
	return set
}

// Detector runs overlap detection for the viewer and can be switched off.
type Detector struct {
	enabled   bool
	lastCount int
	log       *zap.Logger
}

// NewDetector creates a detector.
func NewDetector(enabled bool) *Detector {
	return &Detector{enabled: enabled, lastCount: -1, log: logger.Named("collision")}
}

// Enabled reports whether detection runs.
func (d *Detector) Enabled() bool {
	return d.enabled
}

// SetEnabled switches detection on or off.
func (d *Detector) SetEnabled(enabled bool) {
	d.enabled = enabled
	d.lastCount = -1
}

// Reset forgets the last reported overlap count, for a newly loaded scene.
func (d *Detector) Reset() {
	d.lastCount = -1
}

// Detect returns the overlaps for the current frame, or an empty set when
// disabled.
func (d *Detector) Detect(s *scene.Scene, transforms map[scene.MeshID]math.Mat4, vis Visibility) OverlapSet {
	if !d.enabled || s == nil {
		return newOverlapSet()
	}
	set := DetectOverlaps(s, transforms, vis)
	if set.Len() != d.lastCount {
		d.log.Debug("overlap count changed", zap.Int("pairs", set.Len()))
		d.lastCount = set.Len()
	}
	return set
}
