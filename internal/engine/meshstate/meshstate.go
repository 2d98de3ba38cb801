// Package meshstate holds the per-mesh interaction state of the viewer.
package meshstate

import (
	"go.uber.org/zap"

	"github.com/Faultbox/partview/internal/engine/scene"
	"github.com/Faultbox/partview/internal/logger"
	"github.com/Faultbox/partview/pkg/math"
)

// DisplayMode selects how a mesh is rasterized.
type DisplayMode int

// Display modes, in cycle order.
const (
	Solid DisplayMode = iota
	Wireframe
	Points
	numDisplayModes
)

// String returns the display mode name.
func (m DisplayMode) String() string {
	switch m {
	case Solid:
		return "solid"
	case Wireframe:
		return "wireframe"
	case Points:
		return "points"
	default:
		return "unknown"
	}
}

// Next returns the mode following m in the Solid, Wireframe, Points cycle.
func (m DisplayMode) Next() DisplayMode {
	return (m + 1) % numDisplayModes
}

// Axis names a translation axis.
type Axis int

// Translation axes.
const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Valid reports whether a is one of X, Y, Z.
func (a Axis) Valid() bool {
	return a >= AxisX && a <= AxisZ
}

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "invalid"
	}
}

// MeshState is the mutable interaction state of one mesh.
type MeshState struct {
	Visible     bool
	DisplayMode DisplayMode
	Offset      math.Vec3
	Selected    bool
}

// Default returns the state a mesh has before any interaction.
func Default() MeshState {
	return MeshState{Visible: true, DisplayMode: Solid}
}

// Store maps mesh ids to their interaction state. Entries are created lazily
// for ids known to the store; lookups of absent entries return Default.
// Store is not safe for concurrent use.
type Store struct {
	count  int
	states map[scene.MeshID]*MeshState
	log    *zap.Logger
}

// NewStore creates a store for meshCount meshes with ids 0..meshCount-1.
func NewStore(meshCount int) *Store {
	return &Store{
		count:  meshCount,
		states: make(map[scene.MeshID]*MeshState),
		log:    logger.Named("meshstate"),
	}
}

// Len returns the number of meshes the store covers.
func (s *Store) Len() int {
	return s.count
}

// Known reports whether id belongs to the loaded scene.
func (s *Store) Known(id scene.MeshID) bool {
	return int(id) < s.count
}

// Get returns a copy of the state of id.
func (s *Store) Get(id scene.MeshID) MeshState {
	if st, ok := s.states[id]; ok {
		return *st
	}
	return Default()
}

// Offset returns the translation offset of id.
func (s *Store) Offset(id scene.MeshID) math.Vec3 {
	if st, ok := s.states[id]; ok {
		return st.Offset
	}
	return math.Vec3{}
}

// Visible reports whether id should be drawn, picked and collision-tested.
func (s *Store) Visible(id scene.MeshID) bool {
	return s.Get(id).Visible
}

// entry returns the mutable state of id, creating it on first use.
// Unknown ids return nil.
func (s *Store) entry(id scene.MeshID, op string) *MeshState {
	if !s.Known(id) {
		s.log.Debug("ignoring operation on unknown mesh",
			zap.String("op", op),
			zap.Uint32("mesh", uint32(id)),
			zap.Int("meshes", s.count),
		)
		return nil
	}
	st, ok := s.states[id]
	if !ok {
		d := Default()
		st = &d
		s.states[id] = st
	}
	return st
}

// ToggleVisibility flips the visibility of id.
func (s *Store) ToggleVisibility(id scene.MeshID) {
	if st := s.entry(id, "toggle_visibility"); st != nil {
		st.Visible = !st.Visible
	}
}

// CycleDisplayMode advances id to its next display mode.
func (s *Store) CycleDisplayMode(id scene.MeshID) {
	if st := s.entry(id, "cycle_display_mode"); st != nil {
		st.DisplayMode = st.DisplayMode.Next()
	}
}

// Translate adds delta to the offset of id along axis.
// Invalid axes are ignored.
func (s *Store) Translate(id scene.MeshID, axis Axis, delta float32) {
	if !axis.Valid() {
		s.log.Debug("ignoring translation on invalid axis", zap.Int("axis", int(axis)))
		return
	}
	st := s.entry(id, "translate")
	if st == nil {
		return
	}
	switch axis {
	case AxisX:
		st.Offset.X += delta
	case AxisY:
		st.Offset.Y += delta
	case AxisZ:
		st.Offset.Z += delta
	}
}

// SetSelected sets the selection flag of id.
func (s *Store) SetSelected(id scene.MeshID, selected bool) {
	if st := s.entry(id, "select"); st != nil {
		st.Selected = selected
	}
}

// Selected returns the ids whose selection flag is set, in ascending order.
func (s *Store) Selected() []scene.MeshID {
	var out []scene.MeshID
	for i := 0; i < s.count; i++ {
		id := scene.MeshID(i)
		if st, ok := s.states[id]; ok && st.Selected {
			out = append(out, id)
		}
	}
	return out
}

// Reset discards every entry and resizes the store for a newly loaded scene.
func (s *Store) Reset(meshCount int) {
	s.count = meshCount
	clear(s.states)
}
