package viewer

import (
	"fmt"
	"slices"

	"github.com/Faultbox/partview/internal/config"
	"github.com/Faultbox/partview/internal/engine/scene"
)

// SelectionModel is the policy applied when the user picks or selects a mesh.
// A viewer uses exactly one policy for its lifetime.
type SelectionModel interface {
	// Apply records a pick of id.
	Apply(id scene.MeshID)
	// IsSelected reports whether id is selected.
	IsSelected(id scene.MeshID) bool
	// Selected returns the selected ids in ascending order.
	Selected() []scene.MeshID
	// Active returns the mesh that animation applies to.
	Active() (scene.MeshID, bool)
	// Clear deselects everything.
	Clear()
	// Name returns the config name of the policy.
	Name() string
}

// NewSelectionModel returns the policy with the given config name.
func NewSelectionModel(name string) (SelectionModel, error) {
	switch name {
	case config.SelectionExclusive, "":
		return &Exclusive{}, nil
	case config.SelectionToggle:
		return &Toggle{}, nil
	default:
		return nil, fmt.Errorf("unknown selection policy %q", name)
	}
}

// Exclusive keeps at most one mesh selected. Picking a different mesh moves
// the selection; picking the selected mesh again deselects it.
type Exclusive struct {
	id  scene.MeshID
	has bool
}

// Apply implements SelectionModel.
func (e *Exclusive) Apply(id scene.MeshID) {
	if e.has && e.id == id {
		e.has = false
		return
	}
	e.id, e.has = id, true
}

// IsSelected implements SelectionModel.
func (e *Exclusive) IsSelected(id scene.MeshID) bool { return e.has && e.id == id }

// Selected implements SelectionModel.
func (e *Exclusive) Selected() []scene.MeshID {
	if !e.has {
		return nil
	}
	return []scene.MeshID{e.id}
}

// Active implements SelectionModel.
func (e *Exclusive) Active() (scene.MeshID, bool) { return e.id, e.has }

// Clear implements SelectionModel.
func (e *Exclusive) Clear() { e.has = false }

// Name implements SelectionModel.
func (e *Exclusive) Name() string { return config.SelectionExclusive }

// Toggle flips each mesh independently, allowing any number of selected
// meshes. The active mesh is the most recently selected one still selected.
type Toggle struct {
	order []scene.MeshID // selection order, oldest first
}

// Apply implements SelectionModel.
func (t *Toggle) Apply(id scene.MeshID) {
	if i := slices.Index(t.order, id); i >= 0 {
		t.order = slices.Delete(t.order, i, i+1)
		return
	}
	t.order = append(t.order, id)
}

// IsSelected implements SelectionModel.
func (t *Toggle) IsSelected(id scene.MeshID) bool { return slices.Contains(t.order, id) }

// Selected implements SelectionModel.
func (t *Toggle) Selected() []scene.MeshID {
	if len(t.order) == 0 {
		return nil
	}
	out := slices.Clone(t.order)
	slices.Sort(out)
	return out
}

// Active implements SelectionModel.
func (t *Toggle) Active() (scene.MeshID, bool) {
	if len(t.order) == 0 {
		return 0, false
	}
	return t.order[len(t.order)-1], true
}

// Clear implements SelectionModel.
func (t *Toggle) Clear() { t.order = t.order[:0] }

// Name implements SelectionModel.
func (t *Toggle) Name() string { return config.SelectionToggle }
